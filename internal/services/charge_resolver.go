package services

import (
	"carrier-dispatch-service/internal/domain"

	"github.com/shopspring/decimal"
)

// Resolve the charge type a driver defaults to, if any.
// Pure function over the driver record.
func DefaultChargeType(driver *domain.Driver) *domain.ChargeType {
	if driver == nil {
		return nil
	}
	return driver.DefaultChargeType
}

// Resolve the default charge value a driver's stored rates yield for a
// charge type. An unset or zero rate resolves to nil, which leaves the
// charge unconfigured until the user types a value.
func DefaultChargeValue(driver *domain.Driver, chargeType domain.ChargeType) *decimal.Decimal {
	if driver == nil {
		return nil
	}

	var rate *decimal.Decimal
	switch chargeType {
	case domain.ChargePerMile:
		rate = driver.PerMileRate
	case domain.ChargePerHour:
		rate = driver.PerHourRate
	case domain.ChargeFixedPay:
		rate = driver.DefaultFixedPay
	case domain.ChargePercentageOfLoad:
		rate = driver.TakeHomePercent
	}

	if rate == nil || rate.IsZero() {
		return nil
	}

	v := *rate
	return &v
}

// NewDriverCharge prefills a charge for a driver just added to the draft:
// the driver's default charge type, and that type's default value.
func NewDriverCharge(driver *domain.Driver) domain.DriverCharge {
	charge := domain.DriverCharge{DriverID: driver.ID}

	ct := DefaultChargeType(driver)
	if ct == nil {
		return charge
	}

	charge.ChargeType = ct
	charge.ChargeValue = DefaultChargeValue(driver, *ct)
	return charge
}

// RefillChargeValue applies a charge type change: the value is replaced
// with the driver's default for the new type, discarding whatever the
// user had typed for the previous type.
func RefillChargeValue(driver *domain.Driver, charge domain.DriverCharge, chargeType domain.ChargeType) domain.DriverCharge {
	charge.ChargeType = &chargeType
	charge.ChargeValue = DefaultChargeValue(driver, chargeType)
	return charge
}
