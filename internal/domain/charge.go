package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ChargeType is the billing method used to compute a driver's pay for a leg.
type ChargeType string

const (
	ChargePerMile          ChargeType = "PER_MILE"
	ChargePerHour          ChargeType = "PER_HOUR"
	ChargeFixedPay         ChargeType = "FIXED_PAY"
	ChargePercentageOfLoad ChargeType = "PERCENTAGE_OF_LOAD"
)

// ParseChargeType converts a stored string into a ChargeType.
func ParseChargeType(s string) (ChargeType, error) {
	switch ChargeType(s) {
	case ChargePerMile, ChargePerHour, ChargeFixedPay, ChargePercentageOfLoad:
		return ChargeType(s), nil
	}
	return "", fmt.Errorf("parse charge type: unknown value %q", s)
}

// DriverCharge binds a driver to the charge that will compute their pay on a leg.
// A nil ChargeType (or nil ChargeValue) means the driver is not yet configured;
// such a charge blocks submission but computes a zero pay for display.
type DriverCharge struct {
	DriverID    string
	ChargeType  *ChargeType
	ChargeValue *decimal.Decimal
}

// Configured reports whether both the charge type and value are set.
func (c DriverCharge) Configured() bool {
	return c.ChargeType != nil && c.ChargeValue != nil
}

// CheckBounds verifies the numeric bounds for the charge value:
// non-negative for every type, and at most 100 for PERCENTAGE_OF_LOAD.
func (c DriverCharge) CheckBounds() error {
	if !c.Configured() {
		return nil
	}

	if c.ChargeValue.IsNegative() {
		return &InvalidChargeValueError{
			DriverID:   c.DriverID,
			ChargeType: *c.ChargeType,
			Value:      *c.ChargeValue,
			Reason:     "charge value must not be negative",
		}
	}

	if *c.ChargeType == ChargePercentageOfLoad && c.ChargeValue.GreaterThan(decimal.NewFromInt(100)) {
		return &InvalidChargeValueError{
			DriverID:   c.DriverID,
			ChargeType: *c.ChargeType,
			Value:      *c.ChargeValue,
			Reason:     "percentage of load must not exceed 100",
		}
	}

	return nil
}
