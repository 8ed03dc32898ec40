package services

import (
	"carrier-dispatch-service/internal/domain"

	"github.com/shopspring/decimal"
)

// DriverPay computes one driver's estimated pay for a leg.
//
// The charge type selects which metric the value applies to:
// PER_MILE multiplies by distance, PER_HOUR by duration, FIXED_PAY
// ignores the metrics, and PERCENTAGE_OF_LOAD takes a cut of the load
// rate. An unconfigured charge computes zero so a partly filled draft
// can still show a running total.
//
// Input bounds are enforced at validation time; this function assumes
// pre-validated values and never rounds internally.
func DriverPay(charge domain.DriverCharge, metrics domain.LegMetrics) decimal.Decimal {
	if !charge.Configured() {
		return decimal.Zero
	}

	value := *charge.ChargeValue

	switch *charge.ChargeType {
	case domain.ChargePerMile:
		return metrics.DistanceMiles.Mul(value)
	case domain.ChargePerHour:
		return metrics.DurationHours.Mul(value)
	case domain.ChargeFixedPay:
		return value
	case domain.ChargePercentageOfLoad:
		return metrics.EffectiveLoadRate().Mul(value).Div(decimal.NewFromInt(100))
	}

	return decimal.Zero
}

// TotalPay sums DriverPay over every charge on the draft.
// The sum is commutative: permuting the input list never changes the result.
func TotalPay(charges []domain.DriverCharge, metrics domain.LegMetrics) decimal.Decimal {
	total := decimal.Zero
	for _, c := range charges {
		total = total.Add(DriverPay(c, metrics))
	}
	return total
}
