package domain

import "github.com/shopspring/decimal"

// Driver is a read-only entity owned by the carrier's driver roster.
// The optional default rates are the prefill source when the driver is
// added to an assignment; at most one of them is "the" default, picked
// by DefaultChargeType.
type Driver struct {
	ID    string
	Name  string
	Phone string

	DefaultChargeType *ChargeType
	PerMileRate       *decimal.Decimal
	PerHourRate       *decimal.Decimal
	DefaultFixedPay   *decimal.Decimal
	TakeHomePercent   *decimal.Decimal
}
