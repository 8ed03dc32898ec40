package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money helpers. All pay arithmetic stays in decimal form end to end;
// rounding to cents happens only here, at the presentation boundary.

// RoundCents rounds a decimal amount to two places for display.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatUSD renders an amount as a dollar string, e.g. "$1,234.50".
func FormatUSD(d decimal.Decimal) string {
	amount := RoundCents(d)

	neg := amount.IsNegative()
	if neg {
		amount = amount.Neg()
	}

	s := amount.StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := fmt.Sprintf("$%s.%s", b.String(), frac)
	if neg {
		return "-" + out
	}
	return out
}
