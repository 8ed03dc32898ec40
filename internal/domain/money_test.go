package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRoundCents(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"250", "250"},
		{"249.999", "250"},
		{"0.005", "0.01"},
		{"1234.5649", "1234.56"},
		{"-1.005", "-1.01"},
	}

	for _, tc := range tests {
		got := RoundCents(decimal.RequireFromString(tc.in))
		if !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Errorf("RoundCents(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"600", "$600.00"},
		{"250.5", "$250.50"},
		{"1234.5", "$1,234.50"},
		{"1234567.891", "$1,234,567.89"},
		{"-42.10", "-$42.10"},
	}

	for _, tc := range tests {
		if got := FormatUSD(decimal.RequireFromString(tc.in)); got != tc.want {
			t.Errorf("FormatUSD(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
