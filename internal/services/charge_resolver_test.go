package services

import (
	"testing"

	"carrier-dispatch-service/internal/domain"

	"github.com/shopspring/decimal"
)

func testDriver() *domain.Driver {
	perMile := decimal.RequireFromString("2.10")
	fixed := decimal.RequireFromString("450")
	ct := domain.ChargePerMile
	return &domain.Driver{
		ID:                "drv-1",
		Name:              "Sam Ortega",
		Phone:             "+16025550134",
		DefaultChargeType: &ct,
		PerMileRate:       &perMile,
		DefaultFixedPay:   &fixed,
	}
}

func TestDefaultChargeType(t *testing.T) {
	d := testDriver()

	got := DefaultChargeType(d)
	if got == nil || *got != domain.ChargePerMile {
		t.Fatalf("default charge type = %v, want PER_MILE", got)
	}

	if DefaultChargeType(&domain.Driver{ID: "drv-2"}) != nil {
		t.Fatal("driver without a default should resolve to nil")
	}
	if DefaultChargeType(nil) != nil {
		t.Fatal("nil driver should resolve to nil")
	}
}

func TestDefaultChargeValueMapping(t *testing.T) {
	d := testDriver()

	if v := DefaultChargeValue(d, domain.ChargePerMile); v == nil || !v.Equal(decimal.RequireFromString("2.10")) {
		t.Fatalf("PER_MILE value = %v, want 2.10", v)
	}
	if v := DefaultChargeValue(d, domain.ChargeFixedPay); v == nil || !v.Equal(decimal.RequireFromString("450")) {
		t.Fatalf("FIXED_PAY value = %v, want 450", v)
	}

	// Rates the driver never configured resolve to nil.
	if v := DefaultChargeValue(d, domain.ChargePerHour); v != nil {
		t.Fatalf("PER_HOUR value = %v, want nil", v)
	}
	if v := DefaultChargeValue(d, domain.ChargePercentageOfLoad); v != nil {
		t.Fatalf("PERCENTAGE_OF_LOAD value = %v, want nil", v)
	}
}

func TestDefaultChargeValueZeroRate(t *testing.T) {
	zero := decimal.Zero
	d := &domain.Driver{ID: "drv-3", PerHourRate: &zero}

	if v := DefaultChargeValue(d, domain.ChargePerHour); v != nil {
		t.Fatalf("zero rate should resolve to nil, got %v", v)
	}
}

func TestNewDriverChargePrefill(t *testing.T) {
	got := NewDriverCharge(testDriver())

	if got.DriverID != "drv-1" {
		t.Fatalf("driver id = %q, want drv-1", got.DriverID)
	}
	if got.ChargeType == nil || *got.ChargeType != domain.ChargePerMile {
		t.Fatalf("charge type = %v, want PER_MILE", got.ChargeType)
	}
	if got.ChargeValue == nil || !got.ChargeValue.Equal(decimal.RequireFromString("2.10")) {
		t.Fatalf("charge value = %v, want 2.10", got.ChargeValue)
	}
}

func TestNewDriverChargeNoDefaults(t *testing.T) {
	got := NewDriverCharge(&domain.Driver{ID: "drv-4"})

	if got.ChargeType != nil || got.ChargeValue != nil {
		t.Fatalf("expected unconfigured charge, got %+v", got)
	}
}

func TestRefillChargeValueDiscardsTyped(t *testing.T) {
	d := testDriver()

	typed := decimal.RequireFromString("999")
	perMile := domain.ChargePerMile
	current := domain.DriverCharge{DriverID: d.ID, ChargeType: &perMile, ChargeValue: &typed}

	// Switching to FIXED_PAY replaces the typed value with that type's default.
	got := RefillChargeValue(d, current, domain.ChargeFixedPay)
	if got.ChargeType == nil || *got.ChargeType != domain.ChargeFixedPay {
		t.Fatalf("charge type = %v, want FIXED_PAY", got.ChargeType)
	}
	if got.ChargeValue == nil || !got.ChargeValue.Equal(decimal.RequireFromString("450")) {
		t.Fatalf("charge value = %v, want driver default 450", got.ChargeValue)
	}

	// Switching to a type with no stored rate clears the value entirely.
	got = RefillChargeValue(d, got, domain.ChargePerHour)
	if got.ChargeValue != nil {
		t.Fatalf("charge value = %v, want nil for unset rate", got.ChargeValue)
	}
}
