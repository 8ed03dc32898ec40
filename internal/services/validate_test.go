package services

import (
	"errors"
	"testing"
	"time"

	"carrier-dispatch-service/internal/domain"

	"github.com/shopspring/decimal"
)

func validDraft(t *testing.T) *domain.RouteLegDraft {
	t.Helper()

	draft := domain.NewDraft()
	draft.SetDrivers([]domain.DriverCharge{charge(t, domain.ChargePerMile, "2.00")})
	draft.SetLocations([]domain.LegLocation{
		domain.FromLoadStop(domain.LoadStop{ID: "s-ship", Type: domain.StopShipper, Name: "Shipper"}),
		domain.FromLoadStop(domain.LoadStop{ID: "s-recv", Type: domain.StopReceiver, Name: "Receiver"}),
	})
	draft.ScheduledDate = time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	draft.ScheduledTime = "07:45"
	return draft
}

func TestValidateAcceptsCompleteDraft(t *testing.T) {
	if err := ValidateDraft(validDraft(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateNoDrivers(t *testing.T) {
	draft := validDraft(t)
	draft.SetDrivers(nil)

	err := ValidateDraft(draft)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestValidateUnconfiguredDriver(t *testing.T) {
	draft := validDraft(t)
	draft.SetDrivers([]domain.DriverCharge{{DriverID: "drv-9"}})

	err := ValidateDraft(draft)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestValidateChargeBounds(t *testing.T) {
	draft := validDraft(t)
	draft.SetDrivers([]domain.DriverCharge{charge(t, domain.ChargePercentageOfLoad, "150")})

	err := ValidateDraft(draft)
	var invalid *domain.InvalidChargeValueError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidChargeValueError, got %v", err)
	}
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatal("InvalidChargeValueError should match ErrValidation")
	}

	draft.SetDrivers([]domain.DriverCharge{charge(t, domain.ChargePercentageOfLoad, "50")})
	if err := ValidateDraft(draft); err != nil {
		t.Fatalf("50%% should be accepted, got %v", err)
	}
}

func TestValidateNegativeCharge(t *testing.T) {
	draft := validDraft(t)
	neg := decimal.RequireFromString("-5")
	perMile := domain.ChargePerMile
	draft.SetDrivers([]domain.DriverCharge{{DriverID: "drv-1", ChargeType: &perMile, ChargeValue: &neg}})

	var invalid *domain.InvalidChargeValueError
	if err := ValidateDraft(draft); !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidChargeValueError, got %v", err)
	}
}

func TestValidateTooFewLocations(t *testing.T) {
	draft := validDraft(t)
	draft.SetLocations(draft.Locations[:1])

	// Extra drivers do not compensate for a missing destination.
	a := charge(t, domain.ChargePerMile, "2.00")
	a.DriverID = "drv-a"
	b := charge(t, domain.ChargeFixedPay, "300")
	b.DriverID = "drv-b"
	draft.SetDrivers([]domain.DriverCharge{a, b})

	err := ValidateDraft(draft)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestValidateSchedule(t *testing.T) {
	draft := validDraft(t)
	draft.ScheduledDate = time.Time{}
	if err := ValidateDraft(draft); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for empty date, got %v", err)
	}

	draft = validDraft(t)
	for _, bad := range []string{"", "7:45", "25:00", "12:60", "noon", "12-30"} {
		draft.ScheduledTime = bad
		if err := ValidateDraft(draft); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("expected validation error for time %q, got %v", bad, err)
		}
	}

	draft.ScheduledTime = "23:59"
	if err := ValidateDraft(draft); err != nil {
		t.Fatalf("23:59 should be accepted, got %v", err)
	}
}

func TestValidateOrderOfChecks(t *testing.T) {
	// An empty draft fails on drivers first even though every later rule
	// is broken too.
	err := ValidateDraft(domain.NewDraft())
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "drivers" {
		t.Fatalf("first failing field = %q, want drivers", verr.Field)
	}
}
