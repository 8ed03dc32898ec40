package cache

import (
	"context"
	"testing"
	"time"

	"carrier-dispatch-service/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

func newTestStore(t *testing.T) (*RedisDraftStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisDraftStore(client), mr
}

func TestDraftStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	perMile := domain.ChargePerMile
	rate := decimal.RequireFromString("2.50")
	draft := &domain.RouteLegDraft{
		DriverInstructions: "call on arrival",
		ScheduledDate:      time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		ScheduledTime:      "08:30",
		SendSMS:            true,
	}
	draft.SetDrivers([]domain.DriverCharge{
		{DriverID: "drv-1", ChargeType: &perMile, ChargeValue: &rate},
	})
	draft.SetLocations([]domain.LegLocation{
		domain.FromLoadStop(domain.LoadStop{ID: "stop-1", Type: domain.StopShipper, Name: "Shipper"}),
		domain.FromLocation(domain.Location{ID: "loc-1", Name: "Yard"}),
	})

	if err := store.SaveDraft(ctx, "load:1:new", draft); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.LoadDraft(ctx, "load:1:new")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected a draft, got nil")
	}

	if len(got.Drivers) != 1 || got.Drivers[0].DriverID != "drv-1" {
		t.Fatalf("drivers = %+v, want one charge for drv-1", got.Drivers)
	}
	if got.Drivers[0].ChargeValue == nil || !got.Drivers[0].ChargeValue.Equal(rate) {
		t.Fatalf("charge value = %v, want 2.50", got.Drivers[0].ChargeValue)
	}
	if len(got.Locations) != 2 {
		t.Fatalf("expected 2 locations, got %d", len(got.Locations))
	}
	if got.Locations[0].Kind != domain.KindLoadStop || got.Locations[0].LocationID() != "stop-1" {
		t.Fatalf("first location = %+v, want load stop stop-1", got.Locations[0])
	}
	if got.ScheduledTime != "08:30" || !got.SendSMS {
		t.Fatalf("schedule/sms lost in round trip: %+v", got)
	}
}

func TestDraftStoreMissingSession(t *testing.T) {
	store, _ := newTestStore(t)

	got, err := store.LoadDraft(context.Background(), "load:unknown:new")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil draft for unknown session, got %+v", got)
	}
}

func TestDraftStoreDeleteAndExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	draft := domain.NewDraft()
	draft.ScheduledTime = "09:00"

	if err := store.SaveDraft(ctx, "load:2:leg:9", draft); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.DeleteDraft(ctx, "load:2:leg:9"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := store.LoadDraft(ctx, "load:2:leg:9")
	if err != nil || got != nil {
		t.Fatalf("after delete: draft=%v err=%v, want nil/nil", got, err)
	}

	// Deleting again is a no-op, not an error.
	if err := store.DeleteDraft(ctx, "load:2:leg:9"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.SaveDraft(ctx, "load:3:new", draft); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mr.FastForward(DefaultDraftTTL + time.Minute)

	got, err = store.LoadDraft(ctx, "load:3:new")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected expired draft to be gone, got %+v", got)
	}
}
