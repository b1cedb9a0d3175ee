package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofetch/gofetch/pkg/gfdf"
	"github.com/gofetch/gofetch/pkg/runtimestate"
)

type stubRail struct {
	arrival gfdf.Arrival
	err     error
	calls   int
}

func (s *stubRail) ServiceDetails(ctx context.Context, stationCode string, stationName string, serviceID string) (gfdf.Arrival, error) {
	s.calls++
	return s.arrival, s.err
}

type stubTravel struct {
	minutes int
	err     error
	calls   int
}

func (s *stubTravel) TravelMinutes(ctx context.Context, origin gfdf.Coordinates, destination gfdf.Coordinates) (int, error) {
	s.calls++
	return s.minutes, s.err
}

type stubPreferences struct {
	preferences gfdf.PickupPreferences
}

func (s *stubPreferences) Preferences(ctx context.Context, userID string, pickupID string) gfdf.PickupPreferences {
	return s.preferences
}

type fixedCadence struct{}

func (fixedCadence) UpdateFrequency() time.Duration {
	return 1 * time.Minute
}

func at(hour, minute int) time.Time {
	return time.Date(2024, time.March, 12, hour, minute, 0, 0, time.UTC)
}

func newTestTracker(rail *stubRail, travel *stubTravel, preferences gfdf.PickupPreferences) (*PickupTracker, *runtimestate.MemoryStore) {
	store := runtimestate.NewMemoryStore()

	return &PickupTracker{
		Pickup: gfdf.Pickup{
			PrimaryIdentifier: "svc-1",
			UserID:            "user-1",
			Location:          "London Kings Cross",
			LocationCode:      "KGX",
		},

		Rail:        rail,
		Travel:      travel,
		Preferences: &stubPreferences{preferences: preferences},
		Store:       store,
		Cadence:     fixedCadence{},
	}, store
}

func TestRefreshPublishesRuntime(t *testing.T) {
	origin := &gfdf.Coordinates{Latitude: 53.8, Longitude: -1.5}
	destination := &gfdf.Coordinates{Latitude: 51.5, Longitude: -0.1}

	rail := &stubRail{arrival: gfdf.Arrival{Scheduled: at(18, 0), Expected: at(18, 5)}}
	travel := &stubTravel{minutes: 20}

	pickupTracker, store := newTestTracker(rail, travel, gfdf.PickupPreferences{
		BufferMinutes:       10,
		UserCoordinates:     origin,
		LocationCoordinates: destination,
	})

	ctx := context.Background()
	pickupTracker.Refresh(ctx)

	runtime, found := store.Get(ctx, "svc-1")
	if !found {
		t.Fatal("expected a runtime record")
	}

	if !runtime.Arrival.ScheduledArrival.Equal(at(18, 0)) {
		t.Errorf("unexpected scheduled arrival %v", runtime.Arrival.ScheduledArrival)
	}
	if runtime.Arrival.DelayMinutes != 5 {
		t.Errorf("expected 5 minute delay, got %d", runtime.Arrival.DelayMinutes)
	}
	if !runtime.Travel.Computed || runtime.Travel.Minutes != 20 {
		t.Errorf("unexpected travel estimate %+v", runtime.Travel)
	}
	if runtime.BufferMinutes != 10 {
		t.Errorf("expected buffer of 10, got %d", runtime.BufferMinutes)
	}
}

func TestRefreshKeepsStaleValuesOnFailure(t *testing.T) {
	origin := &gfdf.Coordinates{Latitude: 53.8, Longitude: -1.5}
	destination := &gfdf.Coordinates{Latitude: 51.5, Longitude: -0.1}

	rail := &stubRail{arrival: gfdf.Arrival{Scheduled: at(18, 0), Expected: at(18, 5)}}
	travel := &stubTravel{minutes: 20}

	pickupTracker, store := newTestTracker(rail, travel, gfdf.PickupPreferences{
		BufferMinutes:       10,
		UserCoordinates:     origin,
		LocationCoordinates: destination,
	})

	ctx := context.Background()
	pickupTracker.Refresh(ctx)

	// Both providers start failing
	rail.err = errors.New("gateway timeout")
	travel.err = errors.New("quota exhausted")
	pickupTracker.Refresh(ctx)

	runtime, found := store.Get(ctx, "svc-1")
	if !found {
		t.Fatal("expected the runtime record to survive the failed refresh")
	}

	if !runtime.Arrival.ScheduledArrival.Equal(at(18, 0)) || runtime.Arrival.DelayMinutes != 5 {
		t.Errorf("arrival signal lost on failure: %+v", runtime.Arrival)
	}
	if !runtime.Travel.Computed || runtime.Travel.Minutes != 20 {
		t.Errorf("travel estimate lost on failure: %+v", runtime.Travel)
	}
}

func TestRefreshFreezesScheduledArrival(t *testing.T) {
	rail := &stubRail{arrival: gfdf.Arrival{Scheduled: at(18, 0), Expected: at(18, 5)}}
	travel := &stubTravel{}

	pickupTracker, store := newTestTracker(rail, travel, gfdf.PickupPreferences{BufferMinutes: 10})

	ctx := context.Background()
	pickupTracker.Refresh(ctx)

	// The feed shifts its scheduled time on a later cycle; only the delay
	// may move
	rail.arrival = gfdf.Arrival{Scheduled: at(18, 2), Expected: at(18, 9)}
	pickupTracker.Refresh(ctx)

	runtime, _ := store.Get(ctx, "svc-1")
	if !runtime.Arrival.ScheduledArrival.Equal(at(18, 0)) {
		t.Errorf("scheduled arrival moved after first fetch: %v", runtime.Arrival.ScheduledArrival)
	}
	if runtime.Arrival.DelayMinutes != 7 {
		t.Errorf("expected refreshed delay of 7, got %d", runtime.Arrival.DelayMinutes)
	}
}

func TestRefreshSkipsTravelWithoutCoordinates(t *testing.T) {
	rail := &stubRail{arrival: gfdf.Arrival{Scheduled: at(18, 0), OnTime: true, Expected: at(18, 0)}}
	travel := &stubTravel{minutes: 20}

	pickupTracker, store := newTestTracker(rail, travel, gfdf.PickupPreferences{BufferMinutes: 5})

	ctx := context.Background()
	pickupTracker.Refresh(ctx)

	if travel.calls != 0 {
		t.Errorf("travel provider called without both coordinate pairs")
	}

	runtime, _ := store.Get(ctx, "svc-1")
	if runtime.Travel.Computed {
		t.Errorf("travel estimate should remain unknown: %+v", runtime.Travel)
	}
	if runtime.Arrival.DelayMinutes != 0 {
		t.Errorf("on time service should have zero delay, got %d", runtime.Arrival.DelayMinutes)
	}
}
