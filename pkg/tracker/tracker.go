// Package tracker polls the live data providers for the active pickup and
// publishes the combined runtime record the countdown engine reads.
package tracker

import (
	"context"
	"time"

	"github.com/gofetch/gofetch/pkg/gfdf"
	"github.com/gofetch/gofetch/pkg/runtimestate"
	"github.com/gofetch/gofetch/pkg/util"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
)

// RailSource supplies the decoded live arrival for a tracked service.
type RailSource interface {
	ServiceDetails(ctx context.Context, stationCode string, stationName string, serviceID string) (gfdf.Arrival, error)
}

// TravelSource supplies live driving durations.
type TravelSource interface {
	TravelMinutes(ctx context.Context, origin gfdf.Coordinates, destination gfdf.Coordinates) (int, error)
}

// PreferencesReader supplies the user-adjustable buffer and coordinate pairs
// for a pickup.
type PreferencesReader interface {
	Preferences(ctx context.Context, userID string, pickupID string) gfdf.PickupPreferences
}

// CadenceReader supplies the refresh cadence, re-read every cycle so a
// settings edit takes effect without restarting the tracker.
type CadenceReader interface {
	UpdateFrequency() time.Duration
}

// PickupTracker periodically refreshes one pickup's runtime record. Failed
// fetches keep the previous values; the next cycle retries independently.
type PickupTracker struct {
	Pickup gfdf.Pickup

	Rail        RailSource
	Travel      TravelSource
	Preferences PreferencesReader
	Store       runtimestate.Store
	Cadence     CadenceReader
}

// Run polls until the context is cancelled, sleeping the remainder of the
// cadence after each refresh.
func (t *PickupTracker) Run(ctx context.Context) {
	log.Info().
		Str("pickup", t.Pickup.PrimaryIdentifier).
		Str("location", t.Pickup.Location).
		Msg("Starting pickup tracker")

	for {
		startTime := time.Now()

		t.Refresh(ctx)

		waitTime := t.Cadence.UpdateFrequency() - time.Since(startTime)
		if waitTime < 0 {
			waitTime = 0
		}

		select {
		case <-ctx.Done():
			log.Info().Str("pickup", t.Pickup.PrimaryIdentifier).Msg("Stopping pickup tracker")
			return
		case <-time.After(waitTime):
		}
	}
}

// Refresh performs one poll cycle: live arrival always, travel estimate only
// once both coordinate pairs are known. The two fetches run concurrently and
// the merged record is written for this tracker's pickup id regardless of
// which pickup is active by completion time.
func (t *PickupTracker) Refresh(ctx context.Context) {
	pickupID := t.Pickup.PrimaryIdentifier

	preferences := t.Preferences.Preferences(ctx, t.Pickup.UserID, pickupID)
	previous, _ := t.Store.Get(ctx, pickupID)

	arrival := previous.Arrival
	travel := previous.Travel

	var wg conc.WaitGroup

	wg.Go(func() {
		liveArrival, err := t.Rail.ServiceDetails(ctx, t.Pickup.LocationCode, t.Pickup.Location, pickupID)
		if err != nil {
			log.Error().Err(err).Str("pickup", pickupID).Msg("Failed to refresh live arrival")
			return
		}

		// The scheduled arrival is pinned by the first successful fetch;
		// later cycles only move the delay
		scheduled := liveArrival.Scheduled
		if previous.Arrival.Known() {
			scheduled = previous.Arrival.ScheduledArrival
		}

		delayMinutes := 0
		if !liveArrival.OnTime {
			delayMinutes = util.DelayBetween(liveArrival.Scheduled, liveArrival.Expected)
		}

		arrival = gfdf.ArrivalSignal{
			ScheduledArrival: scheduled,
			DelayMinutes:     delayMinutes,
		}
	})

	if preferences.UserCoordinates != nil && preferences.LocationCoordinates != nil {
		wg.Go(func() {
			minutes, err := t.Travel.TravelMinutes(ctx, *preferences.UserCoordinates, *preferences.LocationCoordinates)
			if err != nil {
				log.Error().Err(err).Str("pickup", pickupID).Msg("Failed to refresh travel estimate")
				return
			}

			travel = gfdf.TravelEstimate{
				Origin:      preferences.UserCoordinates,
				Destination: preferences.LocationCoordinates,
				Minutes:     minutes,
				Computed:    true,
			}
		})
	}

	wg.Wait()

	runtime := gfdf.PickupRuntime{
		PickupID:      pickupID,
		Arrival:       arrival,
		Travel:        travel,
		BufferMinutes: preferences.BufferMinutes,
		LastUpdated:   time.Now(),
	}

	if err := t.Store.Put(ctx, runtime); err != nil {
		log.Error().Err(err).Str("pickup", pickupID).Msg("Failed to store runtime record")
	}
}
