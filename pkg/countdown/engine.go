// Package countdown derives the live leave-by countdown for the active
// pickup and fires the departure notification exactly once per distinct
// leave-by instant.
package countdown

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gofetch/gofetch/pkg/departure"
	"github.com/gofetch/gofetch/pkg/gfdf"
	"github.com/gofetch/gofetch/pkg/runtimestate"
	"github.com/rs/zerolog/log"
)

type State string

const (
	// No pickup selected
	StateInactive State = "Inactive"
	// Pickup selected but the arrival or travel inputs are not populated yet
	StateAwaitingData State = "AwaitingData"
	// Valid leave-by computed, time still remaining
	StateCounting State = "Counting"
	// Leave-by has passed
	StateOverdue State = "Overdue"
)

// Notifier delivers the "time to leave" notification. Implementations are
// fire and forget - the engine records the dispatch regardless of delivery
// errors so a flaky sink can never cause a duplicate.
type Notifier interface {
	Notify(notification gfdf.Notification) error
}

// SettingsReader supplies the current user settings. The engine re-reads it
// on every tick so settings edits take effect without a restart; it must not
// perform network I/O.
type SettingsReader interface {
	Settings() gfdf.UserSettings
}

type Engine struct {
	clock    Clock
	notifier Notifier
	store    runtimestate.Store
	settings SettingsReader

	mutex       sync.Mutex
	active      *gfdf.Pickup
	state       State
	leaveBy     *time.Time
	remaining   *time.Duration
	notifiedKey string
}

func NewEngine(clock Clock, notifier Notifier, store runtimestate.Store, settings SettingsReader) *Engine {
	return &Engine{
		clock:    clock,
		notifier: notifier,
		store:    store,
		settings: settings,
		state:    StateInactive,
	}
}

// SetActive switches the pickup the engine is counting down for. Passing nil
// deactivates it. The notified key is cleared either way, so a pickup that is
// re-selected later may notify again for a fresh leave-by.
func (e *Engine) SetActive(pickup *gfdf.Pickup) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	e.active = pickup
	e.leaveBy = nil
	e.remaining = nil
	e.notifiedKey = ""

	if pickup == nil {
		e.state = StateInactive
	} else {
		e.state = StateAwaitingData
	}
}

// Tick recomputes the countdown from the latest published inputs. Called once
// a second while running; never performs network I/O.
func (e *Engine) Tick(ctx context.Context) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if e.active == nil {
		e.state = StateInactive
		e.leaveBy = nil
		e.remaining = nil
		return
	}

	runtime, found := e.store.Get(ctx, e.active.PrimaryIdentifier)

	// Until both the scheduled arrival and a travel estimate exist there is
	// nothing meaningful to count down from
	if !found || !runtime.Arrival.Known() || !runtime.Travel.Computed {
		e.state = StateAwaitingData
		e.leaveBy = nil
		e.remaining = nil
		return
	}

	leaveBy := departure.ComputeLeaveBy(
		runtime.Arrival.ScheduledArrival,
		runtime.Arrival.DelayMinutes,
		runtime.Travel.Minutes,
		runtime.BufferMinutes,
	)

	remaining := leaveBy.Sub(e.clock.Now())

	e.leaveBy = &leaveBy
	e.remaining = &remaining

	if remaining > 0 {
		e.state = StateCounting
		return
	}

	e.state = StateOverdue

	key := notificationKey(e.active.PrimaryIdentifier, leaveBy)
	if key == e.notifiedKey {
		return
	}

	if e.settings.Settings().NotificationsEnabled {
		notification := buildNotification(e.active, runtime)

		if err := e.notifier.Notify(notification); err != nil {
			log.Error().Err(err).Str("pickup", e.active.PrimaryIdentifier).Msg("Failed to dispatch departure notification")
		}
	}

	// Recorded even when disabled or failed - a given leave-by instant only
	// ever gets one dispatch attempt
	e.notifiedKey = key
}

// Run drives the engine on a one second tick until the context is cancelled.
func (e *Engine) Run(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.Tick(ctx)
		}
	}
}

func notificationKey(pickupID string, leaveBy time.Time) string {
	return fmt.Sprintf("%s@%d", pickupID, leaveBy.UnixMilli())
}

func buildNotification(pickup *gfdf.Pickup, runtime gfdf.PickupRuntime) gfdf.Notification {
	arrival := runtime.Arrival.ScheduledArrival.Local().Format("15:04")

	return gfdf.Notification{
		TargetUser: pickup.UserID,
		Type:       gfdf.NotificationTypePush,
		Title:      "Time to leave",
		Message: fmt.Sprintf(
			"Leave now to meet the %s arrival from %s at %s with %d minutes to spare",
			arrival, pickup.Origin, pickup.Location, runtime.BufferMinutes,
		),
	}
}
