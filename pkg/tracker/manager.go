package tracker

import (
	"context"
	"sync"

	"github.com/gofetch/gofetch/pkg/countdown"
	"github.com/gofetch/gofetch/pkg/gfdf"
	"github.com/gofetch/gofetch/pkg/runtimestate"
)

// Manager owns the tracker lifecycle for the active pickup selection. At most
// one tracker runs per selection; switching pickups cancels the old tracker's
// context and resets the countdown engine, while any still in-flight refresh
// completes into its own pickup's record.
type Manager struct {
	Rail        RailSource
	Travel      TravelSource
	Preferences PreferencesReader
	Store       runtimestate.Store
	Cadence     CadenceReader
	Engine      *countdown.Engine

	mutex  sync.Mutex
	cancel context.CancelFunc
	active *gfdf.Pickup
}

// Activate makes pickup the tracked selection, replacing any previous one.
func (m *Manager) Activate(ctx context.Context, pickup gfdf.Pickup) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.active != nil && m.active.PrimaryIdentifier == pickup.PrimaryIdentifier {
		return
	}

	if m.cancel != nil {
		m.cancel()
	}

	trackerCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.active = &pickup

	m.Engine.SetActive(&pickup)

	pickupTracker := &PickupTracker{
		Pickup: pickup,

		Rail:        m.Rail,
		Travel:      m.Travel,
		Preferences: m.Preferences,
		Store:       m.Store,
		Cadence:     m.Cadence,
	}

	go pickupTracker.Run(trackerCtx)
}

// Deactivate stops tracking entirely, eg when the last pickup completes.
func (m *Manager) Deactivate() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}

	m.active = nil
	m.Engine.SetActive(nil)
}

// Active returns the currently tracked pickup, if any.
func (m *Manager) Active() *gfdf.Pickup {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.active
}
