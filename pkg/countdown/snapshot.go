package countdown

import "time"

// Snapshot is a point in time view of the countdown, safe to serve from the
// API while the engine keeps ticking.
type Snapshot struct {
	PickupID string `json:"pickupID,omitempty"`
	State    State  `json:"state"`

	LeaveBy         *time.Time `json:"leaveBy,omitempty"`
	TimeRemainingMs *int64     `json:"timeRemainingMs,omitempty"`
}

func (e *Engine) Snapshot() Snapshot {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	snapshot := Snapshot{
		State: e.state,
	}

	if e.active != nil {
		snapshot.PickupID = e.active.PrimaryIdentifier
	}

	if e.leaveBy != nil {
		leaveBy := *e.leaveBy
		snapshot.LeaveBy = &leaveBy
	}

	if e.remaining != nil {
		remainingMs := e.remaining.Milliseconds()
		snapshot.TimeRemainingMs = &remainingMs
	}

	return snapshot
}
