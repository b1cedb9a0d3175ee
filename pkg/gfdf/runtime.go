package gfdf

import "time"

// PickupRuntime is the per-pickup live record the countdown engine reads on
// every tick. Trackers always write the record for the pickup id they were
// polling for, so a refresh that completes after the active selection has
// moved on lands in its own record and never bleeds into another pickup's
// countdown.
type PickupRuntime struct {
	PickupID string `bson:"pickupid" json:"pickupID"`

	Arrival ArrivalSignal  `bson:"arrival" json:"arrival"`
	Travel  TravelEstimate `bson:"travel" json:"travel"`

	BufferMinutes int `bson:"bufferminutes" json:"bufferMinutes"`

	LastUpdated time.Time `bson:"lastupdated" json:"lastUpdated"`
}
