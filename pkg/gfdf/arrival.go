package gfdf

import "time"

// Arrival is the decoded form of a single live arrival record. The rail feed
// reports expected time either as a clock time or as an "On time" marker;
// that marker is decoded into the OnTime flag at the client boundary and
// never appears as a magic string past it.
type Arrival struct {
	Scheduled time.Time
	Expected  time.Time
	OnTime    bool
}

// ArrivalSignal is the refreshable live state of a tracked arrival.
// ScheduledArrival is frozen on the first successful fetch for a pickup;
// later refreshes only move DelayMinutes.
type ArrivalSignal struct {
	ScheduledArrival time.Time `bson:"scheduledarrival" json:"scheduledArrival"`

	// Signed, negative when the service is running early
	DelayMinutes int `bson:"delayminutes" json:"delayMinutes"`
}

func (a ArrivalSignal) Known() bool {
	return !a.ScheduledArrival.IsZero()
}
