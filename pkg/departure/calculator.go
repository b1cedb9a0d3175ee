// Package departure computes the latest safe moment to leave for a pickup.
package departure

import "time"

// ComputeLeaveBy returns the latest departure instant that still reaches the
// pickup before the (possibly delayed) arrival, once the travel time and the
// safety buffer are accounted for.
//
// This is a pure arithmetic transform. It assumes scheduledArrival is a real
// instant and travelMinutes is a known value - the countdown engine guards
// unready inputs before calling it. delayMinutes may be negative for a
// service running early.
func ComputeLeaveBy(scheduledArrival time.Time, delayMinutes int, travelMinutes int, bufferMinutes int) time.Time {
	adjustedArrival := scheduledArrival.Add(time.Duration(delayMinutes) * time.Minute)

	return adjustedArrival.
		Add(-time.Duration(travelMinutes) * time.Minute).
		Add(-time.Duration(bufferMinutes) * time.Minute)
}
