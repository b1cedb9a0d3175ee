package util

import (
	"fmt"
	"time"
)

// CombineDateTime takes the date portion of date and the clock portion of
// sourceTime and produces a single instant in date's location.
func CombineDateTime(date time.Time, sourceTime time.Time) time.Time {
	newDateTime := time.Date(date.Year(), date.Month(), date.Day(), sourceTime.Hour(), sourceTime.Minute(), sourceTime.Second(), sourceTime.Nanosecond(), date.Location())

	return newDateTime
}

// ParseRailTime converts an "HH:MM" wall clock string from the live rail feed
// into an instant on the same day as ref, in ref's location.
func ParseRailTime(value string, ref time.Time) (time.Time, error) {
	clockTime, err := time.Parse("15:04", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid rail time %q: %w", value, err)
	}

	return CombineDateTime(ref, clockTime), nil
}

// DelayBetween returns the signed delay in minutes between a scheduled and an
// expected instant. Both instants come from same-day "HH:MM" parsing, so a
// service running over midnight produces a raw difference close to a full
// day; differences beyond twelve hours are wrapped back by a day so a 23:58
// arrival expected at 00:05 is a +7 minute delay, not -1433.
func DelayBetween(scheduled time.Time, expected time.Time) int {
	diff := expected.Sub(scheduled)

	if diff > 12*time.Hour {
		diff -= 24 * time.Hour
	} else if diff < -12*time.Hour {
		diff += 24 * time.Hour
	}

	return int(diff.Round(time.Minute) / time.Minute)
}
