package departure

import (
	"testing"
	"time"
)

func TestComputeLeaveBy(t *testing.T) {
	scheduled := time.Date(2024, time.March, 12, 18, 0, 0, 0, time.UTC)

	at := func(hour, minute int) time.Time {
		return time.Date(2024, time.March, 12, hour, minute, 0, 0, time.UTC)
	}

	tests := []struct {
		name          string
		delayMinutes  int
		travelMinutes int
		bufferMinutes int
		leaveBy       time.Time
	}{
		{"delayed with buffer", 5, 20, 10, at(17, 35)},
		{"delayed no buffer", 5, 20, 0, at(17, 45)},
		{"on time", 0, 20, 10, at(17, 30)},
		{"running early", -4, 20, 10, at(17, 26)},
		{"zero travel and buffer", 0, 0, 0, at(18, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeLeaveBy(scheduled, tc.delayMinutes, tc.travelMinutes, tc.bufferMinutes)
			if !got.Equal(tc.leaveBy) {
				t.Errorf("expected leave-by of %v, got %v", tc.leaveBy, got)
			}
		})
	}
}

func TestComputeLeaveByIsDeterministic(t *testing.T) {
	scheduled := time.Date(2024, time.March, 12, 18, 0, 0, 0, time.UTC)

	first := ComputeLeaveBy(scheduled, 7, 25, 5)
	second := ComputeLeaveBy(scheduled, 7, 25, 5)

	if !first.Equal(second) {
		t.Errorf("identical inputs produced %v and %v", first, second)
	}
}

func TestComputeLeaveByBufferMonotonic(t *testing.T) {
	scheduled := time.Date(2024, time.March, 12, 18, 0, 0, 0, time.UTC)

	previous := ComputeLeaveBy(scheduled, 0, 20, 0)
	for buffer := 1; buffer <= 60; buffer++ {
		current := ComputeLeaveBy(scheduled, 0, 20, buffer)
		if !current.Before(previous) {
			t.Fatalf("buffer %d did not move leave-by earlier: %v vs %v", buffer, current, previous)
		}
		previous = current
	}
}
