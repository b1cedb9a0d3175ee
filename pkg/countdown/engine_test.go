package countdown

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gofetch/gofetch/pkg/gfdf"
	"github.com/gofetch/gofetch/pkg/runtimestate"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type recordingNotifier struct {
	notifications []gfdf.Notification
	err           error
}

func (n *recordingNotifier) Notify(notification gfdf.Notification) error {
	n.notifications = append(n.notifications, notification)
	return n.err
}

type staticSettings struct {
	settings gfdf.UserSettings
}

func (s *staticSettings) Settings() gfdf.UserSettings {
	return s.settings
}

func testPickup(id string) *gfdf.Pickup {
	return &gfdf.Pickup{
		PrimaryIdentifier: id,
		UserID:            "user-1",
		Type:              gfdf.PickupTypeTrain,
		Location:          "London Kings Cross",
		LocationCode:      "KGX",
		Origin:            "Leeds",
	}
}

func testRuntime(id string, scheduled time.Time) gfdf.PickupRuntime {
	return gfdf.PickupRuntime{
		PickupID: id,
		Arrival: gfdf.ArrivalSignal{
			ScheduledArrival: scheduled,
			DelayMinutes:     5,
		},
		Travel: gfdf.TravelEstimate{
			Minutes:  20,
			Computed: true,
		},
		BufferMinutes: 10,
	}
}

func newTestEngine(now time.Time) (*Engine, *fakeClock, *recordingNotifier, *runtimestate.MemoryStore, *staticSettings) {
	clock := &fakeClock{now: now}
	notifier := &recordingNotifier{}
	store := runtimestate.NewMemoryStore()
	settings := &staticSettings{settings: gfdf.UserSettings{NotificationsEnabled: true, UpdateFrequencyMinutes: 1}}

	return NewEngine(clock, notifier, store, settings), clock, notifier, store, settings
}

func TestTickCountsDownToLeaveBy(t *testing.T) {
	scheduled := time.Date(2024, time.March, 12, 18, 0, 0, 0, time.UTC)
	now := time.Date(2024, time.March, 12, 17, 0, 0, 0, time.UTC)

	engine, _, notifier, store, _ := newTestEngine(now)
	ctx := context.Background()

	engine.SetActive(testPickup("svc-1"))
	store.Put(ctx, testRuntime("svc-1", scheduled))

	engine.Tick(ctx)

	snapshot := engine.Snapshot()
	if snapshot.State != StateCounting {
		t.Fatalf("expected Counting, got %s", snapshot.State)
	}

	// 18:00 + 5 delay - 20 travel - 10 buffer = 17:35
	expectedLeaveBy := time.Date(2024, time.March, 12, 17, 35, 0, 0, time.UTC)
	if snapshot.LeaveBy == nil || !snapshot.LeaveBy.Equal(expectedLeaveBy) {
		t.Errorf("expected leave-by %v, got %v", expectedLeaveBy, snapshot.LeaveBy)
	}

	if snapshot.TimeRemainingMs == nil || *snapshot.TimeRemainingMs != (35*time.Minute).Milliseconds() {
		t.Errorf("expected 35 minutes remaining, got %v", snapshot.TimeRemainingMs)
	}

	if len(notifier.notifications) != 0 {
		t.Errorf("no notification expected while counting, got %d", len(notifier.notifications))
	}
}

func TestTickNotifiesOncePerLeaveBy(t *testing.T) {
	scheduled := time.Date(2024, time.March, 12, 18, 0, 0, 0, time.UTC)
	// Already past the 17:35 leave-by
	now := time.Date(2024, time.March, 12, 17, 36, 0, 0, time.UTC)

	engine, clock, notifier, store, _ := newTestEngine(now)
	ctx := context.Background()

	engine.SetActive(testPickup("svc-1"))
	store.Put(ctx, testRuntime("svc-1", scheduled))

	engine.Tick(ctx)

	if engine.Snapshot().State != StateOverdue {
		t.Fatalf("expected Overdue, got %s", engine.Snapshot().State)
	}
	if len(notifier.notifications) != 1 {
		t.Fatalf("expected exactly one notification, got %d", len(notifier.notifications))
	}

	// Repeated ticks after crossing zero must not re-fire
	for i := 0; i < 60; i++ {
		clock.Advance(1 * time.Second)
		engine.Tick(ctx)
	}

	if len(notifier.notifications) != 1 {
		t.Errorf("expected no duplicate notifications, got %d", len(notifier.notifications))
	}

	// A buffer edit producing a new leave-by that is also in the past is
	// allowed to notify exactly once more
	runtime := testRuntime("svc-1", scheduled)
	runtime.BufferMinutes = 0
	store.Put(ctx, runtime)

	clock.now = time.Date(2024, time.March, 12, 17, 50, 0, 0, time.UTC)
	engine.Tick(ctx)
	engine.Tick(ctx)

	if len(notifier.notifications) != 2 {
		t.Errorf("expected a second notification for the new leave-by, got %d", len(notifier.notifications))
	}
}

func TestTickNotificationContent(t *testing.T) {
	scheduled := time.Date(2024, time.March, 12, 18, 0, 0, 0, time.UTC)
	now := time.Date(2024, time.March, 12, 19, 0, 0, 0, time.UTC)

	engine, _, notifier, store, _ := newTestEngine(now)
	ctx := context.Background()

	engine.SetActive(testPickup("svc-1"))
	store.Put(ctx, testRuntime("svc-1", scheduled))

	engine.Tick(ctx)

	if len(notifier.notifications) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.notifications))
	}

	notification := notifier.notifications[0]
	if notification.TargetUser != "user-1" {
		t.Errorf("unexpected target user %q", notification.TargetUser)
	}

	for _, fragment := range []string{"Leeds", "London Kings Cross", "10 minutes"} {
		if !strings.Contains(notification.Message, fragment) {
			t.Errorf("notification message %q missing %q", notification.Message, fragment)
		}
	}
}

func TestTickGuardsUnreadyInputs(t *testing.T) {
	now := time.Date(2024, time.March, 12, 17, 0, 0, 0, time.UTC)
	engine, clock, notifier, store, _ := newTestEngine(now)
	ctx := context.Background()

	engine.SetActive(testPickup("svc-1"))

	// No runtime record at all
	engine.Tick(ctx)
	if engine.Snapshot().State != StateAwaitingData {
		t.Fatalf("expected AwaitingData with no record, got %s", engine.Snapshot().State)
	}

	// Scheduled arrival known but travel estimate not yet computed
	runtime := testRuntime("svc-1", now.Add(30*time.Minute))
	runtime.Travel = gfdf.TravelEstimate{}
	store.Put(ctx, runtime)

	for i := 0; i < 120; i++ {
		clock.Advance(1 * time.Second)
		engine.Tick(ctx)
	}

	snapshot := engine.Snapshot()
	if snapshot.State != StateAwaitingData {
		t.Errorf("expected AwaitingData while travel unknown, got %s", snapshot.State)
	}
	if snapshot.LeaveBy != nil || snapshot.TimeRemainingMs != nil {
		t.Error("expected placeholder outputs while awaiting data")
	}
	if len(notifier.notifications) != 0 {
		t.Errorf("no notification possible while awaiting data, got %d", len(notifier.notifications))
	}

	// A zero-minute travel estimate explicitly marked computed is legitimate
	runtime.Travel = gfdf.TravelEstimate{Minutes: 0, Computed: true}
	store.Put(ctx, runtime)
	engine.Tick(ctx)

	if engine.Snapshot().State != StateCounting {
		t.Errorf("expected Counting once travel is computed, got %s", engine.Snapshot().State)
	}
}

func TestSetActiveResetsNotifiedKey(t *testing.T) {
	scheduled := time.Date(2024, time.March, 12, 18, 0, 0, 0, time.UTC)
	now := time.Date(2024, time.March, 12, 19, 0, 0, 0, time.UTC)

	engine, _, notifier, store, _ := newTestEngine(now)
	ctx := context.Background()

	engine.SetActive(testPickup("svc-1"))
	store.Put(ctx, testRuntime("svc-1", scheduled))
	engine.Tick(ctx)

	if len(notifier.notifications) != 1 {
		t.Fatalf("expected one notification for svc-1, got %d", len(notifier.notifications))
	}

	// Switching away and back mid-countdown clears the notified key; svc-2's
	// record is independent of svc-1's
	engine.SetActive(testPickup("svc-2"))
	engine.Tick(ctx)

	if engine.Snapshot().State != StateAwaitingData {
		t.Fatalf("expected AwaitingData for svc-2, got %s", engine.Snapshot().State)
	}

	// A late-completing refresh for svc-1 updates svc-1's record only and
	// must not affect svc-2's countdown
	store.Put(ctx, testRuntime("svc-1", scheduled.Add(10*time.Minute)))
	engine.Tick(ctx)

	if engine.Snapshot().State != StateAwaitingData {
		t.Errorf("svc-1 refresh leaked into svc-2 countdown, state %s", engine.Snapshot().State)
	}
	if len(notifier.notifications) != 1 {
		t.Errorf("expected no extra notifications after switching, got %d", len(notifier.notifications))
	}

	store.Put(ctx, testRuntime("svc-2", scheduled))
	engine.Tick(ctx)

	if len(notifier.notifications) != 2 {
		t.Errorf("expected svc-2 to notify once its own data arrived, got %d", len(notifier.notifications))
	}
}

func TestTickHonoursNotificationsDisabled(t *testing.T) {
	scheduled := time.Date(2024, time.March, 12, 18, 0, 0, 0, time.UTC)
	now := time.Date(2024, time.March, 12, 19, 0, 0, 0, time.UTC)

	engine, _, notifier, store, settings := newTestEngine(now)
	settings.settings.NotificationsEnabled = false
	ctx := context.Background()

	engine.SetActive(testPickup("svc-1"))
	store.Put(ctx, testRuntime("svc-1", scheduled))
	engine.Tick(ctx)

	if engine.Snapshot().State != StateOverdue {
		t.Fatalf("expected Overdue, got %s", engine.Snapshot().State)
	}
	if len(notifier.notifications) != 0 {
		t.Errorf("notifications disabled but %d dispatched", len(notifier.notifications))
	}

	// The leave-by instant got its one dispatch attempt while disabled, so
	// enabling afterwards stays quiet until the leave-by moves
	settings.settings.NotificationsEnabled = true
	engine.Tick(ctx)

	if len(notifier.notifications) != 0 {
		t.Errorf("expected no late dispatch for an already-crossed leave-by, got %d", len(notifier.notifications))
	}

	delayed := testRuntime("svc-1", scheduled)
	delayed.Arrival.DelayMinutes = 90
	store.Put(ctx, delayed)
	engine.Tick(ctx)

	if len(notifier.notifications) != 1 {
		t.Errorf("expected a fresh leave-by to notify once enabled, got %d", len(notifier.notifications))
	}
}
