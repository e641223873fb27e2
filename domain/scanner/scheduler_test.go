package scanner

import (
	"sync"
	"testing"
	"time"

	"github.com/jhenke/lootscout-go/domain/items"
)

// fakeSurface records show/hide calls.
type fakeSurface struct {
	mu     sync.Mutex
	shows  []Notification
	hidden int
}

func (s *fakeSurface) Show(n Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shows = append(s.shows, n)
}

func (s *fakeSurface) Hide() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hidden++
}

func (s *fakeSurface) shown() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Notification, len(s.shows))
	copy(out, s.shows)
	return out
}

func (s *fakeSurface) hides() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hidden
}

func testKnowledgeBase() *items.Store {
	s := items.NewStore(nil)
	s.Put(items.Item{Name: "Basic Electronics", Action: "RECYCLE", RecycleFor: "wires"})
	s.Put(items.Item{Name: "Gun Oil", Action: "KEEP"})
	return s
}

// newTestScheduler pins the scheduler clock to a controllable instant.
func newTestScheduler(cooldown, display time.Duration) (*NotificationScheduler, *fakeSurface, *time.Time) {
	surface := &fakeSurface{}
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	s := NewNotificationScheduler(testKnowledgeBase(), surface, cooldown, display, discardLogger)
	s.now = func() time.Time { return now }
	return s, surface, &now
}

func TestSchedulerShowsKnownItem(t *testing.T) {
	s, surface, _ := newTestScheduler(2*time.Second, 4*time.Second)
	if !s.Offer("BASIC ELECTRONICS") {
		t.Fatal("expected notification")
	}
	shown := surface.shown()
	if len(shown) != 1 {
		t.Fatalf("expected 1 show, got %d", len(shown))
	}
	if shown[0].Item.Action != "RECYCLE" {
		t.Fatalf("expected RECYCLE, got %q", shown[0].Item.Action)
	}
}

func TestSchedulerCooldownSuppressesRepeat(t *testing.T) {
	s, surface, now := newTestScheduler(2*time.Second, 4*time.Second)
	s.Offer("GUN OIL")

	*now = now.Add(1 * time.Second)
	if s.Offer("gun oil") {
		t.Fatal("repeat inside cooldown must be suppressed")
	}

	*now = now.Add(1100 * time.Millisecond)
	if !s.Offer("GUN OIL") {
		t.Fatal("expected show after cooldown elapsed")
	}
	if got := len(surface.shown()); got != 2 {
		t.Fatalf("expected 2 shows, got %d", got)
	}
}

func TestSchedulerUnknownLabelStaysQuiet(t *testing.T) {
	s, surface, now := newTestScheduler(2*time.Second, 4*time.Second)
	if s.Offer("PLASMA CORE") {
		t.Fatal("unknown label must not notify")
	}
	if got := len(surface.shown()); got != 0 {
		t.Fatalf("expected no shows, got %d", got)
	}

	// The miss still starts a cooldown, so the misread is not retried every
	// tick.
	*now = now.Add(500 * time.Millisecond)
	if s.Offer("PLASMA CORE") {
		t.Fatal("unknown label must stay on cooldown")
	}
}

func TestSchedulerAutoHideAfterDisplayWindow(t *testing.T) {
	s, surface, now := newTestScheduler(2*time.Second, 4*time.Second)
	s.Offer("GUN OIL")

	*now = now.Add(3 * time.Second)
	s.Tick()
	if surface.hides() != 0 {
		t.Fatal("hidden before display window elapsed")
	}

	*now = now.Add(1100 * time.Millisecond)
	s.Tick()
	if surface.hides() != 1 {
		t.Fatal("expected auto-hide after display window")
	}
	s.Tick()
	if surface.hides() != 1 {
		t.Fatal("hide must not repeat")
	}
}

func TestSchedulerSupersedesDifferentItem(t *testing.T) {
	s, surface, now := newTestScheduler(10*time.Second, 4*time.Second)
	s.Offer("GUN OIL")
	*now = now.Add(1 * time.Second)
	if !s.Offer("BASIC ELECTRONICS") {
		t.Fatal("different item must supersede immediately")
	}
	shown := surface.shown()
	if len(shown) != 2 || shown[1].Item.Name != "Basic Electronics" {
		t.Fatalf("unexpected shows %+v", shown)
	}

	// The display window restarts with the new item.
	*now = now.Add(3500 * time.Millisecond)
	s.Tick()
	if surface.hides() != 0 {
		t.Fatal("supersede must restart the display window")
	}
}

func TestSchedulerResetClearsCooldowns(t *testing.T) {
	s, surface, _ := newTestScheduler(time.Hour, 4*time.Second)
	s.Offer("GUN OIL")
	s.Reset()
	if surface.hides() != 1 {
		t.Fatal("reset must hide the visible notification")
	}
	if !s.Offer("GUN OIL") {
		t.Fatal("expected show after reset cleared cooldowns")
	}
}
