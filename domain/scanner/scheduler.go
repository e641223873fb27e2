package scanner

import (
	"log/slog"
	"strings"
	"sync"
	"time"
)

// NotificationScheduler decides when a resolved label becomes a visible
// notification. Each label carries its own cooldown so hovering back and
// forth between two items does not spam the overlay, and a shown
// notification hides itself after the display duration.
type NotificationScheduler struct {
	mu       sync.Mutex
	lookup   Lookup
	surface  Surface
	cooldown time.Duration
	display  time.Duration
	lastSeen map[string]time.Time
	shownAt  time.Time
	showing  bool
	now      func() time.Time
	logger   *slog.Logger
}

// NewNotificationScheduler builds a scheduler over the knowledge base and
// display surface.
func NewNotificationScheduler(lookup Lookup, surface Surface, cooldown, display time.Duration, logger *slog.Logger) *NotificationScheduler {
	return &NotificationScheduler{
		lookup:   lookup,
		surface:  surface,
		cooldown: cooldown,
		display:  display,
		lastSeen: make(map[string]time.Time),
		now:      time.Now,
		logger:   logger,
	}
}

// Offer submits a recognized label. It returns true when a notification was
// shown. Labels on cooldown are dropped. Labels missing from the knowledge
// base start their cooldown but show nothing, so a misread tooltip stays
// quiet instead of flashing noise.
func (s *NotificationScheduler) Offer(label string) bool {
	key := strings.ToUpper(strings.TrimSpace(label))
	if key == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if last, ok := s.lastSeen[key]; ok && now.Sub(last) < s.cooldown {
		return false
	}
	s.lastSeen[key] = now

	item, ok := s.lookup.Lookup(label)
	if !ok {
		if s.logger != nil {
			s.logger.Debug("label not in knowledge base", slog.String("label", label))
		}
		return false
	}

	// A different item under the cursor replaces the current notification
	// immediately rather than waiting out its display window.
	s.surface.Show(Notification{Label: label, Item: item, CreatedAt: now})
	s.shownAt = now
	s.showing = true
	if s.logger != nil {
		s.logger.Info("notification shown",
			slog.String("label", label),
			slog.String("action", item.Action),
		)
	}
	return true
}

// Tick hides the current notification once its display window has passed.
// The scan loop calls it every tooltip interval.
func (s *NotificationScheduler) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.showing {
		return
	}
	if s.now().Sub(s.shownAt) < s.display {
		return
	}
	s.surface.Hide()
	s.showing = false
}

// Reset clears all cooldowns and hides any visible notification. Called on
// panel close so reopening the panel re-announces items.
func (s *NotificationScheduler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = make(map[string]time.Time)
	if s.showing {
		s.surface.Hide()
		s.showing = false
	}
}
