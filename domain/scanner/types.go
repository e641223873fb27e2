// Package scanner runs the two-phase screen scan: a slow loop that watches
// fixed regions for panel markers, and a fast loop that reads item tooltips
// near the cursor while a panel is open.
package scanner

import (
	"image"
	"time"

	"github.com/jhenke/lootscout-go/domain/capture"
	"github.com/jhenke/lootscout-go/domain/items"
	"github.com/jhenke/lootscout-go/domain/ocr"
)

// TriggerState names which panel, if any, is currently on screen.
type TriggerState int32

const (
	StateIdle TriggerState = iota
	StateMenuActive
	StateRaidActive
)

func (s TriggerState) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateMenuActive:
		return "MENU_ACTIVE"
	case StateRaidActive:
		return "RAID_ACTIVE"
	default:
		return "UNKNOWN"
	}
}

// Active reports whether tooltip scanning should run in this state.
func (s TriggerState) Active() bool {
	return s == StateMenuActive || s == StateRaidActive
}

// Capturer grabs a screen region.
type Capturer interface {
	Capture(region image.Rectangle) (*capture.Frame, error)
}

// Recognizer turns a prepared capture into text.
type Recognizer interface {
	Recognize(img image.Image, mode ocr.Mode) (ocr.Result, error)
}

// Lookup resolves a recognized label against the knowledge base.
type Lookup interface {
	Lookup(label string) (items.Item, bool)
}

// Notification is a resolved item ready for display.
type Notification struct {
	Label     string
	Item      items.Item
	CreatedAt time.Time
}

// Surface displays notifications to the player. Implementations decide the
// rendering; the scanner only decides when to show and hide.
type Surface interface {
	Show(n Notification)
	Hide()
}
