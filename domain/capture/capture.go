package capture

import (
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/vova616/screenshot"
)

// screenGrabber captures via the OS screenshot facility.
type screenGrabber struct {
	logger *slog.Logger
}

// NewGrabber returns a Grabber backed by the active display.
func NewGrabber(logger *slog.Logger) Grabber {
	return &screenGrabber{logger: logger}
}

func (g *screenGrabber) Capture(r image.Rectangle) (*Frame, error) {
	if r.Empty() {
		return nil, fmt.Errorf("capture: empty region %v", r)
	}
	img, err := screenshot.CaptureRect(r)
	if err != nil {
		return nil, fmt.Errorf("capture: grab %v: %w", r, err)
	}
	return &Frame{Image: img, Region: r, CapturedAt: time.Now()}, nil
}

func (g *screenGrabber) ScreenBounds() (image.Rectangle, error) {
	rect, err := screenshot.ScreenRect()
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("capture: screen bounds: %w", err)
	}
	return rect, nil
}

// ClampToScreen clips r to screen bounds while keeping at least one pixel of
// area, so a cursor parked at a screen edge still yields a usable capture.
func ClampToScreen(r, screen image.Rectangle) image.Rectangle {
	left := clamp(r.Min.X, screen.Min.X, screen.Max.X-1)
	top := clamp(r.Min.Y, screen.Min.Y, screen.Max.Y-1)
	right := clamp(r.Max.X, left+1, screen.Max.X)
	bottom := clamp(r.Max.Y, top+1, screen.Max.Y)
	return image.Rect(left, top, right, bottom)
}

// CursorRegion computes the tooltip capture rectangle anchored to the
// pointer. Offsets are applied before clamping; the offset deliberately
// leads the cursor toward where tooltips render.
func CursorRegion(cursor image.Point, w, h, offsetX, offsetY int, screen image.Rectangle) image.Rectangle {
	left := cursor.X + offsetX
	top := cursor.Y + offsetY
	return ClampToScreen(image.Rect(left, top, left+w, top+h), screen)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
