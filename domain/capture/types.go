package capture

import (
	"image"
	"time"
)

// Frame is one screen capture tagged with the region it came from. Frames
// are owned by the pipeline step that requested them and are discarded after
// preprocessing.
type Frame struct {
	Image      *image.RGBA
	Region     image.Rectangle
	CapturedAt time.Time
}

// Grabber captures rectangular screen regions on demand.
type Grabber interface {
	Capture(r image.Rectangle) (*Frame, error)
	ScreenBounds() (image.Rectangle, error)
}

// CursorFunc reports the current pointer position in physical pixels.
type CursorFunc func() (image.Point, error)
