package vision

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
	"github.com/anthonynsimon/bild/transform"
)

const triggerThreshold = 128

// PrepareTrigger readies a trigger-region capture for marker recognition:
// grayscale, 2x upscale, invert (the marker is light text on a dark panel;
// the engine wants black on white) and a hard threshold.
func PrepareTrigger(src image.Image) image.Image {
	b := src.Bounds()
	gray := effect.Grayscale(src)
	up := transform.Resize(gray, b.Dx()*ocrScale, b.Dy()*ocrScale, transform.Linear)
	inv := effect.Invert(up)
	return segment.Threshold(inv, triggerThreshold)
}
