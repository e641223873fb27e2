package vision

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	cream    = color.RGBA{249, 238, 223, 255} // #f9eedf panel tone
	darkText = color.RGBA{30, 28, 25, 255}
	tagBlue  = color.RGBA{60, 120, 220, 255}
	world    = color.RGBA{90, 110, 70, 255} // muddy game-world green
)

// newCapture returns a w x h frame filled with the given color.
func newCapture(w, h int, fill color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, fill)
		}
	}
	return img
}

// drawLabel renders text with a fixed bitmap face, baseline at (x, y).
func drawLabel(dst *image.RGBA, text string, x, y int, c color.RGBA) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func countShade(img image.Image, want uint8) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if gray8(img.At(x, y)) == want {
				n++
			}
		}
	}
	return n
}

// countDark tolerates the blending the 2x upscale introduces around
// single-pixel glyph strokes.
func countDark(img image.Image) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if gray8(img.At(x, y)) < 128 {
				n++
			}
		}
	}
	return n
}

func gray8(c color.Color) uint8 {
	g := color.GrayModel.Convert(c).(color.Gray)
	return g.Y
}

func TestPrepareTooltipExtractsDarkText(t *testing.T) {
	cap := newCapture(200, 60, cream)
	drawLabel(cap, "BASIC ELECTRONICS", 10, 25, darkText)

	out, err := PrepareTooltip(cap)
	if err != nil {
		t.Fatalf("expected content, got %v", err)
	}
	b := out.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		t.Fatal("crop must never have zero area")
	}
	// Output is upscaled 2x relative to the crop.
	if b.Dx() > 200*ocrScale || b.Dy() > 60*ocrScale {
		t.Fatalf("output %v larger than scaled capture", b)
	}
	if countDark(out) == 0 {
		t.Fatal("binarized output must contain dark text pixels")
	}
}

func TestPrepareTooltipNoCreamIsNoContent(t *testing.T) {
	for _, fill := range []color.RGBA{world, {10, 10, 10, 255}, {255, 255, 255, 255}} {
		cap := newCapture(120, 80, fill)
		if _, err := PrepareTooltip(cap); !errors.Is(err, ErrNoContent) {
			t.Fatalf("fill %v: expected ErrNoContent, got %v", fill, err)
		}
	}
}

func TestPrepareTooltipEmptyCapture(t *testing.T) {
	cap := image.NewRGBA(image.Rect(0, 0, 0, 0))
	if _, err := PrepareTooltip(cap); !errors.Is(err, ErrNoContent) {
		t.Fatalf("expected ErrNoContent, got %v", err)
	}
}

func TestPrepareTooltipStripsTagRows(t *testing.T) {
	cap := newCapture(200, 80, cream)
	drawLabel(cap, "ARC CIRCUITRY", 10, 22, darkText)

	// A tag row: saturated chips alongside dark category text. The dark
	// pixels in this row must not survive into the text mask.
	tagY := 55
	for y := tagY; y < tagY+8; y++ {
		for x := 10; x < 80; x++ {
			cap.SetRGBA(x, y, tagBlue)
		}
		for x := 90; x < 130; x++ {
			cap.SetRGBA(x, y, darkText)
		}
	}

	out, err := PrepareTooltip(cap)
	if err != nil {
		t.Fatalf("expected content, got %v", err)
	}
	b := out.Bounds()
	// Anything in the lower (tag) half of the output must be background.
	for y := b.Max.Y * 3 / 4; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if gray8(out.At(x, y)) < 128 {
				t.Fatalf("tag-row pixel at (%d,%d) leaked into text mask", x, y)
			}
		}
	}
	if countDark(out) == 0 {
		t.Fatal("name text above the tag row must survive")
	}
}

func TestPrepareTooltipCropsWorldPadding(t *testing.T) {
	// Small panel inside a larger world-noise capture: crop must shrink to
	// roughly the panel, not the full frame.
	cap := newCapture(300, 200, world)
	for y := 40; y < 140; y++ {
		for x := 40; x < 220; x++ {
			cap.SetRGBA(x, y, cream)
		}
	}
	drawLabel(cap, "RUSTED GEAR", 50, 90, darkText)

	out, err := PrepareTooltip(cap)
	if err != nil {
		t.Fatalf("expected content, got %v", err)
	}
	b := out.Bounds()
	if b.Dx() > (220-40)*ocrScale || b.Dy() > (140-40)*ocrScale {
		t.Fatalf("crop %v exceeds panel bounds", b)
	}
}

func TestPrepareTriggerInvertsAndScales(t *testing.T) {
	// Marker text renders light on a dark panel.
	cap := newCapture(150, 40, color.RGBA{24, 24, 30, 255})
	drawLabel(cap, "INVENTORY", 10, 25, color.RGBA{230, 230, 230, 255})

	out := PrepareTrigger(cap)
	b := out.Bounds()
	if b.Dx() != 150*ocrScale || b.Dy() != 40*ocrScale {
		t.Fatalf("expected 2x upscale, got %v", b)
	}
	// After inversion the marker glyphs are dark on a light field.
	if countShade(out, 0) == 0 {
		t.Fatal("expected dark glyph pixels after inversion")
	}
	light := countShade(out, 255)
	dark := countShade(out, 0)
	if light <= dark {
		t.Fatalf("background must dominate: light=%d dark=%d", light, dark)
	}
}
