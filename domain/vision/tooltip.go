// Package vision turns raw screen captures into OCR-ready bitmaps.
//
// The target UI draws item tooltips as dark text on a near-uniform cream
// panel (#f9eedf). Isolating that tone removes the game world behind the
// panel and most decoration in one pass; colored rarity/category tags are
// stripped afterwards so they are not mis-read as characters.
package vision

import (
	"errors"
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
)

// ErrNoContent reports that a capture holds no tooltip panel. It is the
// expected steady-state outcome while the cursor is not over an item and
// short-circuits the recognition call.
var ErrNoContent = errors.New("vision: no tooltip content in capture")

// Cream tone band around the tooltip panel background #f9eedf.
var (
	creamLow  = [3]uint8{240, 225, 210}
	creamHigh = [3]uint8{255, 250, 240}
)

const (
	// Row/column occupancy thresholds for locating the panel.
	rowCreamPct      = 0.50
	colCreamPct      = 0.30
	tightColCreamPct = 0.50

	// Colored-tag detection: channel spread and brightness window.
	tagSpread    = 30
	tagMinBright = 80
	tagMaxBright = 240
	tagRowPct    = 0.05

	// Dark-text binarization cutoff.
	textDark = 100

	// Upscale factor for the recognition engine.
	ocrScale = 2
)

// PrepareTooltip isolates the tooltip panel in src, strips colored tag rows,
// crops to content, binarizes dark text to black-on-white and upscales for
// recognition. Returns ErrNoContent when no panel tone is present; the crop
// never has zero area.
func PrepareTooltip(src image.Image) (image.Image, error) {
	rgba := asRGBA(src)
	b := rgba.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, ErrNoContent
	}

	mask := make([]bool, w*h)
	rowCount := make([]int, h)
	colCount := make([]int, w)
	for y := 0; y < h; y++ {
		row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+w*4]
		for x := 0; x < w; x++ {
			i := x * 4
			if isCream(row[i], row[i+1], row[i+2]) {
				mask[y*w+x] = true
				rowCount[y]++
				colCount[x]++
			}
		}
	}

	yMin, yMax, ok := span(rowCount, float64(w)*rowCreamPct)
	if !ok {
		return nil, ErrNoContent
	}
	xMin, xMax, ok := span(colCount, float64(h)*colCreamPct)
	if !ok {
		return nil, ErrNoContent
	}

	// Tight column crop inside the panel removes the colored border strips.
	cropH := yMax - yMin + 1
	tightXMin, tightXMax := -1, -1
	for x := xMin; x <= xMax; x++ {
		cnt := 0
		for y := yMin; y <= yMax; y++ {
			if mask[y*w+x] {
				cnt++
			}
		}
		if float64(cnt) > float64(cropH)*tightColCreamPct {
			if tightXMin < 0 {
				tightXMin = x
			}
			tightXMax = x
		}
	}
	if tightXMin < 0 {
		return nil, ErrNoContent
	}

	cropW := tightXMax - tightXMin + 1

	// Rows carrying a significant share of saturated pixels are tag rows,
	// not name text; blank them entirely.
	tagRow := make([]bool, cropH)
	for cy := 0; cy < cropH; cy++ {
		row := rgba.Pix[(yMin+cy)*rgba.Stride:]
		colored := 0
		for cx := 0; cx < cropW; cx++ {
			i := (tightXMin + cx) * 4
			if isColored(row[i], row[i+1], row[i+2]) {
				colored++
			}
		}
		tagRow[cy] = float64(colored) > float64(cropW)*tagRowPct
	}

	out := image.NewGray(image.Rect(0, 0, cropW, cropH))
	for i := range out.Pix {
		out.Pix[i] = 0xFF
	}
	for cy := 0; cy < cropH; cy++ {
		if tagRow[cy] {
			continue
		}
		row := rgba.Pix[(yMin+cy)*rgba.Stride:]
		for cx := 0; cx < cropW; cx++ {
			i := (tightXMin + cx) * 4
			if row[i] < textDark && row[i+1] < textDark && row[i+2] < textDark {
				out.Pix[cy*out.Stride+cx] = 0
			}
		}
	}

	scaled := imaging.Resize(out, cropW*ocrScale, cropH*ocrScale, imaging.Linear)
	return scaled, nil
}

func isCream(r, g, b uint8) bool {
	return r >= creamLow[0] && r <= creamHigh[0] &&
		g >= creamLow[1] && g <= creamHigh[1] &&
		b >= creamLow[2] && b <= creamHigh[2]
}

// isColored flags saturated tag pixels: a large channel spread at moderate
// brightness. Name text is near-black and the panel is desaturated, so
// neither trips this.
func isColored(r, g, b uint8) bool {
	max := r
	if g > max {
		max = g
	}
	if b > max {
		max = b
	}
	min := r
	if g < min {
		min = g
	}
	if b < min {
		min = b
	}
	return int(max)-int(min) > tagSpread && max > tagMinBright && max < tagMaxBright
}

// span locates the first and last index whose count exceeds threshold.
func span(counts []int, threshold float64) (first, last int, ok bool) {
	first, last = -1, -1
	for i, c := range counts {
		if float64(c) > threshold {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	return first, last, first >= 0
}

// asRGBA returns src as *image.RGBA without copying when possible.
func asRGBA(src image.Image) *image.RGBA {
	if r, ok := src.(*image.RGBA); ok {
		return r
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
