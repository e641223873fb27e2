// Package ocr recognizes text in prepared screen captures and parses the
// recognized text into item labels and panel markers.
package ocr

import (
	"errors"
	"image"
)

// ErrNoText indicates recognition ran but produced no usable text.
var ErrNoText = errors.New("ocr: no text recognized")

// Mode selects the page layout hint passed to the recognizer.
type Mode int

const (
	// ModeLine treats the input as a single text line. Used for trigger
	// marker regions.
	ModeLine Mode = iota
	// ModeBlock treats the input as a uniform block of text. Used for
	// tooltip panels, which hold several lines.
	ModeBlock
)

// Result carries the recognized text and the mean word confidence in [0,1].
// Raw preserves the recognizer output before cleanup.
type Result struct {
	Text       string
	Confidence float64
	Raw        string
}

// Engine recognizes text in a preprocessed image.
type Engine interface {
	Recognize(img image.Image, mode Mode) (Result, error)
}
