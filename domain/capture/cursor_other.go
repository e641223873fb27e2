//go:build !windows

package capture

import (
	"errors"
	"image"
)

// CursorPos is unavailable off Windows; the tooltip locator treats the error
// as "nothing this tick".
func CursorPos() (image.Point, error) {
	return image.Point{}, errors.New("capture: cursor position unsupported on this platform")
}

// EnableDPIAwareness is a no-op off Windows.
func EnableDPIAwareness() {}
