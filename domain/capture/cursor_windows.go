//go:build windows

package capture

import (
	"errors"
	"image"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Cursor queries and DPI awareness via user32/shcore. DPI awareness must be
// set before any capture so coordinates are physical pixels, not scaled.

var (
	user32           = windows.NewLazySystemDLL("user32.dll")
	shcore           = windows.NewLazySystemDLL("shcore.dll")
	procGetCursorPos = user32.NewProc("GetCursorPos")
)

type winPoint struct {
	X int32
	Y int32
}

// CursorPos returns the pointer position in physical screen pixels.
func CursorPos() (image.Point, error) {
	var pt winPoint
	ret, _, _ := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if ret == 0 {
		return image.Point{}, errors.New("capture: GetCursorPos failed")
	}
	return image.Point{X: int(pt.X), Y: int(pt.Y)}, nil
}

// EnableDPIAwareness marks the process per-monitor DPI aware so captures and
// cursor coordinates agree. Falls back to the legacy call on older Windows.
func EnableDPIAwareness() {
	const processPerMonitorDPIAware = 2
	setAwareness := shcore.NewProc("SetProcessDpiAwareness")
	if err := setAwareness.Find(); err == nil {
		_, _, _ = setAwareness.Call(uintptr(processPerMonitorDPIAware))
		return
	}
	setAware := user32.NewProc("SetProcessDPIAware")
	if err := setAware.Find(); err == nil {
		_, _, _ = setAware.Call()
	}
}
