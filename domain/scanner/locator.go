package scanner

import (
	"errors"
	"image"
	"log/slog"

	"github.com/jhenke/lootscout-go/config"
	"github.com/jhenke/lootscout-go/diag"
	"github.com/jhenke/lootscout-go/domain/capture"
	"github.com/jhenke/lootscout-go/domain/ocr"
	"github.com/jhenke/lootscout-go/domain/vision"
)

// ErrNoTooltip indicates the cursor region held no readable tooltip this
// tick. Callers treat it as a quiet miss, not a fault.
var ErrNoTooltip = errors.New("scanner: no tooltip at cursor")

// TooltipLocator reads the item label from the tooltip anchored near the
// cursor.
type TooltipLocator struct {
	capturer   Capturer
	recognizer Recognizer
	cursor     capture.CursorFunc
	geometry   config.TooltipCapture
	screen     image.Rectangle
	sink       diag.Sink
	logger     *slog.Logger
}

// NewTooltipLocator builds a locator. The screen rectangle clamps cursor
// regions that would run off an edge.
func NewTooltipLocator(capturer Capturer, recognizer Recognizer, cursor capture.CursorFunc, geometry config.TooltipCapture, screen image.Rectangle, sink diag.Sink, logger *slog.Logger) *TooltipLocator {
	if sink == nil {
		sink = diag.Nop()
	}
	return &TooltipLocator{
		capturer:   capturer,
		recognizer: recognizer,
		cursor:     cursor,
		geometry:   geometry,
		screen:     screen,
		sink:       sink,
		logger:     logger,
	}
}

// SetGeometry replaces the capture geometry. Called from the trigger loop
// before scanning resumes; the tooltip loop only reads after the resumed
// state becomes visible through the pipeline's atomics.
func (l *TooltipLocator) SetGeometry(geometry config.TooltipCapture, screen image.Rectangle) {
	l.geometry = geometry
	l.screen = screen
}

// Read captures the cursor region, isolates the tooltip panel and returns
// the parsed item label. ErrNoTooltip means nothing readable was there.
func (l *TooltipLocator) Read() (string, error) {
	pos, err := l.cursor()
	if err != nil {
		return "", err
	}

	region := capture.CursorRegion(pos, l.geometry.Width, l.geometry.Height, l.geometry.OffsetX, l.geometry.OffsetY, l.screen)
	frame, err := l.capturer.Capture(region)
	if err != nil {
		return "", err
	}

	prepared, err := vision.PrepareTooltip(frame.Image)
	if err != nil {
		if errors.Is(err, vision.ErrNoContent) {
			return "", ErrNoTooltip
		}
		return "", err
	}
	if l.sink.Enabled() {
		l.sink.Image("tooltip-raw", frame.Image)
		l.sink.Image("tooltip-prepared", prepared)
	}

	res, err := l.recognizer.Recognize(prepared, ocr.ModeBlock)
	if err != nil {
		if errors.Is(err, ocr.ErrNoText) {
			return "", ErrNoTooltip
		}
		return "", err
	}

	label := ocr.ParseItemName(res.Text)
	if label == "" {
		if l.sink.Enabled() {
			l.sink.Trace("tooltip", "no item name in: "+res.Text)
		}
		return "", ErrNoTooltip
	}
	if l.sink.Enabled() {
		l.sink.Trace("tooltip", "label: "+label)
	}
	if l.logger != nil {
		l.logger.Debug("tooltip read",
			slog.String("label", label),
			slog.Float64("confidence", res.Confidence),
		)
	}
	return label, nil
}
