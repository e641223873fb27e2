package ui

import (
	"fmt"
	"log/slog"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"

	"github.com/jhenke/lootscout-go/domain/scanner"
)

// StatusBar shows the scan state in the root window. Tk thread only.
type StatusBar struct {
	logger *slog.Logger
	label  *LabelWidget
}

// NewStatusBar packs the status label into the root window.
func NewStatusBar(logger *slog.Logger) *StatusBar {
	s := &StatusBar{logger: logger}
	s.label = Label(Txt("starting"), Borderwidth(1), Relief("ridge"))
	Pack(s.label, Padx("1m"), Pady("1m"))
	return s
}

// SetState reflects a trigger state change.
func (s *StatusBar) SetState(state scanner.TriggerState) {
	switch state {
	case scanner.StateMenuActive, scanner.StateRaidActive:
		s.set(fmt.Sprintf("reading tooltips (%s)", state), ColorKeep)
	default:
		s.set("watching for panels", ColorNeutral)
	}
}

// SetSuspended shows the uncalibrated notice with the resolutions that
// would work.
func (s *StatusBar) SetSuspended(supported []string) {
	msg := "no profile for this resolution"
	if len(supported) > 0 {
		msg += fmt.Sprintf(" (supported: %v)", supported)
	}
	s.set(msg, ColorTrash)
	if s.logger != nil {
		s.logger.Warn("status: suspended", slog.Any("supported", supported))
	}
}

// SetError surfaces a fatal subsystem failure.
func (s *StatusBar) SetError(msg string) {
	s.set("error: "+msg, ColorTrash)
}

func (s *StatusBar) set(msg, bg string) {
	if s.label == nil {
		return
	}
	defer func() { _ = recover() }()
	s.label.Configure(Txt(msg), Background(bg), Foreground(TextColorFor(bg)))
}
