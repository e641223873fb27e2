package scanner

import (
	"image"
	"log/slog"

	"github.com/jhenke/lootscout-go/diag"
	"github.com/jhenke/lootscout-go/domain/ocr"
	"github.com/jhenke/lootscout-go/domain/vision"
)

// activeRecheckEvery throttles marker re-checks while a panel is open, so an
// active trigger tick is usually free.
const activeRecheckEvery = 3

// TriggerProbe binds a screen region to the marker text that identifies one
// panel kind.
type TriggerProbe struct {
	Name   string
	Region image.Rectangle
	Marker string
	State  TriggerState
}

// TriggerDetector watches the probe regions and decides the trigger state.
// Probes are checked in order, so the menu probe outranks the raid probe
// when both markers are visible.
type TriggerDetector struct {
	probes        []TriggerProbe
	capturer      Capturer
	recognizer    Recognizer
	minConfidence float64
	sink          diag.Sink
	logger        *slog.Logger

	activeTicks int
}

// NewTriggerDetector builds a detector over the given probes.
func NewTriggerDetector(probes []TriggerProbe, capturer Capturer, recognizer Recognizer, minConfidence float64, sink diag.Sink, logger *slog.Logger) *TriggerDetector {
	if sink == nil {
		sink = diag.Nop()
	}
	return &TriggerDetector{
		probes:        usableProbes(probes),
		capturer:      capturer,
		recognizer:    recognizer,
		minConfidence: minConfidence,
		sink:          sink,
		logger:        logger,
	}
}

// SetProbes replaces the probe table. Called from the trigger loop when a
// resolution profile arrives after startup; never while another goroutine
// reads the detector.
func (d *TriggerDetector) SetProbes(probes []TriggerProbe) {
	d.probes = usableProbes(probes)
}

// usableProbes drops probes without a capture region. A calibration file
// may carry only one of the two marker regions.
func usableProbes(probes []TriggerProbe) []TriggerProbe {
	kept := make([]TriggerProbe, 0, len(probes))
	for _, p := range probes {
		if p.Region.Empty() {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

// Tick advances the detector by one scan interval and returns the next
// state. At most one transition happens per tick: idle can enter an active
// state, an active state can only fall back to idle.
func (d *TriggerDetector) Tick(current TriggerState) TriggerState {
	if !current.Active() {
		d.activeTicks = 0
		return d.scanIdle()
	}

	d.activeTicks++
	if d.activeTicks%activeRecheckEvery != 0 {
		return current
	}
	if d.markerVisible(current) {
		return current
	}
	if d.logger != nil {
		d.logger.Info("panel closed", slog.String("state", current.String()))
	}
	return StateIdle
}

// scanIdle checks each probe until one marker is found.
func (d *TriggerDetector) scanIdle() TriggerState {
	for _, probe := range d.probes {
		if d.probeHit(probe) {
			if d.logger != nil {
				d.logger.Info("panel detected",
					slog.String("probe", probe.Name),
					slog.String("state", probe.State.String()),
				)
			}
			return probe.State
		}
	}
	return StateIdle
}

// markerVisible re-checks the probe that produced the current state.
func (d *TriggerDetector) markerVisible(current TriggerState) bool {
	for _, probe := range d.probes {
		if probe.State == current {
			return d.probeHit(probe)
		}
	}
	return false
}

func (d *TriggerDetector) probeHit(probe TriggerProbe) bool {
	frame, err := d.capturer.Capture(probe.Region)
	if err != nil {
		if d.logger != nil {
			d.logger.Warn("trigger capture failed",
				slog.String("probe", probe.Name),
				slog.String("error", err.Error()),
			)
		}
		return false
	}

	prepared := vision.PrepareTrigger(frame.Image)
	if d.sink.Enabled() {
		d.sink.Image("trigger-"+probe.Name, prepared)
	}
	res, err := d.recognizer.Recognize(prepared, ocr.ModeLine)
	if err != nil {
		return false
	}
	if res.Confidence < d.minConfidence {
		if d.logger != nil {
			d.logger.Debug("marker below confidence floor",
				slog.String("probe", probe.Name),
				slog.String("text", res.Text),
				slog.Float64("confidence", res.Confidence),
			)
		}
		return false
	}
	return ocr.FuzzyMarker(res.Text, probe.Marker)
}
