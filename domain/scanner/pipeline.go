package scanner

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// PipelineConfig wires a Pipeline. Recalibrate is polled while detection is
// suspended; returning true resumes scanning. OnState, when set, is called
// after every state transition.
type PipelineConfig struct {
	Detector        *TriggerDetector
	Locator         *TooltipLocator
	Scheduler       *NotificationScheduler
	TriggerInterval time.Duration
	TooltipInterval time.Duration
	Suspended       bool
	Recalibrate     func() bool
	OnState         func(TriggerState)
	Logger          *slog.Logger
}

// Stats counts pipeline activity since Run.
type Stats struct {
	TriggerTicks uint64
	TooltipTicks uint64
	Notices      uint64
}

// Pipeline runs the trigger and tooltip loops on their own cadences. The
// trigger loop is the only writer of the shared state; the tooltip loop
// reads it to decide whether to scan.
type Pipeline struct {
	detector  *TriggerDetector
	locator   *TooltipLocator
	scheduler *NotificationScheduler

	triggerEvery time.Duration
	tooltipEvery time.Duration

	state       atomic.Int32
	suspended   atomic.Bool
	recalibrate func() bool
	onState     func(TriggerState)
	logger      *slog.Logger

	triggerTicks atomic.Uint64
	tooltipTicks atomic.Uint64
	notices      atomic.Uint64

	done chan struct{}
	wg   sync.WaitGroup
}

// NewPipeline builds a pipeline from cfg.
func NewPipeline(cfg PipelineConfig) *Pipeline {
	p := &Pipeline{
		detector:     cfg.Detector,
		locator:      cfg.Locator,
		scheduler:    cfg.Scheduler,
		triggerEvery: cfg.TriggerInterval,
		tooltipEvery: cfg.TooltipInterval,
		recalibrate:  cfg.Recalibrate,
		onState:      cfg.OnState,
		logger:       cfg.Logger,
		done:         make(chan struct{}),
	}
	p.suspended.Store(cfg.Suspended)
	return p
}

// State returns the current trigger state.
func (p *Pipeline) State() TriggerState {
	return TriggerState(p.state.Load())
}

// Suspended reports whether detection is waiting for a resolution profile.
func (p *Pipeline) Suspended() bool {
	return p.suspended.Load()
}

// Stats returns a snapshot of the activity counters.
func (p *Pipeline) Stats() Stats {
	return Stats{
		TriggerTicks: p.triggerTicks.Load(),
		TooltipTicks: p.tooltipTicks.Load(),
		Notices:      p.notices.Load(),
	}
}

// Run starts both scan loops. It returns immediately; Stop shuts them down.
func (p *Pipeline) Run() {
	if p.suspended.Load() && p.logger != nil {
		p.logger.Warn("detection suspended: no profile for this resolution")
	}
	p.wg.Add(2)
	go p.triggerLoop()
	go p.tooltipLoop()
}

// Stop halts both loops, waits for them and clears any visible notification.
func (p *Pipeline) Stop() {
	close(p.done)
	p.wg.Wait()
	p.scheduler.Reset()
}

func (p *Pipeline) triggerLoop() {
	defer p.wg.Done()
	ticker := time.NewTicker(p.triggerEvery)
	defer ticker.Stop()
	for {
		select {
		case <-p.done:
			return
		case <-ticker.C:
			p.triggerTicks.Add(1)
			p.triggerTick()
		}
	}
}

func (p *Pipeline) triggerTick() {
	if p.suspended.Load() {
		if p.recalibrate != nil && p.recalibrate() {
			p.suspended.Store(false)
			if p.logger != nil {
				p.logger.Info("profile found, detection resumed")
			}
		}
		return
	}

	current := p.State()
	next := p.detector.Tick(current)
	if next == current {
		return
	}
	p.state.Store(int32(next))
	if !next.Active() {
		// Closing a panel ends the session: cooldowns clear so the
		// next open re-announces everything.
		p.scheduler.Reset()
	}
	if p.onState != nil {
		p.onState(next)
	}
}

func (p *Pipeline) tooltipLoop() {
	defer p.wg.Done()
	ticker := time.NewTicker(p.tooltipEvery)
	defer ticker.Stop()
	for {
		select {
		case <-p.done:
			return
		case <-ticker.C:
			p.scheduler.Tick()
			if !p.State().Active() {
				continue
			}
			p.tooltipTicks.Add(1)
			p.tooltipTick()
		}
	}
}

func (p *Pipeline) tooltipTick() {
	label, err := p.locator.Read()
	if err != nil {
		if !errors.Is(err, ErrNoTooltip) && p.logger != nil {
			p.logger.Warn("tooltip read failed", slog.String("error", err.Error()))
		}
		return
	}
	if p.scheduler.Offer(label) {
		p.notices.Add(1)
	}
}
