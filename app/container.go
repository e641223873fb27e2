package app

import (
	"bytes"
	"fmt"
	"image"
	"log/slog"
	"os"
	"time"

	"github.com/jhenke/lootscout-go/assets"
	"github.com/jhenke/lootscout-go/config"
	"github.com/jhenke/lootscout-go/diag"
	"github.com/jhenke/lootscout-go/domain/capture"
	"github.com/jhenke/lootscout-go/domain/items"
	"github.com/jhenke/lootscout-go/domain/ocr"
	"github.com/jhenke/lootscout-go/domain/profile"
	"github.com/jhenke/lootscout-go/domain/scanner"
)

// eventKind tags messages crossing from the scan loops to the Tk thread.
type eventKind int

const (
	eventShow eventKind = iota
	eventHide
	eventState
)

type uiEvent struct {
	kind         eventKind
	notification scanner.Notification
	state        scanner.TriggerState
}

// surfaceAdapter turns scheduler calls into events the Tk update loop
// drains. Sends never block: if the UI is behind, stale events drop.
type surfaceAdapter struct {
	events chan<- uiEvent
}

func (s surfaceAdapter) Show(n scanner.Notification) {
	select {
	case s.events <- uiEvent{kind: eventShow, notification: n}:
	default:
	}
}

func (s surfaceAdapter) Hide() {
	select {
	case s.events <- uiEvent{kind: eventHide}:
	default:
	}
}

// Wiring assembles the scan pipeline and its dependencies.
type Wiring struct {
	Config   *config.Config
	Logger   *slog.Logger
	Grabber  capture.Grabber
	Engine   ocr.Engine
	Items    *items.Store
	Profiles *profile.Store
	Sink     diag.Sink
	Detector *scanner.TriggerDetector
	Locator  *scanner.TooltipLocator
	Pipeline *scanner.Pipeline
	Events   chan uiEvent

	Suspended bool
}

// BuildContainer constructs all components. It fails fast when the OCR
// runtime or the screen is unavailable; a missing resolution profile only
// suspends detection.
func BuildContainer(cfg *config.Config, logger *slog.Logger) (*Wiring, error) {
	c := &Wiring{Config: cfg, Logger: logger}

	c.Grabber = capture.NewGrabber(logger)
	screen, err := c.Grabber.ScreenBounds()
	if err != nil {
		return nil, fmt.Errorf("query screen: %w", err)
	}

	engine, err := ocr.NewTesseract(cfg.TessdataPrefix, logger)
	if err != nil {
		return nil, err
	}
	c.Engine = engine

	if err := c.loadProfiles(screen); err != nil {
		return nil, err
	}
	if err := c.loadItems(); err != nil {
		return nil, err
	}

	c.Sink = diag.Nop()
	if cfg.Debug {
		sink, err := diag.NewFileSink(cfg.DebugDir, logger)
		if err != nil {
			return nil, err
		}
		c.Sink = sink
	}

	c.Events = make(chan uiEvent, 16)
	surface := surfaceAdapter{events: c.Events}

	scheduler := scanner.NewNotificationScheduler(
		c.Items,
		surface,
		time.Duration(cfg.CooldownSeconds*float64(time.Second)),
		time.Duration(cfg.DisplaySeconds*float64(time.Second)),
		logger,
	)
	c.Detector = scanner.NewTriggerDetector(probesFromConfig(cfg), c.Grabber, c.Engine, cfg.MinConfidence, c.Sink, logger)
	c.Locator = scanner.NewTooltipLocator(c.Grabber, c.Engine, capture.CursorPos, cfg.TooltipCapture, screen, c.Sink, logger)

	c.Pipeline = scanner.NewPipeline(scanner.PipelineConfig{
		Detector:        c.Detector,
		Locator:         c.Locator,
		Scheduler:       scheduler,
		TriggerInterval: time.Duration(cfg.TriggerScanMs) * time.Millisecond,
		TooltipInterval: time.Duration(cfg.TooltipScanMs) * time.Millisecond,
		Suspended:       c.Suspended,
		Recalibrate:     c.recalibrate,
		OnState:         c.emitState,
		Logger:          logger,
	})
	return c, nil
}

// Close releases diagnostics resources.
func (c *Wiring) Close() {
	if sink, ok := c.Sink.(*diag.FileSink); ok {
		_ = sink.Close()
	}
}

// loadProfiles merges the user calibration file over the embedded table and
// applies the profile for the current resolution. No profile means
// detection starts suspended.
func (c *Wiring) loadProfiles(screen image.Rectangle) error {
	store, err := c.buildProfileStore()
	if err != nil {
		return err
	}
	c.Profiles = store

	p, err := store.Select(screen.Dx(), screen.Dy())
	if err != nil {
		c.Suspended = true
		c.Logger.Warn("no resolution profile",
			slog.String("resolution", profile.Key(screen.Dx(), screen.Dy())),
			slog.Any("supported", store.Supported()),
		)
		return nil
	}
	p.Apply(c.Config)
	c.Logger.Info("resolution profile applied",
		slog.String("resolution", profile.Key(screen.Dx(), screen.Dy())),
	)
	return nil
}

// loadItems fills the knowledge base from the configured CSV, falling back
// to the embedded table.
func (c *Wiring) loadItems() error {
	c.Items = items.NewStore(c.Logger)
	if c.Config.ItemsCSV != "" {
		f, err := os.Open(c.Config.ItemsCSV)
		if err != nil {
			return fmt.Errorf("open items csv: %w", err)
		}
		defer f.Close()
		return c.Items.LoadCSV(f)
	}
	return c.Items.LoadCSV(bytes.NewReader(assets.ItemsCSV))
}

// buildProfileStore merges the user calibration file over the embedded
// table.
func (c *Wiring) buildProfileStore() (*profile.Store, error) {
	store, err := profile.NewStore(assets.ResolutionsJSON)
	if err != nil {
		return nil, err
	}
	if c.Config.ProfilesPath != "" {
		user, err := profile.LoadFile(c.Config.ProfilesPath)
		if err != nil {
			return nil, fmt.Errorf("load profiles: %w", err)
		}
		store.Merge(user)
	}
	return store, nil
}

// recalibrate is polled by the suspended trigger loop. When a profile shows
// up for the current resolution, geometry is swapped in before scanning
// resumes and the UI is told to leave the suspended notice.
func (c *Wiring) recalibrate() bool {
	screen, err := c.Grabber.ScreenBounds()
	if err != nil {
		return false
	}
	// The calibration file may have been written while suspended.
	if store, err := c.buildProfileStore(); err == nil {
		c.Profiles = store
	}
	p, err := c.Profiles.Select(screen.Dx(), screen.Dy())
	if err != nil {
		return false
	}
	p.Apply(c.Config)
	c.Detector.SetProbes(probesFromConfig(c.Config))
	c.Locator.SetGeometry(c.Config.TooltipCapture, screen)
	c.emitState(scanner.StateIdle)
	c.Logger.Info("resolution profile applied",
		slog.String("resolution", profile.Key(screen.Dx(), screen.Dy())),
	)
	return true
}

func (c *Wiring) emitState(state scanner.TriggerState) {
	select {
	case c.Events <- uiEvent{kind: eventState, state: state}:
	default:
	}
}

// probesFromConfig builds the trigger probe table. The menu probe comes
// first so the full inventory outranks the in-raid pouch when both markers
// are visible.
func probesFromConfig(cfg *config.Config) []scanner.TriggerProbe {
	return []scanner.TriggerProbe{
		{Name: "menu", Region: cfg.MenuRegion.Rect(), Marker: cfg.MenuMarker, State: scanner.StateMenuActive},
		{Name: "raid", Region: cfg.RaidRegion.Rect(), Marker: cfg.RaidMarker, State: scanner.StateRaidActive},
	}
}
