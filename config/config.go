package config

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
)

// Region is a fixed screen rectangle in physical pixels.
type Region struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect converts the region to an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Valid reports whether the region has positive area.
func (r Region) Valid() bool { return r.Width > 0 && r.Height > 0 }

// Uncalibrated reports whether the region still carries the first-run marker
// value written before any resolution profile or manual calibration applied.
func (r Region) Uncalibrated() bool {
	return r.X == 0 && r.Y == 0 && r.Width == 1 && r.Height == 1
}

// TooltipCapture describes the cursor-anchored capture window. Offsets are
// relative to the pointer; a negative offset leads the cursor in the
// direction tooltips render.
type TooltipCapture struct {
	Width   int `json:"width"`
	Height  int `json:"height"`
	OffsetX int `json:"offset_x"`
	OffsetY int `json:"offset_y"`
}

// Config holds runtime configuration for scanning and overlay behavior.
// Fields may be loaded from a JSON file; a resolution profile overrides the
// capture geometry at startup.
type Config struct {
	Debug bool `json:"debug"`

	// Capture geometry
	MenuRegion     Region         `json:"menu_region"`
	RaidRegion     Region         `json:"raid_region"`
	TooltipCapture TooltipCapture `json:"tooltip_capture"`

	// Trigger markers
	MenuMarker string `json:"menu_marker"`
	RaidMarker string `json:"raid_marker"`

	// Scan cadence (milliseconds)
	TriggerScanMs int `json:"trigger_scan_ms"`
	TooltipScanMs int `json:"tooltip_scan_ms"`

	// Notification policy (seconds)
	CooldownSeconds float64 `json:"cooldown_seconds"`
	DisplaySeconds  float64 `json:"display_seconds"`

	// Recognition
	MinConfidence  float64 `json:"min_confidence"`
	TessdataPrefix string  `json:"tessdata_prefix"`

	// Overlay placement
	OverlayX int `json:"overlay_x"`
	OverlayY int `json:"overlay_y"`

	// Data sources
	ItemsCSV     string `json:"items_csv"`
	ProfilesPath string `json:"profiles_path"`

	// Diagnostics
	DebugDir string `json:"debug_dir"`
	LogFile  string `json:"log_file"`
}

// DefaultConfig returns a Config populated with standard defaults. Capture
// regions default to the uncalibrated marker so a missing resolution profile
// is detectable at startup.
func DefaultConfig() *Config {
	return &Config{
		Debug:           false,
		MenuRegion:      Region{X: 0, Y: 0, Width: 1, Height: 1},
		RaidRegion:      Region{X: 0, Y: 0, Width: 1, Height: 1},
		TooltipCapture:  TooltipCapture{Width: 500, Height: 400, OffsetX: 50, OffsetY: -50},
		MenuMarker:      "INVENTORY",
		RaidMarker:      "INVENTORY",
		TriggerScanMs:   500,
		TooltipScanMs:   300,
		CooldownSeconds: 2.0,
		DisplaySeconds:  4.0,
		MinConfidence:   0.4,
		OverlayX:        100,
		OverlayY:        100,
		DebugDir:        "debug",
		LogFile:         "lootscout.log",
	}
}

// Validate clamps values to safe ranges.
func (c *Config) Validate() error {
	if c.TriggerScanMs <= 0 {
		c.TriggerScanMs = 500
	}
	if c.TooltipScanMs <= 0 {
		c.TooltipScanMs = 300
	}
	if c.CooldownSeconds < 0 {
		c.CooldownSeconds = 2.0
	}
	if c.DisplaySeconds <= 0 {
		c.DisplaySeconds = 4.0
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		c.MinConfidence = 0.4
	}
	if c.TooltipCapture.Width <= 0 {
		c.TooltipCapture.Width = 500
	}
	if c.TooltipCapture.Height <= 0 {
		c.TooltipCapture.Height = 400
	}
	if c.MenuMarker == "" {
		c.MenuMarker = "INVENTORY"
	}
	if c.RaidMarker == "" {
		c.RaidMarker = c.MenuMarker
	}
	return nil
}

// Calibrated reports whether the primary trigger region carries real geometry.
func (c *Config) Calibrated() bool {
	return !c.MenuRegion.Uncalibrated() && c.MenuRegion.Valid()
}

// Load reads configuration from the given JSON file path. If the file does
// not exist it returns DefaultConfig(). On JSON error it returns defaults
// with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return cfg, fmt.Errorf("config: decode %s: %w", path, err)
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
