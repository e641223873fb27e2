// Package profile maps a detected display resolution to pre-calibrated
// capture geometry. Matching is exact on width and height: region geometry
// scales non-linearly with aspect ratio, so interpolation between profiles is
// never attempted.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/jhenke/lootscout-go/config"
)

// ErrUncalibrated signals that no profile exists for the current resolution.
// Detection is suspended, not aborted, while this holds.
var ErrUncalibrated = errors.New("profile: no profile for this resolution")

// Profile carries capture geometry valid for one specific resolution.
type Profile struct {
	MenuRegion     config.Region         `json:"menu_region"`
	RaidRegion     config.Region         `json:"raid_region"`
	TooltipCapture config.TooltipCapture `json:"tooltip_capture"`

	// Optional cadence hints; zero means "keep configured value".
	TriggerScanMs int `json:"trigger_scan_ms,omitempty"`
	TooltipScanMs int `json:"tooltip_scan_ms,omitempty"`
}

// complete reports whether the profile carries usable trigger geometry.
func (p *Profile) complete() bool {
	return p.MenuRegion.Valid() && !p.MenuRegion.Uncalibrated()
}

// Store is a read-only table of profiles keyed by "WIDTHxHEIGHT".
type Store struct {
	profiles map[string]Profile
}

type profileFile struct {
	Resolutions map[string]Profile `json:"resolutions"`
}

// Key formats a resolution lookup key.
func Key(width, height int) string {
	return fmt.Sprintf("%dx%d", width, height)
}

// NewStore parses a profile table from JSON bytes.
func NewStore(data []byte) (*Store, error) {
	var pf profileFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("profile: parse table: %w", err)
	}
	if pf.Resolutions == nil {
		pf.Resolutions = map[string]Profile{}
	}
	return &Store{profiles: pf.Resolutions}, nil
}

// LoadFile reads a profile table from disk. A missing file yields an empty
// store, not an error; the caller falls back to the embedded table.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Store{profiles: map[string]Profile{}}, nil
		}
		return nil, err
	}
	return NewStore(data)
}

// Merge overlays other onto s; entries in other win. Used to let a user
// calibration file override the embedded defaults.
func (s *Store) Merge(other *Store) {
	if other == nil {
		return
	}
	for k, v := range other.profiles {
		s.profiles[k] = v
	}
}

// Select returns the profile for the exact resolution, or ErrUncalibrated.
func (s *Store) Select(width, height int) (*Profile, error) {
	p, ok := s.profiles[Key(width, height)]
	if !ok || !p.complete() {
		return nil, fmt.Errorf("%w: %s", ErrUncalibrated, Key(width, height))
	}
	return &p, nil
}

// Supported lists resolutions with complete profiles, sorted for stable
// operator messages.
func (s *Store) Supported() []string {
	keys := make([]string, 0, len(s.profiles))
	for k, p := range s.profiles {
		if p.complete() {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Apply copies the profile's geometry (and cadence hints, when present) into
// the configuration snapshot. Called at startup and again when
// recalibration finds a profile for the current resolution.
func (p *Profile) Apply(cfg *config.Config) {
	cfg.MenuRegion = p.MenuRegion
	cfg.RaidRegion = p.RaidRegion
	if p.TooltipCapture.Width > 0 && p.TooltipCapture.Height > 0 {
		cfg.TooltipCapture = p.TooltipCapture
	}
	if p.TriggerScanMs > 0 {
		cfg.TriggerScanMs = p.TriggerScanMs
	}
	if p.TooltipScanMs > 0 {
		cfg.TooltipScanMs = p.TooltipScanMs
	}
}
