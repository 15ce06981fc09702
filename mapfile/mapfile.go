// Package mapfile loads JSON map generation requests, so a whole build can
// be described in one file instead of a flag list.
package mapfile

import (
	"encoding/json"
	"fmt"
	"os"
)

// Generation modes.
const (
	ModeSingle = "single" // one transition sheet, random corner field
	ModeMulti  = "multi"  // noise-classified biomes over an assets directory
)

// BiomeTuning overrides the classifier defaults. Pointers distinguish "not
// set" from an explicit zero.
type BiomeTuning struct {
	WaterFreq       *float64 `json:"water_freq,omitempty"`
	DesertFreq      *float64 `json:"desert_freq,omitempty"`
	WaterThreshold  *float64 `json:"water_threshold,omitempty"`
	DesertThreshold *float64 `json:"desert_threshold,omitempty"`
	BufferDist      *int     `json:"buffer_dist,omitempty"`
}

// Spec represents a map generation request.
type Spec struct {
	Name          string       `json:"name"`
	Width         int          `json:"width"`  // tiles per row
	Height        int          `json:"height"` // tile rows
	Seed          int64        `json:"seed"`
	Mode          string       `json:"mode"`                     // "single" or "multi"
	Tileset       string       `json:"tileset,omitempty"`        // single mode: path to one transition sheet
	AssetsDir     string       `json:"assets_dir,omitempty"`     // multi mode: directory of transition sheets
	ObjectAtlas   string       `json:"object_atlas,omitempty"`   // optional objects JSON config
	ObjectDensity float64      `json:"object_density,omitempty"` // chance of an object per interior cell
	Output        string       `json:"output"`                   // destination PNG
	Biomes        *BiomeTuning `json:"biomes,omitempty"`
}

// Load reads and validates a map spec from a JSON file.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read map spec %s: %w", path, err)
	}

	var spec Spec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse map spec %s: %w", path, err)
	}

	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid map spec in %s: %w", path, err)
	}
	return &spec, nil
}

// Validate checks the spec for the mistakes a hand-edited file tends to
// have.
func (s *Spec) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("invalid map dimensions: %dx%d", s.Width, s.Height)
	}

	switch s.Mode {
	case ModeSingle:
		if s.Tileset == "" {
			return fmt.Errorf("single mode requires a tileset path")
		}
	case ModeMulti:
		if s.AssetsDir == "" {
			return fmt.Errorf("multi mode requires an assets_dir")
		}
	default:
		return fmt.Errorf("unknown mode %q (want %q or %q)", s.Mode, ModeSingle, ModeMulti)
	}

	if s.Output == "" {
		return fmt.Errorf("output path is required")
	}

	if s.ObjectDensity < 0 || s.ObjectDensity > 1 {
		return fmt.Errorf("object_density %v outside [0, 1]", s.ObjectDensity)
	}
	if s.ObjectDensity > 0 && s.ObjectAtlas == "" {
		return fmt.Errorf("object_density set but no object_atlas given")
	}
	return nil
}
