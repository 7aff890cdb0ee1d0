// Package loader reads interaction scenarios from YAML or HJSON files.
package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hjson/hjson-go"
	"gopkg.in/yaml.v3"

	"github.com/tphakala/go-xr-interact/internal/blend"
	"github.com/tphakala/go-xr-interact/internal/pose"
)

// Format is a scenario file syntax.
type Format int

const (
	FormatYAML Format = iota
	FormatHJSON
)

// DefaultFrameRate is the simulation rate used when a scenario omits it.
const DefaultFrameRate = 90.0

// MaxFrames bounds duration times frame rate, about 50 hours at 90 fps.
const MaxFrames = 1 << 24

var (
	// ErrInvalidScenario is returned for scenarios that decode but cannot
	// be replayed.
	ErrInvalidScenario = errors.New("invalid scenario")
	// ErrUnknownFormat is returned for unrecognised file extensions.
	ErrUnknownFormat = errors.New("unknown scenario format")
)

// FormatOf picks the syntax from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".hjson", ".json":
		return FormatHJSON, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Default returns a scenario holding the default settings that a decoded
// document overrides.
func Default() Scenario {
	return Scenario{
		FrameRate: DefaultFrameRate,
		Hand: Hand{
			Side:          pose.HandRight.String(),
			SnapTime:      blend.DefaultSnapTime,
			ReleaseTime:   blend.DefaultReleaseTime,
			PoseEnterTime: pose.DefaultEnterTime,
			PoseExitTime:  pose.DefaultExitTime,
			Select:        Limits{MaxDistance: blend.DefaultSelectMaxDistance, MaxAngle: blend.DefaultSelectMaxAngle},
			Hover:         Limits{MaxDistance: blend.DefaultHoverMaxDistance, MaxAngle: blend.DefaultHoverMaxAngle},
		},
	}
}

// Load reads and validates the scenario at path.
func Load(path string) (*Scenario, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	sc, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return sc, nil
}

// Parse decodes and validates a scenario document.
func Parse(data []byte, format Format) (*Scenario, error) {
	sc := Default()

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&sc); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatHJSON:
		// HJSON is relaxed JSON: normalise it through a generic map so the
		// struct tags of encoding/json apply.
		var doc map[string]interface{}
		if err := hjson.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode hjson: %w", err)
		}
		raw, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("decode hjson: %w", err)
		}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&sc); err != nil {
			return nil, fmt.Errorf("decode hjson: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, format)
	}

	if err := sc.Validate(); err != nil {
		return nil, err
	}
	sc.normalize()
	return &sc, nil
}

// FrameTime returns the duration of one frame in seconds.
func (s *Scenario) FrameTime() float64 { return 1 / s.FrameRate }

// Frames returns the number of frames in the replay.
func (s *Scenario) Frames() int {
	return int(s.Duration*s.FrameRate + 0.5)
}

// Object returns the object named name.
func (s *Scenario) Object(name string) (Object, bool) {
	for _, o := range s.Objects {
		if o.Name == name {
			return o, true
		}
	}
	return Object{}, false
}

// normalize orders events by time, keeping file order for ties.
func (s *Scenario) normalize() {
	sort.SliceStable(s.Events, func(i, j int) bool {
		return s.Events[i].Time < s.Events[j].Time
	})
}
