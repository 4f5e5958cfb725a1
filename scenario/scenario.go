// Package scenario loads initial worlds for the engine from YAML files or
// tengo generator scripts.
package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"

	"github.com/RustWorks/gravity-sim-v2/body"
	"github.com/RustWorks/gravity-sim-v2/sim"
)

// BodySpec describes one initial body.
type BodySpec struct {
	Pos    [2]float64 `yaml:"pos"`
	Vel    [2]float64 `yaml:"vel"`
	Mass   float64    `yaml:"mass"`
	Radius float64    `yaml:"radius"`
	Trail  int        `yaml:"trail,omitempty"`
}

// Spec is a scenario file: engine tuning overrides plus the initial body
// set, either listed inline or produced by a generator script. Zero-valued
// tuning fields keep the engine defaults.
type Spec struct {
	Name              string     `yaml:"name"`
	Dt                float64    `yaml:"dt,omitempty"`
	Iterations        int        `yaml:"iterations,omitempty"`
	PreviewIterations int        `yaml:"preview_iterations,omitempty"`
	G                 float64    `yaml:"g,omitempty"`
	TrailMaxLen       int        `yaml:"trail_max_len,omitempty"`
	Script            string     `yaml:"script,omitempty"`
	Bodies            []BodySpec `yaml:"bodies,omitempty"`
}

// Load reads a scenario. A .tengo path is treated as a bare generator
// script with default tuning; otherwise the file is YAML, and a script
// reference inside it is resolved relative to the file and its bodies are
// appended to the inline list.
func Load(path string) (*Spec, error) {
	if isScriptFile(path) {
		bodies, err := runScript(path)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return &Spec{Name: name, Bodies: bodies}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: load %s: %w", path, err)
	}
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("scenario: unmarshal %s: %w", path, err)
	}
	if spec.Script != "" {
		scriptPath := spec.Script
		if !filepath.IsAbs(scriptPath) {
			scriptPath = filepath.Join(filepath.Dir(path), scriptPath)
		}
		bodies, err := runScript(scriptPath)
		if err != nil {
			return nil, err
		}
		spec.Bodies = append(spec.Bodies, bodies...)
	}
	return &spec, nil
}

// Tuning converts the spec's overrides into engine tuning, keeping defaults
// for anything left unset.
func (s *Spec) Tuning() sim.Tuning {
	t := sim.DefaultTuning()
	if s == nil {
		return t
	}
	if s.Dt > 0 {
		t.Dt = s.Dt
	}
	if s.Iterations > 0 {
		t.MainIterations = s.Iterations
	}
	if s.PreviewIterations > 0 {
		t.PreviewIterations = s.PreviewIterations
	}
	if s.G > 0 {
		t.G = s.G
	}
	if s.TrailMaxLen > 0 {
		t.TrailMaxLen = s.TrailMaxLen
	}
	return t
}

// Build creates a clock with the spec's tuning and inserts its bodies.
func Build(spec *Spec) *sim.Clock {
	clock := sim.NewClock(spec.Tuning())
	for _, b := range spec.Bodies {
		clock.Insert(body.Body{
			Pos:    cp.Vector{X: b.Pos[0], Y: b.Pos[1]},
			Vel:    cp.Vector{X: b.Vel[0], Y: b.Vel[1]},
			Mass:   b.Mass,
			Radius: b.Radius,
			Trail:  body.Trail{MaxLen: b.Trail},
		})
	}
	return clock
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
