package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ScenarioPath is the fixed location of the optional scenario file. The
// pipeline runs with compiled-in defaults when the file is absent.
const ScenarioPath = "staircase.yaml"

// ProfileSpec identifies one input profile and how to present it.
type ProfileSpec struct {
	ID          string    `yaml:"id"`   // instrument, e.g. "ITP8"
	Cast        string    `yaml:"cast"` // profile number, e.g. "1301"
	Path        string    `yaml:"path"`
	Label       string    `yaml:"label"`
	Staircase   bool      `yaml:"staircase"`
	DepthWindow []float64 `yaml:"depthWindow,omitempty"` // [min, max], empty = full range
}

// Output holds the fixed output paths of one run.
type Output struct {
	GIF        string `yaml:"gif"`
	Comparison string `yaml:"comparison"`
	FramesDir  string `yaml:"framesDir"`
	SamplesCSV string `yaml:"samplesCSV"`
}

// Scenario describes a complete animation run.
type Scenario struct {
	Version    string        `yaml:"version"`
	Profiles   []ProfileSpec `yaml:"profiles"`
	Frames     int           `yaml:"frames"`
	FPS        int           `yaml:"fps"`
	Width      int           `yaml:"width"`
	Height     int           `yaml:"height"`
	Easing     string        `yaml:"easing"`     // "linear" or "smooth"
	Resolution float64       `yaml:"resolution"` // vertical resample step in meters
	Output     Output        `yaml:"output"`
}

// Default returns the compiled-in scenario: the two reference casts, one with
// staircase structure and one without.
func Default() *Scenario {
	return &Scenario{
		Version: "1",
		Profiles: []ProfileSpec{
			{
				ID:        "ITP8",
				Cast:      "1301",
				Path:      "input/ITP8cormat1301.csv",
				Label:     "ITP8 profile 1301 (staircase)",
				Staircase: true,
			},
			{
				ID:        "ITP1",
				Cast:      "1259",
				Path:      "input/ITP1cormat1259.csv",
				Label:     "ITP1 profile 1259 (no staircase)",
				Staircase: false,
			},
		},
		Frames:     96,
		FPS:        12,
		Width:      1280,
		Height:     720,
		Easing:     "smooth",
		Resolution: 0.5,
		Output: Output{
			GIF:        "output/ITP8-1301_v_ITP1-1259.gif",
			Comparison: "output/ITP8-1301_v_ITP1-1259_T-S.png",
			FramesDir:  "frames",
			SamplesCSV: "output/samples.csv",
		},
	}
}

// Load reads a scenario from a YAML file, falling back to Default when the
// file does not exist.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return s, nil
}

// Write saves a scenario to a YAML file.
func Write(s *Scenario, path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the scenario for values the pipeline cannot run with.
func (s *Scenario) Validate() error {
	if len(s.Profiles) != 2 {
		return fmt.Errorf("expected exactly 2 profiles, got %d", len(s.Profiles))
	}
	for i, p := range s.Profiles {
		if p.Path == "" {
			return fmt.Errorf("profile %d has no path", i)
		}
		if len(p.DepthWindow) != 0 && len(p.DepthWindow) != 2 {
			return fmt.Errorf("profile %d: depthWindow must be [min, max]", i)
		}
	}
	if s.Frames < 2 {
		return fmt.Errorf("frames must be at least 2, got %d", s.Frames)
	}
	if s.FPS < 1 || s.FPS > 50 {
		return fmt.Errorf("fps must be between 1 and 50, got %d", s.FPS)
	}
	if s.Width < 320 || s.Height < 240 {
		return fmt.Errorf("canvas %dx%d is too small", s.Width, s.Height)
	}
	switch s.Easing {
	case "linear", "smooth":
	default:
		return fmt.Errorf("unknown easing %q", s.Easing)
	}
	if s.Resolution <= 0 {
		return fmt.Errorf("resolution must be positive, got %g", s.Resolution)
	}
	return nil
}
