// Package config holds the parsed description of a simulation: which
// variant to run, on what grid, from which initial states and with which
// parameters.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"cell-society/internal/core"
	"cell-society/internal/grid"
)

const (
	// LayoutUniform samples every cell independently from StateProbabilities.
	LayoutUniform = "uniform"
	// LayoutNoise thresholds a simplex noise field against the cumulative
	// StateProbabilities so that states form patches.
	LayoutNoise = "noise"
)

// Simulation is a parsed simulation description.
type Simulation struct {
	Title     string `json:"title"`
	Variant   string `json:"variant"`
	Rows      int    `json:"rows"`
	Cols      int    `json:"cols"`
	Shape     string `json:"shape"`
	Neighbors string `json:"neighbors,omitempty"`

	// StateNames and Colors default to the variant's built-in names and
	// palette when empty.
	StateNames []string `json:"stateNames,omitempty"`
	Colors     []string `json:"colors,omitempty"`
	NumColors  int      `json:"numColors,omitempty"`

	StateProbabilities []float64          `json:"stateProbabilities,omitempty"`
	InitialStates      []int              `json:"initialStates,omitempty"`
	Parameters         map[string]float64 `json:"parameters,omitempty"`

	// Generation numbers InitialStates when they come from a saved run.
	Generation int `json:"generation,omitempty"`

	Seed       int64   `json:"seed"`
	Workers    int     `json:"workers,omitempty"`
	Layout     string  `json:"layout,omitempty"`
	NoiseScale float64 `json:"noiseScale,omitempty"`
}

// DefaultConfig returns a 64x64 Game of Life on a square grid.
func DefaultConfig() Simulation {
	return Simulation{
		Title:      "Game of Life",
		Variant:    core.GameOfLife.String(),
		Rows:       64,
		Cols:       64,
		Shape:      grid.ShapeSquare.String(),
		Seed:       1337,
		Workers:    1,
		Layout:     LayoutUniform,
		NoiseScale: 0.12,
		Parameters: map[string]float64{},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Simulation {
	c := DefaultConfig()
	c.Apply(cfg)
	return c
}

// Apply overrides fields from flag-style key/value pairs. Unparseable values
// are ignored. Keys of the form "param.<name>" set variant parameters.
func (c *Simulation) Apply(cfg map[string]string) {
	for k, v := range cfg {
		switch k {
		case "title":
			c.Title = v
		case "variant", "sim":
			c.Variant = v
		case "w", "cols":
			if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
				c.Cols = parsed
			}
		case "h", "rows":
			if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
				c.Rows = parsed
			}
		case "shape":
			c.Shape = v
		case "neighbors":
			c.Neighbors = v
		case "seed":
			if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
				c.Seed = parsed
			}
		case "workers":
			if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
				c.Workers = parsed
			}
		case "layout":
			c.Layout = v
		case "noise_scale":
			if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
				c.NoiseScale = parsed
			}
		case "probs":
			if probs, err := parseFloats(v); err == nil {
				c.StateProbabilities = probs
			}
		default:
			name, ok := strings.CutPrefix(k, "param.")
			if !ok {
				continue
			}
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				if c.Parameters == nil {
					c.Parameters = map[string]float64{}
				}
				c.Parameters[name] = parsed
			}
		}
	}
}

func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// Load reads a JSON simulation description. Fields missing from the file
// keep their DefaultConfig values.
func Load(path string) (Simulation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Simulation{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a JSON simulation description over DefaultConfig.
func Parse(data []byte) (Simulation, error) {
	c := DefaultConfig()
	if err := json.Unmarshal(data, &c); err != nil {
		return Simulation{}, &core.ConfigError{Field: "json", Reason: err.Error()}
	}
	return c, nil
}

// Save writes the description as indented JSON.
func (c Simulation) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate checks everything that can be checked without knowing the
// variant's rule. Variant-specific checks happen when the grid is built.
func (c Simulation) Validate() error {
	if _, err := core.ParseVariant(c.Variant); err != nil {
		return err
	}
	if c.Rows <= 0 || c.Cols <= 0 {
		return core.Configf("size", "rows and cols must be positive, got %dx%d", c.Rows, c.Cols)
	}
	if _, err := grid.ParseShape(c.Shape); err != nil {
		return core.Configf("shape", "%v", err)
	}
	if c.Neighbors != "" {
		if _, err := grid.ParseNeighborhood(c.Neighbors); err != nil {
			return core.Configf("neighbors", "%v", err)
		}
	}
	if len(c.Colors) > 0 && c.NumColors > 0 && len(c.Colors) != c.NumColors {
		return core.Configf("colors", "expected %d colors, got %d", c.NumColors, len(c.Colors))
	}
	if c.InitialStates != nil && len(c.InitialStates) != c.Rows*c.Cols {
		return core.Configf("initialStates", "got %d states for a %dx%d grid", len(c.InitialStates), c.Rows, c.Cols)
	}
	total := 0.0
	for i, p := range c.StateProbabilities {
		if p < 0 {
			return core.Configf("stateProbabilities", "negative probability %g for state %d", p, i)
		}
		total += p
	}
	if len(c.StateProbabilities) > 0 && total <= 0 {
		return core.Configf("stateProbabilities", "probabilities sum to %g", total)
	}
	switch c.Layout {
	case "", LayoutUniform, LayoutNoise:
	default:
		return core.Configf("layout", "unknown layout %q", c.Layout)
	}
	if c.Generation < 0 {
		return core.Configf("generation", "must be non-negative, got %d", c.Generation)
	}
	if c.Workers < 0 {
		return core.Configf("workers", "must be non-negative, got %d", c.Workers)
	}
	return nil
}
