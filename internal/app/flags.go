package app

import (
	"flag"

	"cell-society/internal/config"
)

// Config represents the command-line parameters for the GUI.
type Config struct {
	ConfigPath string
	Variant    string
	Rows       int
	Cols       int
	Shape      string
	Seed       int64
	Workers    int

	Scale int
	TPS   int
	SPS   int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	d := config.DefaultConfig()
	return &Config{
		Variant: d.Variant,
		Rows:    d.Rows,
		Cols:    d.Cols,
		Shape:   d.Shape,
		Seed:    d.Seed,
		Workers: d.Workers,
		Scale:   8,
		TPS:     60,
		SPS:     10,
	}
}

// Bind attaches the configuration to the provided FlagSet. Grid flags share
// their names with config.Simulation.Apply keys.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "simulation description (JSON)")
	fs.StringVar(&c.Variant, "variant", c.Variant, "simulation variant")
	fs.IntVar(&c.Rows, "rows", c.Rows, "grid rows")
	fs.IntVar(&c.Cols, "cols", c.Cols, "grid columns")
	fs.StringVar(&c.Shape, "shape", c.Shape, "cell shape: square, triangle or hexagon")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed")
	fs.IntVar(&c.Workers, "workers", c.Workers, "update workers")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per cell")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.SPS, "sps", c.SPS, "simulation steps per second")
}

// Simulation loads the description named by -config, or the defaults, and
// overrides it with every grid flag set explicitly on fs.
func (c *Config) Simulation(fs *flag.FlagSet) (config.Simulation, error) {
	sim := config.DefaultConfig()
	if c.ConfigPath != "" {
		loaded, err := config.Load(c.ConfigPath)
		if err != nil {
			return config.Simulation{}, err
		}
		sim = loaded
	}
	set := map[string]string{}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "variant", "rows", "cols", "shape", "seed", "workers":
			set[f.Name] = f.Value.String()
		}
	})
	sim.Apply(set)
	if err := sim.Validate(); err != nil {
		return config.Simulation{}, err
	}
	return sim, nil
}
