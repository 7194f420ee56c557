// Package factory builds a ready-to-step grid from a parsed simulation
// description.
package factory

import (
	"log/slog"

	"cell-society/internal/config"
	"cell-society/internal/core"
	"cell-society/internal/grid"
	"cell-society/internal/sims/ants"
	"cell-society/internal/sims/fire"
	"cell-society/internal/sims/life"
	"cell-society/internal/sims/percolation"
	"cell-society/internal/sims/predprey"
	"cell-society/internal/sims/rps"
	"cell-society/internal/sims/segregation"
)

// Constructor builds a variant rule from its named parameters. Rules that
// need randomness draw from rng.
type Constructor func(params map[string]float64, rng *core.RNG) (core.Rule, error)

type entry struct {
	names []string
	build Constructor
}

var registry = map[core.Variant]entry{
	core.GameOfLife:   {life.StateNames, plain(life.New)},
	core.Fire:         {fire.StateNames, seeded(fire.New)},
	core.Percolation:  {percolation.StateNames, plain(percolation.New)},
	core.PredatorPrey: {predprey.StateNames, seeded(predprey.New)},
	core.RPS:          {rps.StateNames, seeded(rps.New)},
	core.Segregation:  {segregation.StateNames, seeded(segregation.New)},
	core.ForagingAnt:  {ants.StateNames, plain(ants.New)},
}

func plain[R core.Rule](fn func(map[string]float64) (R, error)) Constructor {
	return func(params map[string]float64, _ *core.RNG) (core.Rule, error) {
		r, err := fn(params)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
}

func seeded[R core.Rule](fn func(map[string]float64, *core.RNG) (R, error)) Constructor {
	return func(params map[string]float64, rng *core.RNG) (core.Rule, error) {
		r, err := fn(params, rng)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
}

// StateNames returns the built-in state names of v.
func StateNames(v core.Variant) ([]string, error) {
	e, ok := registry[v]
	if !ok {
		return nil, core.Configf("variant", "no constructor registered for %s", v)
	}
	return append([]string(nil), e.names...), nil
}

// Option customizes Build.
type Option func(*builder)

type builder struct {
	log *slog.Logger
}

// WithLogger routes build diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(b *builder) { b.log = l }
}

// Build validates cfg and constructs the grid it describes. Every failure is
// a configuration error and surfaces before any step runs.
func Build(cfg config.Simulation, opts ...Option) (*core.Grid, error) {
	b := builder{log: slog.Default()}
	for _, o := range opts {
		o(&b)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	variant, err := core.ParseVariant(cfg.Variant)
	if err != nil {
		return nil, err
	}
	e, ok := registry[variant]
	if !ok {
		return nil, core.Configf("variant", "no constructor registered for %s", variant)
	}

	shape, err := grid.ParseShape(cfg.Shape)
	if err != nil {
		return nil, core.Configf("shape", "%v", err)
	}
	hood := shape.DefaultNeighborhood()
	if cfg.Neighbors != "" {
		if hood, err = grid.ParseNeighborhood(cfg.Neighbors); err != nil {
			return nil, core.Configf("neighbors", "%v", err)
		}
	}
	topo, err := grid.NewTopology(cfg.Rows, cfg.Cols, hood)
	if err != nil {
		return nil, core.Configf("size", "%v", err)
	}

	rng := core.NewRNG(cfg.Seed)
	rule, err := e.build(cfg.Parameters, rng)
	if err != nil {
		return nil, err
	}

	names := e.names
	if len(cfg.StateNames) > 0 {
		names = cfg.StateNames
	}
	if len(cfg.Colors) > 0 && len(cfg.Colors) != rule.States() {
		return nil, core.Configf("colors", "%s has %d states, got %d colors", variant, rule.States(), len(cfg.Colors))
	}
	if cfg.NumColors > 0 && cfg.NumColors != rule.States() {
		return nil, core.Configf("numColors", "%s has %d states, got numColors %d", variant, rule.States(), cfg.NumColors)
	}

	states := cfg.InitialStates
	if states == nil {
		if states, err = initialStates(cfg, rule.States(), rng); err != nil {
			return nil, err
		}
	}

	g, err := core.NewGrid(core.Options{
		Topology:   topo,
		Shape:      shape,
		Rule:       rule,
		StateNames: names,
		States:     states,
		Workers:    cfg.Workers,
		Generation: cfg.Generation,
	})
	if err != nil {
		return nil, err
	}
	b.log.Debug("grid built",
		"variant", variant,
		"rows", cfg.Rows,
		"cols", cfg.Cols,
		"shape", shape,
		"neighbors", hood,
		"ordering", rule.Ordering(),
		"seed", cfg.Seed,
	)
	return g, nil
}
