// Package sweep runs one simulation per value of a numeric parameter and
// summarises how each run ended.
package sweep

import (
	"context"
	"fmt"
	"maps"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"cell-society/internal/config"
	"cell-society/internal/core"
	"cell-society/internal/factory"
)

// Plan describes a sweep over Param from Min to Max inclusive.
type Plan struct {
	Base  config.Simulation
	Param string
	Min   float64
	Max   float64
	Step  float64
	// Seeds runs each value this many times with Base.Seed, Base.Seed+1, ...
	Seeds int
	Steps int
	// Track names the state whose peak and extinction are reported.
	Track   string
	Workers int
}

// Result is the outcome of one (value, seed) scenario.
type Result struct {
	Value      float64
	Seed       int64
	Generation int
	Counts     map[string]int
	Peak       int
	// ExtinctAt is the first generation the tracked state had no cells, or -1.
	ExtinctAt int
	Err       error
}

// Values lists the parameter values of p in ascending order.
func (p Plan) Values() ([]float64, error) {
	if p.Step <= 0 {
		return nil, core.Configf("step", "must be positive, got %g", p.Step)
	}
	if p.Max < p.Min {
		return nil, core.Configf("range", "max %g below min %g", p.Max, p.Min)
	}
	n := int(math.Floor((p.Max-p.Min)/p.Step+1e-9)) + 1
	out := make([]float64, n)
	for i := range out {
		// Round away accumulated binary error so 0.1 steps print cleanly.
		out[i] = math.Round((p.Min+float64(i)*p.Step)*1e9) / 1e9
	}
	return out, nil
}

type job struct {
	value float64
	seed  int64
}

// Run executes every scenario of p on a bounded pool of goroutines. A
// scenario whose configuration is invalid aborts the sweep; a scenario whose
// step fails is reported through Result.Err.
func Run(ctx context.Context, p Plan) ([]Result, error) {
	values, err := p.Values()
	if err != nil {
		return nil, err
	}
	if p.Param == "" {
		return nil, core.Configf("param", "missing parameter name")
	}
	seeds := max(p.Seeds, 1)
	var jobs []job
	for _, v := range values {
		for s := 0; s < seeds; s++ {
			jobs = append(jobs, job{value: v, seed: p.Base.Seed + int64(s)})
		}
	}

	results := make([]Result, len(jobs))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(p.Workers, 1))
	for i, j := range jobs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := runScenario(p, j)
			if err != nil {
				return fmt.Errorf("%s=%g seed %d: %w", p.Param, j.value, j.seed, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	sort.SliceStable(results, func(a, b int) bool {
		if results[a].Value != results[b].Value {
			return results[a].Value < results[b].Value
		}
		return results[a].Seed < results[b].Seed
	})
	return results, nil
}

func runScenario(p Plan, j job) (Result, error) {
	cfg := p.Base
	cfg.Seed = j.seed
	cfg.Parameters = maps.Clone(p.Base.Parameters)
	if cfg.Parameters == nil {
		cfg.Parameters = map[string]float64{}
	}
	cfg.Parameters[p.Param] = j.value
	// Scenarios already run in parallel; keep each grid single-threaded.
	cfg.Workers = 1

	g, err := factory.Build(cfg)
	if err != nil {
		return Result{}, err
	}
	if _, ok := g.StateCounts()[p.Track]; p.Track != "" && !ok {
		return Result{}, core.Configf("track", "%s has no state %q", cfg.Variant, p.Track)
	}
	res := Result{Value: j.value, Seed: j.seed, ExtinctAt: -1}
	observe := func(g *core.Grid) {
		if p.Track == "" {
			return
		}
		n := g.StateCounts()[p.Track]
		res.Peak = max(res.Peak, n)
		if n == 0 && res.ExtinctAt < 0 {
			res.ExtinctAt = g.Generation()
		}
	}
	observe(g)
	g.Observe(core.ObserverFunc(observe))
	res.Err = g.Run(p.Steps)
	res.Generation = g.Generation()
	res.Counts = g.StateCounts()
	return res, nil
}
