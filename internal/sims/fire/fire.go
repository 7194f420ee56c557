package fire

import "cell-society/internal/core"

const (
	Empty   = 0
	Burning = 1
	Tree    = 2
)

// StateNames are the default names for Empty, Fire and Tree.
var StateNames = []string{"Empty", "Fire", "Tree"}

// Config holds the fire spread parameters.
type Config struct {
	// ProbCatch is the chance a tree ignites per burning neighbor.
	ProbCatch float64
}

// FromParams reads the required "probCatch" parameter.
func FromParams(params map[string]float64) (Config, error) {
	p, err := core.RequireParam(core.Fire, params, "probCatch")
	if err != nil {
		return Config{}, err
	}
	if err := core.Probability("probCatch", p); err != nil {
		return Config{}, err
	}
	return Config{ProbCatch: p}, nil
}

// Rule spreads fire from burning cells to neighboring trees. Burning cells
// burn out after one step.
type Rule struct {
	cfg Config
	rng *core.RNG
}

// New builds a fire rule drawing from rng.
func New(params map[string]float64, rng *core.RNG) (*Rule, error) {
	cfg, err := FromParams(params)
	if err != nil {
		return nil, err
	}
	return &Rule{cfg: cfg, rng: rng}, nil
}

// Variant identifies the rule as Fire.
func (r *Rule) Variant() core.Variant { return core.Fire }

// States returns 3: Empty, Fire and Tree.
func (r *Rule) States() int { return 3 }

// Ordering is sequential so the shared random stream is consumed in a
// reproducible order.
func (r *Rule) Ordering() core.Ordering { return core.Sequential }

// Bind is a no-op; the rule keeps no per-cell fields.
func (r *Rule) Bind(*core.Grid) error { return nil }

// Commit is a no-op; only the cell state is staged.
func (r *Rule) Commit(*core.Grid, int) {}

// Rollback is a no-op.
func (r *Rule) Rollback(*core.Grid, int) {}

// Update draws once per burning neighbor of a tree. A tree with no burning
// neighbor consumes no randomness.
func (r *Rule) Update(g *core.Grid, i int) error {
	switch g.State(i) {
	case Burning:
		g.SetNext(i, Empty)
	case Tree:
		for _, n := range g.Neighbors(i) {
			if g.State(n) == Burning && r.rng.Chance(r.cfg.ProbCatch) {
				g.SetNext(i, Burning)
			}
		}
	}
	return nil
}

// Parameters reports the catch probability.
func (r *Rule) Parameters() []core.ParameterGroup {
	return []core.ParameterGroup{{
		Name:   "Fire",
		Params: []core.Parameter{core.FloatParam("probCatch", "Catch probability", r.cfg.ProbCatch)},
	}}
}
