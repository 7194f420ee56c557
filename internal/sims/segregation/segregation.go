// Package segregation implements Schelling's segregation model.
package segregation

import (
	"slices"

	"cell-society/internal/core"
)

const (
	Empty  = 0
	GroupA = 1
	GroupB = 2
)

// StateNames are the default names for Empty and the two groups.
var StateNames = []string{"Empty", "GroupA", "GroupB"}

// Config holds the satisfaction threshold.
type Config struct {
	// ProbSatisfied is the minimum same-group fraction among occupied
	// neighbors for a cell to stay put.
	ProbSatisfied float64
}

// FromParams reads the required "probSatisfied" parameter.
func FromParams(params map[string]float64) (Config, error) {
	p, err := core.RequireParam(core.Segregation, params, "probSatisfied")
	if err != nil {
		return Config{}, err
	}
	if err := core.Probability("probSatisfied", p); err != nil {
		return Config{}, err
	}
	return Config{ProbSatisfied: p}, nil
}

// Rule relocates unsatisfied cells to a random unclaimed empty cell anywhere
// in the grid. A vacated or filled cell is claimed for the rest of the step,
// so the rule is Sequential.
type Rule struct {
	cfg Config
	rng *core.RNG

	// empty holds the cells that were Empty when the step began. Claimed
	// cells are dropped from it as moves happen.
	empty []int
}

// New builds a segregation rule drawing from rng.
func New(params map[string]float64, rng *core.RNG) (*Rule, error) {
	cfg, err := FromParams(params)
	if err != nil {
		return nil, err
	}
	return &Rule{cfg: cfg, rng: rng}, nil
}

// Variant identifies the rule as Segregation.
func (r *Rule) Variant() core.Variant { return core.Segregation }

// States returns 3: Empty and the two groups.
func (r *Rule) States() int { return 3 }

// Ordering is Sequential because cells honor claims staged earlier in the step.
func (r *Rule) Ordering() core.Ordering { return core.Sequential }

// Bind is a no-op; the rule keeps no per-cell fields.
func (r *Rule) Bind(*core.Grid) error { return nil }

// Commit is a no-op; only the cell state is staged.
func (r *Rule) Commit(*core.Grid, int) {}

// Rollback is a no-op.
func (r *Rule) Rollback(*core.Grid, int) {}

// Prepare collects the pre-step Empty cells once per generation.
func (r *Rule) Prepare(g *core.Grid, i int) {
	if i == 0 {
		r.empty = r.empty[:0]
	}
	if g.State(i) == Empty {
		r.empty = append(r.empty, i)
	}
}

// Update moves an unsatisfied, unclaimed cell to a random empty cell.
func (r *Rule) Update(g *core.Grid, i int) error {
	self := g.State(i)
	if self == Empty || g.Changed(i) {
		return nil
	}
	if Satisfied(g, i, r.cfg.ProbSatisfied) {
		return nil
	}
	r.move(g, i)
	return nil
}

// Satisfied reports whether the same-group fraction among the occupied
// neighbors of cell i reaches threshold. A cell without occupied neighbors
// is satisfied.
func Satisfied(g *core.Grid, i int, threshold float64) bool {
	self := g.State(i)
	same, occupied := 0, 0
	for _, n := range g.Neighbors(i) {
		s := g.State(n)
		if s == Empty {
			continue
		}
		occupied++
		if s == self {
			same++
		}
	}
	if occupied == 0 {
		return true
	}
	return float64(same)/float64(occupied) >= threshold
}

// move stages cell i into an empty cell nobody has claimed yet and vacates
// it. Nothing happens when every empty cell is taken.
func (r *Rule) move(g *core.Grid, i int) {
	r.empty = slices.DeleteFunc(r.empty, g.Changed)
	if len(r.empty) == 0 {
		return
	}
	dst := core.Pick(r.rng, r.empty)
	g.SetNext(dst, g.State(i))
	g.SetNext(i, Empty)
}

// Parameters reports the tunables the rule was built with.
func (r *Rule) Parameters() []core.ParameterGroup {
	return []core.ParameterGroup{{
		Name:   "Segregation",
		Params: []core.Parameter{core.FloatParam("probSatisfied", "Satisfaction threshold", r.cfg.ProbSatisfied)},
	}}
}
