package percolation

import "cell-society/internal/core"

const (
	Open       = 0
	Percolated = 1
)

// StateNames are the default names for Open and Percolated.
var StateNames = []string{"Open", "Percolated"}

// Rule floods open cells that touch a percolated neighbor. Percolated cells
// never revert.
type Rule struct{}

// New returns a percolation rule. It takes no parameters.
func New(map[string]float64) (*Rule, error) { return &Rule{}, nil }

// Variant identifies the rule as Percolation.
func (r *Rule) Variant() core.Variant { return core.Percolation }

// States returns 2: Open and Percolated.
func (r *Rule) States() int { return 2 }

// Ordering is Independent: a cell reads only committed neighbor states.
func (r *Rule) Ordering() core.Ordering { return core.Independent }

// Bind is a no-op; the rule keeps no per-cell fields.
func (r *Rule) Bind(*core.Grid) error { return nil }

// Commit is a no-op; only the cell state is staged.
func (r *Rule) Commit(*core.Grid, int) {}

// Rollback is a no-op.
func (r *Rule) Rollback(*core.Grid, int) {}

// Update percolates an open cell that has a percolated neighbor.
func (r *Rule) Update(g *core.Grid, i int) error {
	if g.State(i) != Open {
		return nil
	}
	for _, n := range g.Neighbors(i) {
		if g.State(n) == Percolated {
			g.SetNext(i, Percolated)
			return nil
		}
	}
	return nil
}
