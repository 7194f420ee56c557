package life

import "cell-society/internal/core"

const (
	Dead  = 0
	Alive = 1
)

// StateNames are the default names for Dead and Alive.
var StateNames = []string{"Dead", "Alive"}

// Rule implements Conway's Game of Life over whatever neighborhood the grid
// was built with. Neighbors beyond the edge count as dead.
type Rule struct{}

// New returns a Game of Life rule. Life takes no parameters.
func New(map[string]float64) (*Rule, error) { return &Rule{}, nil }

// Variant identifies the rule as GameOfLife.
func (r *Rule) Variant() core.Variant { return core.GameOfLife }

// States returns 2: Dead and Alive.
func (r *Rule) States() int { return 2 }

// Ordering is Independent: a cell reads only committed neighbor states.
func (r *Rule) Ordering() core.Ordering { return core.Independent }

// Bind is a no-op; the rule keeps no per-cell fields.
func (r *Rule) Bind(*core.Grid) error { return nil }

// Commit is a no-op; only the cell state is staged.
func (r *Rule) Commit(*core.Grid, int) {}

// Rollback is a no-op.
func (r *Rule) Rollback(*core.Grid, int) {}

// Update applies birth on exactly three live neighbors and survival on two
// or three.
func (r *Rule) Update(g *core.Grid, i int) error {
	alive := 0
	for _, n := range g.Neighbors(i) {
		if g.State(n) == Alive {
			alive++
		}
	}
	switch g.State(i) {
	case Alive:
		if alive < 2 || alive > 3 {
			g.SetNext(i, Dead)
		}
	default:
		if alive == 3 {
			g.SetNext(i, Alive)
		}
	}
	return nil
}
