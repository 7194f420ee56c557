// Package rps implements rock-paper-scissors bacteria competition.
//
// Each cell draws one random unclaimed neighbor per step. Empty cells grow
// the neighbor's color one strength level further out, occupied cells
// convert a beaten neighbor and vacate. Claims make the result depend on
// evaluation order, so the rule is Sequential.
package rps

import "cell-society/internal/core"

const (
	Empty = 0
	Red   = 1
	Blue  = 2
	Green = 3
)

// StateNames are the default names for Empty, Red, Blue and Green.
var StateNames = []string{"Empty", "Red", "Blue", "Green"}

// beats maps each color to the color it converts.
var beats = map[int]int{Red: Blue, Blue: Green, Green: Red}

// Config holds the strength limit.
type Config struct {
	// MaxLevel caps how far a color can spread into empty cells.
	MaxLevel int
}

// DefaultConfig returns MaxLevel 9.
func DefaultConfig() Config { return Config{MaxLevel: 9} }

// FromParams reads the optional "maxLevel" parameter.
func FromParams(params map[string]float64) (Config, error) {
	c := DefaultConfig()
	c.MaxLevel = int(core.Param(params, "maxLevel", float64(c.MaxLevel)))
	if c.MaxLevel < 0 {
		return c, core.Configf("maxLevel", "must be non-negative, got %d", c.MaxLevel)
	}
	return c, nil
}

// Rule tracks a strength level per cell alongside its color.
type Rule struct {
	cfg Config
	rng *core.RNG

	level, nextLevel []int

	candidates []int
}

// New builds an RPS rule drawing from rng.
func New(params map[string]float64, rng *core.RNG) (*Rule, error) {
	cfg, err := FromParams(params)
	if err != nil {
		return nil, err
	}
	return &Rule{cfg: cfg, rng: rng}, nil
}

// Variant identifies the rule as RPS.
func (r *Rule) Variant() core.Variant { return core.RPS }

// States returns 4: Empty, Red, Blue and Green.
func (r *Rule) States() int { return 4 }

// Ordering is Sequential because cells honor claims staged earlier in the step.
func (r *Rule) Ordering() core.Ordering { return core.Sequential }

// Bind allocates the committed and staged strength levels.
func (r *Rule) Bind(g *core.Grid) error {
	r.level = make([]int, g.Len())
	r.nextLevel = make([]int, g.Len())
	return nil
}

// Level returns the committed strength level of cell i.
func (r *Rule) Level(i int) int { return r.level[i] }

// Update compares cell i with one random unclaimed neighbor: an empty
// cell may adopt its color, a winner converts the loser.
func (r *Rule) Update(g *core.Grid, i int) error {
	if g.Changed(i) {
		return nil
	}
	if r.level[i] < 0 || r.level[i] > r.cfg.MaxLevel {
		return core.Invariantf(core.RPS, i, "level %d outside [0,%d]", r.level[i], r.cfg.MaxLevel)
	}
	r.candidates = r.candidates[:0]
	for _, n := range g.Neighbors(i) {
		if !g.Changed(n) {
			r.candidates = append(r.candidates, n)
		}
	}
	if len(r.candidates) == 0 {
		return nil
	}
	n := core.Pick(r.rng, r.candidates)
	self, other := g.State(i), g.State(n)
	switch {
	case self == Empty:
		if other != Empty && r.level[n] < r.cfg.MaxLevel {
			r.stage(g, i, other, r.level[n]+1)
		}
	case beats[self] == other:
		r.stage(g, n, self, 0)
		r.stage(g, i, Empty, 0)
	}
	return nil
}

func (r *Rule) stage(g *core.Grid, i, state, level int) {
	g.SetNext(i, state)
	r.nextLevel[i] = level
}

// Commit makes the staged level current.
func (r *Rule) Commit(_ *core.Grid, i int) { r.level[i] = r.nextLevel[i] }

// Rollback discards the staged level.
func (r *Rule) Rollback(_ *core.Grid, i int) { r.nextLevel[i] = r.level[i] }

// Edited resets a hand-edited cell to full strength.
func (r *Rule) Edited(_ *core.Grid, i, _ int) { r.nextLevel[i] = 0 }

// Parameters reports the tunables the rule was built with.
func (r *Rule) Parameters() []core.ParameterGroup {
	return []core.ParameterGroup{{
		Name:   "RPS",
		Params: []core.Parameter{core.IntParam("maxLevel", "Max strength level", r.cfg.MaxLevel)},
	}}
}
