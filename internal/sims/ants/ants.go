// Package ants implements a foraging ant colony.
//
// Cells are Empty, Food or Nest and carry two pheromone fields: a food trail
// laid by ants returning home and a home trail laid by ants out foraging.
// Both fields fade every step. Nests hatch a starting population the first
// time they are updated; every ant then follows the strongest trail ahead of
// it, falling back to the cells behind it when nothing ahead is eligible.
//
// Ants append themselves to their destination's staged occupant list, which
// other cells read for the capacity check, so the rule is Sequential.
package ants

import (
	"slices"

	"cell-society/internal/core"
)

const (
	Empty = 0
	Food  = 1
	Nest  = 2
)

// StateNames are the default names for Empty, Food and Nest.
var StateNames = []string{"Empty", "Food", "Nest"}

// Config holds the colony constants.
type Config struct {
	// Retention is the fraction of pheromone kept each step.
	Retention    float64
	MaxAnts      int
	StartAnts    int
	MaxPheromone float64
	InitialFood  int
}

// DefaultConfig returns the standard colony constants.
func DefaultConfig() Config {
	return Config{
		Retention:    0.99,
		MaxAnts:      200,
		StartAnts:    10,
		MaxPheromone: 100,
		InitialFood:  40,
	}
}

// FromParams applies optional overrides to DefaultConfig.
func FromParams(params map[string]float64) (Config, error) {
	c := DefaultConfig()
	c.Retention = core.Param(params, "retention", c.Retention)
	c.MaxAnts = int(core.Param(params, "maxAnts", float64(c.MaxAnts)))
	c.StartAnts = int(core.Param(params, "startAnts", float64(c.StartAnts)))
	c.MaxPheromone = core.Param(params, "maxPheromone", c.MaxPheromone)
	c.InitialFood = int(core.Param(params, "initialFood", float64(c.InitialFood)))
	switch {
	case c.Retention <= 0 || c.Retention >= 1:
		return c, core.Configf("retention", "must lie in (0,1), got %g", c.Retention)
	case c.MaxAnts <= 0:
		return c, core.Configf("maxAnts", "must be positive, got %d", c.MaxAnts)
	case c.StartAnts < 0:
		return c, core.Configf("startAnts", "must be non-negative, got %d", c.StartAnts)
	case c.MaxPheromone <= 0:
		return c, core.Configf("maxPheromone", "must be positive, got %g", c.MaxPheromone)
	case c.InitialFood < 0:
		return c, core.Configf("initialFood", "must be non-negative, got %d", c.InitialFood)
	}
	return c, nil
}

// Rule holds the per-cell colony fields. Every field has a committed and a
// staged copy; Commit copies staged into committed and Rollback the reverse.
type Rule struct {
	cfg Config

	food, nextFood         []int
	foodPher, nextFoodPher []float64
	homePher, nextHomePher []float64
	ants, nextAnts         [][]Ant
	hatched, nextHatched   []bool

	movers []Ant
}

// New builds a foraging ant rule.
func New(params map[string]float64) (*Rule, error) {
	cfg, err := FromParams(params)
	if err != nil {
		return nil, err
	}
	return &Rule{cfg: cfg}, nil
}

// Variant identifies the rule as ForagingAnt.
func (r *Rule) Variant() core.Variant { return core.ForagingAnt }

// States returns 3: Empty, Food and Nest.
func (r *Rule) States() int { return 3 }

// Ordering is Sequential because cells honor claims staged earlier in the step.
func (r *Rule) Ordering() core.Ordering { return core.Sequential }

// Config returns the colony constants in use.
func (r *Rule) Config() Config { return r.cfg }

// MaxPheromone returns the level deposited at food sources and nests.
func (r *Rule) MaxPheromone() float64 { return r.cfg.MaxPheromone }

// Bind stocks every Food cell with the initial food level.
func (r *Rule) Bind(g *core.Grid) error {
	n := g.Len()
	r.food, r.nextFood = make([]int, n), make([]int, n)
	r.foodPher, r.nextFoodPher = make([]float64, n), make([]float64, n)
	r.homePher, r.nextHomePher = make([]float64, n), make([]float64, n)
	r.ants, r.nextAnts = make([][]Ant, n), make([][]Ant, n)
	r.hatched, r.nextHatched = make([]bool, n), make([]bool, n)
	for i := 0; i < n; i++ {
		if g.State(i) == Food {
			r.food[i] = r.cfg.InitialFood
			r.nextFood[i] = r.cfg.InitialFood
		}
	}
	return nil
}

// Prepare stages the faded pheromone levels of cell i. Deposits made while
// ants move only ever raise these staged values.
func (r *Rule) Prepare(_ *core.Grid, i int) {
	r.nextFoodPher[i] = r.foodPher[i] * r.cfg.Retention
	r.nextHomePher[i] = r.homePher[i] * r.cfg.Retention
}

// Update hatches the nest population if needed and moves every ant that
// started the step on cell i.
func (r *Rule) Update(g *core.Grid, i int) error {
	if r.foodPher[i] < 0 || r.homePher[i] < 0 {
		return core.Invariantf(core.ForagingAnt, i, "negative pheromone (food %g, home %g)", r.foodPher[i], r.homePher[i])
	}
	if r.food[i] < 0 {
		return core.Invariantf(core.ForagingAnt, i, "negative food %d", r.food[i])
	}

	r.movers = append(r.movers[:0], r.ants[i]...)
	if g.State(i) == Nest && !r.hatched[i] {
		r.nextHatched[i] = true
		for k := 0; k < r.cfg.StartAnts; k++ {
			a := Ant{Pos: g.Position(i), Dir: Right}
			r.nextAnts[i] = append(r.nextAnts[i], a)
			r.movers = append(r.movers, a)
		}
	}
	for _, a := range r.movers {
		if err := r.move(g, i, a); err != nil {
			return err
		}
	}
	return nil
}

// move advances one ant owned by cell src. An ant with no eligible neighbor
// stays where it is.
func (r *Rule) move(g *core.Grid, src int, a Ant) error {
	from := g.Position(src)
	var ahead, behind []int
	for _, n := range g.Neighbors(src) {
		if a.Dir.Ahead(from, g.Position(n)) {
			ahead = append(ahead, n)
		} else {
			behind = append(behind, n)
		}
	}
	dst := r.best(ahead, a.Carrying)
	if dst < 0 {
		dst = r.best(behind, a.Carrying)
	}
	if dst < 0 {
		return nil
	}

	k := indexOf(r.nextAnts[src], a)
	if k < 0 {
		return core.Invariantf(core.ForagingAnt, src, "ant at %v facing %s missing from staged occupants", a.Pos, a.Dir)
	}

	moved := a
	moved.Pos = g.Position(dst)
	moved.Dir = Facing(from, moved.Pos, a.Dir)
	switch g.State(dst) {
	case Food:
		r.nextFoodPher[dst] = r.cfg.MaxPheromone
		if !moved.Carrying && r.nextFood[dst] > 0 {
			r.nextFood[dst]--
			moved.Carrying = true
		}
	case Nest:
		r.nextHomePher[dst] = r.cfg.MaxPheromone
		if moved.Carrying {
			r.nextFood[dst]++
			moved.Carrying = false
		}
	}

	// Ownership moves in one go: the ant was found above, so neither list
	// can end up with zero or two copies.
	r.nextAnts[src] = slices.Delete(r.nextAnts[src], k, k+1)
	r.nextAnts[dst] = append(r.nextAnts[dst], moved)

	r.trace(g, src, moved.Carrying)
	return nil
}

// best returns the eligible candidate with the strongest relevant trail,
// first in neighbor order on ties, or -1. A cell is eligible while fewer than
// MaxAnts ants are staged on it.
func (r *Rule) best(candidates []int, carrying bool) int {
	choice, level := -1, -1.0
	for _, n := range candidates {
		if len(r.nextAnts[n]) >= r.cfg.MaxAnts {
			continue
		}
		l := r.foodPher[n]
		if carrying {
			l = r.homePher[n]
		}
		if l > level {
			choice, level = n, l
		}
	}
	return choice
}

// trace raises the staged trail on the cell an ant just left up to the
// strongest committed level among that cell's neighbors. Carrying ants lay
// food trail; the rest lay home trail. Levels never go down.
func (r *Rule) trace(g *core.Grid, src int, carrying bool) {
	cur, next := r.homePher, r.nextHomePher
	if carrying {
		cur, next = r.foodPher, r.nextFoodPher
	}
	peak := -1.0
	for _, n := range g.Neighbors(src) {
		peak = max(peak, cur[n])
	}
	if cur[src] < peak {
		next[src] = max(next[src], peak)
	}
}

// Commit makes the staged colony fields current. A Food cell that has been
// emptied becomes Empty.
func (r *Rule) Commit(g *core.Grid, i int) {
	r.food[i] = r.nextFood[i]
	r.foodPher[i] = r.nextFoodPher[i]
	r.homePher[i] = r.nextHomePher[i]
	r.ants[i] = slices.Clone(r.nextAnts[i])
	r.hatched[i] = r.nextHatched[i]
	if g.NextState(i) == Food && r.food[i] <= 0 {
		g.SetNext(i, Empty)
	}
}

// Rollback discards every staged colony field of cell i.
func (r *Rule) Rollback(_ *core.Grid, i int) {
	r.nextFood[i] = r.food[i]
	r.nextFoodPher[i] = r.foodPher[i]
	r.nextHomePher[i] = r.homePher[i]
	r.nextAnts[i] = slices.Clone(r.ants[i])
	r.nextHatched[i] = r.hatched[i]
}

// Edited restocks a cell turned into Food and lets a new Nest hatch.
func (r *Rule) Edited(_ *core.Grid, i, state int) {
	switch state {
	case Food:
		r.nextFood[i] = r.cfg.InitialFood
	case Nest:
		r.nextFood[i] = 0
		r.nextHatched[i] = false
	default:
		r.nextFood[i] = 0
	}
}

// Food returns the committed food level of cell i.
func (r *Rule) Food(i int) int { return r.food[i] }

// FoodPheromone returns the committed food trail level of cell i.
func (r *Rule) FoodPheromone(i int) float64 { return r.foodPher[i] }

// HomePheromone returns the committed home trail level of cell i.
func (r *Rule) HomePheromone(i int) float64 { return r.homePher[i] }

// AntsAt returns a copy of the ants committed on cell i.
func (r *Rule) AntsAt(i int) []Ant { return slices.Clone(r.ants[i]) }

// Population returns the number of committed ants.
func (r *Rule) Population() int {
	total := 0
	for _, list := range r.ants {
		total += len(list)
	}
	return total
}

// Agents lists every committed ant in row-major cell order.
func (r *Rule) Agents(*core.Grid) []core.AgentRecord {
	var out []core.AgentRecord
	for _, list := range r.ants {
		for _, a := range list {
			out = append(out, core.AgentRecord{
				Row:       a.Pos.Row(),
				Col:       a.Pos.Col(),
				Direction: a.Dir.String(),
				Carrying:  a.Carrying,
			})
		}
	}
	return out
}

// Parameters reports the tunables the rule was built with.
func (r *Rule) Parameters() []core.ParameterGroup {
	return []core.ParameterGroup{{
		Name: "Colony",
		Params: []core.Parameter{
			core.FloatParam("retention", "Pheromone retention", r.cfg.Retention),
			core.IntParam("maxAnts", "Ants per cell", r.cfg.MaxAnts),
			core.IntParam("startAnts", "Ants per nest", r.cfg.StartAnts),
			core.FloatParam("maxPheromone", "Max pheromone", r.cfg.MaxPheromone),
			core.IntParam("initialFood", "Food per source", r.cfg.InitialFood),
		},
	}}
}
