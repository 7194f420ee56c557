// Package predprey implements a Wa-Tor style predator/prey ecology.
//
// A cell that has already been staged during the current step is claimed:
// it neither acts nor can be moved into. Claims depend on evaluation order,
// so the rule is Sequential and cells are visited in row-major order.
package predprey

import "cell-society/internal/core"

const (
	Predator = 0
	Prey     = 1
	Water    = 2
)

// StateNames are the default names for Predator, Prey and Water.
var StateNames = []string{"Predator", "Prey", "Water"}

// Config holds the energy budget of the ecology.
type Config struct {
	// Energy is the starting energy of every cell.
	Energy              int
	ReproductionTime    int
	EnergyFromPrey      int
	PredatorStartEnergy int
	PreyStartEnergy     int
}

// DefaultConfig returns the standard constants. Energy has no default.
func DefaultConfig() Config {
	return Config{
		ReproductionTime:    4,
		EnergyFromPrey:      2,
		PredatorStartEnergy: 3,
		PreyStartEnergy:     0,
	}
}

// FromParams reads the required "energy" parameter plus optional overrides.
func FromParams(params map[string]float64) (Config, error) {
	c := DefaultConfig()
	e, err := core.RequireParam(core.PredatorPrey, params, "energy")
	if err != nil {
		return c, err
	}
	c.Energy = int(e)
	c.ReproductionTime = int(core.Param(params, "reproductionTime", float64(c.ReproductionTime)))
	c.EnergyFromPrey = int(core.Param(params, "energyFromPrey", float64(c.EnergyFromPrey)))
	c.PredatorStartEnergy = int(core.Param(params, "predatorStartEnergy", float64(c.PredatorStartEnergy)))
	c.PreyStartEnergy = int(core.Param(params, "preyStartEnergy", float64(c.PreyStartEnergy)))
	switch {
	case c.Energy < 0:
		return c, core.Configf("energy", "must be non-negative, got %d", c.Energy)
	case c.ReproductionTime < 0:
		return c, core.Configf("reproductionTime", "must be non-negative, got %d", c.ReproductionTime)
	case c.EnergyFromPrey < 0:
		return c, core.Configf("energyFromPrey", "must be non-negative, got %d", c.EnergyFromPrey)
	case c.PredatorStartEnergy < 0 || c.PreyStartEnergy < 0:
		return c, core.Configf("startEnergy", "must be non-negative")
	}
	return c, nil
}

// Rule moves prey into water, lets predators hunt prey and starves
// predators that run out of energy.
type Rule struct {
	cfg Config
	rng *core.RNG

	energy, nextEnergy []int

	water, prey []int
}

// New builds a predator/prey rule drawing from rng.
func New(params map[string]float64, rng *core.RNG) (*Rule, error) {
	cfg, err := FromParams(params)
	if err != nil {
		return nil, err
	}
	return &Rule{cfg: cfg, rng: rng}, nil
}

// Variant identifies the rule as PredatorPrey.
func (r *Rule) Variant() core.Variant { return core.PredatorPrey }

// States returns 3: Predator, Prey and Water.
func (r *Rule) States() int { return 3 }

// Ordering is Sequential because cells honor claims staged earlier in the step.
func (r *Rule) Ordering() core.Ordering { return core.Sequential }

// Bind gives every cell the configured starting energy.
func (r *Rule) Bind(g *core.Grid) error {
	r.energy = make([]int, g.Len())
	r.nextEnergy = make([]int, g.Len())
	for i := range r.energy {
		r.energy[i] = r.cfg.Energy
		r.nextEnergy[i] = r.cfg.Energy
	}
	return nil
}

// Energy returns the committed energy of cell i.
func (r *Rule) Energy(i int) int { return r.energy[i] }

// Update moves, feeds or starves the animal on cell i. Cells already
// claimed this step are left alone.
func (r *Rule) Update(g *core.Grid, i int) error {
	if g.Changed(i) {
		return nil
	}
	if r.energy[i] < 0 {
		return core.Invariantf(core.PredatorPrey, i, "negative energy %d", r.energy[i])
	}
	switch g.State(i) {
	case Prey:
		r.collect(g, i)
		if len(r.water) > 0 {
			r.movePrey(g, i)
		}
	case Predator:
		r.collect(g, i)
		switch {
		case r.energy[i] == 0:
			r.stage(g, i, Water, 0)
		case len(r.prey) > 0:
			r.eat(g, i)
		case len(r.water) > 0:
			dst := core.Pick(r.rng, r.water)
			r.stage(g, dst, Predator, r.energy[i]-1)
			r.stage(g, i, Water, 0)
		default:
			r.stage(g, i, Predator, r.energy[i]-1)
		}
	}
	return nil
}

func (r *Rule) movePrey(g *core.Grid, i int) {
	dst := core.Pick(r.rng, r.water)
	r.stage(g, dst, Prey, r.energy[i]+1)
	if r.energy[i] >= r.cfg.ReproductionTime {
		r.stage(g, i, Prey, r.cfg.PreyStartEnergy)
		return
	}
	r.stage(g, i, Water, 0)
}

func (r *Rule) eat(g *core.Grid, i int) {
	dst := core.Pick(r.rng, r.prey)
	r.stage(g, dst, Predator, r.energy[i]+r.cfg.EnergyFromPrey)
	if r.energy[i] >= r.cfg.ReproductionTime {
		r.stage(g, i, Predator, r.cfg.PredatorStartEnergy)
		return
	}
	r.stage(g, i, Water, 0)
}

// collect gathers the unclaimed water and prey neighbors of cell i in
// neighbor order.
func (r *Rule) collect(g *core.Grid, i int) {
	r.water = r.water[:0]
	r.prey = r.prey[:0]
	for _, n := range g.Neighbors(i) {
		if g.Changed(n) {
			continue
		}
		switch g.State(n) {
		case Water:
			r.water = append(r.water, n)
		case Prey:
			r.prey = append(r.prey, n)
		}
	}
}

func (r *Rule) stage(g *core.Grid, i, state, energy int) {
	g.SetNext(i, state)
	r.nextEnergy[i] = energy
}

// Commit makes the staged energy current.
func (r *Rule) Commit(_ *core.Grid, i int) { r.energy[i] = r.nextEnergy[i] }

// Rollback discards the staged energy.
func (r *Rule) Rollback(_ *core.Grid, i int) { r.nextEnergy[i] = r.energy[i] }

// Edited resets the energy of a hand-edited cell to the starting energy.
func (r *Rule) Edited(_ *core.Grid, i, _ int) { r.nextEnergy[i] = r.cfg.Energy }

// Parameters reports the energy budget.
func (r *Rule) Parameters() []core.ParameterGroup {
	return []core.ParameterGroup{{
		Name: "Energy",
		Params: []core.Parameter{
			core.IntParam("energy", "Starting energy", r.cfg.Energy),
			core.IntParam("reproductionTime", "Reproduction threshold", r.cfg.ReproductionTime),
			core.IntParam("energyFromPrey", "Energy per prey", r.cfg.EnergyFromPrey),
			core.IntParam("predatorStartEnergy", "Predator offspring energy", r.cfg.PredatorStartEnergy),
			core.IntParam("preyStartEnergy", "Prey offspring energy", r.cfg.PreyStartEnergy),
		},
	}}
}
