package predprey

import (
	"errors"
	"slices"
	"testing"

	"cell-society/internal/core"
	"cell-society/internal/grid"
)

func newGrid(t *testing.T, cols int, energy float64, states []int) (*core.Grid, *Rule) {
	t.Helper()
	topo, err := grid.NewTopology(1, cols, grid.Neighbors4)
	if err != nil {
		t.Fatal(err)
	}
	rule, err := New(map[string]float64{"energy": energy}, core.NewRNG(1))
	if err != nil {
		t.Fatal(err)
	}
	g, err := core.NewGrid(core.Options{Topology: topo, Rule: rule, StateNames: StateNames, States: states})
	if err != nil {
		t.Fatal(err)
	}
	return g, rule
}

func TestPreyMovesIntoWater(t *testing.T) {
	g, rule := newGrid(t, 2, 0, []int{Prey, Water})
	if err := g.Step(); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(g.States(), []int{Water, Prey}) {
		t.Fatalf("got %v", g.States())
	}
	if rule.Energy(1) != 1 {
		t.Fatalf("moved prey energy = %d, want 1", rule.Energy(1))
	}
}

func TestPreyReproducesAtThreshold(t *testing.T) {
	g, rule := newGrid(t, 2, 4, []int{Prey, Water})
	if err := g.Step(); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(g.States(), []int{Prey, Prey}) {
		t.Fatalf("got %v", g.States())
	}
	if rule.Energy(0) != 0 || rule.Energy(1) != 5 {
		t.Fatalf("energies = %d, %d", rule.Energy(0), rule.Energy(1))
	}
}

func TestPredatorEatsPrey(t *testing.T) {
	g, rule := newGrid(t, 3, 2, []int{Predator, Prey, Water})
	if err := g.Step(); err != nil {
		t.Fatal(err)
	}
	// The eaten prey's cell is claimed, so that prey never gets to move.
	if !slices.Equal(g.States(), []int{Water, Predator, Water}) {
		t.Fatalf("got %v", g.States())
	}
	if rule.Energy(1) != 4 {
		t.Fatalf("predator energy = %d, want 4", rule.Energy(1))
	}
}

func TestPredatorStarves(t *testing.T) {
	g, _ := newGrid(t, 2, 0, []int{Predator, Water})
	if err := g.Step(); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(g.States(), []int{Water, Water}) {
		t.Fatalf("got %v", g.States())
	}
}

func TestTrappedPredatorLosesEnergy(t *testing.T) {
	g, rule := newGrid(t, 2, 3, []int{Predator, Predator})
	if err := g.Step(); err != nil {
		t.Fatal(err)
	}
	if rule.Energy(0) != 2 || rule.Energy(1) != 2 {
		t.Fatalf("energies = %d, %d", rule.Energy(0), rule.Energy(1))
	}
	if !slices.Equal(g.States(), []int{Predator, Predator}) {
		t.Fatalf("got %v", g.States())
	}
}

func TestEnergyIsRequired(t *testing.T) {
	if _, err := New(nil, core.NewRNG(1)); !errors.Is(err, core.ErrConfiguration) {
		t.Fatalf("got %v", err)
	}
	if _, err := New(map[string]float64{"energy": -1}, core.NewRNG(1)); !errors.Is(err, core.ErrConfiguration) {
		t.Fatalf("got %v", err)
	}
}

func TestPopulationConserved(t *testing.T) {
	topo, _ := grid.NewTopology(10, 10, grid.Neighbors8)
	rng := core.NewRNG(5)
	states := make([]int, 100)
	for i := range states {
		states[i] = rng.IntN(3)
	}
	rule, _ := New(map[string]float64{"energy": 3}, rng)
	g, err := core.NewGrid(core.Options{Topology: topo, Rule: rule, StateNames: StateNames, States: states})
	if err != nil {
		t.Fatal(err)
	}
	for step := 0; step < 30; step++ {
		if err := g.Step(); err != nil {
			t.Fatal(err)
		}
		total := 0
		for _, n := range g.StateCounts() {
			total += n
		}
		if total != 100 {
			t.Fatalf("step %d: counts sum to %d", step, total)
		}
		for i := 0; i < g.Len(); i++ {
			if rule.Energy(i) < 0 {
				t.Fatalf("step %d: cell %d has energy %d", step, i, rule.Energy(i))
			}
		}
	}
}
