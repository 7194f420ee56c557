package fire

import (
	"errors"
	"slices"
	"testing"

	"cell-society/internal/core"
	"cell-society/internal/grid"
)

func newGrid(t *testing.T, rows, cols int, p float64, rng *core.RNG, states []int) *core.Grid {
	t.Helper()
	topo, err := grid.NewTopology(rows, cols, grid.Neighbors8)
	if err != nil {
		t.Fatal(err)
	}
	rule, err := New(map[string]float64{"probCatch": p}, rng)
	if err != nil {
		t.Fatal(err)
	}
	g, err := core.NewGrid(core.Options{Topology: topo, Rule: rule, StateNames: StateNames, States: states})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestCertainCatchIgnitesEveryNeighbor(t *testing.T) {
	g := newGrid(t, 3, 3, 1.0, core.NewRNG(1), []int{
		Tree, Tree, Tree,
		Tree, Burning, Tree,
		Tree, Tree, Tree,
	})
	if err := g.Step(); err != nil {
		t.Fatal(err)
	}
	want := []int{
		Burning, Burning, Burning,
		Burning, Empty, Burning,
		Burning, Burning, Burning,
	}
	if !slices.Equal(g.States(), want) {
		t.Fatalf("got %v, want %v", g.States(), want)
	}
}

func TestFireAlwaysBurnsOut(t *testing.T) {
	g := newGrid(t, 1, 3, 0, core.NewRNG(1), []int{Burning, Burning, Empty})
	if err := g.Step(); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(g.States(), []int{Empty, Empty, Empty}) {
		t.Fatalf("got %v", g.States())
	}
}

func TestTreeWithoutFireDrawsNothing(t *testing.T) {
	rng := core.NewRNG(42)
	g := newGrid(t, 2, 2, 0.5, rng, []int{Tree, Tree, Empty, Tree})
	if err := g.Step(); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(g.States(), []int{Tree, Tree, Empty, Tree}) {
		t.Fatalf("trees changed without fire: %v", g.States())
	}
	if got, want := rng.Float64(), core.NewRNG(42).Float64(); got != want {
		t.Fatal("random stream consumed without a burning neighbor")
	}
}

func TestProbCatchValidation(t *testing.T) {
	if _, err := New(nil, core.NewRNG(1)); !errors.Is(err, core.ErrConfiguration) {
		t.Fatalf("missing probCatch: got %v", err)
	}
	if _, err := New(map[string]float64{"probCatch": 1.5}, core.NewRNG(1)); !errors.Is(err, core.ErrConfiguration) {
		t.Fatalf("probCatch 1.5: got %v", err)
	}
}
