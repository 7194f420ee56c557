package life

import (
	"slices"
	"testing"

	"cell-society/internal/core"
	"cell-society/internal/grid"
)

func newGrid(t *testing.T, rows, cols int, states []int) *core.Grid {
	t.Helper()
	topo, err := grid.NewTopology(rows, cols, grid.Neighbors8)
	if err != nil {
		t.Fatal(err)
	}
	rule, _ := New(nil)
	g, err := core.NewGrid(core.Options{Topology: topo, Rule: rule, StateNames: StateNames, States: states})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestTShapeOneStep(t *testing.T) {
	g := newGrid(t, 3, 3, []int{
		0, 1, 0,
		1, 1, 1,
		0, 0, 0,
	})
	if err := g.Step(); err != nil {
		t.Fatal(err)
	}
	want := []int{
		1, 1, 1,
		1, 1, 1,
		0, 1, 0,
	}
	if !slices.Equal(g.States(), want) {
		t.Fatalf("after one step got %v, want %v", g.States(), want)
	}
}

func TestBlinkerOscillates(t *testing.T) {
	horizontal := make([]int, 25)
	horizontal[2*5+1], horizontal[2*5+2], horizontal[2*5+3] = Alive, Alive, Alive
	vertical := make([]int, 25)
	vertical[1*5+2], vertical[2*5+2], vertical[3*5+2] = Alive, Alive, Alive

	g := newGrid(t, 5, 5, slices.Clone(horizontal))
	if err := g.Step(); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(g.States(), vertical) {
		t.Fatalf("blinker phase 1 = %v", g.States())
	}
	if err := g.Step(); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(g.States(), horizontal) {
		t.Fatalf("blinker phase 2 = %v", g.States())
	}
}

func TestAllDeadStaysDead(t *testing.T) {
	g := newGrid(t, 6, 4, make([]int, 24))
	if err := g.Run(10); err != nil {
		t.Fatal(err)
	}
	if c := g.StateCounts(); c["Alive"] != 0 || c["Dead"] != 24 {
		t.Fatalf("counts = %v", c)
	}
}

func TestSurvivalBounds(t *testing.T) {
	// Center alive with four live neighbors dies of overcrowding; a lone
	// live cell dies of isolation.
	g := newGrid(t, 3, 3, []int{
		1, 0, 1,
		0, 1, 0,
		1, 0, 1,
	})
	if err := g.Step(); err != nil {
		t.Fatal(err)
	}
	if s, _ := g.CurrentState(1, 1); s != Dead {
		t.Fatal("overcrowded cell survived")
	}

	g = newGrid(t, 3, 3, []int{0, 0, 0, 0, 1, 0, 0, 0, 0})
	if err := g.Step(); err != nil {
		t.Fatal(err)
	}
	if s, _ := g.CurrentState(1, 1); s != Dead {
		t.Fatal("isolated cell survived")
	}
}

func TestCountsAlwaysCoverGrid(t *testing.T) {
	rng := core.NewRNG(7)
	states := make([]int, 12*9)
	for i := range states {
		states[i] = rng.IntN(2)
	}
	g := newGrid(t, 12, 9, states)
	for step := 0; step < 20; step++ {
		if err := g.Step(); err != nil {
			t.Fatal(err)
		}
		total := 0
		for _, n := range g.StateCounts() {
			total += n
		}
		if total != 12*9 {
			t.Fatalf("step %d: counts sum to %d", step, total)
		}
	}
}
