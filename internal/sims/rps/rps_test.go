package rps

import (
	"slices"
	"testing"

	"cell-society/internal/core"
	"cell-society/internal/grid"
)

func newGrid(t *testing.T, params map[string]float64, states []int) (*core.Grid, *Rule) {
	t.Helper()
	topo, err := grid.NewTopology(1, len(states), grid.Neighbors4)
	if err != nil {
		t.Fatal(err)
	}
	rule, err := New(params, core.NewRNG(1))
	if err != nil {
		t.Fatal(err)
	}
	g, err := core.NewGrid(core.Options{Topology: topo, Rule: rule, StateNames: StateNames, States: states})
	if err != nil {
		t.Fatal(err)
	}
	return g, rule
}

func TestWinnerConvertsLoser(t *testing.T) {
	cases := []struct {
		name  string
		start []int
		want  []int
	}{
		{"red beats blue", []int{Red, Blue}, []int{Empty, Red}},
		{"blue beats green", []int{Blue, Green}, []int{Empty, Blue}},
		{"green beats red", []int{Green, Red}, []int{Empty, Green}},
		{"loser waits for winner", []int{Blue, Red}, []int{Red, Empty}},
	}
	for _, tc := range cases {
		g, rule := newGrid(t, nil, tc.start)
		if err := g.Step(); err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(g.States(), tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, g.States(), tc.want)
		}
		for i := range tc.want {
			if rule.Level(i) != 0 {
				t.Fatalf("%s: cell %d level %d", tc.name, i, rule.Level(i))
			}
		}
	}
}

func TestEmptyAdoptsNeighborColor(t *testing.T) {
	g, rule := newGrid(t, nil, []int{Empty, Green})
	if err := g.Step(); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(g.States(), []int{Green, Green}) {
		t.Fatalf("got %v", g.States())
	}
	if rule.Level(0) != 1 || rule.Level(1) != 0 {
		t.Fatalf("levels = %d, %d", rule.Level(0), rule.Level(1))
	}
}

func TestSpreadStopsAtMaxLevel(t *testing.T) {
	g, _ := newGrid(t, map[string]float64{"maxLevel": 0}, []int{Empty, Green})
	if err := g.Step(); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(g.States(), []int{Empty, Green}) {
		t.Fatalf("got %v", g.States())
	}
}

func TestSameColorsCoexist(t *testing.T) {
	g, _ := newGrid(t, nil, []int{Red, Red, Red})
	if err := g.Run(3); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(g.States(), []int{Red, Red, Red}) {
		t.Fatalf("got %v", g.States())
	}
}
