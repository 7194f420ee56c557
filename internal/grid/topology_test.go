package grid

import (
	"slices"
	"testing"
)

func TestMooreCornerAndCenter(t *testing.T) {
	topo, err := NewTopology(3, 3, Neighbors8)
	if err != nil {
		t.Fatal(err)
	}
	if got := topo.Neighbors(topo.Index(0, 0)); !slices.Equal(got, []int{1, 3, 4}) {
		t.Fatalf("corner neighbors = %v", got)
	}
	if got := topo.Neighbors(topo.Index(1, 1)); !slices.Equal(got, []int{0, 1, 2, 3, 5, 6, 7, 8}) {
		t.Fatalf("center neighbors = %v", got)
	}
}

func TestVonNeumannOrder(t *testing.T) {
	topo, err := NewTopology(3, 3, Neighbors4)
	if err != nil {
		t.Fatal(err)
	}
	if got := topo.Neighbors(4); !slices.Equal(got, []int{1, 3, 5, 7}) {
		t.Fatalf("center neighbors = %v", got)
	}
	if got := topo.Neighbors(8); !slices.Equal(got, []int{5, 7}) {
		t.Fatalf("corner neighbors = %v", got)
	}
}

func TestInteriorNeighborCounts(t *testing.T) {
	cases := []struct {
		n    Neighborhood
		want int
	}{
		{Neighbors4, 4},
		{Neighbors6, 6},
		{Neighbors8, 8},
		{Neighbors12, 12},
	}
	for _, tc := range cases {
		topo, err := NewTopology(7, 7, tc.n)
		if err != nil {
			t.Fatal(err)
		}
		for _, rc := range [][2]int{{3, 3}, {3, 2}, {2, 3}} {
			if got := len(topo.Neighbors(topo.Index(rc[0], rc[1]))); got != tc.want {
				t.Fatalf("%s at %v: got %d neighbors, want %d", tc.n, rc, got, tc.want)
			}
		}
	}
}

func TestNeighborsStayInGridAndExcludeSelf(t *testing.T) {
	for _, n := range []Neighborhood{Neighbors4, Neighbors6, Neighbors8, Neighbors12} {
		topo, err := NewTopology(4, 5, n)
		if err != nil {
			t.Fatal(err)
		}
		for idx := 0; idx < topo.Len(); idx++ {
			seen := map[int]bool{}
			for _, nb := range topo.Neighbors(idx) {
				if nb < 0 || nb >= topo.Len() {
					t.Fatalf("%s: neighbor %d of %d out of range", n, nb, idx)
				}
				if nb == idx {
					t.Fatalf("%s: cell %d lists itself", n, idx)
				}
				if seen[nb] {
					t.Fatalf("%s: cell %d lists %d twice", n, idx, nb)
				}
				seen[nb] = true
			}
		}
	}
}

func TestHexNeighborsAreSymmetric(t *testing.T) {
	topo, err := NewTopology(6, 6, Neighbors6)
	if err != nil {
		t.Fatal(err)
	}
	for idx := 0; idx < topo.Len(); idx++ {
		for _, nb := range topo.Neighbors(idx) {
			if !slices.Contains(topo.Neighbors(nb), idx) {
				t.Fatalf("hex adjacency %d -> %d is not mutual", idx, nb)
			}
		}
	}
}

func TestTriangleNeighborsAreSymmetric(t *testing.T) {
	topo, err := NewTopology(6, 8, Neighbors12)
	if err != nil {
		t.Fatal(err)
	}
	for idx := 0; idx < topo.Len(); idx++ {
		for _, nb := range topo.Neighbors(idx) {
			if !slices.Contains(topo.Neighbors(nb), idx) {
				t.Fatalf("triangle adjacency %d -> %d is not mutual", idx, nb)
			}
		}
	}
}

func TestParseTags(t *testing.T) {
	if s, err := ParseShape("hexagonGrid"); err != nil || s != ShapeHexagon {
		t.Fatalf("ParseShape(hexagonGrid) = %v, %v", s, err)
	}
	if _, err := ParseShape("octagon"); err == nil {
		t.Fatal("expected unknown shape to fail")
	}
	if n, err := ParseNeighborhood("neighbors12"); err != nil || n != Neighbors12 {
		t.Fatalf("ParseNeighborhood(neighbors12) = %v, %v", n, err)
	}
	if _, err := ParseNeighborhood("neighbors5"); err == nil {
		t.Fatal("expected unknown neighborhood to fail")
	}
}

func TestHexOffsetStaggersOddColumns(t *testing.T) {
	even := ShapeHexagon.Offset(2, 2, 10, 10)
	odd := ShapeHexagon.Offset(2, 3, 10, 10)
	if odd.Y-even.Y != 5 {
		t.Fatalf("odd column offset %v, even %v", odd, even)
	}
	if got := ShapeSquare.Offset(2, 3, 10, 20); got != (Position{X: 30, Y: 40}) {
		t.Fatalf("square offset = %v", got)
	}
}
