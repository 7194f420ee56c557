package grid

import "fmt"

// Offset is a relative (row, col) displacement.
type Offset struct {
	DR, DC int
}

// Pattern tables are listed in row-major order so enumeration is reproducible.
var (
	vonNeumann = []Offset{
		{-1, 0},
		{0, -1}, {0, 1},
		{1, 0},
	}
	moore = []Offset{
		{-1, -1}, {-1, 0}, {-1, 1},
		{0, -1}, {0, 1},
		{1, -1}, {1, 0}, {1, 1},
	}
	// Odd columns sit half a cell lower than even ones.
	hexEvenColumn = []Offset{
		{-1, -1}, {-1, 0}, {-1, 1},
		{0, -1}, {0, 1},
		{1, 0},
	}
	hexOddColumn = []Offset{
		{-1, 0},
		{0, -1}, {0, 1},
		{1, -1}, {1, 0}, {1, 1},
	}
	triangleUp = []Offset{
		{-1, -1}, {-1, 0}, {-1, 1},
		{0, -2}, {0, -1}, {0, 1}, {0, 2},
		{1, -2}, {1, -1}, {1, 0}, {1, 1}, {1, 2},
	}
	triangleDown = []Offset{
		{-1, -2}, {-1, -1}, {-1, 0}, {-1, 1}, {-1, 2},
		{0, -2}, {0, -1}, {0, 1}, {0, 2},
		{1, -1}, {1, 0}, {1, 1},
	}
)

// Pattern returns the relative offsets examined for the cell at (row, col).
// Hexagon and triangle patterns depend on the cell's parity.
func Pattern(n Neighborhood, row, col int) ([]Offset, error) {
	switch n {
	case Neighbors4:
		return vonNeumann, nil
	case Neighbors8:
		return moore, nil
	case Neighbors6:
		if col%2 == 0 {
			return hexEvenColumn, nil
		}
		return hexOddColumn, nil
	case Neighbors12:
		if PointsUp(row, col) {
			return triangleUp, nil
		}
		return triangleDown, nil
	}
	return nil, fmt.Errorf("unknown neighborhood %d", uint8(n))
}

// Topology holds the static neighbor lists of a rows x cols grid. Cells are
// addressed by their row-major index.
type Topology struct {
	Rows, Cols int
	Kind       Neighborhood
	neighbors  [][]int
}

// NewTopology computes every cell's neighbor list once. Offsets that fall
// outside the grid are dropped; there is no wrap-around.
func NewTopology(rows, cols int, n Neighborhood) (*Topology, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %dx%d", rows, cols)
	}
	t := &Topology{Rows: rows, Cols: cols, Kind: n, neighbors: make([][]int, rows*cols)}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			pattern, err := Pattern(n, r, c)
			if err != nil {
				return nil, err
			}
			list := make([]int, 0, len(pattern))
			for _, off := range pattern {
				nr, nc := r+off.DR, c+off.DC
				if nr < 0 || nr >= rows || nc < 0 || nc >= cols {
					continue
				}
				list = append(list, nr*cols+nc)
			}
			t.neighbors[r*cols+c] = list
		}
	}
	return t, nil
}

// Neighbors returns the neighbor indices of the cell at idx. The slice is
// shared and must not be modified.
func (t *Topology) Neighbors(idx int) []int { return t.neighbors[idx] }

// Index returns the row-major index of (row, col).
func (t *Topology) Index(row, col int) int { return row*t.Cols + col }

// Coords returns the (row, col) of a row-major index.
func (t *Topology) Coords(idx int) (int, int) { return idx / t.Cols, idx % t.Cols }

// InBounds reports whether (row, col) lies inside the grid.
func (t *Topology) InBounds(row, col int) bool {
	return row >= 0 && row < t.Rows && col >= 0 && col < t.Cols
}

// Len returns the number of cells.
func (t *Topology) Len() int { return len(t.neighbors) }
