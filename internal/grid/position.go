package grid

import "fmt"

// Position is an immutable 2D coordinate. For grid geometry X is the column
// and Y is the row; for on-screen geometry both are pixel offsets.
type Position struct {
	X float64
	Y float64
}

// At returns the grid position of the cell at (row, col).
func At(row, col int) Position {
	return Position{X: float64(col), Y: float64(row)}
}

// Row returns the row index encoded in a grid position.
func (p Position) Row() int { return int(p.Y) }

// Col returns the column index encoded in a grid position.
func (p Position) Col() int { return int(p.X) }

// Delta returns the coordinate difference to.Sub(p).
func (p Position) Delta(to Position) (dx, dy float64) {
	return to.X - p.X, to.Y - p.Y
}

func (p Position) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}
