package grid

import (
	"fmt"
	"strings"
)

// Shape enumerates the supported cell geometries.
type Shape uint8

const (
	ShapeSquare Shape = iota
	ShapeTriangle
	ShapeHexagon
)

// Neighborhood enumerates the supported adjacency patterns by neighbor count.
type Neighborhood uint8

const (
	Neighbors4  Neighborhood = 4
	Neighbors6  Neighborhood = 6
	Neighbors8  Neighborhood = 8
	Neighbors12 Neighborhood = 12
)

// hexColumnSpan is the horizontal distance between hexagon columns relative
// to the cell width.
const hexColumnSpan = 0.75

func (s Shape) String() string {
	switch s {
	case ShapeSquare:
		return "square"
	case ShapeTriangle:
		return "triangle"
	case ShapeHexagon:
		return "hexagon"
	default:
		return fmt.Sprintf("shape(%d)", uint8(s))
	}
}

// ParseShape accepts both the short names and the legacy "<name>Grid" tags.
func ParseShape(tag string) (Shape, error) {
	t := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(tag)), "grid")
	switch t {
	case "square", "":
		return ShapeSquare, nil
	case "triangle":
		return ShapeTriangle, nil
	case "hexagon", "hex":
		return ShapeHexagon, nil
	}
	return 0, fmt.Errorf("unknown grid shape %q", tag)
}

// DefaultNeighborhood returns the natural adjacency for the shape.
func (s Shape) DefaultNeighborhood() Neighborhood {
	switch s {
	case ShapeTriangle:
		return Neighbors12
	case ShapeHexagon:
		return Neighbors6
	default:
		return Neighbors8
	}
}

// Offset returns the on-screen top-left offset of the cell at (row, col) for
// cells of the given width and height.
func (s Shape) Offset(row, col int, cellW, cellH float64) Position {
	switch s {
	case ShapeTriangle:
		return Position{X: float64(col) * cellW / 2, Y: float64(row) * cellH}
	case ShapeHexagon:
		return Position{
			X: float64(col) * cellW * hexColumnSpan,
			Y: float64(row)*cellH + float64(col%2)*cellH/2,
		}
	default:
		return Position{X: float64(col) * cellW, Y: float64(row) * cellH}
	}
}

// Extent returns the on-screen size of a rows x cols grid of the shape.
func (s Shape) Extent(rows, cols int, cellW, cellH float64) (w, h float64) {
	switch s {
	case ShapeTriangle:
		return float64(cols+1) * cellW / 2, float64(rows) * cellH
	case ShapeHexagon:
		return float64(cols-1)*cellW*hexColumnSpan + cellW, float64(rows)*cellH + cellH/2
	default:
		return float64(cols) * cellW, float64(rows) * cellH
	}
}

// PointsUp reports whether the triangle at (row, col) has its apex at the top.
func PointsUp(row, col int) bool {
	return (row%2 == 0) != (col%2 == 0)
}

func (n Neighborhood) String() string {
	return fmt.Sprintf("neighbors%d", uint8(n))
}

// ParseNeighborhood accepts "8", "neighbors8" and similar tags.
func ParseNeighborhood(tag string) (Neighborhood, error) {
	t := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(tag)), "neighbors")
	switch t {
	case "4":
		return Neighbors4, nil
	case "6":
		return Neighbors6, nil
	case "8":
		return Neighbors8, nil
	case "12":
		return Neighbors12, nil
	}
	return 0, fmt.Errorf("unknown neighbor type %q", tag)
}
