package ants

import (
	"fmt"

	"cell-society/internal/grid"
)

// Direction is the facing an ant remembers from its last move.
type Direction uint8

const (
	Right Direction = iota
	Left
	Up
	Down
)

// String returns the direction's name.
func (d Direction) String() string {
	switch d {
	case Right:
		return "right"
	case Left:
		return "left"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// Facing returns the direction of travel from one grid position to
// another. Horizontal movement wins over vertical; rows grow downward.
func Facing(from, to grid.Position, fallback Direction) Direction {
	dx, dy := from.Delta(to)
	switch {
	case dx > 0:
		return Right
	case dx < 0:
		return Left
	case dy < 0:
		return Up
	case dy > 0:
		return Down
	}
	return fallback
}

// Ahead reports whether to lies strictly further than from along d.
func (d Direction) Ahead(from, to grid.Position) bool {
	switch d {
	case Right:
		return to.X > from.X
	case Left:
		return to.X < from.X
	case Up:
		return to.Y < from.Y
	case Down:
		return to.Y > from.Y
	}
	return false
}

// Ant is a foraging agent. Ants are plain values: the cell at Pos owns the
// ant, and moving it means removing the value from one cell's list and
// appending an updated copy to another's.
type Ant struct {
	Pos      grid.Position
	Dir      Direction
	Carrying bool
}

// Same reports whether a and b denote the same ant. Ants are identified by
// position and direction only, since they are rebuilt on every move.
func (a Ant) Same(b Ant) bool {
	return a.Pos == b.Pos && a.Dir == b.Dir
}

// indexOf finds ant in list, preferring an exact match (including the
// carrying flag) over one that is only Same.
func indexOf(list []Ant, ant Ant) int {
	loose := -1
	for k, a := range list {
		if a == ant {
			return k
		}
		if loose < 0 && a.Same(ant) {
			loose = k
		}
	}
	return loose
}
