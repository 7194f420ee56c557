package render

import (
	"math"

	"cell-society/internal/grid"
)

// CellAt maps an on-screen point to the cell whose center is nearest to it.
// ok is false when the point lies outside the grid's extent.
func CellAt(shape grid.Shape, rows, cols int, cellW, cellH, x, y float64) (row, col int, ok bool) {
	w, h := shape.Extent(rows, cols, cellW, cellH)
	if x < 0 || y < 0 || x >= w || y >= h || rows <= 0 || cols <= 0 {
		return 0, 0, false
	}
	stepX := cellW
	if cols > 1 {
		stepX = shape.Offset(0, 1, cellW, cellH).X
	}
	r0 := int(math.Round((y - cellH/2) / cellH))
	c0 := int(math.Round((x - cellW/2) / stepX))

	best := math.Inf(1)
	for r := r0 - 1; r <= r0+1; r++ {
		for c := c0 - 1; c <= c0+1; c++ {
			if r < 0 || c < 0 || r >= rows || c >= cols {
				continue
			}
			o := shape.Offset(r, c, cellW, cellH)
			d := math.Hypot(o.X+cellW/2-x, o.Y+cellH/2-y)
			if d < best {
				best, row, col, ok = d, r, c, true
			}
		}
	}
	return row, col, ok
}
