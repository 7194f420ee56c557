package render

import (
	"image"
	"image/color"

	"cell-society/internal/core"
	"cell-society/internal/grid"
)

// Rasterizer paints grids of any shape into an image.RGBA without a GPU.
// Every pixel is owned by the cell whose center is nearest, which is exact
// for squares and close enough for triangles and hexagons at video sizes.
type Rasterizer struct {
	shape      grid.Shape
	rows, cols int
	cell       int
	owner      []int32
	img        *image.RGBA
}

// NewRasterizer precomputes the pixel ownership of a rows x cols grid with
// cells cell pixels wide.
func NewRasterizer(shape grid.Shape, rows, cols, cell int) *Rasterizer {
	if cell <= 0 {
		cell = 1
	}
	fw, fh := shape.Extent(rows, cols, float64(cell), float64(cell))
	w, h := int(fw+0.5), int(fh+0.5)
	// Even dimensions keep JPEG chroma subsampling and AVI players happy.
	w += w % 2
	h += h % 2
	r := &Rasterizer{
		shape: shape, rows: rows, cols: cols, cell: cell,
		owner: make([]int32, w*h),
		img:   image.NewRGBA(image.Rect(0, 0, w, h)),
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			row, col, ok := CellAt(shape, rows, cols, float64(cell), float64(cell), float64(x)+0.5, float64(y)+0.5)
			if !ok {
				r.owner[y*w+x] = -1
				continue
			}
			r.owner[y*w+x] = int32(row*cols + col)
		}
	}
	return r
}

// Bounds returns the frame size.
func (r *Rasterizer) Bounds() image.Rectangle { return r.img.Bounds() }

// Frame paints states and, when given, agent markers. The returned image is
// reused by the next call.
func (r *Rasterizer) Frame(states []int, palette []color.RGBA, agents []core.AgentRecord) *image.RGBA {
	pix := r.img.Pix
	last := len(palette) - 1
	for p, owner := range r.owner {
		base := p * 4
		if owner < 0 || last < 0 || int(owner) >= len(states) {
			pix[base+0], pix[base+1], pix[base+2], pix[base+3] = 0, 0, 0, 255
			continue
		}
		s := states[owner]
		if s < 0 || s > last {
			s = last
		}
		c := palette[s]
		pix[base+0], pix[base+1], pix[base+2], pix[base+3] = c.R, c.G, c.B, 255
	}

	size := max(r.cell/3, 1)
	for _, a := range agents {
		o := r.shape.Offset(a.Row, a.Col, float64(r.cell), float64(r.cell))
		cx := int(o.X) + r.cell/2
		cy := int(o.Y) + r.cell/2
		for y := cy - size/2; y < cy-size/2+size; y++ {
			for x := cx - size/2; x < cx-size/2+size; x++ {
				if image.Pt(x, y).In(r.img.Rect) {
					r.img.SetRGBA(x, y, AntColor)
				}
			}
		}
	}
	return r.img
}
