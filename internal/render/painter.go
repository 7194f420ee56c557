//go:build ebiten

package render

import (
	"image"
	"image/color"

	"cell-society/internal/core"
	"cell-society/internal/grid"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// maxBatchVertices keeps DrawTriangles batches inside uint16 indices.
const maxBatchVertices = 60000

var whiteSubImage = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}()

// GridPainter draws a grid of any shape. Square grids are uploaded as one
// pixel per cell and scaled; triangles and hexagons are drawn as polygons.
type GridPainter struct {
	shape      grid.Shape
	rows, cols int
	cellW      float64
	cellH      float64

	img *ebiten.Image
	buf []byte

	vs []ebiten.Vertex
	is []uint16
}

// NewGridPainter allocates a painter for a rows x cols grid whose cells are
// cell pixels wide.
func NewGridPainter(shape grid.Shape, rows, cols int, cell float64) *GridPainter {
	gp := &GridPainter{shape: shape, rows: rows, cols: cols, cellW: cell, cellH: cell}
	if shape == grid.ShapeSquare {
		gp.img = ebiten.NewImage(cols, rows)
		gp.buf = make([]byte, 4*rows*cols)
	}
	return gp
}

// Size returns the on-screen extent of the grid in pixels.
func (gp *GridPainter) Size() (int, int) {
	w, h := gp.shape.Extent(gp.rows, gp.cols, gp.cellW, gp.cellH)
	return int(w + 0.5), int(h + 0.5)
}

// CellAt maps a cursor position to grid coordinates.
func (gp *GridPainter) CellAt(x, y int) (row, col int, ok bool) {
	return CellAt(gp.shape, gp.rows, gp.cols, gp.cellW, gp.cellH, float64(x), float64(y))
}

// Draw paints every cell's committed state.
func (gp *GridPainter) Draw(dst *ebiten.Image, states []int, palette []color.RGBA) {
	if len(states) != gp.rows*gp.cols {
		return
	}
	if gp.img != nil {
		FillRGBA(gp.buf, states, palette)
		gp.img.WritePixels(gp.buf)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(gp.cellW, gp.cellH)
		dst.DrawImage(gp.img, op)
		return
	}

	gp.vs, gp.is = gp.vs[:0], gp.is[:0]
	for i, s := range states {
		if len(palette) == 0 {
			break
		}
		if s < 0 || s >= len(palette) {
			s = len(palette) - 1
		}
		gp.polygon(i/gp.cols, i%gp.cols, palette[s])
		if len(gp.vs) >= maxBatchVertices {
			gp.flush(dst)
		}
	}
	gp.flush(dst)
}

// DrawAgents marks every cell that hosts an agent with a small square.
func (gp *GridPainter) DrawAgents(dst *ebiten.Image, agents []core.AgentRecord) {
	size := float32(gp.cellW / 3)
	if size < 1 {
		size = 1
	}
	for _, a := range agents {
		o := gp.shape.Offset(a.Row, a.Col, gp.cellW, gp.cellH)
		cx := float32(o.X + gp.cellW/2)
		cy := float32(o.Y + gp.cellH/2)
		vector.DrawFilledRect(dst, cx-size/2, cy-size/2, size, size, AntColor, false)
	}
}

func (gp *GridPainter) polygon(row, col int, c color.RGBA) {
	o := gp.shape.Offset(row, col, gp.cellW, gp.cellH)
	x, y := float32(o.X), float32(o.Y)
	w, h := float32(gp.cellW), float32(gp.cellH)

	var pts [][2]float32
	switch gp.shape {
	case grid.ShapeTriangle:
		if grid.PointsUp(row, col) {
			pts = [][2]float32{{x + w/2, y}, {x + w, y + h}, {x, y + h}}
		} else {
			pts = [][2]float32{{x, y}, {x + w, y}, {x + w/2, y + h}}
		}
	default:
		pts = [][2]float32{
			{x + w/4, y}, {x + 3*w/4, y}, {x + w, y + h/2},
			{x + 3*w/4, y + h}, {x + w/4, y + h}, {x, y + h/2},
		}
	}

	base := uint16(len(gp.vs))
	r, g, b, a := float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255
	for _, p := range pts {
		gp.vs = append(gp.vs, ebiten.Vertex{
			DstX: p[0], DstY: p[1], SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		})
	}
	for k := 1; k+1 < len(pts); k++ {
		gp.is = append(gp.is, base, base+uint16(k), base+uint16(k+1))
	}
}

func (gp *GridPainter) flush(dst *ebiten.Image) {
	if len(gp.is) == 0 {
		return
	}
	dst.DrawTriangles(gp.vs, gp.is, whiteSubImage, &ebiten.DrawTrianglesOptions{})
	gp.vs, gp.is = gp.vs[:0], gp.is[:0]
}
