package render

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"cell-society/internal/config"
	"cell-society/internal/core"
	"cell-society/internal/factory"
	"cell-society/internal/grid"
)

func TestRasterizerSquare(t *testing.T) {
	palette := []color.RGBA{{R: 10, A: 255}, {G: 20, A: 255}}
	r := NewRasterizer(grid.ShapeSquare, 2, 3, 2)
	if b := r.Bounds(); b.Dx() != 6 || b.Dy() != 4 {
		t.Fatalf("bounds %v", b)
	}
	img := r.Frame([]int{0, 1, 0, 1, 0, 1}, palette, nil)
	if got := img.RGBAAt(5, 3); got != palette[1] {
		t.Fatalf("bottom-right pixel %v", got)
	}
	if got := img.RGBAAt(2, 0); got != palette[1] {
		t.Fatalf("pixel in cell (0,1) %v", got)
	}
	if got := img.RGBAAt(0, 0); got != palette[0] {
		t.Fatalf("top-left pixel %v", got)
	}

	img = r.Frame(make([]int, 6), palette, []core.AgentRecord{{Row: 0, Col: 0}})
	if got := img.RGBAAt(1, 1); got != AntColor {
		t.Fatalf("agent marker %v", got)
	}
}

func TestRasterizerHexagonCenters(t *testing.T) {
	const rows, cols, cell = 4, 5, 12
	states := make([]int, rows*cols)
	for i := range states {
		states[i] = i % 3
	}
	palette := []color.RGBA{{R: 255, A: 255}, {G: 255, A: 255}, {B: 255, A: 255}}
	r := NewRasterizer(grid.ShapeHexagon, rows, cols, cell)
	img := r.Frame(states, palette, nil)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			o := grid.ShapeHexagon.Offset(row, col, cell, cell)
			got := img.RGBAAt(int(o.X)+cell/2, int(o.Y)+cell/2)
			if want := palette[states[row*cols+col]]; got != want {
				t.Fatalf("(%d,%d): %v want %v", row, col, got, want)
			}
		}
	}
}

func TestVideoWritesAVI(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Rows, cfg.Cols = 8, 8
	g, err := factory.Build(cfg)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "life.avi")
	v, err := NewVideo(path, g, DefaultPalette(core.GameOfLife), 4, 5)
	if err != nil {
		t.Fatal(err)
	}
	g.Observe(v)
	if err := g.Run(3); err != nil {
		t.Fatal(err)
	}
	if err := v.Close(); err != nil {
		t.Fatal(err)
	}
	if v.Err() != nil || v.Frames() != 4 {
		t.Fatalf("frames %d err %v", v.Frames(), v.Err())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("RIFF")) || !bytes.Contains(data[:64], []byte("AVI ")) {
		t.Fatal("output is not an AVI file")
	}
}
