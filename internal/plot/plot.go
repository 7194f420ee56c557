// Package plot charts state populations over generations.
package plot

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"cell-society/internal/core"
	"cell-society/internal/render"
)

// Recorder collects the population of every state after each step. It is a
// core.Observer.
type Recorder struct {
	mu      sync.Mutex
	names   []string
	cells   int
	palette []drawing.Color
	gens    []float64
	counts  [][]float64
}

// NewRecorder starts a recorder seeded with g's current populations.
func NewRecorder(g *core.Grid) *Recorder {
	r := &Recorder{names: append([]string(nil), g.StateNames()...), cells: g.Len()}
	for _, c := range render.DefaultPalette(g.Rule().Variant()) {
		r.palette = append(r.palette, drawing.Color{R: c.R, G: c.G, B: c.B, A: 255})
	}
	r.counts = make([][]float64, len(r.names))
	r.Observe(g)
	return r
}

// Observe appends g's current populations.
func (r *Recorder) Observe(g *core.Grid) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gens = append(r.gens, float64(g.Generation()))
	for s, n := range g.Histogram() {
		if s < len(r.counts) {
			r.counts[s] = append(r.counts[s], float64(n))
		}
	}
}

// Len returns the number of recorded generations.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.gens)
}

// Series returns a copy of the recorded populations of one state.
func (r *Recorder) Series(state int) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if state < 0 || state >= len(r.counts) {
		return nil
	}
	return append([]float64(nil), r.counts[state]...)
}

// Render draws the recorded populations as a PNG line chart.
func (r *Recorder) Render(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.gens) < 2 {
		return fmt.Errorf("plot: need at least two generations, have %d", len(r.gens))
	}

	series := make([]chart.Series, 0, len(r.names))
	for s, name := range r.names {
		style := chart.Style{StrokeWidth: 2.0}
		if s < len(r.palette) {
			style.StrokeColor = r.palette[s]
		}
		series = append(series, chart.ContinuousSeries{
			Name:    name,
			XValues: append([]float64(nil), r.gens...),
			YValues: append([]float64(nil), r.counts[s]...),
			Style:   style,
		})
	}

	graph := chart.Chart{
		Width:  800,
		Height: 400,
		XAxis: chart.XAxis{
			Name:  "generation",
			Style: chart.Style{FontSize: 10.0},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "cells",
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: 0, Max: float64(r.cells)},
		},
		Background: chart.Style{Padding: chart.Box{Top: 20, Right: 20}},
		Series:     series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.PNG, w)
}

// Save renders the chart to a PNG file.
func (r *Recorder) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create plot: %w", err)
	}
	if err := r.Render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
