// Package ui draws the information panel and debug overlays of the GUI.
package ui

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"cell-society/internal/core"
)

// Line is one row of the information panel. State is the index of the
// palette swatch drawn beside the text, or -1 for none.
type Line struct {
	Text  string
	State int
	Dim   bool
}

// PanelLines lists what the panel shows for g: the generation, the
// population of every state and the parameters the grid was built with.
func PanelLines(g *core.Grid, paused bool) []Line {
	status := "running"
	if paused {
		status = "paused"
	}
	lines := []Line{
		{Text: g.Rule().Variant().String(), State: -1},
		{Text: fmt.Sprintf("generation %s (%s)", humanize.Comma(int64(g.Generation())), status), State: -1, Dim: true},
		{State: -1},
	}

	hist := g.Histogram()
	total := g.Len()
	for s, name := range g.StateNames() {
		n := 0
		if s < len(hist) {
			n = hist[s]
		}
		pct := 0.0
		if total > 0 {
			pct = 100 * float64(n) / float64(total)
		}
		lines = append(lines, Line{
			Text:  fmt.Sprintf("%-10s %7s %5.1f%%", name, humanize.Comma(int64(n)), pct),
			State: s,
		})
	}

	for _, group := range g.Parameters().Groups {
		lines = append(lines, Line{State: -1}, Line{Text: group.Name, State: -1})
		for _, p := range group.Params {
			lines = append(lines, Line{Text: fmt.Sprintf("  %s: %s", p.Label, p.Value), State: -1, Dim: true})
		}
	}
	return lines
}
