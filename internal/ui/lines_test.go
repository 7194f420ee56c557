package ui

import (
	"strings"
	"testing"

	"cell-society/internal/config"
	"cell-society/internal/factory"
)

func TestPanelLines(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Variant = "Fire"
	cfg.Rows, cfg.Cols = 40, 40
	cfg.Parameters = map[string]float64{"probCatch": 0.25}
	g, err := factory.Build(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Run(2); err != nil {
		t.Fatal(err)
	}

	lines := PanelLines(g, true)
	if lines[0].Text != "Fire" {
		t.Fatalf("title %q", lines[0].Text)
	}
	if !strings.Contains(lines[1].Text, "generation 2") || !strings.Contains(lines[1].Text, "paused") {
		t.Fatalf("status %q", lines[1].Text)
	}

	swatches := 0
	var joined strings.Builder
	for _, l := range lines {
		if l.State >= 0 {
			swatches++
		}
		joined.WriteString(l.Text)
		joined.WriteByte('\n')
	}
	if swatches != 3 {
		t.Fatalf("%d state lines, want 3", swatches)
	}
	text := joined.String()
	for _, want := range []string{"Empty", "Tree", "Grid", "Rows: 40", "0.25"} {
		if !strings.Contains(text, want) {
			t.Fatalf("panel lacks %q:\n%s", want, text)
		}
	}
}
