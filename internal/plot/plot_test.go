package plot

import (
	"bytes"
	"path/filepath"
	"testing"

	"cell-society/internal/config"
	"cell-society/internal/factory"
)

func TestRecorderTracksPopulations(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Rows, cfg.Cols = 10, 10
	g, err := factory.Build(cfg)
	if err != nil {
		t.Fatal(err)
	}
	rec := NewRecorder(g)
	g.Observe(rec)
	if err := g.Run(5); err != nil {
		t.Fatal(err)
	}
	if rec.Len() != 6 {
		t.Fatalf("recorded %d generations, want 6", rec.Len())
	}
	dead, alive := rec.Series(0), rec.Series(1)
	for i := range dead {
		if dead[i]+alive[i] != 100 {
			t.Fatalf("generation %d: %v + %v cells", i, dead[i], alive[i])
		}
	}
	if rec.Series(7) != nil {
		t.Fatal("series of unknown state")
	}
}

func TestRenderWritesPNG(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Variant = "Fire"
	cfg.Rows, cfg.Cols = 12, 12
	cfg.Parameters = map[string]float64{"probCatch": 0.6}
	g, err := factory.Build(cfg)
	if err != nil {
		t.Fatal(err)
	}
	rec := NewRecorder(g)

	var buf bytes.Buffer
	if err := rec.Render(&buf); err == nil {
		t.Fatal("rendered a chart from a single generation")
	}

	g.Observe(rec)
	if err := g.Run(8); err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	if err := rec.Render(&buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")) {
		t.Fatal("output is not a PNG")
	}
	if err := rec.Save(filepath.Join(t.TempDir(), "fire.png")); err != nil {
		t.Fatal(err)
	}
}
