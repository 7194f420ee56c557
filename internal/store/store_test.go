package store

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"cell-society/internal/config"
	"cell-society/internal/factory"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecorderPersistsCountsAndSnapshots(t *testing.T) {
	s := openTemp(t)

	cfg := config.DefaultConfig()
	cfg.Variant = "ForagingAnt"
	cfg.Rows, cfg.Cols = 5, 5
	cfg.InitialStates = make([]int, 25)
	cfg.InitialStates[12] = 2
	cfg.Parameters = map[string]float64{"startAnts": 4}

	run, err := s.CreateRun(cfg)
	if err != nil {
		t.Fatal(err)
	}
	g, err := factory.Build(cfg)
	if err != nil {
		t.Fatal(err)
	}
	rec := s.NewRecorder(run.ID, 2)
	g.Observe(rec)
	if err := g.Run(4); err != nil {
		t.Fatal(err)
	}
	if rec.Err() != nil {
		t.Fatal(rec.Err())
	}

	counts, err := s.Counts(run.ID)
	if err != nil {
		t.Fatal(err)
	}
	// Three states per generation, four generations.
	if len(counts) != 12 {
		t.Fatalf("got %d count rows", len(counts))
	}
	for _, c := range counts {
		if c.State == "Nest" && c.Count != 1 {
			t.Fatalf("generation %d: %d nests", c.Generation, c.Count)
		}
	}

	snap, err := s.LatestSnapshot(run.ID)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Generation != 4 || !slices.Equal(snap.States, g.States()) {
		t.Fatalf("snapshot generation %d states %v", snap.Generation, snap.States)
	}
	if len(snap.Agents) != 4 {
		t.Fatalf("snapshot has %d agents", len(snap.Agents))
	}
}

func TestResumeRebuildsFromLatestSnapshot(t *testing.T) {
	s := openTemp(t)

	cfg := config.DefaultConfig()
	cfg.Rows, cfg.Cols = 8, 8
	run, err := s.CreateRun(cfg)
	if err != nil {
		t.Fatal(err)
	}
	g, err := factory.Build(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Run(3); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveSnapshot(run.ID, g.Snapshot()); err != nil {
		t.Fatal(err)
	}

	resumed, err := s.Resume(run.ID)
	if err != nil {
		t.Fatal(err)
	}
	h, err := factory.Build(resumed)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(h.States(), g.States()) {
		t.Fatal("resumed grid differs from saved grid")
	}
	if h.Generation() != 3 {
		t.Fatalf("resumed at generation %d, want 3", h.Generation())
	}
}

func TestRunsAndNotFound(t *testing.T) {
	s := openTemp(t)

	if _, err := s.Run("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	cfg := config.DefaultConfig()
	cfg.Title = "first"
	run, err := s.CreateRun(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.LatestSnapshot(run.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing snapshot, got %v", err)
	}
	runs, err := s.Runs()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].ID != run.ID || runs[0].Title != "first" || runs[0].Rows != cfg.Rows {
		t.Fatalf("runs = %+v", runs)
	}
	back, err := runs[0].Config()
	if err != nil {
		t.Fatal(err)
	}
	if back.Seed != cfg.Seed || back.Variant != cfg.Variant {
		t.Fatalf("config round trip %+v", back)
	}
}
