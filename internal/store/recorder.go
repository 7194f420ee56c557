package store

import (
	"log/slog"

	"cell-society/internal/core"
)

// Recorder is a grid observer that writes state counts after every step and
// a snapshot every Every steps. Write errors are logged and the first one is
// kept for Err, since observers cannot fail a step.
type Recorder struct {
	store *Store
	runID string
	every int
	err   error
}

// NewRecorder returns a Recorder for runID. every <= 0 disables periodic
// snapshots.
func (s *Store) NewRecorder(runID string, every int) *Recorder {
	return &Recorder{store: s, runID: runID, every: every}
}

// Observe implements core.Observer.
func (r *Recorder) Observe(g *core.Grid) {
	if err := r.store.SaveCounts(r.runID, g); err != nil {
		r.fail(err)
		return
	}
	if r.every > 0 && g.Generation()%r.every == 0 {
		if err := r.store.SaveSnapshot(r.runID, g.Snapshot()); err != nil {
			r.fail(err)
		}
	}
}

func (r *Recorder) fail(err error) {
	slog.Warn("recording failed", "run", r.runID, "err", err)
	if r.err == nil {
		r.err = err
	}
}

// Err returns the first write error, if any.
func (r *Recorder) Err() error { return r.err }
