// Package store persists simulation runs to SQLite: the configuration a run
// started from, per-generation state counts and periodic grid snapshots.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"cell-society/internal/config"
	"cell-society/internal/core"
)

// ErrNotFound is returned when a run or snapshot does not exist.
var ErrNotFound = errors.New("not found")

// Store wraps a SQLite connection.
type Store struct {
	conn *sqlx.DB
}

// Run is one stored simulation run.
type Run struct {
	ID         string `db:"id"`
	Title      string `db:"title"`
	Variant    string `db:"variant"`
	Rows       int    `db:"grid_rows"`
	Cols       int    `db:"grid_cols"`
	Seed       int64  `db:"seed"`
	ConfigJSON string `db:"config_json"`
	CreatedAt  string `db:"created_at"`
}

// Config decodes the configuration the run started from.
func (r Run) Config() (config.Simulation, error) {
	return config.Parse([]byte(r.ConfigJSON))
}

// Count is the number of cells in one state at one generation.
type Count struct {
	Generation int    `db:"generation"`
	State      string `db:"state"`
	Count      int    `db:"count"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		variant TEXT NOT NULL,
		grid_rows INTEGER NOT NULL,
		grid_cols INTEGER NOT NULL,
		seed INTEGER NOT NULL,
		config_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS counts (
		run_id TEXT NOT NULL,
		generation INTEGER NOT NULL,
		state TEXT NOT NULL,
		count INTEGER NOT NULL,
		PRIMARY KEY (run_id, generation, state)
	);

	CREATE TABLE IF NOT EXISTS snapshots (
		run_id TEXT NOT NULL,
		generation INTEGER NOT NULL,
		states_json TEXT NOT NULL,
		agents_json TEXT NOT NULL,
		PRIMARY KEY (run_id, generation)
	);

	CREATE INDEX IF NOT EXISTS idx_counts_run ON counts(run_id);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// CreateRun records a new run and returns it with a fresh ID.
func (s *Store) CreateRun(cfg config.Simulation) (Run, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return Run{}, fmt.Errorf("encode config: %w", err)
	}
	r := Run{
		ID:         uuid.NewString(),
		Title:      cfg.Title,
		Variant:    cfg.Variant,
		Rows:       cfg.Rows,
		Cols:       cfg.Cols,
		Seed:       cfg.Seed,
		ConfigJSON: string(data),
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	_, err = s.conn.NamedExec(`INSERT INTO runs
		(id, title, variant, grid_rows, grid_cols, seed, config_json, created_at)
		VALUES (:id, :title, :variant, :grid_rows, :grid_cols, :seed, :config_json, :created_at)`, r)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	slog.Debug("run created", "run", r.ID, "variant", r.Variant)
	return r, nil
}

// Run fetches a run by ID.
func (s *Store) Run(id string) (Run, error) {
	var r Run
	err := s.conn.Get(&r, "SELECT * FROM runs WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	return r, err
}

// Runs lists every run, newest first.
func (s *Store) Runs() ([]Run, error) {
	var runs []Run
	err := s.conn.Select(&runs, "SELECT * FROM runs ORDER BY created_at DESC, id")
	return runs, err
}

// SaveCounts records the state counts of the grid's current generation.
func (s *Store) SaveCounts(runID string, g *core.Grid) error {
	tx, err := s.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	gen := g.Generation()
	for state, n := range g.StateCounts() {
		_, err := tx.Exec(
			"INSERT OR REPLACE INTO counts (run_id, generation, state, count) VALUES (?, ?, ?, ?)",
			runID, gen, state, n,
		)
		if err != nil {
			return fmt.Errorf("insert count %s@%d: %w", state, gen, err)
		}
	}
	return tx.Commit()
}

// Counts returns every recorded count of a run ordered by generation and
// state name.
func (s *Store) Counts(runID string) ([]Count, error) {
	var counts []Count
	err := s.conn.Select(&counts,
		"SELECT generation, state, count FROM counts WHERE run_id = ? ORDER BY generation, state",
		runID,
	)
	return counts, err
}

// SaveSnapshot stores the committed states and agents of one generation.
func (s *Store) SaveSnapshot(runID string, snap core.Snapshot) error {
	states, err := json.Marshal(snap.States)
	if err != nil {
		return fmt.Errorf("encode states: %w", err)
	}
	agents, err := json.Marshal(snap.Agents)
	if err != nil {
		return fmt.Errorf("encode agents: %w", err)
	}
	_, err = s.conn.Exec(
		"INSERT OR REPLACE INTO snapshots (run_id, generation, states_json, agents_json) VALUES (?, ?, ?, ?)",
		runID, snap.Generation, string(states), string(agents),
	)
	if err != nil {
		return fmt.Errorf("insert snapshot %d: %w", snap.Generation, err)
	}
	return nil
}

// LatestSnapshot returns the most recent snapshot of a run.
func (s *Store) LatestSnapshot(runID string) (core.Snapshot, error) {
	r, err := s.Run(runID)
	if err != nil {
		return core.Snapshot{}, err
	}
	var row struct {
		Generation int    `db:"generation"`
		States     string `db:"states_json"`
		Agents     string `db:"agents_json"`
	}
	err = s.conn.Get(&row,
		"SELECT generation, states_json, agents_json FROM snapshots WHERE run_id = ? ORDER BY generation DESC LIMIT 1",
		runID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Snapshot{}, fmt.Errorf("snapshot of run %s: %w", runID, ErrNotFound)
	}
	if err != nil {
		return core.Snapshot{}, err
	}
	snap := core.Snapshot{Generation: row.Generation, Variant: r.Variant, Rows: r.Rows, Cols: r.Cols}
	if err := json.Unmarshal([]byte(row.States), &snap.States); err != nil {
		return core.Snapshot{}, fmt.Errorf("decode states: %w", err)
	}
	if err := json.Unmarshal([]byte(row.Agents), &snap.Agents); err != nil {
		return core.Snapshot{}, fmt.Errorf("decode agents: %w", err)
	}
	return snap, nil
}

// Resume returns the run's configuration with its initial states replaced
// by the latest snapshot, ready to be built again.
func (s *Store) Resume(runID string) (config.Simulation, error) {
	r, err := s.Run(runID)
	if err != nil {
		return config.Simulation{}, err
	}
	cfg, err := r.Config()
	if err != nil {
		return config.Simulation{}, err
	}
	snap, err := s.LatestSnapshot(runID)
	if err != nil {
		return config.Simulation{}, err
	}
	cfg.InitialStates = snap.States
	cfg.Generation = snap.Generation
	return cfg, nil
}
