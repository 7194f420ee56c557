package core

import (
	"fmt"

	"cell-society/internal/grid"
)

// Empty is the state index every variant uses for an unoccupied cell.
const Empty = 0

// Grid owns the cell arena of a simulation. Cells are addressed by row-major
// index; neighbor lists are index lists into the same arena. The committed
// and staged states live in parallel slices so the update and commit phases
// can be exercised independently.
type Grid struct {
	topo    *grid.Topology
	shape   grid.Shape
	rule    Rule
	names   []string
	workers int

	cur     []int
	next    []int
	changed []bool
	pos     []grid.Position

	generation int
	observers  []Observer
}

// Options configures NewGrid.
type Options struct {
	Topology   *grid.Topology
	Shape      grid.Shape
	Rule       Rule
	StateNames []string
	States     []int
	// Workers > 1 lets Independent rules update and commit in parallel row bands.
	Workers int
	// Generation numbers the initial states, e.g. when resuming a saved run.
	Generation int
}

// NewGrid builds a grid from initial states and binds the rule to it.
func NewGrid(opts Options) (*Grid, error) {
	if opts.Topology == nil {
		return nil, Configf("grid", "missing topology")
	}
	if opts.Rule == nil {
		return nil, Configf("variant", "missing rule")
	}
	total := opts.Topology.Len()
	if len(opts.States) != total {
		return nil, Configf("initialStates", "got %d states for a %dx%d grid", len(opts.States), opts.Topology.Rows, opts.Topology.Cols)
	}
	if opts.Generation < 0 {
		return nil, Configf("generation", "must be non-negative, got %d", opts.Generation)
	}
	if len(opts.StateNames) != opts.Rule.States() {
		return nil, Configf("stateNames", "%s declares %d states, got %d names", opts.Rule.Variant(), opts.Rule.States(), len(opts.StateNames))
	}
	g := &Grid{
		topo:    opts.Topology,
		shape:   opts.Shape,
		rule:    opts.Rule,
		names:   append([]string(nil), opts.StateNames...),
		workers: opts.Workers,
		cur:     make([]int, total),
		next:    make([]int, total),
		changed: make([]bool, total),
		pos:     make([]grid.Position, total),

		generation: opts.Generation,
	}
	for i, s := range opts.States {
		if s < 0 || s >= opts.Rule.States() {
			return nil, Configf("initialStates", "state %d at index %d out of range [0,%d)", s, i, opts.Rule.States())
		}
		g.cur[i] = s
		g.next[i] = s
		row, col := g.topo.Coords(i)
		g.pos[i] = grid.At(row, col)
	}
	if err := g.rule.Bind(g); err != nil {
		return nil, err
	}
	return g, nil
}

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cur) }

// Size reports the grid dimensions.
func (g *Grid) Size() Size { return Size{Rows: g.topo.Rows, Cols: g.topo.Cols} }

// Shape returns the cell geometry.
func (g *Grid) Shape() grid.Shape { return g.shape }

// Topology exposes the static neighbor lists.
func (g *Grid) Topology() *grid.Topology { return g.topo }

// Rule returns the variant rule driving the grid.
func (g *Grid) Rule() Rule { return g.rule }

// Generation returns the number of committed steps.
func (g *Grid) Generation() int { return g.generation }

// StateNames returns the configured state names indexed by state.
func (g *Grid) StateNames() []string { return g.names }

// States exposes the committed state buffer. Callers must not modify it.
func (g *Grid) States() []int { return g.cur }

// State returns the committed state of cell i.
func (g *Grid) State(i int) int { return g.cur[i] }

// NextState returns the staged state of cell i.
func (g *Grid) NextState(i int) int { return g.next[i] }

// SetNext stages state s for cell i and marks it as changed this step.
func (g *Grid) SetNext(i, s int) {
	g.next[i] = s
	g.changed[i] = true
}

// Changed reports whether cell i has been staged this step.
func (g *Grid) Changed(i int) bool { return g.changed[i] }

// Neighbors returns the neighbor indices of cell i in pattern order.
func (g *Grid) Neighbors(i int) []int { return g.topo.Neighbors(i) }

// Position returns the grid position of cell i.
func (g *Grid) Position(i int) grid.Position { return g.pos[i] }

// Index converts (row, col) into a cell index.
func (g *Grid) Index(row, col int) (int, error) {
	if !g.topo.InBounds(row, col) {
		return 0, fmt.Errorf("(%d,%d): %w", row, col, ErrOutOfRange)
	}
	return g.topo.Index(row, col), nil
}

// Cell returns a handle to the cell at (row, col).
func (g *Grid) Cell(row, col int) (Cell, error) {
	i, err := g.Index(row, col)
	if err != nil {
		return Cell{}, err
	}
	return Cell{g: g, idx: i}, nil
}

// CurrentState returns the committed state at (row, col).
func (g *Grid) CurrentState(row, col int) (int, error) {
	i, err := g.Index(row, col)
	if err != nil {
		return 0, err
	}
	return g.cur[i], nil
}

// StateCounts maps every state name to the number of cells in that state.
func (g *Grid) StateCounts() map[string]int {
	counts := make(map[string]int, len(g.names))
	for _, name := range g.names {
		counts[name] = 0
	}
	for _, s := range g.cur {
		counts[g.names[s]]++
	}
	return counts
}

// Histogram returns the number of cells per state index.
func (g *Grid) Histogram() []int {
	h := make([]int, len(g.names))
	for _, s := range g.cur {
		h[s]++
	}
	return h
}

// EmptyCells returns the indices of cells whose committed state is Empty, in
// row-major order.
func (g *Grid) EmptyCells() []int {
	var out []int
	for i, s := range g.cur {
		if s == Empty {
			out = append(out, i)
		}
	}
	return out
}

// EmptyCellPositions returns the positions of every committed Empty cell.
func (g *Grid) EmptyCellPositions() []grid.Position {
	empty := g.EmptyCells()
	out := make([]grid.Position, len(empty))
	for k, i := range empty {
		out[k] = g.pos[i]
	}
	return out
}

// Observe registers an observer notified after every committed step.
func (g *Grid) Observe(o Observer) {
	if o != nil {
		g.observers = append(g.observers, o)
	}
}

// Cycle advances the cell at (row, col) to the next state and commits it
// immediately. It is meant for interactive edits between steps.
func (g *Grid) Cycle(row, col int) error {
	i, err := g.Index(row, col)
	if err != nil {
		return err
	}
	s := (g.cur[i] + 1) % len(g.names)
	g.SetNext(i, s)
	if ed, ok := g.rule.(StateEditor); ok {
		ed.Edited(g, i, s)
	}
	g.commit(i)
	return nil
}

// Cell is a lightweight handle to one cell of a Grid. It exposes the
// per-cell update/commit contract so the two phases can be driven and
// inspected independently.
type Cell struct {
	g   *Grid
	idx int
}

// Index returns the row-major index of the cell.
func (c Cell) Index() int { return c.idx }

// State returns the committed state.
func (c Cell) State() int { return c.g.cur[c.idx] }

// NextState returns the staged state.
func (c Cell) NextState() int { return c.g.next[c.idx] }

// Changed reports whether the cell has been staged this step.
func (c Cell) Changed() bool { return c.g.changed[c.idx] }

// Position returns the grid position of the cell.
func (c Cell) Position() grid.Position { return c.g.pos[c.idx] }

// Neighbors returns handles to the cell's neighbors in pattern order.
func (c Cell) Neighbors() []Cell {
	idx := c.g.Neighbors(c.idx)
	out := make([]Cell, len(idx))
	for k, n := range idx {
		out[k] = Cell{g: c.g, idx: n}
	}
	return out
}

// Update stages the cell's next state from committed state.
func (c Cell) Update() error { return c.g.rule.Update(c.g, c.idx) }

// Commit makes the cell's staged state current.
func (c Cell) Commit() { c.g.commit(c.idx) }
