package core

import (
	"golang.org/x/sync/errgroup"
)

// Step advances the grid by one generation.
//
// Every cell is prepared and updated against the committed state, then, once
// all updates have finished, every cell is committed and observers are
// notified. If any update fails the staged fields of every cell are discarded
// and the grid stays at its last committed generation.
func (g *Grid) Step() error {
	if p, ok := g.rule.(Preparer); ok {
		for i := range g.cur {
			p.Prepare(g, i)
		}
	}

	if err := g.updateAll(); err != nil {
		g.rollbackAll()
		return err
	}

	// Commit only touches each cell's own fields, so it can always be banded.
	_ = g.forEach(g.workers > 1, func(i int) error {
		g.commit(i)
		return nil
	})

	g.generation++
	for _, o := range g.observers {
		o.Observe(g)
	}
	return nil
}

// Run performs n steps, stopping at the first error.
func (g *Grid) Run(n int) error {
	for k := 0; k < n; k++ {
		if err := g.Step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *Grid) updateAll() error {
	parallel := g.workers > 1 && g.rule.Ordering() == Independent
	return g.forEach(parallel, func(i int) error {
		return g.rule.Update(g, i)
	})
}

func (g *Grid) commit(i int) {
	g.rule.Commit(g, i)
	g.cur[i] = g.next[i]
	g.changed[i] = false
}

func (g *Grid) rollbackAll() {
	for i := range g.cur {
		g.next[i] = g.cur[i]
		g.changed[i] = false
		g.rule.Rollback(g, i)
	}
}

// forEach applies fn to every cell in row-major order, or across row bands
// when parallel is set.
func (g *Grid) forEach(parallel bool, fn func(i int) error) error {
	if !parallel {
		for i := range g.cur {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	rows, cols := g.topo.Rows, g.topo.Cols
	workers := min(g.workers, rows)
	rowsPerWorker := (rows + workers - 1) / workers

	var eg errgroup.Group
	for w := 0; w < workers; w++ {
		startRow := w * rowsPerWorker
		endRow := min(startRow+rowsPerWorker, rows)
		if startRow >= rows {
			break
		}
		eg.Go(func() error {
			for i := startRow * cols; i < endRow*cols; i++ {
				if err := fn(i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return eg.Wait()
}
