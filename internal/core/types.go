package core

import (
	"fmt"
	"strings"
)

// Size describes the dimensions of a simulation grid.
type Size struct {
	Rows int
	Cols int
}

// Variant identifies one of the built-in rule sets.
type Variant uint8

const (
	GameOfLife Variant = iota + 1
	Fire
	Percolation
	PredatorPrey
	RPS
	Segregation
	ForagingAnt
)

var variantNames = map[Variant]string{
	GameOfLife:   "GameOfLife",
	Fire:         "Fire",
	Percolation:  "Percolation",
	PredatorPrey: "PredatorPrey",
	RPS:          "RPS",
	Segregation:  "Segregation",
	ForagingAnt:  "ForagingAnt",
}

// Variants lists every built-in variant in declaration order.
func Variants() []Variant {
	return []Variant{GameOfLife, Fire, Percolation, PredatorPrey, RPS, Segregation, ForagingAnt}
}

func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}
	return fmt.Sprintf("Variant(%d)", uint8(v))
}

// ParseVariant resolves a variant tag case-insensitively. A few short aliases
// ("life", "ants", "wator") are accepted as well.
func ParseVariant(tag string) (Variant, error) {
	t := strings.ToLower(strings.TrimSpace(tag))
	t = strings.TrimSuffix(t, "cell")
	switch t {
	case "life":
		return GameOfLife, nil
	case "ants", "foragingants":
		return ForagingAnt, nil
	case "wator":
		return PredatorPrey, nil
	}
	for v, name := range variantNames {
		if strings.ToLower(name) == t {
			return v, nil
		}
	}
	return 0, Configf("variant", "unknown variant %q", tag)
}

// Ordering declares how a rule's update phase may be scheduled.
type Ordering uint8

const (
	// Independent rules read only committed state and write only their own
	// staged fields, so cells may be updated in any order or concurrently.
	Independent Ordering = iota
	// Sequential rules consult same-step claim flags or shared random streams
	// and are always updated one cell at a time in row-major order.
	Sequential
)

func (o Ordering) String() string {
	if o == Sequential {
		return "sequential"
	}
	return "independent"
}

// Rule is the per-variant transition logic applied to every cell of a Grid.
//
// Update stages the next state of cell i from committed state (updateCell).
// Commit finalises the variant's staged fields of cell i; it runs before the
// grid copies the staged state into the current state (updateState).
// Rollback discards the variant's staged fields of cell i.
type Rule interface {
	Variant() Variant
	States() int
	Ordering() Ordering
	Bind(g *Grid) error
	Update(g *Grid, i int) error
	Commit(g *Grid, i int)
	Rollback(g *Grid, i int)
}

// Preparer is implemented by rules that stage per-cell housekeeping for every
// cell before any cell is updated.
type Preparer interface {
	Prepare(g *Grid, i int)
}

// StateEditor is implemented by rules whose variant fields must be reset when
// a cell's state is edited by hand.
type StateEditor interface {
	Edited(g *Grid, i int, state int)
}

// AgentReporter is implemented by rules whose cells host mobile agents.
type AgentReporter interface {
	Agents(g *Grid) []AgentRecord
}

// ParameterProvider exposes a rule's tunables for read-back.
type ParameterProvider interface {
	Parameters() []ParameterGroup
}

// Observer is notified after every committed step.
type Observer interface {
	Observe(g *Grid)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(g *Grid)

// Observe calls f(g).
func (f ObserverFunc) Observe(g *Grid) { f(g) }
