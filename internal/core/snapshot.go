package core

// AgentRecord is the persisted form of one mobile agent.
type AgentRecord struct {
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	Direction string `json:"direction"`
	Carrying  bool   `json:"carrying"`
}

// Snapshot is a read-back of every cell's committed state plus agent
// positions, suitable for an external writer.
type Snapshot struct {
	Generation int           `json:"generation"`
	Variant    string        `json:"variant"`
	Rows       int           `json:"rows"`
	Cols       int           `json:"cols"`
	States     []int         `json:"states"`
	Agents     []AgentRecord `json:"agents,omitempty"`
}

// Snapshot copies the committed state of the grid.
func (g *Grid) Snapshot() Snapshot {
	s := Snapshot{
		Generation: g.generation,
		Variant:    g.rule.Variant().String(),
		Rows:       g.topo.Rows,
		Cols:       g.topo.Cols,
		States:     append([]int(nil), g.cur...),
	}
	if r, ok := g.rule.(AgentReporter); ok {
		s.Agents = r.Agents(g)
	}
	return s
}
