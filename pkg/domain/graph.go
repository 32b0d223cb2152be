package domain

// Edge is a directed connection from Source to Target.
type Edge struct {
	ID     string `json:"id" yaml:"id"`
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

// Graph is the workflow as drawn in the editor.
// The order of Nodes is significant: it breaks ties during sequencing.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Index returns the position of every node id in Nodes.
// For duplicated ids the first occurrence wins.
func (g Graph) Index() map[string]int {
	idx := make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		if _, seen := idx[n.ID]; !seen {
			idx[n.ID] = i
		}
	}
	return idx
}

// Node returns the first node with the given id.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// ResolvedEdges returns the edges whose endpoints both exist, in edge order.
func (g Graph) ResolvedEdges() []Edge {
	idx := g.Index()
	edges := make([]Edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		_, okSrc := idx[e.Source]
		_, okDst := idx[e.Target]
		if okSrc && okDst {
			edges = append(edges, e)
		}
	}
	return edges
}

// Degrees counts incoming and outgoing resolved edges per node id.
func (g Graph) Degrees() (in, out map[string]int) {
	in = make(map[string]int, len(g.Nodes))
	out = make(map[string]int, len(g.Nodes))
	for _, e := range g.ResolvedEdges() {
		out[e.Source]++
		in[e.Target]++
	}
	return in, out
}

// MaxOutDegree returns the largest number of outgoing resolved edges of any node.
func (g Graph) MaxOutDegree() int {
	_, out := g.Degrees()
	highest := 0
	for _, d := range out {
		if d > highest {
			highest = d
		}
	}
	return highest
}
