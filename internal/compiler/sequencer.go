package compiler

import (
	"slices"

	"github.com/stevie1mat/flowdsl/pkg/domain"
)

// Sequence orders the nodes of g so that every edge points forward.
//
// It runs Kahn's algorithm. Nodes with no incoming edges start the queue in insertion order;
// nodes released by the same removal join the queue in insertion order too, so identical
// graphs always produce the same sequence. Graphs that would fail validation are rejected
// with a typed error instead of being truncated.
func Sequence(g domain.Graph) ([]domain.Node, error) {
	idx := make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		if _, dup := idx[n.ID]; dup {
			return nil, &domain.DuplicateNodeError{NodeID: n.ID}
		}
		if n.Kind() == "" {
			return nil, &domain.UntypedNodeError{NodeID: n.ID}
		}
		idx[n.ID] = i
	}

	indeg := make([]int, len(g.Nodes))
	out := make([][]int, len(g.Nodes))
	for _, e := range g.Edges {
		src, ok := idx[e.Source]
		if !ok {
			return nil, &domain.MissingNodeError{EdgeID: e.ID, NodeID: e.Source}
		}
		dst, ok := idx[e.Target]
		if !ok {
			return nil, &domain.MissingNodeError{EdgeID: e.ID, NodeID: e.Target}
		}
		out[src] = append(out[src], dst)
		indeg[dst]++
	}

	queue := make([]int, 0, len(g.Nodes))
	for i := range g.Nodes {
		if indeg[i] == 0 {
			queue = append(queue, i)
		}
	}

	order := make([]domain.Node, 0, len(g.Nodes))
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		order = append(order, g.Nodes[v])

		var released []int
		for _, u := range out[v] {
			indeg[u]--
			if indeg[u] == 0 {
				released = append(released, u)
			}
		}
		slices.Sort(released)
		queue = append(queue, released...)
	}

	if len(order) < len(g.Nodes) {
		var remaining []string
		for i, n := range g.Nodes {
			if indeg[i] > 0 {
				remaining = append(remaining, n.ID)
			}
		}
		return nil, &domain.CycleError{Remaining: remaining}
	}

	return order, nil
}

// IDs returns the ids of a node sequence.
func IDs(seq []domain.Node) []string {
	ids := make([]string, len(seq))
	for i, n := range seq {
		ids[i] = n.ID
	}
	return ids
}
