package dsl

import (
	"fmt"

	"github.com/stevie1mat/flowdsl/pkg/domain"
)

// Builder manages the graph construction.
// Nodes and edges keep their declaration order, which the sequencer uses to break ties.
type Builder struct {
	order []string
	nodes map[string]nodeBuilder
	edges []domain.Edge
}

type nodeBuilder interface {
	build() domain.Node
}

// New creates a new graph builder.
func New() *Builder {
	return &Builder{
		nodes: make(map[string]nodeBuilder),
	}
}

// Input declares an Input node. Declaring the same id again returns the existing builder
// if it is an Input node; otherwise the node is replaced in place.
func (b *Builder) Input(id string) *InputBuilder {
	if ib, ok := b.nodes[id].(*InputBuilder); ok {
		return ib
	}
	ib := &InputBuilder{edgeSource: edgeSource{b: b, id: id}}
	b.put(id, ib)
	return ib
}

// Action declares an Action node.
func (b *Builder) Action(id string) *ActionBuilder {
	if ab, ok := b.nodes[id].(*ActionBuilder); ok {
		return ab
	}
	ab := &ActionBuilder{edgeSource: edgeSource{b: b, id: id}}
	b.put(id, ab)
	return ab
}

// Output declares an Output node.
func (b *Builder) Output(id string) *OutputBuilder {
	if ob, ok := b.nodes[id].(*OutputBuilder); ok {
		return ob
	}
	ob := &OutputBuilder{edgeSource: edgeSource{b: b, id: id}}
	b.put(id, ob)
	return ob
}

// Connect adds an edge between two node ids. Endpoints are not checked; the validator
// reports dangling edges.
func (b *Builder) Connect(source, target string) *Builder {
	b.edges = append(b.edges, domain.Edge{
		ID:     fmt.Sprintf("e%d", len(b.edges)+1),
		Source: source,
		Target: target,
	})
	return b
}

// Build returns the graph in declaration order.
func (b *Builder) Build() domain.Graph {
	g := domain.Graph{
		Nodes: make([]domain.Node, 0, len(b.order)),
		Edges: append([]domain.Edge(nil), b.edges...),
	}
	for _, id := range b.order {
		g.Nodes = append(g.Nodes, b.nodes[id].build())
	}
	return g
}

func (b *Builder) put(id string, nb nodeBuilder) {
	if _, exists := b.nodes[id]; !exists {
		b.order = append(b.order, id)
	}
	b.nodes[id] = nb
}
