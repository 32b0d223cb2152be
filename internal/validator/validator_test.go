package validator

import (
	"testing"

	"github.com/stevie1mat/flowdsl/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func topicGraph() domain.Graph {
	return domain.Graph{
		Nodes: []domain.Node{
			domain.NewInput("1", domain.InputData{Label: "Topic", Variable: "topic"}),
			domain.NewAction("2", domain.ActionData{Prompt: "Write about {topic}", Model: "mistral", Temperature: 0.7, MaxTokens: 256}),
			domain.NewOutput("3", domain.OutputData{DisplayFormat: "markdown"}),
		},
		Edges: []domain.Edge{
			{ID: "e1", Source: "1", Target: "2"},
			{ID: "e2", Source: "2", Target: "3"},
		},
	}
}

func TestValidate_TopicScenario(t *testing.T) {
	res := Validate(topicGraph())

	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
}

func TestValidate_EmptyGraph(t *testing.T) {
	res := Validate(domain.Graph{})

	assert.False(t, res.IsValid)
	assert.Equal(t, []string{"Workflow must have at least one input and one output"}, res.Errors)
	assert.NotNil(t, res.Warnings)
}

func TestValidate_InputAndOutputWithoutEdges(t *testing.T) {
	g := domain.Graph{
		Nodes: []domain.Node{
			domain.NewInput("in", domain.InputData{Label: "Name"}),
			domain.NewOutput("out", domain.OutputData{}),
		},
	}

	res := Validate(g)

	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
	assert.Equal(t, []string{"Node in has no downstream connection"}, res.Warnings)
}

func TestValidate_Cycle(t *testing.T) {
	g := domain.Graph{
		Nodes: []domain.Node{
			domain.NewInput("in", domain.InputData{}),
			domain.NewAction("A", domain.ActionData{}),
			domain.NewAction("B", domain.ActionData{}),
			domain.NewAction("C", domain.ActionData{}),
			domain.NewOutput("out", domain.OutputData{}),
		},
		Edges: []domain.Edge{
			{ID: "e0", Source: "in", Target: "A"},
			{ID: "e1", Source: "A", Target: "B"},
			{ID: "e2", Source: "B", Target: "C"},
			{ID: "e3", Source: "C", Target: "A"},
			{ID: "e4", Source: "C", Target: "out"},
		},
	}

	res := Validate(g)

	assert.False(t, res.IsValid)
	assert.Equal(t, []string{"Cycle detected involving node A"}, res.Errors)
}

func TestValidate_SelfLoop(t *testing.T) {
	g := topicGraph()
	g.Edges = append(g.Edges, domain.Edge{ID: "loop", Source: "2", Target: "2"})

	res := Validate(g)

	assert.False(t, res.IsValid)
	assert.Contains(t, res.Errors, "Cycle detected involving node 2")
}

func TestValidate_RulesDoNotShortCircuit(t *testing.T) {
	g := domain.Graph{
		Nodes: []domain.Node{
			domain.NewAction("a", domain.ActionData{}),
			domain.NewAction("a", domain.ActionData{}),
			domain.NewAction("b", domain.ActionData{}),
		},
		Edges: []domain.Edge{
			{ID: "e1", Source: "a", Target: "ghost"},
			{ID: "e2", Source: "b", Target: "b"},
		},
	}

	res := Validate(g)

	assert.Equal(t, []string{
		"Workflow must have at least one input and one output",
		"Duplicate node id a",
		"Edge references missing node ghost",
		"Cycle detected involving node b",
	}, res.Errors)
	assert.Equal(t, []string{
		"Action node a has no input connection",
		"Action node a has no input connection",
		"Node a has no downstream connection",
		"Node a has no downstream connection",
	}, res.Warnings)
}

func TestValidate_NodeWithoutKind(t *testing.T) {
	g := domain.Graph{
		Nodes: []domain.Node{
			domain.NewInput("in", domain.InputData{Label: "Topic"}),
			{ID: "ghost"},
			domain.NewOutput("out", domain.OutputData{}),
		},
		Edges: []domain.Edge{
			{ID: "e1", Source: "in", Target: "ghost"},
			{ID: "e2", Source: "ghost", Target: "out"},
		},
	}

	res := Validate(g)

	assert.False(t, res.IsValid)
	assert.Equal(t, []string{"Node ghost has no kind"}, res.Errors)
}

func TestValidate_Warnings(t *testing.T) {
	g := domain.Graph{
		Nodes: []domain.Node{
			domain.NewInput("in", domain.InputData{}),
			domain.NewAction("orphan", domain.ActionData{}),
			domain.NewOutput("direct", domain.OutputData{}),
			domain.NewOutput("unused", domain.OutputData{}),
		},
		Edges: []domain.Edge{
			{ID: "e1", Source: "in", Target: "direct"},
			{ID: "e2", Source: "orphan", Target: "unused"},
		},
	}

	res := Validate(g)

	assert.True(t, res.IsValid)
	assert.Equal(t, []string{
		"Action node orphan has no input connection",
		"Output node direct is not fed by any action",
	}, res.Warnings)
}
