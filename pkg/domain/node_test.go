package domain_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stevie1mat/flowdsl/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.Kind
		wantErr bool
	}{
		{"input", domain.KindInput, false},
		{"InputNode", domain.KindInput, false},
		{"action", domain.KindAction, false},
		{"ai", domain.KindAction, false},
		{" outputNode ", domain.KindOutput, false},
		{"webhook", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := domain.ParseKind(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestNode_JSONShape(t *testing.T) {
	node := domain.NewAction("2", domain.ActionData{
		Prompt:      "Write about {topic}",
		Model:       "mistral",
		Temperature: 0.7,
		MaxTokens:   256,
	})
	node.Position = domain.Position{X: 10, Y: 20}

	raw, err := json.Marshal(node)
	require.NoError(t, err)

	var shape map[string]any
	require.NoError(t, json.Unmarshal(raw, &shape))
	assert.Equal(t, "2", shape["id"])
	assert.Equal(t, "action", shape["type"])
	assert.Equal(t, "Write about {topic}", shape["data"].(map[string]any)["prompt"])

	var decoded domain.Node
	require.NoError(t, json.Unmarshal(raw, &decoded))
	action, ok := decoded.Action()
	require.True(t, ok)
	assert.Equal(t, 256, action.MaxTokens)
	assert.Equal(t, domain.Position{X: 10, Y: 20}, decoded.Position)
}

func TestNode_UnmarshalUnknownKind(t *testing.T) {
	var n domain.Node
	err := json.Unmarshal([]byte(`{"id":"x","type":"webhook"}`), &n)
	assert.ErrorContains(t, err, "node x")
}

func TestGraph_Degrees(t *testing.T) {
	g := domain.Graph{
		Nodes: []domain.Node{
			domain.NewInput("a", domain.InputData{}),
			domain.NewAction("b", domain.ActionData{}),
			domain.NewOutput("c", domain.OutputData{}),
		},
		Edges: []domain.Edge{
			{ID: "e1", Source: "a", Target: "b"},
			{ID: "e2", Source: "a", Target: "c"},
			{ID: "e3", Source: "a", Target: "ghost"},
		},
	}

	in, out := g.Degrees()
	assert.Equal(t, 2, out["a"], "dangling edge must not count")
	assert.Equal(t, 1, in["b"])
	assert.Equal(t, 0, in["a"])
	assert.Equal(t, 2, g.MaxOutDegree())
	assert.Len(t, g.ResolvedEdges(), 2)
}

func TestErrors_WrapInvalidGraph(t *testing.T) {
	errs := []error{
		&domain.CycleError{Remaining: []string{"a", "b"}},
		&domain.MissingNodeError{EdgeID: "e1", NodeID: "x"},
		&domain.DuplicateNodeError{NodeID: "a"},
		&domain.InvalidGraphError{Result: domain.ValidationResult{Errors: []string{"boom"}}},
	}
	for _, err := range errs {
		assert.True(t, errors.Is(err, domain.ErrInvalidGraph), err.Error())
	}

	var cycle *domain.CycleError
	require.True(t, errors.As(errs[0], &cycle))
	assert.Equal(t, []string{"a", "b"}, cycle.Remaining)
}
