package graph_test

import (
	"strings"
	"testing"

	"github.com/stevie1mat/flowdsl/internal/presentation/graph"
	"github.com/stevie1mat/flowdsl/internal/validator"
	"github.com/stevie1mat/flowdsl/pkg/domain"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name        string
		g           domain.Graph
		contains    []string
		notContains []string
	}{
		{
			name: "Node Shapes",
			g: domain.Graph{Nodes: []domain.Node{
				domain.NewInput("q1", domain.InputData{Label: "Topic"}),
				domain.NewAction("a1", domain.ActionData{Model: "mistral"}),
				domain.NewOutput("o1", domain.OutputData{}),
			}},
			contains: []string{
				`q1[/"q1: Topic"/]`,
				`a1[["a1: mistral"]]`,
				`o1(["o1"])`,
			},
		},
		{
			name: "ID Sanitization",
			g: domain.Graph{Nodes: []domain.Node{
				domain.NewInput("path/to/file.md", domain.InputData{}),
				domain.NewOutput("end", domain.OutputData{}),
			}},
			contains: []string{
				`path_to_file_md[/"path/to/file.md"/]`,
				`end_(["end"])`,
			},
		},
		{
			name: "Edges And Escaping",
			g: domain.Graph{
				Nodes: []domain.Node{
					domain.NewInput("A", domain.InputData{Label: `Say "hi"`}),
					domain.NewOutput("B", domain.OutputData{}),
				},
				Edges: []domain.Edge{
					{ID: "e1", Source: "A", Target: "B"},
					{ID: "e2", Source: "A", Target: "ghost"},
				},
			},
			contains:    []string{"A --> B", `A[/"A: Say 'hi'"/]`},
			notContains: []string{"ghost"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.g, nil)
			if !strings.HasPrefix(got, "graph TD\n") {
				t.Errorf("missing header in\n%s", got)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
			for _, unwanted := range tt.notContains {
				if strings.Contains(got, unwanted) {
					t.Errorf("GenerateMermaid() = \n%v\nUnexpected substring: %v", got, unwanted)
				}
			}
		})
	}
}

func TestGenerateMermaid_ValidationOverlay(t *testing.T) {
	g := domain.Graph{
		Nodes: []domain.Node{
			domain.NewInput("in", domain.InputData{}),
			domain.NewAction("A", domain.ActionData{}),
			domain.NewAction("B", domain.ActionData{}),
			domain.NewAction("idle", domain.ActionData{}),
			domain.NewOutput("out", domain.OutputData{}),
		},
		Edges: []domain.Edge{
			{ID: "e1", Source: "A", Target: "B"},
			{ID: "e2", Source: "B", Target: "A"},
			{ID: "e3", Source: "in", Target: "out"},
		},
	}

	overlay := graph.OverlayFromResult(g, validator.Validate(g))
	got := graph.GenerateMermaid(g, overlay)

	for _, want := range []string{
		"classDef error",
		"class idle warning;",
		"class out warning;",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("overlay missing %q in\n%s", want, got)
		}
	}
	if !strings.Contains(got, "class A error;") && !strings.Contains(got, "class B error;") {
		t.Errorf("expected a cycle member styled as error in\n%s", got)
	}
	if strings.Contains(got, "class in ") {
		t.Errorf("healthy nodes must not be styled:\n%s", got)
	}
}

func TestOverlayFromResult_ExactIDMatch(t *testing.T) {
	g := domain.Graph{Nodes: []domain.Node{
		domain.NewAction("1", domain.ActionData{}),
		domain.NewAction("12", domain.ActionData{}),
	}}
	res := domain.ValidationResult{Warnings: []string{"Action node 12 has no input connection"}}

	overlay := graph.OverlayFromResult(g, res)
	if len(overlay.Warnings) != 1 || overlay.Warnings[0] != "12" {
		t.Errorf("expected only node 12, got %v", overlay.Warnings)
	}
}
