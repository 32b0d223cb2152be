package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stevie1mat/flowdsl/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func asciiPainter(w *bytes.Buffer) *Painter {
	return NewPainter(w, termenv.WithProfile(termenv.Ascii))
}

func TestValidationText(t *testing.T) {
	var buf bytes.Buffer
	p := asciiPainter(&buf)

	got := ValidationText(p, domain.ValidationResult{
		IsValid:  false,
		Errors:   []string{"Cycle detected involving node A"},
		Warnings: []string{"Node B has no downstream connection"},
	})

	assert.Equal(t, "✘ workflow is invalid (1 errors)\n"+
		"  error: Cycle detected involving node A\n"+
		"  warning: Node B has no downstream connection\n", got)

	got = ValidationText(p, domain.ValidationResult{IsValid: true})
	assert.Equal(t, "✔ workflow is valid\n", got)
}

func TestCompilationMarkdown(t *testing.T) {
	out := &domain.Compilation{
		Validation: domain.ValidationResult{IsValid: true, Warnings: []string{"w1"}},
		DSL:        "workflow \"T\" {\n}\n",
		Steps:      []string{"first", "second"},
		Plan: domain.ExecutionPlan{
			TotalSteps:    2,
			EstimatedTime: "< 1 minute",
			Complexity:    domain.ComplexitySimple,
			Description:   "Collects input and produces output.",
		},
	}

	md := CompilationMarkdown("T", out)

	for _, want := range []string{
		"# T\n",
		"| 2 | < 1 minute | Simple |",
		"## Warnings\n\n- w1\n",
		"1. first\n2. second\n",
		"```\nworkflow \"T\" {\n}\n```\n",
	} {
		assert.Contains(t, md, want)
	}
}

func TestRendererFor_NonTerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, IsTerminal(&buf))
	assert.Equal(t, defaultWidth, Width(&buf))

	render := RendererFor(&buf)
	got, err := render("# title")
	assert.NoError(t, err)
	assert.Equal(t, "# title", got)
}

func TestNewRenderer(t *testing.T) {
	render := NewRenderer(60)
	got, err := render("# Heading\n\nbody text")
	assert.NoError(t, err)
	assert.True(t, strings.Contains(got, "Heading"))
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.Equal(t, 7, strings.Count(buf.String(), "\n"))
}
