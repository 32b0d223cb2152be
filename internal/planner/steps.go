package planner

import (
	"fmt"
	"strings"

	"github.com/stevie1mat/flowdsl/internal/compiler"
	"github.com/stevie1mat/flowdsl/pkg/domain"
)

const promptLimit = 80

// DescribeSteps renders one "Step <n>: ..." line per node, in sequence order.
func DescribeSteps(seq []domain.Node) []string {
	steps := make([]string, len(seq))
	for i, n := range seq {
		steps[i] = fmt.Sprintf("Step %d: %s", i+1, Describe(n))
	}
	return steps
}

// Describe returns the human description of a single node.
func Describe(n domain.Node) string {
	switch d := n.Data.(type) {
	case domain.InputData:
		name := firstNonBlank(d.Label, d.Variable, "user input")
		return "Collect input " + compiler.Quote(name)
	case domain.ActionData:
		model := firstNonBlank(d.Model, "default model")
		return fmt.Sprintf("Generate content using %s with prompt %s", model, compiler.Quote(truncate(d.Prompt, promptLimit)))
	case domain.OutputData:
		return fmt.Sprintf("Display/export result as %s", firstNonBlank(d.DisplayFormat, domain.DisplayPlain))
	default:
		return fmt.Sprintf("Unknown step %s", n.ID)
	}
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
