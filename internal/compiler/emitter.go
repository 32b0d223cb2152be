package compiler

import (
	"fmt"
	"strings"

	"github.com/stevie1mat/flowdsl/pkg/domain"
)

// DefaultTitle names a workflow whose first input has no label.
const DefaultTitle = "Untitled Workflow"

const (
	indent        = "    "
	emptyWorkflow = "workflow \"Empty Workflow\" {\n" + indent + "// No steps defined\n}\n"
)

var quoter = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`)

// Emit renders a node sequence as a workflow program, one statement per node.
// The output is byte-identical for identical sequences.
func Emit(seq []domain.Node) string {
	if len(seq) == 0 {
		return emptyWorkflow
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "workflow %s {\n", Quote(Title(seq)))
	for _, n := range seq {
		sb.WriteString(indent)
		sb.WriteString(statement(n))
		sb.WriteString("\n")
	}
	sb.WriteString("}\n")
	return sb.String()
}

// Title is the label of the first Input node, or "Untitled Workflow".
func Title(seq []domain.Node) string {
	for _, n := range seq {
		if in, ok := n.Input(); ok {
			if label := strings.TrimSpace(in.Label); label != "" {
				return label
			}
			break
		}
	}
	return DefaultTitle
}

func statement(n domain.Node) string {
	switch d := n.Data.(type) {
	case domain.InputData:
		variable := d.Variable
		if variable == "" {
			variable = n.ID
		}
		inputType := d.InputType
		if inputType == "" {
			inputType = domain.InputTypeText
		}
		return fmt.Sprintf("input %s : %s = %s", variable, inputType, Quote(d.DefaultValue))
	case domain.ActionData:
		return fmt.Sprintf("action %s { prompt: %s, model: %s, temperature: %.2f, max_tokens: %d }",
			n.ID, Quote(d.Prompt), Quote(d.Model), d.Temperature, d.MaxTokens)
	case domain.OutputData:
		format := d.DisplayFormat
		if format == "" {
			format = domain.DisplayPlain
		}
		return fmt.Sprintf("output %s { format: %s, type: %s }", n.ID, Quote(format), Quote(d.FileType))
	default:
		return fmt.Sprintf("// node %s has no payload", n.ID)
	}
}

// Quote wraps s in double quotes, escaping backslashes, quotes and line breaks.
func Quote(s string) string {
	return `"` + quoter.Replace(s) + `"`
}
