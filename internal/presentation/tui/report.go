package tui

import (
	"fmt"
	"strings"

	"github.com/stevie1mat/flowdsl/pkg/domain"
)

// ValidationText formats a validation result as coloured plain lines:
// a status line, then one line per error and per warning.
func ValidationText(p *Painter, res domain.ValidationResult) string {
	var sb strings.Builder
	if res.IsValid {
		sb.WriteString(p.Success("✔ workflow is valid"))
	} else {
		sb.WriteString(p.Error(fmt.Sprintf("✘ workflow is invalid (%d errors)", len(res.Errors))))
	}
	sb.WriteString("\n")

	for _, e := range res.Errors {
		fmt.Fprintf(&sb, "  %s %s\n", p.Error("error:"), e)
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(&sb, "  %s %s\n", p.Warning("warning:"), w)
	}
	return sb.String()
}

// CompilationMarkdown renders a compilation as a markdown report for glamour.
func CompilationMarkdown(title string, out *domain.Compilation) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)

	fmt.Fprintf(&sb, "%s\n\n", out.Plan.Description)
	sb.WriteString("| Steps | Estimated time | Complexity |\n")
	sb.WriteString("|---|---|---|\n")
	fmt.Fprintf(&sb, "| %d | %s | %s |\n\n", out.Plan.TotalSteps, out.Plan.EstimatedTime, out.Plan.Complexity)

	if len(out.Validation.Warnings) > 0 {
		sb.WriteString("## Warnings\n\n")
		for _, w := range out.Validation.Warnings {
			fmt.Fprintf(&sb, "- %s\n", w)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Steps\n\n")
	for i, s := range out.Steps {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, s)
	}

	sb.WriteString("\n## DSL\n\n```\n")
	sb.WriteString(out.DSL)
	sb.WriteString("```\n")
	return sb.String()
}
