package graph

import (
	"fmt"
	"strings"

	"github.com/stevie1mat/flowdsl/pkg/domain"
)

// Overlay marks nodes to highlight on top of the plain graph.
type Overlay struct {
	Errors   []string
	Warnings []string
}

// OverlayFromResult collects the ids of nodes mentioned by validation messages.
// A node is mentioned when a message names it as "node <id>", "Node <id>" or "id <id>".
func OverlayFromResult(g domain.Graph, res domain.ValidationResult) *Overlay {
	return &Overlay{
		Errors:   mentioned(g, res.Errors),
		Warnings: mentioned(g, res.Warnings),
	}
}

func mentioned(g domain.Graph, messages []string) []string {
	var ids []string
	seen := make(map[string]bool)
	for _, n := range g.Nodes {
		if seen[n.ID] {
			continue
		}
		for _, msg := range messages {
			if names(msg, "node "+n.ID) || names(msg, "Node "+n.ID) || names(msg, "id "+n.ID) {
				seen[n.ID] = true
				ids = append(ids, n.ID)
				break
			}
		}
	}
	return ids
}

func names(msg, ref string) bool {
	i := strings.Index(msg, ref)
	for i >= 0 {
		end := i + len(ref)
		if end == len(msg) || msg[end] == ' ' {
			return true
		}
		next := strings.Index(msg[end:], ref)
		if next < 0 {
			return false
		}
		i = end + next
	}
	return false
}

// GenerateMermaid produces a Mermaid flowchart of the graph.
// It applies semantic styling:
// - Input: [/Parallelogram/]
// - Action: [[Subroutine]]
// - Output: ([Stadium])
// Edges whose endpoints are missing are left out. Overlay styles are applied if provided.
func GenerateMermaid(g domain.Graph, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, node := range g.Nodes {
		safeID := sanitizeMermaidID(node.ID)

		opener, closer := "[", "]"
		switch node.Kind() {
		case domain.KindInput:
			opener, closer = "[/", "/]"
		case domain.KindAction:
			opener, closer = "[[", "]]"
		case domain.KindOutput:
			opener, closer = "([", "])"
		}

		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, escapeLabel(label(node)), closer)
	}

	for _, e := range g.ResolvedEdges() {
		fmt.Fprintf(&sb, "    %s --> %s\n", sanitizeMermaidID(e.Source), sanitizeMermaidID(e.Target))
	}

	if overlay != nil && (len(overlay.Errors) > 0 || len(overlay.Warnings) > 0) {
		sb.WriteString("\n    %% Validation Overlay\n")
		// Black text keeps contrast on light fills in both themes.
		sb.WriteString("    classDef warning fill:#fff8e1,stroke:#f9a825,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef error fill:#ffebee,stroke:#c62828,stroke-width:3px,color:#000;\n")

		styled := make(map[string]bool)
		for _, id := range overlay.Errors {
			safeID := sanitizeMermaidID(id)
			if safeID != "" && !styled[safeID] {
				styled[safeID] = true
				fmt.Fprintf(&sb, "    class %s error;\n", safeID)
			}
		}
		// Errors win over warnings on the same node.
		for _, id := range overlay.Warnings {
			safeID := sanitizeMermaidID(id)
			if safeID != "" && !styled[safeID] {
				styled[safeID] = true
				fmt.Fprintf(&sb, "    class %s warning;\n", safeID)
			}
		}
	}

	return sb.String()
}

func label(n domain.Node) string {
	var text string
	switch d := n.Data.(type) {
	case domain.InputData:
		text = d.Label
	case domain.ActionData:
		text = d.Model
	case domain.OutputData:
		text = d.Label
	}
	text = strings.TrimSpace(text)
	if text == "" || text == n.ID {
		return n.ID
	}
	return n.ID + ": " + text
}

func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, "\"", "'")
	return strings.ReplaceAll(s, "\n", " ")
}

func sanitizeMermaidID(id string) string {
	s := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_").Replace(id)
	// "end" closes subgraphs in Mermaid.
	if strings.EqualFold(s, "end") {
		s += "_"
	}
	return s
}
