package validator

import (
	"fmt"

	"github.com/stevie1mat/flowdsl/pkg/domain"
)

const errMissingEndpoints = "Workflow must have at least one input and one output"

// DFS marking for cycle detection.
const (
	white = iota
	gray
	black
)

// Validate checks the structural invariants of a workflow graph.
// Every rule runs independently; it never fails and never returns a nil slice.
func Validate(g domain.Graph) domain.ValidationResult {
	errs := []string{}
	warnings := []string{}

	errs = append(errs, checkEndpoints(g)...)
	errs = append(errs, checkDuplicates(g)...)
	errs = append(errs, checkKinds(g)...)
	errs = append(errs, checkEdges(g)...)
	errs = append(errs, checkCycles(g)...)

	warnings = append(warnings, checkConnections(g)...)

	return domain.ValidationResult{
		IsValid:  len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}
}

func checkEndpoints(g domain.Graph) []string {
	var hasInput, hasOutput bool
	for _, n := range g.Nodes {
		switch n.Kind() {
		case domain.KindInput:
			hasInput = true
		case domain.KindOutput:
			hasOutput = true
		}
	}
	if hasInput && hasOutput {
		return nil
	}
	return []string{errMissingEndpoints}
}

func checkDuplicates(g domain.Graph) []string {
	var errs []string
	seen := make(map[string]int, len(g.Nodes))
	for _, n := range g.Nodes {
		seen[n.ID]++
		if seen[n.ID] == 2 {
			errs = append(errs, fmt.Sprintf("Duplicate node id %s", n.ID))
		}
	}
	return errs
}

func checkKinds(g domain.Graph) []string {
	var errs []string
	for _, n := range g.Nodes {
		if n.Kind() == "" {
			errs = append(errs, fmt.Sprintf("Node %s has no kind", n.ID))
		}
	}
	return errs
}

func checkEdges(g domain.Graph) []string {
	var errs []string
	idx := g.Index()
	for _, e := range g.Edges {
		if _, ok := idx[e.Source]; !ok {
			errs = append(errs, fmt.Sprintf("Edge references missing node %s", e.Source))
		}
		if _, ok := idx[e.Target]; !ok {
			errs = append(errs, fmt.Sprintf("Edge references missing node %s", e.Target))
		}
	}
	return errs
}

// checkCycles walks the graph depth-first from every unvisited node in insertion order.
// Reaching a gray node means the current path loops back onto itself.
func checkCycles(g domain.Graph) []string {
	adj := make(map[string][]string, len(g.Nodes))
	for _, e := range g.ResolvedEdges() {
		adj[e.Source] = append(adj[e.Source], e.Target)
	}

	color := make(map[string]int, len(g.Nodes))
	reported := make(map[string]bool)
	var errs []string

	var visit func(id string)
	visit = func(id string) {
		color[id] = gray
		for _, next := range adj[id] {
			switch color[next] {
			case white:
				visit(next)
			case gray:
				if !reported[next] {
					reported[next] = true
					errs = append(errs, fmt.Sprintf("Cycle detected involving node %s", next))
				}
			}
		}
		color[id] = black
	}

	for _, n := range g.Nodes {
		if color[n.ID] == white {
			visit(n.ID)
		}
	}
	return errs
}

func checkConnections(g domain.Graph) []string {
	var warnings []string
	in, out := g.Degrees()

	fedByAction := make(map[string]bool)
	for _, e := range g.ResolvedEdges() {
		if src, _ := g.Node(e.Source); src.Kind() == domain.KindAction {
			fedByAction[e.Target] = true
		}
	}

	for _, n := range g.Nodes {
		if n.Kind() == domain.KindAction && in[n.ID] == 0 {
			warnings = append(warnings, fmt.Sprintf("Action node %s has no input connection", n.ID))
		}
	}
	for _, n := range g.Nodes {
		if n.Kind() != domain.KindOutput && out[n.ID] == 0 {
			warnings = append(warnings, fmt.Sprintf("Node %s has no downstream connection", n.ID))
		}
	}
	for _, n := range g.Nodes {
		if n.Kind() == domain.KindOutput && in[n.ID] > 0 && !fedByAction[n.ID] {
			warnings = append(warnings, fmt.Sprintf("Output node %s is not fed by any action", n.ID))
		}
	}
	return warnings
}
