package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidGraph is wrapped by every error raised when a compile stage receives a graph
// that would not pass validation.
var ErrInvalidGraph = errors.New("invalid workflow graph")

// ErrWorkflowNotFound is returned when a workflow id cannot be found in the store.
var ErrWorkflowNotFound = errors.New("workflow not found")

// CycleError is returned by the sequencer when the graph contains a directed cycle.
type CycleError struct {
	// Remaining lists the node ids that could not be sequenced, in insertion order.
	Remaining []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle detected: %d node(s) could not be sequenced (%s)",
		len(e.Remaining), strings.Join(e.Remaining, ", "))
}

func (e *CycleError) Unwrap() error { return ErrInvalidGraph }

// MissingNodeError is returned when an edge references a node that is not in the graph.
type MissingNodeError struct {
	EdgeID string
	NodeID string
}

func (e *MissingNodeError) Error() string {
	return fmt.Sprintf("edge %s references missing node %s", e.EdgeID, e.NodeID)
}

func (e *MissingNodeError) Unwrap() error { return ErrInvalidGraph }

// DuplicateNodeError is returned when two nodes share the same id.
type DuplicateNodeError struct {
	NodeID string
}

func (e *DuplicateNodeError) Error() string {
	return fmt.Sprintf("duplicate node id %s", e.NodeID)
}

func (e *DuplicateNodeError) Unwrap() error { return ErrInvalidGraph }

// UntypedNodeError is returned when a node carries no payload and therefore no kind.
type UntypedNodeError struct {
	NodeID string
}

func (e *UntypedNodeError) Error() string {
	return fmt.Sprintf("node %s has no kind", e.NodeID)
}

func (e *UntypedNodeError) Unwrap() error { return ErrInvalidGraph }

// InvalidGraphError carries the validation result of a graph rejected by Compile.
type InvalidGraphError struct {
	Result ValidationResult
}

func (e *InvalidGraphError) Error() string {
	if len(e.Result.Errors) == 1 {
		return e.Result.Errors[0]
	}
	return fmt.Sprintf("%d validation errors: %s", len(e.Result.Errors), strings.Join(e.Result.Errors, "; "))
}

func (e *InvalidGraphError) Unwrap() error { return ErrInvalidGraph }
