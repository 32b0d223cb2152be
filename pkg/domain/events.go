package domain

import (
	"context"
	"time"
)

// ValidationEvent is emitted after a graph has been validated.
type ValidationEvent struct {
	Timestamp time.Time
	Duration  time.Duration
	Nodes     int
	Edges     int
	Result    ValidationResult
}

// CompileEvent is emitted after a compilation attempt.
// Err is set when the graph was rejected or a stage failed.
type CompileEvent struct {
	Timestamp time.Time
	Duration  time.Duration
	Nodes     int
	Plan      ExecutionPlan
	Err       error
}

// Hooks defines callbacks for compiler observability.
type Hooks struct {
	OnValidate func(context.Context, *ValidationEvent)
	OnCompile  func(context.Context, *CompileEvent)
}
