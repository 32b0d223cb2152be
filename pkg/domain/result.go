package domain

import "time"

// ValidationResult is the outcome of structural validation.
// Warnings never affect validity.
type ValidationResult struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Complexity is a coarse size/branching bucket for display purposes.
type Complexity string

const (
	ComplexitySimple  Complexity = "Simple"
	ComplexityMedium  Complexity = "Medium"
	ComplexityComplex Complexity = "Complex"
)

// ExecutionPlan summarises a sequenced workflow.
type ExecutionPlan struct {
	TotalSteps    int        `json:"totalSteps"`
	EstimatedTime string     `json:"estimatedTime"`
	Complexity    Complexity `json:"complexity"`
	Description   string     `json:"description"`
}

// CostTable holds the estimated duration of one step per node kind.
type CostTable map[Kind]time.Duration

// DefaultCostTable is the per-kind cost used when none is configured.
func DefaultCostTable() CostTable {
	return CostTable{
		KindInput:  5 * time.Second,
		KindAction: 15 * time.Second,
		KindOutput: 5 * time.Second,
	}
}

// Compilation bundles everything produced from one valid graph.
type Compilation struct {
	Validation ValidationResult `json:"validation"`
	Sequence   []string         `json:"sequence"`
	DSL        string           `json:"dsl"`
	Steps      []string         `json:"steps"`
	Plan       ExecutionPlan    `json:"plan"`
}
