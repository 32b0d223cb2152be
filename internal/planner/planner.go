package planner

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/stevie1mat/flowdsl/pkg/domain"
)

// Planner summarises sequenced workflows using a per-kind cost table.
type Planner struct {
	costs domain.CostTable
}

// New creates a Planner. A nil or empty table falls back to domain.DefaultCostTable.
func New(costs domain.CostTable) *Planner {
	if len(costs) == 0 {
		costs = domain.DefaultCostTable()
	}
	return &Planner{costs: costs}
}

// Plan builds the execution plan of seq. The graph supplies the branching information.
func (p *Planner) Plan(seq []domain.Node, g domain.Graph) domain.ExecutionPlan {
	var total time.Duration
	actions := 0
	firstInput, lastOutput := "", ""

	for _, n := range seq {
		total += p.costs[n.Kind()]
		switch d := n.Data.(type) {
		case domain.InputData:
			if firstInput == "" {
				firstInput = strings.TrimSpace(d.Label)
				if firstInput == "" {
					// Only the first Input node counts, even when it is unlabeled.
					firstInput = "input"
				}
			}
		case domain.ActionData:
			actions++
		case domain.OutputData:
			lastOutput = strings.TrimSpace(d.Label)
		}
	}

	if firstInput == "" {
		firstInput = "input"
	}
	if lastOutput == "" {
		lastOutput = "output"
	}

	return domain.ExecutionPlan{
		TotalSteps:    len(seq),
		EstimatedTime: EstimateTime(total),
		Complexity:    Classify(len(seq), g.MaxOutDegree()),
		Description:   fmt.Sprintf("Takes %s, runs %d action step(s), produces %s.", firstInput, actions, lastOutput),
	}
}

// Plan summarises seq with the default cost table.
func Plan(seq []domain.Node, g domain.Graph) domain.ExecutionPlan {
	return New(nil).Plan(seq, g)
}

// EstimateTime formats a total duration: "< 1 minute" up to 60s, "~N minutes" above.
func EstimateTime(total time.Duration) string {
	if total <= time.Minute {
		return "< 1 minute"
	}
	return fmt.Sprintf("~%d minutes", int(math.Ceil(total.Minutes())))
}

// Classify buckets a workflow by size and branching.
func Classify(steps, maxOutDegree int) domain.Complexity {
	switch {
	case steps > 8 || maxOutDegree > 2:
		return domain.ComplexityComplex
	case steps <= 3 && maxOutDegree <= 1:
		return domain.ComplexitySimple
	default:
		return domain.ComplexityMedium
	}
}
