package flowdsl

import (
	"context"
	"log/slog"
	"time"

	"github.com/stevie1mat/flowdsl/internal/compiler"
	"github.com/stevie1mat/flowdsl/internal/logging"
	"github.com/stevie1mat/flowdsl/internal/planner"
	"github.com/stevie1mat/flowdsl/internal/validator"
	"github.com/stevie1mat/flowdsl/pkg/domain"
)

// Version is the release of the library and CLI. It is overridden at build time with
// -ldflags "-X github.com/stevie1mat/flowdsl.Version=...".
var Version = "0.3.0"

// Compiler is the high-level entry point for the flowdsl library.
// It holds configuration only; every call is a fresh computation over the graph it receives,
// so a Compiler is safe for concurrent use.
type Compiler struct {
	planner *planner.Planner
	costs   domain.CostTable
	hooks   domain.Hooks
	logger  *slog.Logger
}

// Option defines a functional option for configuring the Compiler.
type Option func(*Compiler)

// WithHooks registers observability hooks.
func WithHooks(hooks domain.Hooks) Option {
	return func(c *Compiler) {
		c.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the compiler.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// WithCostTable overrides the per-kind step durations used for time estimates.
func WithCostTable(costs domain.CostTable) Option {
	return func(c *Compiler) {
		c.costs = costs
	}
}

// New initializes a Compiler.
func New(opts ...Option) *Compiler {
	c := &Compiler{}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = logging.NewNop()
	}
	c.planner = planner.New(c.costs)

	return c
}

// Validate checks the graph for structural errors and advisory warnings. It never fails.
func (c *Compiler) Validate(ctx context.Context, g domain.Graph) domain.ValidationResult {
	start := time.Now()
	res := validator.Validate(g)

	c.logger.Debug("graph validated",
		"nodes", len(g.Nodes),
		"edges", len(g.Edges),
		"errors", len(res.Errors),
		"warnings", len(res.Warnings),
	)

	if c.hooks.OnValidate != nil {
		c.hooks.OnValidate(ctx, &domain.ValidationEvent{
			Timestamp: start,
			Duration:  time.Since(start),
			Nodes:     len(g.Nodes),
			Edges:     len(g.Edges),
			Result:    res,
		})
	}
	return res
}

// Sequence orders the nodes topologically.
// It fails with a CycleError, MissingNodeError or DuplicateNodeError on graphs that were
// never validated.
func (c *Compiler) Sequence(g domain.Graph) ([]domain.Node, error) {
	return compiler.Sequence(g)
}

// Emit renders a sequence as workflow DSL text.
func (c *Compiler) Emit(seq []domain.Node) string {
	return compiler.Emit(seq)
}

// DescribeSteps renders one human-readable line per sequenced node.
func (c *Compiler) DescribeSteps(seq []domain.Node) []string {
	return planner.DescribeSteps(seq)
}

// Plan summarises a sequence: step count, estimated time, complexity and description.
func (c *Compiler) Plan(seq []domain.Node, g domain.Graph) domain.ExecutionPlan {
	return c.planner.Plan(seq, g)
}

// Compile runs the full pipeline. Invalid graphs are rejected with an *InvalidGraphError
// carrying the validation result; the returned Compilation still holds that result.
func (c *Compiler) Compile(ctx context.Context, g domain.Graph) (*domain.Compilation, error) {
	start := time.Now()
	out := &domain.Compilation{Validation: c.Validate(ctx, g)}

	err := c.compile(g, out)
	if err != nil {
		c.logger.Info("compilation rejected", "err", err, "nodes", len(g.Nodes))
	} else {
		c.logger.Debug("workflow compiled", "steps", out.Plan.TotalSteps, "complexity", out.Plan.Complexity)
	}

	if c.hooks.OnCompile != nil {
		c.hooks.OnCompile(ctx, &domain.CompileEvent{
			Timestamp: start,
			Duration:  time.Since(start),
			Nodes:     len(g.Nodes),
			Plan:      out.Plan,
			Err:       err,
		})
	}
	return out, err
}

func (c *Compiler) compile(g domain.Graph, out *domain.Compilation) error {
	if !out.Validation.IsValid {
		return &domain.InvalidGraphError{Result: out.Validation}
	}

	seq, err := compiler.Sequence(g)
	if err != nil {
		return err
	}

	out.Sequence = compiler.IDs(seq)
	out.DSL = compiler.Emit(seq)
	out.Steps = planner.DescribeSteps(seq)
	out.Plan = c.planner.Plan(seq, g)
	return nil
}
