package observability

import (
	"context"
	"log/slog"

	"github.com/stevie1mat/flowdsl/pkg/domain"
)

// LogHooks returns hooks that log every validation and compilation at debug level,
// and rejected compilations at info.
func LogHooks(logger *slog.Logger) domain.Hooks {
	return domain.Hooks{
		OnValidate: func(ctx context.Context, e *domain.ValidationEvent) {
			logger.DebugContext(ctx, "validation",
				"nodes", e.Nodes,
				"edges", e.Edges,
				"valid", e.Result.IsValid,
				"duration", e.Duration,
			)
		},
		OnCompile: func(ctx context.Context, e *domain.CompileEvent) {
			if e.Err != nil {
				logger.InfoContext(ctx, "compile rejected", "nodes", e.Nodes, "err", e.Err)
				return
			}
			logger.DebugContext(ctx, "compile",
				"steps", e.Plan.TotalSteps,
				"complexity", e.Plan.Complexity,
				"duration", e.Duration,
			)
		},
	}
}

// Combine returns hooks that call each set in order. Nil callbacks are skipped.
func Combine(sets ...domain.Hooks) domain.Hooks {
	return domain.Hooks{
		OnValidate: func(ctx context.Context, e *domain.ValidationEvent) {
			for _, h := range sets {
				if h.OnValidate != nil {
					h.OnValidate(ctx, e)
				}
			}
		},
		OnCompile: func(ctx context.Context, e *domain.CompileEvent) {
			for _, h := range sets {
				if h.OnCompile != nil {
					h.OnCompile(ctx, e)
				}
			}
		},
	}
}
