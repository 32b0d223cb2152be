package observability

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stevie1mat/flowdsl/pkg/domain"
)

// Metrics holds the Prometheus collectors fed by compiler hooks.
type Metrics struct {
	Validations     *prometheus.CounterVec
	Warnings        prometheus.Counter
	Compilations    *prometheus.CounterVec
	CompileDuration prometheus.Histogram
	Steps           prometheus.Histogram
	Complexity      *prometheus.CounterVec
}

// NewMetrics creates the collectors under namespace and registers them with reg.
// Collectors already registered by an earlier call are reused.
func NewMetrics(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validations_total",
			Help:      "Graph validations by outcome.",
		}, []string{"result"}),
		Warnings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_warnings_total",
			Help:      "Advisory warnings reported by validation.",
		}),
		Compilations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compilations_total",
			Help:      "Compilation attempts by outcome.",
		}, []string{"outcome"}),
		CompileDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "compile_duration_seconds",
			Help:      "Time spent compiling a graph.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
		}),
		Steps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "workflow_steps",
			Help:      "Steps per successfully compiled workflow.",
			Buckets:   []float64{1, 3, 5, 8, 13, 21, 34},
		}),
		Complexity: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workflow_complexity_total",
			Help:      "Compiled workflows by complexity class.",
		}, []string{"complexity"}),
	}

	if reg == nil {
		return m, nil
	}

	var err error
	m.Validations = register(reg, m.Validations, &err)
	m.Warnings = register(reg, m.Warnings, &err)
	m.Compilations = register(reg, m.Compilations, &err)
	m.CompileDuration = register(reg, m.CompileDuration, &err)
	m.Steps = register(reg, m.Steps, &err)
	m.Complexity = register(reg, m.Complexity, &err)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C, errp *error) C {
	if *errp != nil {
		return c
	}
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		*errp = err
	}
	return c
}

// Hooks returns compiler hooks that record into the collectors.
func (m *Metrics) Hooks() domain.Hooks {
	return domain.Hooks{
		OnValidate: func(_ context.Context, e *domain.ValidationEvent) {
			result := "valid"
			if !e.Result.IsValid {
				result = "invalid"
			}
			m.Validations.WithLabelValues(result).Inc()
			m.Warnings.Add(float64(len(e.Result.Warnings)))
		},
		OnCompile: func(_ context.Context, e *domain.CompileEvent) {
			m.CompileDuration.Observe(e.Duration.Seconds())

			switch {
			case errors.Is(e.Err, domain.ErrInvalidGraph):
				m.Compilations.WithLabelValues("rejected").Inc()
			case e.Err != nil:
				m.Compilations.WithLabelValues("error").Inc()
			default:
				m.Compilations.WithLabelValues("ok").Inc()
				m.Steps.Observe(float64(e.Plan.TotalSteps))
				m.Complexity.WithLabelValues(string(e.Plan.Complexity)).Inc()
			}
		},
	}
}
