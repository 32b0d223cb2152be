package cli

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stevie1mat/flowdsl"
	"github.com/stevie1mat/flowdsl/internal/config"
	"github.com/stevie1mat/flowdsl/internal/logging"
	"github.com/stevie1mat/flowdsl/pkg/adapters/badger"
	"github.com/stevie1mat/flowdsl/pkg/adapters/file"
	"github.com/stevie1mat/flowdsl/pkg/adapters/memory"
	"github.com/stevie1mat/flowdsl/pkg/adapters/redis"
	"github.com/stevie1mat/flowdsl/pkg/catalog"
	"github.com/stevie1mat/flowdsl/pkg/domain"
	"github.com/stevie1mat/flowdsl/pkg/observability"
	"github.com/stevie1mat/flowdsl/pkg/persistence/middleware"
	"github.com/stevie1mat/flowdsl/pkg/ports"
)

// Backend is an opened workflow store plus the optional lock shared by replicas.
type Backend struct {
	Store  ports.WorkflowStore
	Locker ports.DistributedLocker
	close  func() error
}

// Close releases connections and file handles held by the store.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// NewLogger builds the process logger from configuration.
func NewLogger(cfg config.Config) *slog.Logger {
	return logging.New(logging.ParseLevel(cfg.Log.Level))
}

// NewCompiler creates a compiler with the configured cost table and logging hooks.
// When reg is non-nil and metrics are enabled, Prometheus collectors are registered on it.
func NewCompiler(cfg config.Config, logger *slog.Logger, reg prometheus.Registerer) (*flowdsl.Compiler, error) {
	hooks := []domain.Hooks{observability.LogHooks(logger)}

	if reg != nil && !cfg.Metrics.Disabled {
		m, err := observability.NewMetrics(cfg.Metrics.Namespace, reg)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		hooks = append(hooks, m.Hooks())
	}

	return flowdsl.New(
		flowdsl.WithLogger(logger),
		flowdsl.WithCostTable(cfg.Costs.Table()),
		flowdsl.WithHooks(observability.Combine(hooks...)),
	), nil
}

// OpenBackend opens the store selected by cfg.Backend and wraps it with the configured
// redaction and encryption middlewares.
func OpenBackend(cfg config.StoreConfig, logger *slog.Logger) (*Backend, error) {
	b, err := openBackend(cfg, logger)
	if err != nil {
		return nil, err
	}

	mws, err := storeMiddlewares(cfg)
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	if len(mws) > 0 {
		logger.Debug("Store middlewares enabled", "count", len(mws))
		b.Store = middleware.Chain(b.Store, mws...)
	}
	return b, nil
}

func storeMiddlewares(cfg config.StoreConfig) ([]middleware.Middleware, error) {
	var mws []middleware.Middleware
	if len(cfg.Redact) > 0 {
		pii, err := middleware.NewPIIMiddleware(cfg.Redact)
		if err != nil {
			return nil, err
		}
		mws = append(mws, pii)
	}

	active, fallback, err := cfg.Keys()
	if err != nil {
		return nil, err
	}
	if active != nil {
		enc, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey:    active,
			FallbackKeys: fallback,
		})
		if err != nil {
			return nil, err
		}
		mws = append(mws, enc)
	}
	return mws, nil
}

func openBackend(cfg config.StoreConfig, logger *slog.Logger) (*Backend, error) {
	switch cfg.Backend {
	case config.BackendMemory, "":
		return &Backend{Store: memory.NewStore()}, nil

	case config.BackendFile:
		return &Backend{Store: file.New(cfg.Path)}, nil

	case config.BackendBadger:
		store, err := badger.Open(cfg.Path, badger.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return &Backend{Store: store, close: store.Close}, nil

	case config.BackendRedis:
		opts := []redis.Option{redis.WithTTL(cfg.Redis.TTL)}
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)

		b := &Backend{Store: store, close: store.Close}
		if cfg.Redis.Lock {
			b.Locker = redis.NewLocker(store.Client(), cfg.Redis.Prefix)
		}
		logger.Debug("Using redis store", "addr", cfg.Redis.Addr, "lock", cfg.Redis.Lock)
		return b, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// NewCatalog wires a catalog manager over the backend.
func NewCatalog(b *Backend, c *flowdsl.Compiler, logger *slog.Logger) *catalog.Manager {
	opts := []catalog.Option{
		catalog.WithCompiler(c),
		catalog.WithLogger(logger),
	}
	if b.Locker != nil {
		opts = append(opts, catalog.WithLocker(b.Locker))
	}
	return catalog.NewManager(b.Store, opts...)
}
