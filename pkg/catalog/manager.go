package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stevie1mat/flowdsl"
	"github.com/stevie1mat/flowdsl/internal/logging"
	"github.com/stevie1mat/flowdsl/pkg/domain"
	"github.com/stevie1mat/flowdsl/pkg/ports"
)

// DefaultName is given to definitions saved without a name.
const DefaultName = "Untitled Workflow"

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates access to stored workflows, ensuring safe concurrent writes.
// It uses reference counting to garbage collect unused locks.
type Manager struct {
	store    ports.WorkflowStore
	compiler *flowdsl.Compiler

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker  ports.DistributedLocker
	lockTTL time.Duration
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL bounds how long a crashed replica can hold a distributed lock.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithCompiler sets the compiler used for validation and compilation.
func WithCompiler(c *flowdsl.Compiler) Option {
	return func(m *Manager) {
		m.compiler = c
	}
}

// WithClock overrides the time source for CreatedAt/UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a Manager on top of the given store.
func NewManager(store ports.WorkflowStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: 30 * time.Second,
		logger:  logging.NewNop(),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.compiler == nil {
		m.compiler = flowdsl.New(flowdsl.WithLogger(m.logger))
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(id) after unlocking.
func (m *Manager) acquire(id string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		entry = &lockEntry{}
		m.locks[id] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, id)
	}
}

// WithLock executes fn while holding the lock for the workflow id.
func (m *Manager) WithLock(ctx context.Context, id string, fn func(context.Context) error) error {
	entry := m.acquire(id)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(id)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, id, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"workflow_id", id,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

// Create stores a new definition under a fresh id and returns it with its validation result.
// Any id set on def is ignored.
func (m *Manager) Create(ctx context.Context, def domain.Definition) (*domain.Definition, domain.ValidationResult, error) {
	def = def.Clone()
	def.ID = m.newID()
	def.Name = normalizeName(def.Name)
	def.CreatedAt = m.now().UTC()
	def.UpdatedAt = def.CreatedAt

	res := m.compiler.Validate(ctx, def.Graph())

	err := m.WithLock(ctx, def.ID, func(ctx context.Context) error {
		return m.store.Save(ctx, &def)
	})
	if err != nil {
		return nil, res, fmt.Errorf("failed to create workflow: %w", err)
	}

	m.logger.Info("workflow created", "workflow_id", def.ID, "valid", res.IsValid)
	return &def, res, nil
}

// Update replaces the stored definition. The id and creation time are preserved.
// Returns domain.ErrWorkflowNotFound if id is unknown.
func (m *Manager) Update(ctx context.Context, id string, def domain.Definition) (*domain.Definition, domain.ValidationResult, error) {
	def = def.Clone()
	def.ID = id
	def.Name = normalizeName(def.Name)

	res := m.compiler.Validate(ctx, def.Graph())

	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		current, err := m.store.Load(ctx, id)
		if err != nil {
			return err
		}

		def.CreatedAt = current.CreatedAt
		def.UpdatedAt = m.now().UTC()
		return m.store.Save(ctx, &def)
	})
	if err != nil {
		return nil, res, fmt.Errorf("failed to update workflow %s: %w", id, err)
	}

	m.logger.Info("workflow updated", "workflow_id", id, "valid", res.IsValid)
	return &def, res, nil
}

// Get loads a definition.
func (m *Manager) Get(ctx context.Context, id string) (*domain.Definition, error) {
	return m.store.Load(ctx, id)
}

// Delete removes a definition. Returns domain.ErrWorkflowNotFound if id is unknown.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		if _, err := m.store.Load(ctx, id); err != nil {
			return err
		}
		return m.store.Delete(ctx, id)
	})
}

// List returns all stored definitions, most recently updated first.
// Definitions deleted while listing are skipped.
func (m *Manager) List(ctx context.Context) ([]*domain.Definition, error) {
	ids, err := m.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflows: %w", err)
	}

	defs := make([]*domain.Definition, 0, len(ids))
	for _, id := range ids {
		def, err := m.store.Load(ctx, id)
		if errors.Is(err, domain.ErrWorkflowNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}

	sort.SliceStable(defs, func(i, j int) bool {
		if !defs[i].UpdatedAt.Equal(defs[j].UpdatedAt) {
			return defs[i].UpdatedAt.After(defs[j].UpdatedAt)
		}
		return defs[i].ID < defs[j].ID
	})
	return defs, nil
}

// Compile loads a definition and runs the full pipeline on its graph.
// Invalid graphs fail with an error wrapping domain.ErrInvalidGraph; the returned
// Compilation still carries the validation result.
func (m *Manager) Compile(ctx context.Context, id string) (*domain.Definition, *domain.Compilation, error) {
	def, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	out, err := m.compiler.Compile(ctx, def.Graph())
	return def, out, err
}

// Store returns the underlying workflow store.
func (m *Manager) Store() ports.WorkflowStore {
	return m.store
}

func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultName
	}
	return name
}
