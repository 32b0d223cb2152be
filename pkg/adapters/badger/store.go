package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/goccy/go-json"
	"github.com/stevie1mat/flowdsl/internal/logging"
	"github.com/stevie1mat/flowdsl/pkg/domain"
)

const keyPrefix = "workflow/"

// Store implements ports.WorkflowStore on an embedded Badger database.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// Option configures the Store.
type Option func(*config)

type config struct {
	inMemory   bool
	logger     *slog.Logger
	gcInterval time.Duration
}

// InMemory keeps all data in memory; path is ignored. Used by tests.
func InMemory() Option {
	return func(c *config) {
		c.inMemory = true
	}
}

// WithLogger routes Badger's internal logging through slog.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithGCInterval sets how often value-log garbage collection runs. Zero disables it.
func WithGCInterval(d time.Duration) Option {
	return func(c *config) {
		c.gcInterval = d
	}
}

// Open opens (or creates) the database at path.
func Open(path string, opts ...Option) (*Store, error) {
	cfg := config{
		logger:     logging.NewNop(),
		gcInterval: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	bopts := badger.DefaultOptions(path)
	if cfg.inMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	}
	bopts.Logger = &badgerLogger{logger: cfg.logger.With("component", "badger")}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("failed to open workflow database: %w", err)
	}

	s := &Store{
		db:     db,
		logger: cfg.logger,
		stop:   make(chan struct{}),
	}
	if cfg.gcInterval > 0 && !cfg.inMemory {
		s.wg.Add(1)
		go s.runGarbageCollection(cfg.gcInterval)
	}
	return s, nil
}

func key(id string) []byte {
	return []byte(keyPrefix + id)
}

// Save writes the definition in a single transaction.
func (s *Store) Save(ctx context.Context, def *domain.Definition) error {
	data, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("failed to marshal workflow: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(def.ID), data)
	})
	if err != nil {
		return fmt.Errorf("failed to save workflow %s: %w", def.ID, err)
	}
	return nil
}

// Load reads the definition.
func (s *Store) Load(ctx context.Context, id string) (*domain.Definition, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(id))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, domain.ErrWorkflowNotFound
		}
		return nil, fmt.Errorf("failed to load workflow %s: %w", id, err)
	}

	var def domain.Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to unmarshal workflow %s: %w", id, err)
	}
	return &def, nil
}

// Delete removes the definition.
func (s *Store) Delete(ctx context.Context, id string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key(id))
	})
	if err != nil {
		return fmt.Errorf("failed to delete workflow %s: %w", id, err)
	}
	return nil
}

// List walks the key space under the workflow prefix. Ids come back in key order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	ids := []string{}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			k := string(it.Item().KeyCopy(nil))
			ids = append(ids, strings.TrimPrefix(k, keyPrefix))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list workflows: %w", err)
	}
	return ids, nil
}

// Close stops garbage collection and closes the database.
func (s *Store) Close() error {
	s.stopOnce.Do(func() { close(s.stop) })
	s.wg.Wait()
	return s.db.Close()
}

func (s *Store) runGarbageCollection(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
		}

		lsm, vlog := s.db.Size()
		s.logger.Debug("running garbage collection", "lsm_size", lsm, "vlog_size", vlog)

		if err := s.db.RunValueLogGC(0.5); err != nil && !errors.Is(err, badger.ErrNoRewrite) {
			s.logger.Error("garbage collection failed", "err", err)
		}
	}
}

type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(f string, v ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(f, v...)))
}

func (l *badgerLogger) Warningf(f string, v ...interface{}) {
	l.logger.Warn(strings.TrimSpace(fmt.Sprintf(f, v...)))
}

func (l *badgerLogger) Infof(f string, v ...interface{}) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(f, v...)))
}

func (l *badgerLogger) Debugf(f string, v ...interface{}) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(f, v...)))
}
