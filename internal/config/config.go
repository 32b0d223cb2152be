// Package config loads flowdsl settings from an optional YAML file, defaults and
// FLOWDSL_* environment variables, in increasing order of precedence. Command line flags
// are applied on top by the CLI.
package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/stevie1mat/flowdsl/pkg/domain"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no explicit file is given and it exists.
const DefaultPath = "flowdsl.yaml"

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendBadger = "badger"
)

// MCP transports.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

type Config struct {
	Log     LogConfig     `yaml:"log"`
	HTTP    HTTPConfig    `yaml:"http"`
	Store   StoreConfig   `yaml:"store"`
	Metrics MetricsConfig `yaml:"metrics"`
	MCP     MCPConfig     `yaml:"mcp"`
	Costs   CostConfig    `yaml:"costs"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

type StoreConfig struct {
	Backend string      `yaml:"backend"`
	Path    string      `yaml:"path"`
	Redis   RedisConfig `yaml:"redis"`
	// EncryptionKey is a base64 AES-256 key. When set, definitions are encrypted at rest.
	EncryptionKey string   `yaml:"encryptionKey"`
	FallbackKeys  []string `yaml:"fallbackKeys"`
	// Redact lists patterns for input variables whose default values are masked on save.
	Redact []string `yaml:"redact"`
}

// Keys decodes the encryption keys. Both results are nil when encryption is off.
func (c StoreConfig) Keys() (active []byte, fallback [][]byte, err error) {
	if c.EncryptionKey == "" {
		return nil, nil, nil
	}
	active, err = decodeKey(c.EncryptionKey)
	if err != nil {
		return nil, nil, fmt.Errorf("encryptionKey: %w", err)
	}
	for i, k := range c.FallbackKeys {
		key, err := decodeKey(k)
		if err != nil {
			return nil, nil, fmt.Errorf("fallbackKeys[%d]: %w", i, err)
		}
		fallback = append(fallback, key)
	}
	return active, fallback, nil
}

func decodeKey(s string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("key must be 32 bytes, got %d", len(key))
	}
	return key, nil
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
	// Lock enables the distributed write lock for multi-replica deployments.
	Lock bool `yaml:"lock"`
}

type MetricsConfig struct {
	Disabled  bool   `yaml:"disabled"`
	Namespace string `yaml:"namespace"`
}

type MCPConfig struct {
	Transport string `yaml:"transport"`
	Addr      string `yaml:"addr"`
	BaseURL   string `yaml:"baseURL"`
}

// CostConfig is the per-kind step duration used for time estimates.
type CostConfig struct {
	Input  time.Duration `yaml:"input"`
	Action time.Duration `yaml:"action"`
	Output time.Duration `yaml:"output"`
}

// Table converts the costs to the planner's table.
func (c CostConfig) Table() domain.CostTable {
	return domain.CostTable{
		domain.KindInput:  c.Input,
		domain.KindAction: c.Action,
		domain.KindOutput: c.Output,
	}
}

// Default returns the built-in settings.
func Default() Config {
	costs := domain.DefaultCostTable()
	return Config{
		Log: LogConfig{Level: "info"},
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Store: StoreConfig{
			Backend: BackendMemory,
			Path:    ".flowdsl/workflows",
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "flowdsl:workflow:",
			},
		},
		Metrics: MetricsConfig{Namespace: "flowdsl"},
		MCP: MCPConfig{
			Transport: TransportStdio,
			Addr:      ":8081",
		},
		Costs: CostConfig{
			Input:  costs[domain.KindInput],
			Action: costs[domain.KindAction],
			Output: costs[domain.KindOutput],
		},
	}
}

// Load reads the YAML file at path (or DefaultPath when path is empty and the file exists),
// fills unset fields from Default and applies environment overrides.
func Load(path string) (Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	if err := mergo.Merge(&cfg, Default()); err != nil {
		return Config{}, fmt.Errorf("failed to apply config defaults: %w", err)
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

// Validate rejects unknown backends and transports, malformed keys and patterns.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory, BackendFile, BackendRedis, BackendBadger:
	default:
		return fmt.Errorf("unknown store backend %q (want memory, file, redis or badger)", c.Store.Backend)
	}
	switch c.MCP.Transport {
	case TransportStdio, TransportSSE:
	default:
		return fmt.Errorf("unknown mcp transport %q (want stdio or sse)", c.MCP.Transport)
	}
	if _, _, err := c.Store.Keys(); err != nil {
		return err
	}
	for _, p := range c.Store.Redact {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("invalid redact pattern %q: %w", p, err)
		}
	}
	for kind, d := range c.Costs.Table() {
		if d < 0 {
			return fmt.Errorf("negative cost for %s steps", kind)
		}
	}
	return nil
}

type lookupFunc func(string) (string, bool)

func applyEnv(cfg *Config, lookup lookupFunc) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}

	str("FLOWDSL_LOG_LEVEL", &cfg.Log.Level)
	str("FLOWDSL_HTTP_ADDR", &cfg.HTTP.Addr)
	str("FLOWDSL_STORE_BACKEND", &cfg.Store.Backend)
	str("FLOWDSL_STORE_PATH", &cfg.Store.Path)
	str("FLOWDSL_STORE_ENCRYPTION_KEY", &cfg.Store.EncryptionKey)
	str("FLOWDSL_REDIS_ADDR", &cfg.Store.Redis.Addr)
	str("FLOWDSL_REDIS_PASSWORD", &cfg.Store.Redis.Password)
	str("FLOWDSL_REDIS_PREFIX", &cfg.Store.Redis.Prefix)
	str("FLOWDSL_MCP_TRANSPORT", &cfg.MCP.Transport)
	str("FLOWDSL_MCP_ADDR", &cfg.MCP.Addr)
	str("FLOWDSL_MCP_BASE_URL", &cfg.MCP.BaseURL)

	if v, ok := lookup("FLOWDSL_REDIS_DB"); ok && v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FLOWDSL_REDIS_DB: %w", err)
		}
		cfg.Store.Redis.DB = db
	}
	if v, ok := lookup("FLOWDSL_REDIS_LOCK"); ok && v != "" {
		lock, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("FLOWDSL_REDIS_LOCK: %w", err)
		}
		cfg.Store.Redis.Lock = lock
	}
	if v, ok := lookup("FLOWDSL_METRICS_DISABLED"); ok && v != "" {
		disabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("FLOWDSL_METRICS_DISABLED: %w", err)
		}
		cfg.Metrics.Disabled = disabled
	}

	cfg.Store.Backend = strings.ToLower(cfg.Store.Backend)
	cfg.MCP.Transport = strings.ToLower(cfg.MCP.Transport)
	return nil
}
