package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/trapdoorsec/rinzler/internal/build"
)

// Config carries the scan settings shared by the crawl and fuzz drivers.
type Config struct {
	// Number of concurrent worker goroutines.
	workers int
	// Maximum number of hyperlink hops from a seed URL.
	maxDepth int
	// Total deadline of a single HTTP request.
	timeout time.Duration
	// Bounded redirect following.
	redirectLimit int
	// User agent sent on every request.
	userAgent string
	// Store file location.
	storePath string
	// Wordlist file location for fuzzing.
	wordlistPath string
	// Use HEAD instead of GET while fuzzing.
	useHeadRequests bool
}

const (
	defaultWorkers       = 10
	defaultMaxDepth      = 3
	defaultTimeout       = 10 * time.Second
	defaultRedirectLimit = 5
)

// DefaultConfigDir returns ~/.config/rinzler.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".rinzler")
	}
	return filepath.Join(home, ".config", "rinzler")
}

// DefaultStorePath returns ~/.config/rinzler/rinzler.db.
func DefaultStorePath() string {
	return filepath.Join(DefaultConfigDir(), "rinzler.db")
}

// DefaultWordlistPath returns ~/.config/rinzler/wordlists/default.txt.
func DefaultWordlistPath() string {
	return filepath.Join(DefaultConfigDir(), "wordlists", "default.txt")
}

type ConfigBuilder struct {
	cfg Config
}

// WithDefault starts a builder carrying the documented defaults.
func WithDefault() *ConfigBuilder {
	return &ConfigBuilder{cfg: Config{
		workers:       defaultWorkers,
		maxDepth:      defaultMaxDepth,
		timeout:       defaultTimeout,
		redirectLimit: defaultRedirectLimit,
		userAgent:     build.UserAgent(),
		storePath:     DefaultStorePath(),
		wordlistPath:  DefaultWordlistPath(),
	}}
}

func (b *ConfigBuilder) WithWorkers(workers int) *ConfigBuilder {
	b.cfg.workers = workers
	return b
}

func (b *ConfigBuilder) WithMaxDepth(depth int) *ConfigBuilder {
	b.cfg.maxDepth = depth
	return b
}

func (b *ConfigBuilder) WithTimeout(timeout time.Duration) *ConfigBuilder {
	b.cfg.timeout = timeout
	return b
}

func (b *ConfigBuilder) WithRedirectLimit(limit int) *ConfigBuilder {
	b.cfg.redirectLimit = limit
	return b
}

func (b *ConfigBuilder) WithUserAgent(userAgent string) *ConfigBuilder {
	b.cfg.userAgent = userAgent
	return b
}

func (b *ConfigBuilder) WithStorePath(path string) *ConfigBuilder {
	b.cfg.storePath = path
	return b
}

func (b *ConfigBuilder) WithWordlistPath(path string) *ConfigBuilder {
	b.cfg.wordlistPath = path
	return b
}

func (b *ConfigBuilder) WithHeadRequests(useHead bool) *ConfigBuilder {
	b.cfg.useHeadRequests = useHead
	return b
}

func (b *ConfigBuilder) Build() (Config, error) {
	if b.cfg.workers < 1 {
		return Config{}, fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, b.cfg.workers)
	}
	if b.cfg.maxDepth < 1 {
		return Config{}, fmt.Errorf("%w: max depth must be positive, got %d", ErrInvalidConfig, b.cfg.maxDepth)
	}
	if b.cfg.timeout <= 0 {
		return Config{}, fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	return b.cfg, nil
}

func (c Config) Workers() int {
	return c.workers
}

func (c Config) MaxDepth() int {
	return c.maxDepth
}

func (c Config) Timeout() time.Duration {
	return c.timeout
}

func (c Config) RedirectLimit() int {
	return c.redirectLimit
}

func (c Config) UserAgent() string {
	return c.userAgent
}

func (c Config) StorePath() string {
	return c.storePath
}

func (c Config) WordlistPath() string {
	return c.wordlistPath
}

func (c Config) UseHeadRequests() bool {
	return c.useHeadRequests
}
