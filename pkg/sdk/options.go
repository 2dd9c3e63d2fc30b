package regexboard

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/regexboard/internal/config"
	"github.com/kailas-cloud/regexboard/internal/usecase/matching"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

// Filler produces the text of a freshly seeded document.
type Filler interface {
	Sentences(n int) string
}

type clientConfig struct {
	storage config.StorageConfig

	matchTimeout    time.Duration
	fillerSentences int
	filler          Filler

	logger        *slog.Logger
	serviceLogger *zap.Logger
	metricsReg    prometheus.Registerer
}

func defaultConfig() *clientConfig {
	return &clientConfig{
		storage: config.StorageConfig{
			Driver:    config.DriverSQLite,
			KeyPrefix: "regexboard:",
		},
		matchTimeout: matching.DefaultTimeout,
	}
}

// WithMemory keeps all state in process memory. Nothing survives Close.
func WithMemory() Option {
	return optionFunc(func(c *clientConfig) {
		c.storage.Driver = config.DriverMemory
	})
}

// WithSQLite stores state in a SQLite file. An empty path uses
// $XDG_DATA_HOME/regexboard/store.db. This is the default.
func WithSQLite(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.storage.Driver = config.DriverSQLite
		c.storage.Path = path
	})
}

// WithRedis stores state in a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.storage.Driver = config.DriverRedis
		c.storage.Addrs = []string{addr}
		c.storage.Password = password
	})
}

// WithValkey stores state in a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.storage.Driver = config.DriverValkey
		c.storage.Addrs = []string{addr}
		c.storage.Password = password
	})
}

// WithKeyPrefix namespaces the storage keys. Default: "regexboard:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.storage.KeyPrefix = prefix
	})
}

// WithMatchTimeout bounds the evaluation of a single pattern.
// Zero disables the limit. Default: 250ms.
func WithMatchTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		if d < 0 {
			d = 0
		}
		c.matchTimeout = d
	})
}

// WithFillerSentences sets the sentence count of a newly seeded document.
// Default: 15.
func WithFillerSentences(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.fillerSentences = n
	})
}

// WithFiller replaces the lorem ipsum generator used to seed the document.
func WithFiller(f Filler) Option {
	return optionFunc(func(c *clientConfig) {
		c.filler = f
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithServiceLogger receives the internal service logs: pattern changes,
// document seeding and match timeouts. Default: discarded.
func WithServiceLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.serviceLogger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
