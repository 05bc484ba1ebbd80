package cliconfig

import (
	"fmt"
	"time"

	"github.com/opt-labs/solverd/internal/domain"
)

// DefaultListenAddr is the default bind address for the solve API.
const DefaultListenAddr = ":9280"

// Config holds CLI configuration for solverd.
type Config struct {
	ListenAddr      string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	DefaultBackend       string
	SolveTimeLimit       float64 // seconds, <= 0 means no limit
	GapTolerance         float64 // relative MIP gap, <= 0 means engine default
	Verbose              bool
	IntegerWarnThreshold int
	MaxBodyBytes         int64

	LogLevel string
	Watch    bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		ListenAddr:      DefaultListenAddr,
		ReadTimeout:     30 * time.Second,
		// Long write timeout: a solve is blocking and CPU bound, and the
		// response cannot start until the engine returns.
		WriteTimeout:         10 * time.Minute,
		ShutdownTimeout:      10 * time.Second,
		DefaultBackend:       "auto",
		IntegerWarnThreshold: domain.DefaultIntegerWarnThreshold,
		MaxBodyBytes:         32 << 20, // 32MB
		LogLevel:             "info",
		Watch:                false,
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}

	if _, err := c.Backend(); err != nil {
		return err
	}

	if c.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive")
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout must be positive")
	}

	if c.IntegerWarnThreshold <= 0 {
		c.IntegerWarnThreshold = domain.DefaultIntegerWarnThreshold
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = 32 << 20
	}

	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}

	return nil
}

// Backend resolves the configured default backend name.
func (c *Config) Backend() (domain.Backend, error) {
	switch c.DefaultBackend {
	case "", "auto":
		return domain.BackendAuto, nil
	case "highs":
		return domain.BackendHiGHS, nil
	case "simplex":
		return domain.BackendSimplex, nil
	default:
		return domain.BackendAuto, fmt.Errorf("unknown backend %q (want auto, highs, or simplex)", c.DefaultBackend)
	}
}
