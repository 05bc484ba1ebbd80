package cliconfig

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML
// friendly.
type FileConfig struct {
	ListenAddr      string `toml:"listen_addr"`
	ReadTimeout     string `toml:"read_timeout"`
	WriteTimeout    string `toml:"write_timeout"`
	ShutdownTimeout string `toml:"shutdown_timeout"`

	DefaultBackend       string  `toml:"default_backend"`
	SolveTimeLimit       float64 `toml:"solve_time_limit"`
	GapTolerance         float64 `toml:"gap_tolerance"`
	Verbose              *bool   `toml:"verbose"`
	IntegerWarnThreshold int     `toml:"integer_warn_threshold"`
	MaxBodyBytes         int64   `toml:"max_body_bytes"`

	LogLevel string `toml:"log_level"`
	Watch    *bool  `toml:"watch"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path,
// ~/.solverd/config.toml, if the user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".solverd", "config.toml")
	}
	return ""
}

// FileExists reports whether the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("listen", fc.ListenAddr, &cfg.ListenAddr)
	s.setString("backend", fc.DefaultBackend, &cfg.DefaultBackend)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setDuration("read-timeout", fc.ReadTimeout, &cfg.ReadTimeout); err != nil {
		return err
	}
	if err := s.setDuration("write-timeout", fc.WriteTimeout, &cfg.WriteTimeout); err != nil {
		return err
	}
	if err := s.setDuration("shutdown-timeout", fc.ShutdownTimeout, &cfg.ShutdownTimeout); err != nil {
		return err
	}

	s.setFloat64("solve-time-limit", fc.SolveTimeLimit, &cfg.SolveTimeLimit)
	s.setFloat64("gap-tolerance", fc.GapTolerance, &cfg.GapTolerance)
	s.setInt("integer-warn-threshold", fc.IntegerWarnThreshold, &cfg.IntegerWarnThreshold)
	s.setInt64("max-body-bytes", fc.MaxBodyBytes, &cfg.MaxBodyBytes)

	s.setBool("verbose", fc.Verbose, &cfg.Verbose)
	s.setBool("watch", fc.Watch, &cfg.Watch)

	return nil
}

// ApplyEnvConfig applies configuration from environment variables
// (SOLVERD_*). It respects flags that have been explicitly set.
// Returns an error if a variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("listen", os.Getenv("SOLVERD_LISTEN_ADDR"), &cfg.ListenAddr)
	s.setString("backend", os.Getenv("SOLVERD_DEFAULT_BACKEND"), &cfg.DefaultBackend)
	s.setString("log-level", os.Getenv("SOLVERD_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setDuration("read-timeout", os.Getenv("SOLVERD_READ_TIMEOUT"), &cfg.ReadTimeout); err != nil {
		return err
	}
	if err := s.setDuration("write-timeout", os.Getenv("SOLVERD_WRITE_TIMEOUT"), &cfg.WriteTimeout); err != nil {
		return err
	}
	if err := s.setDuration("shutdown-timeout", os.Getenv("SOLVERD_SHUTDOWN_TIMEOUT"), &cfg.ShutdownTimeout); err != nil {
		return err
	}

	if err := s.setFloat64FromString("solve-time-limit", os.Getenv("SOLVERD_SOLVE_TIME_LIMIT"), &cfg.SolveTimeLimit); err != nil {
		return err
	}
	if err := s.setFloat64FromString("gap-tolerance", os.Getenv("SOLVERD_GAP_TOLERANCE"), &cfg.GapTolerance); err != nil {
		return err
	}
	if err := s.setIntFromString("integer-warn-threshold", os.Getenv("SOLVERD_INTEGER_WARN_THRESHOLD"), &cfg.IntegerWarnThreshold); err != nil {
		return err
	}
	if err := s.setInt64FromString("max-body-bytes", os.Getenv("SOLVERD_MAX_BODY_BYTES"), &cfg.MaxBodyBytes); err != nil {
		return err
	}

	s.setBoolFromString("verbose", os.Getenv("SOLVERD_VERBOSE"), &cfg.Verbose)
	s.setBoolFromString("watch", os.Getenv("SOLVERD_WATCH"), &cfg.Watch)

	return nil
}

// configSetter applies configuration values while respecting flag
// precedence: a value is only applied if the corresponding flag has not
// been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setInt64(flag string, value int64, dst *int64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setFloat64(flag string, value float64, dst *float64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setFloat64FromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return err
	}
	*dst = f
	return nil
}

func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}

func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

func (s *configSetter) setInt64FromString(flag, value string, dst *int64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	if b, err := strconv.ParseBool(value); err == nil {
		*dst = b
	}
}
