// Package config provides configuration loading for amida.
//
// Configuration is read from a single YAML file named by the --config flag
// or the AMIDA_CONFIG environment variable. Without either, Default() is
// used as is. Fields missing from the file keep their default values;
// unknown fields are rejected so typos surface immediately.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/amida/internal/ladder"
)

// EnvConfigPath names the environment variable holding the config file path.
const EnvConfigPath = "AMIDA_CONFIG"

// Config is the top-level configuration.
type Config struct {
	// Generator configures ladder generation defaults.
	Generator GeneratorConfig `yaml:"generator"`

	// Limits bounds what callers may request.
	Limits LimitsConfig `yaml:"limits"`

	// Server configures the HTTP transport.
	Server ServerConfig `yaml:"server"`

	// Log configures structured logging.
	Log LogConfig `yaml:"log"`
}

// GeneratorConfig holds the generator policy and request defaults.
type GeneratorConfig struct {
	// LevelsPerColumn sets levels = columns * LevelsPerColumn when a request
	// leaves levels unset. Default: 3
	LevelsPerColumn int `yaml:"levels_per_column"`

	// StartGap keeps the top StartGap levels free of rungs. Default: 0
	StartGap int `yaml:"start_gap"`

	// AutoDensity derives the density from the level count when a caller
	// does not send one, aiming for RungsPerPair rungs between neighbouring
	// columns. Default: true
	AutoDensity bool `yaml:"auto_density"`

	// RungsPerPair is the target of AutoDensity. Default: 4
	RungsPerPair float64 `yaml:"rungs_per_pair"`

	// Density is the rung density used when a caller does not send one and
	// AutoDensity is off. Default: 0.55
	Density float64 `yaml:"density"`

	// WinLabel is the default winning result. Default: あたり
	WinLabel string `yaml:"win_label"`

	// LoseLabel is the default losing result. Default: はずれ
	LoseLabel string `yaml:"lose_label"`
}

// LimitsConfig bounds request sizes at the transport boundary.
type LimitsConfig struct {
	// MaxColumns is the largest column count accepted. Default: 50
	MaxColumns int `yaml:"max_columns"`

	// MaxLevels is the largest level count accepted. Default: 150
	MaxLevels int `yaml:"max_levels"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	// Addr is the listen address. Default: :8080
	Addr string `yaml:"addr"`

	// ShutdownTimeout bounds graceful shutdown. Default: 10s
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	// Level is one of debug, info, warn, error. Default: info
	Level string `yaml:"level"`

	// Format is text or json. Default: text
	Format string `yaml:"format"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Generator: GeneratorConfig{
			LevelsPerColumn: ladder.DefaultLevelsPerColumn,
			StartGap:        0,
			AutoDensity:     true,
			RungsPerPair:    ladder.DefaultRungsPerPair,
			Density:         0.55,
			WinLabel:        ladder.DefaultWinLabel,
			LoseLabel:       ladder.DefaultLoseLabel,
		},
		Limits: LimitsConfig{
			MaxColumns: 50,
			MaxLevels:  150,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: "10s",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the configuration from path. An empty path falls back to
// AMIDA_CONFIG, and when that is unset too the defaults are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of Default() and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate rejects values that make no sense.
func (c *Config) Validate() error {
	g := c.Generator
	if g.LevelsPerColumn < 1 {
		return fmt.Errorf("generator.levels_per_column must be at least 1, got %d", g.LevelsPerColumn)
	}
	if g.StartGap < 0 {
		return fmt.Errorf("generator.start_gap must not be negative, got %d", g.StartGap)
	}
	if math.IsNaN(g.RungsPerPair) || g.RungsPerPair <= 0 {
		return fmt.Errorf("generator.rungs_per_pair must be positive, got %v", g.RungsPerPair)
	}
	if math.IsNaN(g.Density) || g.Density < 0 || g.Density > 1 {
		return fmt.Errorf("generator.density must be within [0, 1], got %v", g.Density)
	}
	if strings.TrimSpace(g.WinLabel) == "" || strings.TrimSpace(g.LoseLabel) == "" {
		return fmt.Errorf("generator.win_label and generator.lose_label must not be empty")
	}
	if g.WinLabel == g.LoseLabel {
		return fmt.Errorf("generator.win_label and generator.lose_label must differ")
	}

	if c.Limits.MaxColumns < 2 {
		return fmt.Errorf("limits.max_columns must be at least 2, got %d", c.Limits.MaxColumns)
	}
	if c.Limits.MaxLevels < 1 {
		return fmt.Errorf("limits.max_levels must be at least 1, got %d", c.Limits.MaxLevels)
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if _, err := c.ShutdownTimeout(); err != nil {
		return err
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// Policy returns the generator policy described by the configuration.
func (c *Config) Policy() ladder.Policy {
	return ladder.Policy{
		LevelsPerColumn: c.Generator.LevelsPerColumn,
		StartGap:        c.Generator.StartGap,
		RungsPerPair:    c.Generator.RungsPerPair,
		WinLabel:        c.Generator.WinLabel,
		LoseLabel:       c.Generator.LoseLabel,
	}
}

// DensityFor completes a generation request whose caller sent no density:
// it selects automatic density or the configured fixed one.
func (c *Config) DensityFor(req *ladder.GenerateRequest) {
	if c.Generator.AutoDensity {
		req.AutoDensity = true
		return
	}
	req.RungDensity = c.Generator.Density
}

// ShutdownTimeout parses Server.ShutdownTimeout.
func (c *Config) ShutdownTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid server.shutdown_timeout %q: %w", c.Server.ShutdownTimeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("server.shutdown_timeout must be positive, got %s", d)
	}
	return d, nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log.level %q", c.Log.Level)
	}
}
