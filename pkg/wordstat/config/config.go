// Package config loads wordstat settings from YAML with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/wordstat/pkg/wordstat/hashtable"
	"github.com/cognicore/wordstat/pkg/wordstat/internalerr"
	"github.com/cognicore/wordstat/pkg/wordstat/stats"
)

// Config is the top-level configuration.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Report  ReportConfig  `yaml:"report"`
	Logging LoggingConfig `yaml:"logging"`
}

// EngineConfig sizes the hash tables behind the statistics engine.
type EngineConfig struct {
	FrequencyCapacity int    `yaml:"frequencyCapacity"`
	RankCapacity      int    `yaml:"rankCapacity"`
	Growth            string `yaml:"growth"`
}

// ReportConfig sets the list lengths of a full report.
type ReportConfig struct {
	TopK    int `yaml:"topK"`
	BottomK int `yaml:"bottomK"`
}

// LoggingConfig controls log level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			FrequencyCapacity: stats.DefaultFrequencyCapacity,
			RankCapacity:      stats.DefaultRankCapacity,
			Growth:            hashtable.GrowAppend.String(),
		},
		Report: ReportConfig{
			TopK:    10,
			BottomK: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML file (if path is non-empty) over the defaults, applies
// WORDSTAT_* environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("WORDSTAT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("WORDSTAT_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("WORDSTAT_FREQUENCY_CAPACITY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("WORDSTAT_FREQUENCY_CAPACITY=%q: %w", v, internalerr.ErrInvalidConfig)
		}
		cfg.Engine.FrequencyCapacity = n
	}
	if v := os.Getenv("WORDSTAT_GROWTH"); v != "" {
		cfg.Engine.Growth = v
	}
	return nil
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	if c.Engine.FrequencyCapacity <= 0 {
		return fmt.Errorf("engine.frequencyCapacity must be positive, got %d: %w",
			c.Engine.FrequencyCapacity, internalerr.ErrInvalidConfig)
	}
	if c.Engine.RankCapacity <= 0 {
		return fmt.Errorf("engine.rankCapacity must be positive, got %d: %w",
			c.Engine.RankCapacity, internalerr.ErrInvalidConfig)
	}
	if _, err := hashtable.ParseGrowth(c.Engine.Growth); err != nil {
		return fmt.Errorf("engine.growth: %w", err)
	}
	if c.Report.TopK < 0 || c.Report.BottomK < 0 {
		return fmt.Errorf("report k values must not be negative: %w", internalerr.ErrInvalidConfig)
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format %q: %w", c.Logging.Format, internalerr.ErrInvalidConfig)
	}
	return nil
}

// StatOptions translates the engine section into stats options.
func (c *Config) StatOptions() ([]stats.Option, error) {
	growth, err := hashtable.ParseGrowth(c.Engine.Growth)
	if err != nil {
		return nil, err
	}
	return []stats.Option{
		stats.WithFrequencyCapacity(c.Engine.FrequencyCapacity),
		stats.WithRankCapacity(c.Engine.RankCapacity),
		stats.WithGrowth(growth),
	}, nil
}
