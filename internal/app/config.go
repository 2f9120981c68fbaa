package app

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds everything an App instance needs to run a pipeline. Defaults
// come from the environment; the CLI layer overrides them with flags.
type Config struct {
	// SeedPath points at a .hcl file or a directory of .hcl files holding
	// the constants and gate blocks.
	SeedPath string `env:"PRINCIPIA_SEED_PATH"`
	// OutputDir receives the registry snapshot and the gate ledger.
	OutputDir string `env:"PRINCIPIA_OUTPUT_DIR" envDefault:"out"`

	LogFormat string `env:"PRINCIPIA_LOG_FORMAT" envDefault:"text"`
	LogLevel  string `env:"PRINCIPIA_LOG_LEVEL" envDefault:"info"`

	// SkipGates runs the pipeline without evaluating the gate ledger.
	SkipGates bool `env:"PRINCIPIA_SKIP_GATES"`
}

// FromEnv returns a Config populated from environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// NewConfig validates the assembled configuration.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.SeedPath == "" {
		return nil, errors.New("SeedPath is a required configuration field and cannot be empty")
	}
	if cfg.OutputDir == "" {
		return nil, errors.New("OutputDir cannot be empty")
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}
	return &cfg, nil
}
