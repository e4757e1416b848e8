package app

import (
	"errors"
	"fmt"
)

// Config holds everything the entrypoint collected for an App instance.
// Zero values mean "not set": they leave job-file values or defaults alone.
type Config struct {
	ConfigPath  string // hcl file or directory
	ProgramPath string // overrides render.program

	Size       int
	Workers    int
	ChunkSize  int
	OutputPath string
	Format     string

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" && cfg.ProgramPath == "" {
		return nil, errors.New("either a program path or a config path is required")
	}
	if cfg.Size < 0 || cfg.Workers < 0 || cfg.ChunkSize < 0 {
		return nil, fmt.Errorf("size, workers and chunk size must not be negative")
	}
	if cfg.Format != "" && cfg.OutputPath == "" && cfg.ConfigPath != "" {
		return nil, errors.New("-format applies to -output; set the format in the job file's output block instead")
	}
	switch cfg.LogFormat {
	case "", "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.LogFormat)
	}
	switch cfg.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}
	return &cfg, nil
}
