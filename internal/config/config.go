package config

import (
	"errors"
	"slices"
)

// Config is the top-level configuration struct for parsernode.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Output OutputConfig `mapstructure:"output"`
	Parse  ParseConfig  `mapstructure:"parse"`
	Log    LogConfig    `mapstructure:"log"`
}

// OutputConfig holds tree rendering settings.
type OutputConfig struct {
	Format    string `mapstructure:"format"`
	Color     bool   `mapstructure:"color"`
	Compact   bool   `mapstructure:"compact"`
	Positions bool   `mapstructure:"positions"`
}

// ParseConfig holds parsing limits.
type ParseConfig struct {
	MaxFileSize int `mapstructure:"max_file_size"`
	TimeoutMS   int `mapstructure:"timeout_ms"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Output formats accepted by output.format.
//
//nolint:gochecknoglobals // Static whitelist.
var outputFormats = []string{"sexp", "json", "yaml"}

// Log levels accepted by log.level.
//
//nolint:gochecknoglobals // Static whitelist.
var logLevels = []string{"debug", "info", "warn", "error"}

// Sentinel errors for configuration validation.
var (
	// ErrInvalidOutputFormat indicates an unknown output format.
	ErrInvalidOutputFormat = errors.New("output.format must be one of sexp, json, yaml")
	// ErrInvalidMaxFileSize indicates the max file size is negative.
	ErrInvalidMaxFileSize = errors.New("parse.max_file_size must be non-negative")
	// ErrInvalidTimeout indicates the parse timeout is negative.
	ErrInvalidTimeout = errors.New("parse.timeout_ms must be non-negative")
	// ErrInvalidLogLevel indicates an unknown log level.
	ErrInvalidLogLevel = errors.New("log.level must be one of debug, info, warn, error")
)

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	if c.Output.Format != "" && !slices.Contains(outputFormats, c.Output.Format) {
		return ErrInvalidOutputFormat
	}

	if c.Parse.MaxFileSize < 0 {
		return ErrInvalidMaxFileSize
	}

	if c.Parse.TimeoutMS < 0 {
		return ErrInvalidTimeout
	}

	if c.Log.Level != "" && !slices.Contains(logLevels, c.Log.Level) {
		return ErrInvalidLogLevel
	}

	return nil
}
