package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".parsernode"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for parsernode settings.
const envPrefix = "PARSERNODE"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// Default configuration values.
const (
	DefaultOutputFormat    = "sexp"
	DefaultOutputColor     = true
	DefaultOutputCompact   = false
	DefaultOutputPositions = false
	DefaultParseMaxSize    = 10 * 1024 * 1024
	DefaultParseTimeoutMS  = 5000
	DefaultLogLevel        = "warn"
)

// LoadConfig loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("output.format", DefaultOutputFormat)
	viperCfg.SetDefault("output.color", DefaultOutputColor)
	viperCfg.SetDefault("output.compact", DefaultOutputCompact)
	viperCfg.SetDefault("output.positions", DefaultOutputPositions)

	viperCfg.SetDefault("parse.max_file_size", DefaultParseMaxSize)
	viperCfg.SetDefault("parse.timeout_ms", DefaultParseTimeoutMS)

	viperCfg.SetDefault("log.level", DefaultLogLevel)
}
