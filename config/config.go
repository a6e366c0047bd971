// Package config loads bridge and host settings from a YAML file and
// XMPBRIDGE_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the complete bridge configuration.
//
// Sources in order of precedence:
//  1. Environment variables (XMPBRIDGE_*)
//  2. Configuration file (YAML)
//  3. Default values
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Engine  EngineConfig  `mapstructure:"engine"`
	Host    HostConfig    `mapstructure:"host"`
}

// LoggingConfig controls the zap logger handed to the bridge packages.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`

	// Format is console or json.
	Format string `mapstructure:"format" validate:"required,oneof=console json"`

	// Output is stdout, stderr or a file path. Files are rotated.
	Output string `mapstructure:"output" validate:"required"`

	MaxSizeMB  int `mapstructure:"max_size_mb" validate:"gte=0"`
	MaxBackups int `mapstructure:"max_backups" validate:"gte=0"`
}

// EngineConfig selects the toolkit behind the bridge.
type EngineConfig struct {
	// Mode is toolkit (the registered engine) or inert (every operation
	// succeeds with empty results).
	Mode string `mapstructure:"mode" validate:"required,oneof=toolkit inert"`

	// ErrorCallbackLimit bounds engine notifications per file operation.
	ErrorCallbackLimit uint32 `mapstructure:"error_callback_limit" validate:"gt=0"`
}

// HostConfig shapes the WebAssembly host module.
type HostConfig struct {
	ModuleName     string `mapstructure:"module_name" validate:"required"`
	MaxStringBytes uint32 `mapstructure:"max_string_bytes" validate:"gt=0"`
	HeapPages      uint32 `mapstructure:"heap_pages" validate:"gt=0,lte=65536"`
}

// Load reads configuration from configPath (optional), the environment
// and defaults, then validates it.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// keys lists every setting so that environment variables bind even when
// no file mentions them.
var keys = []string{
	"logging.level",
	"logging.format",
	"logging.output",
	"logging.max_size_mb",
	"logging.max_backups",
	"engine.mode",
	"engine.error_callback_limit",
	"host.module_name",
	"host.max_string_bytes",
	"host.heap_pages",
}

func setupViper(v *viper.Viper, configPath string) {
	// Example: XMPBRIDGE_LOGGING_LEVEL=debug
	v.SetEnvPrefix("XMPBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}
	v.AddConfigPath(".")
	v.SetConfigName("xmpbridge")
	v.SetConfigType("yaml")
}

func readConfigFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}
