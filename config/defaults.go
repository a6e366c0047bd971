package config

import (
	"strings"

	"github.com/wippyai/xmp-bridge/bridge"
	"github.com/wippyai/xmp-bridge/wasmhost"
)

// ApplyDefaults fills zero fields. Explicit values are kept.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyEngineDefaults(&cfg.Engine)
	applyHostDefaults(&cfg.Host)
}

func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "warn"
	}
	cfg.Level = strings.ToLower(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "console"
	}
	if cfg.Output == "" {
		cfg.Output = "stderr"
	}
	if cfg.MaxSizeMB == 0 {
		cfg.MaxSizeMB = 64
	}
	if cfg.MaxBackups == 0 {
		cfg.MaxBackups = 3
	}
}

func applyEngineDefaults(cfg *EngineConfig) {
	if cfg.Mode == "" {
		cfg.Mode = ModeToolkit
		if bridge.Inert {
			cfg.Mode = ModeInert
		}
	}
	if cfg.ErrorCallbackLimit == 0 {
		cfg.ErrorCallbackLimit = bridge.DefaultCallbackLimit
	}
}

func applyHostDefaults(cfg *HostConfig) {
	if cfg.ModuleName == "" {
		cfg.ModuleName = wasmhost.DefaultModuleName
	}
	if cfg.MaxStringBytes == 0 {
		cfg.MaxStringBytes = wasmhost.DefaultMaxStringBytes
	}
	if cfg.HeapPages == 0 {
		cfg.HeapPages = wasmhost.DefaultHeapPages
	}
}
