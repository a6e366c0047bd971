package config

import (
	"go.uber.org/zap"

	"github.com/wippyai/xmp-bridge/bridge"
	"github.com/wippyai/xmp-bridge/engine"
	"github.com/wippyai/xmp-bridge/engine/inert"
	"github.com/wippyai/xmp-bridge/wasmhost"
)

// Engine modes.
const (
	ModeToolkit = "toolkit"
	ModeInert   = "inert"
)

// InstallLogger hands named children of l to the bridge and host
// packages. Call it before creating any bridge.
func InstallLogger(l *zap.Logger) {
	bridge.SetLogger(l.Named("bridge"))
	wasmhost.SetLogger(l.Named("wasmhost"))
}

// Toolkit returns the engine cfg selects: tk in toolkit mode, the no-op
// engine in inert mode.
func (cfg *Config) Toolkit(tk engine.Toolkit) engine.Toolkit {
	if cfg.Engine.Mode == ModeInert {
		return inert.New()
	}
	return tk
}

// NewBridge creates a bridge over the toolkit cfg selects.
func (cfg *Config) NewBridge(tk engine.Toolkit, opts ...bridge.Option) *bridge.Bridge {
	opts = append([]bridge.Option{bridge.WithCallbackLimit(cfg.Engine.ErrorCallbackLimit)}, opts...)
	return bridge.New(cfg.Toolkit(tk), opts...)
}

// NewHost creates a WebAssembly host for b shaped by cfg.
func (cfg *Config) NewHost(b *bridge.Bridge) *wasmhost.Host {
	return wasmhost.New(b,
		wasmhost.WithModuleName(cfg.Host.ModuleName),
		wasmhost.WithMaxStringBytes(cfg.Host.MaxStringBytes),
		wasmhost.WithHeapPages(cfg.Host.HeapPages),
	)
}
