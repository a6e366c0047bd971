package bridge

import (
	"sync"

	"github.com/wippyai/xmp-bridge/engine"
	"github.com/wippyai/xmp-bridge/engine/inert"
	"github.com/wippyai/xmp-bridge/errors"
	"github.com/wippyai/xmp-bridge/resource"
)

// DefaultCallbackLimit caps error notifications per file operation.
const DefaultCallbackLimit = 1

// Bridge is one boundary instance: an engine, its initialization gate and
// the handle table for everything handed out to callers.
//
// Handles are single-writer. Calls on distinct handles may run
// concurrently.
type Bridge struct {
	toolkit       engine.Toolkit
	gate          *Gate
	table         *resource.Table
	live          *resource.Counter
	callbackLimit uint32
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithCallbackLimit sets how many error notifications the engine may
// deliver per file operation.
func WithCallbackLimit(n uint32) Option {
	return func(b *Bridge) {
		b.callbackLimit = n
	}
}

// WithObserver subscribes o to handle lifecycle events.
func WithObserver(o resource.Observer) Option {
	return func(b *Bridge) {
		b.table.Subscribe(o)
	}
}

// New creates a Bridge over tk. A nil tk yields a bridge whose gate
// always fails, so every operation reports EngineUnavailable.
func New(tk engine.Toolkit, opts ...Option) *Bridge {
	b := &Bridge{
		toolkit:       tk,
		table:         resource.NewTable(),
		live:          resource.NewCounter(),
		callbackLimit: DefaultCallbackLimit,
	}
	b.table.Subscribe(b.live)

	var setup func() error
	if tk != nil {
		setup = tk.Initialize
	}
	b.gate = NewGate(setup)

	for _, opt := range opts {
		opt(b)
	}
	return b
}

var (
	defaultMu      sync.Mutex
	defaultToolkit engine.Toolkit
	defaultBridge  *Bridge
	defaultOnce    sync.Once
)

// Register installs the toolkit used by Default.
// It must be called before the first call to Default; later calls have no
// effect on the default instance.
func Register(tk engine.Toolkit) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultToolkit = tk
}

// Default returns the process-wide Bridge.
func Default() *Bridge {
	defaultOnce.Do(func() {
		defaultMu.Lock()
		tk := defaultToolkit
		defaultMu.Unlock()
		if Inert {
			tk = inert.New()
		}
		defaultBridge = New(tk)
	})
	return defaultBridge
}

// Initialize runs the gate and reports whether the engine is usable.
func (b *Bridge) Initialize() bool {
	return b.gate.Ensure()
}

// State returns the gate state without triggering initialization.
func (b *Bridge) State() InitState {
	return b.gate.State()
}

// InitErr returns why initialization failed, or nil.
func (b *Bridge) InitErr() error {
	return b.gate.Err()
}

// Live returns the number of live handles of kind.
func (b *Bridge) Live(kind resource.Kind) int {
	return b.live.Live(kind)
}

// LiveHandles returns the number of live handles of every kind.
func (b *Bridge) LiveHandles() int {
	return b.live.Total()
}

// Subscribe adds an observer for handle lifecycle events.
func (b *Bridge) Subscribe(o resource.Observer) {
	b.table.Subscribe(o)
}

func (b *Bridge) insert(kind resource.Kind, v any) (resource.Handle, error) {
	h := b.table.Insert(kind, v)
	if h == 0 {
		return 0, errors.New(errors.PhaseHandle, errors.KindAllocation).
			Detail("no %s handle available", kind).
			Build()
	}
	return h, nil
}
