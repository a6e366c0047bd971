package bridge

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/xmp-bridge/errors"
)

// InitState is the cached outcome of the initialization gate.
type InitState int32

const (
	StateUninitialized InitState = iota
	StateSucceeded
	StateFailed
)

func (s InitState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Gate runs a setup routine exactly once and caches whether it succeeded.
//
// Concurrent first callers block until the single run completes; every
// later caller reads the cached state. A failed setup is never retried.
type Gate struct {
	setup func() error
	err   error
	once  sync.Once
	state atomic.Int32
}

// NewGate creates a gate around setup. A nil setup always fails.
func NewGate(setup func() error) *Gate {
	return &Gate{setup: setup}
}

// Ensure runs setup on first use and reports whether it succeeded.
func (g *Gate) Ensure() bool {
	if s := g.State(); s != StateUninitialized {
		return s == StateSucceeded
	}
	g.once.Do(g.run)
	return g.State() == StateSucceeded
}

// State returns the cached state without running setup.
func (g *Gate) State() InitState {
	return InitState(g.state.Load())
}

// Err returns why setup failed, or nil.
func (g *Gate) Err() error {
	if g.State() != StateFailed {
		return nil
	}
	return g.err
}

func (g *Gate) run() {
	result := StateFailed
	defer func() {
		if r := recover(); r != nil {
			g.err = errors.Panic("initialize", r)
			Logger().Debug("initialization panicked", zap.Any("panic", r))
		}
		g.state.Store(int32(result))
	}()

	if g.setup == nil {
		g.err = errors.NotInitialized("toolkit")
		return
	}
	if err := g.setup(); err != nil {
		g.err = errors.New(errors.PhaseInit, errors.KindNotInitialized).
			Op("initialize").
			Cause(err).
			Build()
		Logger().Debug("initialization failed", zap.Error(err))
		return
	}
	result = StateSucceeded
}
