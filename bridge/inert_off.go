//go:build !xmpinert

package bridge

// Inert reports whether Default ignores the registered toolkit and runs
// the no-op engine.
const Inert = false
