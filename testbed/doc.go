// Package testbed is an in-memory engine for exercising the bridge.
//
// It follows the toolkit's observable contract closely enough for
// boundary tests: the same failure codes and messages for bad
// parameters, a global namespace registry, 1-based arrays, alt-text
// language selection, an error callback on file I/O and a recorded
// packet format. Files live in an in-memory store keyed by path.
//
// Faults are signalled the three ways a real engine does: returned as
// *engine.Fault, raised as a panic via engine.Raise, and injected on
// demand as arbitrary errors or panic values (see Inject).
//
// Every File, Meta and Iterator it creates is counted until released, so
// tests can assert the bridge hands every engine object back.
package testbed
