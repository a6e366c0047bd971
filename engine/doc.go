// Package engine declares the contract of the inner XMP engine.
//
// The bridge treats the engine as a black box. Everything it knows about the
// engine is the set of interfaces in this package:
//
//	Toolkit   - process-wide entry points (setup, namespaces, paths, dates)
//	File      - a file opened for metadata access
//	Meta      - a metadata document
//	Iterator  - a cursor over the nodes of a Meta
//
// # Failure Signalling
//
// Engines report failure in three ways and the bridge accepts all of them:
//
//  1. returning an error; a *Fault carries an engine code and message,
//     any other error is treated as a fault without engine detail
//  2. panicking; Raise panics with a *Fault, any other panic value is a
//     fault without engine detail
//  3. invoking the ErrorCallback registered on a File, typically during I/O,
//     and then returning a plain false
//
// Presence is never a failure: getters return found=false with a nil error
// for a property that does not exist.
//
// # Numeric Options
//
// Option flags keep the engine's numeric values so that they can be passed
// through the boundary uninterpreted.
package engine
