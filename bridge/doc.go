// Package bridge is the call boundary in front of an XMP metadata engine.
//
// Callers never hold engine objects. They hold integer handles (File,
// Meta, DateTime, Iterator) and owned strings, and every operation takes
// an *ErrorRecord out-parameter:
//
//	var rec bridge.ErrorRecord
//	b := bridge.Default()
//
//	m := b.MetaNew(&rec)
//	b.SetProperty(m, &rec, "http://purl.org/dc/elements/1.1/", "title", "x", 0)
//	v, _, found := b.GetProperty(m, &rec, "http://purl.org/dc/elements/1.1/", "title")
//	if found {
//		fmt.Println(b.StringValue(v))
//		b.StringDrop(v)
//	}
//	if err := b.Err(&rec); err != nil { ... }
//	b.MetaDrop(m)
//
// # Failures
//
// Every operation leaves the record in one of three states: clean, known
// failure (engine code plus message) or unknown failure (code 0, no
// message). Engine panics never cross the boundary. An engine that fails
// to initialize makes every operation report EngineUnavailable.
//
// Absence is not failure: a missing property, an exhausted iterator or a
// file without metadata return a zero handle or found=false with a clean
// record.
//
// # Ownership
//
// Handles and owned strings are released exactly once with their Drop
// function. A second release returns false and is logged. Messages in an
// ErrorRecord are released by the next operation that reuses the record,
// by Err or by ErrorRecordDrop.
//
// Builds tagged xmpinert run Default on a no-op engine.
package bridge
