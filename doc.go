// Package xmpbridge is a handle-based boundary over an XMP metadata engine,
// usable from Go and from WebAssembly guests.
//
// # Architecture Overview
//
// The module is organized into several packages with distinct responsibilities:
//
//	xmpbridge/           Root package (documentation only)
//	├── bridge/          Handles, owned strings, error records and every operation
//	├── engine/          Toolkit, File, Meta and Iterator contracts plus faults
//	│   └── inert/       Engine that accepts everything and stores nothing
//	├── testbed/         In-memory engine used by tests and examples
//	├── resource/        Generation-stamped handle table
//	├── wasmhost/        wazero host module exposing the bridge to guests
//	├── config/          Viper configuration, validation and zap logger setup
//	├── xmpns/           Standard schema namespace URIs
//	├── gps/             Exif GPS coordinates to decimal degrees
//	└── errors/          Engine error codes and structured boundary errors
//
// # Quick Start
//
// Create a bridge over an engine and work with a document:
//
//	b := bridge.New(toolkit)
//
//	var rec bridge.ErrorRecord
//	m := b.MetaNew(&rec)
//	defer b.MetaDrop(m)
//
//	b.SetProperty(m, &rec, xmpns.XMP, "CreatorTool", "app", 0)
//	if err := b.Err(&rec); err != nil {
//	    log.Fatal(err)
//	}
//
// Every operation takes an optional *ErrorRecord. On return the record is
// clean, carries a known engine code with a message, or reports an unknown
// failure with no message. Messages and other returned text are owned by
// the caller and released with StringDrop; TakeString reads and releases in
// one step.
//
// # WebAssembly Guests
//
// Expose the bridge to guests through a wazero runtime:
//
//	h := wasmhost.New(b)
//	if _, err := h.Instantiate(ctx, rt); err != nil {
//	    log.Fatal(err)
//	}
//
// Guests import module "xmp". Returned strings are allocated in pages the
// host grows in the guest's memory and released with string_drop.
//
// # Thread Safety
//
// A Bridge is safe for concurrent use. Engine initialization runs once per
// bridge no matter how many goroutines race on first use. Individual engine
// objects (a Meta, a File, an Iterator) must not be used from two
// goroutines at once.
package xmpbridge
