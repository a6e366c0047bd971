// Package errors provides the error vocabulary of the XMP bridge.
//
// Two families of errors live here:
//
// ErrorType is the numeric failure identifier carried across the boundary in
// an ErrorRecord. Positive values are the inner engine's own codes; the
// negative values are reserved by the bridge (engine unavailable, missing
// x:xmpmeta element). Unknown (0) is the reserved code for faults that carry
// no engine detail.
//
//	et := errors.FromCode(111) // errors.NoFile
//	fmt.Println(et)            // "File not found"
//
// XmpError is the Go error a caller obtains from a populated record:
//
//	if err := b.Err(&rec); err != nil {
//		var xe *errors.XmpError
//		if errors.As(err, &xe) && xe.Type == errors.NoFile { ... }
//	}
//
// Error is the structured error used for faults in the bridge itself
// (handle misuse, guest memory access, configuration), categorized by Phase
// and Kind:
//
//	err := errors.New(errors.PhaseGuest, errors.KindOutOfBounds).
//		Op("get_property").
//		Detail("record pointer %d outside memory", ptr).
//		Build()
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
