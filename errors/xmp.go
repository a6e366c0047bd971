package errors

// XmpError is the Go form of a populated error record.
type XmpError struct {
	DebugMessage string
	Type         ErrorType
}

// Error implements the error interface.
// The format is XmpError(description) or XmpError(description, message).
func (e *XmpError) Error() string {
	if e.DebugMessage == "" {
		return "XmpError(" + e.Type.String() + ")"
	}
	return "XmpError(" + e.Type.String() + ", " + e.DebugMessage + ")"
}

// Is matches another XmpError of the same type regardless of message.
func (e *XmpError) Is(target error) bool {
	if t, ok := target.(*XmpError); ok {
		return e.Type == t.Type
	}
	return false
}

// FromRecord builds an XmpError from the raw fields of an error record.
// It returns nil when hadError is false.
func FromRecord(hadError bool, id int32, message string) error {
	if !hadError {
		return nil
	}
	return &XmpError{
		Type:         FromCode(id),
		DebugMessage: message,
	}
}
