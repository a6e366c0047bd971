package engine

import "fmt"

// Fault is a failure raised by the engine with an identifiable code.
type Fault struct {
	Message string
	Code    int32
}

func (f *Fault) Error() string {
	if f.Message == "" {
		return fmt.Sprintf("xmp fault %d", f.Code)
	}
	return fmt.Sprintf("xmp fault %d: %s", f.Code, f.Message)
}

// NewFault creates a Fault.
func NewFault(code int32, format string, args ...any) *Fault {
	if len(args) > 0 {
		format = fmt.Sprintf(format, args...)
	}
	return &Fault{Code: code, Message: format}
}

// Raise panics with a Fault. Engines that signal failure by unwinding use it.
func Raise(code int32, format string, args ...any) {
	panic(NewFault(code, format, args...))
}

// Severity of a problem reported through an ErrorCallback.
type Severity uint8

const (
	SeverityRecoverable Severity = iota
	SeverityOperationFatal
	SeverityFileFatal
	SeverityProcessFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityRecoverable:
		return "recoverable"
	case SeverityOperationFatal:
		return "operation-fatal"
	case SeverityFileFatal:
		return "file-fatal"
	case SeverityProcessFatal:
		return "process-fatal"
	}
	return fmt.Sprintf("severity(%d)", uint8(s))
}

// ErrorCallback receives problems the engine detects mid-operation.
// Returning false asks the engine to abort the operation in flight.
type ErrorCallback func(filePath string, severity Severity, cause int32, message string) bool

// TextOutput receives chunks of debug text produced by dump operations.
// A non-nil error stops the dump.
type TextOutput func(text []byte) error
