package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the bridge the error occurred
type Phase string

const (
	PhaseInit   Phase = "init"   // process initialization gate
	PhaseCall   Phase = "call"   // operation surface
	PhaseHandle Phase = "handle" // handle table
	PhaseString Phase = "string" // owned string transfer
	PhaseGuest  Phase = "guest"  // wasm guest memory
	PhaseHost   Phase = "host"   // host module registration
	PhaseConfig Phase = "config" // configuration loading
)

// Kind categorizes the error
type Kind string

const (
	KindNotInitialized Kind = "not_initialized"
	KindInvalidHandle  Kind = "invalid_handle"
	KindWrongKind      Kind = "wrong_kind"
	KindDoubleRelease  Kind = "double_release"
	KindOutOfBounds    Kind = "out_of_bounds"
	KindAllocation     Kind = "allocation"
	KindInvalidInput   Kind = "invalid_input"
	KindPanic          Kind = "panic"
	KindUnsupported    Kind = "unsupported"
	KindRegistration   Kind = "registration"
)

// Error is the structured error type used inside the bridge
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Op     string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
	}

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "/"))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Op sets the operation name
func (b *Builder) Op(op string) *Builder {
	b.err.Op = op
	return b
}

// Path sets the property path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// NotInitialized creates an error for a failed or missing initialization
func NotInitialized(what string) *Error {
	return &Error{
		Phase:  PhaseInit,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", what),
	}
}

// InvalidHandle creates an error for a handle that is absent or already dropped
func InvalidHandle(op string, handle uint32) *Error {
	return &Error{
		Phase:  PhaseHandle,
		Kind:   KindInvalidHandle,
		Op:     op,
		Detail: fmt.Sprintf("handle %d is not live", handle),
		Value:  handle,
	}
}

// WrongKind creates an error for a live handle of the wrong kind
func WrongKind(op string, handle uint32, want string) *Error {
	return &Error{
		Phase:  PhaseHandle,
		Kind:   KindWrongKind,
		Op:     op,
		Detail: fmt.Sprintf("handle %d is not a %s", handle, want),
		Value:  handle,
	}
}

// DoubleRelease creates an error for a second release of an owned allocation
func DoubleRelease(phase Phase, ref uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDoubleRelease,
		Detail: fmt.Sprintf("allocation %d released twice or never owned", ref),
		Value:  ref,
	}
}

// OutOfBounds creates a guest memory access error
func OutOfBounds(op string, offset, length uint32) *Error {
	return &Error{
		Phase:  PhaseGuest,
		Kind:   KindOutOfBounds,
		Op:     op,
		Detail: fmt.Sprintf("offset %d length %d outside guest memory", offset, length),
		Value:  offset,
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, size uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d bytes", size),
	}
}

// Panic wraps a recovered panic value
func Panic(op string, value any) *Error {
	e := &Error{
		Phase:  PhaseCall,
		Kind:   KindPanic,
		Op:     op,
		Detail: fmt.Sprintf("%v", value),
		Value:  value,
	}
	if err, ok := value.(error); ok {
		e.Cause = err
	}
	return e
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Registration creates a host registration error
func Registration(module, name string, cause error) *Error {
	return &Error{
		Phase:  PhaseHost,
		Kind:   KindRegistration,
		Detail: fmt.Sprintf("register %s#%s", module, name),
		Cause:  cause,
	}
}
