package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseGuest,
				Kind:   KindOutOfBounds,
				Op:     "get_property",
				Path:   []string{"dc:subject", "[1]"},
				Detail: "record pointer outside memory",
			},
			contains: []string{"[guest]", "out_of_bounds", "in get_property", "dc:subject/[1]", "record pointer"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseHandle,
				Kind:  KindInvalidHandle,
			},
			contains: []string{"[handle]", "invalid_handle"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseInit,
				Kind:   KindNotInitialized,
				Detail: "toolkit setup failed",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[init]", "not_initialized", "toolkit setup failed", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseCall,
		Kind:  KindPanic,
		Cause: cause,
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseHandle,
		Kind:  KindDoubleRelease,
		Op:    "string_drop",
	}

	if !errors.Is(err, &Error{Phase: PhaseHandle, Kind: KindDoubleRelease}) {
		t.Error("errors.Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseString, Kind: KindDoubleRelease}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseHandle, Kind: KindInvalidHandle}) {
		t.Error("Is should not match different kind")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseGuest, KindAllocation).
		Op("meta_serialize").
		Path("xmp:CreateDate").
		Value(42).
		Cause(cause).
		Detail("need %d pages", 3).
		Build()

	if err.Phase != PhaseGuest || err.Kind != KindAllocation {
		t.Errorf("Phase/Kind = %v/%v", err.Phase, err.Kind)
	}
	if err.Op != "meta_serialize" {
		t.Errorf("Op = %q", err.Op)
	}
	if len(err.Path) != 1 || err.Path[0] != "xmp:CreateDate" {
		t.Errorf("Path = %v", err.Path)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "need 3 pages" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("InvalidHandle", func(t *testing.T) {
		err := InvalidHandle("meta_drop", 7)
		if err.Kind != KindInvalidHandle || err.Value != uint32(7) {
			t.Errorf("got %+v", err)
		}
	})

	t.Run("WrongKind", func(t *testing.T) {
		err := WrongKind("file_open", 3, "file")
		if err.Kind != KindWrongKind || !strings.Contains(err.Detail, "file") {
			t.Errorf("got %+v", err)
		}
	})

	t.Run("DoubleRelease", func(t *testing.T) {
		err := DoubleRelease(PhaseString, 9)
		if err.Kind != KindDoubleRelease || err.Phase != PhaseString {
			t.Errorf("got %+v", err)
		}
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		err := OutOfBounds("read", 65536, 4)
		if err.Kind != KindOutOfBounds || !strings.Contains(err.Detail, "65536") {
			t.Errorf("got %+v", err)
		}
	})

	t.Run("AllocationFailed", func(t *testing.T) {
		err := AllocationFailed(PhaseGuest, 1024)
		if err.Kind != KindAllocation || !strings.Contains(err.Detail, "1024") {
			t.Errorf("got %+v", err)
		}
	})

	t.Run("Panic with error value", func(t *testing.T) {
		cause := errors.New("boom")
		err := Panic("set_property", cause)
		if err.Kind != KindPanic || !errors.Is(err, cause) {
			t.Errorf("got %+v", err)
		}
	})

	t.Run("Panic with string value", func(t *testing.T) {
		err := Panic("set_property", "boom")
		if err.Cause != nil || err.Detail != "boom" {
			t.Errorf("got %+v", err)
		}
	})

	t.Run("Registration", func(t *testing.T) {
		err := Registration("xmp", "get_property", errors.New("dup"))
		if err.Kind != KindRegistration || !strings.Contains(err.Error(), "xmp#get_property") {
			t.Errorf("got %v", err)
		}
	})
}

func TestFromCode(t *testing.T) {
	tests := []struct {
		code int32
		want ErrorType
	}{
		{0, Unknown},
		{12, UserAbort},
		{111, NoFile},
		{213, BadPng},
		{-1, EngineUnavailable},
		{-2, XmpMetaElementMissing},
		{-3, Unknown},
		{214, Unknown},
		{9000, Unknown},
	}

	for _, tt := range tests {
		if got := FromCode(tt.code); got != tt.want {
			t.Errorf("FromCode(%d) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestErrorType_String(t *testing.T) {
	if got := Unknown.String(); got != "Unknown error" {
		t.Errorf("Unknown = %q", got)
	}
	if got := UserAbort.String(); got != "User abort" {
		t.Errorf("UserAbort = %q", got)
	}
	if got := BadPng.String(); got != "PNG format error" {
		t.Errorf("BadPng = %q", got)
	}
	if got := ErrorType(555).String(); got != "Unknown error" {
		t.Errorf("unrecognized = %q", got)
	}
	if ErrorType(555).Known() {
		t.Error("555 should not be known")
	}
}

func TestXmpError(t *testing.T) {
	t.Run("without message", func(t *testing.T) {
		err := &XmpError{Type: BadJpeg}
		if err.Error() != "XmpError(JPEG format error)" {
			t.Errorf("got %q", err.Error())
		}
	})

	t.Run("with message", func(t *testing.T) {
		err := &XmpError{Type: NoFile, DebugMessage: "sample message"}
		if err.Error() != "XmpError(File not found, sample message)" {
			t.Errorf("got %q", err.Error())
		}
	})

	t.Run("Is matches type only", func(t *testing.T) {
		err := &XmpError{Type: NoFile, DebugMessage: "a"}
		if !errors.Is(err, &XmpError{Type: NoFile}) {
			t.Error("should match same type")
		}
		if errors.Is(err, &XmpError{Type: BadXPath}) {
			t.Error("should not match other type")
		}
	})
}

func TestFromRecord(t *testing.T) {
	if err := FromRecord(false, 0, ""); err != nil {
		t.Fatalf("clean record produced %v", err)
	}

	err := FromRecord(true, 0, "")
	var xe *XmpError
	if !errors.As(err, &xe) || xe.Type != Unknown || xe.DebugMessage != "" {
		t.Errorf("unknown record = %v", err)
	}

	err = FromRecord(true, 9000, "bogus XMP error")
	if !errors.As(err, &xe) || xe.Type != Unknown || xe.DebugMessage != "bogus XMP error" {
		t.Errorf("bad id record = %v", err)
	}

	err = FromRecord(true, 12, "")
	if !errors.As(err, &xe) || xe.Type != UserAbort {
		t.Errorf("user abort record = %v", err)
	}
}
