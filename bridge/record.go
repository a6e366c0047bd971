package bridge

import (
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/wippyai/xmp-bridge/engine"
	"github.com/wippyai/xmp-bridge/errors"
)

// ErrorRecord is the caller-visible outcome of an operation.
//
// It is in one of three states: clean (HadError false), known failure
// (an engine code and usually a message) or unknown failure (ID is
// errors.Unknown and no message). DebugMessage is owned by the record
// and released by the next operation that reuses it or by
// ErrorRecordDrop.
type ErrorRecord struct {
	HadError     bool
	ID           int32
	DebugMessage OwnedString
}

// Clean reports whether the record carries no failure.
func (r *ErrorRecord) Clean() bool {
	return !r.HadError
}

const engineUnavailableMessage = "XMP toolkit not available"

func (b *Bridge) reset(rec *ErrorRecord) {
	if rec.DebugMessage != 0 {
		b.StringDrop(rec.DebugMessage)
	}
	*rec = ErrorRecord{}
}

func (b *Bridge) populateKnown(rec *ErrorRecord, code int32, msg string) {
	b.reset(rec)
	rec.HadError = true
	rec.ID = code
	if msg == "" {
		return
	}
	s, err := b.packageForTransfer(msg)
	if err != nil {
		Logger().Debug("dropping failure message", zap.Int32("code", code), zap.Error(err))
		return
	}
	rec.DebugMessage = s
}

func (b *Bridge) populateUnknown(rec *ErrorRecord) {
	b.reset(rec)
	rec.HadError = true
	rec.ID = int32(errors.Unknown)
}

// ErrorRecordDrop releases the message owned by rec and cleans it.
func (b *Bridge) ErrorRecordDrop(rec *ErrorRecord) {
	if rec != nil {
		b.reset(rec)
	}
}

// Err converts rec into an *errors.XmpError and cleans the record.
// It returns nil for a clean record.
func (b *Bridge) Err(rec *ErrorRecord) error {
	if rec == nil || !rec.HadError {
		return nil
	}
	err := errors.FromRecord(true, rec.ID, b.StringValue(rec.DebugMessage))
	b.reset(rec)
	return err
}

// guard runs fn as one boundary call.
//
// The gate runs first; if the engine is unavailable the record reports
// EngineUnavailable and fn is never called. Otherwise the record is
// cleaned, fn runs, and any returned error or panic is classified into
// the record. A nil rec is replaced by a scratch record that is discarded.
func (b *Bridge) guard(rec *ErrorRecord, op string, fn func() error) (ok bool) {
	if rec == nil {
		var scratch ErrorRecord
		rec = &scratch
		defer b.reset(rec)
	}

	if !b.gate.Ensure() {
		b.populateKnown(rec, int32(errors.EngineUnavailable), engineUnavailableMessage)
		return false
	}
	b.reset(rec)

	defer func() {
		if r := recover(); r != nil {
			b.classifyPanic(rec, op, r)
			ok = false
		}
	}()

	if err := fn(); err != nil {
		b.classify(rec, op, err)
		return false
	}
	return true
}

func (b *Bridge) classify(rec *ErrorRecord, op string, err error) {
	var fault *engine.Fault
	if stderrors.As(err, &fault) {
		b.populateKnown(rec, fault.Code, fault.Message)
		return
	}
	Logger().Debug("unclassified engine failure", zap.String("op", op), zap.Error(err))
	b.populateUnknown(rec)
}

func (b *Bridge) classifyPanic(rec *ErrorRecord, op string, r any) {
	if err, ok := r.(error); ok {
		var fault *engine.Fault
		if stderrors.As(err, &fault) {
			b.populateKnown(rec, fault.Code, fault.Message)
			return
		}
	}
	Logger().Debug("recovered engine panic", zap.String("op", op), zap.Error(errors.Panic(op, r)))
	b.populateUnknown(rec)
}

// invalidHandle is the fault reported for handles that are not live or
// are of the wrong kind.
func invalidHandle(err *errors.Error) *engine.Fault {
	Logger().Debug("handle rejected", zap.Error(err))
	return engine.NewFault(int32(errors.BadObject), err.Error())
}
