package bridge

import (
	"go.uber.org/zap"

	"github.com/wippyai/xmp-bridge/engine"
)

// interceptor returns the error callback installed on every file.
//
// It records the report in the capsule's embedded record and asks the
// engine to stop. It never lets a panic reach the engine.
func (b *Bridge) interceptor(c *fileCapsule) engine.ErrorCallback {
	return func(filePath string, severity engine.Severity, cause int32, message string) (proceed bool) {
		defer func() {
			if r := recover(); r != nil {
				Logger().Debug("error callback panicked",
					zap.String("path", filePath),
					zap.Any("panic", r))
				b.populateUnknown(&c.rec)
				proceed = false
			}
		}()

		Logger().Debug("engine reported file problem",
			zap.String("path", filePath),
			zap.Stringer("severity", severity),
			zap.Int32("cause", cause))
		b.populateKnown(&c.rec, cause, message)
		return false
	}
}

// reconcile moves a failure reported through the callback into rec and
// leaves the embedded record clean. It reports whether anything moved.
func (b *Bridge) reconcile(c *fileCapsule, rec *ErrorRecord) bool {
	if !c.rec.HadError {
		return false
	}
	b.reset(rec)
	*rec = c.rec
	c.rec = ErrorRecord{}
	return true
}
