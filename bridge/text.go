package bridge

import "bytes"

// text runs fn under guard and packages its result as an OwnedString.
// It returns 0 on failure.
func (b *Bridge) text(rec *ErrorRecord, op string, fn func() (string, error)) OwnedString {
	var s OwnedString
	b.guard(rec, op, func() error {
		v, err := fn()
		if err != nil {
			return err
		}
		s, err = b.packageForTransfer(v)
		return err
	})
	return s
}

// optionalText is text for lookups that may legitimately find nothing.
// Absence returns (0, false) with a clean record.
func (b *Bridge) optionalText(rec *ErrorRecord, op string, fn func() (string, bool, error)) (OwnedString, bool) {
	var s OwnedString
	var found bool
	b.guard(rec, op, func() error {
		v, ok, err := fn()
		if err != nil || !ok {
			return err
		}
		if s, err = b.packageForTransfer(v); err != nil {
			return err
		}
		found = true
		return nil
	})
	return s, found
}

// collect adapts an engine dump to an in-memory buffer.
func collect(dump func(out func([]byte) error) error) (string, error) {
	var buf bytes.Buffer
	err := dump(func(p []byte) error {
		_, err := buf.Write(p)
		return err
	})
	return buf.String(), err
}
