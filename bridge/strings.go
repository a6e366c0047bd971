package bridge

import (
	"go.uber.org/zap"

	"github.com/wippyai/xmp-bridge/errors"
	"github.com/wippyai/xmp-bridge/resource"
)

// OwnedString is text handed to the caller. The caller owns it and must
// release it with StringDrop exactly once. The zero value is absent.
type OwnedString resource.Handle

// ownedBuffer holds the bytes of an OwnedString followed by a NUL.
type ownedBuffer struct {
	buf []byte
}

// packageForTransfer copies s into a fresh NUL-terminated buffer.
// Bytes pass through untouched, embedded NULs included.
func (b *Bridge) packageForTransfer(s string) (OwnedString, error) {
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	h, err := b.insert(resource.KindString, &ownedBuffer{buf: buf})
	if err != nil {
		return 0, err
	}
	return OwnedString(h), nil
}

func (b *Bridge) buffer(s OwnedString) (*ownedBuffer, bool) {
	v, ok := b.table.Get(resource.Handle(s), resource.KindString)
	if !ok {
		return nil, false
	}
	return v.(*ownedBuffer), true
}

// StringBytes returns the content of s without the trailing NUL.
// It returns nil for an absent or released string.
func (b *Bridge) StringBytes(s OwnedString) []byte {
	ob, ok := b.buffer(s)
	if !ok {
		return nil
	}
	return ob.buf[:len(ob.buf)-1]
}

// StringCBytes returns the content of s including the trailing NUL.
func (b *Bridge) StringCBytes(s OwnedString) []byte {
	ob, ok := b.buffer(s)
	if !ok {
		return nil
	}
	return ob.buf
}

// StringValue returns the content of s as a Go string.
func (b *Bridge) StringValue(s OwnedString) string {
	return string(b.StringBytes(s))
}

// StringDrop releases s. It returns false for the zero string and for a
// string that was already released; the latter is logged as a warning.
func (b *Bridge) StringDrop(s OwnedString) bool {
	if s == 0 {
		return false
	}
	if _, ok := b.table.Remove(resource.Handle(s), resource.KindString); !ok {
		Logger().Warn("string release rejected",
			zap.Error(errors.DoubleRelease(errors.PhaseString, uint32(s))))
		return false
	}
	return true
}

// LiveStrings returns the number of owned strings not yet released.
func (b *Bridge) LiveStrings() int {
	return b.live.Live(resource.KindString)
}

// TakeString returns the content of s and releases it.
func (b *Bridge) TakeString(s OwnedString) string {
	v := b.StringValue(s)
	b.StringDrop(s)
	return v
}
