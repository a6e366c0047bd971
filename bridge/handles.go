package bridge

import (
	"go.uber.org/zap"

	"github.com/wippyai/xmp-bridge/engine"
	"github.com/wippyai/xmp-bridge/errors"
	"github.com/wippyai/xmp-bridge/resource"
)

// Handle types handed to callers. The zero value of each is absent.
type (
	File     resource.Handle
	Meta     resource.Handle
	DateTime resource.Handle
	Iterator resource.Handle
)

// fileCapsule pairs an engine file with the record its error callback
// writes to.
type fileCapsule struct {
	b    *Bridge
	file engine.File
	rec  ErrorRecord
}

// Drop frees a message left in the embedded record and releases the file.
func (c *fileCapsule) Drop() {
	c.b.reset(&c.rec)
	releaseEngine("file", c.file)
}

type metaCapsule struct {
	meta engine.Meta
}

// Drop releases the engine document.
func (c *metaCapsule) Drop() { releaseEngine("meta", c.meta) }

type iteratorCapsule struct {
	it engine.Iterator
}

// Drop releases the engine iterator.
func (c *iteratorCapsule) Drop() { releaseEngine("iterator", c.it) }

func (b *Bridge) lookup(op string, h resource.Handle, kind resource.Kind) (any, error) {
	if v, ok := b.table.Get(h, kind); ok {
		return v, nil
	}
	if _, live := b.table.KindOf(h); live {
		return nil, invalidHandle(errors.WrongKind(op, uint32(h), kind.String()))
	}
	return nil, invalidHandle(errors.InvalidHandle(op, uint32(h)))
}

func (b *Bridge) file(op string, f File) (*fileCapsule, error) {
	v, err := b.lookup(op, resource.Handle(f), resource.KindFile)
	if err != nil {
		return nil, err
	}
	return v.(*fileCapsule), nil
}

func (b *Bridge) meta(op string, m Meta) (engine.Meta, error) {
	v, err := b.lookup(op, resource.Handle(m), resource.KindMeta)
	if err != nil {
		return nil, err
	}
	return v.(*metaCapsule).meta, nil
}

func (b *Bridge) dateTime(op string, d DateTime) (*engine.DateTime, error) {
	v, err := b.lookup(op, resource.Handle(d), resource.KindDateTime)
	if err != nil {
		return nil, err
	}
	return v.(*engine.DateTime), nil
}

func (b *Bridge) iterator(op string, it Iterator) (*iteratorCapsule, error) {
	v, err := b.lookup(op, resource.Handle(it), resource.KindIterator)
	if err != nil {
		return nil, err
	}
	return v.(*iteratorCapsule), nil
}

// newMeta hands m to the caller. When no handle is available m is
// released and 0 is returned.
func (b *Bridge) newMeta(m engine.Meta) (Meta, error) {
	h, err := b.insertCapsule(resource.KindMeta, &metaCapsule{meta: m})
	return Meta(h), err
}

// insertCapsule is insert for values that own engine objects. The capsule
// is dropped when no handle is available.
func (b *Bridge) insertCapsule(kind resource.Kind, c resource.Dropper) (resource.Handle, error) {
	h, err := b.insert(kind, c)
	if err != nil {
		c.Drop()
	}
	return h, err
}

// drop releases a handle of kind. The table drops the capsule behind it.
// Releasing an absent or already released handle returns false and is
// logged.
func (b *Bridge) drop(op string, h resource.Handle, kind resource.Kind) bool {
	if _, ok := b.table.Remove(h, kind); !ok {
		if h != 0 {
			Logger().Warn("handle release rejected",
				zap.String("op", op),
				zap.Error(errors.DoubleRelease(errors.PhaseHandle, uint32(h))))
		}
		return false
	}
	return true
}

// releaseEngine hands v back to the engine when it asks for that.
// A panic inside the engine's release is logged and swallowed.
func releaseEngine(kind string, v any) {
	r, ok := v.(engine.Releaser)
	if !ok {
		return
	}
	defer func() {
		if p := recover(); p != nil {
			Logger().Debug("engine release panicked", zap.String("kind", kind), zap.Any("panic", p))
		}
	}()
	r.Release()
}
