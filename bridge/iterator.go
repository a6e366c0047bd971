package bridge

import (
	"github.com/wippyai/xmp-bridge/engine"
	"github.com/wippyai/xmp-bridge/resource"
)

// IterEntry is one visited node. All three strings are owned by the caller.
type IterEntry struct {
	SchemaNS OwnedString
	Path     OwnedString
	Value    OwnedString
	Flags    engine.PropFlags
}

// Drop releases the entry's strings.
func (e IterEntry) Drop(b *Bridge) {
	for _, s := range [...]OwnedString{e.SchemaNS, e.Path, e.Value} {
		if s != 0 {
			b.StringDrop(s)
		}
	}
}

// IteratorNew starts a walk over m. Empty schemaNS walks every schema;
// empty propName walks the whole schema. Dropping m does not invalidate
// the iterator.
func (b *Bridge) IteratorNew(m Meta, rec *ErrorRecord, schemaNS, propName string, flags engine.IterFlags) Iterator {
	var it Iterator
	b.withMeta(m, rec, "iterator_new", func(em engine.Meta) error {
		ei, err := em.Iterate(schemaNS, propName, flags)
		if err != nil {
			return err
		}
		h, err := b.insertCapsule(resource.KindIterator, &iteratorCapsule{it: ei})
		if err != nil {
			return err
		}
		it = Iterator(h)
		return nil
	})
	return it
}

// IteratorNext advances the walk. Exhaustion returns false with a clean
// record.
func (b *Bridge) IteratorNext(it Iterator, rec *ErrorRecord) (IterEntry, bool) {
	var entry IterEntry
	var ok bool
	b.guard(rec, "iterator_next", func() error {
		c, err := b.iterator("iterator_next", it)
		if err != nil {
			return err
		}
		node, more, err := c.it.Next()
		if err != nil || !more {
			return err
		}
		var e IterEntry
		e.Flags = node.Flags
		for _, p := range []struct {
			dst *OwnedString
			src string
		}{
			{&e.SchemaNS, node.SchemaNS},
			{&e.Path, node.Path},
			{&e.Value, node.Value},
		} {
			if *p.dst, err = b.packageForTransfer(p.src); err != nil {
				e.Drop(b)
				return err
			}
		}
		entry, ok = e, true
		return nil
	})
	return entry, ok
}

// IteratorSkip prunes the rest of the current subtree or sibling set.
func (b *Bridge) IteratorSkip(it Iterator, rec *ErrorRecord, flags engine.SkipFlags) bool {
	return b.guard(rec, "iterator_skip", func() error {
		c, err := b.iterator("iterator_skip", it)
		if err != nil {
			return err
		}
		return c.it.Skip(flags)
	})
}

// IteratorDrop releases it.
func (b *Bridge) IteratorDrop(it Iterator) bool {
	return b.drop("iterator_drop", resource.Handle(it), resource.KindIterator)
}
