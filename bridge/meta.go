package bridge

import (
	"github.com/wippyai/xmp-bridge/engine"
	"github.com/wippyai/xmp-bridge/errors"
	"github.com/wippyai/xmp-bridge/resource"
)

// MetaNew creates an empty metadata document.
func (b *Bridge) MetaNew(rec *ErrorRecord) Meta {
	var m Meta
	b.guard(rec, "meta_new", func() error {
		em, err := b.toolkit.NewMeta()
		if err != nil {
			return err
		}
		m, err = b.newMeta(em)
		return err
	})
	return m
}

// MetaDrop releases m.
func (b *Bridge) MetaDrop(m Meta) bool {
	return b.drop("meta_drop", resource.Handle(m), resource.KindMeta)
}

// MetaClone returns an independent deep copy of m.
func (b *Bridge) MetaClone(m Meta, rec *ErrorRecord) Meta {
	var out Meta
	b.guard(rec, "meta_clone", func() error {
		em, err := b.meta("meta_clone", m)
		if err != nil {
			return err
		}
		clone, err := em.Clone()
		if err != nil {
			return err
		}
		out, err = b.newMeta(clone)
		return err
	})
	return out
}

// MetaParse parses a serialized packet into a new document.
//
// With ParseRequireXMPMeta, a buffer that yields no nodes is reported as
// XmpMetaElementMissing and no document is returned.
func (b *Bridge) MetaParse(rec *ErrorRecord, buffer []byte, flags engine.ParseFlags) Meta {
	var m Meta
	b.guard(rec, "meta_parse", func() error {
		em, err := b.toolkit.ParseMeta(buffer, flags)
		if err != nil {
			return err
		}
		owned := true
		defer func() {
			if owned {
				releaseEngine("meta", em)
			}
		}()
		if flags&engine.ParseRequireXMPMeta != 0 {
			empty, err := isEmpty(em)
			if err != nil {
				return err
			}
			if empty {
				return engine.NewFault(int32(errors.XmpMetaElementMissing), "x:xmpmeta element not found")
			}
		}
		owned = false
		m, err = b.newMeta(em)
		return err
	})
	return m
}

func isEmpty(m engine.Meta) (bool, error) {
	it, err := m.Iterate("", "", 0)
	if err != nil {
		return false, err
	}
	defer releaseEngine("iterator", it)
	_, ok, err := it.Next()
	return !ok, err
}

// MetaSerialize renders m as an RDF packet.
func (b *Bridge) MetaSerialize(m Meta, rec *ErrorRecord, flags engine.SerializeFlags, padding uint32, newline, indent string, baseIndent int32) OwnedString {
	return b.text(rec, "meta_serialize", func() (string, error) {
		em, err := b.meta("meta_serialize", m)
		if err != nil {
			return "", err
		}
		return em.Serialize(flags, padding, newline, indent, baseIndent)
	})
}

// MetaSort sorts the document's schemas and properties.
func (b *Bridge) MetaSort(m Meta, rec *ErrorRecord) bool {
	return b.guard(rec, "meta_sort", func() error {
		em, err := b.meta("meta_sort", m)
		if err != nil {
			return err
		}
		return em.Sort()
	})
}

// MetaName returns the document's object name.
func (b *Bridge) MetaName(m Meta, rec *ErrorRecord) OwnedString {
	return b.text(rec, "meta_name", func() (string, error) {
		em, err := b.meta("meta_name", m)
		if err != nil {
			return "", err
		}
		return em.ObjectName()
	})
}

// MetaSetName sets the document's object name.
func (b *Bridge) MetaSetName(m Meta, rec *ErrorRecord, name string) bool {
	return b.guard(rec, "meta_set_name", func() error {
		em, err := b.meta("meta_set_name", m)
		if err != nil {
			return err
		}
		return em.SetObjectName(name)
	})
}

// MetaDump returns the engine's debug dump of m.
func (b *Bridge) MetaDump(m Meta, rec *ErrorRecord) OwnedString {
	return b.text(rec, "meta_dump", func() (string, error) {
		em, err := b.meta("meta_dump", m)
		if err != nil {
			return "", err
		}
		return collect(func(out func([]byte) error) error {
			return em.DumpObject(out)
		})
	})
}
