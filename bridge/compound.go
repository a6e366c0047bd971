package bridge

import (
	"github.com/wippyai/xmp-bridge/engine"
)

// Array indices are 1-based; engine.LastItem addresses the last item.
// Range checks belong to the engine and surface as its own failures.

// GetArrayItem returns one item of an array property.
func (b *Bridge) GetArrayItem(m Meta, rec *ErrorRecord, schemaNS, arrayName string, index int32) (OwnedString, engine.PropFlags, bool) {
	return b.getText(m, rec, "get_array_item", func(em engine.Meta) (string, engine.PropFlags, bool, error) {
		return em.GetArrayItem(schemaNS, arrayName, index)
	})
}

// SetArrayItem replaces an item, or inserts one when flags carry an
// insert-before or insert-after bit.
func (b *Bridge) SetArrayItem(m Meta, rec *ErrorRecord, schemaNS, arrayName string, index int32, value string, flags engine.PropFlags) bool {
	return b.withMeta(m, rec, "set_array_item", func(em engine.Meta) error {
		return em.SetArrayItem(schemaNS, arrayName, index, value, flags)
	})
}

// AppendArrayItem adds an item at the end, creating the array with
// arrayFlags if it does not exist.
func (b *Bridge) AppendArrayItem(m Meta, rec *ErrorRecord, schemaNS, arrayName string, arrayFlags engine.PropFlags, value string, itemFlags engine.PropFlags) bool {
	return b.withMeta(m, rec, "append_array_item", func(em engine.Meta) error {
		return em.AppendArrayItem(schemaNS, arrayName, arrayFlags, value, itemFlags)
	})
}

// DeleteArrayItem removes the item at the 1-based index.
func (b *Bridge) DeleteArrayItem(m Meta, rec *ErrorRecord, schemaNS, arrayName string, index int32) bool {
	return b.withMeta(m, rec, "delete_array_item", func(em engine.Meta) error {
		return em.DeleteArrayItem(schemaNS, arrayName, index)
	})
}

// CountArrayItems returns the number of items; an absent array has none.
func (b *Bridge) CountArrayItems(m Meta, rec *ErrorRecord, schemaNS, arrayName string) int32 {
	var n int32
	b.withMeta(m, rec, "count_array_items", func(em engine.Meta) (err error) {
		n, err = em.CountArrayItems(schemaNS, arrayName)
		return err
	})
	return n
}

// DoesArrayItemExist reports whether the array has an item at index.
func (b *Bridge) DoesArrayItemExist(m Meta, rec *ErrorRecord, schemaNS, arrayName string, index int32) bool {
	var exists bool
	b.withMeta(m, rec, "does_array_item_exist", func(em engine.Meta) (err error) {
		exists, err = em.DoesArrayItemExist(schemaNS, arrayName, index)
		return err
	})
	return exists
}

// GetStructField returns one field of a struct property.
func (b *Bridge) GetStructField(m Meta, rec *ErrorRecord, schemaNS, structName, fieldNS, fieldName string) (OwnedString, engine.PropFlags, bool) {
	return b.getText(m, rec, "get_struct_field", func(em engine.Meta) (string, engine.PropFlags, bool, error) {
		return em.GetStructField(schemaNS, structName, fieldNS, fieldName)
	})
}

// SetStructField sets a field, creating the struct when needed.
func (b *Bridge) SetStructField(m Meta, rec *ErrorRecord, schemaNS, structName, fieldNS, fieldName, value string, flags engine.PropFlags) bool {
	return b.withMeta(m, rec, "set_struct_field", func(em engine.Meta) error {
		return em.SetStructField(schemaNS, structName, fieldNS, fieldName, value, flags)
	})
}

// DeleteStructField removes a field of a struct property.
func (b *Bridge) DeleteStructField(m Meta, rec *ErrorRecord, schemaNS, structName, fieldNS, fieldName string) bool {
	return b.withMeta(m, rec, "delete_struct_field", func(em engine.Meta) error {
		return em.DeleteStructField(schemaNS, structName, fieldNS, fieldName)
	})
}

// DoesStructFieldExist reports whether the struct has the field.
func (b *Bridge) DoesStructFieldExist(m Meta, rec *ErrorRecord, schemaNS, structName, fieldNS, fieldName string) bool {
	var exists bool
	b.withMeta(m, rec, "does_struct_field_exist", func(em engine.Meta) (err error) {
		exists, err = em.DoesStructFieldExist(schemaNS, structName, fieldNS, fieldName)
		return err
	})
	return exists
}

// GetQualifier returns a qualifier attached to a property.
func (b *Bridge) GetQualifier(m Meta, rec *ErrorRecord, schemaNS, propName, qualNS, qualName string) (OwnedString, engine.PropFlags, bool) {
	return b.getText(m, rec, "get_qualifier", func(em engine.Meta) (string, engine.PropFlags, bool, error) {
		return em.GetQualifier(schemaNS, propName, qualNS, qualName)
	})
}

// SetQualifier attaches a qualifier to an existing property.
func (b *Bridge) SetQualifier(m Meta, rec *ErrorRecord, schemaNS, propName, qualNS, qualName, value string, flags engine.PropFlags) bool {
	return b.withMeta(m, rec, "set_qualifier", func(em engine.Meta) error {
		return em.SetQualifier(schemaNS, propName, qualNS, qualName, value, flags)
	})
}

// DeleteQualifier removes a qualifier from a property.
func (b *Bridge) DeleteQualifier(m Meta, rec *ErrorRecord, schemaNS, propName, qualNS, qualName string) bool {
	return b.withMeta(m, rec, "delete_qualifier", func(em engine.Meta) error {
		return em.DeleteQualifier(schemaNS, propName, qualNS, qualName)
	})
}

// DoesQualifierExist reports whether the property carries the qualifier.
func (b *Bridge) DoesQualifierExist(m Meta, rec *ErrorRecord, schemaNS, propName, qualNS, qualName string) bool {
	var exists bool
	b.withMeta(m, rec, "does_qualifier_exist", func(em engine.Meta) (err error) {
		exists, err = em.DoesQualifierExist(schemaNS, propName, qualNS, qualName)
		return err
	})
	return exists
}

// LocalizedText is a found alt-text item. Both strings are owned by the
// caller.
type LocalizedText struct {
	Value      OwnedString
	ActualLang OwnedString
	Flags      engine.PropFlags
}

// GetLocalizedText selects an item of an alt-text array by language.
// genericLang may be empty.
func (b *Bridge) GetLocalizedText(m Meta, rec *ErrorRecord, schemaNS, altTextName, genericLang, specificLang string) (LocalizedText, bool) {
	var out LocalizedText
	var found bool
	b.withMeta(m, rec, "get_localized_text", func(em engine.Meta) error {
		value, lang, flags, ok, err := em.GetLocalizedText(schemaNS, altTextName, genericLang, specificLang)
		if err != nil || !ok {
			return err
		}
		v, err := b.packageForTransfer(value)
		if err != nil {
			return err
		}
		l, err := b.packageForTransfer(lang)
		if err != nil {
			b.StringDrop(v)
			return err
		}
		out = LocalizedText{Value: v, ActualLang: l, Flags: flags}
		found = true
		return nil
	})
	return out, found
}

// SetLocalizedText sets the alt-text item for specificLang. genericLang may be empty.
func (b *Bridge) SetLocalizedText(m Meta, rec *ErrorRecord, schemaNS, altTextName, genericLang, specificLang, value string, flags engine.PropFlags) bool {
	return b.withMeta(m, rec, "set_localized_text", func(em engine.Meta) error {
		return em.SetLocalizedText(schemaNS, altTextName, genericLang, specificLang, value, flags)
	})
}
