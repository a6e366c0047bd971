package bridge

// Path composition has no document state but still needs the engine,
// since prefixes come from the namespace registry.

// ComposeArrayItemPath returns the path of an array item. engine.LastItem selects the last one.
func (b *Bridge) ComposeArrayItemPath(rec *ErrorRecord, schemaNS, arrayName string, index int32) OwnedString {
	return b.text(rec, "compose_array_item_path", func() (string, error) {
		return b.toolkit.ComposeArrayItemPath(schemaNS, arrayName, index)
	})
}

// ComposeStructFieldPath returns the path of a struct field.
func (b *Bridge) ComposeStructFieldPath(rec *ErrorRecord, schemaNS, structName, fieldNS, fieldName string) OwnedString {
	return b.text(rec, "compose_struct_field_path", func() (string, error) {
		return b.toolkit.ComposeStructFieldPath(schemaNS, structName, fieldNS, fieldName)
	})
}

// ComposeQualifierPath returns the path of a qualifier.
func (b *Bridge) ComposeQualifierPath(rec *ErrorRecord, schemaNS, propName, qualNS, qualName string) OwnedString {
	return b.text(rec, "compose_qualifier_path", func() (string, error) {
		return b.toolkit.ComposeQualifierPath(schemaNS, propName, qualNS, qualName)
	})
}

// ComposeLangSelector returns the path of the alt-text item for lang.
func (b *Bridge) ComposeLangSelector(rec *ErrorRecord, schemaNS, arrayName, lang string) OwnedString {
	return b.text(rec, "compose_lang_selector", func() (string, error) {
		return b.toolkit.ComposeLangSelector(schemaNS, arrayName, lang)
	})
}

// ComposeFieldSelector returns the path of the array item whose field has fieldValue.
func (b *Bridge) ComposeFieldSelector(rec *ErrorRecord, schemaNS, arrayName, fieldNS, fieldName, fieldValue string) OwnedString {
	return b.text(rec, "compose_field_selector", func() (string, error) {
		return b.toolkit.ComposeFieldSelector(schemaNS, arrayName, fieldNS, fieldName, fieldValue)
	})
}
