package testbed

import (
	"strconv"

	"github.com/wippyai/xmp-bridge/engine"
	"github.com/wippyai/xmp-bridge/errors"
)

func requireName(name, what string) {
	if name == "" {
		engine.Raise(int32(errors.BadXPath), "Empty %s name", what)
	}
}

func (t *Toolkit) ComposeArrayItemPath(schemaNS, arrayName string, index int32) (string, error) {
	if err := t.trip("ComposeArrayItemPath"); err != nil {
		return "", err
	}
	t.prefix(schemaNS)
	requireName(arrayName, "array")
	if index == engine.LastItem {
		return arrayName + "[last()]", nil
	}
	if index < 1 {
		engine.Raise(int32(errors.BadParam), "Array index out of bounds")
	}
	return arrayName + "[" + strconv.Itoa(int(index)) + "]", nil
}

func (t *Toolkit) ComposeStructFieldPath(schemaNS, structName, fieldNS, fieldName string) (string, error) {
	if err := t.trip("ComposeStructFieldPath"); err != nil {
		return "", err
	}
	t.prefix(schemaNS)
	requireName(structName, "struct")
	fp := t.prefix(fieldNS)
	requireName(fieldName, "field")
	return structName + "/" + fp + fieldName, nil
}

func (t *Toolkit) ComposeQualifierPath(schemaNS, propName, qualNS, qualName string) (string, error) {
	if err := t.trip("ComposeQualifierPath"); err != nil {
		return "", err
	}
	t.prefix(schemaNS)
	requireName(propName, "property")
	qp := t.prefix(qualNS)
	requireName(qualName, "qualifier")
	return propName + "/?" + qp + qualName, nil
}

func (t *Toolkit) ComposeLangSelector(schemaNS, arrayName, lang string) (string, error) {
	if err := t.trip("ComposeLangSelector"); err != nil {
		return "", err
	}
	t.prefix(schemaNS)
	requireName(arrayName, "array")
	return arrayName + "[?xml:lang=" + strconv.Quote(normalizeLang(lang)) + "]", nil
}

func (t *Toolkit) ComposeFieldSelector(schemaNS, arrayName, fieldNS, fieldName, fieldValue string) (string, error) {
	if err := t.trip("ComposeFieldSelector"); err != nil {
		return "", err
	}
	t.prefix(schemaNS)
	requireName(arrayName, "array")
	fp := t.prefix(fieldNS)
	requireName(fieldName, "field")
	return arrayName + "[" + fp + fieldName + "=" + strconv.Quote(fieldValue) + "]", nil
}
