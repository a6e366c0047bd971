package testbed

import (
	"strings"

	"github.com/wippyai/xmp-bridge/engine"
	"github.com/wippyai/xmp-bridge/errors"
	"github.com/wippyai/xmp-bridge/xmpns"
)

// array returns the named array, nil when absent.
func (m *Meta) array(schemaNS, arrayName string) *node {
	m.tk.prefix(schemaNS)
	requireName(arrayName, "array")
	n, _ := m.props.Get(propKey(schemaNS, arrayName))
	if n != nil && !n.Flags.Has(engine.PropValueIsArray) {
		engine.Raise(int32(errors.BadXPath), "Named node is not an array")
	}
	return n
}

// resolveIndex maps a 1-based index, or LastItem, onto a slice position.
// It reports false when the index is past the end.
func resolveIndex(n *node, index int32) (int, bool) {
	if index == engine.LastItem {
		if len(n.Items) == 0 {
			return 0, false
		}
		index = int32(len(n.Items))
	}
	if index < 1 {
		engine.Raise(int32(errors.BadIndex), "Array index must be larger than zero")
	}
	if int(index) > len(n.Items) {
		return 0, false
	}
	return int(index) - 1, true
}

func (m *Meta) GetArrayItem(schemaNS, arrayName string, index int32) (string, engine.PropFlags, bool, error) {
	if err := m.tk.trip("GetArrayItem"); err != nil {
		return "", 0, false, err
	}
	n := m.array(schemaNS, arrayName)
	if n == nil {
		return "", 0, false, nil
	}
	i, ok := resolveIndex(n, index)
	if !ok {
		return "", 0, false, nil
	}
	it := n.Items[i]
	return it.Value, it.options(), true, nil
}

func (m *Meta) SetArrayItem(schemaNS, arrayName string, index int32, value string, flags engine.PropFlags) error {
	if err := m.tk.trip("SetArrayItem"); err != nil {
		return err
	}
	n := m.array(schemaNS, arrayName)
	if n == nil {
		engine.Raise(int32(errors.BadXPath), "Specified array does not exist")
	}
	if index == engine.LastItem {
		index = int32(len(n.Items))
	}
	item := &node{Value: value, Flags: flags & inputMask}

	switch {
	case flags.Has(engine.PropArrayInsertBefore):
		if index < 1 || int(index) > len(n.Items)+1 {
			engine.Raise(int32(errors.BadIndex), "Array index out of bounds")
		}
		n.Items = insertAt(n.Items, int(index)-1, item)
	case flags.Has(engine.PropArrayInsertAfter):
		if index < 0 || int(index) > len(n.Items) {
			engine.Raise(int32(errors.BadIndex), "Array index out of bounds")
		}
		n.Items = insertAt(n.Items, int(index), item)
	default:
		switch {
		case index >= 1 && int(index) <= len(n.Items):
			item.Quals = n.Items[index-1].Quals
			n.Items[index-1] = item
		case int(index) == len(n.Items)+1:
			n.Items = append(n.Items, item)
		default:
			engine.Raise(int32(errors.BadIndex), "Array index out of bounds")
		}
	}
	return nil
}

func insertAt(list []*node, i int, n *node) []*node {
	list = append(list, nil)
	copy(list[i+1:], list[i:])
	list[i] = n
	return list
}

func (m *Meta) AppendArrayItem(schemaNS, arrayName string, arrayFlags engine.PropFlags, value string, itemFlags engine.PropFlags) error {
	if err := m.tk.trip("AppendArrayItem"); err != nil {
		return err
	}
	n := m.array(schemaNS, arrayName)
	if n == nil {
		if arrayFlags&arrayForms == 0 {
			engine.Raise(int32(errors.BadOptions), "Explicit array form required to create new array")
		}
		n = &node{
			NS:     schemaNS,
			Prefix: m.tk.prefix(schemaNS),
			Name:   arrayName,
			Flags:  normalizeArrayFlags(arrayFlags & inputMask),
		}
		m.props.Set(propKey(schemaNS, arrayName), n)
	}
	n.Items = append(n.Items, &node{Value: value, Flags: itemFlags & inputMask})
	return nil
}

func (m *Meta) DeleteArrayItem(schemaNS, arrayName string, index int32) error {
	if err := m.tk.trip("DeleteArrayItem"); err != nil {
		return err
	}
	n := m.array(schemaNS, arrayName)
	if n == nil {
		return nil
	}
	if i, ok := resolveIndex(n, index); ok {
		n.Items = append(n.Items[:i], n.Items[i+1:]...)
	}
	return nil
}

func (m *Meta) CountArrayItems(schemaNS, arrayName string) (int32, error) {
	if err := m.tk.trip("CountArrayItems"); err != nil {
		return 0, err
	}
	n := m.array(schemaNS, arrayName)
	if n == nil {
		return 0, nil
	}
	return int32(len(n.Items)), nil
}

func (m *Meta) DoesArrayItemExist(schemaNS, arrayName string, index int32) (bool, error) {
	if err := m.tk.trip("DoesArrayItemExist"); err != nil {
		return false, err
	}
	n := m.array(schemaNS, arrayName)
	if n == nil {
		return false, nil
	}
	_, ok := resolveIndex(n, index)
	return ok, nil
}

// structNode returns the named struct, nil when absent.
func (m *Meta) structNode(schemaNS, structName, fieldNS, fieldName string) *node {
	m.tk.prefix(schemaNS)
	requireName(structName, "struct")
	m.tk.prefix(fieldNS)
	requireName(fieldName, "field")
	n, _ := m.props.Get(propKey(schemaNS, structName))
	if n != nil && !n.Flags.Has(engine.PropValueIsStruct) {
		engine.Raise(int32(errors.BadXPath), "Named node is not a struct")
	}
	return n
}

func (m *Meta) GetStructField(schemaNS, structName, fieldNS, fieldName string) (string, engine.PropFlags, bool, error) {
	if err := m.tk.trip("GetStructField"); err != nil {
		return "", 0, false, err
	}
	n := m.structNode(schemaNS, structName, fieldNS, fieldName)
	if n == nil {
		return "", 0, false, nil
	}
	_, f := findNode(n.Fields, fieldNS, fieldName)
	if f == nil {
		return "", 0, false, nil
	}
	return f.Value, f.options(), true, nil
}

func (m *Meta) SetStructField(schemaNS, structName, fieldNS, fieldName, value string, flags engine.PropFlags) error {
	if err := m.tk.trip("SetStructField"); err != nil {
		return err
	}
	n := m.structNode(schemaNS, structName, fieldNS, fieldName)
	if n == nil {
		n = &node{
			NS:     schemaNS,
			Prefix: m.tk.prefix(schemaNS),
			Name:   structName,
			Flags:  engine.PropValueIsStruct,
		}
		m.props.Set(propKey(schemaNS, structName), n)
	}
	if _, f := findNode(n.Fields, fieldNS, fieldName); f != nil {
		f.Value = value
		f.Flags = flags & inputMask
		return nil
	}
	n.Fields = append(n.Fields, &node{
		NS:     fieldNS,
		Prefix: m.tk.prefix(fieldNS),
		Name:   fieldName,
		Value:  value,
		Flags:  flags & inputMask,
	})
	return nil
}

func (m *Meta) DeleteStructField(schemaNS, structName, fieldNS, fieldName string) error {
	if err := m.tk.trip("DeleteStructField"); err != nil {
		return err
	}
	n := m.structNode(schemaNS, structName, fieldNS, fieldName)
	if n == nil {
		return nil
	}
	if i, _ := findNode(n.Fields, fieldNS, fieldName); i >= 0 {
		n.Fields = append(n.Fields[:i], n.Fields[i+1:]...)
	}
	return nil
}

func (m *Meta) DoesStructFieldExist(schemaNS, structName, fieldNS, fieldName string) (bool, error) {
	if err := m.tk.trip("DoesStructFieldExist"); err != nil {
		return false, err
	}
	n := m.structNode(schemaNS, structName, fieldNS, fieldName)
	if n == nil {
		return false, nil
	}
	i, _ := findNode(n.Fields, fieldNS, fieldName)
	return i >= 0, nil
}

func (m *Meta) qualified(schemaNS, propName, qualNS, qualName string) *node {
	n := m.top(schemaNS, propName)
	m.tk.prefix(qualNS)
	requireName(qualName, "qualifier")
	return n
}

func (m *Meta) GetQualifier(schemaNS, propName, qualNS, qualName string) (string, engine.PropFlags, bool, error) {
	if err := m.tk.trip("GetQualifier"); err != nil {
		return "", 0, false, err
	}
	n := m.qualified(schemaNS, propName, qualNS, qualName)
	if n == nil {
		return "", 0, false, nil
	}
	_, q := findNode(n.Quals, qualNS, qualName)
	if q == nil {
		return "", 0, false, nil
	}
	return q.Value, q.options() | engine.PropIsQualifier, true, nil
}

func (m *Meta) SetQualifier(schemaNS, propName, qualNS, qualName, value string, flags engine.PropFlags) error {
	if err := m.tk.trip("SetQualifier"); err != nil {
		return err
	}
	n := m.qualified(schemaNS, propName, qualNS, qualName)
	if n == nil {
		engine.Raise(int32(errors.BadXPath), "Specified property does not exist")
	}
	if qualNS == xmpns.XML && qualName == "lang" {
		value = normalizeLang(value)
	}
	if _, q := findNode(n.Quals, qualNS, qualName); q != nil {
		q.Value = value
		q.Flags = flags & inputMask
		return nil
	}
	n.Quals = append(n.Quals, &node{
		NS:     qualNS,
		Prefix: m.tk.prefix(qualNS),
		Name:   qualName,
		Value:  value,
		Flags:  flags & inputMask,
	})
	return nil
}

func (m *Meta) DeleteQualifier(schemaNS, propName, qualNS, qualName string) error {
	if err := m.tk.trip("DeleteQualifier"); err != nil {
		return err
	}
	n := m.qualified(schemaNS, propName, qualNS, qualName)
	if n == nil {
		return nil
	}
	if i, _ := findNode(n.Quals, qualNS, qualName); i >= 0 {
		n.Quals = append(n.Quals[:i], n.Quals[i+1:]...)
	}
	return nil
}

func (m *Meta) DoesQualifierExist(schemaNS, propName, qualNS, qualName string) (bool, error) {
	if err := m.tk.trip("DoesQualifierExist"); err != nil {
		return false, err
	}
	n := m.qualified(schemaNS, propName, qualNS, qualName)
	if n == nil {
		return false, nil
	}
	i, _ := findNode(n.Quals, qualNS, qualName)
	return i >= 0, nil
}

const xDefault = "x-default"

// normalizeLang lowercases a language tag; x-default is kept as is.
func normalizeLang(lang string) string {
	return strings.ToLower(lang)
}

func langNode(lang string) *node {
	return &node{NS: xmpns.XML, Prefix: "xml:", Name: "lang", Value: lang}
}

// GetLocalizedText picks an item by exact specific language, then by the
// generic language's first match, then x-default, then the first item.
func (m *Meta) GetLocalizedText(schemaNS, altTextName, genericLang, specificLang string) (string, string, engine.PropFlags, bool, error) {
	if err := m.tk.trip("GetLocalizedText"); err != nil {
		return "", "", 0, false, err
	}
	if specificLang == "" {
		engine.Raise(int32(errors.BadParam), "Empty specific language")
	}
	n := m.array(schemaNS, altTextName)
	if n == nil || len(n.Items) == 0 {
		return "", "", 0, false, nil
	}
	if !n.Flags.Has(engine.PropArrayIsAltText) {
		engine.Raise(int32(errors.BadXPath), "Localized text array is not alt-text")
	}

	it := selectLang(n.Items, normalizeLang(genericLang), normalizeLang(specificLang))
	return it.Value, it.lang(), it.options(), true, nil
}

func selectLang(items []*node, generic, specific string) *node {
	for _, it := range items {
		if it.lang() == specific {
			return it
		}
	}
	if generic != "" {
		for _, it := range items {
			l := it.lang()
			if l == generic || strings.HasPrefix(l, generic+"-") {
				return it
			}
		}
	}
	for _, it := range items {
		if it.lang() == xDefault {
			return it
		}
	}
	return items[0]
}

// SetLocalizedText updates or adds the specific-language item. An array
// without an x-default item gets one carrying the same value.
func (m *Meta) SetLocalizedText(schemaNS, altTextName, genericLang, specificLang, value string, flags engine.PropFlags) error {
	if err := m.tk.trip("SetLocalizedText"); err != nil {
		return err
	}
	if specificLang == "" {
		engine.Raise(int32(errors.BadParam), "Empty specific language")
	}
	specific := normalizeLang(specificLang)

	n := m.array(schemaNS, altTextName)
	if n == nil {
		n = &node{
			NS:     schemaNS,
			Prefix: m.tk.prefix(schemaNS),
			Name:   altTextName,
			Flags:  normalizeArrayFlags(engine.PropArrayIsAltText),
		}
		m.props.Set(propKey(schemaNS, altTextName), n)
	} else if !n.Flags.Has(engine.PropArrayIsAltText) {
		engine.Raise(int32(errors.BadXPath), "Localized text array is not alt-text")
	}

	var hasDefault bool
	var target *node
	for _, it := range n.Items {
		switch it.lang() {
		case xDefault:
			hasDefault = true
			if specific == xDefault {
				target = it
			}
		case specific:
			target = it
		}
	}

	if target != nil {
		target.Value = value
	} else {
		n.Items = append(n.Items, &node{
			Value: value,
			Flags: flags & inputMask,
			Quals: []*node{langNode(specific)},
		})
	}
	if !hasDefault && specific != xDefault {
		n.Items = insertAt(n.Items, 0, &node{Value: value, Quals: []*node{langNode(xDefault)}})
	}
	return nil
}
