package testbed

import (
	"sort"

	"github.com/wippyai/xmp-bridge/engine"
	"github.com/wippyai/xmp-bridge/xmpns"
)

// node is one property, array item, struct field or qualifier.
type node struct {
	NS     string           `json:"ns,omitempty"`
	Prefix string           `json:"prefix,omitempty"`
	Name   string           `json:"name,omitempty"`
	Value  string           `json:"value,omitempty"`
	Flags  engine.PropFlags `json:"flags,omitempty"`
	Items  []*node          `json:"items,omitempty"`
	Fields []*node          `json:"fields,omitempty"`
	Quals  []*node          `json:"quals,omitempty"`
}

// inputMask keeps the flag bits a caller may set.
const inputMask = engine.PropValueIsURI | engine.PropValueIsStruct | engine.PropValueIsArray |
	engine.PropArrayIsOrdered | engine.PropArrayIsAlt | engine.PropArrayIsAltText

const arrayForms = engine.PropValueIsArray | engine.PropArrayIsOrdered |
	engine.PropArrayIsAlt | engine.PropArrayIsAltText

func propKey(ns, name string) string {
	return ns + "\x00" + name
}

// normalizeArrayFlags makes the implied array bits explicit.
func normalizeArrayFlags(f engine.PropFlags) engine.PropFlags {
	if f.Has(engine.PropArrayIsAltText) {
		f |= engine.PropArrayIsAlt
	}
	if f.Has(engine.PropArrayIsAlt) {
		f |= engine.PropArrayIsOrdered
	}
	if f&arrayForms != 0 {
		f |= engine.PropValueIsArray
	}
	return f
}

// options returns the flags reported to readers.
func (n *node) options() engine.PropFlags {
	f := n.Flags
	if len(n.Quals) > 0 {
		f |= engine.PropHasQualifiers
	}
	if n.lang() != "" {
		f |= engine.PropHasLang
	}
	return f
}

func (n *node) lang() string {
	for _, q := range n.Quals {
		if q.NS == xmpns.XML && q.Name == "lang" {
			return q.Value
		}
	}
	return ""
}

func findNode(list []*node, ns, name string) (int, *node) {
	for i, c := range list {
		if c.NS == ns && c.Name == name {
			return i, c
		}
	}
	return -1, nil
}

func (n *node) clone() *node {
	c := *n
	c.Items = cloneList(n.Items)
	c.Fields = cloneList(n.Fields)
	c.Quals = cloneList(n.Quals)
	return &c
}

func cloneList(list []*node) []*node {
	if list == nil {
		return nil
	}
	out := make([]*node, len(list))
	for i, n := range list {
		out[i] = n.clone()
	}
	return out
}

// sortChildren orders fields and qualifiers by namespace then name.
// Array items keep their order.
func (n *node) sortChildren() {
	byName := func(list []*node) {
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].NS != list[j].NS {
				return list[i].NS < list[j].NS
			}
			return list[i].Name < list[j].Name
		})
	}
	byName(n.Fields)
	byName(n.Quals)
	for _, c := range n.Items {
		c.sortChildren()
	}
	for _, c := range n.Fields {
		c.sortChildren()
	}
}
