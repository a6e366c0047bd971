package testbed

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/tidwall/btree"

	"github.com/wippyai/xmp-bridge/engine"
	"github.com/wippyai/xmp-bridge/errors"
)

// Meta is an in-memory metadata document. Top-level properties are kept
// in a btree keyed by namespace and name.
type Meta struct {
	tk       *Toolkit
	props    *btree.Map[string, *node]
	name     string
	released atomic.Bool
}

var _ engine.Meta = (*Meta)(nil)

// Release implements engine.Releaser.
func (m *Meta) Release() {
	if m.released.CompareAndSwap(false, true) {
		m.tk.live.Add(-1)
	}
}

// Len returns the number of top-level properties.
func (m *Meta) Len() int {
	return m.props.Len()
}

// top validates a property address and returns the node, if present.
func (m *Meta) top(ns, name string) *node {
	m.tk.prefix(ns)
	requireName(name, "property")
	n, _ := m.props.Get(propKey(ns, name))
	return n
}

func (m *Meta) Clone() (engine.Meta, error) {
	if err := m.tk.trip("Clone"); err != nil {
		return nil, err
	}
	c := m.tk.newMeta()
	c.name = m.name
	m.props.Scan(func(k string, n *node) bool {
		c.props.Set(k, n.clone())
		return true
	})
	return c, nil
}

func (m *Meta) Sort() error {
	if err := m.tk.trip("Sort"); err != nil {
		return err
	}
	m.props.Scan(func(_ string, n *node) bool {
		n.sortChildren()
		return true
	})
	return nil
}

func (m *Meta) ObjectName() (string, error) {
	if err := m.tk.trip("ObjectName"); err != nil {
		return "", err
	}
	return m.name, nil
}

func (m *Meta) SetObjectName(name string) error {
	if err := m.tk.trip("SetObjectName"); err != nil {
		return err
	}
	m.name = name
	return nil
}

func (m *Meta) DumpObject(out engine.TextOutput) error {
	if err := m.tk.trip("DumpObject"); err != nil {
		return err
	}
	if err := out([]byte(fmt.Sprintf("Dumping XMPMeta object %q\n", m.name))); err != nil {
		return err
	}
	var err error
	m.props.Scan(func(_ string, n *node) bool {
		err = m.dumpNode(out, n, m.tk.prefix(n.NS)+n.Name, 1)
		return err == nil
	})
	return err
}

func (m *Meta) dumpNode(out engine.TextOutput, n *node, path string, depth int) error {
	line := fmt.Sprintf("%s%s = %q  (0x%X)\n", strings.Repeat("   ", depth), path, n.Value, uint32(n.options()))
	if err := out([]byte(line)); err != nil {
		return err
	}
	for _, q := range n.Quals {
		if err := m.dumpNode(out, q, "?"+m.tk.prefix(q.NS)+q.Name, depth+1); err != nil {
			return err
		}
	}
	for i, it := range n.Items {
		if err := m.dumpNode(out, it, "["+strconv.Itoa(i+1)+"]", depth+1); err != nil {
			return err
		}
	}
	for _, f := range n.Fields {
		if err := m.dumpNode(out, f, m.tk.prefix(f.NS)+f.Name, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (m *Meta) GetProperty(schemaNS, propName string) (string, engine.PropFlags, bool, error) {
	if err := m.tk.trip("GetProperty"); err != nil {
		return "", 0, false, err
	}
	n := m.top(schemaNS, propName)
	if n == nil {
		return "", 0, false, nil
	}
	return n.Value, n.options(), true, nil
}

// simpleValue fetches a property that must not be composite.
func (m *Meta) simpleValue(op, schemaNS, propName string) (string, engine.PropFlags, bool, error) {
	if err := m.tk.trip(op); err != nil {
		return "", 0, false, err
	}
	n := m.top(schemaNS, propName)
	if n == nil {
		return "", 0, false, nil
	}
	if n.Flags&(engine.PropValueIsArray|engine.PropValueIsStruct) != 0 {
		engine.Raise(int32(errors.BadXPath), "Property must be simple")
	}
	return n.Value, n.options(), true, nil
}

func (m *Meta) GetPropertyBool(schemaNS, propName string) (bool, engine.PropFlags, bool, error) {
	s, f, ok, err := m.simpleValue("GetPropertyBool", schemaNS, propName)
	if err != nil || !ok {
		return false, 0, ok, err
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "1":
		return true, f, true, nil
	case "false", "f", "0":
		return false, f, true, nil
	}
	engine.Raise(int32(errors.BadValue), "Invalid Boolean string")
	return false, 0, false, nil
}

func (m *Meta) GetPropertyInt(schemaNS, propName string) (int32, engine.PropFlags, bool, error) {
	s, f, ok, err := m.simpleValue("GetPropertyInt", schemaNS, propName)
	if err != nil || !ok {
		return 0, 0, ok, err
	}
	v, perr := strconv.ParseInt(strings.TrimSpace(s), 0, 32)
	if perr != nil {
		engine.Raise(int32(errors.BadValue), "Invalid integer string")
	}
	return int32(v), f, true, nil
}

func (m *Meta) GetPropertyInt64(schemaNS, propName string) (int64, engine.PropFlags, bool, error) {
	s, f, ok, err := m.simpleValue("GetPropertyInt64", schemaNS, propName)
	if err != nil || !ok {
		return 0, 0, ok, err
	}
	v, perr := strconv.ParseInt(strings.TrimSpace(s), 0, 64)
	if perr != nil {
		engine.Raise(int32(errors.BadValue), "Invalid integer string")
	}
	return v, f, true, nil
}

func (m *Meta) GetPropertyFloat(schemaNS, propName string) (float64, engine.PropFlags, bool, error) {
	s, f, ok, err := m.simpleValue("GetPropertyFloat", schemaNS, propName)
	if err != nil || !ok {
		return 0, 0, ok, err
	}
	v, perr := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if perr != nil {
		engine.Raise(int32(errors.BadValue), "Invalid float string")
	}
	return v, f, true, nil
}

func (m *Meta) GetPropertyDate(schemaNS, propName string) (engine.DateTime, engine.PropFlags, bool, error) {
	s, f, ok, err := m.simpleValue("GetPropertyDate", schemaNS, propName)
	if err != nil || !ok {
		return engine.DateTime{}, 0, ok, err
	}
	dt, valid := parseDateTime(s)
	if !valid {
		engine.Raise(int32(errors.BadValue), "Invalid date string")
	}
	return dt, f, true, nil
}

func (m *Meta) SetProperty(schemaNS, propName, value string, flags engine.PropFlags) error {
	if err := m.tk.trip("SetProperty"); err != nil {
		return err
	}
	return m.set(schemaNS, propName, value, flags)
}

func (m *Meta) set(schemaNS, propName, value string, flags engine.PropFlags) error {
	prefix := m.tk.prefix(schemaNS)
	requireName(propName, "property")
	flags &= inputMask
	if flags&arrayForms != 0 {
		flags = normalizeArrayFlags(flags)
	}
	composite := flags&(engine.PropValueIsArray|engine.PropValueIsStruct) != 0
	if composite && value != "" {
		engine.Raise(int32(errors.BadOptions), "Composite nodes can't have values")
	}

	key := propKey(schemaNS, propName)
	n, ok := m.props.Get(key)
	if !ok {
		m.props.Set(key, &node{NS: schemaNS, Prefix: prefix, Name: propName, Value: value, Flags: flags})
		return nil
	}
	if n.Flags&(engine.PropValueIsArray|engine.PropValueIsStruct) != flags&(engine.PropValueIsArray|engine.PropValueIsStruct) {
		engine.Raise(int32(errors.BadXPath), "Requested and existing composite form mismatch")
	}
	n.Value = value
	n.Flags = flags
	return nil
}

func (m *Meta) SetPropertyBool(schemaNS, propName string, value bool, flags engine.PropFlags) error {
	if err := m.tk.trip("SetPropertyBool"); err != nil {
		return err
	}
	s := "False"
	if value {
		s = "True"
	}
	return m.set(schemaNS, propName, s, flags)
}

func (m *Meta) SetPropertyInt(schemaNS, propName string, value int32, flags engine.PropFlags) error {
	if err := m.tk.trip("SetPropertyInt"); err != nil {
		return err
	}
	return m.set(schemaNS, propName, strconv.FormatInt(int64(value), 10), flags)
}

func (m *Meta) SetPropertyInt64(schemaNS, propName string, value int64, flags engine.PropFlags) error {
	if err := m.tk.trip("SetPropertyInt64"); err != nil {
		return err
	}
	return m.set(schemaNS, propName, strconv.FormatInt(value, 10), flags)
}

func (m *Meta) SetPropertyFloat(schemaNS, propName string, value float64, flags engine.PropFlags) error {
	if err := m.tk.trip("SetPropertyFloat"); err != nil {
		return err
	}
	return m.set(schemaNS, propName, strconv.FormatFloat(value, 'f', -1, 64), flags)
}

func (m *Meta) SetPropertyDate(schemaNS, propName string, value engine.DateTime, flags engine.PropFlags) error {
	if err := m.tk.trip("SetPropertyDate"); err != nil {
		return err
	}
	return m.set(schemaNS, propName, formatDateTime(value), flags)
}

func (m *Meta) DoesPropertyExist(schemaNS, propName string) (bool, error) {
	if err := m.tk.trip("DoesPropertyExist"); err != nil {
		return false, err
	}
	return m.top(schemaNS, propName) != nil, nil
}

func (m *Meta) DeleteProperty(schemaNS, propName string) error {
	if err := m.tk.trip("DeleteProperty"); err != nil {
		return err
	}
	m.tk.prefix(schemaNS)
	requireName(propName, "property")
	m.props.Delete(propKey(schemaNS, propName))
	return nil
}
