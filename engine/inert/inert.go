// Package inert provides an engine that does nothing.
//
// Every operation succeeds. Getters report absence, counts are zero,
// text results are empty and iterators are exhausted from the start.
// It backs builds without a metadata toolkit and memory-management tests
// that must not depend on engine behavior.
package inert

import (
	"github.com/wippyai/xmp-bridge/engine"
)

// Toolkit is the inert engine.Toolkit.
type Toolkit struct{}

var _ engine.Toolkit = Toolkit{}

// New returns the inert toolkit.
func New() Toolkit { return Toolkit{} }

func (Toolkit) Initialize() error { return nil }
func (Toolkit) Terminate()        {}

func (Toolkit) NewFile() (engine.File, error) { return file{}, nil }
func (Toolkit) NewMeta() (engine.Meta, error) { return meta{}, nil }

func (Toolkit) ParseMeta([]byte, engine.ParseFlags) (engine.Meta, error) { return meta{}, nil }

func (Toolkit) RegisterNamespace(string, string) (string, error) { return "", nil }
func (Toolkit) NamespacePrefix(string) (string, bool, error)     { return "", false, nil }
func (Toolkit) NamespaceURI(string) (string, bool, error)        { return "", false, nil }
func (Toolkit) DumpNamespaces(engine.TextOutput) error           { return nil }

func (Toolkit) ComposeArrayItemPath(string, string, int32) (string, error) { return "", nil }
func (Toolkit) ComposeStructFieldPath(string, string, string, string) (string, error) {
	return "", nil
}
func (Toolkit) ComposeQualifierPath(string, string, string, string) (string, error) {
	return "", nil
}
func (Toolkit) ComposeLangSelector(string, string, string) (string, error) { return "", nil }
func (Toolkit) ComposeFieldSelector(string, string, string, string, string) (string, error) {
	return "", nil
}

func (Toolkit) CurrentDateTime() (engine.DateTime, error)                     { return engine.DateTime{}, nil }
func (Toolkit) SetTimeZone(*engine.DateTime) error                            { return nil }
func (Toolkit) ConvertToUTC(*engine.DateTime) error                           { return nil }
func (Toolkit) ConvertToLocal(*engine.DateTime) error                         { return nil }
func (Toolkit) CompareDateTime(engine.DateTime, engine.DateTime) (int, error) { return 0, nil }
func (Toolkit) FormatDateTime(engine.DateTime) (string, error)                { return "", nil }
func (Toolkit) ParseDateTime(string) (engine.DateTime, error)                 { return engine.DateTime{}, nil }

type file struct{}

func (file) SetErrorCallback(engine.ErrorCallback, uint32) error { return nil }
func (file) Open(string, uint32, engine.OpenFlags) (bool, error) { return true, nil }
func (file) Close(engine.CloseFlags) error                       { return nil }
func (file) GetXMP() (engine.Meta, bool, error)                  { return nil, false, nil }
func (file) PutXMP(engine.Meta) error                            { return nil }
func (file) CanPutXMP(engine.Meta) (bool, error)                 { return false, nil }

type meta struct{}

func (meta) Clone() (engine.Meta, error) { return meta{}, nil }
func (meta) Serialize(engine.SerializeFlags, uint32, string, string, int32) (string, error) {
	return "", nil
}
func (meta) Sort() error                        { return nil }
func (meta) ObjectName() (string, error)        { return "", nil }
func (meta) SetObjectName(string) error         { return nil }
func (meta) DumpObject(engine.TextOutput) error { return nil }

func (meta) GetProperty(string, string) (string, engine.PropFlags, bool, error) {
	return "", 0, false, nil
}
func (meta) GetPropertyBool(string, string) (bool, engine.PropFlags, bool, error) {
	return false, 0, false, nil
}
func (meta) GetPropertyInt(string, string) (int32, engine.PropFlags, bool, error) {
	return 0, 0, false, nil
}
func (meta) GetPropertyInt64(string, string) (int64, engine.PropFlags, bool, error) {
	return 0, 0, false, nil
}
func (meta) GetPropertyFloat(string, string) (float64, engine.PropFlags, bool, error) {
	return 0, 0, false, nil
}
func (meta) GetPropertyDate(string, string) (engine.DateTime, engine.PropFlags, bool, error) {
	return engine.DateTime{}, 0, false, nil
}

func (meta) SetProperty(string, string, string, engine.PropFlags) error              { return nil }
func (meta) SetPropertyBool(string, string, bool, engine.PropFlags) error            { return nil }
func (meta) SetPropertyInt(string, string, int32, engine.PropFlags) error            { return nil }
func (meta) SetPropertyInt64(string, string, int64, engine.PropFlags) error          { return nil }
func (meta) SetPropertyFloat(string, string, float64, engine.PropFlags) error        { return nil }
func (meta) SetPropertyDate(string, string, engine.DateTime, engine.PropFlags) error { return nil }

func (meta) DoesPropertyExist(string, string) (bool, error) { return false, nil }
func (meta) DeleteProperty(string, string) error            { return nil }

func (meta) GetArrayItem(string, string, int32) (string, engine.PropFlags, bool, error) {
	return "", 0, false, nil
}
func (meta) SetArrayItem(string, string, int32, string, engine.PropFlags) error { return nil }
func (meta) AppendArrayItem(string, string, engine.PropFlags, string, engine.PropFlags) error {
	return nil
}
func (meta) DeleteArrayItem(string, string, int32) error            { return nil }
func (meta) CountArrayItems(string, string) (int32, error)          { return 0, nil }
func (meta) DoesArrayItemExist(string, string, int32) (bool, error) { return false, nil }

func (meta) GetStructField(string, string, string, string) (string, engine.PropFlags, bool, error) {
	return "", 0, false, nil
}
func (meta) SetStructField(string, string, string, string, string, engine.PropFlags) error {
	return nil
}
func (meta) DeleteStructField(string, string, string, string) error            { return nil }
func (meta) DoesStructFieldExist(string, string, string, string) (bool, error) { return false, nil }

func (meta) GetQualifier(string, string, string, string) (string, engine.PropFlags, bool, error) {
	return "", 0, false, nil
}
func (meta) SetQualifier(string, string, string, string, string, engine.PropFlags) error {
	return nil
}
func (meta) DeleteQualifier(string, string, string, string) error            { return nil }
func (meta) DoesQualifierExist(string, string, string, string) (bool, error) { return false, nil }

func (meta) GetLocalizedText(string, string, string, string) (string, string, engine.PropFlags, bool, error) {
	return "", "", 0, false, nil
}
func (meta) SetLocalizedText(string, string, string, string, string, engine.PropFlags) error {
	return nil
}

func (meta) Iterate(string, string, engine.IterFlags) (engine.Iterator, error) {
	return iterator{}, nil
}

type iterator struct{}

func (iterator) Next() (engine.Node, bool, error) { return engine.Node{}, false, nil }
func (iterator) Skip(engine.SkipFlags) error      { return nil }
