package engine

// Toolkit is the process-wide face of the engine.
//
// Namespace registration touches global engine state. Implementations must
// make RegisterNamespace safe for concurrent use; the bridge adds no locking
// of its own.
type Toolkit interface {
	// Initialize runs the engine's global setup routines.
	// The bridge calls it at most once per process.
	Initialize() error

	// Terminate tears down global state. The bridge never calls it.
	Terminate()

	NewFile() (File, error)
	NewMeta() (Meta, error)
	ParseMeta(buffer []byte, flags ParseFlags) (Meta, error)

	RegisterNamespace(uri, suggestedPrefix string) (string, error)
	NamespacePrefix(uri string) (prefix string, found bool, err error)
	NamespaceURI(prefix string) (uri string, found bool, err error)
	DumpNamespaces(out TextOutput) error

	PathComposer
	Clock
}

// PathComposer builds path expressions. The results depend on the global
// namespace registry.
type PathComposer interface {
	ComposeArrayItemPath(schemaNS, arrayName string, index int32) (string, error)
	ComposeStructFieldPath(schemaNS, structName, fieldNS, fieldName string) (string, error)
	ComposeQualifierPath(schemaNS, propName, qualNS, qualName string) (string, error)
	ComposeLangSelector(schemaNS, arrayName, lang string) (string, error)
	ComposeFieldSelector(schemaNS, arrayName, fieldNS, fieldName, fieldValue string) (string, error)
}

// Clock holds the engine's date-time utilities.
type Clock interface {
	CurrentDateTime() (DateTime, error)
	SetTimeZone(dt *DateTime) error
	ConvertToUTC(dt *DateTime) error
	ConvertToLocal(dt *DateTime) error
	CompareDateTime(left, right DateTime) (int, error)
	FormatDateTime(dt DateTime) (string, error)
	ParseDateTime(s string) (DateTime, error)
}

// File is a file opened for metadata access.
type File interface {
	// SetErrorCallback installs cb for problems detected during I/O.
	// At most limit notifications are delivered per operation.
	SetErrorCallback(cb ErrorCallback, limit uint32) error

	Open(path string, format uint32, flags OpenFlags) (bool, error)
	Close(flags CloseFlags) error

	// GetXMP returns found=false when the file carries no metadata.
	GetXMP() (meta Meta, found bool, err error)
	PutXMP(meta Meta) error
	CanPutXMP(meta Meta) (bool, error)
}

// Meta is a metadata document.
type Meta interface {
	Clone() (Meta, error)
	Serialize(flags SerializeFlags, padding uint32, newline, indent string, baseIndent int32) (string, error)
	Sort() error
	ObjectName() (string, error)
	SetObjectName(name string) error
	DumpObject(out TextOutput) error

	GetProperty(schemaNS, propName string) (string, PropFlags, bool, error)
	GetPropertyBool(schemaNS, propName string) (bool, PropFlags, bool, error)
	GetPropertyInt(schemaNS, propName string) (int32, PropFlags, bool, error)
	GetPropertyInt64(schemaNS, propName string) (int64, PropFlags, bool, error)
	GetPropertyFloat(schemaNS, propName string) (float64, PropFlags, bool, error)
	GetPropertyDate(schemaNS, propName string) (DateTime, PropFlags, bool, error)

	SetProperty(schemaNS, propName, value string, flags PropFlags) error
	SetPropertyBool(schemaNS, propName string, value bool, flags PropFlags) error
	SetPropertyInt(schemaNS, propName string, value int32, flags PropFlags) error
	SetPropertyInt64(schemaNS, propName string, value int64, flags PropFlags) error
	SetPropertyFloat(schemaNS, propName string, value float64, flags PropFlags) error
	SetPropertyDate(schemaNS, propName string, value DateTime, flags PropFlags) error

	DoesPropertyExist(schemaNS, propName string) (bool, error)
	DeleteProperty(schemaNS, propName string) error

	GetArrayItem(schemaNS, arrayName string, index int32) (string, PropFlags, bool, error)
	SetArrayItem(schemaNS, arrayName string, index int32, value string, flags PropFlags) error
	AppendArrayItem(schemaNS, arrayName string, arrayFlags PropFlags, value string, itemFlags PropFlags) error
	DeleteArrayItem(schemaNS, arrayName string, index int32) error
	CountArrayItems(schemaNS, arrayName string) (int32, error)
	DoesArrayItemExist(schemaNS, arrayName string, index int32) (bool, error)

	GetStructField(schemaNS, structName, fieldNS, fieldName string) (string, PropFlags, bool, error)
	SetStructField(schemaNS, structName, fieldNS, fieldName, value string, flags PropFlags) error
	DeleteStructField(schemaNS, structName, fieldNS, fieldName string) error
	DoesStructFieldExist(schemaNS, structName, fieldNS, fieldName string) (bool, error)

	GetQualifier(schemaNS, propName, qualNS, qualName string) (string, PropFlags, bool, error)
	SetQualifier(schemaNS, propName, qualNS, qualName, value string, flags PropFlags) error
	DeleteQualifier(schemaNS, propName, qualNS, qualName string) error
	DoesQualifierExist(schemaNS, propName, qualNS, qualName string) (bool, error)

	// GetLocalizedText selects an alt-text item. genericLang may be empty.
	GetLocalizedText(schemaNS, altTextName, genericLang, specificLang string) (value, actualLang string, flags PropFlags, found bool, err error)
	SetLocalizedText(schemaNS, altTextName, genericLang, specificLang, value string, flags PropFlags) error

	Iterate(schemaNS, propName string, flags IterFlags) (Iterator, error)
}

// Iterator walks the nodes of a Meta in engine-defined order.
type Iterator interface {
	Next() (node Node, ok bool, err error)
	Skip(flags SkipFlags) error
}

// Node is one visited position of an Iterator.
type Node struct {
	SchemaNS string
	Path     string
	Value    string
	Flags    PropFlags
}

// Releaser is implemented by engine objects that hold resources beyond
// Go memory. The bridge calls Release once when the owning handle is
// dropped.
type Releaser interface {
	Release()
}
