package engine

// OpenFlags control File.Open.
type OpenFlags uint32

const (
	OpenForRead           OpenFlags = 0x00000001
	OpenForUpdate         OpenFlags = 0x00000002
	OpenOnlyXMP           OpenFlags = 0x00000004
	OpenForceGivenHandler OpenFlags = 0x00000008
	OpenStrictly          OpenFlags = 0x00000010
	OpenUseSmartHandler   OpenFlags = 0x00000020
	OpenUsePacketScanning OpenFlags = 0x00000040
	OpenLimitedScanning   OpenFlags = 0x00000080
	OpenRepairFile        OpenFlags = 0x00000100
	OpenOptimizeLayout    OpenFlags = 0x00000200
)

// CloseFlags control File.Close.
type CloseFlags uint32

const (
	CloseSafeUpdate CloseFlags = 0x0001
)

// UnknownFormat lets the engine detect the file format.
const UnknownFormat uint32 = 0x20202020

// PropFlags describe a property node. The same bits are used as input
// options for setters and as output options for getters.
type PropFlags uint32

const (
	PropValueIsURI        PropFlags = 0x00000002
	PropHasQualifiers     PropFlags = 0x00000010
	PropIsQualifier       PropFlags = 0x00000020
	PropHasLang           PropFlags = 0x00000040
	PropHasType           PropFlags = 0x00000080
	PropValueIsStruct     PropFlags = 0x00000100
	PropValueIsArray      PropFlags = 0x00000200
	PropArrayIsOrdered    PropFlags = 0x00000400
	PropArrayIsAlt        PropFlags = 0x00000800
	PropArrayIsAltText    PropFlags = 0x00001000
	PropIsAlias           PropFlags = 0x00010000
	PropHasAliases        PropFlags = 0x00020000
	PropIsInternal        PropFlags = 0x00040000
	PropIsStable          PropFlags = 0x00100000
	PropIsDerived         PropFlags = 0x00200000
	PropIsSchemaNode      PropFlags = 0x80000000
	PropArrayInsertBefore PropFlags = 0x00004000
	PropArrayInsertAfter  PropFlags = 0x00008000
)

// Has reports whether all bits of f are set.
func (p PropFlags) Has(f PropFlags) bool {
	return p&f == f
}

// IsArray reports whether the node is any kind of array.
func (p PropFlags) IsArray() bool {
	return p&PropValueIsArray != 0
}

// IsStruct reports whether the node is a struct.
func (p PropFlags) IsStruct() bool {
	return p&PropValueIsStruct != 0
}

// IterFlags control Meta.Iterate.
type IterFlags uint32

const (
	IterJustChildren   IterFlags = 0x0100
	IterJustLeafNodes  IterFlags = 0x0200
	IterJustLeafName   IterFlags = 0x0400
	IterOmitQualifiers IterFlags = 0x1000
)

// SkipFlags control Iterator.Skip.
type SkipFlags uint32

const (
	SkipSubtree  SkipFlags = 0x0001
	SkipSiblings SkipFlags = 0x0002
)

// ParseFlags control Toolkit.ParseMeta.
type ParseFlags uint32

const (
	ParseRequireXMPMeta ParseFlags = 0x0001
	ParseStrictAliasing ParseFlags = 0x0004
)

// SerializeFlags control Meta.Serialize.
type SerializeFlags uint32

const (
	SerializeOmitPacketWrapper   SerializeFlags = 0x0010
	SerializeReadOnlyPacket      SerializeFlags = 0x0020
	SerializeUseCompactFormat    SerializeFlags = 0x0040
	SerializeUseCanonicalFormat  SerializeFlags = 0x0080
	SerializeIncludeThumbnailPad SerializeFlags = 0x0100
	SerializeExactPacketLength   SerializeFlags = 0x0200
	SerializeOmitAllFormatting   SerializeFlags = 0x0800
	SerializeOmitXMPMetaElement  SerializeFlags = 0x1000
)

// LastItem addresses the last existing item of an array.
const LastItem int32 = -1
