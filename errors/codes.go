package errors

// ErrorType identifies a failure reported across the boundary.
// Values 0 and above are the inner engine's codes.
type ErrorType int32

// Codes reserved by the bridge itself.
const (
	// EngineUnavailable is reported when the initialization gate failed.
	EngineUnavailable ErrorType = -1

	// XmpMetaElementMissing is reported when parsing required an
	// x:xmpmeta element and none was found.
	XmpMetaElementMissing ErrorType = -2
)

// Generic engine codes.
const (
	Unknown          ErrorType = 0
	Tbd              ErrorType = 1
	Unavailable      ErrorType = 2
	BadObject        ErrorType = 3
	BadParam         ErrorType = 4
	BadValue         ErrorType = 5
	AssertFailure    ErrorType = 6
	EnforceFailure   ErrorType = 7
	Unimplemented    ErrorType = 8
	InternalFailure  ErrorType = 9
	Deprecated       ErrorType = 10
	ExternalFailure  ErrorType = 11
	UserAbort        ErrorType = 12
	StdException     ErrorType = 13
	UnknownException ErrorType = 14
	NoMemory         ErrorType = 15
	ProgressAbort    ErrorType = 16
)

// Parameter codes.
const (
	BadSchema             ErrorType = 101
	BadXPath              ErrorType = 102
	BadOptions            ErrorType = 103
	BadIndex              ErrorType = 104
	BadIterPosition       ErrorType = 105
	BadParse              ErrorType = 106
	BadSerialize          ErrorType = 107
	BadFileFormat         ErrorType = 108
	NoFileHandler         ErrorType = 109
	TooLargeForJpeg       ErrorType = 110
	NoFile                ErrorType = 111
	FilePermission        ErrorType = 112
	DiskSpace             ErrorType = 113
	ReadError             ErrorType = 114
	WriteError            ErrorType = 115
	BadBlockFormat        ErrorType = 116
	FilePathNotAFile      ErrorType = 117
	RejectedFileExtension ErrorType = 118
)

// File format and data model codes.
const (
	BadXml                             ErrorType = 201
	BadRdf                             ErrorType = 202
	BadXmp                             ErrorType = 203
	EmptyIterator                      ErrorType = 204
	BadUnicode                         ErrorType = 205
	BadTiff                            ErrorType = 206
	BadJpeg                            ErrorType = 207
	BadPsd                             ErrorType = 208
	BadPsir                            ErrorType = 209
	BadIptc                            ErrorType = 210
	BadMpeg                            ErrorType = 211
	HeifConstructionMethodNotSupported ErrorType = 212
	BadPng                             ErrorType = 213
)

var descriptions = map[ErrorType]string{
	EngineUnavailable:     "XMP toolkit unavailable",
	XmpMetaElementMissing: "x:xmpmeta element missing",

	Unknown:          "Unknown error",
	Tbd:              "Undefined error",
	Unavailable:      "Unavailable",
	BadObject:        "Bad object",
	BadParam:         "Bad parameter",
	BadValue:         "Bad value",
	AssertFailure:    "Assertion failure",
	EnforceFailure:   "Enforcement failure",
	Unimplemented:    "Unimplemented",
	InternalFailure:  "Internal failure",
	Deprecated:       "Deprecated",
	ExternalFailure:  "External failure",
	UserAbort:        "User abort",
	StdException:     "Standard exception",
	UnknownException: "Unknown exception",
	NoMemory:         "Out of memory",
	ProgressAbort:    "Progress callback requested abort",

	BadSchema:             "Bad schema parameter",
	BadXPath:              "Bad XPath parameter",
	BadOptions:            "Bad options parameter",
	BadIndex:              "Bad index parameter",
	BadIterPosition:       "Bad iteration position",
	BadParse:              "XML parsing error",
	BadSerialize:          "Serialization error",
	BadFileFormat:         "File format error",
	NoFileHandler:         "No file handler found for format",
	TooLargeForJpeg:       "Data too large for JPEG file format",
	NoFile:                "File not found",
	FilePermission:        "File exists but cannot be opened",
	DiskSpace:             "Not enough disk space",
	ReadError:             "File read failed",
	WriteError:            "File write failed",
	BadBlockFormat:        "Ill-formed block in file",
	FilePathNotAFile:      "File path is not a file",
	RejectedFileExtension: "Rejected file extension",

	BadXml:                             "XML format error",
	BadRdf:                             "RDF format error",
	BadXmp:                             "XMP format error",
	EmptyIterator:                      "Empty iterator",
	BadUnicode:                         "Unicode error",
	BadTiff:                            "TIFF format error",
	BadJpeg:                            "JPEG format error",
	BadPsd:                             "PSD format error",
	BadPsir:                            "PSIR format error",
	BadIptc:                            "IPTC format error",
	BadMpeg:                            "MPEG format error",
	HeifConstructionMethodNotSupported: "HEIF construction method not supported",
	BadPng:                             "PNG format error",
}

// FromCode converts a raw identifier into an ErrorType.
// Identifiers the bridge does not recognize become Unknown.
func FromCode(code int32) ErrorType {
	t := ErrorType(code)
	if _, ok := descriptions[t]; ok {
		return t
	}
	return Unknown
}

// Known reports whether t is a recognized identifier.
func (t ErrorType) Known() bool {
	_, ok := descriptions[t]
	return ok
}

func (t ErrorType) String() string {
	if d, ok := descriptions[t]; ok {
		return d
	}
	return descriptions[Unknown]
}
