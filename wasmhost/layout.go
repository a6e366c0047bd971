package wasmhost

import (
	"go.bytecodealliance.org/wit"
)

// field is the placement of one record field in linear memory.
type field struct {
	off  uint32
	size uint32
}

// recordLayout is the canonical ABI placement of a record whose fields
// are all scalars.
type recordLayout struct {
	fields map[string]field
	size   uint32
	align  uint32
}

func alignTo(n, align uint32) uint32 {
	return (n + align - 1) &^ (align - 1)
}

func scalarSize(t wit.Type) uint32 {
	switch t.(type) {
	case wit.U8, wit.S8, wit.Bool:
		return 1
	case wit.U16, wit.S16:
		return 2
	case wit.U32, wit.S32, wit.F32, wit.Char:
		return 4
	case wit.U64, wit.S64, wit.F64:
		return 8
	}
	return 0
}

// layoutOf lays r out field by field, padding each to its alignment.
// Scalars align to their size.
func layoutOf(r *wit.Record) recordLayout {
	l := recordLayout{fields: make(map[string]field, len(r.Fields)), align: 1}
	var off uint32
	for _, f := range r.Fields {
		size := scalarSize(f.Type)
		if size == 0 {
			panic("wasmhost: non-scalar field " + f.Name)
		}
		off = alignTo(off, size)
		l.fields[f.Name] = field{off: off, size: size}
		if size > l.align {
			l.align = size
		}
		off += size
	}
	l.size = alignTo(off, l.align)
	return l
}

var errorRecordType = &wit.Record{Fields: []wit.Field{
	{Name: "had-error", Type: wit.U32{}},
	{Name: "id", Type: wit.S32{}},
	{Name: "debug-message", Type: wit.U32{}},
}}

var dateTimeType = &wit.Record{Fields: []wit.Field{
	{Name: "year", Type: wit.S32{}},
	{Name: "month", Type: wit.S32{}},
	{Name: "day", Type: wit.S32{}},
	{Name: "hour", Type: wit.S32{}},
	{Name: "minute", Type: wit.S32{}},
	{Name: "second", Type: wit.S32{}},
	{Name: "has-date", Type: wit.Bool{}},
	{Name: "has-time", Type: wit.Bool{}},
	{Name: "has-timezone", Type: wit.Bool{}},
	{Name: "tz-sign", Type: wit.S8{}},
	{Name: "tz-hour", Type: wit.S32{}},
	{Name: "tz-minute", Type: wit.S32{}},
	{Name: "nanosecond", Type: wit.S32{}},
}}

var iterEntryType = &wit.Record{Fields: []wit.Field{
	{Name: "schema-ns", Type: wit.U32{}},
	{Name: "path", Type: wit.U32{}},
	{Name: "value", Type: wit.U32{}},
	{Name: "flags", Type: wit.U32{}},
}}

var (
	errorRecordLayout = layoutOf(errorRecordType)
	dateTimeLayout    = layoutOf(dateTimeType)
	iterEntryLayout   = layoutOf(iterEntryType)
)
