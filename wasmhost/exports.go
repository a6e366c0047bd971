package wasmhost

import (
	"github.com/wippyai/xmp-bridge/bridge"
	"github.com/wippyai/xmp-bridge/engine"
)

// exports returns the host functions in import order. Parameter lists are
// written as the guest sees them; a string is two slots (pointer, length).
func (h *Host) exports() []export {
	return []export{
		// initialize() -> ok
		{name: "initialize", result: true, run: func(c *call, _ *bridge.ErrorRecord) uint32 {
			return boolU32(c.b.Initialize())
		}},
		// string_drop(ptr) -> ok
		{name: "string_drop", params: 1, result: true, run: func(c *call, _ *bridge.ErrorRecord) uint32 {
			return boolU32(c.heap.releaseString(c.u32(0)))
		}},
		// error_record_drop(rec)
		{name: "error_record_drop", params: 1, run: func(c *call, _ *bridge.ErrorRecord) uint32 {
			if ptr := c.u32(0); ptr != 0 && c.mem.checkRecord("error_record_drop", ptr, errorRecordLayout) == nil {
				c.clearRecord(ptr)
			}
			return 0
		}},

		// file_new(rec) -> file
		{name: "file_new", params: 1, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			return uint32(c.b.FileNew(rec))
		}},
		// file_drop(file) -> ok
		{name: "file_drop", params: 1, result: true, run: func(c *call, _ *bridge.ErrorRecord) uint32 {
			return boolU32(c.b.FileDrop(bridge.File(c.u32(0))))
		}},
		// file_open(file, path, flags, rec) -> ok
		{name: "file_open", params: 5, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			path := c.str("file_open", 1)
			if c.failed() {
				return 0
			}
			return boolU32(c.b.FileOpen(bridge.File(c.u32(0)), rec, path, engine.OpenFlags(c.u32(3))))
		}},
		// file_close(file, flags, rec) -> ok
		{name: "file_close", params: 3, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			return boolU32(c.b.FileClose(bridge.File(c.u32(0)), rec, engine.CloseFlags(c.u32(1))))
		}},
		// file_get_xmp(file, rec) -> meta
		{name: "file_get_xmp", params: 2, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			return uint32(c.b.FileGetXMP(bridge.File(c.u32(0)), rec))
		}},
		// file_put_xmp(file, meta, rec) -> ok
		{name: "file_put_xmp", params: 3, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			return boolU32(c.b.FilePutXMP(bridge.File(c.u32(0)), rec, bridge.Meta(c.u32(1))))
		}},
		// file_can_put_xmp(file, meta, rec) -> ok
		{name: "file_can_put_xmp", params: 3, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			return boolU32(c.b.FileCanPutXMP(bridge.File(c.u32(0)), rec, bridge.Meta(c.u32(1))))
		}},
		// meta_from_file(path, rec) -> meta
		{name: "meta_from_file", params: 3, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			path := c.str("meta_from_file", 0)
			if c.failed() {
				return 0
			}
			return uint32(c.b.MetaFromFile(rec, path))
		}},

		// meta_new(rec) -> meta
		{name: "meta_new", params: 1, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			return uint32(c.b.MetaNew(rec))
		}},
		// meta_drop(meta) -> ok
		{name: "meta_drop", params: 1, result: true, run: func(c *call, _ *bridge.ErrorRecord) uint32 {
			return boolU32(c.b.MetaDrop(bridge.Meta(c.u32(0))))
		}},
		// meta_clone(meta, rec) -> meta
		{name: "meta_clone", params: 2, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			return uint32(c.b.MetaClone(bridge.Meta(c.u32(0)), rec))
		}},
		// meta_parse(buffer, flags, rec) -> meta
		{name: "meta_parse", params: 4, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			buf := c.bytes("meta_parse", 0)
			if c.failed() {
				return 0
			}
			return uint32(c.b.MetaParse(rec, buf, engine.ParseFlags(c.u32(2))))
		}},
		// meta_serialize(meta, flags, padding, rec) -> string
		{name: "meta_serialize", params: 4, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			return c.export(c.b.MetaSerialize(bridge.Meta(c.u32(0)), rec, engine.SerializeFlags(c.u32(1)), c.u32(2), "", "", 0))
		}},
		// meta_sort(meta, rec) -> ok
		{name: "meta_sort", params: 2, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			return boolU32(c.b.MetaSort(bridge.Meta(c.u32(0)), rec))
		}},
		// meta_name(meta, rec) -> string
		{name: "meta_name", params: 2, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			return c.export(c.b.MetaName(bridge.Meta(c.u32(0)), rec))
		}},
		// meta_set_name(meta, name, rec) -> ok
		{name: "meta_set_name", params: 4, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			name := c.str("meta_set_name", 1)
			if c.failed() {
				return 0
			}
			return boolU32(c.b.MetaSetName(bridge.Meta(c.u32(0)), rec, name))
		}},
		// meta_dump(meta, rec) -> string
		{name: "meta_dump", params: 2, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			return c.export(c.b.MetaDump(bridge.Meta(c.u32(0)), rec))
		}},

		// register_namespace(uri, prefix, rec) -> string
		{name: "register_namespace", params: 5, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			uri, prefix := c.str("register_namespace", 0), c.str("register_namespace", 2)
			if c.failed() {
				return 0
			}
			return c.export(c.b.RegisterNamespace(rec, uri, prefix))
		}},
		// namespace_prefix(uri, rec) -> string
		{name: "namespace_prefix", params: 3, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			uri := c.str("namespace_prefix", 0)
			if c.failed() {
				return 0
			}
			s, _ := c.b.NamespacePrefix(rec, uri)
			return c.export(s)
		}},
		// namespace_uri(prefix, rec) -> string
		{name: "namespace_uri", params: 3, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			prefix := c.str("namespace_uri", 0)
			if c.failed() {
				return 0
			}
			s, _ := c.b.NamespaceURI(rec, prefix)
			return c.export(s)
		}},
		// dump_namespaces(rec) -> string
		{name: "dump_namespaces", params: 1, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			return c.export(c.b.DumpNamespaces(rec))
		}},

		// get_property(meta, ns, name, flags_out, rec) -> string
		{name: "get_property", params: 7, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			ns, name := c.str("get_property", 1), c.str("get_property", 3)
			if c.failed() {
				return 0
			}
			s, flags, found := c.b.GetProperty(bridge.Meta(c.u32(0)), rec, ns, name)
			if found {
				c.out("get_property", 5, uint32(flags))
			}
			return c.export(s)
		}},
		// get_property_date(meta, ns, name, date_out, flags_out, rec) -> found
		{name: "get_property_date", params: 8, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			ns, name := c.str("get_property_date", 1), c.str("get_property_date", 3)
			if c.failed() {
				return 0
			}
			v, flags, found := c.b.GetPropertyDate(bridge.Meta(c.u32(0)), rec, ns, name)
			if !found {
				return 0
			}
			c.fail(c.mem.storeDateTime("get_property_date", c.u32(5), v))
			c.out("get_property_date", 6, uint32(flags))
			return 1
		}},
		// set_property(meta, ns, name, value, flags, rec) -> ok
		{name: "set_property", params: 9, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			ns, name, value := c.str("set_property", 1), c.str("set_property", 3), c.str("set_property", 5)
			if c.failed() {
				return 0
			}
			return boolU32(c.b.SetProperty(bridge.Meta(c.u32(0)), rec, ns, name, value, engine.PropFlags(c.u32(7))))
		}},
		// set_property_date(meta, ns, name, date, flags, rec) -> ok
		{name: "set_property_date", params: 8, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			ns, name := c.str("set_property_date", 1), c.str("set_property_date", 3)
			if c.failed() {
				return 0
			}
			v, err := c.mem.loadDateTime("set_property_date", c.u32(5))
			if err != nil {
				c.fail(err)
				return 0
			}
			return boolU32(c.b.SetPropertyDate(bridge.Meta(c.u32(0)), rec, ns, name, v, engine.PropFlags(c.u32(6))))
		}},
		// does_property_exist(meta, ns, name, rec) -> exists
		{name: "does_property_exist", params: 6, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			ns, name := c.str("does_property_exist", 1), c.str("does_property_exist", 3)
			if c.failed() {
				return 0
			}
			return boolU32(c.b.DoesPropertyExist(bridge.Meta(c.u32(0)), rec, ns, name))
		}},
		// delete_property(meta, ns, name, rec) -> ok
		{name: "delete_property", params: 6, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			ns, name := c.str("delete_property", 1), c.str("delete_property", 3)
			if c.failed() {
				return 0
			}
			return boolU32(c.b.DeleteProperty(bridge.Meta(c.u32(0)), rec, ns, name))
		}},

		// get_array_item(meta, ns, array, index, flags_out, rec) -> string
		{name: "get_array_item", params: 8, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			ns, array := c.str("get_array_item", 1), c.str("get_array_item", 3)
			if c.failed() {
				return 0
			}
			s, flags, found := c.b.GetArrayItem(bridge.Meta(c.u32(0)), rec, ns, array, c.i32(5))
			if found {
				c.out("get_array_item", 6, uint32(flags))
			}
			return c.export(s)
		}},
		// set_array_item(meta, ns, array, index, value, flags, rec) -> ok
		{name: "set_array_item", params: 10, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			ns, array, value := c.str("set_array_item", 1), c.str("set_array_item", 3), c.str("set_array_item", 6)
			if c.failed() {
				return 0
			}
			return boolU32(c.b.SetArrayItem(bridge.Meta(c.u32(0)), rec, ns, array, c.i32(5), value, engine.PropFlags(c.u32(8))))
		}},
		// append_array_item(meta, ns, array, array_flags, value, item_flags, rec) -> ok
		{name: "append_array_item", params: 10, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			ns, array, value := c.str("append_array_item", 1), c.str("append_array_item", 3), c.str("append_array_item", 6)
			if c.failed() {
				return 0
			}
			return boolU32(c.b.AppendArrayItem(bridge.Meta(c.u32(0)), rec, ns, array, engine.PropFlags(c.u32(5)), value, engine.PropFlags(c.u32(8))))
		}},
		// delete_array_item(meta, ns, array, index, rec) -> ok
		{name: "delete_array_item", params: 7, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			ns, array := c.str("delete_array_item", 1), c.str("delete_array_item", 3)
			if c.failed() {
				return 0
			}
			return boolU32(c.b.DeleteArrayItem(bridge.Meta(c.u32(0)), rec, ns, array, c.i32(5)))
		}},
		// count_array_items(meta, ns, array, rec) -> count
		{name: "count_array_items", params: 6, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			ns, array := c.str("count_array_items", 1), c.str("count_array_items", 3)
			if c.failed() {
				return 0
			}
			return uint32(c.b.CountArrayItems(bridge.Meta(c.u32(0)), rec, ns, array))
		}},

		// get_struct_field(meta, ns, struct, field_ns, field, flags_out, rec) -> string
		{name: "get_struct_field", params: 11, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			a := c.strs("get_struct_field", 1, 4)
			if c.failed() {
				return 0
			}
			s, flags, found := c.b.GetStructField(bridge.Meta(c.u32(0)), rec, a[0], a[1], a[2], a[3])
			if found {
				c.out("get_struct_field", 9, uint32(flags))
			}
			return c.export(s)
		}},
		// set_struct_field(meta, ns, struct, field_ns, field, value, flags, rec) -> ok
		{name: "set_struct_field", params: 13, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			a := c.strs("set_struct_field", 1, 5)
			if c.failed() {
				return 0
			}
			return boolU32(c.b.SetStructField(bridge.Meta(c.u32(0)), rec, a[0], a[1], a[2], a[3], a[4], engine.PropFlags(c.u32(11))))
		}},
		// get_qualifier(meta, ns, prop, qual_ns, qual, flags_out, rec) -> string
		{name: "get_qualifier", params: 11, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			a := c.strs("get_qualifier", 1, 4)
			if c.failed() {
				return 0
			}
			s, flags, found := c.b.GetQualifier(bridge.Meta(c.u32(0)), rec, a[0], a[1], a[2], a[3])
			if found {
				c.out("get_qualifier", 9, uint32(flags))
			}
			return c.export(s)
		}},
		// set_qualifier(meta, ns, prop, qual_ns, qual, value, flags, rec) -> ok
		{name: "set_qualifier", params: 13, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			a := c.strs("set_qualifier", 1, 5)
			if c.failed() {
				return 0
			}
			return boolU32(c.b.SetQualifier(bridge.Meta(c.u32(0)), rec, a[0], a[1], a[2], a[3], a[4], engine.PropFlags(c.u32(11))))
		}},
		// get_localized_text(meta, ns, alt, generic, specific, lang_out, flags_out, rec) -> string
		{name: "get_localized_text", params: 12, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			a := c.strs("get_localized_text", 1, 4)
			if c.failed() {
				return 0
			}
			lt, found := c.b.GetLocalizedText(bridge.Meta(c.u32(0)), rec, a[0], a[1], a[2], a[3])
			if !found {
				return 0
			}
			value := c.export(lt.Value)
			lang := c.export(lt.ActualLang)
			if c.u32(9) == 0 {
				c.heap.releaseString(lang)
				lang = 0
			}
			c.out("get_localized_text", 9, lang)
			c.out("get_localized_text", 10, uint32(lt.Flags))
			if c.failed() {
				c.heap.releaseString(value)
				c.heap.releaseString(lang)
				return 0
			}
			return value
		}},
		// set_localized_text(meta, ns, alt, generic, specific, value, flags, rec) -> ok
		{name: "set_localized_text", params: 13, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			a := c.strs("set_localized_text", 1, 5)
			if c.failed() {
				return 0
			}
			return boolU32(c.b.SetLocalizedText(bridge.Meta(c.u32(0)), rec, a[0], a[1], a[2], a[3], a[4], engine.PropFlags(c.u32(11))))
		}},

		// iterator_new(meta, ns, prop, flags, rec) -> iterator
		{name: "iterator_new", params: 7, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			ns, prop := c.str("iterator_new", 1), c.str("iterator_new", 3)
			if c.failed() {
				return 0
			}
			return uint32(c.b.IteratorNew(bridge.Meta(c.u32(0)), rec, ns, prop, engine.IterFlags(c.u32(5))))
		}},
		// iterator_next(iterator, entry_out, rec) -> more
		{name: "iterator_next", params: 3, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			out := c.u32(1)
			if err := c.mem.checkRecord("iterator_next", out, iterEntryLayout); err != nil {
				c.fail(err)
				return 0
			}
			entry, ok := c.b.IteratorNext(bridge.Iterator(c.u32(0)), rec)
			if !ok {
				return 0
			}
			return c.storeEntry(out, entry)
		}},
		// iterator_skip(iterator, flags, rec) -> ok
		{name: "iterator_skip", params: 3, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			return boolU32(c.b.IteratorSkip(bridge.Iterator(c.u32(0)), rec, engine.SkipFlags(c.u32(1))))
		}},
		// iterator_drop(iterator) -> ok
		{name: "iterator_drop", params: 1, result: true, run: func(c *call, _ *bridge.ErrorRecord) uint32 {
			return boolU32(c.b.IteratorDrop(bridge.Iterator(c.u32(0))))
		}},

		// datetime_current(out, rec) -> ok
		{name: "datetime_current", params: 2, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			return c.withDateTime("datetime_current", 0, rec, func(d bridge.DateTime) bool { return true }, false)
		}},
		// datetime_format(date, rec) -> string
		{name: "datetime_format", params: 2, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			v, err := c.mem.loadDateTime("datetime_format", c.u32(0))
			if err != nil {
				c.fail(err)
				return 0
			}
			d := c.b.DateTimeNew(rec, v)
			if d == 0 {
				return 0
			}
			defer c.b.DateTimeDrop(d)
			return c.export(c.b.DateTimeFormat(d, rec))
		}},
		// datetime_parse(text, out, rec) -> ok
		{name: "datetime_parse", params: 4, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			s := c.str("datetime_parse", 0)
			if c.failed() {
				return 0
			}
			d := c.b.DateTimeParse(rec, s)
			if d == 0 {
				return 0
			}
			defer c.b.DateTimeDrop(d)
			return c.storeDate("datetime_parse", 2, d, rec)
		}},
		// datetime_set_time_zone(date, rec) -> ok; date is updated in place
		{name: "datetime_set_time_zone", params: 2, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			return c.withDateTime("datetime_set_time_zone", 0, rec, func(d bridge.DateTime) bool {
				return c.b.DateTimeSetTimeZone(d, rec)
			}, true)
		}},
		// datetime_convert_to_utc(date, rec) -> ok
		{name: "datetime_convert_to_utc", params: 2, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			return c.withDateTime("datetime_convert_to_utc", 0, rec, func(d bridge.DateTime) bool {
				return c.b.DateTimeConvertToUTC(d, rec)
			}, true)
		}},
		// datetime_convert_to_local(date, rec) -> ok
		{name: "datetime_convert_to_local", params: 2, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			return c.withDateTime("datetime_convert_to_local", 0, rec, func(d bridge.DateTime) bool {
				return c.b.DateTimeConvertToLocal(d, rec)
			}, true)
		}},
		// datetime_compare(left, right, rec) -> -1, 0 or 1
		{name: "datetime_compare", params: 3, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			l, err := c.mem.loadDateTime("datetime_compare", c.u32(0))
			c.fail(err)
			r, err := c.mem.loadDateTime("datetime_compare", c.u32(1))
			c.fail(err)
			if c.failed() {
				return 0
			}
			left := c.b.DateTimeNew(rec, l)
			if left == 0 {
				return 0
			}
			defer c.b.DateTimeDrop(left)
			right := c.b.DateTimeNew(rec, r)
			if right == 0 {
				return 0
			}
			defer c.b.DateTimeDrop(right)
			return uint32(int32(c.b.DateTimeCompare(left, right, rec)))
		}},

		// compose_array_item_path(ns, array, index, rec) -> string
		{name: "compose_array_item_path", params: 6, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			ns, array := c.str("compose_array_item_path", 0), c.str("compose_array_item_path", 2)
			if c.failed() {
				return 0
			}
			return c.export(c.b.ComposeArrayItemPath(rec, ns, array, c.i32(4)))
		}},
		// compose_struct_field_path(ns, struct, field_ns, field, rec) -> string
		{name: "compose_struct_field_path", params: 9, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			a := c.strs("compose_struct_field_path", 0, 4)
			if c.failed() {
				return 0
			}
			return c.export(c.b.ComposeStructFieldPath(rec, a[0], a[1], a[2], a[3]))
		}},
		// compose_qualifier_path(ns, prop, qual_ns, qual, rec) -> string
		{name: "compose_qualifier_path", params: 9, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			a := c.strs("compose_qualifier_path", 0, 4)
			if c.failed() {
				return 0
			}
			return c.export(c.b.ComposeQualifierPath(rec, a[0], a[1], a[2], a[3]))
		}},
		// compose_lang_selector(ns, array, lang, rec) -> string
		{name: "compose_lang_selector", params: 7, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			a := c.strs("compose_lang_selector", 0, 3)
			if c.failed() {
				return 0
			}
			return c.export(c.b.ComposeLangSelector(rec, a[0], a[1], a[2]))
		}},
		// compose_field_selector(ns, array, field_ns, field, value, rec) -> string
		{name: "compose_field_selector", params: 11, result: true, record: true, run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			a := c.strs("compose_field_selector", 0, 5)
			if c.failed() {
				return 0
			}
			return c.export(c.b.ComposeFieldSelector(rec, a[0], a[1], a[2], a[3], a[4]))
		}},
	}
}

// strs reads n consecutive strings starting at stack[i].
func (c *call) strs(op string, i, n int) []string {
	out := make([]string, n)
	for k := range out {
		out[k] = c.str(op, i+2*k)
	}
	return out
}

// storeEntry copies an iterator entry into the guest record at ptr. On
// failure every string already copied is released again.
func (c *call) storeEntry(ptr uint32, e bridge.IterEntry) uint32 {
	l := iterEntryLayout
	ns := c.export(e.SchemaNS)
	path := c.export(e.Path)
	value := c.export(e.Value)
	if c.failed() {
		for _, p := range [...]uint32{ns, path, value} {
			if p != 0 {
				c.heap.releaseString(p)
			}
		}
		return 0
	}
	c.mem.store(ptr, l, "schema-ns", ns)
	c.mem.store(ptr, l, "path", path)
	c.mem.store(ptr, l, "value", value)
	c.mem.store(ptr, l, "flags", uint32(e.Flags))
	return 1
}

// storeDate writes the value of d to the DateTime record at stack[i].
func (c *call) storeDate(op string, i int, d bridge.DateTime, rec *bridge.ErrorRecord) uint32 {
	v, ok := c.b.DateTimeGet(d, rec)
	if !ok {
		return 0
	}
	if err := c.mem.storeDateTime(op, c.u32(i), v); err != nil {
		c.fail(err)
		return 0
	}
	return 1
}

// withDateTime runs fn on a bridge DateTime and writes the result back to
// the guest record at stack[i]. With load set the bridge value starts from
// the guest record; otherwise it starts from the current time.
func (c *call) withDateTime(op string, i int, rec *bridge.ErrorRecord, fn func(bridge.DateTime) bool, load bool) uint32 {
	var d bridge.DateTime
	if load {
		v, err := c.mem.loadDateTime(op, c.u32(i))
		if err != nil {
			c.fail(err)
			return 0
		}
		d = c.b.DateTimeNew(rec, v)
	} else {
		if err := c.mem.checkRecord(op, c.u32(i), dateTimeLayout); err != nil {
			c.fail(err)
			return 0
		}
		d = c.b.DateTimeCurrent(rec)
	}
	if d == 0 {
		return 0
	}
	defer c.b.DateTimeDrop(d)
	if !fn(d) {
		return 0
	}
	return c.storeDate(op, i, d, rec)
}
