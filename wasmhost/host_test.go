package wasmhost

import (
	"context"
	"strings"
	"testing"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/xmp-bridge/bridge"
	"github.com/wippyai/xmp-bridge/errors"
	"github.com/wippyai/xmp-bridge/testbed"
	"github.com/wippyai/xmp-bridge/xmpns"
)

// testGuest drives host functions against a real guest memory. Inputs are
// staged in page 0; the host heap lives in pages it grows.
type testGuest struct {
	t    *testing.T
	ctx  context.Context
	b    *bridge.Bridge
	tk   *testbed.Toolkit
	h    *Host
	mod  api.Module
	fns  map[string]export
	next uint32
}

// pair is a (pointer, length) argument.
type pair struct{ ptr, n uint32 }

func newTestGuest(t *testing.T, opts ...Option) *testGuest {
	t.Helper()
	ctx, _, mod := instantiateGuest(t)
	tk := testbed.New()
	b := bridge.New(tk)
	h := New(b, opts...)
	fns := make(map[string]export)
	for _, e := range h.exports() {
		fns[e.name] = e
	}
	return &testGuest{t: t, ctx: ctx, b: b, tk: tk, h: h, mod: mod, fns: fns, next: 64}
}

func (g *testGuest) alloc(n uint32) uint32 {
	p := g.next
	g.next = alignTo(g.next+n, 8)
	if g.next > pageSize {
		g.t.Fatal("staging area exhausted")
	}
	return p
}

func (g *testGuest) str(s string) pair {
	p := g.alloc(uint32(len(s)))
	g.mod.Memory().Write(p, []byte(s))
	return pair{p, uint32(len(s))}
}

func (g *testGuest) record() uint32 {
	p := g.alloc(errorRecordLayout.size)
	g.mod.Memory().Write(p, make([]byte, errorRecordLayout.size))
	return p
}

func (g *testGuest) call(name string, args ...any) uint32 {
	g.t.Helper()
	e, ok := g.fns[name]
	if !ok {
		g.t.Fatalf("no host function %q", name)
	}
	var stack []uint64
	for _, a := range args {
		switch v := a.(type) {
		case pair:
			stack = append(stack, api.EncodeU32(v.ptr), api.EncodeU32(v.n))
		case uint32:
			stack = append(stack, api.EncodeU32(v))
		case int32:
			stack = append(stack, api.EncodeI32(v))
		case int:
			stack = append(stack, api.EncodeI32(int32(v)))
		default:
			g.t.Fatalf("unsupported argument %T", a)
		}
	}
	if len(stack) != e.params {
		g.t.Fatalf("%s takes %d slots, got %d", name, e.params, len(stack))
	}
	if len(stack) == 0 {
		stack = make([]uint64, 1)
	}
	g.h.wrap(e)(g.ctx, g.mod, stack)
	return api.DecodeU32(stack[0])
}

// read returns the host string at ptr.
func (g *testGuest) read(ptr uint32) string {
	g.t.Helper()
	if ptr == 0 {
		g.t.Fatal("read of absent string")
	}
	n, _ := g.mod.Memory().ReadUint32Le(ptr - 4)
	data, ok := g.mod.Memory().Read(ptr, n)
	if !ok {
		g.t.Fatalf("string at %d out of bounds", ptr)
	}
	return string(data)
}

// take reads and releases the host string at ptr.
func (g *testGuest) take(ptr uint32) string {
	g.t.Helper()
	s := g.read(ptr)
	if g.call("string_drop", ptr) != 1 {
		g.t.Fatalf("string_drop(%d) failed", ptr)
	}
	return s
}

func (g *testGuest) u32(ptr uint32) uint32 {
	v, _ := g.mod.Memory().ReadUint32Le(ptr)
	return v
}

func (g *testGuest) expectClean(rec uint32) {
	g.t.Helper()
	if g.u32(rec) != 0 {
		g.t.Fatalf("record = {id: %d}, want clean", int32(g.u32(rec+4)))
	}
	if g.u32(rec+8) != 0 {
		g.t.Fatal("clean record carries a message")
	}
}

func (g *testGuest) expectFailure(rec uint32, code errors.ErrorType, msg string) {
	g.t.Helper()
	if g.u32(rec) != 1 {
		g.t.Fatalf("record is clean, want code %d", code)
	}
	if id := int32(g.u32(rec + 4)); id != int32(code) {
		g.t.Errorf("record id = %d, want %d", id, code)
	}
	if msg != "" {
		p := g.u32(rec + 8)
		if p == 0 {
			g.t.Fatalf("record has no message, want %q", msg)
		}
		if got := g.read(p); !strings.Contains(got, msg) {
			g.t.Errorf("record message = %q, want %q", got, msg)
		}
	}
}

func (g *testGuest) meta() uint32 {
	g.t.Helper()
	rec := g.record()
	m := g.call("meta_new", rec)
	if m == 0 {
		g.t.Fatalf("meta_new failed")
	}
	g.expectClean(rec)
	return m
}

func TestInstantiate_ExportsEveryFunction(t *testing.T) {
	ctx, rt, _ := instantiateGuest(t)
	h := New(bridge.New(testbed.New()), WithModuleName("xmp_test"))

	mod, err := h.Instantiate(ctx, rt)
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	defs := mod.ExportedFunctionDefinitions()
	exports := h.exports()
	if len(defs) != len(exports) {
		t.Fatalf("exported %d functions, want %d", len(defs), len(exports))
	}
	for _, e := range exports {
		def, ok := defs[e.name]
		if !ok {
			t.Errorf("%s not exported", e.name)
			continue
		}
		if len(def.ParamTypes()) != e.params {
			t.Errorf("%s has %d params, want %d", e.name, len(def.ParamTypes()), e.params)
		}
	}

	if _, err := h.Instantiate(ctx, rt); err == nil {
		t.Error("second Instantiate under the same name succeeded")
	}
}

func TestHost_GuestWithoutMemory(t *testing.T) {
	ctx, rt, _ := instantiateGuest(t)
	b := bridge.New(testbed.New())
	h := New(b)
	hostMod, err := h.Instantiate(ctx, rt)
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}

	var meta export
	for _, e := range h.exports() {
		if e.name == "meta_new" {
			meta = e
		}
	}
	stack := []uint64{0}
	h.wrap(meta)(ctx, hostMod, stack)
	if stack[0] != 0 {
		t.Errorf("meta_new on a memoryless caller = %d", stack[0])
	}
	if n := b.LiveHandles(); n != 0 {
		t.Errorf("memoryless caller created %d bridge handles", n)
	}
	if _, err := h.heapFor(hostMod); err == nil {
		t.Error("heapFor accepted a module without exported memory")
	}
}

func TestHost_Initialize(t *testing.T) {
	g := newTestGuest(t)
	if g.call("initialize") != 1 {
		t.Fatal("initialize failed")
	}
	if g.tk.InitCalls() != 1 {
		t.Errorf("InitCalls = %d", g.tk.InitCalls())
	}
}

func TestHost_PropertyRoundTrip(t *testing.T) {
	g := newTestGuest(t)
	m := g.meta()
	rec := g.record()

	ns, name := g.str(xmpns.XMP), g.str("CreatorTool")
	if g.call("set_property", m, ns, name, g.str("Sampler 2.1"), uint32(0), rec) != 1 {
		t.Fatal("set_property failed")
	}
	g.expectClean(rec)

	flags := g.alloc(4)
	g.mod.Memory().WriteUint32Le(flags, 0xffffffff)
	s := g.call("get_property", m, ns, name, flags, rec)
	g.expectClean(rec)
	if got := g.take(s); got != "Sampler 2.1" {
		t.Errorf("value = %q", got)
	}
	if g.u32(flags) != 0 {
		t.Errorf("flags = %x", g.u32(flags))
	}
	if g.call("string_drop", s) != 0 {
		t.Error("double string_drop succeeded")
	}

	if g.call("does_property_exist", m, ns, name, rec) != 1 {
		t.Error("does_property_exist = 0")
	}
	g.call("delete_property", m, ns, name, rec)
	if s := g.call("get_property", m, ns, name, uint32(0), rec); s != 0 {
		t.Errorf("deleted property returned %d", s)
	}
	g.expectClean(rec)

	if g.call("meta_drop", m) != 1 || g.call("meta_drop", m) != 0 {
		t.Error("meta_drop results wrong")
	}
	if n := g.h.LiveAllocations(g.mod); n != 0 {
		t.Errorf("live allocations = %d", n)
	}
	if g.b.LiveHandles() != 0 {
		t.Errorf("bridge handles = %d", g.b.LiveHandles())
	}
}

func TestHost_ErrorRecordOwnsMessage(t *testing.T) {
	g := newTestGuest(t)
	m := g.meta()
	rec := g.record()

	if g.call("set_property", m, g.str(xmpns.DC), g.str(""), g.str("v"), uint32(0), rec) != 0 {
		t.Fatal("set_property accepted an empty name")
	}
	g.expectFailure(rec, errors.BadXPath, "Empty property name")
	if n := g.h.LiveAllocations(g.mod); n != 1 {
		t.Fatalf("live allocations = %d, want the message only", n)
	}

	// reusing the record frees the old message
	g.call("does_property_exist", m, g.str(xmpns.DC), g.str("title"), rec)
	g.expectClean(rec)
	if n := g.h.LiveAllocations(g.mod); n != 0 {
		t.Errorf("live allocations after reuse = %d", n)
	}

	g.call("set_property", m, g.str(xmpns.DC), g.str(""), g.str("v"), uint32(0), rec)
	g.call("error_record_drop", rec)
	g.expectClean(rec)
	if n := g.h.LiveAllocations(g.mod); n != 0 {
		t.Errorf("live allocations after drop = %d", n)
	}
	g.call("error_record_drop", rec)

	if g.b.LiveStrings() != 0 {
		t.Errorf("bridge strings = %d", g.b.LiveStrings())
	}
}

func TestHost_PanicReportsInternalFailure(t *testing.T) {
	g := newTestGuest(t)
	g.fns["panicking"] = export{
		name:   "panicking",
		params: 1,
		result: true,
		record: true,
		run: func(c *call, rec *bridge.ErrorRecord) uint32 {
			// leave an owned message in the bridge record, then blow up
			c.b.GetProperty(0, rec, xmpns.DC, "title")
			panic("engine state corrupted")
		},
	}

	rec := g.record()
	if g.call("panicking", rec) != 0 {
		t.Fatal("panicking call returned a result")
	}
	g.expectFailure(rec, errors.InternalFailure, "engine state corrupted")
	if g.b.LiveStrings() != 0 {
		t.Errorf("bridge strings leaked: %d", g.b.LiveStrings())
	}

	g.call("error_record_drop", rec)
	if n := g.h.LiveAllocations(g.mod); n != 0 {
		t.Errorf("live allocations after drop = %d", n)
	}
}

func TestHost_GuestMemoryFailures(t *testing.T) {
	t.Run("input over limit", func(t *testing.T) {
		g := newTestGuest(t, WithMaxStringBytes(4))
		m := g.meta()
		rec := g.record()

		if g.call("set_property", m, g.str(xmpns.DC), g.str("x"), g.str("v"), uint32(0), rec) != 0 {
			t.Fatal("set_property accepted an oversized namespace")
		}
		g.expectFailure(rec, errors.BadParam, "exceeds limit")
	})

	t.Run("input out of bounds", func(t *testing.T) {
		g := newTestGuest(t)
		m := g.meta()
		rec := g.record()

		bad := pair{0xfffffff0, 8}
		if g.call("does_property_exist", m, bad, g.str("x"), rec) != 0 {
			t.Fatal("does_property_exist read outside memory")
		}
		g.expectFailure(rec, errors.BadParam, "outside guest memory")
	})

	t.Run("heap exhausted", func(t *testing.T) {
		g := newTestGuest(t, WithHeapPages(0))
		m := g.meta()
		rec := g.record()

		g.call("set_property", m, g.str(xmpns.DC), g.str("format"), g.str("image/png"), uint32(0), rec)
		if s := g.call("get_property", m, g.str(xmpns.DC), g.str("format"), uint32(0), rec); s != 0 {
			t.Fatalf("get_property = %d with no heap", s)
		}
		g.expectFailure(rec, errors.NoMemory, "")
		if g.b.LiveStrings() != 0 {
			t.Errorf("bridge strings leaked: %d", g.b.LiveStrings())
		}
	})

	t.Run("record out of bounds", func(t *testing.T) {
		g := newTestGuest(t)
		if m := g.call("meta_new", uint32(0xfffffff0)); m == 0 {
			t.Fatal("meta_new failed with an unusable record")
		}
		if m := g.call("meta_new", uint32(0)); m == 0 {
			t.Fatal("meta_new failed without a record")
		}
		if g.b.LiveStrings() != 0 {
			t.Errorf("bridge strings = %d", g.b.LiveStrings())
		}
	})
}

func TestHost_Arrays(t *testing.T) {
	g := newTestGuest(t)
	m := g.meta()
	rec := g.record()
	ns, subject := g.str(xmpns.DC), g.str("subject")

	for _, v := range []string{"a", "b", "c"} {
		if g.call("append_array_item", m, ns, subject, uint32(0x200), g.str(v), uint32(0), rec) != 1 {
			t.Fatalf("append %q failed", v)
		}
	}
	if n := g.call("count_array_items", m, ns, subject, rec); n != 3 {
		t.Fatalf("count = %d", n)
	}
	g.call("set_array_item", m, ns, subject, int32(2), g.str("B"), uint32(0), rec)
	g.call("delete_array_item", m, ns, subject, int32(1), rec)
	g.expectClean(rec)

	if got := g.take(g.call("get_array_item", m, ns, subject, int32(-1), uint32(0), rec)); got != "c" {
		t.Errorf("last item = %q", got)
	}
	if got := g.take(g.call("compose_array_item_path", ns, subject, int32(-1), rec)); got != "subject[last()]" {
		t.Errorf("path = %q", got)
	}

	g.call("get_array_item", m, ns, subject, int32(0), uint32(0), rec)
	g.expectFailure(rec, errors.BadIndex, "")
	g.call("error_record_drop", rec)

	g.call("meta_drop", m)
	if n := g.h.LiveAllocations(g.mod); n != 0 {
		t.Errorf("live allocations = %d", n)
	}
}

func TestHost_LocalizedText(t *testing.T) {
	g := newTestGuest(t)
	m := g.meta()
	rec := g.record()
	ns, title := g.str(xmpns.DC), g.str("title")

	if g.call("set_localized_text", m, ns, title, g.str(""), g.str("en-US"), g.str("Harbor"), uint32(0), rec) != 1 {
		t.Fatal("set_localized_text failed")
	}
	lang := g.alloc(4)
	v := g.call("get_localized_text", m, ns, title, g.str(""), g.str("en-US"), lang, uint32(0), rec)
	g.expectClean(rec)
	if got := g.take(v); got != "Harbor" {
		t.Errorf("value = %q", got)
	}
	if got := g.take(g.u32(lang)); got != "en-us" {
		t.Errorf("actual lang = %q", got)
	}

	// without an out pointer the language is not kept
	v = g.call("get_localized_text", m, ns, title, g.str(""), g.str("en-US"), uint32(0), uint32(0), rec)
	g.take(v)
	if n := g.h.LiveAllocations(g.mod); n != 0 {
		t.Errorf("live allocations = %d", n)
	}
}

func TestHost_Iterator(t *testing.T) {
	g := newTestGuest(t)
	m := g.meta()
	rec := g.record()

	for _, p := range [][2]string{{"format", "image/png"}, {"type", "Image"}} {
		g.call("set_property", m, g.str(xmpns.DC), g.str(p[0]), g.str(p[1]), uint32(0), rec)
	}
	it := g.call("iterator_new", m, g.str(xmpns.DC), g.str(""), uint32(0), rec)
	if it == 0 {
		t.Fatal("iterator_new failed")
	}

	entry := g.alloc(iterEntryLayout.size)
	seen := map[string]string{}
	for g.call("iterator_next", it, entry, rec) == 1 {
		if ns := g.take(g.u32(entry)); ns != xmpns.DC {
			t.Errorf("schema = %q", ns)
		}
		path := g.take(g.u32(entry + 4))
		seen[path] = g.take(g.u32(entry + 8))
	}
	g.expectClean(rec)
	if len(seen) != 2 || seen["dc:type"] != "Image" {
		t.Errorf("entries = %v", seen)
	}

	if g.call("iterator_next", it, uint32(0), rec) != 0 {
		t.Error("iterator_next wrote to address zero")
	}
	g.expectFailure(rec, errors.BadParam, "")

	if g.call("iterator_drop", it) != 1 {
		t.Error("iterator_drop failed")
	}
	g.call("meta_drop", m)
	g.call("error_record_drop", rec)
	if n := g.h.LiveAllocations(g.mod); n != 0 {
		t.Errorf("live allocations = %d", n)
	}
}

func TestHost_DateTime(t *testing.T) {
	g := newTestGuest(t)
	rec := g.record()
	dt := g.alloc(dateTimeLayout.size)

	if g.call("datetime_parse", g.str("2024-01-01T01:00+05:00"), dt, rec) != 1 {
		t.Fatal("datetime_parse failed")
	}
	if g.u32(dt) != 2024 || g.u32(dt+12) != 1 {
		t.Errorf("year/hour = %d/%d", g.u32(dt), g.u32(dt+12))
	}

	if g.call("datetime_convert_to_utc", dt, rec) != 1 {
		t.Fatal("datetime_convert_to_utc failed")
	}
	if got := g.take(g.call("datetime_format", dt, rec)); got != "2023-12-31T20:00Z" {
		t.Errorf("UTC = %q", got)
	}
	g.expectClean(rec)

	other := g.alloc(dateTimeLayout.size)
	g.call("datetime_parse", g.str("2024-01-01T00:00Z"), other, rec)
	if c := int32(g.call("datetime_compare", dt, other, rec)); c >= 0 {
		t.Errorf("compare = %d", c)
	}

	if g.call("datetime_parse", g.str("30/06/2024"), dt, rec) != 0 {
		t.Fatal("datetime_parse accepted garbage")
	}
	g.expectFailure(rec, errors.BadValue, "Invalid date string")

	m := g.meta()
	g.call("datetime_parse", g.str("2023-11-05"), dt, rec)
	g.call("set_property_date", m, g.str(xmpns.XMP), g.str("CreateDate"), dt, uint32(0), rec)
	back := g.alloc(dateTimeLayout.size)
	if g.call("get_property_date", m, g.str(xmpns.XMP), g.str("CreateDate"), back, uint32(0), rec) != 1 {
		t.Fatal("get_property_date found nothing")
	}
	if got := g.take(g.call("datetime_format", back, rec)); got != "2023-11-05" {
		t.Errorf("stored date = %q", got)
	}
	g.expectClean(rec)
}

func TestHost_Files(t *testing.T) {
	g := newTestGuest(t)
	rec := g.record()

	if m := g.call("meta_from_file", g.str("/missing.jpg"), rec); m != 0 {
		t.Fatalf("meta_from_file = %d", m)
	}
	g.expectFailure(rec, errors.NoFile, "File does not exist")

	f := g.call("file_new", rec)
	if f == 0 {
		t.Fatal("file_new failed")
	}
	if g.call("file_open", f, g.str("/missing.jpg"), uint32(1), rec) != 0 {
		t.Fatal("file_open succeeded on a missing path")
	}
	g.expectFailure(rec, errors.NoFile, "")
	if g.call("file_close", f, uint32(0), rec) != 1 {
		t.Error("file_close failed")
	}
	if g.call("file_drop", f) != 1 {
		t.Error("file_drop failed")
	}
	if g.tk.Live() != 0 {
		t.Errorf("engine objects = %d", g.tk.Live())
	}
}

func TestHost_Namespaces(t *testing.T) {
	g := newTestGuest(t)
	rec := g.record()

	prefix := g.take(g.call("register_namespace", g.str("urn:example:test"), g.str("test"), rec))
	if prefix != "test:" {
		t.Errorf("prefix = %q", prefix)
	}
	if got := g.take(g.call("namespace_uri", g.str("test"), rec)); got != "urn:example:test" {
		t.Errorf("uri = %q", got)
	}
	if p := g.call("namespace_prefix", g.str("urn:example:unknown"), rec); p != 0 {
		t.Errorf("unknown namespace returned %d", p)
	}
	g.expectClean(rec)

	g.call("register_namespace", g.str(""), g.str("x"), rec)
	g.expectFailure(rec, errors.BadSchema, "Empty namespace URI")
}

func TestHost_SerializeParse(t *testing.T) {
	g := newTestGuest(t)
	m := g.meta()
	rec := g.record()

	g.call("set_property", m, g.str(xmpns.XMP), g.str("Rating"), g.str("5"), uint32(0), rec)
	packet := g.take(g.call("meta_serialize", m, uint32(0), uint32(0), rec))
	g.expectClean(rec)
	if !strings.Contains(packet, "xpacket") {
		t.Fatalf("packet = %q", packet)
	}

	parsed := g.call("meta_parse", g.str(packet), uint32(0), rec)
	if parsed == 0 {
		t.Fatal("meta_parse failed")
	}
	if got := g.take(g.call("get_property", parsed, g.str(xmpns.XMP), g.str("Rating"), uint32(0), rec)); got != "5" {
		t.Errorf("Rating = %q", got)
	}

	clone := g.call("meta_clone", parsed, rec)
	g.call("meta_set_name", clone, g.str("copy"), rec)
	if got := g.take(g.call("meta_name", clone, rec)); got != "copy" {
		t.Errorf("name = %q", got)
	}
	g.expectClean(rec)

	for _, h := range []uint32{m, parsed, clone} {
		g.call("meta_drop", h)
	}
	if n := g.h.LiveAllocations(g.mod); n != 0 {
		t.Errorf("live allocations = %d", n)
	}
}
