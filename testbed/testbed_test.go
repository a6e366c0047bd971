package testbed

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/wippyai/xmp-bridge/engine"
	"github.com/wippyai/xmp-bridge/errors"
	"github.com/wippyai/xmp-bridge/xmpns"
)

func catchFault(fn func()) (f *engine.Fault) {
	defer func() {
		if r := recover(); r != nil {
			f, _ = r.(*engine.Fault)
		}
	}()
	fn()
	return nil
}

func newMeta(t *testing.T, tk *Toolkit) *Meta {
	t.Helper()
	m, err := tk.NewMeta()
	if err != nil {
		t.Fatalf("NewMeta: %v", err)
	}
	return m.(*Meta)
}

func TestToolkit_StandardNamespaces(t *testing.T) {
	tk := New()
	for _, ns := range xmpns.Standard {
		p, found, err := tk.NamespacePrefix(ns.URI)
		if err != nil || !found || p != ns.Prefix+":" {
			t.Errorf("NamespacePrefix(%q) = %q, %v, %v", ns.URI, p, found, err)
		}
	}
}

func TestRegisterNamespace(t *testing.T) {
	tk := New()

	p, err := tk.RegisterNamespace("urn:test:1", "test")
	if err != nil || p != "test:" {
		t.Fatalf("RegisterNamespace = %q, %v", p, err)
	}

	// same URI keeps its prefix
	p, _ = tk.RegisterNamespace("urn:test:1", "other:")
	if p != "test:" {
		t.Errorf("re-register = %q, want test:", p)
	}

	// taken prefix gets a derived one
	p, _ = tk.RegisterNamespace("urn:test:2", "test")
	if p != "test_1_:" {
		t.Errorf("collision = %q, want test_1_:", p)
	}

	got, ok, _ := tk.NamespacePrefix("urn:test:1")
	if !ok || got != "test:" {
		t.Errorf("NamespacePrefix = %q, %v", got, ok)
	}
	uri, ok, _ := tk.NamespaceURI("test")
	if !ok || uri != "urn:test:1" {
		t.Errorf("NamespaceURI = %q, %v", uri, ok)
	}
	if _, ok, _ := tk.NamespacePrefix("bogus"); ok {
		t.Error("bogus URI should be absent")
	}

	f := catchFault(func() { tk.RegisterNamespace("", "x") })
	if f == nil || f.Code != int32(errors.BadSchema) || f.Message != "Empty namespace URI" {
		t.Errorf("empty URI fault = %+v", f)
	}
}

func TestDumpNamespaces(t *testing.T) {
	tk := New()
	var b strings.Builder
	err := tk.DumpNamespaces(func(p []byte) error {
		b.Write(p)
		return nil
	})
	if err != nil {
		t.Fatalf("DumpNamespaces: %v", err)
	}
	if !strings.Contains(b.String(), "dc:") || !strings.Contains(b.String(), xmpns.DC) {
		t.Errorf("dump missing dc:\n%s", b.String())
	}

	stop := stderrors.New("stop")
	if err := tk.DumpNamespaces(func([]byte) error { return stop }); err != stop {
		t.Errorf("output error = %v, want stop", err)
	}
}

func TestProperty_SetGet(t *testing.T) {
	tk := New()
	m := newMeta(t, tk)

	if err := m.SetProperty(xmpns.DC, "format", "image/png", engine.PropValueIsURI); err != nil {
		t.Fatalf("SetProperty: %v", err)
	}
	v, f, ok, err := m.GetProperty(xmpns.DC, "format")
	if err != nil || !ok || v != "image/png" || !f.Has(engine.PropValueIsURI) {
		t.Fatalf("GetProperty = %q, %x, %v, %v", v, f, ok, err)
	}

	_, _, ok, err = m.GetProperty(xmpns.DC, "missing")
	if ok || err != nil {
		t.Fatalf("absent property: ok=%v err=%v", ok, err)
	}

	m.DeleteProperty(xmpns.DC, "format")
	if exists, _ := m.DoesPropertyExist(xmpns.DC, "format"); exists {
		t.Error("property survived delete")
	}
}

func TestProperty_Validation(t *testing.T) {
	tk := New()
	m := newMeta(t, tk)

	tests := []struct {
		name string
		fn   func()
		code errors.ErrorType
		msg  string
	}{
		{"empty schema", func() { m.SetProperty("", "x", "v", 0) }, errors.BadSchema, "Empty schema namespace URI"},
		{"unregistered schema", func() { m.SetProperty("urn:nope", "x", "v", 0) }, errors.BadSchema, "Unregistered schema namespace URI"},
		{"empty name", func() { m.SetProperty(xmpns.DC, "", "v", 0) }, errors.BadXPath, "Empty property name"},
		{"composite value", func() { m.SetProperty(xmpns.DC, "x", "v", engine.PropValueIsArray) }, errors.BadOptions, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := catchFault(tt.fn)
			if f == nil || f.Code != int32(tt.code) {
				t.Fatalf("fault = %+v, want code %d", f, tt.code)
			}
			if tt.msg != "" && f.Message != tt.msg {
				t.Errorf("message = %q, want %q", f.Message, tt.msg)
			}
		})
	}
}

func TestProperty_Typed(t *testing.T) {
	tk := New()
	m := newMeta(t, tk)

	m.SetPropertyBool(xmpns.XMPRights, "Marked", true, 0)
	if v, _, _, _ := m.GetProperty(xmpns.XMPRights, "Marked"); v != "True" {
		t.Errorf("bool text = %q", v)
	}
	if b, _, ok, _ := m.GetPropertyBool(xmpns.XMPRights, "Marked"); !ok || !b {
		t.Errorf("GetPropertyBool = %v, %v", b, ok)
	}

	m.SetPropertyInt(xmpns.TIFF, "Orientation", -7, 0)
	if n, _, ok, _ := m.GetPropertyInt(xmpns.TIFF, "Orientation"); !ok || n != -7 {
		t.Errorf("GetPropertyInt = %d, %v", n, ok)
	}

	m.SetPropertyInt64(xmpns.XMP, "Big", 1<<40, 0)
	if n, _, ok, _ := m.GetPropertyInt64(xmpns.XMP, "Big"); !ok || n != 1<<40 {
		t.Errorf("GetPropertyInt64 = %d, %v", n, ok)
	}

	m.SetPropertyFloat(xmpns.EXIF, "FNumber", 2.8, 0)
	if x, _, ok, _ := m.GetPropertyFloat(xmpns.EXIF, "FNumber"); !ok || x != 2.8 {
		t.Errorf("GetPropertyFloat = %v, %v", x, ok)
	}

	dt := engine.DateTime{Year: 2024, Month: 3, Day: 9, Hour: 8, Minute: 5, HasDate: true, HasTime: true, HasTimeZone: true}
	m.SetPropertyDate(xmpns.XMP, "CreateDate", dt, 0)
	if v, _, _, _ := m.GetProperty(xmpns.XMP, "CreateDate"); v != "2024-03-09T08:05Z" {
		t.Errorf("date text = %q", v)
	}
	if got, _, ok, _ := m.GetPropertyDate(xmpns.XMP, "CreateDate"); !ok || got != dt {
		t.Errorf("GetPropertyDate = %+v, %v", got, ok)
	}

	m.SetProperty(xmpns.XMP, "Rating", "lots", 0)
	if f := catchFault(func() { m.GetPropertyInt(xmpns.XMP, "Rating") }); f == nil || f.Code != int32(errors.BadValue) {
		t.Errorf("bad int fault = %+v", f)
	}

	if _, _, ok, err := m.GetPropertyBool(xmpns.XMP, "Nothing"); ok || err != nil {
		t.Errorf("absent typed read: ok=%v err=%v", ok, err)
	}
}

func TestArrays(t *testing.T) {
	tk := New()
	m := newMeta(t, tk)

	if f := catchFault(func() { m.AppendArrayItem(xmpns.DC, "subject", 0, "a", 0) }); f == nil || f.Code != int32(errors.BadOptions) {
		t.Fatalf("append without form = %+v", f)
	}

	for _, s := range []string{"a", "b", "c"} {
		if err := m.AppendArrayItem(xmpns.DC, "subject", engine.PropValueIsArray, s, 0); err != nil {
			t.Fatalf("AppendArrayItem: %v", err)
		}
	}
	if n, _ := m.CountArrayItems(xmpns.DC, "subject"); n != 3 {
		t.Fatalf("count = %d", n)
	}
	if v, _, ok, _ := m.GetArrayItem(xmpns.DC, "subject", engine.LastItem); !ok || v != "c" {
		t.Errorf("last item = %q, %v", v, ok)
	}
	if _, _, ok, _ := m.GetArrayItem(xmpns.DC, "subject", 4); ok {
		t.Error("index past end should be absent")
	}
	if f := catchFault(func() { m.GetArrayItem(xmpns.DC, "subject", 0) }); f == nil || f.Code != int32(errors.BadIndex) {
		t.Errorf("index 0 fault = %+v", f)
	}

	m.SetArrayItem(xmpns.DC, "subject", 1, "z", engine.PropArrayInsertBefore)
	m.SetArrayItem(xmpns.DC, "subject", 2, "y", 0)
	m.DeleteArrayItem(xmpns.DC, "subject", 4)

	var got []string
	for i := int32(1); ; i++ {
		v, _, ok, _ := m.GetArrayItem(xmpns.DC, "subject", i)
		if !ok {
			break
		}
		got = append(got, v)
	}
	if strings.Join(got, ",") != "z,y,b" {
		t.Errorf("items = %v", got)
	}

	if f := catchFault(func() { m.SetArrayItem(xmpns.DC, "subject", 9, "x", 0) }); f == nil || f.Code != int32(errors.BadIndex) {
		t.Errorf("set out of range = %+v", f)
	}
	if n, _ := m.CountArrayItems(xmpns.DC, "none"); n != 0 {
		t.Errorf("absent array count = %d", n)
	}
}

func TestStructsAndQualifiers(t *testing.T) {
	tk := New()
	m := newMeta(t, tk)

	m.SetStructField(xmpns.XMPMM, "DerivedFrom", xmpns.XMPMM, "DocumentID", "doc-1", 0)
	v, _, ok, _ := m.GetStructField(xmpns.XMPMM, "DerivedFrom", xmpns.XMPMM, "DocumentID")
	if !ok || v != "doc-1" {
		t.Fatalf("GetStructField = %q, %v", v, ok)
	}
	if ok, _ := m.DoesStructFieldExist(xmpns.XMPMM, "DerivedFrom", xmpns.XMPMM, "InstanceID"); ok {
		t.Error("unset field reported present")
	}
	m.DeleteStructField(xmpns.XMPMM, "DerivedFrom", xmpns.XMPMM, "DocumentID")
	if ok, _ := m.DoesStructFieldExist(xmpns.XMPMM, "DerivedFrom", xmpns.XMPMM, "DocumentID"); ok {
		t.Error("field survived delete")
	}

	if f := catchFault(func() { m.SetQualifier(xmpns.DC, "creator", xmpns.XMP, "role", "x", 0) }); f == nil {
		t.Fatal("qualifier on absent property should fault")
	}
	m.SetProperty(xmpns.DC, "source", "camera", 0)
	m.SetQualifier(xmpns.DC, "source", xmpns.XMP, "role", "origin", 0)
	q, qf, ok, _ := m.GetQualifier(xmpns.DC, "source", xmpns.XMP, "role")
	if !ok || q != "origin" || !qf.Has(engine.PropIsQualifier) {
		t.Errorf("GetQualifier = %q, %x, %v", q, qf, ok)
	}
	_, pf, _, _ := m.GetProperty(xmpns.DC, "source")
	if !pf.Has(engine.PropHasQualifiers) {
		t.Errorf("property flags %x lack HasQualifiers", pf)
	}
	m.DeleteQualifier(xmpns.DC, "source", xmpns.XMP, "role")
	if ok, _ := m.DoesQualifierExist(xmpns.DC, "source", xmpns.XMP, "role"); ok {
		t.Error("qualifier survived delete")
	}
}

func TestLocalizedText(t *testing.T) {
	tk := New()
	m := newMeta(t, tk)

	if _, _, _, ok, _ := m.GetLocalizedText(xmpns.DC, "title", "", "en-US"); ok {
		t.Fatal("absent alt-text reported present")
	}

	m.SetLocalizedText(xmpns.DC, "title", "en", "en-US", "Color", 0)
	m.SetLocalizedText(xmpns.DC, "title", "en", "en-GB", "Colour", 0)
	m.SetLocalizedText(xmpns.DC, "title", "fr", "fr-FR", "Couleur", 0)

	tests := []struct {
		generic, specific string
		value, lang       string
	}{
		{"en", "en-GB", "Colour", "en-gb"},
		{"en", "en-AU", "Color", "en-us"},
		{"fr", "fr-CA", "Couleur", "fr-fr"},
		{"", "de-DE", "Color", "x-default"},
	}
	for _, tt := range tests {
		v, lang, _, ok, err := m.GetLocalizedText(xmpns.DC, "title", tt.generic, tt.specific)
		if err != nil || !ok || v != tt.value || lang != tt.lang {
			t.Errorf("GetLocalizedText(%q, %q) = %q, %q, %v, %v", tt.generic, tt.specific, v, lang, ok, err)
		}
	}

	if n, _ := m.CountArrayItems(xmpns.DC, "title"); n != 4 {
		t.Errorf("alt-text items = %d, want 4", n)
	}
}

func TestIterator(t *testing.T) {
	tk := New()
	m := newMeta(t, tk)
	m.SetProperty(xmpns.DC, "format", "image/png", 0)
	m.SetProperty(xmpns.DC, "type", "Image", 0)
	m.SetProperty(xmpns.XMP, "Rating", "3", 0)
	m.AppendArrayItem(xmpns.DC, "subject", engine.PropValueIsArray, "a", 0)
	m.AppendArrayItem(xmpns.DC, "subject", engine.PropValueIsArray, "b", 0)

	collect := func(it engine.Iterator) string {
		var paths []string
		for {
			n, ok, err := it.Next()
			if err != nil {
				t.Fatalf("Next: %v", err)
			}
			if !ok {
				return strings.Join(paths, " ")
			}
			paths = append(paths, n.Path)
		}
	}

	tests := []struct {
		name  string
		ns    string
		flags engine.IterFlags
		want  string
	}{
		{"full", "", 0, "xmp:Rating dc:format dc:subject dc:subject[1] dc:subject[2] dc:type"},
		{"leaf names", xmpns.DC, engine.IterJustLeafNodes | engine.IterJustLeafName, "dc:format [1] [2] dc:type"},
		{"children", "", engine.IterJustChildren, "xmp:Rating dc:format dc:subject dc:type"},
	}
	for _, tt := range tests {
		it, err := m.Iterate(tt.ns, "", tt.flags)
		if err != nil {
			t.Fatalf("%s: Iterate: %v", tt.name, err)
		}
		if got := collect(it); got != tt.want {
			t.Errorf("%s walk = %q, want %q", tt.name, got, tt.want)
		}
	}

	it, _ := m.Iterate("", "", 0)
	if f := catchFault(func() { it.Skip(engine.SkipSubtree) }); f == nil || f.Code != int32(errors.BadIterPosition) {
		t.Errorf("skip before next = %+v", f)
	}
	it.Next() // xmp:Rating
	it.Next() // dc:format
	it.Next() // dc:subject
	if err := it.Skip(engine.SkipSubtree); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	if n, _, _ := it.Next(); n.Path != "dc:type" {
		t.Errorf("after subtree skip = %q", n.Path)
	}

	it, _ = m.Iterate(xmpns.DC, "", 0)
	it.Next() // dc:format
	it.Next() // dc:subject
	it.Next() // dc:subject[1]
	it.Skip(engine.SkipSiblings)
	if n, _, _ := it.Next(); n.Path != "dc:type" {
		t.Errorf("after sibling skip = %q", n.Path)
	}

	if f := catchFault(func() { it.Skip(0) }); f == nil || f.Code != int32(errors.BadOptions) {
		t.Errorf("bad skip flags = %+v", f)
	}
}

func TestDateTime_FormatParse(t *testing.T) {
	tk := New()
	tests := []string{
		"2024",
		"2024-03",
		"2024-03-09",
		"2024-03-09T08:05",
		"2024-03-09T08:05:07Z",
		"2024-03-09T08:05:07.25+02:00",
		"2024-03-09T08:05:07-05:30",
	}
	for _, s := range tests {
		dt, err := tk.ParseDateTime(s)
		if err != nil {
			t.Fatalf("ParseDateTime(%q): %v", s, err)
		}
		out, _ := tk.FormatDateTime(dt)
		if out != s {
			t.Errorf("round trip %q -> %q", s, out)
		}
	}

	for _, bad := range []string{"", "24", "2024-13", "2024-01-01T25:00", "2024-01-01T10:00+0500", "junk"} {
		if f := catchFault(func() { tk.ParseDateTime(bad) }); f == nil || f.Code != int32(errors.BadValue) {
			t.Errorf("ParseDateTime(%q) fault = %+v", bad, f)
		}
	}
}

func TestDateTime_Convert(t *testing.T) {
	tk := New()

	dt, _ := tk.ParseDateTime("2024-03-09T23:30:00-02:00")
	tk.ConvertToUTC(&dt)
	if s, _ := tk.FormatDateTime(dt); s != "2024-03-10T01:30Z" {
		t.Errorf("ConvertToUTC = %q", s)
	}

	a, _ := tk.ParseDateTime("2024-03-09T10:00:00+01:00")
	b, _ := tk.ParseDateTime("2024-03-09T09:30:00Z")
	if c, _ := tk.CompareDateTime(a, b); c >= 0 {
		t.Errorf("Compare = %d, want negative", c)
	}
	if c, _ := tk.CompareDateTime(a, a); c != 0 {
		t.Errorf("Compare self = %d", c)
	}

	zoned, _ := tk.ParseDateTime("2024-03-09T10:00Z")
	if f := catchFault(func() { tk.SetTimeZone(&zoned) }); f == nil || f.Code != int32(errors.BadParam) {
		t.Errorf("SetTimeZone on zoned = %+v", f)
	}
	bare, _ := tk.ParseDateTime("2024-03-09T10:00")
	tk.SetTimeZone(&bare)
	if !bare.HasTimeZone {
		t.Error("SetTimeZone did not assign a zone")
	}
}

func TestSerializeParse(t *testing.T) {
	tk := New()
	tk.RegisterNamespace("urn:test:serial", "ser")
	m := newMeta(t, tk)
	m.SetObjectName("doc")
	m.SetProperty("urn:test:serial", "a", "1", 0)
	m.SetLocalizedText(xmpns.DC, "title", "", "en-US", "T", 0)

	s, err := m.Serialize(0, 0, "", "", 0)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if !strings.HasPrefix(s, "<?xpacket begin") || !strings.HasSuffix(s, packetEndW) {
		t.Errorf("missing packet wrapper:\n%s", s)
	}

	p, err := tk.ParseMeta([]byte(s), engine.ParseRequireXMPMeta)
	if err != nil {
		t.Fatalf("ParseMeta: %v", err)
	}
	pm := p.(*Meta)
	if pm.name != "doc" || pm.Len() != 2 {
		t.Fatalf("parsed name=%q props=%d", pm.name, pm.Len())
	}
	v, lang, _, ok, _ := pm.GetLocalizedText(xmpns.DC, "title", "", "en-US")
	if !ok || v != "T" || lang != "en-us" {
		t.Errorf("parsed alt-text = %q, %q, %v", v, lang, ok)
	}

	bare, _ := m.Serialize(engine.SerializeOmitXMPMetaElement|engine.SerializeOmitPacketWrapper|engine.SerializeUseCompactFormat, 0, "", "", 0)
	strict, _ := tk.ParseMeta([]byte(bare), engine.ParseRequireXMPMeta)
	if strict.(*Meta).Len() != 0 {
		t.Error("bare rdf should be empty when x:xmpmeta is required")
	}
	loose, _ := tk.ParseMeta([]byte(bare), 0)
	if loose.(*Meta).Len() != 2 {
		t.Error("bare rdf should parse without the requirement")
	}

	if f := catchFault(func() { tk.ParseMeta([]byte("{not json"), 0) }); f == nil || f.Code != int32(errors.BadXml) {
		t.Errorf("bad packet fault = %+v", f)
	}

	exact, err := m.Serialize(engine.SerializeExactPacketLength, 4096, "", "", 0)
	if err != nil || len(exact) != 4096 {
		t.Errorf("exact length = %d, %v", len(exact), err)
	}
	if f := catchFault(func() { m.Serialize(engine.SerializeExactPacketLength, 10, "", "", 0) }); f == nil || f.Code != int32(errors.BadSerialize) {
		t.Errorf("too small packet = %+v", f)
	}
}

func TestFile_MissingPathUsesCallback(t *testing.T) {
	tk := New()
	fe, _ := tk.NewFile()
	f := fe.(*File)

	var gotCause int32
	var gotMsg string
	f.SetErrorCallback(func(path string, sev engine.Severity, cause int32, msg string) bool {
		gotCause, gotMsg = cause, msg
		return false
	}, 1)

	ok, err := f.Open("/nope.jpg", engine.UnknownFormat, engine.OpenForRead)
	if ok || err != nil {
		t.Fatalf("Open = %v, %v", ok, err)
	}
	if gotCause != int32(errors.NoFile) || gotMsg == "" {
		t.Errorf("callback got %d %q", gotCause, gotMsg)
	}

	// without a callback the problem is raised
	fe2, _ := tk.NewFile()
	if fault := catchFault(func() { fe2.Open("/nope.jpg", engine.UnknownFormat, 0) }); fault == nil || fault.Code != int32(errors.NoFile) {
		t.Errorf("raised fault = %+v", fault)
	}
}

func TestFile_UpdateRoundTrip(t *testing.T) {
	tk := New()
	tk.AddFile("/a.jpg", nil)

	fe, _ := tk.NewFile()
	if ok, _ := fe.Open("/a.jpg", engine.UnknownFormat, engine.OpenForUpdate); !ok {
		t.Fatal("Open failed")
	}
	if _, found, _ := fe.GetXMP(); found {
		t.Fatal("empty file reported metadata")
	}

	m := newMeta(t, tk)
	m.SetProperty(xmpns.DC, "format", "image/jpeg", 0)
	if can, _ := fe.CanPutXMP(m); !can {
		t.Fatal("CanPutXMP = false for update mode")
	}
	if err := fe.PutXMP(m); err != nil {
		t.Fatalf("PutXMP: %v", err)
	}
	fe.Close(engine.CloseSafeUpdate)
	fe.Close(0)

	fe.Open("/a.jpg", engine.UnknownFormat, engine.OpenForRead)
	got, found, err := fe.GetXMP()
	if err != nil || !found {
		t.Fatalf("GetXMP = %v, %v", found, err)
	}
	if v, _, _, _ := got.GetProperty(xmpns.DC, "format"); v != "image/jpeg" {
		t.Errorf("round trip value = %q", v)
	}
	if f := catchFault(func() { fe.PutXMP(m) }); f == nil || f.Code != int32(errors.BadParam) {
		t.Errorf("PutXMP read-only = %+v", f)
	}
}

func TestInjectAndLive(t *testing.T) {
	tk := New()
	boom := stderrors.New("boom")

	tk.Inject("NewMeta", boom)
	if _, err := tk.NewMeta(); err != boom {
		t.Fatalf("injected error = %v", err)
	}
	tk.Inject("NewMeta", nil)

	m := newMeta(t, tk)
	tk.Inject("GetProperty", "kaput")
	func() {
		defer func() {
			if r := recover(); r != "kaput" {
				t.Errorf("recovered %v, want kaput", r)
			}
		}()
		m.GetProperty(xmpns.DC, "x")
	}()

	it, _ := m.Iterate("", "", 0)
	if tk.Live() != 2 {
		t.Fatalf("Live = %d, want 2", tk.Live())
	}
	it.(*Iterator).Release()
	m.Release()
	m.Release()
	if tk.Live() != 0 {
		t.Fatalf("Live = %d after release", tk.Live())
	}
}
