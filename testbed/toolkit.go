package testbed

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/tidwall/btree"

	"github.com/wippyai/xmp-bridge/engine"
	"github.com/wippyai/xmp-bridge/errors"
	"github.com/wippyai/xmp-bridge/xmpns"
)

// nsMeta is the namespace of the x:xmpmeta wrapper element.
const nsMeta = "adobe:ns:meta/"

// injection is a scripted failure for one named operation.
type injection struct {
	value any
	panic bool
}

// Toolkit is the in-memory engine.Toolkit.
type Toolkit struct {
	initErr   error
	initPanic any

	prefixes *btree.Map[string, string] // uri -> "prefix:"
	uris     *btree.Map[string, string] // "prefix:" -> uri
	files    *btree.Map[string, []byte]
	inject   map[string]injection

	clock func() engine.DateTime

	mu        sync.RWMutex
	initCalls atomic.Int32
	live      atomic.Int64
}

var _ engine.Toolkit = (*Toolkit)(nil)

// Option configures a Toolkit.
type Option func(*Toolkit)

// WithInitError makes Initialize return err.
func WithInitError(err error) Option {
	return func(t *Toolkit) {
		t.initErr = err
	}
}

// WithInitPanic makes Initialize panic with v.
func WithInitPanic(v any) Option {
	return func(t *Toolkit) {
		t.initPanic = v
	}
}

// WithClock replaces the source of CurrentDateTime.
func WithClock(now func() engine.DateTime) Option {
	return func(t *Toolkit) {
		t.clock = now
	}
}

// New creates a Toolkit with the standard namespaces registered.
func New(opts ...Option) *Toolkit {
	t := &Toolkit{
		prefixes: btree.NewMap[string, string](0),
		uris:     btree.NewMap[string, string](0),
		files:    btree.NewMap[string, []byte](0),
		inject:   make(map[string]injection),
		clock:    localNow,
	}
	t.register(nsMeta, "x")
	for _, ns := range xmpns.Standard {
		t.register(ns.URI, ns.Prefix)
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Initialize counts calls and fails as configured.
func (t *Toolkit) Initialize() error {
	t.initCalls.Add(1)
	if t.initPanic != nil {
		panic(t.initPanic)
	}
	return t.initErr
}

func (t *Toolkit) Terminate() {}

// InitCalls returns how many times Initialize ran.
func (t *Toolkit) InitCalls() int {
	return int(t.initCalls.Load())
}

// Live returns the number of engine objects created and not released.
func (t *Toolkit) Live() int {
	return int(t.live.Load())
}

// Inject makes the operation named op fail on every later call until
// cleared with Inject(op, nil). An error value is returned by the
// operation; any other value is raised as a panic. Use InjectPanic to
// panic with an error value.
func (t *Toolkit) Inject(op string, v any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if v == nil {
		delete(t.inject, op)
		return
	}
	_, isErr := v.(error)
	t.inject[op] = injection{value: v, panic: !isErr}
}

// InjectPanic makes op panic with v, even when v is an error.
func (t *Toolkit) InjectPanic(op string, v any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inject[op] = injection{value: v, panic: true}
}

// trip fires the injection registered for op, if any.
func (t *Toolkit) trip(op string) error {
	t.mu.RLock()
	inj, ok := t.inject[op]
	t.mu.RUnlock()
	if !ok {
		return nil
	}
	if inj.panic {
		panic(inj.value)
	}
	return inj.value.(error)
}

// AddFile stores packet under path. An empty packet is a file without
// metadata.
func (t *Toolkit) AddFile(path string, packet []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.files.Set(path, append([]byte(nil), packet...))
}

// FileData returns the packet stored under path.
func (t *Toolkit) FileData(path string) ([]byte, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.files.Get(path)
}

func (t *Toolkit) NewFile() (engine.File, error) {
	if err := t.trip("NewFile"); err != nil {
		return nil, err
	}
	t.live.Add(1)
	return &File{tk: t}, nil
}

func (t *Toolkit) NewMeta() (engine.Meta, error) {
	if err := t.trip("NewMeta"); err != nil {
		return nil, err
	}
	return t.newMeta(), nil
}

func (t *Toolkit) newMeta() *Meta {
	t.live.Add(1)
	return &Meta{tk: t, props: btree.NewMap[string, *node](0)}
}

func (t *Toolkit) ParseMeta(buffer []byte, flags engine.ParseFlags) (engine.Meta, error) {
	if err := t.trip("ParseMeta"); err != nil {
		return nil, err
	}
	m, err := t.parse(buffer, flags)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// RegisterNamespace registers uri, deriving a fresh prefix when the
// suggested one belongs to another URI. Prefixes carry a trailing colon.
// register binds uri to prefix. Caller holds no lock; it runs before the
// toolkit is shared.
func (t *Toolkit) register(uri, prefix string) {
	t.prefixes.Set(uri, prefix+":")
	t.uris.Set(prefix+":", uri)
}

func (t *Toolkit) RegisterNamespace(uri, suggestedPrefix string) (string, error) {
	if err := t.trip("RegisterNamespace"); err != nil {
		return "", err
	}
	if uri == "" {
		engine.Raise(int32(errors.BadSchema), "Empty namespace URI")
	}
	base := strings.TrimSuffix(suggestedPrefix, ":")
	if base == "" {
		engine.Raise(int32(errors.BadSchema), "Empty prefix")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if p, ok := t.prefixes.Get(uri); ok {
		return p, nil
	}
	prefix := base + ":"
	for n := 1; ; n++ {
		if _, taken := t.uris.Get(prefix); !taken {
			break
		}
		prefix = fmt.Sprintf("%s_%d_:", base, n)
	}
	t.prefixes.Set(uri, prefix)
	t.uris.Set(prefix, uri)
	return prefix, nil
}

func (t *Toolkit) NamespacePrefix(uri string) (string, bool, error) {
	if err := t.trip("NamespacePrefix"); err != nil {
		return "", false, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, ok := t.prefixes.Get(uri)
	return p, ok, nil
}

// NamespaceURI accepts the prefix with or without its trailing colon.
func (t *Toolkit) NamespaceURI(prefix string) (string, bool, error) {
	if err := t.trip("NamespaceURI"); err != nil {
		return "", false, err
	}
	if !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	u, ok := t.uris.Get(prefix)
	return u, ok, nil
}

func (t *Toolkit) DumpNamespaces(out engine.TextOutput) error {
	if err := t.trip("DumpNamespaces"); err != nil {
		return err
	}
	t.mu.RLock()
	var lines []string
	t.uris.Scan(func(prefix, uri string) bool {
		lines = append(lines, fmt.Sprintf("%-12s %s\n", prefix, uri))
		return true
	})
	t.mu.RUnlock()

	if err := out([]byte("Dumping namespace prefix to URI map\n")); err != nil {
		return err
	}
	for _, l := range lines {
		if err := out([]byte(l)); err != nil {
			return err
		}
	}
	return nil
}

// prefix returns the registered prefix of uri, raising BadSchema for
// empty or unknown URIs.
func (t *Toolkit) prefix(uri string) string {
	if uri == "" {
		engine.Raise(int32(errors.BadSchema), "Empty schema namespace URI")
	}
	t.mu.RLock()
	p, ok := t.prefixes.Get(uri)
	t.mu.RUnlock()
	if !ok {
		engine.Raise(int32(errors.BadSchema), "Unregistered schema namespace URI")
	}
	return p
}
