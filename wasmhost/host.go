package wasmhost

import (
	"context"
	stderrors "errors"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/xmp-bridge/bridge"
	"github.com/wippyai/xmp-bridge/errors"
)

// Default host settings.
const (
	DefaultModuleName     = "xmp"
	DefaultMaxStringBytes = 1 << 20
	DefaultHeapPages      = 256
)

// memoryExport is the name guests export their linear memory under.
const memoryExport = "memory"

// Host serves one bridge to any number of guest modules.
type Host struct {
	bridge    *bridge.Bridge
	name      string
	maxString uint32
	heapPages uint32

	mu    sync.Mutex
	heaps map[api.Module]*heap
}

// Option configures a Host.
type Option func(*Host)

// WithModuleName sets the import module name guests link against.
func WithModuleName(name string) Option {
	return func(h *Host) { h.name = name }
}

// WithMaxStringBytes bounds the length of any string or buffer a guest
// passes in.
func WithMaxStringBytes(n uint32) Option {
	return func(h *Host) { h.maxString = n }
}

// WithHeapPages bounds how many pages the host may grow in each guest's
// memory for returned strings.
func WithHeapPages(n uint32) Option {
	return func(h *Host) { h.heapPages = n }
}

// New creates a host for b.
func New(b *bridge.Bridge, opts ...Option) *Host {
	h := &Host{
		bridge:    b,
		name:      DefaultModuleName,
		maxString: DefaultMaxStringBytes,
		heapPages: DefaultHeapPages,
		heaps:     make(map[api.Module]*heap),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Name returns the import module name.
func (h *Host) Name() string {
	return h.name
}

// Instantiate registers the host module in rt.
func (h *Host) Instantiate(ctx context.Context, rt wazero.Runtime) (api.Module, error) {
	builder := rt.NewHostModuleBuilder(h.name)
	for _, e := range h.exports() {
		builder.NewFunctionBuilder().
			WithGoModuleFunction(h.wrap(e), e.paramTypes(), e.resultTypes()).
			Export(e.name)
	}
	mod, err := builder.Instantiate(ctx)
	if err != nil {
		return nil, errors.Registration(h.name, "*", err)
	}
	Logger().Debug("host module instantiated", zap.String("module", h.name))
	return mod, nil
}

// Release forgets the heap kept for mod. Call it after closing a guest.
func (h *Host) Release(mod api.Module) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.heaps, mod)
}

// LiveAllocations returns the number of strings mod has not released.
func (h *Host) LiveAllocations(mod api.Module) int {
	h.mu.Lock()
	hp := h.heaps[mod]
	h.mu.Unlock()
	if hp == nil {
		return 0
	}
	return hp.liveBlocks()
}

// heapFor returns the heap kept in mod's exported memory. A module that
// exports no memory is rejected before any bridge operation runs.
func (h *Host) heapFor(mod api.Module) (*heap, error) {
	if _, ok := mod.ExportedMemoryDefinitions()[memoryExport]; !ok {
		return nil, errors.New(errors.PhaseGuest, errors.KindUnsupported).
			Op("heap").
			Detail("guest %q exports no %q", mod.Name(), memoryExport).
			Build()
	}
	mem := mod.ExportedMemory(memoryExport)
	h.mu.Lock()
	defer h.mu.Unlock()
	hp, ok := h.heaps[mod]
	if !ok {
		hp = newHeap(mem, h.heapPages)
		h.heaps[mod] = hp
	}
	return hp, nil
}

// export describes one host function. Every parameter and result is i32.
// When record is set the last parameter is an error record pointer.
type export struct {
	name   string
	params int
	result bool
	record bool
	run    func(c *call, rec *bridge.ErrorRecord) uint32
}

func (e export) paramTypes() []api.ValueType {
	types := make([]api.ValueType, e.params)
	for i := range types {
		types[i] = api.ValueTypeI32
	}
	return types
}

func (e export) resultTypes() []api.ValueType {
	if e.result {
		return []api.ValueType{api.ValueTypeI32}
	}
	return nil
}

// call carries the state of one guest invocation. The first guest memory
// failure is kept in err; later reads return zero values.
type call struct {
	b     *bridge.Bridge
	mem   *guestMemory
	heap  *heap
	stack []uint64
	err   error
}

func (c *call) u32(i int) uint32 {
	return api.DecodeU32(c.stack[i])
}

func (c *call) i32(i int) int32 {
	return api.DecodeI32(c.stack[i])
}

func (c *call) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

func (c *call) failed() bool {
	return c.err != nil
}

// bytes reads the (pointer, length) pair at stack[i] and stack[i+1].
func (c *call) bytes(op string, i int) []byte {
	if c.err != nil {
		return nil
	}
	b, err := c.mem.bytes(op, c.u32(i), c.u32(i+1))
	c.fail(err)
	return b
}

func (c *call) str(op string, i int) string {
	return string(c.bytes(op, i))
}

// export moves s into the guest heap and releases it on the bridge side.
func (c *call) export(s bridge.OwnedString) uint32 {
	if s == 0 {
		return 0
	}
	v := c.b.TakeString(s)
	if c.err != nil {
		return 0
	}
	ptr, err := c.heap.putString(v)
	c.fail(err)
	return ptr
}

// out writes v to the u32 out-pointer at stack[i]. A zero pointer is
// skipped.
func (c *call) out(op string, i int, v uint32) {
	ptr := c.u32(i)
	if ptr == 0 || c.err != nil {
		return
	}
	c.fail(c.mem.writeU32(op, ptr, v))
}

func (h *Host) wrap(e export) api.GoModuleFunc {
	return func(ctx context.Context, mod api.Module, stack []uint64) {
		var (
			c      *call
			recPtr uint32
			rec    bridge.ErrorRecord
		)
		defer h.bridge.ErrorRecordDrop(&rec)
		defer func() {
			if r := recover(); r != nil {
				err := errors.Panic(e.name, r)
				Logger().Error("host function panicked",
					zap.String("func", e.name),
					zap.Error(err))
				if c != nil && recPtr != 0 {
					c.writeRecord(recPtr, int32(errors.InternalFailure), err.Error())
				}
				if e.result {
					stack[0] = 0
				}
			}
		}()

		hp, err := h.heapFor(mod)
		if err != nil {
			Logger().Warn("guest without memory", zap.String("func", e.name), zap.Error(err))
			if e.result {
				stack[0] = 0
			}
			return
		}
		c = &call{
			b:     h.bridge,
			mem:   &guestMemory{mem: hp.mem, maxInput: h.maxString},
			heap:  hp,
			stack: stack,
		}

		if e.record {
			recPtr = c.u32(e.params - 1)
			if recPtr != 0 {
				if err := c.mem.checkRecord(e.name, recPtr, errorRecordLayout); err != nil {
					Logger().Warn("error record out of bounds", zap.String("func", e.name), zap.Error(err))
					recPtr = 0
				} else {
					c.clearRecord(recPtr)
				}
			}
		}

		result := e.run(c, &rec)
		if c.err != nil {
			Logger().Debug("guest memory failure", zap.String("func", e.name), zap.Error(c.err))
			result = 0
		}
		if recPtr != 0 {
			c.storeRecord(recPtr, &rec)
		}
		if e.result {
			stack[0] = api.EncodeU32(result)
		}
	}
}

// clearRecord frees the message left in a reused record and marks it
// clean.
func (c *call) clearRecord(ptr uint32) {
	l := errorRecordLayout
	if msg := c.mem.load(ptr, l, "debug-message"); msg != 0 {
		c.heap.releaseString(msg)
	}
	c.mem.store(ptr, l, "had-error", 0)
	c.mem.store(ptr, l, "id", 0)
	c.mem.store(ptr, l, "debug-message", 0)
}

// storeRecord writes the outcome of the call to the guest record. A guest
// memory failure takes precedence over the bridge's outcome.
func (c *call) storeRecord(ptr uint32, rec *bridge.ErrorRecord) {
	hadError, id, msg := rec.HadError, rec.ID, ""
	if rec.DebugMessage != 0 {
		msg = c.b.StringValue(rec.DebugMessage)
	}
	if c.err != nil {
		hadError, id, msg = true, int32(errors.BadParam), c.err.Error()
		var e *errors.Error
		if stderrors.As(c.err, &e) && e.Kind == errors.KindAllocation {
			id = int32(errors.NoMemory)
		}
	}
	if !hadError {
		return
	}
	c.writeRecord(ptr, id, msg)
}

// writeRecord marks the guest record failed with id and msg. A message
// left there by an earlier write in the same call is freed first.
func (c *call) writeRecord(ptr uint32, id int32, msg string) {
	l := errorRecordLayout
	if old := c.mem.load(ptr, l, "debug-message"); old != 0 {
		c.heap.releaseString(old)
	}
	var msgPtr uint32
	if msg != "" {
		// A message that does not fit is dropped; the code still reaches the guest.
		msgPtr, _ = c.heap.putString(msg)
	}
	c.mem.store(ptr, l, "had-error", 1)
	c.mem.store(ptr, l, "id", uint32(id))
	c.mem.store(ptr, l, "debug-message", msgPtr)
}
