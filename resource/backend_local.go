package resource

import (
	"errors"
	"sync"
)

// ErrFull is returned when every slot is taken.
var ErrFull = errors.New("resource backend full")

const (
	indexBits = 24
	indexMask = 1<<indexBits - 1
	maxSlots  = indexMask
)

// LocalBackend is an in-memory slot store with generation-stamped handles.
//
// A handle packs the slot number (plus one) in its low 24 bits and the
// slot generation in its high 8 bits.
type LocalBackend struct {
	entries  []entry
	freeList []uint32
	mu       sync.RWMutex
	live     int
}

type entry struct {
	value any
	kind  Kind
	gen   uint8
	valid bool
}

// NewLocalBackend creates a new in-memory backend.
func NewLocalBackend() *LocalBackend {
	return &LocalBackend{
		entries:  make([]entry, 0, 64),
		freeList: make([]uint32, 0, 16),
	}
}

func makeHandle(slot uint32, gen uint8) Handle {
	return Handle(uint32(gen)<<indexBits | (slot + 1))
}

func splitHandle(h Handle) (slot uint32, gen uint8, ok bool) {
	idx := uint32(h) & indexMask
	if idx == 0 {
		return 0, 0, false
	}
	return idx - 1, uint8(uint32(h) >> indexBits), true
}

// Create stores a value and returns a handle.
func (b *LocalBackend) Create(kind Kind, value any) (Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n := len(b.freeList); n > 0 {
		slot := b.freeList[n-1]
		b.freeList = b.freeList[:n-1]
		e := &b.entries[slot]
		e.value = value
		e.kind = kind
		e.valid = true
		b.live++
		return makeHandle(slot, e.gen), nil
	}

	if len(b.entries) >= maxSlots {
		return 0, ErrFull
	}

	b.entries = append(b.entries, entry{kind: kind, value: value, valid: true})
	b.live++
	return makeHandle(uint32(len(b.entries)-1), 0), nil
}

// lookup returns the live entry for h. Caller holds b.mu.
func (b *LocalBackend) lookup(h Handle) *entry {
	slot, gen, ok := splitHandle(h)
	if !ok || int(slot) >= len(b.entries) {
		return nil
	}
	e := &b.entries[slot]
	if !e.valid || e.gen != gen {
		return nil
	}
	return e
}

// Get retrieves a value and its kind by handle.
func (b *LocalBackend) Get(h Handle) (any, Kind, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	e := b.lookup(h)
	if e == nil {
		return nil, 0, false
	}
	return e.value, e.kind, true
}

// Drop removes a live handle and returns its value.
// It returns false for handle 0, unknown handles and stale handles.
func (b *LocalBackend) Drop(h Handle) (any, Kind, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e := b.lookup(h)
	if e == nil {
		return nil, 0, false
	}

	value, kind := e.value, e.kind
	e.valid = false
	e.value = nil
	e.gen++
	b.live--

	slot, _, _ := splitHandle(h)
	b.freeList = append(b.freeList, slot)

	return value, kind, true
}

// Len returns the number of live handles.
func (b *LocalBackend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.live
}
