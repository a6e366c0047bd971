package wasmhost

import (
	"encoding/binary"
	"sync"

	"github.com/tetratelabs/wazero/api"
	"github.com/tidwall/btree"

	"github.com/wippyai/xmp-bridge/errors"
)

const (
	pageSize  = 65536
	heapAlign = 8
)

// heap hands out blocks of guest memory from pages the host grows itself.
//
// Blocks are bump-allocated from the newest chunk of grown pages. Freed
// blocks go to an offset-ordered free list and are merged with free
// neighbors; a free span that ends at the bump pointer is returned to it.
type heap struct {
	mem      api.Memory
	maxPages uint32

	mu    sync.Mutex
	grown uint32
	cur   uint32
	end   uint32
	live  map[uint32]uint32
	free  *btree.Map[uint32, uint32]
}

func newHeap(mem api.Memory, maxPages uint32) *heap {
	return &heap{
		mem:      mem,
		maxPages: maxPages,
		live:     make(map[uint32]uint32),
		free:     btree.NewMap[uint32, uint32](0),
	}
}

// put copies data into a fresh block and returns its address.
func (h *heap) put(data []byte) (uint32, error) {
	ptr, err := h.alloc(uint32(len(data)))
	if err != nil {
		return 0, err
	}
	if !h.mem.Write(ptr, data) {
		h.release(ptr)
		return 0, errors.OutOfBounds("heap_put", ptr, uint32(len(data)))
	}
	return ptr, nil
}

// putString stores s as a little-endian u32 length, the bytes and a NUL.
// The returned address is that of the first byte of s.
func (h *heap) putString(s string) (uint32, error) {
	buf := make([]byte, 4+len(s)+1)
	binary.LittleEndian.PutUint32(buf, uint32(len(s)))
	copy(buf[4:], s)
	ptr, err := h.put(buf)
	if err != nil {
		return 0, err
	}
	return ptr + 4, nil
}

// releaseString frees a block returned by putString.
func (h *heap) releaseString(ptr uint32) bool {
	if ptr < 4 {
		return false
	}
	return h.release(ptr - 4)
}

func (h *heap) alloc(n uint32) (uint32, error) {
	size := alignTo(max(n, 1), heapAlign)

	h.mu.Lock()
	defer h.mu.Unlock()

	var at, span uint32
	var found bool
	h.free.Scan(func(p, s uint32) bool {
		if s >= size {
			at, span, found = p, s, true
			return false
		}
		return true
	})
	if found {
		h.free.Delete(at)
		if span > size {
			h.free.Set(at+size, span-size)
		}
		h.live[at] = size
		return at, nil
	}

	if h.end-h.cur < size {
		if err := h.grow(size); err != nil {
			return 0, err
		}
	}
	ptr := h.cur
	h.cur += size
	h.live[ptr] = size
	return ptr, nil
}

// grow adds enough pages for need bytes. Pages that do not continue the
// current chunk start a new one and the rest of the old chunk is freed.
func (h *heap) grow(need uint32) error {
	pages := (need + pageSize - 1) / pageSize
	if h.grown+pages > h.maxPages {
		return errors.AllocationFailed(errors.PhaseGuest, need)
	}
	prev, ok := h.mem.Grow(pages)
	if !ok {
		return errors.AllocationFailed(errors.PhaseGuest, need)
	}
	h.grown += pages

	start := prev * pageSize
	if start != h.end || h.end == 0 {
		if h.end > h.cur {
			h.insertFree(h.cur, h.end-h.cur)
		}
		h.cur = start
	}
	h.end = start + pages*pageSize
	return nil
}

// release frees the block at ptr. It reports false for addresses that
// are not live blocks.
func (h *heap) release(ptr uint32) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	size, ok := h.live[ptr]
	if !ok {
		return false
	}
	delete(h.live, ptr)
	h.insertFree(ptr, size)
	return true
}

func (h *heap) insertFree(ptr, size uint32) {
	if next, ok := h.free.Get(ptr + size); ok {
		h.free.Delete(ptr + size)
		size += next
	}
	h.free.Descend(ptr, func(p, s uint32) bool {
		if p+s == ptr {
			h.free.Delete(p)
			ptr, size = p, size+s
		}
		return false
	})
	if ptr+size == h.cur {
		h.cur = ptr
		return
	}
	h.free.Set(ptr, size)
}

// liveBlocks returns the number of blocks not yet released.
func (h *heap) liveBlocks() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.live)
}
