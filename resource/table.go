package resource

import (
	"sync"
)

// Table maps handles to values with kind checks and lifecycle observers.
// It is safe for concurrent use.
type Table struct {
	backend   *LocalBackend
	observers []Observer
	obsMu     sync.RWMutex
}

// NewTable creates a new table with a LocalBackend.
func NewTable() *Table {
	return &Table{
		backend: NewLocalBackend(),
	}
}

// Insert adds a value and returns its handle.
// It returns 0 when the table is full.
func (t *Table) Insert(kind Kind, value any) Handle {
	handle, err := t.backend.Create(kind, value)
	if err != nil {
		return 0
	}

	t.notify(Event{
		Type:   EventCreated,
		Handle: handle,
		Kind:   kind,
		Value:  value,
	})

	return handle
}

// Get retrieves a value only if the handle is live and of the given kind.
func (t *Table) Get(handle Handle, kind Kind) (any, bool) {
	value, actual, ok := t.backend.Get(handle)
	if !ok || actual != kind {
		return nil, false
	}
	return value, true
}

// KindOf reports the kind of a live handle.
func (t *Table) KindOf(handle Handle) (Kind, bool) {
	_, kind, ok := t.backend.Get(handle)
	return kind, ok
}

// Remove drops a handle of the given kind and returns its value.
// A handle of another kind is left live.
func (t *Table) Remove(handle Handle, kind Kind) (any, bool) {
	if actual, ok := t.KindOf(handle); !ok || actual != kind {
		return nil, false
	}

	value, actual, ok := t.backend.Drop(handle)
	if !ok {
		return nil, false
	}

	// Drop runs outside the backend lock so it may remove other handles.
	if d, ok := value.(Dropper); ok {
		d.Drop()
	}

	t.notify(Event{
		Type:   EventDropped,
		Handle: handle,
		Kind:   actual,
		Value:  value,
	})

	return value, true
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Len returns the number of live handles.
func (t *Table) Len() int {
	return t.backend.Len()
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnResourceEvent(e)
	}
}
