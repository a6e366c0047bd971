package resource

import "strconv"

// Handle is an opaque reference to a value in a Table.
// Handle 0 is reserved and always invalid.
type Handle uint32

// Kind identifies the type of value behind a handle.
type Kind uint8

const (
	KindFile Kind = iota + 1
	KindMeta
	KindDateTime
	KindIterator
	KindString
)

var kindNames = [...]string{
	KindFile:     "file",
	KindMeta:     "meta",
	KindDateTime: "datetime",
	KindIterator: "iterator",
	KindString:   "string",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// EventType distinguishes lifecycle notifications.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDropped
)

// Event represents a handle lifecycle event.
type Event struct {
	Value  any
	Handle Handle
	Kind   Kind
	Type   EventType
}

// Observer receives notifications about handle lifecycle events.
// Observers are called with no table lock held.
type Observer interface {
	OnResourceEvent(Event)
}

// Dropper is optionally implemented by values that need cleanup when
// their handle is removed. Table.Remove calls Drop once, before observers
// see the drop event.
type Dropper interface {
	Drop()
}
