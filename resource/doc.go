// Package resource provides the opaque handle table behind the bridge.
//
// Every object the bridge hands to a caller (files, metadata documents,
// date-times, iterators and owned strings) lives in a Table and is
// referred to by a Handle. Callers never see the Go value.
//
// # Lifecycle
//
// A handle moves through three states:
//
//	absent -> live -> dropped
//
// Insert makes a handle live. Remove drops it exactly once; a second
// Remove of the same handle reports false. Handle 0 is reserved and is
// never live.
//
// Slots are recycled, but every slot carries a generation that is bumped
// on drop, so a stale handle never aliases the value that later reuses
// its slot:
//
//	h := table.Insert(resource.KindMeta, meta)
//	table.Remove(h)            // true
//	h2 := table.Insert(resource.KindMeta, other)
//	table.Remove(h)            // false, h2 is untouched
//
// # Kinds
//
// Handles are typed. Get checks the kind recorded at Insert:
//
//	v, ok := table.Get(h, resource.KindFile)
//
// # Observers
//
// Observers receive creation and drop events. Counter is the observer
// used by leak tests:
//
//	c := resource.NewCounter()
//	table.Subscribe(c)
//	...
//	if n := c.Live(resource.KindString); n != 0 { ... }
package resource
