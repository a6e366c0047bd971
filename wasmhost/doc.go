// Package wasmhost exposes a bridge.Bridge to WebAssembly guests as a
// wazero host module.
//
// Guests export their linear memory as "memory"; a caller without it is
// refused before any bridge operation runs. Guests pass strings in as
// (pointer, length) pairs. Text returned to a
// guest is copied into a heap the host carves from pages it grows in the
// guest's own memory. The result points at the first byte of the text,
// which is followed by a NUL; the four bytes before it hold the length as
// a little-endian u32, so embedded NULs survive. Zero means no string.
// The guest releases the buffer with string_drop.
//
// Operations that can fail take a pointer to an error record laid out as
// the WIT record
//
//	record error-record {
//	    had-error: u32,
//	    id: s32,
//	    debug-message: u32,
//	}
//
// A zero record pointer discards the outcome. The message belongs to the
// record: the next call that reuses the record frees it, as does
// error_record_drop. Guests must not pass it to string_drop.
//
// Handles are the bridge's handles unchanged. Zero is absent.
package wasmhost
