// Package bridge provides the high-level geometry engine: the caller-facing
// surface that owns one foreign runtime handle, issues opaque dataset
// handles, and sequences foreign operations into single calls.
//
// Every operation is a linear acquire -> configure -> execute -> extract
// sequence with no state between calls. Filter primitives are transient:
// constructed for one operation and abandoned after their output dataset is
// registered.
//
// Dataset handles are issued by the engine's own registry; a zero or
// unknown handle fails resolution and is never forwarded to the foreign
// runtime.
package bridge
