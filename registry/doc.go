// Package registry provides the dataset handle table for the geometry
// engine.
//
// Dataset references exposed to callers are small integer handles issued
// by the engine itself, never raw addresses. The table maps each handle to
// a live foreign dataset reference; resolution is a lookup, so a stale or
// fabricated handle fails cleanly instead of being reinterpreted as
// foreign memory.
//
// # Handle Table
//
//	table := registry.NewTable()
//
//	// Register a dataset, get a handle
//	handle := table.Insert(registry.KindSource, ds)
//
//	// Resolve a handle back to the dataset
//	ds, ok := table.Get(handle)
//
//	// Drop the engine's reference
//	ds, ok := table.Remove(handle)
//
// Handle 0 is reserved and always invalid.
//
// # Observers
//
// Observers receive register/release events, which the bridge uses for
// lifecycle logging:
//
//	table.Subscribe(obs)
//
// # Memory Management
//
// The table tracks references only. Removing a handle drops the engine's
// view of the dataset; the foreign runtime owns and reclaims the dataset
// memory according to its own rules.
package registry
