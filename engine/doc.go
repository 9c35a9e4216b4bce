// Package engine provides the wazero-backed foreign runtime for the
// geometry engine.
//
// The foreign geometry-processing module is a WebAssembly binary executed
// in-process. Acquire compiles and instantiates it once per engine
// instance; every foreign object constructed afterwards routes through the
// same module instance.
//
// # Capability ABI
//
// The module exposes its object model as flat core-wasm exports. Object
// ids are guest-issued i32 values; id 0 is always invalid.
//
//	plane-new() -> i32
//	plane-set-origin(plane: i32, x: f64, y: f64, z: f64)
//	plane-set-normal(plane: i32, x: f64, y: f64, z: f64)
//	cutter-new() -> i32
//	cutter-set-cut-function(cutter: i32, plane: i32)
//	clipper-new() -> i32
//	clipper-set-clip-function(clipper: i32, plane: i32)
//	contour-new() -> i32
//	contour-set-value(contour: i32, value: f64)
//	elevation-new() -> i32
//	elevation-set-low-point(f: i32, x: f64, y: f64, z: f64)
//	elevation-set-high-point(f: i32, x: f64, y: f64, z: f64)
//	filter-set-input(filter: i32, dataset: i32)
//	filter-execute(filter: i32) -> i32      (0 = ok, nonzero = failure)
//	filter-get-output(filter: i32) -> i32   (dataset id)
//	dataset-points(dataset: i32) -> i64
//	dataset-cells(dataset: i32) -> i64
//	dataset-bound(dataset: i32, axis: i32) -> f64   (axis 0..5)
//	dataset-demo() -> i32
//	dataset-load(ptr: i32, len: i32) -> i32
//
// dataset-load additionally requires the module to export linear memory
// and an alloc(size: i32) -> i32 function so the source string can be
// written into guest space.
//
// A missing export surfaces as an unknown-capability error, the same kind
// on every call. Guest traps and nonzero execute statuses surface as
// execution errors and are never retried.
//
// # Thread Safety
//
// Runtime and the objects it produces are NOT safe for concurrent use.
// Callers must serialize access externally.
package engine
