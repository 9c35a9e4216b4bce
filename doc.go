// Package geoengine provides an orchestration engine for geometric-dataset
// processing operations driven against an external, dynamically loaded
// geometry-processing runtime.
//
// The engine holds no geometry algorithms. Its job is to bridge to the
// foreign runtime, translate opaque dataset handles into live foreign
// objects, and sequence foreign operations (construct filter, configure
// parameters, execute, retrieve result) into single-call operations such
// as slicing, clipping, and isosurface contouring.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	geoengine/           Root package with the foreign-object interfaces
//	                     (Dataset, Plane, Cutter, Clipper, Contour,
//	                     Elevation, Runtime)
//	├── bridge/          High-level Engine: dataset handle registry and
//	                     the single-call operations
//	├── engine/          wazero-backed foreign runtime: module acquisition
//	                     and named-capability invocation
//	├── registry/        Dataset handle table implementation
//	├── errors/          Structured error types for debugging
//	├── cmd/geom/        CLI and interactive inspector
//	└── examples/basic/  Minimal end-to-end usage
//
// # Quick Start
//
// Load a geometry module and slice a dataset:
//
//	eng, err := bridge.New(ctx, bridge.Config{ModulePath: "geometry.wasm"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Close(ctx)
//
//	ds, err := eng.CreateDemoDataset(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := eng.ApplySlice(ctx, ds,
//	    geoengine.Vec3{},                 // origin
//	    geoengine.Vec3{X: 0, Y: 0, Z: 1}) // normal
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	info, _ := eng.GetDataInfo(ctx, out)
//	fmt.Println(info["Bounds"])
//
// # Thread Safety
//
// The foreign runtime and the objects it produces are NOT thread-safe.
// The bridge Engine serializes all foreign interaction behind a single
// mutex, so its operations may be called from multiple goroutines but never
// run concurrently. Code using the engine/ Runtime directly must serialize
// access itself.
//
// # Memory Model
//
// All dataset and filter memory is owned and reclaimed by the foreign
// runtime according to its own object-lifetime rules. Handles issued by
// the engine are translation-only: releasing a handle drops the engine's
// reference, it never frees foreign memory.
package geoengine
