package bridge

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	geoengine "github.com/sciagent/geo-engine"
	"github.com/sciagent/geo-engine/errors"
	"github.com/sciagent/geo-engine/registry"
)

// noDataInfo is the introspection result for a handle that does not resolve.
func noDataInfo() map[string]string {
	return map[string]string{"Error": "No data object"}
}

// GetDataInfo returns point count, cell count and bounds for a dataset.
// A handle that does not resolve yields {"Error": "No data object"} and a
// nil error; introspection on a dead reference is a reportable condition,
// not a failure. Foreign query errors propagate.
func (e *Engine) GetDataInfo(ctx context.Context, h registry.Handle) (map[string]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil, errors.Closed(errors.PhaseResolve, "engine")
	}

	ds, err := e.resolve(h)
	if err != nil {
		e.log.Debug("introspection on unresolved reference",
			zap.Uint32("handle", uint32(h)))
		return noDataInfo(), nil
	}

	points, err := ds.Points(ctx)
	if err != nil {
		return nil, err
	}
	cells, err := ds.Cells(ctx)
	if err != nil {
		return nil, err
	}
	bounds, err := ds.Bounds(ctx)
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"Points": strconv.FormatInt(points, 10),
		"Cells":  strconv.FormatInt(cells, 10),
		"Bounds": bounds.String(),
	}, nil
}

// ApplySlice cuts the dataset with the plane defined by origin and normal
// and registers the cross-section as a new derived dataset.
func (e *Engine) ApplySlice(ctx context.Context, h registry.Handle, origin, normal geoengine.Vec3) (registry.Handle, error) {
	return e.derive(ctx, h, "slice", func(ctx context.Context, rt geoengine.Runtime, in geoengine.Dataset) (geoengine.Dataset, error) {
		pl, err := e.plane(ctx, rt, origin, normal)
		if err != nil {
			return nil, err
		}
		cut, err := rt.NewCutter(ctx)
		if err != nil {
			return nil, err
		}
		if err := cut.SetInput(ctx, in); err != nil {
			return nil, err
		}
		if err := cut.SetCutFunction(ctx, pl); err != nil {
			return nil, err
		}
		return runFilter(ctx, cut)
	})
}

// ApplyClip keeps the side of the dataset the plane normal points into and
// registers it as a new derived dataset.
func (e *Engine) ApplyClip(ctx context.Context, h registry.Handle, origin, normal geoengine.Vec3) (registry.Handle, error) {
	return e.derive(ctx, h, "clip", func(ctx context.Context, rt geoengine.Runtime, in geoengine.Dataset) (geoengine.Dataset, error) {
		pl, err := e.plane(ctx, rt, origin, normal)
		if err != nil {
			return nil, err
		}
		clip, err := rt.NewClipper(ctx)
		if err != nil {
			return nil, err
		}
		if err := clip.SetInput(ctx, in); err != nil {
			return nil, err
		}
		if err := clip.SetClipFunction(ctx, pl); err != nil {
			return nil, err
		}
		return runFilter(ctx, clip)
	})
}

// ApplyContour extracts the isosurface at value and registers it as a new
// derived dataset. An isovalue outside the scalar range produces an empty
// dataset, not an error.
func (e *Engine) ApplyContour(ctx context.Context, h registry.Handle, value float64) (registry.Handle, error) {
	return e.derive(ctx, h, "contour", func(ctx context.Context, rt geoengine.Runtime, in geoengine.Dataset) (geoengine.Dataset, error) {
		cont, err := rt.NewContour(ctx)
		if err != nil {
			return nil, err
		}
		if err := cont.SetInput(ctx, in); err != nil {
			return nil, err
		}
		if err := cont.SetValue(ctx, value); err != nil {
			return nil, err
		}
		return runFilter(ctx, cont)
	})
}

// ApplyElevation adds a scalar field spanning the dataset's own z extent,
// low at zmin and high at zmax, and registers the result as a new derived
// dataset.
func (e *Engine) ApplyElevation(ctx context.Context, h registry.Handle) (registry.Handle, error) {
	return e.derive(ctx, h, "elevation", func(ctx context.Context, rt geoengine.Runtime, in geoengine.Dataset) (geoengine.Dataset, error) {
		bounds, err := in.Bounds(ctx)
		if err != nil {
			return nil, err
		}
		elev, err := rt.NewElevation(ctx)
		if err != nil {
			return nil, err
		}
		if err := elev.SetInput(ctx, in); err != nil {
			return nil, err
		}
		if err := elev.SetLowPoint(ctx, geoengine.Vec3{Z: bounds[4]}); err != nil {
			return nil, err
		}
		if err := elev.SetHighPoint(ctx, geoengine.Vec3{Z: bounds[5]}); err != nil {
			return nil, err
		}
		return runFilter(ctx, elev)
	})
}

// CreateDemoDataset constructs the runtime's built-in sample dataset and
// registers it as a source dataset.
func (e *Engine) CreateDemoDataset(ctx context.Context) (registry.Handle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return 0, errors.Closed(errors.PhaseInvoke, "engine")
	}

	rt, err := e.runtime(ctx)
	if err != nil {
		return 0, err
	}
	ds, err := rt.DemoDataset(ctx)
	if err != nil {
		return 0, err
	}
	return e.register(registry.KindSource, ds)
}

// LoadDataset loads a dataset from a source identifier and registers it as
// a source dataset.
func (e *Engine) LoadDataset(ctx context.Context, source string) (registry.Handle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return 0, errors.Closed(errors.PhaseLoad, "engine")
	}

	rt, err := e.runtime(ctx)
	if err != nil {
		return 0, err
	}
	ds, err := rt.LoadDataset(ctx, source)
	if err != nil {
		return 0, err
	}
	h, err := e.register(registry.KindSource, ds)
	if err != nil {
		return 0, err
	}
	e.log.Info("dataset loaded",
		zap.String("source", source),
		zap.Uint32("handle", uint32(h)))
	return h, nil
}

// derive resolves h, runs op against the foreign runtime and registers the
// produced dataset. Resolution happens before any foreign call: a dead
// handle fails the operation without touching the runtime.
func (e *Engine) derive(ctx context.Context, h registry.Handle, name string,
	op func(context.Context, geoengine.Runtime, geoengine.Dataset) (geoengine.Dataset, error)) (registry.Handle, error) {

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return 0, errors.Closed(errors.PhaseResolve, "engine")
	}

	in, err := e.resolve(h)
	if err != nil {
		return 0, err
	}
	rt, err := e.runtime(ctx)
	if err != nil {
		return 0, err
	}

	out, err := op(ctx, rt, in)
	if err != nil {
		return 0, err
	}

	nh, err := e.register(registry.KindDerived, out)
	if err != nil {
		return 0, err
	}
	e.log.Debug("derived dataset registered",
		zap.String("operation", name),
		zap.Uint32("input", uint32(h)),
		zap.Uint32("handle", uint32(nh)))
	return nh, nil
}

// plane constructs and configures an implicit plane.
func (e *Engine) plane(ctx context.Context, rt geoengine.Runtime, origin, normal geoengine.Vec3) (geoengine.Plane, error) {
	pl, err := rt.NewPlane(ctx)
	if err != nil {
		return nil, err
	}
	if err := pl.SetOrigin(ctx, origin); err != nil {
		return nil, err
	}
	if err := pl.SetNormal(ctx, normal); err != nil {
		return nil, err
	}
	return pl, nil
}

// runFilter executes a configured filter and extracts its output.
func runFilter(ctx context.Context, f geoengine.Filter) (geoengine.Dataset, error) {
	if err := f.Execute(ctx); err != nil {
		return nil, err
	}
	return f.Output(ctx)
}

func (e *Engine) register(kind registry.Kind, ds geoengine.Dataset) (registry.Handle, error) {
	h := e.datasets.Insert(kind, ds)
	if h == 0 {
		return 0, errors.Closed(errors.PhaseResolve, "dataset registry")
	}
	return h, nil
}
