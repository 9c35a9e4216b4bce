package engine

import (
	"context"
	"math"

	geoengine "github.com/sciagent/geo-engine"
	"github.com/sciagent/geo-engine/errors"
)

// object is a reference to a guest-side foreign object. The guest owns
// the object's memory; the id is only a name for it.
type object struct {
	inv *invoker
	id  uint32
}

// dataset implements geoengine.Dataset over the capability ABI.
type dataset struct {
	object
}

func (d *dataset) Points(ctx context.Context) (int64, error) {
	n, err := d.inv.callOne(ctx, capDatasetPoints, uint64(d.id))
	if err != nil {
		return 0, err
	}
	return int64(n), nil
}

func (d *dataset) Cells(ctx context.Context) (int64, error) {
	n, err := d.inv.callOne(ctx, capDatasetCells, uint64(d.id))
	if err != nil {
		return 0, err
	}
	return int64(n), nil
}

func (d *dataset) Bounds(ctx context.Context) (geoengine.Bounds, error) {
	var b geoengine.Bounds
	for axis := 0; axis < 6; axis++ {
		raw, err := d.inv.callOne(ctx, capDatasetBound, uint64(d.id), uint64(axis))
		if err != nil {
			return geoengine.Bounds{}, err
		}
		b[axis] = math.Float64frombits(raw)
	}
	return b, nil
}

// plane implements geoengine.Plane.
type plane struct {
	object
}

func (p *plane) SetOrigin(ctx context.Context, origin geoengine.Vec3) error {
	return p.inv.callVoid(ctx, capPlaneOrigin, uint64(p.id),
		math.Float64bits(origin.X), math.Float64bits(origin.Y), math.Float64bits(origin.Z))
}

func (p *plane) SetNormal(ctx context.Context, normal geoengine.Vec3) error {
	return p.inv.callVoid(ctx, capPlaneNormal, uint64(p.id),
		math.Float64bits(normal.X), math.Float64bits(normal.Y), math.Float64bits(normal.Z))
}

// filter carries the operations shared by all filter primitives.
type filter struct {
	object
}

func (f *filter) SetInput(ctx context.Context, input geoengine.Dataset) error {
	d, ok := input.(*dataset)
	if !ok || d.inv != f.inv {
		return errors.InvalidInput(errors.PhaseInvoke,
			"input dataset does not belong to this runtime")
	}
	return f.inv.callVoid(ctx, capFilterInput, uint64(f.id), uint64(d.id))
}

func (f *filter) Execute(ctx context.Context) error {
	status, err := f.inv.callOne(ctx, capFilterExecute, uint64(f.id))
	if err != nil {
		return err
	}
	if status != 0 {
		return errors.ExecutionStatus(capFilterExecute, uint32(status))
	}
	return nil
}

func (f *filter) Output(ctx context.Context) (geoengine.Dataset, error) {
	id, err := f.inv.callOne(ctx, capFilterOutput, uint64(f.id))
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, errors.NoOutput(capFilterOutput)
	}
	return &dataset{object{inv: f.inv, id: uint32(id)}}, nil
}

type cutter struct {
	filter
}

func (c *cutter) SetCutFunction(ctx context.Context, p geoengine.Plane) error {
	pl, ok := p.(*plane)
	if !ok || pl.inv != c.inv {
		return errors.InvalidInput(errors.PhaseInvoke,
			"plane does not belong to this runtime")
	}
	return c.inv.callVoid(ctx, capCutterFunc, uint64(c.id), uint64(pl.id))
}

type clipper struct {
	filter
}

func (c *clipper) SetClipFunction(ctx context.Context, p geoengine.Plane) error {
	pl, ok := p.(*plane)
	if !ok || pl.inv != c.inv {
		return errors.InvalidInput(errors.PhaseInvoke,
			"plane does not belong to this runtime")
	}
	return c.inv.callVoid(ctx, capClipperFunc, uint64(c.id), uint64(pl.id))
}

type contour struct {
	filter
}

func (c *contour) SetValue(ctx context.Context, value float64) error {
	return c.inv.callVoid(ctx, capContourValue, uint64(c.id), math.Float64bits(value))
}

type elevation struct {
	filter
}

func (e *elevation) SetLowPoint(ctx context.Context, p geoengine.Vec3) error {
	return e.inv.callVoid(ctx, capElevationLow, uint64(e.id),
		math.Float64bits(p.X), math.Float64bits(p.Y), math.Float64bits(p.Z))
}

func (e *elevation) SetHighPoint(ctx context.Context, p geoengine.Vec3) error {
	return e.inv.callVoid(ctx, capElevationHigh, uint64(e.id),
		math.Float64bits(p.X), math.Float64bits(p.Y), math.Float64bits(p.Z))
}
