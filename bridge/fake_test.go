package bridge

import (
	"context"
	"strings"

	geoengine "github.com/sciagent/geo-engine"
	"github.com/sciagent/geo-engine/errors"
)

// fakeRuntime is a pure-Go geometry runtime used to exercise the engine's
// sequencing and handle discipline. It counts every call so tests can prove
// which operations reached the runtime.
type fakeRuntime struct {
	calls  map[string]int
	closed bool
}

func newFakeRuntime() *fakeRuntime {
	return &fakeRuntime{calls: make(map[string]int)}
}

func (r *fakeRuntime) count(name string) { r.calls[name]++ }

func (r *fakeRuntime) total() int {
	n := 0
	for _, c := range r.calls {
		n += c
	}
	return n
}

type fakeDataset struct {
	rt                   *fakeRuntime
	points, cells        int64
	bounds               geoengine.Bounds
	scalarMin, scalarMax float64
}

func (d *fakeDataset) Points(context.Context) (int64, error) {
	d.rt.count("points")
	return d.points, nil
}

func (d *fakeDataset) Cells(context.Context) (int64, error) {
	d.rt.count("cells")
	return d.cells, nil
}

func (d *fakeDataset) Bounds(context.Context) (geoengine.Bounds, error) {
	d.rt.count("bounds")
	return d.bounds, nil
}

type fakePlane struct {
	origin, normal geoengine.Vec3
}

func (p *fakePlane) SetOrigin(_ context.Context, origin geoengine.Vec3) error {
	p.origin = origin
	return nil
}

func (p *fakePlane) SetNormal(_ context.Context, normal geoengine.Vec3) error {
	p.normal = normal
	return nil
}

type fakeFilter struct {
	rt     *fakeRuntime
	kind   string
	input  *fakeDataset
	plane  *fakePlane
	value  float64
	low    geoengine.Vec3
	high   geoengine.Vec3
	output *fakeDataset
}

func (f *fakeFilter) SetInput(_ context.Context, in geoengine.Dataset) error {
	ds, ok := in.(*fakeDataset)
	if !ok || ds.rt != f.rt {
		return errors.InvalidInput(errors.PhaseInvoke, "dataset from another runtime")
	}
	f.input = ds
	return nil
}

func (f *fakeFilter) Execute(context.Context) error {
	f.rt.count("execute")
	if f.input == nil {
		return errors.ExecutionStatus("filter-execute", 2)
	}

	out := &fakeDataset{
		rt:        f.rt,
		points:    f.input.points,
		cells:     f.input.cells,
		bounds:    f.input.bounds,
		scalarMin: f.input.scalarMin,
		scalarMax: f.input.scalarMax,
	}

	switch f.kind {
	case "cutter":
		if axis := dominantAxis(f.plane.normal); axis >= 0 {
			c := component(f.plane.origin, axis)
			out.bounds[2*axis] = c
			out.bounds[2*axis+1] = c
		}
		out.points = f.input.points / 2
		out.cells = f.input.cells / 2
	case "clipper":
		if axis := dominantAxis(f.plane.normal); axis >= 0 {
			out.bounds[2*axis] = component(f.plane.origin, axis)
		}
		out.points = f.input.points * 3 / 4
		out.cells = f.input.cells * 3 / 4
	case "contour":
		if f.value < f.input.scalarMin || f.value > f.input.scalarMax {
			out.points = 0
			out.cells = 0
			out.bounds = geoengine.Bounds{}
		} else {
			out.points = f.input.points / 3
			out.cells = f.input.cells / 3
		}
	case "elevation":
		out.scalarMin = f.low.Z
		out.scalarMax = f.high.Z
	}

	f.output = out
	return nil
}

func (f *fakeFilter) Output(context.Context) (geoengine.Dataset, error) {
	if f.output == nil {
		return nil, errors.NoOutput("filter-get-output")
	}
	return f.output, nil
}

func (f *fakeFilter) SetCutFunction(_ context.Context, pl geoengine.Plane) error {
	f.plane = pl.(*fakePlane)
	return nil
}

func (f *fakeFilter) SetClipFunction(_ context.Context, pl geoengine.Plane) error {
	f.plane = pl.(*fakePlane)
	return nil
}

func (f *fakeFilter) SetValue(_ context.Context, v float64) error {
	f.value = v
	return nil
}

func (f *fakeFilter) SetLowPoint(_ context.Context, p geoengine.Vec3) error {
	f.low = p
	return nil
}

func (f *fakeFilter) SetHighPoint(_ context.Context, p geoengine.Vec3) error {
	f.high = p
	return nil
}

func (r *fakeRuntime) NewPlane(context.Context) (geoengine.Plane, error) {
	r.count("plane-new")
	return &fakePlane{}, nil
}

func (r *fakeRuntime) NewCutter(context.Context) (geoengine.Cutter, error) {
	r.count("cutter-new")
	return &fakeFilter{rt: r, kind: "cutter"}, nil
}

func (r *fakeRuntime) NewClipper(context.Context) (geoengine.Clipper, error) {
	r.count("clipper-new")
	return &fakeFilter{rt: r, kind: "clipper"}, nil
}

func (r *fakeRuntime) NewContour(context.Context) (geoengine.Contour, error) {
	r.count("contour-new")
	return &fakeFilter{rt: r, kind: "contour"}, nil
}

func (r *fakeRuntime) NewElevation(context.Context) (geoengine.Elevation, error) {
	r.count("elevation-new")
	return &fakeFilter{rt: r, kind: "elevation"}, nil
}

// DemoDataset mirrors the built-in sample: a box spanning [-1,1] on every
// axis with a scalar field covering the z extent.
func (r *fakeRuntime) DemoDataset(context.Context) (geoengine.Dataset, error) {
	r.count("dataset-demo")
	return &fakeDataset{
		rt:        r,
		points:    362,
		cells:     720,
		bounds:    geoengine.Bounds{-1, 1, -1, 1, -1, 1},
		scalarMin: -1,
		scalarMax: 1,
	}, nil
}

func (r *fakeRuntime) LoadDataset(_ context.Context, source string) (geoengine.Dataset, error) {
	r.count("dataset-load")
	if !strings.HasSuffix(source, ".vtu") {
		return nil, errors.Load(source, nil)
	}
	return &fakeDataset{
		rt:        r,
		points:    100,
		cells:     50,
		bounds:    geoengine.Bounds{0, 2, 0, 2, 0, 2},
		scalarMin: 0,
		scalarMax: 2,
	}, nil
}

func (r *fakeRuntime) Close(context.Context) error {
	r.closed = true
	return nil
}

func dominantAxis(n geoengine.Vec3) int {
	switch {
	case n.X != 0 && n.Y == 0 && n.Z == 0:
		return 0
	case n.Y != 0 && n.X == 0 && n.Z == 0:
		return 1
	case n.Z != 0 && n.X == 0 && n.Y == 0:
		return 2
	}
	return -1
}

func component(v geoengine.Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

var _ geoengine.Runtime = (*fakeRuntime)(nil)
