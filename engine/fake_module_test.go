package engine

import (
	"context"
	"testing"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

// fakeGeom is an in-process geometry module used to exercise the adapter.
// It implements the capability ABI as a wazero host module, so the
// dispatch path is the same one a real guest module takes.
type fakeGeom struct {
	data    map[uint32]*fakeData
	planes  map[uint32]*fakePlane
	filters map[uint32]*fakeFilter
	nextID  uint32

	execStatus uint32 // nonzero forces filter-execute to fail
	calls      map[string]int
}

type fakeData struct {
	points, cells        int64
	bounds               [6]float64
	scalarMin, scalarMax float64
}

type fakePlane struct {
	origin, normal [3]float64
}

type fakeFilter struct {
	kind      string
	input     uint32
	plane     uint32
	value     float64
	low, high [3]float64
	output    uint32
}

func newFakeGeom() *fakeGeom {
	return &fakeGeom{
		data:    make(map[uint32]*fakeData),
		planes:  make(map[uint32]*fakePlane),
		filters: make(map[uint32]*fakeFilter),
		calls:   make(map[string]int),
	}
}

func (g *fakeGeom) id() uint32 {
	g.nextID++
	return g.nextID
}

func (g *fakeGeom) newFilter(kind string) uint32 {
	id := g.id()
	g.filters[id] = &fakeFilter{kind: kind}
	return id
}

// demo dataset: a box spanning [-1,1] on every axis with a scalar field
// covering the z extent.
func (g *fakeGeom) demo() uint32 {
	id := g.id()
	g.data[id] = &fakeData{
		points:    362,
		cells:     720,
		bounds:    [6]float64{-1, 1, -1, 1, -1, 1},
		scalarMin: -1,
		scalarMax: 1,
	}
	return id
}

func (g *fakeGeom) execute(fid uint32) uint32 {
	if g.execStatus != 0 {
		return g.execStatus
	}
	f, ok := g.filters[fid]
	if !ok {
		return 1
	}
	in, ok := g.data[f.input]
	if !ok {
		return 2
	}

	out := &fakeData{
		points:    in.points,
		cells:     in.cells,
		bounds:    in.bounds,
		scalarMin: in.scalarMin,
		scalarMax: in.scalarMax,
	}

	switch f.kind {
	case "cutter":
		p := g.planes[f.plane]
		if p == nil {
			return 3
		}
		if axis := dominantAxis(p.normal); axis >= 0 {
			out.bounds[2*axis] = p.origin[axis]
			out.bounds[2*axis+1] = p.origin[axis]
		}
		out.points = in.points / 2
		out.cells = in.cells / 2
	case "clipper":
		p := g.planes[f.plane]
		if p == nil {
			return 3
		}
		if axis := dominantAxis(p.normal); axis >= 0 {
			out.bounds[2*axis] = p.origin[axis]
		}
		out.points = in.points * 3 / 4
		out.cells = in.cells * 3 / 4
	case "contour":
		if f.value < in.scalarMin || f.value > in.scalarMax {
			out.points = 0
			out.cells = 0
			out.bounds = [6]float64{}
		} else {
			out.points = in.points / 3
			out.cells = in.cells / 3
		}
	case "elevation":
		out.scalarMin = f.low[2]
		out.scalarMax = f.high[2]
	}

	id := g.id()
	g.data[id] = out
	f.output = id
	return 0
}

func dominantAxis(normal [3]float64) int {
	for axis := 0; axis < 3; axis++ {
		if normal[axis] != 0 && normal[(axis+1)%3] == 0 && normal[(axis+2)%3] == 0 {
			return axis
		}
	}
	return -1
}

// instantiate builds the fake as a wazero host module and returns the
// instantiated module. Close the returned runtime via cleanup.
func (g *fakeGeom) instantiate(t *testing.T) api.Module {
	t.Helper()
	ctx := context.Background()
	// The interpreter engine supports calling host functions directly via
	// ExportedFunction; the default compiler engine does not.
	r := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfigInterpreter())
	t.Cleanup(func() { r.Close(ctx) })

	count := func(name string) { g.calls[name]++ }

	b := r.NewHostModuleBuilder("geometry")

	b.NewFunctionBuilder().WithFunc(func() uint32 {
		count(capPlaneNew)
		id := g.id()
		g.planes[id] = &fakePlane{}
		return id
	}).Export(capPlaneNew)

	b.NewFunctionBuilder().WithFunc(func(id uint32, x, y, z float64) {
		count(capPlaneOrigin)
		if p := g.planes[id]; p != nil {
			p.origin = [3]float64{x, y, z}
		}
	}).Export(capPlaneOrigin)

	b.NewFunctionBuilder().WithFunc(func(id uint32, x, y, z float64) {
		count(capPlaneNormal)
		if p := g.planes[id]; p != nil {
			p.normal = [3]float64{x, y, z}
		}
	}).Export(capPlaneNormal)

	b.NewFunctionBuilder().WithFunc(func() uint32 {
		count(capCutterNew)
		return g.newFilter("cutter")
	}).Export(capCutterNew)

	b.NewFunctionBuilder().WithFunc(func(c, p uint32) {
		count(capCutterFunc)
		if f := g.filters[c]; f != nil {
			f.plane = p
		}
	}).Export(capCutterFunc)

	b.NewFunctionBuilder().WithFunc(func() uint32 {
		count(capClipperNew)
		return g.newFilter("clipper")
	}).Export(capClipperNew)

	b.NewFunctionBuilder().WithFunc(func(c, p uint32) {
		count(capClipperFunc)
		if f := g.filters[c]; f != nil {
			f.plane = p
		}
	}).Export(capClipperFunc)

	b.NewFunctionBuilder().WithFunc(func() uint32 {
		count(capContourNew)
		return g.newFilter("contour")
	}).Export(capContourNew)

	b.NewFunctionBuilder().WithFunc(func(c uint32, v float64) {
		count(capContourValue)
		if f := g.filters[c]; f != nil {
			f.value = v
		}
	}).Export(capContourValue)

	b.NewFunctionBuilder().WithFunc(func() uint32 {
		count(capElevationNew)
		return g.newFilter("elevation")
	}).Export(capElevationNew)

	b.NewFunctionBuilder().WithFunc(func(id uint32, x, y, z float64) {
		count(capElevationLow)
		if f := g.filters[id]; f != nil {
			f.low = [3]float64{x, y, z}
		}
	}).Export(capElevationLow)

	b.NewFunctionBuilder().WithFunc(func(id uint32, x, y, z float64) {
		count(capElevationHigh)
		if f := g.filters[id]; f != nil {
			f.high = [3]float64{x, y, z}
		}
	}).Export(capElevationHigh)

	b.NewFunctionBuilder().WithFunc(func(f, d uint32) {
		count(capFilterInput)
		if flt := g.filters[f]; flt != nil {
			flt.input = d
		}
	}).Export(capFilterInput)

	b.NewFunctionBuilder().WithFunc(func(f uint32) uint32 {
		count(capFilterExecute)
		return g.execute(f)
	}).Export(capFilterExecute)

	b.NewFunctionBuilder().WithFunc(func(f uint32) uint32 {
		count(capFilterOutput)
		if flt := g.filters[f]; flt != nil {
			return flt.output
		}
		return 0
	}).Export(capFilterOutput)

	b.NewFunctionBuilder().WithFunc(func(d uint32) int64 {
		count(capDatasetPoints)
		if ds := g.data[d]; ds != nil {
			return ds.points
		}
		return 0
	}).Export(capDatasetPoints)

	b.NewFunctionBuilder().WithFunc(func(d uint32) int64 {
		count(capDatasetCells)
		if ds := g.data[d]; ds != nil {
			return ds.cells
		}
		return 0
	}).Export(capDatasetCells)

	b.NewFunctionBuilder().WithFunc(func(d, axis uint32) float64 {
		count(capDatasetBound)
		if ds := g.data[d]; ds != nil && axis < 6 {
			return ds.bounds[axis]
		}
		return 0
	}).Export(capDatasetBound)

	b.NewFunctionBuilder().WithFunc(func() uint32 {
		count(capDatasetDemo)
		return g.demo()
	}).Export(capDatasetDemo)

	// Compile and instantiate in two steps: HostModuleBuilder.Instantiate
	// wraps the instance so ExportedFunction panics, while the module
	// returned by Runtime.InstantiateModule allows direct dispatch.
	compiled, err := b.Compile(ctx)
	if err != nil {
		t.Fatalf("compile fake geometry module: %v", err)
	}
	mod, err := r.InstantiateModule(ctx, compiled, wazero.NewModuleConfig())
	if err != nil {
		t.Fatalf("instantiate fake geometry module: %v", err)
	}
	return mod
}
