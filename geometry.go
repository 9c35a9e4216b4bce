package geoengine

import (
	"context"
	"strconv"
	"strings"
)

// Vec3 is a point or direction in dataset space.
type Vec3 struct {
	X, Y, Z float64
}

// Bounds holds axis-aligned dataset extents in the order
// xmin, xmax, ymin, ymax, zmin, zmax.
type Bounds [6]float64

// String renders bounds as "[xmin, xmax] x [ymin, ymax] x [zmin, zmax]"
// using Go's shortest round-trip float formatting.
func (b Bounds) String() string {
	var sb strings.Builder
	for axis := 0; axis < 3; axis++ {
		if axis > 0 {
			sb.WriteString(" x ")
		}
		sb.WriteByte('[')
		sb.WriteString(strconv.FormatFloat(b[2*axis], 'g', -1, 64))
		sb.WriteString(", ")
		sb.WriteString(strconv.FormatFloat(b[2*axis+1], 'g', -1, 64))
		sb.WriteByte(']')
	}
	return sb.String()
}

// Dataset is a live reference to a foreign-owned geometric dataset.
// The foreign runtime owns the underlying memory; a Dataset is a view,
// never an owner.
type Dataset interface {
	// Points returns the number of points in the dataset.
	Points(ctx context.Context) (int64, error)

	// Cells returns the number of cells in the dataset.
	Cells(ctx context.Context) (int64, error)

	// Bounds returns the axis-aligned extents of the dataset.
	Bounds(ctx context.Context) (Bounds, error)
}

// Plane is an implicit plane primitive used as a cut or clip function.
type Plane interface {
	SetOrigin(ctx context.Context, origin Vec3) error
	SetNormal(ctx context.Context, normal Vec3) error
}

// Filter is a transient foreign transformation object. Filters follow a
// linear configure -> execute -> output sequence and are discarded after
// their output is extracted.
type Filter interface {
	// SetInput wires the dataset the filter operates on. The dataset must
	// originate from the same Runtime that produced the filter.
	SetInput(ctx context.Context, input Dataset) error

	// Execute runs the filter once. Execution failures propagate as-is;
	// there is no retry.
	Execute(ctx context.Context) error

	// Output returns the dataset produced by the last Execute.
	Output(ctx context.Context) (Dataset, error)
}

// Cutter slices a dataset with an implicit plane, producing the
// cross-section geometry.
type Cutter interface {
	Filter
	SetCutFunction(ctx context.Context, plane Plane) error
}

// Clipper keeps the portion of a dataset on one side of an implicit plane.
type Clipper interface {
	Filter
	SetClipFunction(ctx context.Context, plane Plane) error
}

// Contour extracts an isosurface at a single scalar threshold.
type Contour interface {
	Filter
	SetValue(ctx context.Context, value float64) error
}

// Elevation adds a scalar field interpolated between a low and high point.
type Elevation interface {
	Filter
	SetLowPoint(ctx context.Context, p Vec3) error
	SetHighPoint(ctx context.Context, p Vec3) error
}

// Runtime is the narrow adapter over the foreign geometry-processing
// module. One Runtime is acquired per engine instance; all foreign object
// construction routes through it so the module is resolved once, not per
// call.
//
// Runtime implementations and the objects they produce are NOT safe for
// concurrent use. Callers must serialize access externally.
type Runtime interface {
	NewPlane(ctx context.Context) (Plane, error)
	NewCutter(ctx context.Context) (Cutter, error)
	NewClipper(ctx context.Context) (Clipper, error)
	NewContour(ctx context.Context) (Contour, error)
	NewElevation(ctx context.Context) (Elevation, error)

	// DemoDataset constructs the runtime's built-in sample dataset.
	DemoDataset(ctx context.Context) (Dataset, error)

	// LoadDataset asks the runtime to load a dataset from a source
	// identifier (typically a file path the runtime can see).
	LoadDataset(ctx context.Context, source string) (Dataset, error)

	// Close releases the runtime handle. Datasets obtained from the
	// runtime are invalid afterwards.
	Close(ctx context.Context) error
}
