package engine

// Capability names exported by the foreign geometry module. The engine
// depends on these names staying stable across module versions; a rename
// surfaces as an unknown-capability error at the call site.
const (
	capPlaneNew      = "plane-new"
	capPlaneOrigin   = "plane-set-origin"
	capPlaneNormal   = "plane-set-normal"
	capCutterNew     = "cutter-new"
	capCutterFunc    = "cutter-set-cut-function"
	capClipperNew    = "clipper-new"
	capClipperFunc   = "clipper-set-clip-function"
	capContourNew    = "contour-new"
	capContourValue  = "contour-set-value"
	capElevationNew  = "elevation-new"
	capElevationLow  = "elevation-set-low-point"
	capElevationHigh = "elevation-set-high-point"
	capFilterInput   = "filter-set-input"
	capFilterExecute = "filter-execute"
	capFilterOutput  = "filter-get-output"
	capDatasetPoints = "dataset-points"
	capDatasetCells  = "dataset-cells"
	capDatasetBound  = "dataset-bound"
	capDatasetDemo   = "dataset-demo"
	capDatasetLoad   = "dataset-load"
	capAlloc         = "alloc"
)
