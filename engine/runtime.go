package engine

import (
	"context"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	geoengine "github.com/sciagent/geo-engine"
	"github.com/sciagent/geo-engine/errors"
)

// Runtime implements geoengine.Runtime over an instantiated geometry
// module. It is NOT safe for concurrent use.
type Runtime struct {
	inv    *invoker
	mod    api.Module
	closer func(context.Context) error
	log    *zap.Logger
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the runtime's logger. Defaults to the package no-op
// logger.
func WithLogger(log *zap.Logger) Option {
	return func(r *Runtime) {
		if log != nil {
			r.log = log
		}
	}
}

// NewRuntime wraps an already-instantiated module. Close closes only the
// module instance; the caller keeps ownership of the surrounding wazero
// runtime. Use Acquire to own the full stack.
func NewRuntime(mod api.Module, opts ...Option) *Runtime {
	r := &Runtime{
		mod: mod,
		log: Logger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.inv = newInvoker(mod, r.log)
	return r
}

// construct invokes a foreign constructor capability.
func (r *Runtime) construct(ctx context.Context, capability string) (object, error) {
	id, err := r.inv.callOne(ctx, capability)
	if err != nil {
		return object{}, err
	}
	if id == 0 {
		return object{}, errors.Instantiation(capability)
	}
	return object{inv: r.inv, id: uint32(id)}, nil
}

func (r *Runtime) NewPlane(ctx context.Context) (geoengine.Plane, error) {
	obj, err := r.construct(ctx, capPlaneNew)
	if err != nil {
		return nil, err
	}
	return &plane{obj}, nil
}

func (r *Runtime) NewCutter(ctx context.Context) (geoengine.Cutter, error) {
	obj, err := r.construct(ctx, capCutterNew)
	if err != nil {
		return nil, err
	}
	return &cutter{filter{obj}}, nil
}

func (r *Runtime) NewClipper(ctx context.Context) (geoengine.Clipper, error) {
	obj, err := r.construct(ctx, capClipperNew)
	if err != nil {
		return nil, err
	}
	return &clipper{filter{obj}}, nil
}

func (r *Runtime) NewContour(ctx context.Context) (geoengine.Contour, error) {
	obj, err := r.construct(ctx, capContourNew)
	if err != nil {
		return nil, err
	}
	return &contour{filter{obj}}, nil
}

func (r *Runtime) NewElevation(ctx context.Context) (geoengine.Elevation, error) {
	obj, err := r.construct(ctx, capElevationNew)
	if err != nil {
		return nil, err
	}
	return &elevation{filter{obj}}, nil
}

func (r *Runtime) DemoDataset(ctx context.Context) (geoengine.Dataset, error) {
	obj, err := r.construct(ctx, capDatasetDemo)
	if err != nil {
		return nil, err
	}
	return &dataset{obj}, nil
}

// LoadDataset writes the source identifier into guest memory and asks the
// module's loader capability for a dataset. Requires the module to export
// linear memory and an alloc function.
func (r *Runtime) LoadDataset(ctx context.Context, source string) (geoengine.Dataset, error) {
	if source == "" {
		return nil, errors.InvalidInput(errors.PhaseLoad, "empty dataset source")
	}

	mem := r.mod.Memory()
	if mem == nil {
		return nil, errors.Unsupported(errors.PhaseLoad, "geometry module exports no memory")
	}
	if r.mod.ExportedFunction(capAlloc) == nil {
		return nil, errors.Unsupported(errors.PhaseLoad, "geometry module exports no allocator")
	}

	data := []byte(source)
	ptr, err := r.inv.callOne(ctx, capAlloc, uint64(len(data)))
	if err != nil {
		return nil, err
	}
	if !mem.Write(uint32(ptr), data) {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidData, nil,
			"source string does not fit in guest memory")
	}

	id, err := r.inv.callOne(ctx, capDatasetLoad, ptr, uint64(len(data)))
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, errors.Load(source, nil)
	}

	r.log.Debug("dataset loaded", zap.String("source", source), zap.Uint32("id", uint32(id)))
	return &dataset{object{inv: r.inv, id: uint32(id)}}, nil
}

// Close releases the module instance, and the owning wazero runtime when
// this Runtime was produced by Acquire.
func (r *Runtime) Close(ctx context.Context) error {
	if r.closer != nil {
		return r.closer(ctx)
	}
	if r.mod != nil {
		return r.mod.Close(ctx)
	}
	return nil
}

var _ geoengine.Runtime = (*Runtime)(nil)
