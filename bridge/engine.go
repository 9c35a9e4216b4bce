package bridge

import (
	"context"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	geoengine "github.com/sciagent/geo-engine"
	"github.com/sciagent/geo-engine/engine"
	"github.com/sciagent/geo-engine/errors"
	"github.com/sciagent/geo-engine/registry"
)

// Engine is the caller-facing geometry engine. It owns exactly one foreign
// runtime handle and a registry of dataset handles, and exposes every
// geometry operation as a single call.
//
// Engine serializes all foreign interaction behind one mutex; the foreign
// runtime and the objects it hands out are not concurrency safe.
type Engine struct {
	cfg Config
	log *zap.Logger

	datasets *registry.Table

	mu          sync.Mutex
	rt          geoengine.Runtime
	acquireOnce sync.Once
	acquireErr  error

	closed bool
}

// New constructs an engine from cfg. With eager acquisition (the default)
// the foreign module is instantiated here and any failure is fatal: no
// engine is returned and no degraded mode exists. With lazy acquisition
// instantiation is deferred to the first operation that needs the runtime.
func New(ctx context.Context, cfg Config) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	e := &Engine{
		cfg:      cfg,
		log:      log,
		datasets: registry.NewTable(),
	}
	e.datasets.Subscribe(&logObserver{log: log})

	if cfg.Runtime != nil {
		e.rt = cfg.Runtime
		e.acquireOnce.Do(func() {})
	} else if cfg.Acquisition != AcquireLazy {
		if _, err := e.runtime(ctx); err != nil {
			e.datasets.Close()
			return nil, err
		}
	}

	return e, nil
}

// runtime returns the foreign runtime, acquiring it on first use under lazy
// acquisition. Acquisition failure is sticky. Callers must hold e.mu or be
// on the construction path.
func (e *Engine) runtime(ctx context.Context) (geoengine.Runtime, error) {
	e.acquireOnce.Do(func() {
		data := e.cfg.Module
		if len(data) == 0 {
			if e.cfg.ModulePath == "" {
				e.acquireErr = errors.NotInitialized(errors.PhaseAcquire, "geometry module")
				return
			}
			var err error
			data, err = os.ReadFile(e.cfg.ModulePath)
			if err != nil {
				e.acquireErr = errors.Acquire("read geometry module", err)
				return
			}
		}

		rt, err := engine.Acquire(ctx, engine.Config{
			Module:           data,
			MemoryLimitPages: e.cfg.MemoryLimitPages,
			Logger:           e.log,
		})
		if err != nil {
			e.acquireErr = err
			return
		}
		e.rt = rt
	})

	if e.acquireErr != nil {
		return nil, e.acquireErr
	}
	return e.rt, nil
}

// Greet returns a greeting for name. It exists to verify the call path end
// to end without touching the foreign runtime.
func (e *Engine) Greet(name string) string {
	return fmt.Sprintf("Hello from the Scientific Analysis Engine, %s!", name)
}

// HasForeignSupport reports whether this engine has, or can acquire, a
// foreign geometry runtime. It never triggers acquisition.
func (e *Engine) HasForeignSupport() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rt != nil || len(e.cfg.Module) > 0 || e.cfg.ModulePath != ""
}

// DatasetCount returns the number of live dataset handles.
func (e *Engine) DatasetCount() int {
	return e.datasets.Len()
}

// Datasets returns the live dataset handles with their kinds, in handle
// order.
func (e *Engine) Datasets() map[registry.Handle]registry.Kind {
	out := make(map[registry.Handle]registry.Kind)
	e.datasets.Each(func(h registry.Handle, k registry.Kind, _ geoengine.Dataset) bool {
		out[h] = k
		return true
	})
	return out
}

// ReleaseDataset drops a dataset handle. Returns false if the handle was
// not live. The foreign object itself stays owned by the runtime.
func (e *Engine) ReleaseDataset(h registry.Handle) bool {
	_, ok := e.datasets.Remove(h)
	return ok
}

// resolve maps a handle to its live dataset. Handle 0 and unknown handles
// fail here; the foreign runtime never sees them.
func (e *Engine) resolve(h registry.Handle) (geoengine.Dataset, error) {
	if h == 0 {
		return nil, errors.NullReference()
	}
	ds, ok := e.datasets.Get(h)
	if !ok {
		return nil, errors.StaleReference(uint32(h))
	}
	return ds, nil
}

// Close releases the dataset registry and the foreign runtime. Idempotent.
func (e *Engine) Close(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true

	e.datasets.Close()
	if e.rt != nil {
		if err := e.rt.Close(ctx); err != nil {
			return err
		}
	}
	e.log.Info("engine closed")
	return nil
}

// logObserver logs dataset lifecycle events at debug level.
type logObserver struct {
	log *zap.Logger
}

func (o *logObserver) OnDatasetEvent(ev registry.Event) {
	switch ev.Type {
	case registry.EventRegistered:
		o.log.Debug("dataset registered",
			zap.Uint32("handle", uint32(ev.Handle)),
			zap.Uint32("kind", uint32(ev.Kind)))
	case registry.EventReleased:
		o.log.Debug("dataset released",
			zap.Uint32("handle", uint32(ev.Handle)))
	}
}
