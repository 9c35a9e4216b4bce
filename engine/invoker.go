package engine

import (
	"context"
	"sync"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/sciagent/geo-engine/errors"
)

// invoker dispatches named capabilities against the module instance.
// Resolved functions are cached; a missing export fails with the same
// unknown-capability error on every call.
type invoker struct {
	mod   api.Module
	funcs map[string]api.Function
	log   *zap.Logger
	mu    sync.RWMutex
}

func newInvoker(mod api.Module, log *zap.Logger) *invoker {
	return &invoker{
		mod:   mod,
		funcs: make(map[string]api.Function),
		log:   log,
	}
}

// call invokes a capability with raw stack arguments. Guest traps wrap as
// execution errors; they are not retried.
func (i *invoker) call(ctx context.Context, name string, args ...uint64) ([]uint64, error) {
	i.mu.RLock()
	fn, ok := i.funcs[name]
	i.mu.RUnlock()

	if !ok {
		fn = i.mod.ExportedFunction(name)
		if fn == nil {
			return nil, errors.UnknownCapability(name)
		}
		i.mu.Lock()
		i.funcs[name] = fn
		i.mu.Unlock()
	}

	results, err := fn.Call(ctx, args...)
	if err != nil {
		i.log.Debug("capability invocation failed",
			zap.String("capability", name),
			zap.Error(err))
		return nil, errors.Execution(name, err)
	}
	return results, nil
}

// callOne invokes a capability that must produce exactly one result.
func (i *invoker) callOne(ctx context.Context, name string, args ...uint64) (uint64, error) {
	results, err := i.call(ctx, name, args...)
	if err != nil {
		return 0, err
	}
	if len(results) != 1 {
		return 0, errors.Wrap(errors.PhaseInvoke, errors.KindInvalidData, nil,
			"capability "+name+" returned an unexpected result count")
	}
	return results[0], nil
}

// callVoid invokes a capability that produces no result.
func (i *invoker) callVoid(ctx context.Context, name string, args ...uint64) error {
	_, err := i.call(ctx, name, args...)
	return err
}
