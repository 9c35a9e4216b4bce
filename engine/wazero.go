package engine

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"

	"github.com/sciagent/geo-engine/errors"
)

// Config holds configuration for foreign module acquisition.
type Config struct {
	// Module is the geometry module binary.
	Module []byte

	// MemoryLimitPages sets the maximum guest memory in pages (64KB each).
	// 0 means the wazero default.
	MemoryLimitPages uint32

	// Logger for runtime diagnostics. Defaults to the package no-op
	// logger.
	Logger *zap.Logger
}

// Acquire compiles and instantiates the geometry module and returns a
// Runtime owning the whole wazero stack. Failure to acquire the module is
// fatal to the caller's construction path: no Runtime is produced and no
// degraded mode exists.
//
// WASI preview1 is instantiated before the module so geometry modules
// built against wasi-libc resolve their imports.
func Acquire(ctx context.Context, cfg Config) (*Runtime, error) {
	if len(cfg.Module) == 0 {
		return nil, errors.InvalidInput(errors.PhaseAcquire, "no geometry module bytes provided")
	}

	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}

	wrt := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)

	if _, err := wasi_snapshot_preview1.Instantiate(ctx, wrt); err != nil {
		wrt.Close(ctx)
		return nil, errors.Acquire("instantiate WASI", err)
	}

	compiled, err := wrt.CompileModule(ctx, cfg.Module)
	if err != nil {
		wrt.Close(ctx)
		return nil, errors.Acquire("compile geometry module", err)
	}

	mod, err := wrt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName("geometry"))
	if err != nil {
		wrt.Close(ctx)
		return nil, errors.Acquire("instantiate geometry module", err)
	}

	rt := NewRuntime(mod, WithLogger(cfg.Logger))
	rt.closer = wrt.Close
	rt.log.Info("geometry module acquired",
		zap.Int("module_bytes", len(cfg.Module)))
	return rt, nil
}
