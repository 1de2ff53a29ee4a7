package engine

import (
	"context"
	"sync"

	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"

	"github.com/wippyai/aot-runtime/errors"
	"github.com/wippyai/aot-runtime/host"
)

// ImportFunc re-enters the host import machinery on behalf of executing
// guest code.
type ImportFunc func(ctx context.Context, name string) error

// Config holds configuration for engine creation.
type Config struct {
	// MemoryLimitPages sets the maximum memory per instance in pages
	// (64KB each). 0 means the wazero default.
	MemoryLimitPages uint32
}

// Engine compiles bytecode blobs into executable code units and runs
// them inside module namespaces.
type Engine struct {
	runtime  wazero.Runtime
	importer ImportFunc

	hostOnce sync.Once
	hostErr  error

	// current is the module under execution. Guarded by the host's
	// single-threaded import discipline, not a lock; execution re-enters
	// only through the "import" host function on the same goroutine.
	current *execState
}

type execState struct {
	mod  *host.Module
	path string
}

// New creates a wazero-backed engine.
func New(ctx context.Context) (*Engine, error) {
	return NewWithConfig(ctx, nil)
}

// NewWithConfig creates an engine with custom configuration.
func NewWithConfig(ctx context.Context, cfg *Config) (*Engine, error) {
	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg != nil && cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}

	return &Engine{
		runtime: wazero.NewRuntimeWithConfig(ctx, runtimeCfg),
	}, nil
}

// SetImporter wires the import host function to the host runtime's
// import entry point. Must be set before any unit executes code that
// imports.
func (e *Engine) SetImporter(fn ImportFunc) {
	e.importer = fn
}

// Close releases the underlying runtime. All execution must be finished.
func (e *Engine) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// Compile deserializes a bytecode blob into an executable code unit. A
// blob that fails to compile indicates a corrupt or mismatched
// deployment image.
func (e *Engine) Compile(ctx context.Context, blob []byte) (host.CodeUnit, error) {
	compiled, err := e.runtime.CompileModule(ctx, blob)
	if err != nil {
		return nil, errors.BadImage("", err, "deserialize code unit")
	}
	return &codeUnit{engine: e, compiled: compiled}, nil
}

type codeUnit struct {
	engine   *Engine
	compiled wazero.CompiledModule
}

// Execute instantiates the unit inside mod's namespace. The module's
// top-level code runs during instantiation (start section and _start);
// namespace writes arrive through the runtime ABI host module.
func (u *codeUnit) Execute(ctx context.Context, mod *host.Module, sourcePath string) error {
	e := u.engine

	if err := e.ensureHostModule(ctx); err != nil {
		return errors.Wrap(errors.PhaseExec, errors.KindInitFailed, err, "instantiate runtime ABI")
	}

	prev := e.current
	e.current = &execState{mod: mod, path: sourcePath}
	defer func() { e.current = prev }()

	Logger().Debug("executing code unit",
		zap.String("module", mod.Name()),
		zap.String("source", sourcePath))

	instance, err := e.runtime.InstantiateModule(ctx, u.compiled,
		wazero.NewModuleConfig().WithName(mod.Name()))
	if err != nil {
		return errors.InitFailed(errors.PhaseExec, mod.Name(), err)
	}

	// Top-level code has run; the instance itself is no longer needed.
	return instance.Close(ctx)
}
