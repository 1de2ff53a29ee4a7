package loader

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/aot-runtime/descriptor"
	"github.com/wippyai/aot-runtime/errors"
	"github.com/wippyai/aot-runtime/host"
	"github.com/wippyai/aot-runtime/shlib"
)

// Engine compiles embedded bytecode blobs into executable code units.
type Engine interface {
	Compile(ctx context.Context, blob []byte) (host.CodeUnit, error)
}

// FatalHandler receives errors that indicate a corrupt deployment
// image. The default handler terminates the process.
type FatalHandler func(err error)

// Config holds loader configuration. The zero value is usable; defaults
// match the translator's standard deployment layout.
type Config struct {
	// InstallDir is the directory holding native module artifacts.
	InstallDir string

	// PathBase is the base directory reported in synthetic source paths
	// of bytecode modules.
	PathBase string

	// SourceSuffix is the synthetic source filename extension.
	// Defaults to ".py".
	SourceSuffix string

	// PackageInitName is the synthetic source filename of a package's
	// own module. Defaults to "__init__" plus SourceSuffix.
	PackageInitName string

	// Convention derives native entry symbol names. Defaults to
	// shlib.ABI3.
	Convention shlib.SymbolConvention

	// Verbose enables import claim tracing.
	Verbose bool
}

func (c *Config) applyDefaults() {
	if c.SourceSuffix == "" {
		c.SourceSuffix = ".py"
	}
	if c.PackageInitName == "" {
		c.PackageInitName = "__init__" + c.SourceSuffix
	}
	if c.Convention.Prefix == "" {
		c.Convention = shlib.ABI3
	}
}

// Context binds a descriptor table to one host and the strategies that
// load from it.
type Context struct {
	table   *descriptor.Table
	host    *host.Host
	engine  Engine
	backend shlib.Backend
	cfg     Config
	fatal   FatalHandler
	finder  *tableFinder
}

// Option configures a Context.
type Option func(*Context)

// WithBackend selects the native artifact backend. The default is the
// Go plugin backend.
func WithBackend(b shlib.Backend) Option {
	return func(c *Context) {
		c.backend = b
	}
}

// WithFatalHandler replaces the handler for unrecoverable image
// failures. Tests use this to observe failures without exiting.
func WithFatalHandler(fn FatalHandler) Option {
	return func(c *Context) {
		c.fatal = fn
	}
}

// NewContext creates a loader context over a descriptor table.
func NewContext(table *descriptor.Table, h *host.Host, eng Engine, cfg Config, opts ...Option) *Context {
	cfg.applyDefaults()

	c := &Context{
		table:   table,
		host:    h,
		engine:  eng,
		backend: shlib.PluginBackend{},
		cfg:     cfg,
	}
	c.finder = &tableFinder{c: c}
	for _, opt := range opts {
		opt(c)
	}
	if c.fatal == nil {
		c.fatal = func(err error) {
			Logger().Fatal("deployment image is unusable", zap.Error(err))
		}
	}
	return c
}

// Host returns the host this context loads into.
func (c *Context) Host() *host.Host {
	return c.host
}

// Table returns the descriptor table this context serves.
func (c *Context) Table() *descriptor.Table {
	return c.table
}

// fail routes an image-level failure through the fatal handler and
// returns it, so non-terminating handlers still see an error result.
func (c *Context) fail(err error) error {
	c.fatal(err)
	return err
}

// trace emits one import negotiation line when verbose tracing is on.
func (c *Context) trace(name, verdict string) {
	if !c.cfg.Verbose {
		return
	}
	Logger().Info(fmt.Sprintf("import %s # %s", name, verdict))
}

// claim reports whether this context is responsible for a name and from
// which source it would load.
func (c *Context) claim(name string) (entry *descriptor.Entry, frozen bool, ok bool) {
	if e, found := c.table.Find(name); found {
		return e, false, true
	}
	if c.host.Frozen().Has(name) {
		return nil, true, true
	}
	return nil, false, false
}

// loadModule runs the full load pipeline for a claimed name: pre-load
// hook, strategy dispatch, post-load hook. Unclaimed names return
// (nil, nil) so the host can consult other sources.
func (c *Context) loadModule(ctx context.Context, name string) (*host.Module, error) {
	entry, frozen, ok := c.claim(name)
	if !ok {
		return nil, nil
	}

	if err := c.runHook(ctx, descriptor.PreLoadName(name)); err != nil {
		return nil, err
	}

	var (
		mod *host.Module
		err error
	)
	switch {
	case entry != nil:
		mod, err = c.dispatch(ctx, entry)
	case frozen:
		mod, err = c.host.LoadFrozen(ctx, name)
	}
	if err != nil {
		return nil, err
	}

	if err := c.runHook(ctx, descriptor.PostLoadName(name)); err != nil {
		return nil, err
	}
	return mod, nil
}

// dispatch selects the loading strategy from the descriptor payload.
func (c *Context) dispatch(ctx context.Context, entry *descriptor.Entry) (*host.Module, error) {
	switch payload := entry.Payload.(type) {
	case descriptor.Bytecode:
		return c.loadBytecode(ctx, entry, payload)
	case descriptor.NativeLibrary:
		return c.loadNative(ctx, entry)
	case descriptor.StaticInit:
		return c.loadStatic(ctx, entry, payload)
	default:
		return nil, c.fail(errors.BadImage(entry.Name, nil,
			fmt.Sprintf("unknown payload kind %q", entry.Payload.Kind())))
	}
}

// runHook loads the hook descriptor with the given table name, if one
// exists. Hooks are ordinary descriptors; a failing hook means the
// image's setup code could not run, which is not recoverable.
func (c *Context) runHook(ctx context.Context, hookName string) error {
	entry, found := c.table.Find(hookName)
	if !found {
		return nil
	}
	if _, loaded := c.host.Cache().Lookup(hookName); loaded {
		return nil
	}

	c.trace(hookName, "running hook")
	if _, err := c.dispatch(ctx, entry); err != nil {
		return c.fail(errors.Wrap(errors.PhaseHook, errors.KindInitFailed, err,
			"hook "+hookName+" failed"))
	}
	return nil
}

// packageContext returns the package-context string a self-registering
// initializer observes: the full dotted name for submodules, empty for
// top-level modules.
func packageContext(name string) string {
	for i := 0; i < len(name); i++ {
		if name[i] == '.' {
			return name
		}
	}
	return ""
}
