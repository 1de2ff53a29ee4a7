package host

import (
	"context"

	"github.com/wippyai/aot-runtime/errors"
)

// InitFunc is the self-registering initializer shape shared by statically
// linked modules, load hooks, native entry symbols and frozen modules.
// The function constructs and registers its own module object against the
// given host.
type InitFunc func(ctx context.Context, h *Host) error

// CodeUnit is an executable code unit deserialized from a bytecode blob.
// Execute runs the unit inside the given module's namespace, reporting
// sourcePath as the unit's source location.
type CodeUnit interface {
	Execute(ctx context.Context, mod *Module, sourcePath string) error
}

// Definition is the module-definition record a native or statically
// linked initializer produces. The loader binds the resolved entry
// function to it so repeated re-initialization is avoided.
type Definition struct {
	Name   string
	File   string
	Init   InitFunc
	Module *Module
}

// Host bundles the host runtime's import-system state.
type Host struct {
	cache      *Cache
	frozen     *FrozenTable
	defs       map[string]*Definition
	metaPath   []metaPathEntry
	pkgContext string
}

type metaPathEntry struct {
	finder   Finder
	loader   ModuleLoader
	protocol Protocol
}

// Option configures a Host.
type Option func(*Host)

// WithFrozen installs the host's built-in frozen-module table.
func WithFrozen(t *FrozenTable) Option {
	return func(h *Host) {
		h.frozen = t
	}
}

// New creates a host with an empty cache and no meta-path finders.
func New(opts ...Option) *Host {
	h := &Host{
		cache: NewCache(),
		defs:  make(map[string]*Definition),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Cache returns the process-wide module cache.
func (h *Host) Cache() *Cache {
	return h.cache
}

// Frozen returns the frozen-module table; never nil.
func (h *Host) Frozen() *FrozenTable {
	if h.frozen == nil {
		return &FrozenTable{}
	}
	return h.frozen
}

// RegisterMetaPath appends a finder to the meta path after verifying it
// satisfies the capability subset the protocol generation demands.
func (h *Host) RegisterMetaPath(f Finder, p Protocol) error {
	if f == nil {
		return errors.Protocol("nil finder")
	}
	if err := verifyProtocol(f, p); err != nil {
		return err
	}

	entry := metaPathEntry{finder: f, protocol: p}
	if ldr, ok := f.(ModuleLoader); ok {
		entry.loader = ldr
	}
	h.metaPath = append(h.metaPath, entry)
	return nil
}

// ImportModule resolves a dotted module name: cache hit first, then the
// meta-path finders in registration order. Re-entrant: executing a
// module's code may import further modules, including itself.
func (h *Host) ImportModule(ctx context.Context, name string) (*Module, error) {
	if mod, ok := h.cache.Lookup(name); ok {
		return mod, nil
	}

	for _, entry := range h.metaPath {
		ldr, claimed := entry.finder.FindModule(name)
		if !claimed {
			continue
		}
		if ldr == nil {
			ldr = entry.loader
		}
		if ldr == nil {
			continue
		}
		mod, err := ldr.LoadModule(ctx, name)
		if err != nil {
			return nil, err
		}
		if mod != nil {
			return mod, nil
		}
	}

	return nil, errors.NotFound(errors.PhaseResolve, "module", name)
}

// LoadFrozen loads a module from the host's built-in table. The frozen
// initializer registers its own module; a missing cache entry afterwards
// indicates a corrupt deployment.
func (h *Host) LoadFrozen(ctx context.Context, name string) (*Module, error) {
	init, ok := h.Frozen().init(name)
	if !ok {
		return nil, errors.NotFound(errors.PhaseResolve, "frozen module", name)
	}
	if init == nil {
		return nil, errors.BadImage(name, nil, "frozen module has no initializer")
	}
	if err := init(ctx, h); err != nil {
		return nil, errors.InitFailed(errors.PhaseLoad, name, err)
	}

	mod, ok := h.cache.Lookup(name)
	if !ok {
		return nil, errors.BadImage(name, nil, "frozen module not initialized properly")
	}
	return mod, nil
}

// ExecCodeModule is the standard "execute code object as module"
// primitive. The module must already be registered in the cache; the
// synthetic source path is stamped onto it before execution so
// diagnostics raised during execution see it.
func (h *Host) ExecCodeModule(ctx context.Context, name string, unit CodeUnit, sourcePath string) (*Module, error) {
	mod, ok := h.cache.Lookup(name)
	if !ok {
		return nil, errors.NotFound(errors.PhaseExec, "pre-registered module", name)
	}

	// Refusal here is cosmetic metadata only.
	_ = mod.SetFile(sourcePath)

	if err := unit.Execute(ctx, mod, sourcePath); err != nil {
		return nil, errors.InitFailed(errors.PhaseExec, name, err)
	}
	return mod, nil
}

// PackageContext returns the current package context string consulted by
// self-registering native initializers.
func (h *Host) PackageContext() string {
	return h.pkgContext
}

// PackageScope is a scoped package-context override. Exit restores the
// previous context; it is idempotent and safe on every exit path.
type PackageScope struct {
	h    *Host
	prev string
	done bool
}

// EnterPackage overrides the package context for the duration of a native
// initializer invocation.
func (h *Host) EnterPackage(pkg string) *PackageScope {
	s := &PackageScope{h: h, prev: h.pkgContext}
	h.pkgContext = pkg
	return s
}

// Exit restores the package context in effect before EnterPackage.
func (s *PackageScope) Exit() {
	if s.done {
		return
	}
	s.done = true
	s.h.pkgContext = s.prev
}

// RegisterDefinition records the module-definition produced by an
// initializer. Duplicate definitions indicate a broken image.
func (h *Host) RegisterDefinition(def *Definition) error {
	if def == nil || def.Name == "" {
		return errors.BadImage("", nil, "empty module definition")
	}
	if _, exists := h.defs[def.Name]; exists {
		return errors.Duplicate(errors.PhaseRegister, "definition for "+def.Name)
	}
	h.defs[def.Name] = def
	return nil
}

// Definition returns the recorded module definition for a name.
func (h *Host) Definition(name string) (*Definition, bool) {
	def, ok := h.defs[name]
	return def, ok
}

// FixupExtension runs the standard extension-module bookkeeping: the
// definition is bound to its module object and resolved file path so the
// module participates correctly in re-import and submodule attribute
// lookup.
func (h *Host) FixupExtension(mod *Module, name, file string) {
	def, ok := h.defs[name]
	if !ok {
		return
	}
	def.Module = mod
	def.File = file
}
