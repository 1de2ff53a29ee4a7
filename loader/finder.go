package loader

import (
	"context"
	"fmt"

	"github.com/wippyai/aot-runtime/host"
)

// tableFinder adapts a Context to the host's meta-path capability
// superset. The host wires in only the subset its protocol generation
// negotiated at install time.
type tableFinder struct {
	c *Context
}

var (
	_ host.Finder         = (*tableFinder)(nil)
	_ host.ModuleLoader   = (*tableFinder)(nil)
	_ host.PackageChecker = (*tableFinder)(nil)
	_ host.Representer    = (*tableFinder)(nil)
	_ host.SpecFinder     = (*tableFinder)(nil)
)

// FindModule claims a name when the descriptor table or the frozen
// table holds it. Claiming never loads.
func (f *tableFinder) FindModule(name string) (host.ModuleLoader, bool) {
	f.c.trace(name, "considering responsibility")

	entry, frozen, ok := f.c.claim(name)
	switch {
	case entry != nil:
		f.c.trace(name, "claimed responsibility (compiled)")
	case frozen:
		f.c.trace(name, "claimed responsibility (frozen)")
	default:
		f.c.trace(name, "denied responsibility")
	}
	if !ok {
		return nil, false
	}
	return f, true
}

// LoadModule loads a previously claimed name through the full pipeline.
func (f *tableFinder) LoadModule(ctx context.Context, name string) (*host.Module, error) {
	return f.c.loadModule(ctx, name)
}

// IsPackage reports the package property from the descriptor table.
// Frozen-only names are claimed but their package property is unknown.
func (f *tableFinder) IsPackage(name string) (isPackage, known bool) {
	entry, found := f.c.table.Find(name)
	if !found {
		return false, false
	}
	return entry.Package, true
}

// ModuleRepr renders the diagnostic representation of a loaded module.
func (f *tableFinder) ModuleRepr(mod *host.Module) string {
	return fmt.Sprintf("<module '%s' from '%s'>", mod.Name(), mod.File())
}

// FindSpec wraps claim and loader identity into one specification.
func (f *tableFinder) FindSpec(name string) (*host.ModuleSpec, bool) {
	entry, frozen, ok := f.c.claim(name)
	if !ok {
		return nil, false
	}

	spec := &host.ModuleSpec{
		Name:   name,
		Loader: f,
		Origin: "compiled",
	}
	if entry != nil {
		spec.IsPackage = entry.Package
	}
	if frozen {
		spec.Origin = "frozen"
	}
	return spec, true
}
