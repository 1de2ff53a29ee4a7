package host

import (
	"github.com/wippyai/aot-runtime/errors"
)

// Module is a materialized module object. Its attributes form the module
// namespace; File and SearchPath mirror the bookkeeping attributes the
// host runtime exposes for diagnostics and submodule resolution.
type Module struct {
	name       string
	file       string
	searchPath []string
	loader     any
	attrs      map[string]any
	sealed     map[string]bool
}

// NewModule creates an empty module object with the given dotted name.
func NewModule(name string) *Module {
	return &Module{
		name:  name,
		attrs: make(map[string]any),
	}
}

// Name returns the fully dotted module name.
func (m *Module) Name() string {
	return m.name
}

// File returns the module's reported file path, or "" if never set.
func (m *Module) File() string {
	return m.file
}

// SetFile sets the module's file-path attribute. Sealed modules refuse
// the update; callers treating the path as cosmetic clear the error.
func (m *Module) SetFile(path string) error {
	if m.sealed["__file__"] {
		return errors.Refused(m.name, "__file__")
	}
	m.file = path
	return nil
}

// SearchPath returns the package search path, nil for non-packages.
func (m *Module) SearchPath() []string {
	return m.searchPath
}

// SetSearchPath sets the package search path.
func (m *Module) SetSearchPath(path []string) {
	m.searchPath = path
}

// Loader returns the object recorded as having loaded this module.
func (m *Module) Loader() any {
	return m.loader
}

// SetLoader records the loader identity for introspection.
func (m *Module) SetLoader(loader any) {
	m.loader = loader
}

// Attr returns a namespace attribute.
func (m *Module) Attr(name string) (any, bool) {
	v, ok := m.attrs[name]
	return v, ok
}

// SetAttr sets a namespace attribute. Sealed attributes refuse updates.
func (m *Module) SetAttr(name string, value any) error {
	if m.sealed[name] {
		return errors.Refused(m.name, name)
	}
	m.attrs[name] = value
	return nil
}

// Seal marks an attribute immutable. Subsequent SetAttr (or SetFile for
// "__file__") calls return a refused error.
func (m *Module) Seal(attr string) {
	if m.sealed == nil {
		m.sealed = make(map[string]bool)
	}
	m.sealed[attr] = true
}
