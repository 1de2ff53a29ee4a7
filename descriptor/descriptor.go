package descriptor

import (
	"github.com/wippyai/aot-runtime/host"
)

// Payload selects the loading strategy for one descriptor. Exactly three
// implementations exist.
type Payload interface {
	// Kind names the strategy for diagnostics.
	Kind() string
}

// NativeLibrary marks a module whose artifact is a shared library on
// disk. No payload is stored; the loader derives the library path from
// the descriptor name at load time.
type NativeLibrary struct{}

// Kind implements Payload.
func (NativeLibrary) Kind() string { return "native" }

// Bytecode carries a serialized executable code unit embedded at build
// time.
type Bytecode struct {
	Blob []byte
}

// Kind implements Payload.
func (Bytecode) Kind() string { return "bytecode" }

// StaticInit carries the initializer function of a module compiled
// directly into the deployment binary. The initializer constructs and
// registers its own module object.
type StaticInit struct {
	Init host.InitFunc
}

// Kind implements Payload.
func (StaticInit) Kind() string { return "static" }

// Entry is one module descriptor, immutable after table construction.
type Entry struct {
	// Name is the fully dotted module path, unique within the table and
	// the sole lookup key.
	Name string

	// Package reports whether the module is a package.
	Package bool

	Payload Payload
}

// Hook descriptors are named by suffix convention relative to the module
// they trigger on.
const (
	PreLoadSuffix  = "-preLoad"
	PostLoadSuffix = "-postLoad"
)

// PreLoadName returns the table name of the hook that runs immediately
// before name loads.
func PreLoadName(name string) string {
	return name + PreLoadSuffix
}

// PostLoadName returns the table name of the hook that runs immediately
// after name loads.
func PostLoadName(name string) string {
	return name + PostLoadSuffix
}
