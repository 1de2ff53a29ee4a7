package shlib

import (
	"github.com/wippyai/aot-runtime/host"
)

// Library is an opened native artifact.
type Library interface {
	// Lookup resolves the named entry symbol into a module init
	// function. A missing or mistyped symbol is an error.
	Lookup(symbol string) (host.InitFunc, error)
}

// Backend opens native artifacts of one format.
type Backend interface {
	// Suffix is the artifact filename extension, including the dot.
	Suffix() string

	// Open loads the artifact at path.
	Open(path string) (Library, error)
}

// SymbolConvention derives entry symbol names from module names.
type SymbolConvention struct {
	// Prefix is prepended to the last dotted component of the module
	// name to form the entry symbol.
	Prefix string
}

// Entry returns the entry symbol for a module whose last dotted
// component is short.
func (c SymbolConvention) Entry(short string) string {
	return c.Prefix + short
}

// Entry symbol conventions by translator ABI generation.
var (
	ABI2 = SymbolConvention{Prefix: "Init_"}
	ABI3 = SymbolConvention{Prefix: "ModInit_"}
)
