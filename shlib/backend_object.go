package shlib

import (
	"path/filepath"
	"strings"
	"unsafe"

	"github.com/pkujhd/goloader"

	"github.com/wippyai/aot-runtime/errors"
	"github.com/wippyai/aot-runtime/host"
)

// ObjectBackend links relocatable object artifacts at runtime with
// goloader. Unlike plugins, object files carry no type information, so
// entry symbols are cast unchecked; the translator guarantees the entry
// signature.
type ObjectBackend struct{}

func (ObjectBackend) Suffix() string { return ".o" }

func (ObjectBackend) Open(path string) (Library, error) {
	syms := make(map[string]uintptr)
	goloader.RegTypes(syms, host.InitFunc(nil))
	if err := goloader.RegSymbol(syms); err != nil {
		return nil, errors.BadImage("", err, "register runtime symbols")
	}

	// goloader needs the Go package name of the object; the translator
	// names the package after the artifact.
	pkg := strings.TrimSuffix(filepath.Base(path), ".o")

	linker, err := goloader.ReadObj(path, pkg)
	if err != nil {
		return nil, errors.BadImage("", err, path)
	}
	mod, err := goloader.Load(linker, syms)
	if err != nil {
		return nil, errors.BadImage("", err, path)
	}

	return &objectLibrary{mod: mod, pkg: pkg, path: path}, nil
}

type objectLibrary struct {
	mod  *goloader.CodeModule
	pkg  string
	path string
}

func (l *objectLibrary) Lookup(symbol string) (host.InitFunc, error) {
	addr, ok := l.mod.Syms[symbol]
	if !ok {
		// Object symbols are package qualified.
		addr, ok = l.mod.Syms[l.pkg+"."+symbol]
	}
	if !ok {
		return nil, errors.SymbolMissing("", l.path, symbol)
	}

	// A func value is a pointer to a code-pointer container.
	entry := addr
	container := uintptr(unsafe.Pointer(&entry))
	return *(*host.InitFunc)(unsafe.Pointer(&container)), nil
}
