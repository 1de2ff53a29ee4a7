package loader

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/wippyai/aot-runtime/descriptor"
	"github.com/wippyai/aot-runtime/errors"
	"github.com/wippyai/aot-runtime/host"
)

// loadNative opens the module's shared artifact, resolves the
// conventional entry symbol and invokes it under a scoped package
// context. The initializer registers its own module object; its
// absence afterwards means the artifact does not match this runtime.
func (c *Context) loadNative(ctx context.Context, entry *descriptor.Entry) (*host.Module, error) {
	path := c.nativePath(entry.Name)
	short := entry.Name
	if i := strings.LastIndex(entry.Name, "."); i >= 0 {
		short = entry.Name[i+1:]
	}

	c.trace(entry.Name, "loading native library "+path)

	lib, err := c.backend.Open(path)
	if err != nil {
		return nil, c.fail(errors.BadImage(entry.Name, err, "open native library"))
	}

	symbol := c.cfg.Convention.Entry(short)
	init, err := lib.Lookup(symbol)
	if err != nil {
		return nil, c.fail(errors.SymbolMissing(entry.Name, path, symbol))
	}

	scope := c.host.EnterPackage(packageContext(entry.Name))
	err = init(ctx, c.host)
	scope.Exit()
	if err != nil {
		return nil, errors.InitFailed(errors.PhaseLoad, entry.Name, err)
	}

	mod, ok := c.host.Cache().Lookup(entry.Name)
	if !ok {
		return nil, c.fail(errors.BadImage(entry.Name, nil, "dynamic module not initialized properly"))
	}

	def, ok := c.host.Definition(entry.Name)
	if !ok {
		return nil, c.fail(errors.BadImage(entry.Name, nil, "dynamic module produced no definition"))
	}
	// Bind the resolved entry so re-initialization reuses it.
	def.Init = init

	// The artifact path is better diagnostics than whatever the
	// initializer stamped; refusal is fine.
	_ = mod.SetFile(path)

	c.host.FixupExtension(mod, entry.Name, path)
	return mod, nil
}

// nativePath maps a dotted module name onto the installed artifact
// path: dots become separators under the install directory, plus the
// backend's suffix.
func (c *Context) nativePath(name string) string {
	rel := strings.ReplaceAll(name, ".", string(filepath.Separator))
	return filepath.Join(c.cfg.InstallDir, rel) + c.backend.Suffix()
}
