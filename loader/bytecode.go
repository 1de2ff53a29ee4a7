package loader

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/wippyai/aot-runtime/descriptor"
	"github.com/wippyai/aot-runtime/errors"
	"github.com/wippyai/aot-runtime/host"
)

// loadBytecode compiles the embedded blob and executes it inside a
// fresh module object. The module is registered in the cache before its
// top-level code runs, so circular imports observe the partially
// initialized module instead of recursing forever.
func (c *Context) loadBytecode(ctx context.Context, entry *descriptor.Entry, payload descriptor.Bytecode) (*host.Module, error) {
	unit, err := c.engine.Compile(ctx, payload.Blob)
	if err != nil {
		return nil, c.fail(errors.BadImage(entry.Name, err, "embedded code unit does not deserialize"))
	}

	// The claim protocol guarantees nobody loaded this name before us.
	if _, exists := c.host.Cache().Lookup(entry.Name); exists {
		return nil, c.fail(errors.AlreadyPresent(errors.PhaseLoad, entry.Name))
	}

	mod := host.NewModule(entry.Name)
	mod.SetLoader(c.finder)

	sourcePath := c.syntheticPath(entry, mod)

	if err := c.host.Cache().Insert(mod); err != nil {
		return nil, c.fail(err)
	}

	c.trace(entry.Name, "executing bytecode")
	return c.host.ExecCodeModule(ctx, entry.Name, unit, sourcePath)
}

// syntheticPath derives the source path reported for a bytecode module
// and, for packages, installs the single-entry search path.
func (c *Context) syntheticPath(entry *descriptor.Entry, mod *host.Module) string {
	rel := strings.ReplaceAll(entry.Name, ".", string(filepath.Separator))
	base := filepath.Join(c.cfg.PathBase, rel)

	if entry.Package {
		mod.SetSearchPath([]string{base})
		return filepath.Join(base, c.cfg.PackageInitName)
	}
	return base + c.cfg.SourceSuffix
}
