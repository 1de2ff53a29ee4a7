package loader

import (
	"context"

	"github.com/wippyai/aot-runtime/descriptor"
	"github.com/wippyai/aot-runtime/errors"
	"github.com/wippyai/aot-runtime/host"
)

// loadStatic invokes the initializer of a module linked directly into
// the deployment binary. Like native entries, the initializer registers
// its own module object under a scoped package context.
func (c *Context) loadStatic(ctx context.Context, entry *descriptor.Entry, payload descriptor.StaticInit) (*host.Module, error) {
	if payload.Init == nil {
		return nil, c.fail(errors.BadImage(entry.Name, nil, "static descriptor has no initializer"))
	}

	c.trace(entry.Name, "running static initializer")

	scope := c.host.EnterPackage(packageContext(entry.Name))
	err := payload.Init(ctx, c.host)
	scope.Exit()
	if err != nil {
		return nil, errors.InitFailed(errors.PhaseLoad, entry.Name, err)
	}

	mod, ok := c.host.Cache().Lookup(entry.Name)
	if !ok {
		return nil, c.fail(errors.BadImage(entry.Name, nil, "static module not initialized properly"))
	}
	return mod, nil
}
