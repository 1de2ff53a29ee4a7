package loader

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/aot-runtime/errors"
	"github.com/wippyai/aot-runtime/host"
)

var (
	installMu sync.Mutex
	installed = make(map[*host.Host]*Context)
)

// Install registers the context's finder on its host's meta path under
// the given protocol generation. Installing the same context twice is a
// no-op; installing a second context on the same host is a duplicate
// and goes through the fatal handler, since two descriptor tables on
// one host means the deployment was assembled wrong.
func Install(c *Context, p host.Protocol) error {
	installMu.Lock()
	defer installMu.Unlock()

	if prev, ok := installed[c.host]; ok {
		if prev == c || prev.table == c.table {
			return nil
		}
		return c.fail(errors.Duplicate(errors.PhaseRegister,
			"a different descriptor table is already installed on this host"))
	}

	if err := c.host.RegisterMetaPath(c.finder, p); err != nil {
		return err
	}
	installed[c.host] = c

	Logger().Debug("descriptor table installed",
		zap.Int("descriptors", c.table.Len()),
		zap.String("protocol", p.String()))
	return nil
}
