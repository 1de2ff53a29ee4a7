package shlib

import (
	"context"
	"fmt"
	"plugin"

	"github.com/wippyai/aot-runtime/errors"
	"github.com/wippyai/aot-runtime/host"
)

// PluginBackend opens Go plugin artifacts. Plugins must be built with
// the same toolchain and build flags as the embedding binary; Open
// surfaces the plugin package's diagnostic when they are not.
type PluginBackend struct{}

func (PluginBackend) Suffix() string { return ".so" }

func (PluginBackend) Open(path string) (Library, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, errors.BadImage("", fmt.Errorf("open plugin: %w", err), path)
	}
	return pluginLibrary{p: p, path: path}, nil
}

type pluginLibrary struct {
	p    *plugin.Plugin
	path string
}

func (l pluginLibrary) Lookup(symbol string) (host.InitFunc, error) {
	sym, err := l.p.Lookup(symbol)
	if err != nil {
		return nil, errors.SymbolMissing("", l.path, symbol)
	}

	// Plugins export either the function itself or a pointer to a
	// package-level variable of the function type.
	switch fn := sym.(type) {
	case func(context.Context, *host.Host) error:
		return fn, nil
	case host.InitFunc:
		return fn, nil
	case *host.InitFunc:
		return *fn, nil
	default:
		return nil, errors.BadImage("", nil,
			fmt.Sprintf("symbol %s in %s has type %T, want module init function", symbol, l.path, sym))
	}
}
