package host

import (
	"context"

	"github.com/wippyai/aot-runtime/errors"
)

// Finder is the base meta-path contract every host generation requires:
// claim responsibility for a name without loading it.
type Finder interface {
	// FindModule reports whether this finder claims the name and, if so,
	// returns the loader to use. Claiming does not load.
	FindModule(name string) (ModuleLoader, bool)
}

// ModuleLoader loads a previously claimed module. Returning (nil, nil)
// means "nothing to load": the host falls through to its own import path.
type ModuleLoader interface {
	LoadModule(ctx context.Context, name string) (*Module, error)
}

// PackageChecker reports the package property of a name. known is false
// when the finder has no descriptor for the name.
type PackageChecker interface {
	IsPackage(name string) (isPackage, known bool)
}

// Representer produces a diagnostic string for a module this finder
// loaded.
type Representer interface {
	ModuleRepr(mod *Module) string
}

// SpecFinder wraps claim and loader identity into one specification
// object, the richer contract of newer hosts.
type SpecFinder interface {
	FindSpec(name string) (*ModuleSpec, bool)
}

// ModuleSpec is a load specification bound to a specific loader.
type ModuleSpec struct {
	Name      string
	Loader    ModuleLoader
	IsPackage bool
	Origin    string
}

// Protocol identifies a host import-protocol generation. Each generation
// demands a fixed subset of the finder capability superset.
type Protocol int

const (
	// ProtocolV1 is the two-method contract: find + load.
	ProtocolV1 Protocol = iota + 1
	// ProtocolV2 adds is-package and module representation.
	ProtocolV2
	// ProtocolV3 adds find-spec on top of V2.
	ProtocolV3
)

func (p Protocol) String() string {
	switch p {
	case ProtocolV1:
		return "v1"
	case ProtocolV2:
		return "v2"
	case ProtocolV3:
		return "v3"
	default:
		return "unknown"
	}
}

type capability string

const (
	capFind      capability = "find"
	capLoad      capability = "load"
	capIsPackage capability = "is-package"
	capRepresent capability = "represent"
	capFindSpec  capability = "find-spec"
)

// protocolCaps is the negotiation table: protocol generation to required
// capability subset.
var protocolCaps = map[Protocol][]capability{
	ProtocolV1: {capFind, capLoad},
	ProtocolV2: {capFind, capLoad, capIsPackage, capRepresent},
	ProtocolV3: {capFind, capLoad, capIsPackage, capRepresent, capFindSpec},
}

// verifyProtocol checks that a finder implements every capability its
// declared protocol requires. A finder may implement more; only the
// negotiated subset is wired in by the host.
func verifyProtocol(f Finder, p Protocol) error {
	caps, ok := protocolCaps[p]
	if !ok {
		return errors.Protocol("unsupported protocol %d", int(p))
	}

	for _, c := range caps {
		switch c {
		case capFind:
			// Finder is the static type; nothing to probe.
		case capLoad:
			if _, ok := f.(ModuleLoader); !ok {
				return errors.Protocol("protocol %s requires load", p)
			}
		case capIsPackage:
			if _, ok := f.(PackageChecker); !ok {
				return errors.Protocol("protocol %s requires is-package", p)
			}
		case capRepresent:
			if _, ok := f.(Representer); !ok {
				return errors.Protocol("protocol %s requires represent", p)
			}
		case capFindSpec:
			if _, ok := f.(SpecFinder); !ok {
				return errors.Protocol("protocol %s requires find-spec", p)
			}
		}
	}
	return nil
}
