package image

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/wippyai/aot-runtime/loader"
	"github.com/wippyai/aot-runtime/shlib"
)

// EnvVerbose turns on import claim tracing regardless of the manifest,
// the runtime equivalent of a verbose interpreter flag.
const EnvVerbose = "AOT_VERBOSE"

// Manifest is the deployment image manifest, TOML on disk.
type Manifest struct {
	Runtime Runtime `toml:"runtime"`
	Paths   Paths   `toml:"paths"`
}

// Runtime selects runtime behavior for the whole image.
type Runtime struct {
	// ABI is the translator's entry-symbol generation. Supported values
	// are 2 and 3; 0 means current.
	ABI int `toml:"abi"`

	Verbose bool `toml:"verbose"`
}

// Paths describes the on-disk layout of the image.
type Paths struct {
	InstallDir   string `toml:"install-dir"`
	PathBase     string `toml:"path-base"`
	SourceSuffix string `toml:"source-suffix"`
}

// Default returns the manifest an image without one gets.
func Default() Manifest {
	return Manifest{
		Runtime: Runtime{ABI: 3},
		Paths:   Paths{InstallDir: ".", PathBase: "."},
	}
}

// Load reads and parses a manifest file.
func Load(path string) (Manifest, error) {
	m := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("read manifest: %w", err)
	}
	if err := toml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if m.Runtime.ABI != 0 && m.Runtime.ABI != 2 && m.Runtime.ABI != 3 {
		return m, fmt.Errorf("manifest %s: unsupported abi %d", path, m.Runtime.ABI)
	}
	return m, nil
}

// LoaderConfig translates the manifest into loader configuration. The
// verbose environment override applies here, so every entry point gets
// it for free.
func (m Manifest) LoaderConfig() loader.Config {
	convention := shlib.ABI3
	if m.Runtime.ABI == 2 {
		convention = shlib.ABI2
	}

	return loader.Config{
		InstallDir:   m.Paths.InstallDir,
		PathBase:     m.Paths.PathBase,
		SourceSuffix: m.Paths.SourceSuffix,
		Convention:   convention,
		Verbose:      m.Runtime.Verbose || os.Getenv(EnvVerbose) != "",
	}
}
