package image

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "image.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeManifest(t, `
[runtime]
abi = 2
verbose = true

[paths]
install-dir = "/opt/app/lib"
path-base = "/opt/app/src"
source-suffix = ".py"
`)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if m.Runtime.ABI != 2 || !m.Runtime.Verbose {
		t.Errorf("Runtime = %+v, want abi 2 verbose", m.Runtime)
	}
	if m.Paths.InstallDir != "/opt/app/lib" || m.Paths.PathBase != "/opt/app/src" {
		t.Errorf("Paths = %+v", m.Paths)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writeManifest(t, `
[paths]
install-dir = "/lib"
`)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Runtime.ABI != 3 {
		t.Errorf("ABI = %d, want default 3", m.Runtime.ABI)
	}
	if m.Paths.PathBase != "." {
		t.Errorf("PathBase = %q, want default .", m.Paths.PathBase)
	}
}

func TestLoadRejectsUnknownABI(t *testing.T) {
	path := writeManifest(t, `
[runtime]
abi = 7
`)
	if _, err := Load(path); err == nil {
		t.Error("Load accepted abi 7")
	}
}

func TestLoaderConfig(t *testing.T) {
	m := Default()
	m.Runtime.ABI = 2
	m.Paths.InstallDir = "/lib"

	cfg := m.LoaderConfig()
	if cfg.Convention.Prefix != "Init_" {
		t.Errorf("Convention.Prefix = %q, want Init_", cfg.Convention.Prefix)
	}
	if cfg.InstallDir != "/lib" {
		t.Errorf("InstallDir = %q, want /lib", cfg.InstallDir)
	}
	if cfg.Verbose {
		t.Error("Verbose = true without manifest or environment")
	}
}

func TestLoaderConfigEnvOverride(t *testing.T) {
	t.Setenv(EnvVerbose, "1")

	cfg := Default().LoaderConfig()
	if !cfg.Verbose {
		t.Error("Verbose = false with environment override set")
	}
}
