package host

import (
	"context"
	stderrors "errors"
	"testing"

	rterrors "github.com/wippyai/aot-runtime/errors"
)

// stubFinder implements the full capability superset; individual
// capabilities can be disabled by wrapping.
type stubFinder struct {
	claims map[string]bool
	load   func(ctx context.Context, name string) (*Module, error)
	loads  int
}

func (f *stubFinder) FindModule(name string) (ModuleLoader, bool) {
	if f.claims[name] {
		return f, true
	}
	return nil, false
}

func (f *stubFinder) LoadModule(ctx context.Context, name string) (*Module, error) {
	f.loads++
	if f.load != nil {
		return f.load(ctx, name)
	}
	return nil, nil
}

func (f *stubFinder) IsPackage(name string) (bool, bool) { return false, false }

func (f *stubFinder) ModuleRepr(mod *Module) string { return mod.Name() }

func (f *stubFinder) FindSpec(name string) (*ModuleSpec, bool) { return nil, false }

// findOnly strips everything but the base Finder contract.
type findOnly struct{ f *stubFinder }

func (w findOnly) FindModule(name string) (ModuleLoader, bool) { return w.f.FindModule(name) }

func TestRegisterMetaPathNegotiation(t *testing.T) {
	full := &stubFinder{}

	tests := []struct {
		name   string
		finder Finder
		proto  Protocol
		wantOK bool
	}{
		{"full finder v1", full, ProtocolV1, true},
		{"full finder v2", full, ProtocolV2, true},
		{"full finder v3", full, ProtocolV3, true},
		{"find-only v1", findOnly{full}, ProtocolV1, false}, // cannot load
		{"unknown protocol", full, Protocol(9), false},
	}

	for _, tt := range tests {
		h := New()
		err := h.RegisterMetaPath(tt.finder, tt.proto)
		if (err == nil) != tt.wantOK {
			t.Errorf("%s: RegisterMetaPath error = %v, want ok=%v", tt.name, err, tt.wantOK)
		}
		if err != nil && !stderrors.Is(err, &rterrors.Error{Phase: rterrors.PhaseRegister, Kind: rterrors.KindProtocol}) {
			t.Errorf("%s: error = %v, want protocol kind", tt.name, err)
		}
	}
}

func TestImportModuleCacheFirst(t *testing.T) {
	h := New()
	finder := &stubFinder{claims: map[string]bool{"a": true}}
	if err := h.RegisterMetaPath(finder, ProtocolV1); err != nil {
		t.Fatalf("RegisterMetaPath: %v", err)
	}

	cached := NewModule("a")
	if err := h.Cache().Insert(cached); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := h.ImportModule(context.Background(), "a")
	if err != nil {
		t.Fatalf("ImportModule: %v", err)
	}
	if got != cached {
		t.Error("ImportModule did not serve from cache")
	}
	if finder.loads != 0 {
		t.Errorf("finder invoked %d times for cached module", finder.loads)
	}
}

func TestImportModuleWalksFinders(t *testing.T) {
	h := New()

	deny := &stubFinder{claims: map[string]bool{}}
	claim := &stubFinder{
		claims: map[string]bool{"a": true},
		load: func(ctx context.Context, name string) (*Module, error) {
			mod := NewModule(name)
			if err := h.Cache().Insert(mod); err != nil {
				return nil, err
			}
			return mod, nil
		},
	}
	if err := h.RegisterMetaPath(deny, ProtocolV1); err != nil {
		t.Fatal(err)
	}
	if err := h.RegisterMetaPath(claim, ProtocolV1); err != nil {
		t.Fatal(err)
	}

	mod, err := h.ImportModule(context.Background(), "a")
	if err != nil {
		t.Fatalf("ImportModule: %v", err)
	}
	if mod == nil || mod.Name() != "a" {
		t.Errorf("ImportModule = %v", mod)
	}
	if deny.loads != 0 {
		t.Error("denying finder was asked to load")
	}
	if claim.loads != 1 {
		t.Errorf("claiming finder loads = %d, want 1", claim.loads)
	}
}

func TestImportModuleNotFound(t *testing.T) {
	h := New()
	_, err := h.ImportModule(context.Background(), "nope")
	if !stderrors.Is(err, &rterrors.Error{Phase: rterrors.PhaseResolve, Kind: rterrors.KindNotFound}) {
		t.Errorf("ImportModule error = %v, want not_found", err)
	}
}

func TestImportModuleNothingToLoadFallsThrough(t *testing.T) {
	h := New()

	// Claims but has nothing to load; host should continue to the next
	// finder rather than fail.
	empty := &stubFinder{claims: map[string]bool{"a": true}}
	next := &stubFinder{
		claims: map[string]bool{"a": true},
		load: func(ctx context.Context, name string) (*Module, error) {
			mod := NewModule(name)
			return mod, h.Cache().Insert(mod)
		},
	}
	if err := h.RegisterMetaPath(empty, ProtocolV1); err != nil {
		t.Fatal(err)
	}
	if err := h.RegisterMetaPath(next, ProtocolV1); err != nil {
		t.Fatal(err)
	}

	mod, err := h.ImportModule(context.Background(), "a")
	if err != nil {
		t.Fatalf("ImportModule: %v", err)
	}
	if mod == nil {
		t.Fatal("ImportModule = nil after fall-through")
	}
	if empty.loads != 1 || next.loads != 1 {
		t.Errorf("loads = %d/%d, want 1/1", empty.loads, next.loads)
	}
}

func TestLoadFrozen(t *testing.T) {
	frozen := NewFrozenTable(FrozenEntry{
		Name: "sys",
		Init: func(ctx context.Context, h *Host) error {
			return h.Cache().Insert(NewModule("sys"))
		},
	})
	h := New(WithFrozen(frozen))

	if !h.Frozen().Has("sys") {
		t.Fatal("Has(sys) = false")
	}
	if h.Frozen().Has("other") {
		t.Fatal("Has(other) = true")
	}

	mod, err := h.LoadFrozen(context.Background(), "sys")
	if err != nil {
		t.Fatalf("LoadFrozen: %v", err)
	}
	if mod.Name() != "sys" {
		t.Errorf("LoadFrozen name = %q", mod.Name())
	}

	if _, err := h.LoadFrozen(context.Background(), "other"); err == nil {
		t.Error("LoadFrozen(other) succeeded")
	}
}

func TestLoadFrozenMissingRegistration(t *testing.T) {
	// Initializer runs but never inserts itself: a hard load error, not a
	// silent success.
	frozen := NewFrozenTable(FrozenEntry{
		Name: "broken",
		Init: func(ctx context.Context, h *Host) error { return nil },
	})
	h := New(WithFrozen(frozen))

	_, err := h.LoadFrozen(context.Background(), "broken")
	if !stderrors.Is(err, &rterrors.Error{Phase: rterrors.PhaseLoad, Kind: rterrors.KindBadImage}) {
		t.Errorf("LoadFrozen error = %v, want bad_image", err)
	}
}

type recordingUnit struct {
	mod  *Module
	path string
}

func (u *recordingUnit) Execute(ctx context.Context, mod *Module, sourcePath string) error {
	u.mod = mod
	u.path = sourcePath
	return nil
}

func TestExecCodeModule(t *testing.T) {
	h := New()
	mod := NewModule("a.b")
	if err := h.Cache().Insert(mod); err != nil {
		t.Fatal(err)
	}

	unit := &recordingUnit{}
	got, err := h.ExecCodeModule(context.Background(), "a.b", unit, "a/b.py")
	if err != nil {
		t.Fatalf("ExecCodeModule: %v", err)
	}
	if got != mod {
		t.Error("ExecCodeModule returned a different module")
	}
	if unit.mod != mod || unit.path != "a/b.py" {
		t.Errorf("unit executed with %v, %q", unit.mod, unit.path)
	}
	if mod.File() != "a/b.py" {
		t.Errorf("File() = %q, want stamped before execution", mod.File())
	}
}

func TestExecCodeModuleRequiresPreRegistration(t *testing.T) {
	h := New()
	_, err := h.ExecCodeModule(context.Background(), "a", &recordingUnit{}, "a.py")
	if !stderrors.Is(err, &rterrors.Error{Phase: rterrors.PhaseExec, Kind: rterrors.KindNotFound}) {
		t.Errorf("ExecCodeModule error = %v, want not_found", err)
	}
}

func TestPackageScopeRestore(t *testing.T) {
	h := New()

	scope := h.EnterPackage("pkg.sub")
	if h.PackageContext() != "pkg.sub" {
		t.Errorf("PackageContext() = %q", h.PackageContext())
	}

	inner := h.EnterPackage("pkg.other")
	inner.Exit()
	if h.PackageContext() != "pkg.sub" {
		t.Errorf("PackageContext() after inner Exit = %q", h.PackageContext())
	}

	scope.Exit()
	scope.Exit() // idempotent
	if h.PackageContext() != "" {
		t.Errorf("PackageContext() after Exit = %q", h.PackageContext())
	}
}

func TestPackageScopeRestoreOnPanic(t *testing.T) {
	h := New()

	func() {
		scope := h.EnterPackage("pkg")
		defer scope.Exit()
		defer func() { _ = recover() }()
		panic("initializer crashed")
	}()

	if h.PackageContext() != "" {
		t.Errorf("PackageContext() = %q after panic path", h.PackageContext())
	}
}

func TestDefinitionsAndFixup(t *testing.T) {
	h := New()

	def := &Definition{Name: "pkg.ext"}
	if err := h.RegisterDefinition(def); err != nil {
		t.Fatalf("RegisterDefinition: %v", err)
	}
	if err := h.RegisterDefinition(&Definition{Name: "pkg.ext"}); err == nil {
		t.Error("duplicate RegisterDefinition succeeded")
	}

	mod := NewModule("pkg.ext")
	h.FixupExtension(mod, "pkg.ext", "/opt/app/pkg/ext.so")

	got, ok := h.Definition("pkg.ext")
	if !ok {
		t.Fatal("Definition(pkg.ext) missing")
	}
	if got.Module != mod || got.File != "/opt/app/pkg/ext.so" {
		t.Errorf("fixup recorded %v, %q", got.Module, got.File)
	}

	// Fixup for an unknown name is a no-op.
	h.FixupExtension(mod, "unknown", "x")
}
