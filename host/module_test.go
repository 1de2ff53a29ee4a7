package host

import (
	stderrors "errors"
	"testing"

	rterrors "github.com/wippyai/aot-runtime/errors"
)

func TestModuleAttrs(t *testing.T) {
	m := NewModule("pkg.mod")

	if m.Name() != "pkg.mod" {
		t.Errorf("Name() = %q, want %q", m.Name(), "pkg.mod")
	}

	if err := m.SetAttr("answer", 42); err != nil {
		t.Fatalf("SetAttr: %v", err)
	}
	v, ok := m.Attr("answer")
	if !ok || v != 42 {
		t.Errorf("Attr(answer) = %v, %v", v, ok)
	}

	if _, ok := m.Attr("missing"); ok {
		t.Error("Attr(missing) = present")
	}
}

func TestModuleSealedAttr(t *testing.T) {
	m := NewModule("pkg.mod")
	m.Seal("version")

	err := m.SetAttr("version", "2.0")
	if err == nil {
		t.Fatal("SetAttr on sealed attribute succeeded")
	}
	if !stderrors.Is(err, &rterrors.Error{Phase: rterrors.PhaseFixup, Kind: rterrors.KindRefused}) {
		t.Errorf("SetAttr error = %v, want refused", err)
	}
	if _, ok := m.Attr("version"); ok {
		t.Error("sealed attribute was written anyway")
	}
}

func TestModuleSetFile(t *testing.T) {
	m := NewModule("pkg.mod")

	if err := m.SetFile("pkg/mod.py"); err != nil {
		t.Fatalf("SetFile: %v", err)
	}
	if m.File() != "pkg/mod.py" {
		t.Errorf("File() = %q", m.File())
	}

	m.Seal("__file__")
	if err := m.SetFile("other"); err == nil {
		t.Error("SetFile on sealed __file__ succeeded")
	}
	if m.File() != "pkg/mod.py" {
		t.Errorf("File() after refused update = %q", m.File())
	}
}

func TestModuleSearchPathAndLoader(t *testing.T) {
	m := NewModule("pkg")
	if m.SearchPath() != nil {
		t.Error("SearchPath() != nil for fresh module")
	}

	m.SetSearchPath([]string{"base/pkg"})
	if got := m.SearchPath(); len(got) != 1 || got[0] != "base/pkg" {
		t.Errorf("SearchPath() = %v", got)
	}

	marker := &struct{}{}
	m.SetLoader(marker)
	if m.Loader() != marker {
		t.Error("Loader() did not round-trip")
	}
}
