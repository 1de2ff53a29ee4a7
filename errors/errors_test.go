package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormat(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "phase and kind only",
			err:  &Error{Phase: PhaseLoad, Kind: KindBadImage},
			want: "[load] bad_image",
		},
		{
			name: "with module",
			err:  &Error{Phase: PhaseResolve, Kind: KindNotFound, Module: "pkg.mod"},
			want: "[resolve] not_found module 'pkg.mod'",
		},
		{
			name: "with file and detail",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindSymbolMissing,
				Module: "pkg.ext",
				File:   "/opt/app/pkg/ext.so",
				Detail: `entry symbol "ModInit_ext" not found`,
			},
			want: `[load] symbol_missing module 'pkg.ext' file '/opt/app/pkg/ext.so': entry symbol "ModInit_ext" not found`,
		},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("%s: Error() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestErrorCause(t *testing.T) {
	cause := fmt.Errorf("dlopen failed")
	err := BadImage("pkg.ext", cause, "open library")

	if !strings.Contains(err.Error(), "caused by: dlopen failed") {
		t.Errorf("Error() = %q, missing cause", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is did not unwrap to cause")
	}
}

func TestErrorIs(t *testing.T) {
	err := SymbolMissing("pkg.ext", "/x/ext.so", "ModInit_ext")

	if !stderrors.Is(err, &Error{Phase: PhaseLoad, Kind: KindSymbolMissing}) {
		t.Error("Is() = false for matching phase and kind")
	}
	if stderrors.Is(err, &Error{Phase: PhaseHook, Kind: KindSymbolMissing}) {
		t.Error("Is() = true for mismatched phase")
	}
}

func TestBuilder(t *testing.T) {
	cause := fmt.Errorf("trap")
	err := New(PhaseExec, KindInitFailed).
		Module("a.b").
		File("a/b.py").
		Cause(cause).
		Detail("code unit trapped at offset %d", 42).
		Build()

	if err.Phase != PhaseExec || err.Kind != KindInitFailed {
		t.Errorf("Build() phase/kind = %v/%v", err.Phase, err.Kind)
	}
	if err.Module != "a.b" || err.File != "a/b.py" {
		t.Errorf("Build() module/file = %q/%q", err.Module, err.File)
	}
	if err.Detail != "code unit trapped at offset 42" {
		t.Errorf("Build() detail = %q", err.Detail)
	}
	if err.Cause != cause {
		t.Error("Build() lost cause")
	}
}

func TestRefused(t *testing.T) {
	err := Refused("pkg.ext", "__file__")
	if err.Kind != KindRefused || err.Phase != PhaseFixup {
		t.Errorf("Refused() = %v/%v", err.Phase, err.Kind)
	}
}
