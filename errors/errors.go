package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the load pipeline the error occurred.
type Phase string

const (
	PhaseClaim    Phase = "claim"    // responsibility negotiation
	PhaseResolve  Phase = "resolve"  // descriptor table lookup
	PhaseLoad     Phase = "load"     // strategy dispatch and artifact loading
	PhaseExec     Phase = "exec"     // code unit execution
	PhaseHook     Phase = "hook"     // pre/post load hooks
	PhaseRegister Phase = "register" // table and finder registration
	PhaseFixup    Phase = "fixup"    // post-load module bookkeeping
)

// Kind categorizes the error.
type Kind string

const (
	KindNotFound       Kind = "not_found"
	KindDuplicate      Kind = "duplicate"
	KindAlreadyPresent Kind = "already_present"
	KindSymbolMissing  Kind = "symbol_missing"
	KindBadImage       Kind = "bad_image"
	KindInitFailed     Kind = "init_failed"
	KindProtocol       Kind = "protocol"
	KindRefused        Kind = "refused"
)

// Error is the structured error type used throughout the runtime.
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Module string // dotted module name, when known
	File   string // artifact path, when known
	Detail string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Module != "" {
		b.WriteString(" module '")
		b.WriteString(e.Module)
		b.WriteByte('\'')
	}
	if e.File != "" {
		b.WriteString(" file '")
		b.WriteString(e.File)
		b.WriteByte('\'')
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. Two Errors match when
// their Phase and Kind agree; Module, File and Detail are not compared.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction.
type Builder struct {
	err Error
}

// New creates a new error builder.
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Module sets the dotted module name.
func (b *Builder) Module(name string) *Builder {
	b.err.Module = name
	return b
}

// File sets the artifact path.
func (b *Builder) File(path string) *Builder {
	b.err.File = path
	return b
}

// Cause sets the underlying error.
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message.
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error.
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// NotFound creates a not-found error.
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Module: name,
		Detail: fmt.Sprintf("%s not found", what),
	}
}

// Duplicate creates a duplicate-registration error. This classifies a
// deployment invariant violation, not a runtime input problem.
func Duplicate(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDuplicate,
		Detail: detail,
	}
}

// AlreadyPresent reports a cache entry that exists where none may.
func AlreadyPresent(phase Phase, module string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAlreadyPresent,
		Module: module,
		Detail: "module already registered",
	}
}

// SymbolMissing reports an entry symbol that could not be resolved from a
// native library.
func SymbolMissing(module, file, symbol string) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindSymbolMissing,
		Module: module,
		File:   file,
		Detail: fmt.Sprintf("entry symbol %q not found", symbol),
	}
}

// BadImage reports a corrupt or mismatched deployment artifact.
func BadImage(module string, cause error, detail string) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindBadImage,
		Module: module,
		Detail: detail,
		Cause:  cause,
	}
}

// InitFailed reports an initializer that ran but did not complete.
func InitFailed(phase Phase, module string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInitFailed,
		Module: module,
		Detail: "initializer failed",
		Cause:  cause,
	}
}

// Protocol reports a finder that does not satisfy the negotiated
// import-protocol capability set.
func Protocol(detail string, args ...any) *Error {
	return &Error{
		Phase:  PhaseRegister,
		Kind:   KindProtocol,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// Refused reports an attribute update rejected by a sealed module
// attribute. Callers treating the update as cosmetic clear this error.
func Refused(module, attr string) *Error {
	return &Error{
		Phase:  PhaseFixup,
		Kind:   KindRefused,
		Module: module,
		Detail: fmt.Sprintf("attribute %q is sealed", attr),
	}
}

// Wrap wraps an existing error with phase and kind context.
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
