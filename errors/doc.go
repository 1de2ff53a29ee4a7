// Package errors provides structured error types for the module-loading
// runtime.
//
// Every error carries a Phase (where in the load pipeline it occurred) and
// a Kind (what went wrong), so callers can classify failures without string
// matching:
//
//	var loadErr *errors.Error
//	if stderrors.As(err, &loadErr) && loadErr.Kind == errors.KindSymbolMissing {
//	    ...
//	}
//
// The loader treats most kinds as unrecoverable: a missing entry symbol or
// a corrupt bytecode blob indicates a mismatched deployment image, and the
// module cache may already be partially mutated by the time the failure is
// observed. The classification here is what the loader's fatal handler
// acts on.
package errors
