// Package loader implements the embedded meta-path loader that serves
// modules out of the deployment image's descriptor table.
//
// A Context binds one descriptor table to one host, an engine for
// bytecode units and a shlib backend for native artifacts. Install
// registers the context's finder on the host's meta path under a
// negotiated protocol generation; from then on host imports consult the
// table before any other source.
//
// Claim resolution checks the descriptor table first and falls back to
// the host's built-in frozen table. Loading dispatches on the
// descriptor payload: bytecode units compile and execute inside a
// pre-registered module object, native libraries resolve a conventional
// entry symbol under a scoped package context, and statically linked
// initializers run directly. Pre and post load hooks are ordinary table
// entries named by suffix convention and run exactly once, around the
// first load only.
//
// Failures that indicate a corrupt deployment image (missing entry
// symbols, hook failures, modules that never register themselves) go
// through the context's fatal handler, which terminates the process by
// default. Ordinary load errors propagate to the importer.
package loader
