// Package host models the host runtime's side of the import system: the
// process-wide module cache, the frozen-module table, the meta-path finder
// protocol and the bookkeeping native extension modules rely on.
//
// The loader registers into this machinery and queries it; it does not own
// it. In particular, ownership of a module object, once constructed,
// belongs to the cache here; the loader's only obligation is to insert
// its own entries and never overwrite another's.
//
// # Import Machinery
//
// ImportModule serves a request from the cache when possible and otherwise
// walks the registered meta-path finders:
//
//	mod, err := h.ImportModule(ctx, "pkg.mod")
//
// Module execution may re-enter ImportModule (a module importing another
// module, including itself transitively). Callers pre-registering a cache
// entry before execution is what makes such circular imports observe a
// partially initialized module instead of recursing into a finder again.
//
// # Protocol Negotiation
//
// Hosts of different generations demand different finder method sets.
// RegisterMetaPath verifies at registration time that a finder implements
// the capability subset its declared protocol version requires; see
// Protocol.
//
// # Concurrency
//
// Import activity is assumed to be serialized by the embedding process
// (the import-lock discipline of the runtimes this library targets). The
// cache tolerates concurrent readers; finder registration and frozen-table
// construction belong to process startup.
package host
