// Package engine provides the wazero-backed code-unit engine behind the
// bytecode loading strategy.
//
// The ahead-of-time translator serializes each module's executable code
// as a WebAssembly binary. Compile deserializes such a blob into a
// host.CodeUnit; executing the unit instantiates it and lets the module's
// top-level code run, writing its namespace through the runtime ABI host
// module:
//
//	aot:runtime.attr_set(name_ptr, name_len, val_ptr, val_len)
//	aot:runtime.import(name_ptr, name_len) -> i32
//	aot:runtime.trace(msg_ptr, msg_len)
//
// "import" re-enters the host import machinery, which is how circular
// imports reach the pre-registered module object in the cache.
//
// The engine keeps the current execution target in a single field rather
// than locking around it: import activity is serialized by the host's
// import discipline, and executing a unit may only re-enter the engine
// through "import" on the same goroutine.
package engine
