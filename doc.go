// Package aotruntime provides the embedded module-loading runtime for
// ahead-of-time compiled program deployments.
//
// Once a program's modules have been translated into WebAssembly bytecode,
// native extension libraries, or statically linked initializer functions,
// this library is what resolves "import X" requests at run time and
// materializes the corresponding module inside the running host process,
// without access to the original source tree.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	aot-runtime/
//	├── descriptor/  Descriptor table and entry resolver (the build-step output)
//	├── host/        Host runtime boundary: module cache, frozen table,
//	│                import machinery and the pluggable-importer protocol
//	├── engine/      wazero-backed bytecode code-unit engine
//	├── shlib/       Native-library loading backends and symbol conventions
//	├── loader/      Strategy dispatch, load hooks and the import adapter
//	├── image/       Deployment image manifest
//	└── errors/      Structured error types for debugging
//
// # Quick Start
//
// Wire a descriptor table produced by the build step into a host:
//
//	h := host.New()
//	eng, _ := engine.New(ctx)
//	table, _ := descriptor.New(records)
//
//	c := loader.NewContext(table, h, eng, loader.Config{InstallDir: dir})
//	loader.Install(c, host.ProtocolV3)
//
//	mod, err := h.ImportModule(ctx, "pkg.mod")
//
// # Loading Strategies
//
// Each descriptor selects exactly one strategy:
//
//   - Bytecode: the embedded blob is compiled into a code unit and executed
//     inside a pre-registered module namespace. Pre-registration is what
//     makes circular imports observe a partially initialized module instead
//     of re-entering the loader.
//   - Native library: a shared library resolved from the install directory
//     is opened through a shlib backend and entered through its well-known
//     exported symbol.
//   - Statically linked: a self-registering initializer compiled into the
//     deployment binary is invoked directly.
//
// # Thread Safety
//
// The descriptor table is immutable after construction and safe to share.
// Import activity itself is assumed to be serialized by the host, matching
// the single-threaded import discipline of the runtimes this library
// targets. The module cache supports concurrent readers.
package aotruntime
