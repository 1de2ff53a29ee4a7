// Package descriptor defines the module descriptor table the build step
// hands to the loader, and the entry resolver that is the loader's only
// read path into it.
//
// A descriptor describes one loadable unit: its fully dotted name, whether
// it is a package, and exactly one payload selecting the loading strategy:
//
//	descriptor.Bytecode{Blob: ...}       embedded serialized code unit
//	descriptor.NativeLibrary{}           shared library resolved on disk
//	descriptor.StaticInit{Init: ...}     initializer linked into the binary
//
// The payload is a closed sum: invalid strategy combinations cannot be
// represented.
//
// Hook descriptors are ordinary entries whose names carry the "-preLoad"
// or "-postLoad" suffix and whose payload is a StaticInit; they exist
// purely as table entries, with no separate entity type.
//
// Tables are immutable after construction and safe to share without
// synchronization. Lookup is exact-match only: no prefix matching, no
// case folding.
package descriptor
