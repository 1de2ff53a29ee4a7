// Package shlib opens natively compiled module artifacts and resolves
// their entry functions.
//
// A Backend abstracts the artifact format. PluginBackend loads Go
// plugin .so files through the standard plugin package; ObjectBackend
// links relocatable .o archives at runtime with goloader, which avoids
// the plugin toolchain's build-flag coupling at the cost of symbol
// registration.
//
// Entry symbols follow a SymbolConvention: the translator emits one
// exported function per module whose name is a fixed prefix plus the
// last component of the dotted module name. ABI2 and ABI3 cover the two
// prefix generations shipped by the translator.
package shlib
