// Package toolchain locates the external executables the deploy pipeline
// depends on. Lookup walks an ordered chain of resolvers: the process
// search path first, then a configurable list of known install locations.
// The first resolver that produces an existing candidate wins.
package toolchain
