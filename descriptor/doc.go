// Package descriptor models types as small, possibly self-referential graphs.
//
// A Node describes a represented type, the type it is treated as, a set of
// per-instance overrides and an ordered list of component descriptors. Nodes
// are immutable and may share children or form cycles.
//
// Key types:
//   - Type: a host type handle (TypeID, reflect-backed handles, builtins)
//   - Node: immutable descriptor, built with Make or frozen from a Builder
//   - Builder: mutable staging graph, may reference itself before Freeze
//   - Registry: caller-owned cache of canonical descriptors and name resolver
//
// Rendering follows the grammar
//
//	type       := represented (":" treatAs)? ("*")? ("<" components ">")?
//	components := component ("," component)*
//	component  := type | "?"
package descriptor
