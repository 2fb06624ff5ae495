// Package analyze describes the named types of Go packages as descriptor graphs.
//
// It uses golang.org/x/tools/go/packages with go/types to load packages and
// turns every exported named type, and every exported struct field, into a
// descriptor.Node:
//   - named types represent themselves; their type arguments (or type
//     parameters, for generic declarations) are components
//   - named types over a basic type are treated as that basic type
//   - pointers, slices, arrays, maps, channels, funcs and anonymous structs
//     use the builtin descriptor handles with their element types as components
//
// Every described type is registered in a descriptor.Registry, which then
// resolves type names for descriptor.Parse.
package analyze
