package analyze

import (
	"reflect"
	"strings"

	"typegraph/descriptor"
	"typegraph/internal/common"
	"typegraph/internal/diagnostic"
)

// TypeKind represents the kind of a named type's underlying type.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindBasic              // type OrderStatus string
	TypeKindStruct             // struct type
	TypeKindPointer            // type P *T
	TypeKindSlice              // type S []T
	TypeKindArray              // type A [N]T
	TypeKindMap                // type M map[K]V
	TypeKindInterface          // interface type
	TypeKindFunc               // func type
	TypeKindChan               // chan type
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindArray:
		return "array"
	case TypeKindMap:
		return "map"
	case TypeKindInterface:
		return "interface"
	case TypeKindFunc:
		return "func"
	case TypeKindChan:
		return "chan"
	default:
		return common.UnknownStr
	}
}

// TypeInfo describes a named type of a loaded package.
type TypeInfo struct {
	ID         descriptor.TypeID
	Kind       TypeKind
	Descriptor *descriptor.Node
	Fields     []FieldInfo // For structs, the exported fields
}

// FieldInfo describes an exported struct field.
type FieldInfo struct {
	Name       string            // Go field name
	Descriptor *descriptor.Node  // Field type
	Tag        reflect.StructTag // Raw struct tag
	Embedded   bool              // Whether the field is embedded (anonymous)
	Index      int               // Field index in the struct
}

// JSONName returns the JSON tag name if present, otherwise the field name.
func (f *FieldInfo) JSONName() string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}

	return name
}

// Field returns the field with the given name, or nil.
func (t *TypeInfo) Field(name string) *FieldInfo {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i]
		}
	}

	return nil
}

// TypeGraph holds all described types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all exported named types.
	Types map[descriptor.TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
	// Registry holds the canonical descriptor of every described type
	// and resolves their names.
	Registry *descriptor.Registry
	// Diagnostics collects types that could not be described precisely.
	Diagnostics diagnostic.Diagnostics
}

// NewTypeGraph creates a new empty TypeGraph backed by registry.
func NewTypeGraph(registry *descriptor.Registry) *TypeGraph {
	return &TypeGraph{
		Types:    make(map[descriptor.TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
		Registry: registry,
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id descriptor.TypeID) *TypeInfo {
	return g.Types[id]
}

// Lookup returns the TypeInfo a descriptor represents, if it is a loaded named type.
func (g *TypeGraph) Lookup(n *descriptor.Node) *TypeInfo {
	if n == nil {
		return nil
	}

	id, ok := n.Represented().(descriptor.TypeID)
	if !ok {
		return nil
	}

	return g.Types[id]
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string              // Import path
	Name  string              // Package name
	Types []descriptor.TypeID // Named types defined in this package
}
