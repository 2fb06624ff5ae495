package analyze

import (
	"fmt"
	"strings"

	"typegraph/descriptor"
)

// TypePath builds a readable path string for a field.
// Examples:
//   - "Order" for a simple struct
//   - "Order.Items" for a nested field
//   - "Order.Items[]" for a slice field
//   - "Order.Items[].ProductID" for a field within slice elements
type TypePath struct {
	parts []string
}

// NewTypePath creates a new TypePath from a root type name.
func NewTypePath(root string) *TypePath {
	return &TypePath{
		parts: []string{root},
	}
}

// Field appends a field name to the path.
func (p *TypePath) Field(name string) *TypePath {
	return &TypePath{
		parts: append(append([]string{}, p.parts...), name),
	}
}

// Slice appends a slice indicator "[]" to the path.
func (p *TypePath) Slice() *TypePath {
	if len(p.parts) == 0 {
		return &TypePath{parts: []string{"[]"}}
	}
	newParts := make([]string, len(p.parts))
	copy(newParts, p.parts)
	newParts[len(newParts)-1] = newParts[len(newParts)-1] + "[]"
	return &TypePath{parts: newParts}
}

// String returns the full path string.
func (p *TypePath) String() string {
	return strings.Join(p.parts, ".")
}

// Form selects one of the descriptor renderings.
type Form int

const (
	FormQualified Form = iota
	FormSimple
	FormReflective
)

// ParseForm maps "qualified", "simple" or "reflective" to a Form.
func ParseForm(s string) (Form, error) {
	switch s {
	case "qualified", "":
		return FormQualified, nil
	case "simple":
		return FormSimple, nil
	case "reflective":
		return FormReflective, nil
	default:
		return 0, fmt.Errorf("unknown form %q (want qualified, simple or reflective): %w", s, descriptor.ErrInvalidArgument)
	}
}

// Render renders n in the form.
func (f Form) Render(n *descriptor.Node) string {
	switch f {
	case FormSimple:
		return descriptor.SimpleName(n)
	case FormReflective:
		return descriptor.ReflectiveName(n)
	default:
		return descriptor.QualifiedName(n)
	}
}

// TypeStringer renders the types of a TypeGraph.
type TypeStringer struct {
	graph *TypeGraph
	form  Form
}

// NewTypeStringer creates a new TypeStringer.
func NewTypeStringer(graph *TypeGraph, form Form) *TypeStringer {
	return &TypeStringer{graph: graph, form: form}
}

// TypeString returns the rendered descriptor of a TypeInfo.
func (s *TypeStringer) TypeString(t *TypeInfo) string {
	if t == nil {
		return "<nil>"
	}

	return s.form.Render(t.Descriptor)
}

// BuildFieldPaths recursively builds all field paths for a struct type,
// descending into loaded struct types through pointers, slices and arrays.
// Returns a map of path string to FieldInfo.
func (s *TypeStringer) BuildFieldPaths(root *TypeInfo, maxDepth int) map[string]*FieldInfo {
	result := make(map[string]*FieldInfo)
	if root == nil || root.Kind != TypeKindStruct {
		return result
	}

	s.buildFieldPathsRecursive(root, NewTypePath(root.ID.Name), result, 0, maxDepth)
	return result
}

func (s *TypeStringer) buildFieldPathsRecursive(t *TypeInfo, path *TypePath, result map[string]*FieldInfo, depth, maxDepth int) {
	if depth > maxDepth || t == nil {
		return
	}

	for i := range t.Fields {
		field := &t.Fields[i]
		fieldPath := path.Field(field.Name)

		result[fieldPath.String()] = field

		s.processNestedType(field.Descriptor, fieldPath, result, depth+1, maxDepth)
	}
}

func (s *TypeStringer) processNestedType(n *descriptor.Node, path *TypePath, result map[string]*FieldInfo, depth, maxDepth int) {
	if n == nil || depth > maxDepth {
		return
	}

	switch n.Represented() {
	case descriptor.Pointer:
		s.processNestedType(n.Child(0), path, result, depth, maxDepth)

	case descriptor.Slice, descriptor.Array:
		s.processNestedType(n.Child(0), path.Slice(), result, depth, maxDepth)

	default:
		if info := s.graph.Lookup(n); info != nil && info.Kind == TypeKindStruct {
			s.buildFieldPathsRecursive(info, path, result, depth, maxDepth)
		}
	}
}
