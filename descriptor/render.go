package descriptor

import "strings"

const (
	unknownPlaceholder = "?"
	treatAsSeparator   = ":"
	overridesMarker    = "*"
	componentSeparator = ", "
)

// QualifiedName renders n using fully qualified type names, e.g.
// "typegraph/store.Page<typegraph/store.Order>".
func QualifiedName(n *Node) string {
	return render(n, Type.QualifiedName)
}

// SimpleName renders n using short type names, e.g. "Page<Order>".
func SimpleName(n *Node) string {
	return render(n, Type.SimpleName)
}

// ReflectiveName renders n using reflect-style names, e.g. "store.Page<store.Order>".
func ReflectiveName(n *Node) string {
	return render(n, Type.ReflectiveName)
}

// renderer walks a node graph depth-first. A node already on the current
// path is a back-edge and renders as the unknown placeholder; siblings are
// rendered independently because nodes leave the path on exit.
type renderer struct {
	sb    strings.Builder
	leaf  func(Type) string
	stack map[*Node]struct{}
}

func render(n *Node, leaf func(Type) string) string {
	r := &renderer{
		leaf:  leaf,
		stack: make(map[*Node]struct{}),
	}
	r.node(n)

	return r.sb.String()
}

func (r *renderer) node(n *Node) {
	if n == nil || n.represented == nil {
		r.sb.WriteString(unknownPlaceholder)
		return
	}

	if _, onPath := r.stack[n]; onPath {
		r.sb.WriteString(unknownPlaceholder)
		return
	}

	r.stack[n] = struct{}{}
	defer delete(r.stack, n)

	r.sb.WriteString(r.leaf(n.represented))

	if n.treatAs != n.represented {
		r.sb.WriteString(treatAsSeparator)
		r.sb.WriteString(r.leaf(n.treatAs))
	}

	if len(n.overrides) > 0 {
		r.sb.WriteString(overridesMarker)
	}

	if len(n.children) == 0 {
		return
	}

	r.sb.WriteByte('<')
	for i, child := range n.children {
		if i > 0 {
			r.sb.WriteString(componentSeparator)
		}
		r.node(child)
	}
	r.sb.WriteByte('>')
}
