package descriptor

import (
	"maps"
	"slices"
)

// Node is an immutable type descriptor.
//
// A Node may be reached again through its own children or overrides. Every
// operation in this package terminates on such cyclic graphs.
//
// The zero Node is not a valid descriptor; only Make and Freeze produce
// one. Renderers print a zero Node like an absent slot.
type Node struct {
	represented Type
	treatAs     Type
	overrides   map[any]*Node
	children    []*Node // nil entries are absent slots
}

// Option configures Make.
type Option func(*Node)

// WithTreatAs sets the type instances of the node are treated as.
// A nil type keeps the default, which is the represented type.
func WithTreatAs(t Type) Option {
	return func(n *Node) {
		if t != nil {
			n.treatAs = t
		}
	}
}

// WithOverrides sets per-instance override descriptors.
func WithOverrides(overrides map[any]*Node) Option {
	return func(n *Node) {
		n.overrides = maps.Clone(overrides)
	}
}

// WithChildren sets the ordered component descriptors. nil entries are absent slots.
func WithChildren(children ...*Node) Option {
	return func(n *Node) {
		n.children = slices.Clone(children)
	}
}

// Make creates a Node. represented is required; treatAs defaults to it, and
// overrides and children default to empty.
func Make(represented Type, opts ...Option) (*Node, error) {
	if represented == nil {
		return nil, &FieldError{Field: "represented", Err: errorf(KindInvalidArgument, "represented type is required")}
	}

	n := &Node{represented: represented}
	for _, opt := range opts {
		if opt != nil {
			opt(n)
		}
	}

	if n.treatAs == nil {
		n.treatAs = represented
	}

	for key, o := range n.overrides {
		if o == nil {
			return nil, &FieldError{Field: overrideField(key), Err: errorf(KindTypeMismatch, "override is not a descriptor")}
		}
	}

	if len(n.overrides) == 0 {
		n.overrides = nil
	}

	if len(n.children) == 0 {
		n.children = nil
	}

	return n, nil
}

// MustMake is like Make but panics on error.
func MustMake(represented Type, opts ...Option) *Node {
	n, err := Make(represented, opts...)
	if err != nil {
		panic(err)
	}

	return n
}

// Represented returns the concrete type the node describes.
func (n *Node) Represented() Type {
	return n.represented
}

// TreatAs returns the type used for compatibility checks. Never nil.
func (n *Node) TreatAs() Type {
	return n.treatAs
}

// HasOverrides returns true if the node carries any per-instance override.
func (n *Node) HasOverrides() bool {
	return len(n.overrides) > 0
}

// Overrides returns a copy of the override map.
func (n *Node) Overrides() map[any]*Node {
	return maps.Clone(n.overrides)
}

// Override returns the descriptor for the given instance key,
// or the node itself when the key has no override.
func (n *Node) Override(key any) *Node {
	if o, ok := n.overrides[key]; ok {
		return o
	}

	return n
}

// Arity returns the number of component slots.
func (n *Node) Arity() int {
	return len(n.children)
}

// Children returns a copy of the component slots.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// Child returns the i-th component, or nil for an absent slot.
// It panics if i is out of range, like a slice index.
func (n *Node) Child(i int) *Node {
	return n.children[i]
}

// String returns the qualified name of the node.
func (n *Node) String() string {
	return QualifiedName(n)
}
