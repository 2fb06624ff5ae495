package descriptor

import (
	"maps"
	"slices"
)

// Builder is a mutable staging descriptor. Its children and overrides are
// other Builders, so a Builder may reference itself directly or through
// other Builders before being frozen.
//
// Unset fields default at freeze time: represented to Root, treatAs to the
// resolved represented type, overrides and children to empty.
//
// Builders are not safe for concurrent use.
type Builder struct {
	represented Type
	treatAs     Type
	overrides   map[any]*Builder
	children    []*Builder // nil entries are absent slots
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// SetRepresented replaces the staged represented type.
func (b *Builder) SetRepresented(t Type) *Builder {
	b.represented = t
	return b
}

// SetTreatAs replaces the staged treat-as type.
func (b *Builder) SetTreatAs(t Type) *Builder {
	b.treatAs = t
	return b
}

// SetOverrides replaces the staged override map.
func (b *Builder) SetOverrides(overrides map[any]*Builder) *Builder {
	b.overrides = maps.Clone(overrides)
	return b
}

// SetChildren replaces the staged component slots.
func (b *Builder) SetChildren(children ...*Builder) *Builder {
	b.children = slices.Clone(children)
	return b
}

// AddChild appends a component slot. A nil child stages an absent slot.
func (b *Builder) AddChild(child *Builder) *Builder {
	b.children = append(b.children, child)
	return b
}

// PutOverride stages one per-instance override.
func (b *Builder) PutOverride(key any, o *Builder) *Builder {
	if b.overrides == nil {
		b.overrides = make(map[any]*Builder)
	}
	b.overrides[key] = o

	return b
}

// Represented returns the staged represented type, or nil if unset.
func (b *Builder) Represented() Type {
	return b.represented
}

// TreatAs returns the staged treat-as type, or nil if unset.
func (b *Builder) TreatAs() Type {
	return b.treatAs
}

// Overrides returns a copy of the staged override map.
func (b *Builder) Overrides() map[any]*Builder {
	return maps.Clone(b.overrides)
}

// Children returns a copy of the staged component slots.
func (b *Builder) Children() []*Builder {
	return slices.Clone(b.children)
}

// CopyFrom returns a Builder graph mirroring n. Shared and cyclic structure
// in n is kept shared and cyclic: one Builder per distinct node.
func CopyFrom(n *Node) *Builder {
	return NewBuilder().CopyFrom(n)
}

// CopyFrom replaces the receiver's staged fields with a deep copy of n.
// The receiver stands for n itself, so a cycle through n points back to b.
func (b *Builder) CopyFrom(n *Node) *Builder {
	if n == nil {
		*b = Builder{}
		return b
	}

	memo := map[*Node]*Builder{n: b}
	copyInto(b, n, memo)

	return b
}

func copyFrom(n *Node, memo map[*Node]*Builder) *Builder {
	if n == nil {
		return nil
	}

	if b, ok := memo[n]; ok {
		return b
	}

	b := &Builder{}
	memo[n] = b
	copyInto(b, n, memo)

	return b
}

func copyInto(b *Builder, n *Node, memo map[*Node]*Builder) {
	b.represented = n.represented
	b.treatAs = n.treatAs
	b.overrides = nil
	b.children = nil

	if len(n.overrides) > 0 {
		b.overrides = make(map[any]*Builder, len(n.overrides))
		for key, o := range n.overrides {
			b.overrides[key] = copyFrom(o, memo)
		}
	}

	if len(n.children) > 0 {
		b.children = make([]*Builder, len(n.children))
		for i, child := range n.children {
			b.children[i] = copyFrom(child, memo)
		}
	}
}
