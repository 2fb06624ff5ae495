package descriptor

import "fmt"

// Freeze turns the Builder graph rooted at b into an immutable Node graph.
//
// Each distinct Builder is frozen exactly once, so shared Builders yield
// shared Nodes and a Builder reachable from itself yields a Node reachable
// from itself. Later mutation of the Builders does not affect the result.
func (b *Builder) Freeze() (*Node, error) {
	nodes, err := FreezeAll(b)
	if err != nil {
		return nil, err
	}

	return nodes[0], nil
}

// FreezeAll freezes several Builder graphs in one pass. Builders shared
// between the roots are frozen once and shared between the results.
func FreezeAll(roots ...*Builder) ([]*Node, error) {
	f := freezer{memo: make(map[*Builder]*Node)}

	nodes := make([]*Node, len(roots))
	for i, root := range roots {
		if root == nil {
			return nil, &FieldError{
				Field: fmt.Sprintf("roots[%d]", i),
				Err:   errorf(KindInvalidArgument, "nil builder"),
			}
		}

		n, err := f.freeze(root)
		if err != nil {
			return nil, err
		}
		nodes[i] = n
	}

	return nodes, nil
}

// freezer memoizes Builder identity to the Node produced for it.
type freezer struct {
	memo map[*Builder]*Node
}

func (f *freezer) freeze(b *Builder) (*Node, error) {
	if b == nil {
		return nil, nil
	}

	if n, ok := f.memo[b]; ok {
		return n, nil
	}

	// The shell is registered before its fields are resolved: a reference
	// back to b while resolving children lands on this same node.
	n := &Node{}
	f.memo[b] = n

	n.represented = b.represented
	if n.represented == nil {
		n.represented = Root
	}

	n.treatAs = b.treatAs
	if n.treatAs == nil {
		n.treatAs = n.represented
	}

	if len(b.overrides) > 0 {
		n.overrides = make(map[any]*Node, len(b.overrides))
		for key, ob := range b.overrides {
			if ob == nil {
				return nil, &FieldError{Field: overrideField(key), Err: errorf(KindTypeMismatch, "override is not a builder")}
			}

			o, err := f.freeze(ob)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", overrideField(key), err)
			}
			n.overrides[key] = o
		}
	}

	if len(b.children) > 0 {
		n.children = make([]*Node, len(b.children))
		for i, cb := range b.children {
			child, err := f.freeze(cb)
			if err != nil {
				return nil, fmt.Errorf("children[%d]: %w", i, err)
			}
			n.children[i] = child
		}
	}

	return n, nil
}
