package descriptor

import "hash/maphash"

// hashDepth bounds how far Hash descends into children and overrides.
// Equal graphs unroll identically at every depth, so a bounded hash stays
// consistent with Equal and terminates on cycles.
const hashDepth = 4

var hashSeed = maphash.MakeSeed()

// Equal reports whether two descriptor graphs are structurally equal:
// equal handles, equal override maps (same keys, equal values) and equal
// children, absent slots matching absent slots.
//
// Identical nodes are equal immediately. A pair that has been reached once
// is assumed equal from then on: a mismatch anywhere ends the whole
// comparison, so the assumption only survives when it holds. Each pair is
// therefore compared at most once, and Equal terminates on any graph in
// time proportional to the distinct node pairs, not the paths between them.
func Equal(a, b *Node) bool {
	e := equality{assumed: make(map[[2]*Node]struct{})}
	return e.equal(a, b)
}

// Equal reports whether n and other are structurally equal.
func (n *Node) Equal(other *Node) bool {
	return Equal(n, other)
}

type equality struct {
	assumed map[[2]*Node]struct{}
}

func (e *equality) equal(a, b *Node) bool {
	if a == b {
		return true
	}

	if a == nil || b == nil {
		return false
	}

	pair := [2]*Node{a, b}
	if _, ok := e.assumed[pair]; ok {
		return true
	}

	if a.represented != b.represented || a.treatAs != b.treatAs {
		return false
	}

	if len(a.children) != len(b.children) || len(a.overrides) != len(b.overrides) {
		return false
	}

	e.assumed[pair] = struct{}{}

	for i := range a.children {
		if !e.equal(a.children[i], b.children[i]) {
			return false
		}
	}

	for key, ao := range a.overrides {
		bo, ok := b.overrides[key]
		if !ok || !e.equal(ao, bo) {
			return false
		}
	}

	return true
}

// Hash returns a hash consistent with Equal.
func Hash(n *Node) uint64 {
	return hashNode(n, hashDepth)
}

// Hash returns a hash of n consistent with Equal.
func (n *Node) Hash() uint64 {
	return Hash(n)
}

func hashNode(n *Node, depth int) uint64 {
	var h maphash.Hash
	h.SetSeed(hashSeed)

	if n == nil || n.represented == nil {
		h.WriteString(unknownPlaceholder)
		return h.Sum64()
	}

	h.WriteString(n.represented.QualifiedName())
	h.WriteByte(0)
	h.WriteString(n.treatAs.QualifiedName())
	h.WriteByte(0)

	var scratch [8]byte
	writeUint(&h, scratch[:], uint64(len(n.children)))
	writeUint(&h, scratch[:], uint64(len(n.overrides)))

	if depth == 0 {
		return h.Sum64()
	}

	for _, child := range n.children {
		writeUint(&h, scratch[:], hashNode(child, depth-1))
	}

	// Map order is random, so override entries are combined commutatively.
	var overrides uint64
	for key, o := range n.overrides {
		overrides += maphash.Comparable(hashSeed, key) ^ hashNode(o, depth-1)
	}
	writeUint(&h, scratch[:], overrides)

	return h.Sum64()
}

func writeUint(h *maphash.Hash, buf []byte, v uint64) {
	for i := range 8 {
		buf[i] = byte(v >> (8 * i))
	}
	h.Write(buf[:8])
}
