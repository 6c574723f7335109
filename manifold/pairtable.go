package manifold

import "github.com/starling-physics/manifold/entity"

type pairKey struct {
	A, B entity.Handle
}

// PairTable is the broadphase's bidirectional body-pair to manifold map.
// Both orderings are stored as separate entries (spec §9's second keying
// option), so Get never has to branch on argument order and invariant 5
// (pair-table symmetry) is a stored property rather than a derived one.
type PairTable struct {
	pairs map[pairKey]entity.Handle
}

// NewPairTable returns an empty pair table.
func NewPairTable() *PairTable {
	return &PairTable{pairs: make(map[pairKey]entity.Handle)}
}

// Get returns the manifold registered for (a, b), in either order.
func (t *PairTable) Get(a, b entity.Handle) (entity.Handle, bool) {
	m, ok := t.pairs[pairKey{a, b}]
	return m, ok
}

// Set registers manifold under both (a,b) and (b,a).
func (t *PairTable) Set(a, b, manifold entity.Handle) {
	t.pairs[pairKey{a, b}] = manifold
	t.pairs[pairKey{b, a}] = manifold
}

// Delete removes both orderings of (a, b).
func (t *PairTable) Delete(a, b entity.Handle) {
	delete(t.pairs, pairKey{a, b})
	delete(t.pairs, pairKey{b, a})
}

// Len returns the number of distinct pairs tracked (not the number of map
// entries, which is always double this).
func (t *PairTable) Len() int {
	return len(t.pairs) / 2
}
