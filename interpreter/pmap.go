package interpreter

import "cmp"

// pmap is a small persistent, path-copying ordered map. Forking a
// DataContext for every neighbor an edge expands to is the hot path of
// the walk (spec §4.3/§9), so Insert must share structure with its
// parent rather than clone it: only the path from the root to the
// changed key is copied, the rest of the tree is reused by pointer.
//
// Unbalanced by design — the key spaces involved (Vid, tag name) are
// small and insertion order is whatever the query declares, not
// adversarial input, so a plain BST gives the sharing property without
// the bookkeeping of a self-balancing variant. The copied path is as long
// as the tree is deep: keys inserted in ascending order (as Vids usually
// are) form a chain, so it is not bounded by O(log n).
type pmap[K cmp.Ordered, V any] struct {
	root *pmapNode[K, V]
}

type pmapNode[K cmp.Ordered, V any] struct {
	key         K
	val         V
	left, right *pmapNode[K, V]
}

func newPmap[K cmp.Ordered, V any]() pmap[K, V] {
	return pmap[K, V]{}
}

func (m pmap[K, V]) Get(k K) (V, bool) {
	n := m.root
	for n != nil {
		switch {
		case k < n.key:
			n = n.left
		case k > n.key:
			n = n.right
		default:
			return n.val, true
		}
	}
	var zero V
	return zero, false
}

// Insert returns a new map with k bound to v, sharing every subtree
// untouched by the insertion path with m.
func (m pmap[K, V]) Insert(k K, v V) pmap[K, V] {
	return pmap[K, V]{root: insertNode(m.root, k, v)}
}

func insertNode[K cmp.Ordered, V any](n *pmapNode[K, V], k K, v V) *pmapNode[K, V] {
	if n == nil {
		return &pmapNode[K, V]{key: k, val: v}
	}
	switch {
	case k < n.key:
		return &pmapNode[K, V]{key: n.key, val: n.val, left: insertNode(n.left, k, v), right: n.right}
	case k > n.key:
		return &pmapNode[K, V]{key: n.key, val: n.val, left: n.left, right: insertNode(n.right, k, v)}
	default:
		return &pmapNode[K, V]{key: k, val: v, left: n.left, right: n.right}
	}
}

// Range calls fn for every entry in key order, stopping early if fn
// returns false.
func (m pmap[K, V]) Range(fn func(K, V) bool) {
	var walk func(n *pmapNode[K, V]) bool
	walk = func(n *pmapNode[K, V]) bool {
		if n == nil {
			return true
		}
		if !walk(n.left) {
			return false
		}
		if !fn(n.key, n.val) {
			return false
		}
		return walk(n.right)
	}
	walk(m.root)
}
