package bptree

import "iter"

// Iterator is a forward-only, single-pass cursor over a tree's leaf chain:
// it walks leaf entries left to right following sibling links, never
// revisiting a page and never restarting once exhausted.
//
// The zero value is not meaningful; obtain one from Tree.Iter.
type Iterator struct {
	leaf  *page
	index int
}

// Iter returns an iterator positioned at the leftmost leaf's first entry.
// On an empty tree it returns an already-exhausted iterator.
func (t *Tree) Iter() *Iterator {
	return &Iterator{leaf: t.findLeafPage(0, descendLeftmost)}
}

// Next returns the next value in ascending key order, or false once the
// iterator is exhausted.
func (it *Iterator) Next() (int32, bool) {
	if it.leaf == nil {
		return 0, false
	}
	if it.leaf.nextLeaf == nil && it.index == it.leaf.size() {
		return 0, false
	}
	if it.leaf.nextLeaf != nil && it.index == it.leaf.size() {
		it.leaf = it.leaf.nextLeaf
		it.index = 0
	}

	value := it.leaf.valueAt(it.index)
	it.index++
	return value, true
}

// All adapts Iter to the stdlib range-over-func convention, for callers
// that want `for v := range tree.All()` instead of manual Next polling.
func (t *Tree) All() iter.Seq[int32] {
	return func(yield func(int32) bool) {
		it := t.Iter()
		for {
			v, ok := it.Next()
			if !ok {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}
