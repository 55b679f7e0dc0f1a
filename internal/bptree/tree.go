package bptree

import (
	"github.com/go-logr/logr"

	"idxcore/internal/invariant"
	"idxcore/internal/xlog"
)

// descendMode selects which child an internal page hands back during
// descent. The original reference implementation threaded an Operation
// enum (find/insert/update/delete) through this same call purely to leave
// TODO stubs in each branch; none of the four cases ever diverged, so it
// carried no information. descendMode keeps only the distinction that
// actually changes behavior: plain key lookup versus walking to either
// edge of the tree for Iterator construction.
type descendMode int

const (
	descendLookup descendMode = iota
	descendLeftmost
	descendRightmost
)

// Tree is a B+ tree index mapping int32 keys to int32 values.
//
// The zero value is not ready for use; construct one with New.
type Tree struct {
	name            string
	internalMaxSize int
	leafMaxSize     int

	root       *page
	nextPageID uint64

	log logr.Logger
}

// Option configures a Tree at construction time.
type Option func(*Tree)

// WithLogger overrides the default package logger.
func WithLogger(log logr.Logger) Option {
	return func(t *Tree) { t.log = log }
}

// New creates an empty tree. internalMaxSize and leafMaxSize bound the
// entry count of internal and leaf pages respectively.
func New(name string, internalMaxSize, leafMaxSize int, opts ...Option) *Tree {
	invariant.Check(internalMaxSize > 0 && leafMaxSize > 0, "bptree: max sizes must be positive")

	t := &Tree{
		name:            name,
		internalMaxSize: internalMaxSize,
		leafMaxSize:     leafMaxSize,
		log:             xlog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// IsEmpty reports whether the tree holds no pages at all.
func (t *Tree) IsEmpty() bool { return t.root == nil }

// Insert adds (key, value). It returns false only when the underlying leaf
// insert was a true no-op, which in this tree only happens for a duplicate
// key; duplicate keys are otherwise silently ignored rather than updated.
func (t *Tree) Insert(key, value int32) bool {
	if t.IsEmpty() {
		t.createNewTree(key, value)
		return true
	}
	return t.insertIntoLeaf(key, value)
}

// GetValue performs a point lookup.
func (t *Tree) GetValue(key int32) (int32, bool) {
	leaf := t.findLeafPage(key, descendLookup)
	if leaf == nil {
		return 0, false
	}
	return leaf.lookupValue(key)
}

// Remove deletes key if present, rebalancing the tree as needed.
func (t *Tree) Remove(key int32) {
	if t.IsEmpty() {
		return
	}

	leaf := t.findLeafPage(key, descendLookup)
	oldSize := leaf.size()
	leaf.removeAndDeleteRecord(key)
	if leaf.size() == oldSize {
		return
	}

	t.coalesceOrRedistribute(leaf)
}

func (t *Tree) newPage(kind pageKind, maxSize int, parent *page) *page {
	t.nextPageID++
	return newPage(t.nextPageID, kind, maxSize, parent)
}

func (t *Tree) createNewTree(key, value int32) {
	root := t.newPage(pageLeaf, t.leafMaxSize, nil)
	root.insertLeaf(key, value)
	t.root = root
	t.log.V(xlog.Debug).Info("bptree.create", "name", t.name, "page", root.id)
}

// findLeafPage descends from the root to a leaf, following either key
// comparisons or an edge of the tree, per descendMode. It returns nil only
// when the tree is empty.
func (t *Tree) findLeafPage(key int32, mode descendMode) *page {
	if t.root == nil {
		return nil
	}

	cur := t.root
	for cur.isInternal() {
		var next *page
		switch mode {
		case descendLeftmost:
			next = cur.childAt(0)
		case descendRightmost:
			next = cur.childAt(cur.size() - 1)
		default:
			next = cur.lookupChild(key)
		}
		invariant.Check(next != nil, "bptree: internal page child pointer is nil")
		cur = next
	}
	return cur
}

func (t *Tree) insertIntoLeaf(key, value int32) bool {
	leaf := t.findLeafPage(key, descendLookup)
	oldSize := leaf.size()
	leaf.insertLeaf(key, value)
	newSize := leaf.size()
	if newSize == oldSize {
		return false
	}

	if newSize < t.leafMaxSize {
		return true
	}

	sibling := t.split(leaf)
	sibling.nextLeaf = leaf.nextLeaf
	leaf.nextLeaf = sibling
	middleKey := sibling.keyAt(0)

	t.insertIntoParent(leaf, middleKey, sibling)
	return true
}

// split carves a fresh sibling of cur's kind and moves the upper half of
// cur's entries into it.
func (t *Tree) split(cur *page) *page {
	var sibling *page
	if cur.isInternal() {
		sibling = t.newPage(pageInternal, t.internalMaxSize, cur.parent)
	} else {
		sibling = t.newPage(pageLeaf, t.leafMaxSize, cur.parent)
	}
	cur.moveHalfTo(sibling)
	return sibling
}

// insertIntoParent wires newChild into old's parent under separator
// middleKey, creating a new root if old had none, and recursing upward
// through a split if the parent overflowed.
func (t *Tree) insertIntoParent(old *page, middleKey int32, newChild *page) {
	if old.isRoot() {
		newRoot := t.newPage(pageInternal, t.internalMaxSize, nil)
		newRoot.createNewRoot(old, middleKey, newChild)
		old.parent = newRoot
		newChild.parent = newRoot
		t.root = newRoot
		t.log.V(xlog.Debug).Info("bptree.split.newroot", "name", t.name, "page", newRoot.id)
		return
	}

	parent := old.parent
	newSize := parent.insertNodeAfter(old, middleKey, newChild)
	newChild.parent = parent

	// index 0 of an internal page is a sentinel, not a real key, so the
	// real key count is newSize-1.
	if newSize-1 < t.internalMaxSize {
		return
	}

	sibling := t.split(parent)
	siblingMiddleKey := sibling.keyAt(0)
	t.insertIntoParent(parent, siblingMiddleKey, sibling)
}

// coalesce merges cur into neighbor, always keeping the left-hand page of
// the pair as the survivor. index is cur's position in parent's entries;
// when it is 0, cur has no left sibling, so cur and neighbor swap roles and
// the separator removed from parent shifts to index 1.
func (t *Tree) coalesce(neighbor, cur *page, parent *page, index int) bool {
	keyIndex := index
	if index == 0 {
		keyIndex = 1
		cur, neighbor = neighbor, cur
	}

	middleKey := parent.keyAt(keyIndex)
	cur.moveAllTo(neighbor, middleKey)
	neighbor.nextLeaf = cur.nextLeaf
	parent.removeAt(keyIndex)

	return t.coalesceOrRedistribute(parent)
}

// redistribute rotates one entry across cur and neighbor to bring cur back
// up to min_size without a merge, then fixes up the parent separator.
func (t *Tree) redistribute(neighbor, cur, parent *page, index int) {
	if cur.isLeaf() {
		if index == 0 {
			neighbor.moveFirstToEndOf(cur, 0)
			parent.setKeyAt(1, neighbor.keyAt(0))
		} else {
			neighbor.moveLastToFrontOf(cur, 0)
			parent.setKeyAt(index, cur.keyAt(0))
		}
		return
	}

	if index == 0 {
		neighbor.moveFirstToEndOf(cur, parent.keyAt(1))
		parent.setKeyAt(1, neighbor.keyAt(0))
	} else {
		neighbor.moveLastToFrontOf(cur, parent.keyAt(index))
		parent.setKeyAt(index, cur.keyAt(0))
	}
}

// coalesceOrRedistribute restores cur's min_size invariant after a
// deletion shrank it below the threshold, reporting whether a page was
// removed from the tree as a result: a coalesce (which may drop either cur
// or its right sibling) or a root replacement or emptying.
func (t *Tree) coalesceOrRedistribute(cur *page) bool {
	if cur.isRoot() {
		return t.adjustRoot(cur)
	}

	if cur.size() >= cur.minSize() {
		return false
	}

	parent := cur.parent
	curIndex := parent.valueIndex(cur)
	invariant.Check(curIndex >= 0, "bptree: page missing from its parent's child list")

	siblingIndex := curIndex - 1
	if curIndex == 0 {
		siblingIndex = 1
	}
	sibling := parent.childAt(siblingIndex)

	// A leaf splits as soon as it reaches maxSize entries, so a merged leaf
	// must stay below that; an internal page may hold up to maxSize.
	limit := cur.maxSize
	if cur.isLeaf() {
		limit--
	}
	if cur.size()+sibling.size() > limit {
		t.redistribute(sibling, cur, parent, curIndex)
		return false
	}

	t.coalesce(sibling, cur, parent, curIndex)
	return true
}

// adjustRoot handles the two ways the root can degenerate after a
// deletion: an internal root left with a single child is replaced by that
// child, and an emptied leaf root leaves the tree empty.
func (t *Tree) adjustRoot(oldRoot *page) bool {
	if oldRoot.isInternal() && oldRoot.size() == 1 {
		onlyChild := oldRoot.childAt(0)
		onlyChild.parent = nil
		t.root = onlyChild
		return true
	}
	if oldRoot.isLeaf() && oldRoot.size() == 0 {
		t.root = nil
		return true
	}
	return false
}
