// Package bptree implements a B+ tree index over int32 keys mapping to
// int32 values: point lookup, insertion with node splitting, deletion with
// coalesce-or-redistribute rebalancing, and in-order leaf iteration.
//
// Pages form a cyclic reference graph (parent ↔ child, leaf → next-leaf).
// Go's tracing collector makes plain pointers safe for this — one of the
// three strategies a memory-safe implementation can pick from — so pages
// are linked directly rather
// than addressed through an arena of indices. A page still carries a
// page_id, assigned once at allocation, purely so Print/Draw output can
// name a page stably.
package bptree

import "sort"

type pageKind int

const (
	pageLeaf pageKind = iota
	pageInternal
)

// entry is one (key, value) pair of a page. For an internal page, child is
// the routing target and value is unused; for a leaf page, value is the
// payload and child is nil. In an internal page, entries[0].key is a
// sentinel: it is written but never compared during descent.
type entry struct {
	key   int32
	child *page
	value int32
}

// page is the unified node record for both internal and leaf pages.
type page struct {
	id       uint64
	kind     pageKind
	maxSize  int
	entries  []entry
	parent   *page
	nextLeaf *page // leaf pages only
}

func newPage(id uint64, kind pageKind, maxSize int, parent *page) *page {
	return &page{id: id, kind: kind, maxSize: maxSize, parent: parent}
}

func (p *page) size() int { return len(p.entries) }

func (p *page) isRoot() bool     { return p.parent == nil }
func (p *page) isInternal() bool { return p.kind == pageInternal }
func (p *page) isLeaf() bool     { return p.kind == pageLeaf }

// minSize is the minimum legal entry count for this page.
func (p *page) minSize() int {
	switch {
	case p.isRoot() && p.isInternal():
		return 2
	case p.isRoot() && p.isLeaf():
		return 0
	case p.isInternal():
		return (p.maxSize + 1) / 2
	default: // non-root leaf
		return p.maxSize / 2
	}
}

func (p *page) keyAt(i int) int32       { return p.entries[i].key }
func (p *page) setKeyAt(i int, k int32) { p.entries[i].key = k }

// childAt returns the child page of an internal entry.
func (p *page) childAt(i int) *page { return p.entries[i].child }

// valueAt returns the payload value of a leaf entry.
func (p *page) valueAt(i int) int32 { return p.entries[i].value }

// keyIndex returns the lower-bound index of key among this page's keys:
// the smallest i with keyAt(i) >= key. On an internal page, index 0 holds
// the sentinel and is never compared, so the search starts at 1.
func (p *page) keyIndex(key int32) int {
	lo := 0
	if p.isInternal() {
		lo = 1
	}
	n := p.size()
	return lo + sort.Search(n-lo, func(i int) bool {
		return p.entries[lo+i].key >= key
	})
}

// valueIndex linearly searches an internal page for the entry whose child
// equals the given page, returning its index, or -1 if not found.
func (p *page) valueIndex(child *page) int {
	for i, e := range p.entries {
		if e.child == child {
			return i
		}
	}
	return -1
}

// lookupChild performs the internal-page descent search: the largest i
// with keyAt(i) <= key (searching from index 1, since index 0 is the
// sentinel), returning the child at that index.
func (p *page) lookupChild(key int32) *page {
	lo, hi := 1, p.size()
	idx := lo + sort.Search(hi-lo, func(i int) bool {
		return p.entries[lo+i].key > key
	})
	return p.entries[idx-1].child
}

// lookupValue performs the leaf-page point lookup.
func (p *page) lookupValue(key int32) (int32, bool) {
	i := p.keyIndex(key)
	if i == p.size() || p.keyAt(i) != key {
		return 0, false
	}
	return p.valueAt(i), true
}

// insertLeaf inserts (key, value) at key's lower-bound position. A
// duplicate key is a no-op; the caller detects this by comparing sizes
// before and after.
func (p *page) insertLeaf(key, value int32) {
	i := p.keyIndex(key)
	if i < p.size() && p.keyAt(i) == key {
		return
	}
	p.entries = append(p.entries, entry{})
	copy(p.entries[i+1:], p.entries[i:])
	p.entries[i] = entry{key: key, value: value}
}

// insertNodeAfter inserts (newKey, newChild) immediately after the entry
// whose child equals oldChild. Only valid on internal pages.
func (p *page) insertNodeAfter(oldChild *page, newKey int32, newChild *page) int {
	i := p.valueIndex(oldChild)
	p.entries = append(p.entries, entry{})
	copy(p.entries[i+2:], p.entries[i+1:])
	p.entries[i+1] = entry{key: newKey, child: newChild}
	return p.size()
}

// createNewRoot populates an empty internal page with (sentinel, oldChild)
// at index 0 and (middleKey, newChild) at index 1.
func (p *page) createNewRoot(oldChild *page, middleKey int32, newChild *page) {
	p.entries = append(p.entries, entry{child: oldChild}, entry{key: middleKey, child: newChild})
}

// removeAt erases the entry at index i.
func (p *page) removeAt(i int) {
	p.entries = append(p.entries[:i], p.entries[i+1:]...)
}

// removeAndDeleteRecord erases the entry whose key matches key; a no-op if
// key is absent. Only valid on leaf pages.
func (p *page) removeAndDeleteRecord(key int32) {
	i := p.keyIndex(key)
	if i != p.size() && p.keyAt(i) == key {
		p.removeAt(i)
	}
}

// splitStartIndex is the index the upper half of a splitting page starts
// at. It always uses the non-root minSize formula: a page being split is
// about to gain a parent (either an existing one, or a freshly created
// root), so by the time the split is visible to the rest of the tree it is
// never the root page that minSize's root case describes. Using p.minSize()
// directly here would read the *current*, pre-split root-ness of p and, for
// the very first split of the tree, hand recipient every entry instead of
// half of them.
func (p *page) splitStartIndex() int {
	if p.isInternal() {
		return (p.maxSize + 1) / 2
	}
	return p.maxSize / 2
}

// moveHalfTo transfers the upper half of p's entries to recipient,
// reparenting any moved children to recipient.
func (p *page) moveHalfTo(recipient *page) {
	start := p.splitStartIndex()
	moved := p.entries[start:]
	p.reparent(moved, recipient)
	recipient.entries = append(recipient.entries, moved...)
	p.entries = p.entries[:start:start]
}

// moveAllTo appends all of p's entries to recipient. On an internal page
// the sentinel at index 0 is overwritten with middleKey first, so it
// becomes a real separator in its new home.
func (p *page) moveAllTo(recipient *page, middleKey int32) {
	if p.isInternal() && p.size() > 0 {
		p.setKeyAt(0, middleKey)
	}
	p.reparent(p.entries, recipient)
	recipient.entries = append(recipient.entries, p.entries...)
	p.entries = nil
}

// moveFirstToEndOf rotates p's first entry to the end of recipient (used
// when redistributing from a right sibling into a left page).
func (p *page) moveFirstToEndOf(recipient *page, middleKey int32) {
	if p.isInternal() {
		p.setKeyAt(0, middleKey)
	}
	first := p.entries[0]
	p.entries = p.entries[1:]
	p.reparentOne(first, recipient)
	recipient.entries = append(recipient.entries, first)
}

// moveLastToFrontOf rotates p's last entry to the front of recipient (used
// when redistributing from a left sibling into a right page). For internal
// pages, recipient's sentinel at index 0 is rewritten to middleKey first,
// so the entry it displaces carries a well-defined separator key; for leaf
// pages recipient's index 0 holds real data and is left untouched.
func (p *page) moveLastToFrontOf(recipient *page, middleKey int32) {
	if p.isInternal() {
		recipient.setKeyAt(0, middleKey)
	}
	last := p.entries[len(p.entries)-1]
	p.entries = p.entries[:len(p.entries)-1]
	p.reparentOne(last, recipient)

	shifted := make([]entry, 0, len(recipient.entries)+1)
	shifted = append(shifted, last)
	shifted = append(shifted, recipient.entries...)
	recipient.entries = shifted
}

func (p *page) reparent(entries []entry, recipient *page) {
	if !p.isInternal() {
		return
	}
	for _, e := range entries {
		e.child.parent = recipient
	}
}

func (p *page) reparentOne(e entry, recipient *page) {
	if p.isInternal() {
		e.child.parent = recipient
	}
}
