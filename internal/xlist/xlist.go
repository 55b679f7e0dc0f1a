// Package xlist implements the intrusive doubly-linked list used as the
// LRU order list and as an LFU frequency bucket. All operations are O(1).
//
// Generic over key and value, with Next/Prev node traversal, so the same
// list type serves callers that also index nodes elsewhere (the LFU key
// index and frequency map).
package xlist

// Node is one entry of a List. Key and Value are the caller's payload;
// next/prev are the list's own bookkeeping and are nil exactly when the
// node is not currently a member of any list.
type Node[K comparable, V any] struct {
	Key   K
	Value V

	next     *Node[K, V]
	prev     *Node[K, V]
	sentinel bool
}

// Next returns the node following n in its list, or nil if n is the last
// node (or the node has been removed from its list).
func (n *Node[K, V]) Next() *Node[K, V] {
	if n.next == nil || n.next.sentinel {
		return nil
	}
	return n.next
}

// Prev returns the node preceding n in its list, or nil if n is the first
// node (or the node has been removed from its list).
func (n *Node[K, V]) Prev() *Node[K, V] {
	if n.prev == nil || n.prev.sentinel {
		return nil
	}
	return n.prev
}

// List is a doubly-linked list with a sentinel node, so push/pop never
// need to special-case an empty list.
type List[K comparable, V any] struct {
	sentinel Node[K, V]
	size     int
}

// New returns an empty list ready for use.
func New[K comparable, V any]() *List[K, V] {
	l := &List[K, V]{}
	l.sentinel.sentinel = true
	l.sentinel.next = &l.sentinel
	l.sentinel.prev = &l.sentinel
	return l
}

// Len returns the number of nodes currently in the list.
func (l *List[K, V]) Len() int { return l.size }

// IsEmpty reports whether the list has no nodes.
func (l *List[K, V]) IsEmpty() bool { return l.size == 0 }

// Front returns the oldest node in the list, or nil if the list is empty.
func (l *List[K, V]) Front() *Node[K, V] {
	if l.IsEmpty() {
		return nil
	}
	return l.sentinel.next
}

// Back returns the newest node in the list, or nil if the list is empty.
func (l *List[K, V]) Back() *Node[K, V] {
	if l.IsEmpty() {
		return nil
	}
	return l.sentinel.prev
}

// PushBack appends node at the tail of the list. node must not already be a
// member of any list.
func (l *List[K, V]) PushBack(node *Node[K, V]) {
	tail := l.sentinel.prev
	tail.next = node
	node.prev = tail
	node.next = &l.sentinel
	l.sentinel.prev = node
	l.size++
}

// PopFront removes and returns the head of the list, or nil if the list is
// empty. The returned node's links are cleared so it can be reinserted
// elsewhere.
func (l *List[K, V]) PopFront() *Node[K, V] {
	if l.IsEmpty() {
		return nil
	}
	node := l.sentinel.next
	l.Remove(node)
	return node
}

// Remove splices node out of the list by its own prev/next links. The
// caller guarantees node is a member of this list.
func (l *List[K, V]) Remove(node *Node[K, V]) {
	node.prev.next = node.next
	node.next.prev = node.prev
	node.prev = nil
	node.next = nil
	l.size--
}
