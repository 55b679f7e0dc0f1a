package bptree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInsertLeafOrdering(t *testing.T) {
	t.Parallel()

	p := newPage(1, pageLeaf, 4, nil)
	p.insertLeaf(3, 30)
	p.insertLeaf(1, 10)
	p.insertLeaf(2, 20)

	require.Equal(t, 3, p.size())
	require.Equal(t, []int32{1, 2, 3}, []int32{p.keyAt(0), p.keyAt(1), p.keyAt(2)})
}

func TestInsertLeafDuplicateIsNoOp(t *testing.T) {
	t.Parallel()

	p := newPage(1, pageLeaf, 4, nil)
	p.insertLeaf(1, 10)
	p.insertLeaf(1, 999)

	require.Equal(t, 1, p.size())
	value, ok := p.lookupValue(1)
	require.True(t, ok)
	require.Equal(t, int32(10), value)
}

func TestLookupValueMissing(t *testing.T) {
	t.Parallel()

	p := newPage(1, pageLeaf, 4, nil)
	p.insertLeaf(1, 10)

	_, ok := p.lookupValue(2)
	require.False(t, ok)
}

func TestMoveHalfToLeafSplitsEvenly(t *testing.T) {
	t.Parallel()

	p := newPage(1, pageLeaf, 4, nil)
	p.insertLeaf(1, 10)
	p.insertLeaf(2, 20)
	p.insertLeaf(3, 30)
	p.insertLeaf(4, 40)

	sibling := newPage(2, pageLeaf, 4, nil)
	p.moveHalfTo(sibling)

	require.Equal(t, 2, p.size())
	require.Equal(t, 2, sibling.size())
	require.Equal(t, int32(3), sibling.keyAt(0))
}

func TestMoveLastToFrontOfLeafLeavesDonorKeyIntact(t *testing.T) {
	t.Parallel()

	left := newPage(1, pageLeaf, 4, nil)
	left.insertLeaf(1, 10)
	left.insertLeaf(2, 20)

	right := newPage(2, pageLeaf, 4, nil)
	right.insertLeaf(5, 50)

	left.moveLastToFrontOf(right, 0)

	require.Equal(t, []int32{1}, []int32{left.keyAt(0)})
	require.Equal(t, []int32{2, 5}, []int32{right.keyAt(0), right.keyAt(1)})
}

func TestMoveLastToFrontOfInternalRewritesSentinel(t *testing.T) {
	t.Parallel()

	leftChildA := newPage(10, pageLeaf, 4, nil)
	leftChildB := newPage(11, pageLeaf, 4, nil)
	rightChildA := newPage(12, pageLeaf, 4, nil)

	left := newPage(1, pageInternal, 4, nil)
	left.createNewRoot(leftChildA, 5, leftChildB)

	right := newPage(2, pageInternal, 4, nil)
	right.entries = append(right.entries, entry{child: rightChildA})

	left.moveLastToFrontOf(right, 9)

	require.Equal(t, 1, left.size())
	require.Equal(t, 2, right.size())
	// The rotated entry keeps its own key at index 0; the rewritten
	// sentinel-turned-separator (9) shifts down to index 1, becoming the
	// separator in front of the page that used to be the sole entry.
	require.Equal(t, int32(9), right.keyAt(1))
	require.Same(t, leftChildB, right.childAt(0))
	require.Same(t, rightChildA, right.childAt(1))
	require.Same(t, right, leftChildB.parent)
}

func TestLookupChildDescendsToLargestKeyBelow(t *testing.T) {
	t.Parallel()

	c0 := newPage(1, pageLeaf, 4, nil)
	c1 := newPage(2, pageLeaf, 4, nil)
	c2 := newPage(3, pageLeaf, 4, nil)

	p := newPage(4, pageInternal, 4, nil)
	p.createNewRoot(c0, 10, c1)
	p.insertNodeAfter(c1, 20, c2)

	require.Same(t, c0, p.lookupChild(5))
	require.Same(t, c1, p.lookupChild(10))
	require.Same(t, c1, p.lookupChild(15))
	require.Same(t, c2, p.lookupChild(20))
	require.Same(t, c2, p.lookupChild(100))
}
