package btree

import (
	"fmt"

	"github.com/npillmayer/ropemetric/chunk"
)

// leafEdit mutates the chunk at slot of a leaf, residual being the offset
// within that chunk. It is called only after all validation has passed.
type leafEdit func(leaf *leafNode, slot, residual int)

func (t *Tree) leafOverflow(leaf *leafNode) bool {
	return leaf != nil && len(leaf.chunks) > t.cfg.maxLeafChunks()
}

func (t *Tree) innerOverflow(inner *innerNode) bool {
	return inner != nil && len(inner.children) > t.cfg.maxChildren()
}

// edit routes offset to its chunk, applies fn there and refreshes the cached
// metrics on the path back up. delta is the net change of the total metric
// caused by fn.
//
// A root split is the only place the tree grows in height.
func (t *Tree) edit(offset int, delta chunk.Metric, fn leafEdit) error {
	sibling, err := t.editNode(t.root, offset, delta, fn)
	if err != nil {
		return err
	}
	if sibling != nil {
		t.root = t.makeInternal(t.root, sibling)
		t.height++
		tracer().Debugf("btree: root split, height is now %d", t.height)
	}
	return nil
}

// editNode recursively applies fn within subtree n.
//
// If n overflows it is split in place; n keeps the left half and the new
// right sibling is returned to the caller, which has to insert it into its own
// children. All error returns happen before anything has been mutated.
func (t *Tree) editNode(n treeNode, offset int, delta chunk.Metric, fn leafEdit) (treeNode, error) {
	switch n := n.(type) {
	case *leafNode:
		slot, residual, _ := route(n.chunks, chunk.ByteDimension{}, offset)
		if slot < 0 || residual > n.chunks[slot].Bytes {
			return nil, fmt.Errorf("%w: offset %d exceeds leaf", ErrInvariantViolation, offset)
		}
		fn(n, slot, residual)
		if !t.leafOverflow(n) {
			return nil, nil
		}
		return t.splitLeaf(n), nil
	case *innerNode:
		slot, residual, _ := route(n.metrics, chunk.ByteDimension{}, offset)
		if slot < 0 {
			return nil, fmt.Errorf("%w: internal node without children", ErrInvariantViolation)
		}
		sibling, err := t.editNode(n.children[slot], residual, delta, fn)
		if err != nil {
			return nil, err
		}
		if sibling == nil {
			n.metrics[slot] = n.metrics[slot].Add(delta)
			return nil, nil
		}
		n.metrics[slot] = n.children[slot].total()
		t.insertChildAt(n, slot+1, sibling)
		if !t.innerOverflow(n) {
			return nil, nil
		}
		return t.splitInner(n), nil
	}
	return nil, fmt.Errorf("%w: unknown node type %T", ErrInvariantViolation, n)
}

// splitLeaf splits an overflowing leaf at its midpoint. The leaf keeps the
// left ceil(n/2) chunks, the returned sibling holds the right floor(n/2).
func (t *Tree) splitLeaf(leaf *leafNode) *leafNode {
	assert(leaf != nil, "splitLeaf called with nil leaf")
	n := len(leaf.chunks)
	mid := (n + 1) / 2
	right := t.makeLeaf(leaf.chunks[mid:])
	clear(leaf.chunks[mid:])
	leaf.chunks = leaf.chunks[:mid]
	assert(len(leaf.chunks) >= t.cfg.minLeafChunks() && len(right.chunks) >= t.cfg.minLeafChunks(),
		"splitLeaf violates leaf occupancy bounds")
	tracer().Debugf("btree: split leaf of %d chunks into %d + %d", n, len(leaf.chunks), len(right.chunks))
	return right
}

// splitInner splits an overflowing internal node at its midpoint, the same
// way splitLeaf does for leaves.
func (t *Tree) splitInner(inner *innerNode) *innerNode {
	assert(inner != nil, "splitInner called with nil inner node")
	n := len(inner.children)
	mid := (n + 1) / 2
	right := t.makeInternal(inner.children[mid:]...)
	clear(inner.children[mid:])
	inner.children = inner.children[:mid]
	inner.metrics = inner.metrics[:mid]
	assert(len(inner.children) >= t.cfg.minChildren() && len(right.children) >= t.cfg.minChildren(),
		"splitInner violates internal occupancy bounds")
	tracer().Debugf("btree: split inner node of %d children into %d + %d", n, len(inner.children), len(right.children))
	return right
}
