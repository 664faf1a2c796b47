package btree

import (
	"fmt"

	"github.com/npillmayer/ropemetric/chunk"
)

// Check validates the structural tree invariants:
//   - all leaves are at the same depth, matching Height(),
//   - leaf and internal node occupancy is within bounds,
//   - every cached metric equals the recomputed sum over its subtree,
//   - every chunk is a valid, non-empty metric.
//
// Violations are reported wrapping ErrInvariantViolation.
func (t *Tree) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrInvariantViolation)
	}
	if t.root == nil {
		return fmt.Errorf("%w: tree without root", ErrInvariantViolation)
	}
	if t.height <= 0 {
		return fmt.Errorf("%w: height must be positive, is %d", ErrInvariantViolation, t.height)
	}
	_, height, err := t.checkNode(t.root, true)
	if err != nil {
		return err
	}
	if height != t.height {
		return fmt.Errorf("%w: height mismatch (%d != %d)", ErrInvariantViolation, height, t.height)
	}
	return nil
}

// checkNode returns the recomputed total and height of subtree n.
func (t *Tree) checkNode(n treeNode, isRoot bool) (chunk.Metric, int, error) {
	switch n := n.(type) {
	case *leafNode:
		if n == nil {
			return chunk.Metric{}, 0, fmt.Errorf("%w: nil leaf node", ErrInvariantViolation)
		}
		if err := t.checkLeaf(n, isRoot); err != nil {
			return chunk.Metric{}, 0, err
		}
		return n.total(), 1, nil
	case *innerNode:
		if n == nil {
			return chunk.Metric{}, 0, fmt.Errorf("%w: nil internal node", ErrInvariantViolation)
		}
		return t.checkInner(n, isRoot)
	}
	return chunk.Metric{}, 0, fmt.Errorf("%w: unknown node type %T", ErrInvariantViolation, n)
}

func (t *Tree) checkLeaf(leaf *leafNode, isRoot bool) error {
	count := len(leaf.chunks)
	if count > t.cfg.maxLeafChunks() {
		return fmt.Errorf("%w: leaf holds %d chunks, max is %d",
			ErrInvariantViolation, count, t.cfg.maxLeafChunks())
	}
	if !isRoot && count < t.cfg.minLeafChunks() {
		return fmt.Errorf("%w: leaf holds %d chunks, min is %d",
			ErrInvariantViolation, count, t.cfg.minLeafChunks())
	}
	for i, c := range leaf.chunks {
		if !c.Valid() || c.Bytes == 0 {
			return fmt.Errorf("%w: malformed chunk #%d %v", ErrInvariantViolation, i, c)
		}
	}
	return nil
}

func (t *Tree) checkInner(inner *innerNode, isRoot bool) (chunk.Metric, int, error) {
	count := len(inner.children)
	if count != len(inner.metrics) {
		return chunk.Metric{}, 0, fmt.Errorf("%w: %d children but %d cached metrics",
			ErrInvariantViolation, count, len(inner.metrics))
	}
	min := t.cfg.minChildren()
	if isRoot {
		min = 2
	}
	if count < min || count > t.cfg.maxChildren() {
		return chunk.Metric{}, 0, fmt.Errorf("%w: internal node has %d children, want [%d, %d]",
			ErrInvariantViolation, count, min, t.cfg.maxChildren())
	}
	var total chunk.Metric
	var childHeight int
	for i, child := range inner.children {
		if child == nil {
			return chunk.Metric{}, 0, fmt.Errorf("%w: nil child at index %d", ErrInvariantViolation, i)
		}
		sum, h, err := t.checkNode(child, false)
		if err != nil {
			return chunk.Metric{}, 0, err
		}
		if sum != inner.metrics[i] {
			return chunk.Metric{}, 0, fmt.Errorf("%w: cached metric %v of child #%d, recomputed %v",
				ErrInvariantViolation, inner.metrics[i], i, sum)
		}
		if i == 0 {
			childHeight = h
		} else if h != childHeight {
			return chunk.Metric{}, 0, fmt.Errorf("%w: non-uniform subtree heights", ErrInvariantViolation)
		}
		total = total.Add(sum)
	}
	return total, childHeight + 1, nil
}
