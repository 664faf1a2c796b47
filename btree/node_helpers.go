package btree

import "github.com/npillmayer/ropemetric/chunk"

// makeLeaf materializes a new leaf owning a copy of chunks.
func (t *Tree) makeLeaf(chunks []chunk.Metric) *leafNode {
	assert(len(chunks) <= t.cfg.maxLeafChunks()+1, "makeLeaf exceeds leaf capacity")
	return &leafNode{
		chunks: append(make([]chunk.Metric, 0, t.cfg.maxLeafChunks()+1), chunks...),
	}
}

// makeInternal materializes a new internal node and computes the cached
// metric of every child.
func (t *Tree) makeInternal(children ...treeNode) *innerNode {
	assert(len(children) <= t.cfg.maxChildren()+1, "makeInternal exceeds node capacity")
	inner := &innerNode{
		children: make([]treeNode, 0, t.cfg.maxChildren()+1),
		metrics:  make([]chunk.Metric, 0, t.cfg.maxChildren()+1),
	}
	for _, child := range children {
		assert(child != nil, "makeInternal called with nil child")
		inner.children = append(inner.children, child)
		inner.metrics = append(inner.metrics, child.total())
	}
	return inner
}

// insertAt inserts a value into a slice at idx, in place if capacity allows.
func insertAt[T any](src []T, idx int, value T) []T {
	assert(idx >= 0 && idx <= len(src), "insertAt index out of range")
	var zero T
	src = append(src, zero)
	copy(src[idx+1:], src[idx:])
	src[idx] = value
	return src
}

func (t *Tree) insertChildAt(inner *innerNode, idx int, child treeNode) {
	assert(inner != nil, "insertChildAt called with nil inner node")
	assert(child != nil, "insertChildAt called with nil child")
	inner.children = insertAt(inner.children, idx, child)
	inner.metrics = insertAt(inner.metrics, idx, child.total())
}

// partition cuts n items into the fewest groups of at most max items each,
// with group sizes differing by at most one. Groups are returned as
// half-open index intervals.
//
// If more than one group is needed and max is 2t-1 or 2t, every group holds
// at least t items.
func partition(n, max int) [][2]int {
	assert(max > 0, "partition called with non-positive group size")
	if n == 0 {
		return nil
	}
	k := (n + max - 1) / max
	groups := make([][2]int, 0, k)
	from := 0
	for i := range k {
		size := n / k
		if i < n%k {
			size++
		}
		groups = append(groups, [2]int{from, from + size})
		from += size
	}
	return groups
}
