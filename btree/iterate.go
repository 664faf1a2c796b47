package btree

import "github.com/npillmayer/ropemetric/chunk"

// ForEachChunk walks chunk metrics in buffer order.
//
// Iteration stops early if callback returns false.
func (t *Tree) ForEachChunk(fn func(m chunk.Metric) bool) {
	if t == nil || t.root == nil || fn == nil {
		return
	}
	forEachChunkNode(t.root, fn)
}

func forEachChunkNode(n treeNode, fn func(m chunk.Metric) bool) bool {
	assert(n != nil, "forEachChunkNode called with nil node")
	switch n := n.(type) {
	case *leafNode:
		for _, m := range n.chunks {
			if !fn(m) {
				return false
			}
		}
	case *innerNode:
		for _, child := range n.children {
			if !forEachChunkNode(child, fn) {
				return false
			}
		}
	}
	return true
}

// Chunks returns all chunk metrics in buffer order.
func (t *Tree) Chunks() []chunk.Metric {
	var chunks []chunk.Metric
	t.ForEachChunk(func(m chunk.Metric) bool {
		chunks = append(chunks, m)
		return true
	})
	return chunks
}

// eachNode walks the tree in pre-order, passing each node with its depth
// (root is 0) and the byte offset at which its subtree starts.
func (t *Tree) eachNode(fn func(n treeNode, depth, pos int)) {
	if t == nil || t.root == nil {
		return
	}
	var walk func(n treeNode, depth, pos int)
	walk = func(n treeNode, depth, pos int) {
		fn(n, depth, pos)
		if inner, ok := n.(*innerNode); ok {
			for i, child := range inner.children {
				walk(child, depth+1, pos)
				pos += inner.metrics[i].Bytes
			}
		}
	}
	walk(t.root, 0, 0)
}
