package btree

import "github.com/npillmayer/ropemetric/chunk"

// treeNode is either a *leafNode or an *innerNode.
type treeNode interface {
	isLeaf() bool
	total() chunk.Metric
}

// leafNode holds one metric per indexed chunk. Chunk spans are implicit:
// they are contiguous and ordered left to right.
type leafNode struct {
	chunks []chunk.Metric
}

func (l *leafNode) isLeaf() bool { return true }

func (l *leafNode) total() chunk.Metric {
	return chunk.Sum(l.chunks...)
}

// innerNode holds children and a parallel slice of cached subtree metrics.
// metrics[i] is the total of children[i], not a prefix sum.
type innerNode struct {
	children []treeNode
	metrics  []chunk.Metric
}

func (n *innerNode) isLeaf() bool { return false }

func (n *innerNode) total() chunk.Metric {
	return chunk.Sum(n.metrics...)
}
