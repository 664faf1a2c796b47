package btree

import (
	"fmt"

	"github.com/npillmayer/ropemetric/chunk"
)

// Location is the result of a search: the chunk covering an offset.
type Location struct {
	Chunk  chunk.Metric // metric of the covering chunk
	Slot   int          // index of the chunk within its leaf
	Offset int          // residual offset within the chunk, in the searched dimension
	Before chunk.Metric // summed metric of all chunks left of the covering one
}

// Start returns the byte offset at which the located chunk starts.
func (loc Location) Start() int {
	return loc.Before.Bytes
}

// Search finds the chunk covering a byte offset in [0, Total().Bytes].
// An offset on a chunk border resolves to the chunk on its left, thus
// Search(Total().Bytes) yields the end of the last chunk.
func (t *Tree) Search(offset int) (Location, error) {
	return t.Seek(chunk.ByteDimension{}, offset)
}

// Seek generalizes Search to any metric dimension, e.g. chunk.CharDimension.
func (t *Tree) Seek(dim chunk.Dimension, target int) (Location, error) {
	if t.IsEmpty() {
		return Location{}, fmt.Errorf("%w: tree is empty", ErrOutOfRange)
	}
	if total := dim.Of(t.Total()); target < 0 || target > total {
		return Location{}, fmt.Errorf("%w: offset %d not in [0, %d]", ErrOutOfRange, target, total)
	}
	var loc Location
	remaining := target
	n := t.root
	for {
		switch node := n.(type) {
		case *leafNode:
			slot, residual, before := route(node.chunks, dim, remaining)
			assert(slot >= 0, "Seek reached an empty leaf")
			loc.Chunk = node.chunks[slot]
			loc.Slot = slot
			loc.Offset = residual
			loc.Before = loc.Before.Add(before)
			return loc, nil
		case *innerNode:
			slot, residual, before := route(node.metrics, dim, remaining)
			assert(slot >= 0, "Seek reached an internal node without children")
			loc.Before = loc.Before.Add(before)
			remaining = residual
			n = node.children[slot]
		default:
			return Location{}, fmt.Errorf("%w: unknown node type %T", ErrInvariantViolation, n)
		}
	}
}

// route scans metrics left to right and returns the first slot whose weight
// in dim covers remaining, together with the residual offset into that slot
// and the summed metric of all slots left of it. The last slot is taken if
// nothing else covers remaining. An empty slice yields slot -1.
func route(metrics []chunk.Metric, dim chunk.Dimension, remaining int) (int, int, chunk.Metric) {
	var before chunk.Metric
	last := len(metrics) - 1
	for i, m := range metrics {
		w := dim.Of(m)
		if remaining <= w || i == last {
			return i, remaining, before
		}
		remaining -= w
		before = before.Add(m)
	}
	return -1, remaining, before
}
