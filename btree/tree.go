package btree

import (
	"fmt"
	"math"

	"github.com/npillmayer/ropemetric/chunk"
)

// Tree is a B+ sum-tree over the chunk metrics of a text buffer.
//
// Every leaf sits at the same depth. The zero value is not usable, create
// trees with New or FromChunks.
type Tree struct {
	cfg    Config
	root   treeNode
	height int // 1 means a leaf root
}

// New creates an empty tree, consisting of a single empty leaf.
func New(cfg Config) (*Tree, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t := &Tree{cfg: cfg.normalized(), height: 1}
	t.root = t.makeLeaf(nil)
	return t, nil
}

// FromChunks bulk-loads a tree from chunk metrics, given in buffer order.
//
// Chunks are packed into leaves of at most 2t-1 chunks and the leaves are
// grouped into parents of at most 2t children, layer by layer, until a single
// root remains. Groups are sized evenly, so no node is underfull. A gap chunk
// is packed into a leaf together with its neighbours, like any other chunk.
func FromChunks(cfg Config, chunks []chunk.Metric) (*Tree, error) {
	t, err := New(cfg)
	if err != nil {
		return nil, err
	}
	var total chunk.Metric
	for i, c := range chunks {
		if !c.Valid() || c.Bytes == 0 {
			return nil, fmt.Errorf("%w: chunk #%d is malformed: %v", ErrInvalidArgument, i, c)
		}
		var ok bool
		if total, ok = addChecked(total, c); !ok {
			return nil, fmt.Errorf("%w: total metric overflows at chunk #%d", ErrInvalidArgument, i)
		}
	}
	if len(chunks) == 0 {
		return t, nil
	}
	layer := make([]treeNode, 0, len(chunks)/t.cfg.minLeafChunks()+1)
	for _, g := range partition(len(chunks), t.cfg.maxLeafChunks()) {
		layer = append(layer, t.makeLeaf(chunks[g[0]:g[1]]))
	}
	height := 1
	for len(layer) > 1 {
		parents := make([]treeNode, 0, len(layer)/t.cfg.minChildren()+1)
		for _, g := range partition(len(layer), t.cfg.maxChildren()) {
			parents = append(parents, t.makeInternal(layer[g[0]:g[1]]...))
		}
		layer = parents
		height++
	}
	t.root, t.height = layer[0], height
	tracer().Debugf("btree: loaded %d chunks, total=%v, height=%d", len(chunks), total, height)
	return t, nil
}

// Config returns the effective configuration of the tree.
func (t *Tree) Config() Config {
	return t.cfg
}

// Total returns the summed metric over all chunks.
func (t *Tree) Total() chunk.Metric {
	if t == nil || t.root == nil {
		return chunk.Zero()
	}
	return t.root.total()
}

// Height returns the number of levels, where 1 means a leaf root.
func (t *Tree) Height() int {
	if t == nil {
		return 0
	}
	return t.height
}

// Len returns the number of chunks.
func (t *Tree) Len() int {
	n := 0
	t.ForEachChunk(func(chunk.Metric) bool {
		n++
		return true
	})
	return n
}

// IsEmpty reports whether the tree indexes no chunks.
func (t *Tree) IsEmpty() bool {
	if t == nil || t.root == nil {
		return true
	}
	leaf, ok := t.root.(*leafNode)
	return ok && len(leaf.chunks) == 0
}

// Insert grows the chunk covering byte offset by delta.
//
// Offsets on a chunk border belong to the chunk on the left. Inserting into an
// empty tree at offset 0 creates its first chunk. A zero delta is a no-op.
// On error the tree is left unchanged.
func (t *Tree) Insert(offset int, delta chunk.Metric) error {
	if err := t.checkOffset(offset); err != nil {
		return err
	}
	if err := t.checkDelta(delta); err != nil {
		return err
	}
	if delta.IsZero() {
		return nil
	}
	if t.IsEmpty() {
		return t.InsertChunk(offset, delta)
	}
	return t.edit(offset, delta, func(leaf *leafNode, slot, _ int) {
		leaf.chunks[slot] = leaf.chunks[slot].Add(delta)
	})
}

// InsertChunk adds m as a new chunk at byte offset, which has to be a chunk
// border (or 0 for an empty tree). m must not be empty.
// On error the tree is left unchanged.
func (t *Tree) InsertChunk(offset int, m chunk.Metric) error {
	if err := t.checkOffset(offset); err != nil {
		return err
	}
	if err := t.checkDelta(m); err != nil {
		return err
	}
	if m.Bytes == 0 {
		return fmt.Errorf("%w: chunk must not be empty", ErrInvalidArgument)
	}
	if t.IsEmpty() {
		leaf := t.root.(*leafNode)
		leaf.chunks = append(leaf.chunks, m)
		return nil
	}
	loc, err := t.Search(offset)
	if err != nil {
		return err
	}
	if loc.Offset != 0 && loc.Offset != loc.Chunk.Bytes {
		return fmt.Errorf("%w: offset %d is inside chunk %v", ErrInvalidArgument, offset, loc.Chunk)
	}
	return t.edit(offset, m, func(leaf *leafNode, slot, residual int) {
		if residual > 0 {
			slot++
		}
		leaf.chunks = insertAt(leaf.chunks, slot, m)
	})
}

// SplitChunk cuts the chunk containing byte offset in two. The offset must lie
// strictly inside the chunk, and leftChars is the number of characters in
// front of it, as counted by the owner of the buffer. Both parts have to be
// valid metrics. The total is not changed.
// On error the tree is left unchanged.
func (t *Tree) SplitChunk(offset, leftChars int) error {
	loc, err := t.Search(offset)
	if err != nil {
		return err
	}
	if loc.Offset == 0 || loc.Offset == loc.Chunk.Bytes {
		return fmt.Errorf("%w: offset %d is a chunk border", ErrInvalidArgument, offset)
	}
	left := chunk.Metric{Bytes: loc.Offset, Chars: leftChars}
	right := chunk.Metric{Bytes: loc.Chunk.Bytes - loc.Offset, Chars: loc.Chunk.Chars - leftChars}
	if !left.Valid() || !right.Valid() {
		return fmt.Errorf("%w: cannot split %v into %v and %v",
			ErrInvalidArgument, loc.Chunk, left, right)
	}
	return t.edit(offset, chunk.Zero(), func(leaf *leafNode, slot, _ int) {
		leaf.chunks[slot] = left
		leaf.chunks = insertAt(leaf.chunks, slot+1, right)
	})
}

func (t *Tree) checkOffset(offset int) error {
	if total := t.Total().Bytes; offset < 0 || offset > total {
		return fmt.Errorf("%w: byte offset %d not in [0, %d]", ErrOutOfRange, offset, total)
	}
	return nil
}

func (t *Tree) checkDelta(delta chunk.Metric) error {
	if !delta.Valid() {
		tracer().Errorf("btree: rejecting malformed metric %v", delta)
		return fmt.Errorf("%w: malformed metric %v", ErrInvalidArgument, delta)
	}
	if _, ok := addChecked(t.Total(), delta); !ok {
		return fmt.Errorf("%w: total metric would overflow", ErrInvalidArgument)
	}
	return nil
}

// addChecked adds two non-negative metrics, reporting false on overflow.
func addChecked(a, b chunk.Metric) (chunk.Metric, bool) {
	if a.Bytes > math.MaxInt-b.Bytes || a.Chars > math.MaxInt-b.Chars {
		return a, false
	}
	return a.Add(b), true
}
