package ropemetric

import (
	"fmt"
	"io"

	"github.com/npillmayer/ropemetric/btree"
	"github.com/npillmayer/ropemetric/chunk"
)

// Rope is a metric index over the chunks of an externally owned text buffer.
//
// Byte offsets used with a Rope are offsets into the buffer, with the gap
// counting as buffer content. The zero value is not usable, create ropes with
// Build or a Builder.
type Rope struct {
	tree             *btree.Tree
	cfg              Config
	gapStart, gapEnd int
}

// Build indexes buf, with buf[gapStart:gapEnd] being a gap. The text before
// and after the gap is cut into chunks of cfg.ChunkSize bytes, extended
// forward where a cut would split a character; the gap becomes a chunk of
// its own, unless it is empty.
//
// buf is read during Build only and not retained.
func Build(buf []byte, gapStart, gapEnd int, cfg Config) (*Rope, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.normalized()
	if gapStart < 0 || gapStart > gapEnd || gapEnd > len(buf) {
		tracer().Errorf("rope build: invalid gap [%d, %d) for buffer of length %d", gapStart, gapEnd, len(buf))
		return nil, fmt.Errorf("%w: gap [%d, %d) for buffer of length %d",
			ErrInvalidArgument, gapStart, gapEnd, len(buf))
	}
	scanner, err := chunk.NewScanner(cfg.ChunkSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	chunks := make([]chunk.Metric, 0, len(buf)/cfg.ChunkSize+2)
	emit := func(m chunk.Metric) { chunks = append(chunks, m) }
	scanner.Feed(buf[:gapStart], emit)
	scanner.Flush(emit)
	if gapEnd > gapStart {
		chunks = append(chunks, chunk.Gap(gapEnd-gapStart))
	}
	scanner.Feed(buf[gapEnd:], emit)
	scanner.Flush(emit)
	return fromChunks(cfg, chunks, gapStart, gapEnd)
}

func fromChunks(cfg Config, chunks []chunk.Metric, gapStart, gapEnd int) (*Rope, error) {
	tree, err := btree.FromChunks(cfg.tree(), chunks)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("rope: %d chunks, total %v, height %d", len(chunks), tree.Total(), tree.Height())
	return &Rope{tree: tree, cfg: cfg, gapStart: gapStart, gapEnd: gapEnd}, nil
}

// Config returns the effective configuration of the rope.
func (r *Rope) Config() Config {
	return r.cfg
}

// Gap returns the gap region as it was at build time. For a rope without a
// gap, start and end are equal.
func (r *Rope) Gap() (start, end int) {
	return r.gapStart, r.gapEnd
}

// Total returns the summed metric of the whole buffer, including the gap.
func (r *Rope) Total() chunk.Metric {
	return r.tree.Total()
}

// Len returns the number of chunks.
func (r *Rope) Len() int {
	return r.tree.Len()
}

// Height returns the height of the underlying tree, 1 meaning a single leaf.
func (r *Rope) Height() int {
	return r.tree.Height()
}

// Search finds the chunk covering byte offset, which has to be in
// [0, Total().Bytes]. An offset on a chunk border resolves to the chunk on
// its left.
func (r *Rope) Search(offset int) (btree.Location, error) {
	return r.tree.Search(offset)
}

// Seek finds the chunk covering an offset in the given dimension.
func (r *Rope) Seek(dim chunk.Dimension, offset int) (btree.Location, error) {
	return r.tree.Seek(dim, offset)
}

// Insert records that the owner of the buffer grew the chunk covering byte
// offset by delta, e.g. by inserting text measured with chunk.Measure.
// On error the rope is left unchanged.
func (r *Rope) Insert(offset int, delta chunk.Metric) error {
	if err := r.tree.Insert(offset, delta); err != nil {
		tracer().Debugf("rope insert at %d: %v", offset, err)
		return err
	}
	return nil
}

// InsertChunk records a new chunk at a chunk border.
// On error the rope is left unchanged.
func (r *Rope) InsertChunk(offset int, m chunk.Metric) error {
	return r.tree.InsertChunk(offset, m)
}

// SplitChunk cuts the chunk containing byte offset in two, leftChars being
// the number of characters in front of offset within that chunk.
// On error the rope is left unchanged.
func (r *Rope) SplitChunk(offset, leftChars int) error {
	return r.tree.SplitChunk(offset, leftChars)
}

// ForEachChunk walks chunk metrics in buffer order, until fn returns false.
func (r *Rope) ForEachChunk(fn func(m chunk.Metric) bool) {
	r.tree.ForEachChunk(fn)
}

// Chunks returns all chunk metrics in buffer order.
func (r *Rope) Chunks() []chunk.Metric {
	return r.tree.Chunks()
}

// Check validates the structural invariants of the underlying tree.
func (r *Rope) Check() error {
	return r.tree.Check()
}

// Dot writes the structure of the rope in Graphviz DOT format.
func (r *Rope) Dot(w io.Writer) error {
	return r.tree.Dot(w)
}

// Verify checks a rope against the buffer it indexes: chunks have to cover
// buf exactly, the gap has to be a single chunk without characters, every
// chunk has to hold the characters it claims, and no chunk border may fall
// inside a character. Text regions themselves start at offset 0 and at
// gapEnd, and are not checked for alignment at their start.
func (r *Rope) Verify(buf []byte, gapStart, gapEnd int) error {
	if total := r.Total(); total.Bytes != len(buf) {
		return fmt.Errorf("%w: rope spans %d bytes, buffer has %d", ErrInvariantViolation, total.Bytes, len(buf))
	}
	var err error
	pos, i := 0, 0
	r.ForEachChunk(func(m chunk.Metric) bool {
		end := pos + m.Bytes
		switch {
		case pos < gapEnd && end > gapStart: // overlaps gap
			if pos != gapStart || end != gapEnd || m.Chars != 0 {
				err = fmt.Errorf("%w: chunk #%d [%d, %d) does not match gap [%d, %d)",
					ErrInvariantViolation, i, pos, end, gapStart, gapEnd)
			}
		case m.Chars != chunk.CountChars(buf[pos:end]):
			err = fmt.Errorf("%w: chunk #%d [%d, %d) claims %d characters, holds %d",
				ErrInvariantViolation, i, pos, end, m.Chars, chunk.CountChars(buf[pos:end]))
		case pos != 0 && pos != gapEnd && !chunk.IsCharBoundary(buf[pos]):
			err = fmt.Errorf("%w: chunk #%d starts inside a character at %d", ErrInvariantViolation, i, pos)
		}
		pos, i = end, i+1
		return err == nil
	})
	return err
}
