package ropemetric

import (
	"fmt"

	"github.com/npillmayer/ropemetric/chunk"
)

// Pos is a character-aware position within a buffer. It carries both a
// character offset and a byte offset, which refer to the same boundary.
type Pos struct {
	Chars int
	Bytes int
}

// PosEnd returns the end position of the buffer.
func (r *Rope) PosEnd() Pos {
	total := r.Total()
	return Pos{Chars: total.Chars, Bytes: total.Bytes}
}

// PosFromByte creates a character-aware position from a byte offset into buf,
// which must be the buffer the rope indexes.
//
// The byte offset must not point inside a character. Offsets within the gap
// are accepted and count no characters.
func (r *Rope) PosFromByte(buf []byte, b int) (Pos, error) {
	if err := r.checkBuffer(buf); err != nil {
		return Pos{}, err
	}
	if r.tree.IsEmpty() && b == 0 {
		return Pos{}, nil
	}
	loc, err := r.Search(b)
	if err != nil {
		return Pos{}, err
	}
	if loc.Chunk.Chars == 0 { // gap
		return Pos{Chars: loc.Before.Chars, Bytes: b}, nil
	}
	if b < len(buf) && loc.Offset < loc.Chunk.Bytes && !chunk.IsCharBoundary(buf[b]) {
		return Pos{}, fmt.Errorf("%w: byte offset %d", ErrIllegalPosition, b)
	}
	local := chunk.CountChars(buf[loc.Start():b])
	return Pos{Chars: loc.Before.Chars + local, Bytes: b}, nil
}

// PosFromChar creates a position from a character offset, resolving its byte
// offset within buf, which must be the buffer the rope indexes.
//
// A character offset at a chunk border resolves to the end of the chunk on
// its left, thus to the start of a gap rather than to its end. This holds for
// a gap at the very start of the buffer as well: character 0 resolves to byte 0.
func (r *Rope) PosFromChar(buf []byte, c int) (Pos, error) {
	if err := r.checkBuffer(buf); err != nil {
		return Pos{}, err
	}
	if r.tree.IsEmpty() && c == 0 {
		return Pos{}, nil
	}
	loc, err := r.Seek(chunk.CharDimension{}, c)
	if err != nil {
		return Pos{}, err
	}
	start := loc.Start()
	if loc.Offset == 0 {
		return Pos{Chars: c, Bytes: start}, nil
	}
	if loc.Offset == loc.Chunk.Chars {
		return Pos{Chars: c, Bytes: start + loc.Chunk.Bytes}, nil
	}
	seen := 0
	for i, b := range buf[start : start+loc.Chunk.Bytes] {
		if !chunk.IsCharBoundary(b) {
			continue
		}
		if seen == loc.Offset {
			return Pos{Chars: c, Bytes: start + i}, nil
		}
		seen++
	}
	return Pos{}, fmt.Errorf("%w: chunk at %d does not hold %d characters", ErrInvariantViolation, start, loc.Offset)
}

func (r *Rope) checkBuffer(buf []byte) error {
	if total := r.Total().Bytes; len(buf) != total {
		return fmt.Errorf("%w: buffer of length %d for rope spanning %d bytes",
			ErrInvalidArgument, len(buf), total)
	}
	return nil
}
