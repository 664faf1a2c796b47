package btree

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/ropemetric/chunk"
)

func mixedChunks() []chunk.Metric {
	return []chunk.Metric{
		m(5, 5), m(5, 2), m(6, 5), chunk.Gap(7), m(5, 5), m(1, 1),
		m(8, 5), m(5, 4), m(5, 5), m(2, 2), m(5, 3), m(9, 9),
	}
}

func TestSearchEveryOffset(t *testing.T) {
	chunks := mixedChunks()
	for _, base := range []int{2, 3, 6} {
		tree := newTree(t, base, chunks...)
		total := tree.Total().Bytes
		for offset := 0; offset <= total; offset++ {
			loc, err := tree.Search(offset)
			if err != nil {
				t.Fatalf("search for %d failed: %v", offset, err)
			}
			i, before := locate(chunks, chunk.ByteDimension{}, offset)
			if loc.Chunk != chunks[i] || loc.Before != before {
				t.Fatalf("offset %d: expected chunk %v after %v, got %v after %v",
					offset, chunks[i], before, loc.Chunk, loc.Before)
			}
			if loc.Start()+loc.Offset != offset {
				t.Fatalf("offset %d: located at %d+%d", offset, loc.Start(), loc.Offset)
			}
			if loc.Offset < 0 || loc.Offset > loc.Chunk.Bytes {
				t.Fatalf("offset %d: residual %d outside chunk %v", offset, loc.Offset, loc.Chunk)
			}
		}
	}
}

func TestSearchTiesResolveLeft(t *testing.T) {
	tree := newTree(t, 2, m(3, 3), m(4, 4), m(5, 5), m(6, 6))
	loc, err := tree.Search(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Chunk != m(3, 3) || loc.Offset != 3 {
		t.Fatalf("expected end of first chunk, got %v at %d", loc.Chunk, loc.Offset)
	}
	loc, err = tree.Search(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Chunk != m(3, 3) || loc.Offset != 0 || loc.Slot != 0 {
		t.Fatalf("expected start of first chunk, got %+v", loc)
	}
	loc, err = tree.Search(18)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Chunk != m(6, 6) || loc.Offset != 6 || loc.Before != m(12, 12) {
		t.Fatalf("expected end of last chunk, got %+v", loc)
	}
}

func TestSearchOutOfRange(t *testing.T) {
	tree := newTree(t, 2, mixedChunks()...)
	total := tree.Total().Bytes
	for _, offset := range []int{-1, total + 1, total + 100} {
		if _, err := tree.Search(offset); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("expected ErrOutOfRange for %d, got %v", offset, err)
		}
	}
	empty, _ := New(DefaultConfig())
	if _, err := empty.Search(0); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange for empty tree, got %v", err)
	}
}

func TestSeekByChars(t *testing.T) {
	chunks := mixedChunks()
	tree := newTree(t, 2, chunks...)
	total := tree.Total().Chars
	for target := 0; target <= total; target++ {
		loc, err := tree.Seek(chunk.CharDimension{}, target)
		if err != nil {
			t.Fatalf("seek for char %d failed: %v", target, err)
		}
		i, before := locate(chunks, chunk.CharDimension{}, target)
		if loc.Chunk != chunks[i] || loc.Before != before {
			t.Fatalf("char %d: expected chunk %v after %v, got %v after %v",
				target, chunks[i], before, loc.Chunk, loc.Before)
		}
		if loc.Before.Chars+loc.Offset != target {
			t.Fatalf("char %d: located at %d+%d", target, loc.Before.Chars, loc.Offset)
		}
	}
	if _, err := tree.Seek(chunk.CharDimension{}, total+1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

func TestDotOutput(t *testing.T) {
	tree := newTree(t, 2, mixedChunks()...)
	var sb strings.Builder
	if err := tree.Dot(&sb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "strict digraph {") || !strings.Contains(out, "->") || !strings.Contains(out, "7/0") {
		t.Fatalf("unexpected DOT output:\n%s", out)
	}
}
