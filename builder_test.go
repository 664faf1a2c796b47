package ropemetric

import (
	"errors"
	"io"
	"testing"

	"github.com/npillmayer/ropemetric/chunk"
)

func TestBuilderMatchesBuild(t *testing.T) {
	text := "Grüße aus Köln, 你好世界 😀 and some ASCII to finish."
	for _, fragSize := range []int{1, 2, 3, 7, 64} {
		for cut := 0; cut <= len(text); cut += 3 {
			for cut < len(text) && !chunk.IsCharBoundary(text[cut]) {
				cut++
			}
			b, err := NewBuilder(DefaultConfig())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			writeFragments(t, b, text[:cut], fragSize)
			if err := b.Gap(4); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			writeFragments(t, b, text[cut:], fragSize)
			rope, err := b.Rope()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			buf := text[:cut] + "####" + text[cut:]
			want := build(t, buf, cut, cut+4)
			assertChunks(t, rope, want.Chunks()...)
			if start, end := rope.Gap(); start != cut || end != cut+4 {
				t.Fatalf("expected gap [%d, %d), got [%d, %d)", cut, cut+4, start, end)
			}
			if err := rope.Verify([]byte(buf), cut, cut+4); err != nil {
				t.Fatalf("rope does not match buffer: %v", err)
			}
		}
	}
}

func writeFragments(t *testing.T, w io.Writer, text string, size int) {
	t.Helper()
	for len(text) > 0 {
		n := min(size, len(text))
		if _, err := io.WriteString(w, text[:n]); err != nil {
			t.Fatalf("unexpected write error: %v", err)
		}
		text = text[n:]
	}
}

func TestBuilderWithoutGap(t *testing.T) {
	b, _ := NewBuilder(Config{ChunkSize: 4})
	b.WriteString("hello, world")
	rope, err := b.Rope()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertChunks(t, rope, m(4, 4), m(4, 4), m(4, 4))
	if start, end := rope.Gap(); start != 12 || end != 12 {
		t.Fatalf("expected empty gap at end, got [%d, %d)", start, end)
	}
	again, _ := b.Rope()
	if again != rope {
		t.Fatalf("expected repeated Rope() to return the same rope")
	}
}

func TestBuilderCompleted(t *testing.T) {
	b, _ := NewBuilder(DefaultConfig())
	b.WriteString("abc")
	if _, err := b.Rope(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := b.WriteString("def"); !errors.Is(err, ErrBuilderCompleted) {
		t.Fatalf("expected ErrBuilderCompleted, got %v", err)
	}
	if err := b.Gap(2); !errors.Is(err, ErrBuilderCompleted) {
		t.Fatalf("expected ErrBuilderCompleted, got %v", err)
	}
	b.Reset()
	b.WriteString("xyz")
	rope, err := b.Rope()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertChunks(t, rope, m(3, 3))
}

func TestBuilderRejectsSecondGap(t *testing.T) {
	b, _ := NewBuilder(DefaultConfig())
	if err := b.Gap(-1); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for negative gap, got %v", err)
	}
	if err := b.Gap(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.Gap(3); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for second gap, got %v", err)
	}
	b.WriteString("abc")
	if b.Written() != 3 {
		t.Fatalf("expected 3 bytes written, got %d", b.Written())
	}
	rope, _ := b.Rope()
	assertChunks(t, rope, m(3, 3))
}
