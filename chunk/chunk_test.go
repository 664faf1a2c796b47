package chunk

import (
	"errors"
	"strings"
	"testing"
)

func TestIsCharBoundary(t *testing.T) {
	text := []byte("aé😀")
	want := []bool{true, true, false, true, false, false, false}
	for i, b := range text {
		if got := IsCharBoundary(b); got != want[i] {
			t.Errorf("IsCharBoundary(%#x) = %v, want %v", b, got, want[i])
		}
	}
}

func TestMeasureCountsChars(t *testing.T) {
	m := Measure([]byte("a\n😀b"))
	if m.Bytes != 7 || m.Chars != 4 {
		t.Fatalf("unexpected metric: %v", m)
	}
}

func TestSplitASCII(t *testing.T) {
	parts, err := Split([]byte("abcdefghijkl"), 5)
	if err != nil {
		t.Fatalf("unexpected Split error: %v", err)
	}
	want := []Metric{{5, 5}, {5, 5}, {2, 2}}
	assertMetrics(t, parts, want)
}

func TestSplitExtendsPastContinuationBytes(t *testing.T) {
	// the 5th byte is the second byte of the emoji
	parts, err := Split([]byte("abcd😀e"), 5)
	if err != nil {
		t.Fatalf("unexpected Split error: %v", err)
	}
	assertMetrics(t, parts, []Metric{{8, 5}, {1, 1}})

	parts, err = Split([]byte("héllo"), 5)
	if err != nil {
		t.Fatalf("unexpected Split error: %v", err)
	}
	assertMetrics(t, parts, []Metric{{5, 4}, {1, 1}})
}

func TestSplitCutsBeforeMultiByteStart(t *testing.T) {
	parts, err := Split([]byte("abcde😀f"), 5)
	if err != nil {
		t.Fatalf("unexpected Split error: %v", err)
	}
	assertMetrics(t, parts, []Metric{{5, 5}, {5, 2}})
}

func TestSplitEmptyRegion(t *testing.T) {
	parts, err := Split(nil, 5)
	if err != nil {
		t.Fatalf("unexpected Split error: %v", err)
	}
	if len(parts) != 0 {
		t.Fatalf("expected no chunks for empty region, got %v", parts)
	}
}

func TestSplitRejectsInvalidSize(t *testing.T) {
	if _, err := Split([]byte("abc"), 0); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}
	if _, err := NewScanner(MaxSize + 1); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}
}

func TestScannerFragmentsMatchWholeRegion(t *testing.T) {
	text := []byte(strings.Repeat("ab😀cé\n", 17))
	whole, err := Split(text, 7)
	if err != nil {
		t.Fatalf("unexpected Split error: %v", err)
	}
	for _, step := range []int{1, 2, 3, 5, 11} {
		s, _ := NewScanner(7)
		var parts []Metric
		emit := func(m Metric) { parts = append(parts, m) }
		for i := 0; i < len(text); i += step {
			end := min(i+step, len(text))
			s.Feed(text[i:end], emit)
		}
		s.Flush(emit)
		assertMetrics(t, parts, whole)
	}
}

func TestScannerChunksEndOnBoundaries(t *testing.T) {
	text := []byte("Grüße aus 東京 😀😀 ok")
	parts, err := Split(text, 3)
	if err != nil {
		t.Fatalf("unexpected Split error: %v", err)
	}
	pos := 0
	for _, m := range parts {
		if !IsCharBoundary(text[pos]) {
			t.Fatalf("chunk starting at %d does not start a character", pos)
		}
		if m.Chars != CountChars(text[pos:pos+m.Bytes]) {
			t.Fatalf("chunk at %d has wrong char count %d", pos, m.Chars)
		}
		pos += m.Bytes
	}
	if pos != len(text) {
		t.Fatalf("chunks cover %d bytes, want %d", pos, len(text))
	}
}

func TestScannerPending(t *testing.T) {
	s, _ := NewScanner(5)
	var parts []Metric
	s.Feed([]byte("abc"), func(m Metric) { parts = append(parts, m) })
	if len(parts) != 0 || s.Pending() != (Metric{3, 3}) {
		t.Fatalf("unexpected scanner state: parts=%v pending=%v", parts, s.Pending())
	}
}

func assertMetrics(t *testing.T, got, want []Metric) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("chunk count mismatch: got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("chunk %d mismatch: got %v want %v", i, got, want)
		}
	}
}
