package ropemetric

import (
	"errors"
	"testing"
)

// "a😀b" ++ gap ++ "cé"
const posText = "a\U0001F600b____cé"

func TestPosFromByte(t *testing.T) {
	rope := build(t, posText, 6, 10)
	buf := []byte(posText)
	cases := []struct {
		bytes, chars int
	}{
		{0, 0}, {1, 1}, {5, 2}, {6, 3}, {8, 3}, {10, 3}, {11, 4}, {13, 5},
	}
	for _, c := range cases {
		p, err := rope.PosFromByte(buf, c.bytes)
		if err != nil {
			t.Fatalf("PosFromByte(%d) failed: %v", c.bytes, err)
		}
		if p.Chars != c.chars || p.Bytes != c.bytes {
			t.Fatalf("PosFromByte(%d) = %+v, want chars=%d", c.bytes, p, c.chars)
		}
	}
}

func TestPosFromByteRejectsNonBoundary(t *testing.T) {
	rope := build(t, posText, 6, 10)
	buf := []byte(posText)
	for _, b := range []int{2, 3, 4, 12} {
		if _, err := rope.PosFromByte(buf, b); !errors.Is(err, ErrIllegalPosition) {
			t.Fatalf("expected ErrIllegalPosition for %d, got %v", b, err)
		}
	}
	if _, err := rope.PosFromByte(buf, 14); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	if _, err := rope.PosFromByte(buf[:5], 1); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for foreign buffer, got %v", err)
	}
}

func TestPosFromChar(t *testing.T) {
	rope := build(t, posText, 6, 10)
	buf := []byte(posText)
	cases := []struct {
		chars, bytes int
	}{
		{0, 0}, {1, 1}, {2, 5}, {3, 6}, {4, 11}, {5, 13},
	}
	for _, c := range cases {
		p, err := rope.PosFromChar(buf, c.chars)
		if err != nil {
			t.Fatalf("PosFromChar(%d) failed: %v", c.chars, err)
		}
		if p.Bytes != c.bytes || p.Chars != c.chars {
			t.Fatalf("PosFromChar(%d) = %+v, want bytes=%d", c.chars, p, c.bytes)
		}
		back, err := rope.PosFromByte(buf, p.Bytes)
		if err != nil || back != p {
			t.Fatalf("PosFromByte(PosFromChar(%d)) = %+v, %v", c.chars, back, err)
		}
	}
	if _, err := rope.PosFromChar(buf, 6); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	if end := rope.PosEnd(); end.Chars != 5 || end.Bytes != 13 {
		t.Fatalf("unexpected end position %+v", end)
	}
}

func TestPosFromCharLeadingGap(t *testing.T) {
	text := "xxxxhello wörld"
	rope := build(t, text, 0, 4)
	buf := []byte(text)
	cases := []struct {
		chars, bytes int
	}{
		{0, 0}, {1, 5}, {7, 11}, {11, 16},
	}
	for _, c := range cases {
		p, err := rope.PosFromChar(buf, c.chars)
		if err != nil {
			t.Fatalf("PosFromChar(%d) failed: %v", c.chars, err)
		}
		if p.Bytes != c.bytes {
			t.Fatalf("PosFromChar(%d) = %+v, want bytes=%d", c.chars, p, c.bytes)
		}
	}
	byByte, err := rope.PosFromByte(buf, 0)
	if err != nil {
		t.Fatalf("PosFromByte(0) failed: %v", err)
	}
	byChar, _ := rope.PosFromChar(buf, 0)
	if byByte != byChar {
		t.Fatalf("positions of character 0 differ: %+v vs %+v", byChar, byByte)
	}
}

func TestPosOnEmptyRope(t *testing.T) {
	rope := build(t, "", 0, 0)
	if p, err := rope.PosFromByte(nil, 0); err != nil || p != (Pos{}) {
		t.Fatalf("expected zero position, got %+v, %v", p, err)
	}
	if p, err := rope.PosFromChar(nil, 0); err != nil || p != (Pos{}) {
		t.Fatalf("expected zero position, got %+v, %v", p, err)
	}
}
