package chunk

import (
	"unicode/utf8"
)

const (
	// DefaultSize is the default target chunk length in bytes.
	DefaultSize = 5
	// MaxSize is the largest accepted target chunk length.
	MaxSize = 1 << 20
)

// IsCharBoundary reports whether b may start a character: either an ASCII
// byte (top bit 0) or the leading byte of a multi-byte sequence (top bits 11).
// Continuation bytes (top bits 10) are never boundaries.
func IsCharBoundary(b byte) bool {
	return utf8.RuneStart(b)
}

// CountChars counts the characters in text by counting boundary bytes.
//
// For valid UTF-8 this equals utf8.RuneCount. Stray continuation bytes do not
// count as characters of their own.
func CountChars(text []byte) int {
	n := 0
	for _, b := range text {
		if IsCharBoundary(b) {
			n++
		}
	}
	return n
}

// Measure returns the metric of a span of text.
func Measure(text []byte) Metric {
	return Metric{Bytes: len(text), Chars: CountChars(text)}
}

// Scanner cuts a region of text into chunk metrics.
//
// A chunk is cut once it holds at least Size bytes and the next byte starts a
// character. If the target position falls inside a multi-byte sequence, the
// chunk grows forward up to the next character start. The end of a region is
// always a valid cut.
//
// A Scanner only counts; it never retains the bytes it is fed, so a region may
// be fed in arbitrary fragments.
type Scanner struct {
	size int
	cur  Metric
}

// NewScanner creates a scanner cutting chunks of a target size in bytes.
func NewScanner(size int) (*Scanner, error) {
	if size <= 0 || size > MaxSize {
		return nil, ErrInvalidSize
	}
	return &Scanner{size: size}, nil
}

// Size returns the target chunk length.
func (s *Scanner) Size() int {
	return s.size
}

// Feed scans the next fragment of the current region and calls emit for
// every chunk completed by it.
func (s *Scanner) Feed(text []byte, emit func(Metric)) {
	for _, b := range text {
		start := IsCharBoundary(b)
		if start && s.cur.Bytes >= s.size {
			emit(s.cur)
			s.cur = Metric{}
		}
		s.cur.Bytes++
		if start {
			s.cur.Chars++
		}
	}
}

// Flush ends the current region, emitting the trailing partial chunk, if any.
func (s *Scanner) Flush(emit func(Metric)) {
	if s.cur.Bytes > 0 {
		emit(s.cur)
	}
	s.cur = Metric{}
}

// Pending returns the metric of the bytes fed but not yet emitted.
func (s *Scanner) Pending() Metric {
	return s.cur
}

// Split cuts a complete region into chunk metrics.
func Split(text []byte, size int) ([]Metric, error) {
	s, err := NewScanner(size)
	if err != nil {
		return nil, err
	}
	parts := make([]Metric, 0, 1+len(text)/size)
	emit := func(m Metric) { parts = append(parts, m) }
	s.Feed(text, emit)
	s.Flush(emit)
	return parts, nil
}
