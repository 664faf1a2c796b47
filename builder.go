package ropemetric

import (
	"fmt"

	"github.com/npillmayer/ropemetric/chunk"
)

// Builder incrementally scans text and finalizes it into a Rope.
//
// Builder is an io.Writer: text may be written in fragments of any size,
// including fragments splitting a character. Builder only counts what it is
// fed and does not retain any text. Gap reserves a region of the buffer
// at the current write position.
//
// Builder collects chunk metrics and materializes the tree only when Rope()
// is called.
type Builder struct {
	cfg     Config
	scanner *chunk.Scanner
	chunks  []chunk.Metric
	written int // bytes written so far, gap included

	hasGap           bool
	gapStart, gapEnd int

	done bool
	rope *Rope
}

// NewBuilder creates a new and empty rope builder.
func NewBuilder(cfg Config) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.normalized()
	scanner, err := chunk.NewScanner(cfg.ChunkSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &Builder{cfg: cfg, scanner: scanner}, nil
}

func (b *Builder) emit(m chunk.Metric) {
	b.chunks = append(b.chunks, m)
}

// Write scans the next fragment of text. It never returns a short count.
func (b *Builder) Write(p []byte) (int, error) {
	if b.done {
		return 0, ErrBuilderCompleted
	}
	b.scanner.Feed(p, b.emit)
	b.written += len(p)
	return len(p), nil
}

// WriteString scans the next fragment of text.
func (b *Builder) WriteString(s string) (int, error) {
	return b.Write([]byte(s))
}

// Gap ends the current text region and reserves a gap of n bytes. There is
// at most one gap per rope; a gap of 0 bytes marks its position only.
func (b *Builder) Gap(n int) error {
	if b.done {
		return ErrBuilderCompleted
	}
	if n < 0 || b.hasGap {
		return fmt.Errorf("%w: gap of %d bytes (gap already set: %v)", ErrInvalidArgument, n, b.hasGap)
	}
	b.scanner.Flush(b.emit)
	b.hasGap = true
	b.gapStart = b.written
	b.gapEnd = b.written + n
	if n > 0 {
		b.emit(chunk.Gap(n))
	}
	b.written += n
	return nil
}

// Written returns the number of bytes described so far, gap included.
func (b *Builder) Written() int {
	return b.written
}

// Rope returns the rope built from all fragments written.
//
// It is illegal to continue writing after Rope has been called, but
// Rope may be called multiple times. A builder without a gap produces a rope
// with an empty gap at its end.
func (b *Builder) Rope() (*Rope, error) {
	if b.rope != nil {
		return b.rope, nil
	}
	b.done = true
	b.scanner.Flush(b.emit)
	if !b.hasGap {
		b.gapStart, b.gapEnd = b.written, b.written
	}
	rope, err := fromChunks(b.cfg, b.chunks, b.gapStart, b.gapEnd)
	if err != nil {
		return nil, err
	}
	b.rope, b.chunks = rope, nil
	return rope, nil
}

// Reset drops the staged build and prepares the builder for a fresh build.
func (b *Builder) Reset() {
	b.scanner.Flush(func(chunk.Metric) {})
	b.chunks = nil
	b.written = 0
	b.hasGap = false
	b.gapStart, b.gapEnd = 0, 0
	b.done = false
	b.rope = nil
}
