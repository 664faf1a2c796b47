package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/npillmayer/ropemetric/chunk"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/term"
)

// report prints findings about a document to a terminal or a plain writer.
type report struct {
	w       io.Writer
	width   int // display width available for chunk previews
	context *uax11.Context
	heading *color.Color
	gap     *color.Color
	fail    *color.Color
}

func newReport(w io.Writer) *report {
	grapheme.SetupGraphemeClasses()
	r := &report{
		w:       w,
		width:   80,
		context: uax11.ContextFromEnvironment(),
		heading: color.New(color.FgBlue, color.Bold),
		gap:     color.New(color.FgYellow),
		fail:    color.New(color.FgRed),
	}
	if fd := int(os.Stdout.Fd()); w == os.Stdout && term.IsTerminal(fd) {
		if width, _, err := term.GetSize(fd); err == nil && width > 0 {
			r.width = width
		}
	}
	return r
}

func (r *report) summary(name string, doc *document) {
	total := doc.rope.Total()
	r.heading.Fprintf(r.w, "%s\n", name)
	fmt.Fprintf(r.w, "  bytes:  %d\n", total.Bytes)
	fmt.Fprintf(r.w, "  chars:  %d\n", total.Chars)
	fmt.Fprintf(r.w, "  chunks: %d\n", doc.rope.Len())
	fmt.Fprintf(r.w, "  height: %d (base %d, chunk size %d)\n", doc.rope.Height(),
		doc.rope.Config().Base, doc.rope.Config().ChunkSize)
	if doc.gapEnd > doc.gapStart {
		r.gap.Fprintf(r.w, "  gap:    [%d, %d)\n", doc.gapStart, doc.gapEnd)
	}
}

func (r *report) verification(doc *document) {
	if err := doc.rope.Check(); err != nil {
		r.fail.Fprintf(r.w, "  tree check failed: %v\n", err)
		return
	}
	if err := doc.rope.Verify(doc.buf, doc.gapStart, doc.gapEnd); err != nil {
		r.fail.Fprintf(r.w, "  verification failed: %v\n", err)
		return
	}
	fmt.Fprintln(r.w, "  verified: ok")
}

func (r *report) chunks(doc *document) {
	r.heading.Fprintln(r.w, "chunks")
	pos := 0
	i := 0
	doc.rope.ForEachChunk(func(m chunk.Metric) bool {
		prefix := fmt.Sprintf("  #%-5d [%6d, %6d) %-14v ", i, pos, pos+m.Bytes, m)
		if pos == doc.gapStart && m.Bytes == doc.gapEnd-doc.gapStart && m.Chars == 0 {
			r.gap.Fprintf(r.w, "%s<gap>\n", prefix)
		} else {
			preview := r.preview(string(doc.buf[pos:pos+m.Bytes]), r.width-len(prefix)-2)
			fmt.Fprintf(r.w, "%s│%s│\n", prefix, preview)
		}
		pos += m.Bytes
		i++
		return true
	})
}

// preview makes text printable in a single line of at most width display
// positions, padding it to exactly that width.
func (r *report) preview(text string, width int) string {
	text = strings.NewReplacer("\n", "⏎", "\t", "→", "\r", "␍").Replace(text)
	if width <= 0 {
		return ""
	}
	gstr := grapheme.StringFromString(text)
	w := uax11.StringWidth(gstr, r.context)
	for w > width && len(text) > 0 {
		_, last := utf8.DecodeLastRuneInString(text)
		text = text[:len(text)-last]
		w = uax11.StringWidth(grapheme.StringFromString(text), r.context)
	}
	return text + strings.Repeat(" ", width-w)
}

func (r *report) search(doc *document, offset int) {
	loc, err := doc.rope.Search(offset)
	if err != nil {
		r.fail.Fprintf(r.w, "  search %d: %v\n", offset, err)
		return
	}
	pos, err := doc.rope.PosFromByte(doc.buf, offset)
	char := "-"
	if err == nil {
		char = fmt.Sprint(pos.Chars)
	}
	fmt.Fprintf(r.w, "  search %d: chunk %v at [%d, %d), slot %d, residual %d, char %s\n",
		offset, loc.Chunk, loc.Start(), loc.Start()+loc.Chunk.Bytes, loc.Slot, loc.Offset, char)
}
