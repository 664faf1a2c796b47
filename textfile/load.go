package textfile

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/guiguan/caster"
	"github.com/npillmayer/ropemetric"
	"github.com/npillmayer/ropemetric/chunk"
)

// Some constants for fragment size defaults
const (
	twoKb     = 2048
	sixKb     = 6144
	tenKb     = 10240
	hundredKb = 102400
	oneMb     = 1048576
)

// fragment is a piece of a text file's content, as published by the loader
// goroutine.
type fragment struct {
	seq  int    // sequence number, starting at 0
	pos  int64  // start position of this fragment within the file
	data []byte // content
	err  error  // I/O error, ends the loading
}

// textFile represents an OS file which will be indexed as a rope.
type textFile struct {
	path string      // file name
	info os.FileInfo // result from Stat(path)
	file *os.File    // file handle
}

// Load reads a file, which must be a text file, and indexes it as a rope.
// The rope describes a buffer holding the file's content with a gap of
// gapSize bytes at the initial cursor position initialPos, as an editor would
// set it up. An initialPos of -1 (or beyond the end of the file) places the
// gap at the end; a position inside a character is moved to the start of the
// next one. fragSize is a recommended fragment length for reading; 0 lets
// Load choose a sensible default.
//
// Fragments are read asynchronously and broadcast to the builder of the
// rope, which consumes them in order. Load returns after the whole file has
// been indexed, or when ctx is done.
func Load(ctx context.Context, name string, initialPos int64, gapSize int, fragSize int64,
	cfg ropemetric.Config) (*ropemetric.Rope, error) {
	//
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if gapSize < 0 {
		return nil, fmt.Errorf("%w: negative gap size %d", ropemetric.ErrInvalidArgument, gapSize)
	}
	b, err := ropemetric.NewBuilder(cfg)
	if err != nil {
		return nil, err
	}
	tf, err := openFile(name)
	if err != nil {
		return nil, err
	}
	defer tf.file.Close()
	size := tf.info.Size()
	if initialPos > size || initialPos < 0 {
		initialPos = size
	}
	if initialPos, err = tf.alignToChar(initialPos); err != nil {
		return nil, err
	}
	fragSize = fragmentSize(size, fragSize)
	count := 0
	if size > 0 {
		count = int((size + fragSize - 1) / fragSize)
	}
	tracer().Debugf("textfile: loading %q, %d bytes in %d fragments, gap of %d at %d",
		name, size, count, gapSize, initialPos)
	gapPlaced, err := loadInto(ctx, tf, b, initialPos, gapSize, fragSize, count)
	if err != nil {
		return nil, err
	}
	if !gapPlaced {
		if err = b.Gap(gapSize); err != nil {
			return nil, err
		}
	}
	return b.Rope()
}

// loadInto starts the loader goroutine and feeds all fragments, in order, into
// b, placing the gap when the fragment holding initialPos arrives.
func loadInto(ctx context.Context, tf *textFile, b *ropemetric.Builder, initialPos int64,
	gapSize int, fragSize int64, count int) (gapPlaced bool, err error) {
	//
	if count == 0 {
		return false, nil
	}
	//
	ctx, cancel := context.WithCancel(ctx)
	cast := caster.New(ctx) // we will broadcast messages when fragments are loaded
	frags, ok := cast.Sub(ctx, 4)
	if !ok {
		cancel()
		return false, fmt.Errorf("textfile: cannot subscribe to fragment loader")
	}
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		tf.loadAllFragments(cast, fragSize, count)
	}()
	defer wg.Wait() // file has to stay open while the loader is running
	defer cancel()
	//
	next := 0
	for msg := range frags {
		frag := msg.(fragment)
		if frag.err != nil {
			return false, fmt.Errorf("textfile: loading fragment at %d of %q: %w", frag.pos, tf.path, frag.err)
		}
		if frag.seq != next {
			return false, fmt.Errorf("textfile: fragment #%d received out of order, expected #%d", frag.seq, next)
		}
		data := frag.data
		if cut := initialPos - frag.pos; !gapPlaced && cut >= 0 && cut < int64(len(data)) {
			if _, err := b.Write(data[:cut]); err != nil {
				return false, err
			}
			if err := b.Gap(gapSize); err != nil {
				return false, err
			}
			data = data[cut:]
			gapPlaced = true
		}
		if _, err := b.Write(data); err != nil {
			return false, err
		}
		if next++; next == count {
			break
		}
	}
	if next < count {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		return false, fmt.Errorf("textfile: only %d of %d fragments of %q loaded: %w",
			next, count, tf.path, io.ErrUnexpectedEOF)
	}
	return gapPlaced, nil
}

// fragmentSize chooses the fragment length for reading a file of a given
// size. A requested length in (0, 10kB] is taken as is.
func fragmentSize(size int64, requested int64) int64 {
	if requested > 0 && requested <= tenKb {
		return requested
	}
	switch {
	case size < 64:
		return max(size, 1)
	case size < 1024:
		return 64
	case size < tenKb:
		return 256
	case size < hundredKb:
		return 512
	case size < oneMb:
		return twoKb
	}
	return sixKb
}

// openFile opens an OS file and collect some useful information on it,
// checking for error conditions.
func openFile(name string) (*textFile, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return nil, err
	} else if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("textfile: %q is not a regular file", name)
	}
	file, err := os.Open(name) // just open for read access
	if err != nil {
		return nil, err
	}
	return &textFile{path: name, info: fi, file: file}, nil
}

// alignToChar moves pos forward to the next character start, if it points
// into a multi-byte sequence.
func (tf *textFile) alignToChar(pos int64) (int64, error) {
	size := tf.info.Size()
	var b [utf8MaxContinuation]byte
	n, err := tf.file.ReadAt(b[:], pos)
	if err != nil && err != io.EOF {
		return 0, err
	}
	for i := 0; i < n && pos < size; i++ {
		if chunk.IsCharBoundary(b[i]) {
			break
		}
		pos++
	}
	return pos, nil
}

const utf8MaxContinuation = 3

// --- File loading goroutine ------------------------------------------------

// loadAllFragments reads the file front to back and publishes every fragment.
// It stops on the first I/O error, which is published as well, or when the
// caster's context is done.
func (tf *textFile) loadAllFragments(cast *caster.Caster, fragSize int64, count int) {
	defer cast.Close()
	size := tf.info.Size()
	for seq := 0; seq < count; seq++ {
		pos := int64(seq) * fragSize
		buf := make([]byte, min(fragSize, size-pos))
		cnt, err := tf.file.ReadAt(buf, pos)
		if err == io.EOF && cnt == len(buf) {
			err = nil
		} else if err == nil && cnt < len(buf) {
			err = io.ErrUnexpectedEOF
		}
		if !cast.Pub(fragment{seq: seq, pos: pos, data: buf[:cnt], err: err}) || err != nil {
			if err != nil {
				tracer().Errorf("textfile: loading fragment at %d of %q: %v", pos, tf.path, err)
			}
			return
		}
	}
}
