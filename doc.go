/*
Package ropemetric indexes the chunks of a text buffer by their size metrics.

A Rope never holds any text. It partitions an externally owned buffer into
chunks of a few bytes each, cut at UTF-8 character boundaries, and keeps a
B+ sum-tree over the chunks' metrics (byte count and character count). The
buffer may contain a gap, i.e. a reserved region not holding text, which is
indexed as a chunk of its own, with zero characters.

The tree answers “which chunk holds byte offset k?” and keeps all running
totals current while the owner of the buffer inserts text, both in time
logarithmic to the number of chunks.

Usage:

	rope, err := ropemetric.Build(buf, gapStart, gapEnd, ropemetric.DefaultConfig())
	...
	loc, err := rope.Search(k)            // chunk covering byte offset k
	err = rope.Insert(k, chunk.Measure(p)) // owner inserted p at k

Ranges cannot be deleted from a rope, and there is no line-oriented metric.
A Rope is not safe for concurrent use.

_________________________________________________________________________

# BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package ropemetric

import (
	"errors"

	"github.com/npillmayer/ropemetric/btree"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'ropemetric'
func tracer() tracing.Trace {
	return tracing.Select("ropemetric")
}

var (
	// ErrOutOfRange is flagged whenever an offset is greater than the length
	// of the rope, or negative.
	ErrOutOfRange = btree.ErrOutOfRange
	// ErrInvalidArgument is flagged whenever function parameters are invalid.
	ErrInvalidArgument = btree.ErrInvalidArgument
	// ErrInvariantViolation signals an inconsistency between a rope and its
	// buffer, or inside the rope itself.
	ErrInvariantViolation = btree.ErrInvariantViolation
	// ErrInvalidConfig signals an invalid configuration.
	ErrInvalidConfig = btree.ErrInvalidConfig
	// ErrBuilderCompleted signals that a builder has already completed a rope
	// and it's illegal to further add fragments.
	ErrBuilderCompleted = errors.New("ropemetric: forbidden to add fragments; rope has been completed")
	// ErrIllegalPosition is flagged for a byte offset inside of a character.
	ErrIllegalPosition = errors.New("ropemetric: offset is not a character boundary")
)
