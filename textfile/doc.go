/*
Package textfile provides API helpers to index UTF-8 text files as ropes.

A file is read in fragments by a background goroutine, which broadcasts
them to the rope builder; the `Load` API itself is synchronous. The gap of
the resulting rope is placed at an initial cursor position.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package textfile

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'ropemetric'
func tracer() tracing.Trace {
	return tracing.Select("ropemetric")
}
