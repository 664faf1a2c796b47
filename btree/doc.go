/*
Package btree provides a B+ sum-tree indexing the chunks of a text buffer by
their metrics.

The tree never stores text. Leaves hold one chunk.Metric per indexed chunk of
an externally owned buffer; internal nodes hold their children together with
one cached metric per child, which is the exact sum over that child's subtree
(never a prefix sum). Routing by offset therefore threads a decremented
remainder from the root down to a leaf.

Current status:
  - bulk construction from a sequence of chunk metrics (`FromChunks`),
  - offset search by bytes or characters (`Search`, `Seek`),
  - in-place chunk growth (`Insert`),
  - chunk creation at chunk boundaries (`InsertChunk`) and chunk splitting
    (`SplitChunk`), with leaf/inner split propagation and root growth,
  - invariant checking (`Check`) and Graphviz output (`Dot`).

Deletion and rebalancing by merge are not provided.

Shape:
  - `Config.Base` is the branching parameter t,
  - non-root leaves hold between t and 2t-1 chunks,
  - non-root internal nodes hold between t and 2t children,
  - an internal root holds at least two children, a leaf root may be underfull.

A Tree is not safe for concurrent use. Clients have to serialize access.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package btree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'ropemetric'
func tracer() tracing.Trace {
	return tracing.Select("ropemetric")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
