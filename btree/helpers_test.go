package btree

import (
	"testing"

	"github.com/npillmayer/ropemetric/chunk"
)

func m(bytes, chars int) chunk.Metric {
	return chunk.Metric{Bytes: bytes, Chars: chars}
}

func newTree(t *testing.T, base int, chunks ...chunk.Metric) *Tree {
	t.Helper()
	tree, err := FromChunks(Config{Base: base}, chunks)
	if err != nil {
		t.Fatalf("FromChunks failed: %v", err)
	}
	if err := tree.Check(); err != nil {
		t.Fatalf("fresh tree does not validate: %v", err)
	}
	return tree
}

// locate is the linear reference for Seek: the first chunk whose end
// reaches target.
func locate(chunks []chunk.Metric, dim chunk.Dimension, target int) (int, chunk.Metric) {
	var before chunk.Metric
	for i, c := range chunks {
		if target <= dim.Of(before)+dim.Of(c) || i == len(chunks)-1 {
			return i, before
		}
		before = before.Add(c)
	}
	return -1, before
}

func assertChunks(t *testing.T, tree *Tree, want []chunk.Metric) {
	t.Helper()
	got := tree.Chunks()
	if len(got) != len(want) {
		t.Fatalf("expected %d chunks, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("chunk #%d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if total := tree.Total(); total != chunk.Sum(want...) {
		t.Fatalf("expected total %v, got %v", chunk.Sum(want...), total)
	}
	if err := tree.Check(); err != nil {
		t.Fatalf("tree does not validate: %v", err)
	}
}

func uniformChunks(n int, c chunk.Metric) []chunk.Metric {
	chunks := make([]chunk.Metric, n)
	for i := range chunks {
		chunks[i] = c
	}
	return chunks
}
