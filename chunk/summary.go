package chunk

import "fmt"

// Metric aggregates the size of a span of text for tree routing.
//
// Tree-level code uses metrics to navigate and aggregate, while chunk code
// keeps ownership of local byte/rune boundary logic. A Metric never refers to
// the text itself.
type Metric struct {
	Bytes int
	Chars int
}

// Zero returns the neutral metric value.
func Zero() Metric { return Metric{} }

// Gap returns the metric of a reserved, currently unindexed buffer region
// of n bytes. A gap holds no characters.
func Gap(n int) Metric { return Metric{Bytes: n} }

// Add combines two metrics component-wise.
func (m Metric) Add(other Metric) Metric {
	return Metric{
		Bytes: m.Bytes + other.Bytes,
		Chars: m.Chars + other.Chars,
	}
}

// IsZero reports whether m is the neutral element.
func (m Metric) IsZero() bool {
	return m.Bytes == 0 && m.Chars == 0
}

// Valid reports whether m may describe a span of text: both counts are
// non-negative and there are no more characters than bytes.
func (m Metric) Valid() bool {
	return m.Bytes >= 0 && m.Chars >= 0 && m.Chars <= m.Bytes
}

func (m Metric) String() string {
	return fmt.Sprintf("{b=%d c=%d}", m.Bytes, m.Chars)
}

// Sum folds metrics left to right.
func Sum(metrics ...Metric) Metric {
	var s Metric
	for _, m := range metrics {
		s = s.Add(m)
	}
	return s
}

// Monoid aggregates chunk metrics for B+ sum-tree internal nodes.
//
// For metrics s, t, u Add is associative and commutative:
//
//	Add(Add(s, t), u) == Add(s, Add(t, u))
//
// and Zero is the neutral element:
//
//	Add(Zero(), s) == s == Add(s, Zero())
type Monoid struct{}

// Zero returns the neutral metric value.
func (Monoid) Zero() Metric { return Metric{} }

// Add combines two metrics.
func (Monoid) Add(left, right Metric) Metric {
	return left.Add(right)
}

// Dimension selects the metric component used to route a seek.
type Dimension interface {
	Of(Metric) int
}

// ByteDimension seeks by byte count.
type ByteDimension struct{}

// Of returns the byte count of m.
func (ByteDimension) Of(m Metric) int { return m.Bytes }

// CharDimension seeks by Unicode scalar value count.
type CharDimension struct{}

// Of returns the character count of m.
func (CharDimension) Of(m Metric) int { return m.Chars }
