// Package span provides closed integer intervals and the compaction that
// reduces an unordered collection of them to a sorted, disjoint,
// non-adjacent set within a bounded domain.
//
// All arithmetic is int64 and saturates at the representable bounds, so an
// unbounded domain (see Unbounded) can be used without wraparound.
package span

import (
	"fmt"
	"math"
)

// Span is the closed interval [Start, End]. A valid span has Start <= End.
type Span struct {
	Start int64
	End   int64
}

// New returns the span [start, end].
func New(start, end int64) Span {
	return Span{Start: start, End: end}
}

// Point returns the single-cell span [v, v].
func Point(v int64) Span {
	return Span{Start: v, End: v}
}

// Empty reports whether the span has no cells (Start > End).
func (s Span) Empty() bool {
	return s.Start > s.End
}

// Len returns the number of integers in the span, saturating at
// math.MaxInt64. Empty spans have length 0.
func (s Span) Len() int64 {
	if s.Empty() {
		return 0
	}
	n := uint64(s.End) - uint64(s.Start)
	if n >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(n) + 1
}

// Contains reports whether v lies inside the span.
func (s Span) Contains(v int64) bool {
	return s.Start <= v && v <= s.End
}

func (s Span) String() string {
	return fmt.Sprintf("[%d, %d]", s.Start, s.End)
}

// touches reports whether next starts inside cur or immediately after it.
// Callers guarantee cur.Start <= next.Start.
func touches(cur, next Span) bool {
	if next.Start <= cur.End {
		return true
	}
	// next.Start > cur.End >= MinInt64, so the subtraction cannot wrap.
	return next.Start-1 == cur.End
}

// Domain is the inclusive bound [Min, Max] a span set is evaluated in.
type Domain struct {
	Min int64
	Max int64
}

// Unbounded spans the whole int64 range.
var Unbounded = Domain{Min: math.MinInt64, Max: math.MaxInt64}

// NewDomain returns the domain [min, max].
func NewDomain(min, max int64) Domain {
	return Domain{Min: min, Max: max}
}

// Span returns the domain as a span.
func (d Domain) Span() Span {
	return Span{Start: d.Min, End: d.Max}
}

// Clamp trims s to the domain. The second result is false when nothing of s
// lies inside d.
func (d Domain) Clamp(s Span) (Span, bool) {
	if s.Start < d.Min {
		s.Start = d.Min
	}
	if s.End > d.Max {
		s.End = d.Max
	}
	return s, !s.Empty()
}
