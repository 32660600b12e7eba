package span

import (
	"cmp"
	"math"
	"slices"
	"sort"
)

// SpanSet is a compacted collection of spans: sorted ascending by Start,
// pairwise separated by at least one uncovered integer, and contained in
// Domain. Only Compact and Compactor produce SpanSets.
type SpanSet struct {
	Spans  []Span
	Domain Domain
}

// Len returns the number of disjoint spans.
func (ss SpanSet) Len() int {
	return len(ss.Spans)
}

// Total returns the number of covered integers, saturating at math.MaxInt64.
func (ss SpanSet) Total() int64 {
	var total int64
	for _, s := range ss.Spans {
		n := s.Len()
		if total > math.MaxInt64-n {
			return math.MaxInt64
		}
		total += n
	}
	return total
}

// Contains reports whether v is covered by some span.
func (ss SpanSet) Contains(v int64) bool {
	i := sort.Search(len(ss.Spans), func(i int) bool { return ss.Spans[i].End >= v })
	return i < len(ss.Spans) && ss.Spans[i].Start <= v
}

// CoversDomain reports whether the set is a single span equal to the domain.
func (ss SpanSet) CoversDomain() bool {
	return len(ss.Spans) == 1 && ss.Spans[0] == ss.Domain.Span()
}

// Gaps returns the uncovered stretches of the domain in ascending order.
func (ss SpanSet) Gaps() []Span {
	var gaps []Span
	next := ss.Domain.Min
	for _, s := range ss.Spans {
		if s.Start > next {
			gaps = append(gaps, Span{Start: next, End: s.Start - 1})
		}
		if s.End == ss.Domain.Max {
			return gaps
		}
		next = s.End + 1
	}
	if next <= ss.Domain.Max {
		gaps = append(gaps, Span{Start: next, End: ss.Domain.Max})
	}
	return gaps
}

// Compact clamps spans to d, drops those left empty, and merges overlapping
// or adjacent spans. The input slice is not modified and may be in any order.
func Compact(spans []Span, d Domain) SpanSet {
	var c Compactor
	c.Reset(d)
	for _, s := range spans {
		c.Add(s)
	}
	out := c.Compact()
	out.Spans = slices.Clone(out.Spans)
	return out
}

// Compactor accumulates spans for one domain and compacts them in place.
// It keeps its buffer between Reset calls so a caller evaluating many rows
// does not allocate per row. A Compactor must not be shared between
// goroutines.
type Compactor struct {
	domain Domain
	buf    []Span
}

// NewCompactor returns a Compactor for d with room for capacity spans.
func NewCompactor(d Domain, capacity int) *Compactor {
	return &Compactor{domain: d, buf: make([]Span, 0, capacity)}
}

// Reset discards accumulated spans and switches to domain d.
func (c *Compactor) Reset(d Domain) {
	c.domain = d
	c.buf = c.buf[:0]
}

// Domain returns the domain spans are clamped to.
func (c *Compactor) Domain() Domain {
	return c.domain
}

// Add clamps s to the domain and keeps it unless it ends up empty.
func (c *Compactor) Add(s Span) {
	if s, ok := c.domain.Clamp(s); ok {
		c.buf = append(c.buf, s)
	}
}

// Compact sorts and merges the accumulated spans. The returned set aliases
// the Compactor's buffer and is only valid until the next Reset or Add.
func (c *Compactor) Compact() SpanSet {
	spans := c.buf
	if len(spans) == 0 {
		return SpanSet{Domain: c.domain}
	}

	slices.SortFunc(spans, func(a, b Span) int {
		if n := cmp.Compare(a.Start, b.Start); n != 0 {
			return n
		}
		return cmp.Compare(a.End, b.End)
	})

	out := 0
	for _, next := range spans[1:] {
		cur := &spans[out]
		if touches(*cur, next) {
			cur.End = max(cur.End, next.End)
			continue
		}
		out++
		spans[out] = next
	}
	c.buf = spans[:out+1]
	return SpanSet{Spans: c.buf, Domain: c.domain}
}
