package zone

import (
	"context"
	"errors"
	"fmt"

	"github.com/banshee-data/sensorzone/internal/geom"
	"github.com/banshee-data/sensorzone/internal/sensor"
	"github.com/banshee-data/sensorzone/internal/span"
)

// TuningMultiplier scales the gap's x coordinate in TuningFrequency.
const TuningMultiplier int64 = 4_000_000

// ctxCheckRows is how many rows a scan covers between context checks.
const ctxCheckRows = 1024

var (
	// ErrNoGap is returned when every position of the domain is covered.
	ErrNoGap = errors.New("no uncovered position in domain")

	// ErrInvariant is wrapped by InvariantError. A domain is expected to hold
	// exactly one uncovered cell; anything else on a row is reported with it.
	ErrInvariant = errors.New("coverage invariant violated")
)

// InvariantError describes a row whose coverage cannot come from a domain
// with a single uncovered cell.
type InvariantError struct {
	Row    int64
	Spans  []span.Span
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("row %d: %s (spans %v)", e.Row, e.Reason, e.Spans)
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariant
}

func invariant(row int64, ss span.SpanSet, format string, args ...interface{}) error {
	return &InvariantError{
		Row:    row,
		Spans:  append([]span.Span(nil), ss.Spans...),
		Reason: fmt.Sprintf(format, args...),
	}
}

// TuningFrequency is x * 4,000,000 + y for the gap point p.
func TuningFrequency(p geom.Point) int64 {
	return p.X*TuningMultiplier + p.Y
}

// SquareDomain is [0, max] on one axis.
func SquareDomain(max int64) span.Domain {
	return span.NewDomain(0, max)
}

// gapOnRow inspects one compacted row. It returns the uncovered x when the
// row holds the gap, found=false when the row is fully covered, and an
// InvariantError when the row has no spans, more than two spans, or more
// than one uncovered cell.
func gapOnRow(ss span.SpanSet, row int64) (x int64, found bool, err error) {
	if ss.CoversDomain() {
		return 0, false, nil
	}
	switch n := ss.Len(); {
	case n == 0:
		return 0, false, invariant(row, ss, "row is entirely uncovered")
	case n > 2:
		return 0, false, invariant(row, ss, "%d disjoint spans", n)
	}

	gaps := ss.Gaps()
	if len(gaps) != 1 || gaps[0].Len() != 1 {
		return 0, false, invariant(row, ss, "uncovered stretches %v", gaps)
	}
	return gaps[0].Start, true, nil
}

// FindGap scans rows 0..domainMax in order and returns the one position in
// [0, domainMax]² outside every exclusion zone. It is the single-goroutine
// reference for Searcher.
//
// Errors: ErrNoGap when every row is covered, an *InvariantError (matching
// ErrInvariant) for a malformed row, or ctx.Err() if ctx ends first.
func FindGap(ctx context.Context, sensors []sensor.Sensor, domainMax int64) (geom.Point, error) {
	if domainMax < 0 {
		return geom.Point{}, ErrNoGap
	}

	c := span.NewCompactor(SquareDomain(domainMax), len(sensors))
	for row := int64(0); ; row++ {
		if row%ctxCheckRows == 0 {
			if err := ctx.Err(); err != nil {
				return geom.Point{}, err
			}
		}

		x, found, err := gapOnRow(collectRow(c, sensors, row), row)
		if err != nil {
			return geom.Point{}, err
		}
		if found {
			return geom.Pt(x, row), nil
		}
		if row == domainMax {
			break
		}
	}
	return geom.Point{}, ErrNoGap
}
