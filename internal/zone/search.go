package zone

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/banshee-data/sensorzone/internal/geom"
	"github.com/banshee-data/sensorzone/internal/monitoring"
	"github.com/banshee-data/sensorzone/internal/sensor"
	"github.com/banshee-data/sensorzone/internal/span"
	"github.com/banshee-data/sensorzone/internal/timeutil"
)

// errFound stops the errgroup once a worker has recorded the gap.
var errFound = errors.New("gap found")

// Searcher runs the gap search on several goroutines. Worker w scans rows
// w, w+Workers, w+2*Workers, ... with its own Compactor; the sensor slice is
// shared read-only. The first worker to see the gap or a broken row stops
// the others.
//
// The zero value is ready to use.
type Searcher struct {
	// Workers is the number of goroutines. Zero or negative means one per
	// CPU. It is capped at the number of rows.
	Workers int

	// ProgressEvery logs a progress line each time this many rows have been
	// scanned across all workers. Zero disables progress logging.
	ProgressEvery int64

	// Clock times progress lines. Defaults to timeutil.RealClock.
	Clock timeutil.Clock
}

func (s *Searcher) workers(domainMax int64) int {
	n := s.Workers
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if rows := domainMax + 1; rows > 0 && int64(n) > rows {
		n = int(rows)
	}
	return n
}

func (s *Searcher) clock() timeutil.Clock {
	if s.Clock == nil {
		return timeutil.RealClock{}
	}
	return s.Clock
}

// FindGap returns the one position in [0, domainMax]² outside every
// exclusion zone. Errors match FindGap.
func (s *Searcher) FindGap(ctx context.Context, sensors []sensor.Sensor, domainMax int64) (geom.Point, error) {
	if domainMax < 0 {
		return geom.Point{}, ErrNoGap
	}

	workers := s.workers(domainMax)
	step := int64(workers)
	clock := s.clock()
	start := clock.Now()
	d := SquareDomain(domainMax)

	var (
		halted  atomic.Bool
		scanned atomic.Int64
		once    sync.Once
		gap     geom.Point
	)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		first := int64(w)
		g.Go(func() error {
			c := span.NewCompactor(d, len(sensors))
			var i int64
			for row := first; row <= domainMax; i++ {
				if halted.Load() {
					return nil
				}
				if i%ctxCheckRows == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}

				x, found, err := gapOnRow(collectRow(c, sensors, row), row)
				if err != nil {
					halted.Store(true)
					return err
				}
				if found {
					once.Do(func() { gap = geom.Pt(x, row) })
					halted.Store(true)
					return errFound
				}

				if n := scanned.Add(1); s.ProgressEvery > 0 && n%s.ProgressEvery == 0 {
					s.logProgress(clock, start, n, domainMax+1)
				}

				if domainMax-row < step {
					break
				}
				row += step
			}
			return nil
		})
	}

	switch err := g.Wait(); {
	case errors.Is(err, errFound):
		return gap, nil
	case err != nil:
		return geom.Point{}, err
	}
	if err := ctx.Err(); err != nil {
		return geom.Point{}, err
	}
	return geom.Point{}, ErrNoGap
}

func (s *Searcher) logProgress(clock timeutil.Clock, start time.Time, scanned, rows int64) {
	elapsed := clock.Since(start)
	if elapsed <= 0 {
		monitoring.Logf("gap search: scanned %d/%d rows", scanned, rows)
		return
	}
	rate := float64(scanned) / elapsed.Seconds()
	monitoring.Logf("gap search: scanned %d/%d rows (%.0f rows/s)", scanned, rows, rate)
}
