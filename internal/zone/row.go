package zone

import (
	"github.com/banshee-data/sensorzone/internal/geom"
	"github.com/banshee-data/sensorzone/internal/sensor"
	"github.com/banshee-data/sensorzone/internal/span"
)

// collectRow resets c and adds every sensor's excluded span on row.
func collectRow(c *span.Compactor, sensors []sensor.Sensor, row int64) span.SpanSet {
	c.Reset(c.Domain())
	for _, s := range sensors {
		if sp, ok := s.ExcludedSpanOnRow(row); ok {
			c.Add(sp)
		}
	}
	return c.Compact()
}

// RowSpans returns the compacted excluded spans of row, clamped to d.
func RowSpans(sensors []sensor.Sensor, row int64, d span.Domain) span.SpanSet {
	spans := make([]span.Span, 0, len(sensors))
	for _, s := range sensors {
		if sp, ok := s.ExcludedSpanOnRow(row); ok {
			spans = append(spans, sp)
		}
	}
	return span.Compact(spans, d)
}

// CountExcludedOnRow returns the number of positions on row that cannot hold
// an undiscovered object: every cell inside some exclusion zone, minus the
// distinct known objects (usually sensor.References) already sitting on one
// of those cells.
func CountExcludedOnRow(sensors []sensor.Sensor, row int64, known []geom.Point) int64 {
	ss := RowSpans(sensors, row, span.Unbounded)
	total := ss.Total()

	seen := make(map[geom.Point]struct{})
	for _, p := range known {
		if p.Y != row || !ss.Contains(p.X) {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		total--
	}
	return total
}
