// Package sensor models a sensor whose exclusion zone is the Manhattan
// diamond reaching out to its nearest known reference point.
package sensor

import (
	"fmt"

	"github.com/banshee-data/sensorzone/internal/geom"
	"github.com/banshee-data/sensorzone/internal/span"
)

// Sensor is a location plus the reference point (closest beacon) that sets
// its exclusion radius. Sensors are immutable once built with New.
type Sensor struct {
	Location  geom.Point
	Reference geom.Point
	radius    int64
}

// New returns a sensor at loc whose nearest reference point is ref.
func New(loc, ref geom.Point) Sensor {
	return Sensor{Location: loc, Reference: ref, radius: geom.Manhattan(loc, ref)}
}

// Radius is the Manhattan distance from Location to Reference.
func (s Sensor) Radius() int64 {
	return s.radius
}

// Covers reports whether p lies inside the exclusion zone.
func (s Sensor) Covers(p geom.Point) bool {
	return geom.Manhattan(s.Location, p) <= s.radius
}

// ExcludedSpanOnRow returns the x-interval of row y inside the exclusion
// zone. The second result is false when the zone does not reach the row.
// A zone that just touches the row yields a single-cell span.
func (s Sensor) ExcludedSpanOnRow(y int64) (span.Span, bool) {
	remaining := s.radius - geom.Abs(y-s.Location.Y)
	if remaining < 0 {
		return span.Span{}, false
	}
	return span.New(s.Location.X-remaining, s.Location.X+remaining), true
}

func (s Sensor) String() string {
	return fmt.Sprintf("sensor %v -> %v (r=%d)", s.Location, s.Reference, s.radius)
}

// References returns the distinct reference points of sensors in first-seen
// order.
func References(sensors []Sensor) []geom.Point {
	seen := make(map[geom.Point]struct{}, len(sensors))
	var refs []geom.Point
	for _, s := range sensors {
		if _, ok := seen[s.Reference]; ok {
			continue
		}
		seen[s.Reference] = struct{}{}
		refs = append(refs, s.Reference)
	}
	return refs
}

// MaxRadius returns the largest radius among sensors, or 0 for none.
func MaxRadius(sensors []Sensor) int64 {
	var r int64
	for _, s := range sensors {
		r = max(r, s.radius)
	}
	return r
}
