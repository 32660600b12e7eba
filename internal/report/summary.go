// Package report renders diagnostics about a sensor field: radius
// statistics, a PNG of the exclusion zones, and an HTML chart of one row.
// None of it feeds back into the row query or gap search.
package report

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/sensorzone/internal/sensor"
)

// Summary describes the radii of a sensor field.
type Summary struct {
	Sensors      int
	References   int // distinct reference points
	MinRadius    float64
	MaxRadius    float64
	MeanRadius   float64
	StdDevRadius float64 // sample standard deviation, 0 for fewer than two sensors
}

// Summarize computes radius statistics for sensors.
func Summarize(sensors []sensor.Sensor) Summary {
	sum := Summary{
		Sensors:    len(sensors),
		References: len(sensor.References(sensors)),
	}
	if len(sensors) == 0 {
		return sum
	}

	radii := make([]float64, len(sensors))
	for i, s := range sensors {
		radii[i] = float64(s.Radius())
	}
	sum.MinRadius = floats.Min(radii)
	sum.MaxRadius = floats.Max(radii)
	if len(radii) < 2 {
		sum.MeanRadius = radii[0]
		return sum
	}
	sum.MeanRadius, sum.StdDevRadius = stat.MeanStdDev(radii, nil)
	return sum
}

func (s Summary) String() string {
	return fmt.Sprintf("%d sensors, %d beacons, radius min=%.0f max=%.0f mean=%.1f sd=%.1f",
		s.Sensors, s.References, s.MinRadius, s.MaxRadius, s.MeanRadius, s.StdDevRadius)
}
