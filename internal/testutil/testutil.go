// Package testutil provides shared test fixtures and oracles.
//
// It only deals in plain integers so that any package in the module can use
// it from its own tests without an import cycle.
package testutil

import (
	"math/rand/v2"
	"strings"
)

// ExampleInput is the fourteen-sensor scenario used across the module's
// tests. Row 10 has 26 excluded positions; on [0, 20] the only uncovered
// cell is (14, 11).
const ExampleInput = `Sensor at x=2, y=18: closest beacon is at x=-2, y=15
Sensor at x=9, y=16: closest beacon is at x=10, y=16
Sensor at x=13, y=2: closest beacon is at x=15, y=3
Sensor at x=12, y=14: closest beacon is at x=10, y=16
Sensor at x=10, y=20: closest beacon is at x=10, y=16
Sensor at x=14, y=17: closest beacon is at x=10, y=16
Sensor at x=8, y=7: closest beacon is at x=2, y=10
Sensor at x=2, y=0: closest beacon is at x=2, y=10
Sensor at x=0, y=11: closest beacon is at x=2, y=10
Sensor at x=20, y=14: closest beacon is at x=25, y=17
Sensor at x=17, y=20: closest beacon is at x=21, y=22
Sensor at x=16, y=7: closest beacon is at x=15, y=3
Sensor at x=14, y=3: closest beacon is at x=15, y=3
Sensor at x=20, y=1: closest beacon is at x=15, y=3
`

// Example scenario answers.
const (
	ExampleRow       = 10
	ExampleRowCount  = 26
	ExampleDomainMax = 20
	ExampleGapX      = 14
	ExampleGapY      = 11
	ExampleFrequency = 56000011
)

// ExampleRecords returns the example scenario as
// (sensorX, sensorY, referenceX, referenceY) tuples in input order.
func ExampleRecords() [][4]int64 {
	return [][4]int64{
		{2, 18, -2, 15},
		{9, 16, 10, 16},
		{13, 2, 15, 3},
		{12, 14, 10, 16},
		{10, 20, 10, 16},
		{14, 17, 10, 16},
		{8, 7, 2, 10},
		{2, 0, 2, 10},
		{0, 11, 2, 10},
		{20, 14, 25, 17},
		{17, 20, 21, 22},
		{16, 7, 15, 3},
		{14, 3, 15, 3},
		{20, 1, 15, 3},
	}
}

// ExampleLines returns ExampleInput split into its non-empty lines.
func ExampleLines() []string {
	return strings.Split(strings.TrimSpace(ExampleInput), "\n")
}

// CoveredCount counts the distinct integers in [min, max] covered by at
// least one closed interval. It walks every cell, so keep the domain small.
func CoveredCount(intervals [][2]int64, min, max int64) int64 {
	covered := make(map[int64]struct{})
	for _, iv := range intervals {
		for v := iv[0]; v <= iv[1]; v++ {
			if v >= min && v <= max {
				covered[v] = struct{}{}
			}
		}
	}
	return int64(len(covered))
}

// RandomIntervals returns n closed intervals whose starts fall in [lo, hi]
// and whose lengths are at most maxLen cells.
func RandomIntervals(r *rand.Rand, n int, lo, hi, maxLen int64) [][2]int64 {
	out := make([][2]int64, n)
	for i := range out {
		start := lo + r.Int64N(hi-lo+1)
		out[i] = [2]int64{start, start + r.Int64N(maxLen)}
	}
	return out
}
