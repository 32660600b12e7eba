// Package geom holds the integer plane primitives shared by the sensor and
// search packages.
package geom

import "fmt"

// Point is an integer position on the plane. Points are plain values and
// compare equal when their coordinates match.
type Point struct {
	X int64
	Y int64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int64) Point {
	return Point{X: x, Y: y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Abs returns the absolute value of v.
func Abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// Manhattan returns |a.X-b.X| + |a.Y-b.Y|.
func Manhattan(a, b Point) int64 {
	return Abs(a.X-b.X) + Abs(a.Y-b.Y)
}

// Manhattan returns the taxicab distance from p to q.
func (p Point) Manhattan(q Point) int64 {
	return Manhattan(p, q)
}
