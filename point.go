package rig

import "math"

// Point represents a 2D position or offset in scene space.
// Points are plain values; arithmetic results carry no identity.
// Identified points are KeyPoints.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Neg returns the point mirrored through the origin.
func (p Point) Neg() Point {
	return Point{X: -p.X, Y: -p.Y}
}

// Length returns the length of the vector.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the Euclidean distance between two points.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// Lerp performs linear interpolation between two points.
// t=0 returns p, t=1 returns q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// IsFinite reports whether both coordinates are neither NaN nor infinite.
func (p Point) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

// Position implements Positioned.
func (p Point) Position() Point { return p }

// Positioned is implemented by anything with a location in scene space.
type Positioned interface {
	Position() Point
}

// FindNearest returns the candidate closest to target by linear scan.
// The second result is false when candidates is empty.
//
// Ties go to the first candidate at the minimum distance. That order is
// inherited from the candidate slice and carries no meaning of its own.
func FindNearest[T Positioned](target Point, candidates []T) (T, bool) {
	var nearest T
	found := false
	best := math.Inf(1)
	for _, c := range candidates {
		d := target.Distance(c.Position())
		if d < best {
			nearest = c
			best = d
			found = true
		}
	}
	return nearest, found
}

func isFinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}
