package tps

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Anchors closer together than this fraction of their distance from the
// coordinate origin are treated as one position.
const coincidentTolerance = 1e-9

// Anchor sets whose minor spread is below this fraction of the major spread
// are treated as collinear.
const collinearTolerance = 1e-10

// basis is the polynomial part of the interpolant together with the
// normalization that maps scene coordinates into the unit disc around the
// anchor centroid.
type basis struct {
	dim    int     // number of polynomial terms: 1, 2 or 3
	origin Point   // anchor centroid
	scale  float64 // 1 / largest anchor distance from origin
	dir    Point   // unit direction of the anchor line when dim == 2
}

func newBasis(anchors []Point) basis {
	var c Point
	for _, a := range anchors {
		c.X += a.X
		c.Y += a.Y
	}
	n := float64(len(anchors))
	c.X /= n
	c.Y /= n

	extent := 0.0
	for _, a := range anchors {
		extent = max(extent, math.Hypot(a.X-c.X, a.Y-c.Y))
	}

	b := basis{dim: 1, origin: c, scale: 1}
	if extent <= coincidentTolerance*max(1, math.Hypot(c.X, c.Y)) {
		return b
	}
	b.scale = 1 / extent

	var sxx, sxy, syy float64
	for _, a := range anchors {
		q := b.normalize(a)
		sxx += q.X * q.X
		sxy += q.X * q.Y
		syy += q.Y * q.Y
	}
	cov := mat.NewSymDense(2, []float64{sxx / n, sxy / n, sxy / n, syy / n})

	var eig mat.EigenSym
	if !eig.Factorize(cov, true) {
		// Only happens for non-finite input, which NewSystem rejects earlier.
		b.dim = 3
		return b
	}
	vals := eig.Values(nil) // ascending
	if vals[0] > collinearTolerance*vals[1] {
		b.dim = 3
		return b
	}

	var vecs mat.Dense
	eig.VectorsTo(&vecs)
	b.dim = 2
	b.dir = Point{X: vecs.At(0, 1), Y: vecs.At(1, 1)}
	return b
}

func (b basis) normalize(p Point) Point {
	return Point{X: (p.X - b.origin.X) * b.scale, Y: (p.Y - b.origin.Y) * b.scale}
}

// term returns the k-th polynomial term at the normalized point q.
func (b basis) term(k int, q Point) float64 {
	switch {
	case k == 0:
		return 1
	case b.dim == 2:
		return q.X*b.dir.X + q.Y*b.dir.Y
	case k == 1:
		return q.X
	default:
		return q.Y
	}
}
