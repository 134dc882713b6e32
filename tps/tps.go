package tps

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// MaxCondition is the largest estimated condition number of the augmented
// matrix that is still accepted as solvable.
const MaxCondition = 1e14

// Point is an anchor or query position. It is layout-compatible with the
// rig package's Point so values convert directly.
type Point struct {
	X, Y float64
}

// Kernel is the thin-plate radial basis function U(r) = r²·ln(r), with
// U(0) = 0.
func Kernel(r float64) float64 {
	if r == 0 {
		return 0
	}
	return r * r * math.Log(r)
}

// System is a factorized thin-plate-spline system for one anchor set.
// It is immutable after construction; a changed anchor set needs a new
// System.
type System struct {
	raw     []Point
	anchors []Point // normalized
	basis   basis
	lu      mat.LU
	cond    float64
}

// NewSystem assembles and factorizes the augmented matrix for anchors.
//
// It returns ErrNoAnchors for an empty anchor list, ErrNonFinite for NaN or
// infinite coordinates and ErrSingular when the matrix cannot be inverted,
// which happens whenever two anchors share a position.
//
// Collinear anchors are not singular: the polynomial part drops to [1, t]
// along their line, and to [1] for a single anchor, so the system stays
// solvable.
func NewSystem(anchors []Point) (*System, error) {
	n := len(anchors)
	if n == 0 {
		return nil, ErrNoAnchors
	}
	for i, a := range anchors {
		if !isFinite(a.X) || !isFinite(a.Y) {
			return nil, fmt.Errorf("%w: anchor %d is (%g, %g)", ErrNonFinite, i, a.X, a.Y)
		}
	}

	s := &System{
		raw:   append([]Point(nil), anchors...),
		basis: newBasis(anchors),
	}
	s.anchors = make([]Point, n)
	for i, a := range anchors {
		s.anchors[i] = s.basis.normalize(a)
	}

	m := s.basis.dim
	size := n + m
	a := mat.NewDense(size, size, nil)
	for i := range n {
		for j := i + 1; j < n; j++ {
			u := Kernel(distance(s.anchors[i], s.anchors[j]))
			a.Set(i, j, u)
			a.Set(j, i, u)
		}
		for k := range m {
			t := s.basis.term(k, s.anchors[i])
			a.Set(i, n+k, t)
			a.Set(n+k, i, t)
		}
	}

	s.lu.Factorize(a)
	s.cond = s.lu.Cond()
	if math.IsNaN(s.cond) || s.cond > MaxCondition {
		return nil, fmt.Errorf("%w: %d anchors, condition number %g", ErrSingular, n, s.cond)
	}
	return s, nil
}

// Len returns the number of anchors.
func (s *System) Len() int { return len(s.raw) }

// Anchors returns a copy of the anchor positions in their original order.
func (s *System) Anchors() []Point {
	return append([]Point(nil), s.raw...)
}

// Cond returns the estimated condition number of the augmented matrix.
func (s *System) Cond() float64 { return s.cond }

// Fit solves for the interpolant that takes values[i] at anchor i.
func (s *System) Fit(values []float64) (*Interpolator, error) {
	n := len(s.anchors)
	if len(values) != n {
		return nil, fmt.Errorf("%w: %d anchors, %d values", ErrLengthMismatch, n, len(values))
	}

	rhs := make([]float64, n+s.basis.dim)
	for i, v := range values {
		if !isFinite(v) {
			return nil, fmt.Errorf("%w: value %d is %g", ErrNonFinite, i, v)
		}
		rhs[i] = v
	}

	var w mat.VecDense
	if err := s.lu.SolveVecTo(&w, false, mat.NewVecDense(len(rhs), rhs)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}

	weights := make([]float64, len(rhs))
	for i := range weights {
		weights[i] = w.AtVec(i)
		if !isFinite(weights[i]) {
			return nil, fmt.Errorf("%w: weight %d is %g", ErrSingular, i, weights[i])
		}
	}
	return &Interpolator{sys: s, weights: weights}, nil
}

// Interpolator evaluates one solved scalar channel.
type Interpolator struct {
	sys     *System
	weights []float64 // N radial weights followed by the polynomial coefficients
}

// New builds and solves an interpolator in one step.
func New(anchors []Point, values []float64) (*Interpolator, error) {
	if len(anchors) != len(values) {
		return nil, fmt.Errorf("%w: %d anchors, %d values", ErrLengthMismatch, len(anchors), len(values))
	}
	s, err := NewSystem(anchors)
	if err != nil {
		return nil, err
	}
	return s.Fit(values)
}

// Len returns the number of anchors.
func (f *Interpolator) Len() int { return len(f.sys.anchors) }

// Anchors returns a copy of the anchor positions.
func (f *Interpolator) Anchors() []Point { return f.sys.Anchors() }

// Value evaluates the interpolant at p.
func (f *Interpolator) Value(p Point) float64 {
	s := f.sys
	q := s.basis.normalize(p)
	n := len(s.anchors)

	var sum float64
	for i, a := range s.anchors {
		sum += f.weights[i] * Kernel(distance(q, a))
	}
	for k := range s.basis.dim {
		sum += f.weights[n+k] * s.basis.term(k, q)
	}
	return sum
}

func distance(p, q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

func isFinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}
