// Package tps implements thin-plate-spline radial basis interpolation of a
// scalar field over the plane.
//
// Given N anchor positions and one target value per anchor, the interpolant
//
//	f(p) = Σ wᵢ·U(|p - aᵢ|) + a₁ + a₂·x + a₃·y,   U(r) = r²·ln r,  U(0) = 0
//
// passes exactly through every anchor value. The weights come from the
// (N+3)×(N+3) augmented system
//
//	| K  P | | w |   | v |
//	| Pᵀ 0 | | a | = | 0 |
//
// solved once per anchor set. A System holds the LU factorization of that
// matrix so several value channels (X and Y of a 2D position) share a
// single factorization:
//
//	sys, err := tps.NewSystem(anchors)
//	if err != nil {
//	    return err // errors.Is(err, tps.ErrSingular) for coincident anchors
//	}
//	fx, _ := sys.Fit(xs)
//	fy, _ := sys.Fit(ys)
//	p := tps.Point{X: fx.Value(q), Y: fy.Value(q)}
//
// # Degenerate anchor sets
//
// The polynomial part is reduced to the affine dimension of the anchors:
// [1, x, y] for anchors spanning the plane, [1, t] along the line for
// collinear anchors and [1] when every anchor sits at one position. A single
// anchor therefore interpolates as a constant. Two or more anchors at the
// same position always yield ErrSingular.
//
// Interpolators are immutable and safe for concurrent use.
package tps
