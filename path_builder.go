// path_builder.go

package rig

import "fmt"

// PathBuilder provides a fluent interface for path construction.
// All methods return the builder for chaining.
type PathBuilder struct {
	path *Path
}

// BuildPath starts a new path builder.
func BuildPath() *PathBuilder {
	return &PathBuilder{path: NewPath()}
}

// MoveTo starts a new subpath.
func (b *PathBuilder) MoveTo(p Point) *PathBuilder {
	b.path.MoveTo(p)
	return b
}

// LineTo draws a line.
func (b *PathBuilder) LineTo(p Point) *PathBuilder {
	b.path.LineTo(p)
	return b
}

// QuadTo draws a quadratic Bezier curve.
func (b *PathBuilder) QuadTo(c, p Point) *PathBuilder {
	b.path.QuadTo(c, p)
	return b
}

// CubicTo draws a cubic Bezier curve.
func (b *PathBuilder) CubicTo(c1, c2, p Point) *PathBuilder {
	b.path.CubicTo(c1, c2, p)
	return b
}

// Close closes the current subpath.
func (b *PathBuilder) Close() *PathBuilder {
	b.path.Close()
	return b
}

// Build returns the constructed path.
func (b *PathBuilder) Build() *Path {
	return b.path
}

// BuildShapePath evaluates every shape point at base and connects them in
// order. Each segment is a cubic when the previous point has a leading
// control and the current point a following control, a quadratic when only
// one of them exists and a line otherwise. A closed path gets the segment
// from the last point back to the first, then a Close.
//
// The first evaluation error aborts construction; no partial path is
// returned.
func BuildShapePath(points []*ShapePoint, base Point, closed bool) (*Path, error) {
	b := BuildPath()
	if len(points) == 0 {
		return b.Build(), nil
	}

	start, err := points[0].origin.GetAtBasePoint(base)
	if err != nil {
		return nil, fmt.Errorf("rig: shape point %s: %w", points[0].id, err)
	}
	b.MoveTo(start)

	for i := 1; i < len(points); i++ {
		if err := addSegment(b, points[i-1], points[i], base); err != nil {
			return nil, err
		}
	}

	if closed {
		if err := addSegment(b, points[len(points)-1], points[0], base); err != nil {
			return nil, err
		}
		b.Close()
	}
	return b.Build(), nil
}

func addSegment(b *PathBuilder, prev, curr *ShapePoint, base Point) error {
	wrap := func(err error) error {
		return fmt.Errorf("rig: segment %s -> %s: %w", prev.id, curr.id, err)
	}

	dst, err := curr.origin.GetAtBasePoint(base)
	if err != nil {
		return wrap(err)
	}
	prevCtl, havePrev, err := evalOptional(prev.LeadingGlobal, base)
	if err != nil {
		return wrap(err)
	}
	currCtl, haveCurr, err := evalOptional(curr.FollowingGlobal, base)
	if err != nil {
		return wrap(err)
	}

	switch {
	case havePrev && haveCurr:
		b.CubicTo(prevCtl, currCtl, dst)
	case havePrev:
		b.QuadTo(prevCtl, dst)
	case haveCurr:
		b.QuadTo(currCtl, dst)
	default:
		b.LineTo(dst)
	}
	return nil
}

// evalOptional evaluates an optional control magic point at base.
func evalOptional(get func() (*MagicPoint, error), base Point) (Point, bool, error) {
	m, err := get()
	if err != nil || m == nil {
		return Point{}, false, err
	}
	p, err := m.GetAtBasePoint(base)
	if err != nil {
		return Point{}, false, err
	}
	return p, true, nil
}
