package raster

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/draganimate/rig"
)

// DefaultTolerance is the maximum distance, in pixels, between a flattened
// curve and the true curve.
const DefaultTolerance = 0.25

// Fill paints the interior of path onto dst with src. Points are mapped
// through view before rasterization. Every subpath is closed implicitly.
func Fill(dst draw.Image, path *rig.Path, view rig.Matrix, src image.Image) {
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	off := rig.Pt(float64(b.Min.X), float64(b.Min.Y))
	pt := func(p rig.Point) (float32, float32) {
		q := view.TransformPoint(p).Sub(off)
		return float32(q.X), float32(q.Y)
	}

	open := false
	for _, elem := range path.Elements() {
		switch e := elem.(type) {
		case rig.MoveTo:
			if open {
				z.ClosePath()
			}
			z.MoveTo(pt(e.Point))
			open = true
		case rig.LineTo:
			z.LineTo(pt(e.Point))
		case rig.QuadTo:
			bx, by := pt(e.Control)
			cx, cy := pt(e.Point)
			z.QuadTo(bx, by, cx, cy)
		case rig.CubicTo:
			bx, by := pt(e.Control1)
			cx, cy := pt(e.Control2)
			dx, dy := pt(e.Point)
			z.CubeTo(bx, by, cx, cy, dx, dy)
		case rig.Close:
			z.ClosePath()
			open = false
		}
	}
	if open {
		z.ClosePath()
	}
	z.Draw(dst, b, src, image.Point{})
}

// Stroke paints a stroke of the given width, in destination pixels, along
// path. Joins and ends are square.
func Stroke(dst draw.Image, path *rig.Path, view rig.Matrix, width float64, src image.Image) {
	if width <= 0 {
		return
	}
	r := dst.Bounds()
	z := vector.NewRasterizer(r.Dx(), r.Dy())
	off := rig.Pt(float64(r.Min.X), float64(r.Min.Y))
	h := width / 2

	// All quads are emitted with the same orientation so that overlaps
	// accumulate instead of cancelling.
	quad := func(a, b, c, d rig.Point) {
		a, b, c, d = a.Sub(off), b.Sub(off), c.Sub(off), d.Sub(off)
		z.MoveTo(float32(a.X), float32(a.Y))
		z.LineTo(float32(b.X), float32(b.Y))
		z.LineTo(float32(c.X), float32(c.Y))
		z.LineTo(float32(d.X), float32(d.Y))
		z.ClosePath()
	}
	square := func(p rig.Point) {
		quad(p.Add(rig.Pt(-h, h)), p.Add(rig.Pt(h, h)), p.Add(rig.Pt(h, -h)), p.Add(rig.Pt(-h, -h)))
	}

	for _, line := range Flatten(path.Transform(view), DefaultTolerance) {
		for i, p := range line.Points {
			square(p)
			if i == 0 {
				continue
			}
			prev := line.Points[i-1]
			d := p.Sub(prev)
			l := d.Length()
			if l == 0 {
				continue
			}
			n := rig.Pt(-d.Y, d.X).Mul(h / l)
			quad(prev.Add(n), p.Add(n), p.Sub(n), prev.Sub(n))
		}
	}
	z.Draw(dst, r, src, image.Point{})
}

// Polyline is one flattened subpath. A closed polyline repeats its first
// point at the end.
type Polyline struct {
	Points []rig.Point
	Closed bool
}

// Flatten approximates every subpath of path by line segments no further
// than tolerance from the curves.
func Flatten(path *rig.Path, tolerance float64) []Polyline {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	var (
		out []Polyline
		cur *Polyline
	)
	last := func() rig.Point { return cur.Points[len(cur.Points)-1] }
	ensure := func() {
		if cur == nil {
			out = append(out, Polyline{Points: []rig.Point{{}}})
			cur = &out[len(out)-1]
		}
	}

	for _, elem := range path.Elements() {
		switch e := elem.(type) {
		case rig.MoveTo:
			out = append(out, Polyline{Points: []rig.Point{e.Point}})
			cur = &out[len(out)-1]
		case rig.LineTo:
			ensure()
			cur.Points = append(cur.Points, e.Point)
		case rig.QuadTo:
			ensure()
			p0 := last()
			n := steps(p0.Distance(e.Control)+e.Control.Distance(e.Point), tolerance)
			for i := 1; i <= n; i++ {
				t := float64(i) / float64(n)
				cur.Points = append(cur.Points, quadAt(p0, e.Control, e.Point, t))
			}
		case rig.CubicTo:
			ensure()
			p0 := last()
			hull := p0.Distance(e.Control1) + e.Control1.Distance(e.Control2) + e.Control2.Distance(e.Point)
			n := steps(hull, tolerance)
			for i := 1; i <= n; i++ {
				t := float64(i) / float64(n)
				cur.Points = append(cur.Points, cubicAt(p0, e.Control1, e.Control2, e.Point, t))
			}
		case rig.Close:
			if cur != nil {
				cur.Points = append(cur.Points, cur.Points[0])
				cur.Closed = true
				// Drawing after a close starts from the same point.
				start := cur.Points[0]
				out = append(out, Polyline{Points: []rig.Point{start}})
				cur = &out[len(out)-1]
			}
		}
	}

	// Drop the placeholder subpaths a trailing Close leaves behind.
	kept := out[:0]
	for _, line := range out {
		if len(line.Points) > 1 {
			kept = append(kept, line)
		}
	}
	return kept
}

// steps returns the number of segments needed to flatten a curve whose
// control hull has the given length.
func steps(hull, tolerance float64) int {
	n := int(math.Ceil(math.Sqrt(hull / tolerance)))
	return min(max(n, 1), 256)
}

func quadAt(p0, c, p1 rig.Point, t float64) rig.Point {
	u := 1 - t
	return p0.Mul(u * u).Add(c.Mul(2 * u * t)).Add(p1.Mul(t * t))
}

func cubicAt(p0, c1, c2, p1 rig.Point, t float64) rig.Point {
	u := 1 - t
	return p0.Mul(u * u * u).
		Add(c1.Mul(3 * u * u * t)).
		Add(c2.Mul(3 * u * t * t)).
		Add(p1.Mul(t * t * t))
}
