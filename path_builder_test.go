package rig

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/draganimate/rig/tps"
)

func TestPathBuilder_Basic(t *testing.T) {
	path := BuildPath().
		MoveTo(Pt(0, 0)).
		LineTo(Pt(100, 0)).
		LineTo(Pt(100, 100)).
		Close().
		Build()

	if path == nil {
		t.Fatal("expected non-nil path")
	}

	// Check path has elements
	count := len(path.Elements())
	if count != 4 { // MoveTo, LineTo, LineTo, Close
		t.Errorf("expected 4 elements, got %d", count)
	}
	if !path.IsClosed() {
		t.Error("expected closed path")
	}
	if path.CurrentPoint() != Pt(0, 0) {
		t.Errorf("CurrentPoint after Close = %v, want start", path.CurrentPoint())
	}
}

// constantPoint returns a magic point with value v at every key point of set.
func constantPoint(t *testing.T, set *KeyPointSet, v Point) *MagicPoint {
	t.Helper()
	m := NewMagicPoint(set)
	for _, kp := range set.KeyPoints() {
		if err := m.SetAtKeyPoint(kp, v); err != nil {
			t.Fatal(err)
		}
	}
	return m
}

func segmentKinds(p *Path) []string {
	var kinds []string
	for _, e := range p.Elements() {
		switch e.(type) {
		case MoveTo:
			kinds = append(kinds, "move")
		case LineTo:
			kinds = append(kinds, "line")
		case QuadTo:
			kinds = append(kinds, "quad")
		case CubicTo:
			kinds = append(kinds, "cubic")
		case Close:
			kinds = append(kinds, "close")
		}
	}
	return kinds
}

func TestBuildShapePathSegmentSelection(t *testing.T) {
	set, _ := newTestSet(t, Pt(0, 0), Pt(100, 0), Pt(0, 100))
	newPoints := func() []*ShapePoint {
		return []*ShapePoint{
			NewShapePoint(constantPoint(t, set, Pt(0, 0))),
			NewShapePoint(constantPoint(t, set, Pt(10, 0))),
			NewShapePoint(constantPoint(t, set, Pt(10, 10))),
			NewShapePoint(constantPoint(t, set, Pt(0, 10))),
		}
	}

	tests := []struct {
		name   string
		n      int
		closed bool
		setup  func(points []*ShapePoint)
		want   []string
	}{
		{
			name: "open without controls",
			n:    3,
			want: []string{"move", "line", "line"},
		},
		{
			name: "leading control on first point",
			n:    3,
			setup: func(points []*ShapePoint) {
				points[0].SetMirrored(false)
				points[0].SetLeadingRelative(constantPoint(t, set, Pt(5, -5)))
			},
			want: []string{"move", "quad", "line"},
		},
		{
			name: "following control on second point",
			n:    3,
			setup: func(points []*ShapePoint) {
				points[1].SetMirrored(false)
				if err := points[1].SetFollowingRelative(constantPoint(t, set, Pt(-5, 5))); err != nil {
					t.Fatal(err)
				}
			},
			want: []string{"move", "quad", "line"},
		},
		{
			name: "mirrored control on middle point",
			n:    3,
			setup: func(points []*ShapePoint) {
				points[1].SetLeadingRelative(constantPoint(t, set, Pt(3, 0)))
			},
			want: []string{"move", "quad", "quad"},
		},
		{
			name: "both controls",
			n:    3,
			setup: func(points []*ShapePoint) {
				points[0].SetLeadingRelative(constantPoint(t, set, Pt(3, 0)))
				points[1].SetLeadingRelative(constantPoint(t, set, Pt(0, 3)))
			},
			want: []string{"move", "cubic", "quad"},
		},
		{
			name:   "closed four points",
			n:      4,
			closed: true,
			want:   []string{"move", "line", "line", "line", "line", "close"},
		},
		{
			name:   "closed single point",
			n:      1,
			closed: true,
			want:   []string{"move", "line", "close"},
		},
		{
			name: "empty",
			n:    0,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := newPoints()[:tt.n]
			if tt.setup != nil {
				tt.setup(points)
			}
			path, err := BuildShapePath(points, Pt(20, 20), tt.closed)
			if err != nil {
				t.Fatalf("BuildShapePath: %v", err)
			}
			if diff := cmp.Diff(tt.want, segmentKinds(path)); diff != "" {
				t.Errorf("elements mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildShapePathClosingSegment(t *testing.T) {
	set, _ := newTestSet(t, Pt(0, 0))
	corners := []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)}
	points := make([]*ShapePoint, len(corners))
	for i, c := range corners {
		points[i] = NewShapePoint(constantPoint(t, set, c))
	}

	path, err := BuildShapePath(points, Pt(0, 0), true)
	if err != nil {
		t.Fatal(err)
	}
	segs := path.Segments()
	if len(segs) != 4 {
		t.Fatalf("got %d segments, want 4", len(segs))
	}
	last, ok := segs[3].(LineTo)
	if !ok {
		t.Fatalf("closing segment is %T, want LineTo", segs[3])
	}
	if diff := cmp.Diff(Pt(0, 0), last.Point, approxPoint); diff != "" {
		t.Errorf("closing segment does not return to point 0 (-want +got):\n%s", diff)
	}
	if !path.IsClosed() {
		t.Error("path does not end with Close")
	}
}

func TestBuildShapePathControlPositions(t *testing.T) {
	set, _ := newTestSet(t, Pt(0, 0))
	p0 := NewShapePoint(constantPoint(t, set, Pt(0, 0)))
	p1 := NewShapePoint(constantPoint(t, set, Pt(100, 0)))
	p0.SetLeadingRelative(constantPoint(t, set, Pt(30, 40)))
	p1.SetLeadingRelative(constantPoint(t, set, Pt(20, 0)))

	path, err := BuildShapePath([]*ShapePoint{p0, p1}, Pt(0, 0), false)
	if err != nil {
		t.Fatal(err)
	}
	want := []PathElement{
		MoveTo{Point: Pt(0, 0)},
		CubicTo{Control1: Pt(30, 40), Control2: Pt(80, 0), Point: Pt(100, 0)},
	}
	if diff := cmp.Diff(want, path.Elements(), approxPoint); diff != "" {
		t.Errorf("elements mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildShapePathPropagatesErrors(t *testing.T) {
	set, kps := newTestSet(t, Pt(5, 5), Pt(5, 5))
	bad := NewMagicPoint(set)
	if err := bad.SetAtKeyPoint(kps[0], Pt(0, 0)); err != nil {
		t.Fatal(err)
	}
	if err := bad.SetAtKeyPoint(kps[1], Pt(9, 9)); err != nil {
		t.Fatal(err)
	}

	points := []*ShapePoint{NewShapePoint(bad)}
	path, err := BuildShapePath(points, Pt(0, 0), false)
	if !errors.Is(err, tps.ErrSingular) {
		t.Fatalf("BuildShapePath = %v, want tps.ErrSingular", err)
	}
	if path != nil {
		t.Error("expected no partial path on failure")
	}
}

func TestPathTransformAndBounds(t *testing.T) {
	path := BuildPath().
		MoveTo(Pt(0, 0)).
		QuadTo(Pt(5, -10), Pt(10, 0)).
		CubicTo(Pt(12, 4), Pt(8, 20), Pt(0, 10)).
		Close().
		Build()

	b := path.Bounds()
	if diff := cmp.Diff(Rect{Min: Pt(0, -10), Max: Pt(12, 20)}, b); diff != "" {
		t.Errorf("Bounds mismatch (-want +got):\n%s", diff)
	}
	if !NewPath().Bounds().Empty() {
		t.Error("empty path should have empty bounds")
	}

	moved := path.Transform(Translate(100, 50))
	if diff := cmp.Diff(Rect{Min: Pt(100, 40), Max: Pt(112, 70)}, moved.Bounds()); diff != "" {
		t.Errorf("translated Bounds mismatch (-want +got):\n%s", diff)
	}
	if moved.Len() != path.Len() {
		t.Errorf("Transform changed element count: %d vs %d", moved.Len(), path.Len())
	}

	clone := path.Clone()
	clone.LineTo(Pt(1, 1))
	if clone.Len() == path.Len() {
		t.Error("Clone shares elements with the original")
	}
}
