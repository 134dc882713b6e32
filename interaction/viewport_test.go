package interaction

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/draganimate/rig"
)

var approxPoint = cmpopts.EquateApprox(0, 1e-9)

// newTestScene returns a 100×100 scene with the default key points at
// (25,25), (75,25), (75,75) and (25,75), in that order.
func newTestScene(t testing.TB) (*rig.Scene, []*rig.KeyPoint) {
	t.Helper()
	scene := rig.NewScene(100, 100)
	kps := scene.KeyPointSet().KeyPoints()
	if len(kps) != 4 {
		t.Fatalf("scene has %d key points, want 4", len(kps))
	}
	return scene, kps
}

// addTriangle adds a closed triangle authored at kp only.
func addTriangle(t testing.TB, scene *rig.Scene, kp *rig.KeyPoint) *rig.Shape {
	t.Helper()
	sh := rig.NewShape()
	for _, p := range []rig.Point{rig.Pt(10, 10), rig.Pt(90, 10), rig.Pt(50, 90)} {
		m := scene.NewMagicPoint()
		if err := m.SetAtKeyPoint(kp, p); err != nil {
			t.Fatal(err)
		}
		if err := sh.AddPoint(rig.NewShapePoint(m)); err != nil {
			t.Fatal(err)
		}
	}
	sh.Close()
	scene.AddShape(sh)
	return sh
}

func TestNewViewportBasePoint(t *testing.T) {
	scene, kps := newTestScene(t)
	v := NewViewport(scene)
	if got := v.BasePoint(); got != kps[0].Position() {
		t.Errorf("base point = %v, want first key point %v", got, kps[0].Position())
	}

	empty := NewViewport(rig.NewScene(40, 20, rig.WithSeedKeyPoints()))
	if got := empty.BasePoint(); got != rig.Pt(20, 10) {
		t.Errorf("base point of empty scene = %v, want centre (20, 10)", got)
	}
	if _, err := empty.NearestKeyPoint(); err == nil {
		t.Error("NearestKeyPoint on an empty scene should fail")
	}
	empty.SnapBasePoint()
	if got := empty.BasePoint(); got != rig.Pt(20, 10) {
		t.Errorf("SnapBasePoint on an empty scene moved the base to %v", got)
	}
}

func TestViewportCoordinates(t *testing.T) {
	scene, _ := newTestScene(t)
	v := NewViewport(scene)
	v.PanBy(10, -5)
	v.ZoomAt(2, rig.Pt(10, -5))

	if got := v.Zoom(); got != 2 {
		t.Fatalf("zoom = %v, want 2", got)
	}
	if got := v.PixelSize(); got != 0.5 {
		t.Errorf("pixel size = %v, want 0.5", got)
	}

	scenePt := rig.Pt(30, 40)
	screen := v.ToScreen(scenePt)
	if diff := cmp.Diff(rig.Pt(70, 75), screen, approxPoint); diff != "" {
		t.Errorf("ToScreen mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(scenePt, v.ToScene(screen), approxPoint); diff != "" {
		t.Errorf("ToScene round trip mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(screen, v.SceneToScreen().TransformPoint(scenePt), approxPoint); diff != "" {
		t.Errorf("SceneToScreen disagrees with ToScreen (-want +got):\n%s", diff)
	}
}

func TestViewportZoomAtKeepsAnchor(t *testing.T) {
	scene, _ := newTestScene(t)
	v := NewViewport(scene)
	anchor := rig.Pt(120, 80)
	before := v.ToScene(anchor)

	v.ZoomAt(1.5, anchor)
	v.ZoomAt(0.5, anchor)
	if diff := cmp.Diff(before, v.ToScene(anchor), approxPoint); diff != "" {
		t.Errorf("scene point under the anchor moved (-want +got):\n%s", diff)
	}

	v.ZoomAt(0, anchor)
	v.ZoomAt(-1, anchor)
	if got := v.Zoom(); got != 0.75 {
		t.Errorf("non-positive factors changed zoom to %v", got)
	}
}

func TestViewportFit(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		screenW       float64
		screenH       float64
		wantZoom      float64
		wantPan       rig.Point
	}{
		{"wide scene", 100, 50, 230, 230, 2, rig.Pt(15, 65)},
		{"tall scene", 50, 100, 230, 230, 2, rig.Pt(65, 15)},
		{"exact", 100, 100, 130, 130, 1, rig.Pt(15, 15)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViewport(rig.NewScene(tt.width, tt.height))
			v.Fit(tt.screenW, tt.screenH)
			if got := v.Zoom(); got != tt.wantZoom {
				t.Errorf("zoom = %v, want %v", got, tt.wantZoom)
			}
			if diff := cmp.Diff(tt.wantPan, v.Pan(), approxPoint); diff != "" {
				t.Errorf("pan mismatch (-want +got):\n%s", diff)
			}
		})
	}

	v := NewViewport(rig.NewScene(100, 100))
	v.Fit(20, 20)
	if got := v.Zoom(); got != 1 {
		t.Errorf("Fit into a screen smaller than the margins changed zoom to %v", got)
	}
}

func TestHoveredKeyPoint(t *testing.T) {
	scene, kps := newTestScene(t)

	tests := []struct {
		name   string
		zoom   float64
		radius []Option
		at     rig.Point
		want   *rig.KeyPoint
	}{
		{"inside default radius", 1, nil, rig.Pt(31, 25), kps[0]},
		{"outside default radius", 1, nil, rig.Pt(36, 25), nil},
		{"radius shrinks when zoomed in", 2, nil, rig.Pt(31, 25), nil},
		{"custom radius", 1, []Option{WithHoverRadius(20)}, rig.Pt(40, 25), kps[0]},
		{"other key point", 1, nil, rig.Pt(75, 70), kps[2]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViewport(scene, tt.radius...)
			v.ZoomAt(tt.zoom, rig.Point{})
			if got := v.HoveredKeyPoint(tt.at); got != tt.want {
				t.Errorf("HoveredKeyPoint(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestSnapBasePoint(t *testing.T) {
	scene, kps := newTestScene(t)
	v := NewViewport(scene)
	v.SetBasePoint(rig.Pt(70, 80))
	if got := v.BasePoint(); got != rig.Pt(70, 80) {
		t.Fatalf("base point = %v, want (70, 80)", got)
	}
	kp, err := v.NearestKeyPoint()
	if err != nil {
		t.Fatal(err)
	}
	if kp != kps[2] {
		t.Errorf("nearest key point = %v, want %v", kp, kps[2])
	}
	v.SnapBasePoint()
	if got := v.BasePoint(); got != kps[2].Position() {
		t.Errorf("snapped base point = %v, want %v", got, kps[2].Position())
	}

	v.SetBasePoint(rig.Pt(1, math.Inf(1)))
	if got := v.BasePoint(); got != kps[2].Position() {
		t.Errorf("non-finite base point was accepted: %v", got)
	}
}

func TestViewportPaths(t *testing.T) {
	scene, kps := newTestScene(t)
	addTriangle(t, scene, kps[0])
	v := NewViewport(scene)
	paths, err := v.Paths()
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 1 {
		t.Fatalf("got %d paths, want 1", len(paths))
	}
	if !paths[0].IsClosed() {
		t.Error("triangle path should be closed")
	}
}
