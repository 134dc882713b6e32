package interaction

import (
	"errors"
	"math"
	"testing"

	"github.com/draganimate/rig"
	"github.com/draganimate/rig/tps"
)

func TestBasePointDrag(t *testing.T) {
	scene, kps := newTestScene(t)
	addTriangle(t, scene, kps[0])
	v := NewViewport(scene)
	d := NewBasePointDrag(v)

	if _, err := d.Move(rig.Pt(1, 1)); !errors.Is(err, ErrNotDragging) {
		t.Fatalf("Move before Start = %v, want ErrNotDragging", err)
	}
	if _, err := d.Start(rig.Pt(math.NaN(), 0)); !errors.Is(err, rig.ErrNonFinite) {
		t.Fatalf("Start at NaN = %v, want rig.ErrNonFinite", err)
	}
	if d.Active() {
		t.Fatal("failed Start left the drag active")
	}

	f, err := d.Start(rig.Pt(50, 50))
	if err != nil {
		t.Fatal(err)
	}
	if f.Frozen || len(f.Paths) != 1 || f.Base != rig.Pt(50, 50) {
		t.Fatalf("start frame = %+v", f)
	}
	if _, err := d.Start(rig.Pt(50, 50)); !errors.Is(err, ErrDragActive) {
		t.Errorf("second Start = %v, want ErrDragActive", err)
	}

	f, err = d.Move(rig.Pt(60, 40))
	if err != nil {
		t.Fatal(err)
	}
	if f.Frozen || f.Base != rig.Pt(60, 40) || v.BasePoint() != rig.Pt(60, 40) {
		t.Errorf("move frame = %+v, viewport base %v", f, v.BasePoint())
	}

	f, err = d.Move(rig.Pt(math.Inf(1), 0))
	if err != nil {
		t.Fatal(err)
	}
	if !f.Frozen || !errors.Is(f.Err, rig.ErrNonFinite) {
		t.Errorf("non-finite move: Frozen = %v, Err = %v", f.Frozen, f.Err)
	}
	if f.Base != rig.Pt(60, 40) || v.BasePoint() != rig.Pt(60, 40) {
		t.Errorf("frozen frame at %v, viewport at %v, want both at (60, 40)", f.Base, v.BasePoint())
	}

	f, err = d.Move(rig.Pt(70, 70))
	if err != nil {
		t.Fatal(err)
	}
	if f.Frozen {
		t.Error("drag did not recover after a frozen frame")
	}

	f, err = d.End()
	if err != nil {
		t.Fatal(err)
	}
	if f.Base != rig.Pt(70, 70) || d.Active() {
		t.Errorf("end frame at %v, active %v", f.Base, d.Active())
	}
	if _, err := d.End(); !errors.Is(err, ErrNotDragging) {
		t.Errorf("second End = %v, want ErrNotDragging", err)
	}
}

func TestBasePointDragStartFailure(t *testing.T) {
	scene, kps := newTestScene(t)
	addTriangle(t, scene, kps[0])
	// Two coincident key points make every solve singular.
	if err := scene.MoveKeyPoint(kps[1], kps[0].Position()); err != nil {
		t.Fatal(err)
	}
	d := NewBasePointDrag(NewViewport(scene))
	if _, err := d.Start(rig.Pt(50, 50)); !errors.Is(err, tps.ErrSingular) {
		t.Errorf("Start on a singular rig = %v, want tps.ErrSingular", err)
	}
}

func TestKeyPointDrag(t *testing.T) {
	scene, kps := newTestScene(t)
	addTriangle(t, scene, kps[0])
	v := NewViewport(scene)
	d := NewKeyPointDrag(v)

	f, err := d.Start(kps[1])
	if err != nil {
		t.Fatal(err)
	}
	if d.KeyPoint() != kps[1] || f.Base != rig.Pt(75, 25) || v.BasePoint() != rig.Pt(75, 25) {
		t.Fatalf("start: key point %v, frame base %v, viewport base %v", d.KeyPoint(), f.Base, v.BasePoint())
	}
	if _, err := d.Start(kps[2]); !errors.Is(err, ErrDragActive) {
		t.Errorf("second Start = %v, want ErrDragActive", err)
	}

	f, err = d.Move(rig.Pt(80, 30))
	if err != nil {
		t.Fatal(err)
	}
	if f.Frozen || kps[1].Position() != rig.Pt(80, 30) || v.BasePoint() != rig.Pt(80, 30) {
		t.Errorf("move: frozen %v, key point at %v, base %v", f.Frozen, kps[1].Position(), v.BasePoint())
	}

	// Dropping the key point onto another one cannot be solved.
	f, err = d.Move(kps[2].Position())
	if err != nil {
		t.Fatal(err)
	}
	if !f.Frozen || !errors.Is(f.Err, tps.ErrSingular) {
		t.Errorf("coincident move: Frozen = %v, Err = %v", f.Frozen, f.Err)
	}
	if kps[1].Position() != rig.Pt(80, 30) {
		t.Errorf("key point left at %v, want it restored to (80, 30)", kps[1].Position())
	}
	if f.Base != rig.Pt(80, 30) || v.BasePoint() != rig.Pt(80, 30) {
		t.Errorf("frozen frame at %v, viewport at %v", f.Base, v.BasePoint())
	}
	if _, err := v.Paths(); err != nil {
		t.Errorf("scene not evaluable after a frozen frame: %v", err)
	}

	f, err = d.Move(rig.Pt(math.NaN(), 1))
	if err != nil {
		t.Fatal(err)
	}
	if !f.Frozen || !errors.Is(f.Err, rig.ErrNonFinite) {
		t.Errorf("NaN move: Frozen = %v, Err = %v", f.Frozen, f.Err)
	}

	if _, err := d.Move(rig.Pt(90, 10)); err != nil {
		t.Fatal(err)
	}
	f, err = d.End()
	if err != nil {
		t.Fatal(err)
	}
	if f.Base != rig.Pt(90, 10) || d.Active() || d.KeyPoint() != nil {
		t.Errorf("end: frame base %v, active %v", f.Base, d.Active())
	}
}

func TestKeyPointDragErrors(t *testing.T) {
	scene, _ := newTestScene(t)
	d := NewKeyPointDrag(NewViewport(scene))

	tests := []struct {
		name string
		kp   *rig.KeyPoint
		want error
	}{
		{"nil", nil, rig.ErrNilKeyPoint},
		{"foreign", rig.NewKeyPoint(rig.Pt(1, 1)), rig.ErrForeignKeyPoint},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := d.Start(tt.kp); !errors.Is(err, tt.want) {
				t.Errorf("Start = %v, want %v", err, tt.want)
			}
			if d.Active() {
				t.Error("failed Start left the drag active")
			}
		})
	}

	if _, err := d.Move(rig.Pt(1, 1)); !errors.Is(err, ErrNotDragging) {
		t.Errorf("Move while idle = %v, want ErrNotDragging", err)
	}
	if _, err := d.End(); !errors.Is(err, ErrNotDragging) {
		t.Errorf("End while idle = %v, want ErrNotDragging", err)
	}
}
