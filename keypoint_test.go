package rig

import (
	"errors"
	"math"
	"testing"
)

func TestKeyPointSetIdentity(t *testing.T) {
	set := NewKeyPointSet()
	p := NewKeyPoint(Pt(1, 2))

	if err := set.AddKeyPoint(p); err != nil {
		t.Fatalf("AddKeyPoint: %v", err)
	}
	if !set.Has(p) {
		t.Error("Has(p) = false after AddKeyPoint")
	}
	if got := set.Get(p.ID()); got != p {
		t.Errorf("Get(p.ID()) = %v, want %v", got, p)
	}

	// Same coordinates, different entity.
	twin := NewKeyPoint(Pt(1, 2))
	if set.Has(twin) {
		t.Error("Has(twin) = true for an unregistered key point at equal coordinates")
	}
	if set.Get("missing") != nil {
		t.Error("Get(missing) should return nil")
	}
}

func TestKeyPointSetAddIsIdempotent(t *testing.T) {
	set := NewKeyPointSet()
	p := NewKeyPoint(Pt(1, 2))
	if err := set.AddKeyPoint(p); err != nil {
		t.Fatal(err)
	}
	rev := set.Revision()

	if err := set.AddKeyPoint(p); err != nil {
		t.Fatalf("re-adding the same key point: %v", err)
	}
	if set.Len() != 1 {
		t.Errorf("Len = %d, want 1", set.Len())
	}
	if set.Revision() != rev {
		t.Errorf("Revision changed from %d to %d on a no-op add", rev, set.Revision())
	}
}

func TestKeyPointSetAddErrors(t *testing.T) {
	set := NewKeyPointSet()
	p := NewKeyPointWithID("k1", Pt(0, 0))
	if err := set.AddKeyPoint(p); err != nil {
		t.Fatal(err)
	}

	other := NewKeyPointSet()
	foreign := NewKeyPoint(Pt(3, 3))
	if err := other.AddKeyPoint(foreign); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		kp   *KeyPoint
		want error
	}{
		{"nil", nil, ErrNilKeyPoint},
		{"duplicate id", NewKeyPointWithID("k1", Pt(5, 5)), ErrDuplicateID},
		{"owned by other set", foreign, ErrForeignKeyPoint},
		{"nan", NewKeyPoint(Pt(math.NaN(), 0)), ErrNonFinite},
		{"inf", NewKeyPoint(Pt(0, math.Inf(1))), ErrNonFinite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := set.AddKeyPoint(tt.kp); !errors.Is(err, tt.want) {
				t.Errorf("AddKeyPoint = %v, want %v", err, tt.want)
			}
		})
	}
	if set.Len() != 1 {
		t.Errorf("Len = %d after rejected adds, want 1", set.Len())
	}
}

func TestKeyPointSetNearestTo(t *testing.T) {
	set := NewKeyPointSet()
	if _, err := set.NearestTo(Pt(0, 0)); !errors.Is(err, ErrEmptyKeyPointSet) {
		t.Fatalf("NearestTo on empty set = %v, want ErrEmptyKeyPointSet", err)
	}

	a := NewKeyPoint(Pt(0, 0))
	b := NewKeyPoint(Pt(10, 0))
	for _, kp := range []*KeyPoint{a, b} {
		if err := set.AddKeyPoint(kp); err != nil {
			t.Fatal(err)
		}
	}
	got, err := set.NearestTo(Pt(7, 1))
	if err != nil {
		t.Fatal(err)
	}
	if got != b {
		t.Errorf("NearestTo(7,1) = %v, want %v", got, b)
	}
}

func TestKeyPointSetMoveAndRemove(t *testing.T) {
	set := NewKeyPointSet()
	a := NewKeyPoint(Pt(0, 0))
	b := NewKeyPoint(Pt(10, 0))
	for _, kp := range []*KeyPoint{a, b} {
		if err := set.AddKeyPoint(kp); err != nil {
			t.Fatal(err)
		}
	}

	var changes []Change
	cancel := set.OnChange(func(c Change) { changes = append(changes, c) })

	if err := set.MoveKeyPoint(a, Pt(1, 1)); err != nil {
		t.Fatalf("MoveKeyPoint: %v", err)
	}
	if a.Position() != Pt(1, 1) {
		t.Errorf("Position = %v, want (1, 1)", a.Position())
	}
	if err := set.MoveKeyPoint(a, Pt(1, 1)); err != nil {
		t.Fatalf("MoveKeyPoint to same position: %v", err)
	}
	if err := set.MoveKeyPoint(a, Pt(math.NaN(), 0)); !errors.Is(err, ErrNonFinite) {
		t.Errorf("MoveKeyPoint(NaN) = %v, want ErrNonFinite", err)
	}
	if err := set.RemoveKeyPoint(b); err != nil {
		t.Fatalf("RemoveKeyPoint: %v", err)
	}
	if set.Has(b) || set.Len() != 1 {
		t.Errorf("b still present after removal (Len = %d)", set.Len())
	}
	if err := set.RemoveKeyPoint(b); !errors.Is(err, ErrForeignKeyPoint) {
		t.Errorf("second RemoveKeyPoint = %v, want ErrForeignKeyPoint", err)
	}

	if len(changes) != 2 {
		t.Fatalf("got %d change notifications, want 2", len(changes))
	}
	if changes[0].Kind != KeyPointMoved || changes[0].KeyPoint != a {
		t.Errorf("changes[0] = %+v, want move of a", changes[0])
	}
	if changes[1].Kind != KeyPointRemoved || changes[1].KeyPoint != b {
		t.Errorf("changes[1] = %+v, want removal of b", changes[1])
	}
	if changes[1].Revision != set.Revision() {
		t.Errorf("change revision = %d, want %d", changes[1].Revision, set.Revision())
	}

	cancel()
	if err := set.MoveKeyPoint(a, Pt(2, 2)); err != nil {
		t.Fatal(err)
	}
	if len(changes) != 2 {
		t.Errorf("listener called after cancel")
	}
}

func TestKeyPointSetSnapshotIsIndependent(t *testing.T) {
	set := NewKeyPointSet()
	a := NewKeyPoint(Pt(0, 0))
	if err := set.AddKeyPoint(a); err != nil {
		t.Fatal(err)
	}
	snap := set.KeyPoints()
	snap[0] = nil
	if set.KeyPoints()[0] != a {
		t.Error("modifying the snapshot changed the set")
	}
}

func TestChangeKindString(t *testing.T) {
	tests := []struct {
		kind ChangeKind
		want string
	}{
		{KeyPointAdded, "added"},
		{KeyPointMoved, "moved"},
		{KeyPointRemoved, "removed"},
		{ChangeKind(42), "ChangeKind(42)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}
