package rig

import (
	"fmt"
	"maps"

	"github.com/draganimate/rig/tps"
)

// solveKey identifies one solved state of a magic point: the magic point
// itself, the revision of its explicit values and the revision of the key
// point set it was solved against.
type solveKey struct {
	magic    *MagicPoint
	revision uint64
	set      uint64
}

// solveResult is a solved X/Y interpolator pair, or the error the solve
// failed with. Failures are cached too so a degenerate rig fails fast on
// every frame.
type solveResult struct {
	x, y *tps.Interpolator
	err  error
}

// MagicPoint is a position defined relative to the key points of one
// KeyPointSet. It stores explicit values at some key points; every other key
// point implicitly takes the value of the nearest key point that has one.
// Evaluating it at an arbitrary base point interpolates smoothly between the
// key points with a thin-plate spline.
//
// The bound set is used for lookup and validation only; a magic point does
// not own it.
type MagicPoint struct {
	id       ID
	set      *KeyPointSet
	values   map[ID]Point
	revision uint64
}

// NewMagicPoint creates a magic point bound to set, with no values.
func NewMagicPoint(set *KeyPointSet) *MagicPoint {
	return NewMagicPointWithID(NewID(), set)
}

// NewMagicPointWithID creates a magic point with a known ID, for decoders.
func NewMagicPointWithID(id ID, set *KeyPointSet) *MagicPoint {
	return &MagicPoint{
		id:     id,
		set:    set,
		values: make(map[ID]Point),
	}
}

// ID returns the magic point's identity.
func (m *MagicPoint) ID() ID { return m.id }

// KeyPointSet returns the bound set.
func (m *MagicPoint) KeyPointSet() *KeyPointSet { return m.set }

// Revision increases whenever an explicit value changes.
func (m *MagicPoint) Revision() uint64 { return m.revision }

func (m *MagicPoint) String() string {
	return fmt.Sprintf("MagicPoint(%s, %d values)", m.id, len(m.values))
}

// SetAtKeyPoint records the explicit value at kp.
func (m *MagicPoint) SetAtKeyPoint(kp *KeyPoint, v Point) error {
	if err := m.check(kp); err != nil {
		return err
	}
	if !v.IsFinite() {
		return fmt.Errorf("%w: magic point %s value at %s", ErrNonFinite, m.id, kp.id)
	}
	if old, ok := m.values[kp.id]; ok && old == v {
		return nil
	}
	m.values[kp.id] = v
	m.bump()
	return nil
}

// UnsetAtKeyPoint drops the explicit value at kp, if any.
func (m *MagicPoint) UnsetAtKeyPoint(kp *KeyPoint) error {
	if err := m.check(kp); err != nil {
		return err
	}
	if _, ok := m.values[kp.id]; !ok {
		return nil
	}
	delete(m.values, kp.id)
	m.bump()
	return nil
}

// Value returns the explicit value at kp, without nearest fallback.
func (m *MagicPoint) Value(kp *KeyPoint) (Point, bool) {
	if kp == nil {
		return Point{}, false
	}
	v, ok := m.values[kp.id]
	return v, ok
}

// Values returns a copy of the explicit values keyed by key point ID.
func (m *MagicPoint) Values() map[ID]Point {
	return maps.Clone(m.values)
}

// HasValues reports whether any explicit value is stored.
func (m *MagicPoint) HasValues() bool { return len(m.values) > 0 }

// DefinedKeyPoints returns the key points holding explicit values, in set
// order.
func (m *MagicPoint) DefinedKeyPoints() ([]*KeyPoint, error) {
	if m.set == nil {
		return nil, fmt.Errorf("%w: magic point %s is unbound", ErrForeignKeyPoint, m.id)
	}
	defined := make([]*KeyPoint, 0, len(m.values))
	for _, kp := range m.set.order {
		if _, ok := m.values[kp.id]; ok {
			defined = append(defined, kp)
		}
	}
	if len(defined) != len(m.values) {
		for id := range m.values {
			if m.set.Get(id) == nil {
				return nil, fmt.Errorf("%w: magic point %s, key point %s", ErrDanglingValue, m.id, id)
			}
		}
	}
	return defined, nil
}

// GetAtKeyPoint returns the explicit value at kp or, when there is none, the
// value of the nearest key point that has one.
func (m *MagicPoint) GetAtKeyPoint(kp *KeyPoint) (Point, error) {
	if err := m.check(kp); err != nil {
		return Point{}, err
	}
	if v, ok := m.values[kp.id]; ok {
		return v, nil
	}
	defined, err := m.DefinedKeyPoints()
	if err != nil {
		return Point{}, err
	}
	nearest, ok := FindNearest(kp.pos, defined)
	if !ok {
		return Point{}, fmt.Errorf("%w: magic point %s", ErrNoDefinedValue, m.id)
	}
	return m.values[nearest.id], nil
}

// GetAtBasePoint interpolates the magic point at an arbitrary base point.
//
// Every key point of the bound set is an anchor, carrying its explicit or
// nearest-fallback value. The solved interpolators are cached in the set
// until this magic point's values or the set itself change.
//
// Errors wrap tps.ErrSingular when two key points coincide,
// ErrNoDefinedValue when the magic point is empty and ErrDanglingValue when
// a value refers to a removed key point. A non-finite base point, or a base
// so far away that the result overflows, fails with ErrNonFinite.
func (m *MagicPoint) GetAtBasePoint(base Point) (Point, error) {
	if !base.IsFinite() {
		return Point{}, fmt.Errorf("%w: base point (%g, %g)", ErrNonFinite, base.X, base.Y)
	}
	r := m.solution()
	if r.err != nil {
		return Point{}, r.err
	}
	q := tps.Point(base)
	p := Point{X: r.x.Value(q), Y: r.y.Value(q)}
	if !p.IsFinite() {
		return Point{}, fmt.Errorf("%w: magic point %s at base point (%g, %g)", ErrNonFinite, m.id, base.X, base.Y)
	}
	return p, nil
}

// Transform returns a new magic point bound to the same set, holding
// fn(value, kp) at every key point where m holds an explicit value.
func (m *MagicPoint) Transform(fn func(v Point, kp *KeyPoint) (Point, error)) (*MagicPoint, error) {
	defined, err := m.DefinedKeyPoints()
	if err != nil {
		return nil, err
	}
	out := NewMagicPoint(m.set)
	for _, kp := range defined {
		v, err := fn(m.values[kp.id], kp)
		if err != nil {
			return nil, err
		}
		if err := out.SetAtKeyPoint(kp, v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Add returns m + other at each of m's defined key points.
func (m *MagicPoint) Add(other *MagicPoint) (*MagicPoint, error) {
	if err := m.sameSet(other); err != nil {
		return nil, err
	}
	return m.Transform(func(v Point, kp *KeyPoint) (Point, error) {
		o, err := other.GetAtKeyPoint(kp)
		return v.Add(o), err
	})
}

// Sub returns m - other at each of m's defined key points.
func (m *MagicPoint) Sub(other *MagicPoint) (*MagicPoint, error) {
	if err := m.sameSet(other); err != nil {
		return nil, err
	}
	return m.Transform(func(v Point, kp *KeyPoint) (Point, error) {
		o, err := other.GetAtKeyPoint(kp)
		return v.Sub(o), err
	})
}

// Mul returns m with every defined value scaled by s.
func (m *MagicPoint) Mul(s float64) (*MagicPoint, error) {
	return m.Transform(func(v Point, _ *KeyPoint) (Point, error) {
		return v.Mul(s), nil
	})
}

func (m *MagicPoint) check(kp *KeyPoint) error {
	if kp == nil {
		return ErrNilKeyPoint
	}
	if m.set == nil || !m.set.Has(kp) {
		return fmt.Errorf("%w: magic point %s, key point %s", ErrForeignKeyPoint, m.id, kp.id)
	}
	return nil
}

func (m *MagicPoint) sameSet(other *MagicPoint) error {
	if other == nil || other.set != m.set {
		return fmt.Errorf("%w: magic point %s", ErrSetMismatch, m.id)
	}
	return nil
}

func (m *MagicPoint) bump() {
	if m.set != nil {
		m.set.solves.Delete(solveKey{magic: m, revision: m.revision, set: m.set.revision})
	}
	m.revision++
}

func (m *MagicPoint) solution() solveResult {
	if m.set == nil {
		return solveResult{err: fmt.Errorf("%w: magic point %s is unbound", ErrForeignKeyPoint, m.id)}
	}
	key := solveKey{magic: m, revision: m.revision, set: m.set.revision}
	if r, ok := m.set.solves.Get(key); ok {
		return r
	}
	r := m.solve()
	m.set.solves.Set(key, r)
	Logger().Debug("magic point solved",
		"magicPoint", m.id, "revision", m.revision, "setRevision", m.set.revision,
		"anchors", m.set.Len(), "error", r.err)
	return r
}

func (m *MagicPoint) solve() solveResult {
	defined, err := m.DefinedKeyPoints()
	if err != nil {
		return solveResult{err: err}
	}
	if len(defined) == 0 {
		return solveResult{err: fmt.Errorf("%w: magic point %s", ErrNoDefinedValue, m.id)}
	}

	kps := m.set.order
	anchors := make([]tps.Point, len(kps))
	xs := make([]float64, len(kps))
	ys := make([]float64, len(kps))
	for i, kp := range kps {
		v, ok := m.values[kp.id]
		if !ok {
			nearest, _ := FindNearest(kp.pos, defined)
			v = m.values[nearest.id]
		}
		anchors[i] = tps.Point(kp.pos)
		xs[i], ys[i] = v.X, v.Y
	}

	sys, err := tps.NewSystem(anchors)
	if err != nil {
		return solveResult{err: fmt.Errorf("rig: magic point %s: %w", m.id, err)}
	}
	fx, err := sys.Fit(xs)
	if err != nil {
		return solveResult{err: fmt.Errorf("rig: magic point %s: %w", m.id, err)}
	}
	fy, err := sys.Fit(ys)
	if err != nil {
		return solveResult{err: fmt.Errorf("rig: magic point %s: %w", m.id, err)}
	}
	return solveResult{x: fx, y: fy}
}
