package rig

import (
	"fmt"
	"slices"

	"github.com/draganimate/rig/internal/cache"
)

// KeyPoint is an identified interpolation anchor. Two key points at the same
// coordinates are still distinct entities.
//
// A key point's position changes only through KeyPointSet.MoveKeyPoint so
// that every cached solve depending on it is invalidated.
type KeyPoint struct {
	id  ID
	pos Point
	set *KeyPointSet
}

// NewKeyPoint creates a key point with a fresh ID.
func NewKeyPoint(p Point) *KeyPoint {
	return NewKeyPointWithID(NewID(), p)
}

// NewKeyPointWithID creates a key point with a known ID, for decoders.
func NewKeyPointWithID(id ID, p Point) *KeyPoint {
	return &KeyPoint{id: id, pos: p}
}

// ID returns the key point's identity.
func (k *KeyPoint) ID() ID { return k.id }

// Position returns the current position.
func (k *KeyPoint) Position() Point { return k.pos }

// Distance returns the distance from the key point to p.
func (k *KeyPoint) Distance(p Point) float64 { return k.pos.Distance(p) }

func (k *KeyPoint) String() string {
	return fmt.Sprintf("KeyPoint(%s @ %g,%g)", k.id, k.pos.X, k.pos.Y)
}

// ChangeKind describes a mutation of a KeyPointSet.
type ChangeKind int

const (
	KeyPointAdded ChangeKind = iota
	KeyPointMoved
	KeyPointRemoved
)

func (c ChangeKind) String() string {
	switch c {
	case KeyPointAdded:
		return "added"
	case KeyPointMoved:
		return "moved"
	case KeyPointRemoved:
		return "removed"
	}
	return fmt.Sprintf("ChangeKind(%d)", int(c))
}

// Change is delivered to KeyPointSet listeners after each mutation.
type Change struct {
	Kind     ChangeKind
	KeyPoint *KeyPoint
	Revision uint64
}

// SolveCacheStats reports solve cache usage of a key point set.
type SolveCacheStats = cache.Stats

type listener struct {
	id int
	fn func(Change)
}

// KeyPointSet is the collection of key points one scene interpolates
// against. Many magic points may share one set.
//
// KeyPointSet is not safe for concurrent mutation; mutate it between frames
// on the goroutine that drives evaluation.
type KeyPointSet struct {
	id       ID
	byID     map[ID]*KeyPoint
	order    []*KeyPoint
	revision uint64
	solves   *cache.Cache[solveKey, solveResult]

	listeners  []listener
	nextListen int
}

// NewKeyPointSet creates an empty set with a fresh ID.
func NewKeyPointSet(opts ...Option) *KeyPointSet {
	return NewKeyPointSetWithID(NewID(), opts...)
}

// NewKeyPointSetWithID creates an empty set with a known ID, for decoders.
func NewKeyPointSetWithID(id ID, opts ...Option) *KeyPointSet {
	o := applyOptions(opts)
	return &KeyPointSet{
		id:     id,
		byID:   make(map[ID]*KeyPoint),
		solves: cache.New[solveKey, solveResult](o.solveCacheSize),
	}
}

// ID returns the set's identity.
func (s *KeyPointSet) ID() ID { return s.id }

// Revision increases on every membership or position change.
func (s *KeyPointSet) Revision() uint64 { return s.revision }

// Len returns the number of key points.
func (s *KeyPointSet) Len() int { return len(s.order) }

// AddKeyPoint inserts kp. Adding the same key point again is a no-op.
func (s *KeyPointSet) AddKeyPoint(kp *KeyPoint) error {
	if kp == nil {
		return ErrNilKeyPoint
	}
	if existing, ok := s.byID[kp.id]; ok {
		if existing == kp {
			return nil
		}
		return fmt.Errorf("%w: key point %s already in set %s", ErrDuplicateID, kp.id, s.id)
	}
	if kp.set != nil && kp.set != s {
		return fmt.Errorf("%w: key point %s belongs to set %s", ErrForeignKeyPoint, kp.id, kp.set.id)
	}
	if !kp.pos.IsFinite() {
		return fmt.Errorf("%w: key point %s", ErrNonFinite, kp.id)
	}

	kp.set = s
	s.byID[kp.id] = kp
	s.order = append(s.order, kp)
	s.changed(KeyPointAdded, kp)
	return nil
}

// Get returns the key point with the given id, or nil.
func (s *KeyPointSet) Get(id ID) *KeyPoint {
	return s.byID[id]
}

// Has reports whether kp itself is a member. A different key point sharing
// kp's ID or coordinates does not count.
func (s *KeyPointSet) Has(kp *KeyPoint) bool {
	return kp != nil && s.byID[kp.id] == kp
}

// KeyPoints returns a snapshot of the members in insertion order.
func (s *KeyPointSet) KeyPoints() []*KeyPoint {
	return slices.Clone(s.order)
}

// NearestTo returns the member closest to target.
func (s *KeyPointSet) NearestTo(target Point) (*KeyPoint, error) {
	kp, ok := FindNearest(target, s.order)
	if !ok {
		return nil, ErrEmptyKeyPointSet
	}
	return kp, nil
}

// MoveKeyPoint repositions a member.
func (s *KeyPointSet) MoveKeyPoint(kp *KeyPoint, p Point) error {
	if !s.Has(kp) {
		return s.foreign(kp)
	}
	if !p.IsFinite() {
		return fmt.Errorf("%w: moving key point %s to (%g, %g)", ErrNonFinite, kp.id, p.X, p.Y)
	}
	if kp.pos == p {
		return nil
	}
	kp.pos = p
	s.changed(KeyPointMoved, kp)
	return nil
}

// RemoveKeyPoint removes a member.
//
// Magic points holding explicit values at kp are left dangling and report
// ErrDanglingValue on evaluation; Scene.RemoveKeyPoint refuses removal of
// key points that are still referenced by its shapes.
func (s *KeyPointSet) RemoveKeyPoint(kp *KeyPoint) error {
	if !s.Has(kp) {
		return s.foreign(kp)
	}
	delete(s.byID, kp.id)
	s.order = slices.DeleteFunc(s.order, func(o *KeyPoint) bool { return o == kp })
	kp.set = nil
	s.changed(KeyPointRemoved, kp)
	return nil
}

// OnChange registers fn to run after every mutation. The returned function
// unregisters it.
func (s *KeyPointSet) OnChange(fn func(Change)) (cancel func()) {
	id := s.nextListen
	s.nextListen++
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	return func() {
		s.listeners = slices.DeleteFunc(s.listeners, func(l listener) bool { return l.id == id })
	}
}

// SolveCacheStats returns statistics of the set's solve cache.
func (s *KeyPointSet) SolveCacheStats() SolveCacheStats {
	return s.solves.Stats()
}

func (s *KeyPointSet) foreign(kp *KeyPoint) error {
	if kp == nil {
		return ErrNilKeyPoint
	}
	return fmt.Errorf("%w: key point %s, set %s", ErrForeignKeyPoint, kp.id, s.id)
}

func (s *KeyPointSet) changed(kind ChangeKind, kp *KeyPoint) {
	s.revision++
	s.solves.Clear()
	Logger().Debug("key point "+kind.String(),
		"set", s.id, "keyPoint", kp.id, "x", kp.pos.X, "y", kp.pos.Y, "revision", s.revision)

	c := Change{Kind: kind, KeyPoint: kp, Revision: s.revision}
	for _, l := range slices.Clone(s.listeners) {
		l.fn(c)
	}
}
