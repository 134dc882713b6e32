package rig

// ControlPolicy is how a ShapePoint stores its Bezier control points:
// either Mirrored or Independent.
type ControlPolicy interface {
	leading() *MagicPoint
	isControlPolicy()
}

// Mirrored stores a single leading control point. The following control is
// always its negation and has no state of its own.
type Mirrored struct {
	Leading *MagicPoint

	// parked is the following control of the Independent state this value
	// was switched from. It is restored when mirroring is turned off again
	// and is never read while mirrored.
	parked *MagicPoint
}

func (c Mirrored) leading() *MagicPoint { return c.Leading }
func (Mirrored) isControlPolicy()         {}

// Independent stores leading and following controls separately.
type Independent struct {
	Leading   *MagicPoint
	Following *MagicPoint
}

func (c Independent) leading() *MagicPoint { return c.Leading }
func (Independent) isControlPolicy()         {}

// stamp captures the inputs a derived magic point was computed from.
type stamp struct {
	a, b   *MagicPoint
	ar, br uint64
	set    uint64
}

// derived memoizes one derived magic point so that repeated reads in
// consecutive frames return the same instance and hit the solve cache.
type derived struct {
	in  stamp
	out *MagicPoint
}

// ShapePoint is one vertex of a shape: an origin magic point plus optional
// leading and following control points stored relative to the origin.
//
// The leading control shapes the segment leaving this point, the following
// control the segment arriving at it.
type ShapePoint struct {
	id       ID
	origin   *MagicPoint
	controls ControlPolicy

	followingRel    derived
	leadingGlobal   derived
	followingGlobal derived
}

// NewShapePoint creates a shape point with mirrored controls and no control
// points. origin must not be nil.
func NewShapePoint(origin *MagicPoint) *ShapePoint {
	return NewShapePointWithID(NewID(), origin, Mirrored{})
}

// NewShapePointWithID creates a shape point with known state, for decoders.
// A nil controls value means Mirrored{}.
func NewShapePointWithID(id ID, origin *MagicPoint, controls ControlPolicy) *ShapePoint {
	if controls == nil {
		controls = Mirrored{}
	}
	return &ShapePoint{id: id, origin: origin, controls: controls}
}

// ID returns the shape point's identity.
func (sp *ShapePoint) ID() ID { return sp.id }

// Origin returns the origin magic point.
func (sp *ShapePoint) Origin() *MagicPoint { return sp.origin }

// SetOrigin replaces the origin magic point. Relative controls are kept.
func (sp *ShapePoint) SetOrigin(m *MagicPoint) { sp.origin = m }

// Controls returns the current control policy.
func (sp *ShapePoint) Controls() ControlPolicy { return sp.controls }

// Mirrored reports whether the following control mirrors the leading one.
func (sp *ShapePoint) Mirrored() bool {
	_, ok := sp.controls.(Mirrored)
	return ok
}

// SetMirrored switches between mirrored and independent controls without
// moving data between the two fields: an independent following control is
// kept aside while mirrored and comes back unchanged when unmirrored.
func (sp *ShapePoint) SetMirrored(mirrored bool) {
	switch c := sp.controls.(type) {
	case Mirrored:
		if !mirrored {
			sp.controls = Independent{Leading: c.Leading, Following: c.parked}
		}
	case Independent:
		if mirrored {
			sp.controls = Mirrored{Leading: c.Leading, parked: c.Following}
		}
	}
}

// LeadingRelative returns the leading control relative to the origin, or nil.
func (sp *ShapePoint) LeadingRelative() *MagicPoint {
	return sp.controls.leading()
}

// SetLeadingRelative sets the leading control relative to the origin. nil
// removes it.
func (sp *ShapePoint) SetLeadingRelative(m *MagicPoint) {
	switch c := sp.controls.(type) {
	case Mirrored:
		c.Leading = m
		sp.controls = c
	case Independent:
		c.Leading = m
		sp.controls = c
	}
}

// FollowingRelative returns the following control relative to the origin, or
// nil. When mirrored it is the leading control scaled by -1.
func (sp *ShapePoint) FollowingRelative() (*MagicPoint, error) {
	switch c := sp.controls.(type) {
	case Mirrored:
		if c.Leading == nil {
			return nil, nil
		}
		return sp.derive(&sp.followingRel, c.Leading, nil, func() (*MagicPoint, error) {
			return c.Leading.Mul(-1)
		})
	case Independent:
		return c.Following, nil
	}
	return nil, nil
}

// SetFollowingRelative sets the following control relative to the origin.
// When mirrored this stores the negation as the leading control instead.
func (sp *ShapePoint) SetFollowingRelative(m *MagicPoint) error {
	switch c := sp.controls.(type) {
	case Mirrored:
		if m == nil {
			c.Leading = nil
			sp.controls = c
			return nil
		}
		neg, err := m.Mul(-1)
		if err != nil {
			return err
		}
		c.Leading = neg
		sp.controls = c
	case Independent:
		c.Following = m
		sp.controls = c
	}
	return nil
}

// LeadingGlobal returns origin + leading relative, or nil without a leading
// control.
func (sp *ShapePoint) LeadingGlobal() (*MagicPoint, error) {
	rel := sp.LeadingRelative()
	if rel == nil {
		return nil, nil
	}
	return sp.derive(&sp.leadingGlobal, sp.origin, rel, func() (*MagicPoint, error) {
		return sp.origin.Add(rel)
	})
}

// SetLeadingGlobal stores m - origin as the leading relative control. nil
// removes it.
func (sp *ShapePoint) SetLeadingGlobal(m *MagicPoint) error {
	if m == nil {
		sp.SetLeadingRelative(nil)
		return nil
	}
	rel, err := m.Sub(sp.origin)
	if err != nil {
		return err
	}
	sp.SetLeadingRelative(rel)
	return nil
}

// FollowingGlobal returns origin + following relative, or nil without a
// following control.
func (sp *ShapePoint) FollowingGlobal() (*MagicPoint, error) {
	rel, err := sp.FollowingRelative()
	if err != nil || rel == nil {
		return nil, err
	}
	return sp.derive(&sp.followingGlobal, sp.origin, rel, func() (*MagicPoint, error) {
		return sp.origin.Add(rel)
	})
}

// SetFollowingGlobal stores m - origin as the following relative control.
// nil removes it.
func (sp *ShapePoint) SetFollowingGlobal(m *MagicPoint) error {
	if m == nil {
		return sp.SetFollowingRelative(nil)
	}
	rel, err := m.Sub(sp.origin)
	if err != nil {
		return err
	}
	return sp.SetFollowingRelative(rel)
}

// StoredControls returns the stored leading and following fields as they
// are, including a following control kept aside while mirrored. It is meant
// for serializers; editors should use the relative and global accessors.
func (sp *ShapePoint) StoredControls() (leading, following *MagicPoint) {
	switch c := sp.controls.(type) {
	case Mirrored:
		return c.Leading, c.parked
	case Independent:
		return c.Leading, c.Following
	}
	return nil, nil
}

// MagicPoints returns every stored (non-derived) magic point of the shape
// point: origin first, then the stored controls that are set.
func (sp *ShapePoint) MagicPoints() []*MagicPoint {
	out := []*MagicPoint{sp.origin}
	leading, following := sp.StoredControls()
	for _, m := range []*MagicPoint{leading, following} {
		if m != nil {
			out = append(out, m)
		}
	}
	return out
}

// MirroredWithParked returns a Mirrored policy that restores following when
// mirroring is turned off. Decoders use it to rebuild saved state.
func MirroredWithParked(leading, following *MagicPoint) Mirrored {
	return Mirrored{Leading: leading, parked: following}
}

func (sp *ShapePoint) derive(slot *derived, a, b *MagicPoint, op func() (*MagicPoint, error)) (*MagicPoint, error) {
	st := stamp{a: a, b: b, ar: a.revision}
	if a.set != nil {
		st.set = a.set.revision
	}
	if b != nil {
		st.br = b.revision
	}
	if slot.out != nil && slot.in == st {
		return slot.out, nil
	}
	out, err := op()
	if err != nil {
		return nil, err
	}
	*slot = derived{in: st, out: out}
	return out, nil
}
