package interaction

import (
	"fmt"

	"github.com/draganimate/rig"
)

// Frame is the result of one drag step: the scene evaluated at Base.
//
// When the evaluation for the requested position fails, the drag keeps the
// last position that evaluated and reports it with Frozen set and the cause
// in Err. The drag stays usable; the next move may succeed again.
type Frame struct {
	Base   rig.Point
	Paths  []*rig.Path
	Frozen bool
	Err    error
}

// BasePointDrag moves the base point of a viewport through a
// Start, Move*, End gesture.
type BasePointDrag struct {
	viewport *Viewport
	active   bool
	last     Frame
}

// NewBasePointDrag creates an idle drag of v's base point.
func NewBasePointDrag(v *Viewport) *BasePointDrag {
	return &BasePointDrag{viewport: v}
}

// Active reports whether a drag is in progress.
func (d *BasePointDrag) Active() bool { return d.active }

// Start begins the drag at base. It fails, leaving the drag idle, when the
// scene cannot be evaluated there.
func (d *BasePointDrag) Start(base rig.Point) (Frame, error) {
	if d.active {
		return Frame{}, ErrDragActive
	}
	if !base.IsFinite() {
		return Frame{}, fmt.Errorf("interaction: start base point drag: %w", rig.ErrNonFinite)
	}
	paths, err := d.viewport.scene.PathsAtBasePoint(base)
	if err != nil {
		return Frame{}, fmt.Errorf("interaction: start base point drag: %w", err)
	}
	d.viewport.SetBasePoint(base)
	d.active = true
	d.last = Frame{Base: base, Paths: paths}
	return d.last, nil
}

// Move evaluates the scene at base. On failure the returned frame is frozen
// at the last good base point and the viewport keeps that base point.
func (d *BasePointDrag) Move(base rig.Point) (Frame, error) {
	if !d.active {
		return Frame{}, ErrNotDragging
	}
	paths, err := evaluate(d.viewport.scene, base)
	if err != nil {
		rig.Logger().Warn("base point drag frozen", "x", base.X, "y", base.Y, "error", err)
		return d.frozen(err), nil
	}
	d.viewport.SetBasePoint(base)
	d.last = Frame{Base: base, Paths: paths}
	return d.last, nil
}

// End finishes the drag and returns the last good frame.
func (d *BasePointDrag) End() (Frame, error) {
	if !d.active {
		return Frame{}, ErrNotDragging
	}
	d.active = false
	return d.last, nil
}

func (d *BasePointDrag) frozen(err error) Frame {
	f := d.last
	f.Frozen = true
	f.Err = err
	return f
}

// KeyPointDrag moves one key point through a Start, Move*, End gesture. The
// base point follows the key point so the dragged pose stays on screen.
type KeyPointDrag struct {
	viewport *Viewport
	kp       *rig.KeyPoint
	last     Frame
}

// NewKeyPointDrag creates an idle key point drag on v.
func NewKeyPointDrag(v *Viewport) *KeyPointDrag {
	return &KeyPointDrag{viewport: v}
}

// Active reports whether a drag is in progress.
func (d *KeyPointDrag) Active() bool { return d.kp != nil }

// KeyPoint returns the dragged key point, or nil when idle.
func (d *KeyPointDrag) KeyPoint() *rig.KeyPoint { return d.kp }

// Start begins dragging kp, which must belong to the viewport's scene.
func (d *KeyPointDrag) Start(kp *rig.KeyPoint) (Frame, error) {
	if d.kp != nil {
		return Frame{}, ErrDragActive
	}
	set := d.viewport.scene.KeyPointSet()
	if kp == nil {
		return Frame{}, rig.ErrNilKeyPoint
	}
	if !set.Has(kp) {
		return Frame{}, fmt.Errorf("%w: key point %s", rig.ErrForeignKeyPoint, kp.ID())
	}
	base := kp.Position()
	paths, err := d.viewport.scene.PathsAtBasePoint(base)
	if err != nil {
		return Frame{}, fmt.Errorf("interaction: start key point drag: %w", err)
	}
	d.kp = kp
	d.viewport.SetBasePoint(base)
	d.last = Frame{Base: base, Paths: paths}
	return d.last, nil
}

// Move places the key point at p and evaluates the scene there. When that
// fails, for instance because p coincides with another key point, the key
// point is put back at its last good position and the frame is frozen.
func (d *KeyPointDrag) Move(p rig.Point) (Frame, error) {
	if d.kp == nil {
		return Frame{}, ErrNotDragging
	}
	scene := d.viewport.scene
	good := d.kp.Position()

	if err := scene.MoveKeyPoint(d.kp, p); err != nil {
		rig.Logger().Warn("key point drag frozen", "keyPoint", d.kp.ID(), "error", err)
		return d.frozen(err), nil
	}
	paths, err := evaluate(scene, p)
	if err != nil {
		if rerr := scene.MoveKeyPoint(d.kp, good); rerr != nil {
			return Frame{}, fmt.Errorf("interaction: restore key point %s: %w", d.kp.ID(), rerr)
		}
		rig.Logger().Warn("key point drag frozen",
			"keyPoint", d.kp.ID(), "x", p.X, "y", p.Y, "error", err)
		return d.frozen(err), nil
	}
	d.viewport.SetBasePoint(p)
	d.last = Frame{Base: p, Paths: paths}
	return d.last, nil
}

// End finishes the drag and returns the last good frame.
func (d *KeyPointDrag) End() (Frame, error) {
	if d.kp == nil {
		return Frame{}, ErrNotDragging
	}
	d.kp = nil
	return d.last, nil
}

func (d *KeyPointDrag) frozen(err error) Frame {
	f := d.last
	f.Frozen = true
	f.Err = err
	return f
}

func evaluate(scene *rig.Scene, base rig.Point) ([]*rig.Path, error) {
	if !base.IsFinite() {
		return nil, rig.ErrNonFinite
	}
	return scene.PathsAtBasePoint(base)
}
