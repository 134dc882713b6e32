package interaction

import (
	"fmt"

	"github.com/draganimate/rig"
)

// Tool receives pointer gestures in scene coordinates.
//
// A gesture is one Begin, then Drag for every pointer move once the press
// has turned into a drag, then Finish. click is true when the press never
// turned into a drag.
type Tool interface {
	Begin(v *Viewport, p rig.Point) error
	Drag(v *Viewport, p rig.Point) error
	Finish(v *Viewport, p rig.Point, click bool) error
}

// PenTool draws shapes point by point.
//
// Each press adds a shape point whose origin is authored at the key point
// nearest to the base point. Dragging after the press pulls out the leading
// control point. Pressing near the first point closes the shape, and the
// next press starts a new one.
type PenTool struct {
	opts options

	target  *rig.Shape
	current *rig.ShapePoint
	kp      *rig.KeyPoint
	closing bool
}

var _ Tool = (*PenTool)(nil)

// NewPenTool creates a pen tool. WithSnapDistance tunes closing.
func NewPenTool(opts ...Option) *PenTool {
	return &PenTool{opts: applyOptions(opts)}
}

// Target returns the shape being drawn, or nil between shapes.
func (t *PenTool) Target() *rig.Shape { return t.target }

// ShouldSnapClosed reports whether a press at the scene point p would close
// the target shape: it has at least two points and p is within the snap
// distance of the first one, measured on screen.
func (t *PenTool) ShouldSnapClosed(v *Viewport, p rig.Point) bool {
	if t.target == nil || t.target.Len() < 2 {
		return false
	}
	kp, err := v.NearestKeyPoint()
	if err != nil {
		return false
	}
	first, err := t.target.Points()[0].Origin().GetAtKeyPoint(kp)
	if err != nil {
		return false
	}
	return v.ToScreen(first).Distance(v.ToScreen(p)) < t.opts.snapDistance
}

// Begin implements Tool.
func (t *PenTool) Begin(v *Viewport, p rig.Point) error {
	kp, err := v.NearestKeyPoint()
	if err != nil {
		return fmt.Errorf("interaction: pen: %w", err)
	}
	if t.ShouldSnapClosed(v, p) {
		t.target.Close()
		t.current = t.target.Points()[0]
		t.kp = kp
		t.closing = true
		rig.Logger().Debug("pen closed shape", "shape", t.target.ID())
		return nil
	}

	scene := v.Scene()
	origin := scene.NewMagicPoint()
	if err := origin.SetAtKeyPoint(kp, p); err != nil {
		return fmt.Errorf("interaction: pen: %w", err)
	}
	sp := rig.NewShapePoint(origin)
	if t.target == nil {
		t.target = rig.NewShape()
		scene.AddShape(t.target)
	}
	if err := t.target.AddPoint(sp); err != nil {
		return fmt.Errorf("interaction: pen: %w", err)
	}
	t.current = sp
	t.kp = kp
	return nil
}

// Drag implements Tool. The leading control of the pressed point follows the
// pointer at the authoring key point; its values at other key points are
// kept.
func (t *PenTool) Drag(v *Viewport, p rig.Point) error {
	if t.current == nil {
		return ErrNotDragging
	}
	leading, err := t.current.LeadingGlobal()
	if err != nil {
		return fmt.Errorf("interaction: pen: %w", err)
	}
	var next *rig.MagicPoint
	if leading == nil {
		next = v.Scene().NewMagicPoint()
	} else if next, err = leading.Transform(keep); err != nil {
		return fmt.Errorf("interaction: pen: %w", err)
	}
	if err := next.SetAtKeyPoint(t.kp, p); err != nil {
		return fmt.Errorf("interaction: pen: %w", err)
	}
	if err := t.current.SetLeadingGlobal(next); err != nil {
		return fmt.Errorf("interaction: pen: %w", err)
	}
	return nil
}

// Finish implements Tool.
func (t *PenTool) Finish(_ *Viewport, _ rig.Point, _ bool) error {
	if t.current == nil {
		return ErrNotDragging
	}
	if t.closing {
		t.target = nil
		t.closing = false
	}
	t.current = nil
	t.kp = nil
	return nil
}

func keep(v rig.Point, _ *rig.KeyPoint) (rig.Point, error) { return v, nil }

// KeyPointTool adds and moves key points. A click on empty space adds a key
// point there; a press on a hovered key point drags it.
type KeyPointTool struct {
	drag    *KeyPointDrag
	pending bool
	last    Frame
}

var _ Tool = (*KeyPointTool)(nil)

// NewKeyPointTool creates a key point tool.
func NewKeyPointTool() *KeyPointTool {
	return &KeyPointTool{}
}

// LastFrame returns the last frame of the current or previous key point
// drag.
func (t *KeyPointTool) LastFrame() Frame { return t.last }

// Begin implements Tool.
func (t *KeyPointTool) Begin(v *Viewport, p rig.Point) error {
	t.drag = nil
	t.pending = false
	kp := v.HoveredKeyPoint(p)
	if kp == nil {
		t.pending = true
		return nil
	}
	t.drag = NewKeyPointDrag(v)
	f, err := t.drag.Start(kp)
	if err != nil {
		t.drag = nil
		return err
	}
	t.last = f
	return nil
}

// Drag implements Tool.
func (t *KeyPointTool) Drag(_ *Viewport, p rig.Point) error {
	if t.drag == nil {
		return nil
	}
	f, err := t.drag.Move(p)
	if err != nil {
		return err
	}
	t.last = f
	return nil
}

// Finish implements Tool.
func (t *KeyPointTool) Finish(v *Viewport, p rig.Point, click bool) error {
	if t.drag != nil {
		f, err := t.drag.End()
		t.drag = nil
		t.last = f
		return err
	}
	if !t.pending {
		return ErrNotDragging
	}
	t.pending = false
	if !click {
		return nil
	}
	if _, err := v.Scene().AddKeyPoint(p); err != nil {
		return fmt.Errorf("interaction: add key point: %w", err)
	}
	v.SetBasePoint(p)
	return nil
}
