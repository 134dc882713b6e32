package interaction

import (
	"sync/atomic"
	"time"

	"github.com/gogpu/gpucontext"

	"github.com/draganimate/rig"
)

// press is a pointer press that has not been released yet.
type press struct {
	id       int
	screen   rig.Point
	at       time.Duration
	dragging bool
}

// Pointer turns gpucontext pointer events into tool gestures.
//
// A press becomes a drag once it moves further than the drag threshold or is
// held longer than the drag delay. Only the primary pointer's left button
// starts gestures.
//
// While a control key is held, pointer moves also track the base point, so
// the scene deforms under the cursor. Releasing control snaps the base point
// back onto the nearest key point.
type Pointer struct {
	viewport *Viewport
	keys     Keyboard
	tool     Tool
	opts     options

	screen rig.Point
	over   bool
	press  *press

	cancels    []func()
	generation atomic.Uint64
}

// NewPointer creates a pointer router for v. keys may be nil, which
// disables base point tracking.
func NewPointer(v *Viewport, keys Keyboard, tool Tool, opts ...Option) *Pointer {
	p := &Pointer{
		viewport: v,
		keys:     keys,
		tool:     tool,
		opts:     applyOptions(opts),
	}
	if keys != nil {
		p.cancels = append(p.cancels,
			keys.OnKeyDown(gpucontext.KeyLeftControl, p.trackBase),
			keys.OnKeyDown(gpucontext.KeyRightControl, p.trackBase),
			keys.OnKeyUp(gpucontext.KeyLeftControl, p.snapBase),
			keys.OnKeyUp(gpucontext.KeyRightControl, p.snapBase),
		)
	}
	return p
}

// SetTool switches the active tool. A gesture in progress is finished on
// the old tool first.
func (p *Pointer) SetTool(t Tool) {
	if p.press != nil {
		p.abandon()
	}
	p.tool = t
}

// Tool returns the active tool.
func (p *Pointer) Tool() Tool { return p.tool }

// ScenePosition returns the pointer position in scene coordinates. ok is
// false while the pointer is outside the viewport.
func (p *Pointer) ScenePosition() (pos rig.Point, ok bool) {
	if !p.over {
		return rig.Point{}, false
	}
	return p.viewport.ToScene(p.screen), true
}

// Dragging reports whether the current press has turned into a drag.
func (p *Pointer) Dragging() bool { return p.press != nil && p.press.dragging }

// Attach starts routing pointer events from src. Tool errors are logged at
// Warn level since gpucontext callbacks cannot return them.
func (p *Pointer) Attach(src gpucontext.PointerEventSource) {
	gen := p.generation.Add(1)
	src.OnPointer(func(ev gpucontext.PointerEvent) {
		if p.generation.Load() != gen {
			return
		}
		if err := p.HandleEvent(ev); err != nil {
			rig.Logger().Warn("pointer event failed", "type", ev.Type.String(), "error", err)
		}
	})
}

// Detach stops routing events and unregisters the keyboard listeners.
// A gesture in progress is finished as a drag.
func (p *Pointer) Detach() {
	p.generation.Add(1)
	for _, cancel := range p.cancels {
		cancel()
	}
	p.cancels = nil
	if p.press != nil {
		p.abandon()
	}
}

// HandleEvent routes one pointer event and returns the tool's error, if
// any.
func (p *Pointer) HandleEvent(ev gpucontext.PointerEvent) error {
	screen := rig.Pt(ev.X, ev.Y)
	switch ev.Type {
	case gpucontext.PointerEnter:
		p.screen, p.over = screen, true
	case gpucontext.PointerLeave:
		p.over = false
	case gpucontext.PointerDown:
		p.screen, p.over = screen, true
		if !ev.IsPrimary || ev.Button != gpucontext.ButtonLeft || p.press != nil {
			return nil
		}
		p.press = &press{id: ev.PointerID, screen: screen, at: ev.Timestamp}
		if p.tool == nil {
			return nil
		}
		if err := p.tool.Begin(p.viewport, p.viewport.ToScene(screen)); err != nil {
			p.press = nil
			return err
		}
	case gpucontext.PointerMove:
		p.screen, p.over = screen, true
		if p.keys != nil && IsControlPressed(p.keys) {
			p.viewport.SetBasePoint(p.viewport.ToScene(screen))
		}
		return p.move(ev, screen)
	case gpucontext.PointerUp:
		p.screen = screen
		if p.press == nil || p.press.id != ev.PointerID {
			return nil
		}
		return p.finish(screen, !p.press.dragging)
	case gpucontext.PointerCancel:
		if p.press == nil || p.press.id != ev.PointerID {
			return nil
		}
		return p.finish(p.screen, false)
	}
	return nil
}

func (p *Pointer) move(ev gpucontext.PointerEvent, screen rig.Point) error {
	pr := p.press
	if pr == nil || pr.id != ev.PointerID {
		return nil
	}
	if !pr.dragging {
		held := p.opts.dragDelay > 0 && ev.Timestamp-pr.at >= p.opts.dragDelay
		moved := screen.Distance(pr.screen) > p.opts.dragThreshold
		if !held && !moved {
			return nil
		}
		pr.dragging = true
	}
	if p.tool == nil {
		return nil
	}
	return p.tool.Drag(p.viewport, p.viewport.ToScene(screen))
}

func (p *Pointer) finish(screen rig.Point, click bool) error {
	p.press = nil
	if p.tool == nil {
		return nil
	}
	return p.tool.Finish(p.viewport, p.viewport.ToScene(screen), click)
}

// abandon finishes the gesture in progress as a drag at the last known
// position.
func (p *Pointer) abandon() {
	if err := p.finish(p.screen, false); err != nil {
		rig.Logger().Warn("gesture abandoned", "error", err)
	}
}

// BaseAtPointer moves the viewport's base point under the pointer. It fails
// with ErrNoPointer while the pointer is outside the viewport.
func (p *Pointer) BaseAtPointer() error {
	pos, ok := p.ScenePosition()
	if !ok {
		return ErrNoPointer
	}
	p.viewport.SetBasePoint(pos)
	return nil
}

func (p *Pointer) trackBase() {
	// Ctrl pressed with the pointer elsewhere leaves the base point alone.
	_ = p.BaseAtPointer()
}

func (p *Pointer) snapBase() {
	p.viewport.SnapBasePoint()
}
