package interaction

import "github.com/draganimate/rig"

// fitMargin is the screen space left around the scene by Fit.
const fitMargin = 15

// Viewport maps between scene and screen coordinates and holds the base
// point the scene is currently evaluated at.
//
// Screen coordinates are scene coordinates scaled by the zoom and then
// offset by the pan.
type Viewport struct {
	scene *rig.Scene
	opts  options

	zoom       float64
	panX, panY float64
	base       rig.Point
}

// NewViewport creates a viewport at zoom 1 with no pan. The base point
// starts at the key point nearest to the scene centre, or at the centre
// itself when the scene has no key points.
func NewViewport(scene *rig.Scene, opts ...Option) *Viewport {
	v := &Viewport{
		scene: scene,
		opts:  applyOptions(opts),
		zoom:  1,
	}
	centre := rig.Pt(scene.Width()/2, scene.Height()/2)
	v.base = centre
	if kp, err := scene.KeyPointSet().NearestTo(centre); err == nil {
		v.base = kp.Position()
	}
	return v
}

// Scene returns the scene shown in the viewport.
func (v *Viewport) Scene() *rig.Scene { return v.scene }

// Zoom returns the number of screen pixels per scene unit.
func (v *Viewport) Zoom() float64 { return v.zoom }

// Pan returns the screen offset of the scene origin.
func (v *Viewport) Pan() rig.Point { return rig.Pt(v.panX, v.panY) }

// PixelSize returns the size of one screen pixel in scene units.
func (v *Viewport) PixelSize() float64 { return 1 / v.zoom }

// BasePoint returns the point the scene is evaluated at.
func (v *Viewport) BasePoint() rig.Point { return v.base }

// SetBasePoint moves the base point. Non-finite points are ignored.
func (v *Viewport) SetBasePoint(p rig.Point) {
	if p.IsFinite() {
		v.base = p
	}
}

// SceneToScreen returns the matrix mapping scene to screen coordinates.
func (v *Viewport) SceneToScreen() rig.Matrix {
	return rig.Translate(v.panX, v.panY).Multiply(rig.Scale(v.zoom, v.zoom))
}

// ToScreen maps a scene point to screen coordinates.
func (v *Viewport) ToScreen(p rig.Point) rig.Point {
	return v.SceneToScreen().TransformPoint(p)
}

// ToScene maps a screen point to scene coordinates.
func (v *Viewport) ToScene(p rig.Point) rig.Point {
	return rig.Pt((p.X-v.panX)/v.zoom, (p.Y-v.panY)/v.zoom)
}

// Fit zooms and pans so that the whole scene fits a width×height screen
// with a small margin, centred along the axis with spare room.
func (v *Viewport) Fit(width, height float64) {
	availW := width - 2*fitMargin
	availH := height - 2*fitMargin
	zoom := min(availW/v.scene.Width(), availH/v.scene.Height())
	if !(zoom > 0) {
		return
	}
	v.zoom = zoom
	v.panX = fitMargin
	if w := zoom * v.scene.Width(); w < availW {
		v.panX += (availW - w) / 2
	}
	v.panY = fitMargin
	if h := zoom * v.scene.Height(); h < availH {
		v.panY += (availH - h) / 2
	}
}

// ZoomAt multiplies the zoom by factor, keeping the scene point under the
// screen point fixed.
func (v *Viewport) ZoomAt(factor float64, screen rig.Point) {
	if !(factor > 0) {
		return
	}
	v.panX = screen.X - factor*(screen.X-v.panX)
	v.panY = screen.Y - factor*(screen.Y-v.panY)
	v.zoom *= factor
}

// PanBy moves the scene by a screen-space offset.
func (v *Viewport) PanBy(dx, dy float64) {
	v.panX += dx
	v.panY += dy
}

// NearestKeyPoint returns the key point nearest to the base point. Tools
// author magic point values at this key point.
func (v *Viewport) NearestKeyPoint() (*rig.KeyPoint, error) {
	return v.scene.KeyPointSet().NearestTo(v.base)
}

// HoveredKeyPoint returns the key point within the hover radius of the
// scene point p, or nil.
func (v *Viewport) HoveredKeyPoint(p rig.Point) *rig.KeyPoint {
	kp, err := v.scene.KeyPointSet().NearestTo(p)
	if err != nil {
		return nil
	}
	if kp.Distance(p) < v.opts.hoverRadius*v.PixelSize() {
		return kp
	}
	return nil
}

// Paths evaluates every shape of the scene at the base point.
func (v *Viewport) Paths() ([]*rig.Path, error) {
	return v.scene.PathsAtBasePoint(v.base)
}

// SnapBasePoint moves the base point onto the nearest key point. It is a
// no-op on a scene without key points.
func (v *Viewport) SnapBasePoint() {
	kp, err := v.NearestKeyPoint()
	if err != nil {
		return
	}
	v.base = kp.Position()
}
