package rig

import (
	"fmt"
	"slices"
)

// Scene is one rigged document: a key point set and the shapes whose magic
// points are bound to it. It is the single place key points are added, moved
// and removed, so that removal can be checked against the shapes.
type Scene struct {
	id        ID
	width     float64
	height    float64
	keyPoints *KeyPointSet
	shapes    []*Shape
}

// NewScene creates a scene of the given size. Unless WithSeedKeyPoints says
// otherwise it starts with four key points at a quarter and three quarters
// of the width and height.
func NewScene(width, height float64, opts ...Option) *Scene {
	o := applyOptions(opts)
	set := NewKeyPointSet(opts...)

	seeds := o.seeds
	if !o.seedsSet {
		seeds = []Point{
			{X: width / 4, Y: height / 4},
			{X: width * 3 / 4, Y: height / 4},
			{X: width * 3 / 4, Y: height * 3 / 4},
			{X: width / 4, Y: height * 3 / 4},
		}
	}
	for _, p := range seeds {
		// Only default seeds of a non-finite scene size can fail here.
		if err := set.AddKeyPoint(NewKeyPoint(p)); err != nil {
			Logger().Warn("seed key point skipped", "error", err)
		}
	}
	return &Scene{id: NewID(), width: width, height: height, keyPoints: set}
}

// NewSceneFrom assembles a scene from existing parts, for decoders.
func NewSceneFrom(id ID, width, height float64, set *KeyPointSet, shapes []*Shape) *Scene {
	return &Scene{
		id:        id,
		width:     width,
		height:    height,
		keyPoints: set,
		shapes:    slices.Clone(shapes),
	}
}

// ID returns the scene's identity.
func (s *Scene) ID() ID { return s.id }

// Width returns the scene width.
func (s *Scene) Width() float64 { return s.width }

// Height returns the scene height.
func (s *Scene) Height() float64 { return s.height }

// KeyPointSet returns the scene's key point set.
func (s *Scene) KeyPointSet() *KeyPointSet { return s.keyPoints }

// AddKeyPoint creates a key point at p.
func (s *Scene) AddKeyPoint(p Point) (*KeyPoint, error) {
	kp := NewKeyPoint(p)
	if err := s.keyPoints.AddKeyPoint(kp); err != nil {
		return nil, err
	}
	return kp, nil
}

// MoveKeyPoint repositions a key point of the scene.
func (s *Scene) MoveKeyPoint(kp *KeyPoint, p Point) error {
	return s.keyPoints.MoveKeyPoint(kp, p)
}

// RemoveKeyPoint removes kp. It fails with ErrKeyPointInUse while any magic
// point stored by a shape of the scene has an explicit value at kp.
func (s *Scene) RemoveKeyPoint(kp *KeyPoint) error {
	if !s.keyPoints.Has(kp) {
		return s.keyPoints.foreign(kp)
	}
	for _, sh := range s.shapes {
		for _, m := range sh.MagicPoints() {
			if _, ok := m.Value(kp); ok {
				return fmt.Errorf("%w: key point %s, magic point %s of shape %s",
					ErrKeyPointInUse, kp.id, m.id, sh.id)
			}
		}
	}
	return s.keyPoints.RemoveKeyPoint(kp)
}

// NewMagicPoint creates a magic point bound to the scene's key point set.
func (s *Scene) NewMagicPoint() *MagicPoint {
	return NewMagicPoint(s.keyPoints)
}

// AddShape appends sh to the scene.
func (s *Scene) AddShape(sh *Shape) {
	s.shapes = append(s.shapes, sh)
}

// RemoveShape removes sh from the scene and reports whether it was present.
func (s *Scene) RemoveShape(sh *Shape) bool {
	n := len(s.shapes)
	s.shapes = slices.DeleteFunc(s.shapes, func(o *Shape) bool { return o == sh })
	return len(s.shapes) != n
}

// Shapes returns a snapshot of the shapes in drawing order.
func (s *Scene) Shapes() []*Shape {
	return slices.Clone(s.shapes)
}

// PathsAtBasePoint evaluates every shape at base, in drawing order. The
// first failing shape aborts the frame.
func (s *Scene) PathsAtBasePoint(base Point) ([]*Path, error) {
	paths := make([]*Path, 0, len(s.shapes))
	for _, sh := range s.shapes {
		p, err := sh.PathAtBasePoint(base)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}
