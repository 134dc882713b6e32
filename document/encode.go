package document

import (
	"fmt"

	"github.com/draganimate/rig"
)

// Encode flattens scene into a graph rooted at the scene.
//
// Magic point values are not entities in rig; each is written as a Vector2
// record with the synthesized id "<magicPointID>.<keyPointID>".
func Encode(scene *rig.Scene) (*Graph, error) {
	e := &encoder{objects: make(map[string]Record)}
	root, err := e.scene(scene)
	if err != nil {
		return nil, err
	}
	rig.Logger().Debug("document encoded", "root", root, "objects", len(e.objects))
	return &Graph{RootID: root, Objects: e.objects}, nil
}

type encoder struct {
	objects map[string]Record
}

// put stores the record built by build under model#id unless it is already
// present, and returns the scoped id.
func (e *encoder) put(model string, id rig.ID, build func() (Record, error)) (string, error) {
	scoped, err := ScopedID(model, string(id))
	if err != nil {
		return "", err
	}
	if _, ok := e.objects[scoped]; ok {
		return scoped, nil
	}
	rec, err := build()
	if err != nil {
		return "", fmt.Errorf("%s: %w", scoped, err)
	}
	if err := modelsByName[model].Validate(rec); err != nil {
		return "", fmt.Errorf("%s: %w", scoped, err)
	}
	e.objects[scoped] = rec
	return scoped, nil
}

func (e *encoder) scene(s *rig.Scene) (string, error) {
	return e.put(ModelScene, s.ID(), func() (Record, error) {
		set, err := e.keyPointSet(s.KeyPointSet())
		if err != nil {
			return nil, err
		}
		shapes := make([]string, 0, len(s.Shapes()))
		for _, sh := range s.Shapes() {
			id, err := e.shape(sh)
			if err != nil {
				return nil, err
			}
			shapes = append(shapes, id)
		}
		return Record{
			"width":       s.Width(),
			"height":      s.Height(),
			"keyPointSet": set,
			"shapes":      shapes,
		}, nil
	})
}

func (e *encoder) keyPointSet(set *rig.KeyPointSet) (string, error) {
	return e.put(ModelKeyPointSet, set.ID(), func() (Record, error) {
		byID := make(map[string]string, set.Len())
		order := make([]string, 0, set.Len())
		for _, kp := range set.KeyPoints() {
			id, err := e.vector(kp.ID(), kp.Position())
			if err != nil {
				return nil, err
			}
			byID[string(kp.ID())] = id
			order = append(order, string(kp.ID()))
		}
		return Record{
			"keyPointsById": byID,
			"keyPointOrder": order,
		}, nil
	})
}

func (e *encoder) vector(id rig.ID, p rig.Point) (string, error) {
	return e.put(ModelVector2, id, func() (Record, error) {
		return Record{"x": p.X, "y": p.Y}, nil
	})
}

func (e *encoder) magicPoint(m *rig.MagicPoint) (string, error) {
	return e.put(ModelMagicPoint, m.ID(), func() (Record, error) {
		set := m.KeyPointSet()
		if set == nil {
			return nil, fmt.Errorf("%w: magic point is not bound to a key point set", ErrBadRecord)
		}
		setID, err := e.keyPointSet(set)
		if err != nil {
			return nil, err
		}
		values := make(map[string]string)
		for kpID, v := range m.Values() {
			id, err := e.vector(m.ID()+"."+kpID, v)
			if err != nil {
				return nil, err
			}
			values[string(kpID)] = id
		}
		return Record{
			"keyPointSet":        setID,
			"pointsByKeyPointId": values,
		}, nil
	})
}

func (e *encoder) optionalMagicPoint(m *rig.MagicPoint) (any, error) {
	if m == nil {
		return nil, nil
	}
	return e.magicPoint(m)
}

func (e *encoder) shapePoint(sp *rig.ShapePoint) (string, error) {
	return e.put(ModelShapePoint, sp.ID(), func() (Record, error) {
		origin, err := e.magicPoint(sp.Origin())
		if err != nil {
			return nil, err
		}
		leading, following := sp.StoredControls()
		lead, err := e.optionalMagicPoint(leading)
		if err != nil {
			return nil, err
		}
		follow, err := e.optionalMagicPoint(following)
		if err != nil {
			return nil, err
		}
		return Record{
			"areControlPointsMirrored":       sp.Mirrored(),
			"originPoint":                    origin,
			"_leadingControlPointRelative":   lead,
			"_followingControlPointRelative": follow,
		}, nil
	})
}

func (e *encoder) shape(sh *rig.Shape) (string, error) {
	return e.put(ModelShape, sh.ID(), func() (Record, error) {
		style, err := e.style(sh.Style())
		if err != nil {
			return nil, err
		}
		points := make([]string, 0, sh.Len())
		for _, sp := range sh.Points() {
			id, err := e.shapePoint(sp)
			if err != nil {
				return nil, err
			}
			points = append(points, id)
		}
		return Record{
			"isClosed": sh.IsClosed(),
			"style":    style,
			"points":   points,
		}, nil
	})
}

func (e *encoder) style(s *rig.ShapeStyle) (string, error) {
	return e.put(ModelShapeStyle, s.ID, func() (Record, error) {
		return Record{
			"hasFill":     s.HasFill,
			"hasStroke":   s.HasStroke,
			"strokeWidth": s.StrokeWidth,
			"strokeColor": s.StrokeColor,
			"fillColor":   s.FillColor,
		}, nil
	})
}
