package document

import (
	"fmt"
	"maps"
	"slices"

	"github.com/draganimate/rig"
)

// Decode rebuilds the scene a graph is rooted at. opts configure the
// decoded key point sets.
//
// Objects referenced several times are decoded once and shared. Objects not
// reachable from the root are ignored.
func Decode(g *Graph, opts ...rig.Option) (*rig.Scene, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil graph", ErrMissingObject)
	}
	d := &decoder{
		graph: g,
		opts:  opts,
		done:  make(map[string]any),
	}
	scene, err := d.scene(g.RootID)
	if err != nil {
		return nil, err
	}
	rig.Logger().Debug("document decoded", "root", g.RootID, "objects", len(d.done))
	return scene, nil
}

type decoder struct {
	graph *Graph
	opts  []rig.Option
	done  map[string]any
}

// resolve decodes the object scoped, which must be of the given model, at
// most once per decoder. The schema has no self-referencing models, so the
// recursion always terminates.
func resolve[T any](d *decoder, scoped, model string, build func(id rig.ID, rec Record) (T, error)) (T, error) {
	var zero T
	name, id, err := ParseScopedID(scoped)
	if err != nil {
		return zero, err
	}
	if name != model {
		return zero, fmt.Errorf("%w: %s referenced where %s is expected", ErrUnknownModel, scoped, model)
	}
	if v, ok := d.done[scoped]; ok {
		return v.(T), nil
	}
	rec, ok := d.graph.Objects[scoped]
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrMissingObject, scoped)
	}
	if err := modelsByName[model].Validate(rec); err != nil {
		return zero, fmt.Errorf("%s: %w", scoped, err)
	}

	v, err := build(rig.ID(id), rec)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", scoped, err)
	}
	d.done[scoped] = v
	return v, nil
}

func (d *decoder) scene(scoped string) (*rig.Scene, error) {
	return resolve(d, scoped, ModelScene, func(id rig.ID, rec Record) (*rig.Scene, error) {
		width, _ := rec.number("width")
		height, _ := rec.number("height")
		setID, _, _ := rec.ref("keyPointSet")
		set, err := d.keyPointSet(setID)
		if err != nil {
			return nil, err
		}
		shapeIDs, _ := rec.strings("shapes")
		shapes := make([]*rig.Shape, 0, len(shapeIDs))
		for _, sid := range shapeIDs {
			sh, err := d.shape(sid)
			if err != nil {
				return nil, err
			}
			shapes = append(shapes, sh)
		}
		return rig.NewSceneFrom(id, width, height, set, shapes), nil
	})
}

func (d *decoder) keyPointSet(scoped string) (*rig.KeyPointSet, error) {
	return resolve(d, scoped, ModelKeyPointSet, func(id rig.ID, rec Record) (*rig.KeyPointSet, error) {
		byID, _ := rec.refMap("keyPointsById")
		set := rig.NewKeyPointSetWithID(id, d.opts...)
		for _, kpID := range keyPointOrder(rec, byID) {
			p, err := d.vector(byID[kpID])
			if err != nil {
				return nil, err
			}
			if err := set.AddKeyPoint(rig.NewKeyPointWithID(rig.ID(kpID), p)); err != nil {
				return nil, err
			}
		}
		return set, nil
	})
}

// keyPointOrder returns the key point ids in their saved order. Ids missing
// from the saved order, or all of them when there is none, follow in sorted
// order.
func keyPointOrder(rec Record, byID map[string]string) []string {
	var order []string
	seen := make(map[string]bool, len(byID))
	if saved, err := rec.strings("keyPointOrder"); err == nil {
		for _, id := range saved {
			if _, ok := byID[id]; ok && !seen[id] {
				order = append(order, id)
				seen[id] = true
			}
		}
	}
	for _, id := range slices.Sorted(maps.Keys(byID)) {
		if !seen[id] {
			order = append(order, id)
		}
	}
	return order
}

func (d *decoder) vector(scoped string) (rig.Point, error) {
	return resolve(d, scoped, ModelVector2, func(_ rig.ID, rec Record) (rig.Point, error) {
		x, _ := rec.number("x")
		y, _ := rec.number("y")
		return rig.Pt(x, y), nil
	})
}

func (d *decoder) magicPoint(scoped string) (*rig.MagicPoint, error) {
	return resolve(d, scoped, ModelMagicPoint, func(id rig.ID, rec Record) (*rig.MagicPoint, error) {
		setID, _, _ := rec.ref("keyPointSet")
		set, err := d.keyPointSet(setID)
		if err != nil {
			return nil, err
		}
		m := rig.NewMagicPointWithID(id, set)
		values, _ := rec.refMap("pointsByKeyPointId")
		for _, kpID := range slices.Sorted(maps.Keys(values)) {
			kp := set.Get(rig.ID(kpID))
			if kp == nil {
				return nil, fmt.Errorf("%w: key point %s", ErrMissingObject, kpID)
			}
			v, err := d.vector(values[kpID])
			if err != nil {
				return nil, err
			}
			if err := m.SetAtKeyPoint(kp, v); err != nil {
				return nil, err
			}
		}
		return m, nil
	})
}

func (d *decoder) optionalMagicPoint(rec Record, field string) (*rig.MagicPoint, error) {
	scoped, ok, err := rec.ref(field)
	if err != nil || !ok {
		return nil, err
	}
	return d.magicPoint(scoped)
}

func (d *decoder) shapePoint(scoped string) (*rig.ShapePoint, error) {
	return resolve(d, scoped, ModelShapePoint, func(id rig.ID, rec Record) (*rig.ShapePoint, error) {
		originID, _, _ := rec.ref("originPoint")
		origin, err := d.magicPoint(originID)
		if err != nil {
			return nil, err
		}
		leading, err := d.optionalMagicPoint(rec, "_leadingControlPointRelative")
		if err != nil {
			return nil, err
		}
		following, err := d.optionalMagicPoint(rec, "_followingControlPointRelative")
		if err != nil {
			return nil, err
		}

		var controls rig.ControlPolicy = rig.Independent{Leading: leading, Following: following}
		if mirrored, _ := rec.boolean("areControlPointsMirrored"); mirrored {
			controls = rig.MirroredWithParked(leading, following)
		}
		return rig.NewShapePointWithID(id, origin, controls), nil
	})
}

func (d *decoder) shape(scoped string) (*rig.Shape, error) {
	return resolve(d, scoped, ModelShape, func(id rig.ID, rec Record) (*rig.Shape, error) {
		var style *rig.ShapeStyle
		if styleID, ok, _ := rec.ref("style"); ok {
			s, err := d.style(styleID)
			if err != nil {
				return nil, err
			}
			style = s
		}
		sh := rig.NewShapeWithID(id, style)
		pointIDs, _ := rec.strings("points")
		for _, pid := range pointIDs {
			sp, err := d.shapePoint(pid)
			if err != nil {
				return nil, err
			}
			if err := sh.AddPoint(sp); err != nil {
				return nil, err
			}
		}
		if closed, _ := rec.boolean("isClosed"); closed {
			sh.Close()
		}
		return sh, nil
	})
}

func (d *decoder) style(scoped string) (*rig.ShapeStyle, error) {
	return resolve(d, scoped, ModelShapeStyle, func(id rig.ID, rec Record) (*rig.ShapeStyle, error) {
		s := &rig.ShapeStyle{ID: id}
		s.HasFill, _ = rec.boolean("hasFill")
		s.HasStroke, _ = rec.boolean("hasStroke")
		s.StrokeWidth, _ = rec.number("strokeWidth")
		s.StrokeColor, _ = rec.str("strokeColor")
		s.FillColor, _ = rec.str("fillColor")
		return s, nil
	})
}
