package rig

import (
	"fmt"
	"slices"
)

// Default style values.
const (
	DefaultStrokeColor = "#000000"
	DefaultFillColor   = "#abcdef"
)

// ShapeStyle is the paint description of a shape. rig carries it for
// documents and previews but does not interpret it.
type ShapeStyle struct {
	ID          ID
	HasStroke   bool
	HasFill     bool
	StrokeWidth float64
	StrokeColor string
	FillColor   string
}

// NewShapeStyle returns the default style: a 1-unit black stroke, no fill.
func NewShapeStyle() *ShapeStyle {
	return &ShapeStyle{
		ID:          NewID(),
		HasStroke:   true,
		StrokeWidth: 1,
		StrokeColor: DefaultStrokeColor,
		FillColor:   DefaultFillColor,
	}
}

// Shape is an ordered list of shape points, optionally closed.
//
// Closing is the last step of building a shape: once closed it stays
// closed and accepts no further points.
type Shape struct {
	id     ID
	style  *ShapeStyle
	points []*ShapePoint
	closed bool
}

// NewShape creates an empty open shape with the default style.
func NewShape() *Shape {
	return NewShapeWithID(NewID(), nil)
}

// NewShapeWithID creates an empty open shape with a known ID, for decoders.
// A nil style means the default style.
func NewShapeWithID(id ID, style *ShapeStyle) *Shape {
	if style == nil {
		style = NewShapeStyle()
	}
	return &Shape{id: id, style: style}
}

// ID returns the shape's identity.
func (s *Shape) ID() ID { return s.id }

// Style returns the shape's style for in-place editing.
func (s *Shape) Style() *ShapeStyle { return s.style }

// AddPoint appends a point. Closed shapes return ErrShapeClosed.
func (s *Shape) AddPoint(p *ShapePoint) error {
	if s.closed {
		return fmt.Errorf("%w: shape %s", ErrShapeClosed, s.id)
	}
	s.points = append(s.points, p)
	return nil
}

// Points returns a snapshot of the shape points in path order.
func (s *Shape) Points() []*ShapePoint {
	return slices.Clone(s.points)
}

// Len returns the number of points.
func (s *Shape) Len() int { return len(s.points) }

// Close marks the shape as closed.
func (s *Shape) Close() { s.closed = true }

// IsClosed reports whether the shape is closed.
func (s *Shape) IsClosed() bool { return s.closed }

// PathAtBasePoint evaluates the shape at base.
func (s *Shape) PathAtBasePoint(base Point) (*Path, error) {
	path, err := BuildShapePath(s.points, base, s.closed)
	if err != nil {
		return nil, fmt.Errorf("rig: shape %s: %w", s.id, err)
	}
	return path, nil
}

// MagicPoints returns every stored magic point of every shape point.
func (s *Shape) MagicPoints() []*MagicPoint {
	var out []*MagicPoint
	for _, p := range s.points {
		out = append(out, p.MagicPoints()...)
	}
	return out
}
