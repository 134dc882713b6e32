package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/draganimate/rig"
)

// Marker colors and sizes for RenderScene overlays.
var (
	KeyPointColor  = color.NRGBA{R: 0x33, G: 0x99, B: 0xff, A: 0xff}
	BasePointColor = color.NRGBA{R: 0xff, G: 0x33, B: 0x33, A: 0xff}
)

const markerSize = 6

// RenderScene draws scene, evaluated at base, into a new width×height image
// on a white background. view maps scene coordinates to pixels. Each shape is
// filled and stroked according to its style; key points and the base point
// are marked on top.
func RenderScene(scene *rig.Scene, base rig.Point, width, height int, view rig.Matrix) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	shapes := scene.Shapes()
	paths, err := scene.PathsAtBasePoint(base)
	if err != nil {
		return nil, err
	}
	for i, path := range paths {
		style := shapes[i].Style()
		if style.HasFill {
			c, err := ParseHexColor(style.FillColor)
			if err != nil {
				return nil, fmt.Errorf("raster: shape %s fill: %w", shapes[i].ID(), err)
			}
			Fill(img, path, view, image.NewUniform(c))
		}
		if style.HasStroke {
			c, err := ParseHexColor(style.StrokeColor)
			if err != nil {
				return nil, fmt.Errorf("raster: shape %s stroke: %w", shapes[i].ID(), err)
			}
			Stroke(img, path, view, style.StrokeWidth*view.ScaleFactor(), image.NewUniform(c))
		}
	}

	for _, kp := range scene.KeyPointSet().KeyPoints() {
		mark(img, view.TransformPoint(kp.Position()), KeyPointColor)
	}
	mark(img, view.TransformPoint(base), BasePointColor)
	return img, nil
}

// mark draws a square marker centred on p.
func mark(dst draw.Image, p rig.Point, c color.Color) {
	x, y := int(p.X), int(p.Y)
	r := image.Rect(x-markerSize/2, y-markerSize/2, x+markerSize/2, y+markerSize/2)
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(c), image.Point{}, draw.Over)
}

// SavePNG writes img to path as a PNG file.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return fmt.Errorf("raster: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("raster: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("raster: close %s: %w", path, err)
	}
	return nil
}
