// Package raster draws rig paths and scenes into images for previews and
// exported animation frames.
//
// Filling goes through golang.org/x/image/vector, which takes quadratic and
// cubic segments directly. Strokes are flattened to polylines and drawn as
// quads of the stroke width.
//
// Usage:
//
//	view := rig.Identity()
//	img, err := raster.RenderScene(scene, rig.Pt(400, 300), 800, 600, view)
//	if err != nil {
//	    return err
//	}
//	return raster.SavePNG("frame.png", img)
package raster
