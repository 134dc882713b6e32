package main

import (
	"github.com/draganimate/rig"
)

// pose is one shape point authored at one key point.
type pose struct {
	origin, control rig.Point
}

// blobPoses holds the demo blob per default key point: a circle, a wide
// ellipse, a tall ellipse and a circle shifted left. Controls are relative
// and mirrored.
var blobPoses = [][]pose{
	{
		{rig.Pt(200, 140), rig.Pt(33, 0)},
		{rig.Pt(260, 200), rig.Pt(0, 33)},
		{rig.Pt(200, 260), rig.Pt(-33, 0)},
		{rig.Pt(140, 200), rig.Pt(0, -33)},
	},
	{
		{rig.Pt(200, 170), rig.Pt(55, 0)},
		{rig.Pt(300, 200), rig.Pt(0, 17)},
		{rig.Pt(200, 230), rig.Pt(-55, 0)},
		{rig.Pt(100, 200), rig.Pt(0, -17)},
	},
	{
		{rig.Pt(200, 90), rig.Pt(17, 0)},
		{rig.Pt(230, 200), rig.Pt(0, 60)},
		{rig.Pt(200, 310), rig.Pt(-17, 0)},
		{rig.Pt(170, 200), rig.Pt(0, -60)},
	},
	{
		{rig.Pt(140, 160), rig.Pt(33, 0)},
		{rig.Pt(200, 220), rig.Pt(0, 33)},
		{rig.Pt(140, 280), rig.Pt(-33, 0)},
		{rig.Pt(80, 220), rig.Pt(0, -33)},
	},
}

// tailPoses is an open stroked line authored at the first and third key
// points only; the others fall back to the nearest authored value.
var tailPoses = map[int][]rig.Point{
	0: {rig.Pt(200, 260), rig.Pt(200, 340)},
	2: {rig.Pt(200, 310), rig.Pt(260, 370)},
}

// demoScene builds the built-in rig: a 400×400 scene with the four default
// key points, a filled blob and an open tail.
func demoScene() (*rig.Scene, error) {
	scene := rig.NewScene(400, 400)
	kps := scene.KeyPointSet().KeyPoints()

	blobStyle := rig.NewShapeStyle()
	blobStyle.HasFill = true
	blobStyle.FillColor = "#f4a261"
	blobStyle.StrokeColor = "#264653"
	blobStyle.StrokeWidth = 3
	blob := rig.NewShapeWithID(rig.NewID(), blobStyle)
	for j := range blobPoses[0] {
		origin, control := scene.NewMagicPoint(), scene.NewMagicPoint()
		for k, kp := range kps {
			if k >= len(blobPoses) {
				break
			}
			if err := origin.SetAtKeyPoint(kp, blobPoses[k][j].origin); err != nil {
				return nil, err
			}
			if err := control.SetAtKeyPoint(kp, blobPoses[k][j].control); err != nil {
				return nil, err
			}
		}
		sp := rig.NewShapePoint(origin)
		sp.SetLeadingRelative(control)
		if err := blob.AddPoint(sp); err != nil {
			return nil, err
		}
	}
	blob.Close()
	scene.AddShape(blob)

	tailStyle := rig.NewShapeStyle()
	tailStyle.StrokeColor = "#2a9d8f"
	tailStyle.StrokeWidth = 4
	tail := rig.NewShapeWithID(rig.NewID(), tailStyle)
	for j := range 2 {
		origin := scene.NewMagicPoint()
		for k, points := range tailPoses {
			if err := origin.SetAtKeyPoint(kps[k], points[j]); err != nil {
				return nil, err
			}
		}
		if err := tail.AddPoint(rig.NewShapePoint(origin)); err != nil {
			return nil, err
		}
	}
	scene.AddShape(tail)

	rig.Logger().Info("using built-in demo scene",
		"shapes", len(scene.Shapes()), "keyPoints", len(kps))
	return scene, nil
}
