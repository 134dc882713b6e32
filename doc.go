// Package rig provides magic-point rigging for 2D vector shapes.
//
// # Overview
//
// A rig is a set of key points plus shapes whose vertices and Bezier control
// points are magic points: positions defined at some of the key points and
// interpolated everywhere else with a thin-plate spline. Dragging a base
// point across the canvas deforms every shape smoothly between the poses
// stored at the key points.
//
// # Quick Start
//
//	import "github.com/draganimate/rig"
//
//	scene := rig.NewScene(800, 600)
//	kps := scene.KeyPointSet().KeyPoints()
//
//	// A vertex that sits at (100, 100) near the first key point and at
//	// (300, 120) near the second.
//	origin := scene.NewMagicPoint()
//	origin.SetAtKeyPoint(kps[0], rig.Pt(100, 100))
//	origin.SetAtKeyPoint(kps[1], rig.Pt(300, 120))
//
//	shape := rig.NewShape()
//	shape.AddPoint(rig.NewShapePoint(origin))
//	scene.AddShape(shape)
//
//	paths, err := scene.PathsAtBasePoint(rig.Pt(400, 150))
//
// # Architecture
//
// The library is organized into:
//   - Entities: KeyPoint, KeyPointSet, MagicPoint, ShapePoint, Shape, Scene
//   - Geometry: Point, Matrix, Path, PathBuilder
//   - Solver: package tps (thin-plate spline)
//   - Collaborators: document (serialization), raster (preview rendering),
//     interaction (gestures and tools)
//
// # Caching
//
// Solved interpolators are cached per key point set and reused across
// frames until the magic point's values or the key point set change. See
// WithSolveCacheSize.
//
// # Concurrency
//
// Entities are plain mutable data and are not safe for concurrent use.
// Evaluate and mutate them from one goroutine, typically the one running
// the UI event loop.
//
// # Coordinate System
//
// Scene coordinates follow the usual 2D graphics convention:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
package rig
