// Package interaction drives a rig.Scene from pointer and keyboard input.
//
// A Viewport maps scene to screen coordinates and holds the base point the
// scene is shown at. Gestures follow a start, move, end protocol:
// BasePointDrag and KeyPointDrag evaluate the scene on every move and, when
// an evaluation fails, freeze at the last position that worked instead of
// failing the gesture.
//
// Input comes from a host window through gpucontext. KeyTracker implements
// Keyboard over a gpucontext.EventSource and Pointer routes
// gpucontext.PointerEvent values to the active Tool (PenTool or
// KeyPointTool). Both have explicit Attach and Detach calls tied to the
// window's lifetime; nothing in this package is global.
//
// Everything here runs on the goroutine that delivers input events, like the
// rest of the rig.
package interaction
