package interaction

import "time"

// Defaults for the interaction options, in screen pixels.
const (
	DefaultSnapDistance  = 7
	DefaultHoverRadius   = 10
	DefaultDragThreshold = 5

	// DefaultDragDelay is how long a press must be held before it counts
	// as a drag even without moving.
	DefaultDragDelay = 150 * time.Millisecond
)

// Option configures a Viewport, a tool or a Pointer.
type Option func(*options)

type options struct {
	snapDistance  float64
	hoverRadius   float64
	dragThreshold float64
	dragDelay     time.Duration
}

func defaultOptions() options {
	return options{
		snapDistance:  DefaultSnapDistance,
		hoverRadius:   DefaultHoverRadius,
		dragThreshold: DefaultDragThreshold,
		dragDelay:     DefaultDragDelay,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithSnapDistance sets how close, in screen pixels, the pointer must be to
// the first point of the shape being drawn for the pen tool to close it.
func WithSnapDistance(px float64) Option {
	return func(o *options) {
		o.snapDistance = max(px, 0)
	}
}

// WithHoverRadius sets how close, in screen pixels, the pointer must be to a
// key point to pick it.
func WithHoverRadius(px float64) Option {
	return func(o *options) {
		o.hoverRadius = max(px, 0)
	}
}

// WithDragThreshold sets how far, in screen pixels, a press must travel
// before it turns into a drag.
func WithDragThreshold(px float64) Option {
	return func(o *options) {
		o.dragThreshold = max(px, 0)
	}
}

// WithDragDelay sets how long a press must be held before it turns into a
// drag. Zero disables the delay.
func WithDragDelay(d time.Duration) Option {
	return func(o *options) {
		o.dragDelay = max(d, 0)
	}
}
