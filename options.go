package rig

// DefaultSolveCacheSize is the default number of solved magic points kept
// per key point set.
const DefaultSolveCacheSize = 256

// Option configures a KeyPointSet or Scene during creation.
//
// Example:
//
//	// Default: 256 cached solves, four seed key points
//	scene := rig.NewScene(800, 600)
//
//	// Larger cache, custom seeds
//	scene := rig.NewScene(800, 600,
//	    rig.WithSolveCacheSize(4096),
//	    rig.WithSeedKeyPoints(rig.Pt(400, 300)),
//	)
type Option func(*options)

// options holds optional configuration.
type options struct {
	solveCacheSize int
	seeds          []Point
	seedsSet       bool
}

// defaultOptions returns the default options.
func defaultOptions() options {
	return options{
		solveCacheSize: DefaultSolveCacheSize,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithSolveCacheSize sets how many solved magic points a key point set keeps
// between frames. Zero disables caching, so every evaluation solves afresh.
func WithSolveCacheSize(n int) Option {
	return func(o *options) {
		o.solveCacheSize = max(n, 0)
	}
}

// WithSeedKeyPoints replaces the key points a new Scene starts with.
// By default a scene of size w×h is seeded at (w/4, h/4), (3w/4, h/4),
// (3w/4, 3h/4) and (w/4, 3h/4). Calling it with no points starts empty.
// Non-finite points are dropped with a warning. Ignored by NewKeyPointSet.
func WithSeedKeyPoints(points ...Point) Option {
	return func(o *options) {
		o.seeds = make([]Point, 0, len(points))
		for _, p := range points {
			if !p.IsFinite() {
				Logger().Warn("non-finite seed key point rejected", "x", p.X, "y", p.Y)
				continue
			}
			o.seeds = append(o.seeds, p)
		}
		o.seedsSet = true
	}
}
