package tps

import (
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-6

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance*max(1, math.Abs(a), math.Abs(b))
}

func TestKernel(t *testing.T) {
	tests := []struct {
		r, want float64
	}{
		{0, 0},
		{1, 0},
		{math.E, math.E * math.E},
		{0.5, 0.25 * math.Log(0.5)},
	}
	for _, tt := range tests {
		if got := Kernel(tt.r); !approxEqual(got, tt.want) {
			t.Errorf("Kernel(%v) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestInterpolatorPassesThroughAnchors(t *testing.T) {
	tests := []struct {
		name    string
		anchors []Point
		values  []float64
	}{
		{
			name:    "square",
			anchors: []Point{{200, 150}, {600, 150}, {600, 450}, {200, 450}},
			values:  []float64{10, -4, 33, 7},
		},
		{
			name:    "scattered",
			anchors: []Point{{0, 0}, {13, 2}, {-7, 9}, {4, -11}, {22, 17}, {-30, -3}},
			values:  []float64{1, 2, 3, 5, 8, 13},
		},
		{
			name:    "collinear",
			anchors: []Point{{0, 0}, {10, 10}, {25, 25}},
			values:  []float64{4, -1, 9},
		},
		{
			name:    "two anchors",
			anchors: []Point{{0, 0}, {10, 0}},
			values:  []float64{3, 7},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(tt.anchors, tt.values)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			for i, a := range tt.anchors {
				if got := f.Value(a); !approxEqual(got, tt.values[i]) {
					t.Errorf("Value(anchor %d) = %v, want %v", i, got, tt.values[i])
				}
			}
		})
	}
}

func TestSingleAnchorIsConstant(t *testing.T) {
	f, err := New([]Point{{42, -17}}, []float64{5.5})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	for _, q := range []Point{{42, -17}, {0, 0}, {1e4, -3e3}, {-1, 1}} {
		if got := f.Value(q); !approxEqual(got, 5.5) {
			t.Errorf("Value(%v) = %v, want 5.5", q, got)
		}
	}
}

func TestAffineFieldIsReproduced(t *testing.T) {
	anchors := []Point{{0, 0}, {100, 0}, {0, 100}, {100, 100}, {37, 61}}
	affine := func(p Point) float64 { return 2*p.X - 3*p.Y + 11 }
	values := make([]float64, len(anchors))
	for i, a := range anchors {
		values[i] = affine(a)
	}
	f, err := New(anchors, values)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	for _, q := range []Point{{50, 50}, {-20, 140}, {300, -10}} {
		if got, want := f.Value(q), affine(q); !approxEqual(got, want) {
			t.Errorf("Value(%v) = %v, want %v", q, got, want)
		}
	}
}

func TestCoincidentAnchorsAreSingular(t *testing.T) {
	tests := []struct {
		name    string
		anchors []Point
		values  []float64
	}{
		{"pair", []Point{{5, 5}, {5, 5}}, []float64{1, 2}},
		{"pair same value", []Point{{5, 5}, {5, 5}}, []float64{1, 1}},
		{"within spread set", []Point{{0, 0}, {10, 0}, {10, 0}, {0, 10}}, []float64{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(tt.anchors, tt.values)
			if !errors.Is(err, ErrSingular) {
				t.Fatalf("New() error = %v, want ErrSingular", err)
			}
			if f != nil {
				t.Error("New() returned an interpolator alongside the error")
			}
		})
	}
}

func TestConstructionErrors(t *testing.T) {
	if _, err := NewSystem(nil); !errors.Is(err, ErrNoAnchors) {
		t.Errorf("NewSystem(nil) error = %v, want ErrNoAnchors", err)
	}
	if _, err := New([]Point{{0, 0}}, []float64{1, 2}); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("New() error = %v, want ErrLengthMismatch", err)
	}
	if _, err := NewSystem([]Point{{0, 0}, {math.NaN(), 1}}); !errors.Is(err, ErrNonFinite) {
		t.Errorf("NewSystem() error = %v, want ErrNonFinite", err)
	}

	sys, err := NewSystem([]Point{{0, 0}, {1, 0}, {0, 1}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sys.Fit([]float64{1, math.Inf(1), 0}); !errors.Is(err, ErrNonFinite) {
		t.Errorf("Fit() error = %v, want ErrNonFinite", err)
	}
}

func TestSystemSharedAcrossChannels(t *testing.T) {
	anchors := []Point{{0, 0}, {100, 0}, {100, 100}, {0, 100}}
	sys, err := NewSystem(anchors)
	if err != nil {
		t.Fatal(err)
	}
	if sys.Len() != 4 {
		t.Errorf("Len() = %d, want 4", sys.Len())
	}
	if c := sys.Cond(); !(c >= 1) || c > MaxCondition {
		t.Errorf("Cond() = %v, want within [1, MaxCondition]", c)
	}

	xs := []float64{10, 20, 30, 40}
	ys := []float64{-1, -2, -3, -4}
	fx, err := sys.Fit(xs)
	if err != nil {
		t.Fatal(err)
	}
	fy, err := sys.Fit(ys)
	if err != nil {
		t.Fatal(err)
	}
	for i, a := range anchors {
		if got := fx.Value(a); !approxEqual(got, xs[i]) {
			t.Errorf("fx.Value(%v) = %v, want %v", a, got, xs[i])
		}
		if got := fy.Value(a); !approxEqual(got, ys[i]) {
			t.Errorf("fy.Value(%v) = %v, want %v", a, got, ys[i])
		}
	}

	got := fx.Anchors()
	got[0] = Point{-1, -1}
	if fx.Anchors()[0] != (Point{0, 0}) {
		t.Error("Anchors() exposed internal storage")
	}
}

func TestInterpolationIsContinuous(t *testing.T) {
	anchors := []Point{{0, 0}, {100, 0}, {100, 100}, {0, 100}}
	f, err := New(anchors, []float64{0, 50, 0, -50})
	if err != nil {
		t.Fatal(err)
	}
	prev := f.Value(Point{0, 0})
	for i := 1; i <= 100; i++ {
		cur := f.Value(Point{float64(i), float64(i) / 2})
		if math.Abs(cur-prev) > 5 {
			t.Fatalf("jump of %v between steps %d and %d", math.Abs(cur-prev), i-1, i)
		}
		prev = cur
	}
}

func BenchmarkNewSystem16(b *testing.B) {
	anchors := make([]Point, 16)
	for i := range anchors {
		anchors[i] = Point{X: float64(i%4) * 100, Y: float64(i/4)*100 + float64(i%3)}
	}
	b.ReportAllocs()
	for b.Loop() {
		if _, err := NewSystem(anchors); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkValue16(b *testing.B) {
	anchors := make([]Point, 16)
	values := make([]float64, 16)
	for i := range anchors {
		anchors[i] = Point{X: float64(i%4) * 100, Y: float64(i/4)*100 + float64(i%3)}
		values[i] = float64(i)
	}
	f, err := New(anchors, values)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for b.Loop() {
		_ = f.Value(Point{150, 150})
	}
}
