package signal

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-mockdata/dsp/core"
)

func testSeries() core.Series {
	return core.Series{Duration: 2, SampleRate: 64}
}

func TestGaussianDeterministic(t *testing.T) {
	a := NewGenerator(testSeries(), NewRand(7)).Gaussian(1)
	b := NewGenerator(testSeries(), NewRand(7)).Gaussian(1)

	if len(a) != 128 {
		t.Fatalf("len = %d, want 128", len(a))
	}

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
	}
}

func TestGaussianSharedSourceAdvances(t *testing.T) {
	g := NewGenerator(testSeries(), NewRand(7))
	a := g.Gaussian(1)
	b := g.Gaussian(1)

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("consecutive draws from one source must differ")
	}
}

func TestGaussianScale(t *testing.T) {
	x := NewGenerator(core.Series{Duration: 64, SampleRate: 1024}, NewRand(3)).Gaussian(5e-7)

	sumSq := 0.0
	for _, v := range x {
		sumSq += v * v
	}
	std := math.Sqrt(sumSq / float64(len(x)))

	if math.Abs(std/5e-7-1) > 0.02 {
		t.Fatalf("std = %g, want ~5e-7", std)
	}
}

func TestPhasesRange(t *testing.T) {
	p := NewGenerator(testSeries(), NewRand(1)).Phases(1000)
	for i, v := range p {
		if v <= -math.Pi || v > math.Pi {
			t.Fatalf("phase[%d] = %v outside (-pi, pi]", i, v)
		}
	}
}

func TestUniformRange(t *testing.T) {
	u := NewGenerator(testSeries(), NewRand(1)).Uniform(0.1, 1.0, 1000)
	for i, v := range u {
		if v < 0.1 || v >= 1.0 {
			t.Fatalf("u[%d] = %v outside [0.1, 1)", i, v)
		}
	}
}

func TestAddSine(t *testing.T) {
	x := make([]float64, 8)
	AddSine(x, 1000, 250, 2, 0)

	want := []float64{0, 2, 0, -2}
	for i, w := range want {
		if math.Abs(x[i]-w) > 1e-12 {
			t.Fatalf("x[%d] = %v, want %v", i, x[i], w)
		}
	}
}

func TestNewGeneratorNilRandPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil random source")
		}
	}()

	NewGenerator(testSeries(), nil)
}

func TestCircularShift(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}

	tests := []struct {
		n    int
		want []float64
	}{
		{0, []float64{0, 1, 2, 3, 4}},
		{2, []float64{2, 3, 4, 0, 1}},
		{7, []float64{2, 3, 4, 0, 1}},
		{-1, []float64{4, 0, 1, 2, 3}},
	}

	for _, tt := range tests {
		got := CircularShift(x, tt.n)
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Fatalf("shift %d: got %v, want %v", tt.n, got, tt.want)
			}
		}
	}
}
