package biquad

import (
	"math"
	"testing"
)

func TestFilter_DoesNotModifyInput(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	y := Filter(twoSections(), x)

	if x[0] != 1 || x[3] != 4 {
		t.Fatalf("input modified: %v", x)
	}
	if len(y) != len(x) {
		t.Fatalf("len: got %d, want %d", len(y), len(x))
	}
}

func TestFilter_MatchesSectionCascade(t *testing.T) {
	x := make([]float64, 100)
	for i := range x {
		x[i] = math.Sin(0.05*float64(i)) + 0.2*math.Cos(1.3*float64(i))
	}

	got := Filter(twoSections(), x)
	want := make([]float64, len(x))
	s0, s1 := NewSection(twoSections()[0]), NewSection(twoSections()[1])
	for i, v := range x {
		want[i] = s1.ProcessSample(s0.ProcessSample(v))
	}

	for i := range want {
		if !almostEqual(got[i], want[i], eps) {
			t.Fatalf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFilter_EmptyCascadeCopies(t *testing.T) {
	x := []float64{1, -1}
	y := Filter(nil, x)
	y[0] = 5

	if x[0] != 1 {
		t.Fatal("empty cascade must return a copy")
	}
}

func TestFilter_SteadyStateDC(t *testing.T) {
	coeffs := twoSections()
	x := make([]float64, 500)
	for i := range x {
		x[i] = 1
	}

	y := Filter(coeffs, x)
	want := coeffs[0].DCGain() * coeffs[1].DCGain()

	if !almostEqual(y[len(y)-1], want, 1e-9) {
		t.Fatalf("steady state: got %v, want %v", y[len(y)-1], want)
	}
}
