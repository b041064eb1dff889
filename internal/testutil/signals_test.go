package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	if math.Abs(s[12]-1) > 1e-12 {
		t.Fatalf("s[12] = %v, want 1", s[12])
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 0.5, 1000)
	b := DeterministicNoise(42, 0.5, 1000)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("non-deterministic at index %d", i)
		}
		if a[i] < -0.5 || a[i] >= 0.5 {
			t.Fatalf("a[%d] = %v out of range", i, a[i])
		}
	}
}

func TestGaussianNoise(t *testing.T) {
	x := GaussianNoise(1, 2, 100000)
	if rms := RMS(x); math.Abs(rms-2) > 0.03 {
		t.Fatalf("rms = %v, want ~2", rms)
	}
}

func TestSubAndRMS(t *testing.T) {
	d := Sub([]float64{3, 4, 5}, []float64{0, 0})
	if len(d) != 2 || RMS(d) != math.Sqrt(12.5) {
		t.Fatalf("Sub/RMS: got %v rms %v", d, RMS(d))
	}
	if RMS(nil) != 0 {
		t.Fatal("RMS(nil) must be 0")
	}
}
