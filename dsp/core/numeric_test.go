package core

import (
	"math"
	"testing"
)

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
	if !NearlyEqual(2.2e-20, 2.2e-20*(1+1e-13), 1e-12) {
		t.Fatal("expected tiny values with equal mantissa to compare equal")
	}
}

func TestDBConversions(t *testing.T) {
	if got := DBToLinear(-20); math.Abs(got-0.1) > 1e-12 {
		t.Fatalf("DBToLinear(-20) = %v, want 0.1", got)
	}
	if got := LinearToDB(0.1); math.Abs(got+20) > 1e-12 {
		t.Fatalf("LinearToDB(0.1) = %v, want -20", got)
	}
	if got := LinearToDB(0); !math.IsInf(got, -1) {
		t.Fatalf("LinearToDB(0) = %v, want -Inf", got)
	}
	if got := LinearToDB(-1); !math.IsNaN(got) {
		t.Fatalf("LinearToDB(-1) = %v, want NaN", got)
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 1}, {1, 1}, {2, 2}, {3, 4}, {1000, 1024}, {32768, 32768}, {32769, 65536},
	}
	for _, tt := range tests {
		if got := NextPowerOfTwo(tt.in); got != tt.want {
			t.Fatalf("NextPowerOfTwo(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	for _, n := range []int{1, 2, 1024, 1 << 18} {
		if !IsPowerOfTwo(n) {
			t.Fatalf("IsPowerOfTwo(%d) = false", n)
		}
	}
	for _, n := range []int{0, -4, 3, 2047, 24000} {
		if IsPowerOfTwo(n) {
			t.Fatalf("IsPowerOfTwo(%d) = true", n)
		}
	}
}
