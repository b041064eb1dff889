package ellipticmath

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestLanden_Convergence(t *testing.T) {
	v := Landen(0.5, 1e-15)
	if len(v) == 0 {
		t.Fatal("Landen returned empty sequence")
	}

	if last := v[len(v)-1]; last > 1e-15 {
		t.Fatalf("Landen did not converge: last value = %e", last)
	}

	for i := 1; i < len(v); i++ {
		if v[i] >= v[i-1] {
			t.Fatalf("not decreasing at %d: %e >= %e", i, v[i], v[i-1])
		}
	}
}

func TestEllipK_KnownValues(t *testing.T) {
	K, Kp := EllipK(0, Tol)
	if !almostEqual(K, math.Pi/2, 1e-12) {
		t.Fatalf("K(0): got %v, want pi/2", K)
	}
	if !math.IsInf(Kp, 1) {
		t.Fatalf("K'(0): got %v, want +Inf", Kp)
	}

	// K(1/sqrt(2)) = Gamma(1/4)^2 / (4 sqrt(pi)).
	want := math.Gamma(0.25) * math.Gamma(0.25) / (4 * math.Sqrt(math.Pi))
	K, Kp = EllipK(math.Sqrt(0.5), Tol)
	if !almostEqual(K, want, 1e-10) || !almostEqual(Kp, want, 1e-10) {
		t.Fatalf("K(1/sqrt2): got (%v, %v), want %v", K, Kp, want)
	}
}

func TestSN_CD_Endpoints(t *testing.T) {
	k := 0.7

	if s := SN(0, k, Tol); !almostEqual(s, 0, 1e-12) {
		t.Fatalf("sn(0): got %v", s)
	}
	if s := SN(1, k, Tol); !almostEqual(s, 1, 1e-12) {
		t.Fatalf("sn(K): got %v", s)
	}
	if c := CD(0, k, Tol); !almostEqual(real(c), 1, 1e-12) {
		t.Fatalf("cd(0): got %v", c)
	}
	if c := CD(1, k, Tol); !almostEqual(real(c), 0, 1e-10) {
		t.Fatalf("cd(K): got %v", c)
	}
}

func TestSCD_Identities(t *testing.T) {
	k := 0.6

	for _, u := range []float64{0.1, 0.5, 1.0, 1.5} {
		sn, cn, dn, ok := SCD(u, k, Tol)
		if !ok {
			t.Fatalf("SCD(%v) failed", u)
		}

		if !almostEqual(sn*sn+cn*cn, 1, 1e-10) {
			t.Fatalf("u=%v: sn^2+cn^2 = %v", u, sn*sn+cn*cn)
		}
		if !almostEqual(dn*dn+k*k*sn*sn, 1, 1e-10) {
			t.Fatalf("u=%v: dn^2+k^2 sn^2 = %v", u, dn*dn+k*k*sn*sn)
		}
	}

	if _, _, _, ok := SCD(0.5, 1.2, Tol); ok {
		t.Fatal("expected failure for k >= 1")
	}
}

func TestSCD_SmallModulusIsSine(t *testing.T) {
	sn, cn, _, ok := SCD(0.8, 0, Tol)
	if !ok {
		t.Fatal("SCD failed for k=0")
	}

	if !almostEqual(sn, math.Sin(0.8), 1e-12) || !almostEqual(cn, math.Cos(0.8), 1e-12) {
		t.Fatalf("k=0: got sn=%v cn=%v", sn, cn)
	}
}

func TestArcSN_InvertsSN(t *testing.T) {
	m := 0.3
	k := math.Sqrt(m)
	K, _ := EllipK(k, Tol)

	for _, u := range []float64{0.2, 0.6, 0.9} {
		w := SN(u, k, Tol)
		got := ArcSN(complex(w, 0), m)

		if !almostEqual(real(got), u*K, 1e-8) || math.Abs(imag(got)) > 1e-8 {
			t.Fatalf("arcsn(sn(%v K)): got %v, want %v", u, got, u*K)
		}
	}
}

func TestDegree_SatisfiesDegreeEquation(t *testing.T) {
	for _, n := range []int{2, 3, 4} {
		m1 := 1e-3

		m := Degree(n, m1, Tol)
		if !(m > 0 && m < 1) {
			t.Fatalf("n=%d: m = %v outside (0,1)", n, m)
		}

		K, Kp := EllipK(math.Sqrt(m), Tol)
		K1, K1p := EllipK(math.Sqrt(m1), Tol)

		lhs := float64(n) * Kp / K
		rhs := K1p / K1
		if math.Abs(lhs/rhs-1) > 1e-6 {
			t.Fatalf("n=%d: n*K'/K = %v, K1'/K1 = %v", n, lhs, rhs)
		}
	}

	if !math.IsNaN(Degree(0, 0.5, Tol)) {
		t.Fatal("expected NaN for n=0")
	}
}
