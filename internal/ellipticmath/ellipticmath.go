// Package ellipticmath holds the Jacobi elliptic machinery behind the
// elliptic (Cauer) analog prototype. Moduli are passed as k unless a
// parameter is named m, in which case m = k*k.
package ellipticmath

import (
	"math"
	"math/cmplx"
)

// Tol is the convergence threshold used by the prototype design.
const Tol = 2.2e-16

const (
	seriesLen    = 7
	arcSNMaxIter = 10
	arcImagCheck = 1e-7
	smallModulus = 1e-6
)

// Landen returns the descending Landen moduli of k until they drop below tol.
func Landen(k, tol float64) []float64 {
	if k == 0 || k == 1.0 {
		return []float64{k}
	}

	var v []float64
	for k > tol {
		t := k / (1.0 + math.Sqrt((1-k)*(1+k)))
		k = t * t
		v = append(v, k)
	}

	return v
}

func landenK(v []float64) float64 {
	prod := 1.0
	for _, x := range v {
		prod *= 1.0 + x
	}
	return prod * math.Pi * 0.5
}

// EllipK returns the complete elliptic integrals K(k) and K'(k) = K(sqrt(1-k^2)).
// Moduli close to 0 or 1 use the logarithmic asymptote.
func EllipK(k, tol float64) (float64, float64) {
	kmax := math.Sqrt(1 - smallModulus*smallModulus)

	var K, Kp float64
	switch {
	case k == 1.0:
		K = math.Inf(1)
	case k > kmax:
		kp := math.Sqrt((1 - k) * (1 + k))
		L := -math.Log(kp / 4.0)
		K = L + (L-1)*kp*kp/4.0
	default:
		K = landenK(Landen(k, tol))
	}

	switch {
	case k == 0.0:
		Kp = math.Inf(1)
	case k < smallModulus:
		L := -math.Log(k / 4.0)
		Kp = L + (L-1.0)*k*k/4.0
	default:
		Kp = landenK(Landen(math.Sqrt((1-k)*(1+k)), tol))
	}

	return K, Kp
}

// CD evaluates cd(u*K, k) for a normalized complex argument u.
func CD(u complex128, k, tol float64) complex128 {
	v := Landen(k, tol)
	w := cmplx.Cos(u * math.Pi * 0.5)
	for i := len(v) - 1; i >= 0; i-- {
		w = (1 + complex(v[i], 0)) * w / (1.0 + complex(v[i], 0)*w*w)
	}

	return w
}

// SN evaluates sn(u*K, k) for a normalized real argument u.
func SN(u, k, tol float64) float64 {
	v := Landen(k, tol)
	w := math.Sin(u * math.Pi * 0.5)
	for i := len(v) - 1; i >= 0; i-- {
		w = ((1 + v[i]) * w) / (1 + v[i]*w*w)
	}

	return w
}

// SCD returns sn, cn and dn at the unnormalized real argument u. ok is false
// when k is outside [0, 1) or the evaluation is not finite.
func SCD(u, k, tol float64) (sn, cn, dn float64, ok bool) {
	if !(k >= 0 && k < 1) {
		return 0, 0, 0, false
	}

	K, _ := EllipK(k, tol)
	if K == 0 || math.IsNaN(K) || math.IsInf(K, 0) {
		return 0, 0, 0, false
	}

	uNorm := u / K

	sn = SN(uNorm, k, tol)
	if math.IsNaN(sn) || math.IsInf(sn, 0) {
		return 0, 0, 0, false
	}

	dn2 := 1.0 - k*k*sn*sn
	if dn2 < -1e-12 {
		return 0, 0, 0, false
	}
	dn = math.Sqrt(math.Max(dn2, 0))

	cn = real(CD(complex(uNorm, 0), k, tol)) * dn

	return sn, cn, dn, true
}

func complement(k complex128) complex128 {
	return cmplx.Sqrt((1.0 - k) * (1.0 + k))
}

// ArcSN is the inverse of sn for complex w and parameter m.
func ArcSN(w complex128, m float64) complex128 {
	if m < 0 || m > 1 {
		return complex(math.NaN(), math.NaN())
	}

	k := complex(math.Sqrt(m), 0)
	if real(k) == 1 {
		return cmplx.Atanh(w)
	}

	ks := []complex128{k}
	for range arcSNMaxIter - 1 {
		kn := ks[len(ks)-1]
		if cmplx.Abs(kn) == 0 {
			break
		}

		kp := complement(kn)
		ks = append(ks, (1.0-kp)/(1.0+kp))
	}

	K := 1.0
	for i := 1; i < len(ks); i++ {
		K *= real(1.0 + ks[i])
	}
	K *= math.Pi * 0.5

	wn := w
	for i := range len(ks) - 1 {
		den := (1.0 + ks[i+1]) * (1.0 + complement(ks[i]*wn))
		if den == 0 {
			return complex(math.NaN(), math.NaN())
		}

		wn = 2.0 * wn / den
	}

	return complex(K, 0) * (2.0 / math.Pi) * cmplx.Asin(wn)
}

// ArcSC1 returns the real u with sc(u, 1-m) = w. It is NaN when the inverse
// is not real.
func ArcSC1(w, m float64) float64 {
	z := ArcSN(complex(0, w), m)
	if math.Abs(real(z)) > arcImagCheck*math.Max(1.0, math.Abs(imag(z))) {
		return math.NaN()
	}

	return imag(z)
}

// Degree solves the degree equation for an order n filter with selectivity
// parameter m1, returning the parameter m via the nome series.
func Degree(n int, m1, tol float64) float64 {
	if n <= 0 || !(m1 > 0 && m1 < 1) {
		return math.NaN()
	}

	K1, K1p := EllipK(math.Sqrt(m1), tol)
	if K1 <= 0 || K1p <= 0 || math.IsNaN(K1) || math.IsNaN(K1p) || math.IsInf(K1, 0) || math.IsInf(K1p, 0) {
		return math.NaN()
	}

	q1 := math.Exp(-math.Pi * K1p / K1)
	q := math.Pow(q1, 1.0/float64(n))

	num := 0.0
	for i := range seriesLen {
		num += math.Pow(q, float64(i*(i+1)))
	}

	den := 1.0
	for i := 1; i < seriesLen; i++ {
		den += 2.0 * math.Pow(q, float64(i*i))
	}

	return 16.0 * q * math.Pow(num/den, 4.0)
}
