package zpk

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-mockdata/internal/ellipticmath"
)

const machineEpsilon = 2.220446049250313e-16

// Elliptic returns the order-n analog elliptic (Cauer) lowpass prototype
// with passband edge 1 rad/s, rippleDB of passband ripple and at least
// stopbandDB of attenuation in the stopband. For even n the DC gain sits at
// the bottom of the ripple band, -rippleDB.
func Elliptic(n int, rippleDB, stopbandDB float64) (ZPK, error) {
	if n <= 0 {
		return ZPK{}, fmt.Errorf("%w: elliptic order %d", ErrInvalidSystem, n)
	}
	if !(rippleDB > 0) || !(stopbandDB > rippleDB) {
		return ZPK{}, fmt.Errorf("%w: ripple %v dB, stopband %v dB", ErrInvalidSystem, rippleDB, stopbandDB)
	}

	epsSq := dbToMinusOne(rippleDB)
	stopSq := dbToMinusOne(stopbandDB)
	ck1Sq := epsSq / stopSq

	if n == 1 {
		p := -math.Sqrt(1.0 / epsSq)
		return ZPK{P: []complex128{complex(p, 0)}, K: -p}, nil
	}

	fail := func(what string) (ZPK, error) {
		return ZPK{}, fmt.Errorf("%w: elliptic prototype n=%d rp=%v rs=%v: %s", ErrInvalidSystem, n, rippleDB, stopbandDB, what)
	}

	m := ellipticmath.Degree(n, ck1Sq, ellipticmath.Tol)
	if !(m > 0 && m < 1) {
		return fail("degree equation")
	}

	kmod := math.Sqrt(m)
	capk, _ := ellipticmath.EllipK(kmod, ellipticmath.Tol)
	val0, _ := ellipticmath.EllipK(math.Sqrt(ck1Sq), ellipticmath.Tol)

	if !finitePositive(capk) || !finitePositive(val0) {
		return fail("complete integral")
	}

	half := (n + 1) / 2
	svals := make([]float64, 0, half)
	cvals := make([]float64, 0, half)
	dvals := make([]float64, 0, half)
	zerosBase := make([]complex128, 0, half)

	for j := 1 - n%2; j < n; j += 2 {
		sn, cn, dn, ok := ellipticmath.SCD(float64(j)*capk/float64(n), kmod, ellipticmath.Tol)
		if !ok {
			return fail("jacobi functions")
		}

		svals = append(svals, sn)
		cvals = append(cvals, cn)
		dvals = append(dvals, dn)

		if math.Abs(sn) > machineEpsilon {
			zerosBase = append(zerosBase, complex(0, 1)/complex(kmod*sn, 0))
		}
	}

	r := ellipticmath.ArcSC1(1.0/math.Sqrt(epsSq), ck1Sq)
	if !finitePositive(r) {
		return fail("inverse sc")
	}

	v0 := capk * r / (float64(n) * val0)

	sv, cv, dv, ok := ellipticmath.SCD(v0, math.Sqrt(1.0-m), ellipticmath.Tol)
	if !ok {
		return fail("jacobi functions at v0")
	}

	polesBase := make([]complex128, len(svals))
	for i := range svals {
		den := 1.0 - (dvals[i]*sv)*(dvals[i]*sv)
		if math.Abs(den) <= machineEpsilon {
			return fail("pole denominator")
		}

		polesBase[i] = -complex(cvals[i]*dvals[i]*sv*cv, svals[i]*dv) / complex(den, 0)
	}

	poles := append(make([]complex128, 0, n), polesBase...)
	if n%2 == 1 {
		norm2 := 0.0
		for _, p := range polesBase {
			norm2 += real(p * cmplx.Conj(p))
		}

		thr := machineEpsilon * math.Sqrt(norm2)
		for _, p := range polesBase {
			if math.Abs(imag(p)) > thr {
				poles = append(poles, cmplx.Conj(p))
			}
		}
	} else {
		for _, p := range polesBase {
			poles = append(poles, cmplx.Conj(p))
		}
	}

	zeros := make([]complex128, 0, 2*len(zerosBase))
	for _, z := range zerosBase {
		zeros = append(zeros, z, cmplx.Conj(z))
	}

	gain := real(productNeg(poles) / productNeg(zeros))
	if n%2 == 0 {
		gain /= math.Sqrt(1.0 + epsSq)
	}

	if gain == 0 || math.IsNaN(gain) || math.IsInf(gain, 0) {
		return fail("gain")
	}

	return ZPK{Z: zeros, P: poles, K: gain}, nil
}

func dbToMinusOne(db float64) float64 {
	return math.Expm1(math.Ln10 * db / 10.0)
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
