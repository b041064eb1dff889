package zpk

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Butterworth returns the order-n analog Butterworth prototype with unit
// cutoff: poles evenly spaced on the left half of the unit circle, no
// zeros, unit gain.
func Butterworth(n int) (ZPK, error) {
	if n <= 0 {
		return ZPK{}, fmt.Errorf("%w: butterworth order %d", ErrInvalidSystem, n)
	}

	p := make([]complex128, 0, n)
	for m := -n + 1; m < n; m += 2 {
		p = append(p, -cmplx.Exp(complex(0, math.Pi*float64(m)/float64(2*n))))
	}

	return ZPK{P: p, K: 1}, nil
}

// ToLowpass moves a unit-cutoff lowpass prototype to cutoff wo rad/s.
func ToLowpass(sys ZPK, wo float64) (ZPK, error) {
	if !(wo > 0) {
		return ZPK{}, fmt.Errorf("%w: cutoff %v rad/s", ErrInvalidSystem, wo)
	}

	out := sys.Clone()
	w := complex(wo, 0)
	for i := range out.Z {
		out.Z[i] *= w
	}
	for i := range out.P {
		out.P[i] *= w
	}

	out.K = sys.K * math.Pow(wo, float64(sys.Degree()))

	return out, nil
}

// ToHighpass turns a unit-cutoff lowpass prototype into a highpass with
// cutoff wo rad/s. Zeros at infinity become zeros at the origin.
func ToHighpass(sys ZPK, wo float64) (ZPK, error) {
	if !(wo > 0) {
		return ZPK{}, fmt.Errorf("%w: cutoff %v rad/s", ErrInvalidSystem, wo)
	}

	degree := sys.Degree()
	if degree < 0 {
		return ZPK{}, fmt.Errorf("%w: improper prototype", ErrInvalidSystem)
	}

	w := complex(wo, 0)
	out := ZPK{
		Z: make([]complex128, 0, len(sys.Z)+degree),
		P: make([]complex128, 0, len(sys.P)),
	}

	for _, z := range sys.Z {
		if z == 0 {
			return ZPK{}, fmt.Errorf("%w: prototype zero at the origin", ErrInvalidSystem)
		}
		out.Z = append(out.Z, w/z)
	}

	for _, p := range sys.P {
		if p == 0 {
			return ZPK{}, fmt.Errorf("%w: prototype pole at the origin", ErrInvalidSystem)
		}
		out.P = append(out.P, w/p)
	}

	for range degree {
		out.Z = append(out.Z, 0)
	}

	out.K = sys.K * real(productNeg(sys.Z)/productNeg(sys.P))

	return out, nil
}

// ToBandpass turns a unit-cutoff lowpass prototype into a bandpass centred
// on wo rad/s with bandwidth bw rad/s. Each prototype root splits into two
// and the degree is filled with zeros at the origin.
func ToBandpass(sys ZPK, wo, bw float64) (ZPK, error) {
	if !(wo > 0) || !(bw > 0) {
		return ZPK{}, fmt.Errorf("%w: centre %v bandwidth %v rad/s", ErrInvalidSystem, wo, bw)
	}

	degree := sys.Degree()
	if degree < 0 {
		return ZPK{}, fmt.Errorf("%w: improper prototype", ErrInvalidSystem)
	}

	out := ZPK{
		Z: splitBand(sys.Z, wo, bw),
		P: splitBand(sys.P, wo, bw),
		K: sys.K * math.Pow(bw, float64(degree)),
	}

	for range degree {
		out.Z = append(out.Z, 0)
	}

	return out, nil
}

func splitBand(roots []complex128, wo, bw float64) []complex128 {
	half := complex(bw/2, 0)
	wo2 := complex(wo*wo, 0)

	out := make([]complex128, 2*len(roots))
	for i, r := range roots {
		scaled := r * half
		d := cmplx.Sqrt(scaled*scaled - wo2)
		out[i] = scaled + d
		out[i+len(roots)] = scaled - d
	}

	return out
}
