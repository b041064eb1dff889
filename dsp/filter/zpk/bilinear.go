package zpk

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Bilinear discretizes an analog system at sampleRate. When fWarp > 0 the
// transform is prewarped so the analog and digital responses agree exactly
// at fWarp Hz; otherwise the plain 2*fs substitution is used.
//
// Zeros at infinity are dropped and replaced by zeros at z = -1 so the
// result has as many zeros as poles.
func Bilinear(sys ZPK, sampleRate, fWarp float64) (ZPK, error) {
	if sampleRate <= 0 {
		return ZPK{}, fmt.Errorf("%w: sample rate %v", ErrInvalidSystem, sampleRate)
	}
	if err := sys.Validate(); err != nil {
		return ZPK{}, err
	}

	f2 := 2 * sampleRate
	if fWarp > 0 {
		if fWarp >= sampleRate/2 {
			return ZPK{}, fmt.Errorf("%w: warp frequency %v at or above Nyquist", ErrInvalidSystem, fWarp)
		}

		w := 2 * math.Pi * fWarp
		f2 = w / math.Tan(w/(2*sampleRate))
	}

	z := make([]complex128, 0, len(sys.Z))
	for _, zr := range sys.Z {
		if !cmplx.IsInf(zr) {
			z = append(z, zr)
		}
	}

	if len(z) > len(sys.P) {
		return ZPK{}, fmt.Errorf("%w: %d finite zeros exceed %d poles", ErrInvalidSystem, len(z), len(sys.P))
	}

	c := complex(f2, 0)
	out := ZPK{
		Z: make([]complex128, 0, len(sys.P)),
		P: make([]complex128, 0, len(sys.P)),
	}

	for _, zr := range z {
		if zr == c {
			return ZPK{}, fmt.Errorf("%w: zero at the bilinear singularity", ErrInvalidSystem)
		}
		out.Z = append(out.Z, (1+zr/c)/(1-zr/c))
	}

	for _, p := range sys.P {
		if p == c {
			return ZPK{}, fmt.Errorf("%w: pole at the bilinear singularity", ErrInvalidSystem)
		}
		out.P = append(out.P, (1+p/c)/(1-p/c))
	}

	out.K = real(complex(sys.K, 0) * productDiff(c, z) / productDiff(c, sys.P))

	for len(out.Z) < len(out.P) {
		out.Z = append(out.Z, -1)
	}

	return out, nil
}
