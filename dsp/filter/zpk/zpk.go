// Package zpk represents filters as zeros, poles and gain and converts them
// between the analog and digital domains.
//
// Analog prototypes and band transforms follow the usual normalized
// lowpass-first design flow: build a prototype with a cutoff of 1 rad/s,
// move it with [ToLowpass], [ToHighpass] or [ToBandpass], discretize with
// [Bilinear] and hand the result to [ZPK.Sections] for a biquad cascade.
package zpk

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
)

// ErrInvalidSystem reports a zero/pole/gain system that cannot be
// transformed or realized.
var ErrInvalidSystem = errors.New("zpk: invalid system")

// ZPK is a transfer function k * prod(s - z) / prod(s - p), in either the
// s-plane or the z-plane depending on how it was produced.
type ZPK struct {
	Z []complex128
	P []complex128
	K float64
}

// Clone returns a deep copy.
func (s ZPK) Clone() ZPK {
	return ZPK{
		Z: append([]complex128(nil), s.Z...),
		P: append([]complex128(nil), s.P...),
		K: s.K,
	}
}

// Degree returns len(P) - len(Z), the number of zeros at infinity.
func (s ZPK) Degree() int {
	return len(s.P) - len(s.Z)
}

// Eval returns H at the complex point x.
func (s ZPK) Eval(x complex128) complex128 {
	h := complex(s.K, 0)
	for _, z := range s.Z {
		h *= x - z
	}
	for _, p := range s.P {
		h /= x - p
	}
	return h
}

// AnalogResponse evaluates an s-plane system at s = j*2*pi*freqHz.
func (s ZPK) AnalogResponse(freqHz float64) complex128 {
	return s.Eval(complex(0, 2*math.Pi*freqHz))
}

// DigitalResponse evaluates a z-plane system at z = exp(j*2*pi*freqHz/sampleRate).
func (s ZPK) DigitalResponse(freqHz, sampleRate float64) complex128 {
	return s.Eval(cmplx.Exp(complex(0, 2*math.Pi*freqHz/sampleRate)))
}

// Validate checks that the gain and every root are finite.
func (s ZPK) Validate() error {
	if math.IsNaN(s.K) || math.IsInf(s.K, 0) {
		return fmt.Errorf("%w: gain %v", ErrInvalidSystem, s.K)
	}

	for _, p := range s.P {
		if cmplx.IsNaN(p) || cmplx.IsInf(p) {
			return fmt.Errorf("%w: pole %v", ErrInvalidSystem, p)
		}
	}

	for _, z := range s.Z {
		if cmplx.IsNaN(z) {
			return fmt.Errorf("%w: zero %v", ErrInvalidSystem, z)
		}
	}

	return nil
}

func productNeg(v []complex128) complex128 {
	out := complex(1, 0)
	for _, x := range v {
		out *= -x
	}

	return out
}

func productDiff(a complex128, v []complex128) complex128 {
	out := complex(1, 0)
	for _, x := range v {
		out *= a - x
	}

	return out
}
