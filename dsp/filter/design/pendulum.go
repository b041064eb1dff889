package design

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-mockdata/dsp/filter/biquad"
	"github.com/cwbudde/algo-mockdata/dsp/filter/zpk"
)

// PendulumZPK returns the analog two-pole response of a pendulum with
// resonance f0 Hz and quality factor q, scaled to dcGain at zero frequency.
// Below q = 0.5 the poles are real.
func PendulumZPK(f0, q, dcGain float64) (zpk.ZPK, error) {
	if !(f0 > 0) || math.IsInf(f0, 0) {
		return zpk.ZPK{}, fmt.Errorf("%w: %v Hz", ErrInvalidResonance, f0)
	}
	if !(q > 0) || math.IsInf(q, 0) {
		return zpk.ZPK{}, fmt.Errorf("%w: Q must be > 0, got %v", ErrInvalidQuality, q)
	}

	w := complex(-2*math.Pi*f0, 0)
	angle := cmplx.Acos(complex(1/(2*q), 0))

	poles := []complex128{
		w * cmplx.Exp(complex(0, 1)*angle),
		w * cmplx.Exp(complex(0, -1)*angle),
	}

	return zpk.ZPK{P: poles, K: dcGain * real(poles[0]*poles[1])}, nil
}

// Pendulum designs the digital pendulum filter at sampleRate. It fails with
// ErrInvalidResonance when f0 is not in (0, sampleRate/2) and with
// ErrInvalidQuality when q <= 0.
func Pendulum(f0, q, sampleRate, dcGain float64) ([]biquad.Coefficients, error) {
	if !(sampleRate > 0) {
		return nil, fmt.Errorf("%w: sample rate %v", ErrInvalidResonance, sampleRate)
	}
	if f0 >= sampleRate/2 {
		return nil, fmt.Errorf("%w: %v Hz at or above Nyquist %v Hz", ErrInvalidResonance, f0, sampleRate/2)
	}

	sys, err := PendulumZPK(f0, q, dcGain)
	if err != nil {
		return nil, err
	}

	return discretize(sys, sampleRate)
}

// FromZPK discretizes an analog system at sampleRate and realizes it as
// sections.
func FromZPK(sys zpk.ZPK, sampleRate float64) ([]biquad.Coefficients, error) {
	return discretize(sys, sampleRate)
}

// FromZPKFile loads an analog system saved in the zpk JSON layout and
// discretizes it at sampleRate.
func FromZPKFile(path string, sampleRate float64) ([]biquad.Coefficients, error) {
	sys, err := zpk.LoadFile(path)
	if err != nil {
		return nil, err
	}

	return discretize(sys, sampleRate)
}
