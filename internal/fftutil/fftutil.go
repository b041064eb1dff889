// Package fftutil wraps the real-signal FFTs the noise models and the
// spectral estimators share. Power-of-two lengths run on algo-fft plans,
// other lengths fall back to gonum's mixed-radix transform.
package fftutil

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/cwbudde/algo-mockdata/dsp/core"
)

// minPlanSize is the smallest length handed to algo-fft; shorter transforms
// go through gonum.
const minPlanSize = 8

func usePlan(n int) bool {
	return n >= minPlanSize && core.IsPowerOfTwo(n)
}

// Forward returns the one-sided spectrum of x: len(x)/2+1 bins, unnormalized.
func Forward(x []float64) ([]complex128, error) {
	n := len(x)
	if n == 0 {
		return nil, fmt.Errorf("fftutil: forward of empty input")
	}

	if !usePlan(n) {
		return fourier.NewFFT(n).Coefficients(nil, x), nil
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("fftutil: plan %d: %w", n, err)
	}

	in := make([]complex128, n)
	for i, v := range x {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("fftutil: forward: %w", err)
	}

	return out[:n/2+1], nil
}

// Inverse turns a one-sided spectrum back into n real samples, scaled by 1/n
// so that Inverse(Forward(x), len(x)) == x. spec must hold n/2+1 bins. The
// imaginary parts of the DC bin and, for even n, the Nyquist bin are ignored.
func Inverse(spec []complex128, n int) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("fftutil: inverse length must be > 0: %d", n)
	}
	if len(spec) != n/2+1 {
		return nil, fmt.Errorf("fftutil: inverse of length %d needs %d bins, got %d", n, n/2+1, len(spec))
	}

	if !usePlan(n) {
		half := make([]complex128, len(spec))
		copy(half, spec)
		half[0] = complex(real(half[0]), 0)
		if n%2 == 0 {
			half[n/2] = complex(real(half[n/2]), 0)
		}

		out := fourier.NewFFT(n).Sequence(nil, half)
		inv := 1 / float64(n)
		for i := range out {
			out[i] *= inv
		}
		return out, nil
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("fftutil: plan %d: %w", n, err)
	}

	full := make([]complex128, n)
	full[0] = complex(real(spec[0]), 0)
	for k := 1; k < (n+1)/2; k++ {
		full[k] = spec[k]
		full[n-k] = complex(real(spec[k]), -imag(spec[k]))
	}
	if n%2 == 0 && n > 1 {
		full[n/2] = complex(real(spec[n/2]), 0)
	}

	tmp := make([]complex128, n)
	if err := plan.Inverse(tmp, full); err != nil {
		return nil, fmt.Errorf("fftutil: inverse: %w", err)
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = real(tmp[i])
	}
	return out, nil
}

// Freqs returns the n/2+1 non-negative bin frequencies of an n-point
// transform at sampleRate.
func Freqs(n int, sampleRate float64) []float64 {
	out := make([]float64, n/2+1)
	df := sampleRate / float64(n)
	for k := range out {
		out[k] = float64(k) * df
	}
	return out
}
