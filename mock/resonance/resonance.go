// Package resonance models a witness driving the target through a damped
// harmonic oscillator.
package resonance

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-mockdata/dsp/core"
	"github.com/cwbudde/algo-mockdata/dsp/filter/design"
	"github.com/cwbudde/algo-mockdata/dsp/signal"
	"github.com/cwbudde/algo-mockdata/internal/fftutil"
)

// Calibration scales the oscillator output into the background's range. It
// is an arbitrary calibration constant, not derived from any physical
// transfer function.
const Calibration = 1e-14

// Defaults.
const (
	DefaultFrequency = 9.3 * math.Sqrt2
	DefaultQuality   = 100
)

// Config holds the oscillator parameters.
type Config struct {
	Frequency float64 // Hz
	Quality   float64
}

// DefaultConfig returns f0 = 9.3*sqrt(2) Hz and Q = 100.
func DefaultConfig() Config {
	return Config{Frequency: DefaultFrequency, Quality: DefaultQuality}
}

// Validate checks that the resonance lies in (0, Nyquist) of s and that
// the quality factor is positive.
func (c Config) Validate(s core.Series) error {
	if err := s.Validate(); err != nil {
		return err
	}
	return check(c.Frequency, c.Quality, s.Rate())
}

func check(f0, q, fs float64) error {
	if !(f0 > 0) || f0 >= fs/2 {
		return fmt.Errorf("%w: %v Hz must lie in (0, %v)", design.ErrInvalidResonance, f0, fs/2)
	}
	if !(q > 0) || math.IsInf(q, 0) {
		return fmt.Errorf("%w: %v", design.ErrInvalidQuality, q)
	}
	return nil
}

// Witness returns N standard normal draws.
func Witness(s core.Series, rng *rand.Rand) ([]float64, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return signal.NewGenerator(s, rng).Gaussian(1), nil
}

// Transfer evaluates 1/(w0^2 - w^2 + i*w0*w/q) at f Hz, with w = 2*pi*f.
func Transfer(f, f0, q float64) complex128 {
	w0 := 2 * math.Pi * f0
	w := 2 * math.Pi * f

	return 1 / complex(w0*w0-w*w, w0*w/q)
}

// Couple runs w through the oscillator in the frequency domain and scales
// the result by Calibration.
func Couple(w []float64, fs, f0, q float64) ([]float64, error) {
	if err := check(f0, q, fs); err != nil {
		return nil, err
	}

	spec, err := fftutil.Forward(w)
	if err != nil {
		return nil, fmt.Errorf("resonance: %w", err)
	}

	freqs := fftutil.Freqs(len(w), fs)
	for k := range spec {
		spec[k] *= Transfer(freqs[k], f0, q)
	}

	out, err := fftutil.Inverse(spec, len(w))
	if err != nil {
		return nil, fmt.Errorf("resonance: %w", err)
	}

	vecmath.ScaleBlock(out, out, Calibration)

	return out, nil
}
