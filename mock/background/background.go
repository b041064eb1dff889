// Package background synthesizes the detector noise floor the coupling
// models are added to: colored Gaussian-like noise with a zero/pole ASD
// shape and the mains lines at 60 Hz and its harmonics.
package background

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"

	"github.com/cwbudde/algo-mockdata/dsp/core"
	"github.com/cwbudde/algo-mockdata/dsp/signal"
	"github.com/cwbudde/algo-mockdata/internal/fftutil"
)

// ErrInvalidShape reports a normalization that cannot produce a spectrum.
var ErrInvalidShape = errors.New("background: invalid ASD shape")

// BucketOptions describes the target amplitude spectral density. Zeros
// and poles are in Hz; the ASD equals NormAmp at NormFreq.
type BucketOptions struct {
	NormFreq float64
	NormAmp  float64
	Zeros    []float64
	Poles    []float64
}

// DefaultBucketOptions returns the aLIGO-like bucket: two poles at 5 Hz,
// two zeros at 24 Hz and one at 350 Hz, 2.2e-20/rtHz at 100 Hz.
func DefaultBucketOptions() BucketOptions {
	return BucketOptions{
		NormFreq: 100,
		NormAmp:  2.2e-20,
		Zeros:    []float64{24, 24, 350},
		Poles:    []float64{5, 5},
	}
}

func (o BucketOptions) validate() error {
	if !(o.NormFreq > 0) {
		return fmt.Errorf("%w: normalization frequency must be > 0: %v", ErrInvalidShape, o.NormFreq)
	}
	if !(o.NormAmp >= 0) {
		return fmt.Errorf("%w: normalization amplitude must be >= 0: %v", ErrInvalidShape, o.NormAmp)
	}
	return nil
}

// Shape evaluates the complex ASD shape at freqs. Each zero and pole r
// contributes a factor (f + i*r), normalized so that |Shape(NormFreq)|
// equals NormAmp.
func Shape(freqs []float64, opts BucketOptions) []complex128 {
	zeros := imagRoots(opts.Zeros)
	poles := imagRoots(opts.Poles)

	nf := complex(opts.NormFreq, 0)
	norm := complex(opts.NormAmp, 0) * rootProduct(nf, poles) / rootProduct(nf, zeros)

	out := make([]complex128, len(freqs))
	for i, f := range freqs {
		fc := complex(f, 0)
		out[i] = norm * rootProduct(fc, zeros) / rootProduct(fc, poles)
	}

	return out
}

// Bucket returns sec*fs samples of noise whose one-sided ASD follows
// Shape. Every positive-frequency bin of a next-power-of-two transform gets
// unit magnitude and a uniform random phase; the DC bin is zero.
func Bucket(s core.Series, opts BucketOptions, rng *rand.Rand) ([]float64, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	n := s.Len()
	nfft := core.NextPowerOfTwo(n)
	fs := s.Rate()

	// Unity one-sided ASD before shaping.
	nscale := fs * math.Sqrt(float64(nfft)/fs/2)

	phases := signal.NewGenerator(s, rng).Phases(nfft / 2)

	spec := make([]complex128, nfft/2+1)
	shape := Shape(fftutil.Freqs(nfft, fs), opts)
	for k := 1; k < len(spec); k++ {
		spec[k] = complex(nscale, 0) * cmplx.Exp(complex(0, phases[k-1])) * shape[k]
	}

	data, err := fftutil.Inverse(spec, nfft)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}

	return data[:n], nil
}

func imagRoots(hz []float64) []complex128 {
	out := make([]complex128, len(hz))
	for i, v := range hz {
		out[i] = complex(0, -v)
	}
	return out
}

func rootProduct(x complex128, roots []complex128) complex128 {
	p := complex(1, 0)
	for _, r := range roots {
		p *= x - r
	}
	return p
}
