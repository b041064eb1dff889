package background

import (
	"fmt"
	"math/rand"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-mockdata/dsp/core"
	"github.com/cwbudde/algo-mockdata/dsp/signal"
)

// LineOptions describes the mains line comb. Lines at or above
// NyquistFraction of the Nyquist frequency are left out.
type LineOptions struct {
	Freqs           []float64
	RelativeAmps    []float64
	PeakAmp         float64
	NyquistFraction float64
}

// DefaultLineOptions returns 60, 120 and 180 Hz at relative amplitudes
// 1, 0.2 and 0.5 with the strongest kept line at 1e-19.
func DefaultLineOptions() LineOptions {
	return LineOptions{
		Freqs:           []float64{60, 120, 180},
		RelativeAmps:    []float64{1, 0.2, 0.5},
		PeakAmp:         1e-19,
		NyquistFraction: 0.8,
	}
}

// Lines returns the sum of the kept lines over the series time axis. One
// phase per configured line is drawn from rng whether or not the line is
// kept, so the draw count does not depend on the sample rate. The result is
// scaled so the largest kept relative amplitude maps to PeakAmp; when no
// line survives the result is all zeros.
func Lines(s core.Series, opts LineOptions, rng *rand.Rand) ([]float64, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if len(opts.Freqs) != len(opts.RelativeAmps) {
		return nil, fmt.Errorf("background: %d line frequencies but %d amplitudes", len(opts.Freqs), len(opts.RelativeAmps))
	}

	gen := signal.NewGenerator(s, rng)
	phases := gen.Phases(len(opts.Freqs))

	out := make([]float64, s.Len())
	limit := opts.NyquistFraction * s.Nyquist()
	maxAmp := 0.0

	for i, f := range opts.Freqs {
		if f >= limit {
			continue
		}

		amp := opts.RelativeAmps[i]
		signal.AddSine(out, s.Rate(), f, amp, phases[i])
		maxAmp = max(maxAmp, amp)
	}

	if maxAmp > 0 {
		vecmath.ScaleBlock(out, out, opts.PeakAmp/maxAmp)
	}

	return out, nil
}
