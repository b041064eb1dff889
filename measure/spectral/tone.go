package spectral

import (
	"fmt"
	"math"
)

// goertzel evaluates a single DFT term with a second-order recursion.
type goertzel struct {
	coeff  float64
	s0, s1 float64
}

func newGoertzel(freq, fs float64) (*goertzel, error) {
	if !(fs > 0) || math.IsInf(fs, 0) {
		return nil, fmt.Errorf("%w: sample rate must be > 0: %v", ErrInvalidInput, fs)
	}
	if !(freq >= 0 && freq <= fs/2) {
		return nil, fmt.Errorf("%w: tone frequency must be between 0 and fs/2: %v", ErrInvalidInput, freq)
	}

	return &goertzel{coeff: 2 * math.Cos(2*math.Pi*freq/fs)}, nil
}

func (g *goertzel) process(x []float64) {
	s0, s1, coeff := g.s0, g.s1, g.coeff
	for _, v := range x {
		s0, s1 = v+coeff*s0-s1, s0
	}
	g.s0, g.s1 = s0, s1
}

// power is |X[k]|^2 of the block processed so far.
func (g *goertzel) power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// ToneAmplitude estimates the peak amplitude of a sinusoid at freq in x.
// The estimate is exact when x spans a whole number of periods; otherwise
// leakage biases it low.
func ToneAmplitude(x []float64, freq, fs float64) (float64, error) {
	amps, err := ToneAmplitudes(x, []float64{freq}, fs)
	if err != nil {
		return 0, err
	}
	return amps[0], nil
}

// ToneAmplitudes runs ToneAmplitude for each of freqs.
func ToneAmplitudes(x, freqs []float64, fs float64) ([]float64, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("%w: empty series", ErrInvalidInput)
	}

	out := make([]float64, len(freqs))
	for i, f := range freqs {
		g, err := newGoertzel(f, fs)
		if err != nil {
			return nil, err
		}
		g.process(x)

		p := max(g.power(), 0)
		out[i] = 2 * math.Sqrt(p) / float64(len(x))
		if f == 0 || f == fs/2 {
			out[i] /= 2
		}
	}

	return out, nil
}
