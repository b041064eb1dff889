package signal

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-mockdata/dsp/core"
)

// NewRand returns a random source seeded with seed. It is the only place a
// source is created; every generator receives it explicitly.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Generator draws series of a fixed geometry from an explicit random source.
// The zero value is not usable; construct with NewGenerator.
type Generator struct {
	series core.Series
	rng    *rand.Rand
}

// NewGenerator binds a random source to a series geometry. rng must not be
// nil: all draws of one run come from the same source.
func NewGenerator(s core.Series, rng *rand.Rand) *Generator {
	if rng == nil {
		panic("signal: NewGenerator requires a non-nil random source")
	}

	return &Generator{series: s, rng: rng}
}

// Series returns the generator geometry.
func (g *Generator) Series() core.Series {
	return g.series
}

// Rand returns the bound random source.
func (g *Generator) Rand() *rand.Rand {
	return g.rng
}

// Gaussian returns N standard normal draws multiplied by scale.
func (g *Generator) Gaussian(scale float64) []float64 {
	out := make([]float64, g.series.Len())
	for i := range out {
		out[i] = g.rng.NormFloat64() * scale
	}

	return out
}

// Uniform returns n draws from [low, high).
func (g *Generator) Uniform(low, high float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = low + (high-low)*g.rng.Float64()
	}

	return out
}

// Phases returns n phases drawn from (-pi, pi].
func (g *Generator) Phases(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Pi - 2*math.Pi*g.rng.Float64()
	}

	return out
}

// AddSine accumulates amplitude*sin(2*pi*freqHz*i/sampleRate + phase) into dst.
func AddSine(dst []float64, sampleRate, freqHz, amplitude, phase float64) {
	w := 2 * math.Pi * freqHz
	for i := range dst {
		dst[i] += amplitude * math.Sin(w*float64(i)/sampleRate+phase)
	}
}

// CircularShift returns x rotated so that out[i] = x[(i+n) mod len(x)].
// Negative n rotates the other way.
func CircularShift(x []float64, n int) []float64 {
	out := make([]float64, len(x))
	if len(x) == 0 {
		return out
	}

	n %= len(x)
	if n < 0 {
		n += len(x)
	}

	copy(out, x[n:])
	copy(out[len(x)-n:], x[:n])

	return out
}
