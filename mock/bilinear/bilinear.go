// Package bilinear models beam-spot motion multiplying an angular control
// signal. The target sees the product of the two true motions; the
// witnesses carry independent sensing noise on each factor.
package bilinear

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-mockdata/dsp/core"
	"github.com/cwbudde/algo-mockdata/dsp/filter/biquad"
	"github.com/cwbudde/algo-mockdata/dsp/filter/design"
	"github.com/cwbudde/algo-mockdata/dsp/filter/zpk"
	"github.com/cwbudde/algo-mockdata/dsp/signal"
)

// Scale is the amplitude applied to true motions and witnesses alike. It is
// chosen to exceed the background in the tens of Hz, not a physical unit.
const Scale = 4e-9

const (
	beamNoise    = 3e-5
	angularNoise = 1e-13

	pendulumHz = 8
	pendulumQ  = 3
)

// Options selects the angular control shaping.
type Options struct {
	// Control, when set, replaces the default elliptic control shaping
	// with an analog system discretized at the series rate.
	Control *zpk.ZPK
}

// Pair is one beam-spot/angular witness pair with the true motions behind
// it. TrueAngle is already converted to test-mass angle.
type Pair struct {
	Beam      []float64
	Angular   []float64
	TrueBeam  []float64
	TrueAngle []float64
}

// Model holds the shaping filters for one series geometry.
type Model struct {
	series  core.Series
	beam    *biquad.Chain
	control *biquad.Chain
	angle   *biquad.Chain
}

// New designs the beam and control shaping filters and the pendulum for s.
// A control model whose discretization is unstable fails with
// zpk.ErrInvalidSystem. No random draws happen here.
func New(s core.Series, opts Options) (*Model, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	fs := s.Rate()

	band, err := design.ButterworthBandpass(2, 0.1, 0.2, fs)
	if err != nil {
		return nil, fmt.Errorf("bilinear: beam band-pass: %w", err)
	}

	low, err := design.ButterworthLowpass(4, 3, fs)
	if err != nil {
		return nil, fmt.Errorf("bilinear: beam low-pass: %w", err)
	}

	var control []biquad.Coefficients
	if opts.Control != nil {
		control, err = design.FromZPK(*opts.Control, fs)
	} else {
		control, err = design.EllipticLowpass(4, 3, 40, 17, fs)
	}
	if err != nil {
		return nil, fmt.Errorf("bilinear: angular control shaping: %w", err)
	}

	ctrl := biquad.NewChain(control)
	if !ctrl.Stable() {
		return nil, fmt.Errorf("bilinear: angular control shaping: %w: unstable at %v Hz", zpk.ErrInvalidSystem, fs)
	}

	angle, err := pendulum(fs)
	if err != nil {
		return nil, err
	}

	return &Model{
		series:  s,
		beam:    biquad.NewChain(band, low),
		control: ctrl,
		angle:   angle,
	}, nil
}

// Witness draws one pair. Draw order from rng: beam innovation, angular
// innovation, beam sensing noise, angular sensing noise. All four are unit
// ASD white noise before shaping.
func (m *Model) Witness(rng *rand.Rand) *Pair {
	fs := m.series.Rate()
	nscale := math.Sqrt(fs / 2)
	gen := signal.NewGenerator(m.series, rng)

	trueBeam := gen.Gaussian(nscale)
	trueControl := gen.Gaussian(nscale)

	trueBeam = m.beam.Apply(trueBeam)

	beamWit := gen.Gaussian(nscale * beamNoise)
	vecmath.AddBlockInPlace(beamWit, trueBeam)

	trueControl = m.control.Apply(trueControl)

	angWit := gen.Gaussian(nscale * angularNoise)
	vecmath.AddBlockInPlace(angWit, trueControl)

	for _, x := range [][]float64{trueBeam, trueControl, beamWit, angWit} {
		vecmath.ScaleBlock(x, x, Scale)
	}

	return &Pair{
		Beam:      beamWit,
		Angular:   angWit,
		TrueBeam:  trueBeam,
		TrueAngle: m.angle.Apply(trueControl),
	}
}

// Witness is New followed by Model.Witness.
func Witness(s core.Series, opts Options, rng *rand.Rand) (*Pair, error) {
	m, err := New(s, opts)
	if err != nil {
		return nil, err
	}

	return m.Witness(rng), nil
}

// pendulum is the control-to-angle cascade: the pendulum twice.
func pendulum(fs float64) (*biquad.Chain, error) {
	sos, err := design.Pendulum(pendulumHz, pendulumQ, fs, 1)
	if err != nil {
		return nil, fmt.Errorf("bilinear: pendulum: %w", err)
	}
	return biquad.NewChain(sos, sos), nil
}

// ControlToAngle turns a control torque into test-mass angle by passing it
// twice through the 8 Hz, Q=3 pendulum. x is not modified.
func ControlToAngle(x []float64, fs float64) ([]float64, error) {
	angle, err := pendulum(fs)
	if err != nil {
		return nil, err
	}

	return angle.Apply(x), nil
}

// Couple returns the elementwise product of beam and angle.
func Couple(beam, angle []float64) ([]float64, error) {
	if len(beam) != len(angle) {
		return nil, fmt.Errorf("bilinear: motion lengths differ: %d != %d", len(beam), len(angle))
	}

	out := make([]float64, len(beam))
	vecmath.MulBlock(out, beam, angle)

	return out, nil
}

// IdealEstimate recomputes the coupling from the witnesses, running the
// angular witness through ControlToAngle first. Neither input is modified.
func IdealEstimate(beam, angular []float64, fs float64) ([]float64, error) {
	angle, err := ControlToAngle(angular, fs)
	if err != nil {
		return nil, err
	}

	return Couple(beam, angle)
}
