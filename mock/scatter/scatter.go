// Package scatter models scattered-light coupling: a slow seismic path
// length and a fast acoustic one add inside a fringe, so the target sees
// scale*sin(4*pi/lambda*(y1+y2) + phi).
package scatter

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-mockdata/dsp/core"
	"github.com/cwbudde/algo-mockdata/dsp/filter/biquad"
	"github.com/cwbudde/algo-mockdata/dsp/filter/design"
	"github.com/cwbudde/algo-mockdata/dsp/signal"
)

// Wavelength is the laser wavelength in meters. The witnesses are
// calibrated in meters, so the fringe phase is motion over wavelength.
const Wavelength = 1064e-9

// Coupling defaults.
const (
	DefaultScale = 3e-18
	DefaultPhase = 0.0
)

const (
	seismicScale  = 5e-7
	seismicLowHz  = 0.1
	seismicHighHz = 5
	seismicLPHz   = 1.1

	acousticAmp1 = 1e-7
	acousticAmp2 = 3e-8
)

// Acoustic line frequencies in Hz. The irrelevant copies sit on lines the
// target never sees.
var (
	acousticFreqs   = [2]float64{59.5, 119.7}
	acousticPhases  = [2]float64{0.8, 0.32}
	irrelevantFreqs = [2]float64{71.2, 143.0}
)

// ErrInvalidConfig reports witness counts or noise levels out of range.
var ErrInvalidConfig = errors.New("scatter: invalid config")

// Config selects the witness set.
type Config struct {
	// RandomPhase offsets every relevant acoustic copy by a random phase.
	RandomPhase bool
	// FilterSeismic low-passes the seismic witnesses at 1.1 Hz.
	FilterSeismic bool
	// Relevant and Irrelevant are witness counts. (n+1)/2 of each are
	// seismic and n/2 acoustic.
	Relevant   int
	Irrelevant int
	// IrrelevantNoise is the amplitude of the sensing noise added to each
	// seismic copy. The draws happen even when it is zero.
	IrrelevantNoise float64
}

// DefaultConfig returns two relevant witnesses and no irrelevant ones.
func DefaultConfig() Config {
	return Config{Relevant: 2}
}

// Validate checks the counts and the noise amplitude.
func (c Config) Validate() error {
	if c.Relevant < 0 {
		return fmt.Errorf("%w: relevant witness count must be >= 0: %d", ErrInvalidConfig, c.Relevant)
	}
	if c.Irrelevant < 0 {
		return fmt.Errorf("%w: irrelevant witness count must be >= 0: %d", ErrInvalidConfig, c.Irrelevant)
	}
	if !(c.IrrelevantNoise >= 0) || math.IsInf(c.IrrelevantNoise, 0) {
		return fmt.Errorf("%w: irrelevant noise must be finite and >= 0: %v", ErrInvalidConfig, c.IrrelevantNoise)
	}
	return nil
}

// Row is one witness channel.
type Row struct {
	Name     string
	Acoustic bool
	Relevant bool
	Data     []float64
}

// Output holds the true motions that drive the coupling and the witness
// rows in the order relevant seismic, irrelevant seismic, relevant
// acoustic, irrelevant acoustic.
type Output struct {
	Seismic  []float64
	Acoustic []float64
	Rows     []Row
}

// Model holds the witness filters designed for one series geometry.
type Model struct {
	series  core.Series
	cfg     Config
	bp      *biquad.Chain
	lowpass *biquad.Chain
}

// New validates cfg and designs the seismic filters for s. No random
// draws happen here.
func New(s core.Series, cfg Config) (*Model, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fs := s.Rate()

	bp, err := design.ButterworthBandpass(2, seismicLowHz, seismicHighHz, fs)
	if err != nil {
		return nil, fmt.Errorf("scatter: seismic band-pass: %w", err)
	}

	m := &Model{series: s, cfg: cfg, bp: biquad.NewChain(bp)}
	if cfg.FilterSeismic {
		lp, err := design.ButterworthLowpass(1, seismicLPHz, fs)
		if err != nil {
			return nil, fmt.Errorf("scatter: seismic low-pass: %w", err)
		}
		m.lowpass = biquad.NewChain(lp)
	}

	return m, nil
}

// Witnesses is New followed by Model.Witnesses.
func Witnesses(s core.Series, cfg Config, rng *rand.Rand) (*Output, error) {
	m, err := New(s, cfg)
	if err != nil {
		return nil, err
	}

	return m.Witnesses(rng), nil
}

// Witnesses draws the scatter witness set. Draw order from rng: seismic
// innovation, irrelevant seismic innovation, per-copy sensing noise,
// per-copy noise factors, relevant acoustic phases (only with
// RandomPhase), irrelevant acoustic phases.
func (m *Model) Witnesses(rng *rand.Rand) *Output {
	s, cfg, bp, lp := m.series, m.cfg, m.bp, m.lowpass
	fs := s.Rate()

	gen := signal.NewGenerator(s, rng)

	y1 := bp.Apply(gen.Gaussian(1))
	vecmath.ScaleBlock(y1, y1, seismicScale)

	imit := bp.Apply(gen.Gaussian(1))
	vecmath.ScaleBlock(imit, imit, seismicScale)

	given, irr := y1, imit
	if lp != nil {
		given = lp.Apply(y1)
		irr = lp.Apply(imit)
	}

	rel1 := (cfg.Relevant + 1) / 2
	irrel1 := (cfg.Irrelevant + 1) / 2
	rel2 := cfg.Relevant / 2
	irrel2 := cfg.Irrelevant / 2

	noise := make([][]float64, rel1+irrel1)
	for i := range noise {
		noise[i] = gen.Gaussian(cfg.IrrelevantNoise)
	}
	factors := gen.Uniform(0.1, 1, len(noise))

	out := &Output{
		Seismic:  y1,
		Acoustic: acoustic(s),
		Rows:     make([]Row, 0, rel1+irrel1+rel2+irrel2),
	}

	for i := range noise {
		src, relevant, name := given, true, fmt.Sprintf("seismic_rel_%d", i)
		if i >= rel1 {
			src, relevant, name = irr, false, fmt.Sprintf("seismic_irr_%d", i-rel1)
		}

		row := make([]float64, len(src))
		vecmath.ScaleBlock(row, noise[i], factors[i])
		vecmath.AddBlockInPlace(row, src)

		out.Rows = append(out.Rows, Row{Name: name, Relevant: relevant, Data: row})
	}

	var phase1, phase2 []float64
	if cfg.RandomPhase {
		phase1 = gen.Uniform(0, 2*math.Pi, rel2)
		phase2 = gen.Uniform(0, 2*math.Pi, rel2)
	} else {
		phase1 = make([]float64, rel2)
		phase2 = make([]float64, rel2)
	}

	for i := range rel2 {
		row := make([]float64, s.Len())
		signal.AddSine(row, fs, acousticFreqs[0], acousticAmp1, acousticPhases[0]+phase1[i])
		signal.AddSine(row, fs, acousticFreqs[1], acousticAmp2, acousticPhases[1]+phase2[i])

		out.Rows = append(out.Rows, Row{
			Name:     fmt.Sprintf("acoustic_rel_%d", i),
			Acoustic: true,
			Relevant: true,
			Data:     row,
		})
	}

	irrPhase1 := gen.Uniform(0, 2*math.Pi, irrel2)
	irrPhase2 := gen.Uniform(0, 2*math.Pi, irrel2)

	for i := range irrel2 {
		row := make([]float64, s.Len())
		signal.AddSine(row, fs, irrelevantFreqs[0], acousticAmp1, irrPhase1[i])
		signal.AddSine(row, fs, irrelevantFreqs[1], acousticAmp2, irrPhase2[i])

		out.Rows = append(out.Rows, Row{
			Name:     fmt.Sprintf("acoustic_irr_%d", i),
			Acoustic: true,
			Data:     row,
		})
	}

	return out
}

// acoustic returns the true acoustic motion. Its phases are in cycles,
// unlike the witness copies which add them in radians.
func acoustic(s core.Series) []float64 {
	out := make([]float64, s.Len())
	for k := range acousticFreqs {
		amp := acousticAmp1
		if k == 1 {
			amp = acousticAmp2
		}
		signal.AddSine(out, s.Rate(), acousticFreqs[k], amp, 2*math.Pi*acousticPhases[k])
	}

	return out
}

// Couple returns scale*sin(4*pi/Wavelength*(y1+y2) + phi). y1 and y2 must
// have equal length.
func Couple(y1, y2 []float64, scale, phi float64) ([]float64, error) {
	if len(y1) != len(y2) {
		return nil, fmt.Errorf("scatter: motion lengths differ: %d != %d", len(y1), len(y2))
	}

	k := 4 * math.Pi / Wavelength
	out := make([]float64, len(y1))
	for i := range out {
		out[i] = scale * math.Sin(k*(y1[i]+y2[i])+phi)
	}

	return out, nil
}
