package mock

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/cwbudde/algo-vecmath"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-mockdata/dsp/core"
	"github.com/cwbudde/algo-mockdata/dsp/filter/zpk"
	"github.com/cwbudde/algo-mockdata/dsp/signal"
	"github.com/cwbudde/algo-mockdata/mock/background"
	"github.com/cwbudde/algo-mockdata/mock/bilinear"
	"github.com/cwbudde/algo-mockdata/mock/resonance"
	"github.com/cwbudde/algo-mockdata/mock/scatter"
)

type options struct {
	rng    *rand.Rand
	logger *zap.Logger
	bucket background.BucketOptions
	lines  background.LineOptions
}

// Option configures Generate.
type Option func(*options)

// WithSeed seeds a new random source for the run.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.rng = signal.NewRand(seed)
	}
}

// WithRand uses rng for every draw of the run. Nil is ignored.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		if rng != nil {
			o.rng = rng
		}
	}
}

// WithLogger logs model parameters at debug level. Nil is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithBucket replaces the background ASD shape.
func WithBucket(opts background.BucketOptions) Option {
	return func(o *options) {
		o.bucket = opts
	}
}

// WithLines replaces the mains line comb.
func WithLines(opts background.LineOptions) Option {
	return func(o *options) {
		o.lines = opts
	}
}

func applyOptions(opts []Option) options {
	o := options{
		logger: zap.NewNop(),
		bucket: background.DefaultBucketOptions(),
		lines:  background.DefaultLineOptions(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.rng == nil {
		o.rng = signal.NewRand(time.Now().UnixNano())
	}
	return o
}

// coupling is a prepared model: filters designed and parameters checked,
// ready to draw from a random source.
type coupling func(rng *rand.Rand, res *Result) (coupled []float64, err error)

// Generate produces sec seconds at fs Hz of background, witnesses and
// target for cfg. All configuration is checked before the first draw.
// Draw order: background, lines, model.
func Generate(cfg Config, sec, fs int, opts ...Option) (*Result, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}

	s := core.Series{Duration: sec, SampleRate: fs}
	if err := cfg.Validate(s); err != nil {
		return nil, err
	}

	o := applyOptions(opts)
	if len(o.lines.Freqs) != len(o.lines.RelativeAmps) {
		return nil, fmt.Errorf("%w: %d line frequencies but %d amplitudes", ErrInvalidConfig, len(o.lines.Freqs), len(o.lines.RelativeAmps))
	}

	run, err := prepare(cfg, s, o.logger)
	if err != nil {
		return nil, err
	}

	o.logger.Debug("generating mock data",
		zap.Stringer("model", cfg.Model()),
		zap.Int("sec", sec),
		zap.Int("fs", fs),
		zap.Reflect("config", cfg))

	bg, err := background.Bucket(s, o.bucket, o.rng)
	if err != nil {
		return nil, fmt.Errorf("%w: background: %w", ErrInvalidConfig, err)
	}

	lines, err := background.Lines(s, o.lines, o.rng)
	if err != nil {
		return nil, fmt.Errorf("%w: lines: %w", ErrInvalidConfig, err)
	}
	vecmath.AddBlockInPlace(bg, lines)

	res := &Result{
		Model:      cfg.Model(),
		SampleRate: fs,
		Times:      s.Times(),
		Background: bg,
		Aux:        newAux(),
	}

	coupled, err := run(o.rng, res)
	if err != nil {
		return nil, err
	}

	res.Target = make([]float64, len(bg))
	copy(res.Target, bg)
	vecmath.AddBlockInPlace(res.Target, coupled)

	return res, nil
}

// Dispatch resolves name, parses the keyword tokens and runs Generate.
func Dispatch(name string, sec, fs int, keywords []string, opts ...Option) (*Result, error) {
	m, err := ParseModel(name)
	if err != nil {
		return nil, err
	}

	cfg, err := ParseKeywords(m, keywords)
	if err != nil {
		return nil, err
	}

	return Generate(cfg, sec, fs, opts...)
}

func prepare(cfg Config, s core.Series, logger *zap.Logger) (coupling, error) {
	switch c := cfg.(type) {
	case ScatterConfig:
		return prepareScatter(c, s)
	case BilinearConfig:
		return prepareBilinear(c, s)
	case ResonanceConfig:
		return prepareResonance(c, s, logger), nil
	default:
		return nil, fmt.Errorf("%w: unsupported config type %T", ErrInvalidConfig, cfg)
	}
}

func prepareScatter(c ScatterConfig, s core.Series) (coupling, error) {
	m, err := scatter.New(s, c.Config)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return func(rng *rand.Rand, res *Result) ([]float64, error) {
		out := m.Witnesses(rng)

		for _, row := range out.Rows {
			w := Witness{Name: row.Name, Family: FamilySeismic, Role: RoleIrrelevant, Data: row.Data}
			if row.Acoustic {
				w.Family = FamilyAcoustic
			}
			if row.Relevant {
				w.Role = RoleRelevant
			}
			res.Witnesses = append(res.Witnesses, w)
		}

		res.Aux.Series["y1"] = out.Seismic
		res.Aux.Series["y2"] = out.Acoustic

		return scatter.Couple(out.Seismic, out.Acoustic, scatter.DefaultScale, scatter.DefaultPhase)
	}, nil
}

func prepareBilinear(c BilinearConfig, s core.Series) (coupling, error) {
	var opts bilinear.Options
	if c.ControlZPK != "" {
		sys, err := zpk.LoadFile(c.ControlZPK)
		if err != nil {
			return nil, fmt.Errorf("%w: bilinear control model: %w", ErrInvalidConfig, err)
		}
		opts.Control = &sys
	}

	m, err := bilinear.New(s, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return func(rng *rand.Rand, res *Result) ([]float64, error) {
		n := s.Len()
		coupled := make([]float64, n)
		ideal := make([]float64, n)

		beams := make([]Witness, 0, c.Pairs)
		angles := make([]Witness, 0, c.Pairs)
		trueBeam := make([][]float64, 0, c.Pairs)
		trueAngle := make([][]float64, 0, c.Pairs)

		for i := range c.Pairs {
			p := m.Witness(rng)

			prod, err := bilinear.Couple(p.TrueBeam, p.TrueAngle)
			if err != nil {
				return nil, err
			}
			vecmath.AddBlockInPlace(coupled, prod)

			est, err := bilinear.IdealEstimate(p.Beam, p.Angular, s.Rate())
			if err != nil {
				return nil, err
			}
			vecmath.AddBlockInPlace(ideal, est)

			beams = append(beams, Witness{
				Name: fmt.Sprintf("beam_spot_%d", i), Family: FamilyBeamSpot, Role: RoleRelevant, Data: p.Beam,
			})
			angles = append(angles, Witness{
				Name: fmt.Sprintf("angular_%d", i), Family: FamilyAngular, Role: RoleRelevant, Data: p.Angular,
			})
			trueBeam = append(trueBeam, p.TrueBeam)
			trueAngle = append(trueAngle, p.TrueAngle)
		}

		res.Witnesses = append(beams, angles...)
		res.Aux.Matrices["true_motions"] = append(trueBeam, trueAngle...)
		res.Aux.Series["ideal_estimate"] = ideal
		res.Aux.Scalars["pairs"] = float64(c.Pairs)

		return coupled, nil
	}, nil
}

func prepareResonance(c ResonanceConfig, s core.Series, logger *zap.Logger) coupling {
	return func(rng *rand.Rand, res *Result) ([]float64, error) {
		logger.Debug("resonance parameters",
			zap.Float64("quality", c.Quality),
			zap.Float64("frequency", c.Frequency))

		w, err := resonance.Witness(s, rng)
		if err != nil {
			return nil, err
		}

		res.Witnesses = append(res.Witnesses, Witness{Name: "white_0", Family: FamilyWhite, Role: RoleRelevant, Data: w})
		res.Aux.Scalars["frequency"] = c.Frequency
		res.Aux.Scalars["quality"] = c.Quality

		return resonance.Couple(w, s.Rate(), c.Frequency, c.Quality)
	}
}
