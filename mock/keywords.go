package mock

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
)

// ErrHelp is returned by ParseKeywords when the tokens ask for help.
var ErrHelp = pflag.ErrHelp

// keywordSet binds the flags of one model onto a Config value.
type keywordSet struct {
	flags  *pflag.FlagSet
	result func() Config
}

func newKeywordSet(m Model) (*keywordSet, error) {
	fs := pflag.NewFlagSet(string(m), pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	switch m {
	case Scatter:
		def, _ := DefaultConfig(Scatter)
		cfg := def.(ScatterConfig)

		fs.BoolVarP(&cfg.RandomPhase, "random_phase", "p", cfg.RandomPhase, "randomize the phase of the relevant acoustic witnesses")
		fs.BoolVarP(&cfg.FilterSeismic, "filt_seismic", "f", cfg.FilterSeismic, "low-pass the seismic witnesses at 1.1 Hz")
		fs.IntVarP(&cfg.Relevant, "relevant", "r", cfg.Relevant, "number of relevant witnesses")
		fs.IntVarP(&cfg.Irrelevant, "irrelevant", "i", cfg.Irrelevant, "number of irrelevant witnesses")
		fs.Float64Var(&cfg.IrrelevantNoise, "irrelevant_noise", cfg.IrrelevantNoise, "sensing noise amplitude on the seismic witnesses (m)")

		return &keywordSet{flags: fs, result: func() Config { return cfg }}, nil

	case Bilinear:
		def, _ := DefaultConfig(Bilinear)
		cfg := def.(BilinearConfig)

		fs.IntVarP(&cfg.Pairs, "pairs", "p", cfg.Pairs, "number of beam spot and angular witness pairs, all coupling into the target")
		fs.StringVar(&cfg.ControlZPK, "control_zpk", cfg.ControlZPK, "zpk JSON file with the angular control model")

		return &keywordSet{flags: fs, result: func() Config { return cfg }}, nil

	case Resonance:
		def, _ := DefaultConfig(Resonance)
		cfg := def.(ResonanceConfig)

		fs.Float64VarP(&cfg.Frequency, "frequency", "f", cfg.Frequency, "resonant frequency (Hz)")
		fs.Float64VarP(&cfg.Quality, "quality", "q", cfg.Quality, "quality factor")

		return &keywordSet{flags: fs, result: func() Config { return cfg }}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, string(m))
	}
}

// ParseKeywords parses model keyword tokens such as
// []string{"-r", "4", "--irrelevant=2"} into the model's Config. Values
// left out keep their defaults. Tokens asking for help return ErrHelp.
func ParseKeywords(m Model, tokens []string) (Config, error) {
	ks, err := newKeywordSet(m)
	if err != nil {
		return nil, err
	}

	if err := ks.flags.Parse(tokens); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, ErrHelp
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, m, err)
	}

	if ks.flags.NArg() > 0 {
		return nil, fmt.Errorf("%w: %s: unexpected arguments %q", ErrInvalidConfig, m, ks.flags.Args())
	}

	cfg := ks.result()
	if err := check(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// KeywordUsage returns the keyword help of m.
func KeywordUsage(m Model) (string, error) {
	ks, err := newKeywordSet(m)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s keywords:\n", m)
	b.WriteString(ks.flags.FlagUsages())

	return b.String(), nil
}

// check runs the validation that does not depend on the series geometry.
func check(cfg Config) error {
	switch c := cfg.(type) {
	case ScatterConfig:
		return c.check()
	case BilinearConfig:
		return c.check()
	case ResonanceConfig:
		// Frequency bounds depend on the sample rate; Generate checks them.
		return nil
	default:
		return fmt.Errorf("%w: unsupported config type %T", ErrInvalidConfig, cfg)
	}
}
