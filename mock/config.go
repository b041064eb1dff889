package mock

import (
	"fmt"

	"github.com/cwbudde/algo-mockdata/dsp/core"
	"github.com/cwbudde/algo-mockdata/mock/resonance"
	"github.com/cwbudde/algo-mockdata/mock/scatter"
)

// Config is the model-specific configuration. The concrete type selects
// the model: ScatterConfig, BilinearConfig or ResonanceConfig.
type Config interface {
	Model() Model
	// Validate checks the configuration against the series geometry.
	Validate(s core.Series) error
}

// ScatterConfig configures the scatter model.
type ScatterConfig struct {
	scatter.Config
}

// Model implements Config.
func (ScatterConfig) Model() Model { return Scatter }

// Validate implements Config.
func (c ScatterConfig) Validate(s core.Series) error {
	if err := s.Validate(); err != nil {
		return err
	}
	return c.check()
}

func (c ScatterConfig) check() error {
	if err := c.Config.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// BilinearConfig configures the bilinear model.
type BilinearConfig struct {
	// Pairs is the number of independent beam-spot/angular pairs.
	Pairs int
	// ControlZPK optionally names a zpk JSON file that replaces the
	// default angular control shaping.
	ControlZPK string
}

// Model implements Config.
func (BilinearConfig) Model() Model { return Bilinear }

// Validate implements Config.
func (c BilinearConfig) Validate(s core.Series) error {
	if err := s.Validate(); err != nil {
		return err
	}
	return c.check()
}

func (c BilinearConfig) check() error {
	if c.Pairs < 1 {
		return fmt.Errorf("%w: bilinear pairs must be a positive integer: %d", ErrInvalidConfig, c.Pairs)
	}
	return nil
}

// ResonanceConfig configures the resonance model.
type ResonanceConfig struct {
	resonance.Config
}

// Model implements Config.
func (ResonanceConfig) Model() Model { return Resonance }

// Validate implements Config.
func (c ResonanceConfig) Validate(s core.Series) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := c.Config.Validate(s); err != nil {
		return fmt.Errorf("%w: resonance: %w", ErrInvalidConfig, err)
	}
	return nil
}

// DefaultConfig returns the defaults of m.
func DefaultConfig(m Model) (Config, error) {
	switch m {
	case Scatter:
		return ScatterConfig{scatter.DefaultConfig()}, nil
	case Bilinear:
		return BilinearConfig{Pairs: 1}, nil
	case Resonance:
		return ResonanceConfig{resonance.DefaultConfig()}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, string(m))
	}
}
