package spectral

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-mockdata/internal/fftutil"
)

// SubtractConfig controls the coherence-gated subtraction.
type SubtractConfig struct {
	Config

	// Threshold is the coherence below which a band is left untouched.
	Threshold float64
	// MinFreq is the frequency below which nothing is subtracted.
	MinFreq float64
}

// DefaultSubtractConfig returns a 0.05 coherence gate above 10 Hz.
func DefaultSubtractConfig(sampleRate float64) SubtractConfig {
	return SubtractConfig{
		Config:    DefaultConfig(sampleRate),
		Threshold: 0.05,
		MinFreq:   10,
	}
}

// Subtraction is the result of removing a witness from a target.
type Subtraction struct {
	// Residual is the target with the witness contribution removed.
	Residual []float64
	// Estimate is the witness contribution that was removed.
	Estimate []float64
	// Coherence between target and witness on the Welch grid.
	Coherence *Spectrum
	// Transfer is the gated witness-to-target transfer function on the
	// Welch grid.
	Transfer []complex128
}

// Subtract estimates the linear transfer function from witness to target
// as Pwt/Pww on the Welch grid, zeroes it where the coherence is below the
// threshold or the frequency below MinFreq, applies it to the full-length
// witness spectrum and subtracts the result from the target.
func Subtract(target, witness []float64, cfg SubtractConfig) (*Subtraction, error) {
	if len(target) != len(witness) {
		return nil, fmt.Errorf("%w: target has %d samples, witness %d", ErrInvalidInput, len(target), len(witness))
	}

	freqs, pwt, err := CSD(witness, target, cfg.Config)
	if err != nil {
		return nil, err
	}
	if len(freqs) < 2 {
		return nil, fmt.Errorf("%w: segment too short for a transfer estimate", ErrInvalidInput)
	}

	pww, err := Welch(witness, cfg.Config)
	if err != nil {
		return nil, err
	}

	coh, err := Coherence(witness, target, cfg.Config)
	if err != nil {
		return nil, err
	}

	transfer := make([]complex128, len(pwt))
	for k := range pwt {
		if freqs[k] < cfg.MinFreq || coh.Values[k] < cfg.Threshold || pww.Values[k] == 0 {
			continue
		}
		transfer[k] = pwt[k] / complex(pww.Values[k], 0)
	}

	n := len(target)

	ws, err := fftutil.Forward(witness)
	if err != nil {
		return nil, err
	}

	df := freqs[1] - freqs[0]
	binHz := cfg.SampleRate / float64(n)
	for k := range ws {
		j := int(math.Round(float64(k) * binHz / df))
		j = min(j, len(transfer)-1)
		ws[k] *= transfer[j]
	}

	estimate, err := fftutil.Inverse(ws, n)
	if err != nil {
		return nil, err
	}

	residual := make([]float64, n)
	for i := range residual {
		residual[i] = target[i] - estimate[i]
	}

	return &Subtraction{
		Residual:  residual,
		Estimate:  estimate,
		Coherence: coh,
		Transfer:  transfer,
	}, nil
}
