package core

import (
	"errors"
	"fmt"
)

// Series validation errors.
var (
	ErrInvalidDuration   = errors.New("core: duration must be a positive integer number of seconds")
	ErrInvalidSampleRate = errors.New("core: sample rate must be a positive integer number of Hz")
)

// Series describes the geometry shared by every time series of one
// generation run: an integer duration in seconds and an integer sample
// rate in Hz. The sample count Duration*SampleRate is therefore always
// integral.
type Series struct {
	Duration   int
	SampleRate int
}

// NewSeries returns a validated Series.
func NewSeries(sec, fs int) (Series, error) {
	s := Series{Duration: sec, SampleRate: fs}
	if err := s.Validate(); err != nil {
		return Series{}, err
	}

	return s, nil
}

// Validate reports whether the geometry is usable.
func (s Series) Validate() error {
	if s.Duration <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDuration, s.Duration)
	}

	if s.SampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, s.SampleRate)
	}

	return nil
}

// Len returns the number of samples N = Duration*SampleRate.
func (s Series) Len() int {
	return s.Duration * s.SampleRate
}

// Rate returns the sample rate as a float64.
func (s Series) Rate() float64 {
	return float64(s.SampleRate)
}

// Nyquist returns half the sample rate.
func (s Series) Nyquist() float64 {
	return float64(s.SampleRate) / 2
}

// Times returns the sample times t_i = i/fs for i in [0, N).
func (s Series) Times() []float64 {
	out := make([]float64, s.Len())

	fs := s.Rate()
	for i := range out {
		out[i] = float64(i) / fs
	}

	return out
}

// String implements fmt.Stringer.
func (s Series) String() string {
	return fmt.Sprintf("%ds@%dHz", s.Duration, s.SampleRate)
}
