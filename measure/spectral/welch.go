package spectral

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-mockdata/dsp/window"
	"github.com/cwbudde/algo-mockdata/internal/fftutil"
)

// ErrInvalidInput reports input series or settings a spectral estimate
// cannot be computed from.
var ErrInvalidInput = errors.New("spectral: invalid input")

// Config holds Welch estimation parameters.
type Config struct {
	SampleRate    float64
	SegmentLength int // samples per segment; 0 means 8 s of data
	Overlap       int // samples shared by neighbouring segments; < 0 means half a segment
	Window        window.Type
}

// DefaultConfig returns 8 s Hann segments with half overlap.
func DefaultConfig(sampleRate float64) Config {
	return Config{SampleRate: sampleRate, Overlap: -1, Window: window.TypeHann}
}

func normalizeConfig(cfg Config, n int) (Config, error) {
	if !(cfg.SampleRate > 0) {
		return cfg, fmt.Errorf("%w: sample rate %v", ErrInvalidInput, cfg.SampleRate)
	}
	if n == 0 {
		return cfg, fmt.Errorf("%w: empty series", ErrInvalidInput)
	}

	if cfg.SegmentLength <= 0 {
		cfg.SegmentLength = int(8 * cfg.SampleRate)
	}
	if cfg.SegmentLength > n {
		cfg.SegmentLength = n
	}
	if cfg.Overlap < 0 {
		cfg.Overlap = cfg.SegmentLength / 2
	}
	if cfg.Overlap >= cfg.SegmentLength {
		return cfg, fmt.Errorf("%w: overlap %d must be below segment length %d", ErrInvalidInput, cfg.Overlap, cfg.SegmentLength)
	}

	return cfg, nil
}

// Spectrum is a real-valued estimate on a frequency grid.
type Spectrum struct {
	Freqs  []float64
	Values []float64
}

// At returns the value of the bin nearest to freqHz.
func (s *Spectrum) At(freqHz float64) float64 {
	if len(s.Freqs) < 2 {
		if len(s.Values) == 0 {
			return math.NaN()
		}
		return s.Values[0]
	}

	df := s.Freqs[1] - s.Freqs[0]
	k := int(math.Round((freqHz - s.Freqs[0]) / df))
	k = max(0, min(k, len(s.Values)-1))

	return s.Values[k]
}

// BandMean averages the values with lowHz <= f < highHz. NaN if the band
// holds no bins.
func (s *Spectrum) BandMean(lowHz, highHz float64) float64 {
	sum, n := 0.0, 0
	for i, f := range s.Freqs {
		if f >= lowHz && f < highHz {
			sum += s.Values[i]
			n++
		}
	}

	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// segmenter holds the window and scaling shared by all estimates of one
// configuration.
type segmenter struct {
	cfg   Config
	win   []float64
	scale float64
	count int
}

func newSegmenter(cfg Config, n int) (*segmenter, error) {
	cfg, err := normalizeConfig(cfg, n)
	if err != nil {
		return nil, err
	}

	win, err := window.Generate(cfg.Window, cfg.SegmentLength, window.WithPeriodic())
	if err != nil {
		return nil, fmt.Errorf("spectral: %w", err)
	}

	step := cfg.SegmentLength - cfg.Overlap

	return &segmenter{
		cfg:   cfg,
		win:   win,
		scale: 1 / (cfg.SampleRate * window.SumSquares(win)),
		count: (n-cfg.SegmentLength)/step + 1,
	}, nil
}

func (s *segmenter) freqs() []float64 {
	return fftutil.Freqs(s.cfg.SegmentLength, s.cfg.SampleRate)
}

// spectrum returns the windowed, mean-removed transform of segment i of x.
func (s *segmenter) spectrum(x []float64, i int) ([]complex128, error) {
	start := i * (s.cfg.SegmentLength - s.cfg.Overlap)
	seg := x[start : start+s.cfg.SegmentLength]

	mean := 0.0
	for _, v := range seg {
		mean += v
	}
	mean /= float64(len(seg))

	buf := make([]float64, len(seg))
	for j, v := range seg {
		buf[j] = v - mean
	}

	windowed, err := window.Apply(buf, s.win)
	if err != nil {
		return nil, fmt.Errorf("spectral: %w", err)
	}

	return fftutil.Forward(windowed)
}

// oneSided doubles every bin except DC and, for even segment lengths, the
// Nyquist bin.
func (s *segmenter) oneSided(k int) float64 {
	if k == 0 || (s.cfg.SegmentLength%2 == 0 && k == s.cfg.SegmentLength/2) {
		return 1
	}
	return 2
}

// Welch returns the one-sided power spectral density of x.
func Welch(x []float64, cfg Config) (*Spectrum, error) {
	seg, err := newSegmenter(cfg, len(x))
	if err != nil {
		return nil, err
	}

	bins := seg.cfg.SegmentLength/2 + 1
	acc := make([]float64, bins)
	re := make([]float64, bins)
	im := make([]float64, bins)
	pow := make([]float64, bins)

	for i := range seg.count {
		spec, err := seg.spectrum(x, i)
		if err != nil {
			return nil, err
		}

		for k, c := range spec {
			re[k], im[k] = real(c), imag(c)
		}

		vecmath.Power(pow, re, im)
		vecmath.AddBlockInPlace(acc, pow)
	}

	norm := seg.scale / float64(seg.count)
	for k := range acc {
		acc[k] *= norm * seg.oneSided(k)
	}

	return &Spectrum{Freqs: seg.freqs(), Values: acc}, nil
}

// ASD returns the amplitude spectral density, the square root of Welch.
func ASD(x []float64, cfg Config) (*Spectrum, error) {
	psd, err := Welch(x, cfg)
	if err != nil {
		return nil, err
	}

	for k, v := range psd.Values {
		psd.Values[k] = math.Sqrt(v)
	}

	return psd, nil
}

// CSD returns the one-sided cross spectral density conj(X)*Y of x and y.
func CSD(x, y []float64, cfg Config) ([]float64, []complex128, error) {
	if len(x) != len(y) {
		return nil, nil, fmt.Errorf("%w: lengths %d and %d differ", ErrInvalidInput, len(x), len(y))
	}

	seg, err := newSegmenter(cfg, len(x))
	if err != nil {
		return nil, nil, err
	}

	acc := make([]complex128, seg.cfg.SegmentLength/2+1)
	for i := range seg.count {
		sx, err := seg.spectrum(x, i)
		if err != nil {
			return nil, nil, err
		}

		sy, err := seg.spectrum(y, i)
		if err != nil {
			return nil, nil, err
		}

		for k := range acc {
			acc[k] += complex(real(sx[k]), -imag(sx[k])) * sy[k]
		}
	}

	norm := seg.scale / float64(seg.count)
	for k := range acc {
		acc[k] *= complex(norm*seg.oneSided(k), 0)
	}

	return seg.freqs(), acc, nil
}

// Coherence returns the magnitude-squared coherence |Pxy|^2/(Pxx*Pyy).
// Bins where either input has no power are 0.
func Coherence(x, y []float64, cfg Config) (*Spectrum, error) {
	freqs, pxy, err := CSD(x, y, cfg)
	if err != nil {
		return nil, err
	}

	pxx, err := Welch(x, cfg)
	if err != nil {
		return nil, err
	}

	pyy, err := Welch(y, cfg)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(pxy))
	for k, c := range pxy {
		den := pxx.Values[k] * pyy.Values[k]
		if den > 0 {
			out[k] = (real(c)*real(c) + imag(c)*imag(c)) / den
		}
	}

	return &Spectrum{Freqs: freqs, Values: out}, nil
}
