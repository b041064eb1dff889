package design

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-mockdata/dsp/filter/biquad"
	"github.com/cwbudde/algo-mockdata/dsp/filter/zpk"
)

var (
	// ErrInvalidResonance reports a resonance frequency that is not
	// positive or not below Nyquist.
	ErrInvalidResonance = errors.New("design: invalid resonance frequency")
	// ErrInvalidQuality reports a non-positive quality factor.
	ErrInvalidQuality = errors.New("design: invalid quality factor")
	// ErrInvalidCutoff reports band edges outside (0, Nyquist) or out of order.
	ErrInvalidCutoff = errors.New("design: invalid cutoff frequency")
	// ErrInvalidOrder reports a filter order below one.
	ErrInvalidOrder = errors.New("design: invalid filter order")
)

// prewarp maps a digital frequency in Hz to the analog angular frequency
// that the bilinear transform at sampleRate sends back onto it.
func prewarp(freqHz, sampleRate float64) float64 {
	return 2 * sampleRate * math.Tan(math.Pi*freqHz/sampleRate)
}

func checkCutoff(freqHz, sampleRate float64) error {
	if !(sampleRate > 0) {
		return fmt.Errorf("%w: sample rate %v", ErrInvalidCutoff, sampleRate)
	}
	if !(freqHz > 0) || freqHz >= sampleRate/2 {
		return fmt.Errorf("%w: %v Hz must lie in (0, %v)", ErrInvalidCutoff, freqHz, sampleRate/2)
	}
	return nil
}

func checkOrder(order int) error {
	if order < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidOrder, order)
	}
	return nil
}

// discretize runs the bilinear transform without prewarp and realizes the
// result as sections.
func discretize(sys zpk.ZPK, sampleRate float64) ([]biquad.Coefficients, error) {
	d, err := zpk.Bilinear(sys, sampleRate, 0)
	if err != nil {
		return nil, err
	}

	return d.Sections()
}

// ButterworthLowpass designs an order-n Butterworth lowpass with its -3 dB
// point at cutoffHz.
func ButterworthLowpass(order int, cutoffHz, sampleRate float64) ([]biquad.Coefficients, error) {
	if err := checkOrder(order); err != nil {
		return nil, err
	}
	if err := checkCutoff(cutoffHz, sampleRate); err != nil {
		return nil, err
	}

	proto, err := zpk.Butterworth(order)
	if err != nil {
		return nil, err
	}

	sys, err := zpk.ToLowpass(proto, prewarp(cutoffHz, sampleRate))
	if err != nil {
		return nil, err
	}

	return discretize(sys, sampleRate)
}

// ButterworthHighpass designs an order-n Butterworth highpass with its -3 dB
// point at cutoffHz.
func ButterworthHighpass(order int, cutoffHz, sampleRate float64) ([]biquad.Coefficients, error) {
	if err := checkOrder(order); err != nil {
		return nil, err
	}
	if err := checkCutoff(cutoffHz, sampleRate); err != nil {
		return nil, err
	}

	proto, err := zpk.Butterworth(order)
	if err != nil {
		return nil, err
	}

	sys, err := zpk.ToHighpass(proto, prewarp(cutoffHz, sampleRate))
	if err != nil {
		return nil, err
	}

	return discretize(sys, sampleRate)
}

// ButterworthBandpass designs a Butterworth bandpass of prototype order n
// (2n poles) with -3 dB edges at lowHz and highHz.
func ButterworthBandpass(order int, lowHz, highHz, sampleRate float64) ([]biquad.Coefficients, error) {
	if err := checkOrder(order); err != nil {
		return nil, err
	}
	if err := checkCutoff(lowHz, sampleRate); err != nil {
		return nil, err
	}
	if err := checkCutoff(highHz, sampleRate); err != nil {
		return nil, err
	}
	if lowHz >= highHz {
		return nil, fmt.Errorf("%w: band edges %v >= %v Hz", ErrInvalidCutoff, lowHz, highHz)
	}

	proto, err := zpk.Butterworth(order)
	if err != nil {
		return nil, err
	}

	w1 := prewarp(lowHz, sampleRate)
	w2 := prewarp(highHz, sampleRate)

	sys, err := zpk.ToBandpass(proto, math.Sqrt(w1*w2), w2-w1)
	if err != nil {
		return nil, err
	}

	return discretize(sys, sampleRate)
}

// EllipticLowpass designs an order-n elliptic lowpass with passband edge
// cutoffHz, rippleDB of passband ripple and stopbandDB of minimum
// stopband attenuation. Even orders have a DC gain of -rippleDB.
func EllipticLowpass(order int, rippleDB, stopbandDB, cutoffHz, sampleRate float64) ([]biquad.Coefficients, error) {
	if err := checkOrder(order); err != nil {
		return nil, err
	}
	if err := checkCutoff(cutoffHz, sampleRate); err != nil {
		return nil, err
	}

	proto, err := zpk.Elliptic(order, rippleDB, stopbandDB)
	if err != nil {
		return nil, err
	}

	sys, err := zpk.ToLowpass(proto, prewarp(cutoffHz, sampleRate))
	if err != nil {
		return nil, err
	}

	return discretize(sys, sampleRate)
}
