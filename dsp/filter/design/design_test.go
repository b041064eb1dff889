package design

import (
	"math"
	"math/cmplx"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-mockdata/dsp/filter/biquad"
)

const minus3dB = -3.010299956639812

func magDB(sos []biquad.Coefficients, f, fs float64) float64 {
	return biquad.CascadeMagnitudeDB(sos, f, fs)
}

func TestButterworthLowpass(t *testing.T) {
	tests := []struct {
		order  int
		cutoff float64
		fs     float64
	}{
		{1, 1.1, 2048},
		{2, 100, 1000},
		{4, 3, 16384},
		{5, 440, 48000},
	}

	for _, tt := range tests {
		sos, err := ButterworthLowpass(tt.order, tt.cutoff, tt.fs)
		require.NoError(t, err)
		require.Len(t, sos, (tt.order+1)/2)
		require.True(t, biquad.Stable(sos))

		assert.InDelta(t, 0, magDB(sos, 0, tt.fs), 1e-6, "order %d DC", tt.order)
		assert.InDelta(t, minus3dB, magDB(sos, tt.cutoff, tt.fs), 1e-4, "order %d cutoff", tt.order)
		assert.Less(t, magDB(sos, 4*tt.cutoff, tt.fs), magDB(sos, 2*tt.cutoff, tt.fs))
	}
}

func TestButterworthHighpass(t *testing.T) {
	sos, err := ButterworthHighpass(3, 200, 8000)
	require.NoError(t, err)

	assert.InDelta(t, minus3dB, magDB(sos, 200, 8000), 1e-6)
	assert.InDelta(t, 0, magDB(sos, 3999, 8000), 1e-3)
	assert.Less(t, magDB(sos, 20, 8000), -50.0)
}

func TestButterworthBandpass(t *testing.T) {
	tests := []struct {
		low, high, fs float64
	}{
		{0.1, 5, 2048},
		{100, 400, 8000},
	}

	for _, tt := range tests {
		sos, err := ButterworthBandpass(2, tt.low, tt.high, tt.fs)
		require.NoError(t, err)
		require.Len(t, sos, 2)
		require.True(t, biquad.Stable(sos))

		// The unity-gain centre is the geometric mean of the prewarped edges.
		w1 := prewarp(tt.low, tt.fs)
		w2 := prewarp(tt.high, tt.fs)
		centre := tt.fs / math.Pi * math.Atan(math.Sqrt(w1*w2)/(2*tt.fs))

		assert.InDelta(t, 0, magDB(sos, centre, tt.fs), 1e-4, "%v-%v centre", tt.low, tt.high)
		assert.InDelta(t, minus3dB, magDB(sos, tt.low, tt.fs), 1e-3, "%v-%v low edge", tt.low, tt.high)
		assert.InDelta(t, minus3dB, magDB(sos, tt.high, tt.fs), 1e-3, "%v-%v high edge", tt.low, tt.high)
	}

	_, err := ButterworthBandpass(2, 5, 0.1, 2048)
	require.ErrorIs(t, err, ErrInvalidCutoff)
}

func TestEllipticLowpass(t *testing.T) {
	const (
		fs = 2048.0
		fc = 17.0
		rp = 3.0
		rs = 40.0
	)

	sos, err := EllipticLowpass(4, rp, rs, fc, fs)
	require.NoError(t, err)
	require.Len(t, sos, 2)
	require.True(t, biquad.Stable(sos))

	assert.InDelta(t, -rp, magDB(sos, 0, fs), 1e-6)
	assert.InDelta(t, -rp, magDB(sos, fc, fs), 1e-3)

	for f := 2 * fc; f < fs/2; f *= 1.5 {
		assert.LessOrEqual(t, magDB(sos, f, fs), -rs+1, "f=%v", f)
	}
}

func TestDesignErrors(t *testing.T) {
	_, err := ButterworthLowpass(0, 10, 100)
	require.ErrorIs(t, err, ErrInvalidOrder)

	_, err = ButterworthLowpass(2, 50, 100)
	require.ErrorIs(t, err, ErrInvalidCutoff)

	_, err = ButterworthHighpass(2, -1, 100)
	require.ErrorIs(t, err, ErrInvalidCutoff)

	_, err = EllipticLowpass(4, 3, 40, 17, 0)
	require.ErrorIs(t, err, ErrInvalidCutoff)
}

func TestPendulum(t *testing.T) {
	tests := []struct {
		f0, q, fs, dc float64
	}{
		{8, 3, 2048, 1},
		{8, 3, 16384, 2.5},
		{1, 0.3, 256, 1},
		{40, 100, 1024, 1},
	}

	for _, tt := range tests {
		sos, err := Pendulum(tt.f0, tt.q, tt.fs, tt.dc)
		require.NoError(t, err)
		require.Len(t, sos, 1)
		require.True(t, biquad.Stable(sos))

		assert.InDelta(t, tt.dc, sos[0].DCGain(), 1e-9*tt.dc, "f0=%v q=%v", tt.f0, tt.q)
	}
}

func TestPendulum_ResonancePeak(t *testing.T) {
	sys, err := PendulumZPK(8, 100, 1)
	require.NoError(t, err)

	// |H(j w0)| = Q for a second-order resonance.
	assert.InDelta(t, 100, cmplx.Abs(sys.AnalogResponse(8)), 1e-9)

	sos, err := Pendulum(8, 100, 2048, 1)
	require.NoError(t, err)
	assert.InDelta(t, 40, magDB(sos, 8, 2048), 0.05)
}

func TestPendulum_Errors(t *testing.T) {
	tests := []struct {
		name    string
		f0, q   float64
		fs      float64
		wantErr error
	}{
		{"at nyquist", 1024, 3, 2048, ErrInvalidResonance},
		{"above nyquist", 2000, 3, 2048, ErrInvalidResonance},
		{"zero frequency", 0, 3, 2048, ErrInvalidResonance},
		{"negative q", 8, -1, 2048, ErrInvalidQuality},
		{"zero q", 8, 0, 2048, ErrInvalidQuality},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Pendulum(tt.f0, tt.q, tt.fs, 1)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFromZPKFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "control.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"z": [], "p": [[-62.83185307179586, 0]], "k": 62.83185307179586}`), 0o600))

	sos, err := FromZPKFile(path, 1024)
	require.NoError(t, err)
	require.Len(t, sos, 1)

	assert.InDelta(t, 1, sos[0].DCGain(), 1e-12)
	assert.Less(t, magDB(sos, 200, 1024), -20.0)

	_, err = FromZPKFile(filepath.Join(t.TempDir(), "nope.json"), 1024)
	require.Error(t, err)
}
