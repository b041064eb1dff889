package zpk

import (
	"math"
	"math/cmplx"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-mockdata/dsp/filter/biquad"
)

var invSqrt2 = 1 / math.Sqrt2

func TestButterworthPrototype(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 7} {
		sys, err := Butterworth(n)
		require.NoError(t, err)
		require.Len(t, sys.P, n)

		for _, p := range sys.P {
			assert.InDelta(t, 1, cmplx.Abs(p), 1e-12)
			assert.Less(t, real(p), 0.0)
		}

		assert.InDelta(t, 1, cmplx.Abs(sys.Eval(0)), 1e-12, "n=%d DC", n)
		assert.InDelta(t, invSqrt2, cmplx.Abs(sys.Eval(complex(0, 1))), 1e-12, "n=%d cutoff", n)
	}

	_, err := Butterworth(0)
	require.ErrorIs(t, err, ErrInvalidSystem)
}

func TestBandTransforms(t *testing.T) {
	proto, err := Butterworth(3)
	require.NoError(t, err)

	lp, err := ToLowpass(proto, 50)
	require.NoError(t, err)
	assert.InDelta(t, invSqrt2, cmplx.Abs(lp.Eval(complex(0, 50))), 1e-12)
	assert.InDelta(t, 1, cmplx.Abs(lp.Eval(0)), 1e-12)

	hp, err := ToHighpass(proto, 50)
	require.NoError(t, err)
	require.Len(t, hp.Z, 3)
	assert.InDelta(t, invSqrt2, cmplx.Abs(hp.Eval(complex(0, 50))), 1e-12)
	assert.InDelta(t, 1, cmplx.Abs(hp.Eval(complex(0, 1e6))), 1e-6)

	w1, w2 := 10.0, 40.0
	bp, err := ToBandpass(proto, math.Sqrt(w1*w2), w2-w1)
	require.NoError(t, err)
	require.Len(t, bp.P, 6)
	require.Len(t, bp.Z, 3)
	assert.InDelta(t, 1, cmplx.Abs(bp.Eval(complex(0, math.Sqrt(w1*w2)))), 1e-12)
	assert.InDelta(t, invSqrt2, cmplx.Abs(bp.Eval(complex(0, w1))), 1e-12)
	assert.InDelta(t, invSqrt2, cmplx.Abs(bp.Eval(complex(0, w2))), 1e-12)

	_, err = ToLowpass(proto, 0)
	require.ErrorIs(t, err, ErrInvalidSystem)
	_, err = ToBandpass(proto, 10, -1)
	require.ErrorIs(t, err, ErrInvalidSystem)
}

func pendulum(f0, q float64) ZPK {
	w := 2 * math.Pi * f0
	angle := math.Acos(1 / (2 * q))
	p1 := complex(-w, 0) * cmplx.Exp(complex(0, angle))
	p2 := complex(-w, 0) * cmplx.Exp(complex(0, -angle))

	return ZPK{P: []complex128{p1, p2}, K: real(p1 * p2)}
}

func TestBilinear_PreservesDCAndPadsZeros(t *testing.T) {
	sys := pendulum(8, 3)

	d, err := Bilinear(sys, 2048, 0)
	require.NoError(t, err)
	require.Len(t, d.Z, 2)
	require.Len(t, d.P, 2)

	for _, z := range d.Z {
		assert.Equal(t, complex(-1, 0), z)
	}
	for _, p := range d.P {
		assert.Less(t, cmplx.Abs(p), 1.0)
	}

	assert.InDelta(t, 1, real(d.DigitalResponse(0, 2048)), 1e-9)
	assert.InDelta(t, 0, imag(d.DigitalResponse(0, 2048)), 1e-9)
}

func TestBilinear_WarpMatchesAnalogAtWarpFrequency(t *testing.T) {
	proto, err := Butterworth(2)
	require.NoError(t, err)

	sys, err := ToLowpass(proto, 2*math.Pi*100)
	require.NoError(t, err)

	d, err := Bilinear(sys, 1000, 100)
	require.NoError(t, err)

	got := cmplx.Abs(d.DigitalResponse(100, 1000))
	want := cmplx.Abs(sys.AnalogResponse(100))
	assert.InDelta(t, want, got, 1e-9)
}

func TestBilinear_Errors(t *testing.T) {
	sys := pendulum(8, 3)

	_, err := Bilinear(sys, 0, 0)
	require.ErrorIs(t, err, ErrInvalidSystem)

	_, err = Bilinear(sys, 100, 60)
	require.ErrorIs(t, err, ErrInvalidSystem)

	_, err = Bilinear(ZPK{Z: []complex128{1, 2}, P: []complex128{-1}, K: 1}, 100, 0)
	require.ErrorIs(t, err, ErrInvalidSystem)

	_, err = Bilinear(ZPK{P: []complex128{-1}, K: math.NaN()}, 100, 0)
	require.ErrorIs(t, err, ErrInvalidSystem)
}

func TestBilinear_DropsZerosAtInfinity(t *testing.T) {
	sys := ZPK{Z: []complex128{cmplx.Inf()}, P: []complex128{-10}, K: 10}

	d, err := Bilinear(sys, 100, 0)
	require.NoError(t, err)
	require.Equal(t, []complex128{-1}, d.Z)
}

func TestSections_MatchZPKResponse(t *testing.T) {
	proto, err := Elliptic(5, 1, 50)
	require.NoError(t, err)

	sys, err := ToLowpass(proto, 2*1000*math.Tan(math.Pi*60/1000))
	require.NoError(t, err)

	d, err := Bilinear(sys, 1000, 0)
	require.NoError(t, err)

	sos, err := d.Sections()
	require.NoError(t, err)
	require.Len(t, sos, 3)
	require.True(t, biquad.Stable(sos))

	for _, f := range []float64{0, 10, 60, 90, 200, 499} {
		want := d.DigitalResponse(f, 1000)
		got := biquad.CascadeResponse(sos, f, 1000)
		assert.InDelta(t, 0, cmplx.Abs(got-want), 1e-9*math.Max(1, cmplx.Abs(want)), "f=%v", f)
	}
}

func TestSections_GainOnly(t *testing.T) {
	sos, err := ZPK{K: 3}.Sections()
	require.NoError(t, err)
	require.Equal(t, []biquad.Coefficients{{B0: 3}}, sos)

	_, err = ZPK{Z: []complex128{1}, K: 1}.Sections()
	require.ErrorIs(t, err, ErrInvalidSystem)
}

func TestEllipticPrototype(t *testing.T) {
	even, err := Elliptic(4, 3, 40)
	require.NoError(t, err)
	require.Len(t, even.P, 4)
	require.Len(t, even.Z, 4)

	ripple := math.Pow(10, -3.0/20)
	assert.InDelta(t, ripple, cmplx.Abs(even.Eval(0)), 1e-9)
	assert.InDelta(t, ripple, cmplx.Abs(even.Eval(complex(0, 1))), 1e-6)

	for _, w := range []float64{2, 3, 5, 10, 100} {
		assert.LessOrEqual(t, cmplx.Abs(even.Eval(complex(0, w))), 0.01*(1+1e-6), "w=%v", w)
	}

	odd, err := Elliptic(3, 0.5, 60)
	require.NoError(t, err)
	require.Len(t, odd.P, 3)
	require.Len(t, odd.Z, 2)
	assert.InDelta(t, 1, cmplx.Abs(odd.Eval(0)), 1e-9)

	for _, p := range append(even.P, odd.P...) {
		assert.Less(t, real(p), 0.0)
	}

	_, err = Elliptic(4, 3, 2)
	require.ErrorIs(t, err, ErrInvalidSystem)
}

func TestLoad(t *testing.T) {
	src := `{"z": [[0, 0]], "p": [[-1, 2], [-1, -2], -3], "k": 2.5}`

	sys, err := Load(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []complex128{0}, sys.Z)
	assert.Equal(t, []complex128{complex(-1, 2), complex(-1, -2), -3}, sys.P)
	assert.Equal(t, 2.5, sys.K)

	for _, bad := range []string{
		`{"z": [], "p": [[-1, 0]]}`,
		`{"p": [[-1, 0, 3]], "k": 1}`,
		`{"p": ["x"], "k": 1}`,
		`not json`,
	} {
		_, err := Load(strings.NewReader(bad))
		require.Error(t, err, bad)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "control.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"p": [[-10, 0]], "k": 10}`), 0o600))

	sys, err := LoadFile(path)
	require.NoError(t, err)
	assert.Empty(t, sys.Z)
	assert.Equal(t, 1, sys.Degree())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
