package main

import (
	"fmt"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-mockdata/dsp/window"
	"github.com/cwbudde/algo-mockdata/measure/spectral"
)

func newASDCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asd result.json",
		Short: "Print series statistics, band ASD and linear subtraction of a saved result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runASD(cmd, v, args[0])
		},
	}

	f := cmd.Flags()
	f.String("window", window.TypeHann.String(), "Welch window (rectangular, hann, hamming, blackman, kaiser)")
	f.Float64("segment", 8, "Welch segment length in seconds")
	f.Float64("low", 20, "lower band edge in Hz")
	f.Float64("high", 200, "upper band edge in Hz")
	f.Float64Slice("lines", []float64{60, 120, 180}, "line frequencies in Hz to report tone amplitudes for")
	_ = v.BindPFlags(f)

	return cmd
}

func runASD(cmd *cobra.Command, v *viper.Viper, path string) error {
	res, err := readResult(path)
	if err != nil {
		return err
	}

	wt, err := window.Parse(v.GetString("window"))
	if err != nil {
		return err
	}

	fs := float64(res.SampleRate)
	cfg := spectral.DefaultConfig(fs)
	cfg.Window = wt
	cfg.SegmentLength = int(v.GetFloat64("segment") * fs)

	lo, hi := v.GetFloat64("low"), math.Min(v.GetFloat64("high"), fs/2)
	if !(lo < hi) {
		return fmt.Errorf("empty band [%v, %v] Hz", lo, hi)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "channel\tmean\tstd\trms\tpeak\tasd[%g-%g Hz]\n", lo, hi)

	row := func(name string, x []float64) error {
		asd, err := spectral.ASD(x, cfg)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		st := spectral.Summary(x)
		fmt.Fprintf(tw, "%s\t%.3g\t%.3g\t%.3g\t%.3g\t%.3g\n", name, st.Mean, st.StdDev, st.RMS, st.Peak, asd.BandMean(lo, hi))
		return nil
	}

	if err := row("background", res.Background); err != nil {
		return err
	}
	if err := row("target", res.Target); err != nil {
		return err
	}
	for _, w := range res.Witnesses {
		if err := row(w.Name, w.Data); err != nil {
			return err
		}
	}

	want, err := floatList(v.Get("lines"))
	if err != nil {
		return fmt.Errorf("lines: %w", err)
	}

	var lines []float64
	for _, f := range want {
		if f > 0 && f < fs/2 {
			lines = append(lines, f)
		}
	}
	if len(lines) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprint(tw, "line")
		for _, f := range lines {
			fmt.Fprintf(tw, "\t%g Hz", f)
		}
		fmt.Fprintln(tw)

		for _, ch := range []struct {
			name string
			x    []float64
		}{{"background", res.Background}, {"target", res.Target}} {
			amps, err := spectral.ToneAmplitudes(ch.x, lines, fs)
			if err != nil {
				return err
			}
			fmt.Fprint(tw, ch.name)
			for _, a := range amps {
				fmt.Fprintf(tw, "\t%.3g", a)
			}
			fmt.Fprintln(tw)
		}
	}

	if len(res.Witnesses) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintf(tw, "witness\trole\tresidual/target[%g-%g Hz]\n", lo, hi)

		sub := spectral.DefaultSubtractConfig(fs)
		sub.Config = cfg

		target, err := spectral.ASD(res.Target, cfg)
		if err != nil {
			return err
		}
		ref := target.BandMean(lo, hi)

		for _, w := range res.Witnesses {
			s, err := spectral.Subtract(res.Target, w.Data, sub)
			if err != nil {
				return fmt.Errorf("%s: %w", w.Name, err)
			}
			resid, err := spectral.ASD(s.Residual, cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(tw, "%s\t%s\t%.3f\n", w.Name, w.Role, resid.BandMean(lo, hi)/ref)
		}
	}

	return tw.Flush()
}

// floatList reads a list of numbers bound through viper: the flag default
// renders as "[60.000000,120.000000]", the environment gives "60,120" and a
// config file gives a YAML sequence.
func floatList(raw any) ([]float64, error) {
	var items []any
	switch x := raw.(type) {
	case nil:
		return nil, nil
	case []float64:
		return x, nil
	case []any:
		items = x
	case string:
		for _, f := range strings.Split(strings.Trim(strings.TrimSpace(x), "[]"), ",") {
			if f = strings.TrimSpace(f); f != "" {
				items = append(items, f)
			}
		}
	default:
		items = []any{x}
	}

	out := make([]float64, 0, len(items))
	for _, it := range items {
		f, err := cast.ToFloat64E(it)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}
