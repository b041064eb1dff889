package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	json "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-mockdata/internal/logging"
	"github.com/cwbudde/algo-mockdata/mock"
)

// splitKeywords cuts args at the first -k/--keywords. Everything after it
// belongs to the model and is not parsed by the command line.
func splitKeywords(args []string) (cli, keywords []string) {
	for i, a := range args {
		if a == "-k" || a == "--keywords" {
			return args[:i], append([]string{}, args[i+1:]...)
		}
	}
	return args, nil
}

// newRootCmd builds the command tree. keywords are the tokens split off
// by splitKeywords.
func newRootCmd(keywords []string) *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:   "mockdata [model] [flags] [-k keyword ...]",
		Short: "Generate mock interferometer data with coupled witness noise",
		Long: fmt.Sprintf(`Generate a colored detector background, witness channels and a target
in which the witnesses couple through a noise model.

Models: %s. Everything after -k is passed to the model; use
"mockdata <model> -k -h" for the model keywords.`, strings.Join(modelNames(), ", ")),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(v, cfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := v.GetString("model")
			if len(args) == 1 {
				name = args[0]
			}
			return runGenerate(cmd, v, name, keywords)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (default ./mockdata.yaml if present)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "console", "log format (console or json)")

	f := root.Flags()
	f.String("model", string(mock.Scatter), "noise model when no positional model is given")
	f.IntP("sec", "t", 16, "integer number of seconds to generate")
	f.IntP("fs", "f", 1024, "sample rate in Hz")
	f.Int64P("seed", "s", 0, "random seed (default: time based)")
	f.StringP("output", "o", "", "output JSON file (default DARM_with_<model>.json)")
	f.BoolP("doshift", "d", false, "circularly shift the target in time")
	f.Float64("shift", 0.5, "target shift in seconds, used with --doshift")

	_ = v.BindPFlags(pf)
	_ = v.BindPFlags(f)

	root.AddCommand(newASDCmd(v))

	return root
}

func initConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("mockdata")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("MOCKDATA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config file: %w", err)
		}
	}
	return nil
}

func newLogger(cmd *cobra.Command, v *viper.Viper) *zap.Logger {
	return logging.NewWithWriter(logging.Config{
		Level:  v.GetString("log-level"),
		Format: v.GetString("log-format"),
	}, cmd.ErrOrStderr())
}

func runGenerate(cmd *cobra.Command, v *viper.Viper, name string, keywords []string) error {
	model, err := mock.ParseModel(name)
	if err != nil {
		return err
	}

	cfg, err := mock.ParseKeywords(model, keywords)
	if errors.Is(err, mock.ErrHelp) {
		usage, uerr := mock.KeywordUsage(model)
		if uerr != nil {
			return uerr
		}
		_, err = io.WriteString(cmd.OutOrStdout(), usage)
		return err
	}
	if err != nil {
		return err
	}

	logger := newLogger(cmd, v)
	defer func() { _ = logger.Sync() }()

	seed := time.Now().UnixNano()
	if v.IsSet("seed") {
		seed = v.GetInt64("seed")
	}

	sec, fs := v.GetInt("sec"), v.GetInt("fs")
	logger.Info("generating", zap.Stringer("model", model), zap.Int("sec", sec), zap.Int("fs", fs), zap.Int64("seed", seed))

	res, err := mock.Generate(cfg, sec, fs, mock.WithSeed(seed), mock.WithLogger(logger))
	if err != nil {
		return err
	}

	doShift := v.GetBool("doshift")
	if doShift {
		res.ShiftTarget(v.GetFloat64("shift"))
	}

	out := v.GetString("output")
	if out == "" {
		out = defaultOutput(model, doShift)
	}

	if err := writeResult(out, res); err != nil {
		return err
	}

	logger.Info("wrote result", zap.String("path", out), zap.Int("witnesses", len(res.Witnesses)))
	return nil
}

func defaultOutput(m mock.Model, shifted bool) string {
	if shifted {
		return fmt.Sprintf("DARM_shift_with_%s.json", m)
	}
	return fmt.Sprintf("DARM_with_%s.json", m)
}

func writeResult(path string, res *mock.Result) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := json.NewEncoder(fh).Encode(res); err != nil {
		fh.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	return fh.Close()
}

func readResult(path string) (*mock.Result, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	var res mock.Result
	if err := json.NewDecoder(fh).Decode(&res); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if res.SampleRate <= 0 || len(res.Target) == 0 {
		return nil, fmt.Errorf("%s: not a mockdata result", path)
	}

	return &res, nil
}

func modelNames() []string {
	names := make([]string, 0, 3)
	for _, m := range mock.Models() {
		names = append(names, m.String())
	}
	return names
}
