package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-conv/dsp/conv"
)

type demoOpts struct {
	methodFlags

	signal []float64
	kernel []float64
	mode   string
}

func newDemoCommand() *cobra.Command {
	opts := demoOpts{}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Convolve a small signal with every method and print the results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd, opts)
		},
	}

	cmd.Flags().Float64SliceVar(&opts.signal, "signal", []float64{0.1, -3.2, 1.5, 7.0, 5.7},
		"Comma separated signal samples")
	cmd.Flags().Float64SliceVar(&opts.kernel, "kernel", []float64{0.7, -3.4, 1.0},
		"Comma separated kernel taps")
	cmd.Flags().StringVar(&opts.mode, "mode", "full", "Output mode (full, same, valid)")
	opts.register(cmd.Flags(), 2)
	return cmd
}

func runDemo(cmd *cobra.Command, opts demoOpts) error {
	methods, err := opts.methods()
	if err != nil {
		return err
	}
	mode, err := parseMode(opts.mode)
	if err != nil {
		return err
	}

	e, err := conv.NewEngine(opts.signal, opts.kernel)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"signal": e.SignalLen(),
		"kernel": e.KernelLen(),
		"mode":   mode,
	}).Debug("running demo")

	out := cmd.OutOrStdout()
	width := lo.Max(lo.Map(methods, func(m conv.Method, _ int) int { return len(m.String()) }))

	for _, m := range methods {
		y, err := e.ConvolveMode(m, mode)
		if err != nil {
			return fmt.Errorf("%v: %w", m, err)
		}
		fmt.Fprintf(out, "%-*s  [%s]\n", width, m, formatSamples(y))
	}
	return nil
}

func formatSamples(y []float64) string {
	return strings.Join(lo.Map(y, func(v float64, _ int) string {
		// Round away transform noise so all methods print alike.
		r := math.Round(v*1e6) / 1e6
		if r == 0 {
			r = 0 // drop the sign of -0
		}
		return strconv.FormatFloat(r, 'g', -1, 64)
	}), " ")
}
