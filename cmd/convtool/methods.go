package main

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-conv/dsp/conv"
)

var methodDescriptions = map[string]string{
	"input-side":               "direct, y[k+i] += h[k]*x[i] with the kernel index outer",
	"output-side":              "direct, one dot product per output sample",
	"fast-multiply":            "Karatsuba polynomial multiplication (alias: karatsuba)",
	"spectral":                 "one zero-padded FFT pair (alias: fft)",
	"framed-spectral":          "overlap-add over frames of --frame samples (aliases: ola, overlap-add)",
	"parallel-framed-spectral": "overlap-add with frames spread over --workers goroutines",
}

func newMethodsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List the available convolution methods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := conv.MethodNames()
			width := lo.Max(lo.Map(names, func(n string, _ int) int { return len(n) }))

			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%-*s  %s\n", width, name, methodDescriptions[name])
			}
			return nil
		},
	}
}

// methodFlags selects the methods a command runs.
type methodFlags struct {
	names     []string
	frameSize int
	workers   int
}

func (f *methodFlags) register(fs *pflag.FlagSet, defaultFrame int) {
	fs.StringSliceVar(&f.names, "method", nil, "Methods to run (default all, see 'convtool methods')")
	fs.IntVar(&f.frameSize, "frame", defaultFrame, "Frame size of the framed methods")
	fs.IntVar(&f.workers, "workers", 0, "Workers of the parallel framed method (0 = GOMAXPROCS)")
}

// methods resolves the selected names; an empty list selects every method.
func (f methodFlags) methods() ([]conv.Method, error) {
	names := f.names
	if len(names) == 0 {
		names = conv.MethodNames()
	}

	methods := make([]conv.Method, 0, len(names))
	for _, name := range lo.Uniq(lo.Map(names, func(n string, _ int) string {
		return strings.ToLower(strings.TrimSpace(n))
	})) {
		m, err := conv.ParseMethod(name, f.frameSize, f.workers)
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	return methods, nil
}

func parseMode(name string) (conv.Mode, error) {
	for _, m := range []conv.Mode{conv.ModeFull, conv.ModeSame, conv.ModeValid} {
		if m.String() == strings.ToLower(name) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", conv.ErrInvalidMode, name)
}
