package main

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"text/tabwriter"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-conv/dsp/conv"
	"github.com/cwbudde/algo-conv/dsp/transform"
	"github.com/cwbudde/algo-conv/internal/cpu"
)

var errUnsupportedBackend = errors.New("unsupported transform backend")

type benchOpts struct {
	methodFlags

	signalLen int
	kernelLen int
	seed      uint64
	repeat    int
	precision int
	backend   string
}

// benchResult is one row of the bench table.
type benchResult struct {
	method  conv.Method
	best    time.Duration
	maxDiff float64
}

func newBenchCommand() *cobra.Command {
	opts := benchOpts{}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time every method on random operands and compare against output-side",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.signalLen, "signal-len", 44100, "Signal length N")
	cmd.Flags().IntVar(&opts.kernelLen, "kernel-len", 3000, "Kernel length M")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 1, "Random seed for the operands")
	cmd.Flags().IntVar(&opts.repeat, "repeat", 3, "Runs per method; the fastest is reported")
	opts.register(cmd.Flags(), 4096)
	cmd.Flags().IntVar(&opts.precision, "precision", 64, "Sample precision in bits (32, 64)")
	cmd.Flags().StringVar(&opts.backend, "backend", "algofft", "FFT backend (algofft, gonum)")
	return cmd
}

func runBench(cmd *cobra.Command, opts benchOpts) error {
	if opts.repeat < 1 {
		return fmt.Errorf("--repeat must be positive, got %d", opts.repeat)
	}

	methods, err := opts.methods()
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewPCG(opts.seed, opts.seed^0x9e3779b97f4a7c15))
	signal := randomSamples(rng, opts.signalLen)
	kernel := randomSamples(rng, opts.kernelLen)

	log := logrus.WithFields(logrus.Fields{
		"signal":    opts.signalLen,
		"kernel":    opts.kernelLen,
		"precision": opts.precision,
		"backend":   opts.backend,
	})
	log.WithField("host", cpu.Detect()).Info("starting benchmark")

	var results []benchResult
	switch opts.precision {
	case 64:
		e, err := conv.NewEngine(signal, kernel)
		if err != nil {
			return err
		}
		switch opts.backend {
		case "algofft":
		case "gonum":
			e = e.WithTransform(transform.NewGonum)
		default:
			return fmt.Errorf("%w: %q", errUnsupportedBackend, opts.backend)
		}
		results, err = benchEngine(log, e, methods, opts.repeat)
		if err != nil {
			return err
		}
	case 32:
		if opts.backend != "algofft" {
			return fmt.Errorf("%w: %q at 32-bit precision", errUnsupportedBackend, opts.backend)
		}
		e, err := conv.NewEngine32(toFloat32(signal), toFloat32(kernel))
		if err != nil {
			return err
		}
		results, err = benchEngine(log, e, methods, opts.repeat)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("--precision must be 32 or 64, got %d", opts.precision)
	}

	return printBench(cmd, results)
}

// benchEngine runs each method repeat times and measures its deviation from
// the output-side result.
func benchEngine[F transform.Float, C transform.Complex](
	log *logrus.Entry, e *conv.EngineT[F, C], methods []conv.Method, repeat int,
) ([]benchResult, error) {
	reference, err := e.Convolve(conv.MethodOutputSide)
	if err != nil {
		return nil, err
	}

	results := make([]benchResult, 0, len(methods))
	for _, m := range methods {
		r := benchResult{method: m, best: time.Duration(math.MaxInt64)}

		for range repeat {
			start := time.Now()
			y, err := e.Convolve(m)
			elapsed := time.Since(start)
			if err != nil {
				return nil, fmt.Errorf("%v: %w", m, err)
			}

			r.best = min(r.best, elapsed)
			r.maxDiff = max(r.maxDiff, maxAbsDiff(y, reference))
		}

		log.WithFields(logrus.Fields{
			"method":  m.String(),
			"best":    r.best,
			"maxDiff": r.maxDiff,
		}).Debug("method done")
		results = append(results, r)
	}
	return results, nil
}

func printBench(cmd *cobra.Command, results []benchResult) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "METHOD\tTIME\tMAX DEVIATION")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%v\t%.3g\n", r.method, r.best.Round(time.Microsecond), r.maxDiff)
	}
	return tw.Flush()
}

func randomSamples(rng *rand.Rand, n int) []float64 {
	return lo.Times(n, func(int) float64 { return 2*rng.Float64() - 1 })
}

func toFloat32(x []float64) []float32 {
	return lo.Map(x, func(v float64, _ int) float32 { return float32(v) })
}

func maxAbsDiff[F transform.Float](a, b []F) float64 {
	var d float64
	for i := range min(len(a), len(b)) {
		d = max(d, math.Abs(float64(a[i]-b[i])))
	}
	return d
}
