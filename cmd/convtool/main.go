// Command convtool runs and compares the linear convolution methods.
//
// Usage:
//
//	convtool methods
//	convtool demo [--signal 0.1,-3.2,1.5 --kernel 0.7,-3.4,1] [--mode same]
//	convtool bench [--signal-len 44100 --kernel-len 3000] [--precision 32] [--backend gonum]
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootOpts struct {
	logLevel  string
	logFormat string
}

func newRootCommand() *cobra.Command {
	opts := rootOpts{}

	cmd := &cobra.Command{
		Use:           "convtool",
		Short:         "Run and compare linear convolution methods",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return configureLogging(cmd.ErrOrStderr(), opts.logLevel, opts.logFormat)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info",
		"Log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text",
		"Log format (text, json)")

	cmd.AddCommand(
		newMethodsCommand(),
		newDemoCommand(),
		newBenchCommand(),
	)
	return cmd
}

func configureLogging(w io.Writer, level, format string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}

	switch format {
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("--log-format: unknown format %q", format)
	}

	logrus.SetOutput(w)
	logrus.SetLevel(lvl)
	return nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logrus.WithError(err).Error("convtool failed")
		os.Exit(1)
	}
}
