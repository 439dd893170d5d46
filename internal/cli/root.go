// Package cli implements the forkjoin command line tool, which drives the
// parallel primitives on synthetic workloads.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/exascience/forkjoin"
	"github.com/exascience/forkjoin/task"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Workers  int
	Policy   string
	Executor string
	Verbose  bool
}

// ValidExecutors defines the allowed executor names.
var ValidExecutors = []string{"goroutines", "inline", "bounded"}

// NewRootCommand creates the root command of the forkjoin CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "forkjoin",
		Short: "Run fork-join parallel primitives on synthetic workloads",
		Long: `Run the parallel sort, reduce and for primitives on generated data
and report results and timings. Useful to compare execution policies,
worker counts and executors on a given machine.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := forkjoin.ParsePolicy(opts.Policy); err != nil {
				return err
			}
			if !isValidExecutor(opts.Executor) {
				return fmt.Errorf("invalid executor %q: must be one of %v", opts.Executor, ValidExecutors)
			}
			return nil
		},
	}

	cmd.PersistentFlags().IntVarP(&opts.Workers, "workers", "w", 0, "number of workers (0 uses the worker hint)")
	cmd.PersistentFlags().StringVarP(&opts.Policy, "policy", "p", "parallel", "execution policy (serial|parallel)")
	cmd.PersistentFlags().StringVar(&opts.Executor, "executor", "goroutines", "task executor (goroutines|inline|bounded)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewSortCommand(opts))
	cmd.AddCommand(NewReduceCommand(opts))
	cmd.AddCommand(NewHeatCommand(opts))

	return cmd
}

func isValidExecutor(name string) bool {
	for _, e := range ValidExecutors {
		if e == name {
			return true
		}
	}
	return false
}

// NewLogger returns a console logger writing to w, at debug level if
// verbose is set and at info level otherwise.
func NewLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(zapcore.AddSync(w)),
		level,
	)
	return zap.New(core)
}

// setup builds the configuration and policy for a command from the global
// flags. Logs go to the command's error stream so they never mix with
// results.
func (opts *RootOptions) setup(cmd *cobra.Command) (forkjoin.Config, forkjoin.ExecutionPolicy, error) {
	policy, err := forkjoin.ParsePolicy(opts.Policy)
	if err != nil {
		return forkjoin.Config{}, 0, err
	}
	cfg := forkjoin.Config{}.
		WithWorkers(opts.Workers).
		WithLogger(NewLogger(cmd.ErrOrStderr(), opts.Verbose))

	switch strings.ToLower(opts.Executor) {
	case "inline":
		cfg = cfg.WithExecutor(task.Inline)
	case "bounded":
		cfg = cfg.WithExecutor(task.NewBounded(cfg.Workers(forkjoin.Parallel)))
	default:
		cfg = cfg.WithExecutor(task.Goroutines)
	}

	cfg.Logger().Debug("configured",
		zap.Stringer("policy", policy),
		zap.Int("workers", cfg.Workers(policy)),
		zap.String("executor", opts.Executor),
	)
	return cfg, policy, nil
}
