package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/exascience/forkjoin/parallel"
)

// ReduceOptions holds the flags of the reduce command.
type ReduceOptions struct {
	Size int64
}

// NewReduceCommand creates the reduce command.
func NewReduceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReduceOptions{}
	cmd := &cobra.Command{
		Use:   "reduce",
		Short: "Sum the integers in [0, n) with the parallel reduce",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReduce(rootOpts, opts, cmd)
		},
	}
	cmd.Flags().Int64VarP(&opts.Size, "size", "n", 100, "upper bound of the summed range")
	return cmd
}

func runReduce(rootOpts *RootOptions, opts *ReduceOptions, cmd *cobra.Command) error {
	cfg, policy, err := rootOpts.setup(cmd)
	if err != nil {
		return err
	}
	defer cfg.Logger().Sync() //nolint:errcheck

	start := time.Now()
	sum := parallel.ReduceSum(cfg, policy, 0, opts.Size, func(low, high int64) int64 {
		var sum int64
		for i := low; i < high; i++ {
			sum += i
		}
		return sum
	})
	cfg.Logger().Info("reduced", zap.Int64("size", opts.Size), zap.Duration("elapsed", time.Since(start)))
	fmt.Fprintln(cmd.OutOrStdout(), sum)
	return nil
}
