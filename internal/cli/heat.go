package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/exascience/forkjoin/internal/heat"
)

// HeatOptions holds the flags of the heat command.
type HeatOptions struct {
	Size          int
	Epsilon       float64
	Batch         int
	MaxIterations int
}

// NewHeatCommand creates the heat command.
func NewHeatCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HeatOptions{}
	cmd := &cobra.Command{
		Use:   "heat",
		Short: "Run a heat distribution simulation on a square plate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeat(rootOpts, opts, cmd)
		},
	}
	cmd.Flags().IntVarP(&opts.Size, "size", "n", 256, "number of interior cells per side")
	cmd.Flags().Float64Var(&opts.Epsilon, "epsilon", 0.001, "convergence threshold")
	cmd.Flags().IntVar(&opts.Batch, "batch", 1000, "iteration pairs between convergence checks")
	cmd.Flags().IntVar(&opts.MaxIterations, "max-iterations", 0, "stop after this many iterations (0 means no limit)")
	return cmd
}

func runHeat(rootOpts *RootOptions, opts *HeatOptions, cmd *cobra.Command) error {
	if opts.Size < 1 {
		return fmt.Errorf("invalid size: %d", opts.Size)
	}
	if opts.Batch < 1 {
		return fmt.Errorf("invalid batch: %d", opts.Batch)
	}
	cfg, policy, err := rootOpts.setup(cmd)
	if err != nil {
		return err
	}
	defer cfg.Logger().Sync() //nolint:errcheck

	start := time.Now()
	s := heat.New(cfg, policy, opts.Size, opts.Size, 75, heat.Borders{Top: 0, Right: 100, Bottom: 100, Left: 100})
	iterations, delta := s.Run(opts.Epsilon, opts.Batch, opts.MaxIterations)
	cfg.Logger().Info("simulated",
		zap.Int("size", opts.Size),
		zap.Int("iterations", iterations),
		zap.Duration("elapsed", time.Since(start)),
	)
	mid := opts.Size / 2
	fmt.Fprintf(cmd.OutOrStdout(), "iterations: %6d, δ: %08.6f, center: %10.8f\n", iterations, delta, s.At(mid, mid))
	return nil
}
