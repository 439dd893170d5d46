package cli

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/exascience/forkjoin/sort"
)

// SortOptions holds the flags of the sort command.
type SortOptions struct {
	Size int
	Seed int64
}

// NewSortCommand creates the sort command.
func NewSortCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SortOptions{}
	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Sort random integers with the parallel merge sort",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(rootOpts, opts, cmd)
		},
	}
	cmd.Flags().IntVarP(&opts.Size, "size", "n", 1<<20, "number of elements")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 1, "random seed")
	return cmd
}

func runSort(rootOpts *RootOptions, opts *SortOptions, cmd *cobra.Command) error {
	if opts.Size < 0 {
		return fmt.Errorf("invalid size: %d", opts.Size)
	}
	cfg, policy, err := rootOpts.setup(cmd)
	if err != nil {
		return err
	}
	defer cfg.Logger().Sync() //nolint:errcheck

	r := rand.New(rand.NewSource(opts.Seed))
	data := make([]int, opts.Size)
	for i := range data {
		data[i] = r.Int()
	}

	start := time.Now()
	sort.SortOrdered(cfg, policy, data)
	elapsed := time.Since(start)

	if !sort.IsSortedOrdered(cfg, policy, data) {
		return errors.New("sort produced unsorted output")
	}
	cfg.Logger().Info("sorted", zap.Int("size", opts.Size), zap.Duration("elapsed", elapsed))
	fmt.Fprintf(cmd.OutOrStdout(), "sorted %d elements\n", opts.Size)
	return nil
}
