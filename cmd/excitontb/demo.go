// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/excitontb/builder"
)

func newDemoCmd(a *app) *cobra.Command {
	var (
		flags  interactionFlags
		sample int
		seed   int64
		solve  bool
	)
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run on a built-in reference dataset",
		Long: `Builds one of the reference samples (1: single-atom 3×3 grid,
2: 3×3 supercell at Γ, 3: supercell with a wide gap) and prints the block
shapes of its interaction store. With --solve the absorption spectrum
follows.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := flags.apply(cmd, a.cfg); err != nil {
				return err
			}
			var opts []builder.BuilderOption
			if cmd.Flags().Changed("seed") {
				opts = append(opts, builder.WithSeed(seed))
			}
			ds, err := builder.Sample(sample, opts...)
			if err != nil {
				return err
			}
			e, err := a.engine(ds)
			if err != nil {
				return err
			}
			ic, err := a.cfg.Interaction.Build()
			if err != nil {
				return err
			}
			st, err := e.Store(cmd.Context(), ic)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sample %d: %d keys at cutoff %g eV\n", sample, st.Len(), ic.Cutoff)
			printShapes(cmd.OutOrStdout(), st)
			if !solve {
				return nil
			}

			return a.spectrum(cmd, e, 10)
		},
	}
	flags.bind(cmd)
	cmd.Flags().IntVar(&sample, "sample", 1, "reference sample: 1, 2 or 3")
	cmd.Flags().Int64Var(&seed, "seed", 0, "mix band eigenvectors with this seed")
	cmd.Flags().BoolVar(&solve, "solve", false, "also solve and print the absorption spectrum")

	return cmd
}
