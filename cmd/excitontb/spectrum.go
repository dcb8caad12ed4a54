// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/excitontb/exciton"
	"github.com/katalvlaran/excitontb/source"
)

func newSpectrumCmd(a *app) *cobra.Command {
	var (
		flags  interactionFlags
		pol    string
		broad  string
		sigma  float64
		levels int
	)
	cmd := &cobra.Command{
		Use:   "spectrum FILE",
		Short: "Solve the exciton problem and print the absorption spectrum",
		Long: `Builds the interaction store of FILE, solves the Bethe-Salpeter
Hamiltonian and prints the lowest exciton levels followed by the broadened
absorption spectrum as "frequency value" pairs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			if fs.Changed("polarisation") {
				a.cfg.Spectrum.Polarisation = pol
			}
			if fs.Changed("broadening") {
				a.cfg.Spectrum.Broadening = broad
			}
			if fs.Changed("sigma") {
				a.cfg.Spectrum.Sigma = sigma
			}
			if err := flags.apply(cmd, a.cfg); err != nil {
				return err
			}
			ds, err := source.Load(args[0])
			if err != nil {
				return err
			}
			e, err := a.engine(ds)
			if err != nil {
				return err
			}

			return a.spectrum(cmd, e, levels)
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringVar(&pol, "polarisation", "", "light polarisation: x, y, lh or rh")
	cmd.Flags().StringVar(&broad, "broadening", "", "line shape: lorentz or gauss")
	cmd.Flags().Float64Var(&sigma, "sigma", 0, "line width in eV")
	cmd.Flags().IntVar(&levels, "levels", 10, "number of exciton levels to list")

	return cmd
}

func (a *app) spectrum(cmd *cobra.Command, e *exciton.Engine, levels int) error {
	ic, err := a.cfg.Interaction.Build()
	if err != nil {
		return err
	}
	b, err := a.cfg.Spectrum.Broadener()
	if err != nil {
		return err
	}
	st, err := e.Store(cmd.Context(), ic)
	if err != nil {
		return err
	}
	sp, err := e.Absorption(cmd.Context(), st, a.cfg.Spectrum.PolarisationVector(), b, a.cfg.Spectrum.Frequencies())
	if err != nil {
		return err
	}
	printSpectrum(cmd.OutOrStdout(), sp, levels)

	return nil
}

func printSpectrum(w io.Writer, sp *exciton.Spectrum, levels int) {
	fmt.Fprintf(w, "# %d excitons\n", sp.Excitons.Len())
	for n := 0; n < sp.Excitons.Len() && n < levels; n++ {
		fmt.Fprintf(w, "# E[%d] = %.6f eV, strength %.6e\n", n, sp.Excitons.Energies[n], sp.Weights[n])
	}
	for i, f := range sp.Frequencies {
		fmt.Fprintf(w, "%.6f %.6e\n", f, sp.Values[i])
	}
}
