// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/excitontb/source"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE",
		Short: "Describe a tight-binding container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := source.Load(args[0])
			if err != nil {
				return err
			}
			e, err := a.engine(ds)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "alat:        %g\n", e.Alat())
			fmt.Fprintf(w, "a1, a2:      (%g, %g) (%g, %g)\n", e.A1().X, e.A1().Y, e.A2().X, e.A2().Y)
			fmt.Fprintf(w, "atoms:       %d\n", e.NAtoms())
			fmt.Fprintf(w, "orbitals:    %d %v\n", e.NOrbs(), e.OrbPattern())
			fmt.Fprintf(w, "k grid:      %d×%d\n", e.NK(), e.NK())
			fmt.Fprintf(w, "k points:    %d\n", len(e.KGrid()))
			fmt.Fprintf(w, "bands:       %d valence, %d conduction\n", e.NVal(), e.NCon())
			fmt.Fprintf(w, "spins:       %d\n", e.NSpins())
			fmt.Fprintf(w, "convention:  %d\n", e.Convention())
			fmt.Fprintf(w, "complex:     %t\n", e.IsComplex())

			return nil
		},
	}
}
