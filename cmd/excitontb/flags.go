// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/excitontb/config"
)

// interactionFlags are the per-command overrides of the interaction section.
type interactionFlags struct {
	cutoff     float64
	kernel     string
	screening  float64
	dielectric float64
	reference  string
	spin       int
	momentum   []int
}

func (f *interactionFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64Var(&f.cutoff, "cutoff", 0, "energy window in eV")
	fs.StringVar(&f.kernel, "kernel", "", "interaction kernel: keldysh, yukawa or coulomb")
	fs.Float64Var(&f.screening, "screening-length", 0, "r0 (keldysh) or λ (yukawa) in Å")
	fs.Float64Var(&f.dielectric, "dielectric", 0, "dielectric constant ε")
	fs.StringVar(&f.reference, "reference", "", "cutoff reference: absolute or gap")
	fs.IntVar(&f.spin, "spin", 0, "spin channel")
	fs.IntSliceVar(&f.momentum, "momentum", nil, "exciton momentum Q as grid steps i,j")
}

// apply copies every flag the user set into cfg and revalidates it.
func (f *interactionFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	fs := cmd.Flags()
	ic := &cfg.Interaction
	if fs.Changed("cutoff") {
		ic.Cutoff = f.cutoff
	}
	if fs.Changed("kernel") {
		ic.Kernel = f.kernel
	}
	if fs.Changed("screening-length") {
		ic.ScreeningLength = f.screening
	}
	if fs.Changed("dielectric") {
		ic.Dielectric = f.dielectric
	}
	if fs.Changed("reference") {
		ic.Reference = f.reference
	}
	if fs.Changed("spin") {
		ic.Spin = f.spin
	}
	if fs.Changed("momentum") {
		if len(f.momentum) != 2 {
			return fmt.Errorf("--momentum %v: want two integers: %w", f.momentum, config.ErrInvalid)
		}
		ic.Momentum = [2]int{f.momentum[0], f.momentum[1]}
	}

	return cfg.Validate()
}
