// SPDX-License-Identifier: MIT

// Package kernel defines the real-space electron–hole interaction kernels
// V(r) used in the lattice sums of the exciton engine.
//
// Kernels are data, not closures: a Config carries the Kind tag together with
// its parameters, and Config.Eval dispatches on the tag. Supported kinds:
//
//	Coulomb  V(r) = 1 / (4π ε r)
//	Yukawa   V(r) = exp(−r/λ) / (4π ε r)
//	Keldysh  V(r) = (π / (2 r0)) [H0(r/r0) − Y0(r/r0)] / ε
//
// H0 is the zeroth-order Struve function and Y0 the Bessel function of the
// second kind. All three kernels diverge at r = 0; Eval returns Config.OnSite
// there (0 unless regularized).
//
// Selection by name (ParseKind / Parse) is case-insensitive and fails with
// ErrUnknownKernel for names outside the fixed set. "keldysn" is accepted as
// a legacy spelling of "keldysh".
package kernel
