// SPDX-License-Identifier: MIT

// Package fourier turns a real-space interaction kernel into the
// momentum-space matrices used by the electron–hole interaction.
//
// What & Why:
//
//	For a motif of atoms t_a on a lattice, the Fourier-transformed
//	interaction between atoms a and b at momentum transfer q is the
//	truncated lattice sum
//
//	  V_ab(q) = Σ_R V(|R + t_a − t_b|) · exp(i q·ρ),   |R + t_a − t_b| ≤ radius
//
//	with ρ = R + t_a − t_b when eigenvector phases include atomic positions
//	(convention 1) and ρ = R otherwise (convention 2). Orbitals inherit the
//	entries of their atoms, and band-pair densities project the orbital
//	matrix into the band basis: W = E · V_orb(q) · Hᵀ.
//
// Truncation:
//
//	The real-space radius is a knob independent of any energy cutoff.
//	Convergence measures the weight of the outermost shell of the sum
//	relative to the whole; a ratio above the tolerance is reported, never
//	hidden. Bare Coulomb (and the 1/r tail of Keldysh) converges only
//	conditionally, so it is expected to exceed the default tolerance.
//
// Complexity:
//
//	New:           O(T·A²) with T translations and A atoms.
//	AtomMatrix:    O(T·A²) phase evaluations.
//	Project:       two complex GEMMs, O(P_e·O² + P_e·O·P_h) for O orbitals.
package fourier
