// SPDX-License-Identifier: MIT

// Package crystal holds the read-only data model of a tight-binding
// calculation: the Crystal (lattice vectors, motif, orbital layout) and the
// Eigensystem (k grid, band energies and orbital eigenvectors), bundled into a
// Dataset.
//
// Layout conventions:
//
//   - KGrid has NK*NK points; flat index idx = i*NK + j addresses grid
//     coordinate (i, j), i along b1 and j along b2.
//   - Bands 0..NVal-1 are valence, NVal..NVal+NCon-1 are conduction.
//   - Energies[k][spin][band] and Vectors[k][spin][band][orbital].
//   - OrbPattern repeats cyclically over the atoms, so [6] on 9 atoms means
//     six orbitals on every atom.
//
// Validate enforces these shapes once; downstream packages index without
// re-checking. Every violation wraps ErrIntegrity.
package crystal
