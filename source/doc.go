// SPDX-License-Identifier: MIT

// Package source reads and writes the persisted tight-binding container.
//
// The container is a hierarchical YAML or JSON document with two groups:
//
//	crystal:
//	  alat, avecs_a1, avecs_a2, motif, n_atoms, n_orbs, orb_pattern
//	eigensystem:
//	  convention, is_complex, k_grid, n_con, n_val, n_k, n_spins,
//	  eigenvalues, eigenvectors
//
// Vectors are [x, y] pairs, complex numbers are [re, im] pairs (a bare number
// is read as a real value), eigenvalues are indexed [k][spin][band] and
// eigenvectors [k][spin][band][orbital]. A single [x, y] motif is accepted for
// one-atom crystals. JSON input is parsed by the YAML decoder, which accepts
// it as a subset.
//
// Decode reports every absent field as ErrMissingField naming the field path,
// and leaves consistency checks to crystal.Dataset.Validate.
package source
