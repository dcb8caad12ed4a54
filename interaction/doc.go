// SPDX-License-Identifier: MIT

// Package interaction builds the cutoff-truncated electron–hole interaction
// store of an exciton calculation.
//
// What & Why:
//
//	The direct electron–hole interaction couples transitions (k, c, v) and
//	(k', c', v'). Storing it densely costs (N_k·N_c·N_v)² complex numbers, so
//	the store keeps only k pairs whose band pairs lie inside an energy
//	window, and for each such pair a dense block over the retained bands:
//
//	  W_kk'[(c,c'),(v,v')] = (1/N_k) Σ_ij conj(C_ci(k)) C_c'i(k')
//	                         · V_ij(k − k') · C_vj(k−Q) conj(C_v'j(k'−Q))
//
// Selection:
//
//	A pair (c, v) at k is kept when E_c(k) − E_v(k−Q) ≤ cutoff (Absolute
//	reference) or when that energy minus the smallest transition energy on
//	the grid is ≤ cutoff (GapRelative). C(k) and V(k) are the conduction and
//	valence bands taking part in at least one kept pair. Raising the cutoff
//	only ever grows C(k) and V(k), so keys and block shapes are monotone.
//
// Keys:
//
//	A Key holds the grid coordinates (i, j, i', j') of k and k' and renders
//	as "k(i,j,i',j')". A key is materialized only if both hole momenta fold
//	onto grid points, the momentum balance folds to a reciprocal lattice
//	vector, and both k and k' retain at least one band pair.
//
// Concurrency:
//
//	Blocks are evaluated on an errgroup worker pool and written into
//	pre-assigned slots; key order is fixed before evaluation starts. A build
//	is all-or-nothing: any error or cancellation returns no store.
package interaction
