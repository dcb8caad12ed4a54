// SPDX-License-Identifier: MIT

// Package exciton is the entry point of an exciton calculation.
//
// An Engine owns one validated tight-binding dataset and hands out
// interaction stores built from it. Stores are cached by their full build
// configuration in an LRU (one entry by default, so asking for a new cutoff
// or kernel replaces the previous store) and concurrent requests for the same
// configuration share one build.
//
// Solve assembles the Bethe–Salpeter Hamiltonian
//
//	H[(k,c,v),(k',c',v')] = (E_c(k) − E_v(k−Q))·δ − W_kk'[(c,c'),(v,v')]
//
// over the transitions retained by a store and diagonalizes it. H is
// Hermitian; it is solved through the real symmetric embedding
//
//	[ Re H  −Im H ]
//	[ Im H   Re H ]
//
// whose spectrum is that of H with every level doubled. Each doubled level
// is collapsed back to complex eigenvectors by pivoted Gram–Schmidt.
//
// Example:
//
//	eng, err := exciton.Open("hBN.yaml")
//	kern, _ := kernel.New(kernel.Keldysh)
//	st, err := eng.Interaction(ctx, 2.5, kern)
//	exc, err := eng.Solve(ctx, st)
package exciton
