// Package excitontb computes screened electron-hole interactions and
// exciton absorption spectra for two-dimensional tight-binding crystals.
//
// 🚀 What is excitontb?
//
//	A pure-Go toolkit that takes a crystal (hexagonal lattice, atomic motif,
//	orbitals) plus its band eigensystem on a k grid and produces:
//		• Real-space kernels: Keldysh, Yukawa, bare Coulomb
//		• Lattice-sum Fourier matrices V_ab(q) with convergence reporting
//		• The interaction store W_kk' over an energy window, built in parallel
//		• The Bethe–Salpeter solve: exciton energies and amplitudes
//		• Optical matrix elements, broadening and absorption spectra
//		• A SQLite archive of stores and Prometheus metrics of every build
//
// Under the hood, everything is organized into focused subpackages:
//
//	lattice/       direct & reciprocal lattices, k-grid arithmetic
//	kernel/        interaction kernels, Struve H0 for Keldysh
//	crystal/       the Dataset: crystal + eigensystem, integrity checks
//	source/        YAML/JSON container codec
//	builder/       synthetic datasets and the reference samples
//	fourier/       lattice sums and band-basis projection
//	interaction/   band selection, keys, the parallel store build
//	exciton/       the Engine: cache, BSE solve, absorption
//	conductivity/  matrix elements, polarisations, broadening
//	archive/       SQLite persistence of stores
//	metrics/       Prometheus collectors
//	config/        YAML + EXTB_* configuration
//	cmd/excitontb  the command-line tool
//
// Quick ASCII example (one transition pair, k ≠ k'):
//
//	   c(k) ─────────── c(k')
//	     │   W_kk'(q)     │
//	   v(k) ─────────── v(k')     q = k − k'
//
// Dive into examples/ for runnable scenarios and cmd/excitontb for the CLI.
//
//	go install github.com/katalvlaran/excitontb/cmd/excitontb@latest
package excitontb
