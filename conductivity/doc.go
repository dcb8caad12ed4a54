// SPDX-License-Identifier: MIT

// Package conductivity turns exciton states into optical response.
//
// It provides the line-shape functions used to broaden discrete excitations,
// the band-basis matrix elements of the velocity and position operators, the
// light polarisation vectors, and the assembly of an absorption spectrum
//
//	σ(ω) = Σ_n |Σ_t conj(A_tn) m_t|² · B(ω, E_n)
//
// from exciton amplitudes A, per-transition matrix elements m and a
// broadening B.
//
// Matrix-element conventions:
//
//	velocity  = conj(c)·(V v)
//	residual  = (E_v − E_c) · conj(c)·(p ∘ v)       p_o = pol · t_atom(o)
//	dipole    = i (E_v − E_c) · conj(c)·(D v)
//
// All three are linear in the operator and in the valence vector and
// conjugate-linear in the conduction vector.
package conductivity
