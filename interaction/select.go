// SPDX-License-Identifier: MIT

package interaction

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/excitontb/crystal"
	"github.com/katalvlaran/excitontb/lattice"
)

// plan is everything a build decides before any lattice sum is evaluated.
type plan struct {
	grid        lattice.Grid
	selections  []Selection
	transitions []Transition
	gap         float64
	keys        []Key
	pairs       [][2]int
}

// holeIndices returns, for every k, the grid index of k − Q or −1 when that
// momentum is not on the grid.
//
// Complexity: O(N²) for N grid points.
func holeIndices(kgrid []r2.Vec, rec *lattice.Lattice, q r2.Vec) []int {
	holes := make([]int, len(kgrid))
	for k, kv := range kgrid {
		holes[k] = -1
		target := r2.Sub(kv, q)
		for m, km := range kgrid {
			if rec.IsLatticeVector(r2.Sub(km, target)) {
				holes[k] = m
				break
			}
		}
	}

	return holes
}

// selectBands applies the energy window at every k.
//
// Implementation:
//   - Stage 1: the smallest transition energy over the grid (the gap).
//   - Stage 2: keep (c, v) when its energy, relative to the reference, is
//     within cutoff; record it as a transition.
//   - Stage 3: C(k) and V(k) are the bands in at least one kept pair.
//
// Complexity: O(N·Nc·Nv).
func selectBands(es *crystal.Eigensystem, spin int, holes []int, cutoff float64, ref Reference) ([]Selection, []Transition, float64) {
	con, val := es.ConductionBands(), es.ValenceBands()

	// Stage 1: gap.
	gap := math.Inf(1)
	for k, h := range holes {
		if h < 0 {
			continue
		}
		for _, c := range con {
			for _, v := range val {
				gap = math.Min(gap, es.Energies[k][spin][c]-es.Energies[h][spin][v])
			}
		}
	}
	threshold := cutoff
	if ref == GapRelative {
		threshold += gap
	}

	// Stage 2: kept pairs.
	sels := make([]Selection, len(holes))
	var trans []Transition
	for k, h := range holes {
		sels[k].Hole = h
		if h < 0 {
			continue
		}
		keepC := make([]bool, len(con))
		keepV := make([]bool, len(val))
		for ci, c := range con {
			for vi, v := range val {
				de := es.Energies[k][spin][c] - es.Energies[h][spin][v]
				if de <= threshold {
					keepC[ci], keepV[vi] = true, true
					trans = append(trans, Transition{K: k, C: c, V: v, Energy: de})
				}
			}
		}

		// Stage 3: retained band lists, ascending.
		for ci, ok := range keepC {
			if ok {
				sels[k].Conduction = append(sels[k].Conduction, con[ci])
			}
		}
		for vi, ok := range keepV {
			if ok {
				sels[k].Valence = append(sels[k].Valence, val[vi])
			}
		}
	}

	return sels, trans, gap
}

// materialize lists the keys to evaluate in lexicographic order: both k and
// k' retain bands and the momentum balance (k − k_h) − (k' − k'_h) folds to a
// reciprocal lattice vector.
//
// Complexity: O(N²).
func materialize(grid lattice.Grid, kgrid []r2.Vec, rec *lattice.Lattice, sels []Selection) ([]Key, [][2]int) {
	var (
		keys  []Key
		pairs [][2]int
	)
	for k := range sels {
		if sels[k].Empty() {
			continue
		}
		transfer := r2.Sub(kgrid[k], kgrid[sels[k].Hole])
		for kp := range sels {
			if sels[kp].Empty() {
				continue
			}
			balance := r2.Sub(transfer, r2.Sub(kgrid[kp], kgrid[sels[kp].Hole]))
			if !rec.IsLatticeVector(balance) {
				continue
			}
			i, j := grid.Coords(k)
			ip, jp := grid.Coords(kp)
			keys = append(keys, Key{I: i, J: j, IP: ip, JP: jp})
			pairs = append(pairs, [2]int{k, kp})
		}
	}

	return keys, pairs
}
