// SPDX-License-Identifier: MIT

package interaction

import (
	"iter"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// Store is an immutable set of interaction blocks keyed by k pair.
// All accessors are safe for concurrent use; returned slices and matrices
// are copies.
type Store struct {
	cfg         Config
	nk          int
	keys        []Key
	index       map[Key]int
	entries     []*mat.CDense
	selections  []Selection
	transitions []Transition
	warnings    []Warning
	gap         float64
}

// Config returns the configuration the store was built with.
func (s *Store) Config() Config { return s.cfg }

// NK returns the grid divisions of the dataset.
func (s *Store) NK() int { return s.nk }

// Len returns the number of materialized keys. A nil store has none.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}

	return len(s.keys)
}

// Keys returns the keys in lexicographic (i, j, i', j') order.
func (s *Store) Keys() []Key { return slices.Clone(s.keys) }

// Has reports whether key is materialized.
func (s *Store) Has(key Key) bool {
	_, ok := s.index[key]

	return ok
}

// Get returns a copy of the block for key.
// Rows enumerate (c, c') in C(k)×C(k'), columns (v, v') in V(k)×V(k'),
// both first-index-major.
func (s *Store) Get(key Key) (*mat.CDense, bool) {
	i, ok := s.index[key]
	if !ok {
		return nil, false
	}
	r, c := s.entries[i].Dims()
	out := mat.NewCDense(r, c, nil)
	out.Copy(s.entries[i])

	return out, true
}

// At returns one element of the block for key without copying it.
func (s *Store) At(key Key, row, col int) (complex128, bool) {
	i, ok := s.index[key]
	if !ok {
		return 0, false
	}

	return s.entries[i].At(row, col), true
}

// Shape returns the block dimensions for key, or (0, 0) if absent.
func (s *Store) Shape(key Key) (rows, cols int) {
	i, ok := s.index[key]
	if !ok {
		return 0, 0
	}

	return s.entries[i].Dims()
}

// Shapes maps every key's string form to its block dimensions.
func (s *Store) Shapes() map[string][2]int {
	out := make(map[string][2]int, len(s.keys))
	for i, k := range s.keys {
		r, c := s.entries[i].Dims()
		out[k.String()] = [2]int{r, c}
	}

	return out
}

// All iterates keys in order with read-only views of their blocks.
// Callers must not modify the yielded matrices.
func (s *Store) All() iter.Seq2[Key, mat.CMatrix] {
	return func(yield func(Key, mat.CMatrix) bool) {
		for i, k := range s.keys {
			if !yield(k, s.entries[i]) {
				return
			}
		}
	}
}

// Selection returns the retained bands at flat grid index k.
func (s *Store) Selection(k int) Selection {
	sel := s.selections[k]

	return Selection{
		Conduction: slices.Clone(sel.Conduction),
		Valence:    slices.Clone(sel.Valence),
		Hole:       sel.Hole,
	}
}

// Transitions lists the retained (k, c, v) pairs ordered by k, then c, then v.
func (s *Store) Transitions() []Transition { return slices.Clone(s.transitions) }

// Gap returns the smallest transition energy on the grid, +Inf if no hole
// momentum was found.
func (s *Store) Gap() float64 { return s.gap }

// Warnings lists convergence warnings raised while building.
func (s *Store) Warnings() []Warning { return slices.Clone(s.warnings) }
