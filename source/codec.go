// SPDX-License-Identifier: MIT

package source

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/excitontb/crystal"
)

// Load reads the container at path. The format is chosen by extension.
// The returned dataset is not validated.
func Load(path string) (*crystal.Dataset, error) {
	if _, err := FormatFromPath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	ds, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return ds, nil
}

// Read decodes a container from r.
func Read(r io.Reader) (*crystal.Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}

	return Decode(data)
}

// Decode parses YAML or JSON container bytes into a Dataset.
//
// Implementation:
//   - Stage 1: unmarshal into the pointer-field document.
//   - Stage 2: report the first absent field, in container order.
//   - Stage 3: convert pairs into r2.Vec and complex128.
func Decode(data []byte) (*crystal.Dataset, error) {
	// Stage 1: parse.
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrMalformed)
	}

	// Stage 2: presence.
	if err := doc.missing(); err != nil {
		return nil, err
	}

	// Stage 3: conversion.
	c, e := doc.Crystal, doc.Eigensystem
	ds := &crystal.Dataset{
		Crystal: crystal.Crystal{
			Alat:       *c.Alat,
			A1:         c.A1.vec(),
			A2:         c.A2.vec(),
			NAtoms:     *c.NAtoms,
			NOrbs:      *c.NOrbs,
			OrbPattern: append([]int(nil), *c.OrbPattern...),
		},
		Eigensystem: crystal.Eigensystem{
			NK:         *e.NK,
			NCon:       *e.NCon,
			NVal:       *e.NVal,
			NSpins:     *e.NSpins,
			Convention: *e.Convention,
			IsComplex:  *e.IsComplex,
		},
	}
	for _, t := range *c.Motif {
		ds.Crystal.Motif = append(ds.Crystal.Motif, t.vec())
	}
	for _, k := range *e.KGrid {
		ds.Eigensystem.KGrid = append(ds.Eigensystem.KGrid, k.vec())
	}

	es := &ds.Eigensystem
	es.Energies = make([][][]float64, len(*e.Eigenvalues))
	for k, spins := range *e.Eigenvalues {
		es.Energies[k] = make([][]float64, len(spins))
		for s, bands := range spins {
			es.Energies[k][s] = append([]float64(nil), bands...)
		}
	}
	es.Vectors = make([][][][]complex128, len(*e.Eigenvectors))
	for k, spins := range *e.Eigenvectors {
		es.Vectors[k] = make([][][]complex128, len(spins))
		for s, bands := range spins {
			es.Vectors[k][s] = make([][]complex128, len(bands))
			for b, coeffs := range bands {
				vec := make([]complex128, len(coeffs))
				for o, z := range coeffs {
					vec[o] = complex(z[0], z[1])
				}
				es.Vectors[k][s][b] = vec
			}
		}
	}

	return ds, nil
}

// Write stores ds at path in the format implied by the extension.
func Write(path string, ds *crystal.Dataset) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("source: %w", err)
	}
	if err := Encode(out, ds, f); err != nil {
		_ = out.Close()
		return err
	}

	return out.Close()
}

// Encode writes ds to w. Complex values are written as [re, im] pairs.
func Encode(w io.Writer, ds *crystal.Dataset, f Format) error {
	doc := toDocument(ds)
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("format %d: %w", f, ErrUnknownFormat)
	}
}

func toDocument(ds *crystal.Dataset) document {
	c, e := ds.Crystal, ds.Eigensystem
	m := make(motif, len(c.Motif))
	for i, t := range c.Motif {
		m[i] = pair(t)
	}
	kg := make([]vec2, len(e.KGrid))
	for i, k := range e.KGrid {
		kg[i] = pair(k)
	}
	pattern := row[int](append([]int(nil), c.OrbPattern...))

	vals := make([][]row[float64], len(e.Energies))
	for k, spins := range e.Energies {
		vals[k] = make([]row[float64], len(spins))
		for s, bands := range spins {
			vals[k][s] = row[float64](bands)
		}
	}
	vecs := make([][][]row[cnum], len(e.Vectors))
	for k, spins := range e.Vectors {
		vecs[k] = make([][]row[cnum], len(spins))
		for s, bands := range spins {
			vecs[k][s] = make([]row[cnum], len(bands))
			for b, coeffs := range bands {
				r := make(row[cnum], len(coeffs))
				for o, z := range coeffs {
					r[o] = cnum{real(z), imag(z)}
				}
				vecs[k][s][b] = r
			}
		}
	}
	a1, a2 := pair(c.A1), pair(c.A2)

	return document{
		Crystal: &crystalDoc{
			Alat: &c.Alat, A1: &a1, A2: &a2, Motif: &m,
			NAtoms: &c.NAtoms, NOrbs: &c.NOrbs, OrbPattern: &pattern,
		},
		Eigensystem: &eigenDoc{
			Convention: &e.Convention, IsComplex: &e.IsComplex, KGrid: &kg,
			NCon: &e.NCon, NVal: &e.NVal, NK: &e.NK, NSpins: &e.NSpins,
			Eigenvalues: &vals, Eigenvectors: &vecs,
		},
	}
}

// missing returns ErrMissingField for the first absent field.
func (d *document) missing() error {
	if d.Crystal == nil {
		return missingField("crystal")
	}
	if d.Eigensystem == nil {
		return missingField("eigensystem")
	}
	c, e := d.Crystal, d.Eigensystem
	checks := []struct {
		path    string
		present bool
	}{
		{"crystal.alat", c.Alat != nil},
		{"crystal.avecs_a1", c.A1 != nil},
		{"crystal.avecs_a2", c.A2 != nil},
		{"crystal.motif", c.Motif != nil},
		{"crystal.n_atoms", c.NAtoms != nil},
		{"crystal.n_orbs", c.NOrbs != nil},
		{"crystal.orb_pattern", c.OrbPattern != nil},
		{"eigensystem.convention", e.Convention != nil},
		{"eigensystem.is_complex", e.IsComplex != nil},
		{"eigensystem.k_grid", e.KGrid != nil},
		{"eigensystem.n_con", e.NCon != nil},
		{"eigensystem.n_val", e.NVal != nil},
		{"eigensystem.n_k", e.NK != nil},
		{"eigensystem.n_spins", e.NSpins != nil},
		{"eigensystem.eigenvalues", e.Eigenvalues != nil},
		{"eigensystem.eigenvectors", e.Eigenvectors != nil},
	}
	for _, ch := range checks {
		if !ch.present {
			return missingField(ch.path)
		}
	}

	return nil
}

func missingField(path string) error {
	return fmt.Errorf("%s: %w", path, ErrMissingField)
}

func (v *vec2) vec() r2.Vec { return r2.Vec{X: v[0], Y: v[1]} }

func pair(v r2.Vec) vec2 { return vec2{v.X, v.Y} }
