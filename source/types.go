// SPDX-License-Identifier: MIT

package source

import (
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the container encoding.
type Format int

const (
	// YAML is the default encoding.
	YAML Format = iota
	// JSON is accepted for interchange with other tooling.
	JSON
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	default:
		return 0, fmt.Errorf("%q: %w", path, ErrUnknownFormat)
	}
}

// document mirrors the container. Pointer fields distinguish "absent" from
// zero values.
type document struct {
	Crystal     *crystalDoc `yaml:"crystal" json:"crystal"`
	Eigensystem *eigenDoc   `yaml:"eigensystem" json:"eigensystem"`
}

type crystalDoc struct {
	Alat       *float64  `yaml:"alat" json:"alat"`
	A1         *vec2     `yaml:"avecs_a1" json:"avecs_a1"`
	A2         *vec2     `yaml:"avecs_a2" json:"avecs_a2"`
	Motif      *motif    `yaml:"motif" json:"motif"`
	NAtoms     *int      `yaml:"n_atoms" json:"n_atoms"`
	NOrbs      *int      `yaml:"n_orbs" json:"n_orbs"`
	OrbPattern *row[int] `yaml:"orb_pattern" json:"orb_pattern"`
}

type eigenDoc struct {
	Convention   *int              `yaml:"convention" json:"convention"`
	IsComplex    *bool             `yaml:"is_complex" json:"is_complex"`
	KGrid        *[]vec2           `yaml:"k_grid" json:"k_grid"`
	NCon         *int              `yaml:"n_con" json:"n_con"`
	NVal         *int              `yaml:"n_val" json:"n_val"`
	NK           *int              `yaml:"n_k" json:"n_k"`
	NSpins       *int              `yaml:"n_spins" json:"n_spins"`
	Eigenvalues  *[][]row[float64] `yaml:"eigenvalues" json:"eigenvalues"`
	Eigenvectors *[][][]row[cnum]  `yaml:"eigenvectors" json:"eigenvectors"`
}

// vec2 is an [x, y] pair.
type vec2 [2]float64

// MarshalYAML keeps pairs on one line.
func (v vec2) MarshalYAML() (any, error) { return flowNode([2]float64(v)) }

// cnum is a complex number stored as [re, im].
type cnum [2]float64

// UnmarshalYAML accepts [re, im] or a bare real number.
func (c *cnum) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		var re float64
		if err := n.Decode(&re); err != nil {
			return err
		}
		*c = cnum{re, 0}

		return nil
	}
	var pair []float64
	if err := n.Decode(&pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("line %d: complex value needs [re, im], got %d numbers: %w", n.Line, len(pair), ErrMalformed)
	}
	*c = cnum{pair[0], pair[1]}

	return nil
}

// MarshalYAML keeps pairs on one line.
func (c cnum) MarshalYAML() (any, error) { return flowNode([2]float64(c)) }

// motif is a list of positions; a single [x, y] is read as a one-atom motif.
type motif []vec2

// UnmarshalYAML accepts [x, y] or [[x, y], ...].
func (m *motif) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.SequenceNode && len(n.Content) > 0 && n.Content[0].Kind == yaml.ScalarNode {
		var v vec2
		if err := n.Decode(&v); err != nil {
			return err
		}
		*m = motif{v}

		return nil
	}
	var list []vec2
	if err := n.Decode(&list); err != nil {
		return err
	}
	*m = motif(list)

	return nil
}

// row is an innermost list, written in flow style.
type row[T any] []T

// MarshalYAML keeps rows on one line.
func (r row[T]) MarshalYAML() (any, error) { return flowNode([]T(r)) }

func flowNode(v any) (*yaml.Node, error) {
	var n yaml.Node
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	n.Style = yaml.FlowStyle

	return &n, nil
}
