// SPDX-License-Identifier: MIT

package interaction

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// Key addresses one block: the grid coordinates (I, J) of k and (IP, JP) of k'.
type Key struct {
	I, J, IP, JP int
}

// String renders the canonical form "k(i,j,i',j')".
func (k Key) String() string {
	return fmt.Sprintf("k(%d,%d,%d,%d)", k.I, k.J, k.IP, k.JP)
}

// Swap returns the key of the transposed block, k ↔ k'.
func (k Key) Swap() Key { return Key{I: k.IP, J: k.JP, IP: k.I, JP: k.J} }

// ParseKey parses the canonical form produced by String.
func ParseKey(s string) (Key, error) {
	body, ok := strings.CutPrefix(strings.TrimSpace(s), "k(")
	if ok {
		body, ok = strings.CutSuffix(body, ")")
	}
	parts := strings.Split(body, ",")
	if !ok || len(parts) != 4 {
		return Key{}, fmt.Errorf("%q: %w", s, ErrBadKey)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return Key{}, fmt.Errorf("%q: %w", s, ErrBadKey)
		}
		v[i] = n
	}

	return Key{I: v[0], J: v[1], IP: v[2], JP: v[3]}, nil
}

// CompareKeys orders keys lexicographically by (I, J, IP, JP).
func CompareKeys(a, b Key) int {
	if c := cmp.Compare(a.I, b.I); c != 0 {
		return c
	}
	if c := cmp.Compare(a.J, b.J); c != 0 {
		return c
	}
	if c := cmp.Compare(a.IP, b.IP); c != 0 {
		return c
	}

	return cmp.Compare(a.JP, b.JP)
}
