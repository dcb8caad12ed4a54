// SPDX-License-Identifier: MIT

package interaction

import "errors"

var (
	// ErrInvalidConfig indicates a non-positive cutoff, an out-of-range spin
	// or convention, or invalid kernel parameters (the kernel sentinel is kept
	// in the chain).
	ErrInvalidConfig = errors.New("interaction: invalid configuration")

	// ErrBadKey indicates a key string not of the form "k(i,j,i',j')".
	ErrBadKey = errors.New("interaction: malformed key")
)
