// SPDX-License-Identifier: MIT

package kernel

import "errors"

var (
	// ErrUnknownKernel is returned when a kernel name is not one of
	// keldysh, yukawa, coulomb.
	ErrUnknownKernel = errors.New("kernel: unknown kernel")

	// ErrInvalidParameter is returned by Validate for non-positive or
	// non-finite screening lengths and dielectric constants.
	ErrInvalidParameter = errors.New("kernel: invalid parameter")
)
