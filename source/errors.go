// SPDX-License-Identifier: MIT

package source

import "errors"

var (
	// ErrMissingField indicates a required container field is absent.
	ErrMissingField = errors.New("source: missing field")

	// ErrMalformed indicates a field that is present but has the wrong shape.
	ErrMalformed = errors.New("source: malformed field")

	// ErrUnknownFormat indicates a file extension other than .yaml, .yml or .json.
	ErrUnknownFormat = errors.New("source: unknown container format")
)
