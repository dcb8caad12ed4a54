// SPDX-License-Identifier: MIT

package archive

import "errors"

var (
	// ErrNotFound indicates an unknown run id.
	ErrNotFound = errors.New("archive: run not found")

	// ErrCorrupt indicates a stored row that cannot be decoded.
	ErrCorrupt = errors.New("archive: corrupt record")
)
