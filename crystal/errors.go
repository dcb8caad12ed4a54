// SPDX-License-Identifier: MIT

package crystal

import "errors"

// ErrIntegrity indicates a dataset whose sizes, counts or values contradict
// each other (motif length vs atom count, k-grid length vs NK², band or
// orbital counts vs stored arrays, non-finite numbers).
var ErrIntegrity = errors.New("crystal: data integrity violation")
