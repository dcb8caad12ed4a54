// SPDX-License-Identifier: MIT

// Package archive persists interaction stores in a SQLite file.
//
// Every Save is a run with a random UUID. A run keeps its label, creation
// time, the JSON-encoded build configuration and one row per key holding
// the block dimensions and the elements as a little-endian blob of
// (re, im) float64 pairs in row-major order.
//
// The driver is modernc.org/sqlite, so no cgo toolchain is required.
package archive
