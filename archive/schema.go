// SPDX-License-Identifier: MIT

package archive

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	label      TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	config     BLOB NOT NULL,
	n_keys     INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS blocks (
	run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	ord    INTEGER NOT NULL,
	key    TEXT NOT NULL,
	n_rows INTEGER NOT NULL,
	n_cols INTEGER NOT NULL,
	data   BLOB NOT NULL,
	PRIMARY KEY (run_id, ord)
);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`
