// SPDX-License-Identifier: MIT

package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/katalvlaran/excitontb/interaction"
)

// Archive is a handle on one SQLite file. It is safe for concurrent use.
type Archive struct {
	db     *sql.DB
	path   string
	logger *zap.Logger
}

// Run describes one saved store.
type Run struct {
	ID      uuid.UUID
	Label   string
	Created time.Time
	Keys    int
	Config  interaction.Config
}

// Record is a loaded run with its blocks in key order.
type Record struct {
	Run
	Order  []interaction.Key
	Blocks map[interaction.Key]*mat.CDense
}

// Shapes maps every key's string form to its block dimensions.
func (r *Record) Shapes() map[string][2]int {
	out := make(map[string][2]int, len(r.Blocks))
	for k, m := range r.Blocks {
		rows, cols := m.Dims()
		out[k.String()] = [2]int{rows, cols}
	}

	return out
}

// Option configures Open.
type Option func(*Archive)

// WithLogger sets the archive logger. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("archive: WithLogger: nil logger")
	}

	return func(a *Archive) { a.logger = l }
}

// Open creates or opens the archive at path, creating parent directories
// and the schema as needed.
func Open(path string, opts ...Option) (*Archive, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("archive: create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("archive: open sqlite: %w", err)
	}
	// one writer; sqlite serializes anyway
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("archive: create schema: %w", err)
	}
	a := &Archive{db: db, path: path, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// Close releases the database handle.
func (a *Archive) Close() error { return a.db.Close() }

// Save writes st as a new run in one transaction and returns its id.
//
// Complexity: O(total block elements).
func (a *Archive) Save(ctx context.Context, st *interaction.Store, label string) (id uuid.UUID, retErr error) {
	cfg, err := json.Marshal(st.Config())
	if err != nil {
		return uuid.Nil, fmt.Errorf("archive: encode config: %w", err)
	}
	id = uuid.New()

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("archive: begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, label, created_at, config, n_keys) VALUES (?, ?, ?, ?, ?)`,
		id.String(), label, time.Now().UnixNano(), cfg, st.Len(),
	); err != nil {
		return uuid.Nil, fmt.Errorf("archive: insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO blocks (run_id, ord, key, n_rows, n_cols, data) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return uuid.Nil, fmt.Errorf("archive: prepare: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	ord := 0
	for key, block := range st.All() {
		r, c := block.Dims()
		if _, err := stmt.ExecContext(ctx, id.String(), ord, key.String(), r, c, encodeBlock(block)); err != nil {
			return uuid.Nil, fmt.Errorf("archive: insert %s: %w", key, err)
		}
		ord++
	}
	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("archive: commit: %w", err)
	}

	a.logger.Info("archive: run saved",
		zap.String("run", id.String()),
		zap.String("label", label),
		zap.Int("keys", st.Len()),
	)

	return id, nil
}

// Load reads one run with all its blocks.
//
// Errors: ErrNotFound, ErrCorrupt.
func (a *Archive) Load(ctx context.Context, id uuid.UUID) (*Record, error) {
	row := a.db.QueryRowContext(ctx,
		`SELECT id, label, created_at, config, n_keys FROM runs WHERE id = ?`, id.String())
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	rows, err := a.db.QueryContext(ctx,
		`SELECT key, n_rows, n_cols, data FROM blocks WHERE run_id = ? ORDER BY ord`, id.String())
	if err != nil {
		return nil, fmt.Errorf("archive: select blocks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	rec := &Record{Run: run, Blocks: make(map[interaction.Key]*mat.CDense, run.Keys)}
	for rows.Next() {
		var (
			name string
			r, c int
			data []byte
		)
		if err := rows.Scan(&name, &r, &c, &data); err != nil {
			return nil, fmt.Errorf("archive: scan block: %w", err)
		}
		key, err := interaction.ParseKey(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		block, err := decodeBlock(data, r, c)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		rec.Order = append(rec.Order, key)
		rec.Blocks[key] = block
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("archive: iterate blocks: %w", err)
	}
	if len(rec.Order) != run.Keys {
		return nil, fmt.Errorf("run %s lists %d keys, found %d: %w", id, run.Keys, len(rec.Order), ErrCorrupt)
	}

	return rec, nil
}

// List returns all runs, oldest first, without their blocks.
func (a *Archive) List(ctx context.Context) ([]Run, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT id, label, created_at, config, n_keys FROM runs ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("archive: select runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}

	return out, rows.Err()
}

// Delete removes a run and its blocks.
//
// Errors: ErrNotFound.
func (a *Archive) Delete(ctx context.Context, id uuid.UUID) (retErr error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("archive: begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, `DELETE FROM blocks WHERE run_id = ?`, id.String()); err != nil {
		return fmt.Errorf("archive: delete blocks: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("archive: delete run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}

	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var (
		run     Run
		id      string
		created int64
		cfg     []byte
	)
	if err := s.Scan(&id, &run.Label, &created, &cfg, &run.Keys); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("archive: scan run: %w", err)
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return Run{}, fmt.Errorf("run id %q: %w", id, ErrCorrupt)
	}
	run.ID = parsed
	run.Created = time.Unix(0, created)
	if err := json.Unmarshal(cfg, &run.Config); err != nil {
		return Run{}, fmt.Errorf("run %s config: %w", id, ErrCorrupt)
	}

	return run, nil
}
