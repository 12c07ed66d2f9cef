//-------------------------------------------------------------------------
//
// pgEdge E-commerce Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package db

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pgEdge/pgedge-ecomgen/internal/datagen"
	"github.com/pgEdge/pgedge-ecomgen/internal/ecommerce"
	"github.com/pgEdge/pgedge-ecomgen/internal/logging"
)

// DefaultChunkSize is the number of rows sent per COPY.
const DefaultChunkSize = 10000

var (
	// ErrUnknownTable is returned for a table that is not generated.
	ErrUnknownTable = errors.New("unknown table")

	// ErrHeaderMismatch is returned when a file's header does not match
	// the table's columns.
	ErrHeaderMismatch = errors.New("csv header does not match table columns")
)

// LoadTable replaces the contents of raw.<table> with the rows of the CSV
// file at path. The truncate and every chunk run in one transaction, so a
// failed load leaves the previous contents in place. Empty fields load as
// NULL.
func LoadTable(ctx context.Context, pool *pgxpool.Pool, table, path, loadID string, chunkSize int) (int64, error) {
	columns := ecommerce.Columns(table)
	if columns == nil {
		return 0, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	if chunkSize < 1 {
		chunkSize = DefaultChunkSize
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	src, err := newCSVSource(f, columns, filepath.Base(path), loadID, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}

	logging.Info().
		Str("table", table).
		Str("path", path).
		Str("load_id", loadID).
		Msg("Loading table")

	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE TABLE "+rawTable(table)); err != nil {
		return 0, fmt.Errorf("failed to truncate %s: %w", rawTable(table), err)
	}

	target := pgx.Identifier{RawSchema, table}
	copyColumns := append(slices.Clone(columns), loadColumns...)

	var total int64
	for !src.Done() {
		src.Reset(chunkSize)
		n, err := tx.CopyFrom(ctx, target, copyColumns, src)
		if err != nil {
			return total, fmt.Errorf("failed to copy into %s: %w", rawTable(table), err)
		}
		total += n
		logging.Debug().
			Str("table", table).
			Int64("rows", total).
			Msg("Inserted chunk")
	}

	if err := tx.Commit(ctx); err != nil {
		return total, fmt.Errorf("failed to commit load of %s: %w", table, err)
	}

	logging.Info().
		Str("table", table).
		Int64("rows", total).
		Msg("Loaded table")

	return total, nil
}

// csvSource feeds CSV records to CopyFrom in chunks. It implements
// pgx.CopyFromSource; each chunk ends after limit rows or at end of file.
type csvSource struct {
	r        *csv.Reader
	width    int
	meta     []any
	limit    int
	read     int
	values   []any
	err      error
	finished bool
}

func newCSVSource(r io.Reader, columns []string, fileName, loadID string, loadedAt time.Time) (*csvSource, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: file is empty", ErrHeaderMismatch)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if !slices.Equal(header, columns) {
		return nil, fmt.Errorf("%w: got %v", ErrHeaderMismatch, header)
	}

	return &csvSource{
		r:      cr,
		width:  len(columns),
		meta:   []any{loadedAt, fileName, loadID},
		values: make([]any, len(columns)+len(loadColumns)),
	}, nil
}

// Reset starts a new chunk of at most limit rows.
func (s *csvSource) Reset(limit int) {
	s.limit = limit
	s.read = 0
}

// Done reports whether the file has been fully consumed.
func (s *csvSource) Done() bool {
	return s.finished
}

// Next implements pgx.CopyFromSource.
func (s *csvSource) Next() bool {
	if s.finished || s.err != nil || s.read >= s.limit {
		return false
	}

	record, err := s.r.Read()
	if errors.Is(err, io.EOF) {
		s.finished = true
		return false
	}
	if err != nil {
		s.err = err
		return false
	}

	for i, field := range record {
		if field == "" {
			s.values[i] = nil
		} else {
			s.values[i] = field
		}
	}
	copy(s.values[s.width:], s.meta)
	s.read++
	return true
}

// Values implements pgx.CopyFromSource.
func (s *csvSource) Values() ([]any, error) {
	return s.values, nil
}

// Err implements pgx.CopyFromSource.
func (s *csvSource) Err() error {
	return s.err
}

// WaitForFiles polls until every path exists or timeout elapses.
func WaitForFiles(ctx context.Context, paths []string, timeout, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Second
	}
	deadline := time.Now().Add(timeout)

	for {
		missing := missingFiles(paths)
		if len(missing) == 0 {
			return nil
		}
		if !time.Now().Before(deadline) {
			return fmt.Errorf("timed out waiting for %v", missing)
		}

		logging.Info().
			Strs("missing", missing).
			Dur("poke_interval", interval).
			Msg("Waiting for files")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}

func missingFiles(paths []string) []string {
	var missing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			missing = append(missing, p)
		}
	}
	return missing
}

// FileSize returns a human-readable size of path, or "" if it cannot be read.
func FileSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	return datagen.FormatSize(info.Size())
}
