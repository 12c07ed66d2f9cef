//-------------------------------------------------------------------------
//
// pgEdge E-commerce Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package export writes generated tables as CSV artifacts.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pgEdge/pgedge-ecomgen/internal/datagen"
	"github.com/pgEdge/pgedge-ecomgen/internal/logging"
)

// Row is implemented by records that can be rendered as a CSV row.
type Row interface {
	Row() []string
}

// Dir is an output directory holding one CSV file per table.
type Dir struct {
	path string
}

// NewDir returns a Dir for path, creating the directory if needed.
func NewDir(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Dir{path: path}, nil
}

// Path returns the directory path.
func (d *Dir) Path() string {
	return d.path
}

// TablePath returns the artifact path for a table.
func (d *Dir) TablePath(table string) string {
	return filepath.Join(d.path, table+".csv")
}

// Create opens the artifact for a table, truncating any previous file, and
// writes the header row.
func (d *Dir) Create(table string, header []string) (*TableWriter, error) {
	path := d.TablePath(table)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header for %s: %w", table, err)
	}

	return &TableWriter{
		table:   table,
		path:    path,
		file:    f,
		w:       w,
		columns: len(header),
	}, nil
}

// TableWriter streams rows into a single table artifact. A failed write
// leaves an incomplete file behind; rerunning overwrites it.
type TableWriter struct {
	table   string
	path    string
	file    *os.File
	w       *csv.Writer
	columns int
	rows    int64
}

// Write appends one row.
func (t *TableWriter) Write(row []string) error {
	if len(row) != t.columns {
		return fmt.Errorf("%s: row has %d fields, header has %d", t.table, len(row), t.columns)
	}
	if err := t.w.Write(row); err != nil {
		return fmt.Errorf("failed to write %s row: %w", t.table, err)
	}
	t.rows++
	return nil
}

// Rows returns the number of data rows written.
func (t *TableWriter) Rows() int64 {
	return t.rows
}

// Path returns the artifact path.
func (t *TableWriter) Path() string {
	return t.path
}

// Close flushes buffered rows and closes the file.
func (t *TableWriter) Close() error {
	t.w.Flush()
	if err := t.w.Error(); err != nil {
		t.file.Close()
		return fmt.Errorf("failed to flush %s: %w", t.path, err)
	}
	if err := t.file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", t.path, err)
	}

	size := int64(0)
	if info, err := os.Stat(t.path); err == nil {
		size = info.Size()
	}
	logging.Info().
		Str("table", t.table).
		Int64("rows", t.rows).
		Str("path", t.path).
		Str("size", datagen.FormatSize(size)).
		Msg("Saved table")
	return nil
}

// WriteTable writes a whole in-memory table and returns the row count.
func WriteTable[T Row](d *Dir, table string, header []string, rows []T) (int64, error) {
	logging.Info().
		Str("table", table).
		Int("rows", len(rows)).
		Str("path", d.TablePath(table)).
		Msg("Saving table")

	tw, err := d.Create(table, header)
	if err != nil {
		return 0, err
	}
	for _, r := range rows {
		if err := tw.Write(r.Row()); err != nil {
			tw.Close()
			return tw.Rows(), err
		}
	}
	if err := tw.Close(); err != nil {
		return tw.Rows(), err
	}
	return tw.Rows(), nil
}
