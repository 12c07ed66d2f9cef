//-------------------------------------------------------------------------
//
// pgEdge E-commerce Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package summary reports the record counts of a generation run.
package summary

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pgEdge/pgedge-ecomgen/internal/logging"
)

// TableCount is the number of records persisted for one table.
type TableCount struct {
	Table   string
	Records int64
}

// Summary holds per-table record counts in the order they were added.
type Summary struct {
	tables   []TableCount
	Duration time.Duration
}

// New creates an empty summary.
func New() *Summary {
	return &Summary{}
}

// Add records the count for a table. Adding a table twice replaces the
// earlier count.
func (s *Summary) Add(table string, records int64) {
	for i := range s.tables {
		if s.tables[i].Table == table {
			s.tables[i].Records = records
			return
		}
	}
	s.tables = append(s.tables, TableCount{Table: table, Records: records})
}

// Records returns the per-table counts.
func (s *Summary) Records() []TableCount {
	out := make([]TableCount, len(s.tables))
	copy(out, s.tables)
	return out
}

// Get returns the count for a table and whether it was recorded.
func (s *Summary) Get(table string) (int64, bool) {
	for _, t := range s.tables {
		if t.Table == table {
			return t.Records, true
		}
	}
	return 0, false
}

// Total returns the sum of all table counts.
func (s *Summary) Total() int64 {
	var total int64
	for _, t := range s.tables {
		total += t.Records
	}
	return total
}

// Log writes one line per table and a total line.
func (s *Summary) Log() {
	for _, t := range s.tables {
		logging.Info().
			Str("table", t.Table).
			Int64("records", t.Records).
			Msg("Generated table")
	}
	logging.Info().
		Int64("records", s.Total()).
		Dur("duration", s.Duration).
		Msg("Data generation complete")
}

// Print writes a human-readable table with grouped thousands.
func (s *Summary) Print(w io.Writer) error {
	p := message.NewPrinter(language.English)

	if _, err := p.Fprintf(w, "%-14s %15s\n", "TABLE", "RECORDS"); err != nil {
		return err
	}
	for _, t := range s.tables {
		if _, err := p.Fprintf(w, "%-14s %15d\n", t.Table, t.Records); err != nil {
			return err
		}
	}
	_, err := p.Fprintf(w, "%-14s %15d\n", "total", s.Total())
	return err
}

// WriteMetrics writes the summary as Prometheus gauges in the text
// exposition format, for a node exporter textfile collector.
func (s *Summary) WriteMetrics(path string) error {
	registry := prometheus.NewRegistry()

	records := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "ecomgen_table_records",
		Help: "Number of records generated per table.",
	}, []string{"table"})
	total := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ecomgen_records_total",
		Help: "Number of records generated across all tables.",
	})
	duration := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ecomgen_generation_duration_seconds",
		Help: "Wall clock duration of the last generation run.",
	})
	registry.MustRegister(records, total, duration)

	for _, t := range s.tables {
		records.WithLabelValues(t.Table).Set(float64(t.Records))
	}
	total.Set(float64(s.Total()))
	duration.Set(s.Duration.Seconds())

	if err := prometheus.WriteToTextfile(path, registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	logging.Info().Str("path", path).Msg("Metrics written")
	return nil
}
