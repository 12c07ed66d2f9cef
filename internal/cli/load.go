//-------------------------------------------------------------------------
//
// pgEdge E-commerce Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-ecomgen/internal/db"
	"github.com/pgEdge/pgedge-ecomgen/internal/ecommerce"
	"github.com/pgEdge/pgedge-ecomgen/internal/logging"
)

var (
	loadDataDir      string
	loadChunkSize    int
	loadTables       []string
	loadWaitTimeout  int
	loadPollInterval int
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load generated CSV files into the raw schema",
	Long: `Load the CSV files written by 'generate' into tables in the raw
schema of a PostgreSQL database. Each table is truncated and reloaded in a
single transaction. Every row is tagged with the load time, source file
name and a load id.

With --wait-timeout the command waits for the files to appear, checking
every --poll-interval seconds.

Example:
  pgedge-ecomgen load --connection "postgres://..." --data-dir data
  pgedge-ecomgen load --connection "postgres://..." --tables customers,orders --wait-timeout 300`,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().StringVar(&loadDataDir, "data-dir", "",
		"directory holding the CSV files (default: data)")
	loadCmd.Flags().IntVar(&loadChunkSize, "chunk-size", 0,
		"rows copied per chunk (default: 10000)")
	loadCmd.Flags().StringSliceVar(&loadTables, "tables", nil,
		"tables to load (default: all)")
	loadCmd.Flags().IntVar(&loadWaitTimeout, "wait-timeout", 0,
		"seconds to wait for missing files (0 = fail immediately)")
	loadCmd.Flags().IntVar(&loadPollInterval, "poll-interval", 0,
		"seconds between checks for missing files (default: 60)")
}

func runLoad(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if loadDataDir != "" {
		cfg.Load.DataDir = loadDataDir
	}
	if cmd.Flags().Changed("chunk-size") {
		cfg.Load.ChunkSize = loadChunkSize
	}
	if len(loadTables) > 0 {
		cfg.Load.Tables = loadTables
	}
	if cmd.Flags().Changed("wait-timeout") {
		cfg.Load.WaitTimeout = loadWaitTimeout
	}
	if cmd.Flags().Changed("poll-interval") {
		cfg.Load.PollInterval = loadPollInterval
	}

	// Validate configuration
	if err := cfg.ValidateLoad(); err != nil {
		return err
	}

	tables, err := selectTables(cfg.Load.Tables)
	if err != nil {
		return err
	}

	paths := make([]string, len(tables))
	for i, table := range tables {
		paths[i] = filepath.Join(cfg.Load.DataDir, table+".csv")
	}

	ctx, cancel := signalContext()
	defer cancel()

	if cfg.Load.WaitTimeout > 0 {
		err := db.WaitForFiles(ctx, paths,
			time.Duration(cfg.Load.WaitTimeout)*time.Second,
			time.Duration(cfg.Load.PollInterval)*time.Second)
		if err != nil {
			return err
		}
	} else {
		for _, p := range paths {
			if _, err := os.Stat(p); err != nil {
				return fmt.Errorf("file not found: %s", p)
			}
		}
	}

	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if err := db.CreateRawSchema(ctx, pool); err != nil {
		return err
	}

	loadID := db.NewLoadID()
	logging.Info().
		Str("load_id", loadID).
		Strs("tables", tables).
		Msg("Starting load")

	var total int64
	for i, table := range tables {
		logging.Debug().
			Str("table", table).
			Str("size", db.FileSize(paths[i])).
			Msg("Input file")

		n, err := db.LoadTable(ctx, pool, table, paths[i], loadID, cfg.Load.ChunkSize)
		if err != nil {
			logging.Error().Err(err).Str("table", table).Msg("Load failed")
			return err
		}
		total += n
		cmd.Printf("Loaded %d rows into raw.%s\n", n, table)
	}

	if err := db.SaveLoadMetadata(ctx, pool, loadID, tables); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}

	logging.Info().
		Str("load_id", loadID).
		Int64("rows", total).
		Msg("Data loading complete")

	return nil
}

// selectTables validates requested table names and returns them in
// generation order, so parents load before children.
func selectTables(requested []string) ([]string, error) {
	if len(requested) == 0 {
		tables := make([]string, len(ecommerce.Tables))
		for i, t := range ecommerce.Tables {
			tables[i] = t.Name
		}
		return tables, nil
	}

	want := make(map[string]bool, len(requested))
	for _, name := range requested {
		if ecommerce.Columns(name) == nil {
			return nil, fmt.Errorf("%w: %s", db.ErrUnknownTable, name)
		}
		want[name] = true
	}

	var tables []string
	for _, t := range ecommerce.Tables {
		if want[t.Name] {
			tables = append(tables, t.Name)
		}
	}
	return tables, nil
}
