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

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-ecomgen/internal/db"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run data quality checks against the raw schema",
	Long: `Run data quality checks against tables loaded with 'load'. Each
check counts violating rows; the command fails if any count is non-zero.

Example:
  pgedge-ecomgen check --connection "postgres://..."`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	if err := cfg.ValidateCheck(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	results, checkErr := db.RunQualityChecks(ctx, pool)
	for _, r := range results {
		status := "PASS"
		if !r.Passed() {
			status = "FAIL"
		}
		cmd.Printf("  %-36s %s (expected %d, got %d)\n", r.Name, status, r.Expected, r.Count)
	}
	return checkErr
}
