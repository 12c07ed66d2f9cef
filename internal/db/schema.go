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
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pgEdge/pgedge-ecomgen/internal/ecommerce"
	"github.com/pgEdge/pgedge-ecomgen/internal/logging"
)

// RawSchema is the landing schema for loaded CSV files.
const RawSchema = "raw"

// Columns appended to every raw table by the loader.
var loadColumns = []string{"loaded_at", "file_name", "load_id"}

// rawTable returns the quoted, schema-qualified name of a raw table.
func rawTable(table string) string {
	return pgx.Identifier{RawSchema, table}.Sanitize()
}

// createTableSQL returns the DDL for the raw copy of a generated table.
// Data columns are TEXT so that files land unchanged; typing happens
// downstream.
func createTableSQL(def ecommerce.TableDefinition) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", rawTable(def.Name))
	for _, col := range def.Columns {
		fmt.Fprintf(&b, "    %s TEXT,\n", pgx.Identifier{col}.Sanitize())
	}
	b.WriteString("    loaded_at TIMESTAMPTZ NOT NULL,\n")
	b.WriteString("    file_name TEXT NOT NULL,\n")
	b.WriteString("    load_id TEXT NOT NULL\n")
	b.WriteString(")")
	return b.String()
}

// CreateRawSchema creates the raw schema and one table per generated table.
func CreateRawSchema(ctx context.Context, pool *pgxpool.Pool) error {
	logging.Info().Str("schema", RawSchema).Msg("Creating raw schema")

	if _, err := pool.Exec(ctx, "CREATE SCHEMA IF NOT EXISTS "+pgx.Identifier{RawSchema}.Sanitize()); err != nil {
		return fmt.Errorf("failed to create schema %s: %w", RawSchema, err)
	}

	for _, def := range ecommerce.Tables {
		if _, err := pool.Exec(ctx, createTableSQL(def)); err != nil {
			return fmt.Errorf("failed to create table %s: %w", rawTable(def.Name), err)
		}
	}

	logging.Debug().Int("tables", len(ecommerce.Tables)).Msg("Raw schema ready")
	return nil
}

// DropRawSchema drops the raw schema and everything in it.
func DropRawSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, "DROP SCHEMA IF EXISTS "+pgx.Identifier{RawSchema}.Sanitize()+" CASCADE")
	return err
}
