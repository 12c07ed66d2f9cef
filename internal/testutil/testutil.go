//-------------------------------------------------------------------------
//
// pgEdge E-commerce Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package testutil provides utilities for integration testing against a
// live PostgreSQL server.
package testutil

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pgEdge/pgedge-ecomgen/internal/config"
)

const (
	// ConnEnvVar overrides the server used by integration tests.
	ConnEnvVar = "PGEDGE_ECOMGEN_TEST_CONN"

	// DefaultConnString is used when neither ConnEnvVar nor a config
	// file names a server.
	DefaultConnString = "postgres://postgres@localhost:5432/postgres"

	// DBPrefix is the prefix for throwaway test databases.
	DBPrefix = "ecomgen_test_"
)

// ConnString returns the base connection string for integration tests:
// ConnEnvVar if set, else the connection from pgedge-ecomgen.yaml, else
// DefaultConnString.
func ConnString() string {
	if s := os.Getenv(ConnEnvVar); s != "" {
		return s
	}
	if cfg, err := config.Load(""); err == nil && cfg.Connection != "" {
		return cfg.Connection
	}
	return DefaultConnString
}

// RequirePostgres returns the base connection string, skipping the test
// if the server cannot be reached.
func RequirePostgres(t *testing.T) string {
	t.Helper()

	connStr := ConnString()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		t.Skipf("PostgreSQL not available, skipping integration test: %v", err)
	}
	conn.Close(ctx)

	return connStr
}

// NewDatabase creates an empty database for the test and returns its
// connection string. The database is dropped when the test ends, unless
// the test failed, in which case it is kept for diagnostics.
func NewDatabase(t *testing.T, baseConnStr, name string) string {
	t.Helper()

	suffix := make([]byte, 8)
	if _, err := rand.Read(suffix); err != nil {
		t.Fatalf("Failed to generate database name: %v", err)
	}
	dbName := DBPrefix + name + "_" + hex.EncodeToString(suffix)

	exec(t, baseConnStr, "CREATE DATABASE "+pgx.Identifier{dbName}.Sanitize())

	t.Cleanup(func() {
		if t.Failed() {
			t.Logf("Test failed - keeping database %s for diagnostics", dbName)
			return
		}
		exec(t, baseConnStr, "DROP DATABASE IF EXISTS "+pgx.Identifier{dbName}.Sanitize()+" WITH (FORCE)")
	})

	connStr, err := withDatabase(baseConnStr, dbName)
	if err != nil {
		t.Fatalf("Failed to build connection string: %v", err)
	}
	return connStr
}

// withDatabase returns baseConnStr pointed at another database. The
// result is always URL form, since the parsed config cannot be rendered
// back to a string.
func withDatabase(baseConnStr, dbName string) (string, error) {
	cc, err := pgxpool.ParseConfig(baseConnStr)
	if err != nil {
		return "", err
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(cc.ConnConfig.Host, strconv.Itoa(int(cc.ConnConfig.Port))),
		Path:   "/" + dbName,
	}
	if cc.ConnConfig.Password != "" {
		u.User = url.UserPassword(cc.ConnConfig.User, cc.ConnConfig.Password)
	} else {
		u.User = url.User(cc.ConnConfig.User)
	}
	return u.String(), nil
}

func exec(t *testing.T, connStr, sql string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		t.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, sql); err != nil {
		t.Fatalf("%s: %v", sql, fmt.Errorf("exec failed: %w", err))
	}
}
