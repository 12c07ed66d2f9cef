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
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/pgEdge/pgedge-ecomgen/internal/logging"
)

// ErrQualityCheckFailed is returned when one or more checks fail.
var ErrQualityCheckFailed = errors.New("data quality checks failed")

// Querier is the subset of pgxpool.Pool used by the quality checks.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Check is a query counting violating rows in the raw schema.
type Check struct {
	Name     string
	SQL      string
	Expected int64
}

// CheckResult is the outcome of one check.
type CheckResult struct {
	Name     string
	Count    int64
	Expected int64
}

// Passed reports whether the check found the expected count.
func (r CheckResult) Passed() bool {
	return r.Count == r.Expected
}

// QualityChecks returns the checks run against the raw schema.
func QualityChecks() []Check {
	return []Check{
		{
			Name:     "customers_no_nulls",
			SQL:      `SELECT COUNT(*) FROM raw.customers WHERE customer_id IS NULL OR email IS NULL`,
			Expected: 0,
		},
		{
			Name:     "orders_valid_dates",
			SQL:      `SELECT COUNT(*) FROM raw.orders WHERE order_date::date > CURRENT_DATE`,
			Expected: 0,
		},
		{
			Name:     "products_positive_prices",
			SQL:      `SELECT COUNT(*) FROM raw.products WHERE price::numeric <= 0`,
			Expected: 0,
		},
		{
			Name: "order_items_referential_integrity",
			SQL: `
                SELECT COUNT(*) FROM raw.order_items oi
                LEFT JOIN raw.orders o ON oi.order_id = o.order_id
                WHERE o.order_id IS NULL`,
			Expected: 0,
		},
		{
			Name: "web_events_user_type_consistency",
			SQL: `
                SELECT COUNT(*) FROM raw.web_events
                WHERE (customer_id IS NOT NULL) <> (user_type = 'registered')`,
			Expected: 0,
		},
	}
}

// RunQualityChecks runs every check. It returns all results, and an error
// wrapping ErrQualityCheckFailed that names the failing checks if any
// failed.
func RunQualityChecks(ctx context.Context, q Querier) ([]CheckResult, error) {
	log := logging.With("quality")
	checks := QualityChecks()
	results := make([]CheckResult, 0, len(checks))
	var failed []string

	for _, check := range checks {
		var count int64
		if err := q.QueryRow(ctx, check.SQL).Scan(&count); err != nil {
			return results, fmt.Errorf("check %s: %w", check.Name, err)
		}

		result := CheckResult{Name: check.Name, Count: count, Expected: check.Expected}
		results = append(results, result)

		if result.Passed() {
			log.Debug().Str("check", check.Name).Msg("Quality check passed")
			continue
		}
		log.Warn().
			Str("check", check.Name).
			Int64("expected", check.Expected).
			Int64("got", count).
			Msg("Quality check failed")
		failed = append(failed, fmt.Sprintf("%s: expected %d, got %d", check.Name, check.Expected, count))
	}

	if len(failed) > 0 {
		return results, fmt.Errorf("%w: %s", ErrQualityCheckFailed, strings.Join(failed, ", "))
	}

	log.Info().Int("checks", len(results)).Msg("All data quality checks passed")
	return results, nil
}
