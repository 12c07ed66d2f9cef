//-------------------------------------------------------------------------
//
// pgEdge E-commerce Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package ecommerce

import (
	"context"
	"fmt"
	"time"

	"github.com/pgEdge/pgedge-ecomgen/internal/export"
	"github.com/pgEdge/pgedge-ecomgen/internal/logging"
	"github.com/pgEdge/pgedge-ecomgen/internal/summary"
)

// Pipeline runs the generation stages in order and persists each table.
type Pipeline struct {
	gen *Generator
	dir *export.Dir
}

// NewPipeline creates a pipeline writing into dir.
func NewPipeline(gen *Generator, dir *export.Dir) *Pipeline {
	return &Pipeline{gen: gen, dir: dir}
}

// Run generates and persists all five tables. Tables persisted before a
// failure are left in place; the table in progress may be incomplete.
func (p *Pipeline) Run(ctx context.Context, counts Counts) (*summary.Summary, error) {
	started := time.Now()
	sum := summary.New()

	logging.Info().
		Int("customers", counts.Customers).
		Int("products", counts.Products).
		Int("orders", counts.Orders).
		Int("web_events", counts.WebEvents).
		Str("output_dir", p.dir.Path()).
		Msg("Starting data generation")

	customers, err := p.gen.GenerateCustomers(ctx, counts.Customers)
	if err != nil {
		return nil, fmt.Errorf("failed to generate customers: %w", err)
	}
	if err := saveTable(ctx, p.dir, sum, TableCustomers, customers); err != nil {
		return nil, err
	}

	products, err := p.gen.GenerateProducts(ctx, counts.Products)
	if err != nil {
		return nil, fmt.Errorf("failed to generate products: %w", err)
	}
	if err := saveTable(ctx, p.dir, sum, TableProducts, products); err != nil {
		return nil, err
	}

	if err := p.runOrders(ctx, sum, customers, products, counts.Orders); err != nil {
		return nil, err
	}

	if err := p.runWebEvents(ctx, sum, customers, products, counts.WebEvents); err != nil {
		return nil, err
	}

	sum.Duration = time.Since(started)
	return sum, nil
}

// runOrders generates orders and their lines and persists both once the
// order totals are filled in.
func (p *Pipeline) runOrders(ctx context.Context, sum *summary.Summary, customers []Customer, products []Product, n int) error {
	orders, err := p.gen.GenerateOrders(ctx, customers, products, n)
	if err != nil {
		return fmt.Errorf("failed to generate orders: %w", err)
	}

	items, err := p.gen.GenerateOrderItems(ctx, orders, products)
	if err != nil {
		return fmt.Errorf("failed to generate order items: %w", err)
	}

	if err := saveTable(ctx, p.dir, sum, TableOrders, orders); err != nil {
		return err
	}
	return saveTable(ctx, p.dir, sum, TableOrderItems, items)
}

func (p *Pipeline) runWebEvents(ctx context.Context, sum *summary.Summary, customers []Customer, products []Product, n int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tw, err := p.dir.Create(TableWebEvents, Columns(TableWebEvents))
	if err != nil {
		return err
	}

	_, err = p.gen.GenerateWebEvents(ctx, customers, products, n, func(batch []WebEvent) error {
		for i := range batch {
			if err := tw.Write(batch[i].Row()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		tw.Close()
		return fmt.Errorf("failed to generate web events: %w", err)
	}

	if err := tw.Close(); err != nil {
		return err
	}
	sum.Add(TableWebEvents, tw.Rows())
	return nil
}

// saveTable persists a whole table and records its count.
func saveTable[T export.Row](ctx context.Context, dir *export.Dir, sum *summary.Summary, table string, rows []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n, err := export.WriteTable(dir, table, Columns(table), rows)
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", table, err)
	}
	sum.Add(table, n)
	return nil
}
