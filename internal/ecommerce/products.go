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

	"github.com/pgEdge/pgedge-ecomgen/internal/datagen"
	"github.com/pgEdge/pgedge-ecomgen/internal/logging"
)

const maxDescriptionLen = 200

// GenerateProducts generates n products with identifiers 1..n.
//
// Cost is the rounded price times a factor in [0.4, 0.7) and is not
// re-checked against the rounded price.
func (g *Generator) GenerateProducts(ctx context.Context, n int) ([]Product, error) {
	logging.Info().Int("count", n).Msg("Generating products")

	progress := datagen.NewProgressReporter(TableProducts, int64(n), g.cfg.Batch.ProgressInterval)
	products := make([]Product, 0, n)

	for i := 1; i <= n; i++ {
		category := datagen.Choose(g.faker, productCategories)
		bounds := categoryPrices[category]
		price := datagen.Round2(g.faker.Float64(bounds.min, bounds.max))

		products = append(products, Product{
			ProductID:   int64(i),
			ProductName: g.faker.ProductName(),
			Category:    category,
			Subcategory: fmt.Sprintf("%s - %s", category, g.title.String(g.faker.Word())),
			Brand:       g.faker.Company(),
			Price:       price,
			Cost:        datagen.Round2(price * g.faker.Float64(0.4, 0.7)),
			Weight:      datagen.Round2(g.faker.Float64(0.1, 10.0)),
			Dimensions: fmt.Sprintf("%dx%dx%d",
				g.faker.Int(5, 49), g.faker.Int(5, 49), g.faker.Int(2, 19)),
			Description: datagen.Truncate(g.faker.ProductDescription(), maxDescriptionLen),
			CreatedDate: g.faker.Day(g.cfg.StartDate, g.cfg.EndDate),
			IsActive:    g.faker.Chance(0.85),
		})

		if progress.Update(1) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}

	progress.Done()
	return products, nil
}
