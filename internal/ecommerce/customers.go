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

	"github.com/pgEdge/pgedge-ecomgen/internal/datagen"
	"github.com/pgEdge/pgedge-ecomgen/internal/logging"
)

// Customer age bounds in years, relative to the end of the date range.
const (
	minCustomerAge = 18
	maxCustomerAge = 80
)

// GenerateCustomers generates n customers with identifiers 1..n.
func (g *Generator) GenerateCustomers(ctx context.Context, n int) ([]Customer, error) {
	logging.Info().Int("count", n).Msg("Generating customers")

	oldest := g.cfg.EndDate.AddDate(-maxCustomerAge, 0, 0)
	youngest := g.cfg.EndDate.AddDate(-minCustomerAge, 0, 0)

	progress := datagen.NewProgressReporter(TableCustomers, int64(n), g.cfg.Batch.ProgressInterval)
	customers := make([]Customer, 0, n)

	for i := 1; i <= n; i++ {
		customers = append(customers, Customer{
			CustomerID:       int64(i),
			Segment:          datagen.ChooseWeighted(g.faker, customerSegments, segmentWeights),
			FirstName:        g.faker.FirstName(),
			LastName:         g.faker.LastName(),
			Email:            g.faker.Email(),
			Phone:            g.faker.Phone(),
			Address:          g.faker.FullAddress(),
			City:             g.faker.City(),
			State:            g.faker.State(),
			ZipCode:          g.faker.Zip(),
			Country:          "USA",
			RegistrationDate: g.faker.Day(g.cfg.StartDate, g.cfg.EndDate),
			BirthDate:        g.faker.Day(oldest, youngest),
			Gender:           datagen.ChooseWeighted(g.faker, genders, genderWeights),
		})

		if progress.Update(1) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}

	progress.Done()
	return customers, nil
}
