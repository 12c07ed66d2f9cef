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
	"sort"
	"time"

	"github.com/pgEdge/pgedge-ecomgen/internal/datagen"
	"github.com/pgEdge/pgedge-ecomgen/internal/logging"
	"github.com/pgEdge/pgedge-ecomgen/internal/weighting"
)

const (
	maxShippingCost = 25.0
	orderCurrency   = "USD"
)

// GenerateOrders generates n orders with identifiers 1..n. Tax and total
// amounts are left at zero for GenerateOrderItems to fill in.
//
// In weighting.ModeNone customers and dates are sampled uniformly; the
// segment probability and seasonal multiplier of each order are computed
// and reported at debug level only. In weighting.ModeApplied both shape
// the sampling.
func (g *Generator) GenerateOrders(ctx context.Context, customers []Customer, products []Product, n int) ([]Order, error) {
	if n > 0 && len(customers) == 0 {
		return nil, fmt.Errorf("cannot generate orders: %w", ErrEmptyCustomers)
	}
	if n > 0 && len(products) == 0 {
		return nil, fmt.Errorf("cannot generate orders: %w", ErrEmptyProducts)
	}

	logging.Info().
		Int("count", n).
		Str("weighting", string(g.cfg.Weighting)).
		Str("seasonal_profile", g.cfg.Season.Name()).
		Msg("Generating orders")

	pickCustomer := g.customerPicker(customers)
	pickDate := g.orderDatePicker()

	var segmentSum, seasonalSum float64

	progress := datagen.NewProgressReporter(TableOrders, int64(n), g.cfg.Batch.ProgressInterval)
	orders := make([]Order, 0, n)

	for i := 1; i <= n; i++ {
		customer := pickCustomer()
		orderDate := pickDate()

		segmentSum += weighting.SegmentOrderProbability(customer.Segment)
		seasonalSum += g.cfg.Season.Multiplier(orderDate)

		orders = append(orders, Order{
			OrderID:        int64(i),
			CustomerID:     customer.CustomerID,
			OrderDate:      orderDate,
			Status:         datagen.ChooseWeighted(g.faker, orderStatuses, orderStatusWeights),
			PaymentMethod:  datagen.ChooseWeighted(g.faker, paymentMethods, paymentMethodWeights),
			ShippingMethod: datagen.ChooseWeighted(g.faker, shippingMethods, shippingMethodWeights),
			ShippingCost:   datagen.Round2(g.faker.Float64(0, maxShippingCost)),
			Currency:       orderCurrency,
			CreatedAt:      g.faker.Timestamp(orderDate, orderDate.Add(time.Hour)),
			UpdatedAt:      g.faker.Timestamp(orderDate, orderDate.AddDate(0, 0, 7)),
		})

		if progress.Update(1) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}

	if n > 0 {
		event := logging.Debug().
			Float64("mean_segment_probability", segmentSum/float64(n)).
			Float64("mean_seasonal_multiplier", seasonalSum/float64(n))
		if g.cfg.Weighting == weighting.ModeNone {
			event.Msg("Purchase weights computed but not applied")
		} else {
			event.Msg("Purchase weights applied")
		}
	}

	progress.Done()
	return orders, nil
}

// customerPicker returns a function drawing one customer per call.
func (g *Generator) customerPicker(customers []Customer) func() *Customer {
	if g.cfg.Weighting != weighting.ModeApplied {
		return func() *Customer {
			return &customers[g.faker.Int(0, len(customers)-1)]
		}
	}

	cumulative := make([]float64, len(customers))
	total := 0.0
	for i := range customers {
		total += weighting.SegmentOrderProbability(customers[i].Segment)
		cumulative[i] = total
	}

	return func() *Customer {
		idx := sort.SearchFloat64s(cumulative, g.faker.Float64(0, total))
		if idx >= len(customers) {
			idx = len(customers) - 1
		}
		return &customers[idx]
	}
}

// orderDatePicker returns a function drawing one order date per call.
// Applied weighting accepts a uniform candidate day with probability
// Multiplier(day) / Max().
func (g *Generator) orderDatePicker() func() time.Time {
	start, end := g.cfg.StartDate, g.cfg.EndDate
	if g.cfg.Weighting != weighting.ModeApplied {
		return func() time.Time {
			return g.faker.Day(start, end)
		}
	}

	season := g.cfg.Season
	peak := season.Max()
	return func() time.Time {
		for {
			d := g.faker.Day(start, end)
			if g.faker.Float64(0, peak) < season.Multiplier(d) {
				return d
			}
		}
	}
}
