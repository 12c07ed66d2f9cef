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
	"slices"

	"github.com/pgEdge/pgedge-ecomgen/internal/datagen"
	"github.com/pgEdge/pgedge-ecomgen/internal/logging"
)

const discountChance = 0.15

// GenerateOrderItems generates the lines of every order and then fills in
// each order's TaxAmount and TotalAmount from its line totals. Line
// identifiers are dense across all orders in emission order.
func (g *Generator) GenerateOrderItems(ctx context.Context, orders []Order, products []Product) ([]OrderItem, error) {
	if len(orders) > 0 && len(products) == 0 {
		return nil, fmt.Errorf("cannot generate order items: %w", ErrEmptyProducts)
	}

	logging.Info().Int("orders", len(orders)).Msg("Generating order items")

	progress := datagen.NewProgressReporter(TableOrderItems, int64(len(orders)), g.cfg.Batch.ProgressInterval)

	// Expected mean is 1.81 lines per order.
	items := make([]OrderItem, 0, len(orders)*2)
	subtotals := make([]float64, len(orders))
	picked := make([]int, 0, itemCounts[len(itemCounts)-1])

	for idx := range orders {
		order := &orders[idx]

		count := datagen.ChooseWeighted(g.faker, itemCounts, itemCountWeights)
		if count > len(products) {
			return nil, fmt.Errorf("order %d needs %d distinct products, catalog has %d: %w",
				order.OrderID, count, len(products), ErrInsufficientProducts)
		}

		picked = g.sampleDistinct(picked[:0], len(products), count)

		for _, p := range picked {
			product := &products[p]
			quantity := datagen.ChooseWeighted(g.faker, quantities, quantityWeights)

			unitPrice := product.Price
			discount := 0.0
			if g.faker.Chance(discountChance) {
				pct := g.faker.Float64(0.10, 0.30)
				discount = unitPrice * float64(quantity) * pct
				unitPrice *= 1 - pct
			}

			lineTotal := datagen.Round2(unitPrice * float64(quantity))
			subtotals[idx] += lineTotal

			items = append(items, OrderItem{
				OrderItemID:    int64(len(items) + 1),
				OrderID:        order.OrderID,
				ProductID:      product.ProductID,
				Quantity:       quantity,
				UnitPrice:      datagen.Round2(unitPrice),
				LineTotal:      lineTotal,
				DiscountAmount: datagen.Round2(discount),
				CreatedAt:      order.CreatedAt,
			})
		}

		if progress.Update(1) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}

	logging.Info().Int("orders", len(orders)).Msg("Updating order totals")
	for idx := range orders {
		orders[idx].TaxAmount, orders[idx].TotalAmount = ComputeTotals(subtotals[idx], orders[idx].ShippingCost)
	}

	progress.Done()
	logging.Info().Int("order_items", len(items)).Msg("Order items generated")
	return items, nil
}

// sampleDistinct appends k distinct indexes in [0, n) to dst, in draw
// order. k is small, so rejection against the picked prefix is cheap.
func (g *Generator) sampleDistinct(dst []int, n, k int) []int {
	start := len(dst)
	for len(dst)-start < k {
		i := g.faker.Int(0, n-1)
		if !slices.Contains(dst[start:], i) {
			dst = append(dst, i)
		}
	}
	return dst
}

// ComputeTotals returns the tax and grand total for an order subtotal.
func ComputeTotals(subtotal, shippingCost float64) (tax, total float64) {
	tax = datagen.Round2(subtotal * TaxRate)
	total = datagen.Round2(subtotal + tax + shippingCost)
	return tax, total
}
