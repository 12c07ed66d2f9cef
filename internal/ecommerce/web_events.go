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

// Web event types.
const (
	EventPageView       = "page_view"
	EventAddToCart      = "add_to_cart"
	EventRemoveFromCart = "remove_from_cart"
	EventPurchase       = "purchase"
	EventSearch         = "search"
	EventLogin          = "login"
	EventLogout         = "logout"
)

// User types.
const (
	UserRegistered = "registered"
	UserAnonymous  = "anonymous"
)

const (
	loggedInChance = 0.30
	referrerChance = 0.60
)

// IsProductEvent reports whether events of the given type reference a product.
func IsProductEvent(eventType string) bool {
	switch eventType {
	case EventPageView, EventAddToCart, EventRemoveFromCart:
		return true
	default:
		return false
	}
}

// WebEventSink receives each completed batch of web events. The slice is
// reused for the next batch and must not be retained.
type WebEventSink func(batch []WebEvent) error

// GenerateWebEvents generates n web events with identifiers 1..n and hands
// them to sink in batches of the configured size. It returns the number of
// events delivered. Every event is drawn in full before the next one, so
// the output does not depend on the batch size.
func (g *Generator) GenerateWebEvents(ctx context.Context, customers []Customer, products []Product, n int, sink WebEventSink) (int64, error) {
	if n > 0 && len(customers) == 0 {
		return 0, fmt.Errorf("cannot generate web events: %w", ErrEmptyCustomers)
	}
	if n > 0 && len(products) == 0 {
		return 0, fmt.Errorf("cannot generate web events: %w", ErrEmptyProducts)
	}

	batchSize := min(g.cfg.Batch.BatchSize, max(n, 1))

	logging.Info().
		Int("count", n).
		Int("batch_size", batchSize).
		Msg("Generating web events in batches")

	progress := datagen.NewProgressReporter(TableWebEvents, int64(n), g.cfg.Batch.ProgressInterval)
	batch := make([]WebEvent, 0, batchSize)
	var delivered int64

	for batchStart := 0; batchStart < n; batchStart += batchSize {
		if err := ctx.Err(); err != nil {
			return delivered, err
		}

		batchEnd := min(batchStart+batchSize, n)
		logging.Debug().
			Int("from", batchStart).
			Int("to", batchEnd).
			Msg("Processing web event batch")

		batch = batch[:0]
		for i := batchStart; i < batchEnd; i++ {
			batch = append(batch, g.webEvent(int64(i+1), customers, products))
		}

		if err := sink(batch); err != nil {
			return delivered, fmt.Errorf("failed to write web events %d-%d: %w", batchStart+1, batchEnd, err)
		}
		delivered += int64(len(batch))
		progress.Update(int64(len(batch)))
	}

	progress.Done()
	return delivered, nil
}

func (g *Generator) webEvent(id int64, customers []Customer, products []Product) WebEvent {
	e := WebEvent{EventID: id, UserType: UserAnonymous}

	if g.faker.Chance(loggedInChance) {
		customerID := customers[g.faker.Int(0, len(customers)-1)].CustomerID
		e.CustomerID = &customerID
		e.UserType = UserRegistered
	}

	e.EventType = datagen.ChooseWeighted(g.faker, eventTypes, eventTypeWeights)
	if IsProductEvent(e.EventType) {
		productID := products[g.faker.Int(0, len(products)-1)].ProductID
		e.ProductID = &productID
	}

	e.EventTimestamp = g.faker.Timestamp(g.cfg.StartDate, g.cfg.EndDate)
	e.SessionID = g.faker.UUID()
	e.UserAgent = g.faker.UserAgent()
	e.IPAddress = g.faker.IPv4()
	if g.faker.Chance(referrerChance) {
		referrer := g.faker.URL()
		e.Referrer = &referrer
	}
	e.PageURL = g.faker.URL()
	e.DeviceType = datagen.ChooseWeighted(g.faker, deviceTypes, deviceTypeWeights)
	e.Country = g.faker.CountryCode()
	e.City = g.faker.City()

	return e
}
