//-------------------------------------------------------------------------
//
// pgEdge E-commerce Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package ecommerce generates a synthetic e-commerce dataset: customers,
// products, orders, order items and web events with referential integrity
// between them.
package ecommerce

import (
	"errors"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pgEdge/pgedge-ecomgen/internal/datagen"
	"github.com/pgEdge/pgedge-ecomgen/internal/weighting"
)

// Base record counts at scale 1.0. Order items are derived from orders.
const (
	BaseCustomers = 500000
	BaseProducts  = 50000
	BaseOrders    = 5000000
	BaseWebEvents = 25000000
)

// TaxRate is applied to every order subtotal.
const TaxRate = 0.08

var (
	// ErrEmptyCustomers is returned when a stage needs customers but none exist.
	ErrEmptyCustomers = errors.New("customer table is empty")

	// ErrEmptyProducts is returned when a stage needs products but none exist.
	ErrEmptyProducts = errors.New("product table is empty")

	// ErrInsufficientProducts is returned when an order draws more distinct
	// products than the catalog holds.
	ErrInsufficientProducts = errors.New("not enough products to sample without replacement")
)

// Counts holds the target record count of each configured table.
type Counts struct {
	Customers int
	Products  int
	Orders    int
	WebEvents int
}

// CalculateCounts scales the base counts, truncating toward zero.
func CalculateCounts(scale float64) Counts {
	return Counts{
		Customers: int(BaseCustomers * scale),
		Products:  int(BaseProducts * scale),
		Orders:    int(BaseOrders * scale),
		WebEvents: int(BaseWebEvents * scale),
	}
}

// Reference data
var (
	customerSegments = []string{weighting.SegmentPremium, weighting.SegmentRegular, weighting.SegmentBudget}
	segmentWeights   = []int{15, 60, 25}

	genders       = []string{"M", "F", "O"}
	genderWeights = []int{48, 48, 4}

	productCategories = []string{
		"Electronics", "Clothing", "Home & Garden", "Sports", "Books",
		"Beauty", "Toys", "Automotive", "Food", "Health",
	}

	orderStatuses      = []string{"completed", "cancelled", "returned", "shipped", "pending"}
	orderStatusWeights = []int{75, 10, 5, 8, 2}

	paymentMethods       = []string{"credit_card", "debit_card", "paypal", "apple_pay", "google_pay"}
	paymentMethodWeights = []int{45, 25, 15, 8, 7}

	shippingMethods       = []string{"standard", "express", "overnight", "pickup"}
	shippingMethodWeights = []int{60, 25, 10, 5}

	itemCounts       = []int{1, 2, 3, 4, 5}
	itemCountWeights = []int{50, 30, 12, 5, 3}

	quantities      = []int{1, 2, 3}
	quantityWeights = []int{70, 20, 10}

	eventTypes = []string{
		EventPageView, EventAddToCart, EventRemoveFromCart,
		EventPurchase, EventSearch, EventLogin, EventLogout,
	}
	eventTypeWeights = []int{50, 15, 5, 8, 12, 5, 5}

	deviceTypes       = []string{"desktop", "mobile", "tablet"}
	deviceTypeWeights = []int{45, 45, 10}
)

// priceRange bounds the list price of a category.
type priceRange struct {
	min, max float64
}

var categoryPrices = map[string]priceRange{
	"Electronics":   {50, 2000},
	"Clothing":      {15, 200},
	"Home & Garden": {20, 500},
	"Sports":        {25, 300},
	"Books":         {10, 50},
	"Beauty":        {15, 150},
	"Toys":          {10, 100},
	"Automotive":    {25, 1000},
	"Food":          {5, 100},
	"Health":        {10, 200},
}

// Config holds generator settings.
type Config struct {
	// StartDate and EndDate bound every generated date.
	StartDate time.Time
	EndDate   time.Time

	// Batch controls web event batching and progress logging.
	Batch datagen.BatchConfig

	// Weighting selects whether segment and seasonal weights are applied.
	Weighting weighting.Mode

	// Season provides the seasonal multiplier for order dates.
	Season weighting.Seasonality
}

// DefaultConfig returns the default generator configuration.
func DefaultConfig() Config {
	return Config{
		StartDate: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Batch:     datagen.DefaultBatchConfig(),
		Weighting: weighting.ModeNone,
		Season:    weighting.NewRetailHoliday(),
	}
}

// Generator generates the e-commerce dataset. All randomness comes from
// its Faker, so a Generator must not be shared between goroutines and
// tables must be generated in the documented order to be reproducible:
// customers, products, orders, order items, web events.
type Generator struct {
	faker *datagen.Faker
	cfg   Config
	title cases.Caser
}

// NewGenerator creates a new ecommerce data generator.
func NewGenerator(faker *datagen.Faker, cfg Config) *Generator {
	defaults := DefaultConfig()
	if cfg.StartDate.IsZero() {
		cfg.StartDate = defaults.StartDate
	}
	if cfg.EndDate.IsZero() {
		cfg.EndDate = defaults.EndDate
	}
	if cfg.Batch.BatchSize < 1 {
		cfg.Batch.BatchSize = defaults.Batch.BatchSize
	}
	if cfg.Batch.ProgressInterval < 1 {
		cfg.Batch.ProgressInterval = defaults.Batch.ProgressInterval
	}
	if cfg.Weighting == "" {
		cfg.Weighting = weighting.ModeNone
	}
	if cfg.Season == nil {
		cfg.Season = defaults.Season
	}

	return &Generator{
		faker: faker,
		cfg:   cfg,
		title: cases.Title(language.English),
	}
}

// Config returns the effective generator configuration.
func (g *Generator) Config() Config {
	return g.cfg
}
