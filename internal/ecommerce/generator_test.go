package ecommerce

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgEdge/pgedge-ecomgen/internal/datagen"
	"github.com/pgEdge/pgedge-ecomgen/internal/export"
	"github.com/pgEdge/pgedge-ecomgen/internal/weighting"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Batch = datagen.BatchConfig{BatchSize: 7, ProgressInterval: 1000}
	return cfg
}

func newTestGenerator(seed uint64) *Generator {
	return NewGenerator(datagen.NewFakerWithSeed(seed), testConfig())
}

func TestCalculateCounts(t *testing.T) {
	tests := []struct {
		scale float64
		want  Counts
	}{
		{1.0, Counts{500000, 50000, 5000000, 25000000}},
		{0.1, Counts{50000, 5000, 500000, 2500000}},
		{0.00001, Counts{5, 0, 50, 250}},
		{2.5, Counts{1250000, 125000, 12500000, 62500000}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("scale_%v", tt.scale), func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateCounts(tt.scale))
		})
	}
}

func TestNewGeneratorDefaults(t *testing.T) {
	g := NewGenerator(datagen.NewFakerWithSeed(1), Config{})
	cfg := g.Config()

	assert.Equal(t, DefaultConfig().StartDate, cfg.StartDate)
	assert.Equal(t, DefaultConfig().EndDate, cfg.EndDate)
	assert.Equal(t, weighting.ModeNone, cfg.Weighting)
	assert.Equal(t, "retail-holiday", cfg.Season.Name())
	assert.Equal(t, 1000000, cfg.Batch.BatchSize)
}

func TestGenerateCustomers(t *testing.T) {
	g := newTestGenerator(42)
	cfg := g.Config()

	customers, err := g.GenerateCustomers(context.Background(), 300)
	require.NoError(t, err)
	require.Len(t, customers, 300)

	oldest := cfg.EndDate.AddDate(-80, 0, 0)
	youngest := cfg.EndDate.AddDate(-18, 0, 0)

	for i, c := range customers {
		assert.Equal(t, int64(i+1), c.CustomerID)
		assert.Contains(t, customerSegments, c.Segment)
		assert.Contains(t, genders, c.Gender)
		assert.Equal(t, "USA", c.Country)
		assert.NotEmpty(t, c.Email)
		assert.False(t, c.RegistrationDate.Before(cfg.StartDate))
		assert.False(t, c.RegistrationDate.After(cfg.EndDate))
		assert.False(t, c.BirthDate.Before(oldest))
		assert.False(t, c.BirthDate.After(youngest))
		assert.Len(t, c.Row(), len(Columns(TableCustomers)))
	}
}

func TestGenerateProducts(t *testing.T) {
	g := newTestGenerator(42)
	cfg := g.Config()
	dims := regexp.MustCompile(`^\d+x\d+x\d+$`)

	products, err := g.GenerateProducts(context.Background(), 300)
	require.NoError(t, err)
	require.Len(t, products, 300)

	for i, p := range products {
		assert.Equal(t, int64(i+1), p.ProductID)

		bounds, ok := categoryPrices[p.Category]
		require.True(t, ok, "unknown category %q", p.Category)
		assert.GreaterOrEqual(t, p.Price, bounds.min)
		assert.LessOrEqual(t, p.Price, bounds.max)
		assert.GreaterOrEqual(t, p.Cost, 0.0)
		assert.LessOrEqual(t, p.Cost, p.Price*0.7+0.01)

		assert.True(t, strings.HasPrefix(p.Subcategory, p.Category+" - "))
		assert.Regexp(t, dims, p.Dimensions)
		assert.LessOrEqual(t, len(p.Description), 200)
		assert.False(t, p.CreatedDate.Before(cfg.StartDate))
		assert.Len(t, p.Row(), len(Columns(TableProducts)))
	}
}

func generateCatalog(t *testing.T, g *Generator, customers, products int) ([]Customer, []Product) {
	t.Helper()
	c, err := g.GenerateCustomers(context.Background(), customers)
	require.NoError(t, err)
	p, err := g.GenerateProducts(context.Background(), products)
	require.NoError(t, err)
	return c, p
}

func TestGenerateOrders(t *testing.T) {
	g := newTestGenerator(42)
	customers, products := generateCatalog(t, g, 50, 20)

	orders, err := g.GenerateOrders(context.Background(), customers, products, 500)
	require.NoError(t, err)
	require.Len(t, orders, 500)

	for i, o := range orders {
		assert.Equal(t, int64(i+1), o.OrderID)
		assert.GreaterOrEqual(t, o.CustomerID, int64(1))
		assert.LessOrEqual(t, o.CustomerID, int64(len(customers)))
		assert.Contains(t, orderStatuses, o.Status)
		assert.Contains(t, paymentMethods, o.PaymentMethod)
		assert.Contains(t, shippingMethods, o.ShippingMethod)
		assert.GreaterOrEqual(t, o.ShippingCost, 0.0)
		assert.LessOrEqual(t, o.ShippingCost, 25.0)
		assert.Zero(t, o.TaxAmount)
		assert.Zero(t, o.TotalAmount)
		assert.Equal(t, "USD", o.Currency)

		assert.False(t, o.CreatedAt.Before(o.OrderDate))
		assert.False(t, o.CreatedAt.After(o.OrderDate.Add(time.Hour)))
		assert.False(t, o.UpdatedAt.Before(o.OrderDate))
		assert.False(t, o.UpdatedAt.After(o.OrderDate.AddDate(0, 0, 7)))
	}
}

func TestGenerateOrdersEmptyPools(t *testing.T) {
	g := newTestGenerator(1)
	customers, products := generateCatalog(t, g, 5, 5)

	_, err := g.GenerateOrders(context.Background(), nil, products, 10)
	assert.ErrorIs(t, err, ErrEmptyCustomers)

	_, err = g.GenerateOrders(context.Background(), customers, nil, 10)
	assert.ErrorIs(t, err, ErrEmptyProducts)

	orders, err := g.GenerateOrders(context.Background(), nil, nil, 0)
	assert.NoError(t, err)
	assert.Empty(t, orders)
}

func TestGenerateOrderItems(t *testing.T) {
	g := newTestGenerator(42)
	customers, products := generateCatalog(t, g, 50, 40)

	orders, err := g.GenerateOrders(context.Background(), customers, products, 1000)
	require.NoError(t, err)

	items, err := g.GenerateOrderItems(context.Background(), orders, products)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(items), len(orders))
	assert.LessOrEqual(t, len(items), len(orders)*5)

	byOrder := make(map[int64][]OrderItem)
	for i, item := range items {
		assert.Equal(t, int64(i+1), item.OrderItemID, "line ids are dense")
		assert.GreaterOrEqual(t, item.ProductID, int64(1))
		assert.LessOrEqual(t, item.ProductID, int64(len(products)))
		assert.Contains(t, quantities, item.Quantity)
		assert.GreaterOrEqual(t, item.DiscountAmount, 0.0)
		assert.Equal(t, orders[item.OrderID-1].CreatedAt, item.CreatedAt)
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}

	for _, o := range orders {
		lines := byOrder[o.OrderID]
		require.NotEmpty(t, lines, "order %d has no lines", o.OrderID)
		assert.LessOrEqual(t, len(lines), 5)

		seen := make(map[int64]bool)
		subtotal := 0.0
		for _, l := range lines {
			assert.False(t, seen[l.ProductID], "order %d repeats product %d", o.OrderID, l.ProductID)
			seen[l.ProductID] = true
			subtotal += l.LineTotal
		}

		assert.InDelta(t, datagen.Round2(subtotal*0.08), o.TaxAmount, 1e-9)
		assert.InDelta(t, subtotal+o.TaxAmount+o.ShippingCost, o.TotalAmount, 0.01)
	}
}

func TestGenerateOrderItemsDiscountedPrices(t *testing.T) {
	g := newTestGenerator(7)
	customers, products := generateCatalog(t, g, 10, 30)

	orders, err := g.GenerateOrders(context.Background(), customers, products, 500)
	require.NoError(t, err)
	items, err := g.GenerateOrderItems(context.Background(), orders, products)
	require.NoError(t, err)

	discounted := 0
	for _, item := range items {
		list := products[item.ProductID-1].Price
		if item.DiscountAmount == 0 {
			assert.InDelta(t, list, item.UnitPrice, 1e-9)
			assert.InDelta(t, list*float64(item.Quantity), item.LineTotal, 0.005)
			continue
		}
		discounted++
		assert.Less(t, item.UnitPrice, list+0.005)
		assert.GreaterOrEqual(t, item.UnitPrice, datagen.Round2(list*0.7)-0.01)
	}
	assert.Positive(t, discounted)
}

func TestGenerateOrderItemsInsufficientProducts(t *testing.T) {
	g := newTestGenerator(3)
	customers, products := generateCatalog(t, g, 5, 1)

	orders, err := g.GenerateOrders(context.Background(), customers, products, 200)
	require.NoError(t, err)

	_, err = g.GenerateOrderItems(context.Background(), orders, products)
	assert.ErrorIs(t, err, ErrInsufficientProducts)

	_, err = g.GenerateOrderItems(context.Background(), orders, nil)
	assert.ErrorIs(t, err, ErrEmptyProducts)
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name      string
		subtotal  float64
		shipping  float64
		wantTax   float64
		wantTotal float64
	}{
		{"two lines", 10.00 + 20.00, 5.00, 2.40, 37.40},
		{"free shipping", 100, 0, 8, 108},
		{"rounded tax", 12.34, 1.99, 0.99, 15.32},
		{"empty", 0, 3.5, 0, 3.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax, total := ComputeTotals(tt.subtotal, tt.shipping)
			assert.InDelta(t, tt.wantTax, tax, 1e-9)
			assert.InDelta(t, tt.wantTotal, total, 1e-9)
		})
	}
}

func collectWebEvents(t *testing.T, g *Generator, customers []Customer, products []Product, n int) []WebEvent {
	t.Helper()
	var events []WebEvent
	delivered, err := g.GenerateWebEvents(context.Background(), customers, products, n, func(batch []WebEvent) error {
		events = append(events, batch...)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, int64(n), delivered)
	return events
}

func TestGenerateWebEvents(t *testing.T) {
	g := newTestGenerator(42)
	cfg := g.Config()
	customers, products := generateCatalog(t, g, 20, 10)

	events := collectWebEvents(t, g, customers, products, 500)
	require.Len(t, events, 500)

	registered := 0
	for i, e := range events {
		assert.Equal(t, int64(i+1), e.EventID, "event ids are dense across batches")
		assert.Contains(t, eventTypes, e.EventType)
		assert.Contains(t, deviceTypes, e.DeviceType)
		assert.NotEmpty(t, e.SessionID)
		assert.False(t, e.EventTimestamp.Before(cfg.StartDate))
		assert.False(t, e.EventTimestamp.After(cfg.EndDate))

		assert.Equal(t, e.UserType == UserRegistered, e.CustomerID != nil)
		if e.CustomerID != nil {
			registered++
			assert.LessOrEqual(t, *e.CustomerID, int64(len(customers)))
		} else {
			assert.Equal(t, UserAnonymous, e.UserType)
		}

		assert.Equal(t, IsProductEvent(e.EventType), e.ProductID != nil)
		if e.ProductID != nil {
			assert.LessOrEqual(t, *e.ProductID, int64(len(products)))
		}

		row := e.Row()
		assert.Len(t, row, len(Columns(TableWebEvents)))
		assert.Equal(t, e.CustomerID == nil, row[1] == "")
	}
	assert.Positive(t, registered)
	assert.Less(t, registered, len(events))
}

func TestGenerateWebEventsBatchSizeIndependent(t *testing.T) {
	run := func(batchSize int) []WebEvent {
		cfg := testConfig()
		cfg.Batch.BatchSize = batchSize
		g := NewGenerator(datagen.NewFakerWithSeed(99), cfg)
		customers, products := generateCatalog(t, g, 10, 10)
		return collectWebEvents(t, g, customers, products, 103)
	}

	single := run(1000)
	batched := run(10)
	tiny := run(1)

	assert.Equal(t, single, batched)
	assert.Equal(t, single, tiny)
}

func TestGenerateWebEventsSinkError(t *testing.T) {
	g := newTestGenerator(1)
	customers, products := generateCatalog(t, g, 5, 5)
	boom := errors.New("disk full")

	calls := 0
	delivered, err := g.GenerateWebEvents(context.Background(), customers, products, 50, func([]WebEvent) error {
		calls++
		if calls == 2 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int64(7), delivered)
}

func TestGenerateWebEventsCancelled(t *testing.T) {
	g := newTestGenerator(1)
	customers, products := generateCatalog(t, g, 5, 5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.GenerateWebEvents(ctx, customers, products, 50, func([]WebEvent) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)

	_, err = g.GenerateWebEvents(context.Background(), nil, products, 5, func([]WebEvent) error { return nil })
	assert.ErrorIs(t, err, ErrEmptyCustomers)
}

func TestAppliedSegmentWeighting(t *testing.T) {
	cfg := testConfig()
	cfg.Weighting = weighting.ModeApplied
	g := NewGenerator(datagen.NewFakerWithSeed(5), cfg)

	customers := []Customer{
		{CustomerID: 1, Segment: weighting.SegmentPremium},
		{CustomerID: 2, Segment: weighting.SegmentBudget},
	}
	products := []Product{{ProductID: 1, Price: 10}}

	orders, err := g.GenerateOrders(context.Background(), customers, products, 8000)
	require.NoError(t, err)

	premium := 0
	for _, o := range orders {
		if o.CustomerID == 1 {
			premium++
		}
	}

	// premium weight 0.15 against budget 0.05
	share := float64(premium) / float64(len(orders))
	assert.InDelta(t, 0.75, share, 0.03)
}

func TestAppliedSeasonalWeighting(t *testing.T) {
	holidayShare := func(mode weighting.Mode) float64 {
		cfg := testConfig()
		cfg.StartDate = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
		cfg.EndDate = time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
		cfg.Weighting = mode
		g := NewGenerator(datagen.NewFakerWithSeed(11), cfg)
		customers, products := generateCatalog(t, g, 10, 10)

		orders, err := g.GenerateOrders(context.Background(), customers, products, 8000)
		require.NoError(t, err)

		holiday := 0
		for _, o := range orders {
			if m := o.OrderDate.Month(); m == time.November || m == time.December {
				holiday++
			}
		}
		return float64(holiday) / float64(len(orders))
	}

	assert.InDelta(t, 61.0/364.0, holidayShare(weighting.ModeNone), 0.02)
	assert.Greater(t, holidayShare(weighting.ModeApplied), 0.20)
}

func TestPipelineRun(t *testing.T) {
	dir, err := export.NewDir(t.TempDir())
	require.NoError(t, err)

	counts := Counts{Customers: 30, Products: 15, Orders: 60, WebEvents: 40}
	sum, err := NewPipeline(newTestGenerator(42), dir).Run(context.Background(), counts)
	require.NoError(t, err)

	for _, table := range []string{TableCustomers, TableProducts, TableOrders, TableWebEvents} {
		_, ok := sum.Get(table)
		assert.True(t, ok, table)
	}
	n, _ := sum.Get(TableCustomers)
	assert.Equal(t, int64(30), n)
	n, _ = sum.Get(TableWebEvents)
	assert.Equal(t, int64(40), n)
	items, _ := sum.Get(TableOrderItems)
	assert.GreaterOrEqual(t, items, int64(60))
	assert.LessOrEqual(t, items, int64(300))

	for _, def := range Tables {
		f, err := os.Open(dir.TablePath(def.Name))
		require.NoError(t, err)
		records, err := csv.NewReader(f).ReadAll()
		f.Close()
		require.NoError(t, err)
		assert.Equal(t, def.Columns, records[0])

		rows, _ := sum.Get(def.Name)
		assert.Equal(t, int(rows), len(records)-1, def.Name)
	}
}

func TestPipelineReproducible(t *testing.T) {
	counts := Counts{Customers: 25, Products: 12, Orders: 50, WebEvents: 60}

	run := func() *export.Dir {
		dir, err := export.NewDir(t.TempDir())
		require.NoError(t, err)
		_, err = NewPipeline(newTestGenerator(2024), dir).Run(context.Background(), counts)
		require.NoError(t, err)
		return dir
	}

	first, second := run(), run()
	for _, def := range Tables {
		a, err := os.ReadFile(first.TablePath(def.Name))
		require.NoError(t, err)
		b, err := os.ReadFile(second.TablePath(def.Name))
		require.NoError(t, err)
		assert.Equal(t, a, b, "%s differs between runs", def.Name)
	}
}

func TestPipelineEmptyProducts(t *testing.T) {
	dir, err := export.NewDir(t.TempDir())
	require.NoError(t, err)

	counts := Counts{Customers: 5, Products: 0, Orders: 5, WebEvents: 5}
	_, err = NewPipeline(newTestGenerator(1), dir).Run(context.Background(), counts)
	assert.ErrorIs(t, err, ErrEmptyProducts)

	// customers and products were persisted before the failure
	_, err = os.Stat(dir.TablePath(TableCustomers))
	assert.NoError(t, err)
	_, err = os.Stat(dir.TablePath(TableOrders))
	assert.True(t, os.IsNotExist(err))
}

func TestGeneratedDatesReachEndDate(t *testing.T) {
	cfg := testConfig()
	cfg.StartDate = time.Date(2024, 12, 29, 0, 0, 0, 0, time.UTC)
	cfg.EndDate = time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	g := NewGenerator(datagen.NewFakerWithSeed(8), cfg)
	customers, products := generateCatalog(t, g, 200, 200)

	orders, err := g.GenerateOrders(context.Background(), customers, products, 300)
	require.NoError(t, err)

	var lastOrder, lastRegistration, lastCreated time.Time
	for _, o := range orders {
		if o.OrderDate.After(lastOrder) {
			lastOrder = o.OrderDate
		}
	}
	for _, c := range customers {
		if c.RegistrationDate.After(lastRegistration) {
			lastRegistration = c.RegistrationDate
		}
	}
	for _, p := range products {
		if p.CreatedDate.After(lastCreated) {
			lastCreated = p.CreatedDate
		}
	}

	assert.True(t, cfg.EndDate.Equal(lastOrder), "last order date %v", lastOrder)
	assert.True(t, cfg.EndDate.Equal(lastRegistration), "last registration date %v", lastRegistration)
	assert.True(t, cfg.EndDate.Equal(lastCreated), "last product date %v", lastCreated)
}
