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
	"time"

	"github.com/pgEdge/pgedge-ecomgen/internal/export"
)

// Table names. Each table is persisted as {name}.csv.
const (
	TableCustomers  = "customers"
	TableProducts   = "products"
	TableOrders     = "orders"
	TableOrderItems = "order_items"
	TableWebEvents  = "web_events"
)

// TableDefinition describes a generated table.
type TableDefinition struct {
	// Name is the table (and artifact) name.
	Name string

	// Description describes the table's contents.
	Description string

	// Columns lists the CSV header in order.
	Columns []string
}

// Tables lists every generated table in generation order.
var Tables = []TableDefinition{
	{
		Name:        TableCustomers,
		Description: "Customer identity, demographics and segment",
		Columns: []string{
			"customer_id", "first_name", "last_name", "email", "phone",
			"address", "city", "state", "zip_code", "country",
			"registration_date", "customer_segment", "birth_date", "gender",
		},
	},
	{
		Name:        TableProducts,
		Description: "Product catalog with category pricing",
		Columns: []string{
			"product_id", "product_name", "category", "subcategory", "brand",
			"price", "cost", "weight", "dimensions", "description",
			"created_date", "is_active",
		},
	},
	{
		Name:        TableOrders,
		Description: "Order headers with back-filled tax and totals",
		Columns: []string{
			"order_id", "customer_id", "order_date", "order_status",
			"payment_method", "shipping_method", "shipping_cost", "tax_amount",
			"total_amount", "currency", "created_at", "updated_at",
		},
	},
	{
		Name:        TableOrderItems,
		Description: "Order lines with discounts",
		Columns: []string{
			"order_item_id", "order_id", "product_id", "quantity",
			"unit_price", "line_total", "discount_amount", "created_at",
		},
	},
	{
		Name:        TableWebEvents,
		Description: "Clickstream events, optionally attributed to customers and products",
		Columns: []string{
			"event_id", "customer_id", "session_id", "event_type", "product_id",
			"event_timestamp", "user_agent", "ip_address", "referrer",
			"page_url", "user_type", "device_type", "country", "city",
		},
	},
}

// Columns returns the header of the named table, or nil if unknown.
func Columns(table string) []string {
	for _, t := range Tables {
		if t.Name == table {
			return t.Columns
		}
	}
	return nil
}

// Customer is a registered shopper.
type Customer struct {
	CustomerID       int64
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	Address          string
	City             string
	State            string
	ZipCode          string
	Country          string
	RegistrationDate time.Time
	Segment          string
	BirthDate        time.Time
	Gender           string
}

// Row renders the customer as a CSV row.
func (c Customer) Row() []string {
	return []string{
		export.Int(c.CustomerID), c.FirstName, c.LastName, c.Email, c.Phone,
		c.Address, c.City, c.State, c.ZipCode, c.Country,
		export.Date(c.RegistrationDate), c.Segment, export.Date(c.BirthDate), c.Gender,
	}
}

// Product is a catalog entry.
type Product struct {
	ProductID   int64
	ProductName string
	Category    string
	Subcategory string
	Brand       string
	Price       float64
	Cost        float64
	Weight      float64
	Dimensions  string
	Description string
	CreatedDate time.Time
	IsActive    bool
}

// Row renders the product as a CSV row.
func (p Product) Row() []string {
	return []string{
		export.Int(p.ProductID), p.ProductName, p.Category, p.Subcategory, p.Brand,
		export.Float(p.Price), export.Float(p.Cost), export.Float(p.Weight),
		p.Dimensions, p.Description, export.Date(p.CreatedDate), export.Bool(p.IsActive),
	}
}

// Order is an order header. TaxAmount and TotalAmount are zero until the
// order lines have been generated.
type Order struct {
	OrderID        int64
	CustomerID     int64
	OrderDate      time.Time
	Status         string
	PaymentMethod  string
	ShippingMethod string
	ShippingCost   float64
	TaxAmount      float64
	TotalAmount    float64
	Currency       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Row renders the order as a CSV row.
func (o Order) Row() []string {
	return []string{
		export.Int(o.OrderID), export.Int(o.CustomerID), export.Date(o.OrderDate),
		o.Status, o.PaymentMethod, o.ShippingMethod,
		export.Float(o.ShippingCost), export.Float(o.TaxAmount), export.Float(o.TotalAmount),
		o.Currency, export.Timestamp(o.CreatedAt), export.Timestamp(o.UpdatedAt),
	}
}

// OrderItem is one product line of an order. UnitPrice is after discount.
type OrderItem struct {
	OrderItemID    int64
	OrderID        int64
	ProductID      int64
	Quantity       int
	UnitPrice      float64
	LineTotal      float64
	DiscountAmount float64
	CreatedAt      time.Time
}

// Row renders the order item as a CSV row.
func (i OrderItem) Row() []string {
	return []string{
		export.Int(i.OrderItemID), export.Int(i.OrderID), export.Int(i.ProductID),
		export.Int(int64(i.Quantity)), export.Float(i.UnitPrice), export.Float(i.LineTotal),
		export.Float(i.DiscountAmount), export.Timestamp(i.CreatedAt),
	}
}

// WebEvent is a clickstream event. CustomerID is set only for registered
// users; ProductID only for product interaction events.
type WebEvent struct {
	EventID        int64
	CustomerID     *int64
	SessionID      string
	EventType      string
	ProductID      *int64
	EventTimestamp time.Time
	UserAgent      string
	IPAddress      string
	Referrer       *string
	PageURL        string
	UserType       string
	DeviceType     string
	Country        string
	City           string
}

// Row renders the event as a CSV row.
func (e WebEvent) Row() []string {
	return []string{
		export.Int(e.EventID), export.OptionalInt(e.CustomerID), e.SessionID, e.EventType,
		export.OptionalInt(e.ProductID), export.Timestamp(e.EventTimestamp),
		e.UserAgent, e.IPAddress, export.OptionalString(e.Referrer), e.PageURL,
		e.UserType, e.DeviceType, e.Country, e.City,
	}
}
