package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Filters narrow List results. Zero-valued fields are ignored; set
// fields combine with logical AND.

// CustomerFilter narrows customers by case-insensitive substring match
// on the name fields.
type CustomerFilter struct {
	FirstName string
	LastName  string
}

// ProductFilter narrows products by name substring and sale-price range.
type ProductFilter struct {
	Name     string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// OrderFilter narrows orders by status, customer and date range.
// DateFrom and DateTo are inclusive; a zero time means unbounded.
type OrderFilter struct {
	Status     string
	CustomerID string
	DateFrom   time.Time
	DateTo     time.Time
}

// QuoteFilter narrows quotes by status, customer and date range.
type QuoteFilter struct {
	Status     string
	CustomerID string
	DateFrom   time.Time
	DateTo     time.Time
}
