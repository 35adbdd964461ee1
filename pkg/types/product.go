package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// Product is a catalogue entry with a purchase and a sale price.
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
}

// Margin returns the profit margin as a percentage of the purchase
// price: (sale - purchase) / purchase * 100. It is zero whenever the
// purchase price is not positive, regardless of the sale price.
func (p Product) Margin() decimal.Decimal {
	if !p.PurchasePrice.IsPositive() {
		return decimal.Zero
	}
	return p.SalePrice.Sub(p.PurchasePrice).Div(p.PurchasePrice).Mul(oneHundred)
}

// Validate checks the required fields and price ranges.
func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidName
	}
	if p.PurchasePrice.IsNegative() || p.SalePrice.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}
