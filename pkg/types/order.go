package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses. An order keeps whatever status it was given until a
// caller changes it; nothing transitions orders in the background.
const (
	OrderStatusPending    = "Pending"
	OrderStatusInProgress = "InProgress"
	OrderStatusCompleted  = "Completed"
	OrderStatusCancelled  = "Cancelled"
)

// validOrderStatuses is the set of recognized order status values.
var validOrderStatuses = map[string]bool{
	OrderStatusPending:    true,
	OrderStatusInProgress: true,
	OrderStatusCompleted:  true,
	OrderStatusCancelled:  true,
}

// ValidOrderStatus reports whether s is a recognized order status.
func ValidOrderStatus(s string) bool {
	return validOrderStatuses[s]
}

// OrderLine is one line of an order. Line IDs are scoped to the order
// and reassigned sequentially from 1 after any removal; they are not
// stable identifiers across mutations.
type OrderLine struct {
	ID              int             `json:"id"`
	ProductID       string          `json:"product_id,omitempty"`
	Description     string          `json:"description"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// Subtotal returns quantity * unit price * (1 - discount/100).
func (l OrderLine) Subtotal() decimal.Decimal {
	return lineSubtotal(l.Quantity, l.UnitPrice, l.DiscountPercent)
}

// Validate checks the line's quantity, price and discount ranges.
func (l OrderLine) Validate() error {
	if l.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if l.UnitPrice.IsNegative() {
		return ErrInvalidPrice
	}
	if l.DiscountPercent.IsNegative() || l.DiscountPercent.GreaterThan(oneHundred) {
		return ErrInvalidDiscount
	}
	return nil
}

// Order is an aggregate entity owning an ordered collection of lines.
// The customer reference is not enforced; a dangling CustomerID is
// representable and tolerated.
type Order struct {
	ID         string      `json:"id"`
	CustomerID string      `json:"customer_id"`
	Date       time.Time   `json:"date"`
	Status     string      `json:"status"`
	Notes      string      `json:"notes,omitempty"`
	Lines      []OrderLine `json:"lines"`
}

// Total returns the sum of the line subtotals. The total persisted in
// the workbook is a cache of this value and is never read back as
// authoritative.
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// AddLine validates the line, assigns it the next sequential line ID
// and appends it.
func (o *Order) AddLine(l OrderLine) error {
	if err := l.Validate(); err != nil {
		return err
	}
	l.ID = len(o.Lines) + 1
	o.Lines = append(o.Lines, l)
	return nil
}

// RemoveLine deletes the line with the given ID and reassigns the
// remaining line IDs sequentially starting at 1.
// Returns ErrNotFound if no line has that ID.
func (o *Order) RemoveLine(id int) error {
	kept := o.Lines[:0]
	found := false
	for _, l := range o.Lines {
		if l.ID == id {
			found = true
			continue
		}
		kept = append(kept, l)
	}
	if !found {
		return ErrNotFound
	}
	for i := range kept {
		kept[i].ID = i + 1
	}
	o.Lines = kept
	return nil
}

// SetStatus sets the order status to the given value.
// Returns ErrInvalidStatus if the value is not recognized.
// Idempotent: setting the current status succeeds without error.
func (o *Order) SetStatus(status string) error {
	if !ValidOrderStatus(status) {
		return ErrInvalidStatus
	}
	o.Status = status
	return nil
}

// Validate checks the order status and every line. Lines are checked
// before any write so that a bad line aborts the whole save.
func (o Order) Validate() error {
	if o.Status != "" && !ValidOrderStatus(o.Status) {
		return ErrInvalidStatus
	}
	for _, l := range o.Lines {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// lineSubtotal applies the shared subtotal formula used by order lines
// and quote lines: qty * unit * (1 - discount/100).
func lineSubtotal(qty int, unit, discount decimal.Decimal) decimal.Decimal {
	gross := unit.Mul(decimal.NewFromInt(int64(qty)))
	return gross.Mul(oneHundred.Sub(discount)).Div(oneHundred)
}
