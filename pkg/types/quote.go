package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote statuses. Pending quotes either get accepted (which spawns an
// order) or rejected. Expiry is computed on demand; no background
// process ever mutates a quote's stored status to Expired.
const (
	QuoteStatusPending  = "Pending"
	QuoteStatusAccepted = "Accepted"
	QuoteStatusRejected = "Rejected"
	QuoteStatusExpired  = "Expired"
)

// DefaultValidityDays is the validity window applied when a quote is
// created without one.
const DefaultValidityDays = 15

// validQuoteStatuses is the set of recognized quote status values.
var validQuoteStatuses = map[string]bool{
	QuoteStatusPending:  true,
	QuoteStatusAccepted: true,
	QuoteStatusRejected: true,
	QuoteStatusExpired:  true,
}

// ValidQuoteStatus reports whether s is a recognized quote status.
func ValidQuoteStatus(s string) bool {
	return validQuoteStatuses[s]
}

// QuoteLine is one line of a quote. Quote lines carry a free-form
// description only; unlike order lines they do not reference a product.
type QuoteLine struct {
	ID              int             `json:"id"`
	Description     string          `json:"description"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// Subtotal returns quantity * unit price * (1 - discount/100).
func (l QuoteLine) Subtotal() decimal.Decimal {
	return lineSubtotal(l.Quantity, l.UnitPrice, l.DiscountPercent)
}

// Validate checks the line's quantity, price and discount ranges.
func (l QuoteLine) Validate() error {
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

// Quote is an aggregate entity owning a collection of quote lines.
type Quote struct {
	ID           string      `json:"id"`
	CustomerID   string      `json:"customer_id"`
	Date         time.Time   `json:"date"`
	ValidityDays int         `json:"validity_days"`
	Status       string      `json:"status"`
	Notes        string      `json:"notes,omitempty"`
	Lines        []QuoteLine `json:"lines"`
}

// Total returns the sum of the line subtotals.
func (q Quote) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range q.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// AddLine validates the line, assigns it the next sequential line ID
// and appends it.
func (q *Quote) AddLine(l QuoteLine) error {
	if err := l.Validate(); err != nil {
		return err
	}
	l.ID = len(q.Lines) + 1
	q.Lines = append(q.Lines, l)
	return nil
}

// RemoveLine deletes the line with the given ID and reassigns the
// remaining line IDs sequentially starting at 1.
// Returns ErrNotFound if no line has that ID.
func (q *Quote) RemoveLine(id int) error {
	kept := q.Lines[:0]
	found := false
	for _, l := range q.Lines {
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
	q.Lines = kept
	return nil
}

// Expired reports whether the quote has outlived its validity window:
// still Pending and now is past date + validity days. Accepted and
// rejected quotes are never considered expired.
func (q Quote) Expired(now time.Time) bool {
	if q.Status != QuoteStatusPending {
		return false
	}
	return now.After(q.Date.AddDate(0, 0, q.ValidityDays))
}

// Accept marks the quote accepted.
// Returns ErrInvalidTransition unless the quote is Pending.
func (q *Quote) Accept() error {
	if q.Status != QuoteStatusPending {
		return ErrInvalidTransition
	}
	q.Status = QuoteStatusAccepted
	return nil
}

// Reject marks the quote rejected.
// Returns ErrInvalidTransition unless the quote is Pending.
func (q *Quote) Reject() error {
	if q.Status != QuoteStatusPending {
		return ErrInvalidTransition
	}
	q.Status = QuoteStatusRejected
	return nil
}

// Validate checks the status, validity window and every line.
func (q Quote) Validate() error {
	if q.Status != "" && !ValidQuoteStatus(q.Status) {
		return ErrInvalidStatus
	}
	if q.ValidityDays < 0 {
		return ErrInvalidValidity
	}
	for _, l := range q.Lines {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	return nil
}
