package xlsx

import (
	"sort"

	"github.com/opal-works/storebook/pkg/types"
)

// QuotesTable is the repository for the quotes table-group: the
// primary sheet plus the items sheet of line rows.
type QuotesTable struct {
	backend *Backend
}

// Get retrieves a quote by id with its lines hydrated from the items
// sheet.
// Returns ErrNotFound if no row matches.
func (t *QuotesTable) Get(id string) (types.Quote, error) {
	if id == "" {
		return types.Quote{}, types.ErrInvalidID
	}
	if err := t.backend.ensureAttached(); err != nil {
		return types.Quote{}, err
	}
	unlock := t.backend.lockGroup(quotesGroup)
	defer unlock()

	sheets, err := t.backend.loadGroup(quotesGroup)
	if err != nil {
		return types.Quote{}, err
	}
	rows := matchRows(sheets[primarySheet].Rows, "id", id)
	if len(rows) == 0 {
		return types.Quote{}, types.ErrNotFound
	}
	return quoteFromRow(rows[0], sheets[quoteItemsSheet].Rows), nil
}

// List returns all quotes matching the filter, lines hydrated, in
// sheet order.
func (t *QuotesTable) List(filter types.QuoteFilter) ([]types.Quote, error) {
	if err := t.backend.ensureAttached(); err != nil {
		return nil, err
	}
	unlock := t.backend.lockGroup(quotesGroup)
	defer unlock()

	sheets, err := t.backend.loadGroup(quotesGroup)
	if err != nil {
		return nil, err
	}

	items := sheets[quoteItemsSheet].Rows
	quotes := make([]types.Quote, 0, len(sheets[primarySheet].Rows))
	for _, row := range sheets[primarySheet].Rows {
		if filter.Status != "" && cellString(row["status"]) != filter.Status {
			continue
		}
		if filter.CustomerID != "" && cellString(row["customer_id"]) != filter.CustomerID {
			continue
		}
		if !inDateRange(row["date"], filter.DateFrom, filter.DateTo) {
			continue
		}
		quotes = append(quotes, quoteFromRow(row, items))
	}
	return quotes, nil
}

// Save upserts the quote with the same semantics as order saving:
// primary row overwritten or appended, item rows fully deleted and
// reinserted, total recomputed from the lines. New quotes default to
// Pending status, today's date and the standard validity window.
func (t *QuotesTable) Save(q *types.Quote) error {
	if q.Status == "" {
		q.Status = types.QuoteStatusPending
	}
	if q.ValidityDays == 0 {
		q.ValidityDays = types.DefaultValidityDays
	}
	if err := q.Validate(); err != nil {
		return err
	}
	if err := t.backend.ensureAttached(); err != nil {
		return err
	}
	if q.Date.IsZero() {
		q.Date = t.backend.now()
	}

	unlock := t.backend.lockGroup(quotesGroup)
	defer unlock()

	sheets, err := t.backend.loadGroup(quotesGroup)
	if err != nil {
		return err
	}
	primary := sheets[primarySheet]
	items := sheets[quoteItemsSheet]

	if q.ID == "" {
		q.ID = newShortID()
		primary.Append(quoteRow(*q))
	} else if indexes := matchRowIndexes(primary.Rows, "id", q.ID); len(indexes) > 0 {
		updateRow(primary, indexes[0], quoteRow(*q))
	} else {
		primary.Append(quoteRow(*q))
	}

	items.Rows = deleteRows(items.Rows, matchRowIndexes(items.Rows, "quote_id", q.ID))
	for _, line := range q.Lines {
		items.Append(quoteLineRow(q.ID, line))
	}

	return t.backend.saveGroup(quotesGroup, sheets)
}

// Delete removes the quote and cascades to its item rows.
// Returns ErrNotFound if no row matches.
func (t *QuotesTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	if err := t.backend.ensureAttached(); err != nil {
		return err
	}
	unlock := t.backend.lockGroup(quotesGroup)
	defer unlock()

	sheets, err := t.backend.loadGroup(quotesGroup)
	if err != nil {
		return err
	}
	primary := sheets[primarySheet]
	items := sheets[quoteItemsSheet]

	indexes := matchRowIndexes(primary.Rows, "id", id)
	if len(indexes) == 0 {
		return types.ErrNotFound
	}
	primary.Rows = deleteRows(primary.Rows, indexes)
	items.Rows = deleteRows(items.Rows, matchRowIndexes(items.Rows, "quote_id", id))

	return t.backend.saveGroup(quotesGroup, sheets)
}

// Accept marks a Pending quote accepted and, as a side effect, creates
// a new Pending order carrying the quote's lines (and therefore its
// total), dated today. The order is persisted before the quote's status
// flips, so a failed order save leaves the quote Pending.
// Returns the created order.
func (t *QuotesTable) Accept(id string) (types.Order, error) {
	q, err := t.Get(id)
	if err != nil {
		return types.Order{}, err
	}
	if err := q.Accept(); err != nil {
		return types.Order{}, err
	}

	order := types.Order{
		CustomerID: q.CustomerID,
		Date:       t.backend.now(),
		Status:     types.OrderStatusPending,
		Notes:      q.Notes,
	}
	for _, l := range q.Lines {
		order.Lines = append(order.Lines, types.OrderLine{
			ID:              l.ID,
			Description:     l.Description,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
			DiscountPercent: l.DiscountPercent,
		})
	}
	if err := t.backend.Orders().Save(&order); err != nil {
		return types.Order{}, err
	}
	if err := t.Save(&q); err != nil {
		return types.Order{}, err
	}
	return order, nil
}

// Reject marks a Pending quote rejected.
func (t *QuotesTable) Reject(id string) error {
	q, err := t.Get(id)
	if err != nil {
		return err
	}
	if err := q.Reject(); err != nil {
		return err
	}
	return t.Save(&q)
}

func quoteFromRow(r Row, items []Row) types.Quote {
	q := types.Quote{
		ID:           cellString(r["id"]),
		CustomerID:   cellString(r["customer_id"]),
		ValidityDays: cellInt(r["validity_days"]),
		Status:       cellString(r["status"]),
		Notes:        cellString(r["notes"]),
	}
	if d, ok := cellDate(r["date"]); ok {
		q.Date = d
	}
	for _, lr := range matchRows(items, "quote_id", r["id"]) {
		q.Lines = append(q.Lines, types.QuoteLine{
			ID:              cellInt(lr["line_id"]),
			Description:     cellString(lr["description"]),
			Quantity:        cellInt(lr["quantity"]),
			UnitPrice:       cellDecimal(lr["unit_price"]),
			DiscountPercent: cellDecimal(lr["discount_percent"]),
		})
	}
	sort.Slice(q.Lines, func(i, j int) bool { return q.Lines[i].ID < q.Lines[j].ID })
	return q
}

func quoteRow(q types.Quote) Row {
	return Row{
		"id":            q.ID,
		"customer_id":   q.CustomerID,
		"date":          dateCell(q.Date),
		"validity_days": float64(q.ValidityDays),
		"total":         numCell(q.Total()),
		"notes":         q.Notes,
		"status":        q.Status,
	}
}

func quoteLineRow(quoteID string, l types.QuoteLine) Row {
	return Row{
		"quote_id":         quoteID,
		"line_id":          float64(l.ID),
		"description":      l.Description,
		"quantity":         float64(l.Quantity),
		"unit_price":       numCell(l.UnitPrice),
		"discount_percent": numCell(l.DiscountPercent),
		"subtotal":         numCell(l.Subtotal()),
	}
}
