package xlsx

import (
	"sort"
	"time"

	"github.com/opal-works/storebook/pkg/types"
)

// OrdersTable is the repository for the orders table-group: the
// primary sheet plus the details sheet of line rows.
type OrdersTable struct {
	backend *Backend
}

// Get retrieves an order by id with its lines hydrated from the
// details sheet. Line lookup goes through the key reconciler because
// the order id representation is not guaranteed consistent between the
// two sheets.
// Returns ErrNotFound if no row matches.
func (t *OrdersTable) Get(id string) (types.Order, error) {
	if id == "" {
		return types.Order{}, types.ErrInvalidID
	}
	if err := t.backend.ensureAttached(); err != nil {
		return types.Order{}, err
	}
	unlock := t.backend.lockGroup(ordersGroup)
	defer unlock()

	sheets, err := t.backend.loadGroup(ordersGroup)
	if err != nil {
		return types.Order{}, err
	}
	rows := matchRows(sheets[primarySheet].Rows, "id", id)
	if len(rows) == 0 {
		return types.Order{}, types.ErrNotFound
	}
	return orderFromRow(rows[0], sheets[orderDetailsSheet].Rows), nil
}

// List returns all orders matching the filter, lines hydrated, in
// sheet order.
func (t *OrdersTable) List(filter types.OrderFilter) ([]types.Order, error) {
	if err := t.backend.ensureAttached(); err != nil {
		return nil, err
	}
	unlock := t.backend.lockGroup(ordersGroup)
	defer unlock()

	sheets, err := t.backend.loadGroup(ordersGroup)
	if err != nil {
		return nil, err
	}

	details := sheets[orderDetailsSheet].Rows
	orders := make([]types.Order, 0, len(sheets[primarySheet].Rows))
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
		orders = append(orders, orderFromRow(row, details))
	}
	return orders, nil
}

// Save upserts the order. The primary row is overwritten in place or
// appended (generating an id when absent); every detail row belonging
// to the order is then deleted and the current in-memory line list
// reinserted. The stored total is recomputed from the lines, never
// carried over.
func (t *OrdersTable) Save(o *types.Order) error {
	if o.Status == "" {
		o.Status = types.OrderStatusPending
	}
	if err := o.Validate(); err != nil {
		return err
	}
	if err := t.backend.ensureAttached(); err != nil {
		return err
	}
	if o.Date.IsZero() {
		o.Date = t.backend.now()
	}

	unlock := t.backend.lockGroup(ordersGroup)
	defer unlock()

	sheets, err := t.backend.loadGroup(ordersGroup)
	if err != nil {
		return err
	}
	primary := sheets[primarySheet]
	details := sheets[orderDetailsSheet]

	if o.ID == "" {
		o.ID = newShortID()
		primary.Append(orderRow(*o))
	} else if indexes := matchRowIndexes(primary.Rows, "id", o.ID); len(indexes) > 0 {
		updateRow(primary, indexes[0], orderRow(*o))
	} else {
		primary.Append(orderRow(*o))
	}

	// Full delete-and-reinsert of the children, not an incremental diff.
	details.Rows = deleteRows(details.Rows, matchRowIndexes(details.Rows, "order_id", o.ID))
	for _, line := range o.Lines {
		details.Append(orderLineRow(o.ID, line))
	}

	return t.backend.saveGroup(ordersGroup, sheets)
}

// Delete removes the order and cascades to its detail rows.
// Returns ErrNotFound if no row matches.
func (t *OrdersTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	if err := t.backend.ensureAttached(); err != nil {
		return err
	}
	unlock := t.backend.lockGroup(ordersGroup)
	defer unlock()

	sheets, err := t.backend.loadGroup(ordersGroup)
	if err != nil {
		return err
	}
	primary := sheets[primarySheet]
	details := sheets[orderDetailsSheet]

	indexes := matchRowIndexes(primary.Rows, "id", id)
	if len(indexes) == 0 {
		return types.ErrNotFound
	}
	primary.Rows = deleteRows(primary.Rows, indexes)
	details.Rows = deleteRows(details.Rows, matchRowIndexes(details.Rows, "order_id", id))

	return t.backend.saveGroup(ordersGroup, sheets)
}

// SetStatus validates the target status against the fixed enum and
// overwrites the status cell of the matching row.
// Returns ErrInvalidStatus for an unrecognized value and ErrNotFound if
// no row matches; nothing is written in either case.
func (t *OrdersTable) SetStatus(id, status string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	if !types.ValidOrderStatus(status) {
		return types.ErrInvalidStatus
	}
	if err := t.backend.ensureAttached(); err != nil {
		return err
	}
	unlock := t.backend.lockGroup(ordersGroup)
	defer unlock()

	sheets, err := t.backend.loadGroup(ordersGroup)
	if err != nil {
		return err
	}
	primary := sheets[primarySheet]
	indexes := matchRowIndexes(primary.Rows, "id", id)
	if len(indexes) == 0 {
		return types.ErrNotFound
	}
	primary.Rows[indexes[0]]["status"] = status

	return t.backend.saveGroup(ordersGroup, sheets)
}

// orderFromRow hydrates an order and its lines. The total column is
// ignored; Order.Total recomputes from the lines.
func orderFromRow(r Row, details []Row) types.Order {
	o := types.Order{
		ID:         cellString(r["id"]),
		CustomerID: cellString(r["customer_id"]),
		Status:     cellString(r["status"]),
		Notes:      cellString(r["notes"]),
	}
	if d, ok := cellDate(r["date"]); ok {
		o.Date = d
	}
	for _, lr := range matchRows(details, "order_id", r["id"]) {
		o.Lines = append(o.Lines, types.OrderLine{
			ID:              cellInt(lr["line_id"]),
			ProductID:       cellString(lr["product_id"]),
			Description:     cellString(lr["description"]),
			Quantity:        cellInt(lr["quantity"]),
			UnitPrice:       cellDecimal(lr["unit_price"]),
			DiscountPercent: cellDecimal(lr["discount_percent"]),
		})
	}
	sort.Slice(o.Lines, func(i, j int) bool { return o.Lines[i].ID < o.Lines[j].ID })
	return o
}

func orderRow(o types.Order) Row {
	return Row{
		"id":          o.ID,
		"customer_id": o.CustomerID,
		"date":        dateCell(o.Date),
		"status":      o.Status,
		"total":       numCell(o.Total()),
		"notes":       o.Notes,
	}
}

func orderLineRow(orderID string, l types.OrderLine) Row {
	return Row{
		"order_id":         orderID,
		"line_id":          float64(l.ID),
		"product_id":       l.ProductID,
		"description":      l.Description,
		"quantity":         float64(l.Quantity),
		"unit_price":       numCell(l.UnitPrice),
		"discount_percent": numCell(l.DiscountPercent),
		"subtotal":         numCell(l.Subtotal()),
	}
}

// inDateRange checks a date cell against an inclusive range; zero
// bounds are open. Rows with unparseable dates only match when no
// bound is set.
func inDateRange(v any, from, to time.Time) bool {
	if from.IsZero() && to.IsZero() {
		return true
	}
	d, ok := cellDate(v)
	if !ok {
		return false
	}
	if !from.IsZero() && d.Before(from) {
		return false
	}
	if !to.IsZero() && d.After(to) {
		return false
	}
	return true
}
