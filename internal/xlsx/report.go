package xlsx

import (
	"path/filepath"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/opal-works/storebook/pkg/types"
)

// Report artifact sheet layout.
var reportSheets = []sheetSpec{
	{name: "Summary", columns: []string{"date", "total"}},
	{name: "Detail", columns: []string{"date", "customer", "product", "quantity", "unit_price", "subtotal", "order_total"}},
	{name: "By Product", columns: []string{"product", "units_sold", "revenue"}},
	{name: "By Customer", columns: []string{"customer", "orders", "total_spent"}},
}

// joinedLine is one fully-joined detail record: order, line, product
// and customer all matched.
type joinedLine struct {
	date       string
	customer   string
	product    string
	line       types.OrderLine
	orderID    string
	orderTotal decimal.Decimal
}

// GenerateSalesReport produces the sales report for the inclusive date
// range [from, to]: orders with Completed status, joined to their
// lines, products and customers. The artifact is a new timestamp-named
// workbook in the data directory; source workbooks are never touched.
//
// Zero completed orders in range is an expected outcome reported as
// SalesReport{NoData: true} with no file written, not an error.
//
// Join semantics are inner: a line whose product fails to reconcile, or
// an order whose customer does, is silently dropped from the joined
// views. The daily Summary sheet is built from the orders before the
// join, so it still counts them.
func (b *Backend) GenerateSalesReport(from, to time.Time) (types.SalesReport, error) {
	if err := b.ensureAttached(); err != nil {
		return types.SalesReport{}, err
	}
	if from.IsZero() || to.IsZero() || to.Before(from) {
		return types.SalesReport{}, types.ErrInvalidDateRange
	}

	orderSheets, err := b.snapshotGroup(ordersGroup)
	if err != nil {
		return types.SalesReport{}, err
	}
	details := orderSheets[orderDetailsSheet].Rows

	var completed []types.Order
	for _, row := range orderSheets[primarySheet].Rows {
		if cellString(row["status"]) != types.OrderStatusCompleted {
			continue
		}
		if !inDateRange(row["date"], from, to) {
			continue
		}
		completed = append(completed, orderFromRow(row, details))
	}
	if len(completed) == 0 {
		return types.SalesReport{NoData: true, From: from, To: to}, nil
	}
	sort.Slice(completed, func(i, j int) bool {
		if !completed[i].Date.Equal(completed[j].Date) {
			return completed[i].Date.Before(completed[j].Date)
		}
		return completed[i].ID < completed[j].ID
	})

	productSheets, err := b.snapshotGroup(productsGroup)
	if err != nil {
		return types.SalesReport{}, err
	}
	customerSheets, err := b.snapshotGroup(customersGroup)
	if err != nil {
		return types.SalesReport{}, err
	}
	products := productSheets[primarySheet].Rows
	customers := customerSheets[primarySheet].Rows

	revenue := decimal.Zero
	daily := map[string]decimal.Decimal{}
	var joined []joinedLine
	for _, o := range completed {
		total := o.Total()
		revenue = revenue.Add(total)
		date := dateCell(o.Date)
		daily[date] = daily[date].Add(total)

		matched := matchRows(customers, "id", o.CustomerID)
		if len(matched) == 0 {
			continue
		}
		customer := customerFromRow(matched[0]).FullName()

		for _, line := range o.Lines {
			prodRows := matchRows(products, "id", line.ProductID)
			if len(prodRows) == 0 {
				continue
			}
			joined = append(joined, joinedLine{
				date:       date,
				customer:   customer,
				product:    productFromRow(prodRows[0]).Name,
				line:       line,
				orderID:    o.ID,
				orderTotal: total,
			})
		}
	}

	sheets := buildReportSheets(daily, joined)
	name := "sales_report_" + b.now().Format("20060102_150405") + ".xlsx"
	path := filepath.Join(b.DataDir(), name)
	group := groupSpec{file: name, sheets: reportSheets}
	if err := saveWorkbook(path, group, sheets); err != nil {
		return types.SalesReport{}, err
	}

	return types.SalesReport{
		Path:    path,
		From:    from,
		To:      to,
		Orders:  len(completed),
		Revenue: revenue,
	}, nil
}

// snapshotGroup loads a group under its lock and releases it
// immediately; report generation reads a point-in-time copy and never
// writes back.
func (b *Backend) snapshotGroup(group groupSpec) (map[string]*Sheet, error) {
	unlock := b.lockGroup(group)
	defer unlock()
	return b.loadGroup(group)
}

// buildReportSheets assembles the four report views.
func buildReportSheets(daily map[string]decimal.Decimal, joined []joinedLine) map[string]*Sheet {
	sheets := make(map[string]*Sheet, len(reportSheets))
	for _, ss := range reportSheets {
		sheets[ss.name] = newSheet(ss.name, ss.columns...)
	}

	dates := make([]string, 0, len(daily))
	for d := range daily {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	for _, d := range dates {
		sheets["Summary"].Append(Row{"date": d, "total": numCell(daily[d])})
	}

	type productAgg struct {
		units   int
		revenue decimal.Decimal
	}
	type customerAgg struct {
		orders map[string]bool
		spent  decimal.Decimal
	}
	byProduct := map[string]*productAgg{}
	byCustomer := map[string]*customerAgg{}

	for _, j := range joined {
		sheets["Detail"].Append(Row{
			"date":        j.date,
			"customer":    j.customer,
			"product":     j.product,
			"quantity":    float64(j.line.Quantity),
			"unit_price":  numCell(j.line.UnitPrice),
			"subtotal":    numCell(j.line.Subtotal()),
			"order_total": numCell(j.orderTotal),
		})

		p := byProduct[j.product]
		if p == nil {
			p = &productAgg{}
			byProduct[j.product] = p
		}
		p.units += j.line.Quantity
		p.revenue = p.revenue.Add(j.line.Subtotal())

		c := byCustomer[j.customer]
		if c == nil {
			c = &customerAgg{orders: map[string]bool{}}
			byCustomer[j.customer] = c
		}
		if !c.orders[j.orderID] {
			c.orders[j.orderID] = true
			c.spent = c.spent.Add(j.orderTotal)
		}
	}

	names := make([]string, 0, len(byProduct))
	for n := range byProduct {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		sheets["By Product"].Append(Row{
			"product":    n,
			"units_sold": float64(byProduct[n].units),
			"revenue":    numCell(byProduct[n].revenue),
		})
	}

	names = names[:0]
	for n := range byCustomer {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		sheets["By Customer"].Append(Row{
			"customer":    n,
			"orders":      float64(len(byCustomer[n].orders)),
			"total_spent": numCell(byCustomer[n].spent),
		})
	}

	return sheets
}
