package xlsx

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-works/storebook/pkg/types"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSalesReportNoData(t *testing.T) {
	b := newTestBackend(t)

	// A pending order inside the range must not count.
	o := types.Order{CustomerID: "c1", Date: day(2024, 1, 10)}
	require.NoError(t, o.AddLine(types.OrderLine{Description: "Bread", Quantity: 1, UnitPrice: dec("2")}))
	require.NoError(t, b.Orders().Save(&o))

	report, err := b.GenerateSalesReport(day(2024, 1, 1), day(2024, 1, 31))
	require.NoError(t, err, "no sales is a result, not an error")
	assert.True(t, report.NoData)
	assert.Empty(t, report.Path)

	// No artifact was written.
	entries, err := os.ReadDir(b.DataDir())
	require.NoError(t, err)
	assert.Len(t, entries, len(allGroups))
}

func TestSalesReportInvalidRange(t *testing.T) {
	b := newTestBackend(t)
	_, err := b.GenerateSalesReport(day(2024, 2, 1), day(2024, 1, 1))
	assert.ErrorIs(t, err, types.ErrInvalidDateRange)
}

func TestSalesReportGeneratesArtifact(t *testing.T) {
	b := newTestBackend(t)

	alice := types.Customer{FirstName: "Alice", LastName: "Smith"}
	require.NoError(t, b.Customers().Save(&alice))
	bob := types.Customer{FirstName: "Bob", LastName: "Jones"}
	require.NoError(t, b.Customers().Save(&bob))

	bread := types.Product{Name: "Bread", PurchasePrice: dec("1"), SalePrice: dec("2")}
	require.NoError(t, b.Products().Save(&bread))
	milk := types.Product{Name: "Milk", PurchasePrice: dec("0.8"), SalePrice: dec("1.5")}
	require.NoError(t, b.Products().Save(&milk))

	mkOrder := func(customer types.Customer, date time.Time, lines ...types.OrderLine) {
		o := types.Order{CustomerID: customer.ID, Date: date, Status: types.OrderStatusCompleted}
		for _, l := range lines {
			require.NoError(t, o.AddLine(l))
		}
		require.NoError(t, b.Orders().Save(&o))
	}
	mkOrder(alice, day(2024, 1, 10),
		types.OrderLine{ProductID: bread.ID, Description: "Bread", Quantity: 3, UnitPrice: dec("2")},
	)
	mkOrder(alice, day(2024, 1, 12),
		types.OrderLine{ProductID: milk.ID, Description: "Milk", Quantity: 2, UnitPrice: dec("1.5")},
	)
	mkOrder(bob, day(2024, 1, 10),
		types.OrderLine{ProductID: bread.ID, Description: "Bread", Quantity: 1, UnitPrice: dec("2")},
	)
	// Outside the range: must be excluded.
	mkOrder(bob, day(2024, 3, 1),
		types.OrderLine{ProductID: bread.ID, Description: "Bread", Quantity: 10, UnitPrice: dec("2")},
	)

	report, err := b.GenerateSalesReport(day(2024, 1, 1), day(2024, 1, 31))
	require.NoError(t, err)
	assert.False(t, report.NoData)
	assert.Equal(t, 3, report.Orders)
	assert.True(t, report.Revenue.Equal(dec("11")), "revenue = %s", report.Revenue)
	require.NotEmpty(t, report.Path)

	_, err = os.Stat(report.Path)
	require.NoError(t, err, "artifact file must exist")

	group := groupSpec{file: report.Path, sheets: reportSheets}
	sheets, err := loadWorkbook(report.Path, group)
	require.NoError(t, err)

	summary := sheets["Summary"]
	require.Len(t, summary.Rows, 2)
	assert.Equal(t, "2024-01-10", summary.Rows[0]["date"])
	assert.Equal(t, float64(8), summary.Rows[0]["total"])
	assert.Equal(t, "2024-01-12", summary.Rows[1]["date"])
	assert.Equal(t, float64(3), summary.Rows[1]["total"])

	detail := sheets["Detail"]
	assert.Len(t, detail.Rows, 3)

	byProduct := sheets["By Product"]
	require.Len(t, byProduct.Rows, 2)
	assert.Equal(t, "Bread", byProduct.Rows[0]["product"])
	assert.Equal(t, float64(4), byProduct.Rows[0]["units_sold"])
	assert.Equal(t, float64(8), byProduct.Rows[0]["revenue"])
	assert.Equal(t, "Milk", byProduct.Rows[1]["product"])

	byCustomer := sheets["By Customer"]
	require.Len(t, byCustomer.Rows, 2)
	assert.Equal(t, "Alice Smith", byCustomer.Rows[0]["customer"])
	assert.Equal(t, float64(2), byCustomer.Rows[0]["orders"])
	assert.Equal(t, float64(9), byCustomer.Rows[0]["total_spent"])
	assert.Equal(t, "Bob Jones", byCustomer.Rows[1]["customer"])
	assert.Equal(t, float64(1), byCustomer.Rows[1]["orders"])
}

func TestSalesReportInnerJoinDropsUnmatched(t *testing.T) {
	b := newTestBackend(t)

	alice := types.Customer{FirstName: "Alice", LastName: "Smith"}
	require.NoError(t, b.Customers().Save(&alice))

	// One line references a product that does not exist; the order's
	// customer does. The dangling line vanishes from the joined views
	// but the order still counts in the summary.
	o := types.Order{CustomerID: alice.ID, Date: day(2024, 1, 10), Status: types.OrderStatusCompleted}
	require.NoError(t, o.AddLine(types.OrderLine{ProductID: "ghost", Description: "Gone", Quantity: 1, UnitPrice: dec("5")}))
	require.NoError(t, b.Orders().Save(&o))

	report, err := b.GenerateSalesReport(day(2024, 1, 1), day(2024, 1, 31))
	require.NoError(t, err)
	require.False(t, report.NoData)

	sheets, err := loadWorkbook(report.Path, groupSpec{file: report.Path, sheets: reportSheets})
	require.NoError(t, err)
	assert.Empty(t, sheets["Detail"].Rows)
	assert.Empty(t, sheets["By Product"].Rows)
	require.Len(t, sheets["Summary"].Rows, 1)
	assert.Equal(t, float64(5), sheets["Summary"].Rows[0]["total"])
}
