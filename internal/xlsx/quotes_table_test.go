package xlsx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-works/storebook/pkg/types"
)

func TestQuoteRoundTrip(t *testing.T) {
	b := newTestBackend(t)

	q := types.Quote{CustomerID: "c1", Notes: "spring promo"}
	require.NoError(t, q.AddLine(types.QuoteLine{Description: "Shelving", Quantity: 2, UnitPrice: dec("50")}))
	require.NoError(t, q.AddLine(types.QuoteLine{Description: "Install", Quantity: 1, UnitPrice: dec("40"), DiscountPercent: dec("50")}))
	require.NoError(t, b.Quotes().Save(&q))
	require.NotEmpty(t, q.ID)
	assert.Equal(t, types.QuoteStatusPending, q.Status)
	assert.Equal(t, types.DefaultValidityDays, q.ValidityDays)

	got, err := b.Quotes().Get(q.ID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 2)
	assert.True(t, got.Total().Equal(dec("120")), "total = %s", got.Total())
	assert.Equal(t, "spring promo", got.Notes)
}

func TestQuoteAcceptCreatesOrder(t *testing.T) {
	b := newTestBackend(t)

	q := types.Quote{CustomerID: "c1"}
	require.NoError(t, q.AddLine(types.QuoteLine{Description: "Shelving", Quantity: 2, UnitPrice: dec("50")}))
	require.NoError(t, q.AddLine(types.QuoteLine{Description: "Install", Quantity: 1, UnitPrice: dec("20")}))
	require.NoError(t, b.Quotes().Save(&q))

	order, err := b.Quotes().Accept(q.ID)
	require.NoError(t, err)
	require.NotEmpty(t, order.ID)
	assert.Equal(t, types.OrderStatusPending, order.Status)
	assert.Equal(t, "c1", order.CustomerID)
	assert.True(t, order.Total().Equal(dec("120")), "order total = %s", order.Total())

	// The order is persisted with the quote's lines.
	saved, err := b.Orders().Get(order.ID)
	require.NoError(t, err)
	require.Len(t, saved.Lines, 2)
	assert.True(t, saved.Total().Equal(dec("120")))

	// And the quote itself is now Accepted.
	got, err := b.Quotes().Get(q.ID)
	require.NoError(t, err)
	assert.Equal(t, types.QuoteStatusAccepted, got.Status)

	// A second accept is an invalid transition.
	_, err = b.Quotes().Accept(q.ID)
	assert.ErrorIs(t, err, types.ErrInvalidTransition)
}

func TestQuoteReject(t *testing.T) {
	b := newTestBackend(t)

	q := types.Quote{CustomerID: "c1"}
	require.NoError(t, q.AddLine(types.QuoteLine{Description: "Shelving", Quantity: 1, UnitPrice: dec("10")}))
	require.NoError(t, b.Quotes().Save(&q))

	require.NoError(t, b.Quotes().Reject(q.ID))

	got, err := b.Quotes().Get(q.ID)
	require.NoError(t, err)
	assert.Equal(t, types.QuoteStatusRejected, got.Status)

	// No order got created as a side effect.
	orders, err := b.Orders().List(types.OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, orders)

	assert.ErrorIs(t, b.Quotes().Reject(q.ID), types.ErrInvalidTransition)
}

func TestQuoteSaveReplacesItems(t *testing.T) {
	b := newTestBackend(t)

	q := types.Quote{CustomerID: "c1"}
	require.NoError(t, q.AddLine(types.QuoteLine{Description: "A", Quantity: 1, UnitPrice: dec("1")}))
	require.NoError(t, q.AddLine(types.QuoteLine{Description: "B", Quantity: 1, UnitPrice: dec("2")}))
	require.NoError(t, b.Quotes().Save(&q))
	require.NoError(t, b.Quotes().Save(&q))

	sheets, err := b.loadGroup(quotesGroup)
	require.NoError(t, err)
	assert.Len(t, sheets[primarySheet].Rows, 1)
	assert.Len(t, sheets[quoteItemsSheet].Rows, 2)
}

func TestQuoteDeleteCascades(t *testing.T) {
	b := newTestBackend(t)

	q := types.Quote{CustomerID: "c1"}
	require.NoError(t, q.AddLine(types.QuoteLine{Description: "A", Quantity: 1, UnitPrice: dec("1")}))
	require.NoError(t, b.Quotes().Save(&q))

	require.NoError(t, b.Quotes().Delete(q.ID))
	_, err := b.Quotes().Get(q.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)

	sheets, err := b.loadGroup(quotesGroup)
	require.NoError(t, err)
	assert.Empty(t, sheets[quoteItemsSheet].Rows)
}

func TestQuoteListFilterByStatus(t *testing.T) {
	b := newTestBackend(t)

	q1 := types.Quote{CustomerID: "c1"}
	require.NoError(t, q1.AddLine(types.QuoteLine{Description: "A", Quantity: 1, UnitPrice: dec("1")}))
	require.NoError(t, b.Quotes().Save(&q1))

	q2 := types.Quote{CustomerID: "c2"}
	require.NoError(t, q2.AddLine(types.QuoteLine{Description: "B", Quantity: 1, UnitPrice: dec("2")}))
	require.NoError(t, b.Quotes().Save(&q2))
	require.NoError(t, b.Quotes().Reject(q2.ID))

	pending, err := b.Quotes().List(types.QuoteFilter{Status: types.QuoteStatusPending})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, q1.ID, pending[0].ID)

	rejected, err := b.Quotes().List(types.QuoteFilter{Status: types.QuoteStatusRejected})
	require.NoError(t, err)
	require.Len(t, rejected, 1)
	assert.Equal(t, q2.ID, rejected[0].ID)
}
