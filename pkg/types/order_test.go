package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderLineSubtotal(t *testing.T) {
	tests := []struct {
		name     string
		qty      int
		unit     string
		discount string
		want     string
	}{
		{name: "no discount", qty: 3, unit: "2", discount: "0", want: "6"},
		{name: "ten percent off", qty: 2, unit: "50", discount: "10", want: "90"},
		{name: "full discount", qty: 5, unit: "9.99", discount: "100", want: "0"},
		{name: "fractional price", qty: 4, unit: "0.25", discount: "0", want: "1"},
		{name: "half discount", qty: 1, unit: "120", discount: "50", want: "60"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := OrderLine{
				ID:              1,
				Quantity:        tt.qty,
				UnitPrice:       dec(tt.unit),
				DiscountPercent: dec(tt.discount),
			}
			assert.True(t, l.Subtotal().Equal(dec(tt.want)),
				"subtotal = %s, want %s", l.Subtotal(), tt.want)
		})
	}
}

func TestOrderLineValidate(t *testing.T) {
	tests := []struct {
		name    string
		line    OrderLine
		wantErr error
	}{
		{
			name: "valid line",
			line: OrderLine{Quantity: 1, UnitPrice: dec("2"), DiscountPercent: dec("0")},
		},
		{
			name:    "zero quantity rejected",
			line:    OrderLine{Quantity: 0, UnitPrice: dec("2")},
			wantErr: ErrInvalidQuantity,
		},
		{
			name:    "negative quantity rejected",
			line:    OrderLine{Quantity: -3, UnitPrice: dec("2")},
			wantErr: ErrInvalidQuantity,
		},
		{
			name:    "negative price rejected",
			line:    OrderLine{Quantity: 1, UnitPrice: dec("-2")},
			wantErr: ErrInvalidPrice,
		},
		{
			name:    "discount above 100 rejected",
			line:    OrderLine{Quantity: 1, UnitPrice: dec("2"), DiscountPercent: dec("101")},
			wantErr: ErrInvalidDiscount,
		},
		{
			name:    "negative discount rejected",
			line:    OrderLine{Quantity: 1, UnitPrice: dec("2"), DiscountPercent: dec("-5")},
			wantErr: ErrInvalidDiscount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.line.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOrderTotalTracksLines(t *testing.T) {
	o := Order{ID: "o1", Status: OrderStatusPending}
	assert.True(t, o.Total().IsZero())

	require.NoError(t, o.AddLine(OrderLine{
		ProductID: "p1", Description: "Bread", Quantity: 3, UnitPrice: dec("2"),
	}))
	require.NoError(t, o.AddLine(OrderLine{
		ProductID: "p2", Description: "Milk", Quantity: 2, UnitPrice: dec("1.5"),
	}))

	assert.True(t, o.Total().Equal(dec("9")), "total = %s", o.Total())
	assert.Equal(t, 1, o.Lines[0].ID)
	assert.Equal(t, 2, o.Lines[1].ID)

	// Removing a line reindexes the remaining line IDs from 1.
	require.NoError(t, o.RemoveLine(1))
	assert.Len(t, o.Lines, 1)
	assert.Equal(t, 1, o.Lines[0].ID)
	assert.Equal(t, "Milk", o.Lines[0].Description)
	assert.True(t, o.Total().Equal(dec("3")), "total = %s", o.Total())

	require.NoError(t, o.RemoveLine(1))
	assert.Empty(t, o.Lines)
	assert.True(t, o.Total().IsZero())
}

func TestOrderRemoveLineNotFound(t *testing.T) {
	o := Order{ID: "o1"}
	require.NoError(t, o.AddLine(OrderLine{Quantity: 1, UnitPrice: dec("1")}))
	assert.ErrorIs(t, o.RemoveLine(7), ErrNotFound)
	assert.Len(t, o.Lines, 1)
}

func TestOrderAddLineRejectsInvalid(t *testing.T) {
	o := Order{ID: "o1"}
	assert.ErrorIs(t, o.AddLine(OrderLine{Quantity: 0, UnitPrice: dec("1")}), ErrInvalidQuantity)
	assert.Empty(t, o.Lines)
}

func TestOrderSetStatus(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		wantErr error
	}{
		{name: "pending", target: OrderStatusPending},
		{name: "in progress", target: OrderStatusInProgress},
		{name: "completed", target: OrderStatusCompleted},
		{name: "cancelled", target: OrderStatusCancelled},
		{name: "unknown rejected", target: "Shipped", wantErr: ErrInvalidStatus},
		{name: "empty rejected", target: "", wantErr: ErrInvalidStatus},
		{name: "wrong case rejected", target: "pending", wantErr: ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Order{ID: "o1", Status: OrderStatusPending}
			err := o.SetStatus(tt.target)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, OrderStatusPending, o.Status)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.target, o.Status)
			}
		})
	}
}
