package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestProductMargin(t *testing.T) {
	tests := []struct {
		name     string
		purchase string
		sale     string
		want     string
	}{
		{name: "fifty percent margin", purchase: "2", sale: "3", want: "50"},
		{name: "zero purchase price", purchase: "0", sale: "9.99", want: "0"},
		{name: "negative purchase price", purchase: "-1", sale: "5", want: "0"},
		{name: "selling at cost", purchase: "4", sale: "4", want: "0"},
		{name: "selling below cost", purchase: "4", sale: "2", want: "-50"},
		{name: "fractional prices", purchase: "1.5", sale: "2.25", want: "50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{
				ID:            "p1",
				Name:          "Bread",
				PurchasePrice: dec(tt.purchase),
				SalePrice:     dec(tt.sale),
			}
			assert.True(t, p.Margin().Equal(dec(tt.want)),
				"margin = %s, want %s", p.Margin(), tt.want)
		})
	}
}

func TestProductValidate(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		wantErr error
	}{
		{
			name:    "valid product",
			product: Product{Name: "Bread", PurchasePrice: dec("1"), SalePrice: dec("2")},
		},
		{
			name:    "empty name rejected",
			product: Product{Name: "  ", PurchasePrice: dec("1"), SalePrice: dec("2")},
			wantErr: ErrInvalidName,
		},
		{
			name:    "negative purchase price rejected",
			product: Product{Name: "Bread", PurchasePrice: dec("-1"), SalePrice: dec("2")},
			wantErr: ErrInvalidPrice,
		},
		{
			name:    "negative sale price rejected",
			product: Product{Name: "Bread", PurchasePrice: dec("1"), SalePrice: dec("-2")},
			wantErr: ErrInvalidPrice,
		},
		{
			name:    "free product allowed",
			product: Product{Name: "Sample", PurchasePrice: dec("0"), SalePrice: dec("0")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.product.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
