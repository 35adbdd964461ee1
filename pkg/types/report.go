package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesReport describes the artifact produced by generating a sales
// report. When no completed order falls in the requested range, NoData
// is true, no file is written and Path is empty. This is an expected
// outcome, not an error.
type SalesReport struct {
	Path    string          `json:"path,omitempty"`
	NoData  bool            `json:"no_data"`
	From    time.Time       `json:"from"`
	To      time.Time       `json:"to"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}
