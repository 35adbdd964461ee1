// Shared helpers for storebook CLI commands.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/opal-works/storebook/pkg/types"
	"github.com/opal-works/storebook/pkg/xlsx"
)

// errBadArgument marks malformed command-line input: dates, prices,
// item specs. Wrapped errors carry the detail.
var errBadArgument = errors.New("bad argument")

// cliDateLayout is the date format accepted and printed by the CLI.
const cliDateLayout = "2006-01-02"

// attachBackend resolves the data directory, creates a workbook backend
// and attaches it. The caller must defer store.Detach().
func attachBackend() (types.Store, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend: types.BackendWorkbook,
		DataDir: dataDir,
	}

	store := xlsx.NewBackend()
	if err := store.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach backend: %w", err)
	}

	return store, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// newTabWriter returns a stdout tabwriter for aligned table output.
// The caller must Flush it.
func newTabWriter() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

// parseDate parses a YYYY-MM-DD argument. An empty string yields the
// zero time, which filters treat as unbounded.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(cliDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q (expected YYYY-MM-DD)", errBadArgument, s)
	}
	return d, nil
}

// parsePrice parses a decimal price argument.
func parsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: price %q", errBadArgument, s)
	}
	return d, nil
}

// parseOrderItem parses a --item spec of the form
// <product-id>:<quantity>[:<discount-percent>]. The product's name and
// sale price fill in the line's description and unit price.
func parseOrderItem(spec string) (productID string, quantity int, discount decimal.Decimal, err error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return "", 0, decimal.Decimal{}, fmt.Errorf("%w: item %q (expected product:quantity[:discount])", errBadArgument, spec)
	}

	productID = parts[0]
	quantity, err = strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, decimal.Decimal{}, fmt.Errorf("%w: item quantity %q", errBadArgument, parts[1])
	}

	if len(parts) == 3 {
		discount, err = decimal.NewFromString(parts[2])
		if err != nil {
			return "", 0, decimal.Decimal{}, fmt.Errorf("%w: item discount %q", errBadArgument, parts[2])
		}
	}
	return productID, quantity, discount, nil
}

// parseQuoteItem parses a --item spec of the form
// <description>:<quantity>:<unit-price>[:<discount-percent>].
// Descriptions must not contain colons.
func parseQuoteItem(spec string) (types.QuoteLine, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return types.QuoteLine{}, fmt.Errorf("%w: item %q (expected description:quantity:price[:discount])", errBadArgument, spec)
	}

	quantity, err := strconv.Atoi(parts[1])
	if err != nil {
		return types.QuoteLine{}, fmt.Errorf("%w: item quantity %q", errBadArgument, parts[1])
	}
	price, err := decimal.NewFromString(parts[2])
	if err != nil {
		return types.QuoteLine{}, fmt.Errorf("%w: item price %q", errBadArgument, parts[2])
	}

	line := types.QuoteLine{
		Description: parts[0],
		Quantity:    quantity,
		UnitPrice:   price,
	}
	if len(parts) == 4 {
		line.DiscountPercent, err = decimal.NewFromString(parts[3])
		if err != nil {
			return types.QuoteLine{}, fmt.Errorf("%w: item discount %q", errBadArgument, parts[3])
		}
	}
	return line, nil
}

// formatDate renders a date for table output; zero dates render empty.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(cliDateLayout)
}
