package xlsx

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// dateLayout is the canonical cell format for dates.
const dateLayout = "2006-01-02"

// Row maps column name to a scalar cell value. Values are string,
// float64, or nil (absent). The typing mirrors what loading applies:
// numeric-looking text becomes float64, empty cells become nil.
type Row map[string]any

// Sheet is one named table inside a workbook group: an ordered column
// list plus rows keyed by those columns.
type Sheet struct {
	Name    string
	Columns []string
	Rows    []Row
}

func newSheet(name string, columns ...string) *Sheet {
	return &Sheet{Name: name, Columns: append([]string(nil), columns...)}
}

// EnsureColumn adds the column to the sheet if it is not already
// present. Existing rows simply read as nil for the new column.
func (s *Sheet) EnsureColumn(name string) {
	for _, c := range s.Columns {
		if c == name {
			return
		}
	}
	s.Columns = append(s.Columns, name)
}

// Append adds a row, union-extending the column set with any columns
// the row carries that the sheet has not seen. Unseen columns are added
// in sorted order to keep the layout deterministic.
func (s *Sheet) Append(r Row) {
	var unseen []string
	for col := range r {
		known := false
		for _, c := range s.Columns {
			if c == col {
				known = true
				break
			}
		}
		if !known {
			unseen = append(unseen, col)
		}
	}
	sort.Strings(unseen)
	s.Columns = append(s.Columns, unseen...)
	s.Rows = append(s.Rows, r)
}

// deleteRows removes the rows at the given indexes, preserving order of
// the rest.
func deleteRows(rows []Row, indexes []int) []Row {
	if len(indexes) == 0 {
		return rows
	}
	drop := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		drop[i] = true
	}
	kept := rows[:0]
	for i, r := range rows {
		if !drop[i] {
			kept = append(kept, r)
		}
	}
	return kept
}

// inferCell maps a raw cell string to its in-memory value. Empty cells
// become nil and numeric-looking text becomes float64; this reproduces
// the dtype inference the stored files were written under, and is the
// origin of the id type drift the reconciler papers over.
func inferCell(raw string) any {
	if raw == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

// cellString renders a cell value as text. Numbers use the shortest
// exact representation so that 42.0 and "42" compare equal.
func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprint(t)
	}
}

// cellFloat extracts a numeric cell value, parsing text if needed.
func cellFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// cellInt extracts an integer cell value.
func cellInt(v any) int {
	f, ok := cellFloat(v)
	if !ok {
		return 0
	}
	return int(f)
}

// cellDecimal extracts a monetary cell value. Unparseable or absent
// cells read as zero.
func cellDecimal(v any) decimal.Decimal {
	switch t := v.(type) {
	case float64:
		return decimal.NewFromFloat(t)
	case int:
		return decimal.NewFromInt(int64(t))
	case string:
		if d, err := decimal.NewFromString(t); err == nil {
			return d
		}
	}
	return decimal.Zero
}

// numCell converts a monetary value to the numeric cell representation.
func numCell(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// dateCell formats a date for storage.
func dateCell(t time.Time) string {
	return t.Format(dateLayout)
}

// cellDate parses a date cell. Returns false for absent or malformed
// values.
func cellDate(v any) (time.Time, bool) {
	s := cellString(v)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
