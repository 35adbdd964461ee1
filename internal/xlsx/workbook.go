package xlsx

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Sheet names. Primary sheets keep the default workbook name the files
// were originally written under; child sheets carry their historical
// names.
const (
	primarySheet      = "Sheet1"
	orderDetailsSheet = "details"
	quoteItemsSheet   = "items"
)

// sheetSpec describes one sheet of a table-group: its name and the
// schema columns an empty sheet is initialized with.
type sheetSpec struct {
	name    string
	columns []string
}

// groupSpec describes a table-group: one workbook file holding a
// primary sheet and, for aggregate entities, a child sheet.
type groupSpec struct {
	file   string
	sheets []sheetSpec
}

var (
	customersGroup = groupSpec{
		file: "customers.xlsx",
		sheets: []sheetSpec{
			{name: primarySheet, columns: []string{"id", "first_name", "last_name", "email", "phone", "address"}},
		},
	}
	productsGroup = groupSpec{
		file: "products.xlsx",
		sheets: []sheetSpec{
			{name: primarySheet, columns: []string{"id", "name", "description", "purchase_price", "sale_price"}},
		},
	}
	ordersGroup = groupSpec{
		file: "orders.xlsx",
		sheets: []sheetSpec{
			{name: primarySheet, columns: []string{"id", "customer_id", "date", "status", "total", "notes"}},
			{name: orderDetailsSheet, columns: []string{"order_id", "line_id", "product_id", "description", "quantity", "unit_price", "discount_percent", "subtotal"}},
		},
	}
	quotesGroup = groupSpec{
		file: "quotes.xlsx",
		sheets: []sheetSpec{
			{name: primarySheet, columns: []string{"id", "customer_id", "date", "validity_days", "total", "notes", "status"}},
			{name: quoteItemsSheet, columns: []string{"quote_id", "line_id", "description", "quantity", "unit_price", "discount_percent", "subtotal"}},
		},
	}
)

// allGroups lists every table-group the backend manages.
var allGroups = []groupSpec{customersGroup, productsGroup, ordersGroup, quotesGroup}

// emptySheets returns schema-initialized empty sheets for the group.
func emptySheets(group groupSpec) map[string]*Sheet {
	sheets := make(map[string]*Sheet, len(group.sheets))
	for _, ss := range group.sheets {
		sheets[ss.name] = newSheet(ss.name, ss.columns...)
	}
	return sheets
}

// loadWorkbook reads every sheet of the group from path. A missing file
// or missing sheet yields schema-initialized empty sheets, never an
// error; only real I/O or format failures surface, as *StorageError.
func loadWorkbook(path string, group groupSpec) (map[string]*Sheet, error) {
	sheets := emptySheets(group)

	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return sheets, nil
		}
		return nil, storageError("open", path, err)
	}
	defer f.Close()

	for _, ss := range group.sheets {
		idx, err := f.GetSheetIndex(ss.name)
		if err != nil || idx < 0 {
			continue
		}
		raw, err := f.GetRows(ss.name)
		if err != nil {
			return nil, storageError("read", path, err)
		}
		if len(raw) == 0 {
			continue
		}

		sheet := sheets[ss.name]
		header := raw[0]
		for _, col := range header {
			if col != "" {
				sheet.EnsureColumn(col)
			}
		}
		for _, cells := range raw[1:] {
			row := make(Row, len(header))
			empty := true
			for i, col := range header {
				if col == "" {
					continue
				}
				var cell string
				if i < len(cells) {
					cell = cells[i]
				}
				v := inferCell(cell)
				if v != nil {
					empty = false
				}
				row[col] = v
			}
			if empty {
				continue
			}
			sheet.Rows = append(sheet.Rows, row)
		}
	}
	return sheets, nil
}

// saveWorkbook serializes every sheet of the group back to path in one
// operation, fully overwriting prior content. The workbook is built in
// memory and written to a temp file that is renamed over the target, so
// a failed serialization leaves the previous file untouched.
func saveWorkbook(path string, group groupSpec, sheets map[string]*Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, ss := range group.sheets {
		sheet := sheets[ss.name]
		if sheet == nil {
			sheet = newSheet(ss.name, ss.columns...)
		}

		if i == 0 {
			if ss.name != primarySheet {
				if err := f.SetSheetName(primarySheet, ss.name); err != nil {
					return storageError("save", path, err)
				}
			}
		} else {
			if _, err := f.NewSheet(ss.name); err != nil {
				return storageError("save", path, err)
			}
		}

		header := make([]any, len(sheet.Columns))
		for j, col := range sheet.Columns {
			header[j] = col
		}
		if err := f.SetSheetRow(ss.name, "A1", &header); err != nil {
			return storageError("save", path, err)
		}
		for r, row := range sheet.Rows {
			values := make([]any, len(sheet.Columns))
			for j, col := range sheet.Columns {
				values[j] = row[col]
			}
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return storageError("save", path, err)
			}
			if err := f.SetSheetRow(ss.name, cell, &values); err != nil {
				return storageError("save", path, err)
			}
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".storebook-*.xlsx")
	if err != nil {
		return storageError("save", path, err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	if err := f.SaveAs(tmpPath); err != nil {
		os.Remove(tmpPath)
		return storageError("save", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return storageError("rename", path, err)
	}
	return nil
}
