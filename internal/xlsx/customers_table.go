package xlsx

import (
	"strings"

	"github.com/opal-works/storebook/pkg/types"
)

// CustomersTable is the repository for the customers table-group.
type CustomersTable struct {
	backend *Backend
}

// Get retrieves a customer by id.
// Returns ErrNotFound if no row matches.
func (t *CustomersTable) Get(id string) (types.Customer, error) {
	if id == "" {
		return types.Customer{}, types.ErrInvalidID
	}
	if err := t.backend.ensureAttached(); err != nil {
		return types.Customer{}, err
	}
	unlock := t.backend.lockGroup(customersGroup)
	defer unlock()

	sheets, err := t.backend.loadGroup(customersGroup)
	if err != nil {
		return types.Customer{}, err
	}
	rows := matchRows(sheets[primarySheet].Rows, "id", id)
	if len(rows) == 0 {
		return types.Customer{}, types.ErrNotFound
	}
	return customerFromRow(rows[0]), nil
}

// List returns all customers matching the filter, in sheet order.
func (t *CustomersTable) List(filter types.CustomerFilter) ([]types.Customer, error) {
	if err := t.backend.ensureAttached(); err != nil {
		return nil, err
	}
	unlock := t.backend.lockGroup(customersGroup)
	defer unlock()

	sheets, err := t.backend.loadGroup(customersGroup)
	if err != nil {
		return nil, err
	}

	customers := make([]types.Customer, 0, len(sheets[primarySheet].Rows))
	for _, row := range sheets[primarySheet].Rows {
		c := customerFromRow(row)
		if filter.FirstName != "" && !containsFold(c.FirstName, filter.FirstName) {
			continue
		}
		if filter.LastName != "" && !containsFold(c.LastName, filter.LastName) {
			continue
		}
		customers = append(customers, c)
	}
	return customers, nil
}

// Save upserts the customer. An existing row (located through the key
// reconciler) has its fields overwritten in place; otherwise a new row
// is appended, generating an id first when the customer has none. The
// generated id is written back to the argument.
func (t *CustomersTable) Save(c *types.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := t.backend.ensureAttached(); err != nil {
		return err
	}
	unlock := t.backend.lockGroup(customersGroup)
	defer unlock()

	sheets, err := t.backend.loadGroup(customersGroup)
	if err != nil {
		return err
	}
	sheet := sheets[primarySheet]

	if c.ID == "" {
		c.ID = newShortID()
		sheet.Append(customerRow(*c))
	} else if indexes := matchRowIndexes(sheet.Rows, "id", c.ID); len(indexes) > 0 {
		updateRow(sheet, indexes[0], customerRow(*c))
	} else {
		sheet.Append(customerRow(*c))
	}

	return t.backend.saveGroup(customersGroup, sheets)
}

// Delete removes the customer row. Hard delete; there is no tombstone.
// Returns ErrNotFound if no row matches.
func (t *CustomersTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	if err := t.backend.ensureAttached(); err != nil {
		return err
	}
	unlock := t.backend.lockGroup(customersGroup)
	defer unlock()

	sheets, err := t.backend.loadGroup(customersGroup)
	if err != nil {
		return err
	}
	sheet := sheets[primarySheet]
	indexes := matchRowIndexes(sheet.Rows, "id", id)
	if len(indexes) == 0 {
		return types.ErrNotFound
	}
	sheet.Rows = deleteRows(sheet.Rows, indexes)

	return t.backend.saveGroup(customersGroup, sheets)
}

func customerFromRow(r Row) types.Customer {
	return types.Customer{
		ID:        cellString(r["id"]),
		FirstName: cellString(r["first_name"]),
		LastName:  cellString(r["last_name"]),
		Email:     cellString(r["email"]),
		Phone:     cellString(r["phone"]),
		Address:   cellString(r["address"]),
	}
}

func customerRow(c types.Customer) Row {
	return Row{
		"id":         c.ID,
		"first_name": c.FirstName,
		"last_name":  c.LastName,
		"email":      c.Email,
		"phone":      c.Phone,
		"address":    c.Address,
	}
}

// updateRow overwrites the cells of an existing row in place,
// union-extending the sheet with any new columns.
func updateRow(s *Sheet, index int, values Row) {
	for col, v := range values {
		s.EnsureColumn(col)
		s.Rows[index][col] = v
	}
}

// containsFold reports whether s contains substr, case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
