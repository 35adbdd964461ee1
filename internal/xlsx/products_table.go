package xlsx

import (
	"github.com/opal-works/storebook/pkg/types"
)

// ProductsTable is the repository for the products table-group.
type ProductsTable struct {
	backend *Backend
}

// Get retrieves a product by id.
// Returns ErrNotFound if no row matches.
func (t *ProductsTable) Get(id string) (types.Product, error) {
	if id == "" {
		return types.Product{}, types.ErrInvalidID
	}
	if err := t.backend.ensureAttached(); err != nil {
		return types.Product{}, err
	}
	unlock := t.backend.lockGroup(productsGroup)
	defer unlock()

	sheets, err := t.backend.loadGroup(productsGroup)
	if err != nil {
		return types.Product{}, err
	}
	rows := matchRows(sheets[primarySheet].Rows, "id", id)
	if len(rows) == 0 {
		return types.Product{}, types.ErrNotFound
	}
	return productFromRow(rows[0]), nil
}

// List returns all products matching the filter, in sheet order. The
// price range applies to the sale price.
func (t *ProductsTable) List(filter types.ProductFilter) ([]types.Product, error) {
	if err := t.backend.ensureAttached(); err != nil {
		return nil, err
	}
	unlock := t.backend.lockGroup(productsGroup)
	defer unlock()

	sheets, err := t.backend.loadGroup(productsGroup)
	if err != nil {
		return nil, err
	}

	products := make([]types.Product, 0, len(sheets[primarySheet].Rows))
	for _, row := range sheets[primarySheet].Rows {
		p := productFromRow(row)
		if filter.Name != "" && !containsFold(p.Name, filter.Name) {
			continue
		}
		if filter.MinPrice != nil && p.SalePrice.LessThan(*filter.MinPrice) {
			continue
		}
		if filter.MaxPrice != nil && p.SalePrice.GreaterThan(*filter.MaxPrice) {
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

// Save upserts the product, overwriting an existing row in place or
// appending a new one (generating an id when absent).
func (t *ProductsTable) Save(p *types.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := t.backend.ensureAttached(); err != nil {
		return err
	}
	unlock := t.backend.lockGroup(productsGroup)
	defer unlock()

	sheets, err := t.backend.loadGroup(productsGroup)
	if err != nil {
		return err
	}
	sheet := sheets[primarySheet]

	if p.ID == "" {
		p.ID = newShortID()
		sheet.Append(productRow(*p))
	} else if indexes := matchRowIndexes(sheet.Rows, "id", p.ID); len(indexes) > 0 {
		updateRow(sheet, indexes[0], productRow(*p))
	} else {
		sheet.Append(productRow(*p))
	}

	return t.backend.saveGroup(productsGroup, sheets)
}

// Delete removes the product row.
// Returns ErrNotFound if no row matches.
func (t *ProductsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	if err := t.backend.ensureAttached(); err != nil {
		return err
	}
	unlock := t.backend.lockGroup(productsGroup)
	defer unlock()

	sheets, err := t.backend.loadGroup(productsGroup)
	if err != nil {
		return err
	}
	sheet := sheets[primarySheet]
	indexes := matchRowIndexes(sheet.Rows, "id", id)
	if len(indexes) == 0 {
		return types.ErrNotFound
	}
	sheet.Rows = deleteRows(sheet.Rows, indexes)

	return t.backend.saveGroup(productsGroup, sheets)
}

// productFromRow hydrates a product. Margin is never read from the
// sheet; it is derived from the two prices on demand.
func productFromRow(r Row) types.Product {
	return types.Product{
		ID:            cellString(r["id"]),
		Name:          cellString(r["name"]),
		Description:   cellString(r["description"]),
		PurchasePrice: cellDecimal(r["purchase_price"]),
		SalePrice:     cellDecimal(r["sale_price"]),
	}
}

func productRow(p types.Product) Row {
	return Row{
		"id":             p.ID,
		"name":           p.Name,
		"description":    p.Description,
		"purchase_price": numCell(p.PurchasePrice),
		"sale_price":     numCell(p.SalePrice),
	}
}
