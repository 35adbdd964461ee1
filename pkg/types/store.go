package types

import "time"

// Store is the persistence interface backends implement. A Store must be
// attached before any table or report operation and detached when done.
type Store interface {
	// Attach validates the configuration, creates the data directory if
	// needed and bootstraps any missing workbook files.
	Attach(config Config) error

	// Detach releases the store. Detaching a store that was never
	// attached is a no-op.
	Detach() error

	// DataDir returns the directory the attached store reads and writes.
	DataDir() string

	Customers() CustomerStore
	Products() ProductStore
	Orders() OrderStore
	Quotes() QuoteStore

	// GenerateSalesReport writes a report workbook covering Completed
	// orders in the inclusive range [from, to].
	GenerateSalesReport(from, to time.Time) (SalesReport, error)
}

// CustomerStore is the customer table contract.
type CustomerStore interface {
	Get(id string) (Customer, error)
	List(filter CustomerFilter) ([]Customer, error)
	Save(c *Customer) error
	Delete(id string) error
}

// ProductStore is the product table contract.
type ProductStore interface {
	Get(id string) (Product, error)
	List(filter ProductFilter) ([]Product, error)
	Save(p *Product) error
	Delete(id string) error
}

// OrderStore is the order table contract. Orders carry their lines; Save
// and Delete keep the child sheet consistent with the primary sheet.
type OrderStore interface {
	Get(id string) (Order, error)
	List(filter OrderFilter) ([]Order, error)
	Save(o *Order) error
	Delete(id string) error
	SetStatus(id, status string) error
}

// QuoteStore is the quote table contract.
type QuoteStore interface {
	Get(id string) (Quote, error)
	List(filter QuoteFilter) ([]Quote, error)
	Save(q *Quote) error
	Delete(id string) error

	// Accept transitions a pending quote to Accepted and creates the
	// corresponding order.
	Accept(id string) (Order, error)

	// Reject transitions a pending quote to Rejected.
	Reject(id string) error
}
