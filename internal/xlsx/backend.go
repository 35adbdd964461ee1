// Package xlsx implements the workbook storage backend for storebook.
//
// Each entity family persists in its own table-group: a flat .xlsx
// workbook under the data directory holding a primary sheet and, for
// aggregate entities, a child sheet of line rows. Every mutation runs
// as a full load, mutate in memory, rewrite of the whole group. A
// per-group mutex is held across that span, so concurrent callers
// within one process cannot interleave; concurrent processes remain
// last-writer-wins, which this design knowingly accepts for a
// single-user tool.
package xlsx

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/opal-works/storebook/pkg/types"
)

// Backend owns the data directory and hands out table accessors for
// the four entity families.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	dataDir  string

	// One lock per table-group, held across each load-mutate-save span.
	groupLocks map[string]*sync.Mutex

	// now is the clock used for generated dates and report names;
	// overridable in tests.
	now func() time.Time

	customers *CustomersTable
	products  *ProductsTable
	orders    *OrdersTable
	quotes    *QuotesTable
}

// NewBackend creates a backend. It is not attached; call Attach with a
// Config before using the tables.
func NewBackend() *Backend {
	b := &Backend{
		groupLocks: make(map[string]*sync.Mutex, len(allGroups)),
		now:        time.Now,
	}
	for _, g := range allGroups {
		b.groupLocks[g.file] = &sync.Mutex{}
	}
	b.customers = &CustomersTable{backend: b}
	b.products = &ProductsTable{backend: b}
	b.orders = &OrdersTable{backend: b}
	b.quotes = &QuotesTable{backend: b}
	return b
}

// Customers returns the customer table accessor.
func (b *Backend) Customers() types.CustomerStore { return b.customers }

// Products returns the product table accessor.
func (b *Backend) Products() types.ProductStore { return b.products }

// Orders returns the order table accessor.
func (b *Backend) Orders() types.OrderStore { return b.orders }

// Quotes returns the quote table accessor.
func (b *Backend) Quotes() types.QuoteStore { return b.quotes }

// Attach initializes the backend with the given configuration. Creates
// the data directory and schema-initialized empty workbooks for any
// table-group file that does not exist yet, so absence is never an
// error on later access.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
		return storageError("mkdir", config.DataDir, err)
	}

	for _, g := range allGroups {
		path := filepath.Join(config.DataDir, g.file)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return storageError("stat", path, err)
		}
		if err := saveWorkbook(path, g, emptySheets(g)); err != nil {
			return err
		}
	}

	b.config = config
	b.dataDir = config.DataDir
	b.attached = true
	return nil
}

// Detach releases the backend. After Detach all table operations
// return ErrBackendDetached. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.attached = false
	b.dataDir = ""
	return nil
}

// DataDir returns the attached data directory, or "" when detached.
func (b *Backend) DataDir() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dataDir
}

func (b *Backend) ensureAttached() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return types.ErrBackendDetached
	}
	return nil
}

// lockGroup acquires the group's exclusive lock and returns the unlock
// function. The lock must span the group's whole load-mutate-save
// sequence.
func (b *Backend) lockGroup(group groupSpec) func() {
	mu := b.groupLocks[group.file]
	mu.Lock()
	return mu.Unlock
}

func (b *Backend) groupPath(group groupSpec) string {
	return filepath.Join(b.DataDir(), group.file)
}

func (b *Backend) loadGroup(group groupSpec) (map[string]*Sheet, error) {
	return loadWorkbook(b.groupPath(group), group)
}

func (b *Backend) saveGroup(group groupSpec, sheets map[string]*Sheet) error {
	return saveWorkbook(b.groupPath(group), group, sheets)
}

// newShortID generates an eight-character random id token (the first
// group of a UUID v4). No collision check beyond the token being fresh,
// which is enough at this data size.
func newShortID() string {
	return uuid.NewString()[:8]
}
