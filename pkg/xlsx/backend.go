// Package xlsx provides the public API for the workbook storage backend.
// It exposes the factory function for creating backends while keeping
// implementation details internal.
package xlsx

import (
	"github.com/opal-works/storebook/internal/xlsx"
	"github.com/opal-works/storebook/pkg/types"
)

// NewBackend creates a new workbook backend instance.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	store := xlsx.NewBackend()
//	err := store.Attach(types.Config{
//	    Backend: types.BackendWorkbook,
//	    DataDir: ".storebook-data",
//	})
//	defer store.Detach()
func NewBackend() types.Store {
	return xlsx.NewBackend()
}
