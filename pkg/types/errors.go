package types

import "errors"

// Lookup and backend lifecycle errors. ErrNotFound is not an error
// condition in the usual sense: a missing id is an expected outcome
// and callers are expected to branch on it with errors.Is.
var (
	ErrNotFound        = errors.New("entity not found")
	ErrInvalidID       = errors.New("invalid entity ID")
	ErrBackendDetached = errors.New("backend is not attached")
	ErrAlreadyAttached = errors.New("backend is already attached")
)

// Validation errors. A failed validation aborts the mutation before
// anything is written.
var (
	ErrInvalidName       = errors.New("invalid name")
	ErrInvalidStatus     = errors.New("invalid status value")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInvalidPrice      = errors.New("price must not be negative")
	ErrInvalidDiscount   = errors.New("discount must be between 0 and 100")
	ErrInvalidValidity   = errors.New("validity days must be positive")
	ErrInvalidDateRange  = errors.New("invalid date range")
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrDataDirEmpty   = errors.New("data directory must not be empty")
)
