// Package types defines the entity families managed by storebook
// (customers, products, orders, quotes), their derived-value rules,
// the standard errors, and the backend configuration.
//
// Entities are plain structs with value methods for everything that is
// derivable: order and quote totals are always computed from the line
// collection, product margin from the two prices. Stored totals exist
// in the workbooks for read convenience only and are never trusted.
package types
