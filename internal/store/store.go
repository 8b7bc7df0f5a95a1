// Package store holds the gorm-backed Credential Store and Product Catalog.
package store

import "errors"

var (
	// ErrNotFound is returned when an exact-match lookup finds no row.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique column already holds the value.
	ErrDuplicate = errors.New("already exists")
)
