// Package domain holds table-context domain errors.
package domain

import "errors"

// Sentinel errors for the table bounded context. Handlers map these to HTTP
// status codes in pkg/errhttp; always wrap with fmt.Errorf("...: %w", err)
// so errors.Is() matching keeps working.
var (
	// ErrTableNotFound is returned when a table ID does not exist.
	ErrTableNotFound = errors.New("table not found")

	// ErrTableExists is returned when a table number is already taken.
	ErrTableExists = errors.New("table number already exists")

	// ErrInvalidTable is returned when table number or capacity is not positive.
	ErrInvalidTable = errors.New("invalid table")

	// ErrTableNotFree is returned when an order is opened on a table that is
	// occupied or still being cleaned.
	ErrTableNotFree = errors.New("table is not free")

	// ErrTableNotOccupied is returned when a release is attempted on a table
	// that has no seated party.
	ErrTableNotOccupied = errors.New("table is not occupied")

	// ErrTableOccupied is returned when a destructive operation targets a
	// table with a seated party.
	ErrTableOccupied = errors.New("table is occupied")

	// ErrCleaningInProgress is returned when cleaning is finished on a table
	// that is not in the cleaning state.
	ErrCleaningInProgress = errors.New("table is not being cleaned")
)
