package models

import (
	"time"

	"github.com/google/uuid"

	tabledomain "github.com/ghuser/tableside/services/table/domain"
)

// Status is the occupancy state of a dining table.
type Status string

const (
	// StatusFree means the table accepts a new party.
	StatusFree Status = "free"
	// StatusOccupied means a party is seated and an order may be active.
	StatusOccupied Status = "occupied"
	// StatusCleaning means the table is being turned over after payment and
	// cannot seat a party until CleaningUntil passes.
	StatusCleaning Status = "cleaning"
)

// Table is the aggregate root for floor occupancy. All transitions go through
// the methods below; Status and CleaningUntil are never written directly
// outside the persistence layer.
type Table struct {
	ID            uuid.UUID
	Number        int
	Capacity      int
	Status        Status
	CleaningUntil *time.Time
}

// NewTable creates a free table with a fresh ID.
func NewTable(number, capacity int) (*Table, error) {
	if number <= 0 || capacity <= 0 {
		return nil, tabledomain.ErrInvalidTable
	}
	return &Table{
		ID:       uuid.New(),
		Number:   number,
		Capacity: capacity,
		Status:   StatusFree,
	}, nil
}

// Occupy seats a party. Only a free table can be occupied; a table still in
// its cleaning window counts as not free.
func (t *Table) Occupy() error {
	if t.Status != StatusFree {
		return tabledomain.ErrTableNotFree
	}
	t.Status = StatusOccupied
	return nil
}

// Free releases an occupied table straight back to free, skipping cleaning.
func (t *Table) Free() error {
	if t.Status != StatusOccupied {
		return tabledomain.ErrTableNotOccupied
	}
	t.Status = StatusFree
	t.CleaningUntil = nil
	return nil
}

// BeginCleaning moves an occupied table into the cleaning state until the
// given deadline.
func (t *Table) BeginCleaning(until time.Time) error {
	if t.Status != StatusOccupied {
		return tabledomain.ErrTableNotOccupied
	}
	t.Status = StatusCleaning
	t.CleaningUntil = &until
	return nil
}

// FinishCleaning returns a cleaning table to free regardless of the deadline.
func (t *Table) FinishCleaning() error {
	if t.Status != StatusCleaning {
		return tabledomain.ErrCleaningInProgress
	}
	t.Status = StatusFree
	t.CleaningUntil = nil
	return nil
}

// Sanitize clears an expired cleaning window and normalizes a status the
// store may have persisted that this code no longer knows. Reports whether
// the table changed. Safe to call on tables in any state.
func (t *Table) Sanitize(now time.Time) bool {
	switch t.Status {
	case StatusFree, StatusOccupied:
		return false
	case StatusCleaning:
	default:
		t.Status = StatusFree
		t.CleaningUntil = nil
		return true
	}
	if t.CleaningUntil != nil && now.Before(*t.CleaningUntil) {
		return false
	}
	t.Status = StatusFree
	t.CleaningUntil = nil
	return true
}
