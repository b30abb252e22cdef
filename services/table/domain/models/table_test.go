package models

import (
	"errors"
	"testing"
	"time"

	tabledomain "github.com/ghuser/tableside/services/table/domain"
)

func TestNewTable(t *testing.T) {
	tests := []struct {
		name     string
		number   int
		capacity int
		wantErr  error
	}{
		{name: "valid", number: 1, capacity: 4},
		{name: "zero number", number: 0, capacity: 4, wantErr: tabledomain.ErrInvalidTable},
		{name: "negative capacity", number: 2, capacity: -1, wantErr: tabledomain.ErrInvalidTable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewTable(tt.number, tt.capacity)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if table.Status != StatusFree {
				t.Fatalf("new table must start free, got %s", table.Status)
			}
		})
	}
}

func TestTable_Occupy(t *testing.T) {
	table, _ := NewTable(1, 4)

	if err := table.Occupy(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Status != StatusOccupied {
		t.Fatalf("expected occupied, got %s", table.Status)
	}

	if err := table.Occupy(); !errors.Is(err, tabledomain.ErrTableNotFree) {
		t.Fatalf("expected ErrTableNotFree on occupied table, got %v", err)
	}

	until := time.Now().Add(time.Minute)
	table2, _ := NewTable(2, 2)
	_ = table2.Occupy()
	_ = table2.BeginCleaning(until)
	if err := table2.Occupy(); !errors.Is(err, tabledomain.ErrTableNotFree) {
		t.Fatalf("expected ErrTableNotFree on cleaning table, got %v", err)
	}
}

func TestTable_ReleaseTransitions(t *testing.T) {
	t.Run("free skips cleaning", func(t *testing.T) {
		table, _ := NewTable(1, 4)
		_ = table.Occupy()
		if err := table.Free(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if table.Status != StatusFree || table.CleaningUntil != nil {
			t.Fatalf("expected free table with no deadline, got %s %v", table.Status, table.CleaningUntil)
		}
	})

	t.Run("free rejects unoccupied table", func(t *testing.T) {
		table, _ := NewTable(1, 4)
		if err := table.Free(); !errors.Is(err, tabledomain.ErrTableNotOccupied) {
			t.Fatalf("expected ErrTableNotOccupied, got %v", err)
		}
	})

	t.Run("begin cleaning sets deadline", func(t *testing.T) {
		table, _ := NewTable(1, 4)
		_ = table.Occupy()
		until := time.Now().Add(10 * time.Minute)
		if err := table.BeginCleaning(until); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if table.Status != StatusCleaning || table.CleaningUntil == nil || !table.CleaningUntil.Equal(until) {
			t.Fatalf("expected cleaning until %v, got %s %v", until, table.Status, table.CleaningUntil)
		}
	})

	t.Run("finish cleaning clears deadline", func(t *testing.T) {
		table, _ := NewTable(1, 4)
		_ = table.Occupy()
		_ = table.BeginCleaning(time.Now().Add(time.Minute))
		if err := table.FinishCleaning(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if table.Status != StatusFree || table.CleaningUntil != nil {
			t.Fatalf("expected free table, got %s %v", table.Status, table.CleaningUntil)
		}
	})

	t.Run("finish cleaning rejects free table", func(t *testing.T) {
		table, _ := NewTable(1, 4)
		if err := table.FinishCleaning(); !errors.Is(err, tabledomain.ErrCleaningInProgress) {
			t.Fatalf("expected ErrCleaningInProgress, got %v", err)
		}
	})
}

func TestTable_Sanitize(t *testing.T) {
	now := time.Now()

	t.Run("clears expired window", func(t *testing.T) {
		table, _ := NewTable(1, 4)
		_ = table.Occupy()
		_ = table.BeginCleaning(now.Add(-time.Second))
		if !table.Sanitize(now) {
			t.Fatal("expected sanitize to release the table")
		}
		if table.Status != StatusFree || table.CleaningUntil != nil {
			t.Fatalf("expected free table, got %s %v", table.Status, table.CleaningUntil)
		}
	})

	t.Run("keeps active window", func(t *testing.T) {
		table, _ := NewTable(1, 4)
		_ = table.Occupy()
		_ = table.BeginCleaning(now.Add(time.Minute))
		if table.Sanitize(now) {
			t.Fatal("sanitize must not touch an active cleaning window")
		}
		if table.Status != StatusCleaning {
			t.Fatalf("expected cleaning, got %s", table.Status)
		}
	})

	t.Run("ignores other states", func(t *testing.T) {
		table, _ := NewTable(1, 4)
		if table.Sanitize(now) {
			t.Fatal("sanitize must not touch a free table")
		}
		_ = table.Occupy()
		if table.Sanitize(now) {
			t.Fatal("sanitize must not touch an occupied table")
		}
	})

	t.Run("normalizes unknown persisted status", func(t *testing.T) {
		table, _ := NewTable(1, 4)
		table.Status = Status("reserved")
		if !table.Sanitize(now) {
			t.Fatal("expected sanitize to reset an unknown status")
		}
		if table.Status != StatusFree {
			t.Fatalf("expected free, got %s", table.Status)
		}
	})
}
