package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics published by the table context.
const (
	// TopicTableOccupied is published when a party is seated.
	TopicTableOccupied = "table.occupied"
	// TopicTableReleased is published when a paid table is released, either
	// straight to free or into its cleaning window.
	TopicTableReleased = "table.released"
)

// TableOccupiedEvent is published after a table transitions to occupied.
type TableOccupiedEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	TableID    uuid.UUID `json:"table_id"`
	Number     int       `json:"number"`
	OccurredAt time.Time `json:"occurred_at"`
}

// TableReleasedEvent is published after payment releases a table.
type TableReleasedEvent struct {
	EventID       uuid.UUID  `json:"event_id"`
	Version       int        `json:"version"`
	TableID       uuid.UUID  `json:"table_id"`
	Number        int        `json:"number"`
	NextStatus    string     `json:"next_status"`
	CleaningUntil *time.Time `json:"cleaning_until,omitempty"`
	OccurredAt    time.Time  `json:"occurred_at"`
}
