package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/tableside/pkg/events"
	"github.com/ghuser/tableside/pkg/locking"
	"github.com/ghuser/tableside/pkg/logger"
	tabledomain "github.com/ghuser/tableside/services/table/domain"
	domainevents "github.com/ghuser/tableside/services/table/domain/events"
	"github.com/ghuser/tableside/services/table/domain/models"
	"github.com/ghuser/tableside/services/table/domain/repositories"
)

// CleaningScheduler schedules a deferred cleaning completion for a table.
// The Temporal-backed implementation lives in application/workflows.
type CleaningScheduler interface {
	ScheduleCleaning(ctx context.Context, tableID uuid.UUID, until time.Time) error
}

// Registry owns floor occupancy. Every transition on a table runs under that
// table's lock, so concurrent seatings of the same table serialize and exactly
// one of them wins.
type Registry struct {
	repo      repositories.TableRepository
	bus       *events.EventBus // nil in tests; publishing is best-effort
	log       logger.Logger
	locks     *locking.KeyedMutex
	scheduler CleaningScheduler // nil when cleaning runs without a workflow engine
	cleaning  time.Duration
	now       func() time.Time
}

// NewRegistry returns a Registry with the given cleaning window. A zero
// duration releases paid tables straight to free.
func NewRegistry(repo repositories.TableRepository, bus *events.EventBus, log logger.Logger, cleaning time.Duration, scheduler CleaningScheduler) *Registry {
	return &Registry{
		repo:      repo,
		bus:       bus,
		log:       log,
		locks:     locking.NewKeyedMutex(),
		scheduler: scheduler,
		cleaning:  cleaning,
		now:       time.Now,
	}
}

// Create registers a new table on the floor.
func (r *Registry) Create(ctx context.Context, number, capacity int) (*models.Table, error) {
	table, err := models.NewTable(number, capacity)
	if err != nil {
		return nil, err
	}
	if err := r.repo.Save(ctx, table); err != nil {
		return nil, err
	}
	return table, nil
}

// Get retrieves a single table.
func (r *Registry) Get(ctx context.Context, id uuid.UUID) (*models.Table, error) {
	return r.repo.GetByID(ctx, id)
}

// List returns all tables. Expired cleaning windows are cleared on the way
// out so readers never see a stale cleaning state.
func (r *Registry) List(ctx context.Context) ([]*models.Table, error) {
	tables, err := r.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	now := r.now()
	for _, t := range tables {
		if t.Sanitize(now) {
			if err := r.repo.Update(ctx, t); err != nil {
				r.log.WarnContext(ctx, "failed to persist sanitized table", "table_id", t.ID, "error", err)
			}
		}
	}
	return tables, nil
}

// TryOpenOrder transitions a table from free to occupied on behalf of a new
// order. Runs under the table lock so concurrent calls on the same table
// serialize; the loser observes ErrTableNotFree. An expired cleaning window
// is cleared before the check, so a table past its deadline seats normally.
func (r *Registry) TryOpenOrder(ctx context.Context, id uuid.UUID) (*models.Table, error) {
	var table *models.Table
	err := r.locks.Do(id, func() error {
		t, err := r.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if t.Sanitize(r.now()) {
			if err := r.repo.Update(ctx, t); err != nil {
				return fmt.Errorf("persist sanitized table: %w", err)
			}
		}
		if err := t.Occupy(); err != nil {
			return err
		}
		if err := r.repo.Update(ctx, t); err != nil {
			return fmt.Errorf("persist occupied table: %w", err)
		}
		table = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.publish(ctx, domainevents.TopicTableOccupied, domainevents.TableOccupiedEvent{
		EventID:    uuid.New(),
		Version:    1,
		TableID:    table.ID,
		Number:     table.Number,
		OccurredAt: r.now(),
	})
	return table, nil
}

// RollbackOpen compensates a failed order creation by returning an occupied
// table to free. A table that is not occupied is left untouched.
func (r *Registry) RollbackOpen(ctx context.Context, id uuid.UUID) error {
	return r.locks.Do(id, func() error {
		t, err := r.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := t.Free(); err != nil {
			if errors.Is(err, tabledomain.ErrTableNotOccupied) {
				return nil
			}
			return err
		}
		return r.repo.Update(ctx, t)
	})
}

// ReleaseTarget computes the state a paid table moves to: straight to free
// when no cleaning window is configured, otherwise cleaning until now+window.
func (r *Registry) ReleaseTarget(now time.Time) (models.Status, *time.Time) {
	if r.cleaning <= 0 {
		return models.StatusFree, nil
	}
	until := now.Add(r.cleaning)
	return models.StatusCleaning, &until
}

// WithTableLock runs fn while holding the given table's lock. The order
// context uses this so payment and release serialize with seatings.
func (r *Registry) WithTableLock(id uuid.UUID, fn func() error) error {
	return r.locks.Do(id, fn)
}

// Now returns the registry clock, overridable in tests.
func (r *Registry) Now() time.Time {
	return r.now()
}

// NotifyReleased publishes the released event and, when the table entered a
// cleaning window, schedules the deferred completion. Called after the
// release has been persisted.
func (r *Registry) NotifyReleased(ctx context.Context, table *models.Table) {
	r.publish(ctx, domainevents.TopicTableReleased, domainevents.TableReleasedEvent{
		EventID:       uuid.New(),
		Version:       1,
		TableID:       table.ID,
		Number:        table.Number,
		NextStatus:    string(table.Status),
		CleaningUntil: table.CleaningUntil,
		OccurredAt:    r.now(),
	})

	if table.Status == models.StatusCleaning && table.CleaningUntil != nil && r.scheduler != nil {
		if err := r.scheduler.ScheduleCleaning(ctx, table.ID, *table.CleaningUntil); err != nil {
			// The sanitize pass on read and at startup backstops a missed schedule.
			r.log.ErrorContext(ctx, "failed to schedule table cleaning", "table_id", table.ID, "error", err)
		}
	}
}

// CompleteCleaning returns a cleaning table to free. Idempotent: completing a
// table that is already free is a no-op, so workflow retries are safe.
func (r *Registry) CompleteCleaning(ctx context.Context, id uuid.UUID) error {
	return r.locks.Do(id, func() error {
		t, err := r.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := t.FinishCleaning(); err != nil {
			if errors.Is(err, tabledomain.ErrCleaningInProgress) {
				return nil
			}
			return err
		}
		return r.repo.Update(ctx, t)
	})
}

// Delete removes a table from the floor. Only a free table can be deleted; a
// seated party or a running cleaning window blocks removal. An expired
// cleaning window is cleared first, so a table past its deadline deletes
// normally.
func (r *Registry) Delete(ctx context.Context, id uuid.UUID) error {
	return r.locks.Do(id, func() error {
		t, err := r.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		t.Sanitize(r.now())
		switch t.Status {
		case models.StatusOccupied:
			return tabledomain.ErrTableOccupied
		case models.StatusCleaning:
			return tabledomain.ErrCleaningInProgress
		}
		return r.repo.Delete(ctx, id)
	})
}

// SanitizeAll clears every expired cleaning window. Run at startup so tables
// whose cleaning deadline passed while the process was down come back free.
// Returns the number of tables released.
func (r *Registry) SanitizeAll(ctx context.Context) (int, error) {
	tables, err := r.repo.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	now := r.now()
	released := 0
	for _, t := range tables {
		if !t.Sanitize(now) {
			continue
		}
		if err := r.repo.Update(ctx, t); err != nil {
			return released, fmt.Errorf("persist sanitized table %s: %w", t.ID, err)
		}
		released++
	}
	return released, nil
}

func (r *Registry) publish(ctx context.Context, topic string, event any) {
	if r.bus == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		r.log.ErrorContext(ctx, "failed to marshal table event", "topic", topic, "error", err)
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := r.bus.Publish(ctx, topic, msg); err != nil {
		r.log.ErrorContext(ctx, "failed to publish table event", "topic", topic, "error", err)
	}
}
