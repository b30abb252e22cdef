package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/tableside/pkg/database"
	tabledomain "github.com/ghuser/tableside/services/table/domain"
	"github.com/ghuser/tableside/services/table/domain/models"
)

// TableRepository implements repositories.TableRepository against PostgreSQL.
type TableRepository struct {
	db *database.Database
}

// NewTableRepository returns a TableRepository backed by the given pool.
func NewTableRepository(db *database.Database) *TableRepository {
	return &TableRepository{db: db}
}

// Save persists a new table. Returns ErrTableExists on duplicate numbers.
func (r *TableRepository) Save(ctx context.Context, table *models.Table) error {
	_, err := r.db.DB().ExecContext(ctx,
		`INSERT INTO restaurant_tables (id, number, capacity, status, cleaning_until) VALUES ($1, $2, $3, $4, $5)`,
		table.ID, table.Number, table.Capacity, table.Status, table.CleaningUntil)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return tabledomain.ErrTableExists
		}
		return fmt.Errorf("insert table: %w", err)
	}
	return nil
}

// GetByID retrieves a table by ID. Returns ErrTableNotFound if not found.
func (r *TableRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Table, error) {
	row := r.db.DB().QueryRowContext(ctx,
		`SELECT id, number, capacity, status, cleaning_until FROM restaurant_tables WHERE id = $1`, id)
	return scanTable(row)
}

// FindAll returns every table ordered by number.
func (r *TableRepository) FindAll(ctx context.Context) ([]*models.Table, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT id, number, capacity, status, cleaning_until FROM restaurant_tables ORDER BY number`)
	if err != nil {
		return nil, fmt.Errorf("query tables: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var out []*models.Table
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Update persists status, cleaning deadline, and capacity changes.
func (r *TableRepository) Update(ctx context.Context, table *models.Table) error {
	res, err := r.db.DB().ExecContext(ctx,
		`UPDATE restaurant_tables SET capacity = $2, status = $3, cleaning_until = $4 WHERE id = $1`,
		table.ID, table.Capacity, table.Status, table.CleaningUntil)
	if err != nil {
		return fmt.Errorf("update table: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return tabledomain.ErrTableNotFound
	}
	return nil
}

// Delete removes a table by ID.
func (r *TableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.DB().ExecContext(ctx, `DELETE FROM restaurant_tables WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete table: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return tabledomain.ErrTableNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTable(row rowScanner) (*models.Table, error) {
	var t models.Table
	var until sql.NullTime
	if err := row.Scan(&t.ID, &t.Number, &t.Capacity, &t.Status, &until); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, tabledomain.ErrTableNotFound
		}
		return nil, fmt.Errorf("scan table: %w", err)
	}
	if until.Valid {
		t.CleaningUntil = &until.Time
	}
	return &t, nil
}
