package resource

import (
	"context"
	"database/sql"
	"fmt"

	domain "steeple/internal/domain/resource"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new ResourceStore.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const resourceColumns = "id, programme_id, name, type, quantity, unit, cost, notes, status"

// GetByID retrieves a Resource by its ID.
// PRE: id is non-empty
// POST: Returns the entity or a wrapped sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Resource, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+resourceColumns+" FROM programme_resource WHERE id = ?", id)
	var entity domain.Resource
	err := row.Scan(&entity.ID, &entity.ProgrammeID, &entity.Name, &entity.Type,
		&entity.Quantity, &entity.Unit, &entity.Cost, &entity.Notes, &entity.Status)
	if err == sql.ErrNoRows {
		return domain.Resource{}, fmt.Errorf("resource not found: %w", err)
	}
	return entity, err
}

// Save persists a Resource to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Resource) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO programme_resource (`+resourceColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			programme_id=excluded.programme_id, name=excluded.name, type=excluded.type,
			quantity=excluded.quantity, unit=excluded.unit, cost=excluded.cost,
			notes=excluded.notes, status=excluded.status`,
		entity.ID, entity.ProgrammeID, entity.Name, entity.Type,
		entity.Quantity, entity.Unit, entity.Cost, entity.Notes, entity.Status,
	)
	return err
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]domain.Resource, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Resource
	for rows.Next() {
		var entity domain.Resource
		if err := rows.Scan(&entity.ID, &entity.ProgrammeID, &entity.Name, &entity.Type,
			&entity.Quantity, &entity.Unit, &entity.Cost, &entity.Notes, &entity.Status); err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// ListByProgrammeID retrieves all resources allocated to one programme.
func (s *SQLiteStore) ListByProgrammeID(ctx context.Context, programmeID string) ([]domain.Resource, error) {
	return s.list(ctx, "SELECT "+resourceColumns+" FROM programme_resource WHERE programme_id = ? ORDER BY name, id", programmeID)
}

// DeleteByProgrammeID removes all resources for a programme.
// POST: Returns the number of records removed
func (s *SQLiteStore) DeleteByProgrammeID(ctx context.Context, programmeID string) (int, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM programme_resource WHERE programme_id = ?", programmeID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// List retrieves all resources.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Resource, error) {
	return s.list(ctx, "SELECT "+resourceColumns+" FROM programme_resource ORDER BY programme_id, name, id")
}
