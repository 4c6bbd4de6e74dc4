package kpi

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	domain "steeple/internal/domain/kpi"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new KPIStore.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const kpiColumns = "id, programme_id, name, target, current, unit, created_at, updated_at"

func scanKPI(scan func(dest ...any) error) (domain.KPI, error) {
	var entity domain.KPI
	var createdStr, updatedStr string
	err := scan(&entity.ID, &entity.ProgrammeID, &entity.Name, &entity.Target,
		&entity.Current, &entity.Unit, &createdStr, &updatedStr)
	if err != nil {
		return domain.KPI{}, err
	}
	entity.CreatedAt, err = time.Parse(time.RFC3339Nano, createdStr)
	if err != nil {
		return domain.KPI{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	entity.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedStr)
	if err != nil {
		return domain.KPI{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return entity, nil
}

// GetByID retrieves a KPI by its ID.
// PRE: id is non-empty
// POST: Returns the entity or a wrapped sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.KPI, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+kpiColumns+" FROM programme_kpi WHERE id = ?", id)
	entity, err := scanKPI(row.Scan)
	if err == sql.ErrNoRows {
		return domain.KPI{}, fmt.Errorf("kpi not found: %w", err)
	}
	return entity, err
}

// Save persists a KPI to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.KPI) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO programme_kpi (`+kpiColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			programme_id=excluded.programme_id, name=excluded.name,
			target=excluded.target, current=excluded.current, unit=excluded.unit,
			created_at=excluded.created_at, updated_at=excluded.updated_at`,
		entity.ID, entity.ProgrammeID, entity.Name, entity.Target, entity.Current,
		entity.Unit, entity.CreatedAt.UTC().Format(time.RFC3339Nano),
		entity.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]domain.KPI, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.KPI
	for rows.Next() {
		entity, err := scanKPI(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// ListByProgrammeID retrieves all KPIs for one programme.
func (s *SQLiteStore) ListByProgrammeID(ctx context.Context, programmeID string) ([]domain.KPI, error) {
	return s.list(ctx, "SELECT "+kpiColumns+" FROM programme_kpi WHERE programme_id = ? ORDER BY name, id", programmeID)
}

// DeleteByProgrammeID removes all KPIs for a programme.
// POST: Returns the number of records removed
func (s *SQLiteStore) DeleteByProgrammeID(ctx context.Context, programmeID string) (int, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM programme_kpi WHERE programme_id = ?", programmeID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// List retrieves all KPIs.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.KPI, error) {
	return s.list(ctx, "SELECT "+kpiColumns+" FROM programme_kpi ORDER BY programme_id, name, id")
}
