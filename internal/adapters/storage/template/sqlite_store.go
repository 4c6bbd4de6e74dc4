package template

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	domain "steeple/internal/domain/template"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new TemplateStore.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const templateColumns = "id, name, description, type, capacity, location, is_recurring, frequency, resources, created_by, created_at"

func scanTemplate(scan func(dest ...any) error) (domain.Template, error) {
	var entity domain.Template
	var recurring int
	var resourcesJSON, createdStr string
	err := scan(&entity.ID, &entity.Name, &entity.Description, &entity.Type,
		&entity.Capacity, &entity.Location, &recurring, &entity.Frequency,
		&resourcesJSON, &entity.CreatedBy, &createdStr)
	if err != nil {
		return domain.Template{}, err
	}
	entity.IsRecurring = recurring != 0
	if err := json.Unmarshal([]byte(resourcesJSON), &entity.Resources); err != nil {
		return domain.Template{}, fmt.Errorf("failed to decode resource blueprints: %w", err)
	}
	entity.CreatedAt, err = time.Parse(time.RFC3339Nano, createdStr)
	if err != nil {
		return domain.Template{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return entity, nil
}

// GetByID retrieves a Template by its ID.
// PRE: id is non-empty
// POST: Returns the entity or a wrapped sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Template, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+templateColumns+" FROM programme_template WHERE id = ?", id)
	entity, err := scanTemplate(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Template{}, fmt.Errorf("template not found: %w", err)
	}
	return entity, err
}

// Save persists a Template to the database.
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Template) error {
	resources := entity.Resources
	if resources == nil {
		resources = []domain.ResourceBlueprint{}
	}
	resourcesJSON, err := json.Marshal(resources)
	if err != nil {
		return fmt.Errorf("failed to encode resource blueprints: %w", err)
	}
	recurring := 0
	if entity.IsRecurring {
		recurring = 1
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO programme_template (`+templateColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, description=excluded.description, type=excluded.type,
			capacity=excluded.capacity, location=excluded.location,
			is_recurring=excluded.is_recurring, frequency=excluded.frequency,
			resources=excluded.resources, created_by=excluded.created_by,
			created_at=excluded.created_at`,
		entity.ID, entity.Name, entity.Description, entity.Type, entity.Capacity,
		entity.Location, recurring, entity.Frequency, string(resourcesJSON),
		entity.CreatedBy, entity.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

// Delete removes a Template from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM programme_template WHERE id = ?", id)
	return err
}

// List retrieves all Templates ordered by name.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Template, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+templateColumns+" FROM programme_template ORDER BY name, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Template
	for rows.Next() {
		entity, err := scanTemplate(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
