package programme

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	domain "steeple/internal/domain/programme"
)

const dateFormat = "2006-01-02"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new ProgrammeStore.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const programmeColumns = "id, name, description, type, start_date, end_date, is_recurring, frequency, location, coordinator, capacity, current_attendees, attendees"

func scanProgramme(scan func(dest ...any) error) (domain.Programme, error) {
	var entity domain.Programme
	var startStr string
	var endStr sql.NullString
	var recurring int
	var attendeesJSON string
	err := scan(
		&entity.ID,
		&entity.Name,
		&entity.Description,
		&entity.Type,
		&startStr,
		&endStr,
		&recurring,
		&entity.Frequency,
		&entity.Location,
		&entity.Coordinator,
		&entity.Capacity,
		&entity.CurrentAttendees,
		&attendeesJSON,
	)
	if err != nil {
		return domain.Programme{}, err
	}
	entity.IsRecurring = recurring != 0
	entity.StartDate, _ = time.Parse(dateFormat, startStr)
	if endStr.Valid && endStr.String != "" {
		entity.EndDate, _ = time.Parse(dateFormat, endStr.String)
	}
	if err := json.Unmarshal([]byte(attendeesJSON), &entity.Attendees); err != nil {
		return domain.Programme{}, fmt.Errorf("failed to decode attendees: %w", err)
	}
	return entity, nil
}

// GetByID retrieves a Programme by its ID.
// PRE: id is non-empty
// POST: Returns the entity or a wrapped sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Programme, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+programmeColumns+" FROM programme WHERE id = ?", id)
	entity, err := scanProgramme(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Programme{}, fmt.Errorf("programme not found: %w", err)
	}
	return entity, err
}

// Save persists a Programme to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Programme) error {
	attendees := entity.Attendees
	if attendees == nil {
		attendees = []string{}
	}
	attendeesJSON, err := json.Marshal(attendees)
	if err != nil {
		return fmt.Errorf("failed to encode attendees: %w", err)
	}

	var endVal any
	if !entity.EndDate.IsZero() {
		endVal = entity.EndDate.Format(dateFormat)
	}
	recurring := 0
	if entity.IsRecurring {
		recurring = 1
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO programme (`+programmeColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, description=excluded.description, type=excluded.type,
			start_date=excluded.start_date, end_date=excluded.end_date,
			is_recurring=excluded.is_recurring, frequency=excluded.frequency,
			location=excluded.location, coordinator=excluded.coordinator,
			capacity=excluded.capacity, current_attendees=excluded.current_attendees,
			attendees=excluded.attendees`,
		entity.ID, entity.Name, entity.Description, entity.Type,
		entity.StartDate.Format(dateFormat), endVal,
		recurring, entity.Frequency, entity.Location, entity.Coordinator,
		entity.Capacity, entity.CurrentAttendees, string(attendeesJSON),
	)
	return err
}

// Delete removes a Programme from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM programme WHERE id = ?", id)
	return err
}

// List retrieves all Programmes ordered by start date.
// POST: Returns all entities
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Programme, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+programmeColumns+" FROM programme ORDER BY start_date, name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Programme
	for rows.Next() {
		entity, err := scanProgramme(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
