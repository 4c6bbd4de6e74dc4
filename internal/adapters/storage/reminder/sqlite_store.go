package reminder

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	domain "steeple/internal/domain/reminder"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new ReminderStore.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const reminderColumns = "id, programme_id, message, recipient, remind_at, status, sent_at, created_by, created_at"

func scanReminder(scan func(dest ...any) error) (domain.Reminder, error) {
	var entity domain.Reminder
	var remindStr, createdStr string
	var sentStr sql.NullString
	err := scan(&entity.ID, &entity.ProgrammeID, &entity.Message, &entity.Recipient,
		&remindStr, &entity.Status, &sentStr, &entity.CreatedBy, &createdStr)
	if err != nil {
		return domain.Reminder{}, err
	}
	entity.RemindAt, err = time.Parse(time.RFC3339Nano, remindStr)
	if err != nil {
		return domain.Reminder{}, fmt.Errorf("failed to parse remind_at: %w", err)
	}
	entity.CreatedAt, err = time.Parse(time.RFC3339Nano, createdStr)
	if err != nil {
		return domain.Reminder{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if sentStr.Valid {
		sentAt, err := time.Parse(time.RFC3339Nano, sentStr.String)
		if err != nil {
			return domain.Reminder{}, fmt.Errorf("failed to parse sent_at: %w", err)
		}
		entity.SentAt = &sentAt
	}
	return entity, nil
}

// GetByID retrieves a Reminder by its ID.
// PRE: id is non-empty
// POST: Returns the entity or a wrapped sql.ErrNoRows if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Reminder, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+reminderColumns+" FROM programme_reminder WHERE id = ?", id)
	entity, err := scanReminder(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Reminder{}, fmt.Errorf("reminder not found: %w", err)
	}
	return entity, err
}

// Save persists a Reminder to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Reminder) error {
	var sentVal any
	if entity.SentAt != nil {
		sentVal = entity.SentAt.UTC().Format(time.RFC3339Nano)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO programme_reminder (`+reminderColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			programme_id=excluded.programme_id, message=excluded.message,
			recipient=excluded.recipient, remind_at=excluded.remind_at,
			status=excluded.status, sent_at=excluded.sent_at,
			created_by=excluded.created_by, created_at=excluded.created_at`,
		entity.ID, entity.ProgrammeID, entity.Message, entity.Recipient,
		entity.RemindAt.UTC().Format(time.RFC3339Nano), entity.Status, sentVal,
		entity.CreatedBy, entity.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]domain.Reminder, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Reminder
	for rows.Next() {
		entity, err := scanReminder(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// ListDue retrieves pending reminders whose remind_at is at or before now.
// RFC3339 timestamps compare correctly as strings for a fixed UTC offset,
// so reminders are stored and compared in UTC.
func (s *SQLiteStore) ListDue(ctx context.Context, now time.Time) ([]domain.Reminder, error) {
	return s.list(ctx,
		"SELECT "+reminderColumns+" FROM programme_reminder WHERE status = ? AND remind_at <= ? ORDER BY remind_at, id",
		domain.StatusPending, now.UTC().Format(time.RFC3339Nano))
}

// ListByProgrammeID retrieves all reminders for one programme.
func (s *SQLiteStore) ListByProgrammeID(ctx context.Context, programmeID string) ([]domain.Reminder, error) {
	return s.list(ctx, "SELECT "+reminderColumns+" FROM programme_reminder WHERE programme_id = ? ORDER BY remind_at, id", programmeID)
}

// DeleteByProgrammeID removes all reminders for a programme.
// POST: Returns the number of records removed
func (s *SQLiteStore) DeleteByProgrammeID(ctx context.Context, programmeID string) (int, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM programme_reminder WHERE programme_id = ?", programmeID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// List retrieves all reminders ordered by remind time.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Reminder, error) {
	return s.list(ctx, "SELECT "+reminderColumns+" FROM programme_reminder ORDER BY remind_at, id")
}
