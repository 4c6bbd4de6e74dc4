package attendance

import (
	"context"
	"database/sql"
	"time"

	domain "steeple/internal/domain/attendance"
)

const dateFormat = "2006-01-02"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new AttendanceStore.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save persists an Attendance record.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Attendance) error {
	present := 0
	if entity.IsPresent {
		present = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO programme_attendance (id, programme_id, member_id, date, is_present, notes)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			programme_id=excluded.programme_id, member_id=excluded.member_id,
			date=excluded.date, is_present=excluded.is_present, notes=excluded.notes`,
		entity.ID, entity.ProgrammeID, entity.MemberID,
		entity.Date.Format(dateFormat), present, entity.Notes,
	)
	return err
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]domain.Attendance, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Attendance
	for rows.Next() {
		var entity domain.Attendance
		var dateStr string
		var present int
		if err := rows.Scan(&entity.ID, &entity.ProgrammeID, &entity.MemberID, &dateStr, &present, &entity.Notes); err != nil {
			return nil, err
		}
		entity.Date, _ = time.Parse(dateFormat, dateStr)
		entity.IsPresent = present != 0
		results = append(results, entity)
	}
	return results, rows.Err()
}

// ListByProgrammeID retrieves the attendance history for one programme,
// ordered by date then member.
func (s *SQLiteStore) ListByProgrammeID(ctx context.Context, programmeID string) ([]domain.Attendance, error) {
	return s.list(ctx,
		"SELECT id, programme_id, member_id, date, is_present, notes FROM programme_attendance WHERE programme_id = ? ORDER BY date, member_id, id",
		programmeID)
}

// DeleteByProgrammeID removes all attendance records for a programme.
// POST: Returns the number of records removed
func (s *SQLiteStore) DeleteByProgrammeID(ctx context.Context, programmeID string) (int, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM programme_attendance WHERE programme_id = ?", programmeID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// List retrieves all attendance records ordered by date.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Attendance, error) {
	return s.list(ctx,
		"SELECT id, programme_id, member_id, date, is_present, notes FROM programme_attendance ORDER BY date, programme_id, member_id, id")
}
