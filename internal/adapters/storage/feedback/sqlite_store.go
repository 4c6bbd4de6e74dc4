package feedback

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	domain "steeple/internal/domain/feedback"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new FeedbackStore.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save persists a Feedback record.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Feedback) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO programme_feedback (id, programme_id, member_id, rating, comment, submitted_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			programme_id=excluded.programme_id, member_id=excluded.member_id,
			rating=excluded.rating, comment=excluded.comment, submitted_at=excluded.submitted_at`,
		entity.ID, entity.ProgrammeID, entity.MemberID, entity.Rating,
		entity.Comment, entity.SubmittedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

// ListByProgrammeID retrieves all feedback for one programme.
func (s *SQLiteStore) ListByProgrammeID(ctx context.Context, programmeID string) ([]domain.Feedback, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, programme_id, member_id, rating, comment, submitted_at FROM programme_feedback WHERE programme_id = ? ORDER BY submitted_at, id",
		programmeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Feedback
	for rows.Next() {
		var entity domain.Feedback
		var submittedStr string
		if err := rows.Scan(&entity.ID, &entity.ProgrammeID, &entity.MemberID,
			&entity.Rating, &entity.Comment, &submittedStr); err != nil {
			return nil, err
		}
		entity.SubmittedAt, err = time.Parse(time.RFC3339Nano, submittedStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse submitted_at: %w", err)
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// List retrieves all feedback across programmes.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Feedback, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, programme_id, member_id, rating, comment, submitted_at FROM programme_feedback ORDER BY submitted_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Feedback
	for rows.Next() {
		var entity domain.Feedback
		var submittedStr string
		if err := rows.Scan(&entity.ID, &entity.ProgrammeID, &entity.MemberID,
			&entity.Rating, &entity.Comment, &submittedStr); err != nil {
			return nil, err
		}
		entity.SubmittedAt, err = time.Parse(time.RFC3339Nano, submittedStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse submitted_at: %w", err)
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// DeleteByProgrammeID removes all feedback for a programme.
// POST: Returns the number of records removed
func (s *SQLiteStore) DeleteByProgrammeID(ctx context.Context, programmeID string) (int, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM programme_feedback WHERE programme_id = ?", programmeID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}
