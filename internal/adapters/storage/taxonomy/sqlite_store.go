package taxonomy

import (
	"context"
	"database/sql"
	"fmt"

	domain "steeple/internal/domain/taxonomy"
)

// CategorySQLiteStore implements CategoryStore using SQLite.
type CategorySQLiteStore struct {
	db *sql.DB
}

// NewCategorySQLiteStore creates a new CategoryStore.
func NewCategorySQLiteStore(db *sql.DB) *CategorySQLiteStore {
	return &CategorySQLiteStore{db: db}
}

// Save persists a Category.
func (s *CategorySQLiteStore) Save(ctx context.Context, entity domain.Category) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO programme_category (id, label) VALUES (?, ?) ON CONFLICT(id) DO UPDATE SET label=excluded.label",
		entity.ID, entity.Label)
	return err
}

// List retrieves all Categories ordered by label.
func (s *CategorySQLiteStore) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, label FROM programme_category ORDER BY label, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Category
	for rows.Next() {
		var entity domain.Category
		if err := rows.Scan(&entity.ID, &entity.Label); err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// TagSQLiteStore implements TagStore using SQLite.
type TagSQLiteStore struct {
	db *sql.DB
}

// NewTagSQLiteStore creates a new TagStore.
func NewTagSQLiteStore(db *sql.DB) *TagSQLiteStore {
	return &TagSQLiteStore{db: db}
}

// GetByID retrieves a Tag by its ID.
// POST: Returns the entity or a wrapped sql.ErrNoRows if not found
func (s *TagSQLiteStore) GetByID(ctx context.Context, id string) (domain.Tag, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, label FROM programme_tag WHERE id = ?", id)
	var entity domain.Tag
	err := row.Scan(&entity.ID, &entity.Label)
	if err == sql.ErrNoRows {
		return domain.Tag{}, fmt.Errorf("tag not found: %w", err)
	}
	return entity, err
}

// Save persists a Tag.
func (s *TagSQLiteStore) Save(ctx context.Context, entity domain.Tag) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO programme_tag (id, label) VALUES (?, ?) ON CONFLICT(id) DO UPDATE SET label=excluded.label",
		entity.ID, entity.Label)
	return err
}

// List retrieves all Tags ordered by label.
func (s *TagSQLiteStore) List(ctx context.Context) ([]domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, label FROM programme_tag ORDER BY label, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Tag
	for rows.Next() {
		var entity domain.Tag
		if err := rows.Scan(&entity.ID, &entity.Label); err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// TagLinkSQLiteStore implements TagLinkStore using SQLite. The composite
// primary key gives the link collection its set semantics.
type TagLinkSQLiteStore struct {
	db *sql.DB
}

// NewTagLinkSQLiteStore creates a new TagLinkStore.
func NewTagLinkSQLiteStore(db *sql.DB) *TagLinkSQLiteStore {
	return &TagLinkSQLiteStore{db: db}
}

// Save persists a TagLink pair. Saving an existing pair is a no-op.
func (s *TagLinkSQLiteStore) Save(ctx context.Context, entity domain.TagLink) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO programme_tag_link (programme_id, tag_id) VALUES (?, ?) ON CONFLICT(programme_id, tag_id) DO NOTHING",
		entity.ProgrammeID, entity.TagID)
	return err
}

// Delete removes the exact pair if present; removing a missing pair is a no-op.
func (s *TagLinkSQLiteStore) Delete(ctx context.Context, entity domain.TagLink) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM programme_tag_link WHERE programme_id = ? AND tag_id = ?",
		entity.ProgrammeID, entity.TagID)
	return err
}

// Exists reports whether the pair is in the link collection.
func (s *TagLinkSQLiteStore) Exists(ctx context.Context, entity domain.TagLink) (bool, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM programme_tag_link WHERE programme_id = ? AND tag_id = ?",
		entity.ProgrammeID, entity.TagID)
	var n int
	if err := row.Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListByProgrammeID retrieves all tag links for one programme.
func (s *TagLinkSQLiteStore) ListByProgrammeID(ctx context.Context, programmeID string) ([]domain.TagLink, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT programme_id, tag_id FROM programme_tag_link WHERE programme_id = ? ORDER BY tag_id", programmeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.TagLink
	for rows.Next() {
		var entity domain.TagLink
		if err := rows.Scan(&entity.ProgrammeID, &entity.TagID); err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// DeleteByProgrammeID removes all tag links for a programme.
// POST: Returns the number of links removed
func (s *TagLinkSQLiteStore) DeleteByProgrammeID(ctx context.Context, programmeID string) (int, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM programme_tag_link WHERE programme_id = ?", programmeID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}
