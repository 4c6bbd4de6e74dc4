package reminder

import (
	"context"
	"time"

	domain "steeple/internal/domain/reminder"
)

// Store persists Reminder state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Reminder, error)
	Save(ctx context.Context, value domain.Reminder) error
	ListDue(ctx context.Context, now time.Time) ([]domain.Reminder, error)
	ListByProgrammeID(ctx context.Context, programmeID string) ([]domain.Reminder, error)
	DeleteByProgrammeID(ctx context.Context, programmeID string) (int, error)
	List(ctx context.Context) ([]domain.Reminder, error)
}
