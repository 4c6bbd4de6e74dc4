package feedback

import (
	"context"

	domain "steeple/internal/domain/feedback"
)

// Store persists Feedback state.
type Store interface {
	Save(ctx context.Context, value domain.Feedback) error
	ListByProgrammeID(ctx context.Context, programmeID string) ([]domain.Feedback, error)
	DeleteByProgrammeID(ctx context.Context, programmeID string) (int, error)
	List(ctx context.Context) ([]domain.Feedback, error)
}
