package resource

import (
	"context"

	domain "steeple/internal/domain/resource"
)

// Store persists Resource state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Resource, error)
	Save(ctx context.Context, value domain.Resource) error
	ListByProgrammeID(ctx context.Context, programmeID string) ([]domain.Resource, error)
	DeleteByProgrammeID(ctx context.Context, programmeID string) (int, error)
	List(ctx context.Context) ([]domain.Resource, error)
}
