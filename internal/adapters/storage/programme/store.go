package programme

import (
	"context"

	domain "steeple/internal/domain/programme"
)

// Store persists Programme state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Programme, error)
	Save(ctx context.Context, value domain.Programme) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Programme, error)
}
