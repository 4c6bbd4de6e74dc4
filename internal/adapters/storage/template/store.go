package template

import (
	"context"

	domain "steeple/internal/domain/template"
)

// Store persists Template state. Templates are immutable once created,
// so Save is only ever called with fresh records.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Template, error)
	Save(ctx context.Context, value domain.Template) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Template, error)
}
