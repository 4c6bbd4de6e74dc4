package taxonomy

import (
	"context"

	domain "steeple/internal/domain/taxonomy"
)

// CategoryStore persists Category state.
type CategoryStore interface {
	Save(ctx context.Context, value domain.Category) error
	List(ctx context.Context) ([]domain.Category, error)
}

// TagStore persists Tag state.
type TagStore interface {
	GetByID(ctx context.Context, id string) (domain.Tag, error)
	Save(ctx context.Context, value domain.Tag) error
	List(ctx context.Context) ([]domain.Tag, error)
}

// TagLinkStore persists the programme/tag link pairs with set semantics.
type TagLinkStore interface {
	Save(ctx context.Context, value domain.TagLink) error
	Delete(ctx context.Context, value domain.TagLink) error
	Exists(ctx context.Context, value domain.TagLink) (bool, error)
	ListByProgrammeID(ctx context.Context, programmeID string) ([]domain.TagLink, error)
	DeleteByProgrammeID(ctx context.Context, programmeID string) (int, error)
}
