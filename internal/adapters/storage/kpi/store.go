package kpi

import (
	"context"

	domain "steeple/internal/domain/kpi"
)

// Store persists KPI state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.KPI, error)
	Save(ctx context.Context, value domain.KPI) error
	ListByProgrammeID(ctx context.Context, programmeID string) ([]domain.KPI, error)
	DeleteByProgrammeID(ctx context.Context, programmeID string) (int, error)
	List(ctx context.Context) ([]domain.KPI, error)
}
