package attendance

import (
	"context"

	domain "steeple/internal/domain/attendance"
)

// Store persists Attendance state. There is no update or single-record
// delete: attendance history is append-only and removed only when its
// programme is deleted.
type Store interface {
	Save(ctx context.Context, value domain.Attendance) error
	ListByProgrammeID(ctx context.Context, programmeID string) ([]domain.Attendance, error)
	DeleteByProgrammeID(ctx context.Context, programmeID string) (int, error)
	List(ctx context.Context) ([]domain.Attendance, error)
}
