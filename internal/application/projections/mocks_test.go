package projections

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"steeple/internal/domain/attendance"
	"steeple/internal/domain/feedback"
	"steeple/internal/domain/kpi"
	"steeple/internal/domain/programme"
	"steeple/internal/domain/reminder"
	"steeple/internal/domain/resource"
)

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

type stubProgrammeStore struct {
	programmes []programme.Programme
}

func (s *stubProgrammeStore) List(_ context.Context) ([]programme.Programme, error) {
	return s.programmes, nil
}

func (s *stubProgrammeStore) GetByID(_ context.Context, id string) (programme.Programme, error) {
	for _, p := range s.programmes {
		if p.ID == id {
			return p, nil
		}
	}
	return programme.Programme{}, fmt.Errorf("programme not found: %w", sql.ErrNoRows)
}

type stubAttendanceStore struct {
	records []attendance.Attendance
}

func (s *stubAttendanceStore) ListByProgrammeID(_ context.Context, programmeID string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, r := range s.records {
		if r.ProgrammeID == programmeID {
			out = append(out, r)
		}
	}
	return out, nil
}

type stubResourceStore struct {
	resources []resource.Resource
}

func (s *stubResourceStore) ListByProgrammeID(_ context.Context, programmeID string) ([]resource.Resource, error) {
	var out []resource.Resource
	for _, r := range s.resources {
		if r.ProgrammeID == programmeID {
			out = append(out, r)
		}
	}
	return out, nil
}

type stubKPIStore struct {
	kpis []kpi.KPI
}

func (s *stubKPIStore) ListByProgrammeID(_ context.Context, programmeID string) ([]kpi.KPI, error) {
	var out []kpi.KPI
	for _, k := range s.kpis {
		if k.ProgrammeID == programmeID {
			out = append(out, k)
		}
	}
	return out, nil
}

type stubFeedbackStore struct {
	feedback []feedback.Feedback
}

func (s *stubFeedbackStore) List(_ context.Context) ([]feedback.Feedback, error) {
	return s.feedback, nil
}

type stubReminderStore struct {
	due []reminder.Reminder
}

func (s *stubReminderStore) ListDue(_ context.Context, _ time.Time) ([]reminder.Reminder, error) {
	return s.due, nil
}
