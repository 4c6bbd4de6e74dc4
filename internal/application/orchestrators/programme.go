package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	attendanceStore "steeple/internal/adapters/storage/attendance"
	feedbackStore "steeple/internal/adapters/storage/feedback"
	kpiStore "steeple/internal/adapters/storage/kpi"
	programmeStore "steeple/internal/adapters/storage/programme"
	reminderStore "steeple/internal/adapters/storage/reminder"
	resourceStore "steeple/internal/adapters/storage/resource"
	taxonomyStore "steeple/internal/adapters/storage/taxonomy"
	"steeple/internal/domain/programme"

	"github.com/google/uuid"
)

// --- Create Programme ---

// CreateProgrammeInput carries input for the create programme orchestrator.
type CreateProgrammeInput struct {
	Name        string
	Description string
	Type        string
	StartDate   time.Time
	EndDate     time.Time
	IsRecurring bool
	Frequency   string
	Location    string
	Coordinator string
	Capacity    int
}

// CreateProgrammeDeps holds dependencies for CreateProgramme.
type CreateProgrammeDeps struct {
	ProgrammeStore programmeStore.Store
	GenerateID     func() string
}

// ExecuteCreateProgramme constructs a Programme with an empty roster and persists it.
// PRE: Input carries the user-entered programme fields
// POST: Programme saved with CurrentAttendees=0 and an empty attendee roster
func ExecuteCreateProgramme(ctx context.Context, input CreateProgrammeInput, deps CreateProgrammeDeps) (programme.Programme, error) {
	generateID := deps.GenerateID
	if generateID == nil {
		generateID = uuid.NewString
	}

	p := programme.Programme{
		ID:               generateID(),
		Name:             input.Name,
		Description:      input.Description,
		Type:             input.Type,
		StartDate:        input.StartDate,
		EndDate:          input.EndDate,
		IsRecurring:      input.IsRecurring,
		Frequency:        input.Frequency,
		Location:         input.Location,
		Coordinator:      input.Coordinator,
		Capacity:         input.Capacity,
		CurrentAttendees: 0,
		Attendees:        []string{},
	}

	if err := p.Validate(); err != nil {
		return programme.Programme{}, err
	}

	if err := deps.ProgrammeStore.Save(ctx, p); err != nil {
		slog.Error("programme_create_failed", "name", input.Name, "error", err)
		return programme.Programme{}, err
	}

	slog.Info("programme_created", "programme_id", p.ID, "name", p.Name, "type", p.Type)
	return p, nil
}

// --- Update Programme ---

// UpdateProgrammeInput carries the partial fields to merge. Nil pointers
// leave the existing value untouched. There is deliberately no field for
// CurrentAttendees: the count is always derived from the roster, so a
// partial update cannot break the roster invariant.
type UpdateProgrammeInput struct {
	ProgrammeID string
	Name        *string
	Description *string
	Type        *string
	StartDate   *time.Time
	EndDate     *time.Time
	IsRecurring *bool
	Frequency   *string
	Location    *string
	Coordinator *string
	Capacity    *int
	Attendees   *[]string
}

// UpdateProgrammeDeps holds dependencies for UpdateProgramme.
type UpdateProgrammeDeps struct {
	ProgrammeStore programmeStore.Store
}

// ExecuteUpdateProgramme merges partial fields into an existing programme.
// A missing programme id is a success no-op: callers pre-check existence
// and the UI treats the update as applied.
// POST: Non-nil fields merged; CurrentAttendees recomputed when Attendees changes
func ExecuteUpdateProgramme(ctx context.Context, input UpdateProgrammeInput, deps UpdateProgrammeDeps) (programme.Programme, error) {
	if input.ProgrammeID == "" {
		return programme.Programme{}, programme.ErrNotFound
	}

	p, err := deps.ProgrammeStore.GetByID(ctx, input.ProgrammeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Warn("programme_update_missing", "programme_id", input.ProgrammeID)
			return programme.Programme{}, nil
		}
		return programme.Programme{}, err
	}

	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Type != nil {
		p.Type = *input.Type
	}
	if input.StartDate != nil {
		p.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		p.EndDate = *input.EndDate
	}
	if input.IsRecurring != nil {
		p.IsRecurring = *input.IsRecurring
	}
	if input.Frequency != nil {
		p.Frequency = *input.Frequency
	}
	if input.Location != nil {
		p.Location = *input.Location
	}
	if input.Coordinator != nil {
		p.Coordinator = *input.Coordinator
	}
	if input.Capacity != nil {
		p.Capacity = *input.Capacity
	}
	if input.Attendees != nil {
		p.Attendees = dedupe(*input.Attendees)
		p.CurrentAttendees = len(p.Attendees)
	}

	if err := p.Validate(); err != nil {
		return programme.Programme{}, err
	}

	if err := deps.ProgrammeStore.Save(ctx, p); err != nil {
		slog.Error("programme_update_failed", "programme_id", p.ID, "error", err)
		return programme.Programme{}, err
	}

	slog.Info("programme_updated", "programme_id", p.ID, "name", p.Name)
	return p, nil
}

// dedupe returns ids with duplicates removed, first occurrence wins.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// --- Delete Programme ---

// DeleteProgrammeDeps holds every dependent store the cascade touches.
type DeleteProgrammeDeps struct {
	ProgrammeStore  programmeStore.Store
	AttendanceStore attendanceStore.Store
	ResourceStore   resourceStore.Store
	FeedbackStore   feedbackStore.Store
	ReminderStore   reminderStore.Store
	KPIStore        kpiStore.Store
	TagLinkStore    taxonomyStore.TagLinkStore
}

// DeleteProgrammeResult reports how many dependent records the cascade removed.
type DeleteProgrammeResult struct {
	Attendance int
	Resources  int
	Feedback   int
	Reminders  int
	KPIs       int
	TagLinks   int
}

// ExecuteDeleteProgramme removes a programme and cascades into every
// dependent collection referencing its id. Cascade order is not
// significant: the dependent collections do not reference each other.
// PRE: ProgrammeID is non-empty
// POST: No record in any dependent collection references the programme id
func ExecuteDeleteProgramme(ctx context.Context, programmeID string, deps DeleteProgrammeDeps) (DeleteProgrammeResult, error) {
	if programmeID == "" {
		return DeleteProgrammeResult{}, programme.ErrNotFound
	}

	if _, err := deps.ProgrammeStore.GetByID(ctx, programmeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DeleteProgrammeResult{}, programme.ErrNotFound
		}
		return DeleteProgrammeResult{}, err
	}

	var result DeleteProgrammeResult
	var err error
	if result.Attendance, err = deps.AttendanceStore.DeleteByProgrammeID(ctx, programmeID); err != nil {
		return result, err
	}
	if result.Resources, err = deps.ResourceStore.DeleteByProgrammeID(ctx, programmeID); err != nil {
		return result, err
	}
	if result.Feedback, err = deps.FeedbackStore.DeleteByProgrammeID(ctx, programmeID); err != nil {
		return result, err
	}
	if result.Reminders, err = deps.ReminderStore.DeleteByProgrammeID(ctx, programmeID); err != nil {
		return result, err
	}
	if result.KPIs, err = deps.KPIStore.DeleteByProgrammeID(ctx, programmeID); err != nil {
		return result, err
	}
	if result.TagLinks, err = deps.TagLinkStore.DeleteByProgrammeID(ctx, programmeID); err != nil {
		return result, err
	}
	if err := deps.ProgrammeStore.Delete(ctx, programmeID); err != nil {
		return result, err
	}

	slog.Info("programme_deleted", "programme_id", programmeID,
		"attendance", result.Attendance, "resources", result.Resources,
		"feedback", result.Feedback, "reminders", result.Reminders,
		"kpis", result.KPIs, "tag_links", result.TagLinks)
	return result, nil
}
