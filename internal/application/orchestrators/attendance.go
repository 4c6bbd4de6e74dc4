package orchestrators

import (
	"context"
	"log/slog"
	"time"

	attendanceStore "steeple/internal/adapters/storage/attendance"
	programmeStore "steeple/internal/adapters/storage/programme"
	"steeple/internal/domain/attendance"

	"github.com/google/uuid"
)

// RecordAttendanceInput carries input for the record attendance orchestrator.
type RecordAttendanceInput struct {
	ProgrammeID string
	MemberID    string
	Date        time.Time
	IsPresent   bool
	Notes       string
}

// RecordAttendanceDeps holds dependencies for RecordAttendance.
type RecordAttendanceDeps struct {
	ProgrammeStore  programmeStore.Store
	AttendanceStore attendanceStore.Store
	GenerateID      func() string
}

// ExecuteRecordAttendance appends one attendance record and reconciles the
// programme roster. The history is additive and the roster is monotonic:
// duplicate records for the same (programme, member, date) are permitted,
// a present member joins the roster exactly once, and marking a present
// member absent never removes them from the roster.
// PRE: Programme exists
// POST: One attendance record stored; CurrentAttendees == len(Attendees)
func ExecuteRecordAttendance(ctx context.Context, input RecordAttendanceInput, deps RecordAttendanceDeps) (attendance.Attendance, error) {
	generateID := deps.GenerateID
	if generateID == nil {
		generateID = uuid.NewString
	}

	p, err := deps.ProgrammeStore.GetByID(ctx, input.ProgrammeID)
	if err != nil {
		return attendance.Attendance{}, err
	}

	record := attendance.Attendance{
		ID:          generateID(),
		ProgrammeID: input.ProgrammeID,
		MemberID:    input.MemberID,
		Date:        input.Date,
		IsPresent:   input.IsPresent,
		Notes:       input.Notes,
	}
	if err := record.Validate(); err != nil {
		return attendance.Attendance{}, err
	}

	if err := deps.AttendanceStore.Save(ctx, record); err != nil {
		slog.Error("attendance_record_failed", "programme_id", input.ProgrammeID, "member_id", input.MemberID, "error", err)
		return attendance.Attendance{}, err
	}

	if input.IsPresent && !p.InRoster(input.MemberID) {
		p.AddToRoster(input.MemberID)
		if err := deps.ProgrammeStore.Save(ctx, p); err != nil {
			slog.Error("attendance_roster_save_failed", "programme_id", p.ID, "member_id", input.MemberID, "error", err)
			return attendance.Attendance{}, err
		}
	}

	slog.Info("attendance_recorded", "programme_id", input.ProgrammeID, "member_id", input.MemberID,
		"date", input.Date.Format("2006-01-02"), "present", input.IsPresent)
	return record, nil
}

// RecordBulkAttendanceDeps holds dependencies for RecordBulkAttendance.
type RecordBulkAttendanceDeps struct {
	ProgrammeStore  programmeStore.Store
	AttendanceStore attendanceStore.Store
	GenerateID      func() string
}

// RecordBulkAttendanceResult reports the expansion of a bulk batch.
type RecordBulkAttendanceResult struct {
	Records     []attendance.Attendance
	NewAttendee int // members newly credited to the roster
}

// ExecuteRecordBulkAttendance expands a bulk batch into one attendance
// record per entry, then applies a single roster update for the members
// who are present and not yet on the roster. The newly-present set is
// computed from the pre-batch roster so that a member appearing twice in
// the batch is credited at most once.
// PRE: Programme exists; batch is non-empty
// POST: len(Records) == len(Entries); roster grows by NewAttendee members
func ExecuteRecordBulkAttendance(ctx context.Context, input attendance.BulkRecord, deps RecordBulkAttendanceDeps) (RecordBulkAttendanceResult, error) {
	generateID := deps.GenerateID
	if generateID == nil {
		generateID = uuid.NewString
	}

	if err := input.Validate(); err != nil {
		return RecordBulkAttendanceResult{}, err
	}

	p, err := deps.ProgrammeStore.GetByID(ctx, input.ProgrammeID)
	if err != nil {
		return RecordBulkAttendanceResult{}, err
	}

	records := make([]attendance.Attendance, 0, len(input.Entries))
	for _, entry := range input.Entries {
		record := attendance.Attendance{
			ID:          generateID(),
			ProgrammeID: input.ProgrammeID,
			MemberID:    entry.MemberID,
			Date:        input.Date,
			IsPresent:   entry.IsPresent,
			Notes:       entry.Notes,
		}
		if err := deps.AttendanceStore.Save(ctx, record); err != nil {
			slog.Error("bulk_attendance_save_failed", "programme_id", input.ProgrammeID, "member_id", entry.MemberID, "error", err)
			return RecordBulkAttendanceResult{}, err
		}
		records = append(records, record)
	}

	// Newly-present set from the pre-batch roster: one batched roster
	// mutation, one credit per unique member.
	var newIDs []string
	seen := make(map[string]bool)
	for _, entry := range input.Entries {
		if entry.IsPresent && !seen[entry.MemberID] && !p.InRoster(entry.MemberID) {
			seen[entry.MemberID] = true
			newIDs = append(newIDs, entry.MemberID)
		}
	}
	for _, id := range newIDs {
		p.AddToRoster(id)
	}
	added := len(newIDs)
	if added > 0 {
		if err := deps.ProgrammeStore.Save(ctx, p); err != nil {
			slog.Error("bulk_attendance_roster_save_failed", "programme_id", p.ID, "error", err)
			return RecordBulkAttendanceResult{}, err
		}
	}

	slog.Info("bulk_attendance_recorded", "programme_id", input.ProgrammeID,
		"date", input.Date.Format("2006-01-02"), "records", len(records), "new_attendees", added)
	return RecordBulkAttendanceResult{Records: records, NewAttendee: added}, nil
}
