package projections

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"steeple/internal/domain/attendance"
	"steeple/internal/domain/programme"
)

// ErrNoAttendance is returned when an attendance export has nothing to emit.
var ErrNoAttendance = errors.New("programme has no attendance records")

// AttendanceProgrammeStore defines the programme store interface needed by the attendance export.
type AttendanceProgrammeStore interface {
	GetByID(ctx context.Context, id string) (programme.Programme, error)
}

// AttendanceLister defines the attendance store interface needed by the attendance export.
type AttendanceLister interface {
	ListByProgrammeID(ctx context.Context, programmeID string) ([]attendance.Attendance, error)
}

// BuildAttendanceCSVDeps holds dependencies for the attendance CSV export.
type BuildAttendanceCSVDeps struct {
	ProgrammeStore  AttendanceProgrammeStore
	AttendanceStore AttendanceLister
}

// BuildAttendanceCSV renders one programme's attendance history as CSV,
// one row per record in store order. Presence renders as the literal
// "Present"/"Absent".
// PRE: Programme exists and has at least one attendance record
func BuildAttendanceCSV(ctx context.Context, programmeID string, deps BuildAttendanceCSVDeps) (string, error) {
	if _, err := deps.ProgrammeStore.GetByID(ctx, programmeID); err != nil {
		return "", err
	}
	records, err := deps.AttendanceStore.ListByProgrammeID(ctx, programmeID)
	if err != nil {
		return "", fmt.Errorf("failed to list attendance: %w", err)
	}
	if len(records) == 0 {
		return "", ErrNoAttendance
	}

	var b strings.Builder
	b.WriteString("Date,Member ID,Status,Notes\n")
	for _, r := range records {
		status := "Absent"
		if r.IsPresent {
			status = "Present"
		}
		b.WriteString(strings.Join([]string{
			csvField(r.Date.Format(csvDateFormat)),
			csvField(r.MemberID),
			csvField(status),
			csvField(r.Notes),
		}, ","))
		b.WriteString("\n")
	}
	return b.String(), nil
}
