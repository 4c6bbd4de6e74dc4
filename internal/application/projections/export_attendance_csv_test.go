package projections

import (
	"context"
	"errors"
	"testing"
	"time"

	"steeple/internal/domain/attendance"
	"steeple/internal/domain/programme"
)

// TestBuildAttendanceCSV tests the golden output with Present/Absent literals.
func TestBuildAttendanceCSV(t *testing.T) {
	progStore := &stubProgrammeStore{programmes: []programme.Programme{
		{ID: "p1", Name: "Youth Night", Type: programme.TypeMinistry},
	}}
	attStore := &stubAttendanceStore{records: []attendance.Attendance{
		{ID: "a1", ProgrammeID: "p1", MemberID: "m1", Date: time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC), IsPresent: true, Notes: "arrived late"},
		{ID: "a2", ProgrammeID: "p1", MemberID: "m2", Date: time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC), IsPresent: false},
		{ID: "a3", ProgrammeID: "other", MemberID: "m9", Date: time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC), IsPresent: true},
	}}

	got, err := BuildAttendanceCSV(context.Background(), "p1", BuildAttendanceCSVDeps{
		ProgrammeStore:  progStore,
		AttendanceStore: attStore,
	})
	if err != nil {
		t.Fatalf("BuildAttendanceCSV: %v", err)
	}

	want := "Date,Member ID,Status,Notes\n" +
		`"2026-02-06","m1","Present","arrived late"` + "\n" +
		`"2026-02-06","m2","Absent",""` + "\n"
	if got != want {
		t.Errorf("CSV mismatch\n got: %q\nwant: %q", got, want)
	}
}

// TestBuildAttendanceCSV_Errors tests the missing-programme and empty cases.
func TestBuildAttendanceCSV_Errors(t *testing.T) {
	progStore := &stubProgrammeStore{programmes: []programme.Programme{
		{ID: "p1", Name: "Youth Night", Type: programme.TypeMinistry},
	}}
	deps := BuildAttendanceCSVDeps{ProgrammeStore: progStore, AttendanceStore: &stubAttendanceStore{}}

	if _, err := BuildAttendanceCSV(context.Background(), "missing", deps); err == nil {
		t.Error("expected error for missing programme")
	}

	_, err := BuildAttendanceCSV(context.Background(), "p1", deps)
	if !errors.Is(err, ErrNoAttendance) {
		t.Errorf("expected ErrNoAttendance, got %v", err)
	}
}
