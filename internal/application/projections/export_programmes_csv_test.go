package projections

import (
	"context"
	"testing"
	"time"

	"steeple/internal/domain/programme"
)

// TestBuildProgrammesCSV tests the golden output, including quote doubling
// inside string fields.
func TestBuildProgrammesCSV(t *testing.T) {
	store := &stubProgrammeStore{programmes: []programme.Programme{
		{
			ID:               "p1",
			Name:             `O'Brien "Youth" Night`,
			Description:      `Weekly youth night at the "old hall"`,
			Type:             programme.TypeMinistry,
			StartDate:        time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC),
			EndDate:          time.Date(2026, 11, 27, 0, 0, 0, 0, time.UTC),
			Location:         "Main Hall",
			Coordinator:      "m-jane",
			Capacity:         80,
			CurrentAttendees: 42,
		},
		{
			ID:        "p2",
			Name:      "Food Bank",
			Type:      programme.TypeOutreach,
			StartDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		},
	}}

	got, err := BuildProgrammesCSV(context.Background(), BuildProgrammesCSVDeps{ProgrammeStore: store})
	if err != nil {
		t.Fatalf("BuildProgrammesCSV: %v", err)
	}

	want := "Name,Type,Start Date,End Date,Location,Coordinator,Capacity,Attendees,Description\n" +
		`"O'Brien ""Youth"" Night","ministry","2026-02-06","2026-11-27","Main Hall","m-jane",80,42,"Weekly youth night at the ""old hall"""` + "\n" +
		`"Food Bank","outreach","2026-01-10","","","",0,0,""` + "\n"
	if got != want {
		t.Errorf("CSV mismatch\n got: %q\nwant: %q", got, want)
	}

	// Byte stability: the same input renders the same bytes.
	again, err := BuildProgrammesCSV(context.Background(), BuildProgrammesCSVDeps{ProgrammeStore: store})
	if err != nil {
		t.Fatalf("second BuildProgrammesCSV: %v", err)
	}
	if again != got {
		t.Error("output is not byte-stable across calls")
	}
}

// TestBuildProgrammesCSV_Empty tests that no programmes yields header only.
func TestBuildProgrammesCSV_Empty(t *testing.T) {
	got, err := BuildProgrammesCSV(context.Background(), BuildProgrammesCSVDeps{ProgrammeStore: &stubProgrammeStore{}})
	if err != nil {
		t.Fatalf("BuildProgrammesCSV: %v", err)
	}
	if got != "Name,Type,Start Date,End Date,Location,Coordinator,Capacity,Attendees,Description\n" {
		t.Errorf("unexpected output: %q", got)
	}
}
