package orchestrators

import (
	"context"
	"testing"
	"time"

	"steeple/internal/domain/attendance"
	"steeple/internal/domain/feedback"
	"steeple/internal/domain/kpi"
	"steeple/internal/domain/programme"
	"steeple/internal/domain/reminder"
	"steeple/internal/domain/resource"
	"steeple/internal/domain/taxonomy"
)

var testStart = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

// TestExecuteCreateProgramme_Valid tests creating a programme with valid input.
func TestExecuteCreateProgramme_Valid(t *testing.T) {
	store := newMockProgrammeStore()
	p, err := ExecuteCreateProgramme(context.Background(), CreateProgrammeInput{
		Name:        "Youth Night",
		Description: "Weekly **youth** gathering",
		Type:        programme.TypeOutreach,
		StartDate:   testStart,
		IsRecurring: true,
		Frequency:   programme.FrequencyWeekly,
		Location:    "Youth Hall",
		Coordinator: "m-coord",
		Capacity:    60,
	}, CreateProgrammeDeps{ProgrammeStore: store, GenerateID: seqID()})
	if err != nil {
		t.Fatalf("ExecuteCreateProgramme: %v", err)
	}

	if p.ID != "id-1" {
		t.Errorf("expected generated id, got %q", p.ID)
	}
	if p.CurrentAttendees != 0 {
		t.Errorf("new programme should start with 0 attendees, got %d", p.CurrentAttendees)
	}
	if p.Attendees == nil || len(p.Attendees) != 0 {
		t.Errorf("new programme should start with an empty roster, got %v", p.Attendees)
	}
	if _, ok := store.programmes["id-1"]; !ok {
		t.Error("programme was not persisted")
	}
}

// TestExecuteCreateProgramme_Invalid tests that validation failures do not persist.
func TestExecuteCreateProgramme_Invalid(t *testing.T) {
	store := newMockProgrammeStore()
	_, err := ExecuteCreateProgramme(context.Background(), CreateProgrammeInput{
		Name: "", Type: programme.TypeService, StartDate: testStart,
	}, CreateProgrammeDeps{ProgrammeStore: store, GenerateID: seqID()})
	if err != programme.ErrEmptyName {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if len(store.programmes) != 0 {
		t.Error("invalid programme must not be persisted")
	}
}

// TestExecuteCreateProgramme_SaveFailure tests that persistence failure surfaces.
func TestExecuteCreateProgramme_SaveFailure(t *testing.T) {
	store := newMockProgrammeStore()
	store.failSave = true
	_, err := ExecuteCreateProgramme(context.Background(), CreateProgrammeInput{
		Name: "Test", Type: programme.TypeOther, StartDate: testStart,
	}, CreateProgrammeDeps{ProgrammeStore: store, GenerateID: seqID()})
	if err == nil {
		t.Fatal("expected save failure to surface")
	}
}

// TestExecuteUpdateProgramme_PartialMerge tests that only non-nil fields change.
func TestExecuteUpdateProgramme_PartialMerge(t *testing.T) {
	store := newMockProgrammeStore()
	store.programmes["p1"] = programme.Programme{
		ID: "p1", Name: "Old Name", Description: "desc", Type: programme.TypeMinistry,
		StartDate: testStart, Location: "Hall", Capacity: 30,
		CurrentAttendees: 2, Attendees: []string{"m1", "m2"},
	}

	newName := "New Name"
	newCap := 50
	updated, err := ExecuteUpdateProgramme(context.Background(), UpdateProgrammeInput{
		ProgrammeID: "p1", Name: &newName, Capacity: &newCap,
	}, UpdateProgrammeDeps{ProgrammeStore: store})
	if err != nil {
		t.Fatalf("ExecuteUpdateProgramme: %v", err)
	}

	if updated.Name != "New Name" || updated.Capacity != 50 {
		t.Errorf("merged fields not applied: %+v", updated)
	}
	if updated.Description != "desc" || updated.Location != "Hall" {
		t.Errorf("untouched fields changed: %+v", updated)
	}
	if updated.CurrentAttendees != 2 || len(updated.Attendees) != 2 {
		t.Errorf("roster changed by unrelated update: %+v", updated)
	}
}

// TestExecuteUpdateProgramme_AttendeesRecount tests the roster invariant guard.
func TestExecuteUpdateProgramme_AttendeesRecount(t *testing.T) {
	store := newMockProgrammeStore()
	store.programmes["p1"] = programme.Programme{
		ID: "p1", Name: "Test", Type: programme.TypeService, StartDate: testStart,
		CurrentAttendees: 1, Attendees: []string{"m1"},
	}

	roster := []string{"m1", "m2", "m3", "m2"} // duplicate m2 collapses
	updated, err := ExecuteUpdateProgramme(context.Background(), UpdateProgrammeInput{
		ProgrammeID: "p1", Attendees: &roster,
	}, UpdateProgrammeDeps{ProgrammeStore: store})
	if err != nil {
		t.Fatalf("ExecuteUpdateProgramme: %v", err)
	}
	if len(updated.Attendees) != 3 {
		t.Errorf("expected deduplicated roster of 3, got %v", updated.Attendees)
	}
	if updated.CurrentAttendees != len(updated.Attendees) {
		t.Errorf("CurrentAttendees %d != len(Attendees) %d", updated.CurrentAttendees, len(updated.Attendees))
	}
}

// TestExecuteUpdateProgramme_MissingIsNoop tests that a missing id succeeds
// without touching the collection.
func TestExecuteUpdateProgramme_MissingIsNoop(t *testing.T) {
	store := newMockProgrammeStore()
	name := "Ghost"
	_, err := ExecuteUpdateProgramme(context.Background(), UpdateProgrammeInput{
		ProgrammeID: "nope", Name: &name,
	}, UpdateProgrammeDeps{ProgrammeStore: store})
	if err != nil {
		t.Fatalf("update of missing programme should be a success no-op, got %v", err)
	}
	if store.saves != 0 {
		t.Error("no-op update must not write")
	}
}

// TestExecuteDeleteProgramme_Cascade tests cascade completeness: no dependent
// record referencing the deleted programme survives.
func TestExecuteDeleteProgramme_Cascade(t *testing.T) {
	ctx := context.Background()
	progStore := newMockProgrammeStore()
	progStore.programmes["p1"] = programme.Programme{ID: "p1", Name: "Camp", Type: programme.TypeMinistry, StartDate: testStart}
	progStore.programmes["p2"] = programme.Programme{ID: "p2", Name: "Other", Type: programme.TypeService, StartDate: testStart}

	attStore := &mockAttendanceStore{records: []attendance.Attendance{
		{ID: "a1", ProgrammeID: "p1", MemberID: "m1", Date: testStart, IsPresent: true},
		{ID: "a2", ProgrammeID: "p1", MemberID: "m2", Date: testStart, IsPresent: false},
		{ID: "a3", ProgrammeID: "p2", MemberID: "m1", Date: testStart, IsPresent: true},
	}}
	resStore := &mockResourceStore{resources: []resource.Resource{
		{ID: "r1", ProgrammeID: "p1", Name: "Chairs", Quantity: 40, Status: resource.StatusAllocated},
	}}
	fbStore := &mockFeedbackStore{feedback: []feedback.Feedback{
		{ID: "f1", ProgrammeID: "p1", MemberID: "m1", Rating: 5},
	}}
	remStore := &mockReminderStore{reminders: []reminder.Reminder{
		{ID: "rem1", ProgrammeID: "p1", Message: "x", RemindAt: testStart, Status: reminder.StatusPending},
	}}
	kpiSt := &mockKPIStore{kpis: []kpi.KPI{
		{ID: "k1", ProgrammeID: "p1", Name: "Attendance", Target: 100},
	}}
	linkStore := &mockTagLinkStore{links: []taxonomy.TagLink{
		{ProgrammeID: "p1", TagID: "t1"},
		{ProgrammeID: "p1", TagID: "t2"},
		{ProgrammeID: "p2", TagID: "t1"},
	}}

	result, err := ExecuteDeleteProgramme(ctx, "p1", DeleteProgrammeDeps{
		ProgrammeStore:  progStore,
		AttendanceStore: attStore,
		ResourceStore:   resStore,
		FeedbackStore:   fbStore,
		ReminderStore:   remStore,
		KPIStore:        kpiSt,
		TagLinkStore:    linkStore,
	})
	if err != nil {
		t.Fatalf("ExecuteDeleteProgramme: %v", err)
	}

	if result.Attendance != 2 || result.Resources != 1 || result.Feedback != 1 ||
		result.Reminders != 1 || result.KPIs != 1 || result.TagLinks != 2 {
		t.Errorf("unexpected cascade counts: %+v", result)
	}
	if _, ok := progStore.programmes["p1"]; ok {
		t.Error("programme p1 should be deleted")
	}
	for _, a := range attStore.records {
		if a.ProgrammeID == "p1" {
			t.Error("attendance for p1 survived the cascade")
		}
	}
	for _, l := range linkStore.links {
		if l.ProgrammeID == "p1" {
			t.Error("tag link for p1 survived the cascade")
		}
	}
	if len(attStore.records) != 1 || len(linkStore.links) != 1 {
		t.Error("records of other programmes must be untouched")
	}
}

// TestExecuteDeleteProgramme_Missing tests deleting an unknown id.
func TestExecuteDeleteProgramme_Missing(t *testing.T) {
	_, err := ExecuteDeleteProgramme(context.Background(), "nope", DeleteProgrammeDeps{
		ProgrammeStore:  newMockProgrammeStore(),
		AttendanceStore: &mockAttendanceStore{},
		ResourceStore:   &mockResourceStore{},
		FeedbackStore:   &mockFeedbackStore{},
		ReminderStore:   &mockReminderStore{},
		KPIStore:        &mockKPIStore{},
		TagLinkStore:    &mockTagLinkStore{},
	})
	if err != programme.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
