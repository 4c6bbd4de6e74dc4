package web

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	attendanceDomain "steeple/internal/domain/attendance"
	programmeDomain "steeple/internal/domain/programme"
)

// Mock implementations for testing

type mockProgrammeStore struct {
	programmes map[string]programmeDomain.Programme
}

func (m *mockProgrammeStore) GetByID(_ context.Context, id string) (programmeDomain.Programme, error) {
	if p, ok := m.programmes[id]; ok {
		return p, nil
	}
	return programmeDomain.Programme{}, sql.ErrNoRows
}

func (m *mockProgrammeStore) Save(_ context.Context, p programmeDomain.Programme) error {
	m.programmes[p.ID] = p
	return nil
}

func (m *mockProgrammeStore) Delete(_ context.Context, id string) error {
	delete(m.programmes, id)
	return nil
}

func (m *mockProgrammeStore) List(_ context.Context) ([]programmeDomain.Programme, error) {
	var out []programmeDomain.Programme
	for _, p := range m.programmes {
		out = append(out, p)
	}
	return out, nil
}

type mockAttendanceStore struct {
	records []attendanceDomain.Attendance
}

func (m *mockAttendanceStore) Save(_ context.Context, a attendanceDomain.Attendance) error {
	m.records = append(m.records, a)
	return nil
}

func (m *mockAttendanceStore) ListByProgrammeID(_ context.Context, programmeID string) ([]attendanceDomain.Attendance, error) {
	var out []attendanceDomain.Attendance
	for _, a := range m.records {
		if a.ProgrammeID == programmeID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAttendanceStore) DeleteByProgrammeID(_ context.Context, programmeID string) (int, error) {
	var kept []attendanceDomain.Attendance
	removed := 0
	for _, a := range m.records {
		if a.ProgrammeID == programmeID {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	m.records = kept
	return removed, nil
}

func (m *mockAttendanceStore) List(_ context.Context) ([]attendanceDomain.Attendance, error) {
	return m.records, nil
}

func newTestMux(t *testing.T) (http.Handler, *mockProgrammeStore, *mockAttendanceStore) {
	t.Helper()
	progStore := &mockProgrammeStore{programmes: make(map[string]programmeDomain.Programme)}
	attStore := &mockAttendanceStore{}
	RateLimitPerSecond = 1000

	mux := NewMux(t.TempDir(), &Stores{
		ProgrammeStore:  progStore,
		AttendanceStore: attStore,
	})
	return mux, progStore, attStore
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// TestCreateProgrammeRoute tests POST /api/programmes end to end.
func TestCreateProgrammeRoute(t *testing.T) {
	mux, progStore, _ := newTestMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, jsonRequest("POST", "/api/programmes",
		`{"Name":"Youth Night","Type":"ministry","StartDate":"2026-02-06","Capacity":80}`))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var p programmeDomain.Programme
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if p.Name != "Youth Night" || p.CurrentAttendees != 0 {
		t.Errorf("unexpected programme: %+v", p)
	}
	if _, ok := progStore.programmes[p.ID]; !ok {
		t.Error("programme was not persisted")
	}
}

// TestCreateProgrammeRoute_Invalid tests the validation error mapping.
func TestCreateProgrammeRoute_Invalid(t *testing.T) {
	mux, _, _ := newTestMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, jsonRequest("POST", "/api/programmes",
		`{"Name":"","Type":"ministry","StartDate":"2026-02-06"}`))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, jsonRequest("POST", "/api/programmes", `{"Bogus":true}`))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown field: status = %d, want 400", rec.Code)
	}
}

// TestRecordAttendanceRoute tests that POST /api/attendance stores a record
// and grows the roster.
func TestRecordAttendanceRoute(t *testing.T) {
	mux, progStore, attStore := newTestMux(t)
	progStore.programmes["p1"] = programmeDomain.Programme{
		ID: "p1", Name: "Youth Night", Type: programmeDomain.TypeMinistry,
		StartDate: time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC), Attendees: []string{},
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, jsonRequest("POST", "/api/attendance",
		`{"ProgrammeID":"p1","MemberID":"m1","Date":"2026-02-06","IsPresent":true}`))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if len(attStore.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(attStore.records))
	}
	if got := progStore.programmes["p1"].CurrentAttendees; got != 1 {
		t.Errorf("CurrentAttendees = %d, want 1", got)
	}
}

// TestAttendanceRoute_MissingProgramme tests the 404 mapping.
func TestAttendanceRoute_MissingProgramme(t *testing.T) {
	mux, _, _ := newTestMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, jsonRequest("POST", "/api/attendance",
		`{"ProgrammeID":"nope","MemberID":"m1","Date":"2026-02-06","IsPresent":true}`))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

// TestExportAttendanceCSVRoute tests the CSV download, filename included.
func TestExportAttendanceCSVRoute(t *testing.T) {
	mux, progStore, attStore := newTestMux(t)
	progStore.programmes["p1"] = programmeDomain.Programme{
		ID: "p1", Name: "Youth Night", Type: programmeDomain.TypeMinistry,
		StartDate: time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC),
	}
	attStore.records = []attendanceDomain.Attendance{
		{ID: "a1", ProgrammeID: "p1", MemberID: "m1", Date: time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC), IsPresent: true},
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/export/attendance.csv?programme_id=p1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "youth_night_attendance.csv") {
		t.Errorf("Content-Disposition = %q", got)
	}
	if !strings.Contains(rec.Body.String(), `"m1","Present"`) {
		t.Errorf("unexpected CSV body: %s", rec.Body.String())
	}

	// Empty history is a 404.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/export/attendance.csv?programme_id=p2", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing programme: status = %d, want 404", rec.Code)
	}
}

// TestSecurityHeaders tests that responses carry the hardening headers.
func TestSecurityHeaders(t *testing.T) {
	mux, _, _ := newTestMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/programmes", nil))

	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing X-Content-Type-Options")
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("missing X-Frame-Options")
	}
}
