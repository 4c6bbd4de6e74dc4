package orchestrators

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
	"steeple/internal/domain/taxonomy"
	"steeple/internal/domain/template"
)

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

// seqID returns a generator that yields "id-1", "id-2", ...
func seqID() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func notFound(what string) error {
	return fmt.Errorf("%s not found: %w", what, sql.ErrNoRows)
}

// --- programme store mock ---

type mockProgrammeStore struct {
	programmes map[string]programme.Programme
	saves      int
	failSave   bool
}

func newMockProgrammeStore() *mockProgrammeStore {
	return &mockProgrammeStore{programmes: make(map[string]programme.Programme)}
}

func (m *mockProgrammeStore) GetByID(_ context.Context, id string) (programme.Programme, error) {
	p, ok := m.programmes[id]
	if !ok {
		return programme.Programme{}, notFound("programme")
	}
	return p, nil
}

func (m *mockProgrammeStore) Save(_ context.Context, p programme.Programme) error {
	if m.failSave {
		return fmt.Errorf("disk full")
	}
	m.programmes[p.ID] = p
	m.saves++
	return nil
}

func (m *mockProgrammeStore) Delete(_ context.Context, id string) error {
	delete(m.programmes, id)
	return nil
}

func (m *mockProgrammeStore) List(_ context.Context) ([]programme.Programme, error) {
	var out []programme.Programme
	for _, p := range m.programmes {
		out = append(out, p)
	}
	return out, nil
}

// --- attendance store mock ---

type mockAttendanceStore struct {
	records []attendance.Attendance
}

func (m *mockAttendanceStore) Save(_ context.Context, a attendance.Attendance) error {
	m.records = append(m.records, a)
	return nil
}

func (m *mockAttendanceStore) ListByProgrammeID(_ context.Context, programmeID string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range m.records {
		if a.ProgrammeID == programmeID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAttendanceStore) DeleteByProgrammeID(_ context.Context, programmeID string) (int, error) {
	var kept []attendance.Attendance
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

func (m *mockAttendanceStore) List(_ context.Context) ([]attendance.Attendance, error) {
	return m.records, nil
}

// --- resource store mock ---

type mockResourceStore struct {
	resources []resource.Resource
	failSave  bool
}

func (m *mockResourceStore) GetByID(_ context.Context, id string) (resource.Resource, error) {
	for _, r := range m.resources {
		if r.ID == id {
			return r, nil
		}
	}
	return resource.Resource{}, notFound("resource")
}

func (m *mockResourceStore) Save(_ context.Context, r resource.Resource) error {
	if m.failSave {
		return fmt.Errorf("disk full")
	}
	for i, existing := range m.resources {
		if existing.ID == r.ID {
			m.resources[i] = r
			return nil
		}
	}
	m.resources = append(m.resources, r)
	return nil
}

func (m *mockResourceStore) ListByProgrammeID(_ context.Context, programmeID string) ([]resource.Resource, error) {
	var out []resource.Resource
	for _, r := range m.resources {
		if r.ProgrammeID == programmeID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockResourceStore) DeleteByProgrammeID(_ context.Context, programmeID string) (int, error) {
	var kept []resource.Resource
	removed := 0
	for _, r := range m.resources {
		if r.ProgrammeID == programmeID {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	m.resources = kept
	return removed, nil
}

func (m *mockResourceStore) List(_ context.Context) ([]resource.Resource, error) {
	return m.resources, nil
}

// --- reminder store mock ---

type mockReminderStore struct {
	reminders []reminder.Reminder
}

func (m *mockReminderStore) GetByID(_ context.Context, id string) (reminder.Reminder, error) {
	for _, r := range m.reminders {
		if r.ID == id {
			return r, nil
		}
	}
	return reminder.Reminder{}, notFound("reminder")
}

func (m *mockReminderStore) Save(_ context.Context, r reminder.Reminder) error {
	for i, existing := range m.reminders {
		if existing.ID == r.ID {
			m.reminders[i] = r
			return nil
		}
	}
	m.reminders = append(m.reminders, r)
	return nil
}

func (m *mockReminderStore) ListDue(_ context.Context, now time.Time) ([]reminder.Reminder, error) {
	var out []reminder.Reminder
	for _, r := range m.reminders {
		if r.IsDue(now) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockReminderStore) ListByProgrammeID(_ context.Context, programmeID string) ([]reminder.Reminder, error) {
	var out []reminder.Reminder
	for _, r := range m.reminders {
		if r.ProgrammeID == programmeID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockReminderStore) DeleteByProgrammeID(_ context.Context, programmeID string) (int, error) {
	var kept []reminder.Reminder
	removed := 0
	for _, r := range m.reminders {
		if r.ProgrammeID == programmeID {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	m.reminders = kept
	return removed, nil
}

func (m *mockReminderStore) List(_ context.Context) ([]reminder.Reminder, error) {
	return m.reminders, nil
}

// --- kpi store mock ---

type mockKPIStore struct {
	kpis []kpi.KPI
}

func (m *mockKPIStore) GetByID(_ context.Context, id string) (kpi.KPI, error) {
	for _, k := range m.kpis {
		if k.ID == id {
			return k, nil
		}
	}
	return kpi.KPI{}, notFound("kpi")
}

func (m *mockKPIStore) Save(_ context.Context, k kpi.KPI) error {
	for i, existing := range m.kpis {
		if existing.ID == k.ID {
			m.kpis[i] = k
			return nil
		}
	}
	m.kpis = append(m.kpis, k)
	return nil
}

func (m *mockKPIStore) ListByProgrammeID(_ context.Context, programmeID string) ([]kpi.KPI, error) {
	var out []kpi.KPI
	for _, k := range m.kpis {
		if k.ProgrammeID == programmeID {
			out = append(out, k)
		}
	}
	return out, nil
}

func (m *mockKPIStore) DeleteByProgrammeID(_ context.Context, programmeID string) (int, error) {
	var kept []kpi.KPI
	removed := 0
	for _, k := range m.kpis {
		if k.ProgrammeID == programmeID {
			removed++
			continue
		}
		kept = append(kept, k)
	}
	m.kpis = kept
	return removed, nil
}

func (m *mockKPIStore) List(_ context.Context) ([]kpi.KPI, error) {
	return m.kpis, nil
}

// --- feedback store mock ---

type mockFeedbackStore struct {
	feedback []feedback.Feedback
}

func (m *mockFeedbackStore) Save(_ context.Context, f feedback.Feedback) error {
	m.feedback = append(m.feedback, f)
	return nil
}

func (m *mockFeedbackStore) ListByProgrammeID(_ context.Context, programmeID string) ([]feedback.Feedback, error) {
	var out []feedback.Feedback
	for _, f := range m.feedback {
		if f.ProgrammeID == programmeID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *mockFeedbackStore) List(_ context.Context) ([]feedback.Feedback, error) {
	return m.feedback, nil
}

func (m *mockFeedbackStore) DeleteByProgrammeID(_ context.Context, programmeID string) (int, error) {
	var kept []feedback.Feedback
	removed := 0
	for _, f := range m.feedback {
		if f.ProgrammeID == programmeID {
			removed++
			continue
		}
		kept = append(kept, f)
	}
	m.feedback = kept
	return removed, nil
}

// --- template store mock ---

type mockTemplateStore struct {
	templates map[string]template.Template
}

func newMockTemplateStore() *mockTemplateStore {
	return &mockTemplateStore{templates: make(map[string]template.Template)}
}

func (m *mockTemplateStore) GetByID(_ context.Context, id string) (template.Template, error) {
	t, ok := m.templates[id]
	if !ok {
		return template.Template{}, notFound("template")
	}
	return t, nil
}

func (m *mockTemplateStore) Save(_ context.Context, t template.Template) error {
	m.templates[t.ID] = t
	return nil
}

func (m *mockTemplateStore) Delete(_ context.Context, id string) error {
	delete(m.templates, id)
	return nil
}

func (m *mockTemplateStore) List(_ context.Context) ([]template.Template, error) {
	var out []template.Template
	for _, t := range m.templates {
		out = append(out, t)
	}
	return out, nil
}

// --- taxonomy store mocks ---

type mockCategoryStore struct {
	categories []taxonomy.Category
}

func (m *mockCategoryStore) Save(_ context.Context, c taxonomy.Category) error {
	m.categories = append(m.categories, c)
	return nil
}

func (m *mockCategoryStore) List(_ context.Context) ([]taxonomy.Category, error) {
	return m.categories, nil
}

type mockTagStore struct {
	tags []taxonomy.Tag
}

func (m *mockTagStore) GetByID(_ context.Context, id string) (taxonomy.Tag, error) {
	for _, t := range m.tags {
		if t.ID == id {
			return t, nil
		}
	}
	return taxonomy.Tag{}, notFound("tag")
}

func (m *mockTagStore) Save(_ context.Context, t taxonomy.Tag) error {
	m.tags = append(m.tags, t)
	return nil
}

func (m *mockTagStore) List(_ context.Context) ([]taxonomy.Tag, error) {
	return m.tags, nil
}

type mockTagLinkStore struct {
	links []taxonomy.TagLink
}

func (m *mockTagLinkStore) Save(_ context.Context, l taxonomy.TagLink) error {
	for _, existing := range m.links {
		if existing == l {
			return nil
		}
	}
	m.links = append(m.links, l)
	return nil
}

func (m *mockTagLinkStore) Delete(_ context.Context, l taxonomy.TagLink) error {
	var kept []taxonomy.TagLink
	for _, existing := range m.links {
		if existing == l {
			continue
		}
		kept = append(kept, existing)
	}
	m.links = kept
	return nil
}

func (m *mockTagLinkStore) Exists(_ context.Context, l taxonomy.TagLink) (bool, error) {
	for _, existing := range m.links {
		if existing == l {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockTagLinkStore) ListByProgrammeID(_ context.Context, programmeID string) ([]taxonomy.TagLink, error) {
	var out []taxonomy.TagLink
	for _, l := range m.links {
		if l.ProgrammeID == programmeID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *mockTagLinkStore) DeleteByProgrammeID(_ context.Context, programmeID string) (int, error) {
	var kept []taxonomy.TagLink
	removed := 0
	for _, l := range m.links {
		if l.ProgrammeID == programmeID {
			removed++
			continue
		}
		kept = append(kept, l)
	}
	m.links = kept
	return removed, nil
}
