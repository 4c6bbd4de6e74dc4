package web

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"steeple/internal/adapters/render"
	"steeple/internal/application/orchestrators"
	"steeple/internal/application/projections"
	attendanceDomain "steeple/internal/domain/attendance"
	feedbackDomain "steeple/internal/domain/feedback"
	kpiDomain "steeple/internal/domain/kpi"
	programmeDomain "steeple/internal/domain/programme"
	reminderDomain "steeple/internal/domain/reminder"
	resourceDomain "steeple/internal/domain/resource"
	taxonomyDomain "steeple/internal/domain/taxonomy"
	templateDomain "steeple/internal/domain/template"

	"github.com/google/uuid"
)

const dateFormat = "2006-01-02"

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// validationErrors are domain sentinels reported back to the client verbatim.
var validationErrors = []error{
	programmeDomain.ErrEmptyName,
	programmeDomain.ErrInvalidType,
	programmeDomain.ErrNegativeCapacity,
	programmeDomain.ErrInvalidDates,
	programmeDomain.ErrEmptyFrequency,
	attendanceDomain.ErrEmptyProgrammeID,
	attendanceDomain.ErrEmptyMemberID,
	attendanceDomain.ErrEmptyDate,
	attendanceDomain.ErrEmptyBatch,
	resourceDomain.ErrEmptyProgrammeID,
	resourceDomain.ErrEmptyName,
	resourceDomain.ErrInvalidQuantity,
	resourceDomain.ErrInvalidStatus,
	reminderDomain.ErrEmptyProgrammeID,
	reminderDomain.ErrEmptyMessage,
	reminderDomain.ErrEmptyRemindAt,
	kpiDomain.ErrEmptyProgrammeID,
	kpiDomain.ErrEmptyName,
	templateDomain.ErrEmptyName,
	taxonomyDomain.ErrEmptyLabel,
	taxonomyDomain.ErrEmptyProgrammeID,
	taxonomyDomain.ErrEmptyTagID,
	feedbackDomain.ErrEmptyProgrammeID,
	feedbackDomain.ErrEmptyMemberID,
	feedbackDomain.ErrInvalidRating,
}

// notFoundErrors map to 404.
var notFoundErrors = []error{
	sql.ErrNoRows,
	programmeDomain.ErrNotFound,
	resourceDomain.ErrNotFound,
	kpiDomain.ErrNotFound,
	templateDomain.ErrNotFound,
	projections.ErrNoAttendance,
}

// respondError maps domain errors to HTTP status codes: missing entities
// are 404, validation failures 400, everything else a logged 500.
func respondError(w http.ResponseWriter, err error) {
	for _, sentinel := range notFoundErrors {
		if errors.Is(err, sentinel) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
	}
	for _, sentinel := range validationErrors {
		if errors.Is(err, sentinel) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	internalError(w, err)
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(dateFormat, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/programmes", handleProgrammes)
	mux.HandleFunc("/api/attendance", handleAttendance)
	mux.HandleFunc("/api/attendance/bulk", handleAttendanceBulk)
	mux.HandleFunc("/api/resources", handleResources)
	mux.HandleFunc("/api/resources/status", handleResourceStatus)
	mux.HandleFunc("/api/reminders", handleReminders)
	mux.HandleFunc("/api/reminders/process", handleRemindersProcess)
	mux.HandleFunc("/api/kpis", handleKPIs)
	mux.HandleFunc("/api/kpis/progress", handleKPIProgress)
	mux.HandleFunc("/api/templates", handleTemplates)
	mux.HandleFunc("/api/templates/instantiate", handleTemplateInstantiate)
	mux.HandleFunc("/api/categories", handleCategories)
	mux.HandleFunc("/api/tags", handleTags)
	mux.HandleFunc("/api/programme-tags", handleProgrammeTags)
	mux.HandleFunc("/api/feedback", handleFeedback)
	mux.HandleFunc("/api/dashboard", handleDashboard)
	mux.HandleFunc("/export/programmes.csv", handleExportProgrammesCSV)
	mux.HandleFunc("/export/attendance.csv", handleExportAttendanceCSV)
	mux.HandleFunc("/export/programme.ics", handleExportICS)
	mux.HandleFunc("/export/report.pdf", handleExportPDF)
}

// --- Programme Handlers ---

// programmeInput is the JSON body for programme create and update.
type programmeInput struct {
	Name        *string  `json:"Name"`
	Description *string  `json:"Description"`
	Type        *string  `json:"Type"`
	StartDate   *string  `json:"StartDate"`
	EndDate     *string  `json:"EndDate"`
	IsRecurring *bool    `json:"IsRecurring"`
	Frequency   *string  `json:"Frequency"`
	Location    *string  `json:"Location"`
	Coordinator *string   `json:"Coordinator"`
	Capacity    *int      `json:"Capacity"`
	Attendees   *[]string `json:"Attendees"`
}

func strOr(p *string) string {
	if p != nil {
		return *p
	}
	return ""
}

// handleProgrammes handles GET/POST/PUT/DELETE for /api/programmes
func handleProgrammes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		if id := r.URL.Query().Get("id"); id != "" {
			p, err := stores.ProgrammeStore.GetByID(ctx, id)
			if err != nil {
				respondError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, p)
			return
		}
		programmes, err := stores.ProgrammeStore.List(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		if programmes == nil {
			programmes = []programmeDomain.Programme{}
		}
		writeJSON(w, http.StatusOK, programmes)
		return
	}

	if r.Method == "POST" {
		var input programmeInput
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		start, ok := parseDate(strOr(input.StartDate))
		if !ok {
			http.Error(w, "invalid StartDate", http.StatusBadRequest)
			return
		}
		end, ok := parseDate(strOr(input.EndDate))
		if !ok {
			http.Error(w, "invalid EndDate", http.StatusBadRequest)
			return
		}
		capacity := 0
		if input.Capacity != nil {
			capacity = *input.Capacity
		}
		isRecurring := false
		if input.IsRecurring != nil {
			isRecurring = *input.IsRecurring
		}
		p, err := orchestrators.ExecuteCreateProgramme(ctx, orchestrators.CreateProgrammeInput{
			Name:        strOr(input.Name),
			Description: strOr(input.Description),
			Type:        strOr(input.Type),
			StartDate:   start,
			EndDate:     end,
			IsRecurring: isRecurring,
			Frequency:   strOr(input.Frequency),
			Location:    strOr(input.Location),
			Coordinator: strOr(input.Coordinator),
			Capacity:    capacity,
		}, orchestrators.CreateProgrammeDeps{ProgrammeStore: stores.ProgrammeStore})
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, p)
		return
	}

	if r.Method == "PUT" {
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "id is required", http.StatusBadRequest)
			return
		}
		var input programmeInput
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		update := orchestrators.UpdateProgrammeInput{
			ProgrammeID: id,
			Name:        input.Name,
			Description: input.Description,
			Type:        input.Type,
			IsRecurring: input.IsRecurring,
			Frequency:   input.Frequency,
			Location:    input.Location,
			Coordinator: input.Coordinator,
			Capacity:    input.Capacity,
			Attendees:   input.Attendees,
		}
		if input.StartDate != nil {
			start, ok := parseDate(*input.StartDate)
			if !ok {
				http.Error(w, "invalid StartDate", http.StatusBadRequest)
				return
			}
			update.StartDate = &start
		}
		if input.EndDate != nil {
			end, ok := parseDate(*input.EndDate)
			if !ok {
				http.Error(w, "invalid EndDate", http.StatusBadRequest)
				return
			}
			update.EndDate = &end
		}
		p, err := orchestrators.ExecuteUpdateProgramme(ctx, update, orchestrators.UpdateProgrammeDeps{ProgrammeStore: stores.ProgrammeStore})
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
		return
	}

	if r.Method == "DELETE" {
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "id is required", http.StatusBadRequest)
			return
		}
		result, err := orchestrators.ExecuteDeleteProgramme(ctx, id, orchestrators.DeleteProgrammeDeps{
			ProgrammeStore:  stores.ProgrammeStore,
			AttendanceStore: stores.AttendanceStore,
			ResourceStore:   stores.ResourceStore,
			ReminderStore:   stores.ReminderStore,
			KPIStore:        stores.KPIStore,
			FeedbackStore:   stores.FeedbackStore,
			TagLinkStore:    stores.TagLinkStore,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
		return
	}

	http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
}

// --- Attendance Handlers ---

// handleAttendance handles GET/POST for /api/attendance
func handleAttendance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		programmeID := r.URL.Query().Get("programme_id")
		if programmeID == "" {
			http.Error(w, "programme_id is required", http.StatusBadRequest)
			return
		}
		records, err := stores.AttendanceStore.ListByProgrammeID(ctx, programmeID)
		if err != nil {
			internalError(w, err)
			return
		}
		if records == nil {
			records = []attendanceDomain.Attendance{}
		}
		writeJSON(w, http.StatusOK, records)
		return
	}

	if r.Method == "POST" {
		var input struct {
			ProgrammeID string `json:"ProgrammeID"`
			MemberID    string `json:"MemberID"`
			Date        string `json:"Date"`
			IsPresent   bool   `json:"IsPresent"`
			Notes       string `json:"Notes"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		date, ok := parseDate(input.Date)
		if !ok {
			http.Error(w, "invalid Date", http.StatusBadRequest)
			return
		}
		rec, err := orchestrators.ExecuteRecordAttendance(ctx, orchestrators.RecordAttendanceInput{
			ProgrammeID: input.ProgrammeID,
			MemberID:    input.MemberID,
			Date:        date,
			IsPresent:   input.IsPresent,
			Notes:       input.Notes,
		}, orchestrators.RecordAttendanceDeps{
			ProgrammeStore:  stores.ProgrammeStore,
			AttendanceStore: stores.AttendanceStore,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, rec)
		return
	}

	http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
}

// handleAttendanceBulk handles POST for /api/attendance/bulk
func handleAttendanceBulk(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	var input struct {
		ProgrammeID string `json:"ProgrammeID"`
		Date        string `json:"Date"`
		Entries     []struct {
			MemberID  string `json:"MemberID"`
			IsPresent bool   `json:"IsPresent"`
			Notes     string `json:"Notes"`
		} `json:"Entries"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	date, ok := parseDate(input.Date)
	if !ok {
		http.Error(w, "invalid Date", http.StatusBadRequest)
		return
	}
	entries := make([]attendanceDomain.BulkEntry, 0, len(input.Entries))
	for _, e := range input.Entries {
		entries = append(entries, attendanceDomain.BulkEntry{
			MemberID:  e.MemberID,
			IsPresent: e.IsPresent,
			Notes:     e.Notes,
		})
	}

	result, err := orchestrators.ExecuteRecordBulkAttendance(r.Context(), attendanceDomain.BulkRecord{
		ProgrammeID: input.ProgrammeID,
		Date:        date,
		Entries:     entries,
	}, orchestrators.RecordBulkAttendanceDeps{
		ProgrammeStore:  stores.ProgrammeStore,
		AttendanceStore: stores.AttendanceStore,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// --- Resource Handlers ---

// handleResources handles GET/POST for /api/resources
func handleResources(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		programmeID := r.URL.Query().Get("programme_id")
		if programmeID == "" {
			http.Error(w, "programme_id is required", http.StatusBadRequest)
			return
		}
		resources, err := stores.ResourceStore.ListByProgrammeID(ctx, programmeID)
		if err != nil {
			internalError(w, err)
			return
		}
		if resources == nil {
			resources = []resourceDomain.Resource{}
		}
		writeJSON(w, http.StatusOK, resources)
		return
	}

	if r.Method == "POST" {
		var input struct {
			ProgrammeID string  `json:"ProgrammeID"`
			Name        string  `json:"Name"`
			Type        string  `json:"Type"`
			Quantity    int     `json:"Quantity"`
			Unit        string  `json:"Unit"`
			Cost        float64 `json:"Cost"`
			Notes       string  `json:"Notes"`
			Status      string  `json:"Status"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		res, err := orchestrators.ExecuteAllocateResource(ctx, orchestrators.AllocateResourceInput{
			ProgrammeID: input.ProgrammeID,
			Name:        input.Name,
			Type:        input.Type,
			Quantity:    input.Quantity,
			Unit:        input.Unit,
			Cost:        input.Cost,
			Notes:       input.Notes,
			Status:      input.Status,
		}, orchestrators.AllocateResourceDeps{
			ProgrammeStore: stores.ProgrammeStore,
			ResourceStore:  stores.ResourceStore,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, res)
		return
	}

	http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
}

// handleResourceStatus handles POST for /api/resources/status
func handleResourceStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	var input struct {
		ID     string `json:"ID"`
		Status string `json:"Status"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	res, err := orchestrators.ExecuteUpdateResourceStatus(r.Context(), input.ID, input.Status,
		orchestrators.UpdateResourceStatusDeps{ResourceStore: stores.ResourceStore})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// --- Reminder Handlers ---

// handleReminders handles GET/POST for /api/reminders
func handleReminders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		programmeID := r.URL.Query().Get("programme_id")
		if programmeID == "" {
			http.Error(w, "programme_id is required", http.StatusBadRequest)
			return
		}
		reminders, err := stores.ReminderStore.ListByProgrammeID(ctx, programmeID)
		if err != nil {
			internalError(w, err)
			return
		}
		if reminders == nil {
			reminders = []reminderDomain.Reminder{}
		}
		writeJSON(w, http.StatusOK, reminders)
		return
	}

	if r.Method == "POST" {
		var input struct {
			ProgrammeID string `json:"ProgrammeID"`
			Message     string `json:"Message"`
			Recipient   string `json:"Recipient"`
			RemindAt    string `json:"RemindAt"` // RFC 3339
			CreatedBy   string `json:"CreatedBy"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		remindAt, err := time.Parse(time.RFC3339, input.RemindAt)
		if err != nil {
			http.Error(w, "invalid RemindAt", http.StatusBadRequest)
			return
		}
		rem, err := orchestrators.ExecuteScheduleReminder(ctx, orchestrators.ScheduleReminderInput{
			ProgrammeID: input.ProgrammeID,
			Message:     input.Message,
			Recipient:   input.Recipient,
			RemindAt:    remindAt,
			CreatedBy:   input.CreatedBy,
		}, orchestrators.ScheduleReminderDeps{
			ProgrammeStore: stores.ProgrammeStore,
			ReminderStore:  stores.ReminderStore,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, rem)
		return
	}

	http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
}

// handleRemindersProcess handles POST for /api/reminders/process
func handleRemindersProcess(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	sent, err := orchestrators.ExecuteProcessReminders(r.Context(), orchestrators.ProcessRemindersDeps{
		ProgrammeStore: stores.ProgrammeStore,
		ReminderStore:  stores.ReminderStore,
		EmailSender:    emailSender,
		EmailFrom:      emailFromAddress,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	if sent == nil {
		sent = []reminderDomain.Reminder{}
	}
	writeJSON(w, http.StatusOK, sent)
}

// --- KPI Handlers ---

// handleKPIs handles GET/POST for /api/kpis
func handleKPIs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		programmeID := r.URL.Query().Get("programme_id")
		if programmeID == "" {
			http.Error(w, "programme_id is required", http.StatusBadRequest)
			return
		}
		kpis, err := stores.KPIStore.ListByProgrammeID(ctx, programmeID)
		if err != nil {
			internalError(w, err)
			return
		}
		if kpis == nil {
			kpis = []kpiDomain.KPI{}
		}
		writeJSON(w, http.StatusOK, kpis)
		return
	}

	if r.Method == "POST" {
		var input struct {
			ProgrammeID string  `json:"ProgrammeID"`
			Name        string  `json:"Name"`
			Target      float64 `json:"Target"`
			Current     float64 `json:"Current"`
			Unit        string  `json:"Unit"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		k, err := orchestrators.ExecuteAddKPI(ctx, orchestrators.AddKPIInput{
			ProgrammeID: input.ProgrammeID,
			Name:        input.Name,
			Target:      input.Target,
			Current:     input.Current,
			Unit:        input.Unit,
		}, orchestrators.AddKPIDeps{
			ProgrammeStore: stores.ProgrammeStore,
			KPIStore:       stores.KPIStore,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, k)
		return
	}

	http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
}

// handleKPIProgress handles POST for /api/kpis/progress
func handleKPIProgress(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	var input struct {
		ID      string  `json:"ID"`
		Current float64 `json:"Current"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	k, err := orchestrators.ExecuteUpdateKPIProgress(r.Context(), input.ID, input.Current,
		orchestrators.UpdateKPIProgressDeps{KPIStore: stores.KPIStore})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, k)
}

// --- Template Handlers ---

// handleTemplates handles GET/POST for /api/templates
func handleTemplates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		templates, err := stores.TemplateStore.List(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		if templates == nil {
			templates = []templateDomain.Template{}
		}
		writeJSON(w, http.StatusOK, templates)
		return
	}

	if r.Method == "POST" {
		var input struct {
			Name        string `json:"Name"`
			Description string `json:"Description"`
			Type        string `json:"Type"`
			Capacity    int    `json:"Capacity"`
			Location    string `json:"Location"`
			IsRecurring bool   `json:"IsRecurring"`
			Frequency   string `json:"Frequency"`
			Resources   []struct {
				Name     string  `json:"Name"`
				Type     string  `json:"Type"`
				Quantity int     `json:"Quantity"`
				Unit     string  `json:"Unit"`
				Cost     float64 `json:"Cost"`
				Notes    string  `json:"Notes"`
			} `json:"Resources"`
			CreatedBy string `json:"CreatedBy"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		blueprints := make([]templateDomain.ResourceBlueprint, 0, len(input.Resources))
		for _, res := range input.Resources {
			blueprints = append(blueprints, templateDomain.ResourceBlueprint{
				Name:     res.Name,
				Type:     res.Type,
				Quantity: res.Quantity,
				Unit:     res.Unit,
				Cost:     res.Cost,
				Notes:    res.Notes,
			})
		}
		tpl, err := orchestrators.ExecuteCreateTemplate(ctx, orchestrators.CreateTemplateInput{
			Name:        input.Name,
			Description: input.Description,
			Type:        input.Type,
			Capacity:    input.Capacity,
			Location:    input.Location,
			IsRecurring: input.IsRecurring,
			Frequency:   input.Frequency,
			Resources:   blueprints,
			CreatedBy:   input.CreatedBy,
		}, orchestrators.CreateTemplateDeps{TemplateStore: stores.TemplateStore})
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, tpl)
		return
	}

	http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
}

// handleTemplateInstantiate handles POST for /api/templates/instantiate
func handleTemplateInstantiate(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	var input struct {
		TemplateID  string  `json:"TemplateID"`
		Name        *string `json:"Name"`
		Description *string `json:"Description"`
		Type        *string `json:"Type"`
		StartDate   string  `json:"StartDate"`
		EndDate     string  `json:"EndDate"`
		Location    *string `json:"Location"`
		Coordinator string  `json:"Coordinator"`
		Capacity    *int    `json:"Capacity"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	start, ok := parseDate(input.StartDate)
	if !ok {
		http.Error(w, "invalid StartDate", http.StatusBadRequest)
		return
	}
	end, ok := parseDate(input.EndDate)
	if !ok {
		http.Error(w, "invalid EndDate", http.StatusBadRequest)
		return
	}

	result, err := orchestrators.ExecuteInstantiateTemplate(r.Context(), orchestrators.InstantiateTemplateInput{
		TemplateID:  input.TemplateID,
		Name:        input.Name,
		Description: input.Description,
		Type:        input.Type,
		StartDate:   start,
		EndDate:     end,
		Location:    input.Location,
		Coordinator: input.Coordinator,
		Capacity:    input.Capacity,
	}, orchestrators.InstantiateTemplateDeps{
		TemplateStore:  stores.TemplateStore,
		ProgrammeStore: stores.ProgrammeStore,
		ResourceStore:  stores.ResourceStore,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// --- Taxonomy Handlers ---

func taxonomyDeps() orchestrators.TaxonomyDeps {
	return orchestrators.TaxonomyDeps{
		CategoryStore:  stores.CategoryStore,
		TagStore:       stores.TagStore,
		TagLinkStore:   stores.TagLinkStore,
		ProgrammeStore: stores.ProgrammeStore,
	}
}

// handleCategories handles GET/POST for /api/categories
func handleCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		categories, err := stores.CategoryStore.List(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		if categories == nil {
			categories = []taxonomyDomain.Category{}
		}
		writeJSON(w, http.StatusOK, categories)
		return
	}

	if r.Method == "POST" {
		var input struct {
			Label string `json:"Label"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		c, err := orchestrators.ExecuteAddCategory(ctx, input.Label, taxonomyDeps())
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, c)
		return
	}

	http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
}

// handleTags handles GET/POST for /api/tags
func handleTags(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		tags, err := stores.TagStore.List(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		if tags == nil {
			tags = []taxonomyDomain.Tag{}
		}
		writeJSON(w, http.StatusOK, tags)
		return
	}

	if r.Method == "POST" {
		var input struct {
			Label string `json:"Label"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		t, err := orchestrators.ExecuteAddTag(ctx, input.Label, taxonomyDeps())
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, t)
		return
	}

	http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
}

// handleProgrammeTags handles GET/POST/DELETE for /api/programme-tags
func handleProgrammeTags(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		programmeID := r.URL.Query().Get("programme_id")
		if programmeID == "" {
			http.Error(w, "programme_id is required", http.StatusBadRequest)
			return
		}
		links, err := stores.TagLinkStore.ListByProgrammeID(ctx, programmeID)
		if err != nil {
			internalError(w, err)
			return
		}
		if links == nil {
			links = []taxonomyDomain.TagLink{}
		}
		writeJSON(w, http.StatusOK, links)
		return
	}

	if r.Method == "POST" || r.Method == "DELETE" {
		var input struct {
			ProgrammeID string `json:"ProgrammeID"`
			TagID       string `json:"TagID"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		var err error
		if r.Method == "POST" {
			err = orchestrators.ExecuteAssignTag(ctx, input.ProgrammeID, input.TagID, taxonomyDeps())
		} else {
			err = orchestrators.ExecuteRemoveTag(ctx, input.ProgrammeID, input.TagID, taxonomyDeps())
		}
		if err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
}

// --- Feedback Handler ---

// handleFeedback handles GET/POST for /api/feedback
func handleFeedback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		programmeID := r.URL.Query().Get("programme_id")
		if programmeID == "" {
			http.Error(w, "programme_id is required", http.StatusBadRequest)
			return
		}
		entries, err := stores.FeedbackStore.ListByProgrammeID(ctx, programmeID)
		if err != nil {
			internalError(w, err)
			return
		}
		if entries == nil {
			entries = []feedbackDomain.Feedback{}
		}
		writeJSON(w, http.StatusOK, entries)
		return
	}

	if r.Method == "POST" {
		var input struct {
			ProgrammeID string `json:"ProgrammeID"`
			MemberID    string `json:"MemberID"`
			Rating      int    `json:"Rating"`
			Comment     string `json:"Comment"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		f, err := orchestrators.ExecuteSubmitFeedback(ctx, orchestrators.SubmitFeedbackInput{
			ProgrammeID: input.ProgrammeID,
			MemberID:    input.MemberID,
			Rating:      input.Rating,
			Comment:     input.Comment,
		}, orchestrators.SubmitFeedbackDeps{
			ProgrammeStore: stores.ProgrammeStore,
			FeedbackStore:  stores.FeedbackStore,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, f)
		return
	}

	http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
}

// --- Dashboard Handler ---

// handleDashboard handles GET for /api/dashboard
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	result, err := projections.GetDashboard(r.Context(), projections.GetDashboardDeps{
		ProgrammeStore:  stores.ProgrammeStore,
		AttendanceStore: stores.AttendanceStore,
		FeedbackStore:   stores.FeedbackStore,
		ReminderStore:   stores.ReminderStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// --- Export Handlers ---

// handleExportProgrammesCSV handles GET for /export/programmes.csv
func handleExportProgrammesCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	csv, err := projections.BuildProgrammesCSV(r.Context(), projections.BuildProgrammesCSVDeps{
		ProgrammeStore: stores.ProgrammeStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="programmes.csv"`)
	w.Write([]byte(csv))
}

// handleExportAttendanceCSV handles GET for /export/attendance.csv
func handleExportAttendanceCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	programmeID := r.URL.Query().Get("programme_id")
	if programmeID == "" {
		http.Error(w, "programme_id is required", http.StatusBadRequest)
		return
	}

	csv, err := projections.BuildAttendanceCSV(r.Context(), programmeID, projections.BuildAttendanceCSVDeps{
		ProgrammeStore:  stores.ProgrammeStore,
		AttendanceStore: stores.AttendanceStore,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	p, err := stores.ProgrammeStore.GetByID(r.Context(), programmeID)
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+render.Slug(p.Name)+`_attendance.csv"`)
	w.Write([]byte(csv))
}

// handleExportICS handles GET for /export/programme.ics
func handleExportICS(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	programmeID := r.URL.Query().Get("programme_id")
	if programmeID == "" {
		http.Error(w, "programme_id is required", http.StatusBadRequest)
		return
	}

	p, err := stores.ProgrammeStore.GetByID(r.Context(), programmeID)
	if err != nil {
		respondError(w, err)
		return
	}
	ics := render.BuildICS(p, time.Now())
	w.Header().Set("Content-Type", "text/calendar")
	w.Header().Set("Content-Disposition", `attachment; filename="`+render.Slug(p.Name)+`.ics"`)
	w.Write([]byte(ics))
}

// handleExportPDF handles GET for /export/report.pdf
func handleExportPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	programmeID := r.URL.Query().Get("programme_id")
	if programmeID == "" {
		http.Error(w, "programme_id is required", http.StatusBadRequest)
		return
	}

	report, err := projections.GetProgrammeReport(r.Context(), programmeID, projections.GetProgrammeReportDeps{
		ProgrammeStore:  stores.ProgrammeStore,
		AttendanceStore: stores.AttendanceStore,
		ResourceStore:   stores.ResourceStore,
		KPIStore:        stores.KPIStore,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	pdf, err := render.PDFRenderer{}.RenderProgrammeReport(report)
	if err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+render.Slug(report.Programme.Name)+`_report.pdf"`)
	w.Write(pdf)
}
