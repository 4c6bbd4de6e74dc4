package orchestrators

import (
	"context"
	"fmt"
	htmlpkg "html"
	"log/slog"
	"time"

	"steeple/internal/adapters/email"
	programmeStore "steeple/internal/adapters/storage/programme"
	reminderStore "steeple/internal/adapters/storage/reminder"
	"steeple/internal/domain/reminder"

	"github.com/google/uuid"
)

// ScheduleReminderInput carries input for the schedule reminder orchestrator.
type ScheduleReminderInput struct {
	ProgrammeID string
	Message     string
	Recipient   string // email address; empty means log-only delivery
	RemindAt    time.Time
	CreatedBy   string // member ID of the scheduling actor
}

// ScheduleReminderDeps holds dependencies for ScheduleReminder.
type ScheduleReminderDeps struct {
	ProgrammeStore programmeStore.Store
	ReminderStore  reminderStore.Store
	GenerateID     func() string
	Now            func() time.Time
}

// ExecuteScheduleReminder stores a new pending reminder for a programme.
// PRE: Programme exists
// POST: Reminder saved with status=pending and SentAt unset
func ExecuteScheduleReminder(ctx context.Context, input ScheduleReminderInput, deps ScheduleReminderDeps) (reminder.Reminder, error) {
	generateID := deps.GenerateID
	if generateID == nil {
		generateID = uuid.NewString
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	if _, err := deps.ProgrammeStore.GetByID(ctx, input.ProgrammeID); err != nil {
		return reminder.Reminder{}, err
	}

	r := reminder.Reminder{
		ID:          generateID(),
		ProgrammeID: input.ProgrammeID,
		Message:     input.Message,
		Recipient:   input.Recipient,
		RemindAt:    input.RemindAt,
		Status:      reminder.StatusPending,
		SentAt:      nil,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   now(),
	}
	if err := r.Validate(); err != nil {
		return reminder.Reminder{}, err
	}

	if err := deps.ReminderStore.Save(ctx, r); err != nil {
		slog.Error("reminder_schedule_failed", "programme_id", input.ProgrammeID, "error", err)
		return reminder.Reminder{}, err
	}

	slog.Info("reminder_scheduled", "reminder_id", r.ID, "programme_id", r.ProgrammeID,
		"remind_at", r.RemindAt.Format(time.RFC3339))
	return r, nil
}

// ProcessRemindersDeps holds dependencies for ProcessReminders.
type ProcessRemindersDeps struct {
	ProgrammeStore programmeStore.Store
	ReminderStore  reminderStore.Store
	EmailSender    email.Sender // nil skips delivery
	EmailFrom      string
	Now            func() time.Time
}

// ExecuteProcessReminders sweeps due pending reminders: each is marked
// sent with SentAt=now, persisted, and delivered to its recipient via the
// email sender. Delivery failure does not undo the sent mark; the sweep
// is the source of truth for reminder state.
// POST: Returns the reminders that were marked sent in this sweep
func ExecuteProcessReminders(ctx context.Context, deps ProcessRemindersDeps) ([]reminder.Reminder, error) {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	at := now()

	due, err := deps.ReminderStore.ListDue(ctx, at)
	if err != nil {
		return nil, fmt.Errorf("failed to list due reminders: %w", err)
	}
	if len(due) == 0 {
		return nil, nil
	}

	var sent []reminder.Reminder
	for _, r := range due {
		if err := r.MarkSent(at); err != nil {
			slog.Warn("reminder_sweep_skipped", "reminder_id", r.ID, "error", err)
			continue
		}
		if err := deps.ReminderStore.Save(ctx, r); err != nil {
			slog.Error("reminder_sweep_save_failed", "reminder_id", r.ID, "error", err)
			return sent, err
		}
		sent = append(sent, r)

		if deps.EmailSender == nil || r.Recipient == "" {
			slog.Info("reminder_sent", "reminder_id", r.ID, "programme_id", r.ProgrammeID, "delivery", "log-only")
			continue
		}
		subject, html := buildReminderEmail(ctx, r, deps)
		if _, err := deps.EmailSender.Send(ctx, email.SendRequest{
			To:      []string{r.Recipient},
			From:    deps.EmailFrom,
			Subject: subject,
			HTML:    html,
		}); err != nil {
			// Sent state is kept: the reminder fired, delivery is best-effort.
			slog.Error("reminder_delivery_failed", "reminder_id", r.ID, "recipient", r.Recipient, "error", err)
			continue
		}
		slog.Info("reminder_sent", "reminder_id", r.ID, "programme_id", r.ProgrammeID, "recipient", r.Recipient)
	}

	return sent, nil
}

func buildReminderEmail(ctx context.Context, r reminder.Reminder, deps ProcessRemindersDeps) (subject, html string) {
	subject = "Programme reminder"
	name := ""
	if deps.ProgrammeStore != nil {
		if p, err := deps.ProgrammeStore.GetByID(ctx, r.ProgrammeID); err == nil {
			name = p.Name
			subject = fmt.Sprintf("Reminder: %s", p.Name)
		}
	}
	html = fmt.Sprintf("<p>%s</p>", htmlpkg.EscapeString(r.Message))
	if name != "" {
		html = fmt.Sprintf("<h2>%s</h2>%s", htmlpkg.EscapeString(name), html)
	}
	return subject, html
}
