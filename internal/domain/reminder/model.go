package reminder

import (
	"errors"
	"strings"
	"time"
)

// Status constants for the reminder lifecycle.
const (
	StatusPending = "pending"
	StatusSent    = "sent"
)

// Domain errors.
var (
	ErrNotFound         = errors.New("reminder not found")
	ErrEmptyProgrammeID = errors.New("reminder must reference a programme")
	ErrEmptyMessage     = errors.New("reminder message cannot be empty")
	ErrEmptyRemindAt    = errors.New("reminder time must be set")
	ErrAlreadySent      = errors.New("reminder already sent")
)

// Reminder is a time-based notification tied to a programme. Reminders are
// never deleted by the sweep; sent reminders stay as history.
type Reminder struct {
	ID          string
	ProgrammeID string
	Message     string
	Recipient   string // email address; empty means log-only
	RemindAt    time.Time
	Status      string
	SentAt      *time.Time
	CreatedBy   string // member ID of the scheduling actor
	CreatedAt   time.Time
}

// Validate checks if the Reminder has valid data.
// PRE: Reminder struct is populated
// POST: Returns nil if valid, error otherwise
func (r *Reminder) Validate() error {
	if r.ProgrammeID == "" {
		return ErrEmptyProgrammeID
	}
	if strings.TrimSpace(r.Message) == "" {
		return ErrEmptyMessage
	}
	if r.RemindAt.IsZero() {
		return ErrEmptyRemindAt
	}
	return nil
}

// IsDue reports whether a pending reminder is due at the given time.
func (r *Reminder) IsDue(now time.Time) bool {
	return r.Status == StatusPending && !r.RemindAt.After(now)
}

// MarkSent transitions the reminder to sent.
// PRE: Status is pending
// POST: Status is sent, SentAt is set to now
func (r *Reminder) MarkSent(now time.Time) error {
	if r.Status != StatusPending {
		return ErrAlreadySent
	}
	r.Status = StatusSent
	r.SentAt = &now
	return nil
}
