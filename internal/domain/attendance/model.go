package attendance

import (
	"errors"
	"time"
)

// Domain errors.
var (
	ErrEmptyProgrammeID = errors.New("attendance must reference a programme")
	ErrEmptyMemberID    = errors.New("attendance must reference a member")
	ErrEmptyDate        = errors.New("attendance date must be set")
	ErrEmptyBatch       = errors.New("bulk attendance batch has no entries")
)

// Attendance is an immutable historical entry of one member's presence or
// absence on one date for one programme. Duplicate entries for the same
// (programme, member, date) tuple are permitted: the history is additive.
type Attendance struct {
	ID          string
	ProgrammeID string
	MemberID    string
	Date        time.Time
	IsPresent   bool
	Notes       string
}

// Validate checks if the Attendance has valid data.
// PRE: Attendance struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (a *Attendance) Validate() error {
	if a.ProgrammeID == "" {
		return ErrEmptyProgrammeID
	}
	if a.MemberID == "" {
		return ErrEmptyMemberID
	}
	if a.Date.IsZero() {
		return ErrEmptyDate
	}
	return nil
}

// BulkEntry is one member's presence state within a bulk batch.
type BulkEntry struct {
	MemberID  string
	IsPresent bool
	Notes     string
}

// BulkRecord is the transient input for recording attendance for a whole
// group on a shared programme and date in one operation.
type BulkRecord struct {
	ProgrammeID string
	Date        time.Time
	Entries     []BulkEntry
}

// Validate checks if the BulkRecord has valid data.
// POST: Returns error if the batch cannot be expanded, nil otherwise
func (b *BulkRecord) Validate() error {
	if b.ProgrammeID == "" {
		return ErrEmptyProgrammeID
	}
	if b.Date.IsZero() {
		return ErrEmptyDate
	}
	if len(b.Entries) == 0 {
		return ErrEmptyBatch
	}
	for _, e := range b.Entries {
		if e.MemberID == "" {
			return ErrEmptyMemberID
		}
	}
	return nil
}
