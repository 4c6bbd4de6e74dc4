package feedback

import (
	"errors"
	"time"
)

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// Domain errors.
var (
	ErrEmptyProgrammeID = errors.New("feedback must reference a programme")
	ErrEmptyMemberID    = errors.New("feedback must reference a member")
	ErrInvalidRating    = errors.New("feedback rating must be between 1 and 5")
)

// Feedback is one member's rating and comment for a programme.
type Feedback struct {
	ID          string
	ProgrammeID string
	MemberID    string
	Rating      int
	Comment     string
	SubmittedAt time.Time
}

// Validate checks if the Feedback has valid data.
// POST: Returns nil if valid, error otherwise
func (f *Feedback) Validate() error {
	if f.ProgrammeID == "" {
		return ErrEmptyProgrammeID
	}
	if f.MemberID == "" {
		return ErrEmptyMemberID
	}
	if f.Rating < MinRating || f.Rating > MaxRating {
		return ErrInvalidRating
	}
	return nil
}
