package programme

import (
	"errors"
	"strings"
	"time"
)

// Programme type constants.
const (
	TypeMinistry   = "ministry"
	TypeCounseling = "counseling"
	TypeService    = "service"
	TypeTraining   = "training"
	TypeOutreach   = "outreach"
	TypeOther      = "other"
)

// Recurrence frequency constants.
const (
	FrequencyDaily     = "daily"
	FrequencyWeekly    = "weekly"
	FrequencyBiweekly  = "biweekly"
	FrequencyMonthly   = "monthly"
	FrequencyQuarterly = "quarterly"
)

// Domain errors.
var (
	ErrNotFound         = errors.New("programme not found")
	ErrEmptyName        = errors.New("programme name cannot be empty")
	ErrInvalidType      = errors.New("invalid programme type")
	ErrNegativeCapacity = errors.New("programme capacity cannot be negative")
	ErrInvalidDates     = errors.New("programme end date cannot be before start date")
	ErrEmptyFrequency   = errors.New("recurring programme requires a frequency")
)

// Programme represents a recurring or one-off church activity with a
// capacity and an attendee roster.
// INVARIANT: CurrentAttendees == len(Attendees); Attendees holds no duplicates.
type Programme struct {
	ID               string
	Name             string
	Description      string // markdown
	Type             string
	StartDate        time.Time
	EndDate          time.Time // zero value means open-ended
	IsRecurring      bool
	Frequency        string // set only when IsRecurring
	Location         string
	Coordinator      string // member ID of the coordinator
	Capacity         int
	CurrentAttendees int
	Attendees        []string // member IDs, set semantics
}

// ValidType reports whether t is one of the known programme types.
func ValidType(t string) bool {
	switch t {
	case TypeMinistry, TypeCounseling, TypeService, TypeTraining, TypeOutreach, TypeOther:
		return true
	}
	return false
}

// Validate checks if the Programme has valid data.
// PRE: Programme struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Programme) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if !ValidType(p.Type) {
		return ErrInvalidType
	}
	if p.Capacity < 0 {
		return ErrNegativeCapacity
	}
	if !p.EndDate.IsZero() && p.EndDate.Before(p.StartDate) {
		return ErrInvalidDates
	}
	if p.IsRecurring && strings.TrimSpace(p.Frequency) == "" {
		return ErrEmptyFrequency
	}
	return nil
}

// InRoster reports whether the member is already on the attendee roster.
// PRE: memberID is non-empty
// POST: Returns true if memberID is in Attendees
func (p *Programme) InRoster(memberID string) bool {
	for _, id := range p.Attendees {
		if id == memberID {
			return true
		}
	}
	return false
}

// AddToRoster adds the member to the roster and increments the count.
// Adding a member already on the roster is a no-op.
// POST: InRoster(memberID) is true; CurrentAttendees == len(Attendees)
func (p *Programme) AddToRoster(memberID string) {
	if p.InRoster(memberID) {
		return
	}
	p.Attendees = append(p.Attendees, memberID)
	p.CurrentAttendees = len(p.Attendees)
}

// AtCapacity reports whether the roster has reached capacity.
// Attendance past capacity is still recorded; this only informs the UI.
func (p *Programme) AtCapacity() bool {
	return p.Capacity > 0 && p.CurrentAttendees >= p.Capacity
}
