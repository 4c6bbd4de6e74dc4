package resource

import (
	"errors"
	"strings"
)

// Status constants for resource lifecycle. Any status may transition to
// any other; the history is not tracked.
const (
	StatusAllocated = "allocated"
	StatusInUse     = "in-use"
	StatusReturned  = "returned"
	StatusDamaged   = "damaged"
)

// Domain errors.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrEmptyProgrammeID = errors.New("resource must reference a programme")
	ErrEmptyName        = errors.New("resource name cannot be empty")
	ErrInvalidQuantity  = errors.New("resource quantity must be positive")
	ErrInvalidStatus    = errors.New("invalid resource status")
)

// Resource is a physical or consumable item allocated to a programme.
type Resource struct {
	ID          string
	ProgrammeID string
	Name        string
	Type        string // e.g. "equipment", "consumable", "venue"
	Quantity    int
	Unit        string
	Cost        float64
	Notes       string
	Status      string
}

// ValidStatus reports whether s is a known resource status.
func ValidStatus(s string) bool {
	switch s {
	case StatusAllocated, StatusInUse, StatusReturned, StatusDamaged:
		return true
	}
	return false
}

// Validate checks if the Resource has valid data.
// PRE: Resource struct is populated
// POST: Returns nil if valid, error otherwise
func (r *Resource) Validate() error {
	if r.ProgrammeID == "" {
		return ErrEmptyProgrammeID
	}
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyName
	}
	if r.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if !ValidStatus(r.Status) {
		return ErrInvalidStatus
	}
	return nil
}
