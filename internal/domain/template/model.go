package template

import (
	"errors"
	"strings"
	"time"
)

// Domain errors.
var (
	ErrNotFound  = errors.New("template not found")
	ErrEmptyName = errors.New("template name cannot be empty")
)

// ResourceBlueprint describes a resource a template instantiates alongside
// its programme. Blueprints are stored verbatim and carry no programme
// linkage until instantiation.
type ResourceBlueprint struct {
	Name     string
	Type     string
	Quantity int
	Unit     string
	Cost     float64
	Notes    string
}

// Template is a reusable blueprint for creating programmes without
// re-entering common fields. Templates are immutable once created.
type Template struct {
	ID          string
	Name        string
	Description string
	Type        string // programme type the instantiated programme gets
	Capacity    int
	Location    string
	IsRecurring bool
	Frequency   string
	Resources   []ResourceBlueprint
	CreatedBy   string // member ID of the creating actor
	CreatedAt   time.Time
}

// Validate checks if the Template has valid data.
// POST: Returns nil if valid, error otherwise
func (t *Template) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	return nil
}
