package kpi

import (
	"errors"
	"strings"
	"time"
)

// Domain errors.
var (
	ErrNotFound         = errors.New("kpi not found")
	ErrEmptyProgrammeID = errors.New("kpi must reference a programme")
	ErrEmptyName        = errors.New("kpi name cannot be empty")
)

// KPI is a named numeric target/current pair tracked against a programme.
// Current is deliberately unclamped: it may exceed Target or go negative,
// and the UI decides how to present over- or under-achievement.
type KPI struct {
	ID          string
	ProgrammeID string
	Name        string
	Target      float64
	Current     float64
	Unit        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks if the KPI has valid data.
// POST: Returns nil if valid, error otherwise
func (k *KPI) Validate() error {
	if k.ProgrammeID == "" {
		return ErrEmptyProgrammeID
	}
	if strings.TrimSpace(k.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// UpdateProgress sets the current value and refreshes the update timestamp.
// POST: Current == value, UpdatedAt == now
func (k *KPI) UpdateProgress(value float64, now time.Time) {
	k.Current = value
	k.UpdatedAt = now
}

// ProgressPercent returns progress toward target as a percentage.
// A zero target yields 0 rather than dividing by zero.
func (k *KPI) ProgressPercent() float64 {
	if k.Target == 0 {
		return 0
	}
	return k.Current / k.Target * 100
}
