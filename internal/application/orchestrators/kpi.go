package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	kpiStore "steeple/internal/adapters/storage/kpi"
	programmeStore "steeple/internal/adapters/storage/programme"
	"steeple/internal/domain/kpi"

	"github.com/google/uuid"
)

// AddKPIInput carries input for the add KPI orchestrator.
type AddKPIInput struct {
	ProgrammeID string
	Name        string
	Target      float64
	Current     float64
	Unit        string
}

// AddKPIDeps holds dependencies for AddKPI.
type AddKPIDeps struct {
	ProgrammeStore programmeStore.Store
	KPIStore       kpiStore.Store
	GenerateID     func() string
	Now            func() time.Time
}

// ExecuteAddKPI stores a new KPI for a programme.
// PRE: Programme exists
// POST: KPI saved with CreatedAt == UpdatedAt == now
func ExecuteAddKPI(ctx context.Context, input AddKPIInput, deps AddKPIDeps) (kpi.KPI, error) {
	generateID := deps.GenerateID
	if generateID == nil {
		generateID = uuid.NewString
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	if _, err := deps.ProgrammeStore.GetByID(ctx, input.ProgrammeID); err != nil {
		return kpi.KPI{}, err
	}

	at := now()
	k := kpi.KPI{
		ID:          generateID(),
		ProgrammeID: input.ProgrammeID,
		Name:        input.Name,
		Target:      input.Target,
		Current:     input.Current,
		Unit:        input.Unit,
		CreatedAt:   at,
		UpdatedAt:   at,
	}
	if err := k.Validate(); err != nil {
		return kpi.KPI{}, err
	}

	if err := deps.KPIStore.Save(ctx, k); err != nil {
		slog.Error("kpi_add_failed", "programme_id", input.ProgrammeID, "name", input.Name, "error", err)
		return kpi.KPI{}, err
	}

	slog.Info("kpi_added", "kpi_id", k.ID, "programme_id", k.ProgrammeID, "name", k.Name, "target", k.Target)
	return k, nil
}

// UpdateKPIProgressDeps holds dependencies for UpdateKPIProgress.
type UpdateKPIProgressDeps struct {
	KPIStore kpiStore.Store
	Now      func() time.Time
}

// ExecuteUpdateKPIProgress sets a KPI's current value. The value is not
// clamped against the target: over- and under-achievement are the UI's
// concern.
// PRE: kpiID references an existing KPI
// POST: Current set, UpdatedAt refreshed
func ExecuteUpdateKPIProgress(ctx context.Context, kpiID string, current float64, deps UpdateKPIProgressDeps) (kpi.KPI, error) {
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	k, err := deps.KPIStore.GetByID(ctx, kpiID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return kpi.KPI{}, kpi.ErrNotFound
		}
		return kpi.KPI{}, err
	}

	k.UpdateProgress(current, now())
	if err := deps.KPIStore.Save(ctx, k); err != nil {
		slog.Error("kpi_progress_update_failed", "kpi_id", kpiID, "error", err)
		return kpi.KPI{}, err
	}

	slog.Info("kpi_progress_updated", "kpi_id", k.ID, "current", k.Current, "target", k.Target)
	return k, nil
}
