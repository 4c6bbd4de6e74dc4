package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	programmeStore "steeple/internal/adapters/storage/programme"
	resourceStore "steeple/internal/adapters/storage/resource"
	"steeple/internal/domain/resource"

	"github.com/google/uuid"
)

// AllocateResourceInput carries input for the allocate resource orchestrator.
type AllocateResourceInput struct {
	ProgrammeID string
	Name        string
	Type        string
	Quantity    int
	Unit        string
	Cost        float64
	Notes       string
	Status      string // defaults to "allocated" when empty
}

// AllocateResourceDeps holds dependencies for AllocateResource.
type AllocateResourceDeps struct {
	ProgrammeStore programmeStore.Store
	ResourceStore  resourceStore.Store
	GenerateID     func() string
}

// ExecuteAllocateResource appends a resource allocation to a programme.
// PRE: Programme exists
// POST: Resource saved with a fresh id and the given (or default) status
func ExecuteAllocateResource(ctx context.Context, input AllocateResourceInput, deps AllocateResourceDeps) (resource.Resource, error) {
	generateID := deps.GenerateID
	if generateID == nil {
		generateID = uuid.NewString
	}

	if _, err := deps.ProgrammeStore.GetByID(ctx, input.ProgrammeID); err != nil {
		return resource.Resource{}, err
	}

	status := input.Status
	if status == "" {
		status = resource.StatusAllocated
	}

	r := resource.Resource{
		ID:          generateID(),
		ProgrammeID: input.ProgrammeID,
		Name:        input.Name,
		Type:        input.Type,
		Quantity:    input.Quantity,
		Unit:        input.Unit,
		Cost:        input.Cost,
		Notes:       input.Notes,
		Status:      status,
	}
	if err := r.Validate(); err != nil {
		return resource.Resource{}, err
	}

	if err := deps.ResourceStore.Save(ctx, r); err != nil {
		slog.Error("resource_allocate_failed", "programme_id", input.ProgrammeID, "name", input.Name, "error", err)
		return resource.Resource{}, err
	}

	slog.Info("resource_allocated", "resource_id", r.ID, "programme_id", r.ProgrammeID, "name", r.Name, "quantity", r.Quantity)
	return r, nil
}

// UpdateResourceStatusDeps holds dependencies for UpdateResourceStatus.
type UpdateResourceStatusDeps struct {
	ResourceStore resourceStore.Store
}

// ExecuteUpdateResourceStatus mutates a resource's status in place. Any
// status may transition to any other.
// PRE: resourceID references an existing resource; status is a known status
// POST: Resource persisted with the new status
func ExecuteUpdateResourceStatus(ctx context.Context, resourceID, status string, deps UpdateResourceStatusDeps) (resource.Resource, error) {
	if !resource.ValidStatus(status) {
		return resource.Resource{}, resource.ErrInvalidStatus
	}

	r, err := deps.ResourceStore.GetByID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return resource.Resource{}, resource.ErrNotFound
		}
		return resource.Resource{}, err
	}

	r.Status = status
	if err := deps.ResourceStore.Save(ctx, r); err != nil {
		slog.Error("resource_status_update_failed", "resource_id", resourceID, "error", err)
		return resource.Resource{}, err
	}

	slog.Info("resource_status_updated", "resource_id", r.ID, "status", status)
	return r, nil
}
