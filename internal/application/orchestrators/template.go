package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	programmeStore "steeple/internal/adapters/storage/programme"
	resourceStore "steeple/internal/adapters/storage/resource"
	templateStore "steeple/internal/adapters/storage/template"
	"steeple/internal/domain/programme"
	"steeple/internal/domain/resource"
	"steeple/internal/domain/template"

	"github.com/google/uuid"
)

// CreateTemplateInput carries input for the create template orchestrator.
// CreatedBy is the acting member's id, passed explicitly by the caller.
type CreateTemplateInput struct {
	Name        string
	Description string
	Type        string
	Capacity    int
	Location    string
	IsRecurring bool
	Frequency   string
	Resources   []template.ResourceBlueprint
	CreatedBy   string
}

// CreateTemplateDeps holds dependencies for CreateTemplate.
type CreateTemplateDeps struct {
	TemplateStore templateStore.Store
	GenerateID    func() string
	Now           func() time.Time
}

// ExecuteCreateTemplate stores a new programme template. Resource
// blueprints are stored verbatim; nothing references a concrete programme
// until instantiation.
// POST: Template saved; templates are immutable afterwards
func ExecuteCreateTemplate(ctx context.Context, input CreateTemplateInput, deps CreateTemplateDeps) (template.Template, error) {
	generateID := deps.GenerateID
	if generateID == nil {
		generateID = uuid.NewString
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	t := template.Template{
		ID:          generateID(),
		Name:        input.Name,
		Description: input.Description,
		Type:        input.Type,
		Capacity:    input.Capacity,
		Location:    input.Location,
		IsRecurring: input.IsRecurring,
		Frequency:   input.Frequency,
		Resources:   input.Resources,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   now(),
	}
	if err := t.Validate(); err != nil {
		return template.Template{}, err
	}

	if err := deps.TemplateStore.Save(ctx, t); err != nil {
		slog.Error("template_create_failed", "name", input.Name, "error", err)
		return template.Template{}, err
	}

	slog.Info("template_created", "template_id", t.ID, "name", t.Name, "resources", len(t.Resources), "created_by", t.CreatedBy)
	return t, nil
}

// InstantiateTemplateInput carries the template id plus per-field
// overrides. Nil pointers fall back to the template's value.
type InstantiateTemplateInput struct {
	TemplateID  string
	Name        *string
	Description *string
	Type        *string
	StartDate   time.Time
	EndDate     time.Time
	Location    *string
	Coordinator string
	Capacity    *int
}

// InstantiateTemplateDeps holds dependencies for InstantiateTemplate.
type InstantiateTemplateDeps struct {
	TemplateStore  templateStore.Store
	ProgrammeStore programmeStore.Store
	ResourceStore  resourceStore.Store
	GenerateID     func() string
}

// InstantiateTemplateResult carries the created programme and its resources.
type InstantiateTemplateResult struct {
	Programme programme.Programme
	Resources []resource.Resource
}

// ExecuteInstantiateTemplate builds a programme from a template, overrides
// taking precedence per field, then allocates one resource per blueprint
// against the new programme. If programme creation fails no resource is
// allocated: a blueprint must never materialize against a programme that
// does not exist.
// PRE: TemplateID references an existing template
// POST: On success, programme plus len(template.Resources) allocations exist
func ExecuteInstantiateTemplate(ctx context.Context, input InstantiateTemplateInput, deps InstantiateTemplateDeps) (InstantiateTemplateResult, error) {
	t, err := deps.TemplateStore.GetByID(ctx, input.TemplateID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return InstantiateTemplateResult{}, template.ErrNotFound
		}
		return InstantiateTemplateResult{}, err
	}

	create := CreateProgrammeInput{
		Name:        t.Name,
		Description: t.Description,
		Type:        t.Type,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		IsRecurring: t.IsRecurring,
		Frequency:   t.Frequency,
		Location:    t.Location,
		Coordinator: input.Coordinator,
		Capacity:    t.Capacity,
	}
	if input.Name != nil {
		create.Name = *input.Name
	}
	if input.Description != nil {
		create.Description = *input.Description
	}
	if input.Type != nil {
		create.Type = *input.Type
	}
	if input.Location != nil {
		create.Location = *input.Location
	}
	if input.Capacity != nil {
		create.Capacity = *input.Capacity
	}

	p, err := ExecuteCreateProgramme(ctx, create, CreateProgrammeDeps{
		ProgrammeStore: deps.ProgrammeStore,
		GenerateID:     deps.GenerateID,
	})
	if err != nil {
		slog.Error("template_instantiate_failed", "template_id", t.ID, "error", err)
		return InstantiateTemplateResult{}, err
	}

	resources := make([]resource.Resource, 0, len(t.Resources))
	for _, bp := range t.Resources {
		r, err := ExecuteAllocateResource(ctx, AllocateResourceInput{
			ProgrammeID: p.ID,
			Name:        bp.Name,
			Type:        bp.Type,
			Quantity:    bp.Quantity,
			Unit:        bp.Unit,
			Cost:        bp.Cost,
			Notes:       bp.Notes,
			Status:      resource.StatusAllocated,
		}, AllocateResourceDeps{
			ProgrammeStore: deps.ProgrammeStore,
			ResourceStore:  deps.ResourceStore,
			GenerateID:     deps.GenerateID,
		})
		if err != nil {
			slog.Error("template_resource_allocate_failed", "template_id", t.ID, "programme_id", p.ID, "blueprint", bp.Name, "error", err)
			return InstantiateTemplateResult{Programme: p, Resources: resources}, err
		}
		resources = append(resources, r)
	}

	slog.Info("template_instantiated", "template_id", t.ID, "programme_id", p.ID, "resources", len(resources))
	return InstantiateTemplateResult{Programme: p, Resources: resources}, nil
}
