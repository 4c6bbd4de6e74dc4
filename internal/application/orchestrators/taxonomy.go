package orchestrators

import (
	"context"
	"log/slog"

	programmeStore "steeple/internal/adapters/storage/programme"
	taxonomyStore "steeple/internal/adapters/storage/taxonomy"
	"steeple/internal/domain/taxonomy"

	"github.com/google/uuid"
)

// TaxonomyDeps holds the registry stores shared by the vocabulary operations.
type TaxonomyDeps struct {
	CategoryStore  taxonomyStore.CategoryStore
	TagStore       taxonomyStore.TagStore
	TagLinkStore   taxonomyStore.TagLinkStore
	ProgrammeStore programmeStore.Store
	GenerateID     func() string
}

func (d TaxonomyDeps) generateID() string {
	if d.GenerateID != nil {
		return d.GenerateID()
	}
	return uuid.NewString()
}

// ExecuteAddCategory appends a category to the vocabulary.
// POST: Category saved with a fresh id
func ExecuteAddCategory(ctx context.Context, label string, deps TaxonomyDeps) (taxonomy.Category, error) {
	c := taxonomy.Category{ID: deps.generateID(), Label: label}
	if err := c.Validate(); err != nil {
		return taxonomy.Category{}, err
	}
	if err := deps.CategoryStore.Save(ctx, c); err != nil {
		slog.Error("category_add_failed", "label", label, "error", err)
		return taxonomy.Category{}, err
	}
	slog.Info("category_added", "category_id", c.ID, "label", c.Label)
	return c, nil
}

// ExecuteAddTag appends a tag to the vocabulary.
// POST: Tag saved with a fresh id
func ExecuteAddTag(ctx context.Context, label string, deps TaxonomyDeps) (taxonomy.Tag, error) {
	t := taxonomy.Tag{ID: deps.generateID(), Label: label}
	if err := t.Validate(); err != nil {
		return taxonomy.Tag{}, err
	}
	if err := deps.TagStore.Save(ctx, t); err != nil {
		slog.Error("tag_add_failed", "label", label, "error", err)
		return taxonomy.Tag{}, err
	}
	slog.Info("tag_added", "tag_id", t.ID, "label", t.Label)
	return t, nil
}

// ExecuteAssignTag links a tag to a programme. Assigning an existing pair
// is a no-op: the link collection has set semantics.
// PRE: Programme and tag exist
// POST: Exactly one link for the pair exists
func ExecuteAssignTag(ctx context.Context, programmeID, tagID string, deps TaxonomyDeps) error {
	link := taxonomy.TagLink{ProgrammeID: programmeID, TagID: tagID}
	if err := link.Validate(); err != nil {
		return err
	}
	if _, err := deps.ProgrammeStore.GetByID(ctx, programmeID); err != nil {
		return err
	}
	if _, err := deps.TagStore.GetByID(ctx, tagID); err != nil {
		return err
	}

	exists, err := deps.TagLinkStore.Exists(ctx, link)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if err := deps.TagLinkStore.Save(ctx, link); err != nil {
		slog.Error("tag_assign_failed", "programme_id", programmeID, "tag_id", tagID, "error", err)
		return err
	}
	slog.Info("tag_assigned", "programme_id", programmeID, "tag_id", tagID)
	return nil
}

// ExecuteRemoveTag removes the exact (programme, tag) pair if present;
// removing a missing pair is a no-op.
// POST: No link for the pair exists
func ExecuteRemoveTag(ctx context.Context, programmeID, tagID string, deps TaxonomyDeps) error {
	link := taxonomy.TagLink{ProgrammeID: programmeID, TagID: tagID}
	if err := link.Validate(); err != nil {
		return err
	}
	if err := deps.TagLinkStore.Delete(ctx, link); err != nil {
		slog.Error("tag_remove_failed", "programme_id", programmeID, "tag_id", tagID, "error", err)
		return err
	}
	slog.Info("tag_removed", "programme_id", programmeID, "tag_id", tagID)
	return nil
}
