package orchestrators

import (
	"context"
	"log/slog"
	"time"

	programmeStore "steeple/internal/adapters/storage/programme"
	taxonomyStore "steeple/internal/adapters/storage/taxonomy"
	"steeple/internal/domain/programme"
	"steeple/internal/domain/taxonomy"

	"github.com/google/uuid"
)

// SeedDeps holds dependencies for the development seed.
type SeedDeps struct {
	ProgrammeStore programmeStore.Store
	CategoryStore  taxonomyStore.CategoryStore
	TagStore       taxonomyStore.TagStore
}

// ExecuteSeed creates a handful of programmes, categories and tags if the
// programme collection is empty. Development convenience only.
func ExecuteSeed(ctx context.Context, deps SeedDeps) error {
	existing, err := deps.ProgrammeStore.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil // Already seeded
	}

	year := time.Now().Year()
	programmes := []programme.Programme{
		{
			ID: uuid.New().String(), Name: "Sunday Service", Type: programme.TypeService,
			StartDate: time.Date(year, 1, 4, 0, 0, 0, 0, time.UTC),
			IsRecurring: true, Frequency: programme.FrequencyWeekly,
			Location: "Main Sanctuary", Capacity: 300, Attendees: []string{},
		},
		{
			ID: uuid.New().String(), Name: "Youth Night", Type: programme.TypeOutreach,
			StartDate: time.Date(year, 2, 6, 0, 0, 0, 0, time.UTC),
			IsRecurring: true, Frequency: programme.FrequencyWeekly,
			Location: "Youth Hall", Capacity: 60, Attendees: []string{},
		},
		{
			ID: uuid.New().String(), Name: "Leadership Training", Type: programme.TypeTraining,
			StartDate: time.Date(year, 3, 7, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(year, 6, 27, 0, 0, 0, 0, time.UTC),
			Location:  "Room 2", Capacity: 20, Attendees: []string{},
		},
	}
	for _, p := range programmes {
		if err := deps.ProgrammeStore.Save(ctx, p); err != nil {
			return err
		}
	}

	categories := []string{"Worship", "Discipleship", "Community"}
	for _, label := range categories {
		if err := deps.CategoryStore.Save(ctx, taxonomy.Category{ID: uuid.New().String(), Label: label}); err != nil {
			return err
		}
	}

	tags := []string{"weekly", "youth", "volunteers-needed"}
	for _, label := range tags {
		if err := deps.TagStore.Save(ctx, taxonomy.Tag{ID: uuid.New().String(), Label: label}); err != nil {
			return err
		}
	}

	slog.Info("seed_complete", "programmes", len(programmes), "categories", len(categories), "tags", len(tags))
	return nil
}
