package projections

import (
	"context"
	"fmt"
	"sort"
	"time"

	"steeple/internal/domain/feedback"
	"steeple/internal/domain/programme"
	"steeple/internal/domain/reminder"
)

// DashboardFeedbackStore defines the feedback store interface needed by the dashboard.
type DashboardFeedbackStore interface {
	List(ctx context.Context) ([]feedback.Feedback, error)
}

// DashboardReminderStore defines the reminder store interface needed by the dashboard.
type DashboardReminderStore interface {
	ListDue(ctx context.Context, now time.Time) ([]reminder.Reminder, error)
}

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	ProgrammeStore  ProgrammeLister
	AttendanceStore AttendanceLister
	FeedbackStore   DashboardFeedbackStore
	ReminderStore   DashboardReminderStore // optional: nil skips the due count
	Now             func() time.Time
}

// ProgrammeSummary is one programme's dashboard row.
type ProgrammeSummary struct {
	Programme      programme.Programme
	AttendanceRate float64 // present records / total records, 0 when no records
	AverageRating  float64 // 0 when no feedback
}

// DashboardResult carries the output of the dashboard projection.
type DashboardResult struct {
	TotalProgrammes int
	CountsByType    map[string]int
	Upcoming        []programme.Programme // start date today or later, soonest first
	Summaries       []ProgrammeSummary
	DueReminders    int
}

// GetDashboard builds the admin landing-page read model.
func GetDashboard(ctx context.Context, deps GetDashboardDeps) (DashboardResult, error) {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	at := now()

	programmes, err := deps.ProgrammeStore.List(ctx)
	if err != nil {
		return DashboardResult{}, fmt.Errorf("failed to list programmes: %w", err)
	}

	result := DashboardResult{
		TotalProgrammes: len(programmes),
		CountsByType:    make(map[string]int),
	}

	today := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
	for _, p := range programmes {
		result.CountsByType[p.Type]++
		if !p.StartDate.Before(today) {
			result.Upcoming = append(result.Upcoming, p)
		}
	}
	sort.Slice(result.Upcoming, func(i, j int) bool {
		return result.Upcoming[i].StartDate.Before(result.Upcoming[j].StartDate)
	})

	allFeedback, err := deps.FeedbackStore.List(ctx)
	if err != nil {
		return DashboardResult{}, fmt.Errorf("failed to list feedback: %w", err)
	}
	ratingSum := make(map[string]int)
	ratingCount := make(map[string]int)
	for _, f := range allFeedback {
		ratingSum[f.ProgrammeID] += f.Rating
		ratingCount[f.ProgrammeID]++
	}

	for _, p := range programmes {
		summary := ProgrammeSummary{Programme: p}

		records, err := deps.AttendanceStore.ListByProgrammeID(ctx, p.ID)
		if err != nil {
			return DashboardResult{}, fmt.Errorf("failed to list attendance for %s: %w", p.ID, err)
		}
		if len(records) > 0 {
			present := 0
			for _, r := range records {
				if r.IsPresent {
					present++
				}
			}
			summary.AttendanceRate = float64(present) / float64(len(records))
		}

		if n := ratingCount[p.ID]; n > 0 {
			summary.AverageRating = float64(ratingSum[p.ID]) / float64(n)
		}

		result.Summaries = append(result.Summaries, summary)
	}

	if deps.ReminderStore != nil {
		due, err := deps.ReminderStore.ListDue(ctx, at)
		if err != nil {
			return DashboardResult{}, fmt.Errorf("failed to list due reminders: %w", err)
		}
		result.DueReminders = len(due)
	}

	return result, nil
}
