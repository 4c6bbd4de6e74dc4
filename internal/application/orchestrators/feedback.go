package orchestrators

import (
	"context"
	"log/slog"
	"time"

	feedbackStore "steeple/internal/adapters/storage/feedback"
	programmeStore "steeple/internal/adapters/storage/programme"
	"steeple/internal/domain/feedback"

	"github.com/google/uuid"
)

// SubmitFeedbackInput carries input for the submit feedback orchestrator.
type SubmitFeedbackInput struct {
	ProgrammeID string
	MemberID    string
	Rating      int
	Comment     string
}

// SubmitFeedbackDeps holds dependencies for SubmitFeedback.
type SubmitFeedbackDeps struct {
	ProgrammeStore programmeStore.Store
	FeedbackStore  feedbackStore.Store
	GenerateID     func() string
	Now            func() time.Time
}

// ExecuteSubmitFeedback stores one member's rating and comment for a
// programme. Multiple submissions from the same member are kept.
// PRE: Programme exists; rating is 1..5
// POST: Feedback saved with SubmittedAt=now
func ExecuteSubmitFeedback(ctx context.Context, input SubmitFeedbackInput, deps SubmitFeedbackDeps) (feedback.Feedback, error) {
	generateID := deps.GenerateID
	if generateID == nil {
		generateID = uuid.NewString
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	if _, err := deps.ProgrammeStore.GetByID(ctx, input.ProgrammeID); err != nil {
		return feedback.Feedback{}, err
	}

	f := feedback.Feedback{
		ID:          generateID(),
		ProgrammeID: input.ProgrammeID,
		MemberID:    input.MemberID,
		Rating:      input.Rating,
		Comment:     input.Comment,
		SubmittedAt: now(),
	}
	if err := f.Validate(); err != nil {
		return feedback.Feedback{}, err
	}

	if err := deps.FeedbackStore.Save(ctx, f); err != nil {
		slog.Error("feedback_submit_failed", "programme_id", input.ProgrammeID, "member_id", input.MemberID, "error", err)
		return feedback.Feedback{}, err
	}

	slog.Info("feedback_submitted", "feedback_id", f.ID, "programme_id", f.ProgrammeID, "rating", f.Rating)
	return f, nil
}
