package orchestrators

import (
	"context"
	"errors"
	"testing"

	"steeple/internal/domain/feedback"
	"steeple/internal/domain/programme"
)

// TestExecuteSubmitFeedback tests storing a rating and that repeat
// submissions from the same member are kept.
func TestExecuteSubmitFeedback(t *testing.T) {
	progStore := newMockProgrammeStore()
	progStore.programmes["p1"] = programme.Programme{ID: "p1", Name: "Alpha Course", Type: programme.TypeTraining, StartDate: testStart}
	store := &mockFeedbackStore{}
	deps := SubmitFeedbackDeps{ProgrammeStore: progStore, FeedbackStore: store, GenerateID: seqID(), Now: fixedNow}

	f, err := ExecuteSubmitFeedback(context.Background(), SubmitFeedbackInput{
		ProgrammeID: "p1", MemberID: "m1", Rating: 4, Comment: "Great session",
	}, deps)
	if err != nil {
		t.Fatalf("ExecuteSubmitFeedback: %v", err)
	}
	if !f.SubmittedAt.Equal(fixedTime) {
		t.Errorf("SubmittedAt = %v, want %v", f.SubmittedAt, fixedTime)
	}

	if _, err := ExecuteSubmitFeedback(context.Background(), SubmitFeedbackInput{
		ProgrammeID: "p1", MemberID: "m1", Rating: 5,
	}, deps); err != nil {
		t.Fatalf("second submission: %v", err)
	}
	if len(store.feedback) != 2 {
		t.Errorf("expected 2 stored entries, got %d", len(store.feedback))
	}
}

// TestExecuteSubmitFeedback_Guards tests the rating range and programme
// existence checks.
func TestExecuteSubmitFeedback_Guards(t *testing.T) {
	progStore := newMockProgrammeStore()
	progStore.programmes["p1"] = programme.Programme{ID: "p1", Name: "Alpha Course", Type: programme.TypeTraining, StartDate: testStart}
	store := &mockFeedbackStore{}
	deps := SubmitFeedbackDeps{ProgrammeStore: progStore, FeedbackStore: store, Now: fixedNow}

	for _, rating := range []int{0, 6, -1} {
		_, err := ExecuteSubmitFeedback(context.Background(), SubmitFeedbackInput{
			ProgrammeID: "p1", MemberID: "m1", Rating: rating,
		}, deps)
		if !errors.Is(err, feedback.ErrInvalidRating) {
			t.Errorf("rating %d: expected feedback.ErrInvalidRating, got %v", rating, err)
		}
	}

	if _, err := ExecuteSubmitFeedback(context.Background(), SubmitFeedbackInput{
		ProgrammeID: "nope", MemberID: "m1", Rating: 3,
	}, deps); err == nil {
		t.Error("expected error for missing programme")
	}
	if len(store.feedback) != 0 {
		t.Errorf("nothing may be stored after failed submissions, got %d", len(store.feedback))
	}
}
