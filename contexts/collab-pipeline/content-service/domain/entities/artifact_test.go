package entities

import (
	"testing"
	"time"
)

func revision(number int, by RevisionActor, status RevisionStatus) Revision {
	return Revision{
		RevisionID:     "rev",
		RevisionNumber: number,
		RequestedBy:    by,
		RequestedAt:    time.Now().UTC(),
		Status:         status,
	}
}

func TestDeriveStatusFollowsRevisionState(t *testing.T) {
	artifact := Artifact{Kind: ArtifactKindContentPlan}
	if got := DeriveStatus(artifact); got != ArtifactStatusDraft {
		t.Fatalf("no revisions: expected draft, got %s", got)
	}

	artifact.Revisions = []Revision{revision(1, ActorRequester, RevisionStatusPending)}
	if got := DeriveStatus(artifact); got != ArtifactStatusRevisionRequested {
		t.Fatalf("pending revision: expected revision_requested, got %s", got)
	}

	artifact.Revisions[0].Status = RevisionStatusCompleted
	if got := DeriveStatus(artifact); got != ArtifactStatusFeedbackGiven {
		t.Fatalf("completed revision: expected feedback_given, got %s", got)
	}

	artifact.Status = ArtifactStatusApproved
	artifact.Revisions = append(artifact.Revisions, revision(2, ActorRequester, RevisionStatusPending))
	if got := DeriveStatus(artifact); got != ArtifactStatusApproved {
		t.Fatalf("approval must be sticky, got %s", got)
	}
}

func TestCompletedRequesterRoundsIgnoresFulfillerRequests(t *testing.T) {
	artifact := Artifact{
		Revisions: []Revision{
			revision(1, ActorRequester, RevisionStatusCompleted),
			revision(2, ActorFulfiller, RevisionStatusCompleted),
			revision(3, ActorRequester, RevisionStatusCompleted),
			revision(4, ActorRequester, RevisionStatusPending),
		},
	}
	if got := artifact.CompletedRequesterRounds(); got != 2 {
		t.Fatalf("expected 2 completed requester rounds, got %d", got)
	}
}

func TestHasContentPerKind(t *testing.T) {
	plan := Artifact{Kind: ArtifactKindContentPlan}
	if plan.HasContent() {
		t.Fatalf("empty plan must not count as content")
	}
	plan.Payload.Plan = &PlanDetails{Concept: "teaser"}
	if !plan.HasContent() {
		t.Fatalf("plan with a concept counts as content")
	}

	submission := Artifact{Kind: ArtifactKindContentSubmission}
	if submission.HasContent() {
		t.Fatalf("empty submission must not count as content")
	}
	submission.Payload.Files = []ContentFile{{FileID: "f-1", URL: "https://cdn/f-1"}}
	if !submission.HasContent() {
		t.Fatalf("submission with a file counts as content")
	}
}
