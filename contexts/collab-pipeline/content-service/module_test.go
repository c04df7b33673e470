package contentservice_test

import (
	"context"
	"errors"
	"testing"

	contentservice "collabo/contexts/collab-pipeline/content-service"
	"collabo/contexts/collab-pipeline/content-service/adapters/memory"
	"collabo/contexts/collab-pipeline/content-service/domain/entities"
	domainerrors "collabo/contexts/collab-pipeline/content-service/domain/errors"
	httptransport "collabo/contexts/collab-pipeline/content-service/transport/http"
)

func planRequest() httptransport.CreateArtifactRequest {
	return httptransport.CreateArtifactRequest{
		CampaignID:  "camp-1",
		SubjectID:   "subj-1",
		Kind:        "content_plan",
		ContentType: "video",
		Payload: httptransport.PayloadDTO{
			Plan: &httptransport.PlanDetailsDTO{
				Concept:  "unboxing short",
				Caption:  "first look",
				Hashtags: []string{"ad"},
			},
		},
	}
}

func TestRevisionWorkflowFullRound(t *testing.T) {
	module := contentservice.NewInMemoryModule(nil, nil, nil)
	ctx := context.Background()

	created, err := module.Handler.CreateArtifactHandler(ctx, "influencer-1", planRequest())
	if err != nil {
		t.Fatalf("create plan failed: %v", err)
	}
	artifact := created.Artifact
	if artifact.Status != "draft" {
		t.Fatalf("expected draft status, got %s", artifact.Status)
	}
	if artifact.RequestLabel != "No revisions requested" {
		t.Fatalf("unexpected request label: %s", artifact.RequestLabel)
	}

	revision, err := module.Handler.RequestRevisionHandler(ctx, "brand-1", artifact.ArtifactID, httptransport.RequestRevisionRequest{
		ActorName: "Brand One",
		Feedback:  "tighten the hook",
	})
	if err != nil {
		t.Fatalf("request revision failed: %v", err)
	}
	if revision.Revision.RevisionNumber != 1 {
		t.Fatalf("expected revision number 1, got %d", revision.Revision.RevisionNumber)
	}
	if revision.Revision.Status != "pending" {
		t.Fatalf("expected pending revision, got %s", revision.Revision.Status)
	}

	got, err := module.Handler.GetArtifactHandler(ctx, artifact.ArtifactID)
	if err != nil {
		t.Fatalf("get artifact failed: %v", err)
	}
	if got.Artifact.Status != "revision_requested" {
		t.Fatalf("expected revision_requested, got %s", got.Artifact.Status)
	}
	if got.Artifact.RequestLabel != "Revision request #1 sent" {
		t.Fatalf("unexpected request label: %s", got.Artifact.RequestLabel)
	}
	if got.Artifact.FeedbackLabel != "Revision request #1 awaiting response" {
		t.Fatalf("unexpected feedback label: %s", got.Artifact.FeedbackLabel)
	}

	answered, err := module.Handler.GiveFeedbackHandler(ctx, "influencer-1", artifact.ArtifactID, httptransport.GiveFeedbackRequest{
		ActorName: "Influencer One",
		Response:  "reworked the opening",
	})
	if err != nil {
		t.Fatalf("give feedback failed: %v", err)
	}
	if answered.Revision.Status != "completed" {
		t.Fatalf("expected completed revision, got %s", answered.Revision.Status)
	}

	got, err = module.Handler.GetArtifactHandler(ctx, artifact.ArtifactID)
	if err != nil {
		t.Fatalf("get artifact failed: %v", err)
	}
	if got.Artifact.Status != "feedback_given" {
		t.Fatalf("expected feedback_given, got %s", got.Artifact.Status)
	}
	if got.Artifact.CurrentRevisionNumber != 1 {
		t.Fatalf("expected current revision number 1, got %d", got.Artifact.CurrentRevisionNumber)
	}
	if got.Artifact.RequestLabel != "1 revision round(s) completed" {
		t.Fatalf("unexpected request label: %s", got.Artifact.RequestLabel)
	}
	if got.Artifact.FeedbackLabel != "Feedback #1 delivered" {
		t.Fatalf("unexpected feedback label: %s", got.Artifact.FeedbackLabel)
	}

	if err := module.Handler.ApproveArtifactHandler(ctx, "brand-1", artifact.ArtifactID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	got, err = module.Handler.GetArtifactHandler(ctx, artifact.ArtifactID)
	if err != nil {
		t.Fatalf("get artifact failed: %v", err)
	}
	if got.Artifact.Status != "approved" {
		t.Fatalf("expected approved, got %s", got.Artifact.Status)
	}
	if got.Artifact.StatusLabel != "Plan approved" {
		t.Fatalf("unexpected status label: %s", got.Artifact.StatusLabel)
	}
}

func TestRevisionRejectsSecondPendingRequest(t *testing.T) {
	module := contentservice.NewInMemoryModule(nil, nil, nil)
	ctx := context.Background()

	created, err := module.Handler.CreateArtifactHandler(ctx, "influencer-1", planRequest())
	if err != nil {
		t.Fatalf("create plan failed: %v", err)
	}
	if _, err := module.Handler.RequestRevisionHandler(ctx, "brand-1", created.Artifact.ArtifactID, httptransport.RequestRevisionRequest{
		ActorName: "Brand One",
		Feedback:  "first round",
	}); err != nil {
		t.Fatalf("first revision request failed: %v", err)
	}

	_, err = module.Handler.RequestRevisionHandler(ctx, "brand-1", created.Artifact.ArtifactID, httptransport.RequestRevisionRequest{
		ActorName: "Brand One",
		Feedback:  "second round before the first was answered",
	})
	if !errors.Is(err, domainerrors.ErrRevisionConflict) {
		t.Fatalf("expected revision conflict, got %v", err)
	}
}

func TestApprovedArtifactIsTerminal(t *testing.T) {
	module := contentservice.NewInMemoryModule(nil, nil, nil)
	ctx := context.Background()

	created, err := module.Handler.CreateArtifactHandler(ctx, "influencer-1", planRequest())
	if err != nil {
		t.Fatalf("create plan failed: %v", err)
	}
	if err := module.Handler.ApproveArtifactHandler(ctx, "brand-1", created.Artifact.ArtifactID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	_, err = module.Handler.RequestRevisionHandler(ctx, "brand-1", created.Artifact.ArtifactID, httptransport.RequestRevisionRequest{
		ActorName: "Brand One",
		Feedback:  "too late",
	})
	if !errors.Is(err, domainerrors.ErrInvalidStatusTransition) {
		t.Fatalf("expected invalid transition after approval, got %v", err)
	}

	err = module.Handler.ApproveArtifactHandler(ctx, "brand-1", created.Artifact.ArtifactID)
	if !errors.Is(err, domainerrors.ErrInvalidStatusTransition) {
		t.Fatalf("expected invalid transition on double approve, got %v", err)
	}
}

func TestApproveRequiresContent(t *testing.T) {
	module := contentservice.NewInMemoryModule(nil, nil, nil)
	ctx := context.Background()

	created, err := module.Handler.CreateArtifactHandler(ctx, "influencer-1", httptransport.CreateArtifactRequest{
		CampaignID:  "camp-1",
		SubjectID:   "subj-1",
		Kind:        "content_submission",
		ContentType: "video",
	})
	if err != nil {
		t.Fatalf("create submission failed: %v", err)
	}

	err = module.Handler.ApproveArtifactHandler(ctx, "brand-1", created.Artifact.ArtifactID)
	if !errors.Is(err, domainerrors.ErrArtifactIncomplete) {
		t.Fatalf("expected incomplete artifact, got %v", err)
	}
}

func TestDuplicateArtifactPerSubjectAndKind(t *testing.T) {
	module := contentservice.NewInMemoryModule(nil, nil, nil)
	ctx := context.Background()

	if _, err := module.Handler.CreateArtifactHandler(ctx, "influencer-1", planRequest()); err != nil {
		t.Fatalf("create plan failed: %v", err)
	}
	_, err := module.Handler.CreateArtifactHandler(ctx, "influencer-1", planRequest())
	if !errors.Is(err, domainerrors.ErrDuplicateArtifact) {
		t.Fatalf("expected duplicate artifact, got %v", err)
	}
}

func TestFeedbackRequiresPendingRound(t *testing.T) {
	module := contentservice.NewInMemoryModule(nil, nil, nil)
	ctx := context.Background()

	created, err := module.Handler.CreateArtifactHandler(ctx, "influencer-1", planRequest())
	if err != nil {
		t.Fatalf("create plan failed: %v", err)
	}

	_, err = module.Handler.GiveFeedbackHandler(ctx, "influencer-1", created.Artifact.ArtifactID, httptransport.GiveFeedbackRequest{
		ActorName: "Influencer One",
		Response:  "nothing was asked",
	})
	if !errors.Is(err, domainerrors.ErrRevisionNotPending) {
		t.Fatalf("expected no pending round error, got %v", err)
	}
}

type flakyRepository struct {
	*memory.Store
	failUpdates bool
}

var errStoreDown = errors.New("store unavailable")

func (r *flakyRepository) UpdateArtifact(ctx context.Context, artifact entities.Artifact) error {
	if r.failUpdates {
		return errStoreDown
	}
	return r.Store.UpdateArtifact(ctx, artifact)
}

func TestFeedbackLeavesStoreUntouchedWhenUpdateFails(t *testing.T) {
	store := memory.NewStore(nil)
	repo := &flakyRepository{Store: store}
	module := contentservice.NewModule(contentservice.Dependencies{
		Repository: repo,
		StageGate:  contentservice.OpenStageGate{},
		Clock:      store,
		IDGen:      store,
	})
	ctx := context.Background()

	created, err := module.Handler.CreateArtifactHandler(ctx, "influencer-1", planRequest())
	if err != nil {
		t.Fatalf("create plan failed: %v", err)
	}
	artifactID := created.Artifact.ArtifactID
	if _, err := module.Handler.RequestRevisionHandler(ctx, "brand-1", artifactID, httptransport.RequestRevisionRequest{
		ActorName: "Brand One",
		Feedback:  "tighten the hook",
	}); err != nil {
		t.Fatalf("request revision failed: %v", err)
	}

	repo.failUpdates = true
	_, err = module.Handler.GiveFeedbackHandler(ctx, "influencer-1", artifactID, httptransport.GiveFeedbackRequest{
		ActorName: "Influencer One",
		Response:  "reworked the opening",
	})
	if !errors.Is(err, errStoreDown) {
		t.Fatalf("expected store failure, got %v", err)
	}

	stored, err := store.GetArtifact(ctx, artifactID)
	if err != nil {
		t.Fatalf("get artifact failed: %v", err)
	}
	if entities.DeriveStatus(stored) != entities.ArtifactStatusRevisionRequested {
		t.Fatalf("expected artifact still revision_requested, got %s", entities.DeriveStatus(stored))
	}
	if stored.CurrentRevisionNumber != 0 {
		t.Fatalf("expected revision number unchanged, got %d", stored.CurrentRevisionNumber)
	}
	pending, ok := stored.PendingRevision()
	if !ok {
		t.Fatal("expected the round to still be pending")
	}
	if pending.Response != "" || pending.RespondedAt != nil {
		t.Fatalf("expected no response recorded, got %q", pending.Response)
	}
}

func TestRevisionNumberTracksCompletedRequesterRounds(t *testing.T) {
	module := contentservice.NewInMemoryModule(nil, nil, nil)
	ctx := context.Background()

	created, err := module.Handler.CreateArtifactHandler(ctx, "influencer-1", planRequest())
	if err != nil {
		t.Fatalf("create plan failed: %v", err)
	}
	artifactID := created.Artifact.ArtifactID

	for round := 1; round <= 3; round++ {
		revision, err := module.Handler.RequestRevisionHandler(ctx, "brand-1", artifactID, httptransport.RequestRevisionRequest{
			ActorName: "Brand One",
			Feedback:  "another pass",
		})
		if err != nil {
			t.Fatalf("round %d request failed: %v", round, err)
		}
		if revision.Revision.RevisionNumber != round {
			t.Fatalf("round %d: expected revision number %d, got %d", round, round, revision.Revision.RevisionNumber)
		}
		if _, err := module.Handler.GiveFeedbackHandler(ctx, "influencer-1", artifactID, httptransport.GiveFeedbackRequest{
			ActorName: "Influencer One",
			Response:  "done",
		}); err != nil {
			t.Fatalf("round %d feedback failed: %v", round, err)
		}

		got, err := module.Handler.GetArtifactHandler(ctx, artifactID)
		if err != nil {
			t.Fatalf("round %d get failed: %v", round, err)
		}
		if got.Artifact.CurrentRevisionNumber != round {
			t.Fatalf("round %d: expected current revision number %d, got %d", round, round, got.Artifact.CurrentRevisionNumber)
		}
	}
}
