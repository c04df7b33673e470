package campaignservice_test

import (
	"context"
	"errors"
	"testing"

	campaignservice "collabo/contexts/collab-pipeline/campaign-service"
	domainerrors "collabo/contexts/collab-pipeline/campaign-service/domain/errors"
	"collabo/contexts/collab-pipeline/campaign-service/ports"
	httptransport "collabo/contexts/collab-pipeline/campaign-service/transport/http"
)

type fakeApprovals struct {
	approved []ports.ApprovedArtifact
}

func (f *fakeApprovals) ListApprovedArtifacts(_ context.Context, _ string) ([]ports.ApprovedArtifact, error) {
	return f.approved, nil
}

type fakeSettlement struct {
	completed bool
}

func (f *fakeSettlement) SettlementCompleted(_ context.Context, _ string) (bool, error) {
	return f.completed, nil
}

func createCampaign(t *testing.T, module campaignservice.Module) httptransport.CampaignDTO {
	t.Helper()
	resp, err := module.Handler.CreateCampaignHandler(context.Background(), httptransport.CreateCampaignRequest{
		BrandID:     "brand-1",
		OperatorID:  "operator-1",
		Title:       "Summer launch",
		Description: "seasonal product push",
	})
	if err != nil {
		t.Fatalf("create campaign failed: %v", err)
	}
	return resp.Campaign
}

func TestCampaignStartsInSourcing(t *testing.T) {
	module := campaignservice.NewInMemoryModule(nil, nil, nil, nil)
	campaign := createCampaign(t, module)
	if campaign.CurrentStage != 1 {
		t.Fatalf("expected stage 1, got %d", campaign.CurrentStage)
	}
	if campaign.StageLabel == "" {
		t.Fatalf("expected a stage label")
	}
}

func TestConfirmedSubjectUnlocksPlanning(t *testing.T) {
	module := campaignservice.NewInMemoryModule(nil, nil, nil, nil)
	ctx := context.Background()
	campaign := createCampaign(t, module)

	subject, err := module.Handler.AddSubjectHandler(ctx, "operator-1", campaign.CampaignID, httptransport.AddSubjectRequest{
		Name:     "Creator A",
		Platform: "youtube",
	})
	if err != nil {
		t.Fatalf("add subject failed: %v", err)
	}
	if subject.Subject.Status != "proposed" {
		t.Fatalf("expected proposed subject, got %s", subject.Subject.Status)
	}

	recomputed, err := module.Handler.RecomputeStageHandler(ctx, campaign.CampaignID)
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	if recomputed.CurrentStage != 1 {
		t.Fatalf("proposed subject must not unlock planning, got stage %d", recomputed.CurrentStage)
	}

	if _, err := module.Handler.DecideSubjectHandler(ctx, "brand-1", subject.Subject.SubjectID, httptransport.DecideSubjectRequest{
		Confirmed: true,
	}); err != nil {
		t.Fatalf("decide subject failed: %v", err)
	}

	recomputed, err = module.Handler.RecomputeStageHandler(ctx, campaign.CampaignID)
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	if recomputed.CurrentStage != 2 {
		t.Fatalf("expected stage 2 after confirmation, got %d", recomputed.CurrentStage)
	}
}

func TestSubjectDecisionIsFinal(t *testing.T) {
	module := campaignservice.NewInMemoryModule(nil, nil, nil, nil)
	ctx := context.Background()
	campaign := createCampaign(t, module)

	subject, err := module.Handler.AddSubjectHandler(ctx, "operator-1", campaign.CampaignID, httptransport.AddSubjectRequest{
		Name:     "Creator B",
		Platform: "instagram",
	})
	if err != nil {
		t.Fatalf("add subject failed: %v", err)
	}
	if _, err := module.Handler.DecideSubjectHandler(ctx, "brand-1", subject.Subject.SubjectID, httptransport.DecideSubjectRequest{
		Confirmed: false,
	}); err != nil {
		t.Fatalf("decline failed: %v", err)
	}

	_, err = module.Handler.DecideSubjectHandler(ctx, "brand-1", subject.Subject.SubjectID, httptransport.DecideSubjectRequest{
		Confirmed: true,
	})
	if !errors.Is(err, domainerrors.ErrInvalidSubjectStatus) {
		t.Fatalf("expected invalid subject status on second decision, got %v", err)
	}
}

func TestDuplicateSubjectRejected(t *testing.T) {
	module := campaignservice.NewInMemoryModule(nil, nil, nil, nil)
	ctx := context.Background()
	campaign := createCampaign(t, module)

	request := httptransport.AddSubjectRequest{Name: "Creator C", Platform: "tiktok"}
	if _, err := module.Handler.AddSubjectHandler(ctx, "operator-1", campaign.CampaignID, request); err != nil {
		t.Fatalf("add subject failed: %v", err)
	}
	_, err := module.Handler.AddSubjectHandler(ctx, "operator-1", campaign.CampaignID, request)
	if !errors.Is(err, domainerrors.ErrDuplicateSubject) {
		t.Fatalf("expected duplicate subject, got %v", err)
	}
}

func TestStageAdvancesThroughApprovalsAndSettlement(t *testing.T) {
	approvals := &fakeApprovals{}
	settlement := &fakeSettlement{}
	module := campaignservice.NewInMemoryModule(nil, approvals, settlement, nil)
	ctx := context.Background()
	campaign := createCampaign(t, module)

	subject, err := module.Handler.AddSubjectHandler(ctx, "operator-1", campaign.CampaignID, httptransport.AddSubjectRequest{
		Name:     "Creator D",
		Platform: "youtube",
	})
	if err != nil {
		t.Fatalf("add subject failed: %v", err)
	}
	if _, err := module.Handler.DecideSubjectHandler(ctx, "brand-1", subject.Subject.SubjectID, httptransport.DecideSubjectRequest{
		Confirmed: true,
	}); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	approvals.approved = []ports.ApprovedArtifact{
		{SubjectID: subject.Subject.SubjectID, Kind: "content_plan"},
	}
	recomputed, err := module.Handler.RecomputeStageHandler(ctx, campaign.CampaignID)
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	if recomputed.CurrentStage != 3 {
		t.Fatalf("expected stage 3 with approved plan, got %d", recomputed.CurrentStage)
	}

	unlocked, err := module.Gate.StageUnlocked(ctx, campaign.CampaignID, 4)
	if err != nil {
		t.Fatalf("gate check failed: %v", err)
	}
	if unlocked {
		t.Fatalf("settlement stage must stay locked before submissions are approved")
	}

	approvals.approved = append(approvals.approved, ports.ApprovedArtifact{
		SubjectID: subject.Subject.SubjectID,
		Kind:      "content_submission",
	})
	recomputed, err = module.Handler.RecomputeStageHandler(ctx, campaign.CampaignID)
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	if recomputed.CurrentStage != 4 {
		t.Fatalf("expected stage 4 with approved submission, got %d", recomputed.CurrentStage)
	}

	settlement.completed = true
	recomputed, err = module.Handler.RecomputeStageHandler(ctx, campaign.CampaignID)
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	if recomputed.CurrentStage != 5 {
		t.Fatalf("expected stage 5 after settlement completion, got %d", recomputed.CurrentStage)
	}
}
