package commands

import (
	"context"
	"log/slog"
	"strings"

	application "collabo/contexts/collab-pipeline/campaign-service/application"
	"collabo/contexts/collab-pipeline/campaign-service/domain/entities"
	"collabo/contexts/collab-pipeline/campaign-service/ports"
)

type RecomputeStageUseCase struct {
	Campaigns   ports.CampaignRepository
	Subjects    ports.SubjectRepository
	Artifacts   ports.ArtifactReader
	Settlements ports.SettlementReader
	Clock       ports.Clock
	Logger      *slog.Logger
}

// Execute recomputes the campaign's stage from its collections and
// persists it when it moved. Idempotent: callers invoke it after any
// operation that could complete a stage, and redundant calls are
// harmless.
func (uc RecomputeStageUseCase) Execute(ctx context.Context, campaignID string) (int, error) {
	logger := application.ResolveLogger(uc.Logger)
	campaign, err := uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(campaignID))
	if err != nil {
		return 0, err
	}

	stage, err := uc.derive(ctx, campaign.CampaignID)
	if err != nil {
		return 0, err
	}
	if stage == campaign.CurrentStage {
		return stage, nil
	}

	from := campaign.CurrentStage
	campaign.CurrentStage = stage
	campaign.UpdatedAt = uc.Clock.Now().UTC()
	if err := uc.Campaigns.UpdateCampaign(ctx, campaign); err != nil {
		return 0, err
	}

	logger.Info("campaign stage recomputed",
		"event", "campaign_stage_recomputed",
		"module", "collab-pipeline/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"from_stage", from,
		"to_stage", stage,
	)
	return stage, nil
}

// StageUnlocked answers the gate question without persisting anything.
func (uc RecomputeStageUseCase) StageUnlocked(ctx context.Context, campaignID string, stage int) (bool, error) {
	if _, err := uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(campaignID)); err != nil {
		return false, err
	}
	current, err := uc.derive(ctx, strings.TrimSpace(campaignID))
	if err != nil {
		return false, err
	}
	return current >= stage, nil
}

func (uc RecomputeStageUseCase) derive(ctx context.Context, campaignID string) (int, error) {
	subjects, err := uc.Subjects.ListSubjects(ctx, campaignID)
	if err != nil {
		return 0, err
	}
	approved, err := uc.Artifacts.ListApprovedArtifacts(ctx, campaignID)
	if err != nil {
		return 0, err
	}
	settled, err := uc.Settlements.SettlementCompleted(ctx, campaignID)
	if err != nil {
		return 0, err
	}

	inputs := entities.StageInputs{
		ApprovedPlans:       make(map[string]bool),
		ApprovedSubmissions: make(map[string]bool),
		SettlementCompleted: settled,
	}
	for _, subject := range subjects {
		if subject.Status == entities.SubjectStatusConfirmed {
			inputs.ConfirmedSubjectIDs = append(inputs.ConfirmedSubjectIDs, subject.SubjectID)
		}
	}
	for _, item := range approved {
		switch item.Kind {
		case "content_plan":
			inputs.ApprovedPlans[item.SubjectID] = true
		case "content_submission":
			inputs.ApprovedSubmissions[item.SubjectID] = true
		}
	}
	return entities.ComputeStage(inputs), nil
}
