package commands

import (
	"context"
	"log/slog"
	"strings"

	application "collabo/contexts/collab-pipeline/campaign-service/application"
	"collabo/contexts/collab-pipeline/campaign-service/domain/entities"
	domainerrors "collabo/contexts/collab-pipeline/campaign-service/domain/errors"
	"collabo/contexts/collab-pipeline/campaign-service/ports"
)

type CreateCampaignCommand struct {
	BrandID     string
	OperatorID  string
	Title       string
	Description string
}

type CreateCampaignUseCase struct {
	Campaigns ports.CampaignRepository
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func (uc CreateCampaignUseCase) Execute(ctx context.Context, cmd CreateCampaignCommand) (entities.Campaign, error) {
	logger := application.ResolveLogger(uc.Logger)
	campaign := entities.Campaign{
		BrandID:      strings.TrimSpace(cmd.BrandID),
		OperatorID:   strings.TrimSpace(cmd.OperatorID),
		Title:        strings.TrimSpace(cmd.Title),
		Description:  strings.TrimSpace(cmd.Description),
		CurrentStage: entities.StageSourcing,
	}
	if !campaign.ValidateCreate() {
		return entities.Campaign{}, domainerrors.ErrInvalidCampaignInput
	}

	campaignID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Campaign{}, err
	}

	now := uc.Clock.Now().UTC()
	campaign.CampaignID = campaignID
	campaign.CreatedAt = now
	campaign.UpdatedAt = now
	if err := uc.Campaigns.CreateCampaign(ctx, campaign); err != nil {
		return entities.Campaign{}, err
	}

	logger.Info("campaign created",
		"event", "campaign_created",
		"module", "collab-pipeline/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"brand_id", campaign.BrandID,
	)
	return campaign, nil
}
