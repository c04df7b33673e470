package queries

import (
	"context"
	"log/slog"
	"strings"

	"collabo/contexts/collab-pipeline/campaign-service/domain/entities"
	"collabo/contexts/collab-pipeline/campaign-service/ports"
)

type QueryUseCase struct {
	Campaigns ports.CampaignRepository
	Subjects  ports.SubjectRepository
	Logger    *slog.Logger
}

func (uc QueryUseCase) GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error) {
	return uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(campaignID))
}

func (uc QueryUseCase) ListCampaigns(ctx context.Context) ([]entities.Campaign, error) {
	return uc.Campaigns.ListCampaigns(ctx)
}

func (uc QueryUseCase) ListSubjects(ctx context.Context, campaignID string) ([]entities.Subject, error) {
	return uc.Subjects.ListSubjects(ctx, strings.TrimSpace(campaignID))
}

// StageLabel is the wording the tab bar shows for a stage. Consumers
// display it verbatim.
func StageLabel(stage int) string {
	switch stage {
	case entities.StageSourcing:
		return "Influencer sourcing"
	case entities.StagePlanning:
		return "Content planning"
	case entities.StageProduction:
		return "Content production"
	case entities.StageSettlement:
		return "Settlement"
	case entities.StageCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}
