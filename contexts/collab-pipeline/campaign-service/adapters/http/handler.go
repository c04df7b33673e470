package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"collabo/contexts/collab-pipeline/campaign-service/application/commands"
	"collabo/contexts/collab-pipeline/campaign-service/application/queries"
	"collabo/contexts/collab-pipeline/campaign-service/domain/entities"
	httptransport "collabo/contexts/collab-pipeline/campaign-service/transport/http"
)

type Handler struct {
	CreateCampaign commands.CreateCampaignUseCase
	ManageSubjects commands.ManageSubjectsUseCase
	RecomputeStage commands.RecomputeStageUseCase
	Queries        queries.QueryUseCase
	Logger         *slog.Logger
}

func (h Handler) CreateCampaignHandler(
	ctx context.Context,
	req httptransport.CreateCampaignRequest,
) (httptransport.CreateCampaignResponse, error) {
	item, err := h.CreateCampaign.Execute(ctx, commands.CreateCampaignCommand{
		BrandID:     req.BrandID,
		OperatorID:  req.OperatorID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return httptransport.CreateCampaignResponse{}, err
	}
	return httptransport.CreateCampaignResponse{Campaign: mapCampaign(item)}, nil
}

func (h Handler) GetCampaignHandler(ctx context.Context, campaignID string) (httptransport.GetCampaignResponse, error) {
	item, err := h.Queries.GetCampaign(ctx, campaignID)
	if err != nil {
		return httptransport.GetCampaignResponse{}, err
	}
	return httptransport.GetCampaignResponse{Campaign: mapCampaign(item)}, nil
}

func (h Handler) ListCampaignsHandler(ctx context.Context) (httptransport.ListCampaignsResponse, error) {
	items, err := h.Queries.ListCampaigns(ctx)
	if err != nil {
		return httptransport.ListCampaignsResponse{}, err
	}
	result := make([]httptransport.CampaignDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapCampaign(item))
	}
	return httptransport.ListCampaignsResponse{Items: result}, nil
}

func (h Handler) AddSubjectHandler(
	ctx context.Context,
	actorID string,
	campaignID string,
	req httptransport.AddSubjectRequest,
) (httptransport.SubjectResponse, error) {
	item, err := h.ManageSubjects.Add(ctx, commands.AddSubjectCommand{
		CampaignID: campaignID,
		ActorID:    actorID,
		Name:       req.Name,
		Platform:   req.Platform,
	})
	if err != nil {
		return httptransport.SubjectResponse{}, err
	}
	return httptransport.SubjectResponse{Subject: mapSubject(item)}, nil
}

func (h Handler) DecideSubjectHandler(
	ctx context.Context,
	actorID string,
	subjectID string,
	req httptransport.DecideSubjectRequest,
) (httptransport.SubjectResponse, error) {
	item, err := h.ManageSubjects.Decide(ctx, commands.DecideSubjectCommand{
		SubjectID: subjectID,
		ActorID:   actorID,
		Confirmed: req.Confirmed,
	})
	if err != nil {
		return httptransport.SubjectResponse{}, err
	}
	return httptransport.SubjectResponse{Subject: mapSubject(item)}, nil
}

func (h Handler) ListSubjectsHandler(ctx context.Context, campaignID string) (httptransport.ListSubjectsResponse, error) {
	items, err := h.Queries.ListSubjects(ctx, campaignID)
	if err != nil {
		return httptransport.ListSubjectsResponse{}, err
	}
	result := make([]httptransport.SubjectDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapSubject(item))
	}
	return httptransport.ListSubjectsResponse{Items: result}, nil
}

func (h Handler) RecomputeStageHandler(ctx context.Context, campaignID string) (httptransport.RecomputeStageResponse, error) {
	stage, err := h.RecomputeStage.Execute(ctx, campaignID)
	if err != nil {
		return httptransport.RecomputeStageResponse{}, err
	}
	return httptransport.RecomputeStageResponse{
		CampaignID:   campaignID,
		CurrentStage: stage,
		StageLabel:   queries.StageLabel(stage),
	}, nil
}

func mapCampaign(campaign entities.Campaign) httptransport.CampaignDTO {
	return httptransport.CampaignDTO{
		CampaignID:   campaign.CampaignID,
		BrandID:      campaign.BrandID,
		OperatorID:   campaign.OperatorID,
		Title:        campaign.Title,
		Description:  campaign.Description,
		CurrentStage: campaign.CurrentStage,
		StageLabel:   queries.StageLabel(campaign.CurrentStage),
		CreatedAt:    campaign.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    campaign.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func mapSubject(subject entities.Subject) httptransport.SubjectDTO {
	return httptransport.SubjectDTO{
		SubjectID:  subject.SubjectID,
		CampaignID: subject.CampaignID,
		Name:       subject.Name,
		Platform:   subject.Platform,
		Status:     string(subject.Status),
		CreatedAt:  subject.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  subject.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
