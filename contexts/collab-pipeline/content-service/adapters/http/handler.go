package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"collabo/contexts/collab-pipeline/content-service/application/commands"
	"collabo/contexts/collab-pipeline/content-service/application/queries"
	"collabo/contexts/collab-pipeline/content-service/domain/entities"
	httptransport "collabo/contexts/collab-pipeline/content-service/transport/http"
)

type Handler struct {
	CreateArtifact  commands.CreateArtifactUseCase
	RequestRevision commands.RequestRevisionUseCase
	GiveFeedback    commands.GiveFeedbackUseCase
	ApproveArtifact commands.ApproveArtifactUseCase
	Queries         queries.QueryUseCase
	Logger          *slog.Logger
}

func (h Handler) CreateArtifactHandler(
	ctx context.Context,
	actorID string,
	req httptransport.CreateArtifactRequest,
) (httptransport.CreateArtifactResponse, error) {
	item, err := h.CreateArtifact.Execute(ctx, commands.CreateArtifactCommand{
		CampaignID:  req.CampaignID,
		SubjectID:   req.SubjectID,
		ActorID:     actorID,
		Kind:        entities.ArtifactKind(req.Kind),
		ContentType: entities.ContentType(req.ContentType),
		Payload:     payloadFromDTO(req.Payload),
	})
	if err != nil {
		return httptransport.CreateArtifactResponse{}, err
	}
	return httptransport.CreateArtifactResponse{Artifact: mapArtifact(item)}, nil
}

func (h Handler) GetArtifactHandler(ctx context.Context, artifactID string) (httptransport.GetArtifactResponse, error) {
	item, err := h.Queries.GetArtifact(ctx, artifactID)
	if err != nil {
		return httptransport.GetArtifactResponse{}, err
	}
	return httptransport.GetArtifactResponse{Artifact: mapArtifact(item)}, nil
}

func (h Handler) ListArtifactsHandler(
	ctx context.Context,
	campaignID string,
	subjectID string,
	kind string,
	status string,
) (httptransport.ListArtifactsResponse, error) {
	items, err := h.Queries.ListArtifacts(ctx, queries.ListArtifactsQuery{
		CampaignID: campaignID,
		SubjectID:  subjectID,
		Kind:       kind,
		Status:     status,
	})
	if err != nil {
		return httptransport.ListArtifactsResponse{}, err
	}
	result := make([]httptransport.ArtifactDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapArtifact(item))
	}
	return httptransport.ListArtifactsResponse{Items: result}, nil
}

func (h Handler) RequestRevisionHandler(
	ctx context.Context,
	actorID string,
	artifactID string,
	req httptransport.RequestRevisionRequest,
) (httptransport.RevisionResponse, error) {
	revision, err := h.RequestRevision.Execute(ctx, commands.RequestRevisionCommand{
		ArtifactID: artifactID,
		ActorID:    actorID,
		ActorName:  req.ActorName,
		Feedback:   req.Feedback,
	})
	if err != nil {
		return httptransport.RevisionResponse{}, err
	}
	return httptransport.RevisionResponse{Revision: mapRevision(revision)}, nil
}

func (h Handler) GiveFeedbackHandler(
	ctx context.Context,
	actorID string,
	artifactID string,
	req httptransport.GiveFeedbackRequest,
) (httptransport.RevisionResponse, error) {
	var updated *entities.Payload
	if req.UpdatedPayload != nil {
		payload := payloadFromDTO(*req.UpdatedPayload)
		updated = &payload
	}
	revision, err := h.GiveFeedback.Execute(ctx, commands.GiveFeedbackCommand{
		ArtifactID:     artifactID,
		ActorID:        actorID,
		ActorName:      req.ActorName,
		Response:       req.Response,
		UpdatedPayload: updated,
	})
	if err != nil {
		return httptransport.RevisionResponse{}, err
	}
	return httptransport.RevisionResponse{Revision: mapRevision(revision)}, nil
}

func (h Handler) ApproveArtifactHandler(ctx context.Context, actorID string, artifactID string) error {
	return h.ApproveArtifact.Execute(ctx, commands.ApproveArtifactCommand{
		ArtifactID: artifactID,
		ActorID:    actorID,
	})
}

func payloadFromDTO(dto httptransport.PayloadDTO) entities.Payload {
	payload := entities.Payload{}
	if dto.Plan != nil {
		plan := entities.PlanDetails{
			Concept:  dto.Plan.Concept,
			Caption:  dto.Plan.Caption,
			Hashtags: append([]string(nil), dto.Plan.Hashtags...),
		}
		if dto.Plan.PostingDate != "" {
			if parsed, err := time.Parse(time.RFC3339, dto.Plan.PostingDate); err == nil {
				utc := parsed.UTC()
				plan.PostingDate = &utc
			}
		}
		payload.Plan = &plan
	}
	for _, file := range dto.Files {
		payload.Files = append(payload.Files, entities.ContentFile{
			FileID: file.FileID,
			Name:   file.Name,
			URL:    file.URL,
			Type:   file.Type,
			Size:   file.Size,
		})
	}
	return payload
}

func payloadToDTO(payload entities.Payload) httptransport.PayloadDTO {
	dto := httptransport.PayloadDTO{}
	if payload.Plan != nil {
		plan := httptransport.PlanDetailsDTO{
			Concept:  payload.Plan.Concept,
			Caption:  payload.Plan.Caption,
			Hashtags: append([]string(nil), payload.Plan.Hashtags...),
		}
		if payload.Plan.PostingDate != nil {
			plan.PostingDate = payload.Plan.PostingDate.UTC().Format(time.RFC3339)
		}
		dto.Plan = &plan
	}
	for _, file := range payload.Files {
		dto.Files = append(dto.Files, httptransport.ContentFileDTO{
			FileID: file.FileID,
			Name:   file.Name,
			URL:    file.URL,
			Type:   file.Type,
			Size:   file.Size,
		})
	}
	return dto
}

func mapRevision(revision entities.Revision) httptransport.RevisionDTO {
	dto := httptransport.RevisionDTO{
		RevisionID:      revision.RevisionID,
		RevisionNumber:  revision.RevisionNumber,
		RequestedBy:     string(revision.RequestedBy),
		RequestedByName: revision.RequestedByName,
		RequestedAt:     revision.RequestedAt.UTC().Format(time.RFC3339),
		Feedback:        revision.Feedback,
		Status:          string(revision.Status),
		Response:        revision.Response,
		RespondedBy:     revision.RespondedBy,
	}
	if revision.RespondedAt != nil {
		dto.RespondedAt = revision.RespondedAt.UTC().Format(time.RFC3339)
	}
	return dto
}

func mapArtifact(artifact entities.Artifact) httptransport.ArtifactDTO {
	labels := queries.Labels(artifact)
	revisions := make([]httptransport.RevisionDTO, 0, len(artifact.Revisions))
	for _, revision := range artifact.Revisions {
		revisions = append(revisions, mapRevision(revision))
	}
	return httptransport.ArtifactDTO{
		ArtifactID:            artifact.ArtifactID,
		CampaignID:            artifact.CampaignID,
		SubjectID:             artifact.SubjectID,
		Kind:                  string(artifact.Kind),
		ContentType:           string(artifact.ContentType),
		Payload:               payloadToDTO(artifact.Payload),
		Status:                string(entities.DeriveStatus(artifact)),
		StatusLabel:           queries.StatusLabel(artifact),
		RequestLabel:          labels.RequestLabel,
		FeedbackLabel:         labels.FeedbackLabel,
		Revisions:             revisions,
		CurrentRevisionNumber: artifact.CurrentRevisionNumber,
		CreatedAt:             artifact.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:             artifact.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
