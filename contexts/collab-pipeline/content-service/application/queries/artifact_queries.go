package queries

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"collabo/contexts/collab-pipeline/content-service/domain/entities"
	"collabo/contexts/collab-pipeline/content-service/ports"
)

type QueryUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

type ListArtifactsQuery struct {
	CampaignID string
	SubjectID  string
	Kind       string
	Status     string
}

func (uc QueryUseCase) GetArtifact(ctx context.Context, artifactID string) (entities.Artifact, error) {
	return uc.Repository.GetArtifact(ctx, strings.TrimSpace(artifactID))
}

func (uc QueryUseCase) ListArtifacts(ctx context.Context, query ListArtifactsQuery) ([]entities.Artifact, error) {
	return uc.Repository.ListArtifacts(ctx, ports.ArtifactFilter{
		CampaignID: strings.TrimSpace(query.CampaignID),
		SubjectID:  strings.TrimSpace(query.SubjectID),
		Kind:       entities.ArtifactKind(strings.TrimSpace(query.Kind)),
		Status:     entities.ArtifactStatus(strings.TrimSpace(query.Status)),
	})
}

// RoundLabels holds the human-readable round labels shown to each actor.
// Both labels reference the requester's round count; neither actor keeps
// a private count, which is what kept the two sides' numbering aligned
// off by one in earlier versions of this pipeline.
type RoundLabels struct {
	RequestLabel  string
	FeedbackLabel string
}

// Labels derives both actors' round labels from the single authoritative
// pair (CurrentRevisionNumber, pending round present).
func Labels(artifact entities.Artifact) RoundLabels {
	completed := artifact.CurrentRevisionNumber
	if artifact.HasPendingRevision() {
		active := completed + 1
		return RoundLabels{
			RequestLabel:  fmt.Sprintf("Revision request #%d sent", active),
			FeedbackLabel: fmt.Sprintf("Revision request #%d awaiting response", active),
		}
	}
	if completed == 0 {
		return RoundLabels{
			RequestLabel:  "No revisions requested",
			FeedbackLabel: "No feedback rounds yet",
		}
	}
	return RoundLabels{
		RequestLabel:  fmt.Sprintf("%d revision round(s) completed", completed),
		FeedbackLabel: fmt.Sprintf("Feedback #%d delivered", completed),
	}
}

// StatusLabel maps a derived status to the wording each artifact kind
// uses in the UI. Consumers display these verbatim and never recompute
// status on their side.
func StatusLabel(artifact entities.Artifact) string {
	status := entities.DeriveStatus(artifact)
	plan := artifact.Kind == entities.ArtifactKindContentPlan
	switch status {
	case entities.ArtifactStatusDraft:
		if plan {
			return "Plan drafted"
		}
		return "Content submitted"
	case entities.ArtifactStatusRevisionRequested:
		return "Revision requested"
	case entities.ArtifactStatusFeedbackGiven:
		if plan {
			return "Plan revised"
		}
		return "Content re-uploaded"
	case entities.ArtifactStatusApproved:
		if plan {
			return "Plan approved"
		}
		return "Content approved"
	default:
		return string(status)
	}
}
