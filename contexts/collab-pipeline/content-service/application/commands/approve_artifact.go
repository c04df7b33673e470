package commands

import (
	"context"
	"log/slog"
	"strings"

	application "collabo/contexts/collab-pipeline/content-service/application"
	"collabo/contexts/collab-pipeline/content-service/domain/entities"
	domainerrors "collabo/contexts/collab-pipeline/content-service/domain/errors"
	"collabo/contexts/collab-pipeline/content-service/ports"
)

type ApproveArtifactCommand struct {
	ArtifactID string
	ActorID    string
}

type ApproveArtifactUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

// Execute moves the artifact to its terminal approved status. Legal only
// from draft or feedback_given with no round in flight, and only when
// the payload passes the kind-specific completeness check. Approved
// artifacts accept no further mutation of any kind.
func (uc ApproveArtifactUseCase) Execute(ctx context.Context, cmd ApproveArtifactCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	artifact, err := uc.Repository.GetArtifact(ctx, strings.TrimSpace(cmd.ArtifactID))
	if err != nil {
		return err
	}
	if strings.TrimSpace(cmd.ActorID) == "" {
		return domainerrors.ErrUnauthorizedActor
	}

	status := entities.DeriveStatus(artifact)
	if status != entities.ArtifactStatusDraft && status != entities.ArtifactStatusFeedbackGiven {
		return domainerrors.ErrInvalidStatusTransition
	}
	if !artifact.HasContent() {
		return domainerrors.ErrArtifactIncomplete
	}

	now := uc.Clock.Now().UTC()
	artifact.Status = entities.ArtifactStatusApproved
	artifact.UpdatedAt = now
	if err := uc.Repository.UpdateArtifact(ctx, artifact); err != nil {
		return err
	}

	logger.Info("artifact approved",
		"event", "artifact_approved",
		"module", "collab-pipeline/content-service",
		"layer", "application",
		"artifact_id", artifact.ArtifactID,
		"campaign_id", artifact.CampaignID,
		"kind", string(artifact.Kind),
	)
	return nil
}
