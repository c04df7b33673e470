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

type GiveFeedbackCommand struct {
	ArtifactID     string
	ActorID        string
	ActorName      string
	Response       string
	UpdatedPayload *entities.Payload
}

type GiveFeedbackUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

// Execute completes the pending requester round with the fulfiller's
// response, optionally replacing the payload with reworked content.
// The feedback text of the round is never touched; only the response
// fields are stamped.
func (uc GiveFeedbackUseCase) Execute(ctx context.Context, cmd GiveFeedbackCommand) (entities.Revision, error) {
	logger := application.ResolveLogger(uc.Logger)
	artifact, err := uc.Repository.GetArtifact(ctx, strings.TrimSpace(cmd.ArtifactID))
	if err != nil {
		return entities.Revision{}, err
	}
	if strings.TrimSpace(cmd.ActorID) == "" {
		return entities.Revision{}, domainerrors.ErrUnauthorizedActor
	}

	if entities.DeriveStatus(artifact) == entities.ArtifactStatusApproved {
		return entities.Revision{}, domainerrors.ErrInvalidStatusTransition
	}
	pending, ok := artifact.PendingRevision()
	if !ok {
		return entities.Revision{}, domainerrors.ErrRevisionNotPending
	}

	now := uc.Clock.Now().UTC()
	var completed entities.Revision
	for i := range artifact.Revisions {
		if artifact.Revisions[i].RevisionID != pending.RevisionID {
			continue
		}
		artifact.Revisions[i].Status = entities.RevisionStatusCompleted
		artifact.Revisions[i].Response = strings.TrimSpace(cmd.Response)
		artifact.Revisions[i].RespondedBy = strings.TrimSpace(cmd.ActorName)
		artifact.Revisions[i].RespondedAt = &now
		completed = artifact.Revisions[i]
	}
	if completed.RequestedBy == entities.ActorRequester {
		artifact.CurrentRevisionNumber++
	}
	if cmd.UpdatedPayload != nil {
		artifact.Payload = *cmd.UpdatedPayload
	}
	artifact.Status = entities.DeriveStatus(artifact)
	artifact.UpdatedAt = now
	if err := uc.Repository.UpdateArtifact(ctx, artifact); err != nil {
		return entities.Revision{}, err
	}

	logger.Info("revision feedback given",
		"event", "artifact_feedback_given",
		"module", "collab-pipeline/content-service",
		"layer", "application",
		"artifact_id", artifact.ArtifactID,
		"revision_number", completed.RevisionNumber,
	)
	return completed, nil
}
