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

type RequestRevisionCommand struct {
	ArtifactID string
	ActorID    string
	ActorName  string
	Feedback   string
}

type RequestRevisionUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

// Execute opens a new requester round. Legal only from draft or
// feedback_given, and only while no round is pending: a second request
// before the fulfiller responds is a conflict, not a queued round.
func (uc RequestRevisionUseCase) Execute(ctx context.Context, cmd RequestRevisionCommand) (entities.Revision, error) {
	logger := application.ResolveLogger(uc.Logger)
	artifact, err := uc.Repository.GetArtifact(ctx, strings.TrimSpace(cmd.ArtifactID))
	if err != nil {
		return entities.Revision{}, err
	}
	if strings.TrimSpace(cmd.ActorID) == "" {
		return entities.Revision{}, domainerrors.ErrUnauthorizedActor
	}
	if strings.TrimSpace(cmd.Feedback) == "" {
		return entities.Revision{}, domainerrors.ErrInvalidArtifactInput
	}

	status := entities.DeriveStatus(artifact)
	if status == entities.ArtifactStatusApproved {
		return entities.Revision{}, domainerrors.ErrInvalidStatusTransition
	}
	if artifact.HasPendingRevision() {
		return entities.Revision{}, domainerrors.ErrRevisionConflict
	}
	if status != entities.ArtifactStatusDraft && status != entities.ArtifactStatusFeedbackGiven {
		return entities.Revision{}, domainerrors.ErrInvalidStatusTransition
	}

	revisionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Revision{}, err
	}

	now := uc.Clock.Now().UTC()
	revision := entities.Revision{
		RevisionID:      revisionID,
		RevisionNumber:  artifact.CurrentRevisionNumber + 1,
		RequestedBy:     entities.ActorRequester,
		RequestedByName: strings.TrimSpace(cmd.ActorName),
		RequestedAt:     now,
		Feedback:        strings.TrimSpace(cmd.Feedback),
		Status:          entities.RevisionStatusPending,
	}

	artifact.Revisions = append(artifact.Revisions, revision)
	artifact.Status = entities.DeriveStatus(artifact)
	artifact.UpdatedAt = now
	if err := uc.Repository.UpdateArtifact(ctx, artifact); err != nil {
		return entities.Revision{}, err
	}

	logger.Info("revision requested",
		"event", "artifact_revision_requested",
		"module", "collab-pipeline/content-service",
		"layer", "application",
		"artifact_id", artifact.ArtifactID,
		"revision_number", revision.RevisionNumber,
	)
	return revision, nil
}
