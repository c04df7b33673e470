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

type CreateArtifactCommand struct {
	CampaignID  string
	SubjectID   string
	ActorID     string
	Kind        entities.ArtifactKind
	ContentType entities.ContentType
	Payload     entities.Payload
}

type CreateArtifactUseCase struct {
	Repository ports.Repository
	StageGate  ports.StageGate
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

// requiredStage is the pipeline stage that must be unlocked before an
// artifact of the given kind may exist: plans belong to the planning
// stage, submissions to the production stage.
func requiredStage(kind entities.ArtifactKind) int {
	if kind == entities.ArtifactKindContentSubmission {
		return 3
	}
	return 2
}

func (uc CreateArtifactUseCase) Execute(ctx context.Context, cmd CreateArtifactCommand) (entities.Artifact, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.ActorID) == "" {
		return entities.Artifact{}, domainerrors.ErrUnauthorizedActor
	}

	artifact := entities.Artifact{
		CampaignID:  strings.TrimSpace(cmd.CampaignID),
		SubjectID:   strings.TrimSpace(cmd.SubjectID),
		Kind:        cmd.Kind,
		ContentType: cmd.ContentType,
		Payload:     cmd.Payload,
		Status:      entities.ArtifactStatusDraft,
	}
	if !artifact.ValidateCreate() {
		return entities.Artifact{}, domainerrors.ErrInvalidArtifactInput
	}

	unlocked, err := uc.StageGate.StageUnlocked(ctx, artifact.CampaignID, requiredStage(artifact.Kind))
	if err != nil {
		return entities.Artifact{}, err
	}
	if !unlocked {
		return entities.Artifact{}, domainerrors.ErrStageLocked
	}

	existing, err := uc.Repository.ListArtifacts(ctx, ports.ArtifactFilter{
		CampaignID: artifact.CampaignID,
		SubjectID:  artifact.SubjectID,
		Kind:       artifact.Kind,
	})
	if err != nil {
		return entities.Artifact{}, err
	}
	if len(existing) > 0 {
		return entities.Artifact{}, domainerrors.ErrDuplicateArtifact
	}

	artifactID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Artifact{}, err
	}

	now := uc.Clock.Now().UTC()
	artifact.ArtifactID = artifactID
	artifact.CreatedAt = now
	artifact.UpdatedAt = now
	if err := uc.Repository.CreateArtifact(ctx, artifact); err != nil {
		return entities.Artifact{}, err
	}

	logger.Info("artifact created",
		"event", "artifact_created",
		"module", "collab-pipeline/content-service",
		"layer", "application",
		"artifact_id", artifact.ArtifactID,
		"campaign_id", artifact.CampaignID,
		"subject_id", artifact.SubjectID,
		"kind", string(artifact.Kind),
	)
	return artifact, nil
}
