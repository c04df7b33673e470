package ports

import (
	"context"
	"time"

	"collabo/contexts/collab-pipeline/content-service/domain/entities"
)

type ArtifactFilter struct {
	CampaignID string
	SubjectID  string
	Kind       entities.ArtifactKind
	Status     entities.ArtifactStatus
}

type Repository interface {
	CreateArtifact(ctx context.Context, artifact entities.Artifact) error
	UpdateArtifact(ctx context.Context, artifact entities.Artifact) error
	GetArtifact(ctx context.Context, artifactID string) (entities.Artifact, error)
	ListArtifacts(ctx context.Context, filter ArtifactFilter) ([]entities.Artifact, error)
}

// StageGate asks the campaign context whether an operation gated on a
// pipeline stage is currently legal. The engine trusts the answer; it
// performs no authorization of its own.
type StageGate interface {
	StageUnlocked(ctx context.Context, campaignID string, stage int) (bool, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
