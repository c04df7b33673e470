package ports

import (
	"context"
	"time"

	"collabo/contexts/collab-pipeline/campaign-service/domain/entities"
	"collabo/internal/shared/events"
)

type CampaignRepository interface {
	CreateCampaign(ctx context.Context, campaign entities.Campaign) error
	UpdateCampaign(ctx context.Context, campaign entities.Campaign) error
	GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error)
	ListCampaigns(ctx context.Context) ([]entities.Campaign, error)
}

type SubjectRepository interface {
	AddSubject(ctx context.Context, subject entities.Subject) error
	UpdateSubject(ctx context.Context, subject entities.Subject) error
	GetSubject(ctx context.Context, subjectID string) (entities.Subject, error)
	ListSubjects(ctx context.Context, campaignID string) ([]entities.Subject, error)
}

// ApprovedArtifact is the completion fact the stage controller reads
// from the content context: this subject's artifact of this kind is
// approved.
type ApprovedArtifact struct {
	SubjectID string
	Kind      string // content_plan or content_submission
}

// ArtifactReader exposes the content context's approval facts to the
// stage controller without coupling it to content internals.
type ArtifactReader interface {
	ListApprovedArtifacts(ctx context.Context, campaignID string) ([]ApprovedArtifact, error)
}

// SettlementReader reports whether the campaign's settlement has reached
// its terminal status.
type SettlementReader interface {
	SettlementCompleted(ctx context.Context, campaignID string) (bool, error)
}

type EventSubscriber interface {
	Subscribe(ctx context.Context, topic string, consumerGroup string, handler func(context.Context, events.Envelope) error) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
