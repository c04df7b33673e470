package ports

import (
	"context"
	"time"

	"collabo/contexts/finance-core/settlement-service/domain/entities"
	"collabo/internal/shared/events"
	"collabo/internal/shared/outbox"
)

type SettlementFilter struct {
	CampaignID string
	Status     entities.SettlementStatus
}

type Repository interface {
	CreateSettlement(ctx context.Context, settlement entities.Settlement) error
	UpdateSettlement(ctx context.Context, settlement entities.Settlement) error
	// CompleteSettlement persists the terminal status and the outbox row
	// in one repository write, so the completion event cannot be lost
	// between the two.
	CompleteSettlement(ctx context.Context, settlement entities.Settlement, message outbox.Message) error
	GetSettlement(ctx context.Context, settlementID string) (entities.Settlement, error)
	GetSettlementByCampaign(ctx context.Context, campaignID string) (entities.Settlement, error)
	ListSettlements(ctx context.Context, filter SettlementFilter) ([]entities.Settlement, error)
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]outbox.Message, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}

// StageGate asks the campaign context whether settlement operations are
// unlocked for the campaign.
type StageGate interface {
	StageUnlocked(ctx context.Context, campaignID string, stage int) (bool, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
