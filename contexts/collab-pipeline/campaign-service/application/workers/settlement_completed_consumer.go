package workers

import (
	"context"
	"log/slog"

	application "collabo/contexts/collab-pipeline/campaign-service/application"
	"collabo/contexts/collab-pipeline/campaign-service/application/commands"
	"collabo/contexts/collab-pipeline/campaign-service/ports"
	"collabo/internal/shared/events"
)

// SettlementCompletedConsumer advances a campaign's stage when its
// settlement reaches terminal status. The settlement machine never
// touches the campaign aggregate directly; this consumer is the only
// bridge.
type SettlementCompletedConsumer struct {
	Subscriber    ports.EventSubscriber
	Recompute     commands.RecomputeStageUseCase
	ConsumerGroup string
	Logger        *slog.Logger
}

func (c SettlementCompletedConsumer) Start(ctx context.Context) error {
	logger := application.ResolveLogger(c.Logger)
	return c.Subscriber.Subscribe(ctx, events.TypeSettlementCompleted, c.ConsumerGroup, func(ctx context.Context, event events.Envelope) error {
		campaignID := event.EntityID
		if campaignID == "" {
			logger.Warn("settlement completed event without campaign id",
				"event", "settlement_completed_event_invalid",
				"module", "collab-pipeline/campaign-service",
				"layer", "worker",
				"event_id", event.EventID,
			)
			return nil
		}
		stage, err := c.Recompute.Execute(ctx, campaignID)
		if err != nil {
			logger.Error("stage recompute failed",
				"event", "stage_recompute_failed",
				"module", "collab-pipeline/campaign-service",
				"layer", "worker",
				"campaign_id", campaignID,
				"error", err.Error(),
			)
			return err
		}
		logger.Info("stage advanced on settlement completion",
			"event", "stage_advanced",
			"module", "collab-pipeline/campaign-service",
			"layer", "worker",
			"campaign_id", campaignID,
			"stage", stage,
		)
		return nil
	})
}
