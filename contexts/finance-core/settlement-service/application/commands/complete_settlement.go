package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	application "collabo/contexts/finance-core/settlement-service/application"
	"collabo/contexts/finance-core/settlement-service/domain/entities"
	domainerrors "collabo/contexts/finance-core/settlement-service/domain/errors"
	"collabo/contexts/finance-core/settlement-service/ports"
	"collabo/internal/shared/outbox"
)

type CompleteSettlementCommand struct {
	SettlementID string
}

type CompleteSettlementUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

// Execute finishes a processing payment. The terminal status and the
// settlement.completed outbox row land in one repository write, so a
// settlement can never complete without its event nor emit the event
// twice: a second call finds the settlement already completed and fails
// the transition guard.
func (uc CompleteSettlementUseCase) Execute(ctx context.Context, cmd CompleteSettlementCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	settlement, err := uc.Repository.GetSettlement(ctx, strings.TrimSpace(cmd.SettlementID))
	if err != nil {
		return err
	}
	if !entities.CanTransition(settlement.Status, entities.SettlementStatusCompleted) {
		return domainerrors.ErrInvalidStatusTransition
	}

	now := uc.Clock.Now().UTC()
	settlement.Status = entities.SettlementStatusCompleted
	settlement.CompletedAt = &now
	if settlement.Payment != nil {
		settlement.Payment.CompletedAt = &now
	}
	settlement.UpdatedAt = now

	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	envelope := NewSettlementCompletedEnvelope(settlement, eventID, now)
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	message := outbox.Message{
		OutboxID:  eventID,
		EventType: envelope.EventType,
		Payload:   payload,
		Status:    outbox.StatusPending,
		CreatedAt: now,
	}

	if err := uc.Repository.CompleteSettlement(ctx, settlement, message); err != nil {
		return err
	}

	logger.Info("settlement completed",
		"event", "settlement_completed",
		"module", "finance-core/settlement-service",
		"layer", "application",
		"settlement_id", settlement.SettlementID,
		"campaign_id", settlement.CampaignID,
	)
	return nil
}
