package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "collabo/contexts/finance-core/settlement-service/application"
	"collabo/contexts/finance-core/settlement-service/domain/entities"
	domainerrors "collabo/contexts/finance-core/settlement-service/domain/errors"
	"collabo/contexts/finance-core/settlement-service/ports"
)

type PayCommand struct {
	SettlementID  string
	ActorID       string
	PaymentMethod string
}

type PayUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	// ProcessingDelay is how long the payment sits in processing before
	// the completer worker may finish it. Zero means eligible
	// immediately on the next worker cycle.
	ProcessingDelay time.Duration
	Logger          *slog.Logger
}

func (uc PayUseCase) Execute(ctx context.Context, cmd PayCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	settlement, err := uc.Repository.GetSettlement(ctx, strings.TrimSpace(cmd.SettlementID))
	if err != nil {
		return err
	}
	if strings.TrimSpace(cmd.ActorID) == "" {
		return domainerrors.ErrUnauthorizedActor
	}
	if strings.TrimSpace(cmd.PaymentMethod) == "" {
		return domainerrors.ErrInvalidSettlementInput
	}
	if !entities.CanTransition(settlement.Status, entities.SettlementStatusPaymentProcessing) {
		return domainerrors.ErrInvalidStatusTransition
	}

	now := uc.Clock.Now().UTC()
	settlement.Status = entities.SettlementStatusPaymentProcessing
	settlement.Payment = &entities.Payment{
		Method:       strings.TrimSpace(cmd.PaymentMethod),
		RequestedAt:  now,
		ProcessAfter: now.Add(uc.ProcessingDelay),
	}
	settlement.UpdatedAt = now
	if err := uc.Repository.UpdateSettlement(ctx, settlement); err != nil {
		return err
	}

	logger.Info("settlement payment started",
		"event", "settlement_payment_started",
		"module", "finance-core/settlement-service",
		"layer", "application",
		"settlement_id", settlement.SettlementID,
		"campaign_id", settlement.CampaignID,
		"method", settlement.Payment.Method,
	)
	return nil
}
