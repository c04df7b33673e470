package commands

import (
	"context"
	"log/slog"
	"strings"

	application "collabo/contexts/finance-core/settlement-service/application"
	"collabo/contexts/finance-core/settlement-service/domain/entities"
	domainerrors "collabo/contexts/finance-core/settlement-service/domain/errors"
	"collabo/contexts/finance-core/settlement-service/ports"
)

type RequestInvoiceCommand struct {
	SettlementID       string
	ActorID            string
	BusinessName       string
	BusinessNumber     string
	RepresentativeName string
	Email              string
}

type RequestInvoiceUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (uc RequestInvoiceUseCase) Execute(ctx context.Context, cmd RequestInvoiceCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	settlement, err := uc.Repository.GetSettlement(ctx, strings.TrimSpace(cmd.SettlementID))
	if err != nil {
		return err
	}
	if strings.TrimSpace(cmd.ActorID) == "" {
		return domainerrors.ErrUnauthorizedActor
	}
	if !entities.CanTransition(settlement.Status, entities.SettlementStatusInvoiceRequested) {
		return domainerrors.ErrInvalidStatusTransition
	}

	now := uc.Clock.Now().UTC()
	invoice := entities.TaxInvoice{
		BusinessName:       strings.TrimSpace(cmd.BusinessName),
		BusinessNumber:     strings.TrimSpace(cmd.BusinessNumber),
		RepresentativeName: strings.TrimSpace(cmd.RepresentativeName),
		Email:              strings.TrimSpace(cmd.Email),
		RequestedAt:        now,
	}
	if !invoice.Validate() {
		return domainerrors.ErrInvalidSettlementInput
	}

	settlement.Status = entities.SettlementStatusInvoiceRequested
	settlement.TaxInvoice = &invoice
	settlement.UpdatedAt = now
	if err := uc.Repository.UpdateSettlement(ctx, settlement); err != nil {
		return err
	}

	logger.Info("tax invoice requested",
		"event", "settlement_invoice_requested",
		"module", "finance-core/settlement-service",
		"layer", "application",
		"settlement_id", settlement.SettlementID,
		"campaign_id", settlement.CampaignID,
	)
	return nil
}
