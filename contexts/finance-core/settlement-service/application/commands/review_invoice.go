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

type ReviewInvoiceCommand struct {
	SettlementID string
	ActorID      string
	Approved     bool
}

type ReviewInvoiceUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

// Execute decides a requested invoice. Approval issues the invoice in
// the same update (there is no human issuance step between approval and
// issuance in this pipeline; the collapse is deliberate). Rejection is
// the one sanctioned regression, back to pending so the request can be
// corrected and resubmitted.
func (uc ReviewInvoiceUseCase) Execute(ctx context.Context, cmd ReviewInvoiceCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	settlement, err := uc.Repository.GetSettlement(ctx, strings.TrimSpace(cmd.SettlementID))
	if err != nil {
		return err
	}
	if strings.TrimSpace(cmd.ActorID) == "" {
		return domainerrors.ErrUnauthorizedActor
	}
	if settlement.Status != entities.SettlementStatusInvoiceRequested {
		return domainerrors.ErrInvalidStatusTransition
	}

	now := uc.Clock.Now().UTC()
	if cmd.Approved {
		settlement.Status = entities.SettlementStatusInvoiceIssued
		if settlement.TaxInvoice != nil {
			settlement.TaxInvoice.IssuedAt = &now
		}
	} else {
		settlement.Status = entities.SettlementStatusPending
		if settlement.TaxInvoice != nil {
			settlement.TaxInvoice.RejectedAt = &now
		}
	}
	settlement.UpdatedAt = now
	if err := uc.Repository.UpdateSettlement(ctx, settlement); err != nil {
		return err
	}

	logger.Info("tax invoice reviewed",
		"event", "settlement_invoice_reviewed",
		"module", "finance-core/settlement-service",
		"layer", "application",
		"settlement_id", settlement.SettlementID,
		"campaign_id", settlement.CampaignID,
		"approved", cmd.Approved,
	)
	return nil
}
