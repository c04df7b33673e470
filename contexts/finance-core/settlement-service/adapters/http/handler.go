package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"collabo/contexts/finance-core/settlement-service/application/commands"
	"collabo/contexts/finance-core/settlement-service/application/queries"
	"collabo/contexts/finance-core/settlement-service/domain/entities"
	httptransport "collabo/contexts/finance-core/settlement-service/transport/http"
)

type Handler struct {
	OpenSettlement commands.OpenSettlementUseCase
	RequestInvoice commands.RequestInvoiceUseCase
	ReviewInvoice  commands.ReviewInvoiceUseCase
	Pay            commands.PayUseCase
	Queries        queries.QueryUseCase
	Logger         *slog.Logger
}

func (h Handler) OpenSettlementHandler(
	ctx context.Context,
	actorID string,
	req httptransport.OpenSettlementRequest,
) (httptransport.OpenSettlementResponse, error) {
	settlement, err := h.OpenSettlement.Execute(ctx, commands.OpenSettlementCommand{
		CampaignID: req.CampaignID,
		ActorID:    actorID,
		Amount:     req.Amount,
	})
	if err != nil {
		return httptransport.OpenSettlementResponse{}, err
	}
	return httptransport.OpenSettlementResponse{Settlement: mapSettlement(settlement)}, nil
}

func (h Handler) GetSettlementHandler(ctx context.Context, settlementID string) (httptransport.GetSettlementResponse, error) {
	settlement, err := h.Queries.GetSettlement(ctx, settlementID)
	if err != nil {
		return httptransport.GetSettlementResponse{}, err
	}
	return httptransport.GetSettlementResponse{Settlement: mapSettlement(settlement)}, nil
}

func (h Handler) GetCampaignSettlementHandler(ctx context.Context, campaignID string) (httptransport.GetSettlementResponse, error) {
	settlement, err := h.Queries.GetSettlementByCampaign(ctx, campaignID)
	if err != nil {
		return httptransport.GetSettlementResponse{}, err
	}
	return httptransport.GetSettlementResponse{Settlement: mapSettlement(settlement)}, nil
}

func (h Handler) RequestInvoiceHandler(
	ctx context.Context,
	actorID string,
	settlementID string,
	req httptransport.RequestInvoiceRequest,
) error {
	return h.RequestInvoice.Execute(ctx, commands.RequestInvoiceCommand{
		SettlementID:       settlementID,
		ActorID:            actorID,
		BusinessName:       req.BusinessName,
		BusinessNumber:     req.BusinessNumber,
		RepresentativeName: req.RepresentativeName,
		Email:              req.Email,
	})
}

func (h Handler) ReviewInvoiceHandler(
	ctx context.Context,
	actorID string,
	settlementID string,
	req httptransport.ReviewInvoiceRequest,
) error {
	return h.ReviewInvoice.Execute(ctx, commands.ReviewInvoiceCommand{
		SettlementID: settlementID,
		ActorID:      actorID,
		Approved:     req.Approved,
	})
}

func (h Handler) PayHandler(
	ctx context.Context,
	actorID string,
	settlementID string,
	req httptransport.PayRequest,
) error {
	return h.Pay.Execute(ctx, commands.PayCommand{
		SettlementID:  settlementID,
		ActorID:       actorID,
		PaymentMethod: req.PaymentMethod,
	})
}

func mapSettlement(settlement entities.Settlement) httptransport.SettlementDTO {
	dto := httptransport.SettlementDTO{
		SettlementID: settlement.SettlementID,
		CampaignID:   settlement.CampaignID,
		Amount:       settlement.Amount,
		Status:       string(settlement.Status),
		StatusLabel:  queries.StatusLabel(settlement.Status),
		CreatedAt:    settlement.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    settlement.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if settlement.TaxInvoice != nil {
		invoice := httptransport.TaxInvoiceDTO{
			BusinessName:       settlement.TaxInvoice.BusinessName,
			BusinessNumber:     settlement.TaxInvoice.BusinessNumber,
			RepresentativeName: settlement.TaxInvoice.RepresentativeName,
			Email:              settlement.TaxInvoice.Email,
			RequestedAt:        settlement.TaxInvoice.RequestedAt.UTC().Format(time.RFC3339),
		}
		if settlement.TaxInvoice.RejectedAt != nil {
			invoice.RejectedAt = settlement.TaxInvoice.RejectedAt.UTC().Format(time.RFC3339)
		}
		if settlement.TaxInvoice.IssuedAt != nil {
			invoice.IssuedAt = settlement.TaxInvoice.IssuedAt.UTC().Format(time.RFC3339)
		}
		dto.TaxInvoice = &invoice
	}
	if settlement.Payment != nil {
		payment := httptransport.PaymentDTO{
			Method:       settlement.Payment.Method,
			RequestedAt:  settlement.Payment.RequestedAt.UTC().Format(time.RFC3339),
			ProcessAfter: settlement.Payment.ProcessAfter.UTC().Format(time.RFC3339),
		}
		if settlement.Payment.CompletedAt != nil {
			payment.CompletedAt = settlement.Payment.CompletedAt.UTC().Format(time.RFC3339)
		}
		dto.Payment = &payment
	}
	if settlement.CompletedAt != nil {
		dto.CompletedAt = settlement.CompletedAt.UTC().Format(time.RFC3339)
	}
	return dto
}
