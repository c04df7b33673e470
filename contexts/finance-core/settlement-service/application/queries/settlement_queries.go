package queries

import (
	"context"
	"log/slog"
	"strings"

	"collabo/contexts/finance-core/settlement-service/domain/entities"
	"collabo/contexts/finance-core/settlement-service/ports"
)

type QueryUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (uc QueryUseCase) GetSettlement(ctx context.Context, settlementID string) (entities.Settlement, error) {
	return uc.Repository.GetSettlement(ctx, strings.TrimSpace(settlementID))
}

func (uc QueryUseCase) GetSettlementByCampaign(ctx context.Context, campaignID string) (entities.Settlement, error) {
	return uc.Repository.GetSettlementByCampaign(ctx, strings.TrimSpace(campaignID))
}

// StatusLabel is the billing-tab wording for a settlement status.
// Consumers display it verbatim.
func StatusLabel(status entities.SettlementStatus) string {
	switch status {
	case entities.SettlementStatusPending:
		return "Awaiting invoice request"
	case entities.SettlementStatusInvoiceRequested:
		return "Invoice under review"
	case entities.SettlementStatusInvoiceApproved:
		return "Invoice approved"
	case entities.SettlementStatusInvoiceIssued:
		return "Invoice issued"
	case entities.SettlementStatusPaymentProcessing:
		return "Payment processing"
	case entities.SettlementStatusCompleted:
		return "Settlement completed"
	default:
		return string(status)
	}
}
