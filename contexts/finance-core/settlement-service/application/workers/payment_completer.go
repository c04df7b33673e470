package workers

import (
	"context"
	"errors"
	"log/slog"

	application "collabo/contexts/finance-core/settlement-service/application"
	"collabo/contexts/finance-core/settlement-service/application/commands"
	"collabo/contexts/finance-core/settlement-service/domain/entities"
	domainerrors "collabo/contexts/finance-core/settlement-service/domain/errors"
	"collabo/contexts/finance-core/settlement-service/ports"
)

// PaymentCompleter finishes settlements whose payment has been in
// processing past its ProcessAfter time. Payment confirmation is
// asynchronous by design: pay() only schedules completion.
type PaymentCompleter struct {
	Repository ports.Repository
	Complete   commands.CompleteSettlementUseCase
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (w PaymentCompleter) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(w.Logger)
	processing, err := w.Repository.ListSettlements(ctx, ports.SettlementFilter{
		Status: entities.SettlementStatusPaymentProcessing,
	})
	if err != nil {
		return err
	}

	now := w.Clock.Now().UTC()
	for _, settlement := range processing {
		if settlement.Payment == nil || settlement.Payment.ProcessAfter.After(now) {
			continue
		}
		err := w.Complete.Execute(ctx, commands.CompleteSettlementCommand{
			SettlementID: settlement.SettlementID,
		})
		if err != nil {
			// Raced with another completion; the guard already kept the
			// settlement terminal exactly once.
			if errors.Is(err, domainerrors.ErrInvalidStatusTransition) {
				continue
			}
			logger.Error("settlement completion failed",
				"event", "settlement_completion_failed",
				"module", "finance-core/settlement-service",
				"layer", "worker",
				"settlement_id", settlement.SettlementID,
				"error", err.Error(),
			)
			return err
		}
	}
	return nil
}
