package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "collabo/contexts/finance-core/settlement-service/application"
	"collabo/contexts/finance-core/settlement-service/domain/entities"
	domainerrors "collabo/contexts/finance-core/settlement-service/domain/errors"
	"collabo/contexts/finance-core/settlement-service/ports"
)

type OpenSettlementCommand struct {
	CampaignID string
	ActorID    string
	Amount     int64
}

type OpenSettlementUseCase struct {
	Repository ports.Repository
	StageGate  ports.StageGate
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

// Execute opens the single settlement of a campaign. Legal only once the
// settlement stage is unlocked, which the campaign context grants when
// every confirmed subject's content is approved.
func (uc OpenSettlementUseCase) Execute(ctx context.Context, cmd OpenSettlementCommand) (entities.Settlement, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.ActorID) == "" {
		return entities.Settlement{}, domainerrors.ErrUnauthorizedActor
	}
	if strings.TrimSpace(cmd.CampaignID) == "" || cmd.Amount <= 0 {
		return entities.Settlement{}, domainerrors.ErrInvalidSettlementInput
	}

	unlocked, err := uc.StageGate.StageUnlocked(ctx, strings.TrimSpace(cmd.CampaignID), 4)
	if err != nil {
		return entities.Settlement{}, err
	}
	if !unlocked {
		return entities.Settlement{}, domainerrors.ErrStageLocked
	}

	if _, err := uc.Repository.GetSettlementByCampaign(ctx, strings.TrimSpace(cmd.CampaignID)); err == nil {
		return entities.Settlement{}, domainerrors.ErrSettlementExists
	} else if !errors.Is(err, domainerrors.ErrSettlementNotFound) {
		return entities.Settlement{}, err
	}

	settlementID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Settlement{}, err
	}

	now := uc.Clock.Now().UTC()
	settlement := entities.Settlement{
		SettlementID: settlementID,
		CampaignID:   strings.TrimSpace(cmd.CampaignID),
		Amount:       cmd.Amount,
		Status:       entities.SettlementStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.Repository.CreateSettlement(ctx, settlement); err != nil {
		return entities.Settlement{}, err
	}

	logger.Info("settlement opened",
		"event", "settlement_opened",
		"module", "finance-core/settlement-service",
		"layer", "application",
		"settlement_id", settlement.SettlementID,
		"campaign_id", settlement.CampaignID,
		"amount", settlement.Amount,
	)
	return settlement, nil
}
