package localstoreadapter

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"collabo/contexts/finance-core/settlement-service/domain/entities"
	domainerrors "collabo/contexts/finance-core/settlement-service/domain/errors"
	"collabo/contexts/finance-core/settlement-service/ports"
	"collabo/internal/platform/localstore"
	"collabo/internal/shared/outbox"
)

// Canonical collection keys for settlement data.
const (
	CollectionSettlements = "settlements"
	CollectionOutbox      = "settlement_outbox"
)

// LegacyAliases lists the historical key names consolidated into the
// canonical collections.
var LegacyAliases = map[string][]string{
	CollectionSettlements: {"payments"},
}

type Repository struct {
	store  *localstore.Store
	logger *slog.Logger
}

func NewRepository(store *localstore.Store, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{store: store, logger: logger}
}

func (r *Repository) readAll() ([]entities.Settlement, error) {
	var items []entities.Settlement
	if err := r.store.ReadInto(CollectionSettlements, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repository) readOutbox() ([]outbox.Message, error) {
	var items []outbox.Message
	if err := r.store.ReadInto(CollectionOutbox, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repository) CreateSettlement(_ context.Context, settlement entities.Settlement) error {
	items, err := r.readAll()
	if err != nil {
		return err
	}
	for _, existing := range items {
		if existing.CampaignID == settlement.CampaignID {
			return domainerrors.ErrSettlementExists
		}
	}
	items = append(items, settlement)
	return r.store.Write(CollectionSettlements, items)
}

func (r *Repository) UpdateSettlement(_ context.Context, settlement entities.Settlement) error {
	items, err := r.readAll()
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].SettlementID == settlement.SettlementID {
			items[i] = settlement
			return r.store.Write(CollectionSettlements, items)
		}
	}
	return domainerrors.ErrSettlementNotFound
}

// CompleteSettlement writes the final settlement state and the outbox
// row in one multi-collection write, so the completed status never
// persists without its event row or vice versa.
func (r *Repository) CompleteSettlement(_ context.Context, settlement entities.Settlement, message outbox.Message) error {
	items, err := r.readAll()
	if err != nil {
		return err
	}
	found := false
	for i := range items {
		if items[i].SettlementID == settlement.SettlementID {
			items[i] = settlement
			found = true
			break
		}
	}
	if !found {
		return domainerrors.ErrSettlementNotFound
	}
	rows, err := r.readOutbox()
	if err != nil {
		return err
	}
	rows = append(rows, message)
	return r.store.WriteMany(map[string]any{
		CollectionSettlements: items,
		CollectionOutbox:      rows,
	})
}

func (r *Repository) GetSettlement(_ context.Context, settlementID string) (entities.Settlement, error) {
	items, err := r.readAll()
	if err != nil {
		return entities.Settlement{}, err
	}
	for _, item := range items {
		if item.SettlementID == strings.TrimSpace(settlementID) {
			return item, nil
		}
	}
	return entities.Settlement{}, domainerrors.ErrSettlementNotFound
}

func (r *Repository) GetSettlementByCampaign(_ context.Context, campaignID string) (entities.Settlement, error) {
	items, err := r.readAll()
	if err != nil {
		return entities.Settlement{}, err
	}
	for _, item := range items {
		if item.CampaignID == strings.TrimSpace(campaignID) {
			return item, nil
		}
	}
	return entities.Settlement{}, domainerrors.ErrSettlementNotFound
}

func (r *Repository) ListSettlements(_ context.Context, filter ports.SettlementFilter) ([]entities.Settlement, error) {
	items, err := r.readAll()
	if err != nil {
		return nil, err
	}
	filtered := make([]entities.Settlement, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(filter.CampaignID) != "" && item.CampaignID != strings.TrimSpace(filter.CampaignID) {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		filtered = append(filtered, item)
	}
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})
	return filtered, nil
}

func (r *Repository) ListPendingOutbox(_ context.Context, limit int) ([]outbox.Message, error) {
	rows, err := r.readOutbox()
	if err != nil {
		return nil, err
	}
	pending := make([]outbox.Message, 0, len(rows))
	for _, row := range rows {
		if row.Status == outbox.StatusPending {
			pending = append(pending, row)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

func (r *Repository) MarkOutboxPublished(_ context.Context, outboxID string, publishedAt time.Time) error {
	rows, err := r.readOutbox()
	if err != nil {
		return err
	}
	for i := range rows {
		if rows[i].OutboxID == outboxID {
			at := publishedAt.UTC()
			rows[i].Status = outbox.StatusPublished
			rows[i].PublishedAt = &at
			return r.store.Write(CollectionOutbox, rows)
		}
	}
	return nil
}
