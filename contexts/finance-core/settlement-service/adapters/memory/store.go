package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"collabo/contexts/finance-core/settlement-service/domain/entities"
	domainerrors "collabo/contexts/finance-core/settlement-service/domain/errors"
	"collabo/contexts/finance-core/settlement-service/ports"
	"collabo/internal/shared/outbox"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	settlements map[string]entities.Settlement
	outbox      map[string]outbox.Message
}

func NewStore(seed []entities.Settlement) *Store {
	settlements := make(map[string]entities.Settlement, len(seed))
	for _, item := range seed {
		settlements[item.SettlementID] = cloneSettlement(item)
	}
	return &Store{
		settlements: settlements,
		outbox:      make(map[string]outbox.Message),
	}
}

// cloneSettlement detaches the invoice and payment records from the
// caller's pointers. Use cases stamp IssuedAt/RejectedAt through these
// pointers before committing; sharing them would mutate the store ahead
// of, or despite a failure of, the update call.
func cloneSettlement(item entities.Settlement) entities.Settlement {
	if item.TaxInvoice != nil {
		invoice := *item.TaxInvoice
		item.TaxInvoice = &invoice
	}
	if item.Payment != nil {
		payment := *item.Payment
		item.Payment = &payment
	}
	return item
}

func (s *Store) CreateSettlement(_ context.Context, settlement entities.Settlement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.settlements {
		if existing.CampaignID == settlement.CampaignID {
			return domainerrors.ErrSettlementExists
		}
	}
	s.settlements[settlement.SettlementID] = cloneSettlement(settlement)
	return nil
}

func (s *Store) UpdateSettlement(_ context.Context, settlement entities.Settlement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.settlements[settlement.SettlementID]; !exists {
		return domainerrors.ErrSettlementNotFound
	}
	s.settlements[settlement.SettlementID] = cloneSettlement(settlement)
	return nil
}

func (s *Store) CompleteSettlement(_ context.Context, settlement entities.Settlement, message outbox.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.settlements[settlement.SettlementID]; !exists {
		return domainerrors.ErrSettlementNotFound
	}
	s.settlements[settlement.SettlementID] = cloneSettlement(settlement)
	s.outbox[message.OutboxID] = message
	return nil
}

func (s *Store) GetSettlement(_ context.Context, settlementID string) (entities.Settlement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.settlements[strings.TrimSpace(settlementID)]
	if !exists {
		return entities.Settlement{}, domainerrors.ErrSettlementNotFound
	}
	return cloneSettlement(item), nil
}

func (s *Store) GetSettlementByCampaign(_ context.Context, campaignID string) (entities.Settlement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.settlements {
		if item.CampaignID == strings.TrimSpace(campaignID) {
			return cloneSettlement(item), nil
		}
	}
	return entities.Settlement{}, domainerrors.ErrSettlementNotFound
}

func (s *Store) ListSettlements(_ context.Context, filter ports.SettlementFilter) ([]entities.Settlement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Settlement, 0, len(s.settlements))
	for _, item := range s.settlements {
		if strings.TrimSpace(filter.CampaignID) != "" && item.CampaignID != strings.TrimSpace(filter.CampaignID) {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		items = append(items, cloneSettlement(item))
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]outbox.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]outbox.Message, 0, len(s.outbox))
	for _, item := range s.outbox {
		if item.Status == outbox.StatusPending {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.outbox[outboxID]
	if !exists {
		return nil
	}
	at := publishedAt.UTC()
	item.Status = outbox.StatusPublished
	item.PublishedAt = &at
	s.outbox[outboxID] = item
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
