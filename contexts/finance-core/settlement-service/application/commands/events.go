package commands

import (
	"time"

	"collabo/contexts/finance-core/settlement-service/domain/entities"
	"collabo/internal/shared/events"
)

// NewSettlementCompletedEnvelope builds the cross-context event fired
// exactly once when a settlement reaches terminal status. EntityID
// carries the owning campaign so the campaign consumer can advance its
// stage without knowing settlement internals.
func NewSettlementCompletedEnvelope(settlement entities.Settlement, eventID string, occurredAt time.Time) events.Envelope {
	return events.Envelope{
		EventID:        eventID,
		EventType:      events.TypeSettlementCompleted,
		SourceService:  "finance-core/settlement-service",
		OccurredAtUTC:  occurredAt.UTC(),
		CorrelationID:  settlement.SettlementID,
		EntityType:     "campaign",
		EntityID:       settlement.CampaignID,
		PayloadVersion: 1,
		Payload: events.SettlementCompletedPayload{
			SettlementID: settlement.SettlementID,
			CampaignID:   settlement.CampaignID,
			Amount:       settlement.Amount,
		},
	}
}
