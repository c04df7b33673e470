package events

import "time"

// Envelope is the shared event shape used across Collabo contexts.
// Cross-aggregate side effects (settlement completion advancing the
// owning campaign's stage) travel exclusively as envelopes on the bus.
type Envelope struct {
	EventID        string    `json:"event_id"`
	EventType      string    `json:"event_type"`
	SourceService  string    `json:"source_service"`
	OccurredAtUTC  time.Time `json:"occurred_at_utc"`
	CorrelationID  string    `json:"correlation_id"`
	EntityType     string    `json:"entity_type"`
	EntityID       string    `json:"entity_id"`
	PayloadVersion int       `json:"payload_version"`
	Payload        any       `json:"payload"`
}

const (
	TypeSettlementCompleted = "settlement.completed"
)

// SettlementCompletedPayload is the payload carried by
// settlement.completed envelopes.
type SettlementCompletedPayload struct {
	SettlementID string `json:"settlement_id"`
	CampaignID   string `json:"campaign_id"`
	Amount       int64  `json:"amount"`
}
