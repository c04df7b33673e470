package outbox

import "time"

// Message is an outbox row persisted in the same repository write as the
// state change that produced it. The worker relay reads pending rows and
// publishes them to the bus.
type Message struct {
	OutboxID    string     `json:"outbox_id"`
	EventType   string     `json:"event_type"`
	Payload     []byte     `json:"payload"`
	Status      string     `json:"status"` // pending, published
	RetryCount  int        `json:"retry_count"`
	CreatedAt   time.Time  `json:"created_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

const (
	StatusPending   = "pending"
	StatusPublished = "published"
)
