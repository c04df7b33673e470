package entities

import "time"

type RevisionActor string
type RevisionStatus string

const (
	ActorRequester RevisionActor = "requester"
	ActorFulfiller RevisionActor = "fulfiller"

	RevisionStatusPending   RevisionStatus = "pending"
	RevisionStatusCompleted RevisionStatus = "completed"
)

// Revision is one numbered feedback round on an artifact. Entries are
// append-only and immutable once written, except for the single
// pending -> completed transition which stamps the response fields.
// Revision numbers are never reused or reordered.
type Revision struct {
	RevisionID      string         `json:"revision_id"`
	RevisionNumber  int            `json:"revision_number"`
	RequestedBy     RevisionActor  `json:"requested_by"`
	RequestedByName string         `json:"requested_by_name"`
	RequestedAt     time.Time      `json:"requested_at"`
	Feedback        string         `json:"feedback"`
	Status          RevisionStatus `json:"status"`
	Response        string         `json:"response,omitempty"`
	RespondedBy     string         `json:"responded_by,omitempty"`
	RespondedAt     *time.Time     `json:"responded_at,omitempty"`
}

func IsSupportedActor(value RevisionActor) bool {
	switch value {
	case ActorRequester, ActorFulfiller:
		return true
	default:
		return false
	}
}
