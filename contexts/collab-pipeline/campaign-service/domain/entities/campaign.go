package entities

import (
	"strings"
	"time"
)

// Campaign is the top-level aggregate. CurrentStage is derived state: it
// is recomputed from the subject and artifact collections, never set by
// hand.
type Campaign struct {
	CampaignID  string
	BrandID     string
	OperatorID  string
	Title       string
	Description string
	CurrentStage int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (c Campaign) ValidateCreate() bool {
	title := strings.TrimSpace(c.Title)
	return strings.TrimSpace(c.BrandID) != "" &&
		strings.TrimSpace(c.OperatorID) != "" &&
		title != "" &&
		len(title) >= 2 &&
		len(title) <= 100
}
