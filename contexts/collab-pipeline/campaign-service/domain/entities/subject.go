package entities

import (
	"strings"
	"time"
)

type SubjectStatus string

const (
	SubjectStatusProposed  SubjectStatus = "proposed"
	SubjectStatusConfirmed SubjectStatus = "confirmed"
	SubjectStatusDeclined  SubjectStatus = "declined"
)

// Subject is a sourced influencer attached to a campaign. Confirmed
// subjects are the population the stage predicates quantify over.
type Subject struct {
	SubjectID  string
	CampaignID string
	Name       string
	Platform   string
	Status     SubjectStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (s Subject) ValidateCreate() bool {
	return strings.TrimSpace(s.CampaignID) != "" &&
		strings.TrimSpace(s.Name) != "" &&
		strings.TrimSpace(s.Platform) != ""
}

func IsSupportedSubjectStatus(value SubjectStatus) bool {
	switch value {
	case SubjectStatusProposed, SubjectStatusConfirmed, SubjectStatusDeclined:
		return true
	default:
		return false
	}
}
