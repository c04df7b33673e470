package entities

import (
	"strings"
	"time"
)

type ArtifactKind string
type ContentType string
type ArtifactStatus string

const (
	ArtifactKindContentPlan       ArtifactKind = "content_plan"
	ArtifactKindContentSubmission ArtifactKind = "content_submission"

	ContentTypeImage ContentType = "image"
	ContentTypeVideo ContentType = "video"

	ArtifactStatusDraft             ArtifactStatus = "draft"
	ArtifactStatusRevisionRequested ArtifactStatus = "revision_requested"
	ArtifactStatusFeedbackGiven     ArtifactStatus = "feedback_given"
	ArtifactStatusApproved          ArtifactStatus = "approved"
)

// ContentFile is an already-validated media record supplied by the upload
// collaborator. The engine stores it opaquely and never interprets bytes.
type ContentFile struct {
	FileID string `json:"file_id"`
	Name   string `json:"name"`
	URL    string `json:"url"`
	Type   string `json:"type"`
	Size   int64  `json:"size"`
}

// PlanDetails is the structured document of a content plan artifact.
type PlanDetails struct {
	Concept     string     `json:"concept"`
	Caption     string     `json:"caption"`
	Hashtags    []string   `json:"hashtags"`
	PostingDate *time.Time `json:"posting_date,omitempty"`
}

// Payload holds the kind-specific document: plan fields for content
// plans, media files for content submissions.
type Payload struct {
	Plan  *PlanDetails  `json:"plan,omitempty"`
	Files []ContentFile `json:"files,omitempty"`
}

// Artifact is a content plan or content submission moving through the
// revision workflow between the requester (brand) and fulfiller
// (operator).
type Artifact struct {
	ArtifactID            string
	CampaignID            string
	SubjectID             string
	Kind                  ArtifactKind
	ContentType           ContentType
	Payload               Payload
	Status                ArtifactStatus
	Revisions             []Revision
	CurrentRevisionNumber int
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (a Artifact) ValidateCreate() bool {
	return strings.TrimSpace(a.CampaignID) != "" &&
		strings.TrimSpace(a.SubjectID) != "" &&
		IsSupportedKind(a.Kind) &&
		IsSupportedContentType(a.ContentType)
}

// PendingRevision returns the active revision round, if any. Legacy data
// written before single-pending enforcement can hold several pending
// entries; the most recently requested one is authoritative and the rest
// are stale.
func (a Artifact) PendingRevision() (Revision, bool) {
	var found Revision
	var ok bool
	for _, rev := range a.Revisions {
		if rev.Status != RevisionStatusPending {
			continue
		}
		if !ok || rev.RequestedAt.After(found.RequestedAt) {
			found = rev
			ok = true
		}
	}
	return found, ok
}

func (a Artifact) HasPendingRevision() bool {
	_, ok := a.PendingRevision()
	return ok
}

// CompletedRequesterRounds counts completed revisions requested by the
// requester. CurrentRevisionNumber must always equal this count.
func (a Artifact) CompletedRequesterRounds() int {
	count := 0
	for _, rev := range a.Revisions {
		if rev.RequestedBy == ActorRequester && rev.Status == RevisionStatusCompleted {
			count++
		}
	}
	return count
}

// HasContent is the kind-specific completeness predicate gating approval:
// a plan needs at least one populated field, a submission at least one
// media file.
func (a Artifact) HasContent() bool {
	switch a.Kind {
	case ArtifactKindContentPlan:
		if a.Payload.Plan == nil {
			return false
		}
		return strings.TrimSpace(a.Payload.Plan.Concept) != "" ||
			strings.TrimSpace(a.Payload.Plan.Caption) != "" ||
			len(a.Payload.Plan.Hashtags) > 0 ||
			a.Payload.Plan.PostingDate != nil
	case ArtifactKindContentSubmission:
		return len(a.Payload.Files) > 0
	default:
		return false
	}
}

// DeriveStatus is the single source of truth for an artifact's workflow
// status. Approved is sticky; otherwise status follows the revision
// thread: a pending round means the requester is waiting on the
// fulfiller, a completed latest round means feedback was given, no
// rounds means draft.
func DeriveStatus(a Artifact) ArtifactStatus {
	if a.Status == ArtifactStatusApproved {
		return ArtifactStatusApproved
	}
	if a.HasPendingRevision() {
		return ArtifactStatusRevisionRequested
	}
	if len(a.Revisions) > 0 {
		return ArtifactStatusFeedbackGiven
	}
	return ArtifactStatusDraft
}

func IsSupportedKind(value ArtifactKind) bool {
	switch value {
	case ArtifactKindContentPlan, ArtifactKindContentSubmission:
		return true
	default:
		return false
	}
}

func IsSupportedContentType(value ContentType) bool {
	switch value {
	case ContentTypeImage, ContentTypeVideo:
		return true
	default:
		return false
	}
}
