package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ContentFileDTO struct {
	FileID string `json:"file_id"`
	Name   string `json:"name"`
	URL    string `json:"url"`
	Type   string `json:"type"`
	Size   int64  `json:"size"`
}

type PlanDetailsDTO struct {
	Concept     string   `json:"concept"`
	Caption     string   `json:"caption"`
	Hashtags    []string `json:"hashtags"`
	PostingDate string   `json:"posting_date,omitempty"`
}

type PayloadDTO struct {
	Plan  *PlanDetailsDTO  `json:"plan,omitempty"`
	Files []ContentFileDTO `json:"files,omitempty"`
}

type CreateArtifactRequest struct {
	CampaignID  string     `json:"campaign_id"`
	SubjectID   string     `json:"subject_id"`
	Kind        string     `json:"kind"`
	ContentType string     `json:"content_type"`
	Payload     PayloadDTO `json:"payload"`
}

type RequestRevisionRequest struct {
	ActorName string `json:"actor_name"`
	Feedback  string `json:"feedback"`
}

type GiveFeedbackRequest struct {
	ActorName      string      `json:"actor_name"`
	Response       string      `json:"response"`
	UpdatedPayload *PayloadDTO `json:"updated_payload,omitempty"`
}

type RevisionDTO struct {
	RevisionID      string `json:"revision_id"`
	RevisionNumber  int    `json:"revision_number"`
	RequestedBy     string `json:"requested_by"`
	RequestedByName string `json:"requested_by_name"`
	RequestedAt     string `json:"requested_at"`
	Feedback        string `json:"feedback"`
	Status          string `json:"status"`
	Response        string `json:"response,omitempty"`
	RespondedBy     string `json:"responded_by,omitempty"`
	RespondedAt     string `json:"responded_at,omitempty"`
}

type ArtifactDTO struct {
	ArtifactID            string        `json:"artifact_id"`
	CampaignID            string        `json:"campaign_id"`
	SubjectID             string        `json:"subject_id"`
	Kind                  string        `json:"kind"`
	ContentType           string        `json:"content_type"`
	Payload               PayloadDTO    `json:"payload"`
	Status                string        `json:"status"`
	StatusLabel           string        `json:"status_label"`
	RequestLabel          string        `json:"request_label"`
	FeedbackLabel         string        `json:"feedback_label"`
	Revisions             []RevisionDTO `json:"revisions"`
	CurrentRevisionNumber int           `json:"current_revision_number"`
	CreatedAt             string        `json:"created_at"`
	UpdatedAt             string        `json:"updated_at"`
}

type CreateArtifactResponse struct {
	Artifact ArtifactDTO `json:"artifact"`
}

type GetArtifactResponse struct {
	Artifact ArtifactDTO `json:"artifact"`
}

type ListArtifactsResponse struct {
	Items []ArtifactDTO `json:"items"`
}

type RevisionResponse struct {
	Revision RevisionDTO `json:"revision"`
}
