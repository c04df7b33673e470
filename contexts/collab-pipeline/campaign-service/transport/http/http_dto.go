package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateCampaignRequest struct {
	BrandID     string `json:"brand_id"`
	OperatorID  string `json:"operator_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type AddSubjectRequest struct {
	Name     string `json:"name"`
	Platform string `json:"platform"`
}

type DecideSubjectRequest struct {
	Confirmed bool `json:"confirmed"`
}

type CampaignDTO struct {
	CampaignID   string `json:"campaign_id"`
	BrandID      string `json:"brand_id"`
	OperatorID   string `json:"operator_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	CurrentStage int    `json:"current_stage"`
	StageLabel   string `json:"stage_label"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

type SubjectDTO struct {
	SubjectID  string `json:"subject_id"`
	CampaignID string `json:"campaign_id"`
	Name       string `json:"name"`
	Platform   string `json:"platform"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

type CreateCampaignResponse struct {
	Campaign CampaignDTO `json:"campaign"`
}

type GetCampaignResponse struct {
	Campaign CampaignDTO `json:"campaign"`
}

type ListCampaignsResponse struct {
	Items []CampaignDTO `json:"items"`
}

type SubjectResponse struct {
	Subject SubjectDTO `json:"subject"`
}

type ListSubjectsResponse struct {
	Items []SubjectDTO `json:"items"`
}

type RecomputeStageResponse struct {
	CampaignID   string `json:"campaign_id"`
	CurrentStage int    `json:"current_stage"`
	StageLabel   string `json:"stage_label"`
}
