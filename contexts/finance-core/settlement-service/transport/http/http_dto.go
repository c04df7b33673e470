package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type OpenSettlementRequest struct {
	CampaignID string `json:"campaign_id"`
	Amount     int64  `json:"amount"`
}

type RequestInvoiceRequest struct {
	BusinessName       string `json:"business_name"`
	BusinessNumber     string `json:"business_number"`
	RepresentativeName string `json:"representative_name"`
	Email              string `json:"email"`
}

type ReviewInvoiceRequest struct {
	Approved bool `json:"approved"`
}

type PayRequest struct {
	PaymentMethod string `json:"payment_method"`
}

type TaxInvoiceDTO struct {
	BusinessName       string `json:"business_name"`
	BusinessNumber     string `json:"business_number"`
	RepresentativeName string `json:"representative_name"`
	Email              string `json:"email"`
	RequestedAt        string `json:"requested_at"`
	RejectedAt         string `json:"rejected_at,omitempty"`
	IssuedAt           string `json:"issued_at,omitempty"`
}

type PaymentDTO struct {
	Method       string `json:"method"`
	RequestedAt  string `json:"requested_at"`
	ProcessAfter string `json:"process_after"`
	CompletedAt  string `json:"completed_at,omitempty"`
}

type SettlementDTO struct {
	SettlementID string         `json:"settlement_id"`
	CampaignID   string         `json:"campaign_id"`
	Amount       int64          `json:"amount"`
	Status       string         `json:"status"`
	StatusLabel  string         `json:"status_label"`
	TaxInvoice   *TaxInvoiceDTO `json:"tax_invoice,omitempty"`
	Payment      *PaymentDTO    `json:"payment,omitempty"`
	CreatedAt    string         `json:"created_at"`
	UpdatedAt    string         `json:"updated_at"`
	CompletedAt  string         `json:"completed_at,omitempty"`
}

type OpenSettlementResponse struct {
	Settlement SettlementDTO `json:"settlement"`
}

type GetSettlementResponse struct {
	Settlement SettlementDTO `json:"settlement"`
}
