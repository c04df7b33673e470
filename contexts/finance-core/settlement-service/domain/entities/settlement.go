package entities

import (
	"strings"
	"time"
)

type SettlementStatus string

const (
	SettlementStatusPending           SettlementStatus = "pending"
	SettlementStatusInvoiceRequested  SettlementStatus = "invoice_requested"
	SettlementStatusInvoiceApproved   SettlementStatus = "invoice_approved"
	SettlementStatusInvoiceIssued     SettlementStatus = "invoice_issued"
	SettlementStatusPaymentProcessing SettlementStatus = "payment_processing"
	SettlementStatusCompleted         SettlementStatus = "completed"
)

// TaxInvoice carries the business registration details submitted with an
// invoice request.
type TaxInvoice struct {
	BusinessName       string     `json:"business_name"`
	BusinessNumber     string     `json:"business_number"`
	RepresentativeName string     `json:"representative_name"`
	Email              string     `json:"email"`
	RequestedAt        time.Time  `json:"requested_at"`
	RejectedAt         *time.Time `json:"rejected_at,omitempty"`
	IssuedAt           *time.Time `json:"issued_at,omitempty"`
}

func (t TaxInvoice) Validate() bool {
	return strings.TrimSpace(t.BusinessName) != "" &&
		strings.TrimSpace(t.BusinessNumber) != "" &&
		strings.TrimSpace(t.RepresentativeName) != ""
}

// Payment records the payment leg once the invoice is issued.
// ProcessAfter is when the asynchronous completer may finish it.
type Payment struct {
	Method       string     `json:"method"`
	RequestedAt  time.Time  `json:"requested_at"`
	ProcessAfter time.Time  `json:"process_after"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// Settlement is the billing record of one campaign. Status only moves
// forward through the listed order, with the single sanctioned
// regression invoice_requested -> pending on rejection. Completed is
// terminal and is retained forever for audit.
type Settlement struct {
	SettlementID string
	CampaignID   string
	Amount       int64
	Status       SettlementStatus
	TaxInvoice   *TaxInvoice
	Payment      *Payment
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CompletedAt  *time.Time
}

var statusOrder = map[SettlementStatus]int{
	SettlementStatusPending:           0,
	SettlementStatusInvoiceRequested:  1,
	SettlementStatusInvoiceApproved:   2,
	SettlementStatusInvoiceIssued:     3,
	SettlementStatusPaymentProcessing: 4,
	SettlementStatusCompleted:         5,
}

// CanTransition reports whether from -> to is a sanctioned edge.
func CanTransition(from, to SettlementStatus) bool {
	if from == SettlementStatusInvoiceRequested && to == SettlementStatusPending {
		return true
	}
	fromRank, okFrom := statusOrder[from]
	toRank, okTo := statusOrder[to]
	if !okFrom || !okTo {
		return false
	}
	return toRank == fromRank+1
}
