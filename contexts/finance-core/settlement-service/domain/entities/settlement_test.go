package entities

import "testing"

func TestCanTransitionForwardOnly(t *testing.T) {
	ordered := []SettlementStatus{
		SettlementStatusPending,
		SettlementStatusInvoiceRequested,
		SettlementStatusInvoiceApproved,
		SettlementStatusInvoiceIssued,
		SettlementStatusPaymentProcessing,
		SettlementStatusCompleted,
	}
	for i := 0; i < len(ordered)-1; i++ {
		if !CanTransition(ordered[i], ordered[i+1]) {
			t.Fatalf("expected %s -> %s to be legal", ordered[i], ordered[i+1])
		}
	}
	for i := 1; i < len(ordered); i++ {
		from, to := ordered[i], ordered[i-1]
		if from == SettlementStatusInvoiceRequested && to == SettlementStatusPending {
			continue
		}
		if CanTransition(from, to) {
			t.Fatalf("expected %s -> %s to be illegal", from, to)
		}
	}
	if CanTransition(SettlementStatusPending, SettlementStatusInvoiceIssued) {
		t.Fatalf("expected stage skipping to be illegal")
	}
	if CanTransition(SettlementStatusCompleted, SettlementStatusPending) {
		t.Fatalf("completed must be terminal")
	}
}

func TestRejectionIsTheOnlyRegression(t *testing.T) {
	if !CanTransition(SettlementStatusInvoiceRequested, SettlementStatusPending) {
		t.Fatalf("expected invoice rejection regression to be legal")
	}
}
