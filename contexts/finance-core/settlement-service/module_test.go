package settlementservice_test

import (
	"context"
	"errors"
	"testing"

	settlementservice "collabo/contexts/finance-core/settlement-service"
	"collabo/contexts/finance-core/settlement-service/adapters/memory"
	"collabo/contexts/finance-core/settlement-service/application/commands"
	"collabo/contexts/finance-core/settlement-service/application/workers"
	"collabo/contexts/finance-core/settlement-service/domain/entities"
	domainerrors "collabo/contexts/finance-core/settlement-service/domain/errors"
	httptransport "collabo/contexts/finance-core/settlement-service/transport/http"
	"collabo/internal/shared/events"
)

type capturingPublisher struct {
	published []events.Envelope
}

func (p *capturingPublisher) Publish(_ context.Context, _ string, event events.Envelope) error {
	p.published = append(p.published, event)
	return nil
}

func openSettlement(t *testing.T, module settlementservice.Module) httptransport.SettlementDTO {
	t.Helper()
	resp, err := module.Handler.OpenSettlementHandler(context.Background(), "operator-1", httptransport.OpenSettlementRequest{
		CampaignID: "camp-1",
		Amount:     1_500_000,
	})
	if err != nil {
		t.Fatalf("open settlement failed: %v", err)
	}
	return resp.Settlement
}

func TestSettlementLifecycle(t *testing.T) {
	module := settlementservice.NewInMemoryModule(nil, nil, nil)
	ctx := context.Background()
	settlement := openSettlement(t, module)
	if settlement.Status != "pending" {
		t.Fatalf("expected pending, got %s", settlement.Status)
	}

	invoice := httptransport.RequestInvoiceRequest{
		BusinessName:       "Creator Media Ltd",
		BusinessNumber:     "123-45-67890",
		RepresentativeName: "Kim",
		Email:              "billing@example.com",
	}
	if err := module.Handler.RequestInvoiceHandler(ctx, "influencer-1", settlement.SettlementID, invoice); err != nil {
		t.Fatalf("request invoice failed: %v", err)
	}

	// Rejection is the one sanctioned regression.
	if err := module.Handler.ReviewInvoiceHandler(ctx, "operator-1", settlement.SettlementID, httptransport.ReviewInvoiceRequest{
		Approved: false,
	}); err != nil {
		t.Fatalf("reject invoice failed: %v", err)
	}
	got, err := module.Handler.GetSettlementHandler(ctx, settlement.SettlementID)
	if err != nil {
		t.Fatalf("get settlement failed: %v", err)
	}
	if got.Settlement.Status != "pending" {
		t.Fatalf("expected pending after rejection, got %s", got.Settlement.Status)
	}
	if got.Settlement.TaxInvoice == nil || got.Settlement.TaxInvoice.RejectedAt == "" {
		t.Fatalf("expected rejection timestamp on invoice")
	}

	if err := module.Handler.RequestInvoiceHandler(ctx, "influencer-1", settlement.SettlementID, invoice); err != nil {
		t.Fatalf("second invoice request failed: %v", err)
	}
	if err := module.Handler.ReviewInvoiceHandler(ctx, "operator-1", settlement.SettlementID, httptransport.ReviewInvoiceRequest{
		Approved: true,
	}); err != nil {
		t.Fatalf("approve invoice failed: %v", err)
	}
	got, err = module.Handler.GetSettlementHandler(ctx, settlement.SettlementID)
	if err != nil {
		t.Fatalf("get settlement failed: %v", err)
	}
	if got.Settlement.Status != "invoice_issued" {
		t.Fatalf("expected invoice_issued after approval, got %s", got.Settlement.Status)
	}
	if got.Settlement.TaxInvoice.IssuedAt == "" {
		t.Fatalf("expected issuance timestamp on invoice")
	}

	if err := module.Handler.PayHandler(ctx, "operator-1", settlement.SettlementID, httptransport.PayRequest{
		PaymentMethod: "bank_transfer",
	}); err != nil {
		t.Fatalf("pay failed: %v", err)
	}
	got, err = module.Handler.GetSettlementHandler(ctx, settlement.SettlementID)
	if err != nil {
		t.Fatalf("get settlement failed: %v", err)
	}
	if got.Settlement.Status != "payment_processing" {
		t.Fatalf("expected payment_processing, got %s", got.Settlement.Status)
	}

	if err := module.Complete.Execute(ctx, commands.CompleteSettlementCommand{
		SettlementID: settlement.SettlementID,
	}); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	got, err = module.Handler.GetSettlementHandler(ctx, settlement.SettlementID)
	if err != nil {
		t.Fatalf("get settlement failed: %v", err)
	}
	if got.Settlement.Status != "completed" {
		t.Fatalf("expected completed, got %s", got.Settlement.Status)
	}
	if got.Settlement.CompletedAt == "" {
		t.Fatalf("expected completion timestamp")
	}
	if got.Settlement.StatusLabel != "Settlement completed" {
		t.Fatalf("unexpected status label: %s", got.Settlement.StatusLabel)
	}
}

func TestSettlementIsOnePerCampaign(t *testing.T) {
	module := settlementservice.NewInMemoryModule(nil, nil, nil)
	openSettlement(t, module)

	_, err := module.Handler.OpenSettlementHandler(context.Background(), "operator-1", httptransport.OpenSettlementRequest{
		CampaignID: "camp-1",
		Amount:     2_000_000,
	})
	if !errors.Is(err, domainerrors.ErrSettlementExists) {
		t.Fatalf("expected settlement exists, got %v", err)
	}
}

func TestInvoiceRequiresBusinessDetails(t *testing.T) {
	module := settlementservice.NewInMemoryModule(nil, nil, nil)
	settlement := openSettlement(t, module)

	err := module.Handler.RequestInvoiceHandler(context.Background(), "influencer-1", settlement.SettlementID, httptransport.RequestInvoiceRequest{
		BusinessName: "Creator Media Ltd",
	})
	if !errors.Is(err, domainerrors.ErrInvalidSettlementInput) {
		t.Fatalf("expected invalid input for partial invoice details, got %v", err)
	}
}

func TestPayRequiresIssuedInvoice(t *testing.T) {
	module := settlementservice.NewInMemoryModule(nil, nil, nil)
	settlement := openSettlement(t, module)

	err := module.Handler.PayHandler(context.Background(), "operator-1", settlement.SettlementID, httptransport.PayRequest{
		PaymentMethod: "bank_transfer",
	})
	if !errors.Is(err, domainerrors.ErrInvalidStatusTransition) {
		t.Fatalf("expected invalid transition from pending, got %v", err)
	}
}

func completeSettlement(t *testing.T, module settlementservice.Module, settlementID string) {
	t.Helper()
	ctx := context.Background()
	if err := module.Handler.RequestInvoiceHandler(ctx, "influencer-1", settlementID, httptransport.RequestInvoiceRequest{
		BusinessName:       "Creator Media Ltd",
		BusinessNumber:     "123-45-67890",
		RepresentativeName: "Kim",
		Email:              "billing@example.com",
	}); err != nil {
		t.Fatalf("request invoice failed: %v", err)
	}
	if err := module.Handler.ReviewInvoiceHandler(ctx, "operator-1", settlementID, httptransport.ReviewInvoiceRequest{
		Approved: true,
	}); err != nil {
		t.Fatalf("approve invoice failed: %v", err)
	}
	if err := module.Handler.PayHandler(ctx, "operator-1", settlementID, httptransport.PayRequest{
		PaymentMethod: "bank_transfer",
	}); err != nil {
		t.Fatalf("pay failed: %v", err)
	}
	if err := module.Complete.Execute(ctx, commands.CompleteSettlementCommand{
		SettlementID: settlementID,
	}); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
}

func TestCompletionIsTerminalAndEmitsEventOnce(t *testing.T) {
	module := settlementservice.NewInMemoryModule(nil, nil, nil)
	ctx := context.Background()
	settlement := openSettlement(t, module)
	completeSettlement(t, module, settlement.SettlementID)

	err := module.Complete.Execute(ctx, commands.CompleteSettlementCommand{
		SettlementID: settlement.SettlementID,
	})
	if !errors.Is(err, domainerrors.ErrInvalidStatusTransition) {
		t.Fatalf("expected invalid transition on second completion, got %v", err)
	}

	publisher := &capturingPublisher{}
	relay := workers.OutboxRelay{
		Outbox:    module.Store,
		Publisher: publisher,
		Clock:     module.Store,
	}
	if err := relay.RunOnce(ctx); err != nil {
		t.Fatalf("relay run failed: %v", err)
	}
	if len(publisher.published) != 1 {
		t.Fatalf("expected exactly one published event, got %d", len(publisher.published))
	}
	event := publisher.published[0]
	if event.EventType != events.TypeSettlementCompleted {
		t.Fatalf("unexpected event type %s", event.EventType)
	}
	if event.EntityID != "camp-1" {
		t.Fatalf("expected event to carry the campaign id, got %s", event.EntityID)
	}

	// A second relay cycle finds nothing pending.
	if err := relay.RunOnce(ctx); err != nil {
		t.Fatalf("second relay run failed: %v", err)
	}
	if len(publisher.published) != 1 {
		t.Fatalf("expected no republication, got %d events", len(publisher.published))
	}
}

func TestPaymentCompleterFinishesDueSettlements(t *testing.T) {
	module := settlementservice.NewInMemoryModule(nil, nil, nil)
	ctx := context.Background()
	settlement := openSettlement(t, module)

	if err := module.Handler.RequestInvoiceHandler(ctx, "influencer-1", settlement.SettlementID, httptransport.RequestInvoiceRequest{
		BusinessName:       "Creator Media Ltd",
		BusinessNumber:     "123-45-67890",
		RepresentativeName: "Kim",
		Email:              "billing@example.com",
	}); err != nil {
		t.Fatalf("request invoice failed: %v", err)
	}
	if err := module.Handler.ReviewInvoiceHandler(ctx, "operator-1", settlement.SettlementID, httptransport.ReviewInvoiceRequest{
		Approved: true,
	}); err != nil {
		t.Fatalf("approve invoice failed: %v", err)
	}
	if err := module.Handler.PayHandler(ctx, "operator-1", settlement.SettlementID, httptransport.PayRequest{
		PaymentMethod: "bank_transfer",
	}); err != nil {
		t.Fatalf("pay failed: %v", err)
	}

	completer := workers.PaymentCompleter{
		Repository: module.Store,
		Complete:   module.Complete,
		Clock:      module.Store,
	}
	if err := completer.RunOnce(ctx); err != nil {
		t.Fatalf("completer run failed: %v", err)
	}

	got, err := module.Handler.GetSettlementHandler(ctx, settlement.SettlementID)
	if err != nil {
		t.Fatalf("get settlement failed: %v", err)
	}
	if got.Settlement.Status != "completed" {
		t.Fatalf("expected completed after worker run, got %s", got.Settlement.Status)
	}
	if got.Settlement.Payment == nil || got.Settlement.Payment.CompletedAt == "" {
		t.Fatalf("expected payment completion timestamp")
	}

	// A second worker cycle finds nothing in processing.
	if err := completer.RunOnce(ctx); err != nil {
		t.Fatalf("second completer run failed: %v", err)
	}
}

type flakySettlementRepository struct {
	*memory.Store
	failUpdates bool
}

var errRepoDown = errors.New("repository unavailable")

func (r *flakySettlementRepository) UpdateSettlement(ctx context.Context, settlement entities.Settlement) error {
	if r.failUpdates {
		return errRepoDown
	}
	return r.Store.UpdateSettlement(ctx, settlement)
}

func TestInvoiceReviewLeavesStoreUntouchedWhenUpdateFails(t *testing.T) {
	store := memory.NewStore(nil)
	repo := &flakySettlementRepository{Store: store}
	module := settlementservice.NewModule(settlementservice.Dependencies{
		Repository: repo,
		Outbox:     store,
		StageGate:  settlementservice.OpenStageGate{},
		Clock:      store,
		IDGen:      store,
	})
	ctx := context.Background()

	opened, err := module.Handler.OpenSettlementHandler(ctx, "operator-1", httptransport.OpenSettlementRequest{
		CampaignID: "camp-1",
		Amount:     1_000_000,
	})
	if err != nil {
		t.Fatalf("open settlement failed: %v", err)
	}
	settlementID := opened.Settlement.SettlementID
	if err := module.Handler.RequestInvoiceHandler(ctx, "influencer-1", settlementID, httptransport.RequestInvoiceRequest{
		BusinessName:       "Creator Media Ltd",
		BusinessNumber:     "123-45-67890",
		RepresentativeName: "Kim",
		Email:              "billing@example.com",
	}); err != nil {
		t.Fatalf("request invoice failed: %v", err)
	}

	repo.failUpdates = true
	err = module.Handler.ReviewInvoiceHandler(ctx, "operator-1", settlementID, httptransport.ReviewInvoiceRequest{
		Approved: true,
	})
	if !errors.Is(err, errRepoDown) {
		t.Fatalf("expected repository failure, got %v", err)
	}

	stored, err := store.GetSettlement(ctx, settlementID)
	if err != nil {
		t.Fatalf("get settlement failed: %v", err)
	}
	if stored.Status != entities.SettlementStatusInvoiceRequested {
		t.Fatalf("expected settlement still invoice_requested, got %s", stored.Status)
	}
	if stored.TaxInvoice == nil {
		t.Fatal("expected invoice details to survive")
	}
	if stored.TaxInvoice.IssuedAt != nil {
		t.Fatal("expected no issuance stamped on the stored invoice")
	}
}
