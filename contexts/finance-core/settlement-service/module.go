package settlementservice

import (
	"context"
	"log/slog"
	"time"

	httpadapter "collabo/contexts/finance-core/settlement-service/adapters/http"
	"collabo/contexts/finance-core/settlement-service/adapters/memory"
	"collabo/contexts/finance-core/settlement-service/application/commands"
	"collabo/contexts/finance-core/settlement-service/application/queries"
	"collabo/contexts/finance-core/settlement-service/application/workers"
	"collabo/contexts/finance-core/settlement-service/domain/entities"
	"collabo/contexts/finance-core/settlement-service/ports"
)

type Module struct {
	Handler  httpadapter.Handler
	Complete commands.CompleteSettlementUseCase
	Store    *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Outbox     ports.OutboxRepository
	StageGate  ports.StageGate
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	// ProcessingDelay is how long a payment stays in processing before
	// the completer worker may finish it.
	ProcessingDelay time.Duration
	Logger          *slog.Logger
}

func NewModule(deps Dependencies) Module {
	openSettlement := commands.OpenSettlementUseCase{
		Repository: deps.Repository,
		StageGate:  deps.StageGate,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	requestInvoice := commands.RequestInvoiceUseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	reviewInvoice := commands.ReviewInvoiceUseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	pay := commands.PayUseCase{
		Repository:      deps.Repository,
		Clock:           deps.Clock,
		ProcessingDelay: deps.ProcessingDelay,
		Logger:          deps.Logger,
	}
	complete := commands.CompleteSettlementUseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	queryUseCase := queries.QueryUseCase{
		Repository: deps.Repository,
		Logger:     deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			OpenSettlement: openSettlement,
			RequestInvoice: requestInvoice,
			ReviewInvoice:  reviewInvoice,
			Pay:            pay,
			Queries:        queryUseCase,
			Logger:         deps.Logger,
		},
		Complete: complete,
	}
}

// NewOutboxRelay builds the relay worker over the same dependencies the
// module was wired with.
func NewOutboxRelay(deps Dependencies, publisher ports.EventPublisher) workers.OutboxRelay {
	return workers.OutboxRelay{
		Outbox:    deps.Outbox,
		Publisher: publisher,
		Clock:     deps.Clock,
		Logger:    deps.Logger,
	}
}

// NewPaymentCompleter builds the completion worker over the same
// dependencies the module was wired with.
func NewPaymentCompleter(deps Dependencies, module Module) workers.PaymentCompleter {
	return workers.PaymentCompleter{
		Repository: deps.Repository,
		Complete:   module.Complete,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
}

// OpenStageGate unlocks every stage. Test wiring for suites that
// exercise the settlement workflow without a campaign context.
type OpenStageGate struct{}

func (OpenStageGate) StageUnlocked(_ context.Context, _ string, _ int) (bool, error) {
	return true, nil
}

func NewInMemoryModule(seed []entities.Settlement, gate ports.StageGate, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	if gate == nil {
		gate = OpenStageGate{}
	}
	module := NewModule(Dependencies{
		Repository: store,
		Outbox:     store,
		StageGate:  gate,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
