package contentservice

import (
	"context"
	"log/slog"

	httpadapter "collabo/contexts/collab-pipeline/content-service/adapters/http"
	"collabo/contexts/collab-pipeline/content-service/adapters/memory"
	"collabo/contexts/collab-pipeline/content-service/application/commands"
	"collabo/contexts/collab-pipeline/content-service/application/queries"
	"collabo/contexts/collab-pipeline/content-service/domain/entities"
	"collabo/contexts/collab-pipeline/content-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	StageGate  ports.StageGate
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	createArtifact := commands.CreateArtifactUseCase{
		Repository: deps.Repository,
		StageGate:  deps.StageGate,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	requestRevision := commands.RequestRevisionUseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	giveFeedback := commands.GiveFeedbackUseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	approveArtifact := commands.ApproveArtifactUseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	queryUseCase := queries.QueryUseCase{
		Repository: deps.Repository,
		Logger:     deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			CreateArtifact:  createArtifact,
			RequestRevision: requestRevision,
			GiveFeedback:    giveFeedback,
			ApproveArtifact: approveArtifact,
			Queries:         queryUseCase,
			Logger:          deps.Logger,
		},
	}
}

// OpenStageGate unlocks every stage. Test wiring for suites that
// exercise the revision workflow without a campaign context.
type OpenStageGate struct{}

func (OpenStageGate) StageUnlocked(_ context.Context, _ string, _ int) (bool, error) {
	return true, nil
}

func NewInMemoryModule(seed []entities.Artifact, gate ports.StageGate, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	if gate == nil {
		gate = OpenStageGate{}
	}
	module := NewModule(Dependencies{
		Repository: store,
		StageGate:  gate,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
