package campaignservice

import (
	"context"
	"log/slog"

	httpadapter "collabo/contexts/collab-pipeline/campaign-service/adapters/http"
	"collabo/contexts/collab-pipeline/campaign-service/adapters/memory"
	"collabo/contexts/collab-pipeline/campaign-service/application/commands"
	"collabo/contexts/collab-pipeline/campaign-service/application/queries"
	"collabo/contexts/collab-pipeline/campaign-service/domain/entities"
	"collabo/contexts/collab-pipeline/campaign-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	// Gate is the stage gate other contexts consult before stage-bound
	// operations.
	Gate  commands.RecomputeStageUseCase
	Store *memory.Store
}

type Dependencies struct {
	Campaigns   ports.CampaignRepository
	Subjects    ports.SubjectRepository
	Artifacts   ports.ArtifactReader
	Settlements ports.SettlementReader
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	createCampaign := commands.CreateCampaignUseCase{
		Campaigns: deps.Campaigns,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
	}
	manageSubjects := commands.ManageSubjectsUseCase{
		Campaigns: deps.Campaigns,
		Subjects:  deps.Subjects,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
	}
	recomputeStage := commands.RecomputeStageUseCase{
		Campaigns:   deps.Campaigns,
		Subjects:    deps.Subjects,
		Artifacts:   deps.Artifacts,
		Settlements: deps.Settlements,
		Clock:       deps.Clock,
		Logger:      deps.Logger,
	}
	queryUseCase := queries.QueryUseCase{
		Campaigns: deps.Campaigns,
		Subjects:  deps.Subjects,
		Logger:    deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			CreateCampaign: createCampaign,
			ManageSubjects: manageSubjects,
			RecomputeStage: recomputeStage,
			Queries:        queryUseCase,
			Logger:         deps.Logger,
		},
		Gate: recomputeStage,
	}
}

// NoApprovals is an ArtifactReader for wiring the module before the
// content context exists (tests, partial boots).
type NoApprovals struct{}

func (NoApprovals) ListApprovedArtifacts(_ context.Context, _ string) ([]ports.ApprovedArtifact, error) {
	return nil, nil
}

// NoSettlement is a SettlementReader that reports no completed
// settlement.
type NoSettlement struct{}

func (NoSettlement) SettlementCompleted(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func NewInMemoryModule(
	seed []entities.Campaign,
	artifacts ports.ArtifactReader,
	settlements ports.SettlementReader,
	logger *slog.Logger,
) Module {
	store := memory.NewStore(seed)
	if artifacts == nil {
		artifacts = NoApprovals{}
	}
	if settlements == nil {
		settlements = NoSettlement{}
	}
	module := NewModule(Dependencies{
		Campaigns:   store,
		Subjects:    store,
		Artifacts:   artifacts,
		Settlements: settlements,
		Clock:       store,
		IDGen:       store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
