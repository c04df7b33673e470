package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	campaignservice "collabo/contexts/collab-pipeline/campaign-service"
	campaignlocalstore "collabo/contexts/collab-pipeline/campaign-service/adapters/localstore"
	campaignworkers "collabo/contexts/collab-pipeline/campaign-service/application/workers"
	campaignports "collabo/contexts/collab-pipeline/campaign-service/ports"
	contentservice "collabo/contexts/collab-pipeline/content-service"
	contentlocalstore "collabo/contexts/collab-pipeline/content-service/adapters/localstore"
	contentpostgres "collabo/contexts/collab-pipeline/content-service/adapters/postgres"
	contententities "collabo/contexts/collab-pipeline/content-service/domain/entities"
	contentports "collabo/contexts/collab-pipeline/content-service/ports"
	settlementservice "collabo/contexts/finance-core/settlement-service"
	settlementlocalstore "collabo/contexts/finance-core/settlement-service/adapters/localstore"
	settlementworkers "collabo/contexts/finance-core/settlement-service/application/workers"
	settlemententities "collabo/contexts/finance-core/settlement-service/domain/entities"
	settlementerrors "collabo/contexts/finance-core/settlement-service/domain/errors"
	"collabo/internal/platform/config"
	"collabo/internal/platform/db"
	"collabo/internal/platform/httpserver"
	"collabo/internal/platform/localstore"
	"collabo/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	cfg          config.Config
	postgres     *db.Postgres
	outboxRelay  settlementworkers.OutboxRelay
	completer    settlementworkers.PaymentCompleter
	stageAdvance campaignworkers.SettlementCompletedConsumer
	pollInterval time.Duration
	logger       *slog.Logger
}

// modules wires the three bounded contexts over one localstore. The
// content repository switches to postgres when a DSN is configured; the
// campaign and settlement aggregates always live in the local store.
func buildModules(cfg config.Config, logger *slog.Logger) (
	campaignservice.Module,
	contentservice.Module,
	settlementservice.Module,
	settlementservice.Dependencies,
	*db.Postgres,
	error,
) {
	collections := []string{
		campaignlocalstore.CollectionCampaigns,
		campaignlocalstore.CollectionSubjects,
		contentlocalstore.CollectionArtifacts,
		settlementlocalstore.CollectionSettlements,
		settlementlocalstore.CollectionOutbox,
	}
	aliases := map[string][]string{}
	for canonical, legacy := range campaignlocalstore.LegacyAliases {
		aliases[canonical] = legacy
	}
	for canonical, legacy := range contentlocalstore.LegacyAliases {
		aliases[canonical] = legacy
	}
	for canonical, legacy := range settlementlocalstore.LegacyAliases {
		aliases[canonical] = legacy
	}

	store, err := localstore.Open(cfg.DataDir, collections, aliases, logger)
	if err != nil {
		return campaignservice.Module{}, contentservice.Module{}, settlementservice.Module{}, settlementservice.Dependencies{}, nil, err
	}
	if store.FirstRun() {
		logger.Info("data directory initialized",
			"event", "bootstrap_store_initialized",
			"module", "internal/app/bootstrap",
			"layer", "platform",
			"data_dir", cfg.DataDir,
		)
	}

	var (
		pg          *db.Postgres
		contentRepo contentports.Repository
		clock       contentports.Clock
		idGen       contentports.IDGenerator
	)
	if strings.TrimSpace(cfg.PostgresDSN) != "" {
		pg, err = db.Connect(cfg.PostgresDSN)
		if err != nil {
			return campaignservice.Module{}, contentservice.Module{}, settlementservice.Module{}, settlementservice.Dependencies{}, nil, err
		}
		contentRepo = contentpostgres.NewRepository(pg.DB, logger)
	} else {
		contentRepo = contentlocalstore.NewRepository(store, logger)
	}
	clock = contentpostgres.SystemClock{}
	idGen = contentpostgres.UUIDGenerator{}

	campaignRepo := campaignlocalstore.NewRepository(store, logger)
	settlementRepo := settlementlocalstore.NewRepository(store, logger)

	campaignModule := campaignservice.NewModule(campaignservice.Dependencies{
		Campaigns:   campaignRepo,
		Subjects:    campaignRepo,
		Artifacts:   approvedArtifactReader{repository: contentRepo},
		Settlements: settlementCompletionReader{repository: settlementRepo},
		Clock:       contentpostgres.SystemClock{},
		IDGen:       contentpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	contentModule := contentservice.NewModule(contentservice.Dependencies{
		Repository: contentRepo,
		StageGate:  campaignModule.Gate,
		Clock:      clock,
		IDGen:      idGen,
		Logger:     logger,
	})

	settlementDeps := settlementservice.Dependencies{
		Repository:      settlementRepo,
		Outbox:          settlementRepo,
		StageGate:       campaignModule.Gate,
		Clock:           contentpostgres.SystemClock{},
		IDGen:           contentpostgres.UUIDGenerator{},
		ProcessingDelay: 30 * time.Second,
		Logger:          logger,
	}
	settlementModule := settlementservice.NewModule(settlementDeps)

	return campaignModule, contentModule, settlementModule, settlementDeps, pg, nil
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	campaignModule, contentModule, settlementModule, _, pg, err := buildModules(cfg, logger)
	if err != nil {
		return nil, err
	}

	server := httpserver.New(campaignModule, contentModule, settlementModule, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	campaignModule, _, settlementModule, settlementDeps, pg, err := buildModules(cfg, logger)
	if err != nil {
		return nil, err
	}

	bus := messaging.NewBus(logger)
	return &WorkerApp{
		cfg:         cfg,
		postgres:    pg,
		outboxRelay: settlementservice.NewOutboxRelay(settlementDeps, bus),
		completer:   settlementservice.NewPaymentCompleter(settlementDeps, settlementModule),
		stageAdvance: campaignworkers.SettlementCompletedConsumer{
			Subscriber:    bus,
			Recompute:     campaignModule.Gate,
			ConsumerGroup: "campaign-stage-advance-cg",
			Logger:        logger,
		},
		pollInterval: 2 * time.Second,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if w.cfg.EnableStageAdvanceConsumer {
		if err := w.stageAdvance.Start(ctx); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if w.cfg.EnablePaymentCompletion {
			if err := w.completer.RunOnce(ctx); err != nil {
				return err
			}
		}
		if w.cfg.EnableSettlementOutboxRelay {
			if err := w.outboxRelay.RunOnce(ctx); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

// approvedArtifactReader projects the content context's approved
// artifacts into the shape the stage controller consumes.
type approvedArtifactReader struct {
	repository contentports.Repository
}

func (r approvedArtifactReader) ListApprovedArtifacts(ctx context.Context, campaignID string) ([]campaignports.ApprovedArtifact, error) {
	items, err := r.repository.ListArtifacts(ctx, contentports.ArtifactFilter{
		CampaignID: campaignID,
		Status:     contententities.ArtifactStatusApproved,
	})
	if err != nil {
		return nil, err
	}
	approved := make([]campaignports.ApprovedArtifact, 0, len(items))
	for _, item := range items {
		approved = append(approved, campaignports.ApprovedArtifact{
			SubjectID: item.SubjectID,
			Kind:      string(item.Kind),
		})
	}
	return approved, nil
}

// settlementCompletionReader reports whether a campaign's settlement
// reached terminal status.
type settlementCompletionReader struct {
	repository *settlementlocalstore.Repository
}

func (r settlementCompletionReader) SettlementCompleted(ctx context.Context, campaignID string) (bool, error) {
	settlement, err := r.repository.GetSettlementByCampaign(ctx, campaignID)
	if err != nil {
		if errors.Is(err, settlementerrors.ErrSettlementNotFound) {
			return false, nil
		}
		return false, err
	}
	return settlement.Status == settlemententities.SettlementStatusCompleted, nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
