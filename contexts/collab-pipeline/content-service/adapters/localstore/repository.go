package localstoreadapter

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"collabo/contexts/collab-pipeline/content-service/domain/entities"
	domainerrors "collabo/contexts/collab-pipeline/content-service/domain/errors"
	"collabo/contexts/collab-pipeline/content-service/ports"
	"collabo/internal/platform/localstore"
)

// CollectionArtifacts is the canonical collection key. Earlier layouts
// wrote the same records under per-kind keys; Open migrates them once.
const CollectionArtifacts = "content_artifacts"

// LegacyAliases lists the historical key names consolidated into the
// canonical collection.
var LegacyAliases = map[string][]string{
	CollectionArtifacts: {"content_plans", "content_submissions_v1"},
}

type Repository struct {
	store  *localstore.Store
	logger *slog.Logger
}

func NewRepository(store *localstore.Store, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{store: store, logger: logger}
}

func (r *Repository) readAll() ([]entities.Artifact, error) {
	var items []entities.Artifact
	if err := r.store.ReadInto(CollectionArtifacts, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repository) CreateArtifact(_ context.Context, artifact entities.Artifact) error {
	items, err := r.readAll()
	if err != nil {
		return err
	}
	for _, existing := range items {
		if existing.ArtifactID == artifact.ArtifactID {
			return domainerrors.ErrDuplicateArtifact
		}
		if existing.CampaignID == artifact.CampaignID &&
			existing.SubjectID == artifact.SubjectID &&
			existing.Kind == artifact.Kind {
			return domainerrors.ErrDuplicateArtifact
		}
	}
	items = append(items, artifact)
	return r.store.Write(CollectionArtifacts, items)
}

func (r *Repository) UpdateArtifact(_ context.Context, artifact entities.Artifact) error {
	items, err := r.readAll()
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ArtifactID == artifact.ArtifactID {
			items[i] = artifact
			return r.store.Write(CollectionArtifacts, items)
		}
	}
	return domainerrors.ErrArtifactNotFound
}

func (r *Repository) GetArtifact(_ context.Context, artifactID string) (entities.Artifact, error) {
	items, err := r.readAll()
	if err != nil {
		return entities.Artifact{}, err
	}
	for _, item := range items {
		if item.ArtifactID == strings.TrimSpace(artifactID) {
			return item, nil
		}
	}
	return entities.Artifact{}, domainerrors.ErrArtifactNotFound
}

func (r *Repository) ListArtifacts(_ context.Context, filter ports.ArtifactFilter) ([]entities.Artifact, error) {
	items, err := r.readAll()
	if err != nil {
		return nil, err
	}
	filtered := make([]entities.Artifact, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(filter.CampaignID) != "" && item.CampaignID != strings.TrimSpace(filter.CampaignID) {
			continue
		}
		if strings.TrimSpace(filter.SubjectID) != "" && item.SubjectID != strings.TrimSpace(filter.SubjectID) {
			continue
		}
		if filter.Kind != "" && item.Kind != filter.Kind {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		filtered = append(filtered, item)
	}
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})
	return filtered, nil
}
