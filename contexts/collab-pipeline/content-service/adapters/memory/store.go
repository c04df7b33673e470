package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"collabo/contexts/collab-pipeline/content-service/domain/entities"
	domainerrors "collabo/contexts/collab-pipeline/content-service/domain/errors"
	"collabo/contexts/collab-pipeline/content-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	artifacts map[string]entities.Artifact
}

func NewStore(seed []entities.Artifact) *Store {
	artifacts := make(map[string]entities.Artifact, len(seed))
	for _, item := range seed {
		artifacts[item.ArtifactID] = cloneArtifact(item)
	}
	return &Store{artifacts: artifacts}
}

// cloneArtifact detaches the revision thread from the caller's slice.
// Callers mutate revisions in place before committing through
// UpdateArtifact; a shared backing array would leak those edits into
// the store even when the update is never attempted or fails.
func cloneArtifact(artifact entities.Artifact) entities.Artifact {
	if artifact.Revisions != nil {
		revisions := make([]entities.Revision, len(artifact.Revisions))
		copy(revisions, artifact.Revisions)
		artifact.Revisions = revisions
	}
	return artifact
}

func (s *Store) CreateArtifact(_ context.Context, artifact entities.Artifact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.artifacts {
		if existing.CampaignID == artifact.CampaignID &&
			existing.SubjectID == artifact.SubjectID &&
			existing.Kind == artifact.Kind {
			return domainerrors.ErrDuplicateArtifact
		}
	}
	s.artifacts[artifact.ArtifactID] = cloneArtifact(artifact)
	return nil
}

func (s *Store) UpdateArtifact(_ context.Context, artifact entities.Artifact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.artifacts[artifact.ArtifactID]; !exists {
		return domainerrors.ErrArtifactNotFound
	}
	s.artifacts[artifact.ArtifactID] = cloneArtifact(artifact)
	return nil
}

func (s *Store) GetArtifact(_ context.Context, artifactID string) (entities.Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.artifacts[strings.TrimSpace(artifactID)]
	if !exists {
		return entities.Artifact{}, domainerrors.ErrArtifactNotFound
	}
	return cloneArtifact(item), nil
}

func (s *Store) ListArtifacts(_ context.Context, filter ports.ArtifactFilter) ([]entities.Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Artifact, 0, len(s.artifacts))
	for _, item := range s.artifacts {
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
		items = append(items, cloneArtifact(item))
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
