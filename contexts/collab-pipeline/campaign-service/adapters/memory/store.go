package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"collabo/contexts/collab-pipeline/campaign-service/domain/entities"
	domainerrors "collabo/contexts/collab-pipeline/campaign-service/domain/errors"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	campaigns map[string]entities.Campaign
	subjects  map[string]entities.Subject
}

func NewStore(seed []entities.Campaign) *Store {
	campaigns := make(map[string]entities.Campaign, len(seed))
	for _, item := range seed {
		campaigns[item.CampaignID] = item
	}
	return &Store{
		campaigns: campaigns,
		subjects:  make(map[string]entities.Subject),
	}
}

func (s *Store) CreateCampaign(_ context.Context, campaign entities.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.campaigns[campaign.CampaignID] = campaign
	return nil
}

func (s *Store) UpdateCampaign(_ context.Context, campaign entities.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.campaigns[campaign.CampaignID]; !exists {
		return domainerrors.ErrCampaignNotFound
	}
	s.campaigns[campaign.CampaignID] = campaign
	return nil
}

func (s *Store) GetCampaign(_ context.Context, campaignID string) (entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.campaigns[strings.TrimSpace(campaignID)]
	if !exists {
		return entities.Campaign{}, domainerrors.ErrCampaignNotFound
	}
	return item, nil
}

func (s *Store) ListCampaigns(_ context.Context) ([]entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Campaign, 0, len(s.campaigns))
	for _, item := range s.campaigns {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) AddSubject(_ context.Context, subject entities.Subject) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subjects[subject.SubjectID] = subject
	return nil
}

func (s *Store) UpdateSubject(_ context.Context, subject entities.Subject) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.subjects[subject.SubjectID]; !exists {
		return domainerrors.ErrSubjectNotFound
	}
	s.subjects[subject.SubjectID] = subject
	return nil
}

func (s *Store) GetSubject(_ context.Context, subjectID string) (entities.Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.subjects[strings.TrimSpace(subjectID)]
	if !exists {
		return entities.Subject{}, domainerrors.ErrSubjectNotFound
	}
	return item, nil
}

func (s *Store) ListSubjects(_ context.Context, campaignID string) ([]entities.Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Subject, 0, len(s.subjects))
	for _, item := range s.subjects {
		if item.CampaignID != strings.TrimSpace(campaignID) {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
