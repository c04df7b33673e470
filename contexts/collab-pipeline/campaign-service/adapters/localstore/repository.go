package localstoreadapter

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"collabo/contexts/collab-pipeline/campaign-service/domain/entities"
	domainerrors "collabo/contexts/collab-pipeline/campaign-service/domain/errors"
	"collabo/internal/platform/localstore"
)

const (
	CollectionCampaigns = "campaigns"
	CollectionSubjects  = "campaign_subjects"
)

// LegacyAliases lists historical key names consolidated at Open.
var LegacyAliases = map[string][]string{
	CollectionSubjects: {"influencers"},
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

func (r *Repository) CreateCampaign(_ context.Context, campaign entities.Campaign) error {
	var items []entities.Campaign
	if err := r.store.ReadInto(CollectionCampaigns, &items); err != nil {
		return err
	}
	items = append(items, campaign)
	return r.store.Write(CollectionCampaigns, items)
}

func (r *Repository) UpdateCampaign(_ context.Context, campaign entities.Campaign) error {
	var items []entities.Campaign
	if err := r.store.ReadInto(CollectionCampaigns, &items); err != nil {
		return err
	}
	for i := range items {
		if items[i].CampaignID == campaign.CampaignID {
			items[i] = campaign
			return r.store.Write(CollectionCampaigns, items)
		}
	}
	return domainerrors.ErrCampaignNotFound
}

func (r *Repository) GetCampaign(_ context.Context, campaignID string) (entities.Campaign, error) {
	var items []entities.Campaign
	if err := r.store.ReadInto(CollectionCampaigns, &items); err != nil {
		return entities.Campaign{}, err
	}
	for _, item := range items {
		if item.CampaignID == strings.TrimSpace(campaignID) {
			return item, nil
		}
	}
	return entities.Campaign{}, domainerrors.ErrCampaignNotFound
}

func (r *Repository) ListCampaigns(_ context.Context) ([]entities.Campaign, error) {
	var items []entities.Campaign
	if err := r.store.ReadInto(CollectionCampaigns, &items); err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (r *Repository) AddSubject(_ context.Context, subject entities.Subject) error {
	var items []entities.Subject
	if err := r.store.ReadInto(CollectionSubjects, &items); err != nil {
		return err
	}
	items = append(items, subject)
	return r.store.Write(CollectionSubjects, items)
}

func (r *Repository) UpdateSubject(_ context.Context, subject entities.Subject) error {
	var items []entities.Subject
	if err := r.store.ReadInto(CollectionSubjects, &items); err != nil {
		return err
	}
	for i := range items {
		if items[i].SubjectID == subject.SubjectID {
			items[i] = subject
			return r.store.Write(CollectionSubjects, items)
		}
	}
	return domainerrors.ErrSubjectNotFound
}

func (r *Repository) GetSubject(_ context.Context, subjectID string) (entities.Subject, error) {
	var items []entities.Subject
	if err := r.store.ReadInto(CollectionSubjects, &items); err != nil {
		return entities.Subject{}, err
	}
	for _, item := range items {
		if item.SubjectID == strings.TrimSpace(subjectID) {
			return item, nil
		}
	}
	return entities.Subject{}, domainerrors.ErrSubjectNotFound
}

func (r *Repository) ListSubjects(_ context.Context, campaignID string) ([]entities.Subject, error) {
	var items []entities.Subject
	if err := r.store.ReadInto(CollectionSubjects, &items); err != nil {
		return nil, err
	}
	filtered := make([]entities.Subject, 0, len(items))
	for _, item := range items {
		if item.CampaignID == strings.TrimSpace(campaignID) {
			filtered = append(filtered, item)
		}
	}
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.Before(filtered[j].CreatedAt)
	})
	return filtered, nil
}
