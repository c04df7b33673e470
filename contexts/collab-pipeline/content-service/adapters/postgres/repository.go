package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"collabo/contexts/collab-pipeline/content-service/domain/entities"
	domainerrors "collabo/contexts/collab-pipeline/content-service/domain/errors"
	"collabo/contexts/collab-pipeline/content-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the relational variant of the artifact store, used when
// POSTGRES_DSN is configured. The revision thread is persisted as a JSONB
// document on the artifact row; the thread is append-only and always read
// and written whole, so it never needs row-level addressing.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) CreateArtifact(ctx context.Context, artifact entities.Artifact) error {
	row, err := artifactModelFromEntity(artifact)
	if err != nil {
		return err
	}

	var duplicateCount int64
	if err := r.db.WithContext(ctx).
		Model(&artifactModel{}).
		Where("campaign_id = ?", row.CampaignID).
		Where("subject_id = ?", row.SubjectID).
		Where("kind = ?", row.Kind).
		Count(&duplicateCount).
		Error; err != nil {
		return err
	}
	if duplicateCount > 0 {
		return domainerrors.ErrDuplicateArtifact
	}

	create := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "artifact_id"}},
			DoNothing: true,
		}).
		Create(&row)
	if create.Error != nil {
		if isUniqueViolation(create.Error) {
			return domainerrors.ErrDuplicateArtifact
		}
		return create.Error
	}
	if create.RowsAffected == 0 {
		return domainerrors.ErrDuplicateArtifact
	}
	return nil
}

func (r *Repository) UpdateArtifact(ctx context.Context, artifact entities.Artifact) error {
	row, err := artifactModelFromEntity(artifact)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&artifactModel{}).
		Where("artifact_id = ?", row.ArtifactID).
		Updates(map[string]any{
			"content_type":            row.ContentType,
			"payload":                 row.Payload,
			"status":                  row.Status,
			"revisions":               row.Revisions,
			"current_revision_number": row.CurrentRevisionNumber,
			"updated_at":              row.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrArtifactNotFound
	}
	return nil
}

func (r *Repository) GetArtifact(ctx context.Context, artifactID string) (entities.Artifact, error) {
	var row artifactModel
	err := r.db.WithContext(ctx).
		Where("artifact_id = ?", strings.TrimSpace(artifactID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Artifact{}, domainerrors.ErrArtifactNotFound
		}
		return entities.Artifact{}, err
	}
	return row.toEntity()
}

func (r *Repository) ListArtifacts(ctx context.Context, filter ports.ArtifactFilter) ([]entities.Artifact, error) {
	tx := r.db.WithContext(ctx).Model(&artifactModel{})
	if strings.TrimSpace(filter.CampaignID) != "" {
		tx = tx.Where("campaign_id = ?", strings.TrimSpace(filter.CampaignID))
	}
	if strings.TrimSpace(filter.SubjectID) != "" {
		tx = tx.Where("subject_id = ?", strings.TrimSpace(filter.SubjectID))
	}
	if filter.Kind != "" {
		tx = tx.Where("kind = ?", string(filter.Kind))
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}

	var rows []artifactModel
	if err := tx.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]entities.Artifact, 0, len(rows))
	for _, row := range rows {
		item, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

type artifactModel struct {
	ArtifactID            string    `gorm:"column:artifact_id;primaryKey"`
	CampaignID            string    `gorm:"column:campaign_id"`
	SubjectID             string    `gorm:"column:subject_id"`
	Kind                  string    `gorm:"column:kind"`
	ContentType           string    `gorm:"column:content_type"`
	Payload               []byte    `gorm:"column:payload;type:jsonb"`
	Status                string    `gorm:"column:status"`
	Revisions             []byte    `gorm:"column:revisions;type:jsonb"`
	CurrentRevisionNumber int       `gorm:"column:current_revision_number"`
	CreatedAt             time.Time `gorm:"column:created_at"`
	UpdatedAt             time.Time `gorm:"column:updated_at"`
}

func (artifactModel) TableName() string {
	return "content_artifacts"
}

func artifactModelFromEntity(artifact entities.Artifact) (artifactModel, error) {
	payload, err := json.Marshal(artifact.Payload)
	if err != nil {
		return artifactModel{}, err
	}
	revisions, err := json.Marshal(artifact.Revisions)
	if err != nil {
		return artifactModel{}, err
	}
	createdAt := artifact.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return artifactModel{
		ArtifactID:            strings.TrimSpace(artifact.ArtifactID),
		CampaignID:            strings.TrimSpace(artifact.CampaignID),
		SubjectID:             strings.TrimSpace(artifact.SubjectID),
		Kind:                  string(artifact.Kind),
		ContentType:           string(artifact.ContentType),
		Payload:               payload,
		Status:                string(artifact.Status),
		Revisions:             revisions,
		CurrentRevisionNumber: artifact.CurrentRevisionNumber,
		CreatedAt:             createdAt,
		UpdatedAt:             artifact.UpdatedAt.UTC(),
	}, nil
}

func (m artifactModel) toEntity() (entities.Artifact, error) {
	var payload entities.Payload
	if len(m.Payload) > 0 {
		if err := json.Unmarshal(m.Payload, &payload); err != nil {
			return entities.Artifact{}, err
		}
	}
	var revisions []entities.Revision
	if len(m.Revisions) > 0 {
		if err := json.Unmarshal(m.Revisions, &revisions); err != nil {
			return entities.Artifact{}, err
		}
	}
	return entities.Artifact{
		ArtifactID:            m.ArtifactID,
		CampaignID:            m.CampaignID,
		SubjectID:             m.SubjectID,
		Kind:                  entities.ArtifactKind(m.Kind),
		ContentType:           entities.ContentType(m.ContentType),
		Payload:               payload,
		Status:                entities.ArtifactStatus(m.Status),
		Revisions:             revisions,
		CurrentRevisionNumber: m.CurrentRevisionNumber,
		CreatedAt:             m.CreatedAt.UTC(),
		UpdatedAt:             m.UpdatedAt.UTC(),
	}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
