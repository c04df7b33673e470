package commands

import (
	"context"
	"log/slog"
	"strings"

	application "collabo/contexts/collab-pipeline/campaign-service/application"
	"collabo/contexts/collab-pipeline/campaign-service/domain/entities"
	domainerrors "collabo/contexts/collab-pipeline/campaign-service/domain/errors"
	"collabo/contexts/collab-pipeline/campaign-service/ports"
)

type AddSubjectCommand struct {
	CampaignID string
	ActorID    string
	Name       string
	Platform   string
}

type DecideSubjectCommand struct {
	SubjectID string
	ActorID   string
	Confirmed bool
}

type ManageSubjectsUseCase struct {
	Campaigns ports.CampaignRepository
	Subjects  ports.SubjectRepository
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func (uc ManageSubjectsUseCase) Add(ctx context.Context, cmd AddSubjectCommand) (entities.Subject, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.ActorID) == "" {
		return entities.Subject{}, domainerrors.ErrUnauthorizedActor
	}
	campaign, err := uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(cmd.CampaignID))
	if err != nil {
		return entities.Subject{}, err
	}

	subject := entities.Subject{
		CampaignID: campaign.CampaignID,
		Name:       strings.TrimSpace(cmd.Name),
		Platform:   strings.TrimSpace(cmd.Platform),
		Status:     entities.SubjectStatusProposed,
	}
	if !subject.ValidateCreate() {
		return entities.Subject{}, domainerrors.ErrInvalidSubjectInput
	}

	existing, err := uc.Subjects.ListSubjects(ctx, campaign.CampaignID)
	if err != nil {
		return entities.Subject{}, err
	}
	for _, item := range existing {
		if item.Name == subject.Name && item.Platform == subject.Platform {
			return entities.Subject{}, domainerrors.ErrDuplicateSubject
		}
	}

	subjectID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Subject{}, err
	}

	now := uc.Clock.Now().UTC()
	subject.SubjectID = subjectID
	subject.CreatedAt = now
	subject.UpdatedAt = now
	if err := uc.Subjects.AddSubject(ctx, subject); err != nil {
		return entities.Subject{}, err
	}

	logger.Info("subject proposed",
		"event", "subject_proposed",
		"module", "collab-pipeline/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"subject_id", subject.SubjectID,
	)
	return subject, nil
}

// Decide settles a proposed subject as confirmed or declined. Decisions
// are final: a declined influencer is re-proposed as a new subject, not
// flipped back.
func (uc ManageSubjectsUseCase) Decide(ctx context.Context, cmd DecideSubjectCommand) (entities.Subject, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.ActorID) == "" {
		return entities.Subject{}, domainerrors.ErrUnauthorizedActor
	}
	subject, err := uc.Subjects.GetSubject(ctx, strings.TrimSpace(cmd.SubjectID))
	if err != nil {
		return entities.Subject{}, err
	}
	if subject.Status != entities.SubjectStatusProposed {
		return entities.Subject{}, domainerrors.ErrInvalidSubjectStatus
	}

	now := uc.Clock.Now().UTC()
	if cmd.Confirmed {
		subject.Status = entities.SubjectStatusConfirmed
	} else {
		subject.Status = entities.SubjectStatusDeclined
	}
	subject.UpdatedAt = now
	if err := uc.Subjects.UpdateSubject(ctx, subject); err != nil {
		return entities.Subject{}, err
	}

	logger.Info("subject decided",
		"event", "subject_decided",
		"module", "collab-pipeline/campaign-service",
		"layer", "application",
		"campaign_id", subject.CampaignID,
		"subject_id", subject.SubjectID,
		"status", string(subject.Status),
	)
	return subject, nil
}
