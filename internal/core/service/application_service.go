package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/openhire/recruitment-api/internal/core/domain"
	"github.com/openhire/recruitment-api/internal/core/ports"
)

const defaultApplicationPageLimit = 10

// ApplicationService implements use-case operations for candidate
// applications: submission with resume upload, pipeline status transitions,
// and recruiter notes.
type ApplicationService struct {
	apps   ports.ApplicationRepository
	jobs   ports.JobRepository
	users  ports.UserRepository
	files  ports.FileStore
	cache  ports.Cache
	bus    ports.EventBus
	logger zerolog.Logger
}

func NewApplicationService(apps ports.ApplicationRepository, jobs ports.JobRepository, users ports.UserRepository, files ports.FileStore, cache ports.Cache, bus ports.EventBus, logger zerolog.Logger) *ApplicationService {
	return &ApplicationService{apps: apps, jobs: jobs, users: users, files: files, cache: cache, bus: bus, logger: logger}
}

func (s *ApplicationService) Apply(ctx context.Context, actor ports.Identity, input ports.ApplyInput) (*domain.Application, error) {
	job, err := s.jobs.FindByID(ctx, input.JobID)
	if err != nil {
		return nil, err
	}

	applicant, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	resumePath, err := s.files.Save(ctx, input.ResumeFilename, input.Resume)
	if err != nil {
		return nil, fmt.Errorf("store resume: %w", err)
	}

	now := time.Now().UTC()
	application, err := s.apps.Create(ctx, &domain.Application{
		ApplicantID: applicant.ID,
		JobID:       job.ID,
		ResumePath:  resumePath,
		CoverLetter: input.CoverLetter,
		CandidateInfo: domain.CandidateInfo{
			Name:  applicant.FullName(),
			Email: applicant.Email,
		},
		Status:    domain.ApplicationPending,
		Notes:     []domain.ApplicationNote{},
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	s.invalidateMetrics(ctx)

	s.logger.Info().Str("application_id", application.ID).Str("job_id", job.ID).Str("applicant_id", applicant.ID).Msg("application submitted")

	emails := []ports.EmailIntent{{
		To:      applicant.Email,
		Subject: "Application received",
		Body:    fmt.Sprintf("Your application for %s has been received.", job.Title),
	}}
	if recruiter, rerr := s.users.FindByID(ctx, job.CreatedBy); rerr == nil {
		emails = append(emails, ports.EmailIntent{
			To:      recruiter.Email,
			Subject: "New application",
			Body:    fmt.Sprintf("%s applied for %s.", applicant.FullName(), job.Title),
		})
	}

	s.bus.Publish(ports.DomainEvent{
		Action:     domain.ActionCreateApp,
		ActorID:    applicant.ID,
		TargetType: "Application",
		TargetID:   application.ID,
		OccurredAt: now,
		Emails:     emails,
		Notices: []ports.NoticeIntent{{
			UserID:  job.CreatedBy,
			Type:    domain.NotifNewApplication,
			Payload: map[string]any{"application_id": application.ID, "job_id": job.ID},
			Persist: true,
			Push:    true,
		}},
	})

	return application, nil
}

func (s *ApplicationService) List(ctx context.Context, filter ports.ListApplicationsFilter) (*ports.ApplicationList, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultApplicationPageLimit
	}

	items, total, err := s.apps.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ApplicationList{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *ApplicationService) UpdateStatus(ctx context.Context, actor ports.Identity, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	application, err := s.apps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !application.Status.CanTransitionTo(status) {
		return nil, domain.ErrInvalidTransition
	}

	updated, err := s.apps.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.invalidateMetrics(ctx)

	s.logger.Info().Str("application_id", id).Str("status", string(status)).Msg("application status updated")

	event := ports.DomainEvent{
		Action:     domain.ActionUpdateAppStatus,
		ActorID:    actor.ID,
		TargetType: "Application",
		TargetID:   id,
		Details:    map[string]any{"status": string(status)},
		OccurredAt: time.Now().UTC(),
		Notices: []ports.NoticeIntent{{
			UserID:  application.ApplicantID,
			Type:    domain.NotifStatusUpdate,
			Payload: map[string]any{"application_id": id, "status": string(status)},
			Persist: true,
			Push:    true,
		}},
	}
	if job, jerr := s.jobs.FindByID(ctx, application.JobID); jerr == nil {
		event.Emails = []ports.EmailIntent{{
			To:      application.CandidateInfo.Email,
			Subject: "Application status update",
			Body:    fmt.Sprintf("Your application for %s is now %s.", job.Title, status),
		}}
	}
	s.bus.Publish(event)

	return updated, nil
}

func (s *ApplicationService) AddNote(ctx context.Context, actor ports.Identity, id, text string) (*domain.Application, error) {
	note := domain.ApplicationNote{
		Text:    text,
		AddedBy: actor.ID,
		AddedAt: time.Now().UTC(),
	}

	application, err := s.apps.AddNote(ctx, id, note)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("application_id", id).Str("actor_id", actor.ID).Msg("note added to application")

	s.bus.Publish(ports.DomainEvent{
		Action:     domain.ActionAddAppNote,
		ActorID:    actor.ID,
		TargetType: "Application",
		TargetID:   id,
		Details:    map[string]any{"text": text},
		OccurredAt: note.AddedAt,
	})

	return application, nil
}

// invalidateMetrics drops the aggregated pipeline snapshot; any change to the
// applications collection makes it stale.
func (s *ApplicationService) invalidateMetrics(ctx context.Context) {
	if err := s.cache.Delete(ctx, ports.KeyPipelineMetrics); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn().Err(err).Msg("pipeline metrics cache invalidation failed")
	}
}
