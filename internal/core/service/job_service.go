package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/openhire/recruitment-api/internal/core/domain"
	"github.com/openhire/recruitment-api/internal/core/ports"
)

const defaultJobPageLimit = 10

// JobService implements use-case operations for job postings. Listings are
// served cache-aside with canonical per-query keys; every mutation
// synchronously invalidates the well-known default-listing key before the
// post-commit event is published.
type JobService struct {
	repo   ports.JobRepository
	cache  ports.Cache
	bus    ports.EventBus
	logger zerolog.Logger
}

func NewJobService(repo ports.JobRepository, cache ports.Cache, bus ports.EventBus, logger zerolog.Logger) *JobService {
	return &JobService{repo: repo, cache: cache, bus: bus, logger: logger}
}

func (s *JobService) Create(ctx context.Context, actor ports.Identity, input ports.CreateJobInput) (*domain.Job, error) {
	now := time.Now().UTC()
	job := &domain.Job{
		Title:        input.Title,
		Description:  input.Description,
		Department:   input.Department,
		Location:     orDefault(input.Location, "Remote"),
		SalaryRange:  input.SalaryRange,
		Type:         orDefault(input.Type, "CDI"),
		Requirements: orEmpty(input.Requirements),
		Benefits:     orEmpty(input.Benefits),
		Tags:         orEmpty(input.Tags),
		CreatedBy:    actor.ID,
		Status:       domain.JobDraft,
		Visibility:   orDefault(input.Visibility, domain.VisibilityPublic),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, job)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create job")
		return nil, err
	}

	s.invalidateListings(ctx)

	s.logger.Info().Str("job_id", created.ID).Str("actor_id", actor.ID).Msg("job created")

	s.bus.Publish(ports.DomainEvent{
		Action:     domain.ActionCreateJob,
		ActorID:    actor.ID,
		TargetType: "Job",
		TargetID:   created.ID,
		OccurredAt: now,
		Notices: []ports.NoticeIntent{{
			UserID:  actor.ID,
			Type:    domain.NotifNewJob,
			Payload: map[string]any{"job_id": created.ID, "title": created.Title},
			Push:    true,
		}},
	})

	return created, nil
}

func (s *JobService) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *JobService) List(ctx context.Context, filter ports.ListJobsFilter) (*ports.JobList, error) {
	filter = normalizeJobFilter(filter)
	key := jobListKey(filter)

	if raw, ok, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn().Err(err).Msg("job list cache read failed")
	} else if ok {
		var cached ports.JobList
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			return &cached, nil
		}
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := &ports.JobList{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}

	if raw, err := json.Marshal(result); err == nil {
		if err := s.cache.Set(ctx, key, raw, ports.ListingTTL); err != nil {
			s.logger.Warn().Err(err).Msg("job list cache write failed")
		}
	}

	return result, nil
}

func (s *JobService) Update(ctx context.Context, actor ports.Identity, id string, input ports.CreateJobInput) (*domain.Job, error) {
	fields := map[string]any{
		"title":        input.Title,
		"description":  input.Description,
		"department":   input.Department,
		"location":     orDefault(input.Location, "Remote"),
		"salary_range": input.SalaryRange,
		"type":         orDefault(input.Type, "CDI"),
		"requirements": orEmpty(input.Requirements),
		"benefits":     orEmpty(input.Benefits),
		"tags":         orEmpty(input.Tags),
		"visibility":   orDefault(input.Visibility, domain.VisibilityPublic),
	}

	job, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.invalidateListings(ctx)

	s.logger.Info().Str("job_id", id).Str("actor_id", actor.ID).Msg("job updated")

	s.bus.Publish(ports.DomainEvent{
		Action:     domain.ActionUpdateJob,
		ActorID:    actor.ID,
		TargetType: "Job",
		TargetID:   id,
		Details:    fields,
		OccurredAt: time.Now().UTC(),
	})

	return job, nil
}

func (s *JobService) Delete(ctx context.Context, actor ports.Identity, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.invalidateListings(ctx)

	s.logger.Info().Str("job_id", id).Str("actor_id", actor.ID).Msg("job deleted (soft)")

	s.bus.Publish(ports.DomainEvent{
		Action:     domain.ActionDeleteJob,
		ActorID:    actor.ID,
		TargetType: "Job",
		TargetID:   id,
		OccurredAt: time.Now().UTC(),
	})

	return nil
}

func (s *JobService) Publish(ctx context.Context, actor ports.Identity, id string) (*domain.Job, error) {
	return s.transition(ctx, actor, id, domain.JobPublished, domain.ActionPublishJob, domain.NotifJobPublished)
}

func (s *JobService) Close(ctx context.Context, actor ports.Identity, id string) (*domain.Job, error) {
	return s.transition(ctx, actor, id, domain.JobClosed, domain.ActionCloseJob, domain.NotifJobClosed)
}

func (s *JobService) transition(ctx context.Context, actor ports.Identity, id string, next domain.JobStatus, action, notifType string) (*domain.Job, error) {
	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !job.Status.CanTransitionTo(next) {
		return nil, domain.ErrInvalidTransition
	}

	updated, err := s.repo.Update(ctx, id, map[string]any{"status": next})
	if err != nil {
		return nil, err
	}

	s.invalidateListings(ctx)

	s.logger.Info().Str("job_id", id).Str("status", string(next)).Msg("job status changed")

	s.bus.Publish(ports.DomainEvent{
		Action:     action,
		ActorID:    actor.ID,
		TargetType: "Job",
		TargetID:   id,
		Details:    map[string]any{"status": string(next)},
		OccurredAt: time.Now().UTC(),
		Notices: []ports.NoticeIntent{{
			UserID:  job.CreatedBy,
			Type:    notifType,
			Payload: map[string]any{"job_id": id, "title": job.Title},
			Persist: true,
			Push:    true,
		}},
	})

	return updated, nil
}

// invalidateListings deletes the well-known default-listing key. Keys of
// parameterised pages are left to expire within the listing TTL.
func (s *JobService) invalidateListings(ctx context.Context) {
	if err := s.cache.Delete(ctx, DefaultJobListKey()); err != nil {
		s.logger.Warn().Err(err).Msg("job list cache invalidation failed")
	}
}

// DefaultJobListKey is the aggregate key of the unfiltered first page, the
// one entry that must never serve a stale read after a mutation.
func DefaultJobListKey() string {
	return jobListKey(normalizeJobFilter(ports.ListJobsFilter{}))
}

func jobListKey(f ports.ListJobsFilter) string {
	return ports.CacheKey("jobs", map[string]string{
		"q":          f.Query,
		"department": f.Department,
		"status":     f.Status,
		"visibility": f.Visibility,
		"page":       strconv.Itoa(f.Page),
		"limit":      strconv.Itoa(f.Limit),
	})
}

func normalizeJobFilter(f ports.ListJobsFilter) ports.ListJobsFilter {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = defaultJobPageLimit
	}
	return f
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func orEmpty(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
