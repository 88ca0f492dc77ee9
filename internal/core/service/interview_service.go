package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/rs/zerolog"

	"github.com/openhire/recruitment-api/internal/core/domain"
	"github.com/openhire/recruitment-api/internal/core/ports"
)

const defaultInterviewDuration = 60

// InterviewService implements scheduling, evaluation, and calendar export.
type InterviewService struct {
	interviews ports.InterviewRepository
	apps       ports.ApplicationRepository
	users      ports.UserRepository
	cache      ports.Cache
	bus        ports.EventBus
	fromEmail  string
	logger     zerolog.Logger
}

func NewInterviewService(interviews ports.InterviewRepository, apps ports.ApplicationRepository, users ports.UserRepository, cache ports.Cache, bus ports.EventBus, fromEmail string, logger zerolog.Logger) *InterviewService {
	return &InterviewService{interviews: interviews, apps: apps, users: users, cache: cache, bus: bus, fromEmail: fromEmail, logger: logger}
}

func (s *InterviewService) Create(ctx context.Context, actor ports.Identity, applicationID string, input ports.ScheduleInterviewInput) (*domain.Interview, error) {
	application, err := s.apps.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	duration := input.DurationMinutes
	if duration <= 0 {
		duration = defaultInterviewDuration
	}

	now := time.Now().UTC()
	interview, err := s.interviews.Create(ctx, &domain.Interview{
		ApplicationID:   applicationID,
		ScheduledAt:     input.ScheduledAt.UTC(),
		DurationMinutes: duration,
		Participants:    toParticipants(input.Participants),
		Location:        input.Location,
		Status:          domain.InterviewScheduled,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return nil, err
	}

	// Move the application into the interview stage alongside the schedule.
	// Already-interviewing applications are left untouched.
	if application.Status != domain.ApplicationInterview {
		if application.Status.CanTransitionTo(domain.ApplicationInterview) {
			if _, uerr := s.apps.UpdateStatus(ctx, applicationID, domain.ApplicationInterview); uerr != nil {
				s.logger.Warn().Err(uerr).Str("application_id", applicationID).Msg("failed to advance application to interview stage")
			} else if cerr := s.cache.Delete(ctx, ports.KeyPipelineMetrics); cerr != nil {
				s.logger.Warn().Err(cerr).Msg("pipeline metrics cache invalidation failed")
			}
		} else {
			s.logger.Warn().Str("application_id", applicationID).Str("status", string(application.Status)).Msg("application not advanced: interview stage unreachable from current status")
		}
	}

	s.logger.Info().Str("interview_id", interview.ID).Str("application_id", applicationID).Msg("interview scheduled")

	emails := make([]ports.EmailIntent, 0, len(input.Participants))
	for _, p := range input.Participants {
		to := p.Email
		if to == "" && p.UserID != "" {
			if u, uerr := s.users.FindByID(ctx, p.UserID); uerr == nil {
				to = u.Email
			}
		}
		if to == "" {
			continue
		}
		emails = append(emails, ports.EmailIntent{
			To:      to,
			Subject: "Interview scheduled",
			Body:    fmt.Sprintf("An interview is scheduled for %s. Location: %s", interview.ScheduledAt.Format(time.RFC1123), interview.Location),
		})
	}

	s.bus.Publish(ports.DomainEvent{
		Action:     domain.ActionCreateInterview,
		ActorID:    actor.ID,
		TargetType: "Interview",
		TargetID:   interview.ID,
		OccurredAt: now,
		Emails:     emails,
		Notices: []ports.NoticeIntent{{
			UserID:  application.ApplicantID,
			Type:    domain.NotifInterviewScheduled,
			Payload: map[string]any{"interview_id": interview.ID},
			Persist: true,
			Push:    true,
		}},
	})

	return interview, nil
}

func (s *InterviewService) GetByID(ctx context.Context, id string) (*domain.Interview, error) {
	return s.interviews.FindByID(ctx, id)
}

func (s *InterviewService) Update(ctx context.Context, actor ports.Identity, id string, input ports.ScheduleInterviewInput) (*domain.Interview, error) {
	fields := map[string]any{
		"scheduled_at": input.ScheduledAt.UTC(),
		"participants": toParticipants(input.Participants),
		"location":     input.Location,
	}
	if input.DurationMinutes > 0 {
		fields["duration_minutes"] = input.DurationMinutes
	}

	interview, err := s.interviews.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("interview_id", id).Msg("interview updated")

	s.bus.Publish(ports.DomainEvent{
		Action:     domain.ActionUpdateInterview,
		ActorID:    actor.ID,
		TargetType: "Interview",
		TargetID:   id,
		Details:    map[string]any{"scheduled_at": input.ScheduledAt.UTC(), "location": input.Location},
		OccurredAt: time.Now().UTC(),
	})

	return interview, nil
}

func (s *InterviewService) Complete(ctx context.Context, actor ports.Identity, id string, eval domain.Evaluation) (*domain.Interview, error) {
	interview, err := s.interviews.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !interview.Status.CanTransitionTo(domain.InterviewCompleted) {
		return nil, domain.ErrInvalidTransition
	}

	updated, err := s.interviews.Update(ctx, id, map[string]any{
		"status":     domain.InterviewCompleted,
		"evaluation": eval,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("interview_id", id).Msg("interview completed")

	s.bus.Publish(ports.DomainEvent{
		Action:     domain.ActionCompleteIntw,
		ActorID:    actor.ID,
		TargetType: "Interview",
		TargetID:   id,
		Details:    map[string]any{"notes": eval.Notes},
		OccurredAt: time.Now().UTC(),
	})

	return updated, nil
}

// ExportICS renders the interview as a single-event iCalendar document
// suitable for an .ics attachment download.
func (s *InterviewService) ExportICS(ctx context.Context, id string) ([]byte, error) {
	interview, err := s.interviews.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodRequest)
	cal.SetProductId("-//openhire//recruitment-api//EN")

	event := cal.AddEvent(interview.ID)
	event.SetCreatedTime(interview.CreatedAt)
	event.SetStartAt(interview.ScheduledAt)
	event.SetEndAt(interview.EndsAt())
	event.SetSummary(fmt.Sprintf("Interview for application %s", interview.ApplicationID))
	event.SetDescription(interview.Evaluation.Notes)
	if interview.Location != "" {
		event.SetLocation(interview.Location)
	}
	if s.fromEmail != "" {
		event.SetOrganizer("mailto:"+s.fromEmail, ics.WithCN("Recruitment"))
	}

	return []byte(cal.Serialize()), nil
}

func toParticipants(in []ports.ParticipantInput) []domain.Participant {
	out := make([]domain.Participant, len(in))
	for i, p := range in {
		out[i] = domain.Participant{UserID: p.UserID, Email: p.Email}
	}
	return out
}
