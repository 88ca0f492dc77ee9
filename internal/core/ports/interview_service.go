package ports

import (
	"context"
	"time"

	"github.com/openhire/recruitment-api/internal/core/domain"
)

// ParticipantInput references an attendee by account id or bare email.
type ParticipantInput struct {
	UserID string
	Email  string
}

// ScheduleInterviewInput carries all data needed to schedule an interview.
type ScheduleInterviewInput struct {
	ScheduledAt     time.Time
	DurationMinutes int
	Participants    []ParticipantInput
	Location        string
}

// InterviewService defines use-case operations for interviews.
type InterviewService interface {
	// Create schedules an interview and moves the application to the
	// interview stage.
	Create(ctx context.Context, actor Identity, applicationID string, input ScheduleInterviewInput) (*domain.Interview, error)
	GetByID(ctx context.Context, id string) (*domain.Interview, error)
	Update(ctx context.Context, actor Identity, id string, input ScheduleInterviewInput) (*domain.Interview, error)
	Complete(ctx context.Context, actor Identity, id string, eval domain.Evaluation) (*domain.Interview, error)
	// ExportICS renders the interview as an iCalendar document.
	ExportICS(ctx context.Context, id string) ([]byte, error)
}
