package ports

import (
	"context"
	"io"

	"github.com/openhire/recruitment-api/internal/core/domain"
)

// ApplyInput carries a candidate's submission for one job.
type ApplyInput struct {
	JobID          string
	CoverLetter    string
	ResumeFilename string
	Resume         io.Reader
}

// ApplicationList is one page of applications.
type ApplicationList struct {
	Items      []*domain.Application `json:"applications"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
	TotalPages int                   `json:"total_pages"`
}

// ApplicationService defines use-case operations for applications.
type ApplicationService interface {
	Apply(ctx context.Context, actor Identity, input ApplyInput) (*domain.Application, error)
	List(ctx context.Context, filter ListApplicationsFilter) (*ApplicationList, error)
	UpdateStatus(ctx context.Context, actor Identity, id string, status domain.ApplicationStatus) (*domain.Application, error)
	AddNote(ctx context.Context, actor Identity, id, text string) (*domain.Application, error)
}
