package ports

import (
	"context"

	"github.com/openhire/recruitment-api/internal/core/domain"
)

// CreateJobInput carries all data needed to create a job posting.
type CreateJobInput struct {
	Title        string
	Description  string
	Department   string
	Location     string
	SalaryRange  string
	Type         string
	Requirements []string
	Benefits     []string
	Tags         []string
	Visibility   string
}

// JobList is one page of job postings.
type JobList struct {
	Items      []*domain.Job `json:"jobs"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"total_pages"`
}

// JobService defines use-case operations for job postings.
type JobService interface {
	Create(ctx context.Context, actor Identity, input CreateJobInput) (*domain.Job, error)
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	List(ctx context.Context, filter ListJobsFilter) (*JobList, error)
	Update(ctx context.Context, actor Identity, id string, input CreateJobInput) (*domain.Job, error)
	Delete(ctx context.Context, actor Identity, id string) error
	Publish(ctx context.Context, actor Identity, id string) (*domain.Job, error)
	Close(ctx context.Context, actor Identity, id string) (*domain.Job, error)
}
