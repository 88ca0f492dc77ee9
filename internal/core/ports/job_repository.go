package ports

import (
	"context"

	"github.com/openhire/recruitment-api/internal/core/domain"
)

// ListJobsFilter carries all query parameters for listing job postings.
type ListJobsFilter struct {
	Query      string // optional: full-text search over title/description/tags
	Department string // optional: equality filter
	Status     string // optional: equality filter
	Visibility string // optional: equality filter
	Page       int    // 1-based
	Limit      int    // rows per page
}

// JobRepository defines persistence operations for job postings.
// All finds implicitly exclude soft-deleted records.
type JobRepository interface {
	Create(ctx context.Context, j *domain.Job) (*domain.Job, error)
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	// List returns a page of jobs matching filter and the total count.
	List(ctx context.Context, filter ListJobsFilter) ([]*domain.Job, int64, error)
	Update(ctx context.Context, id string, fields map[string]any) (*domain.Job, error)
	SoftDelete(ctx context.Context, id string) error
}
