package ports

import (
	"context"

	"github.com/openhire/recruitment-api/internal/core/domain"
)

// InterviewRepository defines persistence operations for interviews.
// All finds implicitly exclude soft-deleted records.
type InterviewRepository interface {
	Create(ctx context.Context, i *domain.Interview) (*domain.Interview, error)
	FindByID(ctx context.Context, id string) (*domain.Interview, error)
	Update(ctx context.Context, id string, fields map[string]any) (*domain.Interview, error)
}
