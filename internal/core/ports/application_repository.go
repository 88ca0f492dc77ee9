package ports

import (
	"context"
	"time"

	"github.com/openhire/recruitment-api/internal/core/domain"
)

// ListApplicationsFilter carries query parameters for listing applications.
type ListApplicationsFilter struct {
	JobID       string // optional: scope to one job
	ApplicantID string // optional: scope to one applicant
	Status      string // optional: equality filter
	DateFrom    time.Time
	DateTo      time.Time
	Page        int
	Limit       int
}

// StatusCount is one bucket of the pipeline aggregation.
type StatusCount struct {
	Status string `json:"status" bson:"_id"`
	Count  int64  `json:"count" bson:"count"`
}

// ApplicationRepository defines persistence operations for applications.
// All finds implicitly exclude soft-deleted records.
type ApplicationRepository interface {
	Create(ctx context.Context, a *domain.Application) (*domain.Application, error)
	FindByID(ctx context.Context, id string) (*domain.Application, error)
	List(ctx context.Context, filter ListApplicationsFilter) ([]*domain.Application, int64, error)
	UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error)
	AddNote(ctx context.Context, id string, note domain.ApplicationNote) (*domain.Application, error)
	// CountByStatus groups active applications by status.
	CountByStatus(ctx context.Context) ([]StatusCount, error)
	// AvgTimeToOffer returns the mean duration between submission and the
	// latest update for applications currently at the offer stage.
	AvgTimeToOffer(ctx context.Context) (time.Duration, error)
}
