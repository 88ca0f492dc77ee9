package ports

import (
	"context"

	"github.com/openhire/recruitment-api/internal/core/domain"
)

// ListAuditFilter carries query parameters for listing audit records.
type ListAuditFilter struct {
	Page  int
	Limit int
}

// AuditLogRepository is append-only: records are created once, never updated.
type AuditLogRepository interface {
	Create(ctx context.Context, r *domain.AuditRecord) error
	// List returns a page of records sorted newest first, plus the total count.
	List(ctx context.Context, filter ListAuditFilter) ([]*domain.AuditRecord, int64, error)
}
