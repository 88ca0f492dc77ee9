package ports

import (
	"context"

	"github.com/openhire/recruitment-api/internal/core/domain"
)

// AuditList is one page of audit records.
type AuditList struct {
	Items      []*domain.AuditRecord `json:"logs"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
	TotalPages int                   `json:"total_pages"`
}

// AuditService exposes the immutable audit trail (admin only at the API).
type AuditService interface {
	List(ctx context.Context, filter ListAuditFilter) (*AuditList, error)
}
