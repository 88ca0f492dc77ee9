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

const defaultAuditPageLimit = 20

// AuditService serves the immutable audit trail and, as an event consumer,
// appends exactly one record per successful mutating operation. A failed
// append is logged by the dispatcher and never surfaces to the request that
// produced the event.
type AuditService struct {
	repo   ports.AuditLogRepository
	cache  ports.Cache
	logger zerolog.Logger
}

func NewAuditService(repo ports.AuditLogRepository, cache ports.Cache, logger zerolog.Logger) *AuditService {
	return &AuditService{repo: repo, cache: cache, logger: logger}
}

func (s *AuditService) List(ctx context.Context, filter ports.ListAuditFilter) (*ports.AuditList, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultAuditPageLimit
	}

	key := auditListKey(filter)
	if raw, ok, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn().Err(err).Msg("audit list cache read failed")
	} else if ok {
		var cached ports.AuditList
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			return &cached, nil
		}
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := &ports.AuditList{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}

	if raw, err := json.Marshal(result); err == nil {
		if err := s.cache.Set(ctx, key, raw, ports.ListingTTL); err != nil {
			s.logger.Warn().Err(err).Msg("audit list cache write failed")
		}
	}

	return result, nil
}

// Name implements ports.EventConsumer.
func (s *AuditService) Name() string { return "audit-recorder" }

// Consume implements ports.EventConsumer: one audit record per event.
func (s *AuditService) Consume(ctx context.Context, event ports.DomainEvent) error {
	occurred := event.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now().UTC()
	}

	err := s.repo.Create(ctx, &domain.AuditRecord{
		ActorID:    event.ActorID,
		Action:     event.Action,
		TargetType: event.TargetType,
		TargetID:   event.TargetID,
		Details:    event.Details,
		CreatedAt:  occurred,
	})
	if err != nil {
		return err
	}

	// The first audit page is the collection's well-known aggregate entry.
	if cerr := s.cache.Delete(ctx, auditListKey(ports.ListAuditFilter{Page: 1, Limit: defaultAuditPageLimit})); cerr != nil {
		s.logger.Warn().Err(cerr).Msg("audit list cache invalidation failed")
	}
	return nil
}

func auditListKey(f ports.ListAuditFilter) string {
	return ports.CacheKey("audit_logs", map[string]string{
		"page":  strconv.Itoa(f.Page),
		"limit": strconv.Itoa(f.Limit),
	})
}
