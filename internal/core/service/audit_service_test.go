package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/openhire/recruitment-api/internal/core/domain"
	"github.com/openhire/recruitment-api/internal/core/ports"
)

func TestAuditConsume_AppendsRecord(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, newStubCache(), zerolog.Nop())

	occurred := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	err := svc.Consume(context.Background(), ports.DomainEvent{
		Action:     domain.ActionPublishJob,
		ActorID:    "hr_1",
		TargetType: "Job",
		TargetID:   "job_1",
		Details:    map[string]any{"status": "published"},
		OccurredAt: occurred,
	})
	if err != nil {
		t.Fatalf("consume: %v", err)
	}

	if len(repo.records) != 1 {
		t.Fatalf("expected one record, got %d", len(repo.records))
	}
	rec := repo.records[0]
	if rec.Action != domain.ActionPublishJob || rec.ActorID != "hr_1" || rec.TargetID != "job_1" {
		t.Fatalf("record fields wrong: %+v", rec)
	}
	if !rec.CreatedAt.Equal(occurred) {
		t.Fatalf("record must carry the event time, got %v", rec.CreatedAt)
	}
}

func TestAuditConsume_InvalidatesFirstPage(t *testing.T) {
	repo := &stubAuditRepo{}
	cache := newStubCache()
	svc := NewAuditService(repo, cache, zerolog.Nop())

	// Warm the first page.
	if _, err := svc.List(context.Background(), ports.ListAuditFilter{}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cache.data) != 1 {
		t.Fatalf("first page not cached")
	}

	if err := svc.Consume(context.Background(), ports.DomainEvent{Action: domain.ActionCreateJob, TargetID: "job_1"}); err != nil {
		t.Fatalf("consume: %v", err)
	}
	if len(cache.data) != 0 {
		t.Fatalf("first audit page must be invalidated after a new record")
	}
}

func TestAuditList_Defaults(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, newStubCache(), zerolog.Nop())

	list, err := svc.List(context.Background(), ports.ListAuditFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list.Page != 1 || list.Limit != defaultAuditPageLimit {
		t.Fatalf("pagination defaults not applied: %+v", list)
	}
}
