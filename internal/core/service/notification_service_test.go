package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/openhire/recruitment-api/internal/core/domain"
	"github.com/openhire/recruitment-api/internal/core/ports"
)

func newNotificationFixture() (*NotificationService, *stubNotificationRepo, *stubMailer, *stubRegistry) {
	repo := newStubNotificationRepo()
	mailer := &stubMailer{}
	registry := &stubRegistry{}
	svc := NewNotificationService(repo, mailer, registry, zerolog.Nop())
	return svc, repo, mailer, registry
}

func TestNotifierConsume_DeliversAllIntents(t *testing.T) {
	svc, repo, mailer, registry := newNotificationFixture()

	err := svc.Consume(context.Background(), ports.DomainEvent{
		Action:   domain.ActionCreateApp,
		TargetID: "app_1",
		Emails: []ports.EmailIntent{
			{To: "cand@example.com", Subject: "Application received"},
			{To: "hr@example.com", Subject: "New application"},
		},
		Notices: []ports.NoticeIntent{
			{UserID: "hr_1", Type: domain.NotifNewApplication, Persist: true, Push: true},
			{UserID: "hr_2", Type: domain.NotifNewApplication, Push: true},
		},
	})
	if err != nil {
		t.Fatalf("consume: %v", err)
	}

	if len(mailer.sent) != 2 {
		t.Fatalf("expected 2 emails, got %d", len(mailer.sent))
	}
	if len(repo.records) != 1 {
		t.Fatalf("only the persist notice may be stored, got %d", len(repo.records))
	}
	if len(registry.emitted) != 2 {
		t.Fatalf("both push notices must be emitted, got %d", len(registry.emitted))
	}
}

func TestNotifierConsume_MailFailureIsSwallowed(t *testing.T) {
	svc, repo, mailer, _ := newNotificationFixture()
	mailer.err = errors.New("smtp down")

	err := svc.Consume(context.Background(), ports.DomainEvent{
		Emails:  []ports.EmailIntent{{To: "a@example.com"}},
		Notices: []ports.NoticeIntent{{UserID: "u1", Type: domain.NotifStatusUpdate, Persist: true}},
	})
	if err != nil {
		t.Fatalf("delivery failures must not surface, got %v", err)
	}
	if len(repo.records) != 1 {
		t.Fatalf("persist notice must still be stored after mail failure")
	}
}

func TestNotificationMarkRead_OwnershipEnforced(t *testing.T) {
	svc, repo, _, _ := newNotificationFixture()
	n, _ := repo.Create(context.Background(), &domain.Notification{UserID: "owner", Type: domain.NotifNewJob})

	if _, err := svc.MarkRead(context.Background(), ports.Identity{ID: "intruder"}, n.ID); err != domain.ErrNotificationNotFound {
		t.Fatalf("foreign notification must read as not found, got %v", err)
	}

	marked, err := svc.MarkRead(context.Background(), ports.Identity{ID: "owner"}, n.ID)
	if err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if !marked.Read {
		t.Fatalf("read flag not set")
	}
}
