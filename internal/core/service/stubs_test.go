package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/openhire/recruitment-api/internal/core/domain"
	"github.com/openhire/recruitment-api/internal/core/ports"
)

// --- Event bus ---

type stubBus struct {
	mu     sync.Mutex
	events []ports.DomainEvent
}

func (b *stubBus) Publish(event ports.DomainEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *stubBus) last() (ports.DomainEvent, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.events) == 0 {
		return ports.DomainEvent{}, false
	}
	return b.events[len(b.events)-1], true
}

// --- Cache ---

type stubCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	deleted []string
}

func newStubCache() *stubCache {
	return &stubCache{data: make(map[string][]byte)}
}

func (c *stubCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	return raw, ok, nil
}

func (c *stubCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *stubCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
		c.deleted = append(c.deleted, k)
	}
	return nil
}

// --- Users ---

type stubUserRepo struct {
	mu      sync.Mutex
	seq     int
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
	logins  []string
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func (r *stubUserRepo) add(u *domain.User) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == "" {
		r.seq++
		u.ID = "user_" + strconv.Itoa(r.seq)
	}
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u
	return u
}

func (r *stubUserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	return r.add(u), nil
}

func (r *stubUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(ctx context.Context, id string, fields map[string]any) (*domain.User, error) {
	u, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := fields["first_name"].(string); ok {
		u.FirstName = v
	}
	if v, ok := fields["last_name"].(string); ok {
		u.LastName = v
	}
	if v, ok := fields["email"].(string); ok {
		delete(r.byEmail, u.Email)
		u.Email = v
		r.byEmail[v] = u
	}
	if v, ok := fields["role"].(string); ok {
		u.Role = v
	}
	if v, ok := fields["department"].(string); ok {
		u.Department = v
	}
	if v, ok := fields["password_hash"].(string); ok {
		u.PasswordHash = v
	}
	return u, nil
}

func (r *stubUserRepo) SoftDelete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	delete(r.byEmail, u.Email)
	return nil
}

func (r *stubUserRepo) RecordLogin(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logins = append(r.logins, id)
	return nil
}

// --- Jobs ---

type stubJobRepo struct {
	mu        sync.Mutex
	seq       int
	jobs      map[string]*domain.Job
	listCalls int
}

func newStubJobRepo() *stubJobRepo {
	return &stubJobRepo{jobs: make(map[string]*domain.Job)}
}

func (r *stubJobRepo) add(j *domain.Job) *domain.Job {
	r.mu.Lock()
	defer r.mu.Unlock()
	if j.ID == "" {
		r.seq++
		j.ID = "job_" + strconv.Itoa(r.seq)
	}
	r.jobs[j.ID] = j
	return j
}

func (r *stubJobRepo) Create(ctx context.Context, j *domain.Job) (*domain.Job, error) {
	return r.add(j), nil
}

func (r *stubJobRepo) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return j, nil
}

func (r *stubJobRepo) List(ctx context.Context, filter ports.ListJobsFilter) ([]*domain.Job, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	out := make([]*domain.Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		out = append(out, j)
	}
	return out, int64(len(out)), nil
}

func (r *stubJobRepo) Update(ctx context.Context, id string, fields map[string]any) (*domain.Job, error) {
	j, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := fields["status"].(domain.JobStatus); ok {
		j.Status = v
	}
	if v, ok := fields["title"].(string); ok {
		j.Title = v
	}
	return j, nil
}

func (r *stubJobRepo) SoftDelete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[id]; !ok {
		return domain.ErrJobNotFound
	}
	delete(r.jobs, id)
	return nil
}

// --- Applications ---

type stubApplicationRepo struct {
	mu   sync.Mutex
	seq  int
	apps map[string]*domain.Application

	counts []ports.StatusCount
	avg    time.Duration
}

func newStubApplicationRepo() *stubApplicationRepo {
	return &stubApplicationRepo{apps: make(map[string]*domain.Application)}
}

func (r *stubApplicationRepo) add(a *domain.Application) *domain.Application {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == "" {
		r.seq++
		a.ID = "app_" + strconv.Itoa(r.seq)
	}
	r.apps[a.ID] = a
	return a
}

func (r *stubApplicationRepo) Create(ctx context.Context, a *domain.Application) (*domain.Application, error) {
	return r.add(a), nil
}

func (r *stubApplicationRepo) FindByID(ctx context.Context, id string) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	return a, nil
}

func (r *stubApplicationRepo) List(ctx context.Context, filter ports.ListApplicationsFilter) ([]*domain.Application, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Application, 0, len(r.apps))
	for _, a := range r.apps {
		if filter.JobID != "" && a.JobID != filter.JobID {
			continue
		}
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

func (r *stubApplicationRepo) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	a, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a.Status = status
	a.UpdatedAt = time.Now().UTC()
	return a, nil
}

func (r *stubApplicationRepo) AddNote(ctx context.Context, id string, note domain.ApplicationNote) (*domain.Application, error) {
	a, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a.Notes = append(a.Notes, note)
	return a, nil
}

func (r *stubApplicationRepo) CountByStatus(ctx context.Context) ([]ports.StatusCount, error) {
	return r.counts, nil
}

func (r *stubApplicationRepo) AvgTimeToOffer(ctx context.Context) (time.Duration, error) {
	return r.avg, nil
}

// --- Interviews ---

type stubInterviewRepo struct {
	mu         sync.Mutex
	seq        int
	interviews map[string]*domain.Interview
}

func newStubInterviewRepo() *stubInterviewRepo {
	return &stubInterviewRepo{interviews: make(map[string]*domain.Interview)}
}

func (r *stubInterviewRepo) add(i *domain.Interview) *domain.Interview {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i.ID == "" {
		r.seq++
		i.ID = "interview_" + strconv.Itoa(r.seq)
	}
	r.interviews[i.ID] = i
	return i
}

func (r *stubInterviewRepo) Create(ctx context.Context, i *domain.Interview) (*domain.Interview, error) {
	return r.add(i), nil
}

func (r *stubInterviewRepo) FindByID(ctx context.Context, id string) (*domain.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.interviews[id]
	if !ok {
		return nil, domain.ErrInterviewNotFound
	}
	return i, nil
}

func (r *stubInterviewRepo) Update(ctx context.Context, id string, fields map[string]any) (*domain.Interview, error) {
	i, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := fields["status"].(domain.InterviewStatus); ok {
		i.Status = v
	}
	if v, ok := fields["evaluation"].(domain.Evaluation); ok {
		i.Evaluation = v
	}
	if v, ok := fields["location"].(string); ok {
		i.Location = v
	}
	if v, ok := fields["scheduled_at"].(time.Time); ok {
		i.ScheduledAt = v
	}
	return i, nil
}

// --- Audit ---

type stubAuditRepo struct {
	mu      sync.Mutex
	records []*domain.AuditRecord
}

func (r *stubAuditRepo) Create(ctx context.Context, rec *domain.AuditRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return nil
}

func (r *stubAuditRepo) List(ctx context.Context, filter ports.ListAuditFilter) ([]*domain.AuditRecord, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.records, int64(len(r.records)), nil
}

// --- Notifications ---

type stubNotificationRepo struct {
	mu      sync.Mutex
	seq     int
	records map[string]*domain.Notification
}

func newStubNotificationRepo() *stubNotificationRepo {
	return &stubNotificationRepo{records: make(map[string]*domain.Notification)}
}

func (r *stubNotificationRepo) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	n.ID = "notif_" + strconv.Itoa(r.seq)
	r.records[n.ID] = n
	return n, nil
}

func (r *stubNotificationRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Notification{}
	for _, n := range r.records {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *stubNotificationRepo) MarkRead(ctx context.Context, id, userID string) (*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.records[id]
	if !ok || n.UserID != userID {
		return nil, domain.ErrNotificationNotFound
	}
	n.Read = true
	return n, nil
}

// --- Side-effect stubs ---

type stubMailer struct {
	mu   sync.Mutex
	sent []string // "to|subject"
	err  error
}

func (m *stubMailer) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to+"|"+subject)
	return nil
}

type stubRegistry struct {
	mu      sync.Mutex
	emitted []string // "userID|event"
}

func (r *stubRegistry) Emit(userID, event string, payload map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emitted = append(r.emitted, userID+"|"+event)
}

type stubFileStore struct {
	mu    sync.Mutex
	saved []string
	err   error
}

func (s *stubFileStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	stored := fmt.Sprintf("stored_%d_%s", len(s.saved), filename)
	s.saved = append(s.saved, stored)
	return stored, nil
}

type stubRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func newStubRevocations() *stubRevocations {
	return &stubRevocations{revoked: make(map[string]time.Duration)}
}

func (s *stubRevocations) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[token] = ttl
	return nil
}

func (s *stubRevocations) IsRevoked(ctx context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.revoked[token]
	return ok, nil
}
