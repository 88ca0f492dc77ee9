package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/openhire/recruitment-api/internal/core/domain"
	"github.com/openhire/recruitment-api/internal/core/ports"
)

type stubJobService struct {
	created    *ports.CreateJobInput
	lastFilter ports.ListJobsFilter
	published  []string
}

func (s *stubJobService) Create(ctx context.Context, actor ports.Identity, input ports.CreateJobInput) (*domain.Job, error) {
	s.created = &input
	return &domain.Job{ID: "job_1", Title: input.Title, Department: input.Department, Status: domain.JobDraft}, nil
}

func (s *stubJobService) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	if id != "job_1" {
		return nil, domain.ErrJobNotFound
	}
	return &domain.Job{ID: "job_1", Title: "Backend Engineer"}, nil
}

func (s *stubJobService) List(ctx context.Context, filter ports.ListJobsFilter) (*ports.JobList, error) {
	s.lastFilter = filter
	return &ports.JobList{Items: []*domain.Job{}, Page: 1, Limit: 10}, nil
}

func (s *stubJobService) Update(ctx context.Context, actor ports.Identity, id string, input ports.CreateJobInput) (*domain.Job, error) {
	return &domain.Job{ID: id, Title: input.Title}, nil
}

func (s *stubJobService) Delete(ctx context.Context, actor ports.Identity, id string) error {
	return nil
}

func (s *stubJobService) Publish(ctx context.Context, actor ports.Identity, id string) (*domain.Job, error) {
	s.published = append(s.published, id)
	return &domain.Job{ID: id, Status: domain.JobPublished}, nil
}

func (s *stubJobService) Close(ctx context.Context, actor ports.Identity, id string) (*domain.Job, error) {
	return &domain.Job{ID: id, Status: domain.JobClosed}, nil
}

func newJobTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "hr_1")
	c.Set("role", domain.RoleHR)
	return c, rec
}

func TestJobCreateHandler(t *testing.T) {
	svc := &stubJobService{}
	h := NewJobHandler(svc)

	c, rec := newJobTestContext(t, http.MethodPost, "/jobs",
		`{"title":"Backend Engineer","description":"Build the hiring platform.","department":"Engineering"}`)

	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var job domain.Job
	_ = json.Unmarshal(rec.Body.Bytes(), &job)
	if job.Status != domain.JobDraft {
		t.Fatalf("new job must be returned as draft, got %q", job.Status)
	}
	if svc.created == nil || svc.created.Department != "Engineering" {
		t.Fatalf("input not forwarded")
	}
}

func TestJobCreateHandler_ShortFieldsRejected(t *testing.T) {
	h := NewJobHandler(&stubJobService{})

	c, _ := newJobTestContext(t, http.MethodPost, "/jobs",
		`{"title":"ab","description":"too short","department":""}`)

	err := h.Create(c)
	ve, ok := domain.AsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(ve.Fields) != 3 {
		t.Fatalf("title, description and department must all be reported: %v", ve.Fields)
	}
}

func TestJobCreateHandler_ContractTypes(t *testing.T) {
	for _, contract := range []string{"CDI", "CDD", "Stage", "Intern"} {
		svc := &stubJobService{}
		h := NewJobHandler(svc)

		c, rec := newJobTestContext(t, http.MethodPost, "/jobs",
			`{"title":"Backend Engineer","description":"Build the hiring platform.","department":"Engineering","type":"`+contract+`"}`)

		if err := h.Create(c); err != nil {
			t.Fatalf("type %q rejected: %v", contract, err)
		}
		if rec.Code != http.StatusCreated {
			t.Fatalf("type %q: expected 201, got %d", contract, rec.Code)
		}
		if svc.created.Type != contract {
			t.Fatalf("type %q not forwarded, got %q", contract, svc.created.Type)
		}
	}

	for _, contract := range []string{"internship", "freelance", "cdi"} {
		h := NewJobHandler(&stubJobService{})

		c, _ := newJobTestContext(t, http.MethodPost, "/jobs",
			`{"title":"Backend Engineer","description":"Build the hiring platform.","department":"Engineering","type":"`+contract+`"}`)

		err := h.Create(c)
		if _, ok := domain.AsValidationError(err); !ok {
			t.Fatalf("type %q must be rejected, got %v", contract, err)
		}
	}
}

func TestJobListHandler_QueryForwarded(t *testing.T) {
	svc := &stubJobService{}
	h := NewJobHandler(svc)

	c, rec := newJobTestContext(t, http.MethodGet, "/jobs?q=engineer&department=Engineering&page=2&limit=5", "")

	if err := h.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastFilter.Query != "engineer" || svc.lastFilter.Department != "Engineering" || svc.lastFilter.Page != 2 || svc.lastFilter.Limit != 5 {
		t.Fatalf("filter not forwarded: %+v", svc.lastFilter)
	}
}

func TestJobListHandler_MalformedPageFallsBack(t *testing.T) {
	svc := &stubJobService{}
	h := NewJobHandler(svc)

	c, _ := newJobTestContext(t, http.MethodGet, "/jobs?page=banana", "")

	if err := h.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	if svc.lastFilter.Page != 1 {
		t.Fatalf("malformed page must fall back to 1, got %d", svc.lastFilter.Page)
	}
}

func TestJobPublishHandler(t *testing.T) {
	svc := &stubJobService{}
	h := NewJobHandler(svc)

	c, rec := newJobTestContext(t, http.MethodPost, "/jobs/job_1/publish", "")
	c.SetParamNames("id")
	c.SetParamValues("job_1")

	if err := h.Publish(c); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(svc.published) != 1 || svc.published[0] != "job_1" {
		t.Fatalf("publish not forwarded")
	}
}
