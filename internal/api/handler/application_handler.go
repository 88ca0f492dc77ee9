package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openhire/recruitment-api/internal/api/metrics"
	"github.com/openhire/recruitment-api/internal/core/domain"
	"github.com/openhire/recruitment-api/internal/core/ports"
)

// maxResumeBytes caps resume uploads at 5 MiB.
const maxResumeBytes = 5 << 20

// ApplicationHandler handles HTTP requests for applications.
type ApplicationHandler struct {
	service ports.ApplicationService
}

func NewApplicationHandler(service ports.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// Apply handles POST /jobs/:id/apply. The body is multipart form data
// with a "resume" file part and an optional "cover_letter" field.
func (h *ApplicationHandler) Apply(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("resume")
	if err != nil {
		return &domain.ValidationError{Fields: []string{"resume file is required"}}
	}
	if fh.Size > maxResumeBytes {
		return &domain.ValidationError{Fields: []string{"resume must be 5MB or smaller"}}
	}

	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable resume file")
	}
	defer src.Close()

	app, err := h.service.Apply(c.Request().Context(), actor, ports.ApplyInput{
		JobID:          c.Param("id"),
		CoverLetter:    c.FormValue("cover_letter"),
		ResumeFilename: fh.Filename,
		Resume:         src,
	})
	if err != nil {
		return err
	}

	metrics.ApplicationsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, app)
}

// List handles GET /applications with optional filters.
func (h *ApplicationHandler) List(c echo.Context) error {
	filter := ports.ListApplicationsFilter{
		JobID:  c.QueryParam("job_id"),
		Status: c.QueryParam("status"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 0),
	}
	if from := c.QueryParam("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filter.DateFrom = t
		}
	}
	if to := c.QueryParam("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filter.DateTo = t
		}
	}

	list, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// ListByJob handles GET /jobs/:id/applications.
func (h *ApplicationHandler) ListByJob(c echo.Context) error {
	filter := ports.ListApplicationsFilter{
		JobID:  c.Param("id"),
		Status: c.QueryParam("status"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 0),
	}

	list, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_review interview offer rejected accepted"`
}

// UpdateStatus handles PUT /applications/:id/status. Invalid transitions are
// rejected with 409.
func (h *ApplicationHandler) UpdateStatus(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	app, err := h.service.UpdateStatus(c.Request().Context(), actor, c.Param("id"), domain.ApplicationStatus(req.Status))
	if err != nil {
		return err
	}

	metrics.StatusTransitionsTotal.WithLabelValues(req.Status).Inc()
	return c.JSON(http.StatusOK, app)
}

type addNoteRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}

// AddNote handles POST /applications/:id/notes.
func (h *ApplicationHandler) AddNote(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req addNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	app, err := h.service.AddNote(c.Request().Context(), actor, c.Param("id"), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, app)
}
