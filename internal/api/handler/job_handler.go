package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/openhire/recruitment-api/internal/api/metrics"
	"github.com/openhire/recruitment-api/internal/core/ports"
)

// JobHandler handles HTTP requests for job postings.
type JobHandler struct {
	service ports.JobService
}

func NewJobHandler(service ports.JobService) *JobHandler {
	return &JobHandler{service: service}
}

type jobRequest struct {
	Title        string   `json:"title" validate:"required,min=3"`
	Description  string   `json:"description" validate:"required,min=10"`
	Department   string   `json:"department" validate:"required"`
	Location     string   `json:"location"`
	SalaryRange  string   `json:"salary_range"`
	Type         string   `json:"type" validate:"omitempty,oneof=CDI CDD Stage Intern"`
	Requirements []string `json:"requirements"`
	Benefits     []string `json:"benefits"`
	Tags         []string `json:"tags"`
	Visibility   string   `json:"visibility" validate:"omitempty,oneof=internal public"`
}

func (r jobRequest) toInput() ports.CreateJobInput {
	return ports.CreateJobInput{
		Title:        r.Title,
		Description:  r.Description,
		Department:   r.Department,
		Location:     r.Location,
		SalaryRange:  r.SalaryRange,
		Type:         r.Type,
		Requirements: r.Requirements,
		Benefits:     r.Benefits,
		Tags:         r.Tags,
		Visibility:   r.Visibility,
	}
}

// Create handles POST /jobs. The posting starts in draft.
func (h *JobHandler) Create(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req jobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	job, err := h.service.Create(c.Request().Context(), actor, req.toInput())
	if err != nil {
		return err
	}

	metrics.JobsCreatedTotal.WithLabelValues(job.Department).Inc()
	return c.JSON(http.StatusCreated, job)
}

// Get handles GET /jobs/:id.
func (h *JobHandler) Get(c echo.Context) error {
	job, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

// List handles GET /jobs with optional search and filters.
func (h *JobHandler) List(c echo.Context) error {
	filter := ports.ListJobsFilter{
		Query:      c.QueryParam("q"),
		Department: c.QueryParam("department"),
		Status:     c.QueryParam("status"),
		Visibility: c.QueryParam("visibility"),
		Page:       queryInt(c, "page", 1),
		Limit:      queryInt(c, "limit", 0),
	}

	list, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Update handles PUT /jobs/:id.
func (h *JobHandler) Update(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req jobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	job, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

// Delete handles DELETE /jobs/:id (soft delete).
func (h *JobHandler) Delete(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "job deleted"})
}

// Publish handles POST /jobs/:id/publish.
func (h *JobHandler) Publish(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	job, err := h.service.Publish(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

// Close handles POST /jobs/:id/close.
func (h *JobHandler) Close(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	job, err := h.service.Close(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

// queryInt parses an integer query parameter, falling back to def when the
// parameter is absent or malformed.
func queryInt(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}
