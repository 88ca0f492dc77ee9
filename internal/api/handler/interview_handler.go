package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openhire/recruitment-api/internal/core/domain"
	"github.com/openhire/recruitment-api/internal/core/ports"
)

// InterviewHandler handles HTTP requests for interviews.
type InterviewHandler struct {
	service ports.InterviewService
}

func NewInterviewHandler(service ports.InterviewService) *InterviewHandler {
	return &InterviewHandler{service: service}
}

type participantRequest struct {
	UserID string `json:"user_id" validate:"required_without=Email"`
	Email  string `json:"email" validate:"omitempty,email"`
}

type interviewRequest struct {
	ScheduledAt     time.Time            `json:"scheduled_at" validate:"required"`
	DurationMinutes int                  `json:"duration_minutes" validate:"omitempty,min=15,max=480"`
	Participants    []participantRequest `json:"participants" validate:"omitempty,dive"`
	Location        string               `json:"location"`
}

func (r interviewRequest) toInput() ports.ScheduleInterviewInput {
	participants := make([]ports.ParticipantInput, 0, len(r.Participants))
	for _, p := range r.Participants {
		participants = append(participants, ports.ParticipantInput{UserID: p.UserID, Email: p.Email})
	}
	return ports.ScheduleInterviewInput{
		ScheduledAt:     r.ScheduledAt,
		DurationMinutes: r.DurationMinutes,
		Participants:    participants,
		Location:        r.Location,
	}
}

// Create handles POST /applications/:id/interviews.
func (h *InterviewHandler) Create(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req interviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	interview, err := h.service.Create(c.Request().Context(), actor, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, interview)
}

// Get handles GET /interviews/:id.
func (h *InterviewHandler) Get(c echo.Context) error {
	interview, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, interview)
}

// Update handles PUT /interviews/:id (reschedule, attendees, location).
func (h *InterviewHandler) Update(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req interviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	interview, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, interview)
}

type completeRequest struct {
	Scores map[string]float64 `json:"scores"`
	Notes  string             `json:"notes"`
}

// Complete handles POST /interviews/:id/complete, recording the evaluation.
func (h *InterviewHandler) Complete(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req completeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	interview, err := h.service.Complete(c.Request().Context(), actor, c.Param("id"), domain.Evaluation{
		Scores: req.Scores,
		Notes:  req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, interview)
}

// Export handles GET /interviews/:id/export, returning an iCalendar file.
func (h *InterviewHandler) Export(c echo.Context) error {
	data, err := h.service.ExportICS(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="interview.ics"`)
	return c.Blob(http.StatusOK, "text/calendar", data)
}
