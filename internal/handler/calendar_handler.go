package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unsis-dev/exam-calendar-api/internal/dto"
	"github.com/unsis-dev/exam-calendar-api/internal/models"
	"github.com/unsis-dev/exam-calendar-api/internal/service"
	appErrors "github.com/unsis-dev/exam-calendar-api/pkg/errors"
	"github.com/unsis-dev/exam-calendar-api/pkg/response"
)

type calendarGenerator interface {
	Generate(ctx context.Context, programID string, req dto.GenerateCalendarRequest) (*dto.GenerateCalendarResponse, error)
}

type calendarQueries interface {
	View(ctx context.Context, programID, evaluationID string) ([]models.CalendarRow, error)
	Check(ctx context.Context, programID, evaluationID string) (*dto.CalendarCheckResponse, error)
	Submit(ctx context.Context, programID, evaluationID string) (int64, error)
	Approve(ctx context.Context, programID, evaluationID string) (int64, error)
	Reject(ctx context.Context, programID string, req dto.BulkRejectRequest) (int64, error)
	Review(ctx context.Context, requestID string, req dto.ReviewRequest) error
	ExportCSV(ctx context.Context, programID, evaluationID string) ([]byte, error)
	ExportPDF(ctx context.Context, programID, evaluationID string) ([]byte, error)
}

// CalendarHandler exposes the exam calendar endpoints.
type CalendarHandler struct {
	generator calendarGenerator
	calendars calendarQueries
}

// NewCalendarHandler constructs the handler.
func NewCalendarHandler(generator *service.CalendarGeneratorService, calendars *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{generator: generator, calendars: calendars}
}

// Generate godoc
// @Summary Generate the draft exam calendar for the caller's program
// @Description Regenerates atomically: prior requests of the program for the resolved period and evaluation are replaced.
// @Tags Calendar
// @Accept json
// @Produce json
// @Param payload body dto.GenerateCalendarRequest true "Generation payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /calendar/generate [post]
func (h *CalendarHandler) Generate(c *gin.Context) {
	programID := programFromContext(c)
	if programID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "caller is not bound to a program"))
		return
	}

	var req dto.GenerateCalendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generation payload"))
		return
	}

	result, err := h.generator.Generate(c.Request.Context(), programID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// View godoc
// @Summary Get the program's calendar expanded per (request, group)
// @Tags Calendar
// @Produce json
// @Param evaluationId query string true "Evaluation kind id"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /calendar [get]
func (h *CalendarHandler) View(c *gin.Context) {
	rows, err := h.calendars.View(c.Request.Context(), programFromContext(c), c.Query("evaluationId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// Check godoc
// @Summary Probe whether a calendar already exists for the selection
// @Tags Calendar
// @Produce json
// @Param evaluationId query string true "Evaluation kind id"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /calendar/check [get]
func (h *CalendarHandler) Check(c *gin.Context) {
	result, err := h.calendars.Check(c.Request.Context(), programFromContext(c), c.Query("evaluationId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Submit godoc
// @Summary Submit the calendar for registrar review
// @Tags Calendar
// @Accept json
// @Produce json
// @Param payload body dto.BulkStatusRequest true "Selection payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /calendar/submit [post]
func (h *CalendarHandler) Submit(c *gin.Context) {
	var req dto.BulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid submission payload"))
		return
	}
	affected, err := h.calendars.Submit(c.Request.Context(), programFromContext(c), req.EvaluationID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"affected": affected}, nil)
}

// Approve godoc
// @Summary Approve every request of the selection
// @Tags Calendar
// @Accept json
// @Produce json
// @Param payload body dto.BulkStatusRequest true "Selection payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /calendar/approve [post]
func (h *CalendarHandler) Approve(c *gin.Context) {
	var req dto.BulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid approval payload"))
		return
	}
	affected, err := h.calendars.Approve(c.Request.Context(), programFromContext(c), req.EvaluationID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"affected": affected}, nil)
}

// Reject godoc
// @Summary Reject every request of the selection with a reason
// @Tags Calendar
// @Accept json
// @Produce json
// @Param payload body dto.BulkRejectRequest true "Rejection payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /calendar/reject [post]
func (h *CalendarHandler) Reject(c *gin.Context) {
	var req dto.BulkRejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid rejection payload"))
		return
	}
	affected, err := h.calendars.Reject(c.Request.Context(), programFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"affected": affected}, nil)
}

// Review godoc
// @Summary Review a single exam request
// @Tags Calendar
// @Accept json
// @Produce json
// @Param id path string true "Exam request id"
// @Param payload body dto.ReviewRequest true "Review payload"
// @Success 204
// @Security BearerAuth
// @Router /calendar/requests/{id} [patch]
func (h *CalendarHandler) Review(c *gin.Context) {
	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid review payload"))
		return
	}
	if err := h.calendars.Review(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ExportCSV godoc
// @Summary Download the calendar as CSV
// @Tags Calendar
// @Produce text/csv
// @Param evaluationId query string true "Evaluation kind id"
// @Success 200 {file} file
// @Security BearerAuth
// @Router /calendar/export/csv [get]
func (h *CalendarHandler) ExportCSV(c *gin.Context) {
	data, err := h.calendars.ExportCSV(c.Request.Context(), programFromContext(c), c.Query("evaluationId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=exam-calendar-%s.csv", time.Now().Format("20060102")))
	c.Data(http.StatusOK, "text/csv", data)
}

// ExportPDF godoc
// @Summary Download the calendar as PDF
// @Tags Calendar
// @Produce application/pdf
// @Param evaluationId query string true "Evaluation kind id"
// @Success 200 {file} file
// @Security BearerAuth
// @Router /calendar/export/pdf [get]
func (h *CalendarHandler) ExportPDF(c *gin.Context) {
	data, err := h.calendars.ExportPDF(c.Request.Context(), programFromContext(c), c.Query("evaluationId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=exam-calendar-%s.pdf", time.Now().Format("20060102")))
	c.Data(http.StatusOK, "application/pdf", data)
}
