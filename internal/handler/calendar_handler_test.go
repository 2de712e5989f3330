package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/unsis-dev/exam-calendar-api/internal/dto"
	internalmiddleware "github.com/unsis-dev/exam-calendar-api/internal/middleware"
	"github.com/unsis-dev/exam-calendar-api/internal/models"
	appErrors "github.com/unsis-dev/exam-calendar-api/pkg/errors"
)

type calendarGeneratorMock struct {
	capturedProgram string
	captured        dto.GenerateCalendarRequest
	err             error
}

func (m *calendarGeneratorMock) Generate(_ context.Context, programID string, req dto.GenerateCalendarRequest) (*dto.GenerateCalendarResponse, error) {
	m.capturedProgram = programID
	m.captured = req
	if m.err != nil {
		return nil, m.err
	}
	return &dto.GenerateCalendarResponse{CreatedCount: 2}, nil
}

type calendarQueriesMock struct {
	rows     []models.CalendarRow
	affected int64
	reviewed map[string]dto.ReviewRequest
}

func (m *calendarQueriesMock) View(_ context.Context, _, _ string) ([]models.CalendarRow, error) {
	return m.rows, nil
}

func (m *calendarQueriesMock) Check(_ context.Context, _, _ string) (*dto.CalendarCheckResponse, error) {
	return &dto.CalendarCheckResponse{Exists: len(m.rows) > 0, RequestCount: len(m.rows)}, nil
}

func (m *calendarQueriesMock) Submit(_ context.Context, _, _ string) (int64, error) {
	return m.affected, nil
}

func (m *calendarQueriesMock) Approve(_ context.Context, _, _ string) (int64, error) {
	return m.affected, nil
}

func (m *calendarQueriesMock) Reject(_ context.Context, _ string, _ dto.BulkRejectRequest) (int64, error) {
	return m.affected, nil
}

func (m *calendarQueriesMock) Review(_ context.Context, requestID string, req dto.ReviewRequest) error {
	if m.reviewed == nil {
		m.reviewed = map[string]dto.ReviewRequest{}
	}
	m.reviewed[requestID] = req
	return nil
}

func (m *calendarQueriesMock) ExportCSV(_ context.Context, _, _ string) ([]byte, error) {
	return []byte("Course,Group\n"), nil
}

func (m *calendarQueriesMock) ExportPDF(_ context.Context, _, _ string) ([]byte, error) {
	return []byte("%PDF-1.4"), nil
}

func deptHeadClaims() *models.AuthClaims {
	return &models.AuthClaims{UserID: "u-1", Role: models.RoleDepartmentHead, ProgramID: "LIC-CE"}
}

func validGeneratePayload() []byte {
	return []byte(`{"startDate":"2025-11-17","evaluationId":"EV-P1","holidays":["2025-11-18"]}`)
}

func TestCalendarGenerateSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockGen := &calendarGeneratorMock{}
	handler := &CalendarHandler{generator: mockGen, calendars: &calendarQueriesMock{}}

	req, _ := http.NewRequest(http.MethodPost, "/calendar/generate", bytes.NewReader(validGeneratePayload()))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(internalmiddleware.ContextUserKey, deptHeadClaims())

	handler.Generate(c)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "LIC-CE", mockGen.capturedProgram)
	require.Equal(t, "2025-11-17", mockGen.captured.StartDate)
	require.Equal(t, []string{"2025-11-18"}, mockGen.captured.Holidays)
}

func TestCalendarGenerateWithoutProgramBinding(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &CalendarHandler{generator: &calendarGeneratorMock{}, calendars: &calendarQueriesMock{}}

	req, _ := http.NewRequest(http.MethodPost, "/calendar/generate", bytes.NewReader(validGeneratePayload()))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(internalmiddleware.ContextUserKey, &models.AuthClaims{UserID: "u-2", Role: models.RoleRegistrar})

	handler.Generate(c)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestCalendarGenerateValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &CalendarHandler{generator: &calendarGeneratorMock{}, calendars: &calendarQueriesMock{}}

	req, _ := http.NewRequest(http.MethodPost, "/calendar/generate", bytes.NewReader([]byte(`{"startDate":`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(internalmiddleware.ContextUserKey, deptHeadClaims())

	handler.Generate(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalendarGenerateDomainConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockGen := &calendarGeneratorMock{err: appErrors.ErrPeriodNotFound}
	handler := &CalendarHandler{generator: mockGen, calendars: &calendarQueriesMock{}}

	req, _ := http.NewRequest(http.MethodPost, "/calendar/generate", bytes.NewReader(validGeneratePayload()))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(internalmiddleware.ContextUserKey, deptHeadClaims())

	handler.Generate(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCalendarGenerateUnauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &CalendarHandler{generator: &calendarGeneratorMock{}, calendars: &calendarQueriesMock{}}
	router := gin.New()
	router.POST("/calendar/generate", internalmiddleware.RequireRole(models.RoleDepartmentHead), handler.Generate)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/calendar/generate", bytes.NewReader(validGeneratePayload()))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCalendarGenerateForbiddenRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &CalendarHandler{generator: &calendarGeneratorMock{}, calendars: &calendarQueriesMock{}}
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(internalmiddleware.ContextUserKey, &models.AuthClaims{UserID: "u-2", Role: models.RoleRegistrar})
		c.Next()
	})
	router.POST("/calendar/generate", internalmiddleware.RequireRole(models.RoleDepartmentHead), handler.Generate)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/calendar/generate", bytes.NewReader(validGeneratePayload()))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestCalendarReviewNoContent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockQueries := &calendarQueriesMock{}
	handler := &CalendarHandler{generator: &calendarGeneratorMock{}, calendars: mockQueries}
	router := gin.New()
	router.PATCH("/calendar/requests/:id", handler.Review)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPatch, "/calendar/requests/EX-1", bytes.NewReader([]byte(`{"status":1}`)))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, models.ExamStatusApproved, mockQueries.reviewed["EX-1"].Status)
}

func TestCalendarExportCSVHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &CalendarHandler{generator: &calendarGeneratorMock{}, calendars: &calendarQueriesMock{}}
	router := gin.New()
	router.GET("/calendar/export/csv", handler.ExportCSV)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/calendar/export/csv?evaluationId=EV-P1", nil)

	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	require.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
}
