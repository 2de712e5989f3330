package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/unsis-dev/exam-calendar-api/internal/dto"
	"github.com/unsis-dev/exam-calendar-api/internal/models"
	appErrors "github.com/unsis-dev/exam-calendar-api/pkg/errors"
	"github.com/unsis-dev/exam-calendar-api/pkg/export"
)

type calendarReader interface {
	ListCalendarRows(ctx context.Context, programID, periodID, evaluationID string) ([]models.CalendarRow, error)
	CountForSelector(ctx context.Context, periodID, evaluationID string, courseIDs []string) (int, error)
	BulkSetStatus(ctx context.Context, exec sqlx.ExtContext, periodID, evaluationID string, courseIDs []string, status models.ExamStatus, reason *string) (int64, error)
	UpdateStatus(ctx context.Context, id string, status models.ExamStatus, reason *string) error
}

// CalendarService exposes the persisted calendar: the per-group view,
// existence probes, registrar transitions and file exports.
type CalendarService struct {
	exams     calendarReader
	courses   courseTaughtLister
	resolver  *PeriodResolver
	redis     *redis.Client
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	validator *validator.Validate
	logger    *zap.Logger
	cacheTTL  time.Duration
	now       func() time.Time
}

// NewCalendarService wires the calendar read and review sides.
func NewCalendarService(
	exams calendarReader,
	courses courseTaughtLister,
	resolver *PeriodResolver,
	redisClient *redis.Client,
	validate *validator.Validate,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *CalendarService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &CalendarService{
		exams:     exams,
		courses:   courses,
		resolver:  resolver,
		redis:     redisClient,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		validator: validate,
		logger:    logger,
		cacheTTL:  cacheTTL,
		now:       time.Now,
	}
}

// View returns the program's calendar rows for the current period and
// the requested evaluation, with the room conflict flag computed.
func (s *CalendarService) View(ctx context.Context, programID, evaluationID string) ([]models.CalendarRow, error) {
	if evaluationID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "evaluationId is required")
	}
	resolved, err := s.resolver.Resolve(ctx, s.now())
	if err != nil {
		return nil, err
	}

	cacheKey := calendarCacheKey(programID, resolved.Period.ID, evaluationID)
	if cached, ok := s.fromCache(ctx, cacheKey); ok {
		return cached, nil
	}

	rows, err := s.exams.ListCalendarRows(ctx, programID, resolved.Period.ID, evaluationID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load calendar")
	}

	decorateRows(rows)
	s.toCache(ctx, cacheKey, rows)
	return rows, nil
}

// Check probes whether a calendar exists for the selection.
func (s *CalendarService) Check(ctx context.Context, programID, evaluationID string) (*dto.CalendarCheckResponse, error) {
	if evaluationID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "evaluationId is required")
	}
	resolved, err := s.resolver.Resolve(ctx, s.now())
	if err != nil {
		return nil, err
	}
	courseIDs, err := s.courses.ListCourseIDsTaught(ctx, programID, resolved.Period.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve program courses")
	}
	count, err := s.exams.CountForSelector(ctx, resolved.Period.ID, evaluationID, courseIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count exam requests")
	}
	return &dto.CalendarCheckResponse{
		Exists:       count > 0,
		RequestCount: count,
		PeriodName:   resolved.Period.DisplayName,
	}, nil
}

// Submit marks the selection pending, handing it to the registrar.
func (s *CalendarService) Submit(ctx context.Context, programID, evaluationID string) (int64, error) {
	return s.bulkTransition(ctx, programID, evaluationID, models.ExamStatusPending, nil)
}

// Approve marks every request of the selection approved.
func (s *CalendarService) Approve(ctx context.Context, programID, evaluationID string) (int64, error) {
	return s.bulkTransition(ctx, programID, evaluationID, models.ExamStatusApproved, nil)
}

// Reject marks the selection rejected with a mandatory reason.
func (s *CalendarService) Reject(ctx context.Context, programID string, req dto.BulkRejectRequest) (int64, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid rejection payload")
	}
	return s.bulkTransition(ctx, programID, req.EvaluationID, models.ExamStatusRejected, &req.Reason)
}

// Review transitions a single request.
func (s *CalendarService) Review(ctx context.Context, requestID string, req dto.ReviewRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid review payload")
	}
	var reason *string
	if req.Status == models.ExamStatusRejected {
		if req.Reason == "" {
			return appErrors.Clone(appErrors.ErrValidation, "a reason is required to reject")
		}
		reason = &req.Reason
	}
	if err := s.exams.UpdateStatus(ctx, requestID, req.Status, reason); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "exam request not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update exam request")
	}
	return nil
}

// ExportCSV renders the current calendar view as CSV bytes.
func (s *CalendarService) ExportCSV(ctx context.Context, programID, evaluationID string) ([]byte, error) {
	rows, err := s.View(ctx, programID, evaluationID)
	if err != nil {
		return nil, err
	}
	data, err := s.csv.Render(calendarDataset(rows))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render calendar csv")
	}
	return data, nil
}

// ExportPDF renders the current calendar view as a PDF document.
func (s *CalendarService) ExportPDF(ctx context.Context, programID, evaluationID string) ([]byte, error) {
	rows, err := s.View(ctx, programID, evaluationID)
	if err != nil {
		return nil, err
	}
	title := "Examination Calendar"
	if len(rows) > 0 {
		title = fmt.Sprintf("Examination Calendar %s %s", rows[0].PeriodName, rows[0].EvaluationName)
	}
	data, err := s.pdf.Render(calendarDataset(rows), title)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render calendar pdf")
	}
	return data, nil
}

// InvalidateCalendar drops the cached view after a regeneration or a
// status transition.
func (s *CalendarService) InvalidateCalendar(ctx context.Context, programID, periodID, evaluationID string) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, calendarCacheKey(programID, periodID, evaluationID)).Err(); err != nil {
		s.logger.Warn("failed to invalidate calendar cache", zap.Error(err))
	}
}

func (s *CalendarService) bulkTransition(ctx context.Context, programID, evaluationID string, status models.ExamStatus, reason *string) (int64, error) {
	if evaluationID == "" {
		return 0, appErrors.Clone(appErrors.ErrValidation, "evaluationId is required")
	}
	resolved, err := s.resolver.Resolve(ctx, s.now())
	if err != nil {
		return 0, err
	}
	courseIDs, err := s.courses.ListCourseIDsTaught(ctx, programID, resolved.Period.ID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve program courses")
	}
	affected, err := s.exams.BulkSetStatus(ctx, nil, resolved.Period.ID, evaluationID, courseIDs, status, reason)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to transition exam requests")
	}

	s.InvalidateCalendar(ctx, programID, resolved.Period.ID, evaluationID)
	s.logger.Info("exam requests transitioned",
		zap.String("program_id", programID),
		zap.String("evaluation_id", evaluationID),
		zap.Int("status", int(status)),
		zap.Int64("affected", affected))
	return affected, nil
}

func (s *CalendarService) fromCache(ctx context.Context, key string) ([]models.CalendarRow, bool) {
	if s.redis == nil {
		return nil, false
	}
	payload, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("calendar cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var rows []models.CalendarRow
	if err := json.Unmarshal(payload, &rows); err != nil {
		return nil, false
	}
	return rows, true
}

func (s *CalendarService) toCache(ctx context.Context, key string, rows []models.CalendarRow) {
	if s.redis == nil {
		return
	}
	payload, err := json.Marshal(rows)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("calendar cache write failed", zap.Error(err))
	}
}

func calendarCacheKey(programID, periodID, evaluationID string) string {
	return fmt.Sprintf("calendar:%s:%s:%s", programID, periodID, evaluationID)
}

// decorateRows fills the human labels and the room conflict flag. A
// row conflicts when its room is pending or collides with another
// non-rejected row at the same slot.
func decorateRows(rows []models.CalendarRow) {
	for i := range rows {
		rows[i].DateLabel = rows[i].ExamDate.Format("02/01/2006")
		rows[i].TimeLabel = fmt.Sprintf("%s-%s", rows[i].StartTime, rows[i].EndTime)
		if rows[i].RoomID == "" {
			rows[i].RoomConflict = true
		}
	}
	for i := range rows {
		if rows[i].RoomConflict || rows[i].Status == models.ExamStatusRejected {
			continue
		}
		for j := range rows {
			if i == j || rows[j].Status == models.ExamStatusRejected {
				continue
			}
			if rows[i].ExamRequestID == rows[j].ExamRequestID || rows[i].RoomID != rows[j].RoomID {
				continue
			}
			if !rows[i].ExamDate.Equal(rows[j].ExamDate) {
				continue
			}
			if models.Overlaps(rows[i].StartTime, rows[i].EndTime, rows[j].StartTime, rows[j].EndTime) {
				rows[i].RoomConflict = true
				break
			}
		}
	}
}

var calendarExportHeaders = []string{"Course", "Group", "Teacher", "Date", "Time", "Room", "Status", "Evaluation"}

func calendarDataset(rows []models.CalendarRow) export.Dataset {
	dataset := export.Dataset{Headers: calendarExportHeaders}
	for _, row := range rows {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Course":     row.CourseName,
			"Group":      row.GroupName,
			"Teacher":    row.TeacherName,
			"Date":       row.DateLabel,
			"Time":       row.TimeLabel,
			"Room":       row.RoomName,
			"Status":     statusLabel(row.Status),
			"Evaluation": row.EvaluationName,
		})
	}
	return dataset
}

func statusLabel(status models.ExamStatus) string {
	switch status {
	case models.ExamStatusApproved:
		return "approved"
	case models.ExamStatusRejected:
		return "rejected"
	default:
		return "pending"
	}
}
