package dto

import "github.com/unsis-dev/exam-calendar-api/internal/models"

// GenerateCalendarRequest instructs the generator to build the exam
// calendar for the caller's program.
type GenerateCalendarRequest struct {
	StartDate    string   `json:"startDate" validate:"required,datetime=2006-01-02"`
	EvaluationID string   `json:"evaluationId" validate:"required,max=20"`
	Holidays     []string `json:"holidays" validate:"omitempty,dive,datetime=2006-01-02"`
}

// UnitConflict captures a (course, group) unit the generator could not place.
type UnitConflict struct {
	Type     string `json:"type"`
	CourseID string `json:"courseId"`
	GroupID  string `json:"groupId,omitempty"`
	Message  string `json:"message"`
}

// GenerateCalendarResponse summarises a generation run.
type GenerateCalendarResponse struct {
	CreatedCount       int            `json:"createdCount"`
	Conflicts          []UnitConflict `json:"conflicts"`
	Warnings           []string       `json:"warnings"`
	ResolvedPeriodName string         `json:"resolvedPeriodName"`
	ResolvedSemester   string         `json:"resolvedSemester"`
}

// CalendarQuery filters the calendar view by evaluation kind.
type CalendarQuery struct {
	EvaluationID string `form:"evaluationId" json:"evaluationId"`
}

// CalendarCheckResponse reports whether a calendar already exists.
type CalendarCheckResponse struct {
	Exists       bool   `json:"exists"`
	RequestCount int    `json:"requestCount"`
	PeriodName   string `json:"periodName,omitempty"`
}

// BulkRejectRequest rejects every request of the selection with a reason.
type BulkRejectRequest struct {
	EvaluationID string `json:"evaluationId" validate:"required,max=20"`
	Reason       string `json:"reason" validate:"required,max=500"`
}

// BulkStatusRequest identifies the selection for submit and approve.
type BulkStatusRequest struct {
	EvaluationID string `json:"evaluationId" validate:"required,max=20"`
}

// ReviewRequest updates a single exam request's review state.
type ReviewRequest struct {
	Status models.ExamStatus `json:"status" validate:"min=0,max=2"`
	Reason string            `json:"reason" validate:"omitempty,max=500"`
}
