package models

import "time"

// CalendarRow is one (request, group) expansion of the persisted
// calendar, ready for display or export.
type CalendarRow struct {
	ExamRequestID   string     `db:"exam_request_id" json:"exam_request_id"`
	CourseID        string     `db:"course_id" json:"course_id"`
	CourseName      string     `db:"course_name" json:"course_name"`
	GroupID         string     `db:"group_id" json:"group_id"`
	GroupName       string     `db:"group_name" json:"group_name"`
	TeacherName     string     `db:"teacher_name" json:"teacher_name"`
	ExamDate        time.Time  `db:"exam_date" json:"-"`
	StartTime       ClockTime  `db:"start_time" json:"-"`
	EndTime         ClockTime  `db:"end_time" json:"-"`
	RoomName        string     `db:"room_name" json:"room_name"`
	RoomID          string     `db:"room_id" json:"-"`
	RoomConflict    bool       `json:"room_conflict"`
	Status          ExamStatus `db:"status" json:"status"`
	PeriodName      string     `db:"period_name" json:"period_name"`
	EvaluationName  string     `db:"evaluation_name" json:"evaluation_name"`
	RejectionReason *string    `db:"rejection_reason" json:"rejection_reason,omitempty"`

	// Human-readable projections filled by the service layer.
	DateLabel string `json:"date"`
	TimeLabel string `json:"time"`
}
