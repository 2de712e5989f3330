package models

import "time"

// ExamStatus tracks the registrar review state of an exam request.
type ExamStatus int

const (
	ExamStatusPending  ExamStatus = 0
	ExamStatusApproved ExamStatus = 1
	ExamStatusRejected ExamStatus = 2
)

// ExamRequest is the scheduled exam for one (course, group) unit.
type ExamRequest struct {
	ID              string     `db:"id" json:"id"`
	PeriodID        string     `db:"period_id" json:"period_id"`
	EvaluationID    string     `db:"evaluation_id" json:"evaluation_id"`
	CourseID        string     `db:"course_id" json:"course_id"`
	ExamDate        time.Time  `db:"exam_date" json:"exam_date"`
	StartTime       ClockTime  `db:"start_time" json:"start_time"`
	EndTime         ClockTime  `db:"end_time" json:"end_time"`
	Status          ExamStatus `db:"status" json:"status"`
	RejectionReason *string    `db:"rejection_reason" json:"rejection_reason,omitempty"`
	ManuallyEdited  bool       `db:"manually_edited" json:"manually_edited"`
}

// ExamGroup links an exam request to the evaluated group.
type ExamGroup struct {
	ID            string `db:"id" json:"id"`
	ExamRequestID string `db:"exam_request_id" json:"exam_request_id"`
	GroupID       string `db:"group_id" json:"group_id"`
}

// RoomAssignment pins an exam request to a room and invigilator.
type RoomAssignment struct {
	ID                   string `db:"id" json:"id"`
	ExamRequestID        string `db:"exam_request_id" json:"exam_request_id"`
	RoomID               string `db:"room_id" json:"room_id"`
	InvigilatorTeacherID string `db:"invigilator_teacher_id" json:"invigilator_teacher_id"`
}

// JuryAssignment records the jury (sinodal) teacher for an exam request.
type JuryAssignment struct {
	ID            string `db:"id" json:"id"`
	ExamRequestID string `db:"exam_request_id" json:"exam_request_id"`
	TeacherID     string `db:"teacher_id" json:"teacher_id"`
}

// JuryPermission authorizes a teacher as jury for a course.
type JuryPermission struct {
	ID        string `db:"id" json:"id"`
	TeacherID string `db:"teacher_id" json:"teacher_id"`
	CourseID  string `db:"course_id" json:"course_id"`
}

// RoomBooking is a read model joining a non-rejected request with its
// room assignment, used to seed the generator's reservation state.
type RoomBooking struct {
	ExamRequestID        string    `db:"exam_request_id"`
	RoomID               string    `db:"room_id"`
	ExamDate             time.Time `db:"exam_date"`
	StartTime            ClockTime `db:"start_time"`
	EndTime              ClockTime `db:"end_time"`
	InvigilatorTeacherID string    `db:"invigilator_teacher_id"`
}

// JuryBooking is the jury counterpart of RoomBooking.
type JuryBooking struct {
	TeacherID string    `db:"teacher_id"`
	ExamDate  time.Time `db:"exam_date"`
	StartTime ClockTime `db:"start_time"`
	EndTime   ClockTime `db:"end_time"`
}
