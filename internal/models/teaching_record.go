package models

// TeachingRecord is one weekly class meeting of a (course, group).
type TeachingRecord struct {
	ID        string    `db:"id" json:"id"`
	PeriodID  string    `db:"period_id" json:"period_id"`
	CourseID  string    `db:"course_id" json:"course_id"`
	GroupID   string    `db:"group_id" json:"group_id"`
	TeacherID string    `db:"teacher_id" json:"teacher_id"`
	RoomID    string    `db:"room_id" json:"room_id"`
	DayOfWeek int       `db:"day_of_week" json:"day_of_week"`
	StartTime ClockTime `db:"start_time" json:"start_time"`
	EndTime   ClockTime `db:"end_time" json:"end_time"`
}
