package models

// ExamMode determines the room family an exam may use.
type ExamMode string

const (
	// ExamModeWritten exams sit in an ordinary classroom.
	ExamModeWritten ExamMode = "written"
	// ExamModePlatform exams require a computer lab.
	ExamModePlatform ExamMode = "platform"
)

// Course represents a teaching unit (materia).
type Course struct {
	ID        string   `db:"id" json:"id"`
	Name      string   `db:"name" json:"name"`
	IsAcademy bool     `db:"is_academy" json:"is_academy"`
	ExamMode  ExamMode `db:"exam_mode" json:"exam_mode"`
}

// Mode returns the exam mode, defaulting to platform when unset.
func (c Course) Mode() ExamMode {
	if c.ExamMode == ExamModeWritten {
		return ExamModeWritten
	}
	return ExamModePlatform
}
