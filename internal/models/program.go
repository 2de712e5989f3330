package models

// ProgramClass selects the scheduling policy applied to a program.
type ProgramClass string

const (
	ProgramClassSocial     ProgramClass = "SOCIAL"
	ProgramClassHealthLike ProgramClass = "HEALTH_LIKE"
)

// Program represents a degree plan (career) owning groups.
type Program struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Group is a cohort of students following a program.
type Group struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Headcount int    `db:"headcount" json:"headcount"`
	ProgramID string `db:"program_id" json:"program_id"`
}
