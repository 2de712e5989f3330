package models

// AcademicPeriod partitions teaching and exam records in time.
type AcademicPeriod struct {
	ID          string `db:"id" json:"id"`
	DisplayName string `db:"display_name" json:"display_name"`
}

// EvaluationKind is the type of exam, e.g. Partial 1/2/3 or Ordinary.
type EvaluationKind struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
