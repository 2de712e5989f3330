package models

import "time"

// ApplicationWindow is the inclusive date range within which exam dates
// for a (period, evaluation) must fall.
type ApplicationWindow struct {
	ID           string    `db:"id" json:"id"`
	PeriodID     string    `db:"period_id" json:"period_id"`
	EvaluationID string    `db:"evaluation_id" json:"evaluation_id"`
	FirstDate    time.Time `db:"first_date" json:"first_date"`
	LastDate     time.Time `db:"last_date" json:"last_date"`
}

// Contains reports whether d falls inside the window, date precision.
func (w ApplicationWindow) Contains(d time.Time) bool {
	day := truncateToDay(d)
	return !day.Before(truncateToDay(w.FirstDate)) && !day.After(truncateToDay(w.LastDate))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
