package models

// Teacher represents a faculty member eligible for invigilation and jury duty.
type Teacher struct {
	ID       string `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Disabled bool   `db:"disabled" json:"disabled"`
}
