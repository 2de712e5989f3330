package models

// Room is a physical examination space. Computer labs are flagged
// through a side table and surface here via IsComputerLab.
type Room struct {
	ID            string `db:"id" json:"id"`
	Name          string `db:"name" json:"name"`
	Capacity      int    `db:"capacity" json:"capacity"`
	Disabled      bool   `db:"disabled" json:"disabled"`
	IsComputerLab bool   `db:"is_computer_lab" json:"is_computer_lab"`
}
