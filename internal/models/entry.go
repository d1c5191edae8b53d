package models

import "time"

// Entry is one journal line: an action a sweep took on a directory or file
type Entry struct {
	ID    uint64 `boltholdKey:"ID"`
	RunID string `boltholdIndex:"RunID"` // uuid shared by every entry of a sweep

	Directory string `boltholdIndex:"Directory"` // episode directory name, or file name for organize
	Action    Action `boltholdIndex:"Action"`
	Outcome   Outcome
	Detail    string // destination path or error text

	CreatedAt time.Time
}
