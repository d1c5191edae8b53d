package models

// Action is the decision taken for an episode directory during a sweep
type Action string

const (
	ActionNone        Action = "none"         // Nothing to work with
	ActionWait        Action = "wait"         // Pending marker still present
	ActionExtract     Action = "extract"      // Archives only, extract then mark pending
	ActionMarkPending Action = "mark_pending" // Videos present, first time seen
	ActionClean       Action = "clean"        // Watched, move videos and dispose of the directory
	ActionOrganize    Action = "organize"     // Library file moved into its show/season folder
)

// Outcome records how an action ended
type Outcome string

const (
	OutcomeDone   Outcome = "done"
	OutcomeFailed Outcome = "failed"
)
