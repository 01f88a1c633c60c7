package models

// ArchivedWeeklyGoal is a snapshot of a completed weekly goal. Entries are
// append-only and immutable once written.
type ArchivedWeeklyGoal struct {
	WeeklyGoal
	CompletedDate string `json:"completedDate"` // YYYY-MM-DD
	ArchivedAt    string `json:"archivedAt"`    // RFC3339
}

// ArchivedGratitude is one non-empty gratitude entry copied to the archive log.
type ArchivedGratitude struct {
	Text       string `json:"text"`
	Date       string `json:"date"` // YYYY-MM-DD
	ArchivedAt string `json:"archivedAt"`
}

// ArchivedTaskDay is the task snapshot for one date. Re-archiving the same
// date replaces the prior snapshot entirely.
type ArchivedTaskDay struct {
	Date       string `json:"date"`
	Tasks      []Task `json:"tasks"`
	ArchivedAt string `json:"archivedAt"`
}

// ArchiveData is the result of an archive history query.
type ArchiveData struct {
	WeeklyGoals []ArchivedWeeklyGoal `json:"weeklyGoals"`
	Gratitudes  []ArchivedGratitude  `json:"gratitudes"`
	Tasks       []ArchivedTaskDay    `json:"tasks"`
	CutoffDate  string               `json:"cutoffDate"`
}
