package storage

// Key space shared by the repository and archival layers. All values are
// JSON strings.
const (
	KeyStats             = "stats"
	KeyIdentity          = "identity"
	KeyWeeklyGoals       = "weekly-goals"
	KeyHabitStacks       = "habit-stacks" // legacy global fallback; day-scoped stacks supersede it
	KeyWeeklyGoalArchive = "archive-weekly-goals"
	KeyGratitudeArchive  = "archive-gratitudes"
	KeyLastPurge         = "last-purge-date"

	dailyPrefix       = "data-"
	taskArchivePrefix = "archive-daily-tasks-"
)

// DailyKey returns the storage key for a date's DailyRecord.
func DailyKey(date string) string {
	return dailyPrefix + date
}

// TaskArchiveKey returns the storage key for a date's task archive snapshot.
func TaskArchiveKey(date string) string {
	return taskArchivePrefix + date
}

// DailyPrefix returns the prefix shared by all DailyRecord keys.
func DailyPrefix() string {
	return dailyPrefix
}

// TaskArchivePrefix returns the prefix shared by all task archive keys.
func TaskArchivePrefix() string {
	return taskArchivePrefix
}
