package models

import "github.com/google/uuid"

// Stats is the cross-date streak ledger. It is a singleton: one copy for
// the whole store, not partitioned by date.
type Stats struct {
	TotalDays     int `json:"totalDays"`
	PerfectDays   int `json:"perfectDays"`
	CurrentStreak int `json:"currentStreak"`
	LongestStreak int `json:"longestStreak"`
	// LastClosedDate guards day-close accounting against running twice
	// for the same date. Absent in records written by older versions.
	LastClosedDate string `json:"lastClosedDate,omitempty"`
}

// Identity is the user's identity statement (singleton).
type Identity struct {
	Statement string `json:"statement"`
	Updated   bool   `json:"updated"`
}

// WeeklyGoal is one goal for the current week. Weekly goals live outside
// the date-partitioned record family and are reset manually by the user.
type WeeklyGoal struct {
	ID        string `json:"id"`
	Goal      string `json:"goal"`
	Category  string `json:"category"`
	Completed bool   `json:"completed"`
}

// DefaultStats returns a zeroed ledger.
func DefaultStats() Stats {
	return Stats{}
}

// DefaultIdentity returns the starter identity statement.
func DefaultIdentity() Identity {
	return Identity{
		Statement: "I am someone who takes care of my health and pursues growth daily",
	}
}

// DefaultWeeklyGoals returns three empty goal slots.
func DefaultWeeklyGoals() []WeeklyGoal {
	return []WeeklyGoal{
		{ID: uuid.NewString(), Category: "Health"},
		{ID: uuid.NewString(), Category: "Career"},
		{ID: uuid.NewString(), Category: "Personal"},
	}
}
