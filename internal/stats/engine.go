// Package stats tracks perfect-day streaks across date transitions.
//
// Counting happens exactly once per date, when the day is closed (the user
// navigates away from it). The real-time completion path is advisory only:
// it tells the UI to celebrate but never mutates persisted counters, so the
// two paths cannot double-count a day.
package stats

import (
	"github.com/kmallory/atomicday/internal/models"
)

// IsPerfectDay reports whether every habit and all three morning routine
// slots are completed. A record with zero habits vacuously satisfies the
// habit half; that matches the historical behavior and is deliberate.
func IsPerfectDay(rec models.DailyRecord) bool {
	for _, h := range rec.Habits {
		if !h.Completed {
			return false
		}
	}
	return rec.MorningRoutine.AllCompleted()
}

// Engine applies stat transitions. It is stateless; the caller owns the
// Stats value and its persistence.
type Engine struct{}

func New() *Engine {
	return &Engine{}
}

// OnCompletionChange is the real-time path, fired on every habit or routine
// toggle. It reports whether the day just became perfect (for UI feedback)
// and leaves the counters alone — CloseDay is the single counting authority.
// Records already closed never celebrate again.
func (e *Engine) OnCompletionChange(s models.Stats, rec models.DailyRecord) bool {
	return !rec.Closed && IsPerfectDay(rec) && s.LastClosedDate != rec.Date
}

// CloseDay evaluates a date being navigated away from, marks its record
// closed, and returns the updated stats. Perfect day: streak and
// perfect-day counters advance. Imperfect day: the streak resets.
// TotalDays advances once per distinct closed date that has at least one
// habit. The closed flag persists with the record, so a date stays closed
// across revisits and closing it again is a no-op.
func (e *Engine) CloseDay(s models.Stats, date string, rec *models.DailyRecord) models.Stats {
	if rec.Closed || s.LastClosedDate == date {
		return s
	}

	if len(rec.Habits) > 0 {
		s.TotalDays++
	}

	if IsPerfectDay(*rec) {
		s.CurrentStreak++
		s.PerfectDays++
		if s.CurrentStreak > s.LongestStreak {
			s.LongestStreak = s.CurrentStreak
		}
	} else {
		s.CurrentStreak = 0
	}

	rec.Closed = true
	s.LastClosedDate = date
	return s
}
