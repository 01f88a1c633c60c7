package stats

import (
	"testing"

	"github.com/kmallory/atomicday/internal/models"
)

func perfectRecord(date string) models.DailyRecord {
	rec := models.NewDailyRecord(date)
	for i := range rec.Habits {
		rec.Habits[i].Completed = true
	}
	rec.MorningRoutine.Move.Completed = true
	rec.MorningRoutine.Reflect.Completed = true
	rec.MorningRoutine.Grow.Completed = true
	return rec
}

func TestIsPerfectDay(t *testing.T) {
	rec := perfectRecord("2026-08-27")
	if !IsPerfectDay(rec) {
		t.Error("fully completed record should be perfect")
	}

	rec.Habits[0].Completed = false
	if IsPerfectDay(rec) {
		t.Error("incomplete habit should break perfection")
	}

	rec = perfectRecord("2026-08-27")
	rec.MorningRoutine.Reflect.Completed = false
	if IsPerfectDay(rec) {
		t.Error("incomplete routine slot should break perfection")
	}
}

func TestIsPerfectDayWithNoHabits(t *testing.T) {
	// Zero habits vacuously satisfy the habit condition; the routine
	// still has to be complete.
	rec := models.NewDailyRecord("2026-08-27")
	rec.Habits = []models.Habit{}
	rec.MorningRoutine.Move.Completed = true
	rec.MorningRoutine.Reflect.Completed = true
	rec.MorningRoutine.Grow.Completed = true

	if !IsPerfectDay(rec) {
		t.Error("zero-habit record with complete routine should be perfect")
	}
}

func TestCloseDayPerfectAdvancesStreak(t *testing.T) {
	e := New()
	s := models.DefaultStats()

	rec25 := perfectRecord("2026-08-25")
	rec26 := perfectRecord("2026-08-26")
	s = e.CloseDay(s, "2026-08-25", &rec25)
	s = e.CloseDay(s, "2026-08-26", &rec26)

	if s.CurrentStreak != 2 || s.PerfectDays != 2 || s.LongestStreak != 2 {
		t.Errorf("after two perfect closes: %+v", s)
	}
	if s.TotalDays != 2 {
		t.Errorf("TotalDays = %d, want 2", s.TotalDays)
	}
}

func TestCloseDayImperfectResetsStreakNotLongest(t *testing.T) {
	e := New()
	s := models.DefaultStats()

	rec24 := perfectRecord("2026-08-24")
	rec25 := perfectRecord("2026-08-25")
	rec26 := models.NewDailyRecord("2026-08-26")
	s = e.CloseDay(s, "2026-08-24", &rec24)
	s = e.CloseDay(s, "2026-08-25", &rec25)
	s = e.CloseDay(s, "2026-08-26", &rec26)

	if s.CurrentStreak != 0 {
		t.Errorf("CurrentStreak = %d, want 0", s.CurrentStreak)
	}
	if s.LongestStreak != 2 {
		t.Errorf("LongestStreak = %d, want 2", s.LongestStreak)
	}
	if s.PerfectDays != 2 {
		t.Errorf("PerfectDays = %d, want 2", s.PerfectDays)
	}
}

func TestCloseDayTwiceIsNoOp(t *testing.T) {
	e := New()
	s := models.DefaultStats()

	rec := perfectRecord("2026-08-27")
	s = e.CloseDay(s, "2026-08-27", &rec)
	if !rec.Closed {
		t.Error("CloseDay did not mark the record closed")
	}

	again := e.CloseDay(s, "2026-08-27", &rec)
	if again != s {
		t.Errorf("second close changed stats: %+v vs %+v", again, s)
	}
}

func TestCloseDayRevisitedDateStaysClosed(t *testing.T) {
	e := New()
	s := models.DefaultStats()

	// Close two dates, then navigate back and close the first again. The
	// closed flag on its record must keep its counts from repeating even
	// though it is no longer the most recently closed date.
	rec10 := perfectRecord("2026-01-10")
	rec11 := models.NewDailyRecord("2026-01-11")
	s = e.CloseDay(s, "2026-01-10", &rec10)
	s = e.CloseDay(s, "2026-01-11", &rec11)
	s = e.CloseDay(s, "2026-01-10", &rec10)

	if s.TotalDays != 2 {
		t.Errorf("TotalDays = %d after visiting 2 distinct dates, want 2", s.TotalDays)
	}
	if s.PerfectDays != 1 {
		t.Errorf("PerfectDays = %d for one perfect date, want 1", s.PerfectDays)
	}
	if s.CurrentStreak != 0 {
		t.Errorf("CurrentStreak = %d after an imperfect close, want 0", s.CurrentStreak)
	}
	if s.LastClosedDate != "2026-01-11" {
		t.Errorf("LastClosedDate = %q, want the real latest close", s.LastClosedDate)
	}
}

func TestCloseDayCountsTotalOnlyWithHabits(t *testing.T) {
	e := New()
	s := models.DefaultStats()

	rec := models.NewDailyRecord("2026-08-27")
	rec.Habits = []models.Habit{}
	s = e.CloseDay(s, "2026-08-27", &rec)

	if s.TotalDays != 0 {
		t.Errorf("TotalDays = %d, want 0 for habit-less day", s.TotalDays)
	}
}

func TestOnCompletionChangeIsAdvisory(t *testing.T) {
	e := New()
	s := models.DefaultStats()
	rec := perfectRecord("2026-08-27")

	if !e.OnCompletionChange(s, rec) {
		t.Error("perfect record should report celebration")
	}

	// Counters never move on the real-time path
	if s.PerfectDays != 0 || s.CurrentStreak != 0 {
		t.Errorf("advisory path mutated stats: %+v", s)
	}

	// Already-closed dates do not celebrate again
	s.LastClosedDate = "2026-08-27"
	if e.OnCompletionChange(s, rec) {
		t.Error("closed date should not celebrate")
	}

	// Nor do records carrying the closed flag, whatever was closed last
	s.LastClosedDate = "2026-08-26"
	rec.Closed = true
	if e.OnCompletionChange(s, rec) {
		t.Error("closed record should not celebrate")
	}
}
